package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"gopharma/internal/domain"
	apperror "gopharma/internal/errors"
	"gopharma/internal/pkg/logger"
)

// SkippedHeader informa quantos medicamentos ficaram fora do relatório por falha.
const SkippedHeader = "X-Skipped-Medicines"

// ProviderService define o contrato que o Handler espera da camada de Serviço.
type ProviderService interface {
	GetReport(ctx context.Context, fresh bool) (domain.ReplenishmentReport, error)
	MatchingMedicines(ctx context.Context, medicineID string) ([]domain.MedicineFromProvider, error)
}

// Handler agrupa os Handlers de reposição junto aos fornecedores.
type Handler struct {
	Service ProviderService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProviderService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

// ProvideForLowStockHandler lida com a requisição GET /provider/provide.
// @Summary Relatório de reposição
// @Description Para cada medicamento em nível de alerta, lista as ofertas de fornecedores sem pedido em aberto e a quantidade a encomendar. Ordenado por nome.
// @Tags provider
// @Produce json
// @Param fresh query bool false "Ignora o cache e recalcula o relatório"
// @Success 200 {array} domain.MedicineMatchingRecord "Relatório de reposição"
// @Header 200 {integer} X-Skipped-Medicines "Medicamentos ignorados por falha"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 500 {object} domain.ErrorResponse "Falha no banco de dados"
// @Security ApiKeyAuth
// @Router /provider/provide [get]
func (h *Handler) ProvideForLowStockHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	fresh, _ := strconv.ParseBool(r.URL.Query().Get("fresh"))

	report, err := h.Service.GetReport(r.Context(), fresh)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	w.Header().Set(SkippedHeader, strconv.Itoa(len(report.Skipped)))
	h.handleServiceResponse(w, r, report.Records, nil, http.StatusOK)
}

// MatchesHandler lida com a requisição GET /provider/matches/{medicineId}.
// @Summary Ofertas disponíveis para um medicamento
// @Description Lista as ofertas vinculadas ao medicamento que não têm pedido em aberto.
// @Tags provider
// @Produce json
// @Param medicineId path string true "ID (UUID) do medicamento"
// @Success 200 {array} domain.MedicineFromProvider "Ofertas casadas"
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Medicamento ou oferta não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Falha no banco de dados"
// @Security ApiKeyAuth
// @Router /provider/matches/{medicineId} [get]
func (h *Handler) MatchesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/provider/matches/")
	if _, err := uuid.Parse(id); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("ID de medicamento inválido."), http.StatusBadRequest)
		return
	}

	offers, err := h.Service.MatchingMedicines(r.Context(), id)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, offers, nil, http.StatusOK)
}
