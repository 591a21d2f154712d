package stockservice

import (
	"context"

	"gopharma/internal/domain"
	apperror "gopharma/internal/errors"
	"gopharma/internal/pkg/logger"
)

// MedicineRepository define o contrato que o Serviço de Estoque espera da camada de Persistência.
type MedicineRepository interface {
	FindLowStock(ctx context.Context) ([]domain.Medicine, error)
	FindByID(ctx context.Context, id string) (domain.Medicine, error)
}

// Service responde às perguntas de leitura sobre o estoque da farmácia.
type Service struct {
	repo   MedicineRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Estoque.
func NewService(repo MedicineRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListLowStock retorna os medicamentos com quantidade menor ou igual ao nível de alerta.
// Falhas do banco são devolvidas sem alteração; não há nova tentativa aqui.
func (s *Service) ListLowStock(ctx context.Context) ([]domain.Medicine, error) {
	medicines, err := s.repo.FindLowStock(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar medicamentos em nível de alerta.", err)
		return nil, err
	}

	// O repositório já filtra; a checagem garante o contrato mesmo com outro backend.
	lowStock := make([]domain.Medicine, 0, len(medicines))
	for _, m := range medicines {
		if m.IsLowStock() {
			lowStock = append(lowStock, m)
		}
	}

	s.logger.Debug("Medicamentos em nível de alerta listados.", map[string]interface{}{"count": len(lowStock)})
	return lowStock, nil
}

// GetMedicine busca um medicamento pelo ID. Retorna NotFoundError se não existir.
func (s *Service) GetMedicine(ctx context.Context, id string) (domain.Medicine, error) {
	if id == "" {
		return domain.Medicine{}, apperror.NewNotFoundError("ID de medicamento vazio.")
	}

	medicine, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Medicine{}, err // Erros do repositório já são NotFoundError ou StoreFaultError
	}
	return medicine, nil
}
