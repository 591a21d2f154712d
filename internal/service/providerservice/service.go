package providerservice

import (
	"context"

	"gopharma/internal/domain"
	"gopharma/internal/pkg/logger"
)

// ProviderRepository define o contrato que o serviço espera da camada de Persistência
// para ofertas, vínculos com o estoque, pedidos em aberto e fornecedores.
type ProviderRepository interface {
	FindOfferLinks(ctx context.Context, medicineID string) ([]domain.MedicineOfferLink, error)
	FindOfferByID(ctx context.Context, id string) (domain.MedicineFromProvider, error)
	CountOpenOrders(ctx context.Context, offerID string) (int, error)
	FindProviderByID(ctx context.Context, id string) (domain.Provider, error)
}

// StockReader é o leitor do estoque (implementado por stockservice.Service).
type StockReader interface {
	ListLowStock(ctx context.Context) ([]domain.Medicine, error)
	GetMedicine(ctx context.Context, id string) (domain.Medicine, error)
}

// ReportCache guarda a última versão do relatório por uma janela curta.
type ReportCache interface {
	Get(ctx context.Context) (domain.ReplenishmentReport, error)
	Save(ctx context.Context, report domain.ReplenishmentReport) error
}

// Options ajusta o comportamento do relatório.
type Options struct {
	// Workers limita quantos medicamentos são processados em paralelo.
	Workers int
	// FilterNonPositiveQuantities descarta ofertas cuja quantidade a encomendar é <= 0.
	FilterNonPositiveQuantities bool
	// DedupOfferLinks ignora vínculos repetidos para a mesma oferta.
	DedupOfferLinks bool
}

// Service casa medicamentos em nível de alerta com ofertas de fornecedores.
type Service struct {
	repo   ProviderRepository
	stock  StockReader
	cache  ReportCache
	opts   Options
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Fornecedores.
func NewService(repo ProviderRepository, stock StockReader, logger logger.Logger, opts Options) *Service {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Service{repo: repo, stock: stock, opts: opts, logger: logger}
}

// WithReportCache ativa o cache do relatório consolidado.
func (s *Service) WithReportCache(c ReportCache) *Service {
	s.cache = c
	return s
}

// MatchingMedicines retorna as ofertas vinculadas ao medicamento que não têm
// nenhum pedido em aberto, na ordem em que os vínculos foram lidos.
// Qualquer falha ao buscar uma oferta ou contar seus pedidos aborta a chamada.
func (s *Service) MatchingMedicines(ctx context.Context, medicineID string) ([]domain.MedicineFromProvider, error) {
	// Garante que o medicamento existe antes de casar com vínculos antigos.
	if _, err := s.stock.GetMedicine(ctx, medicineID); err != nil {
		return nil, err
	}

	links, err := s.repo.FindOfferLinks(ctx, medicineID)
	if err != nil {
		return nil, err
	}

	var seen map[string]struct{}
	if s.opts.DedupOfferLinks {
		seen = make(map[string]struct{}, len(links))
	}

	offers := make([]domain.MedicineFromProvider, 0, len(links))
	for _, link := range links {
		if seen != nil {
			if _, dup := seen[link.MedicineFromProviderID]; dup {
				continue
			}
			seen[link.MedicineFromProviderID] = struct{}{}
		}

		offer, err := s.repo.FindOfferByID(ctx, link.MedicineFromProviderID)
		if err != nil {
			return nil, err
		}

		openOrders, err := s.repo.CountOpenOrders(ctx, offer.ID)
		if err != nil {
			return nil, err
		}

		// Oferta com pedido em aberto já está em reposição.
		if openOrders == 0 {
			offers = append(offers, offer)
		}
	}

	s.logger.Debug("Ofertas casadas para o medicamento.", map[string]interface{}{
		"medicine_id": medicineID,
		"links":       len(links),
		"offers":      len(offers),
	})
	return offers, nil
}
