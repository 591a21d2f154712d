package providerservice

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"gopharma/internal/domain"
	"gopharma/internal/pkg/cache"
)

// itemResult é a saída de um worker: um registro, um descarte ou nada
// (medicamento sem ofertas elegíveis).
type itemResult struct {
	record  *domain.MedicineMatchingRecord
	skipped *domain.SkippedMedicine
}

// BuildReport monta o relatório de reposição para todos os medicamentos em
// nível de alerta. Apenas a falha da listagem inicial é devolvida; falhas por
// medicamento descartam o item e ficam registradas em Skipped.
func (s *Service) BuildReport(ctx context.Context) (domain.ReplenishmentReport, error) {
	started := time.Now()

	lowStock, err := s.stock.ListLowStock(ctx)
	if err != nil {
		return domain.ReplenishmentReport{}, err
	}

	results := make([]itemResult, len(lowStock))
	names := newProviderNames(s.repo)

	var g errgroup.Group
	g.SetLimit(s.opts.Workers)
	for i, medicine := range lowStock {
		i, medicine := i, medicine
		g.Go(func() error {
			results[i] = s.buildRecord(ctx, medicine.ID, names)
			return nil
		})
	}
	_ = g.Wait() // os workers nunca devolvem erro

	report := domain.ReplenishmentReport{
		Records: []domain.MedicineMatchingRecord{},
		Skipped: []domain.SkippedMedicine{},
	}
	for _, r := range results {
		switch {
		case r.skipped != nil:
			report.Skipped = append(report.Skipped, *r.skipped)
		case r.record != nil:
			report.Records = append(report.Records, *r.record)
		}
	}

	sort.Slice(report.Records, func(i, j int) bool {
		a, b := report.Records[i], report.Records[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.MedicineID < b.MedicineID
	})
	sort.Slice(report.Skipped, func(i, j int) bool {
		return report.Skipped[i].MedicineID < report.Skipped[j].MedicineID
	})

	if len(report.Skipped) > 0 {
		s.logger.Warn("Medicamentos ignorados no relatório de reposição.", map[string]interface{}{
			"skipped": report.Skipped,
		})
	}
	s.logger.Info("Relatório de reposição gerado.", map[string]interface{}{
		"low_stock":   len(lowStock),
		"records":     len(report.Records),
		"skipped":     len(report.Skipped),
		"duration_ms": time.Since(started).Milliseconds(),
	})
	return report, nil
}

// buildRecord processa um medicamento: casa as ofertas, relê o medicamento
// e calcula a quantidade de cada oferta.
func (s *Service) buildRecord(ctx context.Context, medicineID string, names *providerNames) itemResult {
	offers, err := s.MatchingMedicines(ctx, medicineID)
	if err != nil {
		return skip(medicineID, err)
	}
	if len(offers) == 0 {
		return itemResult{}
	}

	medicine, err := s.stock.GetMedicine(ctx, medicineID)
	if err != nil {
		return skip(medicineID, err)
	}

	entries := make([]domain.MedicineMapRecord, 0, len(offers))
	for _, offer := range offers {
		quantity := QuantityToOrder(medicine, offer)
		if s.opts.FilterNonPositiveQuantities && quantity <= 0 {
			continue
		}

		providerName, err := names.lookup(ctx, offer.ProviderID)
		if err != nil {
			return skip(medicineID, err)
		}

		entries = append(entries, domain.MedicineMapRecord{
			Medicine:        offer,
			Provider:        domain.MedicineMapRecordProvider{Name: providerName},
			QuantityToOrder: quantity,
			EstimatedCost:   EstimatedCost(offer, quantity),
		})
	}
	if len(entries) == 0 {
		return itemResult{}
	}

	return itemResult{record: &domain.MedicineMatchingRecord{
		MedicineID:        medicine.ID,
		Name:              medicine.Name,
		StockMin:          medicine.Min,
		ProviderMedicines: entries,
	}}
}

func skip(medicineID string, err error) itemResult {
	return itemResult{skipped: &domain.SkippedMedicine{MedicineID: medicineID, Reason: err.Error()}}
}

// providerNames memoriza os nomes de fornecedores durante uma execução do relatório.
type providerNames struct {
	repo  ProviderRepository
	mu    sync.Mutex
	names map[string]string
}

func newProviderNames(repo ProviderRepository) *providerNames {
	return &providerNames{repo: repo, names: make(map[string]string)}
}

func (p *providerNames) lookup(ctx context.Context, providerID string) (string, error) {
	p.mu.Lock()
	name, ok := p.names[providerID]
	p.mu.Unlock()
	if ok {
		return name, nil
	}

	provider, err := p.repo.FindProviderByID(ctx, providerID)
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	p.names[providerID] = provider.Name
	p.mu.Unlock()
	return provider.Name, nil
}

// GetReport devolve o relatório em cache, ou gera um novo se não houver cache,
// se ele falhar ou se fresh for true.
func (s *Service) GetReport(ctx context.Context, fresh bool) (domain.ReplenishmentReport, error) {
	if s.cache != nil && !fresh {
		report, err := s.cache.Get(ctx)
		if err == nil {
			s.logger.Debug("Relatório de reposição servido do cache.", nil)
			return report, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Falha ao ler relatório do cache.", map[string]interface{}{"error": err.Error()})
		}
	}

	return s.RefreshReport(ctx)
}

// RefreshReport gera o relatório e atualiza o cache.
func (s *Service) RefreshReport(ctx context.Context) (domain.ReplenishmentReport, error) {
	report, err := s.BuildReport(ctx)
	if err != nil {
		return domain.ReplenishmentReport{}, err
	}

	if s.cache != nil {
		if err := s.cache.Save(ctx, report); err != nil {
			s.logger.Warn("Falha ao gravar relatório no cache.", map[string]interface{}{"error": err.Error()})
		}
	}
	return report, nil
}
