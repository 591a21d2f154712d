package reportrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gopharma/internal/domain"
	"gopharma/internal/pkg/cache"
)

// reportCacheKey guarda a última versão do relatório consolidado.
const reportCacheKey = "replenishment:report"

// ReportRepository guarda o relatório de reposição no Redis por uma janela curta.
type ReportRepository struct {
	Cache        cache.Client
	TTL          time.Duration
	CacheTimeout time.Duration
}

// NewReportRepository cria e retorna uma nova instância do Repositório de Relatórios.
func NewReportRepository(cacheClient cache.Client, ttl, cacheTimeout time.Duration) *ReportRepository {
	return &ReportRepository{
		Cache:        cacheClient,
		TTL:          ttl,
		CacheTimeout: cacheTimeout,
	}
}

// Get lê o relatório do cache. Devolve cache.ErrCacheMiss se não houver entrada.
func (r *ReportRepository) Get(ctx context.Context) (domain.ReplenishmentReport, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.CacheTimeout)
	defer cancel()

	data, err := r.Cache.Get(ctxTimeout, reportCacheKey)
	if err != nil {
		return domain.ReplenishmentReport{}, err
	}

	var report domain.ReplenishmentReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		// Entrada corrompida: apagamos e tratamos como ausência.
		_ = r.Cache.Delete(ctxTimeout, reportCacheKey)
		return domain.ReplenishmentReport{}, cache.ErrCacheMiss
	}
	return report, nil
}

// Save grava o relatório com o TTL configurado.
func (r *ReportRepository) Save(ctx context.Context, report domain.ReplenishmentReport) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.CacheTimeout)
	defer cancel()

	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("falha ao serializar relatório: %w", err)
	}
	return r.Cache.Set(ctxTimeout, reportCacheKey, data, r.TTL)
}
