package providerrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gopharma/internal/domain"
	apperror "gopharma/internal/errors"
	"gopharma/internal/pkg/cache"
	"gopharma/internal/pkg/logger"
)

// Define a chave de cache para fornecedores.
const providerCacheKey = "provider:%s"

// ProviderRepository dá acesso de leitura às ofertas dos fornecedores, à tabela
// de junção com o estoque e aos pedidos em aberto.
type ProviderRepository struct {
	DB           *sql.DB
	Cache        cache.Client // opcional: nil desativa o cache de fornecedores
	DBTimeout    time.Duration
	CacheTTL     time.Duration
	CacheTimeout time.Duration
	logger       logger.Logger
}

// NewProviderRepository cria e retorna uma nova instância do Repositório.
func NewProviderRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *ProviderRepository {
	return &ProviderRepository{
		DB:           db,
		Cache:        cacheClient,
		DBTimeout:    dbTimeout,
		CacheTTL:     cacheTTL,
		CacheTimeout: time.Second,
		logger:       logger,
	}
}

// FindOfferLinks retorna as linhas da junção em que o lado do estoque é medicineID,
// na ordem em que foram lidas.
func (r *ProviderRepository) FindOfferLinks(ctx context.Context, medicineID string) ([]domain.MedicineOfferLink, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout,
		`SELECT "A", "B" FROM "_MedicineToMedicineFromProvider" WHERE "A" = $1`, medicineID)
	if err != nil {
		r.logger.Error("Falha ao buscar vínculos do medicamento.", err)
		return nil, apperror.NewDBError("Falha ao buscar vínculos do medicamento", err)
	}
	defer rows.Close()

	links := []domain.MedicineOfferLink{}
	for rows.Next() {
		var l domain.MedicineOfferLink
		if err := rows.Scan(&l.MedicineID, &l.MedicineFromProviderID); err != nil {
			return nil, apperror.NewDBError("Falha ao ler vínculo", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Falha ao iterar vínculos", err)
	}

	return links, nil
}

// FindOfferByID busca uma oferta de fornecedor pelo ID.
func (r *ProviderRepository) FindOfferByID(ctx context.Context, id string) (domain.MedicineFromProvider, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
		SELECT "id", "name", "priceWithTax", "priceWithoutTax", "quantity", "dci", "providerId", "expirationDate"
		FROM "MedicineFromProvider"
		WHERE "id" = $1`

	var (
		offer domain.MedicineFromProvider
		dci   sql.NullString
	)
	err := r.DB.QueryRowContext(ctxTimeout, query, id).Scan(
		&offer.ID,
		&offer.Name,
		&offer.PriceWithTax,
		&offer.PriceWithoutTax,
		&offer.Quantity,
		&dci,
		&offer.ProviderID,
		&offer.ExpirationDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MedicineFromProvider{}, apperror.NewNotFoundError(fmt.Sprintf("Oferta com ID %s não existe.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar oferta no DB.", err)
		return domain.MedicineFromProvider{}, apperror.NewDBError("Falha ao buscar oferta", err)
	}
	if dci.Valid {
		offer.DCI = &dci.String
	}

	return offer, nil
}

// CountOpenOrders conta os pedidos que referenciam a oferta.
func (r *ProviderRepository) CountOpenOrders(ctx context.Context, offerID string) (int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var count int
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT COUNT(*) FROM "OrderMedicine" WHERE "medicineFromProviderId" = $1`, offerID,
	).Scan(&count)
	if err != nil {
		r.logger.Error("Falha ao contar pedidos da oferta.", err)
		return 0, apperror.NewDBError("Falha ao contar pedidos da oferta", err)
	}

	return count, nil
}

// FindProviderByID busca um fornecedor pelo ID, utilizando a estratégia Cache-Aside.
func (r *ProviderRepository) FindProviderByID(ctx context.Context, id string) (domain.Provider, error) {
	key := fmt.Sprintf(providerCacheKey, id)
	var provider domain.Provider

	// 1. Tentar obter do Cache (Redis)
	if r.Cache != nil {
		cacheCtx, cancel := context.WithTimeout(ctx, r.CacheTimeout)
		cachedData, err := r.Cache.Get(cacheCtx, key)
		cancel()
		if err == nil {
			if json.Unmarshal([]byte(cachedData), &provider) == nil {
				return provider, nil
			}
			r.logger.Warn("Entrada de cache de fornecedor inválida, consultando o DB.", map[string]interface{}{"key": key})
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			// Falha real do cache: seguimos para o DB.
			r.logger.Warn("Falha ao ler fornecedor do cache.", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}

	// 2. Busca no Banco de Dados
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
		SELECT "id", "name", "email", "contactName", "city", "country"
		FROM "Provider"
		WHERE "id" = $1`

	var email, contactName sql.NullString
	err := r.DB.QueryRowContext(ctxTimeout, query, id).Scan(
		&provider.ID, &provider.Name, &email, &contactName, &provider.City, &provider.Country,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Provider{}, apperror.NewNotFoundError(fmt.Sprintf("Fornecedor com ID %s não existe.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar fornecedor no DB.", err)
		return domain.Provider{}, apperror.NewDBError("Falha ao buscar fornecedor", err)
	}
	if email.Valid {
		provider.Email = &email.String
	}
	if contactName.Valid {
		provider.ContactName = &contactName.String
	}

	// 3. Popular o cache para as próximas requisições
	if r.Cache != nil {
		if data, marshalErr := json.Marshal(provider); marshalErr == nil {
			if setErr := r.Cache.Set(ctxTimeout, key, data, r.CacheTTL); setErr != nil {
				r.logger.Warn("Falha ao gravar fornecedor no cache.", map[string]interface{}{"key": key, "error": setErr.Error()})
			}
		}
	}

	return provider, nil
}
