package providerrepo_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gopharma/internal/domain"
	apperror "gopharma/internal/errors"
	"gopharma/internal/pkg/cache"
	"gopharma/internal/pkg/cache/cachetest"
	"gopharma/internal/pkg/database/dbtest"
	"gopharma/internal/pkg/logger"
	"gopharma/internal/repository/providerrepo"
)

func seedCatalog(t *testing.T) (*dbtest.Seeder, func(cache.Client) *providerrepo.ProviderRepository) {
	db := dbtest.NewSQLite(t)
	seed := dbtest.NewSeeder(t, db)
	seed.Provider("p-1", "Pharmalab")
	seed.Medicine("m-1", "Amoxicilline", 2, 4, 10, 5)
	seed.Offer("o-1", "Amoxicilline 500mg", "p-1", 20, 1200, 1000)
	seed.Offer("o-2", "Amoxicilline 1g", "p-1", 5, 2400, 2000)
	seed.Link("m-1", "o-1")
	seed.Link("m-1", "o-2")

	build := func(c cache.Client) *providerrepo.ProviderRepository {
		return providerrepo.NewProviderRepository(db, c, 5*time.Second, time.Minute, logger.NewNopLogger())
	}
	return seed, build
}

func TestFindOfferLinks(t *testing.T) {
	_, build := seedCatalog(t)
	repo := build(nil)

	links, err := repo.FindOfferLinks(context.Background(), "m-1")

	require.NoError(t, err)
	require.Len(t, links, 2)
	offerIDs := []string{links[0].MedicineFromProviderID, links[1].MedicineFromProviderID}
	assert.ElementsMatch(t, []string{"o-1", "o-2"}, offerIDs)
	assert.Equal(t, "m-1", links[0].MedicineID)
}

func TestFindOfferLinks_NoLinks(t *testing.T) {
	_, build := seedCatalog(t)

	links, err := build(nil).FindOfferLinks(context.Background(), "m-unlinked")

	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestFindOfferByID(t *testing.T) {
	_, build := seedCatalog(t)

	offer, err := build(nil).FindOfferByID(context.Background(), "o-1")

	require.NoError(t, err)
	assert.Equal(t, "Amoxicilline 500mg", offer.Name)
	assert.Equal(t, 20, offer.Quantity)
	assert.Equal(t, "p-1", offer.ProviderID)
	assert.Equal(t, "1200", offer.PriceWithTax.String())
	assert.Equal(t, "1000", offer.PriceWithoutTax.String())
	assert.Nil(t, offer.DCI)
	assert.Equal(t, 2027, offer.ExpirationDate.Year())
}

func TestFindOfferByID_NotFound(t *testing.T) {
	_, build := seedCatalog(t)

	_, err := build(nil).FindOfferByID(context.Background(), "o-missing")

	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestCountOpenOrders(t *testing.T) {
	seed, build := seedCatalog(t)
	seed.OpenOrder("o-2", "p-1")
	seed.OpenOrder("o-2", "p-1")
	repo := build(nil)

	count, err := repo.CountOpenOrders(context.Background(), "o-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = repo.CountOpenOrders(context.Background(), "o-2")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestFindProviderByID_CacheMissPopulatesCache(t *testing.T) {
	_, build := seedCatalog(t)
	mockCache := new(cachetest.MockClient)
	mockCache.On("Get", mock.Anything, "provider:p-1").Return("", cache.ErrCacheMiss)
	mockCache.On("Set", mock.Anything, "provider:p-1", mock.Anything, time.Minute).Return(nil)

	provider, err := build(mockCache).FindProviderByID(context.Background(), "p-1")

	require.NoError(t, err)
	assert.Equal(t, "Pharmalab", provider.Name)
	require.NotNil(t, provider.Email)
	assert.Equal(t, "contato@p-1.mg", *provider.Email)
	mockCache.AssertExpectations(t)
}

func TestFindProviderByID_CacheHitSkipsDB(t *testing.T) {
	_, build := seedCatalog(t)
	cached, _ := json.Marshal(domain.Provider{ID: "p-9", Name: "Do Cache"})
	mockCache := new(cachetest.MockClient)
	mockCache.On("Get", mock.Anything, "provider:p-9").Return(string(cached), nil)

	provider, err := build(mockCache).FindProviderByID(context.Background(), "p-9")

	require.NoError(t, err)
	assert.Equal(t, "Do Cache", provider.Name)
	mockCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFindProviderByID_CacheFailureFallsBackToDB(t *testing.T) {
	_, build := seedCatalog(t)
	mockCache := new(cachetest.MockClient)
	mockCache.On("Get", mock.Anything, "provider:p-1").Return("", errors.New("redis: connection refused"))
	mockCache.On("Set", mock.Anything, "provider:p-1", mock.Anything, time.Minute).Return(errors.New("redis: connection refused"))

	provider, err := build(mockCache).FindProviderByID(context.Background(), "p-1")

	require.NoError(t, err)
	assert.Equal(t, "Pharmalab", provider.Name)
}

func TestFindProviderByID_NotFound(t *testing.T) {
	_, build := seedCatalog(t)

	_, err := build(nil).FindProviderByID(context.Background(), "p-missing")

	assert.IsType(t, &apperror.NotFoundError{}, err)
}
