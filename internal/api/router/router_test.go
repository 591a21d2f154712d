package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gopharma/internal/api/provider"
	"gopharma/internal/api/router"
	"gopharma/internal/domain"
	"gopharma/internal/pkg/logger"
	"gopharma/internal/pkg/token"
)

type stubService struct {
	mock.Mock
}

func (s *stubService) GetReport(ctx context.Context, fresh bool) (domain.ReplenishmentReport, error) {
	args := s.Called(ctx, fresh)
	return args.Get(0).(domain.ReplenishmentReport), args.Error(1)
}

func (s *stubService) MatchingMedicines(ctx context.Context, medicineID string) ([]domain.MedicineFromProvider, error) {
	args := s.Called(ctx, medicineID)
	offers, _ := args.Get(0).([]domain.MedicineFromProvider)
	return offers, args.Error(1)
}

func newRouter(opts router.Options) (http.Handler, *stubService) {
	svc := new(stubService)
	svc.On("GetReport", mock.Anything, false).Return(domain.ReplenishmentReport{
		Records: []domain.MedicineMatchingRecord{},
		Skipped: []domain.SkippedMedicine{},
	}, nil)
	log := logger.NewNopLogger()
	return router.NewRouter(provider.NewHandler(svc, log), opts, log), svc
}

func TestHealth(t *testing.T) {
	r, _ := newRouter(router.Options{CORSAllowedOrigins: []string{"*"}})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Server healthy", rr.Body.String())

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, "pong", rr.Body.String())

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nada", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestProvide_WithoutAuth(t *testing.T) {
	r, svc := newRouter(router.Options{CORSAllowedOrigins: []string{"*"}})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/provider/provide", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	svc.AssertExpectations(t)
}

func TestProvide_WithAuth(t *testing.T) {
	tokenSvc := token.NewService("segredo", time.Minute)
	r, _ := newRouter(router.Options{TokenService: tokenSvc, CORSAllowedOrigins: []string{"*"}})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/provider/provide", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	signed, err := tokenSvc.GenerateToken("rakoto")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/provider/provide", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	// Health check continua público.
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestPreflightSkipsAuth(t *testing.T) {
	r, _ := newRouter(router.Options{
		TokenService:       token.NewService("segredo", time.Minute),
		CORSAllowedOrigins: []string{"*"},
	})

	req := httptest.NewRequest(http.MethodOptions, "/provider/provide", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestSwaggerDoc(t *testing.T) {
	r, _ := newRouter(router.Options{CORSAllowedOrigins: []string{"*"}})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/provider/provide")
}
