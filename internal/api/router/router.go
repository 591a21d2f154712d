package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "gopharma/docs" // registra a especificação OpenAPI
	"gopharma/internal/api/provider"
	"gopharma/internal/pkg/cache"
	"gopharma/internal/pkg/logger"
	"gopharma/internal/pkg/middleware"
)

// Options reúne as dependências opcionais do roteador.
type Options struct {
	// TokenService nil desativa a autenticação das rotas de fornecedores.
	TokenService middleware.TokenService
	// Cache nil desativa o rate limiting.
	Cache                cache.Client
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
	CORSAllowedOrigins   []string
}

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
func NewRouter(providerHandler *provider.Handler, opts Options, log logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// --- 1. Health Check ---
	mux.HandleFunc("/", HealthHandler)
	mux.HandleFunc("/ping", PingHandler)

	// --- 2. Rotas de Fornecedores ---
	protect := func(h http.HandlerFunc) http.Handler { return h }
	if opts.TokenService != nil {
		auth := middleware.NewAuthMiddleware(opts.TokenService)
		protect = func(h http.HandlerFunc) http.Handler { return auth(h) }
	}

	// GET /provider/provide (Relatório de reposição)
	mux.Handle("/provider/provide", protect(providerHandler.ProvideForLowStockHandler))

	// GET /provider/matches/{medicineId} (Ofertas de um medicamento)
	mux.Handle("/provider/matches/", protect(providerHandler.MatchesHandler))

	// --- 3. Documentação ---
	mux.Handle("/swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- 4. Middlewares Globais (o primeiro da lista é o mais externo) ---
	var handler http.Handler = mux
	if opts.Cache != nil {
		handler = middleware.RateLimiter(opts.Cache, opts.RateLimitMaxRequests, opts.RateLimitPeriod, log)(handler)
	}
	handler = middleware.CORS(opts.CORSAllowedOrigins)(handler)
	handler = middleware.RequestLogger(log)(handler)

	return handler
}

// HealthHandler responde na raiz para os health checks do orquestrador.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Server healthy"))
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
