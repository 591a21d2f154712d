package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config armazena todas as configurações do serviço de reposição.
type Config struct {
	// Geral
	Port        string
	Environment string
	Production  bool // true: escuta em 0.0.0.0, false: apenas 127.0.0.1
	LogLevel    string

	// Banco de Dados
	DatabaseDriver string // "postgres" (padrão) ou "sqlite"
	DatabaseURL    string
	DBTimeout      time.Duration

	// Cache (Redis)
	RedisAddr        string
	CacheTimeout     time.Duration
	ReportCacheTTL   time.Duration
	ProviderCacheTTL time.Duration

	// Relatório de reposição
	ReportWorkers               int
	ReportRefreshCron           string // vazio desativa o agendamento
	FilterNonPositiveQuantities bool
	DedupOfferLinks             bool

	// Segurança (JWT emitido pelo backend principal). Vazio desativa a autenticação.
	JWTSecretKey string

	// CORS
	CORSAllowedOrigins []string

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		Production:  getBoolEnv("PRODUCTION", false),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. Banco de Dados
		// mustGetEnv garante que a aplicação não inicie sem credenciais de DB
		DatabaseDriver: strings.ToLower(getEnv("DATABASE_DRIVER", "postgres")),
		DatabaseURL:    mustGetEnv("DATABASE_URL"),
		DBTimeout:      getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,

		// 3. Cache (Redis)
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTimeout:     getDurationEnv("CACHE_TIMEOUT_SEC", 2) * time.Second,
		ReportCacheTTL:   getDurationEnv("REPORT_CACHE_TTL_SEC", 30) * time.Second,
		ProviderCacheTTL: getDurationEnv("PROVIDER_CACHE_TTL_MIN", 5) * time.Minute,

		// 4. Relatório
		ReportWorkers:               getIntEnv("REPORT_WORKERS", 8),
		ReportRefreshCron:           getEnv("REPORT_REFRESH_CRON", ""),
		FilterNonPositiveQuantities: getBoolEnv("FILTER_NON_POSITIVE_QUANTITIES", false),
		DedupOfferLinks:             getBoolEnv("DEDUP_OFFER_LINKS", false),

		// 5. Segurança
		JWTSecretKey: getEnv("JWT_SECRET_KEY", ""),

		// 6. CORS
		CORSAllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),

		// 7. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,
	}

	if cfg.ReportWorkers < 1 {
		log.Printf("⚠️ Aviso: REPORT_WORKERS deve ser >= 1 (recebido %d). Usando 1.", cfg.ReportWorkers)
		cfg.ReportWorkers = 1
	}

	return cfg
}

// BindHost retorna o endereço de escuta conforme o modo de execução.
func (c *Config) BindHost() string {
	if c.Production {
		return "0.0.0.0"
	}
	return "127.0.0.1"
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Fatalf("❌ Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// getBoolEnv lê uma variável booleana ("true", "1", "false", ...).
func getBoolEnv(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é booleano. Usando padrão (%t).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// getListEnv lê uma lista separada por vírgulas.
func getListEnv(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if strings.TrimSpace(valueStr) == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
