package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"gopharma/config"
	"gopharma/internal/pkg/cache"
	"gopharma/internal/pkg/database"
	"gopharma/internal/pkg/logger"
	"gopharma/internal/pkg/token"
	"gopharma/internal/scheduler"

	"gopharma/internal/api/provider"
	"gopharma/internal/api/router"
	"gopharma/internal/repository/providerrepo"
	"gopharma/internal/repository/reportrepo"
	"gopharma/internal/repository/stockrepo"
	"gopharma/internal/service/providerservice"
	"gopharma/internal/service/stockservice"
)

// @title GoPharma Replenishment API
// @version 1.0
// @description Relatório de reposição de estoque a partir das ofertas dos fornecedores.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando serviço GoPharma...")
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel)
	if zl, ok := appLog.(*logger.ZapLogger); ok {
		defer zl.Sync()
	}
	appLog.Info("Configurações carregadas.", map[string]interface{}{
		"env":     cfg.Environment,
		"driver":  cfg.DatabaseDriver,
		"workers": cfg.ReportWorkers,
	})

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	appLog.Info("Conexão com o banco de dados estabelecida.", nil)

	// B. Cache (Redis). Opcional: sem Redis o serviço consulta sempre o banco.
	var cacheClient cache.Client
	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			appLog.Warn("Redis indisponível, seguindo sem cache.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
			if rc, ok := client.(*cache.RedisClient); ok {
				rc.Close()
			}
		} else {
			cacheClient = client
			appLog.Info("Conexão Redis estabelecida.", nil)
		}
	}

	// 3. Injeção de Dependências: Repository -> Service -> Handler
	stockRepo := stockrepo.NewMedicineRepository(db, cfg.DBTimeout, logger.Named(appLog, "stockrepo"))
	providerRepo := providerrepo.NewProviderRepository(db, cacheClient, cfg.DBTimeout, cfg.ProviderCacheTTL, logger.Named(appLog, "providerrepo"))
	providerRepo.CacheTimeout = cfg.CacheTimeout

	stockSvc := stockservice.NewService(stockRepo, logger.Named(appLog, "stockservice"))
	providerSvc := providerservice.NewService(providerRepo, stockSvc, logger.Named(appLog, "providerservice"), providerservice.Options{
		Workers:                     cfg.ReportWorkers,
		FilterNonPositiveQuantities: cfg.FilterNonPositiveQuantities,
		DedupOfferLinks:             cfg.DedupOfferLinks,
	})
	if cacheClient != nil {
		providerSvc.WithReportCache(reportrepo.NewReportRepository(cacheClient, cfg.ReportCacheTTL, cfg.CacheTimeout))
	}

	providerHandler := provider.NewHandler(providerSvc, logger.Named(appLog, "handler"))

	// Serviço de Tokens (JWT do backend principal)
	routerOpts := router.Options{
		Cache:                cacheClient,
		RateLimitMaxRequests: cfg.RateLimitMaxRequests,
		RateLimitPeriod:      cfg.RateLimitPeriod,
		CORSAllowedOrigins:   cfg.CORSAllowedOrigins,
	}
	if cfg.JWTSecretKey != "" {
		routerOpts.TokenService = token.NewService(cfg.JWTSecretKey, 15*time.Minute)
	} else {
		appLog.Warn("JWT_SECRET_KEY vazio: rotas de fornecedores sem autenticação.", nil)
	}

	// 4. Agendador de atualização do relatório
	sched := scheduler.NewScheduler(providerSvc, 2*time.Minute, logger.Named(appLog, "scheduler"))
	if err := sched.Start(cfg.ReportRefreshCron); err != nil {
		appLog.Fatal("Falha ao iniciar o agendador.", err)
	}

	// 5. Servidor HTTP
	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.BindHost(), cfg.Port),
		Handler:      router.NewRouter(providerHandler, routerOpts, logger.Named(appLog, "http")),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLog.Info("Servidor GoPharma ouvindo.", map[string]interface{}{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	// 6. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}
