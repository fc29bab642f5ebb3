package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/saas-metrics-api/infrastructure/cache"
	"github.com/vfg2006/saas-metrics-api/infrastructure/database/postgres"
	"github.com/vfg2006/saas-metrics-api/infrastructure/integrator/llm"
	"github.com/vfg2006/saas-metrics-api/infrastructure/repository"
	"github.com/vfg2006/saas-metrics-api/internal/api"
	"github.com/vfg2006/saas-metrics-api/internal/config"
	"github.com/vfg2006/saas-metrics-api/internal/scheduler"
	"github.com/vfg2006/saas-metrics-api/internal/telemetry"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/authenticating"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/deriving"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/narrating"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/reporting"
	"github.com/vfg2006/saas-metrics-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Formato e nível dos logs conforme o ambiente
	log.Setup(cfg.App.LogLevel, cfg.App.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if cfg.Database.Migrate {
		if err := postgres.RunMigrations(pgConn); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar as migrações")
		}
	}

	subscriptionRepo := repository.NewSubscriptionRepository(pgConn)
	customerRepo := repository.NewCustomerRepository(pgConn)
	customerMonthMRRRepo := repository.NewCustomerMonthMRRRepository(pgConn)
	revenueEventRepo := repository.NewRevenueEventRepository(pgConn)
	portfolioMetricsRepo := repository.NewPortfolioMetricsRepository(pgConn)

	var collector *telemetry.Collector
	if cfg.Telemetry.Enabled {
		collector = telemetry.NewCollector(cfg.Telemetry.Namespace)
	}

	authenticator := authenticating.NewService(cfg.Auth)

	reportingService := reporting.NewService(
		customerRepo,
		customerMonthMRRRepo,
		revenueEventRepo,
		portfolioMetricsRepo,
	)

	llmClient, err := llm.NewClient(cfg.LLM)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar o provedor de narrativas")
	}

	narrativeService := narrating.NewService(
		reportingService,
		llmClient,
		narrativeCache(ctx, cfg.Redis),
		collector,
		cfg.LLM,
	)

	engine := deriving.NewEngine(cfg.MetricsRebuild.MaxConcurrentJobs)

	metricsRebuildService := scheduler.NewMetricsRebuildService(
		subscriptionRepo,
		customerRepo,
		customerMonthMRRRepo,
		revenueEventRepo,
		portfolioMetricsRepo,
		engine,
		collector,
		cfg,
	)

	// Inicia o agendador em background
	if err := metricsRebuildService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recálculo das métricas")
	} else {
		logrus.Info("Agendador de recálculo das métricas iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		reportingService,
		narrativeService,
		authenticator,
		metricsRebuildService,
		collector,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// narrativeCache conecta ao Redis quando o cache está habilitado; sem Redis as narrativas seguem sem cache
func narrativeCache(ctx context.Context, cfg config.Redis) cache.Cache {
	if !cfg.CacheEnabled {
		return nil
	}

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Warn("Redis indisponível, narrativas sem cache")
		return nil
	}

	return redisCache
}
