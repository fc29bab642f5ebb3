// Comando ingest carrega os CSVs brutos no PostgreSQL e, opcionalmente, recalcula as métricas.
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/vfg2006/saas-metrics-api/infrastructure/csvstore"
	"github.com/vfg2006/saas-metrics-api/infrastructure/database/postgres"
	"github.com/vfg2006/saas-metrics-api/infrastructure/repository"
	"github.com/vfg2006/saas-metrics-api/internal/config"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/internal/scheduler"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/deriving"
	"github.com/vfg2006/saas-metrics-api/pkg/log"
	"github.com/vfg2006/saas-metrics-api/pkg/utils"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	rawDir := pflag.String("raw-dir", cfg.Data.RawDir, "diretório com accounts.csv e subscriptions.csv")
	rebuild := pflag.Bool("rebuild", true, "recalcula as tabelas derivadas após a carga")
	pflag.Parse()

	log.Setup(cfg.App.LogLevel, cfg.App.Env)
	logrus.Info("Iniciando carga dos dados brutos...")
	startTime := time.Now()

	ctx := context.Background()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	if err := postgres.RunMigrations(conn); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar as migrações")
	}

	store := csvstore.NewStore(config.Data{RawDir: *rawDir})

	accounts, err := store.LoadAccounts()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao ler as contas")
	}

	subscriptions, err := store.LoadSubscriptions()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao ler as assinaturas")
	}

	subscriptions, generated := assignSubscriptionIDs(subscriptions)

	customerRepo := repository.NewCustomerRepository(conn)
	subscriptionRepo := repository.NewSubscriptionRepository(conn)

	if err := customerRepo.UpsertMany(ctx, deriving.BuildCustomers(accounts)); err != nil {
		logrus.WithError(err).Fatal("Erro ao gravar os clientes")
	}

	if err := subscriptionRepo.UpsertMany(ctx, subscriptions); err != nil {
		logrus.WithError(err).Fatal("Erro ao gravar as assinaturas")
	}

	logrus.WithFields(logrus.Fields{
		"customers":     len(accounts),
		"subscriptions": len(subscriptions),
		"generated_ids": generated,
		"duration":      time.Since(startTime).String(),
	}).Info("Carga concluída")

	if !*rebuild {
		return
	}

	rebuildService := scheduler.NewMetricsRebuildService(
		subscriptionRepo,
		customerRepo,
		repository.NewCustomerMonthMRRRepository(conn),
		repository.NewRevenueEventRepository(conn),
		repository.NewPortfolioMetricsRepository(conn),
		deriving.NewEngine(cfg.MetricsRebuild.MaxConcurrentJobs),
		nil,
		cfg,
	)

	run, err := rebuildService.Rebuild(ctx, scheduler.TriggerManual)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao recalcular as métricas")
	}

	logrus.WithFields(logrus.Fields{
		"run_id": run.RunID,
		"status": run.Status,
		"months": run.Months,
	}).Info("Métricas recalculadas")
}

// subscriptionNamespace isola os IDs derivados das assinaturas de outros UUIDs v5
var subscriptionNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("saas-metrics/subscriptions"))

// assignSubscriptionIDs deriva IDs para as assinaturas que chegaram sem subscription_id.
// O ID vem do conteúdo da linha e da ocorrência dela no arquivo, então recarregar o mesmo CSV
// produz os mesmos IDs e o upsert não duplica linhas.
func assignSubscriptionIDs(subscriptions []domain.Subscription) ([]domain.Subscription, int) {
	result := make([]domain.Subscription, len(subscriptions))
	occurrences := make(map[string]int)
	generated := 0

	for i, subscription := range subscriptions {
		if subscription.ID == "" {
			key := subscriptionKey(subscription)
			occurrences[key]++
			name := fmt.Sprintf("%s|%d", key, occurrences[key])
			subscription.ID = uuid.NewSHA1(subscriptionNamespace, []byte(name)).String()
			generated++
		}
		result[i] = subscription
	}

	return result, generated
}

func subscriptionKey(subscription domain.Subscription) string {
	return strings.Join([]string{
		subscription.CustomerID,
		utils.FormatDate(&subscription.StartDate),
		utils.FormatDate(subscription.EndDate),
		subscription.MRRAmount.String(),
	}, "|")
}
