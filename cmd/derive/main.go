// Comando derive executa o pipeline completo sobre os CSVs brutos e grava os CSVs derivados.
package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/vfg2006/saas-metrics-api/infrastructure/csvstore"
	"github.com/vfg2006/saas-metrics-api/internal/config"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/deriving"
	"github.com/vfg2006/saas-metrics-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	rawDir := pflag.String("raw-dir", cfg.Data.RawDir, "diretório com accounts.csv e subscriptions.csv")
	processedDir := pflag.String("processed-dir", cfg.Data.ProcessedDir, "diretório de saída dos CSVs derivados")
	workers := pflag.Int("workers", cfg.MetricsRebuild.MaxConcurrentJobs, "limite de workers da classificação de eventos")
	pflag.Parse()

	log.Setup(cfg.App.LogLevel, cfg.App.Env)

	store := csvstore.NewStore(config.Data{RawDir: *rawDir, ProcessedDir: *processedDir})

	if err := run(store, deriving.NewEngine(*workers)); err != nil {
		logrus.WithError(err).Fatal("Erro ao derivar as métricas")
	}

	logrus.WithField("processed_dir", *processedDir).Info("Métricas derivadas gravadas com sucesso")
}

func run(store *csvstore.Store, deriver deriving.Deriver) error {
	accounts, err := store.LoadAccounts()
	if err != nil {
		return err
	}

	subscriptions, err := store.LoadSubscriptions()
	if err != nil {
		return err
	}

	result, err := deriver.Run(subscriptions, deriving.BuildCustomers(accounts))
	if err != nil {
		return err
	}

	return store.SaveDerived(&csvstore.Derived{
		Customers: result.Customers,
		Timeline:  result.Timeline,
		Events:    result.Events,
		Metrics:   result.Metrics,
	})
}
