package csvstore

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/saas-metrics-api/internal/config"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

// Nomes dos arquivos nos diretórios de dados
const (
	AccountsFile         = "accounts.csv"
	SubscriptionsFile    = "subscriptions.csv"
	CustomersFile        = "customers.csv"
	CustomerMonthMRRFile = "customer_month_mrr.csv"
	RevenueEventsFile    = "revenue_events.csv"
	MonthlyMetricsFile   = "monthly_metrics.csv"
)

// Store lê os arquivos brutos de RawDir e grava os derivados em ProcessedDir
type Store struct {
	rawDir       string
	processedDir string
}

func NewStore(cfg config.Data) *Store {
	return &Store{
		rawDir:       cfg.RawDir,
		processedDir: cfg.ProcessedDir,
	}
}

// Derived agrupa os conjuntos gravados por SaveDerived
type Derived struct {
	Customers []domain.Customer
	Timeline  []domain.CustomerMonthMRR
	Events    []domain.RevenueEvent
	Metrics   []domain.MonthlyPortfolioMetrics
}

func (s *Store) LoadAccounts() ([]domain.Account, error) {
	var accounts []domain.Account
	err := s.read(filepath.Join(s.rawDir, AccountsFile), func(r io.Reader) (err error) {
		accounts, err = ReadAccounts(r)
		return err
	})
	return accounts, err
}

func (s *Store) LoadSubscriptions() ([]domain.Subscription, error) {
	var subscriptions []domain.Subscription
	err := s.read(filepath.Join(s.rawDir, SubscriptionsFile), func(r io.Reader) (err error) {
		subscriptions, err = ReadSubscriptions(r)
		return err
	})
	return subscriptions, err
}

// LoadDerived lê de volta os conjuntos gravados por SaveDerived
func (s *Store) LoadDerived() (*Derived, error) {
	derived := &Derived{}

	err := s.read(filepath.Join(s.processedDir, CustomersFile), func(r io.Reader) (err error) {
		derived.Customers, err = ReadCustomers(r)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = s.read(filepath.Join(s.processedDir, CustomerMonthMRRFile), func(r io.Reader) (err error) {
		derived.Timeline, err = ReadCustomerMonthMRR(r)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = s.read(filepath.Join(s.processedDir, RevenueEventsFile), func(r io.Reader) (err error) {
		derived.Events, err = ReadRevenueEvents(r)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = s.read(filepath.Join(s.processedDir, MonthlyMetricsFile), func(r io.Reader) (err error) {
		derived.Metrics, err = ReadMonthlyMetrics(r)
		return err
	})
	if err != nil {
		return nil, err
	}

	return derived, nil
}

// SaveDerived grava os quatro CSVs derivados, sobrescrevendo os anteriores
func (s *Store) SaveDerived(derived *Derived) error {
	if err := os.MkdirAll(s.processedDir, 0o755); err != nil {
		return errors.Wrapf(err, "erro ao criar diretório %s", s.processedDir)
	}

	writes := []struct {
		file  string
		write func(io.Writer) error
	}{
		{CustomersFile, func(w io.Writer) error { return WriteCustomers(w, derived.Customers) }},
		{CustomerMonthMRRFile, func(w io.Writer) error { return WriteCustomerMonthMRR(w, derived.Timeline) }},
		{RevenueEventsFile, func(w io.Writer) error { return WriteRevenueEvents(w, derived.Events) }},
		{MonthlyMetricsFile, func(w io.Writer) error { return WriteMonthlyMetrics(w, derived.Metrics) }},
	}

	for _, item := range writes {
		path := filepath.Join(s.processedDir, item.file)
		if err := writeFile(path, item.write); err != nil {
			return err
		}

		logrus.WithField("path", path).Debug("Arquivo derivado gravado")
	}

	return nil
}

func (s *Store) read(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "erro ao abrir %s", path)
	}
	defer f.Close()

	if err := fn(f); err != nil {
		return errors.WithMessage(err, path)
	}

	return nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "erro ao criar %s", path)
	}

	if err := fn(f); err != nil {
		f.Close()
		return err
	}

	return errors.Wrapf(f.Close(), "erro ao fechar %s", path)
}
