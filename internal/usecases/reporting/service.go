// Package reporting expõe a leitura das métricas derivadas já persistidas.
package reporting

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vfg2006/saas-metrics-api/infrastructure/repository"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/deriving"
)

// Reporter define as consultas de leitura da API
type Reporter interface {
	// GetPortfolioMetrics retorna os últimos window meses; window <= 0 retorna todo o histórico
	GetPortfolioMetrics(ctx context.Context, window int) ([]domain.MonthlyPortfolioMetrics, error)
	GetLatestMetrics(ctx context.Context) (*domain.MonthlyPortfolioMetrics, error)
	GetAvailablePeriods(ctx context.Context) (*domain.AvailablePeriods, error)
	GetCustomerTimeline(ctx context.Context, customerID string) ([]domain.CustomerMonthMRR, error)
	GetCustomerEvents(ctx context.Context, customerID string) ([]domain.RevenueEvent, error)
	ListCustomers(ctx context.Context, activeOnly bool) ([]domain.Customer, error)
}

type Service struct {
	customerRepository         repository.CustomerRepository
	customerMonthMRRRepository repository.CustomerMonthMRRRepository
	revenueEventRepository     repository.RevenueEventRepository
	portfolioMetricsRepository repository.PortfolioMetricsRepository
}

func NewService(
	customerRepository repository.CustomerRepository,
	customerMonthMRRRepository repository.CustomerMonthMRRRepository,
	revenueEventRepository repository.RevenueEventRepository,
	portfolioMetricsRepository repository.PortfolioMetricsRepository,
) *Service {
	return &Service{
		customerRepository:         customerRepository,
		customerMonthMRRRepository: customerMonthMRRRepository,
		revenueEventRepository:     revenueEventRepository,
		portfolioMetricsRepository: portfolioMetricsRepository,
	}
}

func (s *Service) GetPortfolioMetrics(ctx context.Context, window int) ([]domain.MonthlyPortfolioMetrics, error) {
	metrics, err := s.portfolioMetricsRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar métricas da carteira: %w", err)
	}

	return LastMonths(metrics, window), nil
}

func (s *Service) GetLatestMetrics(ctx context.Context) (*domain.MonthlyPortfolioMetrics, error) {
	metrics, err := s.portfolioMetricsRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar métricas da carteira: %w", err)
	}

	latest, err := deriving.LatestMetrics(metrics)
	if err != nil {
		return nil, err
	}

	return &latest, nil
}

func (s *Service) GetAvailablePeriods(ctx context.Context) (*domain.AvailablePeriods, error) {
	periods, err := s.portfolioMetricsRepository.GetAllPeriods(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar períodos disponíveis: %w", err)
	}

	periodMap := make(map[string]bool)
	yearMap := make(map[string]bool)
	monthMap := make(map[string]bool)

	for _, period := range periods {
		period = strings.TrimSpace(period)
		periodMap[period] = true

		// Formato yyyy-mm
		if len(period) == 7 {
			yearMap[period[:4]] = true
			monthMap[period[5:]] = true
		}
	}

	result := &domain.AvailablePeriods{
		Periods: sortedKeys(periodMap),
		Years:   sortedKeys(yearMap),
		Months:  sortedKeys(monthMap),
	}

	return result, nil
}

func (s *Service) GetCustomerTimeline(ctx context.Context, customerID string) ([]domain.CustomerMonthMRR, error) {
	if err := s.ensureCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	rows, err := s.customerMonthMRRRepository.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar linha do tempo do cliente %s: %w", customerID, err)
	}

	return rows, nil
}

func (s *Service) GetCustomerEvents(ctx context.Context, customerID string) ([]domain.RevenueEvent, error) {
	if err := s.ensureCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	events, err := s.revenueEventRepository.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar eventos do cliente %s: %w", customerID, err)
	}

	return events, nil
}

func (s *Service) ListCustomers(ctx context.Context, activeOnly bool) ([]domain.Customer, error) {
	customers, err := s.customerRepository.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar clientes: %w", err)
	}

	return customers, nil
}

func (s *Service) ensureCustomer(ctx context.Context, customerID string) error {
	if strings.TrimSpace(customerID) == "" {
		return domain.NewDataValidationError(domain.ErrMissingCustomerID, "customer_id", 0, "", "")
	}

	customer, err := s.customerRepository.GetByID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("erro ao buscar cliente %s: %w", customerID, err)
	}
	if customer == nil {
		return ErrCustomerNotFound
	}

	return nil
}

// LastMonths retorna as últimas window linhas em ordem cronológica; window <= 0 retorna tudo
func LastMonths(metrics []domain.MonthlyPortfolioMetrics, window int) []domain.MonthlyPortfolioMetrics {
	sorted := make([]domain.MonthlyPortfolioMetrics, len(metrics))
	copy(sorted, metrics)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Month.Before(sorted[j].Month)
	})

	if window <= 0 || window >= len(sorted) {
		return sorted
	}

	return sorted[len(sorted)-window:]
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
