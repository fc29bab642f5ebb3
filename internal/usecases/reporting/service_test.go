package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/saas-metrics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	customers *mocks.MockCustomerRepository
	timeline  *mocks.MockCustomerMonthMRRRepository
	events    *mocks.MockRevenueEventRepository
	portfolio *mocks.MockPortfolioMetricsRepository
	service   *Service
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		customers: mocks.NewMockCustomerRepository(ctrl),
		timeline:  mocks.NewMockCustomerMonthMRRRepository(ctrl),
		events:    mocks.NewMockRevenueEventRepository(ctrl),
		portfolio: mocks.NewMockPortfolioMetricsRepository(ctrl),
	}
	f.service = NewService(f.customers, f.timeline, f.events, f.portfolio)
	return f
}

func metricsRow(year int, m time.Month, total string) domain.MonthlyPortfolioMetrics {
	return domain.MonthlyPortfolioMetrics{
		Month:    domain.NewMonth(year, m),
		MRRTotal: decimal.RequireFromString(total),
	}
}

func TestService_GetPortfolioMetrics(t *testing.T) {
	history := []domain.MonthlyPortfolioMetrics{
		metricsRow(2024, time.March, "200"),
		metricsRow(2024, time.January, "150"),
		metricsRow(2024, time.April, "130"),
		metricsRow(2024, time.February, "180"),
	}

	tests := []struct {
		name     string
		window   int
		expected []string
	}{
		{name: "Histórico completo com janela zero", window: 0, expected: []string{"2024-01", "2024-02", "2024-03", "2024-04"}},
		{name: "Janela negativa é histórico completo", window: -3, expected: []string{"2024-01", "2024-02", "2024-03", "2024-04"}},
		{name: "Últimos dois meses", window: 2, expected: []string{"2024-03", "2024-04"}},
		{name: "Janela maior que o histórico", window: 24, expected: []string{"2024-01", "2024-02", "2024-03", "2024-04"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.portfolio.EXPECT().List(gomock.Any()).Return(history, nil)

			metrics, err := f.service.GetPortfolioMetrics(context.Background(), tt.window)
			require.NoError(t, err)

			months := make([]string, 0, len(metrics))
			for _, m := range metrics {
				months = append(months, m.Month.String())
			}
			assert.Equal(t, tt.expected, months)
		})
	}
}

func TestService_GetPortfolioMetrics_RepositoryError(t *testing.T) {
	f := newFixture(t)
	dbErr := errors.New("conexão perdida")
	f.portfolio.EXPECT().List(gomock.Any()).Return(nil, dbErr)

	_, err := f.service.GetPortfolioMetrics(context.Background(), 6)
	assert.ErrorIs(t, err, dbErr)
}

func TestService_GetLatestMetrics(t *testing.T) {
	t.Run("Retorna o último mês", func(t *testing.T) {
		f := newFixture(t)
		f.portfolio.EXPECT().List(gomock.Any()).Return([]domain.MonthlyPortfolioMetrics{
			metricsRow(2024, time.April, "130"),
			metricsRow(2024, time.March, "200"),
		}, nil)

		latest, err := f.service.GetLatestMetrics(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "2024-04", latest.Month.String())
		assert.True(t, latest.MRRTotal.Equal(decimal.NewFromInt(130)))
	})

	t.Run("Sem métricas retorna dataset vazio", func(t *testing.T) {
		f := newFixture(t)
		f.portfolio.EXPECT().List(gomock.Any()).Return([]domain.MonthlyPortfolioMetrics{}, nil)

		latest, err := f.service.GetLatestMetrics(context.Background())
		assert.Nil(t, latest)
		assert.ErrorIs(t, err, domain.ErrEmptyDataset)
	})
}

func TestService_GetAvailablePeriods(t *testing.T) {
	f := newFixture(t)
	f.portfolio.EXPECT().GetAllPeriods(gomock.Any()).Return([]string{"2023-12", "2024-01", "2024-02", "2024-01"}, nil)

	periods, err := f.service.GetAvailablePeriods(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"2023-12", "2024-01", "2024-02"}, periods.Periods)
	assert.Equal(t, []string{"2023", "2024"}, periods.Years)
	assert.Equal(t, []string{"01", "02", "12"}, periods.Months)
}

func TestService_GetCustomerTimeline(t *testing.T) {
	ctx := context.Background()

	t.Run("Cliente existente", func(t *testing.T) {
		f := newFixture(t)
		rows := []domain.CustomerMonthMRR{
			{CustomerID: "C1", Month: domain.NewMonth(2024, time.January), MRR: decimal.NewFromInt(10)},
		}
		f.customers.EXPECT().GetByID(gomock.Any(), "C1").Return(&domain.Customer{CustomerID: "C1"}, nil)
		f.timeline.EXPECT().ListByCustomer(gomock.Any(), "C1").Return(rows, nil)

		result, err := f.service.GetCustomerTimeline(ctx, "C1")
		require.NoError(t, err)
		assert.Equal(t, rows, result)
	})

	t.Run("Cliente inexistente", func(t *testing.T) {
		f := newFixture(t)
		f.customers.EXPECT().GetByID(gomock.Any(), "X").Return(nil, nil)

		_, err := f.service.GetCustomerTimeline(ctx, "X")
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})

	t.Run("Id vazio é erro de validação", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.GetCustomerTimeline(ctx, " ")
		assert.ErrorIs(t, err, domain.ErrDataValidation)
		assert.ErrorIs(t, err, domain.ErrMissingCustomerID)
	})
}

func TestService_GetCustomerEvents(t *testing.T) {
	f := newFixture(t)
	events := []domain.RevenueEvent{
		{EventID: "C1-2024-01", CustomerID: "C1", EventType: domain.EventTypeNew, MRRDelta: decimal.NewFromInt(10)},
	}
	f.customers.EXPECT().GetByID(gomock.Any(), "C1").Return(&domain.Customer{CustomerID: "C1"}, nil)
	f.events.EXPECT().ListByCustomer(gomock.Any(), "C1").Return(events, nil)

	result, err := f.service.GetCustomerEvents(context.Background(), "C1")
	require.NoError(t, err)
	assert.Equal(t, events, result)
}

func TestService_ListCustomers(t *testing.T) {
	f := newFixture(t)
	f.customers.EXPECT().List(gomock.Any(), true).Return([]domain.Customer{{CustomerID: "A", IsActive: true}}, nil)

	customers, err := f.service.ListCustomers(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}
