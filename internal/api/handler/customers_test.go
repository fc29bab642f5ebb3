package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/reporting"
	reportingmocks "github.com/vfg2006/saas-metrics-api/internal/usecases/reporting/mocks"
	"github.com/vfg2006/saas-metrics-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func TestListCustomers(t *testing.T) {
	customers := []domain.Customer{
		{CustomerID: "C1", CustomerName: "Acme", IsActive: true},
	}

	tests := []struct {
		name           string
		target         string
		setupMocks     func(reporter *reportingmocks.MockReporter)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:   "Lista todos os clientes",
			target: "/v1/customers",
			setupMocks: func(reporter *reportingmocks.MockReporter) {
				reporter.EXPECT().ListCustomers(gomock.Any(), false).Return(customers, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Filtra os ativos",
			target: "/v1/customers?active=true",
			setupMocks: func(reporter *reportingmocks.MockReporter) {
				reporter.EXPECT().ListCustomers(gomock.Any(), true).Return(customers, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Filtro inválido",
			target:         "/v1/customers?active=talvez",
			setupMocks:     func(reporter *reportingmocks.MockReporter) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reporter := reportingmocks.NewMockReporter(ctrl)
			tt.setupMocks(reporter)

			rec := serve(t, Customers(reporter), http.MethodGet, tt.target, nil)

			if tt.expectedCode != "" {
				assertAPIError(t, rec, tt.expectedStatus, tt.expectedCode)
				return
			}

			require.Equal(t, tt.expectedStatus, rec.Code)
			var body []domain.Customer
			decode(t, rec, &body)
			assert.Equal(t, "C1", body[0].CustomerID)
			assert.True(t, body[0].IsActive)
		})
	}
}

func TestGetCustomerTimeline(t *testing.T) {
	t.Run("Retorna o MRR mensal do cliente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reporter := reportingmocks.NewMockReporter(ctrl)
		reporter.EXPECT().GetCustomerTimeline(gomock.Any(), "C1").Return([]domain.CustomerMonthMRR{
			{CustomerID: "C1", Month: domain.NewMonth(2024, time.January), MRR: decimal.NewFromInt(100)},
			{CustomerID: "C1", Month: domain.NewMonth(2024, time.February), MRR: decimal.NewFromInt(120)},
		}, nil)

		rec := serve(t, Customers(reporter), http.MethodGet, "/v1/customers/C1/timeline", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var body []domain.CustomerMonthMRR
		decode(t, rec, &body)
		require.Len(t, body, 2)
		assert.Equal(t, "2024-02", body[1].Month.String())
		assert.True(t, decimal.NewFromInt(120).Equal(body[1].MRR))
	})

	t.Run("Cliente desconhecido retorna 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reporter := reportingmocks.NewMockReporter(ctrl)
		reporter.EXPECT().GetCustomerTimeline(gomock.Any(), "X9").
			Return(nil, fmt.Errorf("timeline: %w", reporting.ErrCustomerNotFound))

		rec := serve(t, Customers(reporter), http.MethodGet, "/v1/customers/X9/timeline", nil)

		assertAPIError(t, rec, http.StatusNotFound, apiErrors.ErrCustomerNotFound)
	})
}

func TestGetCustomerEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := reportingmocks.NewMockReporter(ctrl)
	reporter.EXPECT().GetCustomerEvents(gomock.Any(), "C1").Return([]domain.RevenueEvent{
		{
			EventID:       domain.NewEventID("C1", domain.NewMonth(2024, time.January)),
			CustomerID:    "C1",
			EventMonth:    domain.NewMonth(2024, time.January),
			EventType:     domain.EventTypeNew,
			MRRDelta:      decimal.NewFromInt(100),
			MRRAfterEvent: decimal.NewFromInt(100),
		},
	}, nil)

	rec := serve(t, Customers(reporter), http.MethodGet, "/v1/customers/C1/events", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body []domain.RevenueEvent
	decode(t, rec, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "C1-2024-01", body[0].EventID)
	assert.Equal(t, domain.EventTypeNew, body[0].EventType)
}
