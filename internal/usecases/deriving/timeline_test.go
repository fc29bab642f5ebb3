package deriving

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

func TestBuildCustomerMonthMRR(t *testing.T) {
	tests := []struct {
		name          string
		subscriptions []domain.Subscription
		expected      []domain.CustomerMonthMRR
	}{
		{
			name: "Assinatura em aberto vai até o horizonte dos dados",
			subscriptions: []domain.Subscription{
				subscription("C1", date(2024, 1, 1), nil, "100"),
				subscription("C2", date(2024, 1, 1), datePtr(2024, 4, 1), "50"),
			},
			expected: []domain.CustomerMonthMRR{
				mrrRow("C1", month(2024, time.January), "100"),
				mrrRow("C1", month(2024, time.February), "100"),
				mrrRow("C1", month(2024, time.March), "100"),
				mrrRow("C1", month(2024, time.April), "100"),
				mrrRow("C2", month(2024, time.January), "50"),
				mrrRow("C2", month(2024, time.February), "50"),
				mrrRow("C2", month(2024, time.March), "50"),
			},
		},
		{
			name: "Término no meio do mês mantém o mês ativo",
			subscriptions: []domain.Subscription{
				subscription("C1", date(2024, 1, 20), datePtr(2024, 2, 15), "10"),
			},
			expected: []domain.CustomerMonthMRR{
				mrrRow("C1", month(2024, time.January), "10"),
				mrrRow("C1", month(2024, time.February), "10"),
			},
		},
		{
			name: "Assinaturas concorrentes são somadas no mês",
			subscriptions: []domain.Subscription{
				subscription("C3", date(2024, 2, 1), datePtr(2024, 3, 1), "30"),
				subscription("C3", date(2024, 2, 10), datePtr(2024, 3, 1), "20"),
			},
			expected: []domain.CustomerMonthMRR{
				mrrRow("C3", month(2024, time.February), "50"),
			},
		},
		{
			name: "Assinatura que termina no dia do início não gera meses",
			subscriptions: []domain.Subscription{
				subscription("C4", date(2024, 3, 5), datePtr(2024, 3, 5), "80"),
				subscription("C5", date(2024, 3, 1), datePtr(2024, 4, 1), "10"),
			},
			expected: []domain.CustomerMonthMRR{
				mrrRow("C5", month(2024, time.March), "10"),
			},
		},
		{
			name: "Assinatura atravessando a virada de ano",
			subscriptions: []domain.Subscription{
				subscription("C6", date(2023, 11, 15), datePtr(2024, 2, 1), "25.50"),
			},
			expected: []domain.CustomerMonthMRR{
				mrrRow("C6", month(2023, time.November), "25.50"),
				mrrRow("C6", month(2023, time.December), "25.50"),
				mrrRow("C6", month(2024, time.January), "25.50"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := BuildCustomerMonthMRR(tt.subscriptions)
			require.NoError(t, err)
			require.Len(t, rows, len(tt.expected))

			for i, expected := range tt.expected {
				assert.Equal(t, expected.CustomerID, rows[i].CustomerID)
				assert.Equal(t, expected.Month, rows[i].Month)
				assertDecimal(t, expected.MRR.String(), rows[i].MRR, expected.CustomerID, expected.Month)
			}
		})
	}
}

func TestBuildCustomerMonthMRR_EmptyInput(t *testing.T) {
	rows, err := BuildCustomerMonthMRR(nil)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestBuildCustomerMonthMRR_ValidationErrors(t *testing.T) {
	tests := []struct {
		name          string
		subscriptions []domain.Subscription
		sentinel      error
		field         string
		row           int
	}{
		{
			name: "MRR negativo é rejeitado",
			subscriptions: []domain.Subscription{
				subscription("C1", date(2024, 1, 1), nil, "10"),
				subscription("C2", date(2024, 1, 1), nil, "-5"),
			},
			sentinel: domain.ErrNegativeMRR,
			field:    "mrr_amount",
			row:      2,
		},
		{
			name: "Cliente ausente é rejeitado",
			subscriptions: []domain.Subscription{
				subscription("  ", date(2024, 1, 1), nil, "10"),
			},
			sentinel: domain.ErrMissingCustomerID,
			field:    "customer_id",
			row:      1,
		},
		{
			name: "Data de início ausente é rejeitada",
			subscriptions: []domain.Subscription{
				subscription("C1", time.Time{}, nil, "10"),
			},
			sentinel: domain.ErrInvalidDate,
			field:    "start_date",
			row:      1,
		},
		{
			name: "Término anterior ao início é rejeitado",
			subscriptions: []domain.Subscription{
				subscription("C1", date(2024, 3, 1), datePtr(2024, 2, 1), "10"),
			},
			sentinel: domain.ErrEndBeforeStart,
			field:    "end_date",
			row:      1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := BuildCustomerMonthMRR(tt.subscriptions)
			require.Error(t, err)
			assert.Nil(t, rows)

			assert.True(t, errors.Is(err, domain.ErrDataValidation))
			assert.True(t, errors.Is(err, tt.sentinel))

			var validationErr *domain.DataValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Equal(t, tt.row, validationErr.Row)
		})
	}
}

func TestDatasetHorizon(t *testing.T) {
	t.Run("Sem términos usa o maior início", func(t *testing.T) {
		horizon := DatasetHorizon([]domain.Subscription{
			subscription("C1", date(2024, 1, 1), nil, "10"),
			subscription("C2", date(2024, 6, 12), nil, "10"),
		})
		assert.Equal(t, date(2024, 6, 12), horizon)
	})

	t.Run("Término posterior a todos os inícios define o horizonte", func(t *testing.T) {
		horizon := DatasetHorizon([]domain.Subscription{
			subscription("C1", date(2024, 1, 1), datePtr(2024, 9, 1), "10"),
			subscription("C2", date(2024, 6, 12), nil, "10"),
		})
		assert.Equal(t, date(2024, 9, 1), horizon)
	})
}
