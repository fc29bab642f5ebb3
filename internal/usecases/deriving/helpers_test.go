package deriving

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

func month(year int, m time.Month) domain.Month {
	return domain.NewMonth(year, m)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func subscription(customerID string, start time.Time, end *time.Time, amount string) domain.Subscription {
	return domain.Subscription{
		CustomerID: customerID,
		StartDate:  start,
		EndDate:    end,
		MRRAmount:  dec(amount),
	}
}

func mrrRow(customerID string, m domain.Month, amount string) domain.CustomerMonthMRR {
	return domain.CustomerMonthMRR{CustomerID: customerID, Month: m, MRR: dec(amount)}
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, dec(expected).Equal(actual), "esperado %s, obtido %s %v", expected, actual.String(), msgAndArgs)
}

// portfolioFixture monta uma carteira pequena com todos os tipos de evento:
//
//	A: 2024-01-01 em aberto, 100
//	B: 2024-01-01 -> 2024-04-01, 50
//	C: 2024-02-01 em aberto, 30 + 2024-03-01 -> 2024-04-01, 20
func portfolioFixture() []domain.Subscription {
	return []domain.Subscription{
		subscription("A", date(2024, 1, 1), nil, "100"),
		subscription("B", date(2024, 1, 1), datePtr(2024, 4, 1), "50"),
		subscription("C", date(2024, 2, 1), nil, "30"),
		subscription("C", date(2024, 3, 1), datePtr(2024, 4, 1), "20"),
	}
}
