package deriving

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		prev     string
		current  string
		expected domain.RevenueEventType
		ok       bool
	}{
		{name: "Zero para positivo é new", prev: "0", current: "100", expected: domain.EventTypeNew, ok: true},
		{name: "Positivo para zero é churn", prev: "100", current: "0", expected: domain.EventTypeChurn, ok: true},
		{name: "Aumento é expansion", prev: "100", current: "150", expected: domain.EventTypeExpansion, ok: true},
		{name: "Redução é contraction", prev: "150", current: "90", expected: domain.EventTypeContraction, ok: true},
		{name: "Sem variação não gera evento", prev: "90", current: "90", ok: false},
		{name: "Zero para zero não gera evento", prev: "0", current: "0", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eventType, ok := classify(dec(tt.prev), dec(tt.current))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, eventType)
		})
	}
}

func TestBuildRevenueEvents_FullLifecycle(t *testing.T) {
	// X percorre todos os tipos; Y só existe para estender o eixo até abril
	rows := []domain.CustomerMonthMRR{
		mrrRow("X", month(2024, time.January), "100"),
		mrrRow("X", month(2024, time.February), "150"),
		mrrRow("X", month(2024, time.March), "90"),
		mrrRow("Y", month(2024, time.April), "10"),
	}

	events := BuildRevenueEvents(rows)

	var xEvents []domain.RevenueEvent
	for _, e := range events {
		if e.CustomerID == "X" {
			xEvents = append(xEvents, e)
		}
	}

	expected := []struct {
		month     domain.Month
		eventType domain.RevenueEventType
		delta     string
		after     string
	}{
		{month(2024, time.January), domain.EventTypeNew, "100", "100"},
		{month(2024, time.February), domain.EventTypeExpansion, "50", "150"},
		{month(2024, time.March), domain.EventTypeContraction, "-60", "90"},
		{month(2024, time.April), domain.EventTypeChurn, "-90", "0"},
	}

	require.Len(t, xEvents, len(expected))
	for i, exp := range expected {
		assert.Equal(t, exp.month, xEvents[i].EventMonth)
		assert.Equal(t, exp.eventType, xEvents[i].EventType)
		assertDecimal(t, exp.delta, xEvents[i].MRRDelta, exp.month)
		assertDecimal(t, exp.after, xEvents[i].MRRAfterEvent, exp.month)
		assert.Equal(t, fmt.Sprintf("X-%s", exp.month.String()), xEvents[i].EventID)
	}
}

func TestBuildRevenueEvents_EndedSubscription(t *testing.T) {
	rows, err := BuildCustomerMonthMRR([]domain.Subscription{
		subscription("C1", date(2024, 1, 1), nil, "100"),
		subscription("C2", date(2024, 1, 1), datePtr(2024, 4, 1), "50"),
	})
	require.NoError(t, err)

	events := BuildRevenueEvents(rows)

	var c2 []domain.RevenueEvent
	for _, e := range events {
		if e.CustomerID == "C2" {
			c2 = append(c2, e)
		}
	}

	require.Len(t, c2, 2)
	assert.Equal(t, domain.EventTypeNew, c2[0].EventType)
	assert.Equal(t, month(2024, time.January), c2[0].EventMonth)
	assertDecimal(t, "50", c2[0].MRRDelta)

	assert.Equal(t, domain.EventTypeChurn, c2[1].EventType)
	assert.Equal(t, month(2024, time.April), c2[1].EventMonth)
	assertDecimal(t, "-50", c2[1].MRRDelta)
	assertDecimal(t, "0", c2[1].MRRAfterEvent)
}

func TestBuildRevenueEvents_Reactivation(t *testing.T) {
	rows := []domain.CustomerMonthMRR{
		mrrRow("R", month(2024, time.January), "40"),
		mrrRow("Z", month(2024, time.February), "1"),
		mrrRow("Z", month(2024, time.March), "1"),
		mrrRow("R", month(2024, time.April), "60"),
	}

	events := BuildRevenueEvents(rows)

	var types []domain.RevenueEventType
	for _, e := range events {
		if e.CustomerID == "R" {
			types = append(types, e.EventType)
		}
	}

	// Meses silenciosos após o churn não geram eventos
	assert.Equal(t, []domain.RevenueEventType{
		domain.EventTypeNew,
		domain.EventTypeChurn,
		domain.EventTypeNew,
	}, types)
}

func TestBuildRevenueEvents_EventDateIsMonthEnd(t *testing.T) {
	events := BuildRevenueEvents([]domain.CustomerMonthMRR{
		mrrRow("L", month(2024, time.February), "10"),
	})

	require.Len(t, events, 1)
	assert.Equal(t, date(2024, 2, 29), events[0].EventDate)
}

func TestBuildRevenueEvents_Properties(t *testing.T) {
	rows, err := BuildCustomerMonthMRR(portfolioFixture())
	require.NoError(t, err)

	events := BuildRevenueEvents(rows)
	require.NotEmpty(t, events)

	t.Run("No máximo um evento por cliente e mês", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, e := range events {
			assert.False(t, seen[e.EventID], "evento duplicado %s", e.EventID)
			seen[e.EventID] = true
		}
	})

	t.Run("Reproduzir os deltas reconstrói a série densa", func(t *testing.T) {
		axis := BuildMonthAxis(rows)
		series := Densify(rows, axis)

		byCustomer := make(map[string]map[domain.Month]domain.RevenueEvent)
		for _, e := range events {
			if byCustomer[e.CustomerID] == nil {
				byCustomer[e.CustomerID] = make(map[domain.Month]domain.RevenueEvent)
			}
			byCustomer[e.CustomerID][e.EventMonth] = e
		}

		for _, s := range series {
			running := decimal.Zero
			for i, m := range axis {
				if e, ok := byCustomer[s.CustomerID][m]; ok {
					running = running.Add(e.MRRDelta)
					assertDecimal(t, running.String(), e.MRRAfterEvent, s.CustomerID, m)
				}
				assertDecimal(t, s.Values[i].String(), running, s.CustomerID, m)
			}
		}
	})
}

func TestEventClassifier_ConcurrencyIsDeterministic(t *testing.T) {
	var rows []domain.CustomerMonthMRR
	for c := 0; c < 40; c++ {
		customerID := fmt.Sprintf("cust-%02d", c)
		for m := 1; m <= 12; m++ {
			if (c+m)%5 == 0 {
				continue
			}
			amount := decimal.NewFromInt(int64(10 * ((c + m) % 7)))
			rows = append(rows, domain.CustomerMonthMRR{
				CustomerID: customerID,
				Month:      month(2024, time.Month(m)),
				MRR:        amount,
			})
		}
	}

	sequential := NewEventClassifier(1).Classify(rows)
	parallel := NewEventClassifier(8).Classify(rows)

	require.Len(t, parallel, len(sequential))
	for i := range sequential {
		assert.Equal(t, sequential[i].EventID, parallel[i].EventID)
		assert.Equal(t, sequential[i].EventType, parallel[i].EventType)
		assertDecimal(t, sequential[i].MRRDelta.String(), parallel[i].MRRDelta)
	}
}

func TestNewEventClassifier_MinimumOneWorker(t *testing.T) {
	assert.Equal(t, 1, NewEventClassifier(0).maxConcurrentJobs)
	assert.Equal(t, 1, NewEventClassifier(-3).maxConcurrentJobs)
	assert.Equal(t, 4, NewEventClassifier(4).maxConcurrentJobs)
}

func TestBuildRevenueEvents_EmptyInput(t *testing.T) {
	events := BuildRevenueEvents(nil)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}
