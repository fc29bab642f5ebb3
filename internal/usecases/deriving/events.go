package deriving

import (
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

// classification é o acumulador da dobra sobre a série de um cliente
type classification struct {
	prev   decimal.Decimal
	events []domain.RevenueEvent
}

// classify determina o tipo de evento para a transição prev -> current.
// Combinações fora da tabela não geram evento.
func classify(prev, current decimal.Decimal) (domain.RevenueEventType, bool) {
	delta := current.Sub(prev)

	switch {
	case prev.IsZero() && current.IsPositive():
		return domain.EventTypeNew, true
	case prev.IsPositive() && current.IsZero():
		return domain.EventTypeChurn, true
	case prev.IsPositive() && current.IsPositive() && delta.IsPositive():
		return domain.EventTypeExpansion, true
	case prev.IsPositive() && current.IsPositive() && delta.IsNegative():
		return domain.EventTypeContraction, true
	}

	return "", false
}

// step avança a dobra em um mês do eixo, emitindo um evento quando o MRR muda
func step(acc classification, customerID string, month domain.Month, current decimal.Decimal) classification {
	if current.Equal(acc.prev) {
		return acc
	}

	eventType, ok := classify(acc.prev, current)
	if ok {
		acc.events = append(acc.events, domain.RevenueEvent{
			EventID:       domain.NewEventID(customerID, month),
			CustomerID:    customerID,
			EventMonth:    month,
			EventDate:     month.LastDay(),
			EventType:     eventType,
			MRRDelta:      current.Sub(acc.prev),
			MRRAfterEvent: current,
		})
	}

	acc.prev = current
	return acc
}

// classifyCustomer dobra a série densa de um cliente a partir do MRR zero
func classifyCustomer(axis []domain.Month, series CustomerSeries) []domain.RevenueEvent {
	acc := classification{prev: decimal.Zero}
	for i, month := range axis {
		acc = step(acc, series.CustomerID, month, series.Values[i])
	}
	return acc.events
}

// EventClassifier classifica os eventos de receita de cada cliente em paralelo
type EventClassifier struct {
	maxConcurrentJobs int
}

// NewEventClassifier cria um classificador; valores menores que 1 usam um único worker
func NewEventClassifier(maxConcurrentJobs int) *EventClassifier {
	if maxConcurrentJobs < 1 {
		maxConcurrentJobs = 1
	}
	return &EventClassifier{maxConcurrentJobs: maxConcurrentJobs}
}

// Classify percorre o eixo global para cada cliente e emite os eventos de receita.
// A saída vem ordenada por cliente e mês, independente da ordem de execução dos workers.
func (c *EventClassifier) Classify(rows []domain.CustomerMonthMRR) []domain.RevenueEvent {
	axis := BuildMonthAxis(rows)
	series := Densify(rows, axis)

	results := make([][]domain.RevenueEvent, len(series))

	// Canal para controlar o número de workers concorrentes
	semaphore := make(chan struct{}, c.maxConcurrentJobs)
	var wg sync.WaitGroup

	for i, customerSeries := range series {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(pos int, s CustomerSeries) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			results[pos] = classifyCustomer(axis, s)
		}(i, customerSeries)
	}

	wg.Wait()

	total := 0
	for _, events := range results {
		total += len(events)
	}

	events := make([]domain.RevenueEvent, 0, total)
	for _, customerEvents := range results {
		events = append(events, customerEvents...)
	}

	logrus.WithFields(logrus.Fields{
		"customers": len(series),
		"months":    len(axis),
		"events":    len(events),
	}).Debug("Eventos de receita classificados")

	return events
}

// BuildRevenueEvents classifica os eventos com um único worker
func BuildRevenueEvents(rows []domain.CustomerMonthMRR) []domain.RevenueEvent {
	return NewEventClassifier(1).Classify(rows)
}
