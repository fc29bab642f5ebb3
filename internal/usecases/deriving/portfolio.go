package deriving

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

// mrrComponents acumula os deltas de um mês por tipo de evento
type mrrComponents struct {
	newMRR         decimal.Decimal
	expansionMRR   decimal.Decimal
	contractionMRR decimal.Decimal
	churnMRR       decimal.Decimal
}

func newMRRComponents() mrrComponents {
	return mrrComponents{
		newMRR:         decimal.Zero,
		expansionMRR:   decimal.Zero,
		contractionMRR: decimal.Zero,
		churnMRR:       decimal.Zero,
	}
}

func (c *mrrComponents) add(event domain.RevenueEvent) {
	switch event.EventType {
	case domain.EventTypeNew:
		c.newMRR = c.newMRR.Add(event.MRRDelta)
	case domain.EventTypeExpansion:
		c.expansionMRR = c.expansionMRR.Add(event.MRRDelta)
	case domain.EventTypeContraction:
		c.contractionMRR = c.contractionMRR.Add(event.MRRDelta)
	case domain.EventTypeChurn:
		c.churnMRR = c.churnMRR.Add(event.MRRDelta)
	}
}

func (c mrrComponents) netNew() decimal.Decimal {
	return c.newMRR.Add(c.expansionMRR).Add(c.contractionMRR).Add(c.churnMRR)
}

// RevenueChurnRate calcula |churn| / MRR do mês anterior; denominador <= 0 resulta em 0
func RevenueChurnRate(churnMRR, previousMRRTotal decimal.Decimal) float64 {
	if previousMRRTotal.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	return churnMRR.Abs().Div(previousMRRTotal).InexactFloat64()
}

// BuildPortfolioMetrics agrega a linha do tempo e os eventos em uma linha por mês do eixo global.
// Meses sem eventos têm componentes zerados; eventos fora do eixo são ignorados.
func BuildPortfolioMetrics(rows []domain.CustomerMonthMRR, events []domain.RevenueEvent) []domain.MonthlyPortfolioMetrics {
	axis := BuildMonthAxis(rows)
	if len(axis) == 0 {
		return []domain.MonthlyPortfolioMetrics{}
	}

	index := axisIndex(axis)

	totals := make([]decimal.Decimal, len(axis))
	activeCustomers := make([]int, len(axis))
	for i := range totals {
		totals[i] = decimal.Zero
	}

	for _, series := range Densify(rows, axis) {
		for i, mrr := range series.Values {
			totals[i] = totals[i].Add(mrr)
			if mrr.IsPositive() {
				activeCustomers[i]++
			}
		}
	}

	components := make([]mrrComponents, len(axis))
	for i := range components {
		components[i] = newMRRComponents()
	}

	ignored := 0
	for _, event := range events {
		pos, ok := index[event.EventMonth]
		if !ok {
			ignored++
			continue
		}
		components[pos].add(event)
	}

	if ignored > 0 {
		logrus.WithField("ignored_events", ignored).Warn("Eventos com mês fora do eixo global ignorados na agregação")
	}

	metrics := make([]domain.MonthlyPortfolioMetrics, 0, len(axis))
	for i, month := range axis {
		previousTotal := decimal.Zero
		if i > 0 {
			previousTotal = totals[i-1]
		}

		c := components[i]
		metrics = append(metrics, domain.MonthlyPortfolioMetrics{
			Month:            month,
			MRRTotal:         totals[i],
			NewMRR:           c.newMRR,
			ExpansionMRR:     c.expansionMRR,
			ContractionMRR:   c.contractionMRR,
			ChurnMRR:         c.churnMRR,
			NetNewMRR:        c.netNew(),
			ActiveCustomers:  activeCustomers[i],
			RevenueChurnRate: RevenueChurnRate(c.churnMRR, previousTotal),
		})
	}

	return metrics
}

// LatestMetrics retorna as métricas do último mês do eixo
func LatestMetrics(metrics []domain.MonthlyPortfolioMetrics) (domain.MonthlyPortfolioMetrics, error) {
	if len(metrics) == 0 {
		return domain.MonthlyPortfolioMetrics{}, domain.NewEmptyDatasetError("latest month metrics")
	}

	latest := metrics[0]
	for _, m := range metrics[1:] {
		if m.Month.After(latest.Month) {
			latest = m
		}
	}
	return latest, nil
}

// LatestMonth retorna o último mês presente na linha do tempo
func LatestMonth(rows []domain.CustomerMonthMRR) (domain.Month, error) {
	if len(rows) == 0 {
		return domain.Month{}, domain.NewEmptyDatasetError("latest month")
	}

	latest := rows[0].Month
	for _, row := range rows[1:] {
		if row.Month.After(latest) {
			latest = row.Month
		}
	}
	return latest, nil
}
