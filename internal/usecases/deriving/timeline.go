package deriving

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

type customerMonthKey struct {
	customerID string
	month      domain.Month
}

// ValidateSubscription valida um registro de assinatura. row é a posição do registro na entrada (base 1).
func ValidateSubscription(row int, s domain.Subscription) error {
	if strings.TrimSpace(s.CustomerID) == "" {
		return domain.NewDataValidationError(domain.ErrMissingCustomerID, "customer_id", row, "", "")
	}

	if s.StartDate.IsZero() {
		return domain.NewDataValidationError(domain.ErrInvalidDate, "start_date", row, s.CustomerID, "start date is required")
	}

	if s.EndDate != nil && s.EndDate.IsZero() {
		return domain.NewDataValidationError(domain.ErrInvalidDate, "end_date", row, s.CustomerID, "")
	}

	if s.MRRAmount.IsNegative() {
		return domain.NewDataValidationError(domain.ErrNegativeMRR, "mrr_amount", row, s.CustomerID, s.MRRAmount.String())
	}

	if s.EndDate != nil && truncateDay(*s.EndDate).Before(truncateDay(s.StartDate)) {
		return domain.NewDataValidationError(
			domain.ErrEndBeforeStart,
			"end_date",
			row,
			s.CustomerID,
			s.EndDate.Format(time.DateOnly)+" < "+s.StartDate.Format(time.DateOnly),
		)
	}

	return nil
}

// DatasetHorizon retorna a maior data entre todos os inícios e términos informados.
// É usada como término efetivo das assinaturas em aberto.
func DatasetHorizon(subscriptions []domain.Subscription) time.Time {
	var horizon time.Time
	for _, s := range subscriptions {
		if start := truncateDay(s.StartDate); start.After(horizon) {
			horizon = start
		}
		if s.EndDate != nil {
			if end := truncateDay(*s.EndDate); end.After(horizon) {
				horizon = end
			}
		}
	}
	return horizon
}

// effectiveEndDate é o último dia ativo: um dia antes do término, ou o horizonte se em aberto
func effectiveEndDate(s domain.Subscription, horizon time.Time) time.Time {
	if s.EndDate == nil {
		return horizon
	}
	return truncateDay(*s.EndDate).AddDate(0, 0, -1)
}

// BuildCustomerMonthMRR expande cada assinatura em uma linha por mês ativo e
// soma as contribuições por (cliente, mês). O resultado vem ordenado por cliente e mês.
func BuildCustomerMonthMRR(subscriptions []domain.Subscription) ([]domain.CustomerMonthMRR, error) {
	if len(subscriptions) == 0 {
		return []domain.CustomerMonthMRR{}, nil
	}

	for i, s := range subscriptions {
		if err := ValidateSubscription(i+1, s); err != nil {
			return nil, err
		}
	}

	horizon := DatasetHorizon(subscriptions)
	totals := make(map[customerMonthKey]decimal.Decimal)

	skipped := 0
	for _, s := range subscriptions {
		start := truncateDay(s.StartDate)
		effectiveEnd := effectiveEndDate(s, horizon)

		// Assinatura degenerada (termina no mesmo dia em que começa): nenhum mês ativo
		if effectiveEnd.Before(start) {
			skipped++
			logrus.WithFields(logrus.Fields{
				"customer_id":     s.CustomerID,
				"subscription_id": s.ID,
				"start_date":      start.Format(time.DateOnly),
				"effective_end":   effectiveEnd.Format(time.DateOnly),
			}).Debug("Assinatura sem meses ativos ignorada")
			continue
		}

		lastMonth := domain.MonthOf(effectiveEnd)
		for month := domain.MonthOf(start); !month.After(lastMonth); month = month.Next() {
			key := customerMonthKey{customerID: s.CustomerID, month: month}
			totals[key] = totals[key].Add(s.MRRAmount)
		}
	}

	rows := make([]domain.CustomerMonthMRR, 0, len(totals))
	for key, mrr := range totals {
		rows = append(rows, domain.CustomerMonthMRR{
			CustomerID: key.customerID,
			Month:      key.month,
			MRR:        mrr,
		})
	}
	sortCustomerMonthMRR(rows)

	logrus.WithFields(logrus.Fields{
		"subscriptions": len(subscriptions),
		"skipped":       skipped,
		"rows":          len(rows),
		"horizon":       horizon.Format(time.DateOnly),
	}).Debug("Linha do tempo de MRR por cliente construída")

	return rows, nil
}

func sortCustomerMonthMRR(rows []domain.CustomerMonthMRR) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CustomerID != rows[j].CustomerID {
			return rows[i].CustomerID < rows[j].CustomerID
		}
		return rows[i].Month.Before(rows[j].Month)
	})
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
