package csvstore

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/pkg/utils"
)

var (
	customerHeader         = []string{"customer_id", "customer_name", "industry", "country", "signup_date", "initial_plan", "is_active"}
	customerMonthMRRHeader = []string{"customer_id", "month", "mrr"}
	revenueEventHeader     = []string{"event_id", "customer_id", "event_month", "event_date", "event_type", "mrr_delta", "mrr_after_event"}
	monthlyMetricsHeader   = append([]string{domain.ColumnMonth}, domain.MetricColumns...)
)

func writeAll(dst io.Writer, head []string, records [][]string) error {
	w := csv.NewWriter(dst)

	if err := w.Write(head); err != nil {
		return errors.Wrap(err, "erro ao escrever cabeçalho do CSV")
	}

	if err := w.WriteAll(records); err != nil {
		return errors.Wrap(err, "erro ao escrever linhas do CSV")
	}

	return nil
}

func WriteCustomers(dst io.Writer, customers []domain.Customer) error {
	records := make([][]string, 0, len(customers))
	for _, c := range customers {
		signup := c.SignupDate
		records = append(records, []string{
			c.CustomerID,
			c.CustomerName,
			c.Industry,
			c.Country,
			utils.FormatDate(&signup),
			c.InitialPlan,
			strconv.FormatBool(c.IsActive),
		})
	}
	return writeAll(dst, customerHeader, records)
}

func WriteCustomerMonthMRR(dst io.Writer, rows []domain.CustomerMonthMRR) error {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{row.CustomerID, row.Month.String(), row.MRR.String()})
	}
	return writeAll(dst, customerMonthMRRHeader, records)
}

func WriteRevenueEvents(dst io.Writer, events []domain.RevenueEvent) error {
	records := make([][]string, 0, len(events))
	for _, e := range events {
		date := e.EventDate
		records = append(records, []string{
			e.EventID,
			e.CustomerID,
			e.EventMonth.String(),
			utils.FormatDate(&date),
			string(e.EventType),
			e.MRRDelta.String(),
			e.MRRAfterEvent.String(),
		})
	}
	return writeAll(dst, revenueEventHeader, records)
}

func WriteMonthlyMetrics(dst io.Writer, metrics []domain.MonthlyPortfolioMetrics) error {
	records := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		records = append(records, []string{
			m.Month.String(),
			m.MRRTotal.String(),
			m.NewMRR.String(),
			m.ExpansionMRR.String(),
			m.ContractionMRR.String(),
			m.ChurnMRR.String(),
			m.NetNewMRR.String(),
			strconv.Itoa(m.ActiveCustomers),
			strconv.FormatFloat(m.RevenueChurnRate, 'f', -1, 64),
		})
	}
	return writeAll(dst, monthlyMetricsHeader, records)
}
