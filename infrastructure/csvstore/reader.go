// Package csvstore lê os CSVs brutos de contas e assinaturas e grava
// os conjuntos derivados no mesmo formato tabular.
package csvstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/pkg/utils"
)

// header mapeia o nome de cada coluna para sua posição
type header map[string]int

func readHeader(r *csv.Reader) (header, error) {
	record, err := r.Read()
	if err == io.EOF {
		return header{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler cabeçalho do CSV")
	}

	h := make(header, len(record))
	for i, name := range record {
		h[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	return h, nil
}

// require verifica as colunas obrigatórias; alternativas separadas por "|"
func (h header) require(columns ...string) error {
	for _, column := range columns {
		if _, ok := h.lookup(column); !ok {
			return domain.NewDataValidationError(domain.ErrDataValidation, column, 0, "", "coluna obrigatória ausente")
		}
	}
	return nil
}

func (h header) lookup(column string) (int, bool) {
	for _, alt := range strings.Split(column, "|") {
		if i, ok := h[alt]; ok {
			return i, true
		}
	}
	return 0, false
}

func (h header) get(record []string, column string) string {
	i, ok := h.lookup(column)
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// readRecords percorre as linhas de dados; row começa em 1 na primeira linha após o cabeçalho
func readRecords(src io.Reader, required []string, fn func(h header, row int, record []string) error) error {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1

	h, err := readHeader(r)
	if err != nil {
		return err
	}
	if len(h) == 0 {
		return nil
	}
	if err := h.require(required...); err != nil {
		return err
	}

	row := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			return nil
		}
		row++
		if err != nil {
			return errors.Wrapf(err, "erro ao ler linha %d do CSV", row)
		}
		if isBlank(record) {
			continue
		}
		if err := fn(h, row, record); err != nil {
			return err
		}
	}
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func parseDateField(h header, record []string, column string, row int, customerID string) (*time.Time, error) {
	raw := h.get(record, column)
	date, err := utils.ParseDate(raw)
	if err != nil {
		return nil, domain.NewDataValidationError(domain.ErrInvalidDate, column, row, customerID, fmt.Sprintf("valor %q", raw))
	}
	return date, nil
}

func parseDecimalField(h header, record []string, column string, row int, customerID string) (decimal.Decimal, error) {
	raw := h.get(record, column)
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, domain.NewDataValidationError(domain.ErrInvalidAmount, column, row, customerID, fmt.Sprintf("valor %q", raw))
	}
	return amount, nil
}

// ReadAccounts lê o CSV bruto de contas
func ReadAccounts(src io.Reader) ([]domain.Account, error) {
	accounts := make([]domain.Account, 0)

	err := readRecords(src, []string{"account_id"}, func(h header, row int, record []string) error {
		accountID := h.get(record, "account_id")
		if accountID == "" {
			return domain.NewDataValidationError(domain.ErrMissingCustomerID, "account_id", row, "", "")
		}

		signup, err := parseDateField(h, record, "signup_date", row, accountID)
		if err != nil {
			return err
		}

		accounts = append(accounts, domain.Account{
			AccountID:   accountID,
			AccountName: h.get(record, "account_name"),
			Industry:    h.get(record, "industry"),
			Country:     h.get(record, "country"),
			SignupDate:  derefDate(signup),
			PlanTier:    h.get(record, "plan_tier"),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

// ReadSubscriptions lê o CSV bruto de assinaturas. A coluna do cliente pode se chamar
// account_id ou customer_id; end_date vazio significa assinatura em aberto.
func ReadSubscriptions(src io.Reader) ([]domain.Subscription, error) {
	subscriptions := make([]domain.Subscription, 0)

	required := []string{"account_id|customer_id", "start_date", "end_date", "mrr_amount"}
	err := readRecords(src, required, func(h header, row int, record []string) error {
		customerID := h.get(record, "account_id|customer_id")

		start, err := parseDateField(h, record, "start_date", row, customerID)
		if err != nil {
			return err
		}
		if start == nil {
			return domain.NewDataValidationError(domain.ErrInvalidDate, "start_date", row, customerID, "data de início ausente")
		}

		end, err := parseDateField(h, record, "end_date", row, customerID)
		if err != nil {
			return err
		}

		amount, err := parseDecimalField(h, record, "mrr_amount", row, customerID)
		if err != nil {
			return err
		}

		subscriptions = append(subscriptions, domain.Subscription{
			ID:         h.get(record, "subscription_id"),
			CustomerID: customerID,
			StartDate:  derefDate(start),
			EndDate:    end,
			MRRAmount:  amount,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return subscriptions, nil
}

// ReadCustomers lê o CSV canônico de clientes
func ReadCustomers(src io.Reader) ([]domain.Customer, error) {
	customers := make([]domain.Customer, 0)

	err := readRecords(src, []string{"customer_id"}, func(h header, row int, record []string) error {
		customerID := h.get(record, "customer_id")
		if customerID == "" {
			return domain.NewDataValidationError(domain.ErrMissingCustomerID, "customer_id", row, "", "")
		}

		signup, err := parseDateField(h, record, "signup_date", row, customerID)
		if err != nil {
			return err
		}

		isActive, err := parseBool(h.get(record, "is_active"))
		if err != nil {
			return domain.NewDataValidationError(domain.ErrDataValidation, "is_active", row, customerID, err.Error())
		}

		customers = append(customers, domain.Customer{
			CustomerID:   customerID,
			CustomerName: h.get(record, "customer_name"),
			Industry:     h.get(record, "industry"),
			Country:      h.get(record, "country"),
			SignupDate:   derefDate(signup),
			InitialPlan:  h.get(record, "initial_plan"),
			IsActive:     isActive,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return customers, nil
}

// ReadCustomerMonthMRR lê a linha do tempo de MRR por cliente e mês
func ReadCustomerMonthMRR(src io.Reader) ([]domain.CustomerMonthMRR, error) {
	rows := make([]domain.CustomerMonthMRR, 0)

	err := readRecords(src, []string{"customer_id", "month", "mrr"}, func(h header, row int, record []string) error {
		customerID := h.get(record, "customer_id")
		if customerID == "" {
			return domain.NewDataValidationError(domain.ErrMissingCustomerID, "customer_id", row, "", "")
		}

		month, err := parseMonthField(h, record, "month", row, customerID)
		if err != nil {
			return err
		}

		mrr, err := parseDecimalField(h, record, "mrr", row, customerID)
		if err != nil {
			return err
		}

		rows = append(rows, domain.CustomerMonthMRR{CustomerID: customerID, Month: month, MRR: mrr})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// ReadRevenueEvents lê a lista de eventos de receita
func ReadRevenueEvents(src io.Reader) ([]domain.RevenueEvent, error) {
	events := make([]domain.RevenueEvent, 0)

	required := []string{"event_id", "customer_id", "event_month", "event_date", "event_type", "mrr_delta", "mrr_after_event"}
	err := readRecords(src, required, func(h header, row int, record []string) error {
		customerID := h.get(record, "customer_id")
		if customerID == "" {
			return domain.NewDataValidationError(domain.ErrMissingCustomerID, "customer_id", row, "", "")
		}

		month, err := parseMonthField(h, record, "event_month", row, customerID)
		if err != nil {
			return err
		}

		date, err := parseDateField(h, record, "event_date", row, customerID)
		if err != nil {
			return err
		}

		eventType := domain.RevenueEventType(h.get(record, "event_type"))
		if !eventType.Valid() {
			return domain.NewDataValidationError(domain.ErrDataValidation, "event_type", row, customerID, fmt.Sprintf("tipo %q", eventType))
		}

		delta, err := parseDecimalField(h, record, "mrr_delta", row, customerID)
		if err != nil {
			return err
		}

		after, err := parseDecimalField(h, record, "mrr_after_event", row, customerID)
		if err != nil {
			return err
		}

		events = append(events, domain.RevenueEvent{
			EventID:       h.get(record, "event_id"),
			CustomerID:    customerID,
			EventMonth:    month,
			EventDate:     derefDate(date),
			EventType:     eventType,
			MRRDelta:      delta,
			MRRAfterEvent: after,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return events, nil
}

// ReadMonthlyMetrics lê as métricas mensais da carteira
func ReadMonthlyMetrics(src io.Reader) ([]domain.MonthlyPortfolioMetrics, error) {
	metrics := make([]domain.MonthlyPortfolioMetrics, 0)

	required := append([]string{domain.ColumnMonth}, domain.MetricColumns...)
	err := readRecords(src, required, func(h header, row int, record []string) error {
		month, err := parseMonthField(h, record, domain.ColumnMonth, row, "")
		if err != nil {
			return err
		}

		m := domain.MonthlyPortfolioMetrics{Month: month}

		amounts := map[string]*decimal.Decimal{
			domain.ColumnMRRTotal:       &m.MRRTotal,
			domain.ColumnNewMRR:         &m.NewMRR,
			domain.ColumnExpansionMRR:   &m.ExpansionMRR,
			domain.ColumnContractionMRR: &m.ContractionMRR,
			domain.ColumnChurnMRR:       &m.ChurnMRR,
			domain.ColumnNetNewMRR:      &m.NetNewMRR,
		}
		for column, target := range amounts {
			value, err := parseDecimalField(h, record, column, row, "")
			if err != nil {
				return err
			}
			*target = value
		}

		active, err := strconv.Atoi(h.get(record, domain.ColumnActiveCustomers))
		if err != nil {
			return domain.NewDataValidationError(domain.ErrDataValidation, domain.ColumnActiveCustomers, row, "", err.Error())
		}
		m.ActiveCustomers = active

		rate, err := strconv.ParseFloat(h.get(record, domain.ColumnRevenueChurnRate), 64)
		if err != nil {
			return domain.NewDataValidationError(domain.ErrDataValidation, domain.ColumnRevenueChurnRate, row, "", err.Error())
		}
		m.RevenueChurnRate = rate

		metrics = append(metrics, m)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return metrics, nil
}

func parseMonthField(h header, record []string, column string, row int, customerID string) (domain.Month, error) {
	raw := h.get(record, column)
	month, err := domain.ParseMonth(raw)
	if err != nil {
		return domain.Month{}, domain.NewDataValidationError(domain.ErrInvalidDate, column, row, customerID, fmt.Sprintf("valor %q", raw))
	}
	return month, nil
}

func derefDate(date *time.Time) time.Time {
	if date == nil {
		return time.Time{}
	}
	return *date
}

func parseBool(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(strings.ToLower(raw))
}
