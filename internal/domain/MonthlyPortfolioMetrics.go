package domain

import "github.com/shopspring/decimal"

// Colunas das métricas mensais, usadas na exportação tabular e no catálogo de métricas
const (
	ColumnMonth            = "month"
	ColumnMRRTotal         = "mrr_total"
	ColumnNewMRR           = "new_mrr"
	ColumnExpansionMRR     = "expansion_mrr"
	ColumnContractionMRR   = "contraction_mrr"
	ColumnChurnMRR         = "churn_mrr"
	ColumnNetNewMRR        = "net_new_mrr"
	ColumnActiveCustomers  = "active_customers"
	ColumnRevenueChurnRate = "revenue_churn_rate"
)

// MetricColumns lista as colunas numéricas na ordem de exportação
var MetricColumns = []string{
	ColumnMRRTotal,
	ColumnNewMRR,
	ColumnExpansionMRR,
	ColumnContractionMRR,
	ColumnChurnMRR,
	ColumnNetNewMRR,
	ColumnActiveCustomers,
	ColumnRevenueChurnRate,
}

// MonthlyPortfolioMetrics agrega a carteira inteira em um mês do eixo global
type MonthlyPortfolioMetrics struct {
	Month            Month           `json:"month"`
	MRRTotal         decimal.Decimal `json:"mrr_total"`
	NewMRR           decimal.Decimal `json:"new_mrr"`
	ExpansionMRR     decimal.Decimal `json:"expansion_mrr"`
	ContractionMRR   decimal.Decimal `json:"contraction_mrr"`
	ChurnMRR         decimal.Decimal `json:"churn_mrr"`
	NetNewMRR        decimal.Decimal `json:"net_new_mrr"`
	ActiveCustomers  int             `json:"active_customers"`
	RevenueChurnRate float64         `json:"revenue_churn_rate"`
}

// MetricValue retorna o valor numérico de uma coluna de métrica
func (m MonthlyPortfolioMetrics) MetricValue(column string) (float64, bool) {
	switch column {
	case ColumnMRRTotal:
		return m.MRRTotal.InexactFloat64(), true
	case ColumnNewMRR:
		return m.NewMRR.InexactFloat64(), true
	case ColumnExpansionMRR:
		return m.ExpansionMRR.InexactFloat64(), true
	case ColumnContractionMRR:
		return m.ContractionMRR.InexactFloat64(), true
	case ColumnChurnMRR:
		return m.ChurnMRR.InexactFloat64(), true
	case ColumnNetNewMRR:
		return m.NetNewMRR.InexactFloat64(), true
	case ColumnActiveCustomers:
		return float64(m.ActiveCustomers), true
	case ColumnRevenueChurnRate:
		return m.RevenueChurnRate, true
	}
	return 0, false
}
