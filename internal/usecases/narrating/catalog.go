package narrating

import "github.com/vfg2006/saas-metrics-api/internal/domain"

// Metric associa o rótulo exibido à coluna das métricas mensais
type Metric struct {
	Label  string `json:"label"`
	Column string `json:"column"`
}

// Window é uma janela pré-definida; Months 0 = histórico completo
type Window struct {
	Label  string `json:"label"`
	Months int    `json:"months"`
}

var Metrics = []Metric{
	{Label: "Total MRR", Column: domain.ColumnMRRTotal},
	{Label: "New MRR", Column: domain.ColumnNewMRR},
	{Label: "Expansion MRR", Column: domain.ColumnExpansionMRR},
	{Label: "Contraction MRR", Column: domain.ColumnContractionMRR},
	{Label: "Churn MRR", Column: domain.ColumnChurnMRR},
	{Label: "Net New MRR", Column: domain.ColumnNetNewMRR},
	{Label: "Active Customers", Column: domain.ColumnActiveCustomers},
	{Label: "Revenue Churn Rate", Column: domain.ColumnRevenueChurnRate},
}

var Windows = []Window{
	{Label: "Last 6 months", Months: 6},
	{Label: "Last 12 months", Months: 12},
	{Label: "Last 24 months", Months: 24},
	{Label: "All", Months: 0},
}

// DefaultWindowMonths é a janela usada quando nenhuma é informada
const DefaultWindowMonths = 12

// Catalog é a resposta do endpoint de catálogo
type Catalog struct {
	Metrics       []Metric `json:"metrics"`
	Windows       []Window `json:"windows"`
	DefaultWindow int      `json:"default_window"`
}

func GetCatalog() Catalog {
	return Catalog{
		Metrics:       Metrics,
		Windows:       Windows,
		DefaultWindow: DefaultWindowMonths,
	}
}

// LabelFor retorna o rótulo da coluna; ok falso para colunas fora do catálogo
func LabelFor(column string) (string, bool) {
	for _, m := range Metrics {
		if m.Column == column {
			return m.Label, true
		}
	}
	return "", false
}
