package domain

import "github.com/shopspring/decimal"

// CustomerMonthMRR é o MRR de um cliente em um mês de calendário.
// A ausência de linha para (cliente, mês) equivale a MRR zero.
type CustomerMonthMRR struct {
	CustomerID string          `json:"customer_id"`
	Month      Month           `json:"month"`
	MRR        decimal.Decimal `json:"mrr"`
}
