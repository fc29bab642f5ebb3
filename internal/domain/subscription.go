package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subscription representa um contrato recorrente de um cliente.
// EndDate nulo significa que a assinatura segue ativa até o horizonte dos dados.
// EndDate é exclusivo: o próprio dia de término já é o primeiro dia inativo.
type Subscription struct {
	ID         string          `json:"subscription_id,omitempty"`
	CustomerID string          `json:"customer_id"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    *time.Time      `json:"end_date,omitempty"`
	MRRAmount  decimal.Decimal `json:"mrr_amount"`
}

func (s Subscription) IsOpen() bool {
	return s.EndDate == nil
}
