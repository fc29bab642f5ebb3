package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type RevenueEventType string

const (
	EventTypeNew         RevenueEventType = "new"
	EventTypeExpansion   RevenueEventType = "expansion"
	EventTypeContraction RevenueEventType = "contraction"
	EventTypeChurn       RevenueEventType = "churn"
)

// EventTypes lista os tipos na ordem usada pelos componentes de MRR
var EventTypes = []RevenueEventType{
	EventTypeNew,
	EventTypeExpansion,
	EventTypeContraction,
	EventTypeChurn,
}

func (t RevenueEventType) Valid() bool {
	switch t {
	case EventTypeNew, EventTypeExpansion, EventTypeContraction, EventTypeChurn:
		return true
	}
	return false
}

// RevenueEvent é uma mudança de MRR de um cliente em um mês
type RevenueEvent struct {
	EventID       string           `json:"event_id"`
	CustomerID    string           `json:"customer_id"`
	EventMonth    Month            `json:"event_month"`
	EventDate     time.Time        `json:"event_date"` // Último dia do mês do evento
	EventType     RevenueEventType `json:"event_type"`
	MRRDelta      decimal.Decimal  `json:"mrr_delta"`
	MRRAfterEvent decimal.Decimal  `json:"mrr_after_event"`
}

// NewEventID deriva o ID do evento a partir do cliente e do mês
func NewEventID(customerID string, month Month) string {
	return fmt.Sprintf("%s-%s", customerID, month)
}
