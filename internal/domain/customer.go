package domain

import "time"

// Account representa a conta no formato bruto de origem
type Account struct {
	AccountID   string    `json:"account_id"`
	AccountName string    `json:"account_name"`
	Industry    string    `json:"industry"`
	Country     string    `json:"country"`
	SignupDate  time.Time `json:"signup_date"`
	PlanTier    string    `json:"plan_tier"`
}

// Customer é a visão canônica do cliente usada pelas métricas
type Customer struct {
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Industry     string    `json:"industry"`
	Country      string    `json:"country"`
	SignupDate   time.Time `json:"signup_date"`
	InitialPlan  string    `json:"initial_plan"`
	IsActive     bool      `json:"is_active"`
}
