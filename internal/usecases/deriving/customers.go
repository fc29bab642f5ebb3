package deriving

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

// BuildCustomers converte as contas brutas para o formato canônico de clientes.
// IsActive começa falso e só é definido após a construção da linha do tempo.
func BuildCustomers(accounts []domain.Account) []domain.Customer {
	customers := make([]domain.Customer, 0, len(accounts))
	for _, acc := range accounts {
		customers = append(customers, domain.Customer{
			CustomerID:   acc.AccountID,
			CustomerName: acc.AccountName,
			Industry:     acc.Industry,
			Country:      acc.Country,
			SignupDate:   acc.SignupDate,
			InitialPlan:  acc.PlanTier,
			IsActive:     false,
		})
	}
	return customers
}

// UpdateCustomersIsActive marca como ativo o cliente com MRR > 0 no último mês da linha do tempo.
// Retorna uma nova lista; a entrada não é alterada.
func UpdateCustomersIsActive(customers []domain.Customer, rows []domain.CustomerMonthMRR) ([]domain.Customer, error) {
	latest, err := LatestMonth(rows)
	if err != nil {
		return nil, err
	}

	latestMRR := make(map[string]decimal.Decimal)
	for _, row := range rows {
		if row.Month != latest {
			continue
		}
		latestMRR[row.CustomerID] = latestMRR[row.CustomerID].Add(row.MRR)
	}

	updated := make([]domain.Customer, len(customers))
	active := 0
	for i, customer := range customers {
		mrr, ok := latestMRR[customer.CustomerID]
		customer.IsActive = ok && mrr.IsPositive()
		if customer.IsActive {
			active++
		}
		updated[i] = customer
	}

	logrus.WithFields(logrus.Fields{
		"latest_month": latest.String(),
		"active":       active,
		"customers":    len(customers),
	}).Debug("Status de atividade dos clientes atualizado")

	return updated, nil
}
