package narrating

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

func row(m time.Month, total, newMRR, expansion, contraction, churn string, active int, churnRate float64) domain.MonthlyPortfolioMetrics {
	r := domain.MonthlyPortfolioMetrics{
		Month:            domain.NewMonth(2024, m),
		MRRTotal:         decimal.RequireFromString(total),
		NewMRR:           decimal.RequireFromString(newMRR),
		ExpansionMRR:     decimal.RequireFromString(expansion),
		ContractionMRR:   decimal.RequireFromString(contraction),
		ChurnMRR:         decimal.RequireFromString(churn),
		ActiveCustomers:  active,
		RevenueChurnRate: churnRate,
	}
	r.NetNewMRR = r.NewMRR.Add(r.ExpansionMRR).Add(r.ContractionMRR).Add(r.ChurnMRR)
	return r
}

// windowFixture reproduz uma carteira de quatro meses com novos clientes, expansão, contração e churn
func windowFixture() []domain.MonthlyPortfolioMetrics {
	return []domain.MonthlyPortfolioMetrics{
		row(time.January, "150", "150", "0", "0", "0", 2, 0),
		row(time.February, "180", "30", "0", "0", "0", 3, 0),
		row(time.March, "200", "0", "20", "0", "0", 3, 0),
		row(time.April, "130", "0", "0", "-20", "-50", 2, 0.25),
	}
}
