package deriving

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

// CustomerSeries é a série de MRR de um cliente materializada sobre o eixo global:
// Values[i] corresponde a axis[i], com zero explícito nos meses sem linha.
type CustomerSeries struct {
	CustomerID string
	Values     []decimal.Decimal
}

// BuildMonthAxis retorna os meses presentes nas linhas, sem repetição, em ordem crescente
func BuildMonthAxis(rows []domain.CustomerMonthMRR) []domain.Month {
	seen := make(map[domain.Month]struct{}, len(rows))
	axis := make([]domain.Month, 0)
	for _, row := range rows {
		if _, ok := seen[row.Month]; ok {
			continue
		}
		seen[row.Month] = struct{}{}
		axis = append(axis, row.Month)
	}

	sort.Slice(axis, func(i, j int) bool {
		return axis[i].Before(axis[j])
	})

	return axis
}

func axisIndex(axis []domain.Month) map[domain.Month]int {
	index := make(map[domain.Month]int, len(axis))
	for i, month := range axis {
		index[month] = i
	}
	return index
}

// Densify converte as linhas esparsas em uma série densa por cliente alinhada ao eixo.
// Linhas repetidas para o mesmo (cliente, mês) são somadas; meses fora do eixo são descartados.
// O resultado vem ordenado por cliente.
func Densify(rows []domain.CustomerMonthMRR, axis []domain.Month) []CustomerSeries {
	index := axisIndex(axis)
	byCustomer := make(map[string][]decimal.Decimal)

	for _, row := range rows {
		pos, ok := index[row.Month]
		if !ok {
			continue
		}

		values, ok := byCustomer[row.CustomerID]
		if !ok {
			values = make([]decimal.Decimal, len(axis))
			for i := range values {
				values[i] = decimal.Zero
			}
			byCustomer[row.CustomerID] = values
		}
		values[pos] = values[pos].Add(row.MRR)
	}

	series := make([]CustomerSeries, 0, len(byCustomer))
	for customerID, values := range byCustomer {
		series = append(series, CustomerSeries{CustomerID: customerID, Values: values})
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].CustomerID < series[j].CustomerID
	})

	return series
}
