package domain

// AvailablePeriods representa os períodos mensais disponíveis nas métricas da carteira
type AvailablePeriods struct {
	Periods []string `json:"periods"` // Lista de períodos no formato yyyy-mm
	Years   []string `json:"years"`   // Lista de anos únicos disponíveis
	Months  []string `json:"months"`  // Lista de meses únicos disponíveis
}
