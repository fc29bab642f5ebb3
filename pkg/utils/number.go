package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return math.Round(f*100) / 100
}

// PercentChange retorna a variação percentual de from para to; from zero resulta em ok=false
func PercentChange(from, to float64) (float64, bool) {
	if from == 0 {
		return 0, false
	}
	return RoundWithTwoDecimalPlace((to - from) / math.Abs(from) * 100), true
}
