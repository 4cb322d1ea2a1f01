package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// AbsDiff retorna |a - b| arredondado para centavos
func AbsDiff(a, b float64) float64 {
	return RoundWithTwoDecimalPlace(math.Abs(a - b))
}
