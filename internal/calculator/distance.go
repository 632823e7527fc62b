package calculator

import "errors"

// CalculateDistanceFromHigh returns the percent gap between the latest
// close and the maximum close of the whole series:
// (latest - max) / max * 100. The result is <= 0, with 0 when the latest
// close is itself the high of the window.
func CalculateDistanceFromHigh(closes []float64) (float64, error) {
	if len(closes) == 0 {
		return 0, errors.New("no closes provided")
	}
	high := closes[0]
	for _, c := range closes[1:] {
		if c > high {
			high = c
		}
	}
	latest := closes[len(closes)-1]
	return (latest - high) / high * 100, nil
}
