package calculator

import "errors"

// CalculateSimpleRSI computes the RSI at the latest bar using plain
// arithmetic means of the trailing gains and losses over the given period,
// not Wilder's exponential smoothing. Requires at least period+1 closes.
//
// A zero average loss is not special-cased: the gain/loss ratio becomes
// +Inf and the formula evaluates to 100, or NaN when the window moved
// neither up nor down. Callers treat those as extreme rather than invalid
// readings.
func CalculateSimpleRSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < period+1 {
		return 0, errors.New("not enough data for RSI calculation")
	}

	var gainSum, lossSum float64
	for i := len(closes) - period; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gainSum += change
		} else {
			lossSum -= change // make positive
		}
	}
	avgGain := gainSum / float64(period)
	avgLoss := lossSum / float64(period)

	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), nil
}
