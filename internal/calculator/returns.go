package calculator

import "math"

// DailyReturns computes the day-over-day percent change of each close:
// (close[t]/close[t-1] - 1) * 100. The first element is NaN because the
// first bar has no prior close. A zero prior close is not special-cased;
// the division surfaces as +/-Inf or NaN like any other degenerate input.
func DailyReturns(closes []float64) []float64 {
	returns := make([]float64, len(closes))
	if len(closes) == 0 {
		return returns
	}
	returns[0] = math.NaN()
	for i := 1; i < len(closes); i++ {
		returns[i] = (closes[i]/closes[i-1] - 1) * 100
	}
	return returns
}
