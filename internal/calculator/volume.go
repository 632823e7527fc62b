package calculator

import "errors"

// CalculateVolumeSignal compares the latest bar's volume against the mean
// volume of the three bars immediately preceding it. The latest bar counts
// as above average only when that mean is positive, so thinly traded or
// gap-filled series fall back to "normal".
func CalculateVolumeSignal(volumes []float64) (avgPrior float64, aboveAvg bool, err error) {
	if len(volumes) < 4 {
		return 0, false, errors.New("not enough data for volume signal")
	}
	n := len(volumes)
	avgPrior = (volumes[n-4] + volumes[n-3] + volumes[n-2]) / 3
	aboveAvg = avgPrior > 0 && volumes[n-1] > avgPrior
	return avgPrior, aboveAvg, nil
}
