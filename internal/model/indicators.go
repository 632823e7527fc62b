package model

import "time"

// IndicatorSnapshot holds the per-ticker indicator values at the latest bar.
// Computed fresh each run from a cleaned price series; never mutated after.
// Undefined values (moving average before the window fills, RSI with no
// losses and no gains) are NaN rather than a sentinel.
type IndicatorSnapshot struct {
	LatestDate   time.Time
	LatestClose  float64
	LatestVolume float64

	ReturnPctToday float64
	ReturnPctPrev1 float64
	ReturnPctPrev2 float64

	MovingAverage float64
	AboveMA       bool

	RSI14 float64

	AvgVolumePrior3 float64
	VolumeAboveAvg  bool

	// DistFrom52wHighPct is <= 0: percent gap between the latest close and
	// the maximum close of the retrieved window.
	DistFrom52wHighPct float64
}
