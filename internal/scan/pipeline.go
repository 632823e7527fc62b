package scan

import (
	"errors"
	"fmt"
	"math"

	"MarketScanner/internal/calculator"
	"MarketScanner/internal/model"
)

// MinHistoryBars is the minimum cleaned bar count a ticker needs before
// its indicators are computed. Below this, returns and the moving average
// are too thin to classify on.
const MinHistoryBars = 25

// ErrInsufficientHistory indicates a ticker had fewer than MinHistoryBars
// usable bars after cleaning.
var ErrInsufficientHistory = errors.New("insufficient history")

// cleanBars drops bars without a close price, then collapses bars sharing
// a calendar date to the first occurrence. Providers occasionally repeat
// the live session's bar alongside the settled one.
func cleanBars(bars []model.OHLCV) []model.OHLCV {
	clean := make([]model.OHLCV, 0, len(bars))
	seen := make(map[string]bool, len(bars))
	for _, b := range bars {
		if math.IsNaN(b.Close) {
			continue
		}
		day := b.Time.Format("2006-01-02")
		if seen[day] {
			continue
		}
		seen[day] = true
		clean = append(clean, b)
	}
	return clean
}

// ComputeSnapshot cleans a raw daily series and computes the full
// indicator set at its latest bar. It returns ErrInsufficientHistory when
// fewer than MinHistoryBars bars survive cleaning.
//
// The moving average is the one indicator allowed to be NaN here: a
// window longer than the history leaves MovingAverage NaN and AboveMA
// false instead of failing the ticker.
func ComputeSnapshot(bars []model.OHLCV, maWindow int) (*model.IndicatorSnapshot, error) {
	clean := cleanBars(bars)
	if len(clean) < MinHistoryBars {
		return nil, fmt.Errorf("%w: %d bars after cleaning", ErrInsufficientHistory, len(clean))
	}

	n := len(clean)
	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i, b := range clean {
		closes[i] = b.Close
		volumes[i] = b.Volume
	}

	returns := calculator.DailyReturns(closes)

	snap := &model.IndicatorSnapshot{
		LatestDate:     clean[n-1].Time,
		LatestClose:    closes[n-1],
		LatestVolume:   volumes[n-1],
		ReturnPctToday: returns[n-1],
		ReturnPctPrev1: returns[n-2],
		ReturnPctPrev2: returns[n-3],
	}

	if ma, err := calculator.CalculateSMA(closes, maWindow); err != nil {
		snap.MovingAverage = math.NaN()
		snap.AboveMA = false
	} else {
		snap.MovingAverage = ma
		snap.AboveMA = closes[n-1] > ma
	}

	rsi, err := calculator.CalculateSimpleRSI(closes, 14)
	if err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}
	snap.RSI14 = rsi

	avgVol, above, err := calculator.CalculateVolumeSignal(volumes)
	if err != nil {
		return nil, fmt.Errorf("volume signal: %w", err)
	}
	snap.AvgVolumePrior3 = avgVol
	snap.VolumeAboveAvg = above

	dist, err := calculator.CalculateDistanceFromHigh(closes)
	if err != nil {
		return nil, fmt.Errorf("distance from high: %w", err)
	}
	snap.DistFrom52wHighPct = dist

	return snap, nil
}
