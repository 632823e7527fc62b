package scan

import (
	"errors"
	"math"
	"testing"
	"time"

	"MarketScanner/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// barsFromCloses builds one bar per calendar day from the close series.
// Volume defaults to 1000 per bar.
func barsFromCloses(closes []float64) []model.OHLCV {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func flatCloses(n int, price float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = price
	}
	return closes
}

func TestComputeSnapshot_MinimumHistory(t *testing.T) {
	if _, err := ComputeSnapshot(barsFromCloses(flatCloses(24, 100)), 20); !errors.Is(err, ErrInsufficientHistory) {
		t.Fatalf("24 bars: expected ErrInsufficientHistory, got %v", err)
	}
	if _, err := ComputeSnapshot(barsFromCloses(flatCloses(25, 100)), 20); err != nil {
		t.Fatalf("25 bars: unexpected error: %v", err)
	}
}

func TestComputeSnapshot_NaNClosesDroppedBeforeCount(t *testing.T) {
	closes := flatCloses(25, 100)
	closes[10] = math.NaN()
	if _, err := ComputeSnapshot(barsFromCloses(closes), 20); !errors.Is(err, ErrInsufficientHistory) {
		t.Fatalf("expected ErrInsufficientHistory after NaN drop, got %v", err)
	}
}

func TestComputeSnapshot_DuplicateDatesCollapsed(t *testing.T) {
	bars := barsFromCloses(flatCloses(25, 100))
	// Repeat the last date with a different close; the first occurrence wins.
	dup := bars[24]
	dup.Close = 999
	bars = append(bars, dup)

	snap, err := ComputeSnapshot(bars, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.LatestClose != 100 {
		t.Errorf("expected first occurrence of duplicated date to win, got close %v", snap.LatestClose)
	}
}

func TestComputeSnapshot_Values(t *testing.T) {
	closes := flatCloses(25, 100)
	closes[21] = 102
	closes[22] = 104
	closes[23] = 104
	closes[24] = 110
	bars := barsFromCloses(closes)
	bars[24].Volume = 2000

	snap, err := ComputeSnapshot(bars, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(snap.ReturnPctToday, (110.0/104.0-1)*100) {
		t.Errorf("today return: expected %.6f, got %.6f", (110.0/104.0-1)*100, snap.ReturnPctToday)
	}
	if !almostEqual(snap.ReturnPctPrev1, 0) {
		t.Errorf("prev day return: expected 0, got %.6f", snap.ReturnPctPrev1)
	}
	if !almostEqual(snap.ReturnPctPrev2, (104.0/102.0-1)*100) {
		t.Errorf("prev-2 day return: expected %.6f, got %.6f", (104.0/102.0-1)*100, snap.ReturnPctPrev2)
	}

	// Last 20 closes: 16 at 100, then 102, 104, 104, 110.
	wantMA := (16*100.0 + 102 + 104 + 104 + 110) / 20.0
	if !almostEqual(snap.MovingAverage, wantMA) {
		t.Errorf("MA: expected %.4f, got %.4f", wantMA, snap.MovingAverage)
	}
	if !snap.AboveMA {
		t.Error("expected AboveMA with close 110 over MA")
	}

	// Gains only in the RSI window, so RSI saturates at 100.
	if snap.RSI14 != 100 {
		t.Errorf("RSI: expected 100 for gains-only window, got %v", snap.RSI14)
	}

	if !almostEqual(snap.AvgVolumePrior3, 1000) {
		t.Errorf("avg prior volume: expected 1000, got %v", snap.AvgVolumePrior3)
	}
	if !snap.VolumeAboveAvg {
		t.Error("expected volume above prior average")
	}

	if !almostEqual(snap.DistFrom52wHighPct, 0) {
		t.Errorf("distance from high: expected 0 at the high, got %v", snap.DistFrom52wHighPct)
	}
	if snap.LatestClose != 110 || snap.LatestVolume != 2000 {
		t.Errorf("latest bar fields wrong: close %v volume %v", snap.LatestClose, snap.LatestVolume)
	}
}

func TestComputeSnapshot_WindowLongerThanHistory(t *testing.T) {
	snap, err := ComputeSnapshot(barsFromCloses(flatCloses(25, 100)), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(snap.MovingAverage) {
		t.Errorf("expected NaN MA for 30-bar window over 25 bars, got %v", snap.MovingAverage)
	}
	if snap.AboveMA {
		t.Error("AboveMA must be false when the MA is undefined")
	}
}

func TestComputeSnapshot_FlatSeriesRSI(t *testing.T) {
	snap, err := ComputeSnapshot(barsFromCloses(flatCloses(25, 100)), 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// No gains and no losses leaves the RSI undefined.
	if !math.IsNaN(snap.RSI14) {
		t.Errorf("expected NaN RSI for flat series, got %v", snap.RSI14)
	}
}

func TestComputeSnapshot_BelowHigh(t *testing.T) {
	closes := flatCloses(25, 100)
	closes[10] = 200
	snap, err := ComputeSnapshot(barsFromCloses(closes), 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(snap.DistFrom52wHighPct, -50) {
		t.Errorf("expected -50%% from high, got %v", snap.DistFrom52wHighPct)
	}
}
