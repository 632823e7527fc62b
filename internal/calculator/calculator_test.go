package calculator

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateSMA(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5}

	got, err := CalculateSMA(prices, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 4.0) {
		t.Errorf("SMA(3) = %v, want 4.0", got)
	}

	got, err = CalculateSMA(prices, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 3.0) {
		t.Errorf("SMA(5) = %v, want 3.0", got)
	}

	if _, err := CalculateSMA(prices, 6); err == nil {
		t.Error("expected error when window exceeds series length")
	}
	if _, err := CalculateSMA(prices, 0); err == nil {
		t.Error("expected error for non-positive period")
	}
}

func TestDailyReturns(t *testing.T) {
	returns := DailyReturns([]float64{100, 110, 99})
	if len(returns) != 3 {
		t.Fatalf("expected 3 returns, got %d", len(returns))
	}
	if !math.IsNaN(returns[0]) {
		t.Errorf("first return should be NaN, got %v", returns[0])
	}
	if !almostEqual(returns[1], 10.0) {
		t.Errorf("returns[1] = %v, want 10.0", returns[1])
	}
	if !almostEqual(returns[2], -10.0) {
		t.Errorf("returns[2] = %v, want -10.0", returns[2])
	}

	if got := DailyReturns(nil); len(got) != 0 {
		t.Errorf("expected empty returns for empty input, got %v", got)
	}
}

func TestDailyReturns_ZeroPriorClose(t *testing.T) {
	returns := DailyReturns([]float64{0, 10})
	if !math.IsInf(returns[1], 1) {
		t.Errorf("return after a zero close should be +Inf, got %v", returns[1])
	}
}

func TestCalculateSimpleRSI(t *testing.T) {
	// Deltas: +1, -0.5, +1 over period 3.
	// avgGain = 2/3, avgLoss = 0.5/3, rs = 4, RSI = 100 - 100/5 = 80.
	closes := []float64{10, 11, 10.5, 11.5}
	got, err := CalculateSimpleRSI(closes, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 80.0) {
		t.Errorf("RSI = %v, want 80.0", got)
	}
}

func TestCalculateSimpleRSI_AllGains(t *testing.T) {
	got, err := CalculateSimpleRSI([]float64{1, 2, 3, 4}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Zero average loss: ratio is +Inf and the formula collapses to 100.
	if got != 100.0 {
		t.Errorf("RSI = %v, want exactly 100.0", got)
	}
}

func TestCalculateSimpleRSI_FlatSeries(t *testing.T) {
	got, err := CalculateSimpleRSI([]float64{5, 5, 5, 5}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(got) {
		t.Errorf("RSI of a flat series should be NaN, got %v", got)
	}
}

func TestCalculateSimpleRSI_InsufficientData(t *testing.T) {
	if _, err := CalculateSimpleRSI([]float64{1, 2, 3}, 3); err == nil {
		t.Error("expected error with fewer than period+1 closes")
	}
	if _, err := CalculateSimpleRSI([]float64{1, 2}, 0); err == nil {
		t.Error("expected error for non-positive period")
	}
}

func TestCalculateVolumeSignal(t *testing.T) {
	tests := []struct {
		name    string
		volumes []float64
		wantAvg float64
		wantUp  bool
	}{
		{"above average", []float64{10, 20, 30, 100}, 20, true},
		{"below average", []float64{10, 20, 30, 15}, 20, false},
		{"equal to average", []float64{20, 20, 20, 20}, 20, false},
		{"zero prior volume", []float64{0, 0, 0, 50}, 0, false},
	}
	for _, tt := range tests {
		avg, up, err := CalculateVolumeSignal(tt.volumes)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if !almostEqual(avg, tt.wantAvg) {
			t.Errorf("%s: avg = %v, want %v", tt.name, avg, tt.wantAvg)
		}
		if up != tt.wantUp {
			t.Errorf("%s: aboveAvg = %v, want %v", tt.name, up, tt.wantUp)
		}
	}

	if _, _, err := CalculateVolumeSignal([]float64{1, 2, 3}); err == nil {
		t.Error("expected error with fewer than 4 volumes")
	}
}

func TestCalculateVolumeSignal_UsesPrecedingThreeBarsOnly(t *testing.T) {
	// The first volume must not enter the average: only the three bars
	// immediately before the latest one count.
	avg, _, err := CalculateVolumeSignal([]float64{1000, 10, 20, 30, 25})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(avg, 20) {
		t.Errorf("avg = %v, want 20 (mean of the three preceding bars)", avg)
	}
}

func TestCalculateDistanceFromHigh(t *testing.T) {
	got, err := CalculateDistanceFromHigh([]float64{10, 20, 15})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, -25.0) {
		t.Errorf("distance = %v, want -25.0", got)
	}

	got, err = CalculateDistanceFromHigh([]float64{10, 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("distance at the high should be 0, got %v", got)
	}

	if _, err := CalculateDistanceFromHigh(nil); err == nil {
		t.Error("expected error for empty series")
	}
}

func TestCalculateDistanceFromHigh_NeverPositive(t *testing.T) {
	series := [][]float64{
		{1, 2, 3, 4, 5},
		{5, 4, 3, 2, 1},
		{3, 1, 4, 1, 5, 9, 2, 6},
	}
	for _, closes := range series {
		got, err := CalculateDistanceFromHigh(closes)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got > 0 {
			t.Errorf("distance %v is positive for %v", got, closes)
		}
	}
}
