package model

import "time"

// OHLCV represents a single daily candlestick bar.
// Fields the provider did not supply are NaN, so a missing close can be
// detected and dropped before indicator computation.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Dataset is the merged multi-ticker price history, keyed by full symbol
// (base + exchange suffix). Symbols whose fetch failed are simply absent.
type Dataset map[string][]OHLCV

// Merge copies every series from other into d, overwriting on collision.
func (d Dataset) Merge(other Dataset) {
	for sym, bars := range other {
		d[sym] = bars
	}
}
