package model

import "time"

// Classification tags a scanned ticker that cleared the move threshold.
type Classification string

const (
	ClassGainer Classification = "GAINER"
	ClassLoser  Classification = "LOSER"
)

// ScanRow is the final output record for one classified ticker.
// Consumed by the display/export layer; the engine applies no rounding.
type ScanRow struct {
	Ticker         Ticker
	Classification Classification
	Snapshot       IndicatorSnapshot
}

// SkipReason explains why a ticker produced no ScanRow.
type SkipReason string

const (
	// SkipNoData: the merged dataset has no bars for this symbol
	// (failed chunk, unknown symbol, or empty provider response).
	SkipNoData SkipReason = "no-data"
	// SkipInsufficientHistory: fewer than the minimum bars after cleaning.
	SkipInsufficientHistory SkipReason = "insufficient-history"
	// SkipDuplicateListing: another exchange variant of the same base
	// symbol already produced a classified row.
	SkipDuplicateListing SkipReason = "duplicate-listing"
	// SkipIndicatorError: the indicator pipeline failed for this ticker.
	SkipIndicatorError SkipReason = "indicator-error"
)

// Skip records one excluded ticker and why. Tickers whose move stayed
// inside the threshold band are not skips; they are simply not movers.
type Skip struct {
	Ticker Ticker
	Reason SkipReason
}

// Report is the complete outcome of one scan run.
type Report struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration

	UniverseSize int
	ChunksTotal  int
	ChunksFailed int

	// Gainers sorted by today's return descending, Losers ascending.
	Gainers []ScanRow
	Losers  []ScanRow

	Skips []Skip
}

// SkipCounts aggregates the skip report by reason.
func (r *Report) SkipCounts() map[SkipReason]int {
	counts := make(map[SkipReason]int)
	for _, s := range r.Skips {
		counts[s.Reason]++
	}
	return counts
}
