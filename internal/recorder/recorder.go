package recorder

import (
	"time"

	"MarketScanner/internal/model"
)

// RunRecord is the journal entry for one scan attempt. It carries run
// diagnostics only; result rows live in the exported report files.
type RunRecord struct {
	RunID        string
	StartedAt    time.Time
	Duration     time.Duration
	UniverseSize int
	ChunksTotal  int
	ChunksFailed int

	Gainers int
	Losers  int

	SkippedNoData       int
	SkippedShortHistory int
	SkippedDuplicate    int
	SkippedError        int

	Outcome string // "ok" or the failure description
}

// FromReport builds the journal entry for a completed scan.
func FromReport(report *model.Report) *RunRecord {
	counts := report.SkipCounts()
	return &RunRecord{
		RunID:               report.RunID,
		StartedAt:           report.StartedAt,
		Duration:            report.Duration,
		UniverseSize:        report.UniverseSize,
		ChunksTotal:         report.ChunksTotal,
		ChunksFailed:        report.ChunksFailed,
		Gainers:             len(report.Gainers),
		Losers:              len(report.Losers),
		SkippedNoData:       counts[model.SkipNoData],
		SkippedShortHistory: counts[model.SkipInsufficientHistory],
		SkippedDuplicate:    counts[model.SkipDuplicateListing],
		SkippedError:        counts[model.SkipIndicatorError],
		Outcome:             "ok",
	}
}

// FailedRun builds the journal entry for a scan that produced no report.
func FailedRun(startedAt time.Time, err error) *RunRecord {
	return &RunRecord{
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Outcome:   err.Error(),
	}
}

// Recorder journals scan runs for later inspection.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	Close() error
}
