package scan

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"MarketScanner/internal/collector"
	"MarketScanner/internal/listing"
	"MarketScanner/internal/model"
)

// DefaultThreshold is the daily move, in percent, that classifies a ticker.
const DefaultThreshold = 5.0

// DefaultMAWindow is the moving average window in trading days.
const DefaultMAWindow = 20

// Engine runs the full daily movers scan: listing, universe expansion,
// chunked download, per-ticker indicators, then threshold classification
// with cross-exchange deduplication.
type Engine struct {
	Listing   listing.Source
	Collector *collector.Collector
	Threshold float64 // classification band half-width, percent
	MAWindow  int
}

// NewEngine creates an Engine with the default threshold and MA window.
func NewEngine(src listing.Source, coll *collector.Collector) *Engine {
	return &Engine{
		Listing:   src,
		Collector: coll,
		Threshold: DefaultThreshold,
		MAWindow:  DefaultMAWindow,
	}
}

// Run executes one scan and returns its report. The error is non-nil only
// when the whole run is unusable: no listing, or no chunk downloaded.
func (e *Engine) Run() (*model.Report, error) {
	started := time.Now()
	report := &model.Report{
		RunID:     uuid.NewString(),
		StartedAt: started,
	}

	symbols, err := e.Listing.FetchSymbols()
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: empty listing", listing.ErrUnavailable)
	}

	universe := listing.BuildUniverse(symbols)
	report.UniverseSize = len(universe)
	log.Printf("[INFO] scan %s: %d listing symbols, universe of %d tickers",
		report.RunID, len(symbols), len(universe))

	dataset, stats, err := e.Collector.FetchAll(universe)
	report.ChunksTotal = stats.Total
	report.ChunksFailed = stats.Failed
	if err != nil {
		return nil, fmt.Errorf("download market data: %w", err)
	}

	threshold := e.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	maWindow := e.MAWindow
	if maWindow <= 0 {
		maWindow = DefaultMAWindow
	}

	// One classified row per base symbol. The universe is ordered NSE
	// first, so an NSE listing that classifies claims the slot and its
	// BSE twin records a duplicate skip. A variant that is skipped or
	// inside the band claims nothing.
	seen := make(map[string]bool)
	for _, t := range universe {
		bars, ok := dataset[t.Symbol()]
		if !ok {
			report.Skips = append(report.Skips, model.Skip{Ticker: t, Reason: model.SkipNoData})
			continue
		}

		snap, err := ComputeSnapshot(bars, maWindow)
		if err != nil {
			reason := model.SkipIndicatorError
			if errors.Is(err, ErrInsufficientHistory) {
				reason = model.SkipInsufficientHistory
			}
			report.Skips = append(report.Skips, model.Skip{Ticker: t, Reason: reason})
			continue
		}

		class, mover := classify(snap.ReturnPctToday, threshold)
		if !mover {
			continue
		}
		if seen[t.Base] {
			report.Skips = append(report.Skips, model.Skip{Ticker: t, Reason: model.SkipDuplicateListing})
			continue
		}
		seen[t.Base] = true

		row := model.ScanRow{Ticker: t, Classification: class, Snapshot: *snap}
		if class == model.ClassGainer {
			report.Gainers = append(report.Gainers, row)
		} else {
			report.Losers = append(report.Losers, row)
		}
	}

	sort.SliceStable(report.Gainers, func(i, j int) bool {
		return report.Gainers[i].Snapshot.ReturnPctToday > report.Gainers[j].Snapshot.ReturnPctToday
	})
	sort.SliceStable(report.Losers, func(i, j int) bool {
		return report.Losers[i].Snapshot.ReturnPctToday < report.Losers[j].Snapshot.ReturnPctToday
	})

	report.Duration = time.Since(started)
	log.Printf("[INFO] scan %s: %d gainers, %d losers, %d skipped in %s",
		report.RunID, len(report.Gainers), len(report.Losers), len(report.Skips),
		report.Duration.Round(time.Millisecond))
	return report, nil
}

// classify places a daily return into the gainer or loser band. The
// threshold is inclusive on both sides; a NaN return never classifies.
func classify(ret, threshold float64) (model.Classification, bool) {
	switch {
	case ret >= threshold:
		return model.ClassGainer, true
	case ret <= -threshold:
		return model.ClassLoser, true
	}
	return "", false
}
