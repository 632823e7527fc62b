package collector

import "MarketScanner/internal/model"

// Fetcher defines the interface for batched market data retrieval.
type Fetcher interface {
	// FetchDailyBars returns up to days daily bars per requested symbol,
	// keyed by the symbol exactly as requested. Symbols the provider has
	// no data for are absent from the result; a non-nil error means the
	// whole batch failed.
	FetchDailyBars(symbols []string, days int) (model.Dataset, error)
	Name() string
}
