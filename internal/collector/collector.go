package collector

import (
	"errors"
	"fmt"
	"log"
	"time"

	"MarketScanner/internal/model"
)

// ErrNoData indicates that no market data could be downloaded for any
// chunk of the universe.
var ErrNoData = errors.New("no market data downloaded")

// DefaultChunkSize is the number of symbols requested per provider batch.
const DefaultChunkSize = 300

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price   float64
	Data    model.Dataset   // when set, returned per symbol instead of generated bars
	FailAll bool            // every batch call fails
	FailFor map[string]bool // batches containing any of these symbols fail
	Calls   [][]string      // batches requested, in order
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(symbols []string, days int) (model.Dataset, error) {
	m.Calls = append(m.Calls, symbols)
	if m.FailAll {
		return nil, fmt.Errorf("mock: batch failed")
	}
	for _, s := range symbols {
		if m.FailFor[s] {
			return nil, fmt.Errorf("mock: batch containing %s failed", s)
		}
	}
	ds := make(model.Dataset, len(symbols))
	for _, s := range symbols {
		if m.Data != nil {
			if bars, ok := m.Data[s]; ok {
				ds[s] = bars
			}
			continue
		}
		ds[s] = generateMockBars(m.Price, days)
	}
	return ds, nil
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// ChunkStats reports how a chunked download went.
type ChunkStats struct {
	Total  int
	Failed int
}

// Collector downloads daily history for a ticker universe in fixed-size
// chunks. A failed chunk is logged and skipped; its tickers are simply
// absent from the merged dataset.
type Collector struct {
	Fetcher      Fetcher
	ChunkSize    int
	LookbackDays int

	// Progress, when set, is called after each chunk with the number of
	// symbols attempted so far and the universe size.
	Progress func(processed, total int)
}

// NewCollector creates a Collector with the default chunk size.
func NewCollector(fetcher Fetcher, lookbackDays int) *Collector {
	return &Collector{
		Fetcher:      fetcher,
		ChunkSize:    DefaultChunkSize,
		LookbackDays: lookbackDays,
	}
}

// FetchAll downloads history for every ticker in the universe and merges
// the chunk results. It returns ErrNoData when every chunk failed.
func (c *Collector) FetchAll(universe []model.Ticker) (model.Dataset, ChunkStats, error) {
	symbols := make([]string, len(universe))
	for i, t := range universe {
		symbols[i] = t.Symbol()
	}

	size := c.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	totalChunks := (len(symbols) + size - 1) / size

	var stats ChunkStats
	merged := make(model.Dataset, len(symbols))
	for start := 0; start < len(symbols); start += size {
		end := start + size
		if end > len(symbols) {
			end = len(symbols)
		}
		chunk := symbols[start:end]
		stats.Total++

		ds, err := c.Fetcher.FetchDailyBars(chunk, c.LookbackDays)
		if err != nil {
			stats.Failed++
			log.Printf("[WARN] chunk %d/%d (%d symbols) failed: %v",
				stats.Total, totalChunks, len(chunk), err)
		} else {
			merged.Merge(ds)
		}

		if c.Progress != nil {
			c.Progress(end, len(symbols))
		}
	}

	if stats.Total > 0 && stats.Failed == stats.Total {
		return nil, stats, fmt.Errorf("%w: all %d chunks failed", ErrNoData, stats.Total)
	}
	return merged, stats, nil
}
