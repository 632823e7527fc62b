package collector

import (
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"MarketScanner/internal/model"
)

// AlpacaFetcher implements Fetcher using the Alpaca market data API. One
// GetMultiBars call covers a whole batch, which makes it the cheaper
// provider for large universes, but it only serves symbols Alpaca lists.
type AlpacaFetcher struct {
	client *marketdata.Client
}

// NewAlpacaFetcher creates an Alpaca fetcher from API credentials.
func NewAlpacaFetcher(apiKey, apiSecret string) *AlpacaFetcher {
	return &AlpacaFetcher{
		client: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
		}),
	}
}

func (f *AlpacaFetcher) Name() string { return "alpaca" }

// FetchDailyBars fetches unadjusted daily bars for the batch in a single
// API call. Alpaca has no exchange-suffix notation, so suffixes are
// stripped for the request and the bars are keyed back by the symbol as
// requested.
func (f *AlpacaFetcher) FetchDailyBars(symbols []string, days int) (model.Dataset, error) {
	if len(symbols) == 0 {
		return model.Dataset{}, nil
	}

	requested := make(map[string][]string, len(symbols)) // base symbol to requested forms
	bases := make([]string, 0, len(symbols))
	for _, s := range symbols {
		base := model.BaseSymbol(s)
		if _, ok := requested[base]; !ok {
			bases = append(bases, base)
		}
		requested[base] = append(requested[base], s)
	}

	multiBars, err := f.client.GetMultiBars(bases, marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Adjustment: marketdata.Raw,
		Start:      time.Now().AddDate(0, 0, -days),
	})
	if err != nil {
		return nil, fmt.Errorf("alpaca GetMultiBars: %w", err)
	}

	ds := make(model.Dataset, len(symbols))
	for base, alpacaBars := range multiBars {
		bars := make([]model.OHLCV, 0, len(alpacaBars))
		for _, ab := range alpacaBars {
			bars = append(bars, model.OHLCV{
				Time:   ab.Timestamp,
				Open:   ab.Open,
				High:   ab.High,
				Low:    ab.Low,
				Close:  ab.Close,
				Volume: float64(ab.Volume),
			})
		}
		if len(bars) > days {
			bars = bars[len(bars)-days:]
		}
		for _, sym := range requested[base] {
			ds[sym] = bars
		}
	}
	return ds, nil
}
