package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"MarketScanner/internal/model"
)

// defaultWorkers bounds concurrent chart requests within one batch.
const defaultWorkers = 16

// YahooFetcher implements Fetcher using the Yahoo Finance chart API. The
// API serves one symbol per request, so a batch fans out over a bounded
// worker pool.
type YahooFetcher struct {
	Client  *http.Client
	BaseURL string
	Workers int
	Quiet   bool // suppress per-symbol warnings on large universes
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL: "https://query1.finance.yahoo.com",
		Workers: defaultWorkers,
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// toFloat converts a chart API cell to float64. The API encodes missing
// values as JSON null; those become NaN so the cleaning step can drop them.
func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return math.NaN()
	}
}

// rangeForDays maps a requested day count onto the smallest chart API range
// parameter that covers it. Yahoo caps daily-interval history at "2y".
func rangeForDays(days int) string {
	switch {
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	case days <= 365:
		return "1y"
	default:
		return "2y"
	}
}

func (f *YahooFetcher) fetchChart(symbol, interval, rng string) ([]model.OHLCV, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		f.BaseURL, url.PathEscape(symbol), interval, rng)

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote data")
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := toFloat(cell(quote.Open, i))
		h := toFloat(cell(quote.High, i))
		l := toFloat(cell(quote.Low, i))
		c := toFloat(cell(quote.Close, i))
		if math.IsNaN(o) && math.IsNaN(h) && math.IsNaN(l) && math.IsNaN(c) {
			continue // fully null bar (holidays etc.)
		}
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(cell(quote.Volume, i)),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// cell indexes a quote column; truncated columns read as null.
func cell(col []interface{}, i int) interface{} {
	if i >= len(col) {
		return nil
	}
	return col[i]
}

// FetchDailyBars downloads daily history for every symbol in the batch.
// Failed symbols are logged and left out of the result; the error return
// is non-nil only when not a single symbol succeeded.
func (f *YahooFetcher) FetchDailyBars(symbols []string, days int) (model.Dataset, error) {
	rng := rangeForDays(days)

	workers := f.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	if workers > len(symbols) {
		workers = len(symbols)
	}

	jobs := make(chan string, len(symbols))
	for _, s := range symbols {
		jobs <- s
	}
	close(jobs)

	var (
		mu      sync.Mutex
		ds      = make(model.Dataset, len(symbols))
		failed  int
		lastErr error
		wg      sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range jobs {
				bars, err := f.fetchChart(symbol, "1d", rng)
				if err != nil {
					if !f.Quiet {
						log.Printf("[WARN] %s: %v", symbol, err)
					}
					mu.Lock()
					failed++
					lastErr = err
					mu.Unlock()
					continue
				}
				// Trim to requested count
				if len(bars) > days {
					bars = bars[len(bars)-days:]
				}
				mu.Lock()
				ds[symbol] = bars
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(ds) == 0 && failed > 0 {
		return nil, fmt.Errorf("yahoo: all %d symbols failed, last: %w", failed, lastErr)
	}
	return ds, nil
}
