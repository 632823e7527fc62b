package listing

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultNSEListingURL is the exchange's full equity listing export.
const DefaultNSEListingURL = "https://archives.nseindia.com/content/equities/EQUITY_L.csv"

// symbolColumn is the required column of the listing CSV.
const symbolColumn = "SYMBOL"

// NSEClient fetches the equity listing CSV published by the exchange
// archives. The endpoint needs no authentication, only a conventional
// browser User-Agent.
type NSEClient struct {
	URL    string
	Client *http.Client
}

// NewNSEClient creates a listing client with optional proxy support.
// An empty listingURL falls back to DefaultNSEListingURL.
func NewNSEClient(listingURL, proxyURL string) *NSEClient {
	if listingURL == "" {
		listingURL = DefaultNSEListingURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &NSEClient{
		URL: listingURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (c *NSEClient) Name() string { return "nse" }

// FetchSymbols downloads and parses the listing. Any transport or parse
// failure is reported as ErrUnavailable so callers can abort the scan
// without inspecting the cause.
func (c *NSEClient) FetchSymbols() ([]string, error) {
	req, err := http.NewRequest("GET", c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch listing: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: listing fetch: status %d", ErrUnavailable, resp.StatusCode)
	}

	symbols, err := ParseSymbols(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return symbols, nil
}

// ParseSymbols extracts the SYMBOL column from a listing CSV. Header cells
// are whitespace-trimmed before matching because the published file pads
// some column names.
func ParseSymbols(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read listing header: %w", err)
	}
	symbolIdx := -1
	for i, col := range header {
		if strings.TrimSpace(col) == symbolColumn {
			symbolIdx = i
			break
		}
	}
	if symbolIdx == -1 {
		return nil, fmt.Errorf("listing has no %s column", symbolColumn)
	}

	var symbols []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read listing row: %w", err)
		}
		if symbolIdx >= len(record) {
			continue
		}
		if sym := strings.TrimSpace(record[symbolIdx]); sym != "" {
			symbols = append(symbols, sym)
		}
	}
	return symbols, nil
}
