package model

import "strings"

// Exchange identifies the listing venue of a ticker.
type Exchange string

const (
	// ExchangeNSE is the primary venue; its tickers are scanned first and
	// therefore win cross-exchange deduplication.
	ExchangeNSE Exchange = "NSE"
	// ExchangeBSE is the secondary venue for dual-listed symbols.
	ExchangeBSE Exchange = "BSE"
)

// Suffix returns the symbol suffix the data providers use for this venue.
func (e Exchange) Suffix() string {
	switch e {
	case ExchangeNSE:
		return ".NS"
	case ExchangeBSE:
		return ".BO"
	}
	return ""
}

// Ticker is one instrument: a base symbol listed on a specific exchange.
// Two Tickers share a base symbol, one per exchange.
type Ticker struct {
	Base     string
	Exchange Exchange
}

// Symbol returns the full provider symbol, e.g. "RELIANCE.NS".
func (t Ticker) Symbol() string {
	return t.Base + t.Exchange.Suffix()
}

// BaseSymbol strips a known exchange suffix from a full symbol.
func BaseSymbol(symbol string) string {
	for _, e := range []Exchange{ExchangeNSE, ExchangeBSE} {
		if s := strings.TrimSuffix(symbol, e.Suffix()); s != symbol {
			return s
		}
	}
	return symbol
}
