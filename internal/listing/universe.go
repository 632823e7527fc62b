package listing

import "MarketScanner/internal/model"

// BuildUniverse turns raw listing symbols into the ordered ticker universe:
// unique base symbols in first-occurrence order, once per exchange. The full
// NSE block comes first, then the BSE block in the same base order.
//
// The classifier keeps the first classified occurrence per base symbol, so
// NSE listings take precedence over their BSE twins purely by position.
func BuildUniverse(symbols []string) []model.Ticker {
	seen := make(map[string]bool, len(symbols))
	bases := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		bases = append(bases, s)
	}

	universe := make([]model.Ticker, 0, 2*len(bases))
	for _, b := range bases {
		universe = append(universe, model.Ticker{Base: b, Exchange: model.ExchangeNSE})
	}
	for _, b := range bases {
		universe = append(universe, model.Ticker{Base: b, Exchange: model.ExchangeBSE})
	}
	return universe
}
