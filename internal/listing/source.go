package listing

import "errors"

// ErrUnavailable indicates the listing provider could not be reached or
// returned a payload the universe cannot be built from. Callers abort the
// scan and report an empty universe; the fetch is never retried.
var ErrUnavailable = errors.New("listing unavailable")

// Source supplies the raw base symbols the ticker universe is built from.
type Source interface {
	FetchSymbols() ([]string, error)
	Name() string
}

// StaticSource returns a fixed symbol list, for development and testing.
type StaticSource struct {
	Symbols []string
	Err     error
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) FetchSymbols() ([]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Symbols, nil
}
