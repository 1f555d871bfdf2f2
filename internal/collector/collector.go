package collector

import (
	"fmt"
	"sort"
	"time"

	"NavSentinel/internal/model"
)

// MockFetcher returns canned close series for development and testing.
type MockFetcher struct {
	Series map[string][]model.Close
	Err    error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyCloses(symbol string, _ int) ([]model.Close, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Series[symbol], nil
}

// Collector fetches daily closes for every fund symbol and aligns them on
// a shared trading-day axis.
type Collector struct {
	Fetcher    Fetcher
	WindowDays int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, windowDays int) *Collector {
	return &Collector{Fetcher: fetcher, WindowDays: windowDays}
}

// Collect fetches closes for all symbols over the trailing window and
// returns them aligned and forward-filled. The FX cross is fetched through
// the same path as the equities so all columns share the date axis.
func (c *Collector) Collect(symbols []string) (*model.ClosingTable, error) {
	series := make(map[string][]model.Close, len(symbols))
	for _, sym := range symbols {
		closes, err := c.Fetcher.FetchDailyCloses(sym, c.WindowDays)
		if err != nil {
			return nil, fmt.Errorf("fetch closes for %s: %w", sym, err)
		}
		series[sym] = closes
	}
	return Align(series)
}

const dayKey = "2006-01-02"

// Align merges per-symbol close series onto the union of their trading
// days and forward-fills gaps: a missing day's close is imputed from the
// most recent prior available close. Days before a symbol's first
// observation cannot be filled and are dropped for every symbol. No
// cross-validation of date freshness is performed; a stale close may be
// paired with a fresh one on the last row.
func Align(series map[string][]model.Close) (*model.ClosingTable, error) {
	daySet := make(map[string]time.Time)
	for _, closes := range series {
		for _, cl := range closes {
			daySet[cl.Date.Format(dayKey)] = cl.Date
		}
	}
	keys := make([]string, 0, len(daySet))
	for k := range daySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Forward-fill each symbol along the shared axis and find the first
	// index at which every symbol has a value.
	filled := make(map[string][]float64, len(series))
	start := 0
	startSym := ""
	for sym, closes := range series {
		byDay := make(map[string]float64, len(closes))
		for _, cl := range closes {
			byDay[cl.Date.Format(dayKey)] = cl.Price
		}
		col := make([]float64, len(keys))
		last := 0.0
		first := -1
		for i, k := range keys {
			if p, ok := byDay[k]; ok {
				last = p
				if first < 0 {
					first = i
				}
			}
			col[i] = last
		}
		if first < 0 {
			first = len(keys)
		}
		if first > start {
			start = first
			startSym = sym
		}
		filled[sym] = col
	}

	rows := len(keys) - start
	if rows < 2 {
		if startSym == "" && len(series) > 0 {
			for sym := range series {
				startSym = sym
				break
			}
		}
		return nil, &model.InsufficientDataError{Symbol: startSym, Got: rows, Want: 2}
	}

	dates := make([]time.Time, 0, rows)
	for _, k := range keys[start:] {
		dates = append(dates, daySet[k])
	}
	closes := make(map[string][]float64, len(filled))
	for sym, col := range filled {
		closes[sym] = col[start:]
	}
	return &model.ClosingTable{Dates: dates, Closes: closes}, nil
}
