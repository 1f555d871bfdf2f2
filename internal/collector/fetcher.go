package collector

import "NavSentinel/internal/model"

// Fetcher defines the interface for fetching daily closing prices.
type Fetcher interface {
	FetchDailyCloses(symbol string, days int) ([]model.Close, error)
	Name() string
}
