package model

import "time"

// Close is a single daily closing price observation.
type Close struct {
	Date  time.Time
	Price float64
}

// ClosingTable holds daily closes per symbol, aligned on a shared
// trading-day axis and forward-filled. Dates are sorted ascending and
// every symbol has exactly one price per date.
type ClosingTable struct {
	Dates  []time.Time
	Closes map[string][]float64
}

// Rows returns the number of aligned observations.
func (t *ClosingTable) Rows() int { return len(t.Dates) }

// Last returns the most recent close for symbol.
func (t *ClosingTable) Last(symbol string) float64 {
	return t.Closes[symbol][len(t.Dates)-1]
}

// Prev returns the second-to-last close for symbol.
func (t *ClosingTable) Prev(symbol string) float64 {
	return t.Closes[symbol][len(t.Dates)-2]
}
