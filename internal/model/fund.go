package model

// Holding is one fund constituent with its static target weight.
// The weight is the fraction of total fund value allocated to the ticker
// as of the last published valuation; the table is fixed at process start.
type Holding struct {
	Ticker string
	Weight float64
}

// ReferenceSnapshot holds the most recent officially published fund values.
type ReferenceSnapshot struct {
	PrevBasePrice float64 // per-unit price, JPY
	PrevNAV       float64 // total net assets, JPY
}
