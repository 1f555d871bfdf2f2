package model

import "time"

// Estimate is the outcome of one NAV estimation run. It is built once per
// run and never mutated afterwards.
type Estimate struct {
	Shares        map[string]float64 // ticker -> implied share count (fractional, analytical)
	Units         float64            // outstanding units implied by PrevNAV / PrevBasePrice
	PrevFX        float64
	LatestFX      float64
	PrevBasePrice float64
	EstBasePrice  float64
	TotalUSD      float64
	TotalJPY      float64
	Diff          float64 // EstBasePrice - PrevBasePrice
	PctDiff       float64 // Diff / PrevBasePrice * 100
	ComputedAt    time.Time
}
