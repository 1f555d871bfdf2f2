package estimator

import (
	"time"

	"NavSentinel/internal/model"
)

// EstimateShares back-calculates the implied share count per holding from
// the last published NAV, the static weight table, and the prior day's
// prices. Weights are used exactly as given, never normalized. The fund is
// denominated in JPY while holdings trade in USD, so each holding's slice
// of the NAV is converted at the prior FX rate before dividing by its
// prior price.
//
// Returns the shares map and the implied outstanding unit count
// (PrevNAV / PrevBasePrice). Any zero divisor yields an ArithmeticError
// so no Inf or NaN can reach the report.
func EstimateShares(ref *model.ReferenceSnapshot, holdings []model.Holding, prevPrices map[string]float64, prevFX float64) (map[string]float64, float64, error) {
	if ref.PrevBasePrice == 0 {
		return nil, 0, &model.ArithmeticError{Quantity: "previous base price"}
	}
	if prevFX == 0 {
		return nil, 0, &model.ArithmeticError{Quantity: "previous FX rate"}
	}

	units := ref.PrevNAV / ref.PrevBasePrice
	shares := make(map[string]float64, len(holdings))
	for _, h := range holdings {
		p := prevPrices[h.Ticker]
		if p == 0 {
			return nil, 0, &model.ArithmeticError{Quantity: "previous price of " + h.Ticker}
		}
		usdValue := ref.PrevNAV * h.Weight / prevFX
		shares[h.Ticker] = usdValue / p
	}
	return shares, units, nil
}

// Project revalues the estimated holdings at the latest prices and FX rate
// and derives the estimated base price plus its change versus the previous
// one. A bad or stale latest price flows straight through: there is no
// smoothing or outlier rejection.
func Project(shares map[string]float64, units float64, holdings []model.Holding, latestPrices map[string]float64, prevFX, latestFX float64, ref *model.ReferenceSnapshot) (*model.Estimate, error) {
	if units == 0 {
		return nil, &model.ArithmeticError{Quantity: "unit count"}
	}
	if ref.PrevBasePrice == 0 {
		return nil, &model.ArithmeticError{Quantity: "previous base price"}
	}

	var totalUSD float64
	for _, h := range holdings {
		totalUSD += shares[h.Ticker] * latestPrices[h.Ticker]
	}
	totalJPY := totalUSD * latestFX
	est := totalJPY / units
	diff := est - ref.PrevBasePrice

	return &model.Estimate{
		Shares:        shares,
		Units:         units,
		PrevFX:        prevFX,
		LatestFX:      latestFX,
		PrevBasePrice: ref.PrevBasePrice,
		EstBasePrice:  est,
		TotalUSD:      totalUSD,
		TotalJPY:      totalJPY,
		Diff:          diff,
		PctDiff:       diff / ref.PrevBasePrice * 100,
		ComputedAt:    time.Now(),
	}, nil
}
