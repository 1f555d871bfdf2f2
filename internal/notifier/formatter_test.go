package notifier

import (
	"errors"
	"strings"
	"testing"

	"NavSentinel/internal/model"
)

func sampleEstimate() *model.Estimate {
	return &model.Estimate{
		Shares:        map[string]float64{"NVDA": 1234.5678, "AAPL": 987.6},
		Units:         19.2,
		PrevFX:        151.23,
		LatestFX:      152.01,
		PrevBasePrice: 52340,
		EstBasePrice:  53100.5,
		Diff:          760.5,
		PctDiff:       1.4530,
	}
}

var sampleHoldings = []model.Holding{
	{Ticker: "NVDA", Weight: 0.11},
	{Ticker: "AAPL", Weight: 0.105},
}

func TestFormatEstimateReport_Content(t *testing.T) {
	got := FormatEstimateReport(sampleEstimate(), sampleHoldings)

	wantLines := []string{
		"📈【FANG+ 推定基準価額】",
		"前日基準価額: 52,340.00 円",
		"推定基準価額: 53,100.50 円",
		"前日比: 760.50 円 (1.45%)",
		"USDJPY: 151.23 → 152.01",
		"NVDA: 1,234.6株",
		"AAPL: 987.6株",
	}
	for _, want := range wantLines {
		if !strings.Contains(got, want) {
			t.Errorf("report missing line %q\nfull report:\n%s", want, got)
		}
	}
}

func TestFormatEstimateReport_HoldingOrder(t *testing.T) {
	got := FormatEstimateReport(sampleEstimate(), sampleHoldings)
	if strings.Index(got, "NVDA") > strings.Index(got, "AAPL") {
		t.Error("holdings listed out of weight order")
	}
}

func TestFormatEstimateReport_Idempotent(t *testing.T) {
	est := sampleEstimate()
	first := FormatEstimateReport(est, sampleHoldings)
	second := FormatEstimateReport(est, sampleHoldings)
	if first != second {
		t.Error("formatter output changed between identical calls")
	}
}

func TestFormatErrorReport(t *testing.T) {
	err := errors.New("daiwa: bad data: no data rows")
	got := FormatErrorReport(err, []byte("goroutine 1 [running]:\nmain.main()"))

	if !strings.HasPrefix(got, "⚠️ NAV推定でエラー") {
		t.Errorf("error report missing marker prefix:\n%s", got)
	}
	if !strings.Contains(got, "no data rows") {
		t.Error("error report missing error text")
	}
	if !strings.Contains(got, "goroutine 1 [running]") {
		t.Error("error report missing stack trace")
	}
}

func TestFormatComma(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     string
	}{
		{0, 2, "0.00"},
		{1999.96, 1, "2,000.0"},
		{52340, 2, "52,340.00"},
		{1234567.891, 2, "1,234,567.89"},
		{-9876.5, 2, "-9,876.50"},
		{123, 0, "123"},
		{-1234567, 0, "-1,234,567"},
	}
	for _, tt := range tests {
		if got := formatComma(tt.v, tt.decimals); got != tt.want {
			t.Errorf("formatComma(%v, %d): expected %q, got %q", tt.v, tt.decimals, tt.want, got)
		}
	}
}
