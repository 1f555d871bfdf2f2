package notifier

import (
	"fmt"
	"strconv"
	"strings"

	"NavSentinel/internal/model"
)

// errorMarker prefixes failure reports so the recipient can tell them from
// estimates at a glance.
const errorMarker = "⚠️ NAV推定でエラー"

// FormatEstimateReport renders the estimate as the push message body.
// Holdings determine the listing order. Pure and deterministic.
func FormatEstimateReport(est *model.Estimate, holdings []model.Holding) string {
	var b strings.Builder

	b.WriteString("📈【FANG+ 推定基準価額】\n")
	b.WriteString(fmt.Sprintf("前日基準価額: %s 円\n", formatComma(est.PrevBasePrice, 2)))
	b.WriteString(fmt.Sprintf("推定基準価額: %s 円\n", formatComma(est.EstBasePrice, 2)))
	b.WriteString(fmt.Sprintf("前日比: %s 円 (%.2f%%)\n", formatComma(est.Diff, 2), est.PctDiff))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("USDJPY: %.2f → %.2f\n", est.PrevFX, est.LatestFX))

	b.WriteString("\n保有株数推定:\n")
	for _, h := range holdings {
		b.WriteString(fmt.Sprintf("%s: %s株\n", h.Ticker, formatComma(est.Shares[h.Ticker], 1)))
	}

	return b.String()
}

// FormatErrorReport renders a pipeline failure for the same delivery
// channel, with the captured stack for diagnosis.
func FormatErrorReport(err error, stack []byte) string {
	var b strings.Builder
	b.WriteString(errorMarker)
	b.WriteString("\n\n")
	b.WriteString(err.Error())
	b.WriteString("\n\n")
	b.Write(stack)
	return b.String()
}

// formatComma renders v with the given number of decimals and thousand
// separators in the integer part, matching the published price format.
func formatComma(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := sign + strings.Join(groups, ",")
	if hasFrac {
		out += "." + fracPart
	}
	return out
}
