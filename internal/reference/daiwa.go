package reference

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"NavSentinel/internal/model"
)

const defaultDaiwaBaseURL = "https://www.daiwa-am.co.jp/funds/detail/csv_out.php"

// Column headers as published in the Daiwa CSV export.
const (
	colBasePrice = "基準価額"
	colNetAssets = "純資産総額"
)

// DaiwaSource fetches the published NAV history CSV for one fund from the
// Daiwa AM export endpoint. The feed is Shift_JIS encoded; the last row is
// the most recent valuation date.
type DaiwaSource struct {
	BaseURL  string
	FundCode string
	Client   *http.Client
}

// NewDaiwaSource creates a source for the given fund code with optional
// proxy support.
func NewDaiwaSource(fundCode, proxyURL string) *DaiwaSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &DaiwaSource{
		BaseURL:  defaultDaiwaBaseURL,
		FundCode: fundCode,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (s *DaiwaSource) Name() string { return "daiwa" }

// Latest downloads the fund's CSV export and returns the last published
// base price and total net assets.
func (s *DaiwaSource) Latest(ctx context.Context) (*model.ReferenceSnapshot, error) {
	endpoint := fmt.Sprintf("%s?code=%s&type=1", s.BaseURL, url.QueryEscape(s.FundCode))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, &model.TransportError{Feed: "daiwa", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &model.TransportError{
			Feed: "daiwa",
			Err:  fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body)),
		}
	}
	return parseSnapshot(transform.NewReader(resp.Body, japanese.ShiftJIS.NewDecoder()))
}

// parseSnapshot reads the decoded CSV, locates the base-price and
// net-assets columns by header name, and takes the last data row.
func parseSnapshot(r io.Reader) (*model.ReferenceSnapshot, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, &model.DataFormatError{Feed: "daiwa", Detail: fmt.Sprintf("parse csv: %v", err)}
	}
	if len(rows) < 2 {
		return nil, &model.DataFormatError{Feed: "daiwa", Detail: "no data rows"}
	}

	baseIdx, navIdx := -1, -1
	for i, name := range rows[0] {
		switch strings.TrimSpace(name) {
		case colBasePrice:
			baseIdx = i
		case colNetAssets:
			navIdx = i
		}
	}
	if baseIdx < 0 || navIdx < 0 {
		return nil, &model.DataFormatError{
			Feed:   "daiwa",
			Detail: fmt.Sprintf("missing %s or %s column", colBasePrice, colNetAssets),
		}
	}

	last := rows[len(rows)-1]
	if len(last) <= baseIdx || len(last) <= navIdx {
		return nil, &model.DataFormatError{Feed: "daiwa", Detail: "last row is short"}
	}

	base, err := parseNumber(last[baseIdx])
	if err != nil {
		return nil, &model.DataFormatError{
			Feed:   "daiwa",
			Detail: fmt.Sprintf("%s %q: %v", colBasePrice, last[baseIdx], err),
		}
	}
	nav, err := parseNumber(last[navIdx])
	if err != nil {
		return nil, &model.DataFormatError{
			Feed:   "daiwa",
			Detail: fmt.Sprintf("%s %q: %v", colNetAssets, last[navIdx], err),
		}
	}

	return &model.ReferenceSnapshot{PrevBasePrice: base, PrevNAV: nav}, nil
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
}
