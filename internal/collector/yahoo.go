package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"NavSentinel/internal/model"
)

// YahooFetcher implements Fetcher using Yahoo Finance public chart API.
// It serves both the equity tickers and FX crosses (e.g. "USDJPY=X").
type YahooFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		BaseURL: "https://query1.finance.yahoo.com/v8/finance/chart",
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []interface{} `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// FetchDailyCloses returns up to days of daily closing prices for symbol,
// oldest first. Null bars (exchange holidays) are skipped here; gap filling
// across symbols happens during alignment.
func (f *YahooFetcher) FetchDailyCloses(symbol string, days int) ([]model.Close, error) {
	rng := "1mo"
	if days > 30 {
		rng = "3mo"
	}
	u := fmt.Sprintf("%s/%s?interval=1d&range=%s", f.BaseURL, url.PathEscape(symbol), rng)

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &model.TransportError{Feed: "yahoo", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.TransportError{Feed: "yahoo", Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &model.TransportError{
			Feed: "yahoo",
			Err:  fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body)),
		}
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, &model.DataFormatError{Feed: "yahoo", Detail: fmt.Sprintf("decode: %v", err)}
	}
	if chart.Chart.Error != nil {
		return nil, &model.DataFormatError{Feed: "yahoo", Detail: chart.Chart.Error.Description}
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, &model.DataFormatError{Feed: "yahoo", Detail: fmt.Sprintf("no data for %s", symbol)}
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, &model.DataFormatError{Feed: "yahoo", Detail: fmt.Sprintf("no quote data for %s", symbol)}
	}
	quote := result.Indicators.Quote[0]

	closes := make([]model.Close, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		c := toFloat(quote.Close[i])
		if c == 0 {
			continue // null bar (holiday etc.)
		}
		closes = append(closes, model.Close{Date: time.Unix(ts, 0), Price: c})
	}

	sort.Slice(closes, func(i, j int) bool { return closes[i].Date.Before(closes[j].Date) })
	if len(closes) > days {
		closes = closes[len(closes)-days:]
	}
	return closes, nil
}
