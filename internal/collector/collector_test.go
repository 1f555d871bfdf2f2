package collector

import (
	"errors"
	"testing"
	"time"

	"NavSentinel/internal/model"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestAlign_ForwardFill(t *testing.T) {
	// AAPL missing Jan 3, FX trades every day.
	series := map[string][]model.Close{
		"AAPL": {
			{Date: day(2), Price: 100},
			{Date: day(4), Price: 104},
		},
		"USDJPY=X": {
			{Date: day(2), Price: 150},
			{Date: day(3), Price: 151},
			{Date: day(4), Price: 152},
		},
	}
	table, err := Align(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Rows() != 3 {
		t.Fatalf("expected 3 aligned rows, got %d", table.Rows())
	}
	// The gap day carries the prior close.
	if got := table.Closes["AAPL"][1]; got != 100 {
		t.Errorf("expected AAPL Jan 3 forward-filled to 100, got %.2f", got)
	}
	if table.Prev("AAPL") != 100 || table.Last("AAPL") != 104 {
		t.Errorf("unexpected AAPL prev/last: %.2f/%.2f", table.Prev("AAPL"), table.Last("AAPL"))
	}
	if table.Prev("USDJPY=X") != 151 || table.Last("USDJPY=X") != 152 {
		t.Errorf("unexpected FX prev/last: %.2f/%.2f", table.Prev("USDJPY=X"), table.Last("USDJPY=X"))
	}
}

func TestAlign_LeadingGapTrimmed(t *testing.T) {
	// NVDA only starts on Jan 3: Jan 2 cannot be filled and is dropped.
	series := map[string][]model.Close{
		"NVDA": {
			{Date: day(3), Price: 500},
			{Date: day(4), Price: 510},
		},
		"USDJPY=X": {
			{Date: day(2), Price: 150},
			{Date: day(3), Price: 151},
			{Date: day(4), Price: 152},
		},
	}
	table, err := Align(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Rows() != 2 {
		t.Fatalf("expected 2 aligned rows, got %d", table.Rows())
	}
	if table.Prev("USDJPY=X") != 151 {
		t.Errorf("expected FX prev 151 after trim, got %.2f", table.Prev("USDJPY=X"))
	}
}

func TestAlign_InsufficientData(t *testing.T) {
	series := map[string][]model.Close{
		"AAPL":     {{Date: day(4), Price: 104}},
		"USDJPY=X": {{Date: day(4), Price: 152}},
	}
	_, err := Align(series)
	var ide *model.InsufficientDataError
	if !errors.As(err, &ide) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
	if ide.Want != 2 {
		t.Errorf("expected want=2, got %d", ide.Want)
	}
}

func TestAlign_SymbolWithNoData(t *testing.T) {
	series := map[string][]model.Close{
		"AAPL": {
			{Date: day(2), Price: 100},
			{Date: day(3), Price: 102},
		},
		"NVDA": nil,
	}
	_, err := Align(series)
	var ide *model.InsufficientDataError
	if !errors.As(err, &ide) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
	if ide.Symbol != "NVDA" {
		t.Errorf("expected NVDA flagged, got %q", ide.Symbol)
	}
}

func TestCollect_FetchErrorPropagates(t *testing.T) {
	wantErr := &model.TransportError{Feed: "mock", Err: errors.New("boom")}
	col := NewCollector(&MockFetcher{Err: wantErr}, 7)
	_, err := col.Collect([]string{"AAPL"})
	var te *model.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestCollect_BuildsTable(t *testing.T) {
	fetcher := &MockFetcher{Series: map[string][]model.Close{
		"AAPL": {
			{Date: day(2), Price: 100},
			{Date: day(3), Price: 102},
		},
		"USDJPY=X": {
			{Date: day(2), Price: 150},
			{Date: day(3), Price: 151},
		},
	}}
	col := NewCollector(fetcher, 7)
	table, err := col.Collect([]string{"AAPL", "USDJPY=X"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Rows() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Rows())
	}
	if table.Last("AAPL") != 102 {
		t.Errorf("expected AAPL last 102, got %.2f", table.Last("AAPL"))
	}
}
