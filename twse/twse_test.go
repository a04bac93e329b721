package twse

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ycwu/twfolio"
)

func TestParseROCDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
		err   bool
	}{
		{"1140829", "2025-08-29", false},
		{"1130101", "2024-01-01", false},
		{"990715", "2010-07-15", false},
		{"829", "", true},
		{"today", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseROCDate(tt.input)
			if (err != nil) != tt.err {
				t.Fatalf("parseROCDate(%q) error = %v, wantErr %v", tt.input, err, tt.err)
			}
			if !tt.err && got.String() != tt.want {
				t.Errorf("parseROCDate(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestReportRowAction(t *testing.T) {
	tests := []struct {
		name    string
		row     reportRow
		wantOK  bool
		wantErr bool
	}{
		{
			name:   "cash dividend",
			row:    reportRow{Date: "1140829", Code: "2330", RightsDividends: "5.00", RightOrDividend: "息"},
			wantOK: true,
		},
		{
			name:   "stock rights skipped",
			row:    reportRow{Date: "1140829", Code: "2603", RightsDividends: "3.00", RightOrDividend: "權"},
			wantOK: false,
		},
		{
			name:   "mixed rights and dividend skipped",
			row:    reportRow{Date: "1140829", Code: "2887", RightsDividends: "1.20", RightOrDividend: "權息"},
			wantOK: false,
		},
		{
			name:   "zero value skipped",
			row:    reportRow{Date: "1140829", Code: "2330", RightsDividends: "0", RightOrDividend: "息"},
			wantOK: false,
		},
		{
			name:    "garbage value rejected",
			row:     reportRow{Date: "1140829", Code: "2330", RightsDividends: "n/a", RightOrDividend: "息"},
			wantErr: true,
		},
		{
			name:    "garbage date rejected",
			row:     reportRow{Date: "soon", Code: "2330", RightsDividends: "5.00", RightOrDividend: "息"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ok, err := tt.row.action()
			if (err != nil) != tt.wantErr {
				t.Fatalf("action() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if ok != tt.wantOK {
				t.Fatalf("action() ok = %v, want %v", ok, tt.wantOK)
			}
			if !tt.wantOK {
				return
			}
			if !a.CashDividend.Equal(twfolio.M(5, twfolio.TWD)) {
				t.Errorf("cash = %v, want 5", a.CashDividend.Amount())
			}
			if !a.StockRatio.IsZero() {
				t.Errorf("ratio = %v, want 0", a.StockRatio)
			}
			if a.ExDate.String() != "2025-08-29" {
				t.Errorf("exDate = %s, want 2025-08-29", a.ExDate)
			}
		})
	}
}

const misSample = `{
	"msgArray": [
		{"c": "2330", "n": "台積電", "z": "1150.00", "y": "1145.00", "d": "20250829", "t": "13:30:00"}
	],
	"rtmessage": "OK",
	"rtcode": "0000"
}`

const misClosedSample = `{
	"msgArray": [
		{"c": "2330", "n": "台積電", "z": "-", "y": "1145.00", "d": "20250829", "t": "13:30:00"}
	],
	"rtmessage": "OK",
	"rtcode": "0000"
}`

func TestQuoteExtract(t *testing.T) {
	q := NewQuoteSource()

	var jobj any
	if err := json.Unmarshal([]byte(misSample), &jobj); err != nil {
		t.Fatal(err)
	}
	price, err := q.extract(jobj, "$.msgArray[0].z")
	if err != nil {
		t.Fatalf("extract(z): %v", err)
	}
	if price != 1150 {
		t.Errorf("price = %v, want 1150", price)
	}

	// Outside trading hours z is "-"; the caller falls back to y.
	if err := json.Unmarshal([]byte(misClosedSample), &jobj); err != nil {
		t.Fatal(err)
	}
	if _, err := q.extract(jobj, "$.msgArray[0].z"); err == nil {
		t.Error(`extract("-") did not fail`)
	}
	price, err = q.extract(jobj, "$.msgArray[0].y")
	if err != nil {
		t.Fatalf("extract(y): %v", err)
	}
	if price != 1145 {
		t.Errorf("fallback price = %v, want 1145", price)
	}

	at := q.timestamp(jobj)
	if at.In(taipei).Format("20060102 15:04:05") != "20250829 13:30:00" {
		t.Errorf("timestamp = %v", at)
	}
}

func TestQuote_Network(t *testing.T) {
	if testing.Short() {
		t.Skip("network test")
	}
	q := NewQuoteSource()
	quote, err := q.Quote(context.Background(), "2330")
	if err != nil {
		t.Fatalf("Quote() unexpected error = %v", err)
	}
	if !quote.Price.IsPositive() {
		t.Errorf("Quote() price = %v, want > 0", quote.Price.Amount())
	}
}

func TestCorporateActions_Network(t *testing.T) {
	if testing.Short() {
		t.Skip("network test")
	}
	s := NewSource()
	// Any answer is fine: the report only lists the current trading
	// day, most days it has nothing for a given symbol.
	if _, err := s.CorporateActions(context.Background(), "2330"); err != nil {
		t.Fatalf("CorporateActions() unexpected error = %v", err)
	}
}
