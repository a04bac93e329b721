package finmind

import (
	"context"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/ycwu/twfolio"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRecordAction(t *testing.T) {
	tests := []struct {
		name    string
		rec     record
		wantOK  bool
		wantErr bool
		cash    string
		ratio   string
		exDate  string
	}{
		{
			name: "cash only",
			rec: record{
				StockID: "2330", Date: "2023-02-14",
				CashEarningsDistribution:  d("2.75"),
				CashExDividendTradingDate: "2023-03-16",
			},
			wantOK: true, cash: "2.75", ratio: "0", exDate: "2023-03-16",
		},
		{
			name: "cash from two surpluses",
			rec: record{
				StockID: "0056", Date: "2023-09-01",
				CashEarningsDistribution:  d("0.7"),
				CashStatutorySurplus:      d("0.3"),
				CashExDividendTradingDate: "2023-10-18",
			},
			wantOK: true, cash: "1", ratio: "0", exDate: "2023-10-18",
		},
		{
			name: "stock dividend converts par value per share to per mille",
			rec: record{
				StockID: "2603", Date: "2023-05-01",
				StockEarningsDistribution:  d("0.5"),
				StockExDividendTradingDate: "2023-08-10",
			},
			// 0.5 TWD par at 10 TWD par value: 50 shares per 1000.
			wantOK: true, cash: "0", ratio: "50", exDate: "2023-08-10",
		},
		{
			name: "cash ex-date preferred over stock ex-date",
			rec: record{
				StockID: "2887", Date: "2023-05-01",
				CashEarningsDistribution:   d("0.4"),
				StockEarningsDistribution:  d("0.3"),
				CashExDividendTradingDate:  "2023-07-20",
				StockExDividendTradingDate: "2023-07-21",
			},
			wantOK: true, cash: "0.4", ratio: "30", exDate: "2023-07-20",
		},
		{
			name: "announcement date fallback",
			rec: record{
				StockID: "2330", Date: "2023-02-14",
				CashEarningsDistribution: d("2.75"),
			},
			wantOK: true, cash: "2.75", ratio: "0", exDate: "2023-02-14",
		},
		{
			name:   "empty distribution skipped",
			rec:    record{StockID: "2330", Date: "2023-02-14"},
			wantOK: false,
		},
		{
			name: "negative distribution rejected",
			rec: record{
				StockID: "2330", Date: "2023-02-14",
				CashEarningsDistribution: d("-1"),
			},
			wantErr: true,
		},
		{
			name: "unparseable ex-date rejected",
			rec: record{
				StockID: "2330", Date: "2023-02-14",
				CashEarningsDistribution:  d("2.75"),
				CashExDividendTradingDate: "soon",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ok, err := tt.rec.action()
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
			if !a.CashDividend.Equal(twfolio.M(d(tt.cash), twfolio.TWD)) {
				t.Errorf("cash = %v, want %s", a.CashDividend.Amount(), tt.cash)
			}
			if !a.StockRatio.Equal(d(tt.ratio)) {
				t.Errorf("ratio = %v, want %s", a.StockRatio, tt.ratio)
			}
			if got := a.ExDate.String(); got != tt.exDate {
				t.Errorf("exDate = %s, want %s", got, tt.exDate)
			}
		})
	}
}

func TestCorporateActions(t *testing.T) {
	if os.Getenv(TokenEnv) == "" {
		t.Skip("set FINMIND_TOKEN to run network tests")
	}
	s := NewSource("")
	actions, err := s.CorporateActions(context.Background(), "2330")
	if err != nil {
		t.Fatalf("CorporateActions() unexpected error = %v", err)
	}
	if len(actions) == 0 {
		t.Error("CorporateActions() no actions for 2330, which is unexpected")
	}
	for _, a := range actions {
		if a.Symbol != "2330" {
			t.Errorf("action for %s in a 2330 query", a.Symbol)
		}
		if a.CashDividend.IsNegative() || a.StockRatio.IsNegative() {
			t.Errorf("negative magnitudes leaked: %+v", a)
		}
	}
}
