package renderer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/ycwu/twfolio"
)

func testPortfolio(t *testing.T) *twfolio.Portfolio {
	t.Helper()
	tsmc := twfolio.NewHolding("2330", "cathay", 1000, twfolio.M(500, twfolio.TWD), twfolio.MustParseDate("2023-01-01"))
	tsmc.Name = "台積電"
	tsmc.RightsLedger = []twfolio.RightsLedgerEntry{
		{
			Symbol: "2330", ExDate: twfolio.MustParseDate("2023-06-01"),
			CashDividend: twfolio.M(5, twfolio.TWD),
			SharesBefore: 1000, SharesAfter: 1000,
			CostBefore: twfolio.M(500, twfolio.TWD), CostAfter: twfolio.M(495, twfolio.TWD),
		},
		{
			Symbol: "2330", ExDate: twfolio.MustParseDate("2023-12-01"),
			CashDividend: twfolio.M(3, twfolio.TWD), StockRatio: decimal.NewFromInt(50),
			SharesBefore: 1000, SharesAfter: 1050,
			CostBefore: twfolio.M(495, twfolio.TWD), CostAfter: twfolio.M(492, twfolio.TWD),
		},
	}
	tsmc.Shares = 1050
	tsmc.AdjustedCost = twfolio.M(492, twfolio.TWD)

	p := twfolio.NewPortfolio()
	for _, h := range []twfolio.Holding{
		tsmc,
		twfolio.NewHolding("0056", "fubon", 5000, twfolio.M(35, twfolio.TWD), twfolio.MustParseDate("2023-03-01")),
	} {
		if err := p.Add(h); err != nil {
			t.Fatal(err)
		}
	}
	return p
}

func TestDeclarationMarkdown(t *testing.T) {
	got := DeclarationMarkdown(testPortfolio(t))

	for _, want := range []string{"# Holdings", "| Symbol |", "2330", "台積電", "cathay", "0056", "fubon", "1050"} {
		if !strings.Contains(got, want) {
			t.Errorf("declaration misses %q:\n%s", want, got)
		}
	}
}

func TestLedgerMarkdown(t *testing.T) {
	p := testPortfolio(t)

	h, _ := p.Find("2330", "cathay")
	got := LedgerMarkdown(h)
	for _, want := range []string{"# 2330 Rights Ledger", "2023-06-01", "2023-12-01", "1000 → 1050"} {
		if !strings.Contains(got, want) {
			t.Errorf("ledger misses %q:\n%s", want, got)
		}
	}

	h, _ = p.Find("0056", "fubon")
	got = LedgerMarkdown(h)
	if !strings.Contains(got, "No corporate action applied.") {
		t.Errorf("empty ledger rendering:\n%s", got)
	}
}

func TestSummaryMarkdown(t *testing.T) {
	quotes := map[string]twfolio.Money{
		"2330": twfolio.M(600, twfolio.TWD),
		// 0056 deliberately unquoted.
	}
	got := SummaryMarkdown(testPortfolio(t), quotes)

	for _, want := range []string{"# Portfolio Summary", "Total Market Value", "## cathay", "## fubon", "2330"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary misses %q:\n%s", want, got)
		}
	}
	// The unquoted holding shows up without a valuation.
	if !strings.Contains(got, "0056") {
		t.Errorf("summary misses the unquoted holding:\n%s", got)
	}
}
