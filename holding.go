package twfolio

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is a single recorded position of one security in one
// brokerage account.
type Holding struct {
	Symbol  string // exchange symbol, e.g. "2330" or "0056"
	Name    string // optional display name, e.g. "台積電"
	Account string // brokerage account this position belongs to

	// Shares is the current share count, after any applied stock
	// dividends. Always positive outside of a transient full reset.
	Shares int64

	// CostPrice is the per-share acquisition cost entered by the user.
	// Immutable once set.
	CostPrice Money

	// AdjustedCost is the per-share cost after subtracting the
	// cumulative cash dividend per share over the rights ledger. It is
	// recomputed from a replay, never mutated incrementally, and never
	// negative. Meaningful only when the ledger is non-empty.
	AdjustedCost Money

	// PurchaseDate bounds eligibility: only corporate actions on or
	// after this date apply to the holding.
	PurchaseDate Date

	// OriginalShares is the share count at purchase, before any stock
	// dividend. Stored explicitly so a full recalculation does not have
	// to reverse-engineer it from the ledger. Zero on records imported
	// from older files; see originalState.
	OriginalShares int64

	// RightsLedger records each corporate action already applied,
	// ordered by ex-date ascending, unique per (symbol, ex-date).
	RightsLedger []RightsLedgerEntry

	// LastRightsUpdate is when the ledger was last reconciled against
	// the data source.
	LastRightsUpdate time.Time
}

// RightsLedgerEntry captures one applied corporate action and the
// holding state bracketing it. Entries are immutable once created.
type RightsLedgerEntry struct {
	Symbol       string
	ExDate       Date
	CashDividend Money           // cash payout per share, >= 0
	StockRatio   decimal.Decimal // shares granted per 1000 held, >= 0
	SharesBefore int64
	SharesAfter  int64
	CostBefore   Money // per-share cost before the event
	CostAfter    Money // per-share cost after the event
}

// CorporateAction is a raw ex-dividend/ex-rights record as delivered by
// a data source: unordered, possibly duplicated, possibly predating the
// holding's purchase.
type CorporateAction struct {
	Symbol       string
	ExDate       Date
	CashDividend Money           // per share, >= 0
	StockRatio   decimal.Decimal // per 1000 shares, >= 0; zero means cash-only
}

// NewHolding creates a position with an empty rights ledger. The
// adjusted cost starts equal to the nominal cost.
func NewHolding(symbol, account string, shares int64, cost Money, purchase Date) Holding {
	return Holding{
		Symbol:         symbol,
		Account:        account,
		Shares:         shares,
		CostPrice:      cost,
		AdjustedCost:   cost,
		PurchaseDate:   purchase,
		OriginalShares: shares,
	}
}

// CostBasis returns the per-share cost to replay further events from:
// the adjusted cost when events have been applied, the nominal cost
// otherwise.
func (h *Holding) CostBasis() Money {
	if len(h.RightsLedger) > 0 {
		return h.AdjustedCost
	}
	return h.CostPrice
}

// hasEvent reports whether the ledger already contains an entry for the
// given action. Matching is by symbol and date-granularity ex-date, not
// by record identity: the same logical event may arrive from the source
// as distinct instances.
func (h *Holding) hasEvent(symbol string, exDate Date) bool {
	for _, e := range h.RightsLedger {
		if e.Symbol == symbol && e.ExDate == exDate {
			return true
		}
	}
	return false
}

// originalState returns the pre-any-adjustment share count and cost.
// Records created by this package carry OriginalShares explicitly;
// for older records lacking it, the original count is recovered by
// subtracting the ledger's stock-dividend deltas from the current count.
func (h *Holding) originalState() (shares int64, cost Money) {
	if h.OriginalShares > 0 {
		return h.OriginalShares, h.CostPrice
	}
	shares = h.Shares
	for _, e := range h.RightsLedger {
		shares -= e.SharesAfter - e.SharesBefore
	}
	return shares, h.CostPrice
}

// TotalCashDividend sums the cash received over the ledger: for each
// event, the per-share payout times the share count held at that event.
func (h *Holding) TotalCashDividend() Money {
	var total Money
	for _, e := range h.RightsLedger {
		total = total.Add(e.CashDividend.MulShares(e.SharesBefore))
	}
	return total
}

// TotalStockDividend sums the shares granted by stock dividends over the ledger.
func (h *Holding) TotalStockDividend() int64 {
	var total int64
	for _, e := range h.RightsLedger {
		total += e.SharesAfter - e.SharesBefore
	}
	return total
}

// MarketValue values the holding at the given per-share quote.
func (h *Holding) MarketValue(quote Money) Money {
	return quote.MulShares(h.Shares)
}

// GainLoss is the unrealized gain or loss at the given quote, against
// the blended adjusted cost basis. Fees and taxes are not netted.
func (h *Holding) GainLoss(quote Money) Money {
	return quote.Sub(h.CostBasis()).MulShares(h.Shares)
}
