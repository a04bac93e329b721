package twfolio

import (
	"github.com/shopspring/decimal"
)

// This file implements the rights adjustment computation (除權息).
// It is pure: no I/O, no clock, no state. Eligibility of an event for a
// given holding (date filtering, dedup) is the reconciler's job; this
// function trusts its caller.

var perThousand = decimal.NewFromInt(1000)

// StockDividendShares returns the whole shares granted by a stock
// dividend of ratio shares-per-1000 on the given share count. Fractional
// shares are dropped, as the transfer agent does.
func StockDividendShares(shares int64, ratio decimal.Decimal) int64 {
	return decimal.NewFromInt(shares).Mul(ratio).Div(perThousand).Floor().IntPart()
}

// ApplyEvent applies one corporate action to a position of sharesBefore
// shares held at a per-share cost of costBefore, and returns the ledger
// entry bracketing the event.
//
// The share count grows by floor(sharesBefore*ratio/1000); the per-share
// cost drops by the cash dividend per share, floored at zero. The cost
// reduction applies to the pre-event basis regardless of the share
// delta: cash and stock components of a combined event do not compound.
func ApplyEvent(sharesBefore int64, costBefore Money, ev CorporateAction) (RightsLedgerEntry, error) {
	if sharesBefore <= 0 {
		return RightsLedgerEntry{}, &InvalidEventError{Symbol: ev.Symbol, ExDate: ev.ExDate, Reason: "non-positive share count"}
	}
	if ev.CashDividend.IsNegative() {
		return RightsLedgerEntry{}, &InvalidEventError{Symbol: ev.Symbol, ExDate: ev.ExDate, Reason: "negative cash dividend"}
	}
	if ev.StockRatio.IsNegative() {
		return RightsLedgerEntry{}, &InvalidEventError{Symbol: ev.Symbol, ExDate: ev.ExDate, Reason: "negative stock dividend ratio"}
	}

	granted := StockDividendShares(sharesBefore, ev.StockRatio)

	return RightsLedgerEntry{
		Symbol:       ev.Symbol,
		ExDate:       ev.ExDate,
		CashDividend: ev.CashDividend,
		StockRatio:   ev.StockRatio,
		SharesBefore: sharesBefore,
		SharesAfter:  sharesBefore + granted,
		CostBefore:   costBefore,
		CostAfter:    costBefore.Sub(ev.CashDividend).FloorZero(),
	}, nil
}
