package twfolio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Holdings are persisted as JSONL, one holding per line, with a stable
// field order so the file diffs cleanly under version control.

// MarshalJSON implements the json.Marshaler interface for Holding.
func (h Holding) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", h.Symbol)
	w.Optional("name", h.Name)
	w.Optional("account", h.Account)
	w.Append("shares", h.Shares)
	w.Append("costPrice", h.CostPrice)
	if len(h.RightsLedger) > 0 {
		w.Append("adjustedCost", h.AdjustedCost)
	}
	w.Optional("currency", h.CostPrice.cur)
	w.Append("purchaseDate", h.PurchaseDate)
	w.Optional("originalShares", h.OriginalShares)
	if !h.LastRightsUpdate.IsZero() {
		w.Append("lastRightsUpdate", h.LastRightsUpdate.Format(time.RFC3339))
	}
	if len(h.RightsLedger) > 0 {
		w.Append("rightsLedger", h.RightsLedger)
	}
	return w.MarshalJSON()
}

// MarshalJSON implements the json.Marshaler interface for RightsLedgerEntry.
func (e RightsLedgerEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", e.Symbol)
	w.Append("exDate", e.ExDate)
	w.Append("cashDividend", e.CashDividend)
	if !e.StockRatio.IsZero() {
		w.Append("stockRatio", e.StockRatio)
	}
	w.Append("sharesBefore", e.SharesBefore)
	w.Append("sharesAfter", e.SharesAfter)
	w.Append("costBefore", e.CostBefore)
	w.Append("costAfter", e.CostAfter)
	return w.MarshalJSON()
}

// holdingRecord is a specialized struct for decoding json. Monetary
// fields decode as bare decimals and are rebuilt with the record's
// currency.
type holdingRecord struct {
	Symbol           string          `json:"symbol"`
	Name             string          `json:"name"`
	Account          string          `json:"account"`
	Shares           int64           `json:"shares"`
	CostPrice        decimal.Decimal `json:"costPrice"`
	AdjustedCost     decimal.Decimal `json:"adjustedCost"`
	Currency         string          `json:"currency"`
	PurchaseDate     Date            `json:"purchaseDate"`
	OriginalShares   int64           `json:"originalShares"`
	LastRightsUpdate string          `json:"lastRightsUpdate"`
	RightsLedger     []entryRecord   `json:"rightsLedger"`
}

type entryRecord struct {
	Symbol       string          `json:"symbol"`
	ExDate       Date            `json:"exDate"`
	CashDividend decimal.Decimal `json:"cashDividend"`
	StockRatio   decimal.Decimal `json:"stockRatio"`
	SharesBefore int64           `json:"sharesBefore"`
	SharesAfter  int64           `json:"sharesAfter"`
	CostBefore   decimal.Decimal `json:"costBefore"`
	CostAfter    decimal.Decimal `json:"costAfter"`
}

func (rec holdingRecord) holding() (Holding, error) {
	currency := rec.Currency
	if currency == "" {
		currency = TWD
	}
	h := Holding{
		Symbol:         rec.Symbol,
		Name:           rec.Name,
		Account:        rec.Account,
		Shares:         rec.Shares,
		CostPrice:      M(rec.CostPrice, currency),
		AdjustedCost:   M(rec.AdjustedCost, currency),
		PurchaseDate:   rec.PurchaseDate,
		OriginalShares: rec.OriginalShares,
	}
	if len(rec.RightsLedger) == 0 {
		// Invariant at creation: adjusted cost equals nominal cost
		// until an event applies.
		h.AdjustedCost = h.CostPrice
	}
	if rec.LastRightsUpdate != "" {
		t, err := time.Parse(time.RFC3339, rec.LastRightsUpdate)
		if err != nil {
			return Holding{}, fmt.Errorf("holding %s: invalid lastRightsUpdate: %w", rec.Symbol, err)
		}
		h.LastRightsUpdate = t
	}
	for _, e := range rec.RightsLedger {
		h.RightsLedger = append(h.RightsLedger, RightsLedgerEntry{
			Symbol:       e.Symbol,
			ExDate:       e.ExDate,
			CashDividend: M(e.CashDividend, currency),
			StockRatio:   e.StockRatio,
			SharesBefore: e.SharesBefore,
			SharesAfter:  e.SharesAfter,
			CostBefore:   M(e.CostBefore, currency),
			CostAfter:    M(e.CostAfter, currency),
		})
	}
	return h, nil
}

// EncodeHoldings writes the portfolio as JSONL to w.
func EncodeHoldings(w io.Writer, p *Portfolio) error {
	enc := json.NewEncoder(w)
	for _, h := range p.Holdings() {
		if err := enc.Encode(h); err != nil {
			return fmt.Errorf("could not encode holding %s: %w", h.Symbol, err)
		}
	}
	return nil
}

// DecodeHoldings reads a JSONL stream of holdings and returns the
// portfolio. Empty lines are skipped.
func DecodeHoldings(r io.Reader) (*Portfolio, error) {
	p := NewPortfolio()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var rec holdingRecord
		if err := json.Unmarshal(lineBytes, &rec); err != nil {
			return nil, fmt.Errorf("could not decode holding line %q: %w", string(lineBytes), err)
		}
		h, err := rec.holding()
		if err != nil {
			return nil, err
		}
		if err := p.Add(h); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p, nil
}
