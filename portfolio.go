package twfolio

import (
	"fmt"
	"slices"
	"strings"
)

// Portfolio is the full set of recorded holdings, across accounts.
// The order is the user's entry order; reports sort as they need.
type Portfolio struct {
	holdings []Holding
}

// NewPortfolio creates an empty portfolio.
func NewPortfolio(holdings ...Holding) *Portfolio {
	return &Portfolio{holdings: holdings}
}

// Holdings returns the holdings in entry order. The slice is shared;
// callers that mutate entries put them back with Update.
func (p *Portfolio) Holdings() []Holding { return p.holdings }

// Accounts returns the distinct account names, sorted.
func (p *Portfolio) Accounts() []string {
	var accounts []string
	for _, h := range p.holdings {
		if !slices.Contains(accounts, h.Account) {
			accounts = append(accounts, h.Account)
		}
	}
	slices.Sort(accounts)
	return accounts
}

// ByAccount returns the holdings recorded in the given account.
func (p *Portfolio) ByAccount(account string) []Holding {
	var out []Holding
	for _, h := range p.holdings {
		if h.Account == account {
			out = append(out, h)
		}
	}
	return out
}

// key identifies a holding uniquely within the portfolio.
func key(symbol, account string) string {
	return strings.ToUpper(symbol) + "@" + account
}

// Find returns the holding for symbol in account, if any.
func (p *Portfolio) Find(symbol, account string) (Holding, bool) {
	for _, h := range p.holdings {
		if key(h.Symbol, h.Account) == key(symbol, account) {
			return h, true
		}
	}
	return Holding{}, false
}

// Add records a new holding. Adding a position that already exists in
// the same account is an error: positions carry a single blended cost
// basis, a second purchase is a different record or a manual merge.
func (p *Portfolio) Add(h Holding) error {
	if h.Symbol == "" {
		return fmt.Errorf("holding has no symbol")
	}
	if h.Shares <= 0 {
		return fmt.Errorf("holding %s has non-positive share count %d", h.Symbol, h.Shares)
	}
	if _, ok := p.Find(h.Symbol, h.Account); ok {
		return fmt.Errorf("holding %s already recorded in account %q", h.Symbol, h.Account)
	}
	p.holdings = append(p.holdings, h)
	return nil
}

// Update replaces the stored holding matching h's symbol and account.
func (p *Portfolio) Update(h Holding) error {
	for i, existing := range p.holdings {
		if key(existing.Symbol, existing.Account) == key(h.Symbol, h.Account) {
			p.holdings[i] = h
			return nil
		}
	}
	return fmt.Errorf("holding %s not found in account %q", h.Symbol, h.Account)
}

// Remove deletes the holding for symbol in account. Its rights ledger
// has no independent life and disappears with it.
func (p *Portfolio) Remove(symbol, account string) error {
	for i, h := range p.holdings {
		if key(h.Symbol, h.Account) == key(symbol, account) {
			p.holdings = slices.Delete(p.holdings, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("holding %s not found in account %q", symbol, account)
}

// MarketValue sums the value of all holdings that have a quote.
// Holdings without a quote are skipped, they cannot be valued.
func (p *Portfolio) MarketValue(quotes map[string]Money) Money {
	var total Money
	for _, h := range p.holdings {
		quote, ok := quotes[h.Symbol]
		if !ok {
			continue
		}
		total = total.Add(h.MarketValue(quote))
	}
	return total
}

// GainLoss sums the unrealized gain/loss of all quoted holdings against
// their adjusted cost basis.
func (p *Portfolio) GainLoss(quotes map[string]Money) Money {
	var total Money
	for _, h := range p.holdings {
		quote, ok := quotes[h.Symbol]
		if !ok {
			continue
		}
		total = total.Add(h.GainLoss(quote))
	}
	return total
}
