// Package renderer turns portfolio data into markdown reports. The CLI
// pipes the output through glamour for the terminal; the assist command
// feeds it verbatim to the model.
package renderer

import (
	"fmt"
	"strings"

	"github.com/ycwu/twfolio"
)

// DeclarationMarkdown renders the full declaration of held positions.
// This is how the assist expert learns the tickers and accounts it can
// talk about.
func DeclarationMarkdown(p *twfolio.Portfolio) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings\n\n")
	fmt.Fprintln(&b, "| Symbol | Name | Account | Shares | Cost | Adjusted Cost | Purchased |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|:---|")

	for _, h := range p.Holdings() {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %s | %s | %s |\n",
			h.Symbol,
			h.Name,
			h.Account,
			h.Shares,
			h.CostPrice,
			h.CostBasis(),
			h.PurchaseDate,
		)
	}
	return b.String()
}

// LedgerMarkdown renders one holding's rights ledger, newest last.
func LedgerMarkdown(h twfolio.Holding) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s Rights Ledger\n\n", h.Symbol)
	if len(h.RightsLedger) == 0 {
		fmt.Fprintln(&b, "No corporate action applied.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Ex-Date | Cash/Share | Stock/1000 | Shares | Cost/Share |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
	for _, e := range h.RightsLedger {
		fmt.Fprintf(&b, "| %s | %s | %s | %d → %d | %s → %s |\n",
			e.ExDate,
			e.CashDividend,
			e.StockRatio,
			e.SharesBefore, e.SharesAfter,
			e.CostBefore, e.CostAfter,
		)
	}
	fmt.Fprintf(&b, "\nTotal cash received: %s. Shares from stock dividends: %d.\n",
		h.TotalCashDividend(), h.TotalStockDividend())
	return b.String()
}
