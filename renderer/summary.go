package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/ycwu/twfolio"
)

func SummaryMarkdown(p *twfolio.Portfolio, quotes map[string]twfolio.Money) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio Summary on %s", twfolio.Today()))
	doc.PlainText(fmt.Sprintf("Total Market Value: %s", p.MarketValue(quotes)))
	doc.PlainText(fmt.Sprintf("Unrealized Gain/Loss: %s", p.GainLoss(quotes)))

	for _, account := range p.Accounts() {
		doc.H2(account)

		table := md.TableSet{
			Header: []string{"Symbol", "Shares", "Adjusted Cost", "Price", "Value", "Gain/Loss"},
		}
		for _, h := range p.ByAccount(account) {
			quote, ok := quotes[h.Symbol]
			if !ok {
				// unquoted rows still show the position
				table.Rows = append(table.Rows, []string{
					h.Symbol, fmt.Sprint(h.Shares), h.CostBasis().String(), "-", "-", "-",
				})
				continue
			}
			table.Rows = append(table.Rows, []string{
				h.Symbol,
				fmt.Sprint(h.Shares),
				h.CostBasis().String(),
				quote.String(),
				h.MarketValue(quote).String(),
				h.GainLoss(quote).String(),
			})
		}
		doc.Table(table)
	}

	return doc.String()
}
