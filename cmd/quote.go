package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ycwu/twfolio"
	"github.com/ycwu/twfolio/twse"
)

type quoteCmd struct{}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "show the current price of symbols" }
func (*quoteCmd) Usage() string {
	return `twf quote [symbol...]

  Shows the latest price for the given symbols. Without arguments,
  quotes every held symbol.
`
}

func (*quoteCmd) SetFlags(f *flag.FlagSet) {}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbols := f.Args()
	if len(symbols) == 0 {
		p, err := DecodeHoldingsFile()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		seen := make(map[string]bool)
		for _, h := range p.Holdings() {
			if !seen[h.Symbol] {
				seen[h.Symbol] = true
				symbols = append(symbols, h.Symbol)
			}
		}
	}
	if len(symbols) == 0 {
		fmt.Fprintln(os.Stderr, "No symbols to quote.")
		return subcommands.ExitSuccess
	}

	source := twse.NewQuoteSource()
	failures := 0
	for _, symbol := range symbols {
		quote, err := source.Quote(ctx, symbol)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", symbol, err)
			failures++
			continue
		}
		fmt.Printf("%s  %s  (%s, %s)\n", quote.Symbol, quote.Price, quote.At.Format("2006-01-02 15:04"), quote.Source)
	}
	if failures == len(symbols) {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// fetchQuotes collects a best-effort quote per held symbol.
func fetchQuotes(ctx context.Context, p *twfolio.Portfolio) map[string]twfolio.Money {
	source := twse.NewQuoteSource()
	quotes := make(map[string]twfolio.Money)
	for _, h := range p.Holdings() {
		if _, ok := quotes[h.Symbol]; ok {
			continue
		}
		quote, err := source.Quote(ctx, h.Symbol)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: no quote for %s: %v\n", h.Symbol, err)
			continue
		}
		quotes[h.Symbol] = quote.Price
	}
	return quotes
}
