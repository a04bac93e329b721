package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ycwu/twfolio/renderer"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display a portfolio valuation summary" }
func (*summaryCmd) Usage() string {
	return `twf summary

  Displays the portfolio per account with current prices, market value
  and unrealized gain/loss against the adjusted cost basis. Holdings
  without an available quote are listed unvalued.
`
}

func (*summaryCmd) SetFlags(f *flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := DecodeHoldingsFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if len(p.Holdings()) == 0 {
		fmt.Fprintln(os.Stderr, "No holdings recorded.")
		return subcommands.ExitSuccess
	}

	quotes := fetchQuotes(ctx, p)
	printMarkdown(renderer.SummaryMarkdown(p, quotes))
	return subcommands.ExitSuccess
}
