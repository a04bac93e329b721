package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ycwu/twfolio"
)

type addCmd struct {
	symbol  string
	name    string
	account string
	shares  int64
	cost    float64
	date    string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new holding" }
func (*addCmd) Usage() string {
	return `twf add -symbol <symbol> -shares <n> -cost <price> [-account <name>] [-name <name>] [-date <date>]

  Records a new position:
  - symbol: The exchange symbol (e.g., "2330"). Unique per account.
  - shares: The number of shares bought.
  - cost: The per-share purchase price in TWD.
  - date: The purchase date (defaults to today). Corporate actions
    before this date never apply to the holding.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Exchange symbol (required)")
	f.StringVar(&c.name, "name", "", "Display name, e.g. the company name")
	f.StringVar(&c.account, "account", "", "Brokerage account")
	f.Int64Var(&c.shares, "shares", 0, "Share count (required)")
	f.Float64Var(&c.cost, "cost", 0, "Per-share purchase price in TWD (required)")
	f.StringVar(&c.date, "date", twfolio.Today().String(), "Purchase date")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.shares <= 0 || c.cost <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -symbol, -shares and -cost flags are required.")
		return subcommands.ExitUsageError
	}
	purchase, err := twfolio.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	p, err := DecodeHoldingsFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	h := twfolio.NewHolding(c.symbol, c.account, c.shares, twfolio.M(c.cost, twfolio.TWD), purchase)
	h.Name = c.name
	if err := p.Add(h); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if err := EncodeHoldingsFile(p); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ Successfully added %d %s at %s to %s.\n", c.shares, c.symbol, h.CostPrice, *holdingsFile)
	return subcommands.ExitSuccess
}

type removeCmd struct {
	symbol  string
	account string
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a holding" }
func (*removeCmd) Usage() string {
	return `twf remove -symbol <symbol> [-account <name>]

  Removes a position and its rights ledger from the holdings file.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Exchange symbol (required)")
	f.StringVar(&c.account, "account", "", "Brokerage account")
}

func (c *removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" {
		fmt.Fprintln(os.Stderr, "Error: -symbol flag is required.")
		return subcommands.ExitUsageError
	}

	p, err := DecodeHoldingsFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := p.Remove(c.symbol, c.account); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := EncodeHoldingsFile(p); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ Successfully removed %s.\n", c.symbol)
	return subcommands.ExitSuccess
}
