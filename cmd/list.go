package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ycwu/twfolio"
	"github.com/ycwu/twfolio/renderer"
)

type listCmd struct {
	account string
	ledger  bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "display the recorded holdings" }
func (*listCmd) Usage() string {
	return `twf list [-account <name>] [-ledger]

  Displays the recorded holdings with their cost and adjusted cost.
  With -ledger, also shows each holding's rights ledger.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Only list holdings of this account.")
	f.BoolVar(&c.ledger, "ledger", false, "Also show the rights ledger of each holding.")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := DecodeHoldingsFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	holdings := p.Holdings()
	if c.account != "" {
		holdings = p.ByAccount(c.account)
	}
	if len(holdings) == 0 {
		fmt.Fprintln(os.Stderr, "No holdings recorded.")
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.DeclarationMarkdown(twfolio.NewPortfolio(holdings...)))
	if c.ledger {
		for _, h := range holdings {
			printMarkdown(renderer.LedgerMarkdown(h))
		}
	}
	return subcommands.ExitSuccess
}
