package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ycwu/twfolio"
)

type refreshCmd struct {
	force bool
	all   bool
}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "reconcile holdings against dividend data" }
func (*refreshCmd) Usage() string {
	return `twf refresh [-force] [-all] [symbol...]

  Fetches corporate actions and applies the new ones to each stale
  holding. With symbols given, only those are refreshed.
  - -all refreshes every holding, stale or not.
  - -force resets each holding to its purchase state and replays the
    full event history from scratch.

  A failure on one holding never blocks the others; failed holdings are
  left unchanged and retried on the next run.
`
}

func (c *refreshCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "force", false, "Recalculate from the original purchase state.")
	f.BoolVar(&c.all, "all", false, "Refresh every holding, not only the stale ones.")
}

func (c *refreshCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := DecodeHoldingsFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	wanted := make(map[string]bool)
	for _, symbol := range f.Args() {
		wanted[symbol] = true
	}

	r := newReconciler()

	// force implies a full pass: a forced run on a subset would leave
	// the file half recalculated.
	var selected []twfolio.Holding
	for _, h := range p.Holdings() {
		switch {
		case len(wanted) > 0 && !wanted[h.Symbol]:
		case !c.all && !c.force && len(wanted) == 0 && !r.Stale(h):
		default:
			selected = append(selected, h)
		}
	}
	if len(selected) == 0 {
		fmt.Println("All holdings are up to date.")
		return subcommands.ExitSuccess
	}

	updated := r.ReconcileBatch(ctx, selected, c.force)

	changed := 0
	for i, h := range updated {
		if err := p.Update(h); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		before := selected[i]
		if h.Shares != before.Shares || !h.CostBasis().Equal(before.CostBasis()) || len(h.RightsLedger) != len(before.RightsLedger) {
			fmt.Printf("%s: %d events, %d shares, adjusted cost %s\n",
				h.Symbol, len(h.RightsLedger), h.Shares, h.CostBasis())
			changed++
		}
	}

	if err := EncodeHoldingsFile(p); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ Refreshed %d holdings, %d changed.\n", len(updated), changed)
	return subcommands.ExitSuccess
}
