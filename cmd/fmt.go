package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the holdings file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `twf fmt

  Validates and rewrites the holdings file in canonical JSONL form:
  stable field order, one holding per line, implicit defaults made
  explicit.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := DecodeHoldingsFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodeHoldingsFile(p); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("✅ Successfully formatted %s.\n", *holdingsFile)
	return subcommands.ExitSuccess
}
