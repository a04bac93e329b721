// Package cmd implements the CLI application to track Taiwanese stock
// holdings and their rights adjustments.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/ycwu/twfolio"
	"github.com/ycwu/twfolio/finmind"
	"github.com/ycwu/twfolio/twse"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "holdings")
	c.Register(&removeCmd{}, "holdings")
	c.Register(&listCmd{}, "holdings")
	c.Register(&fmtCmd{}, "holdings")

	c.Register(&refreshCmd{}, "market data")
	c.Register(&quoteCmd{}, "market data")
	c.Register(&summaryCmd{}, "market data")

	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var holdingsFile = flag.String("file", "holdings.jsonl", "Path to the holdings file (JSONL format)")

// DecodeHoldingsFile loads the portfolio from the app holdings file. A
// missing file is an empty portfolio.
func DecodeHoldingsFile() (*twfolio.Portfolio, error) {
	f, err := os.Open(*holdingsFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, holdings file does not exist, starting with an empty portfolio")
		return twfolio.NewPortfolio(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open holdings file %q: %w", *holdingsFile, err)
	}
	defer f.Close()

	p, err := twfolio.DecodeHoldings(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode holdings file %q: %w", *holdingsFile, err)
	}
	return p, nil
}

// EncodeHoldingsFile writes the portfolio back to the app holdings file.
func EncodeHoldingsFile(p *twfolio.Portfolio) error {
	f, err := os.Create(*holdingsFile)
	if err != nil {
		return fmt.Errorf("could not write holdings file %q: %w", *holdingsFile, err)
	}
	defer f.Close()
	if err := twfolio.EncodeHoldings(f, p); err != nil {
		return fmt.Errorf("could not encode holdings file %q: %w", *holdingsFile, err)
	}
	return nil
}

// newReconciler wires the default corporate-action chain: FinMind for
// history, the TWSE daily report as fallback.
func newReconciler() *twfolio.Reconciler {
	source := twfolio.Fallback(finmind.NewSource(""), twse.NewSource())
	return twfolio.NewReconciler(source, log.New(os.Stderr, "", log.LstdFlags))
}

// printMarkdown renders markdown for the terminal. If rendering fails
// the raw markdown is still readable, print it as is.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
