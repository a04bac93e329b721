// Package agent is the interactive portfolio assistant behind
// `twf assist`. A single Gemini expert receives the full holdings
// declaration and rights ledgers as context and answers questions about
// them.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"

	"github.com/ycwu/twfolio"
	"github.com/ycwu/twfolio/docs"
	"github.com/ycwu/twfolio/renderer"
)

const model = "gemini-2.5-pro"

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w       io.Writer
	r       *bufio.Reader
	Analyst *Expert
}

// New creates a new Agent answering questions about the given
// portfolio, reading user input from r and writing to w.
func New(w io.Writer, r io.Reader, p *twfolio.Portfolio) *Agent {
	return &Agent{
		w:       w,
		r:       bufio.NewReader(r),
		Analyst: newAnalyst(p),
	}
}

func newAnalyst(p *twfolio.Portfolio) *Expert {
	var context strings.Builder
	context.WriteString(renderer.DeclarationMarkdown(p))
	for _, h := range p.Holdings() {
		context.WriteString("\n")
		context.WriteString(renderer.LedgerMarkdown(h))
	}
	// the rights topic explains the adjusted-cost semantics so the
	// model does not invent its own.
	if rights, err := docs.GetTopic("rights"); err == nil {
		context.WriteString("\n")
		context.WriteString(rights)
	}

	return &Expert{
		Name:        "Analyst",
		Description: "Knows the user's Taiwanese stock holdings and their dividend history.",
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an analyst of the user's Taiwanese stock portfolio.
			Below are the user's holdings, their rights ledgers, and the
			documentation of how dividends adjust the cost basis.
			Answer questions about the portfolio from this data only; when
			a question needs information you do not have (live prices,
			news), say so instead of guessing. Amounts are in TWD.

			` + context.String()}}},
		},
	}
}

const prompt = "assist> "

// Run starts the interactive REPL session for the agent. Any prompts
// given are consumed first, then input is read from the reader. 'bye'
// or EOF ends the session.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Analyst.chat == nil {
		if err := a.Analyst.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to twf portfolio assist. Type 'bye' to exit.")

	// REPL loop
	for {
		fmt.Fprint(a.w, prompt)
		var input string

		// Flush prompts from the list and then ask for the user.
		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		content, err := a.Analyst.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, content.Parts[0].Text)
	}
}
