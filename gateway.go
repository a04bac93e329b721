package twfolio

import (
	"context"
	"errors"
	"time"
)

// ActionSource is the single capability the reconciler consumes from
// the outside world: given a symbol, return its known corporate-action
// records in any order. An empty slice means "no data for this symbol"
// and is a normal outcome, not an error (bond ETFs typically have no
// coverage).
type ActionSource interface {
	// Name identifies the source in logs.
	Name() string
	CorporateActions(ctx context.Context, symbol string) ([]CorporateAction, error)
}

// Quote is a point-in-time price observation for a symbol.
type Quote struct {
	Symbol string
	Price  Money
	At     time.Time
	Source string
}

// QuoteSource provides a latest-known price for a symbol. Used for
// valuation reports, not for reconciliation.
type QuoteSource interface {
	Name() string
	Quote(ctx context.Context, symbol string) (Quote, error)
}

// fallbackSource tries each underlying source in priority order and
// returns the first successful answer. Public data sources for the
// Taiwanese market are individually unreliable; chaining them is the
// normal mode of operation.
type fallbackSource struct {
	sources []ActionSource
}

// Fallback combines sources into one that tries each in order. An empty
// (but successful) answer from a source is final: absence of data is
// data, falling through would just re-ask the same question elsewhere
// every refresh.
func Fallback(sources ...ActionSource) ActionSource {
	return &fallbackSource{sources: sources}
}

func (f *fallbackSource) Name() string { return "fallback" }

func (f *fallbackSource) CorporateActions(ctx context.Context, symbol string) ([]CorporateAction, error) {
	var errs error
	for _, s := range f.sources {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(errs, err)
		}
		actions, err := s.CorporateActions(ctx, symbol)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		return actions, nil
	}
	if errs == nil {
		errs = errors.New("no corporate action source configured")
	}
	return nil, &GatewayError{Source: f.Name(), Err: errs}
}
