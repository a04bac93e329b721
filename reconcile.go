package twfolio

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"
)

// Defaults for batch reconciliation, tuned to stay under the public
// APIs' rate limits.
const (
	DefaultGroupSize  = 3
	DefaultGroupDelay = 1500 * time.Millisecond
	DefaultMaxAge     = 24 * time.Hour
)

// A Reconciler replays corporate actions from a data source against
// holdings. It owns sequencing and idempotence: every eligible event is
// applied exactly once, in ex-date order, carrying the running
// shares/cost forward from one event to the next.
//
// All collaborators are injected; the reconciler keeps no hidden state
// and is safe for concurrent use.
type Reconciler struct {
	source ActionSource
	logger *log.Logger

	// GroupSize and GroupDelay throttle ReconcileBatch: holdings are
	// processed in groups of GroupSize with GroupDelay between groups.
	GroupSize  int
	GroupDelay time.Duration

	// MaxAge is how old a holding's last reconciliation may be before
	// Stale reports it needs a refresh.
	MaxAge time.Duration

	// now is the clock, replaceable in tests.
	now func() time.Time
}

// NewReconciler returns a Reconciler reading from source. A nil logger
// falls back to the standard logger.
func NewReconciler(source ActionSource, logger *log.Logger) *Reconciler {
	if logger == nil {
		logger = log.Default()
	}
	return &Reconciler{
		source:     source,
		logger:     logger,
		GroupSize:  DefaultGroupSize,
		GroupDelay: DefaultGroupDelay,
		MaxAge:     DefaultMaxAge,
		now:        time.Now,
	}
}

// Stale reports whether the holding's rights ledger is due for a
// refresh: never reconciled, or last reconciled more than MaxAge ago.
func (r *Reconciler) Stale(h Holding) bool {
	if h.LastRightsUpdate.IsZero() {
		return true
	}
	return r.now().Sub(h.LastRightsUpdate) > r.MaxAge
}

// Reconcile fetches the corporate actions for the holding's symbol and
// replays the eligible ones through the rights adjustment. With force
// set, the holding is first reset to its original pre-adjustment state
// and the whole history is replayed from scratch, which makes the call
// idempotent whatever the source returns and in whatever order.
//
// Reconcile never fails: an unreachable source, a malformed response, a
// cancelled context or an empty answer all leave the holding unchanged.
// Dividend data is best-effort and must not block the holdings record.
func (r *Reconciler) Reconcile(ctx context.Context, h Holding, force bool) Holding {
	actions, err := r.source.CorporateActions(ctx, h.Symbol)
	if err != nil {
		r.logger.Printf("warning: %s: skipping rights update: %v", h.Symbol, err)
		return h
	}
	if len(actions) == 0 {
		return h
	}
	return r.replay(h, actions, force)
}

// replay applies raw actions to the holding. Filtering, ordering,
// deduplication and the carry-forward of running state all happen here.
func (r *Reconciler) replay(h Holding, actions []CorporateAction, force bool) Holding {
	// Only actions on or after the purchase date apply.
	eligible := make([]CorporateAction, 0, len(actions))
	for _, a := range actions {
		if a.ExDate.Before(h.PurchaseDate) {
			continue
		}
		eligible = append(eligible, a)
	}

	// Chronological replay order. The sort is stable; should two raw
	// records share a (symbol, ex-date) the first one wins and the rest
	// are dropped as duplicates below.
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].ExDate.Before(eligible[j].ExDate)
	})

	updated := h
	var shares int64
	var cost Money
	if force {
		// Replay from the untouched base state so deltas are never
		// applied twice, no matter how often this runs.
		shares, cost = h.originalState()
		updated.RightsLedger = nil
	} else {
		shares, cost = h.Shares, h.CostBasis()
		updated.RightsLedger = append([]RightsLedgerEntry(nil), h.RightsLedger...)
	}

	applied := 0
	for _, ev := range eligible {
		if updated.hasEvent(ev.Symbol, ev.ExDate) {
			continue
		}
		entry, err := ApplyEvent(shares, cost, ev)
		if err != nil {
			r.logger.Printf("warning: %s: skipping event on %s: %v", h.Symbol, ev.ExDate, err)
			continue
		}
		updated.RightsLedger = append(updated.RightsLedger, entry)
		// Carry the running state forward: the next event must see the
		// shares and cost this one produced.
		shares, cost = entry.SharesAfter, entry.CostAfter
		applied++
	}

	if applied == 0 && !force {
		// Nothing new; leave the holding untouched (idempotent refresh).
		return h
	}

	sort.SliceStable(updated.RightsLedger, func(i, j int) bool {
		return updated.RightsLedger[i].ExDate.Before(updated.RightsLedger[j].ExDate)
	})

	updated.Shares = shares
	updated.AdjustedCost = cost
	updated.LastRightsUpdate = r.now()
	return updated
}

// ReconcileBatch reconciles holdings in small concurrent groups with a
// throttling delay between groups. A failure on one holding never
// prevents the others from being processed: failed holdings come back
// unchanged. The result preserves the input order.
func (r *Reconciler) ReconcileBatch(ctx context.Context, holdings []Holding, force bool) []Holding {
	results := make([]Holding, len(holdings))
	copy(results, holdings)

	size := r.GroupSize
	if size <= 0 {
		size = DefaultGroupSize
	}

	for start := 0; start < len(holdings); start += size {
		end := min(start+size, len(holdings))

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = r.Reconcile(ctx, holdings[i], force)
			}(i)
		}
		wg.Wait()

		if end >= len(holdings) {
			break
		}
		select {
		case <-ctx.Done():
			// Remaining holdings stay as they were.
			return results
		case <-time.After(r.GroupDelay):
		}
	}
	return results
}
