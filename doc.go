// Package twfolio provides the core logic for tracking a personal stock
// portfolio across multiple brokerage accounts, with a focus on the
// Taiwanese market's ex-dividend/ex-rights (除權息) mechanics.
//
// The core functionalities include:
//   - Rights Adjustment: a pure computation that replays a security's
//     historical corporate actions (cash dividends and stock dividends)
//     against a holding to derive an adjusted per-share cost basis and
//     the post-event share count.
//   - Reconciliation: an orchestrator that fetches corporate actions
//     from an external data source, filters and orders them, and applies
//     them exactly once each, so that refreshing a holding is idempotent.
//   - Portfolio Valuation: market value and gain/loss of holdings from
//     current quotes against the blended (adjusted) cost basis.
//   - Data Persistence: encoding and decoding holdings to and from a
//     human-readable, version-controllable JSONL format.
//
// This package serves as the foundational logic for the `twf` command-line
// tool. It performs no persistence of its own: callers load holdings,
// reconcile them, and store the result.
package twfolio
