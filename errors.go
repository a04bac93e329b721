package twfolio

import "fmt"

// The failure taxonomy is deliberately small. Nothing here is fatal to
// the application: every failure degrades to "holding unchanged".

// InvalidEventError reports a corporate-action record that fails basic
// numeric validation. The offending event is skipped and reconciliation
// continues with the remaining events.
type InvalidEventError struct {
	Symbol string
	ExDate Date
	Reason string
}

func (e *InvalidEventError) Error() string {
	return fmt.Sprintf("invalid corporate action %s %s: %s", e.Symbol, e.ExDate, e.Reason)
}

// GatewayError reports that an external data source could not be
// reached or timed out. Treated as "no data for now": the holding is
// returned unchanged and the failure is logged, never surfaced.
type GatewayError struct {
	Source string
	Err    error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s unavailable: %v", e.Source, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// MalformedResponseError reports that a data source answered with a
// payload that does not decode into corporate-action records. Same
// recovery as GatewayError.
type MalformedResponseError struct {
	Source string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("gateway %s returned malformed data: %v", e.Source, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
