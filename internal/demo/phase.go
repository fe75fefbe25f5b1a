package demo

import (
	"errors"
	"fmt"

	"github.com/orsinium-labs/enum"
)

// Phase represents a step of the demo run.
type Phase = enum.Member[string]

var (
	PhaseInit      = Phase{Value: "init"}
	PhaseSchema    = Phase{Value: "schema"}
	PhaseSeed      = Phase{Value: "seed"}
	PhaseQuery     = Phase{Value: "query"}
	PhaseMutate    = Phase{Value: "mutate"}
	PhaseAggregate = Phase{Value: "aggregate"}
	PhaseCommit    = Phase{Value: "commit"}
	PhaseClose     = Phase{Value: "close"}

	// Phases lists every phase in execution order.
	Phases = enum.New(
		PhaseInit,
		PhaseSchema,
		PhaseSeed,
		PhaseQuery,
		PhaseMutate,
		PhaseAggregate,
		PhaseCommit,
		PhaseClose,
	)
)

// PhaseError is a database error tagged with the phase that produced it.
type PhaseError struct {
	Phase Phase
	Err   error
}

func newPhaseError(phase Phase, err error) *PhaseError {
	return &PhaseError{Phase: phase, Err: err}
}

// Error implements the error interface.
func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Phase.Value, e.Err)
}

// Unwrap returns the underlying database error.
func (e *PhaseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *PhaseError for the same phase.
func (e *PhaseError) Is(target error) bool {
	t, ok := target.(*PhaseError)
	if !ok {
		return false
	}
	return e.Phase == t.Phase
}

// FailedPhase returns the phase that produced err, if err carries one.
func FailedPhase(err error) (Phase, bool) {
	var phaseErr *PhaseError
	if errors.As(err, &phaseErr) {
		return phaseErr.Phase, true
	}
	return Phase{}, false
}
