package sat

import (
	"errors"
	"fmt"
)

// ErrEmptyClause is returned when finalizing a clause with no literals: the
// formula built so far is trivially unsatisfiable. This is a domain outcome,
// not a programmer mistake, so it is returned as an error rather than
// panicking.
var ErrEmptyClause = errors.New("sprop: empty clause makes formula UNSAT")

// ErrUnsatisfiable is the panic value raised by ResolveOrPanic when a
// conflict at level 0 proves the formula unsatisfiable.
var ErrUnsatisfiable = errors.New("sprop: formula is unsatisfiable")

// Misuse errors: these indicate a programming bug in the caller (calling a
// method with the propagator in a state where the call is not valid) and
// are raised via panic rather than returned, wrapping a sentinel error so
// callers can still match on it with errors.Is if they recover.
var (
	ErrInvalidDecision       = errors.New("sprop: push_level called with an already-assigned literal")
	ErrPopAtLevelZero        = errors.New("sprop: pop_level called at level 0")
	ErrQueryOnOpenLiteral    = errors.New("sprop: reason-graph query called with an open literal")
	ErrQueryWhileConflicting = errors.New("sprop: reason-graph query called while conflicting")
	ErrNoConflict            = errors.New("sprop: decisions_leading_to_conflict called with no pending conflict")
	ErrIncompleteTrail       = errors.New("sprop: extract_assignment called with an incomplete trail")
)

func misuse(err error, detail string) {
	panic(fmt.Errorf("%w: %s", err, detail))
}
