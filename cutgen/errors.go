package cutgen

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies the reason an Engine call returned an error.
//
// Kind does not cover the silent-rejection outcomes of separation
// (empty rhs, no valid cover, no acceptable c-MIR delta, and so on) —
// those are reported as a plain false return with no error, exactly
// as the underlying solver does. Kind exists for the smaller set of
// cases where the caller handed the engine something it cannot
// process at all.
type Kind int

const (
	// KindInvalidInput indicates inconsistent arguments: inds and vals
	// of different lengths. Column indices themselves are not checked.
	KindInvalidInput Kind = iota
	// KindNilCollaborator indicates a required collaborator interface
	// (LPRelaxation, CutPool, TransformedLP, Domain) was nil.
	KindNilCollaborator
	// KindTransformFailed indicates the TransformedLP collaborator
	// reported success but returned slices whose lengths disagree. A
	// Transform or Untransform that reports failure (ok=false) is a
	// silent rejection, not an error.
	KindTransformFailed
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindNilCollaborator:
		return "NilCollaborator"
	case KindTransformFailed:
		return "TransformFailed"
	default:
		return "Unknown"
	}
}

// Error reports the operation and reason a cutgen call could not
// proceed. It is only ever returned for cases the pipeline is not
// designed to recover from silently; see Kind.
type Error struct {
	Op    string // operation that failed, e.g. "GenerateCut"
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cutgen: %s failed: %s: %v", e.Op, e.Kind, e.Cause)
	}
	return fmt.Sprintf("cutgen: %s failed: %s", e.Op, e.Kind)
}

// Unwrap allows errors.Is / errors.As to reach the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(op string, kind Kind, msg string) error {
	return &Error{Op: op, Kind: kind, Cause: errors.New(msg)}
}

func wrapError(op string, kind Kind, cause error) error {
	return &Error{Op: op, Kind: kind, Cause: errors.WithStack(cause)}
}
