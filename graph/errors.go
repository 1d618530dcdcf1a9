package graph

import "github.com/pkg/errors"

// ErrInvalidGraph is the sentinel wrapped by every structural violation the
// graph builder detects: arity mismatches, malformed vote numbers, and
// other contract breaches in AddArg/ProcessConstantArg.
var ErrInvalidGraph = errors.New("invalid boolean graph")

// invalidGraph wraps ErrInvalidGraph with a caller-supplied reason so
// callers can still match on the sentinel with errors.Is.
func invalidGraph(reason string) error {
	return errors.Wrap(ErrInvalidGraph, reason)
}
