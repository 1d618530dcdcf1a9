package bdd

import "github.com/pkg/errors"

// ErrResourceExhausted is wrapped by operations that abandon a build
// because the arena grew past a caller-imposed node limit.
var ErrResourceExhausted = errors.New("bdd: resource exhausted")

func resourceExhausted(reason string) error {
	return errors.Wrap(ErrResourceExhausted, reason)
}
