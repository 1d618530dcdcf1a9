// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package faulttree

import "github.com/pkg/errors"

// These sentinels aggregate graph.ErrInvalidGraph and
// bdd.ErrResourceExhausted, so a caller can classify those failures with
// errors.Is without importing the subpackages. Errors from the importance
// package (importance.ErrMissingProbability) are returned as they are.
var (
	// ErrInvalidGraph reports a structural violation in the input fault
	// tree: see graph.ErrInvalidGraph for the specific cases.
	ErrInvalidGraph = errors.New("faulttree: invalid fault tree")

	// ErrResourceExhausted reports that BDD construction abandoned the
	// run after exceeding a configured node limit (see MaxNodes).
	ErrResourceExhausted = errors.New("faulttree: resource exhausted")
)
