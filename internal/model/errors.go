package model

import "errors"

// Sentinel errors for programmatic checking, per the error taxonomy in
// SPEC_FULL.md §7.
var (
	// ErrInvalidInput is returned immediately, before a stage starts, for a
	// null/blank root path, missing directory, or null options.
	ErrInvalidInput = errors.New("invalid input")
	// ErrCancelled is returned when cooperative cancellation was observed.
	ErrCancelled = errors.New("analysis cancelled")
	// ErrFatal wraps a broken internal invariant (e.g. a graph edge whose
	// endpoint is missing from the node set). No artifact is published
	// when this is returned.
	ErrFatal = errors.New("internal invariant violated")
)
