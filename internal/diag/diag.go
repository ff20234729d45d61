// Package diag carries the side-channel diagnostics and structured errors
// described in SPEC_FULL.md §7. Per-file and per-manifest failures are
// absorbed into a Diagnostic list; stage-level invariant breaks are
// surfaced as a StageError. Neither ever mutates a published artifact.
package diag

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/oxhq/archlens/internal/model"
)

// DiagnosticKind tags the severity of a side-channel Diagnostic.
type DiagnosticKind string

const (
	Warning DiagnosticKind = "Warning"
	Info    DiagnosticKind = "Info"
)

// Diagnostic is a non-fatal, absorbed failure or observation attached to a
// stage run. Diagnostics never appear inside an artifact struct.
type Diagnostic struct {
	Stage   string
	Path    string
	Kind    DiagnosticKind
	Message string
}

func (d Diagnostic) String() string {
	if d.Path == "" {
		return fmt.Sprintf("[%s] %s: %s", d.Stage, d.Kind, d.Message)
	}
	return fmt.Sprintf("[%s] %s: %s: %s", d.Stage, d.Kind, d.Path, d.Message)
}

// Collector accumulates Diagnostics for a single stage run. It is not
// safe for concurrent use; call Lock/Unlock-style external synchronization
// (a mutex owned by the caller) when multiple workers append concurrently.
type Collector struct {
	stage string
	items []Diagnostic
	errs  *multierror.Error
}

// NewCollector creates a Collector for the named stage.
func NewCollector(stage string) *Collector {
	return &Collector{stage: stage}
}

// Warnf records a Warning-level diagnostic for path.
func (c *Collector) Warnf(path, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.items = append(c.items, Diagnostic{Stage: c.stage, Path: path, Kind: Warning, Message: msg})
	c.errs = multierror.Append(c.errs, fmt.Errorf("%s: %s", path, msg))
}

// Infof records an Info-level diagnostic for path.
func (c *Collector) Infof(path, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.items = append(c.items, Diagnostic{Stage: c.stage, Path: path, Kind: Info, Message: msg})
}

// Diagnostics returns every diagnostic recorded so far, in append order.
func (c *Collector) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// Merge appends another Collector's diagnostics into this one, useful when
// combining results gathered by independent workers.
func (c *Collector) Merge(other *Collector) {
	if other == nil {
		return
	}
	c.items = append(c.items, other.items...)
	if other.errs != nil {
		c.errs = multierror.Append(c.errs, other.errs.Errors...)
	}
}

// WarningSummary returns the accumulated warnings as a single combined
// error, or nil if none were recorded. It is informational only — callers
// are not required to treat it as a stage failure.
func (c *Collector) WarningSummary() error {
	if c.errs == nil {
		return nil
	}
	return c.errs.ErrorOrNil()
}

// StageError is the structured, stage-level error returned when a stage
// aborts without publishing an artifact: an invalid input, a cancellation,
// or a broken internal invariant.
type StageError struct {
	Stage   string
	Context string
	Err     error
}

func (e *StageError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Context, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// InvalidInput builds a StageError wrapping model.ErrInvalidInput.
func InvalidInput(stage, context string) *StageError {
	return &StageError{Stage: stage, Context: context, Err: model.ErrInvalidInput}
}

// Cancelled builds a StageError wrapping model.ErrCancelled.
func Cancelled(stage string) *StageError {
	return &StageError{Stage: stage, Err: model.ErrCancelled}
}

// Fatal builds a StageError wrapping model.ErrFatal.
func Fatal(stage, context string) *StageError {
	return &StageError{Stage: stage, Context: context, Err: model.ErrFatal}
}
