package shapecheck

import (
	json "github.com/goccy/go-json"

	"github.com/shapecheck/shapecheck/fsys"
)

// ValidationResult is the sole output contract of a run. OK is strictly
// derived: it is true iff Issues is empty.
type ValidationResult struct {
	OK     bool   `json:"ok"`
	Issues Issues `json:"issues"`
}

// JSON renders the result as the machine-readable report consumed by
// generated-tool callers. Issues marshals as [] rather than null when empty.
func (r ValidationResult) JSON() ([]byte, error) { return json.Marshal(r) }

// Run validates value with f against a fresh sink and packages the outcome.
func Run(value Value, f ValidatorFunc) ValidationResult {
	sink := NewSink()
	f(value, Path{}, sink)
	return ValidationResult{OK: sink.Empty(), Issues: sink.Issues()}
}

// PathValidatorFunc validates a filesystem path and returns the context it
// opened, if any, mirroring the OpenAndValidateBundle contract. The runner
// owns releasing that context.
type PathValidatorFunc func(bundlePath string, p Path, sink *Sink) fsys.Context

// RunPath validates bundlePath with f against a fresh sink. Any context f
// opened is closed before the result is returned, whether or not validation
// passed.
func RunPath(bundlePath string, f PathValidatorFunc) ValidationResult {
	sink := NewSink()
	if ctx := f(bundlePath, Path{}, sink); ctx != nil {
		defer func() { _ = ctx.Close() }()
	}
	return ValidationResult{OK: sink.Empty(), Issues: sink.Issues()}
}
