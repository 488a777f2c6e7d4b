// Copyright 2026 The Lattice Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package diag models the driver's diagnostic vocabulary: the closed set of
// user-input errors, warnings, and internal defects that plan derivation and
// the dependency graph can raise, plus a small in-order collector the rest
// of the driver reports through.
package diag

import "fmt"

// Kind classifies how a Diagnostic should be handled by the caller.
type Kind string

const (
	// KindError aborts plan derivation; the driver exits non-zero.
	KindError Kind = "error"
	// KindWarning is non-fatal; incremental compilation may be disabled but
	// the build continues as a clean build.
	KindWarning Kind = "warning"
	// KindDefect indicates a graph-invariant violation or unhandled mode
	// option: a bug in the driver itself, never expected in a correct build.
	KindDefect Kind = "defect"
	// KindRemark is purely informational (e.g. emitted during graph setup).
	KindRemark Kind = "remark"
)

// ID is the closed set of diagnostic identifiers named by the spec.
type ID string

const (
	ErrStaticEmitExecutableDisallowed ID = "error_static_emit_executable_disallowed"
	ErrOptionMissingRequiredArgument  ID = "error_option_missing_required_argument"
	ErrArgumentNotAllowedWith         ID = "error_argument_not_allowed_with"
	ErrModeCannotEmitModule           ID = "error_mode_cannot_emit_module"
	ErrBadModuleName                  ID = "error_bad_module_name"
	ErrStdlibModuleName               ID = "error_stdlib_module_name"
	ErrInvalidArgValue                ID = "error_invalid_arg_value"
	ErrInvalidDriverName              ID = "error_invalid_driver_name"
	ErrUnknownOption                  ID = "error_unknown_option"
	ErrMissingValue                   ID = "error_missing_value"

	WarnIncrementalRequiresBuildRecordEntry ID = "warning_incremental_requires_build_record_entry"
	WarnBuildRecordUnwritable                ID = "warning_build_record_unwritable"
	WarnBuildRecordMalformed                 ID = "warning_build_record_malformed"

	DefectGraphInvariantViolation ID = "internal_error_graph_invariant_violation"
	DefectUnhandledModeOption     ID = "internal_error_unhandled_mode_option"
)

// Diagnostic is a single reported condition: its kind, identifier, and
// formatted message.
type Diagnostic struct {
	Kind    Kind
	ID      ID
	Message string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Kind, d.ID, d.Message)
}

// New builds a Diagnostic with a formatted message.
func New(kind Kind, id ID, format string, args ...any) Diagnostic {
	return Diagnostic{Kind: kind, ID: id, Message: fmt.Sprintf(format, args...)}
}

func Error(id ID, format string, args ...any) Diagnostic {
	return New(KindError, id, format, args...)
}

func Warning(id ID, format string, args ...any) Diagnostic {
	return New(KindWarning, id, format, args...)
}

func Defect(id ID, format string, args ...any) Diagnostic {
	return New(KindDefect, id, format, args...)
}

func Remark(id ID, format string, args ...any) Diagnostic {
	return New(KindRemark, id, format, args...)
}

// Engine collects diagnostics in the order they were emitted. It is the
// driver-wide collaborator that plan derivation, the build-record store, and
// the dependency graph all report through instead of calling log directly.
type Engine struct {
	diagnostics []Diagnostic
}

// NewEngine returns an empty diagnostic engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Report records a diagnostic, preserving emission order.
func (e *Engine) Report(d Diagnostic) {
	e.diagnostics = append(e.diagnostics, d)
}

// All returns every diagnostic reported so far, in emission order.
func (e *Engine) All() []Diagnostic {
	return e.diagnostics
}

// HasErrors reports whether any KindError or KindDefect diagnostic was
// recorded; a build's exit code depends on this.
func (e *Engine) HasErrors() bool {
	for _, d := range e.diagnostics {
		if d.Kind == KindError || d.Kind == KindDefect {
			return true
		}
	}
	return false
}
