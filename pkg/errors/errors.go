package errors

import (
	"fmt"
	"strings"
)

// ScriptError is implemented by every diagnostic the toolchain reports.
type ScriptError interface {
	error
	Pos() Position
	Kind() string // "Syntax" or "Emit"
	// Message returns the error text without position info.
	Message() string
	Unwrap() error
}

// SyntaxError represents an error during lexing or parsing.
type SyntaxError struct {
	Position
	Msg   string
	Cause error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Syntax Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *SyntaxError) Pos() Position   { return e.Position }
func (e *SyntaxError) Kind() string    { return "Syntax" }
func (e *SyntaxError) Message() string { return e.Msg }
func (e *SyntaxError) Unwrap() error   { return e.Cause }
func (e *SyntaxError) CausedBy(cause error) *SyntaxError {
	e.Cause = cause
	return e
}

// EmitError is raised when a tree cannot be printed back to source, for
// instance because a rewrite left a nil node behind.
type EmitError struct {
	Position
	Msg   string
	Cause error
}

func (e *EmitError) Error() string {
	if e.Position.IsZero() {
		return "Emit Error: " + e.Msg
	}
	return fmt.Sprintf("Emit Error at %d:%d: %s", e.Line, e.Column, e.Msg)
}
func (e *EmitError) Pos() Position   { return e.Position }
func (e *EmitError) Kind() string    { return "Emit" }
func (e *EmitError) Message() string { return e.Msg }
func (e *EmitError) Unwrap() error   { return e.Cause }
func (e *EmitError) CausedBy(cause error) *EmitError {
	e.Cause = cause
	return e
}

// Join formats a list of errors one per line.
func Join(errs []ScriptError) string {
	var b strings.Builder
	for i, err := range errs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Error())
	}
	return b.String()
}
