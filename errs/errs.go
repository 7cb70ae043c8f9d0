// Package errs is Storyscript's error surface: a typed failure carrying
// a kind, a stable classifier string, a line, and optionally the
// offending token, plus a List that accumulates failures while scanning
// a whole source file.
package errs

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/anish-94/storyscript/internal/token"
)

// Kind is the top-level failure category.
type Kind string

const (
	// Syntax is a grammar rejection or transformer validation failure.
	Syntax Kind = "syntax"
	// Internal is an unreachable dispatch in the compiler, indicating a
	// grammar/compiler mismatch.
	Internal Kind = "internal"
)

// Known classifiers.
const (
	ClassifierVariablesBackslash = "variables-backslash"
	ClassifierVariablesDash      = "variables-dash"
	ClassifierGeneric            = "generic"
)

// CompileError is a single typed failure: {kind, classifier, line, token?}.
type CompileError struct {
	Kind       Kind
	Classifier string
	Line       int
	Token      *token.Token
	Message    string
}

func (e *CompileError) Error() string {
	if e.Token != nil {
		return fmt.Sprintf("%s(%s): line %d: %s %q", e.Kind, e.Classifier, e.Line, e.Message, e.Token.Lexeme)
	}
	return fmt.Sprintf("%s(%s): line %d: %s", e.Kind, e.Classifier, e.Line, e.Message)
}

// SyntaxErr constructs a Kind=Syntax CompileError.
func SyntaxErr(classifier string, line int, tok *token.Token, message string) *CompileError {
	return &CompileError{Kind: Syntax, Classifier: classifier, Line: line, Token: tok, Message: message}
}

// InternalErr constructs a Kind=Internal CompileError for an
// unreachable compiler dispatch.
func InternalErr(line int, rule string) *CompileError {
	return &CompileError{Kind: Internal, Classifier: ClassifierGeneric, Line: line, Message: "no compiler rule for " + rule}
}

// List accumulates CompileErrors encountered while parsing or
// transforming a whole source file; Combined joins every problem into one
// error, First picks the lowest-line one. The
// facade itself never surfaces a List: it always collapses back to the
// single first (lowest-line) error and aborts there.
type List struct {
	errs []*CompileError
}

// Add appends one error to the list.
func (l *List) Add(err *CompileError) {
	l.errs = append(l.errs, err)
}

// HasErrors reports whether any error has been added.
func (l *List) HasErrors() bool {
	return len(l.errs) > 0
}

// First returns the lowest-line error, or nil if the list is empty.
func (l *List) First() *CompileError {
	if len(l.errs) == 0 {
		return nil
	}
	first := l.errs[0]
	for _, e := range l.errs[1:] {
		if e.Line < first.Line {
			first = e
		}
	}
	return first
}

// Combined joins every accumulated error into a single multierr-composed
// error, useful for debug tooling that wants to print everything at once.
func (l *List) Combined() error {
	var combined error
	for _, e := range l.errs {
		combined = multierr.Append(combined, e)
	}
	return combined
}
