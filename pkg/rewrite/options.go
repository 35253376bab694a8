package rewrite

import (
	"strings"

	"github.com/tomaswrobel/scrap-native/pkg/parser"
)

// Options controls the names the rewrite injects into a script.
type Options struct {
	// Context is the runtime-context expression passed to rewritten calls
	// and used as the receiver of declare and delay operations. Dotted
	// paths such as "host.ctx" are accepted.
	Context string

	// Interrupt is the error class that user catch clauses must rethrow.
	Interrupt string

	// ErrorBinding names the catch parameter synthesized for `catch {}`.
	ErrorBinding string

	// PureCallees lists bare callee names that do not receive the context
	// argument. Their calls are still awaited.
	PureCallees []string

	// Setters maps an assigned property name to the context method that
	// replaces the write.
	Setters map[string]string

	// BareCalleeContext restricts context insertion to calls whose callee
	// is a plain identifier. Method calls keep their arguments as written.
	BareCalleeContext bool
}

// DefaultSetters returns a fresh copy of the built-in setter table.
func DefaultSetters() map[string]string {
	return map[string]string{
		"x":         "setX",
		"y":         "setY",
		"draggable": "setDraggable",
		"volume":    "setVolume",
		"direction": "pointInDirection",
	}
}

// DefaultOptions returns the options used by Rewrite.
func DefaultOptions() Options {
	return Options{
		Context:      "self",
		Interrupt:    "Scrap.StoopError",
		ErrorBinding: "__error__",
		PureCallees:  []string{"String", "Number"},
		Setters:      DefaultSetters(),
	}
}

// withDefaults fills empty fields from DefaultOptions. A nil Setters map
// selects the built-in table; an empty non-nil map disables setters.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Context == "" {
		o.Context = d.Context
	}
	if o.Interrupt == "" {
		o.Interrupt = d.Interrupt
	}
	if o.ErrorBinding == "" {
		o.ErrorBinding = d.ErrorBinding
	}
	if o.PureCallees == nil {
		o.PureCallees = d.PureCallees
	}
	if o.Setters == nil {
		o.Setters = d.Setters
	}
	return o
}

// pathExpression builds `a.b.c` from its dotted spelling.
func pathExpression(path string) parser.Expression {
	parts := strings.Split(path, ".")
	var expr parser.Expression = &parser.Identifier{Value: parts[0]}
	for _, part := range parts[1:] {
		expr = &parser.MemberExpression{Object: expr, Property: &parser.Identifier{Value: part}}
	}
	return expr
}
