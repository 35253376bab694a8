package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/tomaswrobel/scrap-native/pkg/source"
)

func TestDisplayErrors(t *testing.T) {
	src := source.NewSourceFile("sprite.ts", "sprite.ts", "let x = 1;\nlet = 2;\n")
	errs := []ScriptError{
		&SyntaxError{
			Position: Position{Line: 2, Column: 5, StartPos: 15, EndPos: 16, Source: src},
			Msg:      "expected identifier",
		},
		&EmitError{Msg: "nil expression"},
	}

	var buf bytes.Buffer
	DisplayErrors(&buf, errs, false)
	out := buf.String()

	for _, want := range []string{
		"Syntax Error at sprite.ts:2:5: expected identifier",
		"   2 | let = 2;",
		"     |     ^",
		"Emit Error: nil expression",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		err  ScriptError
		want string
		kind string
	}{
		{&SyntaxError{Position: Position{Line: 3, Column: 7}, Msg: "unexpected token"}, "Syntax Error at 3:7: unexpected token", "Syntax"},
		{&EmitError{Position: Position{Line: 1, Column: 1}, Msg: "bad node"}, "Emit Error at 1:1: bad node", "Emit"},
		{&EmitError{Msg: "bad node"}, "Emit Error: bad node", "Emit"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
		if got := tt.err.Kind(); got != tt.kind {
			t.Errorf("Kind() = %q, want %q", got, tt.kind)
		}
	}
}

func TestCausedBy(t *testing.T) {
	cause := stderrors.New("invalid group")
	err := (&SyntaxError{Msg: "invalid regular expression"}).CausedBy(cause)
	if !stderrors.Is(err, cause) {
		t.Errorf("expected SyntaxError to unwrap to its cause")
	}
}
