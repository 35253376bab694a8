package driver

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomaswrobel/scrap-native/pkg/errors"
	"github.com/tomaswrobel/scrap-native/pkg/rewrite"
	"github.com/tomaswrobel/scrap-native/pkg/source"
)

func TestTransform(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"let a: number = f(1);", "let a = await f(self, 1);\n"},
		{"type T = string; let s = x as T;", "let s = x;\n"},
		{"while (go()) { this.x += 1 }", "while (await go(self)) {\n  await self.delay();\n  await this.setX(\"x\", this.x + 1);\n}\n"},
		{"interface V { n: number }", "{\n  self.declareVariable(\"n\", \"number\");\n}\n"},
	}

	for _, tt := range tests {
		actual, err := Transform(tt.input)
		if err != nil {
			t.Errorf("input %q: unexpected error %v", tt.input, err)
			continue
		}
		if actual != tt.expected {
			t.Errorf("input %q:\nexpected %q\n     got %q", tt.input, tt.expected, actual)
		}
	}
}

func TestTransformParseFailure(t *testing.T) {
	_, err := Transform("let = ;\nclass A {}")
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.Error() != "parse failed" {
		t.Errorf("expected an opaque message, got %q", err.Error())
	}
	if !stderrors.Is(err, ErrParse) || stderrors.Is(err, ErrEmit) {
		t.Errorf("expected ErrParse only, got %v", err)
	}

	diags := Diagnostics(err)
	if len(diags) < 2 {
		t.Fatalf("expected diagnostics for both statements, got %d", len(diags))
	}
	if diags[0].Pos().Line != 1 || diags[len(diags)-1].Pos().Line != 2 {
		t.Errorf("unexpected diagnostic lines: %v", errors.Join(diags))
	}
	if diags[0].Pos().Source == nil {
		t.Error("expected diagnostics to carry their source")
	}
}

func TestTransformOptions(t *testing.T) {
	opts := rewrite.DefaultOptions()
	opts.Context = "ctx"
	tr := &Transpiler{Options: opts, Indent: "\t"}

	actual, err := tr.Transform("for (;;) { f(); }")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if expected := "for (;;) {\n\tawait ctx.delay();\n\tawait f(ctx);\n}\n"; actual != expected {
		t.Errorf("expected %q, got %q", expected, actual)
	}
}

func TestVariables(t *testing.T) {
	vars, err := Variables("interface A { x: number }\ninterface B { 'y': string | boolean }")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(vars) != 2 || vars[0].Name != "x" || vars[1].Name != "y" || len(vars[1].Types) != 2 {
		t.Errorf("unexpected variables %+v", vars)
	}

	if _, err := Variables("interface {"); !stderrors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
}

func TestParse(t *testing.T) {
	program, err := Parse("f(); g();")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(program.Statements) != 2 {
		t.Errorf("expected 2 statements, got %d", len(program.Statements))
	}
	// Parse does not rewrite.
	if s := program.String(); !strings.HasPrefix(s, "f();") {
		t.Errorf("expected the program untouched, got %q", s)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sprite.ts")
	if err := os.WriteFile(input, []byte("say('hi');\n"), 0644); err != nil {
		t.Fatal(err)
	}

	output, err := NewTranspiler().WriteFile(input, "")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if output != filepath.Join(dir, "sprite.js") {
		t.Errorf("unexpected output path %q", output)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if expected := "await say(self, 'hi');\n"; string(data) != expected {
		t.Errorf("expected %q, got %q", expected, data)
	}

	if _, err := NewTranspiler().TransformFile(filepath.Join(dir, "missing.ts")); !stderrors.Is(err, os.ErrNotExist) {
		t.Errorf("expected a not-exist error, got %v", err)
	}

	bad := filepath.Join(dir, "bad.ts")
	if err := os.WriteFile(bad, []byte("let x = ;"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = NewTranspiler().TransformFile(bad)
	diags := Diagnostics(err)
	if len(diags) == 0 || diags[0].Pos().Source.DisplayPath() != bad {
		t.Errorf("expected diagnostics pointing at %s, got %v", bad, err)
	}
}

func TestOutputPath(t *testing.T) {
	tests := map[string]string{
		"a.ts":     "a.js",
		"dir/b.ts": "dir/b.js",
		"c":        "c.js",
		".ts":      ".ts.js",
	}
	for input, expected := range tests {
		if actual := OutputPath(input); actual != expected {
			t.Errorf("OutputPath(%q): expected %q, got %q", input, expected, actual)
		}
	}
}

func TestEmitDiagnostic(t *testing.T) {
	sf := source.NewInputSource("x")
	positioned := &errors.EmitError{Position: errors.Position{Line: 1, Column: 1}, Msg: "missing expression"}
	if d := emitDiagnostic(positioned, sf); d.Pos().Source != sf {
		t.Error("expected the source to be attached")
	}

	plain := stderrors.New("boom")
	d := emitDiagnostic(plain, sf)
	if d.Kind() != "Emit" || !stderrors.Is(d, plain) {
		t.Errorf("expected a wrapped emit error, got %v", d)
	}

	failure := &Failure{Stage: ErrEmit, Diagnostics: []errors.ScriptError{d}}
	if !stderrors.Is(failure, ErrEmit) || failure.Error() != "emit failed" {
		t.Errorf("unexpected failure %v", failure)
	}
	if failure.Detail() != "Emit Error: boom" {
		t.Errorf("unexpected detail %q", failure.Detail())
	}
}
