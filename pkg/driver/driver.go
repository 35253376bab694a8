// Package driver runs the parse, rewrite and print stages over script
// source and reports failures as opaque errors with diagnostics attached.
package driver

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tomaswrobel/scrap-native/pkg/errors"
	"github.com/tomaswrobel/scrap-native/pkg/parser"
	"github.com/tomaswrobel/scrap-native/pkg/rewrite"
	"github.com/tomaswrobel/scrap-native/pkg/source"
	"go.uber.org/zap"
)

var (
	// ErrParse is matched by failures of the parse stage.
	ErrParse = stderrors.New("parse failed")
	// ErrEmit is matched by failures of the print stage.
	ErrEmit = stderrors.New("emit failed")
)

// Failure is returned when a stage rejects its input. Its message is
// opaque; the positioned errors are kept in Diagnostics.
type Failure struct {
	Stage       error
	Diagnostics []errors.ScriptError
}

func (f *Failure) Error() string { return f.Stage.Error() }
func (f *Failure) Unwrap() error { return f.Stage }

// Detail joins the diagnostics one per line.
func (f *Failure) Detail() string {
	return errors.Join(f.Diagnostics)
}

// Diagnostics returns the positioned errors behind err, if any.
func Diagnostics(err error) []errors.ScriptError {
	var failure *Failure
	if stderrors.As(err, &failure) {
		return failure.Diagnostics
	}
	return nil
}

// Transpiler turns scripts into their cooperative form.
type Transpiler struct {
	Options rewrite.Options
	// Indent is one level of output indentation. Empty means two spaces.
	Indent string
}

// NewTranspiler returns a Transpiler with the default options.
func NewTranspiler() *Transpiler {
	return &Transpiler{Options: rewrite.DefaultOptions()}
}

// Parse parses code without rewriting it.
func Parse(code string) (*parser.Program, error) {
	return NewTranspiler().Parse(code)
}

// Transform parses, rewrites, strips and prints code with the default
// options.
func Transform(code string) (string, error) {
	return NewTranspiler().Transform(code)
}

// Variables lists the variables declared by top-level interfaces in code.
func Variables(code string) ([]rewrite.Variable, error) {
	return NewTranspiler().Variables(code)
}

func (t *Transpiler) Parse(code string) (*parser.Program, error) {
	return t.ParseSource(source.NewInputSource(code))
}

// ParseSource parses sf. Diagnostics refer to sf for display.
func (t *Transpiler) ParseSource(sf *source.SourceFile) (*parser.Program, error) {
	start := time.Now()
	program, errs := parser.ParseSource(sf)
	Logger().Debug("parsed",
		zap.String("source", sf.DisplayPath()),
		zap.Int("statements", len(program.Statements)),
		zap.Int("errors", len(errs)),
		zap.Duration("elapsed", time.Since(start)))
	if len(errs) > 0 {
		return nil, &Failure{Stage: ErrParse, Diagnostics: errs}
	}
	return program, nil
}

func (t *Transpiler) Transform(code string) (string, error) {
	return t.TransformSource(source.NewInputSource(code))
}

// TransformSource runs every stage over sf.
func (t *Transpiler) TransformSource(sf *source.SourceFile) (string, error) {
	program, err := t.ParseSource(sf)
	if err != nil {
		return "", err
	}

	start := time.Now()
	rewrite.New(t.Options).Program(program)
	parser.StripTypes(program)
	Logger().Debug("rewritten", zap.String("source", sf.DisplayPath()), zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	emitter := parser.NewEmitter()
	if t.Indent != "" {
		emitter.Indent = t.Indent
	}
	out, err := emitter.Emit(program)
	if err != nil {
		return "", &Failure{Stage: ErrEmit, Diagnostics: []errors.ScriptError{emitDiagnostic(err, sf)}}
	}
	Logger().Debug("emitted", zap.String("source", sf.DisplayPath()), zap.Int("bytes", len(out)), zap.Duration("elapsed", time.Since(start)))
	return out, nil
}

func (t *Transpiler) Variables(code string) ([]rewrite.Variable, error) {
	program, err := t.Parse(code)
	if err != nil {
		return nil, err
	}
	return rewrite.Variables(program), nil
}

// TransformFile reads and transforms the script at path.
func (t *Transpiler) TransformFile(path string) (string, error) {
	sf, err := source.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return t.TransformSource(sf)
}

// WriteFile transforms input and writes the result to output. An empty
// output replaces a .ts extension with .js.
func (t *Transpiler) WriteFile(input, output string) (string, error) {
	if output == "" {
		output = OutputPath(input)
	}
	code, err := t.TransformFile(input)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(output, []byte(code), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", output, err)
	}
	Logger().Info("wrote script", zap.String("input", input), zap.String("output", output))
	return output, nil
}

// OutputPath derives the default output file for input.
func OutputPath(input string) string {
	if base, ok := strings.CutSuffix(input, ".ts"); ok && base != "" {
		return base + ".js"
	}
	return input + ".js"
}

func emitDiagnostic(err error, sf *source.SourceFile) errors.ScriptError {
	var emitErr *errors.EmitError
	if !stderrors.As(err, &emitErr) {
		return &errors.EmitError{Msg: err.Error(), Cause: err}
	}
	if !emitErr.Position.IsZero() && emitErr.Position.Source == nil {
		emitErr.Position.Source = sf
	}
	return emitErr
}
