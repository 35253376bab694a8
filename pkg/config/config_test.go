package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tomaswrobel/scrap-native/pkg/rewrite"
)

func TestDefaultMatchesRewrite(t *testing.T) {
	opts := Default().RewriteOptions()
	if !reflect.DeepEqual(opts, rewrite.DefaultOptions()) {
		t.Errorf("expected %+v, got %+v", rewrite.DefaultOptions(), opts)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
context: host.ctx
interrupt: Halt
pure_callees: [log]
setters:
  size: setSize
bare_callee_context: true
emit:
  indent: "\t"
`)
	config, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts := config.RewriteOptions()
	if opts.Context != "host.ctx" || opts.Interrupt != "Halt" || !opts.BareCalleeContext {
		t.Errorf("unexpected options %+v", opts)
	}
	if opts.ErrorBinding != "__error__" {
		t.Errorf("expected the default error binding, got %q", opts.ErrorBinding)
	}
	if !reflect.DeepEqual(opts.PureCallees, []string{"log"}) {
		t.Errorf("unexpected pure callees %v", opts.PureCallees)
	}
	if !reflect.DeepEqual(opts.Setters, map[string]string{"size": "setSize"}) {
		t.Errorf("unexpected setters %v", opts.Setters)
	}
	if config.Emit.Indent != "\t" {
		t.Errorf("expected tab indent, got %q", config.Emit.Indent)
	}
}

func TestParseKeepsDefaults(t *testing.T) {
	config, err := Parse([]byte("context: stage\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Context != "stage" {
		t.Errorf("expected context stage, got %q", config.Context)
	}
	if !reflect.DeepEqual(config.Setters, rewrite.DefaultSetters()) {
		t.Errorf("expected default setters, got %v", config.Setters)
	}
	if config.Emit.Indent != "  " {
		t.Errorf("expected default indent, got %q", config.Emit.Indent)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"context: [", "invalid config"},
		{"context: 'a b'", "context"},
		{"interrupt: Scrap..Stop", "interrupt"},
		{"error_binding: 1x", "error_binding"},
		{"pure_callees: ['not ok']", "pure callee"},
		{"setters: { x: '' }", "setter"},
		{"emit: { indent: '--' }", "emit.indent"},
	}
	for _, tt := range tests {
		_, err := Parse([]byte(tt.input))
		if err == nil {
			t.Errorf("input %q: expected an error", tt.input)
			continue
		}
		if !strings.Contains(err.Error(), tt.message) {
			t.Errorf("input %q: expected error containing %q, got %v", tt.input, tt.message, err)
		}
	}
}

func TestWriteAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	config := Default()
	config.Context = "runtime"

	if err := Write(path, config, false); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := Write(path, config, false); err == nil {
		t.Error("expected an error when the file exists")
	}
	if err := Write(path, config, true); err != nil {
		t.Errorf("forced write failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, config) {
		t.Errorf("expected %+v, got %+v", config, loaded)
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	config, err := Find("")
	if err != nil {
		t.Fatalf("unexpected error without a project file: %v", err)
	}
	if config.Context != "self" {
		t.Errorf("expected defaults, got %+v", config)
	}

	if err := os.WriteFile(FileName, []byte("context: stage\n"), 0644); err != nil {
		t.Fatal(err)
	}
	config, err = Find("")
	if err != nil || config.Context != "stage" {
		t.Errorf("expected the project file to be used, got %+v, %v", config, err)
	}

	if _, err := Find(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for an explicit missing file")
	}
}
