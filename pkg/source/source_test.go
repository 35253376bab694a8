package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLines(t *testing.T) {
	sf := NewInputSource("let a = 1;\r\nlet b = 2;\nlet c = 3;")

	tests := []struct {
		n      int
		want   string
		wantOk bool
	}{
		{1, "let a = 1;", true},
		{2, "let b = 2;", true},
		{3, "let c = 3;", true},
		{0, "", false},
		{4, "", false},
	}
	for _, tt := range tests {
		got, ok := sf.Line(tt.n)
		if ok != tt.wantOk || got != tt.want {
			t.Errorf("Line(%d) = %q, %v; want %q, %v", tt.n, got, ok, tt.want, tt.wantOk)
		}
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprite.ts")
	if err := os.WriteFile(path, []byte("say(1);\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	sf, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if sf.Name != "sprite.ts" {
		t.Errorf("Name = %q, want sprite.ts", sf.Name)
	}
	if !sf.IsFile() || sf.DisplayPath() != path {
		t.Errorf("DisplayPath = %q, want %q", sf.DisplayPath(), path)
	}
	if NewStdinSource("").DisplayPath() != "<stdin>" {
		t.Errorf("stdin source should display as <stdin>")
	}
}
