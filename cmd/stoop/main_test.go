package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tomaswrobel/scrap-native/pkg/driver"
	"github.com/tomaswrobel/scrap-native/pkg/rewrite"
)

func TestSuggest(t *testing.T) {
	tests := map[string]string{
		"transfrom": "transform",
		"var":       "vars",
		"inti":      "init",
		"xyzzy":     "",
	}
	for input, expected := range tests {
		if actual := suggest(input); actual != expected {
			t.Errorf("suggest(%q): expected %q, got %q", input, expected, actual)
		}
	}
}

func TestPlayModel(t *testing.T) {
	m := newPlayModel(driver.NewTranspiler(), "f()")
	if !strings.Contains(m.output.View(), "await f(self);") {
		t.Errorf("expected the initial transform, got %q", m.output.View())
	}

	m.editor.SetValue("let = ")
	m.refresh()
	if !m.failed {
		t.Error("expected a failed transform")
	}

	m.editor.SetValue("interface V { n: number }")
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.view != viewVariables {
		t.Fatal("expected the variables view")
	}
	if m.failed || !strings.Contains(m.output.View(), "n: ") {
		t.Errorf("expected the variable listing, got %q", m.output.View())
	}
}

func TestFormatVariables(t *testing.T) {
	out := formatVariables([]rewrite.Variable{{Name: "score", Types: []string{"number", "string"}}})
	if !strings.Contains(out, "score: ") || !strings.Contains(out, "number | string") {
		t.Errorf("unexpected listing %q", out)
	}
}
