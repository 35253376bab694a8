package parser

import (
	"strings"
	"testing"
)

func TestDump(t *testing.T) {
	program := parseProgram(t, "let a: number = f(1);")
	var b strings.Builder
	Dump(&b, program)

	expected := `Program
  Statements[0]: VarDeclaration @1:1 Kind="let"
    Declarators[0]: VarDeclarator @1:5
      Target: Identifier @1:5 Value="a"
      TypeAnnotation: KeywordType @1:8 Name="number"
      Value: CallExpression @1:18
        Function: Identifier @1:17 Value="f"
        Arguments[0]: NumberLiteral @1:19 Raw="1"
`
	if b.String() != expected {
		t.Errorf("expected:\n%s\ngot:\n%s", expected, b.String())
	}
}

func TestDumpSkipsNil(t *testing.T) {
	var b strings.Builder
	Dump(&b, &ReturnStatement{})
	if b.String() != "ReturnStatement\n" {
		t.Errorf("unexpected dump %q", b.String())
	}
	b.Reset()
	Dump(&b, nil)
	if b.String() != "" {
		t.Errorf("expected nothing for nil, got %q", b.String())
	}
}
