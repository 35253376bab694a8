package rewrite

import (
	"reflect"
	"testing"

	"github.com/tomaswrobel/scrap-native/pkg/parser"
)

func annotation(t *testing.T, typ string) parser.TypeNode {
	t.Helper()
	program := parseProgram(t, "let v: "+typ+";")
	decl := program.Statements[0].(*parser.VarDeclaration)
	return decl.Declarators[0].TypeAnnotation
}

func TestTypeTags(t *testing.T) {
	tests := []struct {
		typ      string
		expected []string
	}{
		{"number", []string{"number"}},
		{"boolean", []string{"boolean"}},
		{"string", []string{"string"}},
		{"void", []string{"void"}},
		{"any", []string{"any"}},
		{"unknown", []string{"any"}},
		{"never", []string{"any"}},
		{"null", []string{"any"}},
		{"number[]", []string{"array"}},
		{"string[][]", []string{"array"}},
		{"(string)", []string{"string"}},
		{"(number | boolean)", []string{"number", "boolean"}},
		{"string | number[]", []string{"string", "array"}},
		{"string | string", []string{"string", "string"}},
		{"string | (number | void)", []string{"string", "number", "void"}},
		{"Costume", []string{"Costume"}},
		{"Array<number>", []string{"Array"}},
		{"ns.Thing", []string{"any"}},
		{"'a'", []string{"any"}},
		{"{ x: number }", []string{"any"}},
		{"[string, number]", []string{"any"}},
		{"() => void", []string{"any"}},
		{"A & B", []string{"any"}},
	}

	for _, tt := range tests {
		actual := TypeTags(annotation(t, tt.typ))
		if !reflect.DeepEqual(actual, tt.expected) {
			t.Errorf("TypeTags(%s): expected %v, got %v", tt.typ, tt.expected, actual)
		}
	}
}

func TestTypeTagsMissing(t *testing.T) {
	var keyword *parser.KeywordType
	var ref *parser.TypeReference
	tests := []struct {
		name string
		node parser.TypeNode
	}{
		{"nil", nil},
		{"typed nil keyword", keyword},
		{"typed nil reference", ref},
		{"empty union", &parser.UnionType{}},
		{"reference without name", &parser.TypeReference{}},
	}
	for _, tt := range tests {
		if actual := TypeTags(tt.node); !reflect.DeepEqual(actual, []string{"any"}) {
			t.Errorf("%s: expected [any], got %v", tt.name, actual)
		}
	}
}
