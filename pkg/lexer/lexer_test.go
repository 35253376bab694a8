package lexer

import (
	"testing"
)

func TestNextToken(t *testing.T) {
	input := `interface Vars { score: number }
let five = 5;
const ten = 10.5;

self.x += 0x1F;
a?.b ?? c;
x **= 2 >>> 1;
// comment
/* block
   comment */ let s = 'it\'s';`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
		expectedLine    int
	}{
		{IDENT, "interface", 1},
		{IDENT, "Vars", 1},
		{LBRACE, "{", 1},
		{IDENT, "score", 1},
		{COLON, ":", 1},
		{IDENT, "number", 1},
		{RBRACE, "}", 1},
		{LET, "let", 2},
		{IDENT, "five", 2},
		{ASSIGN, "=", 2},
		{NUMBER, "5", 2},
		{SEMICOLON, ";", 2},
		{CONST, "const", 3},
		{IDENT, "ten", 3},
		{ASSIGN, "=", 3},
		{NUMBER, "10.5", 3},
		{SEMICOLON, ";", 3},
		{IDENT, "self", 5},
		{DOT, ".", 5},
		{IDENT, "x", 5},
		{PLUS_ASSIGN, "+=", 5},
		{NUMBER, "0x1F", 5},
		{SEMICOLON, ";", 5},
		{IDENT, "a", 6},
		{OPTIONAL_CHAINING, "?.", 6},
		{IDENT, "b", 6},
		{COALESCE, "??", 6},
		{IDENT, "c", 6},
		{SEMICOLON, ";", 6},
		{IDENT, "x", 7},
		{EXPONENT_ASSIGN, "**=", 7},
		{NUMBER, "2", 7},
		{UNSIGNED_RIGHT_SHIFT, ">>>", 7},
		{NUMBER, "1", 7},
		{SEMICOLON, ";", 7},
		{LET, "let", 10},
		{IDENT, "s", 10},
		{ASSIGN, "=", 10},
		{STRING, "it's", 10},
		{SEMICOLON, ";", 10},
		{EOF, "", 10},
	}

	l := NewLexer(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (literal %q)", i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
		if tok.Line != tt.expectedLine {
			t.Errorf("tests[%d] - line wrong for %q. expected=%d, got=%d", i, tok.Literal, tt.expectedLine, tok.Line)
		}
	}
}

func TestSpecificOperatorLexing(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenType
	}{
		{"a &&= b", []TokenType{IDENT, LOGICAL_AND_ASSIGN, IDENT, EOF}},
		{"a ||= b", []TokenType{IDENT, LOGICAL_OR_ASSIGN, IDENT, EOF}},
		{"a ??= b", []TokenType{IDENT, COALESCE_ASSIGN, IDENT, EOF}},
		{"a <<= b >>= c >>>= d", []TokenType{IDENT, LEFT_SHIFT_ASSIGN, IDENT, RIGHT_SHIFT_ASSIGN, IDENT, UNSIGNED_RIGHT_SHIFT_ASSIGN, IDENT, EOF}},
		{"a &= b |= c ^= d %= e", []TokenType{IDENT, BITWISE_AND_ASSIGN, IDENT, BITWISE_OR_ASSIGN, IDENT, BITWISE_XOR_ASSIGN, IDENT, REMAINDER_ASSIGN, IDENT, EOF}},
		{"a === b !== c", []TokenType{IDENT, STRICT_EQ, IDENT, STRICT_NOT_EQ, IDENT, EOF}},
		{"(x) => ...y", []TokenType{LPAREN, IDENT, RPAREN, ARROW, SPREAD, IDENT, EOF}},
		{"a?.5:1", []TokenType{IDENT, QUESTION, NUMBER, COLON, NUMBER, EOF}},
		{"x++ - --y", []TokenType{IDENT, INC, MINUS, DEC, IDENT, EOF}},
		{"this.#secret", []TokenType{THIS, DOT, PRIVATE_IDENT, EOF}},
		{"e instanceof Scrap.StoopError", []TokenType{IDENT, INSTANCEOF, IDENT, DOT, IDENT, EOF}},
		{"@", []TokenType{AT, EOF}},
	}

	for _, tt := range tests {
		l := NewLexer(tt.input)
		for i, want := range tt.expected {
			tok := l.NextToken()
			if tok.Type != want {
				t.Errorf("%q token[%d]: expected %q, got %q (%q)", tt.input, i, want, tok.Type, tok.Literal)
				break
			}
		}
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"123", "123"},
		{"1_000_000", "1_000_000"},
		{"0b1010", "0b1010"},
		{"0o17", "0o17"},
		{"1e10", "1e10"},
		{"2.5E-3", "2.5E-3"},
		{".5", ".5"},
		{"10n", "10n"},
	}
	for _, tt := range tests {
		tok := NewLexer(tt.input).NextToken()
		if tok.Type != NUMBER || tok.Literal != tt.want {
			t.Errorf("NextToken(%q) = %s %q, want NUMBER %q", tt.input, tok.Type, tok.Literal, tt.want)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{`"a\nb"`, "a\nb", true},
		{`"\x41B\u{43}"`, "ABC", true},
		{`"😀"`, "\U0001F600", true},
		{`'\q'`, "q", true},
		{`"unterminated`, "", false},
		{"\"line\nbreak\"", "", false},
		{`"\u12"`, "", false},
	}
	for _, tt := range tests {
		tok := NewLexer(tt.input).NextToken()
		if !tt.ok {
			if tok.Type != ILLEGAL {
				t.Errorf("NextToken(%s) = %s, want ILLEGAL", tt.input, tok.Type)
			}
			continue
		}
		if tok.Type != STRING || tok.Literal != tt.want {
			t.Errorf("NextToken(%s) = %s %q, want STRING %q", tt.input, tok.Type, tok.Literal, tt.want)
		}
	}
}

func TestTemplates(t *testing.T) {
	l := NewLexer("`a ${b + `x${c}`} d`;")
	tok := l.NextToken()
	if tok.Type != TEMPLATE {
		t.Fatalf("expected TEMPLATE, got %s", tok.Type)
	}
	if tok.Literal != "a ${b + `x${c}`} d" {
		t.Fatalf("raw literal = %q", tok.Literal)
	}
	if next := l.NextToken(); next.Type != SEMICOLON {
		t.Fatalf("expected SEMICOLON after template, got %s", next.Type)
	}

	quasis, exprs, ok := SplitTemplate(tok.Literal)
	if !ok {
		t.Fatalf("SplitTemplate failed")
	}
	if len(quasis) != 2 || quasis[0] != "a " || quasis[1] != " d" {
		t.Errorf("quasis = %q", quasis)
	}
	if len(exprs) != 1 || exprs[0] != "b + `x${c}`" {
		t.Errorf("exprs = %q", exprs)
	}

	if tok := NewLexer("`open ${x").NextToken(); tok.Type != ILLEGAL {
		t.Errorf("expected ILLEGAL for unterminated template, got %s", tok.Type)
	}
}

func TestUnicodeIdentifiers(t *testing.T) {
	// "o" followed by a combining acute accent normalizes to the precomposed form.
	l := NewLexer("let sko\u0301re = 1")
	l.NextToken()
	tok := l.NextToken()
	if tok.Type != IDENT || tok.Literal != "sk\u00f3re" {
		t.Errorf("identifier = %s %q, want IDENT %q", tok.Type, tok.Literal, "sk\u00f3re")
	}
	if tok.Column != 5 {
		t.Errorf("column = %d, want 5", tok.Column)
	}
	if next := l.NextToken(); next.Column != 12 {
		t.Errorf("column after identifier = %d, want 12", next.Column)
	}
}

func TestNewlineBefore(t *testing.T) {
	l := NewLexer("a\nb /* x\n */ c d")
	want := []bool{false, true, true, false}
	for i, w := range want {
		tok := l.NextToken()
		if tok.NewlineBefore != w {
			t.Errorf("token %d (%q): NewlineBefore = %v, want %v", i, tok.Literal, tok.NewlineBefore, w)
		}
	}
}

func TestSaveRestoreState(t *testing.T) {
	l := NewLexer("(a, b) => a")
	l.NextToken()
	state := l.SaveState()
	first := l.NextToken()
	l.NextToken()
	l.RestoreState(state)
	again := l.NextToken()
	if first != again {
		t.Errorf("restored token %+v, want %+v", again, first)
	}
}
