package parser

import (
	"strings"
	"testing"

	"github.com/tomaswrobel/scrap-native/pkg/lexer"
)

func parseProgram(t *testing.T, input string) *Program {
	t.Helper()
	p := NewParser(lexer.NewLexer(input))
	program, errs := p.ParseProgram()
	if len(errs) != 0 {
		t.Errorf("parser had %d errors for %q:", len(errs), input)
		for _, err := range errs {
			t.Errorf("  %s", err.Error())
		}
		t.FailNow()
	}
	return program
}

func emitProgram(t *testing.T, program *Program) string {
	t.Helper()
	out, err := NewEmitter().Emit(program)
	if err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"let x = 1;", "let x = 1;\n"},
		{"const a: number = 1, b = 2", "const a: number = 1, b = 2;\n"},
		{"var v;", "var v;\n"},
		{"let n!: number;", "let n!: number;\n"},
		{"x = a + b * c", "x = a + b * c;\n"},
		{"(a + b) * c", "(a + b) * c;\n"},
		{"a - (b - c)", "a - (b - c);\n"},
		{"a - b - c", "a - b - c;\n"},
		{"a ** b ** c", "a ** b ** c;\n"},
		{"(a ** b) ** c", "(a ** b) ** c;\n"},
		{"(-a) ** 2", "(-a) ** 2;\n"},
		{"a ?? (b || c)", "a ?? (b || c);\n"},
		{"a = b = c", "a = b = c;\n"},
		{"a += 1, b -= 2", "a += 1, b -= 2;\n"},
		{"f(a, b)(c)", "f(a, b)(c);\n"},
		{"f(...args, 1,)", "f(...args, 1);\n"},
		{"new Foo(1).bar", "new Foo(1).bar;\n"},
		{"new Foo", "new Foo();\n"},
		{"new (f())()", "new (f())();\n"},
		{"x => x * 2", "(x) => x * 2;\n"},
		{"async x => x", "async (x) => x;\n"},
		{"async (a, b) => { return a; }", "async (a, b) => {\n  return a;\n};\n"},
		{"(a: number, b = 2): number => a", "(a: number, b = 2): number => a;\n"},
		{"() => ({ a: 1 })", "() => ({ a: 1 });\n"},
		{"({ a, b: 2, ...c, [k]: 3, 'q': 4, 5: 6 })", "({ a, b: 2, ...c, [k]: 3, 'q': 4, 5: 6 });\n"},
		{"o = { m(x) { return x; } }", "o = {\n  m(x) {\n    return x;\n  },\n};\n"},
		{"o = { async run() {} }", "o = {\n  async run() {},\n};\n"},
		{"function f(a: number, b?: string, ...rest: any[]): void {}", "function f(a: number, b?: string, ...rest: any[]): void {}\n"},
		{"async function g() { await h(); }", "async function g() {\n  await h();\n}\n"},
		{"let f = function named() {};", "let f = function named() {};\n"},
		{"(function () {})()", "(function() {}());\n"},
		{"a?.b?.[c]?.(d)", "a?.b?.[c]?.(d);\n"},
		{"this.#secret", "this.#secret;\n"},
		{"let s = `a${b}c${d + 1}`;", "let s = `a${b}c${d + 1}`;\n"},
		{"[1, , 2, ...xs]", "[1, , 2, ...xs];\n"},
		{"if (a) b(); else if (c) d(); else { e(); }", "if (a) b(); else if (c) d(); else {\n  e();\n}\n"},
		{"for (let i = 0; i < 10; i++) { f(i); }", "for (let i = 0; i < 10; i++) {\n  f(i);\n}\n"},
		{"for (;;) {}", "for (;;) {}\n"},
		{"for (const k in o) {}", "for (const k in o) {}\n"},
		{"for (x of xs) y();", "for (x of xs) y();\n"},
		{"for await (const x of xs) g(x);", "for await (const x of xs) g(x);\n"},
		{"while (a < b) a++;", "while (a < b) a++;\n"},
		{"do x++; while (x < 5)", "do x++; while (x < 5);\n"},
		{"try { a(); } catch { b(); } finally { c(); }", "try {\n  a();\n} catch {\n  b();\n} finally {\n  c();\n}\n"},
		{"try {} catch (e: unknown) {}", "try {} catch (e: unknown) {}\n"},
		{"switch (x) { case 1: a(); break; default: b(); }", "switch (x) {\n  case 1:\n    a();\n    break;\n  default:\n    b();\n}\n"},
		{"outer: while (true) { continue outer; }", "outer: while (true) {\n  continue outer;\n}\n"},
		{"throw new Error('x')", "throw new Error('x');\n"},
		{"let x = y as unknown as string;", "let x = y as unknown as string;\n"},
		{"let c = [1, 2] as const;", "let c = [1, 2] as const;\n"},
		{"let s = v satisfies T;", "let s = v satisfies T;\n"},
		{"a!.b = c", "a!.b = c;\n"},
		{"x = a!.b!.c", "x = a!.b!.c;\n"},
		{"tag`a${b}c`", "tag`a${b}c`;\n"},
		{"a.b`x`", "a.b`x`;\n"},
		{"f()`x`", "f()`x`;\n"},
		{"s = html`<p>${x}</p>`.trim()", "s = html`<p>${x}</p>`.trim();\n"},
		{"let { a, b: [c, d = 1], ...e } = o;", "let { a, b: [c, d = 1], ...e } = o;\n"},
		{"[a, b] = [b, a]", "[a, b] = [b, a];\n"},
		{"x = /ab+c/gi.test(s)", "x = /ab+c/gi.test(s);\n"},
		{"a = b ? c : d ? e : f", "a = b ? c : d ? e : f;\n"},
		{"typeof x === 'string'", "typeof x === 'string';\n"},
		{"-(-x)", "- -x;\n"},
		{"!(a && b)", "!(a && b);\n"},
		{"delete o.k, void 0", "delete o.k, void 0;\n"},
		{"'k' in o && o instanceof C", "'k' in o && o instanceof C;\n"},
		{"x = 0xff + 1_000 + 1e3 + 10n", "x = 0xff + 1_000 + 1e3 + 10n;\n"},
		{"(1).toString()", "(1).toString();\n"},
		{";", ";\n"},
		{"{ let a = 1; }", "{\n  let a = 1;\n}\n"},
		{
			"interface S extends Base { score: number; readonly name?: string; [k: string]: any; go(n: number): void }",
			"interface S extends Base {\n  score: number;\n  readonly name?: string;\n  [k: string]: any;\n  go(n: number): void;\n}\n",
		},
		{"interface Empty {}", "interface Empty {}\n"},
		{"type T = string | number[] | (() => void);", "type T = string | number[] | (() => void);\n"},
		{"type P = { x: number; y?: number };", "type P = { x: number; y?: number };\n"},
		{"type Q = Map<string, Array<number>>;", "type Q = Map<string, Array<number>>;\n"},
		{"type R = [string, number] & ns.Thing;", "type R = [string, number] & ns.Thing;\n"},
		{"type L = 'a' | 1 | -1 | true | null | undefined;", "type L = 'a' | 1 | -1 | true | null | undefined;\n"},
		{"let cb: (x: number) => void;", "let cb: (x: number) => void;\n"},
	}

	for _, tt := range tests {
		program := parseProgram(t, tt.input)
		actual := emitProgram(t, program)
		if actual != tt.expected {
			t.Errorf("input %q:\nexpected %q\n     got %q", tt.input, tt.expected, actual)
		}
	}
}

func TestAutomaticSemicolons(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"let a = 1\nlet b = 2", "let a = 1;\nlet b = 2;\n"},
		{"function f() {\n  return\n  1\n}", "function f() {\n  return;\n  1;\n}\n"},
		{"a\n++b", "a;\n++b;\n"},
		{"x = y\n(z)", "x = y(z);\n"},
		{"let t = a\n!b", "let t = a;\n!b;\n"},
	}

	for _, tt := range tests {
		actual := emitProgram(t, parseProgram(t, tt.input))
		if actual != tt.expected {
			t.Errorf("input %q:\nexpected %q\n     got %q", tt.input, tt.expected, actual)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"class A {}", "not supported"},
		{"enum E { A }", "not supported"},
		{"import x from 'y'", "not supported"},
		{"@dec function f() {}", "not supported"},
		{"let = 1", "expected binding name"},
		{"f(", "unexpected end of input"},
		{"function* g() {}", "generator"},
		{"function id<T>(x: T) {}", "generic"},
		{"o = { get a() { return 1; } }", "accessors"},
		{"a + ", "unexpected end of input"},
		{"1 = 2", "invalid assignment target"},
		{"x = `${}`", "template substitution"},
		{"x = /a(/", "invalid regular expression"},
		{"x = /a(/im", "invalid regular expression"},
		{"x = tag`${}`", "template substitution"},
		{"try {}", "missing catch or finally"},
		{"throw\nerr", "line break"},
		{"switch (x) { default: a(); default: b(); }", "more than one default"},
		{"type A = B[number];", "indexed access"},
		{"let x = 1 let y = 2", "expected ';'"},
		{"if (a { }", "expected ')'"},
		{"{ a();", "expected '}'"},
	}

	for _, tt := range tests {
		p := NewParser(lexer.NewLexer(tt.input))
		_, errs := p.ParseProgram()
		if len(errs) == 0 {
			t.Errorf("input %q: expected errors, got none", tt.input)
			continue
		}
		found := false
		for _, err := range errs {
			if strings.Contains(err.Message(), tt.message) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("input %q: expected an error containing %q, got %v", tt.input, tt.message, errs)
		}
	}
}

func TestErrorPositions(t *testing.T) {
	p := NewParser(lexer.NewLexer("let a = 1;\nlet = 2;"))
	_, errs := p.ParseProgram()
	if len(errs) == 0 {
		t.Fatal("expected an error")
	}
	pos := errs[0].Pos()
	if pos.Line != 2 || pos.Column != 5 {
		t.Errorf("expected error at 2:5, got %d:%d", pos.Line, pos.Column)
	}
	if errs[0].Kind() != "Syntax" {
		t.Errorf("expected Syntax kind, got %s", errs[0].Kind())
	}
}

func TestRecoveryKeepsLaterStatements(t *testing.T) {
	p := NewParser(lexer.NewLexer("let = 1\nfoo();"))
	program, errs := p.ParseProgram()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement after recovery, got %d", len(program.Statements))
	}
	if _, ok := program.Statements[0].(*ExpressionStatement); !ok {
		t.Errorf("expected ExpressionStatement, got %T", program.Statements[0])
	}
}

func TestParseInterfaceShape(t *testing.T) {
	program := parseProgram(t, `interface Sprite { x: number; "full name": string; tags; [k]: any }`)
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	decl, ok := program.Statements[0].(*InterfaceDeclaration)
	if !ok {
		t.Fatalf("expected InterfaceDeclaration, got %T", program.Statements[0])
	}
	if decl.Name.Value != "Sprite" {
		t.Errorf("expected name Sprite, got %s", decl.Name.Value)
	}
	if len(decl.Members) != 4 {
		t.Fatalf("expected 4 members, got %d", len(decl.Members))
	}

	first := decl.Members[0].(*PropertySignature)
	if key, ok := first.Key.(*Identifier); !ok || key.Value != "x" {
		t.Errorf("expected identifier key x, got %T %s", first.Key, first.Key)
	}
	if kw, ok := first.TypeAnnotation.(*KeywordType); !ok || kw.Name != "number" {
		t.Errorf("expected number keyword type, got %v", first.TypeAnnotation)
	}

	second := decl.Members[1].(*PropertySignature)
	if key, ok := second.Key.(*StringLiteral); !ok || key.Value != "full name" {
		t.Errorf("expected string key, got %T", second.Key)
	}

	third := decl.Members[2].(*PropertySignature)
	if third.TypeAnnotation != nil {
		t.Errorf("expected no annotation, got %v", third.TypeAnnotation)
	}

	fourth := decl.Members[3].(*PropertySignature)
	if !fourth.Computed {
		t.Errorf("expected computed key")
	}
}

func TestParseUnionFlattening(t *testing.T) {
	program := parseProgram(t, "let v: number | string | boolean;")
	decl := program.Statements[0].(*VarDeclaration)
	union, ok := decl.Declarators[0].TypeAnnotation.(*UnionType)
	if !ok {
		t.Fatalf("expected UnionType, got %T", decl.Declarators[0].TypeAnnotation)
	}
	if len(union.Types) != 3 {
		t.Errorf("expected 3 union members, got %d", len(union.Types))
	}
}

func TestParseContextualKeywordsAsIdentifiers(t *testing.T) {
	tests := []string{
		"let type = 1;",
		"interface = 2;",
		"async = 3;",
		"of(1);",
		"type\nFoo = 1",
	}
	for _, input := range tests {
		p := NewParser(lexer.NewLexer(input))
		if _, errs := p.ParseProgram(); len(errs) != 0 {
			t.Errorf("input %q: unexpected errors %v", input, errs)
		}
	}
}

func TestStripTypes(t *testing.T) {
	input := `interface S { a: number }
type T = number;
let x: number = (y as any)!;
function f(a?: string, b: T = 1): void {}
const g = (n: number): string => String(n);
try {} catch (e: unknown) {}
if (ok) type U = string;`
	expected := `let x = y;
function f(a, b = 1) {}
const g = (n) => String(n);
try {} catch (e) {}
if (ok) ;
`
	program := parseProgram(t, input)
	StripTypes(program)
	if actual := emitProgram(t, program); actual != expected {
		t.Errorf("expected:\n%s\ngot:\n%s", expected, actual)
	}
}

func TestCloneExpression(t *testing.T) {
	program := parseProgram(t, "a.b[c].d;")
	original := program.Statements[0].(*ExpressionStatement).Expression

	clone := CloneExpression(original)
	if clone.String() != original.String() {
		t.Fatalf("clone renders %q, original %q", clone.String(), original.String())
	}

	m := clone.(*MemberExpression)
	if m == original.(*MemberExpression) {
		t.Fatal("clone returned the same node")
	}
	m.Property.(*Identifier).Value = "changed"
	if original.String() != "a.b[c].d" {
		t.Errorf("mutating the clone changed the original: %s", original.String())
	}
	if CloneExpression(nil) != nil {
		t.Error("expected nil clone of nil")
	}
}
