package parser

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/tomaswrobel/scrap-native/pkg/errors"
)

func ident(name string) *Identifier { return &Identifier{Value: name} }

func num(raw string) *NumberLiteral { return &NumberLiteral{Raw: raw} }

func infix(op string, left, right Expression) *InfixExpression {
	return &InfixExpression{Operator: op, Left: left, Right: right}
}

func TestEmitPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		expr     Expression
		expected string
	}{
		{"sum under product", infix("*", infix("+", ident("a"), ident("b")), ident("c")), "(a + b) * c"},
		{"product under sum", infix("+", ident("a"), infix("*", ident("b"), ident("c"))), "a + b * c"},
		{"right nested same level", infix("-", ident("a"), infix("-", ident("b"), ident("c"))), "a - (b - c)"},
		{"left nested same level", infix("-", infix("-", ident("a"), ident("b")), ident("c")), "a - b - c"},
		{"exponent right assoc", infix("**", ident("a"), infix("**", ident("b"), ident("c"))), "a ** b ** c"},
		{"exponent left nested", infix("**", infix("**", ident("a"), ident("b")), ident("c")), "(a ** b) ** c"},
		{"unary under exponent", infix("**", &PrefixExpression{Operator: "-", Right: ident("a")}, num("2")), "(-a) ** 2"},
		{"coalesce with or", infix("??", infix("||", ident("a"), ident("b")), ident("c")), "(a || b) ?? c"},
		{"and with coalesce", infix("&&", ident("a"), infix("??", ident("b"), ident("c"))), "a && (b ?? c)"},
		{
			"await call",
			&AwaitExpression{Argument: &CallExpression{Function: ident("f"), Arguments: []Expression{ident("self"), num("1")}}},
			"await f(self, 1)",
		},
		{
			"await as operand",
			infix("+", &AwaitExpression{Argument: ident("a")}, num("1")),
			"await a + 1",
		},
		{
			"member of await",
			&MemberExpression{Object: &AwaitExpression{Argument: ident("p")}, Property: ident("x")},
			"(await p).x",
		},
		{
			"call of arrow",
			&CallExpression{Function: &ArrowFunctionLiteral{Body: num("1")}, Arguments: []Expression{}},
			"(() => 1)()",
		},
		{
			"assignment in binary",
			infix("+", &AssignmentExpression{Operator: "=", Left: ident("a"), Value: num("1")}, num("2")),
			"(a = 1) + 2",
		},
		{
			"sequence as argument",
			&CallExpression{Function: ident("f"), Arguments: []Expression{&SequenceExpression{Expressions: []Expression{ident("a"), ident("b")}}}},
			"f((a, b))",
		},
		{
			"ternary condition",
			&TernaryExpression{Condition: &TernaryExpression{Condition: ident("a"), Consequence: ident("b"), Alternative: ident("c")}, Consequence: ident("d"), Alternative: ident("e")},
			"(a ? b : c) ? d : e",
		},
		{
			"new with call in chain",
			&NewExpression{Constructor: &MemberExpression{Object: &CallExpression{Function: ident("f"), Arguments: []Expression{}}, Property: ident("C")}, Arguments: []Expression{}},
			"new (f().C)()",
		},
		{
			"non-null member object",
			&MemberExpression{Object: &NonNullExpression{Expression: ident("a")}, Property: ident("b")},
			"a!.b",
		},
		{
			"non-null of sum",
			&MemberExpression{Object: &NonNullExpression{Expression: infix("+", ident("a"), ident("b"))}, Property: ident("c")},
			"(a + b)!.c",
		},
		{
			"tagged template of await",
			&TaggedTemplateExpression{Tag: &AwaitExpression{Argument: ident("t")}, Quasi: &TemplateLiteral{Quasis: []string{"x"}}},
			"(await t)`x`",
		},
		{
			"integer member",
			&MemberExpression{Object: num("1"), Property: ident("toString")},
			"(1).toString",
		},
		{
			"decimal member",
			&MemberExpression{Object: num("1.5"), Property: ident("toFixed")},
			"1.5.toFixed",
		},
		{
			"double negation",
			&PrefixExpression{Operator: "-", Right: &PrefixExpression{Operator: "-", Right: ident("x")}},
			"- -x",
		},
		{
			"negative predecrement",
			&PrefixExpression{Operator: "-", Right: &UpdateExpression{Operator: "--", Prefix: true, Argument: ident("x")}},
			"- --x",
		},
		{
			"synthesized string",
			&StringLiteral{Value: "say \"hi\"\n"},
			`"say \"hi\"\n"`,
		},
		{
			"arrow returning object",
			&ArrowFunctionLiteral{Async: true, Parameters: []*Parameter{{Target: ident("x")}}, Body: &ObjectLiteral{Properties: []*ObjectProperty{{Key: ident("x"), Value: ident("x"), Shorthand: true}}}},
			"async (x) => ({ x })",
		},
	}

	for _, tt := range tests {
		actual, err := NewEmitter().EmitNode(tt.expr)
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
			continue
		}
		if actual != tt.expected {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, actual)
		}
	}
}

func TestEmitStatementStart(t *testing.T) {
	tests := []struct {
		stmt     Statement
		expected string
	}{
		{
			&ExpressionStatement{Expression: &AssignmentExpression{Operator: "=", Left: &ObjectLiteral{Properties: []*ObjectProperty{{Key: ident("a"), Value: ident("a"), Shorthand: true}}}, Value: ident("o")}},
			"({ a } = o);",
		},
		{
			&ExpressionStatement{Expression: &CallExpression{Function: &MemberExpression{Object: &FunctionLiteral{Body: &BlockStatement{}}, Property: ident("call")}, Arguments: []Expression{}}},
			"(function() {}.call());",
		},
		{
			&ExpressionStatement{Expression: &AwaitExpression{Argument: &CallExpression{Function: ident("g"), Arguments: []Expression{}}}},
			"await g();",
		},
	}

	for _, tt := range tests {
		actual, err := NewEmitter().EmitNode(tt.stmt)
		if err != nil {
			t.Errorf("unexpected error %v", err)
			continue
		}
		if actual != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, actual)
		}
	}
}

func TestEmitDanglingElse(t *testing.T) {
	inner := &IfStatement{Condition: ident("b"), Consequence: &ExpressionStatement{Expression: ident("x")}}
	outer := &IfStatement{Condition: ident("a"), Consequence: inner, Alternative: &ExpressionStatement{Expression: ident("y")}}

	actual, err := NewEmitter().EmitNode(outer)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	expected := "if (a) {\n  if (b) x;\n} else y;"
	if actual != expected {
		t.Errorf("expected %q, got %q", expected, actual)
	}
}

func TestEmitForInitWithIn(t *testing.T) {
	stmt := &ForStatement{
		Init: &VarDeclaration{Kind: "let", Declarators: []*VarDeclarator{{Target: ident("x"), Value: infix("in", ident("k"), ident("o"))}}},
		Body: &BlockStatement{},
	}
	actual, err := NewEmitter().EmitNode(stmt)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if expected := "for (let x = (k in o);;) {}"; actual != expected {
		t.Errorf("expected %q, got %q", expected, actual)
	}
}

func TestEmitIndent(t *testing.T) {
	program := &Program{Statements: []Statement{
		&WhileStatement{Condition: ident("a"), Body: &BlockStatement{Statements: []Statement{
			&ExpressionStatement{Expression: ident("b")},
		}}},
	}}
	e := NewEmitter()
	e.Indent = "\t"
	out, err := e.Emit(program)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if expected := "while (a) {\n\tb;\n}\n"; out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}
}

func TestEmitErrors(t *testing.T) {
	var typedNil *CallExpression
	tests := []struct {
		name    string
		node    Node
		message string
	}{
		{"nil expression", &ExpressionStatement{}, "missing expression"},
		{"typed nil", &ExpressionStatement{Expression: typedNil}, "missing expression"},
		{"nil statement", &Program{Statements: []Statement{nil}}, "missing statement"},
		{"nil argument", &CallExpression{Function: ident("f"), Arguments: []Expression{nil}}, "missing expression"},
		{"nil block", &TryStatement{}, "missing block"},
		{"nil type", &TypeAliasStatement{Name: ident("T")}, "missing type"},
		{"nil template", &TaggedTemplateExpression{Tag: ident("t")}, "missing template"},
	}

	for _, tt := range tests {
		_, err := NewEmitter().EmitNode(tt.node)
		if err == nil {
			t.Errorf("%s: expected an error", tt.name)
			continue
		}
		var emitErr *errors.EmitError
		if !stderrors.As(err, &emitErr) {
			t.Errorf("%s: expected *errors.EmitError, got %T", tt.name, err)
			continue
		}
		if !strings.Contains(emitErr.Message(), tt.message) {
			t.Errorf("%s: expected message containing %q, got %q", tt.name, tt.message, emitErr.Message())
		}
	}

	if _, err := NewEmitter().Emit(nil); err == nil {
		t.Error("expected an error for a nil program")
	}
}

func TestEmitterIsReusable(t *testing.T) {
	e := NewEmitter()
	if _, err := e.EmitNode(&ExpressionStatement{}); err == nil {
		t.Fatal("expected an error")
	}
	out, err := e.EmitNode(ident("ok"))
	if err != nil || out != "ok" {
		t.Errorf("expected clean second run, got %q, %v", out, err)
	}
}

func TestQuoteString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", `"plain"`},
		{`back\slash`, `"back\\slash"`},
		{"tab\there", `"tab\there"`},
		{"\x01", `"\x01"`},
		{"line\u2028sep", `"line\u2028sep"`},
		{"sk\u00f3re", "\"sk\u00f3re\""},
	}
	for _, tt := range tests {
		if actual := QuoteString(tt.input); actual != tt.expected {
			t.Errorf("QuoteString(%q): expected %s, got %s", tt.input, tt.expected, actual)
		}
	}
}
