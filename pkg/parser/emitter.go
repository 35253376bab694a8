package parser

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/tomaswrobel/scrap-native/pkg/errors"
	"github.com/tomaswrobel/scrap-native/pkg/lexer"
)

// Emitter prints a syntax tree back to TypeScript source. Type syntax is
// printed when present; run StripTypes first to get plain JavaScript.
type Emitter struct {
	// Indent is written once per nesting level.
	Indent string

	indentLevel int
	buffer      bytes.Buffer
	noIn        bool
	err         error
}

// NewEmitter creates an emitter that indents with two spaces.
func NewEmitter() *Emitter {
	return &Emitter{Indent: "  "}
}

// Emit prints a whole program, one statement per line.
func (e *Emitter) Emit(program *Program) (string, error) {
	e.reset()
	if program == nil {
		e.fail(nil, "cannot emit a nil program")
		return "", e.err
	}
	e.emitProgram(program)
	if e.err != nil {
		return "", e.err
	}
	return e.buffer.String(), nil
}

// EmitNode prints any single node. Statements are printed without the
// trailing newline.
func (e *Emitter) EmitNode(n Node) (string, error) {
	e.reset()
	switch n := n.(type) {
	case *Program:
		return e.Emit(n)
	case Statement:
		e.emitStatementInline(n)
	case Expression:
		e.emitExpression(n, LOWEST)
	case Pattern:
		e.emitPattern(n)
	case TypeNode:
		e.emitType(n)
	case InterfaceMember:
		e.emitMember(n)
	case *VarDeclarator:
		e.emitDeclarator(n)
	case *Parameter:
		e.emitParameter(n)
	case *ObjectProperty:
		e.emitObjectProperty(n)
	case *PatternProperty:
		e.emitPatternProperty(n)
	case *CatchClause:
		e.emitCatchClause(n)
	case *SwitchCase:
		e.emitSwitchCase(n)
	case *QualifiedName:
		e.emitEntityName(n)
	default:
		e.fail(n, fmt.Sprintf("cannot emit node of type %T", n))
	}
	if e.err != nil {
		return "", e.err
	}
	return e.buffer.String(), nil
}

// Helper methods

func (e *Emitter) reset() {
	e.buffer.Reset()
	e.indentLevel = 0
	e.noIn = false
	e.err = nil
}

func (e *Emitter) indent() {
	e.indentLevel++
}

func (e *Emitter) dedent() {
	if e.indentLevel > 0 {
		e.indentLevel--
	}
}

func (e *Emitter) writeIndent() {
	for i := 0; i < e.indentLevel; i++ {
		e.buffer.WriteString(e.Indent)
	}
}

func (e *Emitter) write(s string) {
	e.buffer.WriteString(s)
}

// fail records the first emit error; printing continues so that the
// caller still gets a single, positioned diagnostic.
func (e *Emitter) fail(n Node, msg string) {
	if e.err != nil {
		return
	}
	err := &errors.EmitError{Msg: msg}
	if tok, ok := nodeToken(n); ok {
		err.Position = errors.Position{Line: tok.Line, Column: tok.Column, StartPos: tok.StartPos, EndPos: tok.EndPos}
	}
	e.err = err
}

// missing reports whether n is nil, including typed nil pointers, and
// records an error naming what was expected.
func (e *Emitter) missing(n Node, what string) bool {
	if isNil(n) {
		e.fail(nil, "missing "+what)
		return true
	}
	return false
}

func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func nodeToken(n Node) (lexer.Token, bool) {
	if isNil(n) {
		return lexer.Token{}, false
	}
	v := reflect.ValueOf(n).Elem()
	if v.Kind() != reflect.Struct {
		return lexer.Token{}, false
	}
	f := v.FieldByName("Token")
	if !f.IsValid() {
		return lexer.Token{}, false
	}
	tok, ok := f.Interface().(lexer.Token)
	return tok, ok && tok.Line > 0
}

// --- Statements ---

func (e *Emitter) emitProgram(program *Program) {
	for _, stmt := range program.Statements {
		e.emitStatement(stmt)
	}
}

// emitStatement writes one indented statement followed by a newline.
func (e *Emitter) emitStatement(stmt Statement) {
	e.writeIndent()
	e.emitStatementInline(stmt)
	e.write("\n")
}

// emitStatementInline writes a statement at the current position. Nested
// lines are indented relative to the current level.
func (e *Emitter) emitStatementInline(stmt Statement) {
	if e.missing(stmt, "statement") {
		return
	}
	switch s := stmt.(type) {
	case *BlockStatement:
		e.emitBlock(s)
	case *ExpressionStatement:
		e.emitExpressionStatement(s)
	case *VarDeclaration:
		e.emitVarDeclaration(s)
		e.write(";")
	case *FunctionDeclaration:
		if !e.missing(s.Function, "function") {
			e.emitFunction(s.Function)
		}
	case *InterfaceDeclaration:
		e.emitInterface(s)
	case *TypeAliasStatement:
		e.write("type ")
		e.emitIdentifier(s.Name)
		e.write(" = ")
		e.emitType(s.Type)
		e.write(";")
	case *IfStatement:
		e.emitIf(s)
	case *ForStatement:
		e.emitFor(s)
	case *ForInStatement:
		e.write("for (")
		e.emitForLeft(s.Left)
		e.write(" in ")
		e.emitExpression(s.Right, LOWEST)
		e.write(") ")
		e.emitStatementInline(s.Body)
	case *ForOfStatement:
		e.write("for ")
		if s.Await {
			e.write("await ")
		}
		e.write("(")
		e.emitForLeft(s.Left)
		e.write(" of ")
		e.emitExpression(s.Right, ASSIGNMENT)
		e.write(") ")
		e.emitStatementInline(s.Body)
	case *WhileStatement:
		e.write("while (")
		e.emitExpression(s.Condition, LOWEST)
		e.write(") ")
		e.emitStatementInline(s.Body)
	case *DoWhileStatement:
		e.write("do ")
		e.emitStatementInline(s.Body)
		e.write(" while (")
		e.emitExpression(s.Condition, LOWEST)
		e.write(");")
	case *ReturnStatement:
		e.write("return")
		if s.ReturnValue != nil {
			e.write(" ")
			e.emitExpression(s.ReturnValue, LOWEST)
		}
		e.write(";")
	case *BreakStatement:
		e.write("break")
		if s.Label != nil {
			e.write(" " + s.Label.Value)
		}
		e.write(";")
	case *ContinueStatement:
		e.write("continue")
		if s.Label != nil {
			e.write(" " + s.Label.Value)
		}
		e.write(";")
	case *ThrowStatement:
		e.write("throw ")
		e.emitExpression(s.Value, LOWEST)
		e.write(";")
	case *TryStatement:
		e.emitTry(s)
	case *SwitchStatement:
		e.emitSwitch(s)
	case *LabeledStatement:
		e.emitIdentifier(s.Label)
		e.write(": ")
		e.emitStatementInline(s.Body)
	case *EmptyStatement:
		e.write(";")
	default:
		e.fail(stmt, fmt.Sprintf("cannot emit statement of type %T", stmt))
	}
}

func (e *Emitter) emitBlock(block *BlockStatement) {
	if e.missing(block, "block") {
		return
	}
	if len(block.Statements) == 0 {
		e.write("{}")
		return
	}
	e.write("{\n")
	e.indent()
	for _, s := range block.Statements {
		e.emitStatement(s)
	}
	e.dedent()
	e.writeIndent()
	e.write("}")
}

func (e *Emitter) emitExpressionStatement(stmt *ExpressionStatement) {
	if e.missing(stmt.Expression, "expression") {
		return
	}
	// `{` and `function` at the start of a statement would be read as a
	// block or a declaration.
	switch leftmost(stmt.Expression).(type) {
	case *ObjectLiteral, *FunctionLiteral:
		e.write("(")
		e.emitExpression(stmt.Expression, LOWEST)
		e.write(")")
	default:
		e.emitExpression(stmt.Expression, LOWEST)
	}
	e.write(";")
}

// emitVarDeclaration writes the declaration without its semicolon.
func (e *Emitter) emitVarDeclaration(decl *VarDeclaration) {
	e.write(decl.Kind)
	e.write(" ")
	for i, d := range decl.Declarators {
		if i > 0 {
			e.write(", ")
		}
		e.emitDeclarator(d)
	}
}

func (e *Emitter) emitDeclarator(d *VarDeclarator) {
	if e.missing(d, "declarator") {
		return
	}
	e.emitPattern(d.Target)
	if d.Definite {
		e.write("!")
	}
	if d.TypeAnnotation != nil {
		e.write(": ")
		e.emitType(d.TypeAnnotation)
	}
	if d.Value != nil {
		e.write(" = ")
		e.emitExpression(d.Value, ASSIGNMENT)
	}
}

func (e *Emitter) emitIf(s *IfStatement) {
	e.write("if (")
	e.emitExpression(s.Condition, LOWEST)
	e.write(") ")
	if s.Alternative != nil && danglingIf(s.Consequence) {
		e.emitBlock(&BlockStatement{Statements: []Statement{s.Consequence}})
	} else {
		e.emitStatementInline(s.Consequence)
	}
	if s.Alternative != nil {
		e.write(" else ")
		e.emitStatementInline(s.Alternative)
	}
}

// danglingIf reports whether stmt ends in an if without an else, which
// would capture a following else.
func danglingIf(stmt Statement) bool {
	switch s := stmt.(type) {
	case *IfStatement:
		return s.Alternative == nil || danglingIf(s.Alternative)
	case *ForStatement:
		return danglingIf(s.Body)
	case *ForInStatement:
		return danglingIf(s.Body)
	case *ForOfStatement:
		return danglingIf(s.Body)
	case *WhileStatement:
		return danglingIf(s.Body)
	case *LabeledStatement:
		return danglingIf(s.Body)
	}
	return false
}

func (e *Emitter) emitFor(s *ForStatement) {
	e.write("for (")
	if s.Init != nil {
		e.noIn = true
		e.emitForLeft(s.Init)
		e.noIn = false
	}
	e.write(";")
	if s.Condition != nil {
		e.write(" ")
		e.emitExpression(s.Condition, LOWEST)
	}
	e.write(";")
	if s.Update != nil {
		e.write(" ")
		e.emitExpression(s.Update, LOWEST)
	}
	e.write(") ")
	e.emitStatementInline(s.Body)
}

func (e *Emitter) emitForLeft(n Node) {
	switch l := n.(type) {
	case *VarDeclaration:
		e.emitVarDeclaration(l)
	case Expression:
		if _, ok := leftmost(l).(*ObjectLiteral); ok {
			e.write("(")
			e.emitExpression(l, LOWEST)
			e.write(")")
			return
		}
		e.emitExpression(l, LOWEST)
	default:
		e.fail(n, fmt.Sprintf("cannot emit loop head of type %T", n))
	}
}

func (e *Emitter) emitTry(s *TryStatement) {
	e.write("try ")
	e.emitBlock(s.Block)
	if s.Handler != nil {
		e.write(" ")
		e.emitCatchClause(s.Handler)
	}
	if s.Finalizer != nil {
		e.write(" finally ")
		e.emitBlock(s.Finalizer)
	}
}

func (e *Emitter) emitCatchClause(c *CatchClause) {
	e.write("catch ")
	if c.Param != nil {
		e.write("(")
		e.emitPattern(c.Param)
		if c.ParamType != nil {
			e.write(": ")
			e.emitType(c.ParamType)
		}
		e.write(") ")
	}
	e.emitBlock(c.Body)
}

func (e *Emitter) emitSwitch(s *SwitchStatement) {
	e.write("switch (")
	e.emitExpression(s.Discriminant, LOWEST)
	e.write(") {\n")
	e.indent()
	for _, c := range s.Cases {
		e.writeIndent()
		e.emitSwitchCase(c)
		e.write("\n")
	}
	e.dedent()
	e.writeIndent()
	e.write("}")
}

func (e *Emitter) emitSwitchCase(c *SwitchCase) {
	if c.Test != nil {
		e.write("case ")
		e.emitExpression(c.Test, LOWEST)
		e.write(":")
	} else {
		e.write("default:")
	}
	e.indent()
	for _, s := range c.Consequent {
		e.write("\n")
		e.writeIndent()
		e.emitStatementInline(s)
	}
	e.dedent()
}

func (e *Emitter) emitInterface(s *InterfaceDeclaration) {
	e.write("interface ")
	e.emitIdentifier(s.Name)
	for i, base := range s.Extends {
		if i == 0 {
			e.write(" extends ")
		} else {
			e.write(", ")
		}
		e.emitType(base)
	}
	if len(s.Members) == 0 {
		e.write(" {}")
		return
	}
	e.write(" {\n")
	e.indent()
	for _, m := range s.Members {
		e.writeIndent()
		e.emitMember(m)
		e.write(";\n")
	}
	e.dedent()
	e.writeIndent()
	e.write("}")
}

// --- Functions ---

func (e *Emitter) emitFunction(fn *FunctionLiteral) {
	if fn.Async {
		e.write("async ")
	}
	e.write("function")
	if fn.Name != nil {
		e.write(" ")
		e.emitIdentifier(fn.Name)
	}
	e.emitSignature(fn.Parameters, fn.ReturnType)
	e.write(" ")
	e.emitBlock(fn.Body)
}

func (e *Emitter) emitSignature(params []*Parameter, returnType TypeNode) {
	e.emitParameters(params)
	if returnType != nil {
		e.write(": ")
		e.emitType(returnType)
	}
}

func (e *Emitter) emitParameters(params []*Parameter) {
	saved := e.noIn
	e.noIn = false
	e.write("(")
	for i, p := range params {
		if i > 0 {
			e.write(", ")
		}
		e.emitParameter(p)
	}
	e.write(")")
	e.noIn = saved
}

func (e *Emitter) emitParameter(p *Parameter) {
	if e.missing(p, "parameter") {
		return
	}
	if p.Rest {
		e.write("...")
	}
	e.emitPattern(p.Target)
	if p.Optional {
		e.write("?")
	}
	if p.TypeAnnotation != nil {
		e.write(": ")
		e.emitType(p.TypeAnnotation)
	}
	if p.Default != nil {
		e.write(" = ")
		e.emitExpression(p.Default, ASSIGNMENT)
	}
}

func (e *Emitter) emitArrow(fn *ArrowFunctionLiteral) {
	if fn.Async {
		e.write("async ")
	}
	e.emitSignature(fn.Parameters, fn.ReturnType)
	e.write(" => ")
	switch body := fn.Body.(type) {
	case *BlockStatement:
		e.emitBlock(body)
	case Expression:
		if _, ok := leftmost(body).(*ObjectLiteral); ok {
			e.write("(")
			e.emitExpression(body, LOWEST)
			e.write(")")
			return
		}
		e.emitExpression(body, ASSIGNMENT)
	default:
		e.fail(fn, "arrow function has no body")
	}
}

// --- Expressions ---

var binaryPrecedences = map[string]int{
	"??":         COALESCE,
	"||":         LOGICAL_OR,
	"&&":         LOGICAL_AND,
	"|":          BITWISE_OR,
	"^":          BITWISE_XOR,
	"&":          BITWISE_AND,
	"==":         EQUALS,
	"!=":         EQUALS,
	"===":        EQUALS,
	"!==":        EQUALS,
	"<":          LESSGREATER,
	">":          LESSGREATER,
	"<=":         LESSGREATER,
	">=":         LESSGREATER,
	"instanceof": LESSGREATER,
	"in":         LESSGREATER,
	"<<":         SHIFT,
	">>":         SHIFT,
	">>>":        SHIFT,
	"+":          SUM,
	"-":          SUM,
	"*":          PRODUCT,
	"/":          PRODUCT,
	"%":          PRODUCT,
	"**":         POWER,
}

// precedenceOf returns the binding strength of a printed expression.
func precedenceOf(expr Expression) int {
	switch x := expr.(type) {
	case *SequenceExpression:
		return COMMA
	case *AssignmentExpression, *ArrowFunctionLiteral:
		return ASSIGNMENT
	case *TernaryExpression:
		return TERNARY
	case *InfixExpression:
		if prec, ok := binaryPrecedences[x.Operator]; ok {
			return prec
		}
		return LOWEST
	case *AsExpression:
		return LESSGREATER
	case *PrefixExpression, *AwaitExpression:
		return PREFIX
	case *UpdateExpression:
		if x.Prefix {
			return PREFIX
		}
		return POSTFIX
	case *CallExpression, *NewExpression:
		return CALL
	case *MemberExpression, *NonNullExpression, *TaggedTemplateExpression:
		return MEMBER
	}
	return MEMBER + 1
}

// leftmost returns the expression printed first when expr is printed.
func leftmost(expr Expression) Expression {
	for {
		switch x := expr.(type) {
		case *CallExpression:
			expr = x.Function
		case *MemberExpression:
			expr = x.Object
		case *TaggedTemplateExpression:
			expr = x.Tag
		case *InfixExpression:
			expr = x.Left
		case *AssignmentExpression:
			expr = x.Left
		case *TernaryExpression:
			expr = x.Condition
		case *SequenceExpression:
			if len(x.Expressions) == 0 {
				return expr
			}
			expr = x.Expressions[0]
		case *UpdateExpression:
			if x.Prefix {
				return expr
			}
			expr = x.Argument
		case *NonNullExpression:
			expr = x.Expression
		case *AsExpression:
			expr = x.Expression
		default:
			return expr
		}
		if isNil(expr) {
			return nil
		}
	}
}

// emitExpression prints expr, adding parentheses when it binds more loosely
// than minPrec.
func (e *Emitter) emitExpression(expr Expression, minPrec int) {
	if e.missing(expr, "expression") {
		return
	}
	parens := precedenceOf(expr) < minPrec
	if in, ok := expr.(*InfixExpression); ok && e.noIn && in.Operator == "in" {
		parens = true
	}
	if parens {
		saved := e.noIn
		e.noIn = false
		e.write("(")
		e.emitBare(expr)
		e.write(")")
		e.noIn = saved
		return
	}
	e.emitBare(expr)
}

func (e *Emitter) emitBare(expr Expression) {
	switch x := expr.(type) {
	case *Identifier:
		e.emitIdentifier(x)
	case *PrivateName:
		e.write("#" + x.Name)
	case *NumberLiteral:
		e.write(x.Raw)
	case *StringLiteral:
		e.emitString(x)
	case *BooleanLiteral:
		if x.Value {
			e.write("true")
		} else {
			e.write("false")
		}
	case *NullLiteral:
		e.write("null")
	case *RegexLiteral:
		e.write("/" + x.Pattern + "/" + x.Flags)
	case *TemplateLiteral:
		e.emitTemplate(x)
	case *ThisExpression:
		e.write("this")
	case *ArrayLiteral:
		e.emitArrayLiteral(x)
	case *ObjectLiteral:
		e.emitObjectLiteral(x)
	case *SpreadElement:
		e.write("...")
		e.emitExpression(x.Argument, ASSIGNMENT)
	case *FunctionLiteral:
		e.emitFunction(x)
	case *ArrowFunctionLiteral:
		e.emitArrow(x)
	case *CallExpression:
		e.emitCall(x)
	case *TaggedTemplateExpression:
		e.emitExpression(x.Tag, CALL)
		if x.Quasi == nil {
			e.fail(x, "missing template")
			return
		}
		e.emitTemplate(x.Quasi)
	case *NewExpression:
		e.emitNew(x)
	case *MemberExpression:
		e.emitMember(x)
	case *AssignmentExpression:
		e.emitAssignmentTarget(x.Left)
		e.write(" " + x.Operator + " ")
		e.emitExpression(x.Value, ASSIGNMENT)
	case *InfixExpression:
		e.emitInfix(x)
	case *PrefixExpression:
		e.emitPrefix(x)
	case *UpdateExpression:
		if x.Prefix {
			e.write(x.Operator)
			e.emitExpression(x.Argument, PREFIX)
		} else {
			e.emitExpression(x.Argument, POSTFIX)
			e.write(x.Operator)
		}
	case *TernaryExpression:
		e.emitExpression(x.Condition, TERNARY+1)
		e.write(" ? ")
		e.emitExpression(x.Consequence, ASSIGNMENT)
		e.write(" : ")
		e.emitExpression(x.Alternative, ASSIGNMENT)
	case *SequenceExpression:
		for i, el := range x.Expressions {
			if i > 0 {
				e.write(", ")
			}
			e.emitExpression(el, ASSIGNMENT)
		}
	case *AwaitExpression:
		e.write("await ")
		e.emitExpression(x.Argument, PREFIX)
	case *AsExpression:
		e.emitExpression(x.Expression, LESSGREATER)
		if x.Satisfies {
			e.write(" satisfies ")
		} else {
			e.write(" as ")
		}
		e.emitType(x.Type)
	case *NonNullExpression:
		e.emitExpression(x.Expression, POSTFIX)
		e.write("!")
	default:
		e.fail(expr, fmt.Sprintf("cannot emit expression of type %T", expr))
	}
}

func (e *Emitter) emitIdentifier(id *Identifier) {
	if e.missing(id, "identifier") {
		return
	}
	e.write(id.Value)
}

func (e *Emitter) emitString(s *StringLiteral) {
	if s.Raw != "" {
		e.write(s.Raw)
		return
	}
	e.write(QuoteString(s.Value))
}

// QuoteString renders s as a double-quoted JavaScript string literal.
func QuoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\v':
			b.WriteString(`\v`)
		case 0x2028, 0x2029:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r == utf8.RuneError && size == 1 {
				b.WriteString(`\ufffd`)
			} else if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\x%02x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

func (e *Emitter) emitTemplate(t *TemplateLiteral) {
	saved := e.noIn
	e.noIn = false
	e.write("`")
	for i, q := range t.Quasis {
		e.write(q)
		if i < len(t.Expressions) {
			e.write("${")
			e.emitExpression(t.Expressions[i], LOWEST)
			e.write("}")
		}
	}
	e.write("`")
	e.noIn = saved
}

func (e *Emitter) emitArrayLiteral(a *ArrayLiteral) {
	saved := e.noIn
	e.noIn = false
	e.write("[")
	for i, el := range a.Elements {
		if i > 0 {
			e.write(", ")
		}
		if el == nil {
			// A trailing hole needs its own comma.
			if i == len(a.Elements)-1 {
				e.write(",")
			}
			continue
		}
		e.emitExpression(el, ASSIGNMENT)
	}
	e.write("]")
	e.noIn = saved
}

func (e *Emitter) emitObjectLiteral(o *ObjectLiteral) {
	if len(o.Properties) == 0 {
		e.write("{}")
		return
	}
	saved := e.noIn
	e.noIn = false
	defer func() { e.noIn = saved }()

	if !multiline(o) {
		e.write("{ ")
		for i, p := range o.Properties {
			if i > 0 {
				e.write(", ")
			}
			e.emitObjectProperty(p)
		}
		e.write(" }")
		return
	}

	e.write("{\n")
	e.indent()
	for _, p := range o.Properties {
		e.writeIndent()
		e.emitObjectProperty(p)
		e.write(",\n")
	}
	e.dedent()
	e.writeIndent()
	e.write("}")
}

// multiline reports whether an object literal holds a block-bodied function
// and so reads better one property per line.
func multiline(o *ObjectLiteral) bool {
	for _, p := range o.Properties {
		if p == nil {
			continue
		}
		switch v := p.Value.(type) {
		case *FunctionLiteral:
			return true
		case *ArrowFunctionLiteral:
			if _, ok := v.Body.(*BlockStatement); ok {
				return true
			}
		}
	}
	return false
}

func (e *Emitter) emitObjectProperty(p *ObjectProperty) {
	if e.missing(p, "property") {
		return
	}
	if p.Key == nil {
		e.emitExpression(p.Value, ASSIGNMENT)
		return
	}
	if p.Shorthand {
		e.emitExpression(p.Value, ASSIGNMENT)
		return
	}
	if p.Method {
		fn, ok := p.Value.(*FunctionLiteral)
		if !ok {
			e.fail(p, "method property without a function value")
			return
		}
		if fn.Async {
			e.write("async ")
		}
		e.emitPropertyKey(p.Key, p.Computed)
		e.emitSignature(fn.Parameters, fn.ReturnType)
		e.write(" ")
		e.emitBlock(fn.Body)
		return
	}
	e.emitPropertyKey(p.Key, p.Computed)
	e.write(": ")
	e.emitExpression(p.Value, ASSIGNMENT)
}

func (e *Emitter) emitPropertyKey(key Expression, computed bool) {
	if computed {
		e.write("[")
		e.emitExpression(key, ASSIGNMENT)
		e.write("]")
		return
	}
	e.emitExpression(key, MEMBER+1)
}

func (e *Emitter) emitArguments(args []Expression) {
	saved := e.noIn
	e.noIn = false
	e.write("(")
	for i, arg := range args {
		if i > 0 {
			e.write(", ")
		}
		e.emitExpression(arg, ASSIGNMENT)
	}
	e.write(")")
	e.noIn = saved
}

func (e *Emitter) emitCall(c *CallExpression) {
	e.emitExpression(c.Function, CALL)
	if c.Optional {
		e.write("?.")
	}
	e.emitArguments(c.Arguments)
}

func (e *Emitter) emitNew(n *NewExpression) {
	e.write("new ")
	if containsCall(n.Constructor) {
		e.write("(")
		e.emitExpression(n.Constructor, LOWEST)
		e.write(")")
	} else {
		e.emitExpression(n.Constructor, MEMBER)
	}
	e.emitArguments(n.Arguments)
}

// containsCall reports whether a call appears along the member chain of
// expr, which would otherwise take the arguments of a surrounding new.
func containsCall(expr Expression) bool {
	for {
		switch x := expr.(type) {
		case *CallExpression:
			return true
		case *MemberExpression:
			expr = x.Object
		default:
			return false
		}
	}
}

func (e *Emitter) emitMember(n Node) {
	switch m := n.(type) {
	case *MemberExpression:
		e.emitMemberExpression(m)
	case *PropertySignature:
		if m.Readonly {
			e.write("readonly ")
		}
		e.emitPropertyKey(m.Key, m.Computed)
		if m.Optional {
			e.write("?")
		}
		if m.TypeAnnotation != nil {
			e.write(": ")
			e.emitType(m.TypeAnnotation)
		}
	case *MethodSignature:
		e.emitPropertyKey(m.Key, m.Computed)
		if m.Optional {
			e.write("?")
		}
		e.emitSignature(m.Parameters, m.ReturnType)
	case *IndexSignature:
		if m.Readonly {
			e.write("readonly ")
		}
		e.write("[")
		e.emitIdentifier(m.Param)
		e.write(": ")
		e.emitType(m.KeyType)
		e.write("]: ")
		e.emitType(m.ValueType)
	default:
		if e.missing(n, "member") {
			return
		}
		e.fail(n, fmt.Sprintf("cannot emit member of type %T", n))
	}
}

func (e *Emitter) emitMemberExpression(m *MemberExpression) {
	if num, ok := m.Object.(*NumberLiteral); ok && !m.Computed && isPlainInteger(num.Raw) {
		e.write("(" + num.Raw + ")")
	} else {
		e.emitExpression(m.Object, CALL)
	}

	if m.Computed {
		if m.Optional {
			e.write("?.")
		}
		saved := e.noIn
		e.noIn = false
		e.write("[")
		e.emitExpression(m.Property, LOWEST)
		e.write("]")
		e.noIn = saved
		return
	}
	if m.Optional {
		e.write("?.")
	} else {
		e.write(".")
	}
	e.emitExpression(m.Property, MEMBER+1)
}

// isPlainInteger reports whether `raw.` would be read as a decimal point.
func isPlainInteger(raw string) bool {
	if raw == "" || strings.HasSuffix(raw, "n") {
		return false
	}
	if len(raw) > 1 && raw[0] == '0' && strings.ContainsAny(raw[1:2], "xXoObB") {
		return false
	}
	return !strings.ContainsAny(raw, ".eE")
}

func (e *Emitter) emitAssignmentTarget(target Expression) {
	switch target.(type) {
	case *ObjectLiteral, *ArrayLiteral:
		e.emitExpression(target, LOWEST)
	default:
		e.emitExpression(target, POSTFIX)
	}
}

func (e *Emitter) emitInfix(x *InfixExpression) {
	prec := binaryPrecedences[x.Operator]
	leftMin, rightMin := prec, prec+1
	if x.Operator == "**" {
		leftMin, rightMin = POSTFIX, prec
	}

	e.emitOperand(x.Left, leftMin, x.Operator)
	e.write(" " + x.Operator + " ")
	e.emitOperand(x.Right, rightMin, x.Operator)
}

// emitOperand prints one side of a binary expression. `??` cannot be mixed
// with `&&` or `||` without parentheses.
func (e *Emitter) emitOperand(operand Expression, minPrec int, op string) {
	if inner, ok := operand.(*InfixExpression); ok && mixesCoalesce(op, inner.Operator) {
		saved := e.noIn
		e.noIn = false
		e.write("(")
		e.emitExpression(operand, LOWEST)
		e.write(")")
		e.noIn = saved
		return
	}
	e.emitExpression(operand, minPrec)
}

func mixesCoalesce(outer, inner string) bool {
	logical := func(op string) bool { return op == "&&" || op == "||" }
	return (outer == "??" && logical(inner)) || (logical(outer) && inner == "??")
}

func (e *Emitter) emitPrefix(x *PrefixExpression) {
	e.write(x.Operator)
	switch x.Operator {
	case "typeof", "void", "delete":
		e.write(" ")
	case "-", "+":
		// Keep `- -x` and `+ +x` from fusing into an update operator.
		switch r := x.Right.(type) {
		case *PrefixExpression:
			if r.Operator == x.Operator {
				e.write(" ")
			}
		case *UpdateExpression:
			if r.Prefix && r.Operator[:1] == x.Operator {
				e.write(" ")
			}
		}
	}
	e.emitExpression(x.Right, PREFIX)
}

// --- Patterns ---

func (e *Emitter) emitPattern(p Pattern) {
	if e.missing(p, "binding") {
		return
	}
	switch x := p.(type) {
	case *Identifier:
		e.emitIdentifier(x)
	case *ArrayPattern:
		e.write("[")
		for i, el := range x.Elements {
			if i > 0 {
				e.write(", ")
			}
			if el == nil {
				if i == len(x.Elements)-1 {
					e.write(",")
				}
				continue
			}
			e.emitPattern(el)
		}
		e.write("]")
	case *ObjectPattern:
		if len(x.Properties) == 0 && x.Rest == nil {
			e.write("{}")
			return
		}
		e.write("{ ")
		for i, prop := range x.Properties {
			if i > 0 {
				e.write(", ")
			}
			e.emitPatternProperty(prop)
		}
		if x.Rest != nil {
			if len(x.Properties) > 0 {
				e.write(", ")
			}
			e.write("...")
			e.emitPattern(x.Rest)
		}
		e.write(" }")
	case *AssignmentPattern:
		e.emitPattern(x.Target)
		e.write(" = ")
		e.emitExpression(x.Default, ASSIGNMENT)
	case *RestElement:
		e.write("...")
		e.emitPattern(x.Target)
	default:
		e.fail(p, fmt.Sprintf("cannot emit binding of type %T", p))
	}
}

func (e *Emitter) emitPatternProperty(p *PatternProperty) {
	if e.missing(p, "binding property") {
		return
	}
	if p.Shorthand {
		e.emitPattern(p.Value)
		return
	}
	e.emitPropertyKey(p.Key, p.Computed)
	e.write(": ")
	e.emitPattern(p.Value)
}

// --- Types ---

func (e *Emitter) emitType(t TypeNode) {
	if e.missing(t, "type") {
		return
	}
	switch x := t.(type) {
	case *KeywordType:
		e.write(x.Name)
	case *ArrayType:
		e.emitTypeOperand(x.ElementType, true)
		e.write("[]")
	case *UnionType:
		for i, member := range x.Types {
			if i > 0 {
				e.write(" | ")
			}
			e.emitTypeOperand(member, false)
		}
	case *IntersectionType:
		for i, member := range x.Types {
			if i > 0 {
				e.write(" & ")
			}
			if _, ok := member.(*UnionType); ok {
				e.write("(")
				e.emitType(member)
				e.write(")")
				continue
			}
			e.emitTypeOperand(member, false)
		}
	case *ParenthesizedType:
		e.write("(")
		e.emitType(x.Type)
		e.write(")")
	case *TypeReference:
		e.emitEntityName(x.Name)
		if len(x.TypeArguments) > 0 {
			e.write("<")
			for i, arg := range x.TypeArguments {
				if i > 0 {
					e.write(", ")
				}
				e.emitType(arg)
			}
			e.write(">")
		}
	case *LiteralType:
		e.emitExpression(x.Literal, PREFIX)
	case *TupleType:
		e.write("[")
		for i, el := range x.Elements {
			if i > 0 {
				e.write(", ")
			}
			e.emitType(el)
		}
		e.write("]")
	case *FunctionType:
		e.emitParameters(x.Parameters)
		e.write(" => ")
		e.emitType(x.ReturnType)
	case *ObjectType:
		if len(x.Members) == 0 {
			e.write("{}")
			return
		}
		e.write("{ ")
		for i, m := range x.Members {
			if i > 0 {
				e.write("; ")
			}
			e.emitMember(m)
		}
		e.write(" }")
	default:
		e.fail(t, fmt.Sprintf("cannot emit type of type %T", t))
	}
}

// emitTypeOperand parenthesizes function types, and union or intersection
// types under an array suffix.
func (e *Emitter) emitTypeOperand(t TypeNode, array bool) {
	switch t.(type) {
	case *FunctionType:
		e.write("(")
		e.emitType(t)
		e.write(")")
		return
	case *UnionType, *IntersectionType:
		if array {
			e.write("(")
			e.emitType(t)
			e.write(")")
			return
		}
	}
	e.emitType(t)
}

func (e *Emitter) emitEntityName(n Node) {
	switch x := n.(type) {
	case *Identifier:
		e.emitIdentifier(x)
	case *QualifiedName:
		e.emitEntityName(x.Left)
		e.write(".")
		e.emitIdentifier(x.Right)
	default:
		if e.missing(n, "type name") {
			return
		}
		e.fail(n, fmt.Sprintf("cannot emit type name of type %T", n))
	}
}
