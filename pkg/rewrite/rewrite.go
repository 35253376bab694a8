// Package rewrite turns a parsed script into one that cooperates with a
// host scheduler: calls become awaited suspension points, loops yield once
// per iteration, property writes go through runtime setters and interface
// declarations register typed variables.
package rewrite

import (
	"github.com/tomaswrobel/scrap-native/pkg/lexer"
	"github.com/tomaswrobel/scrap-native/pkg/parser"
	"go.uber.org/zap"
)

// compoundOperators maps each compound assignment to the binary operator
// it applies.
var compoundOperators = map[string]string{
	"+=":   "+",
	"-=":   "-",
	"*=":   "*",
	"/=":   "/",
	"%=":   "%",
	"&&=":  "&&",
	"||=":  "||",
	"&=":   "&",
	"|=":   "|",
	"^=":   "^",
	"<<=":  "<<",
	">>=":  ">>",
	">>>=": ">>>",
	"**=":  "**",
	"??=":  "??",
}

// Rewriter applies the cooperative-yield rewrite to programs. A Rewriter
// holds no per-program state and may be reused.
type Rewriter struct {
	opts Options
	pure map[string]bool
	log  *zap.Logger
}

// New creates a Rewriter. Empty option fields take their defaults.
func New(opts Options) *Rewriter {
	opts = opts.withDefaults()
	pure := make(map[string]bool, len(opts.PureCallees))
	for _, name := range opts.PureCallees {
		pure[name] = true
	}
	return &Rewriter{opts: opts, pure: pure, log: Logger()}
}

// Options returns the effective options of r.
func (r *Rewriter) Options() Options {
	return r.opts
}

// Rewrite applies the default rewrite to program in place.
func Rewrite(program *parser.Program) {
	New(DefaultOptions()).Program(program)
}

// Program rewrites program in place. Children are rewritten before their
// parent, so nodes produced by a rule are never matched again in the same
// pass. Applying it twice wraps calls and loops a second time.
func (r *Rewriter) Program(program *parser.Program) {
	if program == nil {
		return
	}
	r.statements(program.Statements)
}

func (r *Rewriter) applied(rule string, tok lexer.Token) {
	if ce := r.log.Check(zap.DebugLevel, "rewrite rule applied"); ce != nil {
		ce.Write(zap.String("rule", rule), zap.Int("line", tok.Line), zap.Int("column", tok.Column))
	}
}

func (r *Rewriter) context() parser.Expression {
	return pathExpression(r.opts.Context)
}

// contextCall builds `<ctx>.method(args...)`.
func (r *Rewriter) contextCall(method string, args ...parser.Expression) *parser.CallExpression {
	return &parser.CallExpression{
		Function:  &parser.MemberExpression{Object: r.context(), Property: &parser.Identifier{Value: method}},
		Arguments: args,
	}
}

// --- Statements ---

func (r *Rewriter) statements(list []parser.Statement) {
	for i, stmt := range list {
		list[i] = r.statement(stmt)
	}
}

func (r *Rewriter) block(b *parser.BlockStatement) {
	if b != nil {
		r.statements(b.Statements)
	}
}

func (r *Rewriter) statement(stmt parser.Statement) parser.Statement {
	switch s := stmt.(type) {
	case *parser.BlockStatement:
		r.block(s)
	case *parser.ExpressionStatement:
		s.Expression = r.expression(s.Expression)
	case *parser.VarDeclaration:
		r.varDeclaration(s)
	case *parser.FunctionDeclaration:
		r.function(s.Function)
	case *parser.InterfaceDeclaration:
		return r.interfaceDeclaration(s)
	case *parser.IfStatement:
		s.Condition = r.expression(s.Condition)
		s.Consequence = r.statement(s.Consequence)
		if s.Alternative != nil {
			s.Alternative = r.statement(s.Alternative)
		}
	case *parser.ForStatement:
		s.Init = r.forLeft(s.Init)
		s.Condition = r.expression(s.Condition)
		s.Update = r.expression(s.Update)
		s.Body = r.loopBody(s.Token, r.statement(s.Body))
	case *parser.ForInStatement:
		s.Left = r.forLeft(s.Left)
		s.Right = r.expression(s.Right)
		s.Body = r.loopBody(s.Token, r.statement(s.Body))
	case *parser.ForOfStatement:
		s.Left = r.forLeft(s.Left)
		s.Right = r.expression(s.Right)
		s.Body = r.loopBody(s.Token, r.statement(s.Body))
	case *parser.WhileStatement:
		s.Condition = r.expression(s.Condition)
		s.Body = r.loopBody(s.Token, r.statement(s.Body))
	case *parser.DoWhileStatement:
		s.Body = r.loopBody(s.Token, r.statement(s.Body))
		s.Condition = r.expression(s.Condition)
	case *parser.ReturnStatement:
		s.ReturnValue = r.expression(s.ReturnValue)
	case *parser.ThrowStatement:
		s.Value = r.expression(s.Value)
	case *parser.TryStatement:
		r.block(s.Block)
		if s.Handler != nil {
			r.catchClause(s.Handler)
		}
		r.block(s.Finalizer)
	case *parser.SwitchStatement:
		s.Discriminant = r.expression(s.Discriminant)
		for _, c := range s.Cases {
			c.Test = r.expression(c.Test)
			r.statements(c.Consequent)
		}
	case *parser.LabeledStatement:
		s.Body = r.statement(s.Body)
	}
	return stmt
}

func (r *Rewriter) varDeclaration(decl *parser.VarDeclaration) {
	for _, d := range decl.Declarators {
		d.Target = r.pattern(d.Target)
		d.Value = r.expression(d.Value)
	}
}

func (r *Rewriter) forLeft(n parser.Node) parser.Node {
	switch l := n.(type) {
	case *parser.VarDeclaration:
		r.varDeclaration(l)
	case parser.Expression:
		return r.expression(l)
	}
	return n
}

// loopBody makes body a block whose first statement yields to the host.
func (r *Rewriter) loopBody(tok lexer.Token, body parser.Statement) parser.Statement {
	block, ok := body.(*parser.BlockStatement)
	if !ok || block == nil {
		block = &parser.BlockStatement{Token: tok}
		if body != nil {
			if _, empty := body.(*parser.EmptyStatement); !empty {
				block.Statements = []parser.Statement{body}
			}
		}
	}
	yield := &parser.ExpressionStatement{
		Token:      tok,
		Expression: &parser.AwaitExpression{Token: tok, Argument: r.contextCall("delay")},
	}
	block.Statements = append([]parser.Statement{yield}, block.Statements...)
	r.applied("loop-yield", tok)
	return block
}

func (r *Rewriter) catchClause(c *parser.CatchClause) {
	r.block(c.Body)

	var name string
	switch p := c.Param.(type) {
	case nil:
		name = r.opts.ErrorBinding
		c.Param = &parser.Identifier{Token: c.Token, Value: name}
	case *parser.Identifier:
		name = p.Value
	default:
		return
	}
	if c.Body == nil {
		c.Body = &parser.BlockStatement{Token: c.Token}
	}

	guard := &parser.IfStatement{
		Token: c.Token,
		Condition: &parser.InfixExpression{
			Token:    c.Token,
			Left:     &parser.Identifier{Value: name},
			Operator: "instanceof",
			Right:    pathExpression(r.opts.Interrupt),
		},
		Consequence: &parser.ThrowStatement{Token: c.Token, Value: &parser.Identifier{Value: name}},
	}
	c.Body.Statements = append([]parser.Statement{guard}, c.Body.Statements...)
	r.applied("catch-guard", c.Token)
}

// interfaceDeclaration replaces an interface with one declare call per
// property, in member order.
func (r *Rewriter) interfaceDeclaration(decl *parser.InterfaceDeclaration) parser.Statement {
	block := &parser.BlockStatement{Token: decl.Token}
	for _, v := range interfaceVariables(decl) {
		args := make([]parser.Expression, 0, len(v.Types)+1)
		args = append(args, &parser.StringLiteral{Value: v.Name})
		for _, tag := range v.Types {
			args = append(args, &parser.StringLiteral{Value: tag})
		}
		block.Statements = append(block.Statements, &parser.ExpressionStatement{
			Token:      decl.Token,
			Expression: r.contextCall("declareVariable", args...),
		})
	}
	r.applied("interface", decl.Token)
	return block
}

// --- Functions ---

func (r *Rewriter) function(fn *parser.FunctionLiteral) {
	if fn == nil {
		return
	}
	r.parameters(fn.Parameters)
	r.block(fn.Body)
	fn.Async = true
}

func (r *Rewriter) parameters(params []*parser.Parameter) {
	for _, p := range params {
		if p == nil {
			continue
		}
		p.Target = r.pattern(p.Target)
		p.Default = r.expression(p.Default)
	}
}

// --- Patterns ---

func (r *Rewriter) pattern(p parser.Pattern) parser.Pattern {
	switch x := p.(type) {
	case *parser.ArrayPattern:
		for i, el := range x.Elements {
			if el != nil {
				x.Elements[i] = r.pattern(el)
			}
		}
	case *parser.ObjectPattern:
		for _, prop := range x.Properties {
			if prop.Computed {
				prop.Key = r.expression(prop.Key)
			}
			prop.Value = r.pattern(prop.Value)
		}
		if x.Rest != nil {
			x.Rest = r.pattern(x.Rest)
		}
	case *parser.AssignmentPattern:
		x.Target = r.pattern(x.Target)
		x.Default = r.expression(x.Default)
	case *parser.RestElement:
		x.Target = r.pattern(x.Target)
	}
	return p
}

// --- Expressions ---

func (r *Rewriter) expressions(list []parser.Expression) {
	for i, e := range list {
		if e != nil {
			list[i] = r.expression(e)
		}
	}
}

func (r *Rewriter) expression(expr parser.Expression) parser.Expression {
	switch x := expr.(type) {
	case nil:
		return nil
	case *parser.TemplateLiteral:
		r.expressions(x.Expressions)
	case *parser.ArrayLiteral:
		r.expressions(x.Elements)
	case *parser.ObjectLiteral:
		for _, p := range x.Properties {
			if p.Computed {
				p.Key = r.expression(p.Key)
			}
			p.Value = r.expression(p.Value)
		}
	case *parser.SpreadElement:
		x.Argument = r.expression(x.Argument)
	case *parser.FunctionLiteral:
		r.function(x)
	case *parser.ArrowFunctionLiteral:
		r.parameters(x.Parameters)
		switch body := x.Body.(type) {
		case *parser.BlockStatement:
			r.block(body)
		case parser.Expression:
			x.Body = r.expression(body)
		}
		x.Async = true
	case *parser.CallExpression:
		x.Function = r.expression(x.Function)
		r.expressions(x.Arguments)
		return r.call(x)
	case *parser.TaggedTemplateExpression:
		x.Tag = r.expression(x.Tag)
		if x.Quasi != nil {
			r.expressions(x.Quasi.Expressions)
		}
	case *parser.NewExpression:
		x.Constructor = r.expression(x.Constructor)
		r.expressions(x.Arguments)
	case *parser.MemberExpression:
		x.Object = r.expression(x.Object)
		if x.Computed {
			x.Property = r.expression(x.Property)
		}
	case *parser.AssignmentExpression:
		x.Left = r.expression(x.Left)
		x.Value = r.expression(x.Value)
		return r.assignment(x)
	case *parser.InfixExpression:
		x.Left = r.expression(x.Left)
		x.Right = r.expression(x.Right)
	case *parser.PrefixExpression:
		x.Right = r.expression(x.Right)
	case *parser.UpdateExpression:
		x.Argument = r.expression(x.Argument)
	case *parser.TernaryExpression:
		x.Condition = r.expression(x.Condition)
		x.Consequence = r.expression(x.Consequence)
		x.Alternative = r.expression(x.Alternative)
	case *parser.SequenceExpression:
		r.expressions(x.Expressions)
	case *parser.AwaitExpression:
		x.Argument = r.expression(x.Argument)
	case *parser.AsExpression:
		x.Expression = r.expression(x.Expression)
	case *parser.NonNullExpression:
		x.Expression = r.expression(x.Expression)
	}
	return expr
}

// call passes the runtime context first and awaits the result.
func (r *Rewriter) call(c *parser.CallExpression) parser.Expression {
	callee, bare := c.Function.(*parser.Identifier)
	switch {
	case bare && r.pure[callee.Value]:
	case r.opts.BareCalleeContext && !bare:
	default:
		c.Arguments = append([]parser.Expression{r.context()}, c.Arguments...)
	}
	r.applied("call", c.Token)
	return &parser.AwaitExpression{Token: c.Token, Argument: c}
}

// assignment routes writes to runtime-managed properties through the
// matching context operation. Other assignments are returned as is.
func (r *Rewriter) assignment(a *parser.AssignmentExpression) parser.Expression {
	target, ok := a.Left.(*parser.MemberExpression)
	if !ok {
		return a
	}
	name, ok := PropertyName(target)
	if !ok {
		return a
	}

	receiver := target.Object
	var method string
	inner, nested := target.Object.(*parser.MemberExpression)
	switch {
	case nested && IsProperty(inner, "variables"):
		receiver, method = inner.Object, "setVariable"
	case nested && IsProperty(inner, "effects"):
		receiver, method = inner.Object, "setEffect"
	default:
		setter, ok := r.opts.Setters[name]
		if !ok {
			return a
		}
		method = setter
	}

	value := a.Value
	if a.Operator != "=" {
		op, ok := compoundOperators[a.Operator]
		if !ok {
			return a
		}
		value = &parser.InfixExpression{
			Token:    a.Token,
			Left:     parser.CloneExpression(target),
			Operator: op,
			Right:    value,
		}
	}

	r.applied(method, a.Token)
	return &parser.AwaitExpression{
		Token: a.Token,
		Argument: &parser.CallExpression{
			Token:     a.Token,
			Function:  &parser.MemberExpression{Object: receiver, Property: &parser.Identifier{Value: method}},
			Arguments: []parser.Expression{&parser.StringLiteral{Value: name}, value},
		},
	}
}
