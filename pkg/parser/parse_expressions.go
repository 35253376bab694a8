package parser

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/tomaswrobel/scrap-native/pkg/lexer"
)

// parseExpression is the Pratt loop. On return curToken is the last token
// of the expression.
func (p *Parser) parseExpression(precedence int) Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	leftExp := prefix()
	if leftExp == nil {
		return nil
	}

	for !p.peekTokenIs(lexer.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
		if leftExp == nil {
			return nil
		}
	}
	return leftExp
}

// --- Prefix parse functions ---

func (p *Parser) parseIdentifier() Expression {
	ident := &Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if p.peekTokenIs(lexer.ARROW) && !p.peekToken.NewlineBefore {
		return p.parseArrowFromIdentifier(ident, false)
	}
	if ident.Value == "async" && !p.peekToken.NewlineBefore {
		switch {
		case p.peekTokenIs(lexer.FUNCTION):
			p.nextToken()
			fn := p.parseFunctionExpression()
			if fl, ok := fn.(*FunctionLiteral); ok {
				fl.Async = true
				return fl
			}
			return nil
		case p.peekTokenIs(lexer.IDENT):
			isArrow := p.speculate(func() bool {
				p.nextToken()
				return p.peekTokenIs(lexer.ARROW)
			})
			if isArrow {
				p.nextToken()
				param := &Identifier{Token: p.curToken, Value: p.curToken.Literal}
				return p.parseArrowFromIdentifier(param, true)
			}
		case p.peekTokenIs(lexer.LPAREN):
			isArrow := p.speculate(func() bool {
				p.nextToken()
				return p.isArrowAhead()
			})
			if isArrow {
				p.nextToken()
				return p.parseArrowFunction(true)
			}
		}
	}
	return ident
}

func (p *Parser) parseArrowFromIdentifier(param *Identifier, async bool) Expression {
	arrow := &ArrowFunctionLiteral{
		Token:      p.curToken,
		Async:      async,
		Parameters: []*Parameter{{Token: param.Token, Target: param}},
	}
	p.nextToken() // '=>'
	return p.parseArrowBody(arrow)
}

func (p *Parser) parseNumberLiteral() Expression {
	return &NumberLiteral{Token: p.curToken, Raw: p.curToken.Literal}
}

func (p *Parser) parseStringLiteral() Expression {
	tok := p.curToken
	raw := ""
	if src := p.l.Input(); tok.EndPos <= len(src) && tok.StartPos < tok.EndPos {
		raw = src[tok.StartPos:tok.EndPos]
	}
	return &StringLiteral{Token: tok, Value: tok.Literal, Raw: raw}
}

func (p *Parser) parseBooleanLiteral() Expression {
	return &BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(lexer.TRUE)}
}

func (p *Parser) parseNullLiteral() Expression {
	return &NullLiteral{Token: p.curToken}
}

func (p *Parser) parseThisExpression() Expression {
	return &ThisExpression{Token: p.curToken}
}

// parseRegexLiteral splits /pattern/flags and checks the pattern compiles
// under ECMAScript rules.
func (p *Parser) parseRegexLiteral() Expression {
	tok := p.curToken
	end := strings.LastIndexByte(tok.Literal, '/')
	lit := &RegexLiteral{Token: tok, Pattern: tok.Literal[1:end], Flags: tok.Literal[end+1:]}

	// regexp2 only accepts IgnoreCase and Multiline next to ECMAScript, so
	// unicode-mode patterns are passed through unchecked.
	if strings.ContainsAny(lit.Flags, "uv") {
		return lit
	}
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	if strings.ContainsRune(lit.Flags, 'i') {
		opts |= regexp2.IgnoreCase
	}
	if strings.ContainsRune(lit.Flags, 'm') {
		opts |= regexp2.Multiline
	}
	if _, err := regexp2.Compile(lit.Pattern, opts); err != nil {
		p.addError(tok, fmt.Sprintf("invalid regular expression %s: %v", tok.Literal, err))
		return nil
	}
	return lit
}

// parseTemplateLiteral parses each ${} substitution with a nested parser.
func (p *Parser) parseTemplateLiteral() Expression {
	tok := p.curToken
	quasis, sources, ok := lexer.SplitTemplate(tok.Literal)
	if !ok {
		p.addError(tok, "malformed template literal")
		return nil
	}
	tl := &TemplateLiteral{Token: tok, Quasis: quasis}
	for _, src := range sources {
		sub := NewParser(lexer.NewLexer(src))
		expr := sub.parseExpression(LOWEST)
		if len(sub.errors) == 0 && !sub.peekTokenIs(lexer.EOF) {
			sub.addError(sub.peekToken, fmt.Sprintf("unexpected %s", describe(sub.peekToken)))
		}
		if len(sub.errors) > 0 {
			p.addError(tok, "in template substitution: "+sub.errors[0].Message())
			return nil
		}
		tl.Expressions = append(tl.Expressions, expr)
	}
	return tl
}

// parseGroupedExpression handles '(' which opens either a parenthesized
// expression or an arrow function parameter list.
func (p *Parser) parseGroupedExpression() Expression {
	if p.isArrowAhead() {
		return p.parseArrowFunction(false)
	}
	defer p.allowIn()()

	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return exp
}

// isArrowAhead reports whether the '(' at curToken starts an arrow
// function. The parser position is left untouched.
func (p *Parser) isArrowAhead() bool {
	state := p.saveState()
	defer p.restoreState(state)

	depth := 0
	for {
		switch p.curToken.Type {
		case lexer.LPAREN, lexer.LBRACKET, lexer.LBRACE:
			depth++
		case lexer.RPAREN, lexer.RBRACKET, lexer.RBRACE:
			depth--
		case lexer.EOF:
			return false
		}
		if depth == 0 {
			break
		}
		p.nextToken()
	}

	if p.peekTokenIs(lexer.ARROW) {
		return !p.peekToken.NewlineBefore
	}
	if !p.peekTokenIs(lexer.COLON) {
		return false
	}
	// `(a): T => a` against the conditional `c ? (a) : b`.
	p.nextToken()
	p.nextToken()
	errCount := len(p.errors)
	p.parseType(TYPE_LOWEST)
	return len(p.errors) == errCount && p.peekTokenIs(lexer.ARROW)
}

// parseArrowFunction parses `(params): T => body` with curToken at '('.
func (p *Parser) parseArrowFunction(async bool) Expression {
	arrow := &ArrowFunctionLiteral{Token: p.curToken, Async: async}
	params := p.parseParameters()
	if params == nil {
		return nil
	}
	arrow.Parameters = params

	if p.peekTokenIs(lexer.COLON) {
		p.nextToken()
		p.nextToken()
		arrow.ReturnType = p.parseType(TYPE_LOWEST)
		if arrow.ReturnType == nil {
			return nil
		}
	}
	if !p.expectPeek(lexer.ARROW) {
		return nil
	}
	return p.parseArrowBody(arrow)
}

// parseArrowBody expects curToken at '=>'.
func (p *Parser) parseArrowBody(arrow *ArrowFunctionLiteral) Expression {
	if p.peekTokenIs(lexer.LBRACE) {
		p.nextToken()
		body := p.parseFunctionBody()
		if body == nil {
			return nil
		}
		arrow.Body = body
		return arrow
	}
	p.nextToken()
	body := p.parseExpression(COMMA)
	if body == nil {
		return nil
	}
	arrow.Body = body
	return arrow
}

func (p *Parser) parseArrayLiteral() Expression {
	defer p.allowIn()()
	array := &ArrayLiteral{Token: p.curToken, Elements: []Expression{}}

	for {
		if p.peekTokenIs(lexer.RBRACKET) {
			p.nextToken()
			return array
		}
		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			array.Elements = append(array.Elements, nil)
			continue
		}
		p.nextToken()
		el := p.parseListElement()
		if el == nil {
			return nil
		}
		array.Elements = append(array.Elements, el)
		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(lexer.RBRACKET) {
			return nil
		}
		return array
	}
}

// parseListElement parses an argument or array element, which may be spread.
func (p *Parser) parseListElement() Expression {
	if p.curTokenIs(lexer.SPREAD) {
		spread := &SpreadElement{Token: p.curToken}
		p.nextToken()
		spread.Argument = p.parseExpression(COMMA)
		if spread.Argument == nil {
			return nil
		}
		return spread
	}
	return p.parseExpression(COMMA)
}

// parseExpressionList parses comma separated elements up to end, allowing a
// trailing comma.
func (p *Parser) parseExpressionList(end lexer.TokenType) []Expression {
	defer p.allowIn()()
	list := []Expression{}

	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}

	p.nextToken()
	el := p.parseListElement()
	if el == nil {
		return nil
	}
	list = append(list, el)

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		if p.peekTokenIs(end) {
			break
		}
		p.nextToken()
		el := p.parseListElement()
		if el == nil {
			return nil
		}
		list = append(list, el)
	}

	if !p.expectPeek(end) {
		return nil
	}
	return list
}

func (p *Parser) parseObjectLiteral() Expression {
	defer p.allowIn()()
	obj := &ObjectLiteral{Token: p.curToken, Properties: []*ObjectProperty{}}

	for !p.peekTokenIs(lexer.RBRACE) {
		p.nextToken()
		prop := p.parseObjectProperty()
		if prop == nil {
			return nil
		}
		obj.Properties = append(obj.Properties, prop)
		if !p.peekTokenIs(lexer.RBRACE) && !p.expectPeek(lexer.COMMA) {
			return nil
		}
	}
	p.nextToken()
	return obj
}

func (p *Parser) parseObjectProperty() *ObjectProperty {
	prop := &ObjectProperty{Token: p.curToken}

	if p.curTokenIs(lexer.SPREAD) {
		spread := &SpreadElement{Token: p.curToken}
		p.nextToken()
		spread.Argument = p.parseExpression(COMMA)
		if spread.Argument == nil {
			return nil
		}
		prop.Value = spread
		return prop
	}

	async := false
	if (p.curIsContextual("get") || p.curIsContextual("set") || p.curIsContextual("async")) && p.startsPropertyKey(p.peekToken) {
		if !p.curIsContextual("async") {
			p.addError(p.curToken, fmt.Sprintf("'%s' accessors are not supported in scripts", p.curToken.Literal))
			return nil
		}
		async = true
		p.nextToken()
	}

	if !p.parsePropertyKey(&prop.Key, &prop.Computed) {
		return nil
	}

	switch {
	case p.peekTokenIs(lexer.LPAREN):
		p.nextToken()
		fn := &FunctionLiteral{Token: prop.Token, Async: async}
		if !p.parseFunctionRest(fn) {
			return nil
		}
		prop.Value = fn
		prop.Method = true
	case async:
		p.addError(p.peekToken, fmt.Sprintf("expected '(', got %s instead", describe(p.peekToken)))
		return nil
	case p.peekTokenIs(lexer.COLON):
		p.nextToken()
		p.nextToken()
		prop.Value = p.parseExpression(COMMA)
		if prop.Value == nil {
			return nil
		}
	default:
		ident, ok := prop.Key.(*Identifier)
		if !ok || prop.Computed {
			p.peekError(lexer.COLON)
			return nil
		}
		prop.Value = &Identifier{Token: ident.Token, Value: ident.Value}
		prop.Shorthand = true
	}
	return prop
}

// startsPropertyKey reports whether tok can begin a property key.
func (p *Parser) startsPropertyKey(tok lexer.Token) bool {
	return isPropertyName(tok.Type) || tok.Type == lexer.STRING ||
		tok.Type == lexer.NUMBER || tok.Type == lexer.LBRACKET
}

// parsePropertyKey reads an identifier, keyword, string, number or computed
// key starting at curToken.
func (p *Parser) parsePropertyKey(key *Expression, computed *bool) bool {
	switch {
	case isPropertyName(p.curToken.Type):
		*key = &Identifier{Token: p.curToken, Value: p.curToken.Literal}
	case p.curTokenIs(lexer.STRING):
		*key = p.parseStringLiteral()
	case p.curTokenIs(lexer.NUMBER):
		*key = p.parseNumberLiteral()
	case p.curTokenIs(lexer.LBRACKET):
		restore := p.allowIn()
		p.nextToken()
		*key = p.parseExpression(COMMA)
		restore()
		if *key == nil || !p.expectPeek(lexer.RBRACKET) {
			return false
		}
		*computed = true
	default:
		p.addError(p.curToken, fmt.Sprintf("expected property name, got %s", describe(p.curToken)))
		return false
	}
	return true
}

func (p *Parser) parseFunctionExpression() Expression {
	fn := &FunctionLiteral{Token: p.curToken}
	if p.peekTokenIs(lexer.ASTERISK) {
		p.addError(p.peekToken, "generator functions are not supported in scripts")
		return nil
	}
	if p.peekTokenIs(lexer.IDENT) {
		p.nextToken()
		fn.Name = &Identifier{Token: p.curToken, Value: p.curToken.Literal}
	}
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	if !p.parseFunctionRest(fn) {
		return nil
	}
	return fn
}

// parseFunctionRest parses parameters, return type and body with curToken
// at the opening parenthesis.
func (p *Parser) parseFunctionRest(fn *FunctionLiteral) bool {
	params := p.parseParameters()
	if params == nil {
		return false
	}
	fn.Parameters = params

	if p.peekTokenIs(lexer.COLON) {
		p.nextToken()
		p.nextToken()
		fn.ReturnType = p.parseType(TYPE_LOWEST)
		if fn.ReturnType == nil {
			return false
		}
	}
	if !p.expectPeek(lexer.LBRACE) {
		return false
	}
	fn.Body = p.parseFunctionBody()
	return fn.Body != nil
}

func (p *Parser) parseFunctionBody() *BlockStatement {
	defer p.allowIn()()
	return p.parseBlockStatement()
}

func (p *Parser) parseNewExpression() Expression {
	ne := &NewExpression{Token: p.curToken}
	if p.peekTokenIs(lexer.DOT) {
		p.addError(p.peekToken, "new.target is not supported in scripts")
		return nil
	}
	p.nextToken()
	ne.Constructor = p.parseExpression(CALL)
	if ne.Constructor == nil {
		return nil
	}
	if p.peekTokenIs(lexer.LPAREN) {
		p.nextToken()
		ne.Arguments = p.parseExpressionList(lexer.RPAREN)
		if ne.Arguments == nil {
			return nil
		}
	}
	return ne
}

func (p *Parser) parseAwaitExpression() Expression {
	expr := &AwaitExpression{Token: p.curToken}
	p.nextToken()
	expr.Argument = p.parseExpression(PREFIX)
	if expr.Argument == nil {
		return nil
	}
	return expr
}

func (p *Parser) parsePrefixExpression() Expression {
	expr := &PrefixExpression{Token: p.curToken, Operator: p.curToken.Literal}
	p.nextToken()
	expr.Right = p.parseExpression(PREFIX)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parsePrefixUpdate() Expression {
	expr := &UpdateExpression{Token: p.curToken, Operator: p.curToken.Literal, Prefix: true}
	p.nextToken()
	expr.Argument = p.parseExpression(PREFIX)
	if expr.Argument == nil {
		return nil
	}
	if !isAssignable(expr.Argument) {
		p.addError(expr.Token, "invalid operand for "+expr.Operator)
		return nil
	}
	return expr
}

// --- Infix parse functions ---

func (p *Parser) parseInfixExpression(left Expression) Expression {
	expr := &InfixExpression{Token: p.curToken, Operator: p.curToken.Literal, Left: left}
	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseExponentExpression(left Expression) Expression {
	expr := &InfixExpression{Token: p.curToken, Operator: p.curToken.Literal, Left: left}
	p.nextToken()
	expr.Right = p.parseExpression(POWER - 1)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseAssignmentExpression(left Expression) Expression {
	expr := &AssignmentExpression{Token: p.curToken, Operator: p.curToken.Literal, Left: left}
	if !isAssignable(left) && !(expr.Operator == "=" && isDestructuringTarget(left)) {
		p.addError(p.curToken, "invalid assignment target")
		return nil
	}
	p.nextToken()
	expr.Value = p.parseExpression(ASSIGNMENT - 1)
	if expr.Value == nil {
		return nil
	}
	return expr
}

// isAssignable reports whether e can be the target of an assignment or update.
func isAssignable(e Expression) bool {
	switch n := e.(type) {
	case *Identifier:
		return true
	case *MemberExpression:
		return !n.Optional
	case *NonNullExpression:
		return isAssignable(n.Expression)
	case *AsExpression:
		return isAssignable(n.Expression)
	}
	return false
}

func isDestructuringTarget(e Expression) bool {
	switch e.(type) {
	case *ArrayLiteral, *ObjectLiteral:
		return true
	}
	return false
}

func (p *Parser) parseTernaryExpression(condition Expression) Expression {
	expr := &TernaryExpression{Token: p.curToken, Condition: condition}
	restore := p.allowIn()
	p.nextToken()
	expr.Consequence = p.parseExpression(COMMA)
	restore()
	if expr.Consequence == nil || !p.expectPeek(lexer.COLON) {
		return nil
	}
	p.nextToken()
	expr.Alternative = p.parseExpression(COMMA)
	if expr.Alternative == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseSequenceExpression(first Expression) Expression {
	seq, ok := first.(*SequenceExpression)
	if !ok {
		seq = &SequenceExpression{Token: p.curToken, Expressions: []Expression{first}}
	}
	p.nextToken()
	next := p.parseExpression(COMMA)
	if next == nil {
		return nil
	}
	seq.Expressions = append(seq.Expressions, next)
	return seq
}

func (p *Parser) parsePostfixUpdate(left Expression) Expression {
	if !isAssignable(left) {
		p.addError(p.curToken, "invalid operand for "+p.curToken.Literal)
		return nil
	}
	return &UpdateExpression{Token: p.curToken, Operator: p.curToken.Literal, Argument: left}
}

func (p *Parser) parseNonNullExpression(left Expression) Expression {
	return &NonNullExpression{Token: p.curToken, Expression: left}
}

func (p *Parser) parseAsExpression(left Expression) Expression {
	expr := &AsExpression{Token: p.curToken, Expression: left, Satisfies: p.curTokenIs(lexer.SATISFIES)}
	if p.peekTokenIs(lexer.CONST) {
		p.nextToken()
		expr.Type = &TypeReference{Token: p.curToken, Name: &Identifier{Token: p.curToken, Value: "const"}}
		return expr
	}
	p.nextToken()
	expr.Type = p.parseType(TYPE_LOWEST)
	if expr.Type == nil {
		return nil
	}
	return expr
}

// parseTaggedTemplate handles tag`...` once the template token is current.
func (p *Parser) parseTaggedTemplate(tag Expression) Expression {
	tok := p.curToken
	quasi, ok := p.parseTemplateLiteral().(*TemplateLiteral)
	if !ok || quasi == nil {
		return nil
	}
	return &TaggedTemplateExpression{Token: tok, Tag: tag, Quasi: quasi}
}

func (p *Parser) parseCallExpression(function Expression) Expression {
	call := &CallExpression{Token: p.curToken, Function: function}
	call.Arguments = p.parseExpressionList(lexer.RPAREN)
	if call.Arguments == nil {
		return nil
	}
	return call
}

func (p *Parser) parseIndexExpression(object Expression) Expression {
	member := &MemberExpression{Token: p.curToken, Object: object, Computed: true}
	restore := p.allowIn()
	p.nextToken()
	member.Property = p.parseExpression(LOWEST)
	restore()
	if member.Property == nil || !p.expectPeek(lexer.RBRACKET) {
		return nil
	}
	return member
}

func (p *Parser) parseMemberExpression(object Expression) Expression {
	member := &MemberExpression{Token: p.curToken, Object: object}
	if !p.parseMemberName(member) {
		return nil
	}
	return member
}

// parseMemberName reads the name after '.' or '?.' into member.Property.
func (p *Parser) parseMemberName(member *MemberExpression) bool {
	switch {
	case p.peekTokenIs(lexer.PRIVATE_IDENT):
		p.nextToken()
		member.Property = &PrivateName{Token: p.curToken, Name: strings.TrimPrefix(p.curToken.Literal, "#")}
	case isPropertyName(p.peekToken.Type):
		p.nextToken()
		member.Property = &Identifier{Token: p.curToken, Value: p.curToken.Literal}
	default:
		p.addError(p.peekToken, fmt.Sprintf("expected property name after '%s', got %s", p.curToken.Literal, describe(p.peekToken)))
		return false
	}
	return true
}

// parseOptionalChain handles `a?.b`, `a?.[b]` and `a?.(b)`.
func (p *Parser) parseOptionalChain(object Expression) Expression {
	switch {
	case p.peekTokenIs(lexer.LPAREN):
		p.nextToken()
		call := p.parseCallExpression(object)
		if c, ok := call.(*CallExpression); ok {
			c.Optional = true
			return c
		}
		return nil
	case p.peekTokenIs(lexer.LBRACKET):
		p.nextToken()
		member := p.parseIndexExpression(object)
		if m, ok := member.(*MemberExpression); ok {
			m.Optional = true
			return m
		}
		return nil
	}
	member := &MemberExpression{Token: p.curToken, Object: object, Optional: true}
	if !p.parseMemberName(member) {
		return nil
	}
	return member
}
