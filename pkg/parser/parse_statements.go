package parser

import (
	"fmt"

	"github.com/tomaswrobel/scrap-native/pkg/lexer"
)

// parseStatement dispatches on curToken. On return curToken is the last
// token of the statement.
func (p *Parser) parseStatement() Statement {
	switch p.curToken.Type {
	case lexer.LET, lexer.CONST, lexer.VAR:
		decl := p.parseVarDeclaration()
		if decl == nil || !p.consumeSemicolon() {
			return nil
		}
		return decl
	case lexer.FUNCTION:
		return p.parseFunctionDeclaration(p.curToken, false)
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.FOR:
		return p.parseForStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.DO:
		return p.parseDoWhileStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.BREAK, lexer.CONTINUE:
		return p.parseJumpStatement()
	case lexer.THROW:
		return p.parseThrowStatement()
	case lexer.TRY:
		return p.parseTryStatement()
	case lexer.SWITCH:
		return p.parseSwitchStatement()
	case lexer.LBRACE:
		if block := p.parseBlockStatement(); block != nil {
			return block
		}
		return nil
	case lexer.SEMICOLON:
		return &EmptyStatement{Token: p.curToken}
	case lexer.CLASS, lexer.ENUM, lexer.IMPORT, lexer.EXPORT, lexer.AT:
		p.unsupported(p.curToken)
		return nil
	case lexer.IDENT:
		if stmt, handled := p.parseContextualStatement(); handled {
			return stmt
		}
	}
	return p.parseExpressionStatement()
}

// parseContextualStatement recognizes statements introduced by words that
// are ordinary identifiers elsewhere: async, interface, type, declare and labels.
func (p *Parser) parseContextualStatement() (Statement, bool) {
	tok := p.curToken
	sameLine := !p.peekToken.NewlineBefore

	switch {
	case p.peekTokenIs(lexer.COLON):
		return p.parseLabeledStatement(), true
	case tok.Literal == "async" && sameLine && p.peekTokenIs(lexer.FUNCTION):
		p.nextToken()
		return p.parseFunctionDeclaration(tok, true), true
	case tok.Literal == "interface" && sameLine && p.peekTokenIs(lexer.IDENT):
		return p.parseInterfaceDeclaration(), true
	case tok.Literal == "type" && sameLine && p.peekTokenIs(lexer.IDENT):
		return p.parseTypeAliasStatement(), true
	case (tok.Literal == "declare" || tok.Literal == "namespace" || tok.Literal == "module") && sameLine && p.peekTokenIs(lexer.IDENT):
		p.addError(tok, fmt.Sprintf("'%s' is not supported in scripts", tok.Literal))
		return nil, true
	}
	return nil, false
}

func (p *Parser) parseExpressionStatement() Statement {
	stmt := &ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil || !p.consumeSemicolon() {
		return nil
	}
	return stmt
}

func (p *Parser) parseBlockStatement() *BlockStatement {
	block := &BlockStatement{Token: p.curToken, Statements: []Statement{}}

	p.nextToken()
	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		before := len(p.errors)
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if len(p.errors) > before {
			p.synchronize()
		}
		p.nextToken()
	}

	if !p.curTokenIs(lexer.RBRACE) {
		p.addError(p.curToken, "expected '}' before end of input")
		return nil
	}
	return block
}

// parseVarDeclaration parses the keyword and its declarators but not the
// terminating semicolon, so for-statement heads can share it.
func (p *Parser) parseVarDeclaration() *VarDeclaration {
	decl := &VarDeclaration{Token: p.curToken, Kind: p.curToken.Literal}

	for {
		p.nextToken()
		d := &VarDeclarator{Token: p.curToken}
		d.Target = p.parseBindingTarget()
		if d.Target == nil {
			return nil
		}
		if p.peekTokenIs(lexer.BANG) && !p.peekToken.NewlineBefore {
			p.nextToken()
			d.Definite = true
		}
		if p.peekTokenIs(lexer.COLON) {
			p.nextToken()
			p.nextToken()
			d.TypeAnnotation = p.parseType(TYPE_LOWEST)
			if d.TypeAnnotation == nil {
				return nil
			}
		}
		if p.peekTokenIs(lexer.ASSIGN) {
			p.nextToken()
			p.nextToken()
			d.Value = p.parseExpression(COMMA)
			if d.Value == nil {
				return nil
			}
		}
		decl.Declarators = append(decl.Declarators, d)

		if !p.peekTokenIs(lexer.COMMA) {
			break
		}
		p.nextToken()
	}
	return decl
}

// parseFunctionDeclaration expects curToken at 'function'; tok is the first
// token of the declaration.
func (p *Parser) parseFunctionDeclaration(tok lexer.Token, async bool) Statement {
	fn := &FunctionLiteral{Token: p.curToken, Async: async}
	if p.peekTokenIs(lexer.ASTERISK) {
		p.addError(p.peekToken, "generator functions are not supported in scripts")
		return nil
	}
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	fn.Name = &Identifier{Token: p.curToken, Value: p.curToken.Literal}
	if p.peekTokenIs(lexer.LT) {
		p.addError(p.peekToken, "generic functions are not supported in scripts")
		return nil
	}
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	if !p.parseFunctionRest(fn) {
		return nil
	}
	return &FunctionDeclaration{Token: tok, Function: fn}
}

func (p *Parser) parseIfStatement() Statement {
	stmt := &IfStatement{Token: p.curToken}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil || !p.expectPeek(lexer.RPAREN) {
		return nil
	}

	p.nextToken()
	stmt.Consequence = p.parseStatement()
	if stmt.Consequence == nil {
		return nil
	}

	if p.peekTokenIs(lexer.ELSE) {
		p.nextToken()
		p.nextToken()
		stmt.Alternative = p.parseStatement()
		if stmt.Alternative == nil {
			return nil
		}
	}
	return stmt
}

func (p *Parser) parseForStatement() Statement {
	forTok := p.curToken
	await := false
	if p.peekTokenIs(lexer.AWAIT) {
		p.nextToken()
		await = true
	}
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()

	var init Node
	switch {
	case p.curTokenIs(lexer.SEMICOLON):
	case p.curTokenIs(lexer.LET) || p.curTokenIs(lexer.CONST) || p.curTokenIs(lexer.VAR):
		p.noIn = true
		decl := p.parseVarDeclaration()
		p.noIn = false
		if decl == nil {
			return nil
		}
		init = decl
	default:
		p.noIn = true
		expr := p.parseExpression(LOWEST)
		p.noIn = false
		if expr == nil {
			return nil
		}
		init = expr
	}

	if init != nil {
		switch {
		case p.peekTokenIs(lexer.IN) && !await:
			return p.parseForInOf(forTok, init, false, false)
		case p.peekIsContextual("of"):
			return p.parseForInOf(forTok, init, true, await)
		}
		if !p.expectPeek(lexer.SEMICOLON) {
			return nil
		}
	}
	if await {
		p.addError(forTok, "for await requires an 'of' clause")
		return nil
	}

	stmt := &ForStatement{Token: forTok, Init: init}
	if !p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		stmt.Condition = p.parseExpression(LOWEST)
		if stmt.Condition == nil {
			return nil
		}
	}
	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}
	if !p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		stmt.Update = p.parseExpression(LOWEST)
		if stmt.Update == nil {
			return nil
		}
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Body = p.parseStatement()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

// parseForInOf finishes `for (left in right)` or `for (left of right)` with
// the peek token at 'in' or 'of'.
func (p *Parser) parseForInOf(forTok lexer.Token, left Node, of bool, await bool) Statement {
	switch l := left.(type) {
	case *VarDeclaration:
		if len(l.Declarators) != 1 || l.Declarators[0].Value != nil {
			p.addError(l.Token, "the left side of a for-in/of loop must declare exactly one uninitialized binding")
			return nil
		}
	case Expression:
		if !isAssignable(l) && !isDestructuringTarget(l) {
			p.addError(forTok, "invalid left side in for-in/of loop")
			return nil
		}
	}

	p.nextToken()
	p.nextToken()
	precedence := LOWEST
	if of {
		precedence = COMMA
	}
	right := p.parseExpression(precedence)
	if right == nil || !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	p.nextToken()
	body := p.parseStatement()
	if body == nil {
		return nil
	}
	if of {
		return &ForOfStatement{Token: forTok, Await: await, Left: left, Right: right, Body: body}
	}
	return &ForInStatement{Token: forTok, Left: left, Right: right, Body: body}
}

func (p *Parser) parseWhileStatement() Statement {
	stmt := &WhileStatement{Token: p.curToken}
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil || !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Body = p.parseStatement()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseDoWhileStatement() Statement {
	stmt := &DoWhileStatement{Token: p.curToken}
	p.nextToken()
	stmt.Body = p.parseStatement()
	if stmt.Body == nil {
		return nil
	}
	if !p.expectPeek(lexer.WHILE) || !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil || !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

// statementEnds reports whether the statement may end before the peek token.
func (p *Parser) statementEnds() bool {
	return p.peekTokenIs(lexer.SEMICOLON) || p.peekTokenIs(lexer.RBRACE) ||
		p.peekTokenIs(lexer.EOF) || p.peekToken.NewlineBefore
}

func (p *Parser) parseReturnStatement() Statement {
	stmt := &ReturnStatement{Token: p.curToken}
	if !p.statementEnds() {
		p.nextToken()
		stmt.ReturnValue = p.parseExpression(LOWEST)
		if stmt.ReturnValue == nil {
			return nil
		}
	}
	if !p.consumeSemicolon() {
		return nil
	}
	return stmt
}

func (p *Parser) parseJumpStatement() Statement {
	tok := p.curToken
	var label *Identifier
	if p.peekTokenIs(lexer.IDENT) && !p.peekToken.NewlineBefore {
		p.nextToken()
		label = &Identifier{Token: p.curToken, Value: p.curToken.Literal}
	}
	if !p.consumeSemicolon() {
		return nil
	}
	if tok.Type == lexer.BREAK {
		return &BreakStatement{Token: tok, Label: label}
	}
	return &ContinueStatement{Token: tok, Label: label}
}

func (p *Parser) parseThrowStatement() Statement {
	stmt := &ThrowStatement{Token: p.curToken}
	if p.peekToken.NewlineBefore {
		p.addError(p.peekToken, "line break is not allowed after 'throw'")
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil || !p.consumeSemicolon() {
		return nil
	}
	return stmt
}

func (p *Parser) parseTryStatement() Statement {
	stmt := &TryStatement{Token: p.curToken}
	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	stmt.Block = p.parseBlockStatement()
	if stmt.Block == nil {
		return nil
	}

	if p.peekTokenIs(lexer.CATCH) {
		p.nextToken()
		clause := &CatchClause{Token: p.curToken}
		if p.peekTokenIs(lexer.LPAREN) {
			p.nextToken()
			p.nextToken()
			clause.Param = p.parseBindingTarget()
			if clause.Param == nil {
				return nil
			}
			if p.peekTokenIs(lexer.COLON) {
				p.nextToken()
				p.nextToken()
				clause.ParamType = p.parseType(TYPE_LOWEST)
				if clause.ParamType == nil {
					return nil
				}
			}
			if !p.expectPeek(lexer.RPAREN) {
				return nil
			}
		}
		if !p.expectPeek(lexer.LBRACE) {
			return nil
		}
		clause.Body = p.parseBlockStatement()
		if clause.Body == nil {
			return nil
		}
		stmt.Handler = clause
	}

	if p.peekTokenIs(lexer.FINALLY) {
		p.nextToken()
		if !p.expectPeek(lexer.LBRACE) {
			return nil
		}
		stmt.Finalizer = p.parseBlockStatement()
		if stmt.Finalizer == nil {
			return nil
		}
	}

	if stmt.Handler == nil && stmt.Finalizer == nil {
		p.addError(p.peekToken, "missing catch or finally after try")
		return nil
	}
	return stmt
}

func (p *Parser) parseSwitchStatement() Statement {
	stmt := &SwitchStatement{Token: p.curToken}
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Discriminant = p.parseExpression(LOWEST)
	if stmt.Discriminant == nil || !p.expectPeek(lexer.RPAREN) || !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	p.nextToken()

	seenDefault := false
	for !p.curTokenIs(lexer.RBRACE) {
		sc := &SwitchCase{Token: p.curToken, Consequent: []Statement{}}
		switch p.curToken.Type {
		case lexer.CASE:
			p.nextToken()
			sc.Test = p.parseExpression(LOWEST)
			if sc.Test == nil {
				return nil
			}
		case lexer.DEFAULT:
			if seenDefault {
				p.addError(p.curToken, "more than one default clause in switch statement")
				return nil
			}
			seenDefault = true
		default:
			p.addError(p.curToken, fmt.Sprintf("expected 'case' or 'default', got %s", describe(p.curToken)))
			return nil
		}
		if !p.expectPeek(lexer.COLON) {
			return nil
		}
		p.nextToken()

		for !p.curTokenIs(lexer.CASE) && !p.curTokenIs(lexer.DEFAULT) &&
			!p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
			before := len(p.errors)
			if s := p.parseStatement(); s != nil {
				sc.Consequent = append(sc.Consequent, s)
			}
			if len(p.errors) > before {
				return nil
			}
			p.nextToken()
		}
		stmt.Cases = append(stmt.Cases, sc)
		if p.curTokenIs(lexer.EOF) {
			p.addError(p.curToken, "expected '}' before end of input")
			return nil
		}
	}
	return stmt
}

func (p *Parser) parseLabeledStatement() Statement {
	stmt := &LabeledStatement{Token: p.curToken, Label: &Identifier{Token: p.curToken, Value: p.curToken.Literal}}
	p.nextToken()
	p.nextToken()
	stmt.Body = p.parseStatement()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

// --- Bindings ---

// parseBindingTarget parses an identifier, array pattern or object pattern
// starting at curToken.
func (p *Parser) parseBindingTarget() Pattern {
	switch p.curToken.Type {
	case lexer.IDENT:
		return &Identifier{Token: p.curToken, Value: p.curToken.Literal}
	case lexer.LBRACKET:
		return p.parseArrayPattern()
	case lexer.LBRACE:
		return p.parseObjectPattern()
	}
	p.addError(p.curToken, fmt.Sprintf("expected binding name, got %s", describe(p.curToken)))
	return nil
}

// parseBindingElement is a binding target with an optional default value.
func (p *Parser) parseBindingElement() Pattern {
	target := p.parseBindingTarget()
	if target == nil {
		return nil
	}
	if !p.peekTokenIs(lexer.ASSIGN) {
		return target
	}
	p.nextToken()
	ap := &AssignmentPattern{Token: p.curToken, Target: target}
	restore := p.allowIn()
	p.nextToken()
	ap.Default = p.parseExpression(COMMA)
	restore()
	if ap.Default == nil {
		return nil
	}
	return ap
}

func (p *Parser) parseArrayPattern() Pattern {
	pattern := &ArrayPattern{Token: p.curToken, Elements: []Pattern{}}
	for {
		if p.peekTokenIs(lexer.RBRACKET) {
			p.nextToken()
			return pattern
		}
		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			pattern.Elements = append(pattern.Elements, nil)
			continue
		}
		p.nextToken()
		if p.curTokenIs(lexer.SPREAD) {
			rest := &RestElement{Token: p.curToken}
			p.nextToken()
			rest.Target = p.parseBindingTarget()
			if rest.Target == nil || !p.expectPeek(lexer.RBRACKET) {
				return nil
			}
			pattern.Elements = append(pattern.Elements, rest)
			return pattern
		}
		el := p.parseBindingElement()
		if el == nil {
			return nil
		}
		pattern.Elements = append(pattern.Elements, el)
		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(lexer.RBRACKET) {
			return nil
		}
		return pattern
	}
}

func (p *Parser) parseObjectPattern() Pattern {
	pattern := &ObjectPattern{Token: p.curToken}
	for !p.peekTokenIs(lexer.RBRACE) {
		p.nextToken()
		if p.curTokenIs(lexer.SPREAD) {
			p.nextToken()
			pattern.Rest = p.parseBindingTarget()
			if pattern.Rest == nil || !p.expectPeek(lexer.RBRACE) {
				return nil
			}
			return pattern
		}

		prop := &PatternProperty{Token: p.curToken}
		if !p.parsePropertyKey(&prop.Key, &prop.Computed) {
			return nil
		}
		if p.peekTokenIs(lexer.COLON) {
			p.nextToken()
			p.nextToken()
			prop.Value = p.parseBindingElement()
			if prop.Value == nil {
				return nil
			}
		} else {
			ident, ok := prop.Key.(*Identifier)
			if !ok || prop.Computed || !p.curTokenIs(lexer.IDENT) {
				p.peekError(lexer.COLON)
				return nil
			}
			prop.Shorthand = true
			var value Pattern = &Identifier{Token: ident.Token, Value: ident.Value}
			if p.peekTokenIs(lexer.ASSIGN) {
				p.nextToken()
				ap := &AssignmentPattern{Token: p.curToken, Target: value}
				p.nextToken()
				ap.Default = p.parseExpression(COMMA)
				if ap.Default == nil {
					return nil
				}
				value = ap
			}
			prop.Value = value
		}
		pattern.Properties = append(pattern.Properties, prop)

		if !p.peekTokenIs(lexer.RBRACE) && !p.expectPeek(lexer.COMMA) {
			return nil
		}
	}
	p.nextToken()
	return pattern
}

// parseParameters parses a parenthesized parameter list with curToken at
// '(' and leaves curToken at ')'. It returns nil on error and an empty
// slice for `()`.
func (p *Parser) parseParameters() []*Parameter {
	defer p.allowIn()()
	params := []*Parameter{}

	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		return params
	}

	for {
		p.nextToken()
		param := &Parameter{Token: p.curToken}
		if p.curTokenIs(lexer.SPREAD) {
			param.Rest = true
			p.nextToken()
		}
		if p.curTokenIs(lexer.THIS) {
			p.addError(p.curToken, "'this' parameters are not supported in scripts")
			return nil
		}
		param.Target = p.parseBindingTarget()
		if param.Target == nil {
			return nil
		}
		if p.peekTokenIs(lexer.QUESTION) {
			p.nextToken()
			param.Optional = true
		}
		if p.peekTokenIs(lexer.COLON) {
			p.nextToken()
			p.nextToken()
			param.TypeAnnotation = p.parseType(TYPE_LOWEST)
			if param.TypeAnnotation == nil {
				return nil
			}
		}
		if p.peekTokenIs(lexer.ASSIGN) {
			p.nextToken()
			p.nextToken()
			param.Default = p.parseExpression(COMMA)
			if param.Default == nil {
				return nil
			}
		}
		params = append(params, param)

		if param.Rest || !p.peekTokenIs(lexer.COMMA) {
			break
		}
		p.nextToken()
		if p.peekTokenIs(lexer.RPAREN) {
			break
		}
	}

	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return params
}
