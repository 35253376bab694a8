package parser

import (
	"fmt"

	"github.com/tomaswrobel/scrap-native/pkg/lexer"
)

var keywordTypes = map[string]bool{
	"number":    true,
	"string":    true,
	"boolean":   true,
	"any":       true,
	"unknown":   true,
	"never":     true,
	"undefined": true,
	"object":    true,
	"symbol":    true,
	"bigint":    true,
}

// parseType parses a type expression starting at curToken.
func (p *Parser) parseType(precedence int) TypeNode {
	prefix := p.typePrefixParseFns[p.curToken.Type]
	if prefix == nil {
		if p.curTokenIs(lexer.TYPEOF) {
			p.addError(p.curToken, "typeof types are not supported in scripts")
		} else {
			p.addError(p.curToken, fmt.Sprintf("expected type, got %s", describe(p.curToken)))
		}
		return nil
	}
	left := prefix()

	for left != nil && precedence < p.peekTypePrecedence() {
		// `T\n[...]` starts a new statement.
		if p.peekTokenIs(lexer.LBRACKET) && p.peekToken.NewlineBefore {
			break
		}
		infix := p.typeInfixParseFns[p.peekToken.Type]
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseTypeReference() TypeNode {
	if keywordTypes[p.curToken.Literal] && !p.peekTokenIs(lexer.DOT) {
		return &KeywordType{Token: p.curToken, Name: p.curToken.Literal}
	}

	ref := &TypeReference{Token: p.curToken}
	var name Node = &Identifier{Token: p.curToken, Value: p.curToken.Literal}
	for p.peekTokenIs(lexer.DOT) {
		p.nextToken()
		dot := p.curToken
		if !p.expectPeek(lexer.IDENT) {
			return nil
		}
		name = &QualifiedName{Token: dot, Left: name, Right: &Identifier{Token: p.curToken, Value: p.curToken.Literal}}
	}
	ref.Name = name

	if p.peekTokenIs(lexer.LT) {
		p.nextToken()
		args := p.parseTypeArguments()
		if args == nil {
			return nil
		}
		ref.TypeArguments = args
	}
	return ref
}

// parseTypeArguments expects curToken at '<' and leaves it at '>'.
func (p *Parser) parseTypeArguments() []TypeNode {
	args := []TypeNode{}
	for {
		p.nextToken()
		arg := p.parseType(TYPE_LOWEST)
		if arg == nil {
			return nil
		}
		args = append(args, arg)
		if !p.peekTokenIs(lexer.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeekGT() {
		return nil
	}
	return args
}

func (p *Parser) parseKeywordTypeToken() TypeNode {
	return &KeywordType{Token: p.curToken, Name: p.curToken.Literal}
}

func (p *Parser) parseLiteralType() TypeNode {
	lit := &LiteralType{Token: p.curToken}
	switch p.curToken.Type {
	case lexer.STRING:
		lit.Literal = p.parseStringLiteral()
	case lexer.NUMBER:
		lit.Literal = p.parseNumberLiteral()
	default:
		lit.Literal = p.parseBooleanLiteral()
	}
	return lit
}

func (p *Parser) parseNegativeLiteralType() TypeNode {
	tok := p.curToken
	if !p.expectPeek(lexer.NUMBER) {
		return nil
	}
	return &LiteralType{
		Token:   tok,
		Literal: &PrefixExpression{Token: tok, Operator: "-", Right: p.parseNumberLiteral()},
	}
}

func (p *Parser) parseParenthesizedOrFunctionType() TypeNode {
	tok := p.curToken
	isFunction := p.speculate(func() bool {
		return p.parseParameters() != nil && p.peekTokenIs(lexer.ARROW)
	})

	if isFunction {
		fn := &FunctionType{Token: tok}
		fn.Parameters = p.parseParameters()
		if fn.Parameters == nil || !p.expectPeek(lexer.ARROW) {
			return nil
		}
		p.nextToken()
		fn.ReturnType = p.parseType(TYPE_LOWEST)
		if fn.ReturnType == nil {
			return nil
		}
		return fn
	}

	p.nextToken()
	inner := p.parseType(TYPE_LOWEST)
	if inner == nil || !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return &ParenthesizedType{Token: tok, Type: inner}
}

func (p *Parser) parseTupleType() TypeNode {
	tuple := &TupleType{Token: p.curToken, Elements: []TypeNode{}}
	for !p.peekTokenIs(lexer.RBRACKET) {
		p.nextToken()
		el := p.parseType(TYPE_LOWEST)
		if el == nil {
			return nil
		}
		tuple.Elements = append(tuple.Elements, el)
		if !p.peekTokenIs(lexer.RBRACKET) && !p.expectPeek(lexer.COMMA) {
			return nil
		}
	}
	p.nextToken()
	return tuple
}

func (p *Parser) parseObjectType() TypeNode {
	obj := &ObjectType{Token: p.curToken}
	obj.Members = p.parseTypeMembers()
	if obj.Members == nil {
		return nil
	}
	return obj
}

// parseLeadingSeparatorType handles `| A | B` and `& A & B`.
func (p *Parser) parseLeadingSeparatorType() TypeNode {
	precedence := TYPE_UNION
	if p.curTokenIs(lexer.BITWISE_AND) {
		precedence = TYPE_INTERSECTION
	}
	p.nextToken()
	return p.parseType(precedence)
}

func (p *Parser) parseUnionType(left TypeNode) TypeNode {
	tok := p.curToken
	p.nextToken()
	right := p.parseType(TYPE_UNION)
	if right == nil {
		return nil
	}
	if u, ok := left.(*UnionType); ok {
		u.Types = append(u.Types, right)
		return u
	}
	return &UnionType{Token: tok, Types: []TypeNode{left, right}}
}

func (p *Parser) parseIntersectionType(left TypeNode) TypeNode {
	tok := p.curToken
	p.nextToken()
	right := p.parseType(TYPE_INTERSECTION)
	if right == nil {
		return nil
	}
	if i, ok := left.(*IntersectionType); ok {
		i.Types = append(i.Types, right)
		return i
	}
	return &IntersectionType{Token: tok, Types: []TypeNode{left, right}}
}

func (p *Parser) parseArrayType(element TypeNode) TypeNode {
	tok := p.curToken
	if !p.peekTokenIs(lexer.RBRACKET) {
		p.addError(tok, "indexed access types are not supported in scripts")
		return nil
	}
	p.nextToken()
	return &ArrayType{Token: tok, ElementType: element}
}

// --- Declarations ---

func (p *Parser) parseInterfaceDeclaration() Statement {
	decl := &InterfaceDeclaration{Token: p.curToken}
	p.nextToken()
	decl.Name = &Identifier{Token: p.curToken, Value: p.curToken.Literal}
	if p.peekTokenIs(lexer.LT) {
		p.addError(p.peekToken, "generic interfaces are not supported in scripts")
		return nil
	}

	if p.peekIsContextual("extends") {
		p.nextToken()
		for {
			if !p.expectPeek(lexer.IDENT) {
				return nil
			}
			base := p.parseTypeReference()
			if base == nil {
				return nil
			}
			decl.Extends = append(decl.Extends, base)
			if !p.peekTokenIs(lexer.COMMA) {
				break
			}
			p.nextToken()
		}
	}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	decl.Members = p.parseTypeMembers()
	if decl.Members == nil {
		return nil
	}
	return decl
}

func (p *Parser) parseTypeAliasStatement() Statement {
	stmt := &TypeAliasStatement{Token: p.curToken}
	p.nextToken()
	stmt.Name = &Identifier{Token: p.curToken, Value: p.curToken.Literal}
	if p.peekTokenIs(lexer.LT) {
		p.addError(p.peekToken, "generic type aliases are not supported in scripts")
		return nil
	}
	if !p.expectPeek(lexer.ASSIGN) {
		return nil
	}
	p.nextToken()
	stmt.Type = p.parseType(TYPE_LOWEST)
	if stmt.Type == nil || !p.consumeSemicolon() {
		return nil
	}
	return stmt
}

// parseTypeMembers parses `{ ... }` member lists shared by interfaces and
// object types. curToken starts at '{' and ends at '}'. It returns nil on
// error and an empty slice for `{}`.
func (p *Parser) parseTypeMembers() []InterfaceMember {
	members := []InterfaceMember{}
	for !p.peekTokenIs(lexer.RBRACE) {
		p.nextToken()
		member := p.parseTypeMember()
		if member == nil {
			return nil
		}
		members = append(members, member)

		if p.peekTokenIs(lexer.SEMICOLON) || p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			continue
		}
		if !p.peekTokenIs(lexer.RBRACE) && !p.peekToken.NewlineBefore {
			p.addError(p.peekToken, fmt.Sprintf("expected ';' or '}' after member, got %s", describe(p.peekToken)))
			return nil
		}
	}
	p.nextToken()
	return members
}

func (p *Parser) parseTypeMember() InterfaceMember {
	tok := p.curToken
	readonly := false
	if p.curIsContextual("readonly") && !p.peekToken.NewlineBefore &&
		(p.startsPropertyKey(p.peekToken) || p.peekTokenIs(lexer.LBRACKET)) {
		readonly = true
		p.nextToken()
	}

	if p.curTokenIs(lexer.LBRACKET) && p.isIndexSignature() {
		return p.parseIndexSignature(tok, readonly)
	}
	if p.curTokenIs(lexer.LPAREN) || p.curTokenIs(lexer.NEW) {
		p.addError(p.curToken, "call and construct signatures are not supported in scripts")
		return nil
	}

	var key Expression
	var computed bool
	if !p.parsePropertyKey(&key, &computed) {
		return nil
	}
	optional := false
	if p.peekTokenIs(lexer.QUESTION) {
		p.nextToken()
		optional = true
	}

	if p.peekTokenIs(lexer.LT) {
		p.addError(p.peekToken, "generic methods are not supported in scripts")
		return nil
	}
	if p.peekTokenIs(lexer.LPAREN) {
		method := &MethodSignature{Token: tok, Key: key, Computed: computed, Optional: optional}
		p.nextToken()
		method.Parameters = p.parseParameters()
		if method.Parameters == nil {
			return nil
		}
		if p.peekTokenIs(lexer.COLON) {
			p.nextToken()
			p.nextToken()
			method.ReturnType = p.parseType(TYPE_LOWEST)
			if method.ReturnType == nil {
				return nil
			}
		}
		return method
	}

	prop := &PropertySignature{Token: tok, Key: key, Computed: computed, Optional: optional, Readonly: readonly}
	if p.peekTokenIs(lexer.COLON) {
		p.nextToken()
		p.nextToken()
		prop.TypeAnnotation = p.parseType(TYPE_LOWEST)
		if prop.TypeAnnotation == nil {
			return nil
		}
	}
	return prop
}

// isIndexSignature looks past '[' for `name :`.
func (p *Parser) isIndexSignature() bool {
	if !p.peekTokenIs(lexer.IDENT) {
		return false
	}
	state := p.saveState()
	defer p.restoreState(state)
	p.nextToken()
	return p.peekTokenIs(lexer.COLON)
}

func (p *Parser) parseIndexSignature(tok lexer.Token, readonly bool) InterfaceMember {
	sig := &IndexSignature{Token: tok, Readonly: readonly}
	p.nextToken()
	sig.Param = &Identifier{Token: p.curToken, Value: p.curToken.Literal}
	p.nextToken()
	p.nextToken()
	sig.KeyType = p.parseType(TYPE_LOWEST)
	if sig.KeyType == nil || !p.expectPeek(lexer.RBRACKET) || !p.expectPeek(lexer.COLON) {
		return nil
	}
	p.nextToken()
	sig.ValueType = p.parseType(TYPE_LOWEST)
	if sig.ValueType == nil {
		return nil
	}
	return sig
}
