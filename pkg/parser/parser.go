package parser

import (
	"fmt"
	"strings"

	"github.com/tomaswrobel/scrap-native/pkg/errors"
	"github.com/tomaswrobel/scrap-native/pkg/lexer"
	"github.com/tomaswrobel/scrap-native/pkg/source"
)

// Precedence levels for VALUE expressions, lowest first.
const (
	_ int = iota
	LOWEST
	COMMA       // ,
	ASSIGNMENT  // = += -= ...
	TERNARY     // ?:
	COALESCE    // ??
	LOGICAL_OR  // ||
	LOGICAL_AND // &&
	BITWISE_OR  // |
	BITWISE_XOR // ^
	BITWISE_AND // &
	EQUALS      // == != === !==
	LESSGREATER // < > <= >= instanceof in as satisfies
	SHIFT       // << >> >>>
	SUM         // + -
	PRODUCT     // * / %
	POWER       // ** (right associative)
	PREFIX      // -X !X typeof X await X
	POSTFIX     // X++ X-- X!
	CALL        // f(X)
	MEMBER      // a.b a[b] a?.b
)

// Precedence levels for TYPE expressions.
const (
	_ int = iota
	TYPE_LOWEST
	TYPE_UNION        // |
	TYPE_INTERSECTION // &
	TYPE_ARRAY        // T[]
)

var precedences = map[lexer.TokenType]int{
	lexer.COMMA: COMMA,

	lexer.ASSIGN:                      ASSIGNMENT,
	lexer.PLUS_ASSIGN:                 ASSIGNMENT,
	lexer.MINUS_ASSIGN:                ASSIGNMENT,
	lexer.ASTERISK_ASSIGN:             ASSIGNMENT,
	lexer.SLASH_ASSIGN:                ASSIGNMENT,
	lexer.REMAINDER_ASSIGN:            ASSIGNMENT,
	lexer.EXPONENT_ASSIGN:             ASSIGNMENT,
	lexer.LOGICAL_AND_ASSIGN:          ASSIGNMENT,
	lexer.LOGICAL_OR_ASSIGN:           ASSIGNMENT,
	lexer.COALESCE_ASSIGN:             ASSIGNMENT,
	lexer.BITWISE_AND_ASSIGN:          ASSIGNMENT,
	lexer.BITWISE_OR_ASSIGN:           ASSIGNMENT,
	lexer.BITWISE_XOR_ASSIGN:          ASSIGNMENT,
	lexer.LEFT_SHIFT_ASSIGN:           ASSIGNMENT,
	lexer.RIGHT_SHIFT_ASSIGN:          ASSIGNMENT,
	lexer.UNSIGNED_RIGHT_SHIFT_ASSIGN: ASSIGNMENT,

	lexer.QUESTION:    TERNARY,
	lexer.COALESCE:    COALESCE,
	lexer.LOGICAL_OR:  LOGICAL_OR,
	lexer.LOGICAL_AND: LOGICAL_AND,
	lexer.PIPE:        BITWISE_OR,
	lexer.BITWISE_XOR: BITWISE_XOR,
	lexer.BITWISE_AND: BITWISE_AND,

	lexer.EQ:            EQUALS,
	lexer.NOT_EQ:        EQUALS,
	lexer.STRICT_EQ:     EQUALS,
	lexer.STRICT_NOT_EQ: EQUALS,

	lexer.LT:         LESSGREATER,
	lexer.GT:         LESSGREATER,
	lexer.LE:         LESSGREATER,
	lexer.GE:         LESSGREATER,
	lexer.INSTANCEOF: LESSGREATER,
	lexer.IN:         LESSGREATER,
	lexer.AS:         LESSGREATER,
	lexer.SATISFIES:  LESSGREATER,

	lexer.LEFT_SHIFT:           SHIFT,
	lexer.RIGHT_SHIFT:          SHIFT,
	lexer.UNSIGNED_RIGHT_SHIFT: SHIFT,

	lexer.PLUS:     SUM,
	lexer.MINUS:    SUM,
	lexer.ASTERISK: PRODUCT,
	lexer.SLASH:    PRODUCT,
	lexer.PERCENT:  PRODUCT,
	lexer.EXPONENT: POWER,

	lexer.INC:  POSTFIX,
	lexer.DEC:  POSTFIX,
	lexer.BANG: POSTFIX, // non-null assertion

	lexer.LPAREN:            CALL,
	lexer.TEMPLATE:          CALL,
	lexer.LBRACKET:          MEMBER,
	lexer.DOT:               MEMBER,
	lexer.OPTIONAL_CHAINING: MEMBER,
}

var typePrecedences = map[lexer.TokenType]int{
	lexer.PIPE:        TYPE_UNION,
	lexer.BITWISE_AND: TYPE_INTERSECTION,
	lexer.LBRACKET:    TYPE_ARRAY,
}

type (
	prefixParseFn     func() Expression
	infixParseFn      func(Expression) Expression
	prefixTypeParseFn func() TypeNode
	infixTypeParseFn  func(TypeNode) TypeNode
)

// Parser is a Pratt parser for the TypeScript script subset.
type Parser struct {
	l      *lexer.Lexer
	source *source.SourceFile
	errors []errors.ScriptError

	curToken  lexer.Token
	peekToken lexer.Token

	prefixParseFns     map[lexer.TokenType]prefixParseFn
	infixParseFns      map[lexer.TokenType]infixParseFn
	typePrefixParseFns map[lexer.TokenType]prefixTypeParseFn
	typeInfixParseFns  map[lexer.TokenType]infixTypeParseFn

	// noIn suppresses `in` as a binary operator inside a for-statement head.
	noIn bool
}

// NewParser creates a new Parser.
func NewParser(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:      l,
		errors: []errors.ScriptError{},
	}

	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.IDENT:         p.parseIdentifier,
		lexer.NUMBER:        p.parseNumberLiteral,
		lexer.STRING:        p.parseStringLiteral,
		lexer.TEMPLATE:      p.parseTemplateLiteral,
		lexer.REGEX_LITERAL: p.parseRegexLiteral,
		lexer.TRUE:          p.parseBooleanLiteral,
		lexer.FALSE:         p.parseBooleanLiteral,
		lexer.NULL:          p.parseNullLiteral,
		lexer.THIS:          p.parseThisExpression,
		lexer.LPAREN:        p.parseGroupedExpression,
		lexer.LBRACKET:      p.parseArrayLiteral,
		lexer.LBRACE:        p.parseObjectLiteral,
		lexer.FUNCTION:      p.parseFunctionExpression,
		lexer.NEW:           p.parseNewExpression,
		lexer.AWAIT:         p.parseAwaitExpression,
		lexer.BANG:          p.parsePrefixExpression,
		lexer.MINUS:         p.parsePrefixExpression,
		lexer.PLUS:          p.parsePrefixExpression,
		lexer.BITWISE_NOT:   p.parsePrefixExpression,
		lexer.TYPEOF:        p.parsePrefixExpression,
		lexer.VOID:          p.parsePrefixExpression,
		lexer.DELETE:        p.parsePrefixExpression,
		lexer.INC:           p.parsePrefixUpdate,
		lexer.DEC:           p.parsePrefixUpdate,
	}

	p.infixParseFns = make(map[lexer.TokenType]infixParseFn)
	for tok, prec := range precedences {
		switch prec {
		case ASSIGNMENT:
			p.infixParseFns[tok] = p.parseAssignmentExpression
		case COALESCE, LOGICAL_OR, LOGICAL_AND, BITWISE_OR, BITWISE_XOR, BITWISE_AND,
			EQUALS, SHIFT, SUM, PRODUCT:
			p.infixParseFns[tok] = p.parseInfixExpression
		}
	}
	p.infixParseFns[lexer.LT] = p.parseInfixExpression
	p.infixParseFns[lexer.GT] = p.parseInfixExpression
	p.infixParseFns[lexer.LE] = p.parseInfixExpression
	p.infixParseFns[lexer.GE] = p.parseInfixExpression
	p.infixParseFns[lexer.INSTANCEOF] = p.parseInfixExpression
	p.infixParseFns[lexer.IN] = p.parseInfixExpression
	p.infixParseFns[lexer.EXPONENT] = p.parseExponentExpression
	p.infixParseFns[lexer.AS] = p.parseAsExpression
	p.infixParseFns[lexer.SATISFIES] = p.parseAsExpression
	p.infixParseFns[lexer.COMMA] = p.parseSequenceExpression
	p.infixParseFns[lexer.QUESTION] = p.parseTernaryExpression
	p.infixParseFns[lexer.INC] = p.parsePostfixUpdate
	p.infixParseFns[lexer.DEC] = p.parsePostfixUpdate
	p.infixParseFns[lexer.BANG] = p.parseNonNullExpression
	p.infixParseFns[lexer.LPAREN] = p.parseCallExpression
	p.infixParseFns[lexer.TEMPLATE] = p.parseTaggedTemplate
	p.infixParseFns[lexer.LBRACKET] = p.parseIndexExpression
	p.infixParseFns[lexer.DOT] = p.parseMemberExpression
	p.infixParseFns[lexer.OPTIONAL_CHAINING] = p.parseOptionalChain

	p.typePrefixParseFns = map[lexer.TokenType]prefixTypeParseFn{
		lexer.IDENT:       p.parseTypeReference,
		lexer.VOID:        p.parseKeywordTypeToken,
		lexer.NULL:        p.parseKeywordTypeToken,
		lexer.STRING:      p.parseLiteralType,
		lexer.NUMBER:      p.parseLiteralType,
		lexer.TRUE:        p.parseLiteralType,
		lexer.FALSE:       p.parseLiteralType,
		lexer.MINUS:       p.parseNegativeLiteralType,
		lexer.LPAREN:      p.parseParenthesizedOrFunctionType,
		lexer.LBRACKET:    p.parseTupleType,
		lexer.LBRACE:      p.parseObjectType,
		lexer.PIPE:        p.parseLeadingSeparatorType,
		lexer.BITWISE_AND: p.parseLeadingSeparatorType,
	}
	p.typeInfixParseFns = map[lexer.TokenType]infixTypeParseFn{
		lexer.PIPE:        p.parseUnionType,
		lexer.BITWISE_AND: p.parseIntersectionType,
		lexer.LBRACKET:    p.parseArrayType,
	}

	p.nextToken()
	p.nextToken()

	return p
}

// SetSource attaches the file that positions in errors refer to.
func (p *Parser) SetSource(sf *source.SourceFile) {
	p.source = sf
}

// ParseSource parses a whole source file.
func ParseSource(sf *source.SourceFile) (*Program, []errors.ScriptError) {
	p := NewParser(lexer.NewLexer(sf.Content))
	p.SetSource(sf)
	return p.ParseProgram()
}

// Errors returns the list of parsing errors.
func (p *Parser) Errors() []errors.ScriptError {
	return p.errors
}

// nextToken advances the current and peek tokens.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// ParseProgram parses the entire input and returns the root Program node and any errors.
func (p *Parser) ParseProgram() (*Program, []errors.ScriptError) {
	program := &Program{Statements: []Statement{}}

	for !p.curTokenIs(lexer.EOF) {
		before := len(p.errors)
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		if len(p.errors) > before {
			p.synchronize()
		}
		p.nextToken()
	}

	return program, p.errors
}

// synchronize skips the remainder of a broken statement so that the next
// statement gets a fair parse.
func (p *Parser) synchronize() {
	for !p.curTokenIs(lexer.EOF) && !p.curTokenIs(lexer.SEMICOLON) &&
		!p.peekTokenIs(lexer.RBRACE) && !p.peekTokenIs(lexer.EOF) && !p.peekToken.NewlineBefore {
		p.nextToken()
	}
}

// --- Backtracking ---

type parserState struct {
	lex      lexer.LexerState
	cur      lexer.Token
	peek     lexer.Token
	errCount int
	noIn     bool
}

func (p *Parser) saveState() parserState {
	return parserState{
		lex:      p.l.SaveState(),
		cur:      p.curToken,
		peek:     p.peekToken,
		errCount: len(p.errors),
		noIn:     p.noIn,
	}
}

func (p *Parser) restoreState(s parserState) {
	p.l.RestoreState(s.lex)
	p.curToken = s.cur
	p.peekToken = s.peek
	p.errors = p.errors[:s.errCount]
	p.noIn = s.noIn
}

// speculate runs fn and rewinds the parser afterwards. It reports whether fn
// succeeded without recording any error.
func (p *Parser) speculate(fn func() bool) bool {
	state := p.saveState()
	ok := fn() && len(p.errors) == state.errCount
	p.restoreState(state)
	return ok
}

// allowIn re-enables the `in` operator for a nested context and returns the
// function that restores the previous setting.
func (p *Parser) allowIn() func() {
	saved := p.noIn
	p.noIn = false
	return func() { p.noIn = saved }
}

// --- Token helpers ---

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t lexer.TokenType) bool {
	return p.peekToken.Type == t
}

// peekIsContextual reports whether the peek token is the identifier word.
func (p *Parser) peekIsContextual(word string) bool {
	return p.peekToken.Type == lexer.IDENT && p.peekToken.Literal == word
}

func (p *Parser) curIsContextual(word string) bool {
	return p.curToken.Type == lexer.IDENT && p.curToken.Literal == word
}

func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

// expectPeekGT is like expectPeek(GT) but splits >>, >>>, >= and friends so
// that nested type arguments close correctly.
func (p *Parser) expectPeekGT() bool {
	tok := p.peekToken
	switch tok.Type {
	case lexer.GT:
		p.nextToken()
		return true
	case lexer.RIGHT_SHIFT, lexer.UNSIGNED_RIGHT_SHIFT, lexer.GE,
		lexer.RIGHT_SHIFT_ASSIGN, lexer.UNSIGNED_RIGHT_SHIFT_ASSIGN:
		rest := tok.Literal[1:]
		restType, _ := lexer.LookupOperator(rest)
		p.curToken = lexer.Token{
			Type: lexer.GT, Literal: ">",
			Line: tok.Line, Column: tok.Column, StartPos: tok.StartPos, EndPos: tok.StartPos + 1,
			NewlineBefore: tok.NewlineBefore,
		}
		p.peekToken = lexer.Token{
			Type: restType, Literal: rest,
			Line: tok.Line, Column: tok.Column + 1, StartPos: tok.StartPos + 1, EndPos: tok.EndPos,
		}
		return true
	}
	p.peekError(lexer.GT)
	return false
}

// isPropertyName reports whether a token may name a property: identifiers
// and every reserved word.
func isPropertyName(t lexer.TokenType) bool {
	return t == lexer.IDENT || lexer.IsKeyword(t)
}

// consumeSemicolon finishes a statement. A semicolon may be omitted before a
// line break, a closing brace or the end of input.
func (p *Parser) consumeSemicolon() bool {
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		return true
	}
	if p.peekTokenIs(lexer.RBRACE) || p.peekTokenIs(lexer.EOF) || p.peekToken.NewlineBefore {
		return true
	}
	p.addError(p.peekToken, fmt.Sprintf("expected ';' but found %s", describe(p.peekToken)))
	return false
}

// --- Error Handling ---

func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.EOF:
		return "end of input"
	case lexer.ILLEGAL:
		return tok.Literal
	}
	return fmt.Sprintf("'%s'", tok.Literal)
}

func (p *Parser) peekError(t lexer.TokenType) {
	msg := fmt.Sprintf("expected '%s', got %s instead", tokenDisplay(t), describe(p.peekToken))
	p.addError(p.peekToken, msg)
}

func tokenDisplay(t lexer.TokenType) string {
	if t == lexer.IDENT {
		return "identifier"
	}
	if lexer.IsKeyword(t) {
		return strings.ToLower(string(t))
	}
	return string(t)
}

func (p *Parser) noPrefixParseFnError(tok lexer.Token) {
	switch tok.Type {
	case lexer.ILLEGAL:
		p.addError(tok, tok.Literal)
	case lexer.CLASS, lexer.ENUM, lexer.IMPORT, lexer.EXPORT, lexer.AT:
		p.unsupported(tok)
	default:
		p.addError(tok, fmt.Sprintf("unexpected %s", describe(tok)))
	}
}

func (p *Parser) unsupported(tok lexer.Token) {
	p.addError(tok, fmt.Sprintf("%s is not supported in scripts", describe(tok)))
}

// addError creates a SyntaxError and appends it to the parser's error list.
func (p *Parser) addError(tok lexer.Token, msg string) {
	const maxErrors = 100
	if len(p.errors) > maxErrors {
		return
	}
	if len(p.errors) == maxErrors {
		msg = fmt.Sprintf("too many errors (limit: %d), stopping parser", maxErrors)
	}
	p.errors = append(p.errors, &errors.SyntaxError{
		Position: errors.Position{
			Line:     tok.Line,
			Column:   tok.Column,
			StartPos: tok.StartPos,
			EndPos:   tok.EndPos,
			Source:   p.source,
		},
		Msg: msg,
	})
}

// --- Precedence Helpers ---

func (p *Parser) peekPrecedence() int {
	tok := p.peekToken
	switch tok.Type {
	case lexer.INC, lexer.DEC, lexer.BANG, lexer.AS, lexer.SATISFIES:
		if tok.NewlineBefore {
			return LOWEST
		}
	case lexer.IN:
		if p.noIn {
			return LOWEST
		}
	}
	if prec, ok := precedences[tok.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) peekTypePrecedence() int {
	if prec, ok := typePrecedences[p.peekToken.Type]; ok {
		return prec
	}
	return TYPE_LOWEST
}
