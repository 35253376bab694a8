package lexer

// TokenType represents the type of a token.
type TokenType string

// Token represents a lexical token.
type Token struct {
	Type     TokenType
	Literal  string // The actual text of the token (lexeme)
	Line     int    // 1-based line number where the token starts
	Column   int    // 1-based column number (rune index) where the token starts
	StartPos int    // 0-based byte offset where the token starts
	EndPos   int    // 0-based byte offset after the token ends

	// NewlineBefore is set when at least one line terminator separates this
	// token from the previous one. The parser uses it for semicolon insertion.
	NewlineBefore bool
}

const (
	// Special
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers + Literals
	IDENT         TokenType = "IDENT"
	PRIVATE_IDENT TokenType = "PRIVATE_IDENT" // #name
	NUMBER        TokenType = "NUMBER"
	STRING        TokenType = "STRING"
	TEMPLATE      TokenType = "TEMPLATE" // `raw ${expr} text`
	REGEX_LITERAL TokenType = "REGEX_LITERAL"

	// Operators
	ASSIGN      TokenType = "="
	PLUS        TokenType = "+"
	MINUS       TokenType = "-"
	BANG        TokenType = "!"
	ASTERISK    TokenType = "*"
	SLASH       TokenType = "/"
	PERCENT     TokenType = "%"
	EXPONENT    TokenType = "**"
	BITWISE_NOT TokenType = "~"
	BITWISE_AND TokenType = "&"
	BITWISE_XOR TokenType = "^"
	PIPE        TokenType = "|" // bitwise or, and union in type position
	LT          TokenType = "<"
	GT          TokenType = ">"
	LE          TokenType = "<="
	GE          TokenType = ">="
	EQ          TokenType = "=="
	NOT_EQ      TokenType = "!="

	STRICT_EQ     TokenType = "==="
	STRICT_NOT_EQ TokenType = "!=="

	LEFT_SHIFT           TokenType = "<<"
	RIGHT_SHIFT          TokenType = ">>"
	UNSIGNED_RIGHT_SHIFT TokenType = ">>>"

	LOGICAL_AND TokenType = "&&"
	LOGICAL_OR  TokenType = "||"
	COALESCE    TokenType = "??"

	INC TokenType = "++"
	DEC TokenType = "--"

	DOT               TokenType = "."
	SPREAD            TokenType = "..."
	OPTIONAL_CHAINING TokenType = "?."
	QUESTION          TokenType = "?"
	ARROW             TokenType = "=>"

	// Compound assignment
	PLUS_ASSIGN                 TokenType = "+="
	MINUS_ASSIGN                TokenType = "-="
	ASTERISK_ASSIGN             TokenType = "*="
	SLASH_ASSIGN                TokenType = "/="
	REMAINDER_ASSIGN            TokenType = "%="
	EXPONENT_ASSIGN             TokenType = "**="
	LOGICAL_AND_ASSIGN          TokenType = "&&="
	LOGICAL_OR_ASSIGN           TokenType = "||="
	COALESCE_ASSIGN             TokenType = "??="
	BITWISE_AND_ASSIGN          TokenType = "&="
	BITWISE_OR_ASSIGN           TokenType = "|="
	BITWISE_XOR_ASSIGN          TokenType = "^="
	LEFT_SHIFT_ASSIGN           TokenType = "<<="
	RIGHT_SHIFT_ASSIGN          TokenType = ">>="
	UNSIGNED_RIGHT_SHIFT_ASSIGN TokenType = ">>>="

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	COLON     TokenType = ":"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"
	AT        TokenType = "@"

	// Keywords
	FUNCTION   TokenType = "FUNCTION"
	LET        TokenType = "LET"
	CONST      TokenType = "CONST"
	VAR        TokenType = "VAR"
	TRUE       TokenType = "TRUE"
	FALSE      TokenType = "FALSE"
	NULL       TokenType = "NULL"
	IF         TokenType = "IF"
	ELSE       TokenType = "ELSE"
	RETURN     TokenType = "RETURN"
	WHILE      TokenType = "WHILE"
	DO         TokenType = "DO"
	FOR        TokenType = "FOR"
	IN         TokenType = "IN"
	BREAK      TokenType = "BREAK"
	CONTINUE   TokenType = "CONTINUE"
	SWITCH     TokenType = "SWITCH"
	CASE       TokenType = "CASE"
	DEFAULT    TokenType = "DEFAULT"
	NEW        TokenType = "NEW"
	DELETE     TokenType = "DELETE"
	TYPEOF     TokenType = "TYPEOF"
	VOID       TokenType = "VOID"
	INSTANCEOF TokenType = "INSTANCEOF"
	THIS       TokenType = "THIS"
	TRY        TokenType = "TRY"
	CATCH      TokenType = "CATCH"
	FINALLY    TokenType = "FINALLY"
	THROW      TokenType = "THROW"
	AWAIT      TokenType = "AWAIT"
	AS         TokenType = "AS"
	SATISFIES  TokenType = "SATISFIES"

	// Reserved words the parser rejects.
	CLASS  TokenType = "CLASS"
	ENUM   TokenType = "ENUM"
	IMPORT TokenType = "IMPORT"
	EXPORT TokenType = "EXPORT"
)

var keywords = map[string]TokenType{
	"function":   FUNCTION,
	"let":        LET,
	"const":      CONST,
	"var":        VAR,
	"true":       TRUE,
	"false":      FALSE,
	"null":       NULL,
	"if":         IF,
	"else":       ELSE,
	"return":     RETURN,
	"while":      WHILE,
	"do":         DO,
	"for":        FOR,
	"in":         IN,
	"break":      BREAK,
	"continue":   CONTINUE,
	"switch":     SWITCH,
	"case":       CASE,
	"default":    DEFAULT,
	"new":        NEW,
	"delete":     DELETE,
	"typeof":     TYPEOF,
	"void":       VOID,
	"instanceof": INSTANCEOF,
	"this":       THIS,
	"try":        TRY,
	"catch":      CATCH,
	"finally":    FINALLY,
	"throw":      THROW,
	"await":      AWAIT,
	"as":         AS,
	"satisfies":  SATISFIES,
	"class":      CLASS,
	"enum":       ENUM,
	"import":     IMPORT,
	"export":     EXPORT,
}

// LookupIdent checks the keywords table for an identifier.
func LookupIdent(ident string) TokenType {
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return IDENT
}

// IsKeyword reports whether t is a reserved word token. Keywords are valid
// property names after a dot and as object literal keys.
func IsKeyword(t TokenType) bool {
	for _, kw := range keywords {
		if kw == t {
			return true
		}
	}
	return false
}

// operators is ordered longest first so the scanner can take the first match.
var operators = []TokenType{
	UNSIGNED_RIGHT_SHIFT_ASSIGN,
	STRICT_EQ, STRICT_NOT_EQ, UNSIGNED_RIGHT_SHIFT, EXPONENT_ASSIGN, SPREAD,
	LEFT_SHIFT_ASSIGN, RIGHT_SHIFT_ASSIGN, LOGICAL_AND_ASSIGN, LOGICAL_OR_ASSIGN, COALESCE_ASSIGN,
	EQ, NOT_EQ, LE, GE, ARROW, INC, DEC, EXPONENT, LEFT_SHIFT, RIGHT_SHIFT,
	LOGICAL_AND, LOGICAL_OR, COALESCE, OPTIONAL_CHAINING,
	PLUS_ASSIGN, MINUS_ASSIGN, ASTERISK_ASSIGN, SLASH_ASSIGN, REMAINDER_ASSIGN,
	BITWISE_AND_ASSIGN, BITWISE_OR_ASSIGN, BITWISE_XOR_ASSIGN,
	ASSIGN, PLUS, MINUS, BANG, ASTERISK, SLASH, PERCENT, BITWISE_NOT, BITWISE_AND,
	BITWISE_XOR, PIPE, LT, GT, DOT, QUESTION,
	COMMA, SEMICOLON, COLON, LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET, AT,
}

// LookupOperator returns the operator token spelled exactly as lit.
func LookupOperator(lit string) (TokenType, bool) {
	for _, op := range operators {
		if string(op) == lit {
			return op, true
		}
	}
	return ILLEGAL, false
}
