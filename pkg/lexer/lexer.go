package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Lexer holds the state of the scanner.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char's byte offset)
	readPosition int  // current reading position in input (byte offset after current char)
	ch           byte // current char under examination
	line         int  // current 1-based line number
	column       int  // current 1-based column number (position of l.position on l.line)

	prevType TokenType // last significant token, decides regex vs division
}

// LexerState is a snapshot of the scanner used for parser backtracking.
type LexerState struct {
	position     int
	readPosition int
	ch           byte
	line         int
	column       int
	prevType     TokenType
}

// NewLexer creates a new Lexer.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

// SaveState captures the scanner position, including line bookkeeping.
func (l *Lexer) SaveState() LexerState {
	return LexerState{
		position:     l.position,
		readPosition: l.readPosition,
		ch:           l.ch,
		line:         l.line,
		column:       l.column,
		prevType:     l.prevType,
	}
}

// RestoreState rewinds the scanner to a state returned by SaveState.
func (l *Lexer) RestoreState(s LexerState) {
	l.position = s.position
	l.readPosition = s.readPosition
	l.ch = s.ch
	l.line = s.line
	l.column = s.column
	l.prevType = s.prevType
}

// Input returns the text being scanned.
func (l *Lexer) Input() string { return l.input }

// readChar gives us the next character and advances our position in the input string.
// It also updates the line and column count.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// readRune advances past a whole UTF-8 sequence while counting it as one column.
func (l *Lexer) readRune() {
	_, size := utf8.DecodeRuneInString(l.input[l.position:])
	for i := 0; i < size; i++ {
		l.readChar()
	}
	l.column -= size - 1
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) currentRune() rune {
	if l.position >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.position:])
	return r
}

// skipTrivia consumes whitespace and comments. It reports whether a line
// terminator was crossed and whether a block comment was left unterminated.
func (l *Lexer) skipTrivia() (newline bool, unterminated bool) {
	for {
		switch {
		case l.ch == '\n' || l.ch == '\r':
			newline = true
			l.readChar()
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\v' || l.ch == '\f':
			l.readChar()
		case l.ch >= utf8.RuneSelf && isUnicodeSpace(l.currentRune()):
			if r := l.currentRune(); r == '\u2028' || r == '\u2029' {
				newline = true
			}
			l.readRune()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			for !(l.ch == '*' && l.peekChar() == '/') {
				if l.ch == 0 {
					return newline, true
				}
				if l.ch == '\n' {
					newline = true
				}
				l.readChar()
			}
			l.readChar()
			l.readChar()
		default:
			return newline, false
		}
	}
}

func isUnicodeSpace(r rune) bool {
	return r == '\u00A0' || r == '\uFEFF' || r == '\u2028' || r == '\u2029' || unicode.Is(unicode.Zs, r)
}

// NextToken scans the input and returns the next token.
func (l *Lexer) NextToken() Token {
	newline, unterminated := l.skipTrivia()

	startLine := l.line
	startCol := l.column
	startPos := l.position

	tok := Token{Line: startLine, Column: startCol, StartPos: startPos, NewlineBefore: newline}
	finish := func(t TokenType, literal string) Token {
		tok.Type = t
		tok.Literal = literal
		tok.EndPos = l.position
		if t != ILLEGAL {
			l.prevType = t
		}
		return tok
	}

	if unterminated {
		return finish(ILLEGAL, "Unterminated multiline comment")
	}

	switch {
	case l.ch == 0 && l.position >= len(l.input):
		return finish(EOF, "")
	case l.ch == '"' || l.ch == '\'':
		value, ok := l.readString(l.ch)
		if !ok {
			return finish(ILLEGAL, "Invalid string literal")
		}
		return finish(STRING, value)
	case l.ch == '`':
		raw, ok := l.readTemplate()
		if !ok {
			return finish(ILLEGAL, "Unterminated template literal")
		}
		return finish(TEMPLATE, raw)
	case l.ch == '#' && isIdentStart(l.peekRune()):
		l.readChar()
		name := l.readIdentifier()
		return finish(PRIVATE_IDENT, "#"+name)
	case isIdentStart(l.currentRune()):
		literal := l.readIdentifier()
		return finish(LookupIdent(literal), literal)
	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		return finish(NUMBER, l.readNumber())
	case l.ch == '/' && l.regexAllowed():
		literal, ok := l.readRegex()
		if !ok {
			return finish(ILLEGAL, literal)
		}
		return finish(REGEX_LITERAL, literal)
	}

	rest := l.input[l.position:]
	for _, op := range operators {
		lit := string(op)
		if !strings.HasPrefix(rest, lit) {
			continue
		}
		// `a?.5:b` is a conditional, not an optional chain.
		if op == OPTIONAL_CHAINING && len(rest) > 2 && isDigit(rest[2]) {
			continue
		}
		for range lit {
			l.readChar()
		}
		return finish(op, lit)
	}

	illegal := string(l.currentRune())
	if l.ch >= utf8.RuneSelf {
		l.readRune()
	} else {
		l.readChar()
	}
	return finish(ILLEGAL, illegal)
}

func (l *Lexer) peekRune() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// regexAllowed reports whether a '/' at the current position starts a
// regular expression rather than a division operator.
func (l *Lexer) regexAllowed() bool {
	switch l.prevType {
	case IDENT, PRIVATE_IDENT, NUMBER, STRING, TEMPLATE, REGEX_LITERAL,
		RPAREN, RBRACKET, RBRACE, THIS, TRUE, FALSE, NULL, INC, DEC:
		return false
	}
	return true
}

// readIdentifier reads an identifier and returns it in NFC form.
func (l *Lexer) readIdentifier() string {
	startPos := l.position
	ascii := true
	for {
		if l.ch < utf8.RuneSelf {
			if !isLetter(l.ch) && !isDigit(l.ch) {
				break
			}
			l.readChar()
			continue
		}
		if !isIdentPart(l.currentRune()) {
			break
		}
		ascii = false
		l.readRune()
	}
	literal := l.input[startPos:l.position]
	if !ascii {
		literal = norm.NFC.String(literal)
	}
	return literal
}

// readNumber reads a number literal (integer or float, various bases) and advances the lexer's position.
// Handles numeric separators '_' and a trailing BigInt 'n'.
func (l *Lexer) readNumber() string {
	startPos := l.position
	base := 10

	if l.ch == '0' {
		switch l.peekChar() {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		}
		if base != 10 {
			l.readChar()
			l.readChar()
		}
	}

	l.readDigits(base)
	if base == 10 {
		if l.ch == '.' && (isDigit(l.peekChar()) || !isIdentStart(rune(l.peekChar()))) {
			l.readChar()
			l.readDigits(10)
		}
		if l.ch == 'e' || l.ch == 'E' {
			save := l.SaveState()
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			if !isDigit(l.ch) {
				l.RestoreState(save)
			} else {
				l.readDigits(10)
			}
		}
	}
	if l.ch == 'n' {
		l.readChar()
	}
	return l.input[startPos:l.position]
}

// readDigits consumes digits of the given base. A separator is only taken
// when it sits between two digits.
func (l *Lexer) readDigits(base int) {
	for {
		if isDigitForBase(l.ch, base) {
			l.readChar()
			continue
		}
		if l.ch == '_' && l.position > 0 && isDigitForBase(l.input[l.position-1], base) && isDigitForBase(l.peekChar(), base) {
			l.readChar()
			continue
		}
		return
	}
}

// readString reads a string literal enclosed in the given quote character
// and returns its cooked value. It fails on an unterminated string, a raw line
// break, or a malformed escape.
func (l *Lexer) readString(quote byte) (string, bool) {
	var builder strings.Builder
	l.readChar()

	for {
		switch l.ch {
		case quote:
			l.readChar()
			return builder.String(), true
		case 0:
			if l.position >= len(l.input) {
				return "", false
			}
			builder.WriteByte(0)
		case '\n', '\r':
			return "", false
		case '\\':
			l.readChar()
			if !l.readEscape(&builder) {
				return "", false
			}
			continue
		default:
			builder.WriteByte(l.ch)
		}
		l.readChar()
	}
}

// readEscape decodes the escape sequence starting at the character after the
// backslash and leaves the lexer after it.
func (l *Lexer) readEscape(b *strings.Builder) bool {
	switch l.ch {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case '0':
		if isDigit(l.peekChar()) {
			return false
		}
		b.WriteByte(0)
	case '\r':
		// line continuation
		if l.peekChar() == '\n' {
			l.readChar()
		}
	case '\n':
	case 'x':
		l.readChar()
		r, ok := l.readHex(2)
		if !ok {
			return false
		}
		b.WriteRune(r)
		return true
	case 'u':
		l.readChar()
		var r rune
		var ok bool
		if l.ch == '{' {
			l.readChar()
			start := l.position
			for isHexDigit(l.ch) {
				l.readChar()
			}
			if l.ch != '}' || l.position == start || l.position-start > 6 {
				return false
			}
			r, ok = parseHex(l.input[start:l.position])
			l.readChar()
		} else {
			r, ok = l.readHex(4)
		}
		if !ok || r > unicode.MaxRune {
			return false
		}
		// Pair a high surrogate with a following \uXXXX low surrogate.
		if r >= 0xD800 && r <= 0xDBFF && l.ch == '\\' && l.peekChar() == 'u' {
			save := l.SaveState()
			l.readChar()
			l.readChar()
			if lo, ok := l.readHex(4); ok && lo >= 0xDC00 && lo <= 0xDFFF {
				r = (r-0xD800)<<10 + (lo - 0xDC00) + 0x10000
			} else {
				l.RestoreState(save)
			}
		}
		b.WriteRune(r)
		return true
	case 0:
		return false
	default:
		if l.ch >= utf8.RuneSelf {
			b.WriteRune(l.currentRune())
			l.readRune()
			return true
		}
		b.WriteByte(l.ch)
	}
	l.readChar()
	return true
}

func (l *Lexer) readHex(n int) (rune, bool) {
	start := l.position
	for i := 0; i < n; i++ {
		if !isHexDigit(l.ch) {
			return 0, false
		}
		l.readChar()
	}
	return parseHex(l.input[start:l.position])
}

func parseHex(s string) (rune, bool) {
	var r rune
	for i := 0; i < len(s); i++ {
		c := s[i]
		var d byte
		switch {
		case '0' <= c && c <= '9':
			d = c - '0'
		case 'a' <= c && c <= 'f':
			d = c - 'a' + 10
		case 'A' <= c && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, false
		}
		r = r<<4 | rune(d)
	}
	return r, true
}

// readTemplate consumes a template literal, including any nested
// substitutions, and returns the raw text between the backticks.
func (l *Lexer) readTemplate() (string, bool) {
	l.readChar()
	start := l.position
	for {
		switch {
		case l.ch == 0 && l.position >= len(l.input):
			return "", false
		case l.ch == '\\':
			l.readChar()
			if l.position >= len(l.input) {
				return "", false
			}
			l.readChar()
		case l.ch == '`':
			raw := l.input[start:l.position]
			l.readChar()
			return raw, true
		case l.ch == '$' && l.peekChar() == '{':
			l.readChar()
			l.readChar()
			if !l.skipSubstitution() {
				return "", false
			}
		default:
			l.readChar()
		}
	}
}

// skipSubstitution consumes the body of a ${...} up to and including the
// closing brace.
func (l *Lexer) skipSubstitution() bool {
	depth := 1
	for {
		switch {
		case l.ch == 0 && l.position >= len(l.input):
			return false
		case l.ch == '{':
			depth++
			l.readChar()
		case l.ch == '}':
			depth--
			l.readChar()
			if depth == 0 {
				return true
			}
		case l.ch == '"' || l.ch == '\'':
			if _, ok := l.readString(l.ch); !ok {
				return false
			}
		case l.ch == '`':
			if _, ok := l.readTemplate(); !ok {
				return false
			}
		default:
			l.readChar()
		}
	}
}

// SplitTemplate splits the raw body of a template literal into its text
// chunks and the source of each substitution. There is always one more chunk
// than substitutions.
func SplitTemplate(raw string) (quasis []string, exprs []string, ok bool) {
	l := NewLexer(raw)
	start := 0
	for l.position < len(raw) {
		switch {
		case l.ch == '\\':
			l.readChar()
			if l.position < len(raw) {
				l.readChar()
			}
		case l.ch == '$' && l.peekChar() == '{':
			quasis = append(quasis, raw[start:l.position])
			l.readChar()
			l.readChar()
			exprStart := l.position
			if !l.skipSubstitution() {
				return nil, nil, false
			}
			exprs = append(exprs, raw[exprStart:l.position-1])
			start = l.position
		default:
			l.readChar()
		}
	}
	quasis = append(quasis, raw[start:])
	return quasis, exprs, true
}

// readRegex reads a regular expression literal including its flags. On
// failure the returned string describes the problem.
func (l *Lexer) readRegex() (string, bool) {
	startPos := l.position
	l.readChar()
	inClass := false
	for {
		switch l.ch {
		case 0, '\n', '\r':
			if l.ch != 0 || l.position >= len(l.input) {
				return "Unterminated regular expression", false
			}
		case '\\':
			l.readChar()
			if l.ch == '\n' || (l.ch == 0 && l.position >= len(l.input)) {
				return "Unterminated regular expression", false
			}
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				l.readChar()
				seen := map[byte]bool{}
				for isLetter(l.ch) || isDigit(l.ch) {
					if !strings.ContainsRune("dgimsuyv", rune(l.ch)) || seen[l.ch] {
						l.readChar()
						return "Invalid regular expression flags", false
					}
					seen[l.ch] = true
					l.readChar()
				}
				return l.input[startPos:l.position], true
			}
		}
		l.readChar()
	}
}

// isLetter checks if the character may start an ASCII identifier.
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch == '$'
}

func isIdentStart(r rune) bool {
	if r < utf8.RuneSelf {
		return isLetter(byte(r))
	}
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

func isIdentPart(r rune) bool {
	if r < utf8.RuneSelf {
		return isLetter(byte(r)) || isDigit(byte(r))
	}
	return isIdentStart(r) || unicode.IsDigit(r) ||
		unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc) || r == '\u200C' || r == '\u200D'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return ('0' <= ch && ch <= '9') || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

// isDigitForBase checks if the character is a valid digit for the given base.
func isDigitForBase(ch byte, base int) bool {
	switch base {
	case 16:
		return isHexDigit(ch)
	case 10:
		return isDigit(ch)
	case 8:
		return '0' <= ch && ch <= '7'
	case 2:
		return ch == '0' || ch == '1'
	default:
		return false
	}
}
