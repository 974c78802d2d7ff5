package tape

import (
	"strings"
	"unicode"
)

// Lexer splits a tape script into tokens. Newlines are tokens, comments and
// other blanks are dropped.
type Lexer struct {
	src  []rune
	off  int
	line int
	col  int
}

// New returns a lexer positioned at the start of input.
func New(input string) *Lexer {
	return &Lexer{src: []rune(input), line: 1, col: 1}
}

func (l *Lexer) atEOF() bool { return l.off >= len(l.src) }

func (l *Lexer) peek(n int) rune {
	if l.off+n >= len(l.src) {
		return 0
	}
	return l.src[l.off+n]
}

func (l *Lexer) advance() rune {
	if l.atEOF() {
		return 0
	}
	r := l.src[l.off]
	l.off++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

// take consumes runes while ok holds and returns them.
func (l *Lexer) take(ok func(rune) bool) string {
	start := l.off
	for !l.atEOF() && ok(l.src[l.off]) {
		l.advance()
	}
	return string(l.src[start:l.off])
}

// NextToken returns the next token, TOKEN_EOF once input is exhausted.
func (l *Lexer) NextToken() Token {
	l.take(isBlank)
	if l.peek(0) == '#' {
		l.take(func(r rune) bool { return r != '\n' })
	}

	tok := Token{Line: l.line, Column: l.col}
	r := l.peek(0)
	switch {
	case l.atEOF():
		tok.Type = TOKEN_EOF
	case r == '\n':
		l.advance()
		tok.Type, tok.Literal = TOKEN_NEWLINE, "\n"
	case r == '@':
		l.advance()
		tok.Type, tok.Literal = TOKEN_AT, "@"
	case r == '"' || r == '\'':
		tok.Type, tok.Literal = TOKEN_STRING, l.quoted(r)
	case isDigit(r) || (r == '-' && isDigit(l.peek(1))):
		tok.Type, tok.Literal = l.number()
	case isIdent(r):
		tok.Literal = l.take(isIdent)
		tok.Type = LookupKeyword(tok.Literal)
	default:
		l.advance()
		tok.Type, tok.Literal = TOKEN_ILLEGAL, string(r)
	}
	return tok
}

var escapes = map[rune]rune{'n': '\n', 't': '\t', 'r': '\r'}

// quoted reads a string closed by q. An unterminated string runs to the end
// of input.
func (l *Lexer) quoted(q rune) string {
	var sb strings.Builder
	l.advance()
	for !l.atEOF() {
		r := l.advance()
		switch {
		case r == q:
			return sb.String()
		case r == '\\' && !l.atEOF():
			e := l.advance()
			if v, ok := escapes[e]; ok {
				e = v
			}
			sb.WriteRune(e)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// number reads a signed decimal. A unit suffix makes it a duration.
func (l *Lexer) number() (TokenType, string) {
	start := l.off
	if l.peek(0) == '-' {
		l.advance()
	}
	l.take(isDigit)
	if l.peek(0) == '.' && isDigit(l.peek(1)) {
		l.advance()
		l.take(isDigit)
	}
	typ := TOKEN_NUMBER
	if l.take(unicode.IsLetter) != "" {
		typ = TOKEN_DURATION
	}
	return typ, string(l.src[start:l.off])
}

func isBlank(r rune) bool { return r == ' ' || r == '\t' || r == '\r' }

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdent(r rune) bool { return unicode.IsLetter(r) || isDigit(r) || r == '_' }

// Tokenize lexes the whole input, ending with TOKEN_EOF.
func Tokenize(input string) []Token {
	l := New(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TOKEN_EOF {
			return tokens
		}
	}
}
