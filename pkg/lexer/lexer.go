package lexer

import (
	"fmt"
	"strings"

	"abrvalg/interpreter-go/pkg/token"
)

// Error reports a malformed literal or an unknown character.
type Error struct {
	Msg string
	Pos token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("lex error: %s at %s", e.Msg, e.Pos)
}

// IndentationError reports a dedent to a width that matches no open
// indentation level.
type IndentationError struct {
	Msg string
	Pos token.Position
}

func (e *IndentationError) Error() string {
	return fmt.Sprintf("indentation error: %s at %s", e.Msg, e.Pos)
}

// Lexer scans source text into a token sequence. Block structure is
// derived from leading whitespace: a stack of indentation widths turns
// width changes into INDENT and DEDENT tokens.
type Lexer struct {
	src         string
	pos         int
	line        int
	col         int
	indents     []int
	tokens      []token.Token
	atLineStart bool
}

// New prepares a lexer for the given source text. Windows line endings
// are normalized up front so the scanner only ever sees '\n'.
func New(src string) *Lexer {
	return &Lexer{
		src:         strings.ReplaceAll(src, "\r\n", "\n"),
		line:        1,
		col:         1,
		indents:     []int{0},
		atLineStart: true,
	}
}

// Tokenize scans the entire source, returning the token sequence
// terminated by EOF. The first malformed construct aborts scanning.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	for {
		if l.atLineStart {
			if err := l.handleLineStart(); err != nil {
				return nil, err
			}
		}
		if l.isAtEnd() {
			break
		}
		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}

	// A final line without a trailing newline still terminates its
	// statement.
	if n := len(l.tokens); n > 0 && l.tokens[n-1].Type != token.NEWLINE {
		l.add(token.NEWLINE, "", l.position())
	}
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.add(token.DEDENT, "", token.Position{Line: l.line, Column: 1})
	}
	l.add(token.EOF, "", l.position())
	return l.tokens, nil
}

// handleLineStart measures leading whitespace and maintains the
// indentation stack. Blank and comment-only lines are consumed whole
// and produce no tokens at all.
func (l *Lexer) handleLineStart() error {
	for {
		width := 0
		for !l.isAtEnd() {
			if c := l.peek(); c == ' ' || c == '\t' {
				l.advance()
				width++
				continue
			}
			break
		}
		if l.isAtEnd() {
			return nil
		}
		switch l.peek() {
		case '\n':
			l.advance()
			l.startLine()
			continue
		case '#':
			for !l.isAtEnd() && l.peek() != '\n' {
				l.advance()
			}
			continue
		}

		top := l.indents[len(l.indents)-1]
		switch {
		case width > top:
			l.indents = append(l.indents, width)
			l.add(token.INDENT, "", token.Position{Line: l.line, Column: 1})
		case width < top:
			for len(l.indents) > 1 && l.indents[len(l.indents)-1] > width {
				l.indents = l.indents[:len(l.indents)-1]
				l.add(token.DEDENT, "", token.Position{Line: l.line, Column: 1})
			}
			if l.indents[len(l.indents)-1] != width {
				return &IndentationError{
					Msg: "dedent does not match any outer indentation level",
					Pos: token.Position{Line: l.line, Column: width + 1},
				}
			}
		}
		l.atLineStart = false
		return nil
	}
}

func (l *Lexer) scanToken() error {
	pos := l.position()
	c := l.advance()
	switch {
	case c == '\n':
		l.add(token.NEWLINE, "", pos)
		l.startLine()
		l.atLineStart = true
		return nil
	case c == ' ' || c == '\t':
		return nil
	case c == '#':
		for !l.isAtEnd() && l.peek() != '\n' {
			l.advance()
		}
		return nil
	case isDigit(c):
		return l.scanNumber(pos)
	case isIdentStart(c):
		return l.scanIdent(pos)
	case c == '"' || c == '\'':
		return l.scanString(c, pos)
	}

	switch c {
	case '+':
		l.add(token.PLUS, "+", pos)
	case '-':
		l.add(token.MINUS, "-", pos)
	case '*':
		l.add(token.STAR, "*", pos)
	case '/':
		l.add(token.SLASH, "/", pos)
	case '%':
		l.add(token.PERCENT, "%", pos)
	case '=':
		if l.match('=') {
			l.add(token.EQ, "==", pos)
		} else {
			l.add(token.ASSIGN, "=", pos)
		}
	case '!':
		if l.match('=') {
			l.add(token.NEQ, "!=", pos)
		} else {
			return &Error{Msg: "unexpected character '!'", Pos: pos}
		}
	case '<':
		if l.match('=') {
			l.add(token.LTE, "<=", pos)
		} else {
			l.add(token.LT, "<", pos)
		}
	case '>':
		if l.match('=') {
			l.add(token.GTE, ">=", pos)
		} else {
			l.add(token.GT, ">", pos)
		}
	case '&':
		if l.match('&') {
			l.add(token.AND, "&&", pos)
		} else {
			return &Error{Msg: "unexpected character '&'", Pos: pos}
		}
	case '|':
		if l.match('|') {
			l.add(token.OR, "||", pos)
		} else {
			return &Error{Msg: "unexpected character '|'", Pos: pos}
		}
	case '.':
		if l.match('.') {
			if l.match('.') {
				l.add(token.RANGEEQ, "...", pos)
			} else {
				l.add(token.RANGE, "..", pos)
			}
		} else {
			return &Error{Msg: "unexpected character '.'", Pos: pos}
		}
	case '(':
		l.add(token.LPAREN, "(", pos)
	case ')':
		l.add(token.RPAREN, ")", pos)
	case '[':
		l.add(token.LBRACKET, "[", pos)
	case ']':
		l.add(token.RBRACKET, "]", pos)
	case '{':
		l.add(token.LBRACE, "{", pos)
	case '}':
		l.add(token.RBRACE, "}", pos)
	case ':':
		l.add(token.COLON, ":", pos)
	case ',':
		l.add(token.COMMA, ",", pos)
	default:
		return &Error{Msg: fmt.Sprintf("unexpected character %q", c), Pos: pos}
	}
	return nil
}

// scanNumber accepts digits with an optional fractional part. A '.'
// followed by anything but a digit is left alone so that range
// operators like "1..5" lex as NUMBER RANGE NUMBER.
func (l *Lexer) scanNumber(pos token.Position) error {
	start := l.pos - 1
	for !l.isAtEnd() && isDigit(l.peek()) {
		l.advance()
	}
	if !l.isAtEnd() && l.peek() == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
		l.advance()
		for !l.isAtEnd() && isDigit(l.peek()) {
			l.advance()
		}
	}
	l.add(token.NUMBER, l.src[start:l.pos], pos)
	return nil
}

func (l *Lexer) scanIdent(pos token.Position) error {
	start := l.pos - 1
	for !l.isAtEnd() && isIdentPart(l.peek()) {
		l.advance()
	}
	name := l.src[start:l.pos]
	l.add(token.LookupIdent(name), name, pos)
	return nil
}

var escapes = map[byte]byte{
	'r':  '\r',
	'n':  '\n',
	't':  '\t',
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
}

func (l *Lexer) scanString(quote byte, pos token.Position) error {
	var b strings.Builder
	for {
		if l.isAtEnd() || l.peek() == '\n' {
			return &Error{Msg: "unterminated string", Pos: pos}
		}
		c := l.advance()
		if c == quote {
			l.add(token.STRING, b.String(), pos)
			return nil
		}
		if c == '\\' {
			if l.isAtEnd() {
				return &Error{Msg: "unterminated string", Pos: pos}
			}
			e := l.advance()
			decoded, ok := escapes[e]
			if !ok {
				return &Error{
					Msg: fmt.Sprintf("unknown escape character %q", e),
					Pos: token.Position{Line: l.line, Column: l.col - 2},
				}
			}
			b.WriteByte(decoded)
			continue
		}
		b.WriteByte(c)
	}
}

func (l *Lexer) add(t token.Type, literal string, pos token.Position) {
	l.tokens = append(l.tokens, token.Token{Type: t, Literal: literal, Pos: pos})
}

func (l *Lexer) position() token.Position {
	return token.Position{Line: l.line, Column: l.col}
}

func (l *Lexer) startLine() {
	l.line++
	l.col = 1
}

func (l *Lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c != '\n' {
		l.col++
	}
	return c
}

func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.src[l.pos] != expected {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) peek() byte {
	return l.src[l.pos]
}

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.src)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
