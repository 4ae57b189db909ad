package parser

import (
	"fmt"

	"abrvalg/interpreter-go/pkg/ast"
	"abrvalg/interpreter-go/pkg/token"
)

// SyntaxError reports an unexpected token for the grammar production
// being parsed. The first one aborts parsing; there is no recovery.
type SyntaxError struct {
	Msg string
	Pos token.Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s at %s", e.Msg, e.Pos)
}

// Operator precedence, lowest to highest. Ranges sit between the
// relational and additive levels.
const (
	precLowest = iota
	precOr
	precAnd
	precEquality
	precRelational
	precRange
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
)

var precedences = map[token.Type]int{
	token.OR:       precOr,
	token.AND:      precAnd,
	token.EQ:       precEquality,
	token.NEQ:      precEquality,
	token.LT:       precRelational,
	token.LTE:      precRelational,
	token.GT:       precRelational,
	token.GTE:      precRelational,
	token.RANGE:    precRange,
	token.RANGEEQ:  precRange,
	token.PLUS:     precAdditive,
	token.MINUS:    precAdditive,
	token.STAR:     precMultiplicative,
	token.SLASH:    precMultiplicative,
	token.PERCENT:  precMultiplicative,
	token.LPAREN:   precPostfix,
	token.LBRACKET: precPostfix,
}

type scopeKind int

const (
	scopeFunction scopeKind = iota
	scopeLoop
)

type (
	prefixFn func() (ast.Expression, error)
	infixFn  func(ast.Expression) (ast.Expression, error)
)

// Parser consumes a token sequence and produces a Program. Statement
// parsing dispatches on the leading keyword; expressions use Pratt
// parsing over the precedence table above.
type Parser struct {
	tokens []token.Token
	pos    int

	// scopes tracks enclosing function and loop bodies so that
	// return/break/continue placement can be rejected at parse time.
	scopes []scopeKind

	prefixFns map[token.Type]prefixFn
	infixFns  map[token.Type]infixFn
}

// New builds a parser over an already-tokenized source. The sequence
// must be EOF-terminated, as produced by lexer.Tokenize.
func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens}

	p.prefixFns = map[token.Type]prefixFn{
		token.NUMBER:   p.parseNumber,
		token.STRING:   p.parseString,
		token.TRUE:     p.parseBoolean,
		token.FALSE:    p.parseBoolean,
		token.NONE:     p.parseNone,
		token.IDENT:    p.parseIdentifier,
		token.MINUS:    p.parseUnary,
		token.NOT:      p.parseUnary,
		token.LPAREN:   p.parseGroup,
		token.LBRACKET: p.parseList,
		token.LBRACE:   p.parseMap,
	}
	p.infixFns = map[token.Type]infixFn{
		token.OR:       p.parseBinary,
		token.AND:      p.parseBinary,
		token.EQ:       p.parseBinary,
		token.NEQ:      p.parseBinary,
		token.LT:       p.parseBinary,
		token.LTE:      p.parseBinary,
		token.GT:       p.parseBinary,
		token.GTE:      p.parseBinary,
		token.RANGE:    p.parseRange,
		token.RANGEEQ:  p.parseRange,
		token.PLUS:     p.parseBinary,
		token.MINUS:    p.parseBinary,
		token.STAR:     p.parseBinary,
		token.SLASH:    p.parseBinary,
		token.PERCENT:  p.parseBinary,
		token.LPAREN:   p.parseCall,
		token.LBRACKET: p.parseIndexOrSlice,
	}
	return p
}

// ParseProgram parses the whole token sequence into a Program.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := ast.NewProgram(nil)
	if len(p.tokens) > 0 {
		program.Pos = p.tokens[0].Pos
	}
	for p.cur().Type != token.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
	}
	return program, nil
}

// Token cursor

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) next() token.Token {
	tok := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(t token.Type) (token.Token, error) {
	if p.cur().Type != t {
		return token.Token{}, p.unexpected(t.String())
	}
	return p.next(), nil
}

// unexpected builds the standard "expected X, found Y" SyntaxError at
// the current token.
func (p *Parser) unexpected(expected string) error {
	found := p.cur()
	return &SyntaxError{
		Msg: fmt.Sprintf("expected %s, found %s", expected, found.Type),
		Pos: found.Pos,
	}
}

func (p *Parser) errorAt(pos token.Position, format string, args ...any) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Pos: pos}
}

// Scope tracking

func (p *Parser) enterScope(kind scopeKind) {
	p.scopes = append(p.scopes, kind)
}

func (p *Parser) leaveScope() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

func (p *Parser) inFunction() bool {
	for _, kind := range p.scopes {
		if kind == scopeFunction {
			return true
		}
	}
	return false
}

func (p *Parser) inLoop() bool {
	return len(p.scopes) > 0 && p.scopes[len(p.scopes)-1] == scopeLoop
}
