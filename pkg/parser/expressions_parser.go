package parser

import (
	"strconv"
	"strings"

	"abrvalg/interpreter-go/pkg/ast"
	"abrvalg/interpreter-go/pkg/token"
)

func (p *Parser) parseExpression(minPrec int) (ast.Expression, error) {
	prefix := p.prefixFns[p.cur().Type]
	if prefix == nil {
		return nil, p.unexpected("expression")
	}
	left, err := prefix()
	if err != nil {
		return nil, err
	}
	for {
		prec, ok := precedences[p.cur().Type]
		if !ok || prec <= minPrec {
			return left, nil
		}
		infix := p.infixFns[p.cur().Type]
		if infix == nil {
			return left, nil
		}
		left, err = infix(left)
		if err != nil {
			return nil, err
		}
	}
}

// Prefix parselets

func (p *Parser) parseNumber() (ast.Expression, error) {
	tok := p.next()
	if strings.Contains(tok.Literal, ".") {
		val, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, p.errorAt(tok.Pos, "invalid number literal %q", tok.Literal)
		}
		node := ast.NewFloatLiteral(val)
		node.Pos = tok.Pos
		return node, nil
	}
	val, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		return nil, p.errorAt(tok.Pos, "integer literal %q out of range", tok.Literal)
	}
	node := ast.NewIntLiteral(val)
	node.Pos = tok.Pos
	return node, nil
}

func (p *Parser) parseString() (ast.Expression, error) {
	tok := p.next()
	node := ast.NewStringLiteral(tok.Literal)
	node.Pos = tok.Pos
	return node, nil
}

func (p *Parser) parseBoolean() (ast.Expression, error) {
	tok := p.next()
	node := ast.NewBooleanLiteral(tok.Type == token.TRUE)
	node.Pos = tok.Pos
	return node, nil
}

func (p *Parser) parseNone() (ast.Expression, error) {
	tok := p.next()
	node := ast.NewNoneLiteral()
	node.Pos = tok.Pos
	return node, nil
}

func (p *Parser) parseIdentifier() (ast.Expression, error) {
	tok := p.next()
	node := ast.NewIdentifier(tok.Literal)
	node.Pos = tok.Pos
	return node, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	op := p.next()
	operand, err := p.parseExpression(precUnary)
	if err != nil {
		return nil, err
	}
	node := ast.NewUnaryOp(op.Literal, operand)
	node.Pos = op.Pos
	return node, nil
}

func (p *Parser) parseGroup() (ast.Expression, error) {
	p.next()
	expr, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return expr, nil
}

// list: "[" (expr ("," expr)*)? "]"
func (p *Parser) parseList() (ast.Expression, error) {
	open := p.next()
	node := ast.NewListLiteral(nil)
	node.Pos = open.Pos
	if p.cur().Type != token.RBRACKET {
		for {
			el, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			node.Elements = append(node.Elements, el)
			if p.cur().Type != token.COMMA {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return node, nil
}

// map: "{" (expr ":" expr ("," expr ":" expr)*)? "}"
func (p *Parser) parseMap() (ast.Expression, error) {
	open := p.next()
	node := ast.NewMapLiteral(nil)
	node.Pos = open.Pos
	if p.cur().Type != token.RBRACE {
		for {
			key, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.COLON); err != nil {
				return nil, err
			}
			value, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			node.Entries = append(node.Entries, ast.MapEntry{Key: key, Value: value})
			if p.cur().Type != token.COMMA {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return node, nil
}

// Infix parselets

func (p *Parser) parseBinary(left ast.Expression) (ast.Expression, error) {
	op := p.next()
	right, err := p.parseExpression(precedences[op.Type])
	if err != nil {
		return nil, err
	}
	node := ast.NewBinaryOp(op.Literal, left, right)
	node.Pos = op.Pos
	return node, nil
}

func (p *Parser) parseRange(left ast.Expression) (ast.Expression, error) {
	op := p.next()
	right, err := p.parseExpression(precRange)
	if err != nil {
		return nil, err
	}
	node := ast.NewRangeLiteral(left, right, op.Type == token.RANGEEQ)
	node.Pos = op.Pos
	return node, nil
}

// call: callee "(" (expr ("," expr)*)? ")"
func (p *Parser) parseCall(callee ast.Expression) (ast.Expression, error) {
	open := p.next()
	node := ast.NewCall(callee, nil)
	node.Pos = open.Pos
	if p.cur().Type != token.RPAREN {
		for {
			arg, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			node.Args = append(node.Args, arg)
			if p.cur().Type != token.COMMA {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return node, nil
}

// index: target "[" expr "]"
// slice: target "[" expr ":" expr "]"
func (p *Parser) parseIndexOrSlice(target ast.Expression) (ast.Expression, error) {
	open := p.next()
	first, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if p.cur().Type == token.COLON {
		p.next()
		end, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
		node := ast.NewSlice(target, first, end)
		node.Pos = open.Pos
		return node, nil
	}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	node := ast.NewIndex(target, first)
	node.Pos = open.Pos
	return node, nil
}
