package parser

import (
	"abrvalg/interpreter-go/pkg/ast"
	"abrvalg/interpreter-go/pkg/token"
)

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur().Type {
	case token.FUNC:
		return p.parseFunctionDef()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.MATCH:
		return p.parseMatch()
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		return p.parseBreak()
	case token.CONTINUE:
		return p.parseContinue()
	default:
		return p.parseExpressionStatement()
	}
}

// parseBlock parses ": NEWLINE INDENT statements DEDENT". The colon is
// consumed here so every block-introducing statement reads the same.
func (p *Parser) parseBlock() (*ast.Block, error) {
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	open, err := p.expect(token.INDENT)
	if err != nil {
		return nil, err
	}
	block := ast.NewBlock(nil)
	block.Pos = open.Pos
	for p.cur().Type != token.DEDENT && p.cur().Type != token.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	if _, err := p.expect(token.DEDENT); err != nil {
		return nil, err
	}
	return block, nil
}

// func_def: "func" NAME "(" params? ")" ":" block
func (p *Parser) parseFunctionDef() (ast.Statement, error) {
	kw := p.next()
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []string
	if p.cur().Type != token.RPAREN {
		for {
			param, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			params = append(params, param.Literal)
			if p.cur().Type != token.COMMA {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	p.enterScope(scopeFunction)
	body, err := p.parseBlock()
	p.leaveScope()
	if err != nil {
		return nil, err
	}
	def := ast.NewFunctionDef(name.Literal, params, body)
	def.Pos = kw.Pos
	return def, nil
}

// if: "if" expr ":" block ("elif" expr ":" block)* ("else" ":" block)?
func (p *Parser) parseIf() (ast.Statement, error) {
	kw := p.next()
	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node := ast.NewIf(cond, then, nil)
	node.Pos = kw.Pos

	// Elif arms nest as an else block holding a single If, so the
	// evaluator only ever sees two-way branches.
	tail := node
	for p.cur().Type == token.ELIF {
		elifTok := p.next()
		elifCond, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		elifThen, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		nested := ast.NewIf(elifCond, elifThen, nil)
		nested.Pos = elifTok.Pos
		wrapper := ast.NewBlock([]ast.Statement{nested})
		wrapper.Pos = elifTok.Pos
		tail.Else = wrapper
		tail = nested
	}
	if p.cur().Type == token.ELSE {
		p.next()
		els, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		tail.Else = els
	}
	return node, nil
}

// while: "while" expr ":" block
func (p *Parser) parseWhile() (ast.Statement, error) {
	kw := p.next()
	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	p.enterScope(scopeLoop)
	body, err := p.parseBlock()
	p.leaveScope()
	if err != nil {
		return nil, err
	}
	node := ast.NewWhile(cond, body)
	node.Pos = kw.Pos
	return node, nil
}

// for: "for" NAME "in" expr ":" block
func (p *Parser) parseFor() (ast.Statement, error) {
	kw := p.next()
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN); err != nil {
		return nil, err
	}
	iter, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	p.enterScope(scopeLoop)
	body, err := p.parseBlock()
	p.leaveScope()
	if err != nil {
		return nil, err
	}
	node := ast.NewFor(name.Literal, iter, body)
	node.Pos = kw.Pos
	return node, nil
}

// match: "match" expr ":" NEWLINE INDENT when+ ("else" ":" block)? DEDENT
func (p *Parser) parseMatch() (ast.Statement, error) {
	kw := p.next()
	subject, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.INDENT); err != nil {
		return nil, err
	}
	var clauses []*ast.MatchClause
	for p.cur().Type == token.WHEN {
		whenTok := p.next()
		pattern, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		clause := ast.NewMatchClause(pattern, body)
		clause.Pos = whenTok.Pos
		clauses = append(clauses, clause)
	}
	if len(clauses) == 0 {
		return nil, p.unexpected("'when'")
	}
	var els *ast.Block
	if p.cur().Type == token.ELSE {
		p.next()
		els, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.DEDENT); err != nil {
		return nil, err
	}
	node := ast.NewMatch(subject, clauses, els)
	node.Pos = kw.Pos
	return node, nil
}

// return: "return" expr? NEWLINE
func (p *Parser) parseReturn() (ast.Statement, error) {
	kw := p.cur()
	if !p.inFunction() {
		return nil, p.errorAt(kw.Pos, "'return' outside of function")
	}
	p.next()
	var value ast.Expression
	if p.cur().Type != token.NEWLINE {
		var err error
		value, err = p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	node := ast.NewReturn(value)
	node.Pos = kw.Pos
	return node, nil
}

func (p *Parser) parseBreak() (ast.Statement, error) {
	kw := p.cur()
	if !p.inLoop() {
		return nil, p.errorAt(kw.Pos, "'break' outside of loop")
	}
	p.next()
	if _, err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	node := ast.NewBreak()
	node.Pos = kw.Pos
	return node, nil
}

func (p *Parser) parseContinue() (ast.Statement, error) {
	kw := p.cur()
	if !p.inLoop() {
		return nil, p.errorAt(kw.Pos, "'continue' outside of loop")
	}
	p.next()
	if _, err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	node := ast.NewContinue()
	node.Pos = kw.Pos
	return node, nil
}

// expr_stmt: expr ("=" expr)? NEWLINE
//
// An "=" after the expression turns it into an assignment; the target
// must then be an identifier or an index expression.
func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	expr, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if p.cur().Type == token.ASSIGN {
		assignTok := p.next()
		value, err := p.parseExpression(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.NEWLINE); err != nil {
			return nil, err
		}
		switch target := expr.(type) {
		case *ast.Identifier:
			node := ast.NewAssign(target.Name, value)
			node.Pos = target.Pos
			return node, nil
		case *ast.Index:
			node := ast.NewSetIndex(target.Target, target.Key, value)
			node.Pos = target.Pos
			return node, nil
		default:
			return nil, p.errorAt(assignTok.Pos, "cannot assign to %s", expr.NodeType())
		}
	}
	if _, err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	node := ast.NewExpressionStatement(expr)
	node.Pos = expr.Position()
	return node, nil
}
