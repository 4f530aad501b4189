package syntax

import (
	"github.com/ymzk/bluescript/ast"
)

// parseExpr parses a full expression.
func (p *Parser) parseExpr() ast.ASTExpr {
	return p.parseAssignExpr()
}

// assignOps enumerates the assignment operator token kinds.  The checker
// rejects the compound forms outside the supported subset; the parser accepts
// them all so the diagnostic carries a type-level message.
var assignOps = []int{
	TOK_ASSIGN,
	TOK_PLUSASSIGN, TOK_MINUSASSIGN, TOK_STARASSIGN, TOK_DIVASSIGN,
	TOK_MODASSIGN, TOK_POWASSIGN,
	TOK_LSHIFTASSIGN, TOK_RSHIFTASSIGN, TOK_URSHIFTASSIGN,
	TOK_ANDASSIGN, TOK_ORASSIGN, TOK_XORASSIGN,
	TOK_LANDASSIGN, TOK_LORASSIGN, TOK_NULLISHASSIGN,
}

// parseAssignExpr parses a right-associative (possibly compound) assignment.
func (p *Parser) parseAssignExpr() ast.ASTExpr {
	lhs := p.parseCondExpr()

	if p.gotOneOf(assignOps...) {
		op := p.tok.Value
		p.next()

		rhs := p.parseAssignExpr()

		return &ast.AssignExpr{
			ExprBase: ast.NewExprBaseOver(lhs.Span(), rhs.Span()),
			Op:       op,
			Lhs:      lhs,
			Rhs:      rhs,
		}
	}

	return lhs
}

// parseCondExpr parses a conditional (`?:`) expression.
func (p *Parser) parseCondExpr() ast.ASTExpr {
	test := p.parseBinOpExpr(0)

	if p.accept(TOK_QUESTION) {
		cons := p.parseAssignExpr()
		p.expect(TOK_COLON)
		alt := p.parseAssignExpr()

		return &ast.CondExpr{
			ExprBase: ast.NewExprBaseOver(test.Span(), alt.Span()),
			Test:     test,
			Cons:     cons,
			Alt:      alt,
		}
	}

	return test
}

// precTable is the operator precedence table for binary operators.  The table
// is ordered lowest to highest precedence.
var precTable = [][]int{
	{TOK_NULLISH},
	{TOK_LOR},
	{TOK_LAND},
	{TOK_BWOR},
	{TOK_BWXOR},
	{TOK_BWAND},
	{TOK_EQ, TOK_NEQ, TOK_SEQ, TOK_SNEQ},
	{TOK_LT, TOK_GT, TOK_LTEQ, TOK_GTEQ, TOK_INSTANCEOF},
	{TOK_LSHIFT, TOK_RSHIFT, TOK_URSHIFT},
	{TOK_PLUS, TOK_MINUS},
	{TOK_STAR, TOK_DIV, TOK_MOD},
}

// parseBinOpExpr parses a left-associative binary operator application at the
// given precedence level.
func (p *Parser) parseBinOpExpr(prec int) ast.ASTExpr {
	if prec == len(precTable) {
		return p.parseExponentExpr()
	}

	lhs := p.parseBinOpExpr(prec + 1)
	for p.gotOneOf(precTable[prec]...) {
		op := p.tok.Value
		p.next()

		rhs := p.parseBinOpExpr(prec + 1)

		lhs = &ast.BinaryExpr{
			ExprBase: ast.NewExprBaseOver(lhs.Span(), rhs.Span()),
			Op:       op,
			Lhs:      lhs,
			Rhs:      rhs,
		}
	}

	return lhs
}

// parseExponentExpr parses the right-associative `**` operator.
func (p *Parser) parseExponentExpr() ast.ASTExpr {
	lhs := p.parseUnaryExpr()

	if p.accept(TOK_POW) {
		rhs := p.parseExponentExpr()

		return &ast.BinaryExpr{
			ExprBase: ast.NewExprBaseOver(lhs.Span(), rhs.Span()),
			Op:       "**",
			Lhs:      lhs,
			Rhs:      rhs,
		}
	}

	return lhs
}

// parseUnaryExpr parses a prefix operator application.
func (p *Parser) parseUnaryExpr() ast.ASTExpr {
	switch p.tok.Kind {
	case TOK_PLUS, TOK_MINUS, TOK_NOT, TOK_COMPL, TOK_TYPEOF, TOK_VOID, TOK_DELETE:
		op := p.tok
		p.next()

		operand := p.parseUnaryExpr()

		return &ast.UnaryExpr{
			ExprBase: ast.NewExprBaseOver(op.Span, operand.Span()),
			Op:       op.Value,
			Operand:  operand,
		}
	case TOK_INC, TOK_DEC:
		op := p.tok
		p.next()

		operand := p.parseUnaryExpr()

		return &ast.UpdateExpr{
			ExprBase: ast.NewExprBaseOver(op.Span, operand.Span()),
			Op:       op.Value,
			Prefix:   true,
			Operand:  operand,
		}
	default:
		return p.parsePostfixExpr()
	}
}

// parsePostfixExpr parses a primary expression with call/member suffixes and
// an optional postfix update operator.
func (p *Parser) parsePostfixExpr() ast.ASTExpr {
	expr := p.parseSuffixedExpr()

	if p.gotOneOf(TOK_INC, TOK_DEC) {
		op := p.tok
		p.next()

		return &ast.UpdateExpr{
			ExprBase: ast.NewExprBaseOver(expr.Span(), op.Span),
			Op:       op.Value,
			Prefix:   false,
			Operand:  expr,
		}
	}

	return expr
}

// parseSuffixedExpr parses a primary expression followed by any number of
// call, named member, or indexed member suffixes.
func (p *Parser) parseSuffixedExpr() ast.ASTExpr {
	expr := p.parsePrimaryExpr()

	for {
		switch p.tok.Kind {
		case TOK_LPAREN:
			args := p.parseCallArgs()

			expr = &ast.CallExpr{
				ExprBase: ast.NewExprBaseOver(expr.Span(), p.prevSpan()),
				Callee:   expr,
				Args:     args,
			}
		case TOK_DOT:
			p.next()
			propTok := p.expect(TOK_IDENT)

			expr = &ast.MemberExpr{
				ExprBase: ast.NewExprBaseOver(expr.Span(), propTok.Span),
				Object:   expr,
				Property: &ast.Identifier{
					ExprBase: ast.NewExprBaseOn(propTok.Span),
					Name:     propTok.Value,
				},
			}
		case TOK_LBRACKET:
			p.next()
			index := p.parseExpr()
			end := p.expect(TOK_RBRACKET).Span

			expr = &ast.MemberExpr{
				ExprBase: ast.NewExprBaseOver(expr.Span(), end),
				Object:   expr,
				Index:    index,
				Computed: true,
			}
		default:
			return expr
		}
	}
}

// parseCallArgs parses a parenthesized argument list.
func (p *Parser) parseCallArgs() []ast.ASTExpr {
	p.expect(TOK_LPAREN)

	var args []ast.ASTExpr
	for !p.got(TOK_RPAREN) {
		args = append(args, p.parseAssignExpr())

		if !p.accept(TOK_COMMA) {
			break
		}
	}

	p.expect(TOK_RPAREN)
	return args
}

// -----------------------------------------------------------------------------

// parsePrimaryExpr parses a primary expression.
func (p *Parser) parsePrimaryExpr() ast.ASTExpr {
	switch p.tok.Kind {
	case TOK_IDENT:
		tok := p.expect(TOK_IDENT)
		return &ast.Identifier{ExprBase: ast.NewExprBaseOn(tok.Span), Name: tok.Value}
	case TOK_NUMLIT:
		tok := p.expect(TOK_NUMLIT)
		return &ast.NumberLit{ExprBase: ast.NewExprBaseOn(tok.Span), Raw: tok.Value}
	case TOK_STRINGLIT:
		tok := p.expect(TOK_STRINGLIT)
		return &ast.StringLit{ExprBase: ast.NewExprBaseOn(tok.Span), Value: tok.Value}
	case TOK_TRUE, TOK_FALSE:
		tok := p.tok
		p.next()
		return &ast.BoolLit{ExprBase: ast.NewExprBaseOn(tok.Span), Value: tok.Kind == TOK_TRUE}
	case TOK_NULL:
		tok := p.expect(TOK_NULL)
		return &ast.NullLit{ExprBase: ast.NewExprBaseOn(tok.Span)}
	case TOK_THIS:
		tok := p.expect(TOK_THIS)
		return &ast.ThisExpr{ExprBase: ast.NewExprBaseOn(tok.Span)}
	case TOK_SUPER:
		tok := p.expect(TOK_SUPER)
		return &ast.SuperExpr{ExprBase: ast.NewExprBaseOn(tok.Span)}
	case TOK_NEW:
		return p.parseNewExpr()
	case TOK_LPAREN:
		if p.scanAheadIsArrow() {
			return p.parseArrowFunc()
		}

		p.expect(TOK_LPAREN)
		expr := p.parseExpr()
		p.expect(TOK_RPAREN)
		return expr
	default:
		p.reject()
		return nil
	}
}

// parseNewExpr parses `new C(...)` or `new Array<T>(...)`.
func (p *Parser) parseNewExpr() ast.ASTExpr {
	start := p.expect(TOK_NEW).Span

	nameTok := p.expect(TOK_IDENT)
	callee := &ast.Identifier{
		ExprBase: ast.NewExprBaseOn(nameTok.Span),
		Name:     nameTok.Value,
	}

	var typeArgs []ast.TypeExpr
	if p.accept(TOK_LT) {
		for {
			typeArgs = append(typeArgs, p.parseTypeExpr())

			if !p.accept(TOK_COMMA) {
				break
			}
		}

		p.closeAngle()
	}

	args := p.parseCallArgs()

	return &ast.NewExpr{
		ExprBase: ast.NewExprBaseOver(start, p.prevSpan()),
		Callee:   callee,
		TypeArgs: typeArgs,
		Args:     args,
	}
}

// -----------------------------------------------------------------------------

// scanAheadIsArrow reports whether the parenthesized group starting at the
// current `(` token is followed by `=>`, ie. whether it opens an arrow
// function's parameter list.  The parser's state is not disturbed.
func (p *Parser) scanAheadIsArrow() bool {
	lex := *p.lexer

	depth := 1
	for depth > 0 {
		tok, err := lex.NextToken()
		if err != nil || tok.Kind == TOK_EOF {
			return false
		}

		switch tok.Kind {
		case TOK_LPAREN:
			depth++
		case TOK_RPAREN:
			depth--
		}
	}

	tok, err := lex.NextToken()
	return err == nil && tok.Kind == TOK_ARROW
}

// parseArrowFunc parses an arrow function expression.  An expression body is
// normalized into a block holding a single return statement.
func (p *Parser) parseArrowFunc() ast.ASTExpr {
	start := p.tok.Span
	params := p.parseParams()
	p.expect(TOK_ARROW)

	var body *ast.Block
	if p.got(TOK_LBRACE) {
		body = p.parseBlock()
	} else {
		expr := p.parseAssignExpr()
		body = &ast.Block{
			ASTBase: ast.NewASTBaseOn(expr.Span()),
			Stmts: []ast.ASTNode{&ast.ReturnStmt{
				ASTBase: ast.NewASTBaseOn(expr.Span()),
				Value:   expr,
			}},
		}
	}

	return &ast.ArrowFunc{
		ExprBase: ast.NewExprBaseOver(start, p.prevSpan()),
		Params:   params,
		Body:     body,
	}
}
