package syntax

import (
	"github.com/ymzk/bluescript/ast"
)

// parseTypeExpr parses a type annotation: an atom type or a `|` union of
// atom types.  The checker decides which unions denote valid types.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	first := p.parseAtomType()
	if !p.got(TOK_BWOR) {
		return first
	}

	members := []ast.TypeExpr{first}
	for p.accept(TOK_BWOR) {
		members = append(members, p.parseAtomType())
	}

	return &ast.UnionTypeExpr{
		TypeExprBase: ast.TypeExprBase{
			ASTBase: ast.NewASTBaseOver(first.Span(), p.prevSpan()),
		},
		Members: members,
	}
}

// parseAtomType parses a non-union type annotation.
func (p *Parser) parseAtomType() ast.TypeExpr {
	switch p.tok.Kind {
	case TOK_LPAREN:
		return p.parseFuncTypeExpr()
	case TOK_NULL, TOK_VOID:
		tok := p.tok
		p.next()

		return &ast.TypeName{
			TypeExprBase: ast.TypeExprBase{ASTBase: ast.NewASTBaseOn(tok.Span)},
			Name:         tok.Value,
		}
	case TOK_IDENT:
		tok := p.expect(TOK_IDENT)

		if tok.Value == "Array" && p.got(TOK_LT) {
			p.next()
			elem := p.parseTypeExpr()
			p.closeAngle()

			return &ast.ArrayTypeExpr{
				TypeExprBase: ast.TypeExprBase{
					ASTBase: ast.NewASTBaseOver(tok.Span, p.prevSpan()),
				},
				Elem: elem,
			}
		}

		return &ast.TypeName{
			TypeExprBase: ast.TypeExprBase{ASTBase: ast.NewASTBaseOn(tok.Span)},
			Name:         tok.Value,
		}
	default:
		p.reject()
		return nil
	}
}

// parseFuncTypeExpr parses a function type annotation `(T, ...) => R`.
func (p *Parser) parseFuncTypeExpr() ast.TypeExpr {
	start := p.expect(TOK_LPAREN).Span

	var params []ast.TypeExpr
	for !p.got(TOK_RPAREN) {
		params = append(params, p.parseTypeExpr())

		if !p.accept(TOK_COMMA) {
			break
		}
	}

	p.expect(TOK_RPAREN)
	p.expect(TOK_ARROW)
	ret := p.parseTypeExpr()

	return &ast.FuncTypeExpr{
		TypeExprBase: ast.TypeExprBase{
			ASTBase: ast.NewASTBaseOver(start, p.prevSpan()),
		},
		Params: params,
		Ret:    ret,
	}
}

// closeAngle consumes a single `>`, splitting a `>>` or `>>>` token so that
// nested generic annotations close correctly.
func (p *Parser) closeAngle() {
	switch p.tok.Kind {
	case TOK_GT:
		p.next()
	case TOK_RSHIFT:
		span := *p.tok.Span
		span.StartCol++
		p.tok = &Token{Kind: TOK_GT, Value: ">", Span: &span}
	case TOK_URSHIFT:
		span := *p.tok.Span
		span.StartCol++
		p.tok = &Token{Kind: TOK_RSHIFT, Value: ">>", Span: &span}
	default:
		p.reject()
	}
}
