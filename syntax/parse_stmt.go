package syntax

import (
	"github.com/ymzk/bluescript/ast"
)

// parseStmt parses a single statement.  A comma variable-declaration list is
// split into one VarDecl node per declarator, hence the slice result.
func (p *Parser) parseStmt() []ast.ASTNode {
	switch p.tok.Kind {
	case TOK_LET, TOK_CONST:
		return p.parseVarDecls()
	case TOK_IMPORT:
		return []ast.ASTNode{p.parseImportDecl()}
	case TOK_FUNCTION:
		return []ast.ASTNode{p.parseFuncDecl()}
	case TOK_CLASS:
		return []ast.ASTNode{p.parseClassDecl()}
	case TOK_LBRACE:
		return []ast.ASTNode{p.parseBlock()}
	case TOK_IF:
		return []ast.ASTNode{p.parseIfStmt()}
	case TOK_WHILE:
		return []ast.ASTNode{p.parseWhileLoop()}
	case TOK_FOR:
		return []ast.ASTNode{p.parseForLoop()}
	case TOK_RETURN:
		return []ast.ASTNode{p.parseReturnStmt()}
	case TOK_BREAK:
		tok := p.expect(TOK_BREAK)
		p.accept(TOK_SEMI)
		return []ast.ASTNode{&ast.BreakStmt{ASTBase: ast.NewASTBaseOn(tok.Span)}}
	case TOK_CONTINUE:
		tok := p.expect(TOK_CONTINUE)
		p.accept(TOK_SEMI)
		return []ast.ASTNode{&ast.ContinueStmt{ASTBase: ast.NewASTBaseOn(tok.Span)}}
	case TOK_THROW:
		tok := p.expect(TOK_THROW)
		value := p.parseExpr()
		p.accept(TOK_SEMI)
		return []ast.ASTNode{&ast.ThrowStmt{
			ASTBase: ast.NewASTBaseOver(tok.Span, p.prevSpan()),
			Value:   value,
		}}
	case TOK_SEMI:
		tok := p.expect(TOK_SEMI)
		return []ast.ASTNode{&ast.EmptyStmt{ASTBase: ast.NewASTBaseOn(tok.Span)}}
	default:
		expr := p.parseExpr()

		if ident, ok := expr.(*ast.Identifier); ok && ident.Name == "async" && p.got(TOK_FUNCTION) {
			p.rejectWithMsg(ident.Span(), "async functions are not supported")
		}

		p.accept(TOK_SEMI)
		return []ast.ASTNode{&ast.ExprStmt{
			ASTBase: ast.NewASTBaseOn(expr.Span()),
			Expr:    expr,
		}}
	}
}

// parseBlock parses a braced statement list.
func (p *Parser) parseBlock() *ast.Block {
	start := p.expect(TOK_LBRACE).Span

	var stmts []ast.ASTNode
	for !p.got(TOK_RBRACE) {
		stmts = append(stmts, p.parseStmt()...)
	}

	end := p.expect(TOK_RBRACE).Span
	return &ast.Block{
		ASTBase: ast.NewASTBaseOver(start, end),
		Stmts:   stmts,
	}
}

// parseBlockOrStmt parses a block, or a single statement wrapped into a
// synthetic block so that every branch and loop body introduces a scope.
func (p *Parser) parseBlockOrStmt() *ast.Block {
	if p.got(TOK_LBRACE) {
		return p.parseBlock()
	}

	stmts := p.parseStmt()
	return &ast.Block{
		ASTBase: ast.NewASTBaseOver(stmts[0].Span(), p.prevSpan()),
		Stmts:   stmts,
	}
}

// -----------------------------------------------------------------------------

// parseIfStmt parses an if statement with an optional else or else-if tail.
func (p *Parser) parseIfStmt() *ast.IfStmt {
	start := p.expect(TOK_IF).Span

	p.expect(TOK_LPAREN)
	cond := p.parseExpr()
	p.expect(TOK_RPAREN)

	then := p.parseBlockOrStmt()

	var elseNode ast.ASTNode
	if p.accept(TOK_ELSE) {
		if p.got(TOK_IF) {
			elseNode = p.parseIfStmt()
		} else {
			elseNode = p.parseBlockOrStmt()
		}
	}

	return &ast.IfStmt{
		ASTBase: ast.NewASTBaseOver(start, p.prevSpan()),
		Cond:    cond,
		Then:    then,
		Else:    elseNode,
	}
}

// parseWhileLoop parses a while loop.
func (p *Parser) parseWhileLoop() *ast.WhileLoop {
	start := p.expect(TOK_WHILE).Span

	p.expect(TOK_LPAREN)
	cond := p.parseExpr()
	p.expect(TOK_RPAREN)

	body := p.parseBlockOrStmt()

	return &ast.WhileLoop{
		ASTBase: ast.NewASTBaseOver(start, p.prevSpan()),
		Cond:    cond,
		Body:    body,
	}
}

// parseForLoop parses a C-style for loop.  The initializer may declare at
// most one variable.
func (p *Parser) parseForLoop() *ast.ForLoop {
	start := p.expect(TOK_FOR).Span
	p.expect(TOK_LPAREN)

	var init ast.ASTNode
	switch p.tok.Kind {
	case TOK_SEMI:
		p.next()
	case TOK_LET, TOK_CONST:
		kw := p.tok
		p.next()

		init = p.parseVarDeclarator(kw)
		p.expect(TOK_SEMI)
	default:
		expr := p.parseExpr()
		init = &ast.ExprStmt{ASTBase: ast.NewASTBaseOn(expr.Span()), Expr: expr}
		p.expect(TOK_SEMI)
	}

	var cond ast.ASTExpr
	if !p.got(TOK_SEMI) {
		cond = p.parseExpr()
	}
	p.expect(TOK_SEMI)

	var update ast.ASTNode
	if !p.got(TOK_RPAREN) {
		expr := p.parseExpr()
		update = &ast.ExprStmt{ASTBase: ast.NewASTBaseOn(expr.Span()), Expr: expr}
	}
	p.expect(TOK_RPAREN)

	body := p.parseBlockOrStmt()

	return &ast.ForLoop{
		ASTBase: ast.NewASTBaseOver(start, p.prevSpan()),
		Init:    init,
		Cond:    cond,
		Update:  update,
		Body:    body,
	}
}

// parseReturnStmt parses a return statement with an optional value.
func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	start := p.expect(TOK_RETURN).Span

	var value ast.ASTExpr
	if !p.gotOneOf(TOK_SEMI, TOK_RBRACE, TOK_EOF) {
		value = p.parseExpr()
	}
	p.accept(TOK_SEMI)

	return &ast.ReturnStmt{
		ASTBase: ast.NewASTBaseOver(start, p.prevSpan()),
		Value:   value,
	}
}

// -----------------------------------------------------------------------------

// parseVarDecls parses a `let` or `const` declaration, one VarDecl node per
// declarator.
func (p *Parser) parseVarDecls() []ast.ASTNode {
	kw := p.tok
	p.next()

	var decls []ast.ASTNode
	for {
		decls = append(decls, p.parseVarDeclarator(kw))

		if !p.accept(TOK_COMMA) {
			break
		}
	}

	p.accept(TOK_SEMI)
	return decls
}

// parseVarDeclarator parses a single `name [: type] [= init]` declarator.
func (p *Parser) parseVarDeclarator(kw *Token) *ast.VarDecl {
	nameTok := p.expect(TOK_IDENT)
	name := &ast.Identifier{
		ExprBase: ast.NewExprBaseOn(nameTok.Span),
		Name:     nameTok.Value,
	}

	var typeAnn ast.TypeExpr
	if p.accept(TOK_COLON) {
		typeAnn = p.parseTypeExpr()
	}

	var init ast.ASTExpr
	if p.accept(TOK_ASSIGN) {
		init = p.parseAssignExpr()
	}

	return &ast.VarDecl{
		ASTBase: ast.NewASTBaseOver(kw.Span, p.prevSpan()),
		IsConst: kw.Kind == TOK_CONST,
		Name:    name,
		TypeAnn: typeAnn,
		Init:    init,
	}
}

// parseFuncDecl parses a function declaration.
func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	start := p.expect(TOK_FUNCTION).Span

	nameTok := p.expect(TOK_IDENT)
	name := &ast.Identifier{
		ExprBase: ast.NewExprBaseOn(nameTok.Span),
		Name:     nameTok.Value,
	}

	params := p.parseParams()

	var retAnn ast.TypeExpr
	if p.accept(TOK_COLON) {
		retAnn = p.parseTypeExpr()
	}

	body := p.parseBlock()

	return &ast.FuncDecl{
		ASTBase: ast.NewASTBaseOver(start, p.prevSpan()),
		Name:    name,
		Params:  params,
		RetAnn:  retAnn,
		Body:    body,
	}
}

// parseParams parses a parenthesized parameter list.
func (p *Parser) parseParams() []*ast.Param {
	p.expect(TOK_LPAREN)

	var params []*ast.Param
	for !p.got(TOK_RPAREN) {
		nameTok := p.expect(TOK_IDENT)

		var typeAnn ast.TypeExpr
		if p.accept(TOK_COLON) {
			typeAnn = p.parseTypeExpr()
		}

		params = append(params, &ast.Param{
			Name:     nameTok.Value,
			TypeAnn:  typeAnn,
			NameSpan: nameTok.Span,
		})

		if !p.accept(TOK_COMMA) {
			break
		}
	}

	p.expect(TOK_RPAREN)
	return params
}

// -----------------------------------------------------------------------------

// parseClassDecl parses a class declaration: properties, methods, and the
// constructor (the method named `constructor`).
func (p *Parser) parseClassDecl() *ast.ClassDecl {
	start := p.expect(TOK_CLASS).Span

	nameTok := p.expect(TOK_IDENT)
	name := &ast.Identifier{
		ExprBase: ast.NewExprBaseOn(nameTok.Span),
		Name:     nameTok.Value,
	}

	var superName *ast.Identifier
	if p.accept(TOK_EXTENDS) {
		superTok := p.expect(TOK_IDENT)
		superName = &ast.Identifier{
			ExprBase: ast.NewExprBaseOn(superTok.Span),
			Name:     superTok.Value,
		}
	}

	p.expect(TOK_LBRACE)

	var props []*ast.PropertyDecl
	var methods []*ast.MethodDecl
	for !p.got(TOK_RBRACE) {
		if p.accept(TOK_SEMI) {
			continue
		}

		memberTok := p.expect(TOK_IDENT)

		if (memberTok.Value == "get" || memberTok.Value == "set") && p.got(TOK_IDENT) {
			p.rejectWithMsg(memberTok.Span, "getters and setters are not supported")
		}

		if p.got(TOK_LPAREN) {
			params := p.parseParams()

			var retAnn ast.TypeExpr
			if p.accept(TOK_COLON) {
				retAnn = p.parseTypeExpr()
			}

			body := p.parseBlock()

			methods = append(methods, &ast.MethodDecl{
				ASTBase:  ast.NewASTBaseOver(memberTok.Span, p.prevSpan()),
				Name:     memberTok.Value,
				NameSpan: memberTok.Span,
				Params:   params,
				RetAnn:   retAnn,
				Body:     body,
			})
		} else {
			var typeAnn ast.TypeExpr
			if p.accept(TOK_COLON) {
				typeAnn = p.parseTypeExpr()
			}
			p.accept(TOK_SEMI)

			props = append(props, &ast.PropertyDecl{
				ASTBase: ast.NewASTBaseOver(memberTok.Span, p.prevSpan()),
				Name:    memberTok.Value,
				TypeAnn: typeAnn,
			})
		}
	}

	end := p.expect(TOK_RBRACE).Span

	return &ast.ClassDecl{
		ASTBase:   ast.NewASTBaseOver(start, end),
		Name:      name,
		SuperName: superName,
		Props:     props,
		Methods:   methods,
	}
}

// parseImportDecl parses `import { a, b } from "mod"`.
func (p *Parser) parseImportDecl() *ast.ImportDecl {
	start := p.expect(TOK_IMPORT).Span
	p.expect(TOK_LBRACE)

	var imported []*ast.Identifier
	for !p.got(TOK_RBRACE) {
		nameTok := p.expect(TOK_IDENT)
		imported = append(imported, &ast.Identifier{
			ExprBase: ast.NewExprBaseOn(nameTok.Span),
			Name:     nameTok.Value,
		})

		if !p.accept(TOK_COMMA) {
			break
		}
	}

	p.expect(TOK_RBRACE)
	p.expect(TOK_FROM)
	fromTok := p.expect(TOK_STRINGLIT)
	p.accept(TOK_SEMI)

	return &ast.ImportDecl{
		ASTBase: ast.NewASTBaseOver(start, p.prevSpan()),
		Names:   imported,
		From:    fromTok.Value,
	}
}
