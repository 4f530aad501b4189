// Package syntax implements the lexer and recursive-descent parser for the
// checked subset of BlueScript.  The parser performs syntax analysis and AST
// generation only: all name resolution and type checking is left to the
// checker.
package syntax

import (
	"github.com/ymzk/bluescript/ast"
	"github.com/ymzk/bluescript/report"
)

// Parser is the parser for a BlueScript source text.  It is a recursive
// descent parser: all parsing functions assume that they begin with the
// parser centered on the first token of their production and consume all
// tokens (including the last) of their production, leaving the parser on the
// next token.  Parsers are created once per source text.
type Parser struct {
	// lexer is the Lexer this parser is using to lex the source text.
	lexer *Lexer

	// tok is the current token the parser is positioned on.
	tok *Token

	// prev is the most recently consumed token.
	prev *Token
}

// Parse parses a source text into a program AST.  The returned error, if
// non-nil, is a positioned diagnostic; IsIncomplete reports whether it was
// caused by the input ending mid-production.
func Parse(src string) (prog *ast.Program, err error) {
	defer func() {
		if x := recover(); x != nil {
			switch v := x.(type) {
			case *IncompleteError:
				prog, err = nil, v
			case *report.Diagnostic:
				prog, err = nil, v
			default:
				panic(x)
			}
		}
	}()

	p := &Parser{lexer: NewLexer(src)}
	p.next()

	return p.parseProgram(), nil
}

// IncompleteError is a parse failure caused by the input ending in the middle
// of a production.  An interactive caller may treat it as a prompt for more
// input rather than a hard error.
type IncompleteError struct {
	Diag *report.Diagnostic
}

func (ie *IncompleteError) Error() string {
	return ie.Diag.Error()
}

// IsIncomplete returns whether err marks input that ended mid-production.
func IsIncomplete(err error) bool {
	_, ok := err.(*IncompleteError)
	return ok
}

// -----------------------------------------------------------------------------

// parseProgram parses the whole input: a list of top-level declarations and
// statements terminated by EOF.
func (p *Parser) parseProgram() *ast.Program {
	start := p.tok.Span

	var body []ast.ASTNode
	for !p.got(TOK_EOF) {
		body = append(body, p.parseTopLevel()...)
	}

	return &ast.Program{
		ASTBase: ast.NewASTBaseOver(start, p.tok.Span),
		Body:    body,
	}
}

// parseTopLevel parses one top-level declaration or statement.
func (p *Parser) parseTopLevel() []ast.ASTNode {
	switch p.tok.Kind {
	case TOK_IMPORT:
		return []ast.ASTNode{p.parseImportDecl()}
	case TOK_EXPORT:
		p.next()

		switch p.tok.Kind {
		case TOK_LET, TOK_CONST:
			decls := p.parseVarDecls()
			for _, decl := range decls {
				decl.(*ast.VarDecl).Exported = true
			}

			return decls
		case TOK_FUNCTION:
			fd := p.parseFuncDecl()
			fd.Exported = true
			return []ast.ASTNode{fd}
		case TOK_CLASS:
			cd := p.parseClassDecl()
			cd.Exported = true
			return []ast.ASTNode{cd}
		default:
			p.rejectWithMsg(p.tok.Span, "expected a declaration after export")
			return nil
		}
	default:
		return p.parseStmt()
	}
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() {
	tok, err := p.lexer.NextToken()
	if err != nil {
		panic(err)
	}

	p.prev = p.tok
	p.tok = tok
}

// got returns true if the parser is on a token of a given kind.
func (p *Parser) got(kind int) bool {
	return p.tok.Kind == kind
}

// gotOneOf returns if the parser's current token kind is one of given kinds.
func (p *Parser) gotOneOf(kinds ...int) bool {
	for _, kind := range kinds {
		if p.tok.Kind == kind {
			return true
		}
	}

	return false
}

// expect asserts that the parser is on a token of the given kind, then moves
// past it.  The matched token is returned.
func (p *Parser) expect(kind int) *Token {
	if !p.got(kind) {
		p.reject()
	}

	tok := p.tok
	p.next()
	return tok
}

// accept moves past the current token if it is of the given kind.
func (p *Parser) accept(kind int) bool {
	if p.got(kind) {
		p.next()
		return true
	}

	return false
}

// reject reports an unexpected token error on the current token.
func (p *Parser) reject() {
	if p.got(TOK_EOF) {
		panic(&IncompleteError{Diag: report.Raise(p.tok.Span, "unexpected end of input")})
	}

	p.rejectWithMsg(p.tok.Span, "unexpected token: `%s`", p.tok.Value)
}

// rejectWithMsg rejects the current position with a specific message.
func (p *Parser) rejectWithMsg(span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(span, msg, args...))
}

// prevSpan returns the span of the most recently consumed token.
func (p *Parser) prevSpan() *report.TextSpan {
	if p.prev == nil {
		return p.tok.Span
	}

	return p.prev.Span
}
