package syntax

import "github.com/ymzk/bluescript/report"

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The string value of the token.  This may not directly correspond to the
	// source text: eg. the value of a string token has the leading quotes
	// trimmed off for convenience.
	Value string

	// The text span over which the token exists.
	Span *report.TextSpan
}

// Enumeration of token kinds.
const (
	TOK_LET = iota
	TOK_CONST
	TOK_FUNCTION
	TOK_CLASS
	TOK_EXTENDS
	TOK_NEW

	TOK_IF
	TOK_ELSE
	TOK_WHILE
	TOK_FOR
	TOK_BREAK
	TOK_CONTINUE
	TOK_RETURN
	TOK_THROW

	TOK_IMPORT
	TOK_EXPORT
	TOK_FROM

	TOK_THIS
	TOK_SUPER
	TOK_INSTANCEOF
	TOK_TYPEOF
	TOK_VOID
	TOK_DELETE

	TOK_TRUE
	TOK_FALSE
	TOK_NULL

	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_DIV
	TOK_MOD
	TOK_POW

	TOK_EQ
	TOK_NEQ
	TOK_SEQ
	TOK_SNEQ
	TOK_LT
	TOK_GT
	TOK_LTEQ
	TOK_GTEQ

	TOK_BWAND
	TOK_BWOR
	TOK_BWXOR
	TOK_COMPL
	TOK_LSHIFT
	TOK_RSHIFT
	TOK_URSHIFT

	TOK_NOT
	TOK_LAND
	TOK_LOR
	TOK_NULLISH

	TOK_ASSIGN
	TOK_PLUSASSIGN
	TOK_MINUSASSIGN
	TOK_STARASSIGN
	TOK_DIVASSIGN
	TOK_MODASSIGN
	TOK_POWASSIGN
	TOK_LSHIFTASSIGN
	TOK_RSHIFTASSIGN
	TOK_URSHIFTASSIGN
	TOK_ANDASSIGN
	TOK_ORASSIGN
	TOK_XORASSIGN
	TOK_LANDASSIGN
	TOK_LORASSIGN
	TOK_NULLISHASSIGN

	TOK_INC
	TOK_DEC

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACE
	TOK_RBRACE
	TOK_LBRACKET
	TOK_RBRACKET
	TOK_COMMA
	TOK_SEMI
	TOK_COLON
	TOK_DOT
	TOK_QUESTION
	TOK_ARROW

	TOK_IDENT
	TOK_NUMLIT
	TOK_STRINGLIT

	TOK_EOF
)
