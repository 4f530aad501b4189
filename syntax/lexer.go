package syntax

import (
	"strings"
	"unicode"

	"github.com/ymzk/bluescript/report"
)

// Lexer is responsible for tokenizing a source string.  Lines are
// one-indexed; columns are zero-indexed.
type Lexer struct {
	src []rune
	pos int

	line, col int
}

// NewLexer creates a new lexer over the given source text.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:  []rune(src),
		line: 1,
	}
}

// NextToken retrieves the next token from the input.  If the input has ended,
// this will be an EOF token.
func (l *Lexer) NextToken() (*Token, error) {
	if err := l.skipSpace(); err != nil {
		return nil, err
	}

	if l.pos >= len(l.src) {
		return &Token{Kind: TOK_EOF, Span: l.spanHere()}, nil
	}

	c := l.src[l.pos]
	switch {
	case c == '"' || c == '\'':
		return l.lexStringLit()
	case isDecimalDigit(c):
		return l.lexNumericLit()
	case isFirstIdentChar(c):
		return l.lexIdentOrKeyword()
	default:
		return l.lexPunctOrOper()
	}
}

// -----------------------------------------------------------------------------

// symbolPatterns maps symbol strings (patterns) to their punctuation/operator
// token kind.  Patterns are matched longest first.
var symbolPatterns = map[string]int{
	"+":  TOK_PLUS,
	"-":  TOK_MINUS,
	"*":  TOK_STAR,
	"/":  TOK_DIV,
	"%":  TOK_MOD,
	"**": TOK_POW,

	"==":  TOK_EQ,
	"!=":  TOK_NEQ,
	"===": TOK_SEQ,
	"!==": TOK_SNEQ,
	"<":   TOK_LT,
	"<=":  TOK_LTEQ,
	">":   TOK_GT,
	">=":  TOK_GTEQ,

	"&":   TOK_BWAND,
	"|":   TOK_BWOR,
	"^":   TOK_BWXOR,
	"~":   TOK_COMPL,
	"<<":  TOK_LSHIFT,
	">>":  TOK_RSHIFT,
	">>>": TOK_URSHIFT,

	"!":  TOK_NOT,
	"&&": TOK_LAND,
	"||": TOK_LOR,
	"??": TOK_NULLISH,

	"=":    TOK_ASSIGN,
	"+=":   TOK_PLUSASSIGN,
	"-=":   TOK_MINUSASSIGN,
	"*=":   TOK_STARASSIGN,
	"/=":   TOK_DIVASSIGN,
	"%=":   TOK_MODASSIGN,
	"**=":  TOK_POWASSIGN,
	"<<=":  TOK_LSHIFTASSIGN,
	">>=":  TOK_RSHIFTASSIGN,
	">>>=": TOK_URSHIFTASSIGN,
	"&=":   TOK_ANDASSIGN,
	"|=":   TOK_ORASSIGN,
	"^=":   TOK_XORASSIGN,
	"&&=":  TOK_LANDASSIGN,
	"||=":  TOK_LORASSIGN,
	"??=":  TOK_NULLISHASSIGN,

	"++": TOK_INC,
	"--": TOK_DEC,

	"(":  TOK_LPAREN,
	")":  TOK_RPAREN,
	"{":  TOK_LBRACE,
	"}":  TOK_RBRACE,
	"[":  TOK_LBRACKET,
	"]":  TOK_RBRACKET,
	",":  TOK_COMMA,
	";":  TOK_SEMI,
	":":  TOK_COLON,
	".":  TOK_DOT,
	"?":  TOK_QUESTION,
	"=>": TOK_ARROW,
}

// keywordPatterns maps keyword strings to their token kind.  `undefined` is
// deliberately absent: it is an ordinary identifier.
var keywordPatterns = map[string]int{
	"let":        TOK_LET,
	"const":      TOK_CONST,
	"function":   TOK_FUNCTION,
	"class":      TOK_CLASS,
	"extends":    TOK_EXTENDS,
	"new":        TOK_NEW,
	"if":         TOK_IF,
	"else":       TOK_ELSE,
	"while":      TOK_WHILE,
	"for":        TOK_FOR,
	"break":      TOK_BREAK,
	"continue":   TOK_CONTINUE,
	"return":     TOK_RETURN,
	"throw":      TOK_THROW,
	"import":     TOK_IMPORT,
	"export":     TOK_EXPORT,
	"from":       TOK_FROM,
	"this":       TOK_THIS,
	"super":      TOK_SUPER,
	"instanceof": TOK_INSTANCEOF,
	"typeof":     TOK_TYPEOF,
	"void":       TOK_VOID,
	"delete":     TOK_DELETE,
	"true":       TOK_TRUE,
	"false":      TOK_FALSE,
	"null":       TOK_NULL,
}

// -----------------------------------------------------------------------------

// skipSpace consumes whitespace and comments.
func (l *Lexer) skipSpace() error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]

		switch {
		case c == '\n' || c == '\t' || c == ' ' || c == '\r' || c == '\v' || c == '\f':
			l.advance()
		case c == '/' && l.peekAt(1) == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.advance()
			}
		case c == '/' && l.peekAt(1) == '*':
			start := l.spanHere()

			l.advance()
			l.advance()
			for {
				if l.pos >= len(l.src) {
					return report.Raise(start, "unclosed block comment")
				}

				if l.src[l.pos] == '*' && l.peekAt(1) == '/' {
					l.advance()
					l.advance()
					break
				}

				l.advance()
			}
		default:
			return nil
		}
	}

	return nil
}

// lexStringLit lexes a single- or double-quoted string literal.
func (l *Lexer) lexStringLit() (*Token, error) {
	startLine, startCol := l.line, l.col
	quote := l.src[l.pos]
	l.advance()

	sb := strings.Builder{}
	for {
		if l.pos >= len(l.src) || l.src[l.pos] == '\n' {
			return nil, report.Raise(
				&report.TextSpan{StartLine: startLine, StartCol: startCol, EndLine: l.line, EndCol: l.col},
				"unclosed string literal",
			)
		}

		c := l.src[l.pos]
		if c == quote {
			l.advance()
			break
		}

		if c == '\\' {
			l.advance()
			if l.pos >= len(l.src) {
				continue
			}

			switch l.src[l.pos] {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case '0':
				sb.WriteRune(0)
			default:
				sb.WriteRune(l.src[l.pos])
			}

			l.advance()
			continue
		}

		sb.WriteRune(c)
		l.advance()
	}

	return &Token{
		Kind:  TOK_STRINGLIT,
		Value: sb.String(),
		Span:  &report.TextSpan{StartLine: startLine, StartCol: startCol, EndLine: l.line, EndCol: l.col - 1},
	}, nil
}

// lexNumericLit lexes a decimal, hex, or floating-point literal.  The token
// value is the raw source text: the checker decides integer versus float from
// the raw syntax.
func (l *Lexer) lexNumericLit() (*Token, error) {
	startLine, startCol := l.line, l.col
	startPos := l.pos

	if l.src[l.pos] == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') {
		l.advance()
		l.advance()
		for l.pos < len(l.src) && isHexDigit(l.src[l.pos]) {
			l.advance()
		}
	} else {
		for l.pos < len(l.src) && isDecimalDigit(l.src[l.pos]) {
			l.advance()
		}

		if l.pos < len(l.src) && l.src[l.pos] == '.' && isDecimalDigit(l.peekAt(1)) {
			l.advance()
			for l.pos < len(l.src) && isDecimalDigit(l.src[l.pos]) {
				l.advance()
			}
		}

		if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
			next := l.peekAt(1)
			if isDecimalDigit(next) || ((next == '+' || next == '-') && isDecimalDigit(l.peekAt(2))) {
				l.advance()
				if l.src[l.pos] == '+' || l.src[l.pos] == '-' {
					l.advance()
				}
				for l.pos < len(l.src) && isDecimalDigit(l.src[l.pos]) {
					l.advance()
				}
			}
		}
	}

	return &Token{
		Kind:  TOK_NUMLIT,
		Value: string(l.src[startPos:l.pos]),
		Span:  &report.TextSpan{StartLine: startLine, StartCol: startCol, EndLine: l.line, EndCol: l.col - 1},
	}, nil
}

// lexIdentOrKeyword lexes an identifier or keyword token.
func (l *Lexer) lexIdentOrKeyword() (*Token, error) {
	startLine, startCol := l.line, l.col
	startPos := l.pos

	for l.pos < len(l.src) && isIdentChar(l.src[l.pos]) {
		l.advance()
	}

	value := string(l.src[startPos:l.pos])
	span := &report.TextSpan{StartLine: startLine, StartCol: startCol, EndLine: l.line, EndCol: l.col - 1}

	if kind, ok := keywordPatterns[value]; ok {
		return &Token{Kind: kind, Value: value, Span: span}, nil
	}

	return &Token{Kind: TOK_IDENT, Value: value, Span: span}, nil
}

// lexPunctOrOper lexes a punctuation or operator token by maximal munch.
func (l *Lexer) lexPunctOrOper() (*Token, error) {
	for size := 4; size > 0; size-- {
		if l.pos+size > len(l.src) {
			continue
		}

		value := string(l.src[l.pos : l.pos+size])
		if kind, ok := symbolPatterns[value]; ok {
			startLine, startCol := l.line, l.col
			for i := 0; i < size; i++ {
				l.advance()
			}

			return &Token{
				Kind:  kind,
				Value: value,
				Span:  &report.TextSpan{StartLine: startLine, StartCol: startCol, EndLine: l.line, EndCol: l.col - 1},
			}, nil
		}
	}

	return nil, report.Raise(l.spanHere(), "unexpected character: `%c`", l.src[l.pos])
}

// -----------------------------------------------------------------------------

// advance moves the lexer forward one rune, tracking lines and columns.
func (l *Lexer) advance() {
	if l.src[l.pos] == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}

	l.pos++
}

// peekAt returns the rune at the given offset from the current position, or
// zero past the end of input.
func (l *Lexer) peekAt(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return 0
	}

	return l.src[l.pos+offset]
}

// spanHere returns a one-character span at the current position.
func (l *Lexer) spanHere() *report.TextSpan {
	return &report.TextSpan{StartLine: l.line, StartCol: l.col, EndLine: l.line, EndCol: l.col}
}

func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c rune) bool {
	return isDecimalDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isFirstIdentChar(c rune) bool {
	return c == '_' || c == '$' || unicode.IsLetter(c)
}

func isIdentChar(c rune) bool {
	return isFirstIdentChar(c) || isDecimalDigit(c)
}
