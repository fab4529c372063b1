package parse

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// A Lexer splits declaration source into tokens. Line comments ("// ...")
// and whitespace are skipped. Identifiers must begin with a letter; the
// leading underscore is reserved for generated internals and rejected here.
type Lexer struct {
	path string
	src  string
	off  int
	line int
	col  int
}

// NewLexer returns a lexer over src. The path is used in error messages
// only and may be empty.
func NewLexer(path, src string) *Lexer {
	return &Lexer{path: path, src: src, line: 1, col: 1}
}

// Tokens scans the entire source and returns its token stream, terminated
// by a TokenEOF token. It stops at the first lexical error.
func Tokens(path, src string) ([]Token, error) {
	lx := NewLexer(path, src)
	var toks []Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks, nil
		}
	}
}

// Next returns the next token in the stream.
func (l *Lexer) Next() (Token, error) {
	l.skipSpace()
	pos := l.pos()
	if l.off >= len(l.src) {
		return Token{Kind: TokenEOF, Pos: pos}, nil
	}
	r, size := utf8.DecodeRuneInString(l.src[l.off:])
	switch {
	case r == '#':
		l.advance(size)
		return Token{Kind: TokenHash, Text: "#", Pos: pos}, nil
	case r == '[':
		l.advance(size)
		return Token{Kind: TokenLBracket, Text: "[", Pos: pos}, nil
	case r == ']':
		l.advance(size)
		return Token{Kind: TokenRBracket, Text: "]", Pos: pos}, nil
	case r == '{':
		l.advance(size)
		return Token{Kind: TokenLBrace, Text: "{", Pos: pos}, nil
	case r == '}':
		l.advance(size)
		return Token{Kind: TokenRBrace, Text: "}", Pos: pos}, nil
	case r == '(':
		l.advance(size)
		return Token{Kind: TokenLParen, Text: "(", Pos: pos}, nil
	case r == ')':
		l.advance(size)
		return Token{Kind: TokenRParen, Text: ")", Pos: pos}, nil
	case r == ',':
		l.advance(size)
		return Token{Kind: TokenComma, Text: ",", Pos: pos}, nil
	case r == '=':
		l.advance(size)
		return Token{Kind: TokenEqual, Text: "=", Pos: pos}, nil
	case r == '.':
		l.advance(size)
		return Token{Kind: TokenDot, Text: ".", Pos: pos}, nil
	case r == '"':
		return l.scanString(pos)
	case unicode.IsDigit(r):
		return l.scanInt(pos)
	case unicode.IsLetter(r):
		return l.scanIdent(pos)
	case r == '_':
		return Token{}, newError(l.path, pos, "identifiers cannot start with '_' (reserved for generated names)")
	default:
		return Token{}, newError(l.path, pos, fmt.Sprintf("unexpected character %q", r))
	}
}

// skipSpace consumes whitespace and line comments.
func (l *Lexer) skipSpace() {
	for l.off < len(l.src) {
		switch c := l.src[l.off]; {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance(1)
		case c == '/' && strings.HasPrefix(l.src[l.off:], "//"):
			for l.off < len(l.src) && l.src[l.off] != '\n' {
				l.advance(1)
			}
		default:
			return
		}
	}
}

func (l *Lexer) scanIdent(pos Pos) (Token, error) {
	start := l.off
	for l.off < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.off:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		l.advance(size)
	}
	return Token{Kind: TokenIdent, Text: l.src[start:l.off], Pos: pos}, nil
}

func (l *Lexer) scanInt(pos Pos) (Token, error) {
	start := l.off
	for l.off < len(l.src) && l.src[l.off] >= '0' && l.src[l.off] <= '9' {
		l.advance(1)
	}
	return Token{Kind: TokenInt, Text: l.src[start:l.off], Pos: pos}, nil
}

func (l *Lexer) scanString(pos Pos) (Token, error) {
	l.advance(1) // opening quote
	var b strings.Builder
	for l.off < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.off:])
		switch r {
		case '"':
			l.advance(size)
			return Token{Kind: TokenString, Text: b.String(), Pos: pos}, nil
		case '\n':
			return Token{}, newError(l.path, pos, "unterminated string")
		case '\\':
			l.advance(size)
			if l.off >= len(l.src) {
				return Token{}, newError(l.path, pos, "unterminated string")
			}
			esc := l.src[l.off]
			switch esc {
			case '"', '\\':
				b.WriteByte(esc)
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				return Token{}, newError(l.path, l.pos(), fmt.Sprintf("unknown escape sequence '\\%c'", esc))
			}
			l.advance(1)
		default:
			b.WriteRune(r)
			l.advance(size)
		}
	}
	return Token{}, newError(l.path, pos, "unterminated string")
}

func (l *Lexer) pos() Pos {
	return Pos{Line: l.line, Column: l.col, Offset: l.off}
}

// advance moves the cursor n bytes forward, tracking line and column.
func (l *Lexer) advance(n int) {
	for i := 0; i < n; i++ {
		if l.src[l.off] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.off++
	}
}
