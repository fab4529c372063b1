package parse

import "fmt"

// Pos is a position inside a declaration file. The zero Pos is invalid.
type Pos struct {
	Line   int // 1-based line number
	Column int // 1-based column number, in bytes
	Offset int // 0-based byte offset
}

// IsValid reports whether the position points into a file.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

// String returns the position in "line:column" form.
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenString
	TokenInt
	TokenHash     // #
	TokenLBracket // [
	TokenRBracket // ]
	TokenLBrace   // {
	TokenRBrace   // }
	TokenLParen   // (
	TokenRParen   // )
	TokenComma    // ,
	TokenEqual    // =
	TokenDot      // .
)

var tokenNames = map[TokenKind]string{
	TokenEOF:      "end of file",
	TokenIdent:    "identifier",
	TokenString:   "string",
	TokenInt:      "integer",
	TokenHash:     "'#'",
	TokenLBracket: "'['",
	TokenRBracket: "']'",
	TokenLBrace:   "'{'",
	TokenRBrace:   "'}'",
	TokenLParen:   "'('",
	TokenRParen:   "')'",
	TokenComma:    "','",
	TokenEqual:    "'='",
	TokenDot:      "'.'",
}

// String returns a human-readable name for the token kind.
func (k TokenKind) String() string {
	if s, ok := tokenNames[k]; ok {
		return s
	}
	return fmt.Sprintf("token(%d)", int(k))
}

// A Token is a single lexical element of a declaration file.
type Token struct {
	Kind TokenKind
	Text string // raw text; unquoted value for TokenString
	Pos  Pos
}

// String returns the token in a form suitable for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case TokenEOF:
		return "end of file"
	case TokenIdent, TokenInt:
		return fmt.Sprintf("%q", t.Text)
	case TokenString:
		return fmt.Sprintf("string %q", t.Text)
	default:
		return t.Kind.String()
	}
}
