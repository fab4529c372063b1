package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexer_Kinds(t *testing.T) {
	t.Parallel()

	toks, err := Tokens("", `#[secret(serialize)] pub string { Email, }`)
	require.NoError(t, err)

	kinds := make([]TokenKind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokenKind{
		TokenHash, TokenLBracket, TokenIdent, TokenLParen, TokenIdent, TokenRParen, TokenRBracket,
		TokenIdent, TokenIdent, TokenLBrace, TokenIdent, TokenComma, TokenRBrace, TokenEOF,
	}, kinds)
}

func TestLexer_Positions(t *testing.T) {
	t.Parallel()

	toks, err := Tokens("", "string {\n\tEmail,\n}")
	require.NoError(t, err)
	require.Len(t, toks, 6) // string { Email , } EOF

	assert.Equal(t, Pos{Line: 1, Column: 1, Offset: 0}, toks[0].Pos)
	assert.Equal(t, Pos{Line: 1, Column: 8, Offset: 7}, toks[1].Pos)
	assert.Equal(t, Pos{Line: 2, Column: 2, Offset: 10}, toks[2].Pos)
	assert.Equal(t, "Email", toks[2].Text)
	assert.Equal(t, Pos{Line: 3, Column: 1, Offset: 17}, toks[4].Pos)
}

func TestLexer_SkipsComments(t *testing.T) {
	t.Parallel()

	toks, err := Tokens("", "// wrapper types\nstring { A } // trailing")
	require.NoError(t, err)

	var idents []string
	for _, tok := range toks {
		if tok.Kind == TokenIdent {
			idents = append(idents, tok.Text)
		}
	}
	assert.Equal(t, []string{"string", "A"}, idents)
}

func TestLexer_Strings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"plain", `"hello"`, "hello"},
		{"escaped quote", `"say \"hi\""`, `say "hi"`},
		{"escaped backslash", `"a\\b"`, `a\b`},
		{"newline escape", `"a\nb"`, "a\nb"},
		{"empty", `""`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokens("", tt.src)
			require.NoError(t, err)
			require.Equal(t, TokenString, toks[0].Kind)
			assert.Equal(t, tt.want, toks[0].Text)
		})
	}
}

func TestLexer_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"unterminated string", `"abc`},
		{"string across newline", "\"abc\ndef\""},
		{"unknown escape", `"\q"`},
		{"illegal character", "string @ {}"},
		{"leading underscore", "_hidden { A }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokens("", tt.src)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSyntax)
			assert.True(t, IsError(err))
		})
	}
}

func TestLexer_ErrorCarriesPath(t *testing.T) {
	t.Parallel()

	_, err := Tokens("types.microtype", "string @ {}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "types.microtype:1:8")
}
