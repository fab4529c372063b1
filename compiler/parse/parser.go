// Package parse turns microtype declaration files into their syntax tree.
//
// A declaration file is a sequence of blocks, each declaring one or more
// wrapper names over a single inner type:
//
//	string {
//		Email,
//		Username,
//	}
//
//	#[secret]
//	string { Password }
//
// The parser performs no semantic checks beyond the grammar: annotation
// names and argument combinations are validated later by the compiler/gen
// package. Blocks, names, and annotations are preserved in source order.
package parse

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrSyntax is the sentinel error for malformed declaration input.
var ErrSyntax = errors.New("microtype: syntax error")

// Error describes a syntax error at a position in a declaration file.
type Error struct {
	Path string
	Pos  Pos
	Msg  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("microtype: %s:%s: %s", e.Path, e.Pos, e.Msg)
	}
	return fmt.Sprintf("microtype: %s: %s", e.Pos, e.Msg)
}

// Is reports whether the target matches the sentinel error for Error.
func (e *Error) Is(target error) bool {
	return target == ErrSyntax
}

// IsError reports whether err is a parse Error.
func IsError(err error) bool {
	var pe *Error
	return errors.As(err, &pe)
}

func newError(path string, pos Pos, msg string) *Error {
	return &Error{Path: path, Pos: pos, Msg: msg}
}

// Parse parses the declaration source of one file. The path is recorded on
// the file and used in error messages; it may be empty for in-memory input.
func Parse(path string, src []byte) (*File, error) {
	toks, err := Tokens(path, string(src))
	if err != nil {
		return nil, err
	}
	p := &parser{path: path, toks: toks}
	f := &File{Path: path}
	for p.peek().Kind != TokenEOF {
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		f.Blocks = append(f.Blocks, b)
	}
	return f, nil
}

type parser struct {
	path string
	toks []Token
	idx  int
}

func (p *parser) peek() Token {
	return p.toks[p.idx]
}

func (p *parser) next() Token {
	t := p.toks[p.idx]
	if t.Kind != TokenEOF {
		p.idx++
	}
	return t
}

// expect consumes the next token and fails unless it has the given kind.
func (p *parser) expect(kind TokenKind) (Token, error) {
	t := p.next()
	if t.Kind != kind {
		return Token{}, p.errorf(t.Pos, "expected %s, found %s", kind, t)
	}
	return t, nil
}

func (p *parser) errorf(pos Pos, format string, args ...any) error {
	return newError(p.path, pos, fmt.Sprintf(format, args...))
}

// parseBlock parses: Annotation* Visibility? TypeRef '{' names '}'.
func (p *parser) parseBlock() (*Block, error) {
	pos := p.peek().Pos
	anns, err := p.parseAnnotations()
	if err != nil {
		return nil, err
	}
	b := &Block{Annotations: anns, Pos: pos}
	if t := p.peek(); t.Kind == TokenIdent && t.Text == "pub" {
		vis, err := p.parseVisibility()
		if err != nil {
			return nil, err
		}
		b.Visibility = vis
	}
	inner, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}
	b.Inner = inner
	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}
	// The name list may be empty, and a trailing comma is allowed.
	for p.peek().Kind != TokenRBrace {
		nd, err := p.parseNameDecl()
		if err != nil {
			return nil, err
		}
		b.Names = append(b.Names, nd)
		if p.peek().Kind != TokenComma {
			break
		}
		p.next()
	}
	if _, err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}
	return b, nil
}

func (p *parser) parseVisibility() (*Visibility, error) {
	t := p.next() // the "pub" identifier
	v := &Visibility{Pos: t.Pos}
	if p.peek().Kind != TokenLParen {
		return v, nil
	}
	p.next()
	scope, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	v.Scope = scope.Text
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}
	return v, nil
}

// parseNameDecl parses: Annotation* Identifier.
func (p *parser) parseNameDecl() (*NameDecl, error) {
	pos := p.peek().Pos
	anns, err := p.parseAnnotations()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	return &NameDecl{Annotations: anns, Name: name.Text, Pos: pos}, nil
}

// parseAnnotations parses a possibly empty run of "#[...]" markers.
func (p *parser) parseAnnotations() ([]*Annotation, error) {
	var anns []*Annotation
	for p.peek().Kind == TokenHash {
		a, err := p.parseAnnotation()
		if err != nil {
			return nil, err
		}
		anns = append(anns, a)
	}
	return anns, nil
}

func (p *parser) parseAnnotation() (*Annotation, error) {
	hash := p.next() // '#'
	if _, err := p.expect(TokenLBracket); err != nil {
		return nil, err
	}
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	a := &Annotation{Name: name.Text, Pos: hash.Pos}
	if p.peek().Kind == TokenLParen {
		p.next()
		a.Parens = true
		for p.peek().Kind != TokenRParen {
			arg, err := p.parseArg()
			if err != nil {
				return nil, err
			}
			a.Args = append(a.Args, arg)
			if p.peek().Kind != TokenComma {
				break
			}
			p.next()
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(TokenRBracket); err != nil {
		return nil, err
	}
	return a, nil
}

// parseArg parses one annotation argument: a bare string literal, a bare
// identifier, or "name = value".
func (p *parser) parseArg() (*Arg, error) {
	t := p.peek()
	switch t.Kind {
	case TokenString:
		p.next()
		return &Arg{Kind: ArgString, Val: Value{Kind: ValueString, Str: t.Text, Pos: t.Pos}, Pos: t.Pos}, nil
	case TokenIdent:
		p.next()
		arg := &Arg{Kind: ArgIdent, Name: t.Text, Pos: t.Pos}
		if p.peek().Kind == TokenEqual {
			p.next()
			val, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			arg.Kind = ArgAssign
			arg.Val = val
		}
		return arg, nil
	default:
		return nil, p.errorf(t.Pos, "expected annotation argument, found %s", t)
	}
}

func (p *parser) parseValue() (Value, error) {
	t := p.peek()
	switch t.Kind {
	case TokenString:
		p.next()
		return Value{Kind: ValueString, Str: t.Text, Pos: t.Pos}, nil
	case TokenInt:
		p.next()
		n, err := strconv.ParseInt(t.Text, 10, 64)
		if err != nil {
			return Value{}, p.errorf(t.Pos, "integer %s out of range", t)
		}
		return Value{Kind: ValueInt, Int: n, Pos: t.Pos}, nil
	case TokenIdent, TokenLBracket:
		ref, err := p.parseTypeRef()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: ValueType, Type: ref, Pos: ref.Pos}, nil
	default:
		return Value{}, p.errorf(t.Pos, "expected value, found %s", t)
	}
}

// parseTypeRef parses a type reference: an optional "[]" prefix followed by
// an identifier with at most one package qualifier.
func (p *parser) parseTypeRef() (TypeRef, error) {
	var ref TypeRef
	t := p.peek()
	ref.Pos = t.Pos
	if t.Kind == TokenLBracket {
		p.next()
		if _, err := p.expect(TokenRBracket); err != nil {
			return TypeRef{}, err
		}
		ref.Slice = true
	}
	name, err := p.expect(TokenIdent)
	if err != nil {
		return TypeRef{}, err
	}
	if name.Text == "pub" {
		return TypeRef{}, p.errorf(name.Pos, "expected type reference, found reserved word %q", name.Text)
	}
	ref.Name = name.Text
	if p.peek().Kind == TokenDot {
		p.next()
		sel, err := p.expect(TokenIdent)
		if err != nil {
			return TypeRef{}, err
		}
		ref.Package = ref.Name
		ref.Name = sel.Text
	}
	return ref, nil
}
