package gen

import (
	"fmt"

	"github.com/syssam/microtype/compiler/parse"
)

// A Spec is one wrapper type to generate. Flattening expands every block
// declaration into one Spec per declared name, so the rest of the pipeline
// never sees grouped declarations.
type Spec struct {
	// Name is the wrapper type name exactly as declared.
	Name string
	// Inner is the wrapped value type.
	Inner parse.TypeRef
	// Visibility is the declared visibility modifier, nil when absent.
	// It is parsed and preserved but does not alter the generated code;
	// exported Go identifiers come from the declared names themselves.
	Visibility *parse.Visibility
	// Annotations holds the merged annotation list, name-level entries
	// first, then block-level entries, each group in source order.
	Annotations []*parse.Annotation
	// Pos is the position of the name declaration.
	Pos parse.Pos
	// Path is the source file the spec came from.
	Path string
}

// Label returns a short human-readable description, for logs and listings.
func (s *Spec) Label() string {
	return fmt.Sprintf("%s (%s)", s.Name, s.Inner.String())
}

// Flatten expands the blocks of a parsed file into specs, preserving
// declaration order: blocks in file order, names in list order within
// each block. Block-level annotations are shared by every name in the
// block; name-level annotations take precedence by appearing first in
// the merged list.
func Flatten(f *parse.File) []*Spec {
	var specs []*Spec
	for _, b := range f.Blocks {
		for _, n := range b.Names {
			merged := make([]*parse.Annotation, 0, len(n.Annotations)+len(b.Annotations))
			merged = append(merged, n.Annotations...)
			merged = append(merged, b.Annotations...)
			specs = append(specs, &Spec{
				Name:        n.Name,
				Inner:       b.Inner,
				Visibility:  b.Visibility,
				Annotations: merged,
				Pos:         n.Pos,
				Path:        f.Path,
			})
		}
	}
	return specs
}
