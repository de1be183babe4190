package hir

import "github.com/gnolang/dbglint/internal/source"

// Crate is everything one dump file describes.
type Crate struct {
	Name   string
	Files  *source.FileSet
	Bodies []*Body
	Typeck *TypeckResults
}

// Body is the body of a function, closure-owning item or constant.
type Body struct {
	Owner string
	Span  source.Span
	// Allow lists lint names silenced on the owner, as written in
	// `#[allow(...)]`.
	Allow []string
	Value *Expr
}

// Body returns the first body owned by name.
func (c *Crate) Body(owner string) (*Body, bool) {
	for _, b := range c.Bodies {
		if b.Owner == owner {
			return b, true
		}
	}
	return nil, false
}
