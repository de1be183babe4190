// Package hir models the typed, desugared syntax tree that a frontend hands to
// dbglint.
//
// Every node carries a source.Span whose expansion data records which macro
// (if any) produced it. Expressions are tagged with an ExprKind and a
// kind-specific ExprData payload. Type information lives beside the tree in
// TypeckResults, keyed by HirID, so the tree itself stays immutable once
// built.
package hir

// HirID identifies an expression or statement within a crate.
type HirID uint32

// NoHirID is the zero, invalid ID.
const NoHirID HirID = 0

func (id HirID) IsValid() bool { return id != NoHirID }
