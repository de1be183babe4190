// Package hirtest builds the trees a frontend produces for common macros, so
// rule tests can start from realistic expansions instead of hand-written
// nests of nodes.
package hirtest

import (
	"strings"

	"github.com/gnolang/dbglint/internal/hir"
	"github.com/gnolang/dbglint/internal/source"
)

// Macro returns expansion data for a bang macro invoked at site.
func Macro(name string, site source.Span, parent *source.ExpnData) *source.ExpnData {
	return &source.ExpnData{
		Kind:      source.ExpnMacro,
		MacroKind: source.MacroBang,
		Name:      name,
		CallSite:  site,
		Parent:    parent,
	}
}

// In returns sp marked as produced by expn.
func In(sp source.Span, expn *source.ExpnData) source.Span {
	sp.Expn = expn
	return sp
}

// cfgIf builds `if cfg!(debug_assertions) { stmt; }` in span ds and returns
// the outer match together with the then-block.
func cfgIf(b *hir.Builder, ds source.Span, stmt *hir.Stmt) (*hir.Expr, *hir.Expr) {
	then := b.BlockExpr(ds, []*hir.Stmt{stmt}, nil)
	outer := b.Match(ds, hir.MatchIfDesugar,
		b.DropTemps(ds, b.Lit(ds, "true")),
		b.Arm(ds, "true", then),
		b.Arm(ds, "_", b.Tup(ds)),
	)
	return outer, then
}

func panicCall(b *hir.Builder, sp source.Span, msg string) *hir.Expr {
	return b.Call(sp, b.Path(sp, "core::panicking::panic"), b.Lit(sp, `"`+msg+`"`))
}

// Expansion is the result of building one assertion.
type Expansion struct {
	// Root is the outermost expression the invocation lowers to.
	Root *hir.Expr
	// Block is the `{ assert!(..); }` block whose span is the direct
	// expansion of the debug macro.
	Block *hir.Expr
}

// DebugAssert builds `debug_assert!(cond)` invoked at site, lowered as
//
//	if cfg!(debug_assertions) { if !cond { panic!(..) }; }
func DebugAssert(b *hir.Builder, site source.Span, cond *hir.Expr) Expansion {
	dbg := Macro("debug_assert", site, nil)
	ds := In(site, dbg)
	as := In(site, Macro("assert", ds, dbg))

	check := b.Match(as, hir.MatchIfDesugar,
		b.DropTemps(as, b.Unary(as, hir.UnNot, cond)),
		b.Arm(as, "true", panicCall(b, as, "assertion failed")),
		b.Arm(as, "_", b.Tup(as)),
	)
	root, then := cfgIf(b, ds, b.Semi(as, check))
	return Expansion{Root: root, Block: then}
}

// DebugAssertCmp builds `debug_assert_eq!(left, right)` or
// `debug_assert_ne!(left, right)` depending on name, lowered as
//
//	if cfg!(debug_assertions) {
//	    { match (&left, &right) { (l, r) => { if !(*l == *r) { panic!(..) } } } };
//	}
func DebugAssertCmp(b *hir.Builder, name string, site source.Span, left, right *hir.Expr) Expansion {
	return DebugAssertCmpElems(b, name, site, func(as source.Span) (*hir.Expr, *hir.Expr) {
		return b.Ref(as, left), b.Ref(as, right)
	})
}

// DebugAssertCmpElems is DebugAssertCmp with the scrutinee tuple elements
// built by elems instead of `&left` and `&right`. elems receives the span of
// the inner assert expansion.
func DebugAssertCmpElems(b *hir.Builder, name string, site source.Span, elems func(as source.Span) (*hir.Expr, *hir.Expr)) Expansion {
	dbg := Macro(name, site, nil)
	ds := In(site, dbg)
	as := In(site, Macro(strings.TrimPrefix(name, "debug_"), ds, dbg))

	op := "=="
	if strings.HasSuffix(name, "_ne") {
		op = "!="
	}
	test := b.Unary(as, hir.UnNot, b.Binary(as, op,
		b.Unary(as, hir.UnDeref, b.Path(as, "left_val")),
		b.Unary(as, hir.UnDeref, b.Path(as, "right_val")),
	))
	check := b.Match(as, hir.MatchIfDesugar,
		b.DropTemps(as, test),
		b.Arm(as, "true", panicCall(b, as, "assertion failed: `(left "+op+" right)`")),
		b.Arm(as, "_", b.Tup(as)),
	)
	left, right := elems(as)
	m := b.Match(as, hir.MatchNormal,
		b.Tup(as, left, right),
		b.Arm(as, "(left_val, right_val)", b.BlockExpr(as, nil, check)),
	)
	root, then := cfgIf(b, ds, b.Semi(as, b.BlockExpr(as, nil, m)))
	return Expansion{Root: root, Block: then}
}

// Body wraps statements into a body whose value is a block.
func Body(b *hir.Builder, owner string, sp source.Span, stmts ...*hir.Stmt) *hir.Body {
	return &hir.Body{Owner: owner, Span: sp, Value: b.BlockExpr(sp, stmts, nil)}
}

// Crate assembles a single-file crate around bodies built with b.
func Crate(b *hir.Builder, path, src string, bodies ...*hir.Body) *hir.Crate {
	files := source.NewFileSet()
	files.Add(path, []byte(src))
	return &hir.Crate{
		Name:   "test",
		Files:  files,
		Bodies: bodies,
		Typeck: b.Typeck,
	}
}

// MutBorrow is the adjustment a frontend records when it auto-borrows a
// place as `&mut T`.
func MutBorrow(elem string) hir.Adjustment {
	return hir.Adjustment{
		Kind:   hir.AdjustBorrow,
		Target: hir.Ty{Kind: hir.TyRef, Mutbl: hir.Mut, Elem: &hir.Ty{Kind: hir.TyAdt, Name: elem}},
	}
}

// SharedBorrow is the `&T` counterpart of MutBorrow.
func SharedBorrow(elem string) hir.Adjustment {
	return hir.Adjustment{
		Kind:   hir.AdjustBorrow,
		Target: hir.Ty{Kind: hir.TyRef, Mutbl: hir.Not, Elem: &hir.Ty{Kind: hir.TyAdt, Name: elem}},
	}
}
