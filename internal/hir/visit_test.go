package hir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/dbglint/internal/source"
)

func sp(lo, hi uint32) source.Span {
	return source.Span{Lo: lo, Hi: hi}
}

// buildSample builds `{ let v = &mut x; if f(v) { g(|y| y.h()) } }`.
func buildSample(b *Builder) *Expr {
	x := b.Path(sp(14, 15), "x")
	init := b.RefMut(sp(9, 15), x)
	let := b.Let(sp(1, 16), "v", init)

	call := b.Call(sp(20, 24), b.Path(sp(20, 21), "f"), b.Path(sp(22, 23), "v"))
	inner := b.MethodCall(sp(33, 38), "h", b.Path(sp(33, 34), "y"))
	closure := b.Closure(sp(29, 38), []string{"y"}, inner)
	then := b.BlockExpr(sp(25, 40), nil, b.Call(sp(27, 39), b.Path(sp(27, 28), "g"), closure))
	ifExpr := b.Match(sp(17, 40), MatchIfDesugar, b.DropTemps(sp(20, 24), call),
		b.Arm(sp(25, 40), "true", then),
		b.Arm(sp(17, 40), "_", b.Tup(sp(17, 40))),
	)
	return b.BlockExpr(sp(0, 41), []*Stmt{let}, ifExpr)
}

func TestInspect_Order(t *testing.T) {
	t.Parallel()

	root := buildSample(NewBuilder())

	var kinds []string
	Inspect(root, func(e *Expr) bool {
		kinds = append(kinds, e.Kind.String())
		return true
	})

	assert.Equal(t, []string{
		"Block",
		"AddrOf", "Path",
		"Match", "DropTemps", "Call", "Path", "Path",
		"Block", "Call", "Path", "Closure", "MethodCall", "Path",
		"Tup",
	}, kinds)
}

func TestInspect_Prune(t *testing.T) {
	t.Parallel()

	root := buildSample(NewBuilder())

	visited := 0
	Inspect(root, func(e *Expr) bool {
		visited++
		return e.Kind != ExprMatch
	})
	// Block, AddrOf, Path, Match
	assert.Equal(t, 4, visited)
}

func TestInspect_VisitsEachNodeOnce(t *testing.T) {
	t.Parallel()

	root := buildSample(NewBuilder())

	seen := make(map[HirID]int)
	Inspect(root, func(e *Expr) bool {
		seen[e.ID]++
		return true
	})
	for id, n := range seen {
		assert.Equal(t, 1, n, "node %d visited more than once", id)
	}
}

func TestWalkExpr_NilSafe(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	exprs := []*Expr{
		nil,
		b.Ret(sp(0, 6), nil),
		{Kind: ExprUnary, Data: &UnaryData{}},
		{Kind: ExprMatch, Data: &MatchData{Arms: []*Arm{nil}}},
		{Kind: ExprBlock, Data: &BlockData{Block: &Block{Stmts: []*Stmt{nil, {Kind: StmtLocal}}}}},
		{Kind: ExprLit},
	}
	for _, e := range exprs {
		assert.NotPanics(t, func() {
			Inspect(e, func(*Expr) bool { return true })
		})
	}
}

func TestPrinter_PrintBody(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	x := b.Path(sp(5, 6), "x")
	b.Adjust(x, Adjustment{Kind: AdjustBorrow, Target: Ty{Kind: TyRef, Mutbl: Mut, Elem: &Ty{Kind: TyAdt, Name: "Vec<u8>"}}})
	call := b.MethodCall(sp(0, 12), "push", x, b.Lit(sp(10, 11), "1"))
	body := &Body{Owner: "main", Allow: []string{"clippy::nursery"}, Value: call}

	var out strings.Builder
	require.NoError(t, NewPrinter(&out, b.Typeck).PrintBody(body))

	want := strings.Join([]string{
		"body main allow(clippy::nursery)",
		"  MethodCall#3 .push 0:0-12",
		"    Path#1 x 0:5-6 [borrow -> &mut Vec<u8>]",
		"    Lit#2 1 0:10-11",
		"",
	}, "\n")
	assert.Equal(t, want, out.String())
}

func TestTy_String(t *testing.T) {
	t.Parallel()

	u32 := &Ty{Kind: TyInt, Name: "u32"}
	tests := []struct {
		ty   Ty
		want string
	}{
		{Ty{Kind: TyRef, Elem: u32}, "&u32"},
		{Ty{Kind: TyRef, Mutbl: Mut, Elem: u32}, "&mut u32"},
		{Ty{Kind: TyRawPtr, Mutbl: Mut, Elem: u32}, "*mut u32"},
		{Ty{Kind: TyRawPtr, Elem: u32}, "*const u32"},
		{Ty{Kind: TyRef}, "&_"},
		{Ty{Kind: TyNever}, "!"},
		{Ty{}, "_"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ty.String())
	}
	assert.True(t, Ty{Kind: TyRef, Mutbl: Mut}.IsMutRef())
	assert.False(t, Ty{Kind: TyRawPtr, Mutbl: Mut}.IsMutRef())
}

func TestParseKinds(t *testing.T) {
	t.Parallel()

	for k := ExprLit; k <= ExprRet; k++ {
		got, ok := ParseExprKind(k.String())
		require.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}
	for s := MatchNormal; s <= MatchAwaitDesugar; s++ {
		got, ok := ParseMatchSource(s.String())
		require.True(t, ok)
		assert.Equal(t, s, got)
	}
	_, ok := ParseExprKind("Yield")
	assert.False(t, ok)
}
