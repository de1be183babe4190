package hir

import "github.com/gnolang/dbglint/internal/source"

// Builder hands out fresh HirIDs while constructing a tree by hand. It is
// used by frontends that build trees in memory and by tests.
type Builder struct {
	next   HirID
	Typeck *TypeckResults
}

func NewBuilder() *Builder {
	return &Builder{Typeck: NewTypeckResults()}
}

func (b *Builder) id() HirID {
	b.next++
	return b.next
}

func (b *Builder) expr(kind ExprKind, sp source.Span, data ExprData) *Expr {
	return &Expr{ID: b.id(), Kind: kind, Span: sp, Data: data}
}

func (b *Builder) Lit(sp source.Span, text string) *Expr {
	return b.expr(ExprLit, sp, &LitData{Text: text})
}

func (b *Builder) Path(sp source.Span, name string) *Expr {
	return b.expr(ExprPath, sp, &PathData{Name: name})
}

func (b *Builder) Unary(sp source.Span, op UnOp, operand *Expr) *Expr {
	return b.expr(ExprUnary, sp, &UnaryData{Op: op, Operand: operand})
}

func (b *Builder) Binary(sp source.Span, op string, l, r *Expr) *Expr {
	return b.expr(ExprBinary, sp, &BinaryData{Op: op, Left: l, Right: r})
}

// Ref builds `&operand`.
func (b *Builder) Ref(sp source.Span, operand *Expr) *Expr {
	return b.expr(ExprAddrOf, sp, &AddrOfData{Kind: BorrowRef, Mutbl: Not, Operand: operand})
}

// RefMut builds `&mut operand`.
func (b *Builder) RefMut(sp source.Span, operand *Expr) *Expr {
	return b.expr(ExprAddrOf, sp, &AddrOfData{Kind: BorrowRef, Mutbl: Mut, Operand: operand})
}

func (b *Builder) Call(sp source.Span, callee *Expr, args ...*Expr) *Expr {
	return b.expr(ExprCall, sp, &CallData{Callee: callee, Args: args})
}

// MethodCall builds `recv.method(args...)`.
func (b *Builder) MethodCall(sp source.Span, method string, recv *Expr, args ...*Expr) *Expr {
	all := append([]*Expr{recv}, args...)
	return b.expr(ExprMethodCall, sp, &MethodCallData{Method: method, Args: all})
}

func (b *Builder) Tup(sp source.Span, elems ...*Expr) *Expr {
	return b.expr(ExprTup, sp, &TupData{Elems: elems})
}

func (b *Builder) Array(sp source.Span, elems ...*Expr) *Expr {
	return b.expr(ExprArray, sp, &ArrayData{Elems: elems})
}

func (b *Builder) Field(sp source.Span, base *Expr, name string) *Expr {
	return b.expr(ExprField, sp, &FieldData{Base: base, Name: name})
}

func (b *Builder) Index(sp source.Span, base, index *Expr) *Expr {
	return b.expr(ExprIndex, sp, &IndexData{Base: base, Index: index})
}

func (b *Builder) Match(sp source.Span, src MatchSource, scrutinee *Expr, arms ...*Arm) *Expr {
	return b.expr(ExprMatch, sp, &MatchData{Scrutinee: scrutinee, Arms: arms, Source: src})
}

func (b *Builder) Arm(sp source.Span, pat string, body *Expr) *Arm {
	return &Arm{Span: sp, Pat: pat, Body: body}
}

// BlockExpr wraps a block into an expression.
func (b *Builder) BlockExpr(sp source.Span, stmts []*Stmt, tail *Expr) *Expr {
	return b.expr(ExprBlock, sp, &BlockData{Block: b.Block(sp, stmts, tail)})
}

func (b *Builder) Block(sp source.Span, stmts []*Stmt, tail *Expr) *Block {
	return &Block{ID: b.id(), Span: sp, Stmts: stmts, Expr: tail}
}

func (b *Builder) DropTemps(sp source.Span, inner *Expr) *Expr {
	return b.expr(ExprDropTemps, sp, &DropTempsData{Inner: inner})
}

func (b *Builder) Closure(sp source.Span, params []string, body *Expr) *Expr {
	return b.expr(ExprClosure, sp, &ClosureData{Params: params, Body: body})
}

func (b *Builder) Assign(sp source.Span, target, value *Expr) *Expr {
	return b.expr(ExprAssign, sp, &AssignData{Target: target, Value: value})
}

func (b *Builder) Cast(sp source.Span, operand *Expr, ty string) *Expr {
	return b.expr(ExprCast, sp, &CastData{Operand: operand, Type: ty})
}

func (b *Builder) Ret(sp source.Span, value *Expr) *Expr {
	return b.expr(ExprRet, sp, &RetData{Value: value})
}

func (b *Builder) Semi(sp source.Span, e *Expr) *Stmt {
	return &Stmt{ID: b.id(), Kind: StmtSemi, Span: sp, Expr: e}
}

func (b *Builder) ExprStmt(sp source.Span, e *Expr) *Stmt {
	return &Stmt{ID: b.id(), Kind: StmtExpr, Span: sp, Expr: e}
}

func (b *Builder) Let(sp source.Span, name string, init *Expr) *Stmt {
	return &Stmt{ID: b.id(), Kind: StmtLocal, Span: sp, Local: &Local{Name: name, Init: init}}
}

// Adjust records coercions for e in the builder's TypeckResults.
func (b *Builder) Adjust(e *Expr, adj ...Adjustment) *Expr {
	b.Typeck.SetAdjustments(e.ID, adj...)
	return e
}
