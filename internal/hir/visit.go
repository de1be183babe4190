package hir

// Visitor visits expressions. Implementations decide whether to descend by
// calling WalkExpr from VisitExpr.
type Visitor interface {
	VisitExpr(e *Expr)
}

// WalkExpr calls v.VisitExpr for every direct sub-expression of e, in source
// order. Statements and arms are looked through; closure bodies are included.
func WalkExpr(v Visitor, e *Expr) {
	if e == nil {
		return
	}
	switch d := e.Data.(type) {
	case *UnaryData:
		visit(v, d.Operand)
	case *BinaryData:
		visit(v, d.Left)
		visit(v, d.Right)
	case *AddrOfData:
		visit(v, d.Operand)
	case *CallData:
		visit(v, d.Callee)
		visitAll(v, d.Args)
	case *MethodCallData:
		visitAll(v, d.Args)
	case *TupData:
		visitAll(v, d.Elems)
	case *ArrayData:
		visitAll(v, d.Elems)
	case *FieldData:
		visit(v, d.Base)
	case *IndexData:
		visit(v, d.Base)
		visit(v, d.Index)
	case *MatchData:
		visit(v, d.Scrutinee)
		for _, arm := range d.Arms {
			if arm == nil {
				continue
			}
			visit(v, arm.Guard)
			visit(v, arm.Body)
		}
	case *BlockData:
		WalkBlock(v, d.Block)
	case *DropTempsData:
		visit(v, d.Inner)
	case *ClosureData:
		visit(v, d.Body)
	case *AssignData:
		visit(v, d.Target)
		visit(v, d.Value)
	case *CastData:
		visit(v, d.Operand)
	case *RetData:
		visit(v, d.Value)
	}
}

// WalkBlock visits the expressions of every statement of b and then its
// trailing expression.
func WalkBlock(v Visitor, b *Block) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		if s == nil {
			continue
		}
		switch s.Kind {
		case StmtLocal:
			if s.Local != nil {
				visit(v, s.Local.Init)
			}
		case StmtExpr, StmtSemi:
			visit(v, s.Expr)
		}
	}
	visit(v, b.Expr)
}

func visit(v Visitor, e *Expr) {
	if e != nil {
		v.VisitExpr(e)
	}
}

func visitAll(v Visitor, es []*Expr) {
	for _, e := range es {
		visit(v, e)
	}
}

type inspector func(*Expr) bool

func (f inspector) VisitExpr(e *Expr) {
	if f(e) {
		WalkExpr(f, e)
	}
}

// Inspect traverses the tree rooted at e in depth-first order, calling f for
// every expression. If f returns false, the children of that expression are
// skipped.
func Inspect(e *Expr, f func(*Expr) bool) {
	visit(inspector(f), e)
}
