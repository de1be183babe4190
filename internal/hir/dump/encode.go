package dump

import (
	"sort"

	"github.com/gnolang/dbglint/internal/hir"
	"github.com/gnolang/dbglint/internal/source"
)

type encoder struct {
	expnIDs map[*source.ExpnData]uint32
	expns   []wireExpn
}

func newEncoder() *encoder {
	return &encoder{expnIDs: make(map[*source.ExpnData]uint32)}
}

func (e *encoder) crate(c *hir.Crate) *wireCrate {
	wc := &wireCrate{Schema: SchemaVersion, Name: c.Name}
	if c.Files != nil {
		for i := 0; i < c.Files.Len(); i++ {
			f := c.Files.Get(source.FileID(i))
			wc.Files = append(wc.Files, wireFile{Path: f.Path, Source: string(f.Content)})
		}
	}
	for _, b := range c.Bodies {
		wc.Bodies = append(wc.Bodies, wireBody{
			Owner: b.Owner,
			Span:  e.span(b.Span),
			Allow: b.Allow,
			Value: e.expr(b.Value),
		})
	}
	if c.Typeck != nil {
		ids := c.Typeck.TypedIDs()
		sortIDs(ids)
		for _, id := range ids {
			ty, _ := c.Typeck.NodeType(id)
			wc.Types = append(wc.Types, wireNodeType{ID: uint32(id), Ty: wireTyOf(ty)})
		}
		ids = c.Typeck.AdjustedIDs()
		sortIDs(ids)
		for _, id := range ids {
			wa := wireAdjustments{ID: uint32(id)}
			for _, adj := range c.Typeck.Adjustments(id) {
				wa.Steps = append(wa.Steps, wireAdjustment{Kind: adj.Kind.String(), Target: wireTyOf(adj.Target)})
			}
			wc.Adjustments = append(wc.Adjustments, wa)
		}
	}
	wc.Expansions = e.expns
	return wc
}

func sortIDs(ids []hir.HirID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

func (e *encoder) expn(d *source.ExpnData) uint32 {
	if d == nil {
		return 0
	}
	if id, ok := e.expnIDs[d]; ok {
		return id
	}
	e.expns = append(e.expns, wireExpn{})
	id := uint32(len(e.expns))
	e.expnIDs[d] = id

	we := wireExpn{Kind: d.Kind.String(), Name: d.Name}
	if d.Kind == source.ExpnMacro {
		we.Macro = d.MacroKind.String()
	}
	we.Parent = e.expn(d.Parent)
	we.CallSite = e.span(d.CallSite)
	e.expns[id-1] = we
	return id
}

func (e *encoder) span(s source.Span) wireSpan {
	return wireSpan{File: uint32(s.File), Lo: s.Lo, Hi: s.Hi, Expn: e.expn(s.Expn)}
}

func wireTyOf(t hir.Ty) wireTy {
	wt := wireTy{Kind: t.Kind.String(), Mut: t.Mutbl == hir.Mut, Name: t.Name}
	if t.Elem != nil {
		elem := wireTyOf(*t.Elem)
		wt.Elem = &elem
	}
	return wt
}

func (e *encoder) exprs(es []*hir.Expr) []*wireExpr {
	if len(es) == 0 {
		return nil
	}
	out := make([]*wireExpr, 0, len(es))
	for _, x := range es {
		out = append(out, e.expr(x))
	}
	return out
}

func (e *encoder) expr(x *hir.Expr) *wireExpr {
	if x == nil {
		return nil
	}
	we := &wireExpr{ID: uint32(x.ID), Kind: x.Kind.String(), Span: e.span(x.Span)}
	switch d := x.Data.(type) {
	case *hir.LitData:
		we.Text = d.Text
	case *hir.PathData:
		we.Text = d.Name
	case *hir.UnaryData:
		we.Op = d.Op.String()
		we.Operand = e.expr(d.Operand)
	case *hir.BinaryData:
		we.Op = d.Op
		we.Left, we.Right = e.expr(d.Left), e.expr(d.Right)
	case *hir.AddrOfData:
		we.Mut = d.Mutbl == hir.Mut
		we.Raw = d.Kind == hir.BorrowRaw
		we.Operand = e.expr(d.Operand)
	case *hir.CallData:
		we.Callee = e.expr(d.Callee)
		we.Args = e.exprs(d.Args)
	case *hir.MethodCallData:
		we.Text = d.Method
		we.Args = e.exprs(d.Args)
	case *hir.TupData:
		we.Args = e.exprs(d.Elems)
	case *hir.ArrayData:
		we.Args = e.exprs(d.Elems)
	case *hir.FieldData:
		we.Operand = e.expr(d.Base)
		we.Text = d.Name
	case *hir.IndexData:
		we.Left, we.Right = e.expr(d.Base), e.expr(d.Index)
	case *hir.MatchData:
		we.Operand = e.expr(d.Scrutinee)
		if d.Source != hir.MatchNormal {
			we.Source = d.Source.String()
		}
		for _, arm := range d.Arms {
			we.Arms = append(we.Arms, wireArm{
				Span:  e.span(arm.Span),
				Pat:   arm.Pat,
				Guard: e.expr(arm.Guard),
				Body:  e.expr(arm.Body),
			})
		}
	case *hir.BlockData:
		we.Block = e.block(d.Block)
	case *hir.DropTempsData:
		we.Operand = e.expr(d.Inner)
	case *hir.ClosureData:
		we.Params = d.Params
		we.Operand = e.expr(d.Body)
	case *hir.AssignData:
		we.Left, we.Right = e.expr(d.Target), e.expr(d.Value)
	case *hir.CastData:
		we.Operand = e.expr(d.Operand)
		we.Text = d.Type
	case *hir.RetData:
		we.Operand = e.expr(d.Value)
	}
	return we
}

func (e *encoder) block(b *hir.Block) *wireBlock {
	if b == nil {
		return nil
	}
	wb := &wireBlock{ID: uint32(b.ID), Span: e.span(b.Span)}
	for _, s := range b.Stmts {
		ws := wireStmt{ID: uint32(s.ID), Kind: s.Kind.String(), Span: e.span(s.Span), Expr: e.expr(s.Expr)}
		if s.Local != nil {
			ws.Name = s.Local.Name
			ws.Init = e.expr(s.Local.Init)
		}
		wb.Stmts = append(wb.Stmts, ws)
	}
	wb.Expr = e.expr(b.Expr)
	return wb
}
