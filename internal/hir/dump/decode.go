package dump

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gnolang/dbglint/internal/hir"
	"github.com/gnolang/dbglint/internal/source"
)

type decoder struct {
	baseDir string
	files   *source.FileSet
	expns   []*source.ExpnData
}

func newDecoder(baseDir string) *decoder {
	return &decoder{baseDir: baseDir, files: source.NewFileSet()}
}

func (d *decoder) crate(wc *wireCrate) (*hir.Crate, error) {
	for _, wf := range wc.Files {
		d.files.Add(wf.Path, d.content(wf))
	}
	if err := d.expansions(wc.Expansions); err != nil {
		return nil, err
	}

	crate := &hir.Crate{
		Name:   wc.Name,
		Files:  d.files,
		Typeck: hir.NewTypeckResults(),
	}
	for i := range wc.Bodies {
		wb := &wc.Bodies[i]
		span, err := d.span(wb.Span)
		if err != nil {
			return nil, fmt.Errorf("body %s: %w", wb.Owner, err)
		}
		value, err := d.expr(wb.Value)
		if err != nil {
			return nil, fmt.Errorf("body %s: %w", wb.Owner, err)
		}
		crate.Bodies = append(crate.Bodies, &hir.Body{
			Owner: wb.Owner,
			Span:  span,
			Allow: wb.Allow,
			Value: value,
		})
	}

	for _, nt := range wc.Types {
		ty, err := d.ty(&nt.Ty)
		if err != nil {
			return nil, fmt.Errorf("type of node %d: %w", nt.ID, err)
		}
		crate.Typeck.SetNodeType(hir.HirID(nt.ID), ty)
	}
	for _, wa := range wc.Adjustments {
		steps := make([]hir.Adjustment, 0, len(wa.Steps))
		for _, ws := range wa.Steps {
			kind, ok := hir.ParseAdjustKind(ws.Kind)
			if !ok {
				return nil, fmt.Errorf("adjustment of node %d: %w: %q", wa.ID, ErrUnknownKind, ws.Kind)
			}
			target, err := d.ty(&ws.Target)
			if err != nil {
				return nil, fmt.Errorf("adjustment of node %d: %w", wa.ID, err)
			}
			steps = append(steps, hir.Adjustment{Kind: kind, Target: target})
		}
		crate.Typeck.SetAdjustments(hir.HirID(wa.ID), steps...)
	}
	return crate, nil
}

// content returns the embedded source or, failing that, the file on disk.
// A missing file is not fatal: positions then degrade to byte columns on
// line 1.
func (d *decoder) content(wf wireFile) []byte {
	if wf.Source != "" {
		return []byte(wf.Source)
	}
	path := wf.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(d.baseDir, path)
	}
	// #nosec G304 -- path comes from the dump the user asked us to lint
	b, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return b
}

func (d *decoder) expansions(wes []wireExpn) error {
	d.expns = make([]*source.ExpnData, len(wes))
	for i := range wes {
		d.expns[i] = &source.ExpnData{}
	}
	for i, we := range wes {
		data := d.expns[i]
		switch we.Kind {
		case "macro":
			data.Kind = source.ExpnMacro
		case "desugaring":
			data.Kind = source.ExpnDesugaring
		case "root":
			data.Kind = source.ExpnRoot
		default:
			return fmt.Errorf("expansion %d: %w: %q", i+1, ErrUnknownKind, we.Kind)
		}
		switch we.Macro {
		case "", "bang":
			data.MacroKind = source.MacroBang
		case "attr":
			data.MacroKind = source.MacroAttr
		case "derive":
			data.MacroKind = source.MacroDerive
		default:
			return fmt.Errorf("expansion %d: %w: macro %q", i+1, ErrUnknownKind, we.Macro)
		}
		data.Name = we.Name

		parent, err := d.expn(we.Parent)
		if err != nil {
			return fmt.Errorf("expansion %d: %w", i+1, err)
		}
		data.Parent = parent
		site, err := d.span(we.CallSite)
		if err != nil {
			return fmt.Errorf("expansion %d: %w", i+1, err)
		}
		data.CallSite = site
	}
	return nil
}

func (d *decoder) expn(ref uint32) (*source.ExpnData, error) {
	if ref == 0 {
		return nil, nil
	}
	if int(ref) > len(d.expns) {
		return nil, fmt.Errorf("%w: %d", ErrDanglingExpansion, ref)
	}
	return d.expns[ref-1], nil
}

func (d *decoder) span(ws wireSpan) (source.Span, error) {
	if int(ws.File) >= d.files.Len() && d.files.Len() > 0 {
		return source.Span{}, fmt.Errorf("%w: %d", ErrUnknownFile, ws.File)
	}
	expn, err := d.expn(ws.Expn)
	if err != nil {
		return source.Span{}, err
	}
	return source.Span{
		File: source.FileID(ws.File),
		Lo:   ws.Lo,
		Hi:   ws.Hi,
		Expn: expn,
	}, nil
}

func (d *decoder) ty(wt *wireTy) (hir.Ty, error) {
	kind, ok := hir.ParseTyKind(wt.Kind)
	if !ok {
		return hir.Ty{}, fmt.Errorf("%w: type %q", ErrUnknownKind, wt.Kind)
	}
	ty := hir.Ty{Kind: kind, Name: wt.Name, Mutbl: mutability(wt.Mut)}
	if wt.Elem != nil {
		elem, err := d.ty(wt.Elem)
		if err != nil {
			return hir.Ty{}, err
		}
		ty.Elem = &elem
	}
	return ty, nil
}

func mutability(mut bool) hir.Mutability {
	if mut {
		return hir.Mut
	}
	return hir.Not
}

func (d *decoder) exprs(wes []*wireExpr) ([]*hir.Expr, error) {
	if len(wes) == 0 {
		return nil, nil
	}
	out := make([]*hir.Expr, 0, len(wes))
	for _, we := range wes {
		e, err := d.expr(we)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// expr converts one wire expression. A nil input yields a nil expression.
func (d *decoder) expr(we *wireExpr) (*hir.Expr, error) {
	if we == nil {
		return nil, nil
	}
	kind, ok := hir.ParseExprKind(we.Kind)
	if !ok {
		return nil, fmt.Errorf("node %d: %w: %q", we.ID, ErrUnknownKind, we.Kind)
	}
	span, err := d.span(we.Span)
	if err != nil {
		return nil, fmt.Errorf("node %d: %w", we.ID, err)
	}
	e := &hir.Expr{ID: hir.HirID(we.ID), Kind: kind, Span: span}

	// Children are decoded up front; each kind picks the ones it uses.
	operand, err := d.expr(we.Operand)
	if err != nil {
		return nil, err
	}
	left, err := d.expr(we.Left)
	if err != nil {
		return nil, err
	}
	right, err := d.expr(we.Right)
	if err != nil {
		return nil, err
	}
	callee, err := d.expr(we.Callee)
	if err != nil {
		return nil, err
	}
	args, err := d.exprs(we.Args)
	if err != nil {
		return nil, err
	}

	switch kind {
	case hir.ExprLit:
		e.Data = &hir.LitData{Text: we.Text}
	case hir.ExprPath:
		e.Data = &hir.PathData{Name: we.Text}
	case hir.ExprUnary:
		op, ok := parseUnOp(we.Op)
		if !ok {
			return nil, fmt.Errorf("node %d: %w: unary op %q", we.ID, ErrUnknownKind, we.Op)
		}
		e.Data = &hir.UnaryData{Op: op, Operand: operand}
	case hir.ExprBinary:
		e.Data = &hir.BinaryData{Op: we.Op, Left: left, Right: right}
	case hir.ExprAddrOf:
		bk := hir.BorrowRef
		if we.Raw {
			bk = hir.BorrowRaw
		}
		e.Data = &hir.AddrOfData{Kind: bk, Mutbl: mutability(we.Mut), Operand: operand}
	case hir.ExprCall:
		e.Data = &hir.CallData{Callee: callee, Args: args}
	case hir.ExprMethodCall:
		e.Data = &hir.MethodCallData{Method: we.Text, Args: args}
	case hir.ExprTup:
		e.Data = &hir.TupData{Elems: args}
	case hir.ExprArray:
		e.Data = &hir.ArrayData{Elems: args}
	case hir.ExprField:
		e.Data = &hir.FieldData{Base: operand, Name: we.Text}
	case hir.ExprIndex:
		e.Data = &hir.IndexData{Base: left, Index: right}
	case hir.ExprMatch:
		src := hir.MatchNormal
		if we.Source != "" {
			if src, ok = hir.ParseMatchSource(we.Source); !ok {
				return nil, fmt.Errorf("node %d: %w: match source %q", we.ID, ErrUnknownKind, we.Source)
			}
		}
		arms, err := d.arms(we.Arms)
		if err != nil {
			return nil, err
		}
		e.Data = &hir.MatchData{Scrutinee: operand, Arms: arms, Source: src}
	case hir.ExprBlock:
		block, err := d.block(we.Block)
		if err != nil {
			return nil, err
		}
		e.Data = &hir.BlockData{Block: block}
	case hir.ExprDropTemps:
		e.Data = &hir.DropTempsData{Inner: operand}
	case hir.ExprClosure:
		e.Data = &hir.ClosureData{Params: we.Params, Body: operand}
	case hir.ExprAssign:
		e.Data = &hir.AssignData{Target: left, Value: right}
	case hir.ExprCast:
		e.Data = &hir.CastData{Operand: operand, Type: we.Text}
	case hir.ExprRet:
		e.Data = &hir.RetData{Value: operand}
	}
	return e, nil
}

func parseUnOp(s string) (hir.UnOp, bool) {
	for _, op := range []hir.UnOp{hir.UnNot, hir.UnNeg, hir.UnDeref} {
		if op.String() == s {
			return op, true
		}
	}
	return 0, false
}

func (d *decoder) arms(was []wireArm) ([]*hir.Arm, error) {
	var out []*hir.Arm
	for _, wa := range was {
		span, err := d.span(wa.Span)
		if err != nil {
			return nil, err
		}
		guard, err := d.expr(wa.Guard)
		if err != nil {
			return nil, err
		}
		body, err := d.expr(wa.Body)
		if err != nil {
			return nil, err
		}
		out = append(out, &hir.Arm{Span: span, Pat: wa.Pat, Guard: guard, Body: body})
	}
	return out, nil
}

func (d *decoder) block(wb *wireBlock) (*hir.Block, error) {
	if wb == nil {
		return nil, nil
	}
	span, err := d.span(wb.Span)
	if err != nil {
		return nil, err
	}
	b := &hir.Block{ID: hir.HirID(wb.ID), Span: span}
	for _, ws := range wb.Stmts {
		s, err := d.stmt(ws)
		if err != nil {
			return nil, err
		}
		b.Stmts = append(b.Stmts, s)
	}
	if b.Expr, err = d.expr(wb.Expr); err != nil {
		return nil, err
	}
	return b, nil
}

func (d *decoder) stmt(ws wireStmt) (*hir.Stmt, error) {
	kind, ok := hir.ParseStmtKind(ws.Kind)
	if !ok {
		return nil, fmt.Errorf("stmt %d: %w: %q", ws.ID, ErrUnknownKind, ws.Kind)
	}
	span, err := d.span(ws.Span)
	if err != nil {
		return nil, err
	}
	s := &hir.Stmt{ID: hir.HirID(ws.ID), Kind: kind, Span: span}
	switch kind {
	case hir.StmtLocal:
		init, err := d.expr(ws.Init)
		if err != nil {
			return nil, err
		}
		s.Local = &hir.Local{Name: ws.Name, Init: init}
	case hir.StmtExpr, hir.StmtSemi:
		if s.Expr, err = d.expr(ws.Expr); err != nil {
			return nil, err
		}
	}
	return s, nil
}
