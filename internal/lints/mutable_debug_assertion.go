package lints

import (
	"fmt"

	"github.com/gnolang/dbglint/internal/hir"
	"github.com/gnolang/dbglint/internal/source"
	tt "github.com/gnolang/dbglint/internal/types"
)

const (
	DebugAssertWithMutCall = "debug-assert-with-mut-call"

	debugAssertCategory = "nursery"
	debugAssertNote     = "debug assertions are compiled out of release builds, " +
		"so the mutation only happens in debug builds"
)

var debugMacroNames = [...]string{"debug_assert", "debug_assert_eq", "debug_assert_ne"}

// MutableDebugAssertionChecker flags calls taking mutable arguments inside
// debug_assert!, debug_assert_eq! and debug_assert_ne!.
type MutableDebugAssertionChecker struct {
	typeck   *hir.TypeckResults
	reporter Reporter
	severity tt.Severity
}

func NewMutableDebugAssertionChecker(typeck *hir.TypeckResults, reporter Reporter, severity tt.Severity) *MutableDebugAssertionChecker {
	return &MutableDebugAssertionChecker{
		typeck:   typeck,
		reporter: reporter,
		severity: severity,
	}
}

// Check inspects every expression of body.
func (c *MutableDebugAssertionChecker) Check(body *hir.Body) {
	hir.Inspect(body.Value, func(e *hir.Expr) bool {
		c.checkExpr(e)
		return true
	})
}

func (c *MutableDebugAssertionChecker) checkExpr(e *hir.Expr) {
	for _, name := range debugMacroNames {
		if _, ok := e.Span.IsDirectExpnOf(name); !ok {
			continue
		}
		if span, ok := extractCall(c.typeck, e); ok {
			c.reporter.Report(c.severity, DebugAssertWithMutCall, span,
				fmt.Sprintf("do not call a function with mutable arguments inside of `%s!`", name))
		}
	}
}

// extractCall matches the block a debug assertion expands to and returns
// the span of the first operand sub-expression that takes a mutable
// reference.
func extractCall(typeck *hir.TypeckResults, e *hir.Expr) (source.Span, bool) {
	stmt, ok := singleSemi(e)
	if !ok {
		return source.Span{}, false
	}

	// debug_assert
	if cond, ok := assertCondition(stmt); ok {
		return findMutUse(typeck, cond)
	}

	// debug_assert_{eq,ne}
	if lhs, rhs, ok := assertCmpOperands(stmt); ok {
		for _, operand := range [...]*hir.Expr{lhs, rhs} {
			if operand == nil {
				continue
			}
			if span, ok := findMutUse(typeck, operand); ok {
				return span, true
			}
		}
	}
	return source.Span{}, false
}

// singleSemi returns the expression of `{ expr; }`.
func singleSemi(e *hir.Expr) (*hir.Expr, bool) {
	block, ok := asBlock(e)
	if !ok || len(block.Stmts) != 1 {
		return nil, false
	}
	s := block.Stmts[0]
	if s == nil || s.Kind != hir.StmtSemi || s.Expr == nil {
		return nil, false
	}
	return s.Expr, true
}

// assertCondition matches `match DropTemps(!cond) { .. }`.
func assertCondition(e *hir.Expr) (*hir.Expr, bool) {
	m, ok := asMatch(e)
	if !ok {
		return nil, false
	}
	dropped, ok := asDropTemps(m.Scrutinee)
	if !ok {
		return nil, false
	}
	return asNot(dropped)
}

// assertCmpOperands matches `{ match (&lhs, &rhs) { .. } }`. A tuple element
// that is not a reference borrow (`&` or `&mut`) yields nil for that side.
func assertCmpOperands(e *hir.Expr) (lhs, rhs *hir.Expr, ok bool) {
	block, ok := asBlock(e)
	if !ok {
		return nil, nil, false
	}
	m, ok := asMatch(block.Expr)
	if !ok {
		return nil, nil, false
	}
	elems, ok := asTuple(m.Scrutinee)
	if !ok || len(elems) != 2 {
		return nil, nil, false
	}
	lhs, _ = asRef(elems[0])
	rhs, _ = asRef(elems[1])
	return lhs, rhs, true
}

func asBlock(e *hir.Expr) (*hir.Block, bool) {
	if e == nil {
		return nil, false
	}
	d, ok := e.Data.(*hir.BlockData)
	if !ok || d.Block == nil {
		return nil, false
	}
	return d.Block, true
}

func asMatch(e *hir.Expr) (*hir.MatchData, bool) {
	if e == nil {
		return nil, false
	}
	d, ok := e.Data.(*hir.MatchData)
	return d, ok
}

func asDropTemps(e *hir.Expr) (*hir.Expr, bool) {
	if e == nil {
		return nil, false
	}
	d, ok := e.Data.(*hir.DropTempsData)
	if !ok || d.Inner == nil {
		return nil, false
	}
	return d.Inner, true
}

func asNot(e *hir.Expr) (*hir.Expr, bool) {
	if e == nil {
		return nil, false
	}
	d, ok := e.Data.(*hir.UnaryData)
	if !ok || d.Op != hir.UnNot || d.Operand == nil {
		return nil, false
	}
	return d.Operand, true
}

func asTuple(e *hir.Expr) ([]*hir.Expr, bool) {
	if e == nil {
		return nil, false
	}
	d, ok := e.Data.(*hir.TupData)
	if !ok {
		return nil, false
	}
	return d.Elems, true
}

func asRef(e *hir.Expr) (*hir.Expr, bool) {
	if e == nil {
		return nil, false
	}
	d, ok := e.Data.(*hir.AddrOfData)
	if !ok || d.Kind != hir.BorrowRef || d.Operand == nil {
		return nil, false
	}
	return d.Operand, true
}

// findMutUse reports where evaluating e takes a mutable reference.
func findMutUse(typeck *hir.TypeckResults, e *hir.Expr) (source.Span, bool) {
	v := &mutArgVisitor{typeck: typeck}
	v.VisitExpr(e)
	return v.result()
}

// mutArgVisitor searches one operand. The span is recorded on the way down,
// at the innermost node that is not itself conclusive, and only counts once
// something below it turns out to be mutable.
type mutArgVisitor struct {
	typeck   *hir.TypeckResults
	exprSpan source.Span
	hasSpan  bool
	found    bool
}

func (v *mutArgVisitor) result() (source.Span, bool) {
	if v.found && v.hasSpan {
		return v.exprSpan, true
	}
	return source.Span{}, false
}

func (v *mutArgVisitor) VisitExpr(e *hir.Expr) {
	switch d := e.Data.(type) {
	case *hir.AddrOfData:
		if d.Kind == hir.BorrowRef && d.Mutbl == hir.Mut {
			v.found = true
			return
		}
	case *hir.PathData:
		if v.mutAdjusted(e) {
			v.found = true
			return
		}
		hir.WalkExpr(v, e)
		return
	case *hir.MatchData:
		// await desugarings are not user-written mutation sites
		if d.Source == hir.MatchAwaitDesugar {
			return
		}
	}
	if v.found {
		return
	}
	v.exprSpan = e.Span
	v.hasSpan = true
	hir.WalkExpr(v, e)
}

func (v *mutArgVisitor) mutAdjusted(e *hir.Expr) bool {
	for _, adj := range v.typeck.Adjustments(e.ID) {
		if adj.Target.IsMutRef() {
			return true
		}
	}
	return false
}

// DetectMutableDebugAssertion runs the rule over every body of crate.
func DetectMutableDebugAssertion(crate *hir.Crate, severity tt.Severity) ([]tt.Issue, error) {
	collector := NewIssueCollector(crate.Files, debugAssertCategory, debugAssertNote)
	checker := NewMutableDebugAssertionChecker(crate.Typeck, collector, severity)
	for _, body := range crate.Bodies {
		if body == nil || body.Value == nil {
			continue
		}
		checker.Check(body)
	}
	return collector.Issues(), nil
}
