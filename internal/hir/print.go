package hir

import (
	"fmt"
	"io"
	"strings"
)

// Printer writes a tree as indented text, one node per line.
type Printer struct {
	w      io.Writer
	typeck *TypeckResults
	indent int
	err    error
}

// NewPrinter creates a printer. typeck may be nil, in which case types and
// adjustments are omitted.
func NewPrinter(w io.Writer, typeck *TypeckResults) *Printer {
	return &Printer{w: w, typeck: typeck}
}

// PrintBody writes the owner line followed by the body's expression tree.
func (p *Printer) PrintBody(b *Body) error {
	p.printf("body %s", b.Owner)
	if len(b.Allow) > 0 {
		p.printf(" allow(%s)", strings.Join(b.Allow, ", "))
	}
	p.printf("\n")
	p.indent++
	p.printExpr(b.Value)
	p.indent--
	return p.err
}

// PrintExpr writes e and everything below it.
func (p *Printer) PrintExpr(e *Expr) error {
	p.printExpr(e)
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) line(format string, args ...any) {
	p.printf("%s", strings.Repeat("  ", p.indent))
	p.printf(format, args...)
}

func (p *Printer) printExpr(e *Expr) {
	if e == nil {
		p.line("<nil>\n")
		return
	}
	p.line("%s#%d %s%s", e.Kind, e.ID, p.detail(e), e.Span)
	if ty, ok := p.typeck.NodeType(e.ID); ok {
		p.printf(" : %s", ty)
	}
	for _, adj := range p.typeck.Adjustments(e.ID) {
		p.printf(" [%s -> %s]", adj.Kind, adj.Target)
	}
	p.printf("\n")

	p.indent++
	switch d := e.Data.(type) {
	case *BlockData:
		p.printBlock(d.Block)
	case *MatchData:
		p.printExpr(d.Scrutinee)
		for _, arm := range d.Arms {
			p.line("arm %s\n", arm.Pat)
			p.indent++
			if arm.Guard != nil {
				p.line("guard\n")
				p.printExpr(arm.Guard)
			}
			p.printExpr(arm.Body)
			p.indent--
		}
	default:
		WalkExpr(printVisitor{p}, e)
	}
	p.indent--
}

func (p *Printer) printBlock(b *Block) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		p.line("%s#%d\n", s.Kind, s.ID)
		p.indent++
		switch {
		case s.Local != nil:
			p.line("let %s\n", s.Local.Name)
			if s.Local.Init != nil {
				p.printExpr(s.Local.Init)
			}
		case s.Expr != nil:
			p.printExpr(s.Expr)
		}
		p.indent--
	}
	if b.Expr != nil {
		p.line("tail\n")
		p.indent++
		p.printExpr(b.Expr)
		p.indent--
	}
}

// detail renders the scalar payload of e, followed by a space when non-empty.
func (p *Printer) detail(e *Expr) string {
	var s string
	switch d := e.Data.(type) {
	case *LitData:
		s = d.Text
	case *PathData:
		s = d.Name
	case *UnaryData:
		s = d.Op.String()
	case *BinaryData:
		s = d.Op
	case *AddrOfData:
		s = "&"
		if d.Kind == BorrowRaw {
			s = "&raw"
		}
		if d.Mutbl == Mut {
			s += " mut"
		}
	case *MethodCallData:
		s = "." + d.Method
	case *FieldData:
		s = "." + d.Name
	case *MatchData:
		s = d.Source.String()
	case *ClosureData:
		s = "|" + strings.Join(d.Params, ", ") + "|"
	case *CastData:
		s = "as " + d.Type
	}
	if s == "" {
		return ""
	}
	return s + " "
}

type printVisitor struct{ p *Printer }

func (v printVisitor) VisitExpr(e *Expr) { v.p.printExpr(e) }
