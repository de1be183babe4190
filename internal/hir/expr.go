package hir

import "github.com/gnolang/dbglint/internal/source"

// ExprKind enumerates expression kinds.
type ExprKind uint8

const (
	ExprLit ExprKind = iota
	ExprPath
	ExprUnary
	ExprBinary
	// ExprAddrOf is `&e`, `&mut e` or a raw borrow.
	ExprAddrOf
	ExprCall
	// ExprMethodCall holds the receiver as its first argument.
	ExprMethodCall
	ExprTup
	ExprArray
	ExprField
	ExprIndex
	// ExprMatch also represents desugared `if`, `while`, `for`, `?` and `.await`;
	// MatchData.Source tells which.
	ExprMatch
	ExprBlock
	// ExprDropTemps evaluates its operand and drops temporaries right after.
	ExprDropTemps
	ExprClosure
	ExprAssign
	ExprCast
	ExprRet
)

var exprKindNames = [...]string{
	ExprLit:        "Lit",
	ExprPath:       "Path",
	ExprUnary:      "Unary",
	ExprBinary:     "Binary",
	ExprAddrOf:     "AddrOf",
	ExprCall:       "Call",
	ExprMethodCall: "MethodCall",
	ExprTup:        "Tup",
	ExprArray:      "Array",
	ExprField:      "Field",
	ExprIndex:      "Index",
	ExprMatch:      "Match",
	ExprBlock:      "Block",
	ExprDropTemps:  "DropTemps",
	ExprClosure:    "Closure",
	ExprAssign:     "Assign",
	ExprCast:       "Cast",
	ExprRet:        "Ret",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Unknown"
}

// ParseExprKind is the inverse of ExprKind.String.
func ParseExprKind(s string) (ExprKind, bool) {
	for k, name := range exprKindNames {
		if name == s {
			return ExprKind(k), true
		}
	}
	return 0, false
}

// Expr is a typed expression node.
type Expr struct {
	ID   HirID
	Kind ExprKind
	Span source.Span
	Data ExprData
}

// ExprData is the kind-specific payload of an Expr.
type ExprData interface {
	exprData()
}

type LitData struct {
	Text string
}

type PathData struct {
	Name string
}

// UnOp is a unary operator.
type UnOp uint8

const (
	UnNot UnOp = iota
	UnNeg
	UnDeref
)

func (op UnOp) String() string {
	switch op {
	case UnNot:
		return "!"
	case UnNeg:
		return "-"
	case UnDeref:
		return "*"
	}
	return "?"
}

type UnaryData struct {
	Op      UnOp
	Operand *Expr
}

type BinaryData struct {
	Op    string
	Left  *Expr
	Right *Expr
}

// BorrowKind distinguishes `&e` from `&raw const e`.
type BorrowKind uint8

const (
	BorrowRef BorrowKind = iota
	BorrowRaw
)

type AddrOfData struct {
	Kind    BorrowKind
	Mutbl   Mutability
	Operand *Expr
}

type CallData struct {
	Callee *Expr
	Args   []*Expr
}

type MethodCallData struct {
	Method string
	// Args[0] is the receiver.
	Args []*Expr
}

type TupData struct {
	Elems []*Expr
}

type ArrayData struct {
	Elems []*Expr
}

type FieldData struct {
	Base *Expr
	Name string
}

type IndexData struct {
	Base  *Expr
	Index *Expr
}

// MatchSource records which surface construct a match was lowered from.
type MatchSource uint8

const (
	MatchNormal MatchSource = iota
	MatchIfDesugar
	MatchIfLetDesugar
	MatchWhileDesugar
	MatchForLoopDesugar
	MatchTryDesugar
	MatchAwaitDesugar
)

var matchSourceNames = [...]string{
	MatchNormal:         "normal",
	MatchIfDesugar:      "if",
	MatchIfLetDesugar:   "if-let",
	MatchWhileDesugar:   "while",
	MatchForLoopDesugar: "for",
	MatchTryDesugar:     "try",
	MatchAwaitDesugar:   "await",
}

func (s MatchSource) String() string {
	if int(s) < len(matchSourceNames) {
		return matchSourceNames[s]
	}
	return "unknown"
}

// ParseMatchSource is the inverse of MatchSource.String.
func ParseMatchSource(s string) (MatchSource, bool) {
	for src, name := range matchSourceNames {
		if name == s {
			return MatchSource(src), true
		}
	}
	return 0, false
}

type MatchData struct {
	Scrutinee *Expr
	Arms      []*Arm
	Source    MatchSource
}

type BlockData struct {
	Block *Block
}

type DropTempsData struct {
	Inner *Expr
}

type ClosureData struct {
	Params []string
	Body   *Expr
}

type AssignData struct {
	Target *Expr
	Value  *Expr
}

type CastData struct {
	Operand *Expr
	Type    string
}

type RetData struct {
	// Value is nil for a bare `return`.
	Value *Expr
}

func (*LitData) exprData()        {}
func (*PathData) exprData()       {}
func (*UnaryData) exprData()      {}
func (*BinaryData) exprData()     {}
func (*AddrOfData) exprData()     {}
func (*CallData) exprData()       {}
func (*MethodCallData) exprData() {}
func (*TupData) exprData()        {}
func (*ArrayData) exprData()      {}
func (*FieldData) exprData()      {}
func (*IndexData) exprData()      {}
func (*MatchData) exprData()      {}
func (*BlockData) exprData()      {}
func (*DropTempsData) exprData()  {}
func (*ClosureData) exprData()    {}
func (*AssignData) exprData()     {}
func (*CastData) exprData()       {}
func (*RetData) exprData()        {}
