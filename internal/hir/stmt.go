package hir

import "github.com/gnolang/dbglint/internal/source"

// StmtKind enumerates statement kinds.
type StmtKind uint8

const (
	// StmtLocal is a `let` binding.
	StmtLocal StmtKind = iota
	// StmtItem is a nested item; its body, if any, is a separate Body.
	StmtItem
	// StmtExpr is an expression without a trailing semicolon.
	StmtExpr
	// StmtSemi is an expression followed by `;`.
	StmtSemi
)

var stmtKindNames = [...]string{
	StmtLocal: "Local",
	StmtItem:  "Item",
	StmtExpr:  "Expr",
	StmtSemi:  "Semi",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "Unknown"
}

// ParseStmtKind is the inverse of StmtKind.String.
func ParseStmtKind(s string) (StmtKind, bool) {
	for k, name := range stmtKindNames {
		if name == s {
			return StmtKind(k), true
		}
	}
	return 0, false
}

type Stmt struct {
	ID   HirID
	Kind StmtKind
	Span source.Span
	// Expr is set for StmtExpr and StmtSemi.
	Expr *Expr
	// Local is set for StmtLocal.
	Local *Local
}

type Local struct {
	Name string
	Init *Expr
}

// Block is `{ stmts; expr }`. Expr is the trailing expression, if any.
type Block struct {
	ID    HirID
	Span  source.Span
	Stmts []*Stmt
	Expr  *Expr
}

// Arm is one `pat if guard => body` arm of a match.
type Arm struct {
	Span  source.Span
	Pat   string
	Guard *Expr
	Body  *Expr
}
