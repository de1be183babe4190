package internal

import (
	"github.com/gnolang/dbglint/internal/hir"
	"github.com/gnolang/dbglint/internal/lints"
	tt "github.com/gnolang/dbglint/internal/types"
)

/*
* Implement each lint rule as a separate struct
 */

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Check runs the lint rule on the crate loaded from filename and returns a slice of Issues.
	Check(filename string, crate *hir.Crate) ([]tt.Issue, error)

	// Name returns the name of the lint rule.
	Name() string

	// Severity returns the severity issues of this rule are reported with.
	Severity() tt.Severity

	// SetSeverity changes the severity of the lint rule.
	SetSeverity(tt.Severity)
}

type MutableDebugAssertionRule struct {
	severity tt.Severity
}

func NewMutableDebugAssertionRule() LintRule {
	return &MutableDebugAssertionRule{
		severity: tt.SeverityWarning,
	}
}

func (r *MutableDebugAssertionRule) Check(_ string, crate *hir.Crate) ([]tt.Issue, error) {
	return lints.DetectMutableDebugAssertion(crate, r.severity)
}

func (r *MutableDebugAssertionRule) Name() string {
	return lints.DebugAssertWithMutCall
}

func (r *MutableDebugAssertionRule) Severity() tt.Severity {
	return r.severity
}

func (r *MutableDebugAssertionRule) SetSeverity(severity tt.Severity) {
	r.severity = severity
}
