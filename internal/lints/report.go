package lints

import (
	"github.com/gnolang/dbglint/internal/source"
	tt "github.com/gnolang/dbglint/internal/types"
)

// Reporter records a finding. Rules never look at what happens to it.
type Reporter interface {
	Report(sev tt.Severity, rule string, span source.Span, msg string)
}

// IssueCollector is a Reporter that turns findings into positioned issues.
type IssueCollector struct {
	files    *source.FileSet
	category string
	note     string
	issues   []tt.Issue
}

// NewIssueCollector creates a collector resolving spans through files. The
// category and note are attached to every collected issue.
func NewIssueCollector(files *source.FileSet, category, note string) *IssueCollector {
	return &IssueCollector{files: files, category: category, note: note}
}

func (c *IssueCollector) Report(sev tt.Severity, rule string, span source.Span, msg string) {
	start, end := c.files.Range(span)
	c.issues = append(c.issues, tt.Issue{
		Rule:     rule,
		Category: c.category,
		Filename: start.Filename,
		Message:  msg,
		Note:     c.note,
		Start:    start,
		End:      end,
		Severity: sev,
	})
}

// Issues returns everything collected so far.
func (c *IssueCollector) Issues() []tt.Issue {
	return c.issues
}
