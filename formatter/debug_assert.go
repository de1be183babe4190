package formatter

// lintDocs is where the upstream documentation of the rule lives.
const lintDocs = "https://rust-lang.github.io/rust-clippy/master/index.html#debug_assert_with_mut_call"

// MutableDebugAssertionFormatter renders debug-assert-with-mut-call issues the
// way rustc does, with the release/debug note and a link to the lint docs.
type MutableDebugAssertionFormatter struct{}

func (f *MutableDebugAssertionFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent -}}
{{annotation "note" .Note .Padding -}}
{{annotation "help" "for further information visit ` + lintDocs + `" .Padding}}
`
}
