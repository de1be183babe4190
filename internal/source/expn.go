package source

import "fmt"

// ExpnKind tells what kind of expansion produced a span.
type ExpnKind uint8

const (
	ExpnRoot ExpnKind = iota
	ExpnMacro
	ExpnDesugaring
)

func (k ExpnKind) String() string {
	switch k {
	case ExpnRoot:
		return "root"
	case ExpnMacro:
		return "macro"
	case ExpnDesugaring:
		return "desugaring"
	}
	return "unknown"
}

// MacroKind distinguishes macro invocation styles.
type MacroKind uint8

const (
	MacroBang MacroKind = iota
	MacroAttr
	MacroDerive
)

func (k MacroKind) String() string {
	switch k {
	case MacroBang:
		return "bang"
	case MacroAttr:
		return "attr"
	case MacroDerive:
		return "derive"
	}
	return "unknown"
}

// ExpnData describes one expansion step. Parent links to the expansion the
// call site itself came from, if any.
type ExpnData struct {
	Kind      ExpnKind
	MacroKind MacroKind
	Name      string
	CallSite  Span
	Parent    *ExpnData
}

func (d *ExpnData) String() string {
	if d == nil {
		return "<root>"
	}
	if d.Kind == ExpnMacro && d.MacroKind == MacroBang {
		return d.Name + "!"
	}
	return fmt.Sprintf("%s %s", d.Kind, d.Name)
}

// MacroBacktrace lists the expansions a span went through, innermost first.
// The walk is bounded by depth so a malformed cyclic chain still terminates.
func MacroBacktrace(s Span) []*ExpnData {
	const maxDepth = 128

	var out []*ExpnData
	for d := s.Expn; d != nil && len(out) < maxDepth; d = d.Parent {
		out = append(out, d)
	}
	return out
}
