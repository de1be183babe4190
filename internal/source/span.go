package source

import "fmt"

// FileID identifies a file within a FileSet.
type FileID uint32

// Span is a half-open byte range [Lo, Hi) in one file.
//
// Expn is nil for spans written literally in source. Otherwise it points to
// the expansion (macro or compiler desugaring) that produced this node, the
// most recent one applied. Earlier expansions are reachable through Parent.
type Span struct {
	File FileID
	Lo   uint32
	Hi   uint32
	Expn *ExpnData
}

func (s Span) Empty() bool {
	return s.Lo == s.Hi
}

func (s Span) Len() uint32 {
	return s.Hi - s.Lo
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && s.Lo <= other.Lo && other.Hi <= s.Hi
}

// Cover returns the smallest span containing both s and other.
// Spans from different files are not merged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Lo < s.Lo {
		s.Lo = other.Lo
	}
	if other.Hi > s.Hi {
		s.Hi = other.Hi
	}
	return s
}

// FromExpansion reports whether the span was produced by a macro expansion
// or desugaring rather than written literally.
func (s Span) FromExpansion() bool {
	return s.Expn != nil
}

// IsDirectExpnOf reports whether s comes straight out of an invocation of the
// bang macro name. Only the expansion that produced this node is consulted,
// so a node produced by a macro that debug_assert! itself calls does not
// count.
// The second result is the span of the macro call site.
func (s Span) IsDirectExpnOf(name string) (Span, bool) {
	if !s.FromExpansion() {
		return Span{}, false
	}
	data := s.Expn
	if data.Kind == ExpnMacro && data.MacroKind == MacroBang && data.Name == name {
		return data.CallSite, true
	}
	return Span{}, false
}

func (s Span) String() string {
	if s.Expn != nil {
		return fmt.Sprintf("%d:%d-%d (%s)", s.File, s.Lo, s.Hi, s.Expn)
	}
	return fmt.Sprintf("%d:%d-%d", s.File, s.Lo, s.Hi)
}
