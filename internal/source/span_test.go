package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpan_IsDirectExpnOf(t *testing.T) {
	t.Parallel()

	callSite := Span{File: 0, Lo: 4, Hi: 30}
	debugAssert := &ExpnData{Kind: ExpnMacro, MacroKind: MacroBang, Name: "debug_assert", CallSite: callSite}
	assertInner := &ExpnData{Kind: ExpnMacro, MacroKind: MacroBang, Name: "assert", CallSite: callSite, Parent: debugAssert}

	tests := []struct {
		name     string
		span     Span
		macro    string
		wantOK   bool
		wantSite Span
	}{
		{
			name:  "literal span",
			span:  Span{Lo: 4, Hi: 30},
			macro: "debug_assert",
		},
		{
			name:     "direct expansion",
			span:     Span{Lo: 4, Hi: 30, Expn: debugAssert},
			macro:    "debug_assert",
			wantOK:   true,
			wantSite: callSite,
		},
		{
			name:  "other macro name",
			span:  Span{Lo: 4, Hi: 30, Expn: debugAssert},
			macro: "debug_assert_eq",
		},
		{
			name:  "nested expansion only counts the producing macro",
			span:  Span{Lo: 4, Hi: 30, Expn: assertInner},
			macro: "debug_assert",
		},
		{
			name:  "attribute macro with the same name",
			span:  Span{Expn: &ExpnData{Kind: ExpnMacro, MacroKind: MacroAttr, Name: "debug_assert"}},
			macro: "debug_assert",
		},
		{
			name:  "desugaring",
			span:  Span{Expn: &ExpnData{Kind: ExpnDesugaring, Name: "debug_assert"}},
			macro: "debug_assert",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			site, ok := tt.span.IsDirectExpnOf(tt.macro)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantSite, site)
		})
	}
}

func TestSpan_CoverAndContains(t *testing.T) {
	t.Parallel()

	a := Span{File: 1, Lo: 10, Hi: 20}
	b := Span{File: 1, Lo: 15, Hi: 30}
	other := Span{File: 2, Lo: 0, Hi: 100}

	assert.Equal(t, Span{File: 1, Lo: 10, Hi: 30}, a.Cover(b))
	assert.Equal(t, a, a.Cover(other))
	assert.True(t, a.Cover(b).Contains(a))
	assert.False(t, a.Contains(b))
	assert.False(t, other.Contains(a))
	assert.Equal(t, uint32(10), a.Len())
	assert.True(t, Span{Lo: 3, Hi: 3}.Empty())
}

func TestMacroBacktrace(t *testing.T) {
	t.Parallel()

	outer := &ExpnData{Kind: ExpnMacro, Name: "debug_assert_eq"}
	inner := &ExpnData{Kind: ExpnMacro, Name: "assert_eq", Parent: outer}

	assert.Empty(t, MacroBacktrace(Span{}))
	assert.Equal(t, []*ExpnData{inner, outer}, MacroBacktrace(Span{Expn: inner}))

	cyclic := &ExpnData{Kind: ExpnMacro, Name: "loop"}
	cyclic.Parent = cyclic
	assert.Len(t, MacroBacktrace(Span{Expn: cyclic}), 128)
}
