package allow

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/dbglint/internal/hir"
	"github.com/gnolang/dbglint/internal/source"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"clippy::debug_assert_with_mut_call", "debug-assert-with-mut-call"},
		{"debug-assert-with-mut-call", "debug-assert-with-mut-call"},
		{" clippy::nursery ", "nursery"},
		{"dead_code", "dead-code"},
		{"", ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestParseNames(t *testing.T) {
	t.Parallel()

	names := parseNames([]string{"clippy::nursery, dead_code", "", "clippy::debug_assert_with_mut_call"})
	assert.Len(t, names, 3)
	for _, want := range []string{"nursery", "dead-code", "debug-assert-with-mut-call"} {
		_, ok := names[want]
		assert.True(t, ok, want)
	}
}

func TestIsAllowed(t *testing.T) {
	t.Parallel()

	src := "fn a() {\n    x;\n}\n#[allow(clippy::debug_assert_with_mut_call)]\nfn b() {\n    y;\n}\n#[allow(clippy::nursery)]\nfn c() {\n    z;\n}\n"
	files := source.NewFileSet()
	files.Add("src/lib.rs", []byte(src))

	span := func(lo, hi int) source.Span { return source.Span{Lo: uint32(lo), Hi: uint32(hi)} }
	crate := &hir.Crate{
		Files: files,
		Bodies: []*hir.Body{
			{Owner: "a", Span: span(0, 17)},
			{Owner: "b", Span: span(63, 80), Allow: []string{"clippy::debug_assert_with_mut_call"}},
			{Owner: "c", Span: span(107, 124), Allow: []string{"clippy::nursery"}},
		},
	}
	m := FromCrate(crate)
	require.Equal(t, 2, m.Len())

	at := func(off int) token.Position {
		return files.Position(0, uint32(off))
	}

	tests := []struct {
		name  string
		pos   token.Position
		rule  string
		group string
		want  bool
	}{
		{"body without attribute", at(13), "debug-assert-with-mut-call", "nursery", false},
		{"allowed by name", at(76), "debug-assert-with-mut-call", "nursery", true},
		{"allowed by clippy spelling", at(76), "clippy::debug_assert_with_mut_call", "", true},
		{"other rule in named scope", at(76), "other-rule", "nursery", false},
		{"allowed by group", at(120), "debug-assert-with-mut-call", "nursery", true},
		{"group given but rule has none", at(120), "debug-assert-with-mut-call", "", false},
		{"outside every body", at(90), "debug-assert-with-mut-call", "nursery", false},
		{"other file", token.Position{Filename: "src/main.rs", Offset: 76}, "debug-assert-with-mut-call", "nursery", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, m.IsAllowed(tt.pos, tt.rule, tt.group))
		})
	}
}

func TestNilManager(t *testing.T) {
	t.Parallel()

	var m *Manager
	assert.False(t, m.IsAllowed(token.Position{Filename: "a.rs"}, "r", "g"))
	assert.Equal(t, 0, FromCrate(nil).Len())
}
