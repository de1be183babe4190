package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		setup    func() (*Trie, *Trie)
		expectEq bool
	}{
		{
			name:     "identical_empty_tries",
			setup:    func() (*Trie, *Trie) { return New(), New() },
			expectEq: true,
		},
		{
			name: "identical_multiple_paths",
			setup: func() (*Trie, *Trie) {
				t1, t2 := New(), New()
				for _, path := range [][]string{{"vendor"}, {"target", "debug"}, {"target", "release"}} {
					t1.Insert(path)
					t2.Insert(path)
				}
				return t1, t2
			},
			expectEq: true,
		},
		{
			name: "different_paths",
			setup: func() (*Trie, *Trie) {
				t1, t2 := New(), New()
				t1.Insert([]string{"target", "debug"})
				t2.Insert([]string{"target", "release"})
				return t1, t2
			},
			expectEq: false,
		},
		{
			name: "different_path_lengths",
			setup: func() (*Trie, *Trie) {
				t1, t2 := New(), New()
				t1.Insert([]string{"target", "debug"})
				t2.Insert([]string{"target"})
				return t1, t2
			},
			expectEq: false,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			t1, t2 := tc.setup()
			assert.Equal(t, tc.expectEq, t1.Equal(t2))
			assert.Equal(t, tc.expectEq, t2.Equal(t1))
		})
	}
}

func TestHasPrefixOf(t *testing.T) {
	t.Parallel()

	tr := New()
	tr.Insert([]string{"target", "debug"})
	tr.Insert([]string{"vendor"})

	tests := []struct {
		path string
		want bool
	}{
		{"vendor", true},
		{"vendor/crate/dump.json", true},
		{"target/debug/deps/x.json", true},
		{"target/debug", true},
		{"target", false},
		{"target/release/x.json", false},
		{"src/vendor/x.json", false},
		{"vendored/x.json", false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tr.HasPrefixOf(Segments(tc.path)))
		})
	}
}

func TestHasPrefixOfRoot(t *testing.T) {
	t.Parallel()

	tr := New()
	assert.False(t, tr.HasPrefixOf([]string{"a"}))

	tr.Insert(nil)
	assert.True(t, tr.HasPrefixOf([]string{"a"}))
	assert.True(t, tr.HasPrefixOf(nil))
}

func TestSegments(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"a", "b", "c.json"}, Segments("./a//b/c.json"))
	assert.Equal(t, []string{"a"}, Segments("a/b/.."))
	assert.Nil(t, Segments("."))
}

func TestDebugString(t *testing.T) {
	t.Parallel()

	tr := New()
	tr.Insert([]string{"b"})
	tr.Insert([]string{"a", "c"})
	assert.Equal(t, "a(c(*))b(*)", tr.DebugString())
}
