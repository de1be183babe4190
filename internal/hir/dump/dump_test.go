package dump

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/dbglint/internal/hir"
	"github.com/gnolang/dbglint/internal/hir/hirtest"
	"github.com/gnolang/dbglint/internal/source"
)

func TestLoad_Fixture(t *testing.T) {
	t.Parallel()

	crate, err := Load(filepath.Join("testdata", "debug_assert.json"))
	require.NoError(t, err)

	assert.Equal(t, "fixture", crate.Name)
	require.Len(t, crate.Bodies, 1)
	body, ok := crate.Body("main")
	require.True(t, ok)

	var calls []*hir.Expr
	hir.Inspect(body.Value, func(e *hir.Expr) bool {
		if e.Kind == hir.ExprCall {
			calls = append(calls, e)
		}
		return true
	})
	require.Len(t, calls, 2)

	take := calls[0]
	assert.False(t, take.Span.FromExpansion())
	start, end := crate.Files.Range(take.Span)
	assert.Equal(t, "src/main.rs", start.Filename)
	assert.Equal(t, 3, start.Line)
	assert.Equal(t, 19, start.Column)
	assert.Equal(t, 31, end.Column)

	panicCall := calls[1]
	trace := source.MacroBacktrace(panicCall.Span)
	require.Len(t, trace, 2)
	assert.Equal(t, "assert", trace[0].Name)
	assert.Equal(t, "debug_assert", trace[1].Name)
	assert.Same(t, trace[1], trace[0].Parent)

	ty, ok := crate.Typeck.NodeType(17)
	require.True(t, ok)
	assert.True(t, ty.IsMutRef())
	assert.Equal(t, "&mut i32", ty.String())
}

func sampleCrate() *hir.Crate {
	src := "fn f(v: &mut Vec<u8>) {\n    debug_assert_eq!(v.pop(), Some(1));\n    debug_assert!(g(&mut *v));\n}\n"
	b := hir.NewBuilder()
	span := func(lo, hi uint32) source.Span { return source.Span{Lo: lo, Hi: hi} }

	v := b.Adjust(b.Path(span(45, 46), "v"), hirtest.MutBorrow("Vec<u8>"))
	pop := b.MethodCall(span(45, 52), "pop", v)
	some := b.Call(span(54, 61), b.Path(span(54, 58), "Some"), b.Lit(span(59, 60), "1"))
	eq := hirtest.DebugAssertCmp(b, "debug_assert_eq", span(28, 62), pop, some)

	deref := b.Unary(span(89, 91), hir.UnDeref, b.Path(span(90, 91), "v"))
	g := b.Call(span(82, 92), b.Path(span(82, 83), "g"), b.RefMut(span(84, 91), deref))
	dbg := hirtest.DebugAssert(b, span(68, 93), g)
	closure := b.Closure(span(0, 1), []string{"a", "b"}, b.Cast(span(0, 1), b.Path(span(0, 1), "a"), "u8"))

	body := hirtest.Body(b, "f", span(0, 96),
		b.Semi(span(28, 63), eq.Root),
		b.Semi(span(68, 94), dbg.Root),
		b.Let(span(0, 1), "c", closure),
		b.ExprStmt(span(0, 1), b.Ret(span(0, 1), nil)),
	)
	body.Allow = []string{"clippy::pedantic"}
	b.Typeck.SetNodeType(pop.ID, hir.Ty{Kind: hir.TyAdt, Name: "Option<u8>"})
	return hirtest.Crate(b, "src/lib.rs", src, body)
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	for _, format := range []Format{FormatJSON, FormatMsgpack} {
		format := format
		t.Run(format.String(), func(t *testing.T) {
			t.Parallel()

			want := sampleCrate()
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, want, format))

			got, err := Decode(&buf, format, "")
			require.NoError(t, err)

			if diff := cmp.Diff(want.Bodies, got.Bodies, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("bodies mismatch (-want +got):\n%s", diff)
			}
			for _, id := range want.Typeck.AdjustedIDs() {
				assert.Equal(t, want.Typeck.Adjustments(id), got.Typeck.Adjustments(id))
			}
			for _, id := range want.Typeck.TypedIDs() {
				wantTy, _ := want.Typeck.NodeType(id)
				gotTy, ok := got.Typeck.NodeType(id)
				assert.True(t, ok)
				assert.Equal(t, wantTy, gotTy)
			}
			f, ok := got.Files.Lookup("src/lib.rs")
			require.True(t, ok)
			assert.Equal(t, want.Files.Get(0).Content, f.Content)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "crate.hirpack")
	require.NoError(t, Save(path, sampleCrate()))

	crate, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, crate.Bodies, 1)

	assert.ErrorIs(t, Save(filepath.Join(dir, "crate.txt"), sampleCrate()), ErrUnknownFormat)
}

func TestLoad_SourceFromDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "a.rs"), []byte("fn a() {}\n"), 0o644))
	dumpPath := filepath.Join(dir, "a.json")
	require.NoError(t, os.WriteFile(dumpPath, []byte(`{"schema":1,"name":"a","files":[{"path":"src/a.rs"},{"path":"src/missing.rs"}],"bodies":[]}`), 0o644))

	crate, err := Load(dumpPath)
	require.NoError(t, err)
	f, ok := crate.Files.Lookup("src/a.rs")
	require.True(t, ok)
	assert.Equal(t, "fn a() {}\n", string(f.Content))

	missing, ok := crate.Files.Lookup("src/missing.rs")
	require.True(t, ok)
	assert.Empty(t, missing.Content)
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		json string
		err  error
	}{
		{
			name: "schema",
			json: `{"schema":7,"files":[],"bodies":[]}`,
			err:  ErrSchemaVersion,
		},
		{
			name: "unknown expr kind",
			json: `{"schema":1,"files":[{"path":"a.rs","source":"x"}],"bodies":[{"owner":"a","span":{"file":0,"lo":0,"hi":1},"value":{"id":1,"kind":"Yield","span":{"file":0,"lo":0,"hi":1}}}]}`,
			err:  ErrUnknownKind,
		},
		{
			name: "unknown unary op",
			json: `{"schema":1,"files":[{"path":"a.rs","source":"x"}],"bodies":[{"owner":"a","span":{"file":0,"lo":0,"hi":1},"value":{"id":1,"kind":"Unary","op":"~","span":{"file":0,"lo":0,"hi":1}}}]}`,
			err:  ErrUnknownKind,
		},
		{
			name: "dangling expansion",
			json: `{"schema":1,"files":[{"path":"a.rs","source":"x"}],"bodies":[{"owner":"a","span":{"file":0,"lo":0,"hi":1,"expn":3},"value":null}]}`,
			err:  ErrDanglingExpansion,
		},
		{
			name: "dangling parent",
			json: `{"schema":1,"files":[],"expansions":[{"kind":"macro","name":"m","call_site":{"file":0,"lo":0,"hi":0},"parent":2}],"bodies":[]}`,
			err:  ErrDanglingExpansion,
		},
		{
			name: "unknown file",
			json: `{"schema":1,"files":[{"path":"a.rs","source":"x"}],"bodies":[{"owner":"a","span":{"file":4,"lo":0,"hi":1},"value":null}]}`,
			err:  ErrUnknownFile,
		},
		{
			name: "unknown adjustment",
			json: `{"schema":1,"files":[],"bodies":[],"adjustments":[{"id":1,"steps":[{"kind":"reborrow","target":{"kind":"ref"}}]}]}`,
			err:  ErrUnknownKind,
		},
		{
			name: "unknown type",
			json: `{"schema":1,"files":[],"bodies":[],"types":[{"id":1,"ty":{"kind":"slice"}}]}`,
			err:  ErrUnknownKind,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(strings.NewReader(tt.json), FormatJSON, "")
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestFormatOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"crate.json", FormatJSON, true},
		{"dir/crate.HIRPACK", FormatMsgpack, true},
		{"crate.msgpack", FormatMsgpack, true},
		{"main.rs", 0, false},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		if !tt.ok {
			assert.ErrorIs(t, err, ErrUnknownFormat)
			assert.False(t, IsDumpFile(tt.path))
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.True(t, IsDumpFile(tt.path))
	}
}
