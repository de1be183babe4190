package source

import (
	"bytes"
	"fmt"
	"go/token"
	"path/filepath"
	"sort"

	"fortio.org/safecast"
)

// File is one source file known to a FileSet.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	// LineIdx holds the offset of every '\n' in Content.
	LineIdx []uint32
}

// FileSet manages the source files a crate dump refers to.
type FileSet struct {
	files []File
	index map[string]FileID
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		index: make(map[string]FileID),
	}
}

// Add stores a file and returns its ID. Adding the same path again creates
// a new ID and the index points to the latest version.
func (fs *FileSet) Add(path string, content []byte) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(n)
	path = filepath.ToSlash(filepath.Clean(path))
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
	})
	fs.index[path] = id
	return id
}

// Len returns the number of files in the set.
func (fs *FileSet) Len() int {
	return len(fs.files)
}

// Get returns the file with the given ID, or nil if there is none.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

// Lookup returns the latest file added under path.
func (fs *FileSet) Lookup(path string) (*File, bool) {
	id, ok := fs.index[filepath.ToSlash(filepath.Clean(path))]
	if !ok {
		return nil, false
	}
	return &fs.files[id], true
}

// Position converts a byte offset into a token.Position with 1-based line
// and column. Unknown files yield a zero Position.
func (fs *FileSet) Position(id FileID, off uint32) token.Position {
	f := fs.Get(id)
	if f == nil {
		return token.Position{}
	}
	line, col := f.lineCol(off)
	return token.Position{
		Filename: f.Path,
		Offset:   int(off),
		Line:     line,
		Column:   col,
	}
}

// Range returns the start and end positions of a span.
func (fs *FileSet) Range(s Span) (start, end token.Position) {
	return fs.Position(s.File, s.Lo), fs.Position(s.File, s.Hi)
}

// Lines splits the file content into lines without their terminators.
func (f *File) Lines() []string {
	parts := bytes.Split(f.Content, []byte{'\n'})
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = string(bytes.TrimSuffix(p, []byte{'\r'}))
	}
	return out
}

func (f *File) lineCol(off uint32) (int, int) {
	// number of newlines strictly before off
	line := sort.Search(len(f.LineIdx), func(i int) bool { return f.LineIdx[i] >= off })
	var start uint32
	if line > 0 {
		start = f.LineIdx[line-1] + 1
	}
	return line + 1, int(off-start) + 1
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}
