// Package dump reads and writes typed-tree dumps.
//
// A dump is what a frontend exports after type checking: the source files,
// the macro expansion table, every body's expression tree, node types and
// implicit adjustments. Two encodings share one schema: JSON for humans and
// fixtures, MessagePack for large crates.
package dump

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/gnolang/dbglint/internal/hir"
)

var (
	ErrUnknownFormat     = errors.New("unknown dump format")
	ErrSchemaVersion     = errors.New("unsupported dump schema version")
	ErrUnknownKind       = errors.New("unknown node kind")
	ErrDanglingExpansion = errors.New("expansion reference out of range")
	ErrUnknownFile       = errors.New("file reference out of range")
)

// Format is a dump encoding.
type Format uint8

const (
	FormatJSON Format = iota
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	}
	return "unknown"
}

var extensions = map[string]Format{
	".json":    FormatJSON,
	".hirpack": FormatMsgpack,
	".msgpack": FormatMsgpack,
}

// FormatOf picks the encoding from a file name.
func FormatOf(path string) (Format, error) {
	f, ok := extensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	return f, nil
}

// IsDumpFile reports whether path has a dump extension.
func IsDumpFile(path string) bool {
	_, err := FormatOf(path)
	return err == nil
}

// Load reads a dump file. Source files without embedded content are read
// relative to the dump's directory.
func Load(path string) (*hir.Crate, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening dump: %w", err)
	}
	defer f.Close()

	crate, err := Decode(f, format, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return crate, nil
}

// Decode reads one dump from r.
func Decode(r io.Reader, format Format, baseDir string) (*hir.Crate, error) {
	var wc wireCrate
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&wc); err != nil {
			return nil, err
		}
	case FormatMsgpack:
		if err := msgpack.NewDecoder(r).Decode(&wc); err != nil {
			return nil, err
		}
	default:
		return nil, ErrUnknownFormat
	}
	if wc.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrSchemaVersion, wc.Schema)
	}
	return newDecoder(baseDir).crate(&wc)
}

// Save writes crate to path in the encoding implied by its extension.
func Save(path string, crate *hir.Crate) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating dump: %w", err)
	}
	if err := Encode(f, crate, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes crate to w. File contents are always embedded.
func Encode(w io.Writer, crate *hir.Crate, format Format) error {
	wc := newEncoder().crate(crate)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(wc)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(wc)
	}
	return ErrUnknownFormat
}
