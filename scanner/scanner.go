// Package scanner finds the files a lint run will read.
package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
)

type FileInfo struct {
	Path string
	Size int64
}

type Scanner struct {
	rootDir string
	match   func(path string) bool
}

// New returns a scanner over rootDir keeping files accepted by match. A nil
// match keeps every file.
func New(rootDir string, match func(path string) bool) *Scanner {
	return &Scanner{
		rootDir: rootDir,
		match:   match,
	}
}

// Scan walks the tree, skipping hidden directories below the root, and
// returns matching files largest first. Ties keep path order.
func (s *Scanner) Scan() ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(s.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != s.rootDir && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.isTargetFile(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, FileInfo{Path: path, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", s.rootDir, err)
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Size > files[j].Size
	})
	return files, nil
}

func (s *Scanner) isTargetFile(path string) bool {
	return s.match == nil || s.match(path)
}

func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.'
}
