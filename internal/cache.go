package internal

import (
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	tt "github.com/gnolang/dbglint/internal/types"
)

const (
	cacheFileName = "lint.cache"
	// cacheSchema changes whenever the layout of cached issues does.
	cacheSchema = 1

	DefaultCacheMaxAge = 24 * time.Hour
)

type fileMetadata struct {
	Hash         string    `msgpack:"hash"`
	LastModified time.Time `msgpack:"mtime"`
}

type CacheEntry struct {
	Metadata     fileMetadata `msgpack:"meta"`
	Issues       []tt.Issue   `msgpack:"issues"`
	CreatedAt    time.Time    `msgpack:"created"`
	LastAccessed time.Time    `msgpack:"accessed"`
}

type cacheFile struct {
	Schema  int                   `msgpack:"schema"`
	Entries map[string]CacheEntry `msgpack:"entries"`
}

// Cache keeps the issues of dump files that did not change since they were
// last linted.
type Cache struct {
	CacheDir         string
	entries          map[string]CacheEntry
	mutex            sync.RWMutex
	maxAge           time.Duration
	dependencyFiles  []string
	dependencyHashes map[string]string
}

func NewCache(cacheDir string) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &Cache{
		CacheDir:         cacheDir,
		entries:          make(map[string]CacheEntry),
		maxAge:           DefaultCacheMaxAge,
		dependencyHashes: make(map[string]string),
	}

	if err := cache.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}

	return cache, nil
}

func (c *Cache) path() string {
	return filepath.Join(c.CacheDir, cacheFileName)
}

func (c *Cache) load() error {
	file, err := os.Open(c.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil // cache file doesn't exist yet. This is fine.
	}
	if err != nil {
		return fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	var stored cacheFile
	if err := msgpack.NewDecoder(file).Decode(&stored); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}
	if stored.Schema != cacheSchema {
		// written by another version; start over
		return nil
	}
	if stored.Entries != nil {
		c.entries = stored.Entries
	}
	return nil
}

func (c *Cache) save() error {
	file, err := os.Create(c.path())
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	stored := cacheFile{Schema: cacheSchema, Entries: c.entries}
	if err := msgpack.NewEncoder(file).Encode(&stored); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}

	return nil
}

func (c *Cache) Set(filename string, issues []tt.Issue) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	metadata, err := getFileMetadata(filename)
	if err != nil {
		return fmt.Errorf("failed to get file metadata: %w", err)
	}

	now := time.Now()
	c.entries[filename] = CacheEntry{
		Metadata:     metadata,
		Issues:       issues,
		CreatedAt:    now,
		LastAccessed: now,
	}

	return c.save()
}

func (c *Cache) Get(filename string) ([]tt.Issue, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[filename]
	if !exists {
		return nil, false
	}

	if c.isEntryInvalid(filename, entry) {
		delete(c.entries, filename)
		return nil, false
	}

	entry.LastAccessed = time.Now()
	c.entries[filename] = entry

	return entry.Issues, true
}

func (c *Cache) isEntryInvalid(filename string, entry CacheEntry) bool {
	// too old
	if time.Since(entry.CreatedAt) > c.maxAge {
		return true
	}

	currentMetadata, err := getFileMetadata(filename)
	if err != nil || currentMetadata.Hash != entry.Metadata.Hash ||
		!currentMetadata.LastModified.Equal(entry.Metadata.LastModified) {
		return true
	}

	return c.haveDependenciesChanged()
}

// SetDependencies registers files, such as the configuration, whose change
// invalidates every entry.
func (c *Cache) SetDependencies(files ...string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.dependencyFiles = files
	c.dependencyHashes = make(map[string]string, len(files))
	return c.updateDependencyHashes()
}

func (c *Cache) haveDependenciesChanged() bool {
	for _, file := range c.dependencyFiles {
		hash, err := getFileHash(file)
		if err != nil {
			return true
		}

		if hash != c.dependencyHashes[file] {
			return true
		}
	}

	return false
}

func (c *Cache) updateDependencyHashes() error {
	for _, file := range c.dependencyFiles {
		hash, err := getFileHash(file)
		if err != nil {
			return fmt.Errorf("failed to get hash for %s: %w", file, err)
		}
		c.dependencyHashes[file] = hash
	}
	return nil
}

func (c *Cache) SetMaxAge(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.maxAge = duration
}

func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]CacheEntry)
	_ = c.save() // ignore error aas this is a manual operation
}

func getFileMetadata(filename string) (fileMetadata, error) {
	file, err := os.Open(filename)
	if err != nil {
		return fileMetadata{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return fileMetadata{}, fmt.Errorf("failed to calculate hash: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		return fileMetadata{}, fmt.Errorf("failed to get file info: %w", err)
	}

	return fileMetadata{
		Hash:         fmt.Sprintf("%x", hash.Sum(nil)),
		LastModified: info.ModTime(),
	}, nil
}

func getFileHash(filename string) (string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
