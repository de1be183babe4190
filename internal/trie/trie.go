// Package trie stores path prefixes, one segment per edge.
package trie

import (
	"path/filepath"
	"sort"
	"strings"
)

// NodeIndex is a node's position in the arena.
type NodeIndex int

// Arena holds every node in one slice; children point at each other by
// index.
type Arena struct {
	nodes []arenaNode
}

type arenaNode struct {
	children map[string]NodeIndex
	isEnd    bool
}

// NewArena creates an arena holding only the root node.
func NewArena() *Arena {
	arena := &Arena{nodes: make([]arenaNode, 0, 64)}
	arena.newNode()
	return arena
}

func (a *Arena) newNode() NodeIndex {
	idx := NodeIndex(len(a.nodes))
	a.nodes = append(a.nodes, arenaNode{children: make(map[string]NodeIndex)})
	return idx
}

// Insert marks sequence as a stored path.
func (a *Arena) Insert(sequence []string) {
	current := NodeIndex(0)
	for _, part := range sequence {
		childIdx, exists := a.nodes[current].children[part]
		if !exists {
			childIdx = a.newNode()
			a.nodes[current].children[part] = childIdx
		}
		current = childIdx
	}
	a.nodes[current].isEnd = true
}

// walk follows sequence from the root and reports the depth of the first
// stored path it passes through, or -1.
func (a *Arena) walk(sequence []string) int {
	current := NodeIndex(0)
	if a.nodes[current].isEnd {
		return 0
	}
	for i, part := range sequence {
		next, ok := a.nodes[current].children[part]
		if !ok {
			return -1
		}
		current = next
		if a.nodes[current].isEnd {
			return i + 1
		}
	}
	return -1
}

// Equal reports whether both arenas store the same paths.
func (a *Arena) Equal(b *Arena) bool {
	if len(a.nodes) != len(b.nodes) {
		return false
	}
	return a.equalNodes(0, b, 0)
}

func (a *Arena) equalNodes(aIdx NodeIndex, b *Arena, bIdx NodeIndex) bool {
	nodeA, nodeB := a.nodes[aIdx], b.nodes[bIdx]
	if nodeA.isEnd != nodeB.isEnd || len(nodeA.children) != len(nodeB.children) {
		return false
	}
	for key, childA := range nodeA.children {
		childB, exists := nodeB.children[key]
		if !exists || !a.equalNodes(childA, b, childB) {
			return false
		}
	}
	return true
}

// DebugString renders the arena as `seg(child...)`, with `*` marking stored
// paths. Children are sorted.
func (a *Arena) DebugString() string {
	var sb strings.Builder
	a.debugStringNode(&sb, 0)
	return sb.String()
}

func (a *Arena) debugStringNode(sb *strings.Builder, idx NodeIndex) {
	node := a.nodes[idx]
	if node.isEnd {
		sb.WriteString("*")
	}

	keys := make([]string, 0, len(node.children))
	for key := range node.children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		sb.WriteString(key)
		sb.WriteString("(")
		a.debugStringNode(sb, node.children[key])
		sb.WriteString(")")
	}
}

// Trie is a set of path prefixes.
type Trie struct {
	arena *Arena
}

func New() *Trie {
	return &Trie{arena: NewArena()}
}

// Insert stores sequence.
func (t *Trie) Insert(sequence []string) {
	t.arena.Insert(sequence)
}

// HasPrefixOf reports whether some stored sequence is a prefix of sequence,
// the sequence itself included.
func (t *Trie) HasPrefixOf(sequence []string) bool {
	return t.arena.walk(sequence) >= 0
}

// Equal reports whether both tries store the same sequences.
func (t *Trie) Equal(other *Trie) bool {
	return t.arena.Equal(other.arena)
}

func (t *Trie) DebugString() string {
	return t.arena.DebugString()
}

// Segments splits a slash- or OS-separated path into its elements, dropping
// `.` and empty parts.
func Segments(path string) []string {
	path = filepath.ToSlash(filepath.Clean(path))
	var out []string
	for _, part := range strings.Split(path, "/") {
		if part != "" && part != "." {
			out = append(out, part)
		}
	}
	return out
}
