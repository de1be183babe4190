// Package allow tracks where lints are silenced by `#[allow(...)]`
// attributes on the items that own each body.
package allow

import (
	"go/token"
	"strings"

	"github.com/gnolang/dbglint/internal/hir"
)

const toolPrefix = "clippy::"

// Manager answers whether a rule is allowed at a position.
type Manager struct {
	// scopes maps filename to the allow scopes in that file.
	scopes map[string][]allowScope
}

// allowScope is the byte range of one body together with the lint names
// allowed inside it.
type allowScope struct {
	names map[string]struct{}
	start token.Position
	end   token.Position
}

// FromCrate collects the allow lists of every body of crate.
func FromCrate(crate *hir.Crate) *Manager {
	m := &Manager{scopes: make(map[string][]allowScope)}
	if crate == nil || crate.Files == nil {
		return m
	}
	for _, body := range crate.Bodies {
		if body == nil || len(body.Allow) == 0 {
			continue
		}
		start, end := crate.Files.Range(body.Span)
		if start.Filename == "" {
			continue
		}
		m.scopes[start.Filename] = append(m.scopes[start.Filename], allowScope{
			names: parseNames(body.Allow),
			start: start,
			end:   end,
		})
	}
	return m
}

// Normalize maps a lint name as written in an attribute to the form rules
// are registered under: the tool prefix is dropped and underscores become
// dashes, so `clippy::debug_assert_with_mut_call` and
// `debug-assert-with-mut-call` are the same.
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, toolPrefix)
	return strings.ReplaceAll(name, "_", "-")
}

func parseNames(list []string) map[string]struct{} {
	names := make(map[string]struct{}, len(list))
	for _, entry := range list {
		// tolerate a frontend that hands over the raw `a, b` attribute text
		for _, name := range strings.Split(entry, ",") {
			if name = Normalize(name); name != "" {
				names[name] = struct{}{}
			}
		}
	}
	return names
}

// IsAllowed reports whether rule, or the group it belongs to, is allowed at
// pos. An empty group only matches the rule name.
func (m *Manager) IsAllowed(pos token.Position, rule, group string) bool {
	if m == nil {
		return false
	}
	scopes, exists := m.scopes[pos.Filename]
	if !exists {
		return false
	}
	rule, group = Normalize(rule), Normalize(group)
	for _, s := range scopes {
		if pos.Offset < s.start.Offset || pos.Offset > s.end.Offset {
			continue
		}
		if _, ok := s.names[rule]; ok {
			return true
		}
		if group == "" {
			continue
		}
		if _, ok := s.names[group]; ok {
			return true
		}
	}
	return false
}

// Len returns the number of scopes with at least one allowed lint.
func (m *Manager) Len() int {
	n := 0
	for _, s := range m.scopes {
		n += len(s)
	}
	return n
}
