package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gnolang/dbglint/internal/allow"
	"github.com/gnolang/dbglint/internal/hir"
	"github.com/gnolang/dbglint/internal/hir/dump"
	"github.com/gnolang/dbglint/internal/trie"
	tt "github.com/gnolang/dbglint/internal/types"
)

// Engine manages the linting process.
type Engine struct {
	rootDir      string
	ignoredRules map[string]bool
	ignoredPaths []string
	ignoredDirs  *trie.Trie
	rules        map[string]LintRule
	cache        *Cache
	logger       *zap.Logger

	// watch mode
	watcher    *fsnotify.Watcher
	watchDirs  []string
	isWatching bool
	watchDone  chan struct{}
	watchMu    sync.Mutex
	onIssues   func(filename string, issues []tt.Issue)
}

// NewEngine creates a new lint engine.
func NewEngine(rootDir string, rules map[string]tt.ConfigRule) (*Engine, error) {
	engine := &Engine{
		rootDir:   rootDir,
		logger:    zap.NewNop(),
		watchDirs: []string{rootDir},
	}
	engine.applyRules(rules)

	return engine, nil
}

// Define the ruleConstructor type
type ruleConstructor func() LintRule

// Define the ruleMap type
type ruleMap map[string]ruleConstructor

// Create a map to hold the mappings of rule names to their constructors
var allRuleConstructors = ruleMap{
	"debug-assert-with-mut-call": NewMutableDebugAssertionRule,
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) {
	e.rules = make(map[string]LintRule)
	e.registerDefaultRules()

	// Iterate over the rules and apply severity
	for key, rule := range rules {
		key = allow.Normalize(key)
		r := e.findRule(key)
		if r == nil {
			newRuleCstr := allRuleConstructors[key]
			if newRuleCstr == nil {
				// Unknown rule, continue to the next one
				continue
			}
			newRule := newRuleCstr()
			newRule.SetSeverity(rule.Severity)
			e.rules[key] = newRule
		} else {
			if rule.Severity == tt.SeverityOff {
				e.IgnoreRule(key)
			}
			r.SetSeverity(rule.Severity)
		}
	}
}

func (e *Engine) registerDefaultRules() {
	// iterate over allRuleConstructors and add them to the rules map if severity is not off
	for key, newRuleCstr := range allRuleConstructors {
		newRule := newRuleCstr()
		if newRule.Severity() != tt.SeverityOff {
			e.rules[key] = newRule
		}
	}
}

func (e *Engine) findRule(name string) LintRule {
	if rule, ok := e.rules[name]; ok {
		return rule
	}
	return nil
}

// Rules returns the names of the active rules, sorted.
func (e *Engine) Rules() []string {
	names := make([]string, 0, len(e.rules))
	for name := range e.rules {
		if !e.ignoredRules[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// SetLogger replaces the engine's logger. A nil logger disables logging.
func (e *Engine) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	e.logger = logger
}

// UseCache makes Run consult and fill c.
func (e *Engine) UseCache(c *Cache) {
	e.cache = c
}

// Run loads the dump at filename, applies all lint rules to it and returns
// a slice of Issues.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	if e.isIgnoredPath(filename) {
		return nil, nil
	}

	if e.cache != nil {
		if issues, ok := e.cache.Get(filename); ok {
			e.logger.Debug("cache hit", zap.String("file", filename))
			return issues, nil
		}
	}

	crate, err := dump.Load(filename)
	if err != nil {
		return nil, fmt.Errorf("error loading dump: %w", err)
	}

	issues, err := e.RunCrate(filename, crate)
	if err != nil {
		return nil, err
	}

	// map issues back to source files next to the dump
	dir := filepath.Dir(filename)
	for i := range issues {
		issues[i].Filename = resolveSourcePath(dir, issues[i].Filename)
	}

	if e.cache != nil {
		if err := e.cache.Set(filename, issues); err != nil {
			e.logger.Warn("failed to cache issues", zap.String("file", filename), zap.Error(err))
		}
	}
	return issues, nil
}

// RunCrate applies all lint rules to an already loaded crate. Issues are
// sorted by file, position and rule.
func (e *Engine) RunCrate(filename string, crate *hir.Crate) ([]tt.Issue, error) {
	allowMgr := allow.FromCrate(crate)

	var wg sync.WaitGroup
	var mu sync.Mutex

	var allIssues []tt.Issue
	var errs []error
	for _, rule := range e.rules {
		if e.ignoredRules[rule.Name()] {
			continue
		}
		wg.Add(1)
		go func(r LintRule) {
			defer wg.Done()
			issues, err := r.Check(filename, crate)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("rule %s: %w", r.Name(), err))
				return
			}
			allIssues = append(allIssues, filterAllowedIssues(allowMgr, issues)...)
		}(rule)
	}
	wg.Wait()

	for _, err := range errs {
		e.logger.Error("rule failed", zap.String("file", filename), zap.Error(err))
	}

	sortIssues(allIssues)
	return allIssues, nil
}

func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[allow.Normalize(rule)] = true
}

// IgnorePath excludes files matching the glob pattern, or lying below the
// directory, from Run.
func (e *Engine) IgnorePath(path string) {
	path = filepath.Clean(path)
	e.ignoredPaths = append(e.ignoredPaths, path)
	if strings.ContainsAny(path, "*?[") {
		return
	}
	if e.ignoredDirs == nil {
		e.ignoredDirs = trie.New()
	}
	e.ignoredDirs.Insert(trie.Segments(path))
}

func (e *Engine) isIgnoredPath(path string) bool {
	path = filepath.Clean(path)
	for _, ignored := range e.ignoredPaths {
		if matched, _ := filepath.Match(ignored, path); matched {
			return true
		}
		if matched, _ := filepath.Match(ignored, filepath.Base(path)); matched {
			return true
		}
	}
	return e.ignoredDirs != nil && e.ignoredDirs.HasPrefixOf(trie.Segments(path))
}

// filterAllowedIssues drops issues silenced by `#[allow(...)]` attributes.
func filterAllowedIssues(m *allow.Manager, issues []tt.Issue) []tt.Issue {
	if m == nil || m.Len() == 0 {
		return issues
	}
	filtered := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		if !m.IsAllowed(issue.Start, issue.Rule, issue.Category) {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

func sortIssues(issues []tt.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Start.Offset != b.Start.Offset {
			return a.Start.Offset < b.Start.Offset
		}
		return a.Rule < b.Rule
	})
}

func resolveSourcePath(dir, name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines []string
}

// ReadSourceFile reads the content of a file and returns it as a `SourceCode` struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	return &SourceCode{Lines: lines}, nil
}
