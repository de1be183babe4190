// Package internal holds the lint engine.
//
// Engine loads typed-tree dumps, runs every registered LintRule over the
// crate, drops issues silenced by `#[allow(...)]` on the owning body and
// returns them sorted by file and position. Results may be cached on disk
// (Cache) and dumps may be re-linted as they change (StartWatching).
//
//	engine, err := internal.NewEngine(".", nil)
//	if err != nil {
//	    // handle error
//	}
//	issues, err := engine.Run("target/hir/crate.json")
//
// Rules live in internal/lints; the tree they inspect is internal/hir.
package internal
