// Package codeatlas provides a static source-tree analysis engine that scans
// directory trees of Python packages and builds a structured index of every
// module, class, and top-level callable with fully-qualified public names.
// Downstream consumers (search artifact builders, documentation tooling) take
// the index from here; this package ends at the in-memory result.
//
// # Pipeline
//
// One Analyze call runs three phases over each configured root:
//
//  1. Walk: an iterative traversal discovers package boundaries (directories
//     holding the marker file, __init__.py by default) and loose modules,
//     deriving dotted module names from path segments.
//
//  2. Extract: each file is decoded with best-effort encoding detection and
//     parsed with tree-sitter into a concrete node hierarchy; one
//     ModuleRecord plus Class/MethodRecords are appended per file. A file
//     that fails to decode or parse becomes a FileFailure and the walk
//     continues.
//
//  3. Surface: packages whose boundary file declares __all__ have their
//     re-exported symbols requalified under the exporting package's name;
//     unlisted symbols keep their defining-module names.
//
// # Usage
//
//	a := codeatlas.NewAnalyzer([]string{"path/to/src"})
//	res, err := a.Analyze()
//	if err != nil { ... }
//	for _, c := range res.Classes {
//		fmt.Println(c.FullName)
//	}
//
// A single Analyze call is synchronous and single-threaded. Independent
// Analyzer instances own all of their state and may run concurrently over
// disjoint roots; [Group] does exactly that with a worker pool.
package codeatlas
