// Package wfst is an in-memory library for weighted finite-state
// transducers: automata that map input strings to output strings with a
// weight drawn from a configurable semiring.
//
// 🚀 What is wfst?
//
//	A generic, composable WFST toolkit that brings together:
//		• Semirings: tropical, log, boolean, string — or plug in your own
//		• Core primitives: arcs, expanded & lazy machines, symbol tables
//		• Delayed composition: on-demand state expansion with epsilon filters
//		• Matchers: binary-search arc lookup, composed-machine fast views
//		• Graph passes: Tarjan SCC, trimming, condensation, topological sort
//		• Distances: single-source shortest distance over any semiring
//
// ✨ Why choose wfst?
//
//   - Algebra first – every algorithm is parameterized on the semiring
//   - Lazy where it counts – composition materializes only what you touch
//   - Predictable failure – errors are sticky properties, never panics
//   - Pure Go – generics over interfaces, no cgo, no hidden deps
//
// Under the hood, everything is organized per concern:
//
//	semiring/         — weight algebras and their property bits
//	fst/              — labels, arcs, property bits, Vector machines
//	symtab/           — copy-on-write symbol tables with checksum compat
//	matcher/          — indexed per-state arc lookup contracts
//	cache/            — at-most-once expansion memo for lazy machines
//	compose/          — the delayed composition engine and its filters
//	connect/          — DFS visitors: SCC, trim, condense, topsort
//	shortestdistance/ — queue-based single-source distances
//
// Quick ASCII example:
//
//	    0 ──a:x/0.5──▶ 1 ──b:y/0.25──▶ ((2/0))
//
//	a two-arc transducer mapping "ab" to "xy" with tropical weight 0.75.
//
//	go get github.com/katalvlaran/wfst
package wfst
