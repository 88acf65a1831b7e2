// Package cache provides the per-state memo backing lazy FSTs.
//
// A lazy machine computes its start, finality, and arc sets on first
// access and stores them here; the store guarantees that once a state is
// marked expanded, repeated requests return the stored arcs without
// re-running expansion.
//
// A retention limit trades memory for that guarantee: with
// WithLimit(n), only the n most recently expanded states keep their
// arcs, and an evicted state may be expanded again on a later access
// (lazy expansion is deterministic, so the re-expansion reproduces the
// identical arc set). The eager composition wrapper streams states in id
// order exactly once and therefore runs with limit 1; the unlimited
// default preserves strict at-most-once expansion.
package cache
