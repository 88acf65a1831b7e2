// Package semiring defines the weight algebras that weighted automata
// combine path weights over.
//
// A semiring (W, ⊕, ⊗, 0̄, 1̄) supplies two associative operations with
// identities: Plus (⊕) collects alternative paths, Times (⊗) extends a
// path by one arc. The package expresses a semiring as a capability set —
// a Semiring[W] value passed at FST construction — rather than as methods
// on the weight type itself, so plain Go types (float64, bool, string)
// serve directly as weights.
//
// Provided semirings:
//
//   - Tropical: (min, +) over float64 — shortest-path algebra.
//   - Log:      (-log(e^-a + e^-b), +) over float64 — probability algebra.
//   - Boolean:  (or, and) over bool — unweighted acceptance.
//   - String:   (longest common prefix, concat) over string — the left
//     string semiring; the one non-commutative algebra here.
//
// Algebraic property bits (Commutative, Idempotent, Path, ...) let
// algorithms refuse inputs they are not correct for; delayed composition,
// for example, requires a commutative semiring over weighted inputs.
package semiring
