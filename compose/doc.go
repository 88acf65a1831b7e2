// Package compose implements delayed composition of weighted
// finite-state transducers.
//
// If A transduces x to y with weight a and B transduces y to z with
// weight b, their composition transduces x to z with the sum over all
// intermediate y of the products: (A∘B)(x,z) = ⊕_y A(x,y) ⊗ B(y,z).
// ComposeFst materializes nothing up front: composed states are
// expanded on first access, canonicalized through a state table mapping
// (state-of-A, state-of-B, filter-state) triples to dense ids, and
// memoized in a cache.
//
// Epsilon labels can pair in multiple orders that would create spurious
// duplicate paths; a composition filter — a small state machine
// consulted on every candidate arc pair — admits exactly one canonical
// ordering. The default Sequence filter reads A's epsilons before B's;
// Null, Trivial, AltSequence, and Match variants are provided.
//
// Requirements: A's output symbol table must be compatible with B's
// input symbol table; A must be sorted on output labels or B on input
// labels (with the default matchers); and the weights must form a
// commutative semiring unless one input is unweighted. Violations latch
// the Error property — never a panic — and are explained through the
// injected Logger.
//
// Complexity, with A unsorted and B sorted:
//
//   - Time:  O(v1·v2·d1·(log d2 + m2))
//   - Space: O(v1·v2)
//
// where vi is the number of states visited, di the maximum out-degree,
// and mi the maximum match multiplicity. The lazy result is not
// trimmed; the eager Compose wrapper trims via connect.Connect unless
// told otherwise.
package compose
