// Package fst defines the data model of weighted finite-state
// transducers: labels, states, arcs, property bits, the Fst and
// MutableFst contracts, and Vector, the expanded in-memory
// implementation.
//
// An FST maps input strings to output strings with a weight drawn from a
// semiring (see package semiring). Implementations are either expanded
// (all states materialized, as Vector) or lazy (states computed on
// access, as compose.ComposeFst); both satisfy the same Fst interface.
//
// Conventions, shared by every package in this module:
//
//   - Label 0 is epsilon, the label consuming no symbol on its side.
//   - Label NoLabel (-1) is the no-label sentinel used by matchers.
//   - StateID NoStateID (-1) means "no such state".
//   - A state is final iff its Final weight is not the semiring Zero.
//
// Failures inside FST operations are sticky: the operation latches the
// Error property bit on the machine (operations that take a Logger also
// explain the failure through it). A lazy machine in error, such as
// compose.ComposeFst, answers every later query with NoStateID, Zero, or
// an empty arc set; a Vector keeps its states and arcs and only carries
// the bit. Callers funnel all error checking through a single
// Properties(Error, false) test rather than handling panics.
package fst
