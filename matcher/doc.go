// Package matcher provides indexed arc lookup: random access into the
// arcs leaving a single state, keyed by the label on a chosen side.
//
// The composition engine drives matchers through a find/enumerate
// protocol: SetState positions the matcher, Find(label) locates the
// first arc whose chosen-side label matches, and Done/Value/Next walk
// the remaining matches. Matchers announce which side they index
// (Type), a capability bitset (Flags), and a per-state cost hint
// (Priority) that composition uses to pick the side to match on.
//
// Epsilon policy, shared by every matcher here:
//
//   - Find(0) yields first an implicit self-loop — chosen-side label
//     NoLabel, other side epsilon, weight One, next state the current
//     state — and then any real epsilon arcs.
//   - Find(NoLabel) yields real epsilon arcs only.
//
// The implicit loop is what lets the non-matched side of a composition
// hold in place while this side consumes one of its own epsilons; the
// NoLabel query is how composition's synthetic hold arc reaches the real
// epsilons without also pairing loop with loop.
//
// SortedMatcher is the default implementation: binary search over arcs
// sorted on the chosen side, O(log d + m) per Find. It degrades, not
// fails, on unsorted input only in the sense that its Type probe will
// report the machine unusable for that side — sorting remains the
// caller's responsibility.
package matcher
