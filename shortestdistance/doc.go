// Package shortestdistance computes single-source shortest distances
// over a weighted automaton's semiring.
//
// The distance to state s is the ⊕-sum, over all paths from the start
// to s, of the ⊗-product of the path's arc weights. The algorithm is
// the classic queue-based relaxation: pop a state whose tentative
// distance changed, relax its out-arcs, requeue targets whose distance
// moved by more than the convergence delta.
//
// Termination holds for acyclic machines over any semiring and for
// cyclic machines over idempotent semirings (tropical, boolean); over
// non-idempotent semirings a cycle makes convergence delta-dependent
// and, for weight-increasing cycles, possibly endless — callers bound
// that with WithMaxVisits.
//
// Complexity (idempotent case):
//
//   - Time:   O(V + E) per queue pass, number of passes bounded by the
//     longest shortest path
//   - Memory: O(V)
//
// The convergence tolerance is the semiring's own comparison delta
// (semiring.Tropical{Delta: ...} and friends); a distance that moves by
// less than the semiring's Equal can detect is considered settled.
//
// Options:
//
//   - WithMaxVisits(n)  hard cap on total relaxation steps.
//
// Errors:
//
//   - ErrFstNil       a nil machine.
//   - ErrNoStart      the machine has no start state.
//   - ErrNonConverged the visit cap was reached before convergence.
package shortestdistance
