// Package connect provides the offline graph passes over expanded
// FSTs: depth-first traversal with a visitor, Tarjan strongly-connected
// components, trimming (Connect), condensation, undirected connected
// components, and topological sort.
//
// The traversal driver keeps an explicit stack, so arbitrarily deep
// machines cannot overflow the native call stack. Visitors receive
// callbacks on discovery, on tree/back/forward-or-cross arcs, and on
// finish events; SCCVisitor and TopOrderVisitor are the two consumers
// the rest of the library builds on.
//
// Complexity: every pass is
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// where V = states and E = arcs.
package connect
