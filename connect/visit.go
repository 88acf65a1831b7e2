package connect

import (
	"github.com/katalvlaran/wfst/fst"
)

// Visitation colors.
const (
	white = iota // undiscovered
	gray         // on the DFS stack
	black        // fully explored
)

// Visitor receives the events of one depth-first traversal. Boolean
// callbacks return false to abandon further exploration; the traversal
// still unwinds, delivering the remaining finish events.
type Visitor[W any] interface {
	// InitVisit is called once before any state is visited.
	InitVisit(f fst.Expanded[W])

	// InitState is called when s is discovered; root is the root of the
	// current DFS tree.
	InitState(s, root fst.StateID) bool

	// TreeArc is called for an arc to an undiscovered state, before
	// that state is entered.
	TreeArc(s fst.StateID, arc fst.Arc[W]) bool

	// BackArc is called for an arc to a state on the DFS stack.
	BackArc(s fst.StateID, arc fst.Arc[W]) bool

	// ForwardOrCrossArc is called for an arc to a fully explored state.
	ForwardOrCrossArc(s fst.StateID, arc fst.Arc[W]) bool

	// FinishState is called when s's exploration completes; parent is
	// the state whose arc entered s (NoStateID at a root), and arc that
	// arc (nil at a root).
	FinishState(s, parent fst.StateID, arc *fst.Arc[W])

	// FinishVisit is called once after the last finish event.
	FinishVisit()
}

// stackEntry tracks one gray state and the index of the arc being
// explored.
type stackEntry struct {
	s   fst.StateID
	arc int
}

// Visit runs a depth-first traversal of f, rooted first at the start
// state and then at every remaining undiscovered state in id order, so
// every state is visited exactly once. The stack is explicit; depth is
// bounded by memory, not by goroutine stack.
func Visit[W any](f fst.Expanded[W], visitor Visitor[W]) {
	visitor.InitVisit(f)

	n := f.NumStates()
	start := f.Start()
	if start == fst.NoStateID || n == 0 {
		visitor.FinishVisit()
		return
	}

	color := make([]uint8, n)
	stack := make([]stackEntry, 0, 16)
	exploring := true
	cursor := fst.StateID(0) // next-root scan position

	for root := start; ; {
		if color[root] == white {
			color[root] = gray
			stack = append(stack, stackEntry{s: root})
			exploring = visitor.InitState(root, root)

			for len(stack) > 0 {
				top := &stack[len(stack)-1]
				s := top.s
				arcs := f.Arcs(s)

				if !exploring || top.arc >= len(arcs) {
					// Unwind: s is done.
					color[s] = black
					stack = stack[:len(stack)-1]
					if len(stack) == 0 {
						visitor.FinishState(s, fst.NoStateID, nil)
						continue
					}
					parent := &stack[len(stack)-1]
					parc := f.Arcs(parent.s)[parent.arc]
					visitor.FinishState(s, parent.s, &parc)
					parent.arc++
					continue
				}

				arc := arcs[top.arc]
				switch color[arc.NextState] {
				case white:
					if !visitor.TreeArc(s, arc) {
						exploring = false
						continue
					}
					color[arc.NextState] = gray
					stack = append(stack, stackEntry{s: arc.NextState})
					if !visitor.InitState(arc.NextState, root) {
						exploring = false
					}
				case gray:
					if !visitor.BackArc(s, arc) {
						exploring = false
						continue
					}
					top.arc++
				default: // black
					if !visitor.ForwardOrCrossArc(s, arc) {
						exploring = false
						continue
					}
					top.arc++
				}
			}
		}

		if !exploring {
			break
		}
		// Next root: the smallest undiscovered state. The cursor only
		// rises, so root selection is O(V) over the whole traversal.
		for int(cursor) < n && color[cursor] != white {
			cursor++
		}
		if int(cursor) >= n {
			break
		}
		root = cursor
	}

	visitor.FinishVisit()
}
