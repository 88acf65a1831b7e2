package connect

import (
	"github.com/katalvlaran/wfst/fst"
)

// TopOrderVisitor records DFS finishing order and detects cycles. After
// the traversal, when Acyclic holds, Order[s] is the topological
// position of state s.
type TopOrderVisitor[W any] struct {
	// Order[s] is s's topological position; valid when Acyclic.
	Order []fst.StateID

	// Acyclic reports whether no back arc was seen.
	Acyclic bool

	finish []fst.StateID
}

// NewTopOrderVisitor returns a visitor ready for one traversal.
func NewTopOrderVisitor[W any]() *TopOrderVisitor[W] { return &TopOrderVisitor[W]{} }

func (v *TopOrderVisitor[W]) InitVisit(f fst.Expanded[W]) {
	v.finish = v.finish[:0]
	v.Acyclic = true
}

func (v *TopOrderVisitor[W]) InitState(fst.StateID, fst.StateID) bool { return true }

func (v *TopOrderVisitor[W]) TreeArc(fst.StateID, fst.Arc[W]) bool { return true }

func (v *TopOrderVisitor[W]) BackArc(fst.StateID, fst.Arc[W]) bool {
	v.Acyclic = false
	return false // no point exploring further
}

func (v *TopOrderVisitor[W]) ForwardOrCrossArc(fst.StateID, fst.Arc[W]) bool { return true }

func (v *TopOrderVisitor[W]) FinishState(s, _ fst.StateID, _ *fst.Arc[W]) {
	v.finish = append(v.finish, s)
}

func (v *TopOrderVisitor[W]) FinishVisit() {
	if !v.Acyclic {
		return
	}
	v.Order = make([]fst.StateID, len(v.finish))
	for i, s := range v.finish {
		v.Order[s] = fst.StateID(len(v.finish) - 1 - i)
	}
}

// TopSort topologically sorts f in place when it is acyclic, renumbering
// states so every arc goes from a smaller to a larger id, and reports
// whether it did. A cyclic machine is left unchanged with
// Cyclic|NotTopSorted set. Sorting twice is a no-op.
func TopSort[W any](f fst.MutableFst[W]) bool {
	v := NewTopOrderVisitor[W]()
	Visit[W](f, v)

	if !v.Acyclic {
		f.SetProperties(fst.Cyclic|fst.NotTopSorted,
			fst.Cyclic|fst.Acyclic|fst.TopSorted|fst.NotTopSorted)
		return false
	}
	fst.StateSort(f, v.Order)
	f.SetProperties(fst.Acyclic|fst.InitialAcyclic|fst.TopSorted,
		fst.Cyclic|fst.Acyclic|fst.InitialCyclic|fst.InitialAcyclic|
			fst.TopSorted|fst.NotTopSorted)
	return true
}
