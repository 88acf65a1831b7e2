package connect

import (
	"github.com/katalvlaran/wfst/fst"
)

// Connect trims f: it deletes every state that is inaccessible from the
// start or cannot reach a final state, along with all their arcs, then
// marks f Accessible and CoAccessible. Applying Connect twice equals
// applying it once.
func Connect[W any](f fst.MutableFst[W]) {
	v := NewSCCVisitor[W]()
	Visit[W](f, v)

	var dead []fst.StateID
	for s := 0; s < len(v.Access); s++ {
		if !v.Access[s] || !v.CoAccess[s] {
			dead = append(dead, fst.StateID(s))
		}
	}
	f.DeleteStates(dead)
	f.SetProperties(fst.Accessible|fst.CoAccessible,
		fst.Accessible|fst.NotAccessible|fst.CoAccessible|fst.NotCoAccessible)
}

// Condense writes into out an acyclic machine with one state per SCC of
// in: arcs within an SCC are dropped, arcs between SCCs are kept with
// their endpoints mapped, and final weights of merged states are
// Plus-combined. It returns the state-to-SCC mapping.
func Condense[W any](in fst.Expanded[W], out fst.MutableFst[W]) []int {
	sr := in.Semiring()
	v := NewSCCVisitor[W]()
	Visit[W](in, v)

	out.DeleteAllStates()
	for i := 0; i < v.NumSCCs(); i++ {
		out.AddState()
	}
	for s := 0; s < len(v.SCC); s++ {
		c := fst.StateID(v.SCC[s])
		if fst.StateID(s) == in.Start() {
			out.SetStart(c)
		}
		if final := in.Final(fst.StateID(s)); !sr.Equal(final, sr.Zero()) {
			out.SetFinal(c, sr.Plus(out.Final(c), final))
		}
		for _, arc := range in.Arcs(fst.StateID(s)) {
			if next := fst.StateID(v.SCC[arc.NextState]); next != c {
				arc.NextState = next
				out.AddArc(c, arc)
			}
		}
	}
	out.SetProperties(fst.Acyclic|fst.InitialAcyclic,
		fst.Acyclic|fst.Cyclic|fst.InitialAcyclic|fst.InitialCyclic)
	return v.SCC
}
