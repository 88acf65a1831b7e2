package connect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wfst/connect"
	"github.com/katalvlaran/wfst/fst"
	"github.com/katalvlaran/wfst/semiring"
)

var tropical = semiring.Tropical{}

func arc(il, ol fst.Label, w float64, next fst.StateID) fst.Arc[float64] {
	return fst.Arc[float64]{ILabel: il, OLabel: ol, Weight: w, NextState: next}
}

// buildDeadStates: start 0, final 1; 2 unreachable; 3 reachable but dead.
func buildDeadStates(t *testing.T) *fst.Vector[float64] {
	t.Helper()
	v := fst.NewVector[float64](tropical)
	s0, s1, s2, s3 := v.AddState(), v.AddState(), v.AddState(), v.AddState()
	v.SetStart(s0)
	v.SetFinal(s1, tropical.One())
	v.AddArc(s0, arc(1, 1, 0, s1))
	v.AddArc(s0, arc(2, 2, 0, s3))
	v.AddArc(s2, arc(3, 3, 0, s1))
	return v
}

func TestSCC_CycleAndNumbering(t *testing.T) {
	// 0 → 1 ⇄ 2, 1 → 3(final): SCCs {0}, {1,2}, {3} in topological order.
	v := fst.NewVector[float64](tropical)
	s0, s1, s2, s3 := v.AddState(), v.AddState(), v.AddState(), v.AddState()
	v.SetStart(s0)
	v.SetFinal(s3, tropical.One())
	v.AddArc(s0, arc(1, 1, 0, s1))
	v.AddArc(s1, arc(2, 2, 0, s2))
	v.AddArc(s2, arc(3, 3, 0, s1))
	v.AddArc(s1, arc(4, 4, 0, s3))

	scc := connect.NewSCCVisitor[float64]()
	connect.Visit[float64](v, scc)

	assert.Equal(t, 3, scc.NumSCCs())
	assert.Equal(t, scc.SCC[1], scc.SCC[2])
	assert.Less(t, scc.SCC[0], scc.SCC[1])
	assert.Less(t, scc.SCC[1], scc.SCC[3])

	assert.NotZero(t, scc.Props()&fst.Cyclic)
	assert.Zero(t, scc.Props()&fst.InitialCyclic)
	for s := 0; s < 4; s++ {
		assert.True(t, scc.Access[s], "state %d accessible", s)
		assert.True(t, scc.CoAccess[s], "state %d coaccessible", s)
	}
}

func TestSCC_AccessBits(t *testing.T) {
	v := buildDeadStates(t)
	scc := connect.NewSCCVisitor[float64]()
	connect.Visit[float64](v, scc)

	assert.Equal(t, []bool{true, true, false, true}, scc.Access)
	assert.Equal(t, []bool{true, true, true, false}, scc.CoAccess)
	assert.NotZero(t, scc.Props()&fst.NotAccessible)
	assert.NotZero(t, scc.Props()&fst.NotCoAccessible)
}

func TestConnect_RemovesDeadStates(t *testing.T) {
	v := buildDeadStates(t)
	connect.Connect[float64](v)

	assert.Equal(t, 2, v.NumStates())
	assert.Equal(t, fst.StateID(0), v.Start())
	assert.Equal(t, tropical.One(), v.Final(1))
	require.Equal(t, 1, v.NumArcs(0))
	assert.Equal(t, fst.Label(1), v.Arcs(0)[0].ILabel)

	props := v.Properties(fst.Accessible|fst.CoAccessible, false)
	assert.Equal(t, fst.Accessible|fst.CoAccessible, props)
}

func TestConnect_Idempotent(t *testing.T) {
	v := buildDeadStates(t)
	connect.Connect[float64](v)
	snapshotStates := v.NumStates()
	snapshotArcs := v.NumArcs(0)

	connect.Connect[float64](v)
	assert.Equal(t, snapshotStates, v.NumStates())
	assert.Equal(t, snapshotArcs, v.NumArcs(0))
}

func TestConnect_NoFinalRemovesEverything(t *testing.T) {
	v := fst.NewVector[float64](tropical)
	s0, s1 := v.AddState(), v.AddState()
	v.SetStart(s0)
	v.AddArc(s0, arc(1, 1, 0, s1))

	connect.Connect[float64](v)
	assert.Equal(t, 0, v.NumStates())
	assert.Equal(t, fst.NoStateID, v.Start())
}

func TestCondense(t *testing.T) {
	// 0 → 1 ⇄ 2 → 3(final), self-SCC arcs dropped, output acyclic.
	v := fst.NewVector[float64](tropical)
	s0, s1, s2, s3 := v.AddState(), v.AddState(), v.AddState(), v.AddState()
	v.SetStart(s0)
	v.SetFinal(s3, 0.5)
	v.AddArc(s0, arc(1, 1, 0, s1))
	v.AddArc(s1, arc(2, 2, 0, s2))
	v.AddArc(s2, arc(3, 3, 0, s1))
	v.AddArc(s2, arc(4, 4, 0, s3))

	out := fst.NewVector[float64](tropical)
	scc := connect.Condense[float64](v, out)

	assert.Equal(t, 3, out.NumStates())
	assert.Equal(t, scc[1], scc[2])
	assert.Equal(t, fst.StateID(scc[0]), out.Start())
	assert.Equal(t, 0.5, out.Final(fst.StateID(scc[3])))
	// The 1⇄2 cycle collapses: its internal arcs are gone.
	assert.Equal(t, 1, out.NumArcs(fst.StateID(scc[1])))

	topsortable := connect.TopSort[float64](out)
	assert.True(t, topsortable)
}

func TestTopSort_SortsArcsAscending(t *testing.T) {
	// 2 → 0 → 1 with start 2: ids must be renumbered ascending.
	v := fst.NewVector[float64](tropical)
	s0, s1, s2 := v.AddState(), v.AddState(), v.AddState()
	v.SetStart(s2)
	v.SetFinal(s1, tropical.One())
	v.AddArc(s2, arc(1, 1, 0, s0))
	v.AddArc(s0, arc(2, 2, 0, s1))

	require.True(t, connect.TopSort[float64](v))
	assert.Equal(t, fst.StateID(0), v.Start())
	for s := fst.StateID(0); int(s) < v.NumStates(); s++ {
		for _, a := range v.Arcs(s) {
			assert.Less(t, s, a.NextState, "arc from %d to %d", s, a.NextState)
		}
	}
	props := v.Properties(fst.TopSorted|fst.Acyclic, false)
	assert.Equal(t, fst.TopSorted|fst.Acyclic, props)

	// Sorting a sorted machine changes nothing.
	before := v.Arcs(0)[0]
	require.True(t, connect.TopSort[float64](v))
	assert.Equal(t, before, v.Arcs(0)[0])
	assert.Equal(t, fst.StateID(0), v.Start())
}

func TestTopSort_CyclicIsNoOp(t *testing.T) {
	v := fst.NewVector[float64](tropical)
	s0 := v.AddState()
	v.SetStart(s0)
	v.SetFinal(s0, tropical.One())
	v.AddArc(s0, arc(1, 1, 1, s0))

	assert.False(t, connect.TopSort[float64](v))
	assert.Equal(t, 1, v.NumStates())
	require.Equal(t, 1, v.NumArcs(0))
	assert.Equal(t, fst.StateID(0), v.Arcs(0)[0].NextState)

	props := v.Properties(fst.Cyclic|fst.NotTopSorted, false)
	assert.Equal(t, fst.Cyclic|fst.NotTopSorted, props)
}

func TestCC_Islands(t *testing.T) {
	// Two islands: {0,1} joined by an arc, {2} alone (unreachable from
	// the start, still its own component).
	v := fst.NewVector[float64](tropical)
	s0, s1, _ := v.AddState(), v.AddState(), v.AddState()
	v.SetStart(s0)
	v.AddArc(s0, arc(1, 1, 0, s1))

	cc := connect.NewCCVisitor[float64]()
	connect.Visit[float64](v, cc)
	comps, n := cc.CCs()

	assert.Equal(t, 2, n)
	assert.Equal(t, comps[0], comps[1])
	assert.NotEqual(t, comps[0], comps[2])
}

func TestUnionFind(t *testing.T) {
	u := connect.NewUnionFind()
	assert.Equal(t, fst.NoStateID, u.FindSet(0))

	u.MakeSet(0)
	u.MakeSet(1)
	u.MakeSet(2)
	u.Union(0, 1)
	assert.Equal(t, u.FindSet(0), u.FindSet(1))
	assert.NotEqual(t, u.FindSet(0), u.FindSet(2))
}
