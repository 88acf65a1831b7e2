package fst_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wfst/fst"
	"github.com/katalvlaran/wfst/semiring"
	"github.com/katalvlaran/wfst/symtab"
)

var tropical = semiring.Tropical{}

// buildLinear builds 0 -a:x/1-> 1 -b:y/2-> 2(final/0).
func buildLinear(t *testing.T) *fst.Vector[float64] {
	t.Helper()
	v := fst.NewVector[float64](tropical)
	s0, s1, s2 := v.AddState(), v.AddState(), v.AddState()
	v.SetStart(s0)
	v.AddArc(s0, fst.Arc[float64]{ILabel: 1, OLabel: 10, Weight: 1, NextState: s1})
	v.AddArc(s1, fst.Arc[float64]{ILabel: 2, OLabel: 20, Weight: 2, NextState: s2})
	v.SetFinal(s2, tropical.One())
	return v
}

func TestVector_Basics(t *testing.T) {
	v := buildLinear(t)
	assert.Equal(t, fst.StateID(0), v.Start())
	assert.Equal(t, 3, v.NumStates())
	assert.Equal(t, 1, v.NumArcs(0))
	assert.Equal(t, 0, v.NumArcs(2))
	assert.Equal(t, tropical.Zero(), v.Final(0))
	assert.Equal(t, tropical.One(), v.Final(2))

	arcs := v.Arcs(0)
	require.Len(t, arcs, 1)
	assert.Equal(t, fst.Label(1), arcs[0].ILabel)
	assert.Equal(t, fst.StateID(1), arcs[0].NextState)
}

func TestVector_OutOfRangeQueriesAreBenign(t *testing.T) {
	v := buildLinear(t)
	assert.Equal(t, tropical.Zero(), v.Final(99))
	assert.Equal(t, 0, v.NumArcs(-1))
	assert.Nil(t, v.Arcs(99))
}

func TestVector_EpsilonCounts(t *testing.T) {
	v := fst.NewVector[float64](tropical)
	s0, s1 := v.AddState(), v.AddState()
	v.SetStart(s0)
	v.AddArc(s0, fst.Arc[float64]{ILabel: 0, OLabel: 5, Weight: 0, NextState: s1})
	v.AddArc(s0, fst.Arc[float64]{ILabel: 3, OLabel: 0, Weight: 0, NextState: s1})
	v.AddArc(s0, fst.Arc[float64]{ILabel: 0, OLabel: 0, Weight: 0, NextState: s1})
	assert.Equal(t, 2, v.NumInputEpsilons(s0))
	assert.Equal(t, 2, v.NumOutputEpsilons(s0))
}

func TestVector_DeleteStates(t *testing.T) {
	v := fst.NewVector[float64](tropical)
	s0, s1, s2, s3 := v.AddState(), v.AddState(), v.AddState(), v.AddState()
	v.SetStart(s0)
	v.AddArc(s0, fst.Arc[float64]{ILabel: 1, OLabel: 1, Weight: 0, NextState: s1})
	v.AddArc(s0, fst.Arc[float64]{ILabel: 2, OLabel: 2, Weight: 0, NextState: s2})
	v.AddArc(s1, fst.Arc[float64]{ILabel: 3, OLabel: 3, Weight: 0, NextState: s3})
	v.SetFinal(s3, tropical.One())

	v.DeleteStates([]fst.StateID{s2})
	assert.Equal(t, 3, v.NumStates())
	assert.Equal(t, fst.StateID(0), v.Start())
	// s0's arc to deleted s2 is gone; arc to s1 survives.
	require.Equal(t, 1, v.NumArcs(0))
	assert.Equal(t, fst.StateID(1), v.Arcs(0)[0].NextState)
	// s3 renumbered to 2 and still final.
	assert.Equal(t, fst.StateID(2), v.Arcs(1)[0].NextState)
	assert.Equal(t, tropical.One(), v.Final(2))
}

func TestVector_DeleteStart(t *testing.T) {
	v := buildLinear(t)
	v.DeleteStates([]fst.StateID{0})
	assert.Equal(t, fst.NoStateID, v.Start())
}

func TestProperties_ComputeSortedAndAcceptor(t *testing.T) {
	v := fst.NewVector[float64](tropical)
	s0, s1 := v.AddState(), v.AddState()
	v.SetStart(s0)
	v.AddArc(s0, fst.Arc[float64]{ILabel: 2, OLabel: 2, Weight: 0, NextState: s1})
	v.AddArc(s0, fst.Arc[float64]{ILabel: 1, OLabel: 1, Weight: 0, NextState: s1})

	got := v.Properties(fst.ILabelSorted|fst.NotILabelSorted, true)
	assert.Equal(t, fst.NotILabelSorted, got)
	assert.Equal(t, fst.Acceptor, v.Properties(fst.Acceptor|fst.NotAcceptor, true))

	fst.ArcSortInput[float64](v)
	got = v.Properties(fst.ILabelSorted|fst.NotILabelSorted, false)
	assert.Equal(t, fst.ILabelSorted, got)
	assert.Equal(t, fst.Label(1), v.Arcs(0)[0].ILabel)
}

func TestProperties_ErrorSticky(t *testing.T) {
	v := buildLinear(t)
	v.SetProperties(fst.Error, fst.Error)
	v.SetProperties(0, fst.AllProperties)
	assert.NotZero(t, v.Properties(fst.Error, false))
}

func TestProperties_Weighted(t *testing.T) {
	v := buildLinear(t)
	assert.Equal(t, fst.Weighted, v.Properties(fst.Weighted|fst.Unweighted, true))

	u := fst.NewVector[float64](tropical)
	s0, s1 := u.AddState(), u.AddState()
	u.SetStart(s0)
	u.AddArc(s0, fst.Arc[float64]{ILabel: 1, OLabel: 1, Weight: tropical.One(), NextState: s1})
	u.SetFinal(s1, tropical.One())
	assert.Equal(t, fst.Unweighted, u.Properties(fst.Weighted|fst.Unweighted, true))
}

func TestStateSort(t *testing.T) {
	v := buildLinear(t)
	// Reverse the state order: 0↔2.
	fst.StateSort[float64](v, []fst.StateID{2, 1, 0})
	assert.Equal(t, fst.StateID(2), v.Start())
	assert.Equal(t, tropical.One(), v.Final(0))
	require.Equal(t, 1, v.NumArcs(2))
	assert.Equal(t, fst.StateID(1), v.Arcs(2)[0].NextState)
	assert.Equal(t, fst.StateID(0), v.Arcs(1)[0].NextState)
}

func TestStateSort_BadOrderLatchesError(t *testing.T) {
	v := buildLinear(t)
	fst.StateSort[float64](v, []fst.StateID{0, 0, 1})
	assert.NotZero(t, v.Properties(fst.Error, false))
}

func TestInvert_Eager(t *testing.T) {
	v := buildLinear(t)
	in, out := symtab.New("in"), symtab.New("out")
	v.SetInputSymbols(in)
	v.SetOutputSymbols(out)

	fst.Invert[float64](v)
	assert.Equal(t, fst.Label(10), v.Arcs(0)[0].ILabel)
	assert.Equal(t, fst.Label(1), v.Arcs(0)[0].OLabel)
	assert.Same(t, out, v.InputSymbols())
	assert.Same(t, in, v.OutputSymbols())
}

func TestInvert_Lazy(t *testing.T) {
	v := buildLinear(t)
	inv := fst.NewInvertFst[float64](v)
	assert.Equal(t, v.Start(), inv.Start())
	assert.Equal(t, v.Final(2), inv.Final(2))

	want := []fst.Arc[float64]{{ILabel: 10, OLabel: 1, Weight: 1, NextState: 1}}
	if diff := cmp.Diff(want, inv.Arcs(0)); diff != "" {
		t.Errorf("inverted arcs mismatch (-want +got):\n%s", diff)
	}
	// Double inversion restores the original arcs.
	back := fst.NewInvertFst[float64](inv)
	if diff := cmp.Diff(v.Arcs(0), back.Arcs(0)); diff != "" {
		t.Errorf("double inversion mismatch (-want +got):\n%s", diff)
	}
}
