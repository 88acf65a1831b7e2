package matcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wfst/fst"
	"github.com/katalvlaran/wfst/matcher"
	"github.com/katalvlaran/wfst/semiring"
)

var tropical = semiring.Tropical{}

// buildFan builds a single-state fan with input labels 0,2,2,5 plus a
// final sink, input-sorted.
func buildFan(t *testing.T) *fst.Vector[float64] {
	t.Helper()
	v := fst.NewVector[float64](tropical)
	s0, s1 := v.AddState(), v.AddState()
	v.SetStart(s0)
	v.AddArc(s0, fst.Arc[float64]{ILabel: 0, OLabel: 7, Weight: 1, NextState: s1})
	v.AddArc(s0, fst.Arc[float64]{ILabel: 2, OLabel: 8, Weight: 2, NextState: s1})
	v.AddArc(s0, fst.Arc[float64]{ILabel: 2, OLabel: 9, Weight: 3, NextState: s1})
	v.AddArc(s0, fst.Arc[float64]{ILabel: 5, OLabel: 10, Weight: 4, NextState: s1})
	v.SetFinal(s1, tropical.One())
	fst.ArcSortInput[float64](v)
	return v
}

func collect(m matcher.Matcher[float64]) []fst.Arc[float64] {
	var out []fst.Arc[float64]
	for !m.Done() {
		out = append(out, m.Value())
		m.Next()
	}
	return out
}

func TestFind_Multiplicity(t *testing.T) {
	m := matcher.NewSorted[float64](buildFan(t), matcher.MatchInput)
	m.SetState(0)

	require.True(t, m.Find(2))
	arcs := collect(m)
	require.Len(t, arcs, 2)
	assert.Equal(t, fst.Label(8), arcs[0].OLabel)
	assert.Equal(t, fst.Label(9), arcs[1].OLabel)
}

func TestFind_Absent(t *testing.T) {
	m := matcher.NewSorted[float64](buildFan(t), matcher.MatchInput)
	m.SetState(0)
	assert.False(t, m.Find(3))
	assert.True(t, m.Done())
}

func TestFind_EpsilonIncludesImplicitLoop(t *testing.T) {
	m := matcher.NewSorted[float64](buildFan(t), matcher.MatchInput)
	m.SetState(0)

	require.True(t, m.Find(fst.Epsilon))
	arcs := collect(m)
	// Loop first, then the real epsilon arc.
	require.Len(t, arcs, 2)
	assert.Equal(t, fst.NoLabel, arcs[0].ILabel)
	assert.Equal(t, fst.Epsilon, arcs[0].OLabel)
	assert.Equal(t, fst.StateID(0), arcs[0].NextState)
	assert.Equal(t, tropical.One(), arcs[0].Weight)
	assert.Equal(t, fst.Label(7), arcs[1].OLabel)
}

func TestFind_NoLabelYieldsRealEpsilonsOnly(t *testing.T) {
	m := matcher.NewSorted[float64](buildFan(t), matcher.MatchInput)
	m.SetState(0)

	require.True(t, m.Find(fst.NoLabel))
	arcs := collect(m)
	require.Len(t, arcs, 1)
	assert.Equal(t, fst.Label(7), arcs[0].OLabel)
}

func TestFind_EpsilonLoopAtEpsilonFreeState(t *testing.T) {
	m := matcher.NewSorted[float64](buildFan(t), matcher.MatchInput)
	m.SetState(1) // no arcs at all

	require.True(t, m.Find(fst.Epsilon))
	arcs := collect(m)
	require.Len(t, arcs, 1)
	assert.Equal(t, fst.NoLabel, arcs[0].ILabel)

	// But NoLabel finds nothing real.
	assert.False(t, m.Find(fst.NoLabel))
}

func TestType_FromProperties(t *testing.T) {
	v := buildFan(t)
	m := matcher.NewSorted[float64](v, matcher.MatchInput)
	assert.Equal(t, matcher.MatchInput, m.Type(false))

	// Output side is unsettled without a probe, decided with one.
	mo := matcher.NewSorted[float64](v, matcher.MatchOutput)
	assert.Equal(t, matcher.MatchUnknown, mo.Type(false))
	assert.Equal(t, matcher.MatchOutput, mo.Type(true)) // olabels happen to be sorted
}

func TestType_UnsortedProbe(t *testing.T) {
	v := fst.NewVector[float64](tropical)
	s0, s1 := v.AddState(), v.AddState()
	v.SetStart(s0)
	v.AddArc(s0, fst.Arc[float64]{ILabel: 5, OLabel: 2, Weight: 0, NextState: s1})
	v.AddArc(s0, fst.Arc[float64]{ILabel: 1, OLabel: 4, Weight: 0, NextState: s1})

	m := matcher.NewSorted[float64](v, matcher.MatchInput)
	assert.Equal(t, matcher.MatchUnknown, m.Type(false))
	assert.Equal(t, matcher.MatchNone, m.Type(true))
}

func TestPriority(t *testing.T) {
	m := matcher.NewSorted[float64](buildFan(t), matcher.MatchInput)
	assert.Equal(t, 4, m.Priority(0))
	assert.Equal(t, 0, m.Priority(1))
}

func TestCopy_SafeIndependentCursors(t *testing.T) {
	m := matcher.NewSorted[float64](buildFan(t), matcher.MatchInput)
	m.SetState(0)
	require.True(t, m.Find(2))

	cp := m.Copy(true)
	cp.SetState(0)
	require.True(t, cp.Find(5))

	// The original cursor is unaffected by the copy's.
	assert.Equal(t, fst.Label(8), m.Value().OLabel)
	assert.Equal(t, fst.Label(10), cp.Value().OLabel)
	m.Next()
	assert.Equal(t, fst.Label(9), m.Value().OLabel)
}

func TestNew_FallsBackToSortedWithoutProvider(t *testing.T) {
	v := buildFan(t)
	m := matcher.New[float64](v, matcher.MatchInput)
	// Vector offers no specialized matcher, so the default is sorted.
	_, ok := m.(*matcher.SortedMatcher[float64])
	assert.True(t, ok)
}
