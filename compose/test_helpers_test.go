package compose_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/katalvlaran/wfst/fst"
	"github.com/katalvlaran/wfst/semiring"
)

var tropical = semiring.Tropical{}

func arc(il, ol fst.Label, w float64, next fst.StateID) fst.Arc[float64] {
	return fst.Arc[float64]{ILabel: il, OLabel: ol, Weight: w, NextState: next}
}

// chain builds a linear transducer from (ilabel, olabel, weight)
// triples, final weight One, output-sorted for use as a left operand
// and input-sorted for use as a right one.
func chain(t *testing.T, arcs ...[3]float64) *fst.Vector[float64] {
	t.Helper()
	v := fst.NewVector[float64](tropical)
	s := v.AddState()
	v.SetStart(s)
	for _, a := range arcs {
		next := v.AddState()
		v.AddArc(s, arc(fst.Label(a[0]), fst.Label(a[1]), a[2], next))
		s = next
	}
	v.SetFinal(s, tropical.One())
	sortBothSides(v)
	return v
}

// acceptorOf builds an acceptor for the given label strings, each a
// separate branch from the start with weight One per arc.
func acceptorOf(t *testing.T, words ...[]fst.Label) *fst.Vector[float64] {
	t.Helper()
	v := fst.NewVector[float64](tropical)
	start := v.AddState()
	v.SetStart(start)
	for _, word := range words {
		s := start
		for _, l := range word {
			next := v.AddState()
			v.AddArc(s, arc(l, l, tropical.One(), next))
			s = next
		}
		v.SetFinal(s, tropical.One())
	}
	sortBothSides(v)
	return v
}

// sortBothSides input-sorts the machine and settles the output-side
// sorted property by a scan (sorting again would invalidate the first
// bit; these test machines are sorted on both sides once input-sorted).
func sortBothSides(v *fst.Vector[float64]) {
	fst.ArcSortInput[float64](v)
	v.Properties(fst.OLabelSorted|fst.NotOLabelSorted, true)
}

// pathsOf enumerates every successful path of an expanded machine as a
// canonical "in/out/weight" string, sorted. Depth is capped to keep
// cyclic machines from spinning.
func pathsOf(f fst.Expanded[float64]) []string {
	sr := f.Semiring()
	var out []string
	var walk func(s fst.StateID, depth int, ils, ols []fst.Label, w float64)
	walk = func(s fst.StateID, depth int, ils, ols []fst.Label, w float64) {
		if depth > 64 {
			return
		}
		if final := f.Final(s); !sr.Equal(final, sr.Zero()) {
			out = append(out, fmt.Sprintf("%v/%v/%.6g", ils, ols, sr.Times(w, final)))
		}
		for _, a := range f.Arcs(s) {
			walk(a.NextState, depth+1, appendNonEps(ils, a.ILabel), appendNonEps(ols, a.OLabel), sr.Times(w, a.Weight))
		}
	}
	if start := f.Start(); start != fst.NoStateID {
		walk(start, 0, nil, nil, sr.One())
	}
	sort.Strings(out)
	return out
}

func appendNonEps(labels []fst.Label, l fst.Label) []fst.Label {
	if l == fst.Epsilon {
		return labels
	}
	return append(labels[:len(labels):len(labels)], l)
}

// countPaths counts distinct successful arc sequences, epsilons
// included, so redundant epsilon interleavings are visible.
func countPaths(f fst.Expanded[float64]) int {
	sr := f.Semiring()
	n := 0
	var walk func(s fst.StateID, depth int)
	walk = func(s fst.StateID, depth int) {
		if depth > 64 {
			return
		}
		if !sr.Equal(f.Final(s), sr.Zero()) {
			n++
		}
		for _, a := range f.Arcs(s) {
			walk(a.NextState, depth+1)
		}
	}
	if start := f.Start(); start != fst.NoStateID {
		walk(start, 0)
	}
	return n
}
