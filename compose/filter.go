package compose

import (
	"github.com/katalvlaran/wfst/fst"
	"github.com/katalvlaran/wfst/matcher"
)

// FilterState is the small token a composition filter threads through
// composed states to forbid redundant epsilon orderings.
type FilterState int32

// NoFilterState rejects an arc pair; it is distinct from every
// admissible filter state.
const NoFilterState FilterState = -1

// FilterType selects one of the canonical composition filters.
type FilterType int

const (
	// AutoFilter selects SequenceFilter (a look-ahead matcher could
	// substitute a specialized filter; none is provided here).
	AutoFilter FilterType = iota
	// NullFilter gives epsilons no special interpretation: ε matches ε
	// only, and neither machine may advance alone.
	NullFilter
	// TrivialFilter accepts every pair, admitting epsilon pairings in
	// all orders (redundant paths when both machines carry epsilons).
	TrivialFilter
	// SequenceFilter admits FST1's epsilons strictly before FST2's at
	// each composed state.
	SequenceFilter
	// AltSequenceFilter is the symmetric variant favoring FST2 first.
	AltSequenceFilter
	// MatchFilter pairs ε with ε directly and forbids interleaving the
	// two machines' unilateral epsilon runs.
	MatchFilter
)

// Filter decides, for each candidate pair of arcs from the two
// machines, whether their combination is admissible and which filter
// state the resulting composed state carries. A filter owns the two
// matchers (a filter may augment them with auxiliary labels).
type Filter[W any] interface {
	// Start returns the filter state of the composed start state.
	Start() FilterState

	// SetState positions the filter at a composed state's component
	// states and carried filter state.
	SetState(s1, s2 fst.StateID, fs FilterState)

	// FilterArc consults (and may rewrite) the pair and returns the
	// next filter state, or NoFilterState to reject. a1 is from FST1,
	// a2 from FST2; either may be the engine's synthetic hold arc,
	// recognizable by NoLabel on its matched side.
	FilterArc(a1, a2 *fst.Arc[W]) FilterState

	// FilterFinal may adjust the component finality weights at a
	// composed final state.
	FilterFinal(w1, w2 *W)

	// Matcher1 returns the FST1 matcher the filter owns.
	Matcher1() matcher.Matcher[W]

	// Matcher2 returns the FST2 matcher.
	Matcher2() matcher.Matcher[W]

	// Properties translates the composed machine's property word; a
	// filter that never rewrites a1's input label passes
	// ILabelInvariant through, likewise OLabelInvariant for a2's
	// output label.
	Properties(in fst.Properties) fst.Properties
}

// newFilter wires the requested filter around the two matchers.
func newFilter[W any](ft FilterType, fst1, fst2 fst.Fst[W], m1, m2 matcher.Matcher[W]) Filter[W] {
	base := filterBase[W]{m1: m1, m2: m2}
	switch ft {
	case NullFilter:
		return &nullFilter[W]{filterBase: base}
	case TrivialFilter:
		return &trivialFilter[W]{filterBase: base}
	case AltSequenceFilter:
		return &altSequenceFilter[W]{filterBase: base, fst2: fst2, s1: fst.NoStateID, s2: fst.NoStateID}
	case MatchFilter:
		return &matchFilter[W]{filterBase: base, fst1: fst1, fst2: fst2, s1: fst.NoStateID, s2: fst.NoStateID}
	default: // AutoFilter, SequenceFilter
		return &sequenceFilter[W]{filterBase: base, fst1: fst1, s1: fst.NoStateID, s2: fst.NoStateID}
	}
}

// filterBase carries the matcher pair every filter owns.
type filterBase[W any] struct {
	m1, m2 matcher.Matcher[W]
}

func (b *filterBase[W]) Matcher1() matcher.Matcher[W] { return b.m1 }
func (b *filterBase[W]) Matcher2() matcher.Matcher[W] { return b.m2 }

func (b *filterBase[W]) FilterFinal(*W, *W) {}

func (b *filterBase[W]) Properties(in fst.Properties) fst.Properties { return in }

// nullFilter: ε matches ε only; the synthetic hold arcs are rejected.
type nullFilter[W any] struct {
	filterBase[W]
}

func (f *nullFilter[W]) Start() FilterState { return 0 }

func (f *nullFilter[W]) SetState(fst.StateID, fst.StateID, FilterState) {}

func (f *nullFilter[W]) FilterArc(a1, a2 *fst.Arc[W]) FilterState {
	if a1.OLabel == fst.NoLabel || a2.ILabel == fst.NoLabel {
		return NoFilterState
	}
	return 0
}

// trivialFilter accepts everything.
type trivialFilter[W any] struct {
	filterBase[W]
}

func (f *trivialFilter[W]) Start() FilterState { return 0 }

func (f *trivialFilter[W]) SetState(fst.StateID, fst.StateID, FilterState) {}

func (f *trivialFilter[W]) FilterArc(*fst.Arc[W], *fst.Arc[W]) FilterState { return 0 }

// sequenceFilter admits FST1 epsilons before FST2 epsilons. Filter
// state 1 records that FST2 has advanced alone at this composed state;
// from there FST1 may no longer advance alone.
type sequenceFilter[W any] struct {
	filterBase[W]
	fst1 fst.Fst[W]

	s1, s2 fst.StateID
	fs     FilterState

	// per-s1 statistics, recomputed on SetState
	allEps1 bool // every arc at s1 is an output epsilon and s1 non-final
	noEps1  bool // no output epsilons at s1
}

func (f *sequenceFilter[W]) Start() FilterState { return 0 }

func (f *sequenceFilter[W]) SetState(s1, s2 fst.StateID, fs FilterState) {
	if f.s1 == s1 && f.s2 == s2 && f.fs == fs {
		return
	}
	f.s1, f.s2, f.fs = s1, s2, fs
	sr := f.fst1.Semiring()
	na := f.fst1.NumArcs(s1)
	ne := f.fst1.NumOutputEpsilons(s1)
	final := !sr.Equal(f.fst1.Final(s1), sr.Zero())
	f.allEps1 = na == ne && !final
	f.noEps1 = ne == 0
}

func (f *sequenceFilter[W]) FilterArc(a1, a2 *fst.Arc[W]) FilterState {
	switch {
	case a1.OLabel == fst.NoLabel: // FST2 advances alone
		switch {
		case f.allEps1:
			return NoFilterState // FST1 can only emit epsilons: dead end
		case f.noEps1:
			return 0
		default:
			return 1
		}
	case a2.ILabel == fst.NoLabel: // FST1 advances alone
		if f.fs != 0 {
			return NoFilterState
		}
		return 0
	default: // real match
		if a1.OLabel == fst.Epsilon {
			return NoFilterState // ε:ε pairs must go through the hold arcs
		}
		return 0
	}
}

// altSequenceFilter is the FST2-first mirror of sequenceFilter.
type altSequenceFilter[W any] struct {
	filterBase[W]
	fst2 fst.Fst[W]

	s1, s2 fst.StateID
	fs     FilterState

	allEps2 bool
	noEps2  bool
}

func (f *altSequenceFilter[W]) Start() FilterState { return 0 }

func (f *altSequenceFilter[W]) SetState(s1, s2 fst.StateID, fs FilterState) {
	if f.s1 == s1 && f.s2 == s2 && f.fs == fs {
		return
	}
	f.s1, f.s2, f.fs = s1, s2, fs
	sr := f.fst2.Semiring()
	na := f.fst2.NumArcs(s2)
	ne := f.fst2.NumInputEpsilons(s2)
	final := !sr.Equal(f.fst2.Final(s2), sr.Zero())
	f.allEps2 = na == ne && !final
	f.noEps2 = ne == 0
}

func (f *altSequenceFilter[W]) FilterArc(a1, a2 *fst.Arc[W]) FilterState {
	switch {
	case a2.ILabel == fst.NoLabel: // FST1 advances alone
		switch {
		case f.allEps2:
			return NoFilterState
		case f.noEps2:
			return 0
		default:
			return 1
		}
	case a1.OLabel == fst.NoLabel: // FST2 advances alone
		if f.fs != 0 {
			return NoFilterState
		}
		return 0
	default:
		if a1.OLabel == fst.Epsilon {
			return NoFilterState
		}
		return 0
	}
}

// matchFilter pairs epsilons with epsilons whenever possible: ε:ε is a
// real match, and a unilateral epsilon run on one machine (state 1 for
// FST1, state 2 for FST2) excludes the other's until a real match
// resets to state 0.
type matchFilter[W any] struct {
	filterBase[W]
	fst1, fst2 fst.Fst[W]

	s1, s2 fst.StateID
	fs     FilterState

	allEps1, noEps1 bool
	allEps2, noEps2 bool
}

func (f *matchFilter[W]) Start() FilterState { return 0 }

func (f *matchFilter[W]) SetState(s1, s2 fst.StateID, fs FilterState) {
	if f.s1 == s1 && f.s2 == s2 && f.fs == fs {
		return
	}
	f.s1, f.s2, f.fs = s1, s2, fs

	sr := f.fst1.Semiring()
	na1 := f.fst1.NumArcs(s1)
	ne1 := f.fst1.NumOutputEpsilons(s1)
	fin1 := !sr.Equal(f.fst1.Final(s1), sr.Zero())
	f.allEps1 = na1 == ne1 && !fin1
	f.noEps1 = ne1 == 0

	na2 := f.fst2.NumArcs(s2)
	ne2 := f.fst2.NumInputEpsilons(s2)
	fin2 := !sr.Equal(f.fst2.Final(s2), sr.Zero())
	f.allEps2 = na2 == ne2 && !fin2
	f.noEps2 = ne2 == 0
}

func (f *matchFilter[W]) FilterArc(a1, a2 *fst.Arc[W]) FilterState {
	switch {
	case a1.OLabel == fst.NoLabel: // FST2 advances alone
		if f.fs == 0 {
			switch {
			case f.noEps2:
				return 0
			case f.allEps2:
				return NoFilterState
			default:
				return 2
			}
		}
		if f.fs == 2 {
			return 2
		}
		return NoFilterState
	case a2.ILabel == fst.NoLabel: // FST1 advances alone
		if f.fs == 0 {
			switch {
			case f.noEps1:
				return 0
			case f.allEps1:
				return NoFilterState
			default:
				return 1
			}
		}
		if f.fs == 1 {
			return 1
		}
		return NoFilterState
	default: // real match, including ε:ε
		return 0
	}
}
