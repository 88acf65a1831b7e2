package matcher

import (
	"sort"

	"github.com/katalvlaran/wfst/fst"
)

// SortedMatcher indexes one state's arcs by binary search, assuming
// they are sorted on the chosen side. O(log d + m) per Find, where d is
// the out-degree and m the match multiplicity.
type SortedMatcher[W any] struct {
	f         fst.Fst[W]
	matchType MatchType // MatchInput or MatchOutput

	s    fst.StateID
	arcs []fst.Arc[W]

	// cursor of the current Find
	pos         int
	matchLabel  fst.Label
	currentLoop bool
	loop        fst.Arc[W]
	exhausted   bool
}

// NewSorted builds a SortedMatcher for f matching on the side given by
// mt (MatchInput or MatchOutput; anything else yields a matcher whose
// Type is MatchNone and which never finds).
func NewSorted[W any](f fst.Fst[W], mt MatchType) *SortedMatcher[W] {
	m := &SortedMatcher[W]{
		f:         f,
		matchType: mt,
		s:         fst.NoStateID,
		exhausted: true,
	}
	if mt == MatchInput {
		m.loop = fst.Arc[W]{ILabel: fst.NoLabel, OLabel: fst.Epsilon, Weight: f.Semiring().One(), NextState: fst.NoStateID}
	} else {
		m.loop = fst.Arc[W]{ILabel: fst.Epsilon, OLabel: fst.NoLabel, Weight: f.Semiring().One(), NextState: fst.NoStateID}
	}
	return m
}

// FST returns the indexed machine.
func (m *SortedMatcher[W]) FST() fst.Fst[W] { return m.f }

// Type reports the indexed side. Without test it answers from the
// machine's known sorted properties (MatchUnknown when unsettled); with
// test it forces the sortedness scan.
func (m *SortedMatcher[W]) Type(test bool) MatchType {
	if m.matchType != MatchInput && m.matchType != MatchOutput {
		return MatchNone
	}
	trueProp, falseProp := fst.ILabelSorted, fst.NotILabelSorted
	if m.matchType == MatchOutput {
		trueProp, falseProp = fst.OLabelSorted, fst.NotOLabelSorted
	}
	props := m.f.Properties(trueProp|falseProp, test)
	switch {
	case props&trueProp != 0:
		return m.matchType
	case props&falseProp != 0:
		return MatchNone
	default:
		return MatchUnknown
	}
}

// SetState positions the matcher at s.
func (m *SortedMatcher[W]) SetState(s fst.StateID) {
	if m.s == s {
		return
	}
	m.s = s
	m.arcs = m.f.Arcs(s)
	m.loop.NextState = s
	m.exhausted = true
	m.currentLoop = false
}

// Find positions the cursor on the first arc whose chosen-side label
// matches. Find(Epsilon) additionally yields the implicit self-loop
// first; Find(NoLabel) searches real epsilon arcs only.
func (m *SortedMatcher[W]) Find(label fst.Label) bool {
	if m.matchType != MatchInput && m.matchType != MatchOutput {
		m.currentLoop, m.exhausted = false, true
		return false
	}
	m.currentLoop = label == fst.Epsilon
	if label == fst.NoLabel {
		label = fst.Epsilon
	}
	m.matchLabel = label

	m.pos = sort.Search(len(m.arcs), func(i int) bool {
		return m.sideLabel(m.arcs[i]) >= label
	})
	m.exhausted = !(m.pos < len(m.arcs) && m.sideLabel(m.arcs[m.pos]) == label)
	return m.currentLoop || !m.exhausted
}

// Done reports whether the current Find is exhausted.
func (m *SortedMatcher[W]) Done() bool {
	return !m.currentLoop && m.exhausted
}

// Value returns the current match: the implicit loop first when
// present, then the real arcs.
func (m *SortedMatcher[W]) Value() fst.Arc[W] {
	if m.currentLoop {
		return m.loop
	}
	return m.arcs[m.pos]
}

// Next advances to the following match.
func (m *SortedMatcher[W]) Next() {
	if m.currentLoop {
		m.currentLoop = false
		return
	}
	m.pos++
	m.exhausted = !(m.pos < len(m.arcs) && m.sideLabel(m.arcs[m.pos]) == m.matchLabel)
}

// Final proxies the machine's finality.
func (m *SortedMatcher[W]) Final(s fst.StateID) W { return m.f.Final(s) }

// Priority is the state's out-degree.
func (m *SortedMatcher[W]) Priority(s fst.StateID) int { return m.f.NumArcs(s) }

// Flags: a SortedMatcher has no special requirements.
func (m *SortedMatcher[W]) Flags() Flags { return 0 }

// Properties passes machine properties through unchanged.
func (m *SortedMatcher[W]) Properties(inprops fst.Properties) fst.Properties {
	return inprops
}

// Copy duplicates the matcher. The copy always has an independent
// cursor; safe additionally promises the original may stay in use.
func (m *SortedMatcher[W]) Copy(safe bool) Matcher[W] {
	cp := NewSorted(m.f, m.matchType)
	return cp
}

func (m *SortedMatcher[W]) sideLabel(a fst.Arc[W]) fst.Label {
	if m.matchType == MatchInput {
		return a.ILabel
	}
	return a.OLabel
}
