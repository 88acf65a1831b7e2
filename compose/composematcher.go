package compose

import (
	"github.com/katalvlaran/wfst/fst"
	"github.com/katalvlaran/wfst/matcher"
)

// InitMatcher implements matcher.Provider: when both inner matchers
// support the requested side and the filter guarantees it never
// rewrites the corresponding label (the label-invariance precondition),
// the composed machine can be matched without materializing its arcs.
// A nil result tells the caller to fall back to the default matcher.
func (c *ComposeFst[W]) InitMatcher(mt matcher.MatchType) matcher.Matcher[W] {
	test := fst.ILabelInvariant
	if mt == matcher.MatchOutput {
		test = fst.OLabelInvariant
	}
	if c.m1.Type(false) == mt && c.m2.Type(false) == mt &&
		c.filter.Properties(test) == test {
		return newComposeMatcher(c, mt)
	}
	return nil
}

// composeMatcher enumerates matches of a composed state on the fly: it
// positions the indexed inner matcher on the queried label, the other
// inner matcher on each intermediate label the first exposes, and walks
// their intersection through the filter.
type composeMatcher[W any] struct {
	cf        *ComposeFst[W]
	s         fst.StateID
	matchType matcher.MatchType
	m1, m2    matcher.Matcher[W]

	currentLoop bool
	loop        fst.Arc[W]
	arc         fst.Arc[W]
	err         bool
}

func newComposeMatcher[W any](cf *ComposeFst[W], mt matcher.MatchType) *composeMatcher[W] {
	m := &composeMatcher[W]{
		cf:        cf,
		s:         fst.NoStateID,
		matchType: mt,
		m1:        cf.m1.Copy(false),
		m2:        cf.m2.Copy(false),
		loop:      fst.Arc[W]{ILabel: fst.NoLabel, OLabel: fst.Epsilon, Weight: cf.sr.One(), NextState: fst.NoStateID},
	}
	if mt == matcher.MatchOutput {
		m.loop.ILabel, m.loop.OLabel = m.loop.OLabel, m.loop.ILabel
	}
	return m
}

// FST returns the composed machine.
func (m *composeMatcher[W]) FST() fst.Fst[W] { return m.cf }

// Type mirrors the inner matchers' agreement on the requested side.
func (m *composeMatcher[W]) Type(test bool) matcher.MatchType {
	t1, t2 := m.m1.Type(test), m.m2.Type(test)
	if t1 == matcher.MatchNone || t2 == matcher.MatchNone {
		return matcher.MatchNone
	}
	unknown1, unknown2 := t1 == matcher.MatchUnknown, t2 == matcher.MatchUnknown
	switch {
	case unknown1 && unknown2,
		unknown1 && t2 == m.matchType,
		t1 == m.matchType && unknown2:
		return matcher.MatchUnknown
	case t1 == m.matchType && t2 == m.matchType:
		return m.matchType
	default:
		return matcher.MatchNone
	}
}

// SetState positions the matcher at composed state s.
func (m *composeMatcher[W]) SetState(s fst.StateID) {
	if m.s == s {
		return
	}
	m.s = s
	tup := m.cf.table.Tuple(s)
	m.m1.SetState(tup.S1)
	m.m2.SetState(tup.S2)
	m.cf.filter.SetState(tup.S1, tup.S2, tup.FS)
	m.loop.NextState = s
}

// Find locates the first composed match for label. Label 0 admits the
// trivial epsilon self-loop before any real matches.
func (m *composeMatcher[W]) Find(label fst.Label) bool {
	m.currentLoop = label == fst.Epsilon
	var found bool
	if m.matchType == matcher.MatchInput {
		found = m.findLabel(label, m.m1, m.m2)
	} else {
		found = m.findLabel(label, m.m2, m.m1)
	}
	return m.currentLoop || found
}

// findLabel positions matchera on label, matcherb on the intermediate
// label of matchera's first match, then searches for a filtered pair.
func (m *composeMatcher[W]) findLabel(label fst.Label, matchera, matcherb matcher.Matcher[W]) bool {
	if !matchera.Find(label) {
		return false
	}
	matcherb.Find(m.interLabel(matchera.Value()))
	return m.findNext(matchera, matcherb)
}

// findNext advances to the next pair admitted by the filter; matchera
// holds a match (x, y) and matcherb was positioned on y.
func (m *composeMatcher[W]) findNext(matchera, matcherb matcher.Matcher[W]) bool {
	for !matchera.Done() || !matcherb.Done() {
		if matcherb.Done() {
			// No more matches for the current intermediate label; move
			// matchera until an intermediate label with matches appears.
			matchera.Next()
			for !matchera.Done() && !matcherb.Find(m.interLabel(matchera.Value())) {
				matchera.Next()
			}
		}
		for !matcherb.Done() {
			arca, arcb := matchera.Value(), matcherb.Value()
			matcherb.Next()
			if m.matchType == matcher.MatchInput {
				if m.matchArc(arca, arcb) {
					return true
				}
			} else if m.matchArc(arcb, arca) {
				return true
			}
		}
	}
	return false
}

// interLabel is the intermediate label a first-side match exposes for
// the second side to find.
func (m *composeMatcher[W]) interLabel(a fst.Arc[W]) fst.Label {
	if m.matchType == matcher.MatchInput {
		return a.OLabel
	}
	return a.ILabel
}

// matchArc runs one pair through the filter and, if admitted, builds
// the composed arc.
func (m *composeMatcher[W]) matchArc(arc1, arc2 fst.Arc[W]) bool {
	// An inner matcher reports its implicit self-loop with NoLabel on
	// its own chosen side; the filter protocol wants hold arcs oriented
	// with NoLabel on the matched-against side (FST1 hold: 0:NoLabel,
	// FST2 hold: NoLabel:0). Normalize, and drop hold-with-hold pairs —
	// the trivial composed self-loop is reported separately.
	loop1 := arc1.ILabel == fst.NoLabel || arc1.OLabel == fst.NoLabel
	loop2 := arc2.ILabel == fst.NoLabel || arc2.OLabel == fst.NoLabel
	if loop1 && loop2 {
		return false
	}
	if loop1 && arc1.ILabel == fst.NoLabel {
		arc1.ILabel, arc1.OLabel = arc1.OLabel, arc1.ILabel
	}
	if loop2 && arc2.OLabel == fst.NoLabel {
		arc2.ILabel, arc2.OLabel = arc2.OLabel, arc2.ILabel
	}
	f := m.cf.filter.FilterArc(&arc1, &arc2)
	if f == NoFilterState {
		return false
	}
	next := m.cf.table.FindState(Tuple{S1: arc1.NextState, S2: arc2.NextState, FS: f})
	if next == fst.NoStateID {
		m.err = true
		return false
	}
	m.arc = fst.Arc[W]{
		ILabel:    arc1.ILabel,
		OLabel:    arc2.OLabel,
		Weight:    m.cf.sr.Times(arc1.Weight, arc2.Weight),
		NextState: next,
	}
	return true
}

// Done reports whether matches are exhausted.
func (m *composeMatcher[W]) Done() bool {
	return !m.currentLoop && m.m1.Done() && m.m2.Done()
}

// Value returns the current composed match, the self-loop first.
func (m *composeMatcher[W]) Value() fst.Arc[W] {
	if m.currentLoop {
		return m.loop
	}
	return m.arc
}

// Next advances to the following composed match.
func (m *composeMatcher[W]) Next() {
	if m.currentLoop {
		m.currentLoop = false
		return
	}
	if m.matchType == matcher.MatchInput {
		m.findNext(m.m1, m.m2)
	} else {
		m.findNext(m.m2, m.m1)
	}
}

// Final proxies the composed machine's finality.
func (m *composeMatcher[W]) Final(s fst.StateID) W { return m.cf.Final(s) }

// Priority is the composed out-degree (this expands the state).
func (m *composeMatcher[W]) Priority(s fst.StateID) int { return m.cf.NumArcs(s) }

// Flags: the composed matcher has no special requirements.
func (m *composeMatcher[W]) Flags() matcher.Flags { return 0 }

// Properties folds the matcher's own error into the property word.
func (m *composeMatcher[W]) Properties(inprops fst.Properties) fst.Properties {
	if m.err {
		return inprops | fst.Error
	}
	return inprops
}

// Copy duplicates the matcher; a safe copy is unsupported and latches
// the error flag, as shared filter state cannot be duplicated safely.
func (m *composeMatcher[W]) Copy(safe bool) matcher.Matcher[W] {
	cp := newComposeMatcher(m.cf, m.matchType)
	cp.err = m.err
	if safe {
		m.cf.log.Errorf("compose: matcher safe copy not supported")
		cp.err = true
	}
	return cp
}
