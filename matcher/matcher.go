package matcher

import (
	"github.com/katalvlaran/wfst/fst"
)

// MatchType declares which side of a machine's arcs a matcher indexes.
type MatchType int

const (
	// MatchNone: the matcher cannot match on any side.
	MatchNone MatchType = iota
	// MatchUnknown: the side is undetermined without a deeper probe.
	MatchUnknown
	// MatchInput: indexes arcs by input label.
	MatchInput
	// MatchOutput: indexes arcs by output label.
	MatchOutput
	// MatchBoth: both sides available; composition decides per state.
	MatchBoth
)

// String returns the match type's name.
func (mt MatchType) String() string {
	switch mt {
	case MatchNone:
		return "none"
	case MatchUnknown:
		return "unknown"
	case MatchInput:
		return "input"
	case MatchOutput:
		return "output"
	case MatchBoth:
		return "both"
	default:
		return "invalid"
	}
}

// Flags is a matcher capability bitset.
type Flags uint32

const (
	// RequireMatch marks a matcher that must be the matched side of a
	// composition; it cannot serve as the iterated-side fallback.
	RequireMatch Flags = 1 << iota
)

// RequirePriority, returned by Priority, means the matcher insists on
// being the matched side at that state.
const RequirePriority = -1

// Matcher is the indexed arc lookup contract (see the package comment
// for the find/enumerate protocol and the epsilon policy).
type Matcher[W any] interface {
	// FST returns the machine this matcher indexes.
	FST() fst.Fst[W]

	// Type reports the indexed side; with test=true the matcher may run
	// a deeper capability probe (e.g. verify sortedness by scanning).
	Type(test bool) MatchType

	// SetState positions the matcher; later Finds apply to s.
	SetState(s fst.StateID)

	// Find positions the cursor on the first match for label and
	// reports whether any exists.
	Find(label fst.Label) bool

	// Done reports whether the current Find's matches are exhausted.
	Done() bool

	// Value returns the current matching arc.
	Value() fst.Arc[W]

	// Next advances to the following match.
	Next()

	// Final is a finality proxy for the indexed machine (matchers may
	// wrap augmented topologies).
	Final(s fst.StateID) W

	// Priority is a cost hint for matching at s, or RequirePriority.
	Priority(s fst.StateID) int

	// Flags returns the capability bitset.
	Flags() Flags

	// Properties translates machine properties through the matcher.
	Properties(inprops fst.Properties) fst.Properties

	// Copy duplicates the matcher. With safe=true the copy must be
	// usable while the original is in use (independent cursor).
	Copy(safe bool) Matcher[W]
}

// Provider is the optional interface an Fst satisfies to supply a
// specialized matcher for itself. A nil result means "use the default".
type Provider[W any] interface {
	InitMatcher(mt MatchType) Matcher[W]
}

// New returns the matcher for f on the requested side: the machine's
// own (via Provider) when it offers one, otherwise a SortedMatcher.
func New[W any](f fst.Fst[W], mt MatchType) Matcher[W] {
	if p, ok := f.(Provider[W]); ok {
		if m := p.InitMatcher(mt); m != nil {
			return m
		}
	}
	return NewSorted(f, mt)
}
