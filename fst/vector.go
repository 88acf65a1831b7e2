package fst

import (
	"github.com/katalvlaran/wfst/semiring"
	"github.com/katalvlaran/wfst/symtab"
)

// vecState is one materialized state of a Vector.
type vecState[W any] struct {
	final W
	arcs  []Arc[W]
}

// Vector is the expanded, mutable FST: a dense slice of states, each
// holding its finality weight and arc list. It is the output type of the
// eager algorithms and the workhorse for constructing test machines.
type Vector[W any] struct {
	sr     semiring.Semiring[W]
	states []vecState[W]
	start  StateID
	props  Properties
	isyms  *symtab.SymbolTable
	osyms  *symtab.SymbolTable
}

// NewVector creates an empty machine over the given semiring.
func NewVector[W any](sr semiring.Semiring[W]) *Vector[W] {
	return &Vector[W]{sr: sr, start: NoStateID}
}

// Semiring returns the weight algebra.
func (v *Vector[W]) Semiring() semiring.Semiring[W] { return v.sr }

// Start returns the initial state, or NoStateID.
func (v *Vector[W]) Start() StateID { return v.start }

// NumStates returns the state count.
func (v *Vector[W]) NumStates() int { return len(v.states) }

// Final returns the finality weight of s, Zero when s is out of range.
func (v *Vector[W]) Final(s StateID) W {
	if !v.valid(s) {
		return v.sr.Zero()
	}
	return v.states[s].final
}

// NumArcs returns the out-degree of s.
func (v *Vector[W]) NumArcs(s StateID) int {
	if !v.valid(s) {
		return 0
	}
	return len(v.states[s].arcs)
}

// NumInputEpsilons counts input-epsilon arcs of s.
func (v *Vector[W]) NumInputEpsilons(s StateID) int {
	n := 0
	for _, a := range v.Arcs(s) {
		if a.ILabel == Epsilon {
			n++
		}
	}
	return n
}

// NumOutputEpsilons counts output-epsilon arcs of s.
func (v *Vector[W]) NumOutputEpsilons(s StateID) int {
	n := 0
	for _, a := range v.Arcs(s) {
		if a.OLabel == Epsilon {
			n++
		}
	}
	return n
}

// Arcs returns a read-only view of s's arcs.
func (v *Vector[W]) Arcs(s StateID) []Arc[W] {
	if !v.valid(s) {
		return nil
	}
	return v.states[s].arcs
}

// InputSymbols returns the input alphabet, or nil.
func (v *Vector[W]) InputSymbols() *symtab.SymbolTable { return v.isyms }

// OutputSymbols returns the output alphabet, or nil.
func (v *Vector[W]) OutputSymbols() *symtab.SymbolTable { return v.osyms }

// SetInputSymbols attaches the input alphabet.
func (v *Vector[W]) SetInputSymbols(t *symtab.SymbolTable) { v.isyms = t }

// SetOutputSymbols attaches the output alphabet.
func (v *Vector[W]) SetOutputSymbols(t *symtab.SymbolTable) { v.osyms = t }

// AddState appends a fresh non-final state.
func (v *Vector[W]) AddState() StateID {
	v.states = append(v.states, vecState[W]{final: v.sr.Zero()})
	v.invalidate()
	return StateID(len(v.states) - 1)
}

// SetStart makes s the initial state.
func (v *Vector[W]) SetStart(s StateID) {
	v.start = s
	v.invalidate()
}

// SetFinal sets the finality weight of s. Out-of-range ids are ignored.
func (v *Vector[W]) SetFinal(s StateID, w W) {
	if !v.valid(s) {
		return
	}
	v.states[s].final = w
	v.invalidate()
}

// AddArc appends arc to s. Out-of-range ids are ignored.
func (v *Vector[W]) AddArc(s StateID, arc Arc[W]) {
	if !v.valid(s) {
		return
	}
	v.states[s].arcs = append(v.states[s].arcs, arc)
	v.invalidate()
}

// MutableArcs exposes s's arc slice for in-place rewriting.
func (v *Vector[W]) MutableArcs(s StateID) []Arc[W] {
	if !v.valid(s) {
		return nil
	}
	v.invalidate()
	return v.states[s].arcs
}

// DeleteStates removes the listed states and renumbers the survivors,
// dropping every arc whose endpoint disappears.
func (v *Vector[W]) DeleteStates(dstates []StateID) {
	if len(dstates) == 0 {
		return
	}
	dead := make([]bool, len(v.states))
	for _, s := range dstates {
		if v.valid(s) {
			dead[s] = true
		}
	}

	// newID[old] is the surviving state's new id, NoStateID when dropped.
	newID := make([]StateID, len(v.states))
	next := StateID(0)
	for s := range v.states {
		if dead[s] {
			newID[s] = NoStateID
			continue
		}
		newID[s] = next
		next++
	}

	kept := make([]vecState[W], 0, int(next))
	for s, st := range v.states {
		if dead[s] {
			continue
		}
		arcs := st.arcs[:0]
		for _, a := range st.arcs {
			if nid := newID[a.NextState]; nid != NoStateID {
				a.NextState = nid
				arcs = append(arcs, a)
			}
		}
		st.arcs = arcs
		kept = append(kept, st)
	}
	v.states = kept

	if v.start != NoStateID {
		v.start = newID[v.start]
	}
	v.invalidate()
}

// DeleteAllStates empties the machine.
func (v *Vector[W]) DeleteAllStates() {
	v.states = nil
	v.start = NoStateID
	v.invalidate()
}

// SetProperties overwrites the bits selected by mask. Error is sticky:
// once latched it survives any later mask.
func (v *Vector[W]) SetProperties(props, mask Properties) {
	err := v.props & Error
	v.props = (v.props &^ mask) | (props & mask) | err
}

// Properties returns property bits under mask; with compute it settles
// the locally decidable pairs (acceptor, sortedness, weightedness) by a
// scan. Graph-shape pairs (cyclicity, accessibility) are computed by the
// connect package, which writes them back via SetProperties.
func (v *Vector[W]) Properties(mask Properties, compute bool) Properties {
	if compute {
		if mask&(Acceptor|NotAcceptor) != 0 && v.props&(Acceptor|NotAcceptor) == 0 {
			v.computeAcceptor()
		}
		if mask&(ILabelSorted|NotILabelSorted) != 0 && v.props&(ILabelSorted|NotILabelSorted) == 0 {
			v.computeSorted(true)
		}
		if mask&(OLabelSorted|NotOLabelSorted) != 0 && v.props&(OLabelSorted|NotOLabelSorted) == 0 {
			v.computeSorted(false)
		}
		if mask&(Unweighted|Weighted) != 0 && v.props&(Unweighted|Weighted) == 0 {
			v.computeWeighted()
		}
	}
	return v.props & mask
}

// invalidate clears every bit a structural mutation can falsify,
// keeping only Error.
func (v *Vector[W]) invalidate() {
	v.props &= Error
}

func (v *Vector[W]) valid(s StateID) bool {
	return s >= 0 && int(s) < len(v.states)
}

func (v *Vector[W]) computeAcceptor() {
	for s := range v.states {
		for _, a := range v.states[s].arcs {
			if a.ILabel != a.OLabel {
				v.props |= NotAcceptor
				return
			}
		}
	}
	v.props |= Acceptor
}

func (v *Vector[W]) computeSorted(input bool) {
	sorted, unsorted := ILabelSorted, NotILabelSorted
	if !input {
		sorted, unsorted = OLabelSorted, NotOLabelSorted
	}
	for s := range v.states {
		arcs := v.states[s].arcs
		for i := 1; i < len(arcs); i++ {
			prev, cur := arcs[i-1].ILabel, arcs[i].ILabel
			if !input {
				prev, cur = arcs[i-1].OLabel, arcs[i].OLabel
			}
			if prev > cur {
				v.props |= unsorted
				return
			}
		}
	}
	v.props |= sorted
}

func (v *Vector[W]) computeWeighted() {
	one, zero := v.sr.One(), v.sr.Zero()
	for s := range v.states {
		if f := v.states[s].final; !v.sr.Equal(f, zero) && !v.sr.Equal(f, one) {
			v.props |= Weighted
			return
		}
		for _, a := range v.states[s].arcs {
			if !v.sr.Equal(a.Weight, one) {
				v.props |= Weighted
				return
			}
		}
	}
	v.props |= Unweighted
}
