package connect

import (
	"github.com/katalvlaran/wfst/fst"
)

// SCCVisitor computes strongly-connected components with Tarjan's
// single-DFS algorithm, along with per-state accessibility and
// coaccessibility and the related property bits. Use with Visit; the
// result fields are valid after FinishVisit.
//
// SCC ids are assigned in reverse discovery order, so for an acyclic
// machine they form a topological order on the condensation.
type SCCVisitor[W any] struct {
	// SCC[s] is the component id of state s.
	SCC []int

	// Access[s] reports reachability from the start state.
	Access []bool

	// CoAccess[s] reports reachability of a final state from s.
	CoAccess []bool

	f     fst.Expanded[W]
	start fst.StateID
	props fst.Properties

	dfnumber []int
	lowlink  []int
	onstack  []bool
	sccStack []fst.StateID
	nstates  int
	nscc     int
}

// NewSCCVisitor returns a visitor ready for one traversal.
func NewSCCVisitor[W any]() *SCCVisitor[W] { return &SCCVisitor[W]{} }

// Props returns the property bits established by the traversal:
// cyclicity, initial cyclicity, accessibility, and coaccessibility.
func (v *SCCVisitor[W]) Props() fst.Properties { return v.props }

func (v *SCCVisitor[W]) InitVisit(f fst.Expanded[W]) {
	v.f = f
	v.start = f.Start()
	n := f.NumStates()
	v.SCC = make([]int, n)
	v.Access = make([]bool, n)
	v.CoAccess = make([]bool, n)
	v.dfnumber = make([]int, n)
	v.lowlink = make([]int, n)
	v.onstack = make([]bool, n)
	for i := range v.SCC {
		v.SCC[i] = -1
		v.dfnumber[i] = -1
		v.lowlink[i] = -1
	}
	v.sccStack = v.sccStack[:0]
	v.nstates, v.nscc = 0, 0
	v.props = fst.Acyclic | fst.InitialAcyclic | fst.Accessible | fst.CoAccessible
}

func (v *SCCVisitor[W]) InitState(s, root fst.StateID) bool {
	v.sccStack = append(v.sccStack, s)
	v.dfnumber[s] = v.nstates
	v.lowlink[s] = v.nstates
	v.onstack[s] = true
	if root == v.start {
		v.Access[s] = true
	} else {
		v.props |= fst.NotAccessible
		v.props &^= fst.Accessible
	}
	v.nstates++
	return true
}

func (v *SCCVisitor[W]) TreeArc(fst.StateID, fst.Arc[W]) bool { return true }

func (v *SCCVisitor[W]) BackArc(s fst.StateID, arc fst.Arc[W]) bool {
	t := arc.NextState
	if v.dfnumber[t] < v.lowlink[s] {
		v.lowlink[s] = v.dfnumber[t]
	}
	if v.CoAccess[t] {
		v.CoAccess[s] = true
	}
	v.props |= fst.Cyclic
	v.props &^= fst.Acyclic
	if t == v.start {
		v.props |= fst.InitialCyclic
		v.props &^= fst.InitialAcyclic
	}
	return true
}

func (v *SCCVisitor[W]) ForwardOrCrossArc(s fst.StateID, arc fst.Arc[W]) bool {
	t := arc.NextState
	// Cross arc to an on-stack target joins the SCCs.
	if v.dfnumber[t] < v.dfnumber[s] && v.onstack[t] && v.dfnumber[t] < v.lowlink[s] {
		v.lowlink[s] = v.dfnumber[t]
	}
	if v.CoAccess[t] {
		v.CoAccess[s] = true
	}
	return true
}

func (v *SCCVisitor[W]) FinishState(s, parent fst.StateID, _ *fst.Arc[W]) {
	sr := v.f.Semiring()
	if !sr.Equal(v.f.Final(s), sr.Zero()) {
		v.CoAccess[s] = true
	}

	if v.dfnumber[s] == v.lowlink[s] { // root of a new SCC
		sccCoaccess := false
		for i := len(v.sccStack) - 1; ; i-- {
			t := v.sccStack[i]
			if v.CoAccess[t] {
				sccCoaccess = true
			}
			if t == s {
				break
			}
		}
		for {
			t := v.sccStack[len(v.sccStack)-1]
			v.SCC[t] = v.nscc
			if sccCoaccess {
				v.CoAccess[t] = true
			}
			v.onstack[t] = false
			v.sccStack = v.sccStack[:len(v.sccStack)-1]
			if t == s {
				break
			}
		}
		if !sccCoaccess {
			v.props |= fst.NotCoAccessible
			v.props &^= fst.CoAccessible
		}
		v.nscc++
	}

	if parent != fst.NoStateID {
		if v.CoAccess[s] {
			v.CoAccess[parent] = true
		}
		if v.lowlink[s] < v.lowlink[parent] {
			v.lowlink[parent] = v.lowlink[s]
		}
	}
}

func (v *SCCVisitor[W]) FinishVisit() {
	// Renumber so SCC ids are in topological order for acyclic input.
	for i := range v.SCC {
		v.SCC[i] = v.nscc - 1 - v.SCC[i]
	}
}

// NumSCCs returns the component count; valid after the traversal.
func (v *SCCVisitor[W]) NumSCCs() int { return v.nscc }
