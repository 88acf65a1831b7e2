package connect

import (
	"github.com/katalvlaran/wfst/fst"
)

// UnionFind is a disjoint-set forest over state ids with path
// compression, sized on demand.
type UnionFind struct {
	parent []fst.StateID
}

// NewUnionFind returns an empty forest.
func NewUnionFind() *UnionFind { return &UnionFind{} }

// MakeSet ensures s has a singleton set.
func (u *UnionFind) MakeSet(s fst.StateID) {
	for int(s) >= len(u.parent) {
		u.parent = append(u.parent, fst.NoStateID)
	}
	if u.parent[s] == fst.NoStateID {
		u.parent[s] = s
	}
}

// FindSet returns the representative of s's set, or NoStateID when s
// has no set yet.
func (u *UnionFind) FindSet(s fst.StateID) fst.StateID {
	if int(s) >= len(u.parent) || u.parent[s] == fst.NoStateID {
		return fst.NoStateID
	}
	root := s
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for u.parent[s] != root {
		u.parent[s], s = root, u.parent[s]
	}
	return root
}

// Union merges the sets of a and b.
func (u *UnionFind) Union(a, b fst.StateID) {
	ra, rb := u.FindSet(a), u.FindSet(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

// CCVisitor computes connected components of the undirected view of a
// machine (arc direction ignored). Use with Visit.
type CCVisitor[W any] struct {
	comps   *UnionFind
	nstates int
}

// NewCCVisitor returns a visitor ready for one traversal.
func NewCCVisitor[W any]() *CCVisitor[W] {
	return &CCVisitor[W]{comps: NewUnionFind()}
}

func (v *CCVisitor[W]) InitVisit(fst.Expanded[W]) {
	v.comps = NewUnionFind()
	v.nstates = 0
}

func (v *CCVisitor[W]) InitState(s, _ fst.StateID) bool {
	v.nstates++
	if v.comps.FindSet(s) == fst.NoStateID {
		v.comps.MakeSet(s)
	}
	return true
}

func (v *CCVisitor[W]) TreeArc(s fst.StateID, arc fst.Arc[W]) bool {
	v.comps.MakeSet(arc.NextState)
	v.comps.Union(s, arc.NextState)
	return true
}

func (v *CCVisitor[W]) BackArc(s fst.StateID, arc fst.Arc[W]) bool {
	v.comps.Union(s, arc.NextState)
	return true
}

func (v *CCVisitor[W]) ForwardOrCrossArc(s fst.StateID, arc fst.Arc[W]) bool {
	v.comps.Union(s, arc.NextState)
	return true
}

func (v *CCVisitor[W]) FinishState(fst.StateID, fst.StateID, *fst.Arc[W]) {}

func (v *CCVisitor[W]) FinishVisit() {}

// CCs returns the component number of every state and the component
// count.
func (v *CCVisitor[W]) CCs() ([]int, int) {
	cc := make([]int, v.nstates)
	for i := range cc {
		cc[i] = -1
	}
	ncomp := 0
	for s := 0; s < v.nstates; s++ {
		rep := v.comps.FindSet(fst.StateID(s))
		if cc[rep] == -1 {
			cc[rep] = ncomp
			ncomp++
		}
		cc[s] = cc[rep]
	}
	return cc, ncomp
}
