package fst

import "sort"

// ArcCompare orders two arcs; used by ArcSort.
type ArcCompare[W any] func(a, b Arc[W]) bool

// ILabelCompare orders arcs by input label. Sorting with it is the
// precondition for matching a machine on its input side.
func ILabelCompare[W any](a, b Arc[W]) bool { return a.ILabel < b.ILabel }

// OLabelCompare orders arcs by output label.
func OLabelCompare[W any](a, b Arc[W]) bool { return a.OLabel < b.OLabel }

// ArcSort stably sorts every state's arcs with the given comparison.
// It publishes no property bits itself — use ArcSortInput/ArcSortOutput
// for the common cases, which do.
func ArcSort[W any](f MutableFst[W], cmp ArcCompare[W]) {
	for s := StateID(0); int(s) < f.NumStates(); s++ {
		arcs := f.MutableArcs(s)
		sort.SliceStable(arcs, func(i, j int) bool { return cmp(arcs[i], arcs[j]) })
	}
}

// ArcSortInput sorts every state's arcs by input label and sets
// ILabelSorted.
func ArcSortInput[W any](f MutableFst[W]) {
	ArcSort(f, ILabelCompare[W])
	f.SetProperties(ILabelSorted, ILabelSorted|NotILabelSorted)
}

// ArcSortOutput sorts every state's arcs by output label and sets
// OLabelSorted.
func ArcSortOutput[W any](f MutableFst[W]) {
	ArcSort(f, OLabelCompare[W])
	f.SetProperties(OLabelSorted, OLabelSorted|NotOLabelSorted)
}

// StateSort renumbers f's states so old state s becomes order[s].
// order must be a permutation of 0..NumStates-1; a malformed order
// latches the Error property and leaves f unchanged.
func StateSort[W any](f MutableFst[W], order []StateID) {
	n := f.NumStates()
	if len(order) != n {
		f.SetProperties(Error, Error)
		return
	}
	seen := make([]bool, n)
	for _, o := range order {
		if o < 0 || int(o) >= n || seen[o] {
			f.SetProperties(Error, Error)
			return
		}
		seen[o] = true
	}

	finals := make([]W, n)
	arcSets := make([][]Arc[W], n)
	for s := StateID(0); int(s) < n; s++ {
		arcs := append([]Arc[W](nil), f.Arcs(s)...)
		for i := range arcs {
			arcs[i].NextState = order[arcs[i].NextState]
		}
		finals[order[s]] = f.Final(s)
		arcSets[order[s]] = arcs
	}
	start := f.Start()

	f.DeleteAllStates()
	for range finals {
		f.AddState()
	}
	for s := 0; s < n; s++ {
		f.SetFinal(StateID(s), finals[s])
		for _, a := range arcSets[s] {
			f.AddArc(StateID(s), a)
		}
	}
	if start != NoStateID {
		f.SetStart(order[start])
	}
}
