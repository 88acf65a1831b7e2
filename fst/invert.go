package fst

import (
	"github.com/katalvlaran/wfst/semiring"
	"github.com/katalvlaran/wfst/symtab"
)

// Invert exchanges input and output labels on every arc of f, swapping
// the symbol tables and the label-dependent property bits, so the
// machine transduces the inverse relation. In place, O(V + E).
func Invert[W any](f MutableFst[W]) {
	for s := StateID(0); int(s) < f.NumStates(); s++ {
		arcs := f.MutableArcs(s)
		for i := range arcs {
			arcs[i].ILabel, arcs[i].OLabel = arcs[i].OLabel, arcs[i].ILabel
		}
	}

	isyms, osyms := f.InputSymbols(), f.OutputSymbols()
	f.SetInputSymbols(osyms)
	f.SetOutputSymbols(isyms)

	props := f.Properties(AllProperties, false)
	f.SetProperties(invertProperties(props), AllProperties)
}

// invertProperties swaps the input/output poles of a property word.
func invertProperties(p Properties) Properties {
	out := p &^ (ILabelSorted | NotILabelSorted | OLabelSorted | NotOLabelSorted)
	if p&ILabelSorted != 0 {
		out |= OLabelSorted
	}
	if p&NotILabelSorted != 0 {
		out |= NotOLabelSorted
	}
	if p&OLabelSorted != 0 {
		out |= ILabelSorted
	}
	if p&NotOLabelSorted != 0 {
		out |= NotILabelSorted
	}
	return out
}

// InvertFst is the delayed inversion of an inner FST: a read-only view
// that swaps labels arc by arc as they are requested.
type InvertFst[W any] struct {
	inner Fst[W]
}

// NewInvertFst wraps f in a lazy label-swapping view.
func NewInvertFst[W any](f Fst[W]) *InvertFst[W] {
	return &InvertFst[W]{inner: f}
}

func (f *InvertFst[W]) Semiring() semiring.Semiring[W] { return f.inner.Semiring() }
func (f *InvertFst[W]) Start() StateID                 { return f.inner.Start() }
func (f *InvertFst[W]) Final(s StateID) W              { return f.inner.Final(s) }
func (f *InvertFst[W]) NumArcs(s StateID) int          { return f.inner.NumArcs(s) }

func (f *InvertFst[W]) NumInputEpsilons(s StateID) int  { return f.inner.NumOutputEpsilons(s) }
func (f *InvertFst[W]) NumOutputEpsilons(s StateID) int { return f.inner.NumInputEpsilons(s) }

// Arcs materializes a swapped copy of the inner state's arcs.
func (f *InvertFst[W]) Arcs(s StateID) []Arc[W] {
	inner := f.inner.Arcs(s)
	if inner == nil {
		return nil
	}
	arcs := make([]Arc[W], len(inner))
	for i, a := range inner {
		arcs[i] = Arc[W]{ILabel: a.OLabel, OLabel: a.ILabel, Weight: a.Weight, NextState: a.NextState}
	}
	return arcs
}

func (f *InvertFst[W]) Properties(mask Properties, compute bool) Properties {
	return invertProperties(f.inner.Properties(invertProperties(mask), compute)) & mask
}

func (f *InvertFst[W]) InputSymbols() *symtab.SymbolTable  { return f.inner.OutputSymbols() }
func (f *InvertFst[W]) OutputSymbols() *symtab.SymbolTable { return f.inner.InputSymbols() }
