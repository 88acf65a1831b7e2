package fst

import (
	"github.com/katalvlaran/wfst/semiring"
	"github.com/katalvlaran/wfst/symtab"
)

// Label is an arc label. Labels are integers; 0 is epsilon.
type Label int64

// StateID densely numbers the states of one machine.
type StateID int

const (
	// Epsilon is the label consuming no symbol on its side.
	Epsilon Label = 0

	// NoLabel is the no-label sentinel. Matchers interpret Find(NoLabel)
	// as "real epsilon arcs only", and the composition engine uses it as
	// the matched-side label of its synthetic hold-in-place arc.
	NoLabel Label = -1

	// NoStateID denotes an undefined state.
	NoStateID StateID = -1
)

// Arc is one weighted transition: consume ILabel, emit OLabel, multiply
// the path weight by Weight, move to NextState.
type Arc[W any] struct {
	ILabel    Label
	OLabel    Label
	Weight    W
	NextState StateID
}

// Properties is a bitset describing an FST. Most bits come in
// positive/negative pairs; a pair with neither bit set is unknown.
type Properties uint64

const (
	// Error marks a machine that failed; sticky once set.
	Error Properties = 1 << iota

	// Acceptor: every arc has ILabel == OLabel.
	Acceptor
	NotAcceptor

	// ILabelSorted: every state's arcs are sorted by input label.
	ILabelSorted
	NotILabelSorted

	// OLabelSorted: every state's arcs are sorted by output label.
	OLabelSorted
	NotOLabelSorted

	// Unweighted: every arc weight is One and every final weight is Zero
	// or One.
	Unweighted
	Weighted

	// Cyclic: some cycle exists.
	Cyclic
	Acyclic

	// InitialCyclic: some cycle passes through the start state.
	InitialCyclic
	InitialAcyclic

	// TopSorted: every arc goes from a smaller to a larger state id.
	TopSorted
	NotTopSorted

	// Accessible: every state is reachable from the start.
	Accessible
	NotAccessible

	// CoAccessible: every state reaches a final state.
	CoAccessible
	NotCoAccessible

	// ILabelInvariant: a transformation (e.g. a composition filter)
	// guarantees it never rewrites first-side input labels.
	ILabelInvariant

	// OLabelInvariant: likewise for second-side output labels.
	OLabelInvariant
)

// AllProperties masks every property bit.
const AllProperties = Error |
	Acceptor | NotAcceptor |
	ILabelSorted | NotILabelSorted |
	OLabelSorted | NotOLabelSorted |
	Unweighted | Weighted |
	Cyclic | Acyclic |
	InitialCyclic | InitialAcyclic |
	TopSorted | NotTopSorted |
	Accessible | NotAccessible |
	CoAccessible | NotCoAccessible |
	ILabelInvariant | OLabelInvariant

// Fst is the read contract every weighted automaton satisfies, expanded
// or lazy. Implementations are single-threaded per instance; lazy ones
// may mutate internal caches on any call.
type Fst[W any] interface {
	// Semiring returns the weight algebra of this machine.
	Semiring() semiring.Semiring[W]

	// Start returns the initial state, or NoStateID.
	Start() StateID

	// Final returns the finality weight of s; Zero means non-final.
	Final(s StateID) W

	// NumArcs returns the out-degree of s.
	NumArcs(s StateID) int

	// NumInputEpsilons counts arcs of s with ILabel == Epsilon.
	NumInputEpsilons(s StateID) int

	// NumOutputEpsilons counts arcs of s with OLabel == Epsilon.
	NumOutputEpsilons(s StateID) int

	// Arcs returns the arcs leaving s. The returned slice is a view the
	// caller must not modify; it stays valid until the machine mutates.
	Arcs(s StateID) []Arc[W]

	// Properties returns property bits under mask. When compute is true
	// the implementation may run a scan to settle bits it tracks;
	// unknown pairs stay zero.
	Properties(mask Properties, compute bool) Properties

	// InputSymbols returns the input alphabet, or nil.
	InputSymbols() *symtab.SymbolTable

	// OutputSymbols returns the output alphabet, or nil.
	OutputSymbols() *symtab.SymbolTable
}

// Expanded is an Fst with all states materialized.
type Expanded[W any] interface {
	Fst[W]

	// NumStates returns the state count; ids are 0..NumStates-1.
	NumStates() int
}

// MutableFst is the write contract consumed by the offline algorithms
// (Connect, TopSort, the eager composition wrapper).
type MutableFst[W any] interface {
	Expanded[W]

	// AddState appends a fresh non-final state and returns its id.
	AddState() StateID

	// SetStart makes s the initial state.
	SetStart(s StateID)

	// SetFinal sets the finality weight of s.
	SetFinal(s StateID, w W)

	// AddArc appends arc to s.
	AddArc(s StateID, arc Arc[W])

	// MutableArcs returns the underlying arc slice of s for in-place
	// rewriting (sorting, label inversion). Callers that change arc
	// order or labels must fix the affected property bits themselves.
	MutableArcs(s StateID) []Arc[W]

	// DeleteStates removes the listed states, dropping every arc into
	// them and renumbering the survivors densely in order.
	DeleteStates(dstates []StateID)

	// DeleteAllStates empties the machine.
	DeleteAllStates()

	// SetProperties overwrites the bits selected by mask with props.
	SetProperties(props, mask Properties)

	// SetInputSymbols attaches (a shared handle of) the input alphabet.
	SetInputSymbols(t *symtab.SymbolTable)

	// SetOutputSymbols attaches the output alphabet.
	SetOutputSymbols(t *symtab.SymbolTable)
}

// Logger is the injected diagnostic sink. Operations that latch the
// Error property explain themselves through it; the default discards.
type Logger interface {
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Errorf(string, ...any) {}

// NopLogger discards all diagnostics.
var NopLogger Logger = nopLogger{}
