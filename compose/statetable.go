package compose

import (
	"github.com/katalvlaran/wfst/fst"
)

// Tuple is the canonical identity of a composed state: the component
// states of the two machines and the carried filter state.
type Tuple struct {
	S1, S2 fst.StateID
	FS     FilterState
}

// StateTable is the canonicalizing bijection between composed state ids
// and tuples. It is append-only for the lifetime of one composition and
// is never shared across compositions.
type StateTable struct {
	ids    map[Tuple]fst.StateID
	tuples []Tuple
	limit  int // 0 = unbounded
	err    bool
}

// NewStateTable creates an empty table. A positive limit caps the
// number of distinct composed states; exceeding it latches the table's
// error flag.
func NewStateTable(limit int) *StateTable {
	return &StateTable{ids: make(map[Tuple]fst.StateID), limit: limit}
}

// FindState returns the dense id for tup, interning it if new. On
// overflow it latches the error flag and returns NoStateID.
func (t *StateTable) FindState(tup Tuple) fst.StateID {
	if id, ok := t.ids[tup]; ok {
		return id
	}
	if t.limit > 0 && len(t.tuples) >= t.limit {
		t.err = true
		return fst.NoStateID
	}
	id := fst.StateID(len(t.tuples))
	t.ids[tup] = id
	t.tuples = append(t.tuples, tup)
	return id
}

// Tuple retrieves a previously interned tuple. Calling it with an id
// FindState never returned is a programming error and panics.
func (t *StateTable) Tuple(id fst.StateID) Tuple {
	return t.tuples[id]
}

// Size returns the number of interned composed states.
func (t *StateTable) Size() int { return len(t.tuples) }

// Error reports whether the table has overflowed.
func (t *StateTable) Error() bool { return t.err }
