package cache

import (
	"github.com/katalvlaran/wfst/fst"
)

// Option configures a Store.
type Option func(*options)

type options struct {
	limit int // 0 = unlimited
}

// WithLimit retains the arcs of at most n most recently expanded states
// (n >= 1). Evicted states lose their expanded mark and may be expanded
// again; finality and the start memo are never evicted.
func WithLimit(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.limit = n
		}
	}
}

// state is the memo for one state id.
type state[W any] struct {
	final    W
	hasFinal bool
	arcs     []fst.Arc[W]
	niEps    int
	noEps    int
	expanded bool
}

// Store memoizes a lazy FST's computed states.
type Store[W any] struct {
	states   []state[W]
	start    fst.StateID
	hasStart bool
	opts     options

	// order of expansion, oldest first; maintained only with a limit
	lru []fst.StateID

	// expansions counts Expand invocations per state id, for the
	// at-most-once accounting exposed by Expansions.
	expansions map[fst.StateID]int
}

// NewStore creates an empty store.
func NewStore[W any](opts ...Option) *Store[W] {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return &Store[W]{opts: o, expansions: make(map[fst.StateID]int)}
}

// HasStart reports whether the start memo is set.
func (c *Store[W]) HasStart() bool { return c.hasStart }

// Start returns the memoized start state.
func (c *Store[W]) Start() fst.StateID {
	if !c.hasStart {
		return fst.NoStateID
	}
	return c.start
}

// SetStart memoizes the start state.
func (c *Store[W]) SetStart(s fst.StateID) {
	c.start = s
	c.hasStart = true
}

// HasFinal reports whether s's finality is memoized.
func (c *Store[W]) HasFinal(s fst.StateID) bool {
	return c.known(s) && c.states[s].hasFinal
}

// Final returns s's memoized finality weight.
func (c *Store[W]) Final(s fst.StateID) W {
	return c.states[s].final
}

// SetFinal memoizes s's finality weight.
func (c *Store[W]) SetFinal(s fst.StateID, w W) {
	c.grow(s)
	c.states[s].final = w
	c.states[s].hasFinal = true
}

// HasArcs reports whether s is expanded.
func (c *Store[W]) HasArcs(s fst.StateID) bool {
	return c.known(s) && c.states[s].expanded
}

// Arcs returns the stored arcs of an expanded state.
func (c *Store[W]) Arcs(s fst.StateID) []fst.Arc[W] {
	return c.states[s].arcs
}

// NumArcs returns the stored out-degree of an expanded state.
func (c *Store[W]) NumArcs(s fst.StateID) int { return len(c.states[s].arcs) }

// NumInputEpsilons returns the stored input-epsilon count.
func (c *Store[W]) NumInputEpsilons(s fst.StateID) int { return c.states[s].niEps }

// NumOutputEpsilons returns the stored output-epsilon count.
func (c *Store[W]) NumOutputEpsilons(s fst.StateID) int { return c.states[s].noEps }

// PushArc appends one computed arc to s's pending arc set. The arcs
// become visible once SetArcs marks the state expanded.
func (c *Store[W]) PushArc(s fst.StateID, arc fst.Arc[W]) {
	c.grow(s)
	st := &c.states[s]
	st.arcs = append(st.arcs, arc)
	if arc.ILabel == fst.Epsilon {
		st.niEps++
	}
	if arc.OLabel == fst.Epsilon {
		st.noEps++
	}
}

// SetArcs marks s expanded, making its pushed arcs visible and
// recording the expansion for the at-most-once accounting.
func (c *Store[W]) SetArcs(s fst.StateID) {
	c.grow(s)
	c.states[s].expanded = true
	c.expansions[s]++
	if c.opts.limit > 0 {
		c.lru = append(c.lru, s)
		c.evict(s)
	}
}

// Expansions reports how many times s has been expanded. With no
// retention limit the invariant is Expansions(s) <= 1 for every s.
func (c *Store[W]) Expansions(s fst.StateID) int { return c.expansions[s] }

// evict drops the oldest expanded states beyond the retention limit,
// never the just-expanded current one.
func (c *Store[W]) evict(current fst.StateID) {
	for len(c.lru) > c.opts.limit {
		victim := c.lru[0]
		c.lru = c.lru[1:]
		if victim == current {
			c.lru = append(c.lru, victim)
			continue
		}
		st := &c.states[victim]
		st.arcs = nil
		st.niEps, st.noEps = 0, 0
		st.expanded = false
	}
}

func (c *Store[W]) known(s fst.StateID) bool {
	return s >= 0 && int(s) < len(c.states)
}

func (c *Store[W]) grow(s fst.StateID) {
	for int(s) >= len(c.states) {
		c.states = append(c.states, state[W]{})
	}
}
