package shortestdistance

import (
	"errors"

	"github.com/katalvlaran/wfst/fst"
)

var (
	// ErrFstNil is returned when the machine is nil.
	ErrFstNil = errors.New("shortestdistance: fst is nil")

	// ErrNoStart is returned when the machine has no start state.
	ErrNoStart = errors.New("shortestdistance: fst has no start state")

	// ErrNonConverged is returned when the relaxation cap was exhausted
	// before the distances stabilized.
	ErrNonConverged = errors.New("shortestdistance: did not converge")
)

// inArc is one reversed adjacency entry: an arc into a state.
type inArc[W any] struct {
	src    fst.StateID
	weight W
}

// Option configures the computation.
type Option func(*options)

type options struct {
	maxVisits int
}

func defaultOptions() options {
	return options{maxVisits: 0}
}

// WithMaxVisits caps the total number of state relaxations; 0 means
// unbounded. The cap turns a non-terminating cyclic computation into
// ErrNonConverged.
func WithMaxVisits(n int) Option {
	return func(o *options) { o.maxVisits = n }
}

// ShortestDistance returns, for every discovered state, the ⊕-sum over
// all start-to-state paths of the ⊗-product of arc weights. Distances
// are indexed by state id and the slice ends at the highest discovered
// id; undiscovered states below that id hold Zero.
func ShortestDistance[W any](f fst.Fst[W], opts ...Option) ([]W, error) {
	if f == nil {
		return nil, ErrFstNil
	}
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	start := f.Start()
	if start == fst.NoStateID {
		return nil, ErrNoStart
	}
	sr := f.Semiring()

	// distance[s]: settled ⊕-sum so far; radius[s]: the part not yet
	// pushed through s's arcs (the "r" of the generic single-source
	// algorithm, which keeps reweighting cycles convergent).
	var distance, radius []W
	inQueue := []bool{}
	grow := func(s fst.StateID) {
		for int(s) >= len(distance) {
			distance = append(distance, sr.Zero())
			radius = append(radius, sr.Zero())
			inQueue = append(inQueue, false)
		}
	}

	grow(start)
	distance[start] = sr.One()
	radius[start] = sr.One()
	inQueue[start] = true
	queue := []fst.StateID{start}

	visits := 0
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		inQueue[s] = false

		visits++
		if o.maxVisits > 0 && visits > o.maxVisits {
			return distance, ErrNonConverged
		}

		r := radius[s]
		radius[s] = sr.Zero()
		for _, arc := range f.Arcs(s) {
			grow(arc.NextState)
			t := arc.NextState
			delta := sr.Times(r, arc.Weight)
			next := sr.Plus(distance[t], delta)
			if !sr.Equal(distance[t], next) {
				distance[t] = next
				radius[t] = sr.Plus(radius[t], delta)
				if !inQueue[t] {
					inQueue[t] = true
					queue = append(queue, t)
				}
			}
		}
	}
	return distance, nil
}

// ShortestDistanceReverse returns per-state distances to the final
// states: for every state s, the ⊕-sum over all s-to-final paths of the
// path product ⊗ the final weight. It needs the whole state set, so it
// takes an expanded machine.
func ShortestDistanceReverse[W any](f fst.Expanded[W], opts ...Option) ([]W, error) {
	if f == nil {
		return nil, ErrFstNil
	}
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	sr := f.Semiring()
	n := f.NumStates()

	// Reversed adjacency: rev[t] lists (source, weight) of arcs into t.
	rev := make([][]inArc[W], n)
	for s := fst.StateID(0); int(s) < n; s++ {
		for _, arc := range f.Arcs(s) {
			rev[arc.NextState] = append(rev[arc.NextState], inArc[W]{src: s, weight: arc.Weight})
		}
	}

	distance := make([]W, n)
	radius := make([]W, n)
	inQueue := make([]bool, n)
	var queue []fst.StateID
	for s := fst.StateID(0); int(s) < n; s++ {
		final := f.Final(s)
		distance[s] = final
		radius[s] = final
		if !sr.Equal(final, sr.Zero()) {
			inQueue[s] = true
			queue = append(queue, s)
		} else {
			distance[s] = sr.Zero()
		}
	}

	visits := 0
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		inQueue[t] = false

		visits++
		if o.maxVisits > 0 && visits > o.maxVisits {
			return distance, ErrNonConverged
		}

		r := radius[t]
		radius[t] = sr.Zero()
		for _, in := range rev[t] {
			s := in.src
			delta := sr.Times(in.weight, r)
			next := sr.Plus(distance[s], delta)
			if !sr.Equal(distance[s], next) {
				distance[s] = next
				radius[s] = sr.Plus(radius[s], delta)
				if !inQueue[s] {
					inQueue[s] = true
					queue = append(queue, s)
				}
			}
		}
	}
	return distance, nil
}
