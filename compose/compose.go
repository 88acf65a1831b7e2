package compose

import (
	"github.com/katalvlaran/wfst/cache"
	"github.com/katalvlaran/wfst/connect"
	"github.com/katalvlaran/wfst/fst"
	"github.com/katalvlaran/wfst/matcher"
	"github.com/katalvlaran/wfst/semiring"
	"github.com/katalvlaran/wfst/symtab"
)

// Option configures composition (lazy and eager).
type Option[W any] func(*composeOptions[W])

type composeOptions[W any] struct {
	filterType  FilterType
	matcher1    matcher.Matcher[W]
	matcher2    matcher.Matcher[W]
	stateLimit  int
	cacheLimit  int
	logger      fst.Logger
	symbolCheck bool
	connect     bool
}

func defaultOptions[W any]() composeOptions[W] {
	return composeOptions[W]{
		filterType:  AutoFilter,
		logger:      fst.NopLogger,
		symbolCheck: true,
		connect:     true,
	}
}

// WithFilter selects the composition filter; AutoFilter picks Sequence.
func WithFilter[W any](ft FilterType) Option[W] {
	return func(o *composeOptions[W]) { o.filterType = ft }
}

// WithMatchers overrides the default sorted matchers. Either may be nil
// to keep its default.
func WithMatchers[W any](m1, m2 matcher.Matcher[W]) Option[W] {
	return func(o *composeOptions[W]) { o.matcher1, o.matcher2 = m1, m2 }
}

// WithStateLimit caps the number of composed states; exceeding it
// latches the Error property.
func WithStateLimit[W any](n int) Option[W] {
	return func(o *composeOptions[W]) { o.stateLimit = n }
}

// WithCacheLimit bounds the cache to the n most recently expanded
// states (see package cache); 0 keeps everything.
func WithCacheLimit[W any](n int) Option[W] {
	return func(o *composeOptions[W]) { o.cacheLimit = n }
}

// WithLogger installs the diagnostic sink for error explanations.
func WithLogger[W any](l fst.Logger) Option[W] {
	return func(o *composeOptions[W]) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithoutSymbolCheck skips the symbol-table compatibility check.
func WithoutSymbolCheck[W any]() Option[W] {
	return func(o *composeOptions[W]) { o.symbolCheck = false }
}

// WithoutConnect keeps the eager Compose output untrimmed.
func WithoutConnect[W any]() Option[W] {
	return func(o *composeOptions[W]) { o.connect = false }
}

// ComposeFst is the delayed composition of two machines. States are
// expanded on demand; the standard Fst interface is served from the
// cache. All failure modes latch the Error property instead of
// panicking.
type ComposeFst[W any] struct {
	fst1, fst2 fst.Fst[W]
	sr         semiring.Semiring[W]

	filter Filter[W]
	m1, m2 matcher.Matcher[W]
	table  *StateTable
	store  *cache.Store[W]
	log    fst.Logger

	matchType matcher.MatchType
	props     fst.Properties
}

// NewComposeFst wires a delayed composition of a and b. The
// construction itself never fails: incompatible symbols, an unusable
// match type, or non-commutative weights over weighted inputs latch the
// Error property on the result.
func NewComposeFst[W any](a, b fst.Fst[W], opts ...Option[W]) *ComposeFst[W] {
	o := defaultOptions[W]()
	for _, fn := range opts {
		fn(&o)
	}

	m1, m2 := o.matcher1, o.matcher2
	if m1 == nil {
		m1 = matcher.New(a, matcher.MatchOutput)
	}
	if m2 == nil {
		m2 = matcher.New(b, matcher.MatchInput)
	}

	c := &ComposeFst[W]{
		fst1:   a,
		fst2:   b,
		sr:     a.Semiring(),
		filter: newFilter(o.filterType, a, b, m1, m2),
		table:  NewStateTable(o.stateLimit),
		store:  cache.NewStore[W](cache.WithLimit(o.cacheLimit)),
		log:    o.logger,
	}
	c.m1 = c.filter.Matcher1()
	c.m2 = c.filter.Matcher2()

	if o.symbolCheck && !symtab.Compat(a.OutputSymbols(), b.InputSymbols()) {
		c.setError("compose: output symbol table of 1st argument does not match input symbol table of 2nd argument")
	}

	c.setMatchType()
	if c.matchType == matcher.MatchNone {
		c.setError("compose: 1st argument cannot match on output labels and 2nd argument cannot match on input labels (sort?)")
	}

	if c.sr.Properties()&semiring.Commutative == 0 {
		unw1 := a.Properties(fst.Unweighted, true)&fst.Unweighted != 0
		unw2 := b.Properties(fst.Unweighted, true)&fst.Unweighted != 0
		if !unw1 && !unw2 {
			c.setError("compose: weights must be a commutative semiring: %s", c.sr.Name())
		}
	}

	cprops := ComposeProperties(
		a.Properties(fst.AllProperties, false),
		b.Properties(fst.AllProperties, false),
	)
	c.props |= c.filter.Properties(cprops) &^ fst.Error

	return c
}

// setMatchType resolves which side composition matches on, favoring the
// shallow capability probes before the deep ones.
func (c *ComposeFst[W]) setMatchType() {
	if c.m1.Flags()&matcher.RequireMatch != 0 && c.m1.Type(true) != matcher.MatchOutput {
		c.log.Errorf("compose: 1st argument cannot perform required matching")
		c.matchType = matcher.MatchNone
		return
	}
	if c.m2.Flags()&matcher.RequireMatch != 0 && c.m2.Type(true) != matcher.MatchInput {
		c.log.Errorf("compose: 2nd argument cannot perform required matching")
		c.matchType = matcher.MatchNone
		return
	}

	type1 := c.m1.Type(false)
	type2 := c.m2.Type(false)
	switch {
	case type1 == matcher.MatchOutput && type2 == matcher.MatchInput:
		c.matchType = matcher.MatchBoth
	case type1 == matcher.MatchOutput:
		c.matchType = matcher.MatchOutput
	case type2 == matcher.MatchInput:
		c.matchType = matcher.MatchInput
	case c.m1.Type(true) == matcher.MatchOutput:
		c.matchType = matcher.MatchOutput
	case c.m2.Type(true) == matcher.MatchInput:
		c.matchType = matcher.MatchInput
	default:
		c.matchType = matcher.MatchNone
	}
}

// Semiring returns the weight algebra.
func (c *ComposeFst[W]) Semiring() semiring.Semiring[W] { return c.sr }

// Start returns the composed start state, computing and memoizing it on
// first call.
func (c *ComposeFst[W]) Start() fst.StateID {
	if !c.store.HasStart() {
		c.store.SetStart(c.computeStart())
	}
	return c.store.Start()
}

func (c *ComposeFst[W]) computeStart() fst.StateID {
	if c.props&fst.Error != 0 {
		return fst.NoStateID
	}
	s1 := c.fst1.Start()
	if s1 == fst.NoStateID {
		return fst.NoStateID
	}
	s2 := c.fst2.Start()
	if s2 == fst.NoStateID {
		return fst.NoStateID
	}
	id := c.table.FindState(Tuple{S1: s1, S2: s2, FS: c.filter.Start()})
	if id == fst.NoStateID {
		c.setError("compose: state table overflow")
	}
	return id
}

// Final returns the composed finality of s.
func (c *ComposeFst[W]) Final(s fst.StateID) W {
	if c.props&fst.Error != 0 {
		return c.sr.Zero()
	}
	if !c.store.HasFinal(s) {
		c.store.SetFinal(s, c.computeFinal(s))
	}
	return c.store.Final(s)
}

func (c *ComposeFst[W]) computeFinal(s fst.StateID) W {
	tup := c.table.Tuple(s)
	final1 := c.m1.Final(tup.S1)
	if c.sr.Equal(final1, c.sr.Zero()) {
		return final1
	}
	final2 := c.m2.Final(tup.S2)
	if c.sr.Equal(final2, c.sr.Zero()) {
		return final2
	}
	c.filter.SetState(tup.S1, tup.S2, tup.FS)
	c.filter.FilterFinal(&final1, &final2)
	return c.sr.Times(final1, final2)
}

// NumArcs returns the composed out-degree of s, expanding it if needed.
func (c *ComposeFst[W]) NumArcs(s fst.StateID) int {
	c.ensureExpanded(s)
	if c.props&fst.Error != 0 {
		return 0
	}
	return c.store.NumArcs(s)
}

// NumInputEpsilons counts input epsilons of s.
func (c *ComposeFst[W]) NumInputEpsilons(s fst.StateID) int {
	c.ensureExpanded(s)
	if c.props&fst.Error != 0 {
		return 0
	}
	return c.store.NumInputEpsilons(s)
}

// NumOutputEpsilons counts output epsilons of s.
func (c *ComposeFst[W]) NumOutputEpsilons(s fst.StateID) int {
	c.ensureExpanded(s)
	if c.props&fst.Error != 0 {
		return 0
	}
	return c.store.NumOutputEpsilons(s)
}

// Arcs returns the composed arcs of s, expanding it if needed.
func (c *ComposeFst[W]) Arcs(s fst.StateID) []fst.Arc[W] {
	c.ensureExpanded(s)
	if c.props&fst.Error != 0 {
		return nil
	}
	return c.store.Arcs(s)
}

func (c *ComposeFst[W]) ensureExpanded(s fst.StateID) {
	if c.props&fst.Error != 0 || c.store.HasArcs(s) {
		return
	}
	c.expand(s)
}

// expand computes the arcs of composed state s: position the filter,
// pick the side to match on, then pair the synthetic hold arc and every
// iterated-side arc against the matched side.
func (c *ComposeFst[W]) expand(s fst.StateID) {
	tup := c.table.Tuple(s)
	c.filter.SetState(tup.S1, tup.S2, tup.FS)
	if c.matchInput(tup.S1, tup.S2) {
		c.orderedExpand(s, tup.S2, c.fst1, tup.S1, c.m2, true)
	} else {
		c.orderedExpand(s, tup.S1, c.fst2, tup.S2, c.m1, false)
	}
}

// matchInput decides per composed state which side to match on: true
// means matcher2 indexes FST2's input side while FST1's arcs are
// iterated.
func (c *ComposeFst[W]) matchInput(s1, s2 fst.StateID) bool {
	switch c.matchType {
	case matcher.MatchInput:
		return true
	case matcher.MatchOutput:
		return false
	default: // MatchBoth: decide by per-state priority
		priority1 := c.m1.Priority(s1)
		priority2 := c.m2.Priority(s2)
		if priority1 == matcher.RequirePriority && priority2 == matcher.RequirePriority {
			c.setError("compose: both sides can't require match")
			return true
		}
		if priority1 == matcher.RequirePriority {
			return false
		}
		if priority2 == matcher.RequirePriority {
			return true
		}
		return priority1 <= priority2
	}
}

// orderedExpand pairs arcs so matching happens on state sa of the
// matched machine for each arc leaving state sb of the iterated machine
// fstb. The synthetic hold arc goes first, so a state's arc order is
// deterministic: hold pairings, then iterated arcs in their own order.
func (c *ComposeFst[W]) orderedExpand(s, sa fst.StateID, fstb fst.Fst[W], sb fst.StateID, matchera matcher.Matcher[W], matchInput bool) {
	matchera.SetState(sa)

	loop := fst.Arc[W]{ILabel: fst.NoLabel, OLabel: fst.Epsilon, Weight: c.sr.One(), NextState: sb}
	if matchInput {
		loop = fst.Arc[W]{ILabel: fst.Epsilon, OLabel: fst.NoLabel, Weight: c.sr.One(), NextState: sb}
	}
	c.matchArc(s, matchera, loop, matchInput)

	for _, arcb := range fstb.Arcs(sb) {
		c.matchArc(s, matchera, arcb, matchInput)
	}
	c.store.SetArcs(s)
}

// matchArc matches one iterated-side arc against the positioned
// matcher, passing every pairing through the filter.
func (c *ComposeFst[W]) matchArc(s fst.StateID, matchera matcher.Matcher[W], arc fst.Arc[W], matchInput bool) {
	label := arc.ILabel
	if matchInput {
		label = arc.OLabel
	}
	if !matchera.Find(label) {
		return
	}
	for ; !matchera.Done(); matchera.Next() {
		arca := matchera.Value()
		arcb := arc
		if matchInput {
			if f := c.filter.FilterArc(&arcb, &arca); f != NoFilterState {
				c.addArc(s, arcb, arca, f)
			}
		} else {
			if f := c.filter.FilterArc(&arca, &arcb); f != NoFilterState {
				c.addArc(s, arca, arcb, f)
			}
		}
	}
}

// addArc interns the target tuple and writes the composed arc.
func (c *ComposeFst[W]) addArc(s fst.StateID, a1, a2 fst.Arc[W], fsNext FilterState) {
	next := c.table.FindState(Tuple{S1: a1.NextState, S2: a2.NextState, FS: fsNext})
	if next == fst.NoStateID {
		c.setError("compose: state table overflow")
		return
	}
	c.store.PushArc(s, fst.Arc[W]{
		ILabel:    a1.ILabel,
		OLabel:    a2.OLabel,
		Weight:    c.sr.Times(a1.Weight, a2.Weight),
		NextState: next,
	})
}

// Properties reports the composed machine's property word, folding in
// error states of the inputs, matchers, and state table.
func (c *ComposeFst[W]) Properties(mask fst.Properties, compute bool) fst.Properties {
	if mask&fst.Error != 0 {
		if c.fst1.Properties(fst.Error, false) != 0 ||
			c.fst2.Properties(fst.Error, false) != 0 ||
			c.m1.Properties(0)&fst.Error != 0 ||
			c.m2.Properties(0)&fst.Error != 0 ||
			c.table.Error() {
			c.props |= fst.Error
		}
	}
	return c.props & mask
}

// InputSymbols returns FST1's input alphabet.
func (c *ComposeFst[W]) InputSymbols() *symtab.SymbolTable { return c.fst1.InputSymbols() }

// OutputSymbols returns FST2's output alphabet.
func (c *ComposeFst[W]) OutputSymbols() *symtab.SymbolTable { return c.fst2.OutputSymbols() }

// NumKnownStates returns how many composed states have been discovered
// so far; ids are dense, so 0..NumKnownStates-1 are all valid.
func (c *ComposeFst[W]) NumKnownStates() int { return c.table.Size() }

// StateTuple exposes the component states behind a composed id.
func (c *ComposeFst[W]) StateTuple(s fst.StateID) Tuple { return c.table.Tuple(s) }

func (c *ComposeFst[W]) setError(format string, args ...any) {
	if c.props&fst.Error == 0 {
		c.log.Errorf(format, args...)
	}
	c.props |= fst.Error
}

// ComposeProperties conservatively infers the composed machine's
// property word from its inputs'.
func ComposeProperties(p1, p2 fst.Properties) fst.Properties {
	var out fst.Properties
	if p1&fst.Error != 0 || p2&fst.Error != 0 {
		out |= fst.Error
	}
	if p1&fst.Acceptor != 0 && p2&fst.Acceptor != 0 {
		out |= fst.Acceptor
	}
	if p1&fst.Acyclic != 0 && p2&fst.Acyclic != 0 {
		out |= fst.Acyclic
	}
	if p1&fst.InitialAcyclic != 0 && p2&fst.InitialAcyclic != 0 {
		out |= fst.InitialAcyclic
	}
	if p1&fst.Unweighted != 0 && p2&fst.Unweighted != 0 {
		out |= fst.Unweighted
	}
	return out
}

// Compose eagerly composes a and b into out: it materializes the
// reachable composed states in id order (retaining only the most recent
// state in the lazy cache) and trims the result with connect.Connect
// unless WithoutConnect is given. On any composition error, out is left
// empty with the Error property latched.
func Compose[W any](a, b fst.Fst[W], out fst.MutableFst[W], opts ...Option[W]) {
	o := defaultOptions[W]()
	for _, fn := range opts {
		fn(&o)
	}
	lazyOpts := append([]Option[W]{WithCacheLimit[W](1)}, opts...)
	cf := NewComposeFst(a, b, lazyOpts...)

	out.DeleteAllStates()
	out.SetInputSymbols(a.InputSymbols())
	out.SetOutputSymbols(b.OutputSymbols())

	start := cf.Start()
	if cf.Properties(fst.Error, false) != 0 {
		out.SetProperties(fst.Error, fst.Error)
		return
	}
	if start == fst.NoStateID {
		return
	}

	for s := fst.StateID(0); int(s) < cf.NumKnownStates(); s++ {
		for out.NumStates() <= int(s) {
			out.AddState()
		}
		arcs := cf.Arcs(s)
		if cf.Properties(fst.Error, false) != 0 {
			out.DeleteAllStates()
			out.SetProperties(fst.Error, fst.Error)
			return
		}
		for _, arc := range arcs {
			for out.NumStates() <= int(arc.NextState) {
				out.AddState()
			}
			out.AddArc(s, arc)
		}
		out.SetFinal(s, cf.Final(s))
	}
	out.SetStart(start)
	out.SetProperties(cf.Properties(fst.AllProperties, false), fst.AllProperties)

	if o.connect {
		connect.Connect(out)
	}
}
