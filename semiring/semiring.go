package semiring

import "math"

// Properties is a bitset of algebraic guarantees a semiring declares.
type Properties uint64

const (
	// LeftSemiring: Times left-distributes over Plus.
	LeftSemiring Properties = 1 << iota
	// RightSemiring: Times right-distributes over Plus.
	RightSemiring
	// Commutative: Times(a, b) == Times(b, a).
	Commutative
	// Idempotent: Plus(a, a) == a.
	Idempotent
	// Path: Plus(a, b) is always a or b.
	Path
)

// Semiring supplies the weight operations for a weight type W.
// Implementations must be stateless values safe to share between any
// number of automata and compositions.
type Semiring[W any] interface {
	// Plus is the path-collection operation ⊕.
	Plus(a, b W) W
	// Times is the path-extension operation ⊗.
	Times(a, b W) W
	// Zero is the ⊕ identity; a state with Zero finality is non-final.
	Zero() W
	// One is the ⊗ identity.
	One() W
	// Equal reports weight equality, modulo the semiring's convergence
	// delta where W is approximate.
	Equal(a, b W) bool
	// Properties returns the declared algebraic property bits.
	Properties() Properties
	// Name identifies the semiring (e.g. "tropical").
	Name() string
}

// DefaultDelta is the comparison tolerance used by the float-valued
// semirings when none is supplied.
const DefaultDelta = 1.0 / 1024.0

// Tropical is the (min, +) semiring over float64.
// Zero is +Inf, One is 0. Commutative, idempotent, and path.
type Tropical struct {
	// Delta is the equality tolerance; zero value means DefaultDelta.
	Delta float64
}

func (t Tropical) Plus(a, b float64) float64  { return math.Min(a, b) }
func (t Tropical) Times(a, b float64) float64 { return a + b }
func (t Tropical) Zero() float64              { return math.Inf(1) }
func (t Tropical) One() float64               { return 0 }

func (t Tropical) Equal(a, b float64) bool { return approxEqual(a, b, t.Delta) }

func (t Tropical) Properties() Properties {
	return LeftSemiring | RightSemiring | Commutative | Idempotent | Path
}

func (t Tropical) Name() string { return "tropical" }

// Log is the (⊕log, +) semiring over float64 with
// a ⊕log b = -log(e^-a + e^-b). Zero is +Inf, One is 0.
type Log struct {
	Delta float64
}

func (l Log) Plus(a, b float64) float64 {
	switch {
	case math.IsInf(a, 1):
		return b
	case math.IsInf(b, 1):
		return a
	case a > b:
		return b - math.Log1p(math.Exp(b-a))
	default:
		return a - math.Log1p(math.Exp(a-b))
	}
}

func (l Log) Times(a, b float64) float64 { return a + b }
func (l Log) Zero() float64              { return math.Inf(1) }
func (l Log) One() float64               { return 0 }

func (l Log) Equal(a, b float64) bool { return approxEqual(a, b, l.Delta) }

func (l Log) Properties() Properties {
	return LeftSemiring | RightSemiring | Commutative
}

func (l Log) Name() string { return "log" }

// Boolean is the (or, and) semiring over bool. Zero is false, One is true.
type Boolean struct{}

func (Boolean) Plus(a, b bool) bool  { return a || b }
func (Boolean) Times(a, b bool) bool { return a && b }
func (Boolean) Zero() bool           { return false }
func (Boolean) One() bool            { return true }
func (Boolean) Equal(a, b bool) bool { return a == b }

func (Boolean) Properties() Properties {
	return LeftSemiring | RightSemiring | Commutative | Idempotent | Path
}

func (Boolean) Name() string { return "boolean" }

// StringZero is the Zero sentinel of the String semiring. It contains a
// NUL byte so it cannot collide with any symbol string.
const StringZero = "\x00∞"

// String is the left string semiring: Plus is longest common prefix,
// Times is concatenation, One is the empty string. It left-distributes
// only and is not commutative.
type String struct{}

func (String) Plus(a, b string) string {
	if a == StringZero {
		return b
	}
	if b == StringZero {
		return a
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

func (String) Times(a, b string) string {
	if a == StringZero || b == StringZero {
		return StringZero
	}
	return a + b
}

func (String) Zero() string           { return StringZero }
func (String) One() string            { return "" }
func (String) Equal(a, b string) bool { return a == b }

func (String) Properties() Properties { return LeftSemiring }

func (String) Name() string { return "string" }

// approxEqual compares within delta, treating equal infinities as equal.
func approxEqual(a, b, delta float64) bool {
	if delta == 0 {
		delta = DefaultDelta
	}
	if math.IsInf(a, 1) && math.IsInf(b, 1) {
		return true
	}
	return math.Abs(a-b) < delta
}
