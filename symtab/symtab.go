package symtab

import (
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"
	"sort"
	"sync/atomic"
)

// NoSymbol is returned by Find when a symbol or key is absent.
const NoSymbol int64 = -1

// SymbolTable maps symbols to integer keys and back. The zero value is
// not usable; construct with New. Handles obtained via Copy share storage
// until one of them mutates.
type SymbolTable struct {
	impl *tableImpl
}

// tableImpl is the shared storage behind one or more SymbolTable handles.
type tableImpl struct {
	refs         atomic.Int32
	name         string
	availableKey int64
	// syms holds symbols in insertion order; keys[i] is syms[i]'s key.
	syms   []string
	keys   []int64
	symKey map[string]int64
	keySym map[int64]string

	// checksum memo, invalidated on mutation
	checksumOK bool
	labeledSum string
	plainSum   string
}

// New creates an empty table with the given name.
func New(name string) *SymbolTable {
	impl := &tableImpl{
		name:   name,
		symKey: make(map[string]int64),
		keySym: make(map[int64]string),
	}
	impl.refs.Store(1)
	return &SymbolTable{impl: impl}
}

// Copy returns a new handle sharing this table's storage. O(1); the
// storage is cloned only when either handle later mutates.
func (t *SymbolTable) Copy() *SymbolTable {
	t.impl.refs.Add(1)
	return &SymbolTable{impl: t.impl}
}

// mutateCheck clones the shared storage before the first write through
// this handle, so sibling handles keep their snapshot.
func (t *SymbolTable) mutateCheck() {
	if t.impl.refs.Load() == 1 {
		t.impl.checksumOK = false
		return
	}
	t.impl.refs.Add(-1)
	clone := &tableImpl{
		name:         t.impl.name,
		availableKey: t.impl.availableKey,
		syms:         append([]string(nil), t.impl.syms...),
		keys:         append([]int64(nil), t.impl.keys...),
		symKey:       make(map[string]int64, len(t.impl.symKey)),
		keySym:       make(map[int64]string, len(t.impl.keySym)),
	}
	for s, k := range t.impl.symKey {
		clone.symKey[s] = k
	}
	for k, s := range t.impl.keySym {
		clone.keySym[k] = s
	}
	clone.refs.Store(1)
	t.impl = clone
}

// Name returns the table name.
func (t *SymbolTable) Name() string { return t.impl.name }

// SetName renames the table.
func (t *SymbolTable) SetName(name string) {
	t.mutateCheck()
	t.impl.name = name
}

// NumSymbols returns the number of entries.
func (t *SymbolTable) NumSymbols() int { return len(t.impl.syms) }

// AvailableKey returns the lowest key not yet assigned automatically
// (highest key seen + 1).
func (t *SymbolTable) AvailableKey() int64 { return t.impl.availableKey }

// AddSymbol inserts symbol with an automatically assigned key and
// returns the key. Re-adding an existing symbol returns its current key.
func (t *SymbolTable) AddSymbol(symbol string) int64 {
	if k, ok := t.impl.symKey[symbol]; ok {
		return k
	}
	return t.AddSymbolKey(symbol, t.impl.availableKey)
}

// AddSymbolKey inserts symbol with an explicit key and returns the key.
// An existing (symbol, key) pair is a no-op; rebinding either side of the
// bijection replaces the stale pairing.
func (t *SymbolTable) AddSymbolKey(symbol string, key int64) int64 {
	if k, ok := t.impl.symKey[symbol]; ok && k == key {
		return key
	}
	t.mutateCheck()
	if old, ok := t.impl.symKey[symbol]; ok {
		t.removeKey(old)
	}
	if _, ok := t.impl.keySym[key]; ok {
		t.removeKey(key)
	}
	t.impl.syms = append(t.impl.syms, symbol)
	t.impl.keys = append(t.impl.keys, key)
	t.impl.symKey[symbol] = key
	t.impl.keySym[key] = symbol
	if key >= t.impl.availableKey {
		t.impl.availableKey = key + 1
	}
	return key
}

// RemoveSymbol deletes the entry with the given key, if present.
func (t *SymbolTable) RemoveSymbol(key int64) {
	if _, ok := t.impl.keySym[key]; !ok {
		return
	}
	t.mutateCheck()
	t.removeKey(key)
}

// removeKey unlinks key from both directions and the dense slices.
// Callers hold a unique impl.
func (t *SymbolTable) removeKey(key int64) {
	sym, ok := t.impl.keySym[key]
	if !ok {
		return
	}
	delete(t.impl.keySym, key)
	delete(t.impl.symKey, sym)
	for i, k := range t.impl.keys {
		if k == key {
			t.impl.syms = append(t.impl.syms[:i], t.impl.syms[i+1:]...)
			t.impl.keys = append(t.impl.keys[:i], t.impl.keys[i+1:]...)
			break
		}
	}
}

// Find returns the key for symbol, or NoSymbol if absent.
func (t *SymbolTable) Find(symbol string) int64 {
	if k, ok := t.impl.symKey[symbol]; ok {
		return k
	}
	return NoSymbol
}

// FindSymbol returns the symbol for key, or "" if absent.
func (t *SymbolTable) FindSymbol(key int64) string {
	return t.impl.keySym[key]
}

// Member reports whether key is present.
func (t *SymbolTable) Member(key int64) bool {
	_, ok := t.impl.keySym[key]
	return ok
}

// GetNthKey returns the key at insertion position pos, or NoSymbol when
// pos is out of range.
func (t *SymbolTable) GetNthKey(pos int) int64 {
	if pos < 0 || pos >= len(t.impl.keys) {
		return NoSymbol
	}
	return t.impl.keys[pos]
}

// AddTable merges other into t, offsetting every added key by t's
// current available key so existing entries keep their keys unique.
// Symbols already present in t are left untouched.
func (t *SymbolTable) AddTable(other *SymbolTable) {
	offset := t.AvailableKey()
	for i := 0; i < other.NumSymbols(); i++ {
		key := other.GetNthKey(i)
		sym := other.FindSymbol(key)
		if t.Find(sym) == NoSymbol {
			t.AddSymbolKey(sym, key+offset)
		}
	}
}

// LabeledCheckSum returns a content checksum over the (symbol, key)
// pairs, independent of insertion order. Tables with equal checksums are
// compatible alphabets.
func (t *SymbolTable) LabeledCheckSum() string {
	t.recomputeCheckSums()
	return t.impl.labeledSum
}

// CheckSum returns a checksum over the symbols taken in key order; unlike
// LabeledCheckSum it does not hash the key values themselves.
func (t *SymbolTable) CheckSum() string {
	t.recomputeCheckSums()
	return t.impl.plainSum
}

func (t *SymbolTable) recomputeCheckSums() {
	if t.impl.checksumOK {
		return
	}
	idx := make([]int, len(t.impl.syms))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return t.impl.keys[idx[a]] < t.impl.keys[idx[b]] })

	labeled := md5.New()
	plain := md5.New()
	var kb [8]byte
	for _, i := range idx {
		plain.Write([]byte(t.impl.syms[i]))
		plain.Write([]byte{0})
		labeled.Write([]byte(t.impl.syms[i]))
		labeled.Write([]byte{0})
		binary.LittleEndian.PutUint64(kb[:], uint64(t.impl.keys[i]))
		labeled.Write(kb[:])
	}
	t.impl.plainSum = hex.EncodeToString(plain.Sum(nil))
	t.impl.labeledSum = hex.EncodeToString(labeled.Sum(nil))
	t.impl.checksumOK = true
}

// Compat reports whether two tables describe the same alphabet. A nil
// table is compatible with anything.
func Compat(a, b *SymbolTable) bool {
	if a == nil || b == nil {
		return true
	}
	return a.LabeledCheckSum() == b.LabeledCheckSum()
}

// Relabel builds a new table retaining only the symbols explicitly
// relabeled by pairs (oldKey, newKey) in table.
func Relabel(table *SymbolTable, pairs [][2]int64) *SymbolTable {
	name := table.Name()
	if name != "" {
		name = "relabeled_" + name
	}
	out := New(name)
	for _, p := range pairs {
		if sym := table.FindSymbol(p[0]); sym != "" {
			out.AddSymbolKey(sym, p[1])
		}
	}
	return out
}

// Iterator walks a table's entries in insertion order.
type Iterator struct {
	table *SymbolTable
	pos   int
}

// NewIterator returns an iterator positioned at the first entry.
func NewIterator(table *SymbolTable) *Iterator {
	return &Iterator{table: table}
}

// Done reports whether iteration is exhausted.
func (it *Iterator) Done() bool { return it.pos >= it.table.NumSymbols() }

// Value returns the current entry's key.
func (it *Iterator) Value() int64 { return it.table.GetNthKey(it.pos) }

// Symbol returns the current entry's symbol.
func (it *Iterator) Symbol() string { return it.table.FindSymbol(it.Value()) }

// Next advances to the following entry.
func (it *Iterator) Next() { it.pos++ }

// Reset rewinds to the first entry.
func (it *Iterator) Reset() { it.pos = 0 }
