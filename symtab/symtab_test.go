package symtab_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wfst/symtab"
)

func buildABC(t *testing.T) *symtab.SymbolTable {
	t.Helper()
	table := symtab.New("abc")
	table.AddSymbolKey("<eps>", 0)
	table.AddSymbol("a")
	table.AddSymbol("b")
	table.AddSymbol("c")
	return table
}

func TestAddFind(t *testing.T) {
	table := buildABC(t)
	assert.Equal(t, int64(0), table.Find("<eps>"))
	assert.Equal(t, int64(1), table.Find("a"))
	assert.Equal(t, int64(3), table.Find("c"))
	assert.Equal(t, "b", table.FindSymbol(2))
	assert.Equal(t, symtab.NoSymbol, table.Find("z"))
	assert.Equal(t, "", table.FindSymbol(99))
	assert.Equal(t, int64(4), table.AvailableKey())
	assert.Equal(t, 4, table.NumSymbols())
}

func TestAddSymbol_ExistingReturnsKey(t *testing.T) {
	table := buildABC(t)
	assert.Equal(t, int64(1), table.AddSymbol("a"))
	assert.Equal(t, 4, table.NumSymbols())
}

func TestRemoveSymbol(t *testing.T) {
	table := buildABC(t)
	table.RemoveSymbol(2)
	assert.Equal(t, symtab.NoSymbol, table.Find("b"))
	assert.False(t, table.Member(2))
	assert.Equal(t, 3, table.NumSymbols())
}

func TestCopyOnWrite(t *testing.T) {
	table := buildABC(t)
	cp := table.Copy()

	// Mutating the copy must not disturb the original.
	cp.AddSymbol("d")
	assert.Equal(t, symtab.NoSymbol, table.Find("d"))
	assert.Equal(t, int64(4), cp.Find("d"))

	// And mutating the original must not disturb the copy.
	table.AddSymbol("e")
	assert.Equal(t, symtab.NoSymbol, cp.Find("e"))
}

func TestAddTable_OffsetsKeys(t *testing.T) {
	table := buildABC(t)
	other := symtab.New("xy")
	other.AddSymbolKey("x", 0)
	other.AddSymbolKey("y", 1)

	table.AddTable(other)
	assert.Equal(t, int64(4), table.Find("x"))
	assert.Equal(t, int64(5), table.Find("y"))
	// Shared symbols keep the base table's binding.
	table2 := buildABC(t)
	other2 := symtab.New("ab")
	other2.AddSymbolKey("a", 0)
	table2.AddTable(other2)
	assert.Equal(t, int64(1), table2.Find("a"))
}

func TestCompat(t *testing.T) {
	a := buildABC(t)
	b := buildABC(t)
	assert.True(t, symtab.Compat(a, b))
	assert.True(t, symtab.Compat(nil, b))
	assert.True(t, symtab.Compat(a, nil))

	b.AddSymbol("d")
	assert.False(t, symtab.Compat(a, b))

	// Same symbols under different keys are not compatible.
	c := symtab.New("abc")
	c.AddSymbolKey("<eps>", 0)
	c.AddSymbolKey("a", 2)
	c.AddSymbolKey("b", 1)
	c.AddSymbolKey("c", 3)
	assert.False(t, symtab.Compat(a, c))
}

func TestChecksum_OrderIndependent(t *testing.T) {
	a := symtab.New("t")
	a.AddSymbolKey("x", 1)
	a.AddSymbolKey("y", 2)
	b := symtab.New("t")
	b.AddSymbolKey("y", 2)
	b.AddSymbolKey("x", 1)
	assert.Equal(t, a.LabeledCheckSum(), b.LabeledCheckSum())
}

func TestTextRoundTrip(t *testing.T) {
	table := buildABC(t)
	var buf bytes.Buffer
	require.NoError(t, symtab.WriteText(&buf, table))

	got, err := symtab.ReadText(&buf, "abc")
	require.NoError(t, err)
	assert.True(t, symtab.Compat(table, got))
}

func TestReadText_Malformed(t *testing.T) {
	_, err := symtab.ReadText(strings.NewReader("only-symbol\n"), "bad")
	assert.ErrorIs(t, err, symtab.ErrBadLine)

	_, err = symtab.ReadText(strings.NewReader("a\tnotanint\n"), "bad")
	assert.ErrorIs(t, err, symtab.ErrBadLine)

	_, err = symtab.ReadText(strings.NewReader("a\t-1\n"), "bad")
	assert.ErrorIs(t, err, symtab.ErrNegativeKey)

	got, err := symtab.ReadText(strings.NewReader("a\t-1\n"), "ok", symtab.AllowNegative())
	require.NoError(t, err)
	assert.Equal(t, int64(-1), got.Find("a"))
}

func TestBinaryRoundTrip(t *testing.T) {
	table := buildABC(t)
	var buf bytes.Buffer
	require.NoError(t, symtab.Write(&buf, table))

	got, err := symtab.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, "abc", got.Name())
	assert.True(t, symtab.Compat(table, got))
}

func TestBinaryRead_BadMagic(t *testing.T) {
	_, err := symtab.Read(bytes.NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8}))
	assert.ErrorIs(t, err, symtab.ErrBadMagic)
}

func TestBinaryRead_Truncated(t *testing.T) {
	table := buildABC(t)
	var buf bytes.Buffer
	require.NoError(t, symtab.Write(&buf, table))
	cut := buf.Bytes()[:buf.Len()-4]

	_, err := symtab.Read(bytes.NewReader(cut))
	assert.ErrorIs(t, err, symtab.ErrTruncated)
}

func TestRelabel(t *testing.T) {
	table := buildABC(t)
	out := symtab.Relabel(table, [][2]int64{{1, 10}, {2, 20}})
	assert.Equal(t, "relabeled_abc", out.Name())
	assert.Equal(t, int64(10), out.Find("a"))
	assert.Equal(t, int64(20), out.Find("b"))
	assert.Equal(t, symtab.NoSymbol, out.Find("c"))
}

func TestIterator(t *testing.T) {
	table := buildABC(t)
	var syms []string
	for it := symtab.NewIterator(table); !it.Done(); it.Next() {
		syms = append(syms, it.Symbol())
	}
	assert.Equal(t, []string{"<eps>", "a", "b", "c"}, syms)

	it := symtab.NewIterator(table)
	it.Next()
	it.Reset()
	assert.Equal(t, int64(0), it.Value())
}
