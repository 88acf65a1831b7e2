package symtab

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// tableMagic begins every binary symbol-table stream.
const tableMagic int32 = 2125658996

var (
	// ErrBadLine indicates a malformed text-format line.
	ErrBadLine = errors.New("symtab: malformed symbol table line")

	// ErrNegativeKey indicates a negative key without AllowNegative.
	ErrNegativeKey = errors.New("symtab: negative key")

	// ErrBadMagic indicates a binary stream without the table magic.
	ErrBadMagic = errors.New("symtab: bad magic number")

	// ErrTruncated indicates a binary stream ending mid-record.
	ErrTruncated = errors.New("symtab: truncated stream")
)

// TextOption configures text-format reading.
type TextOption func(*textOptions)

type textOptions struct {
	allowNegative bool
}

// AllowNegative permits negative keys in the text format.
func AllowNegative() TextOption {
	return func(o *textOptions) { o.allowNegative = true }
}

// ReadText parses the one-pair-per-line text format: symbol, a tab (or
// run of spaces), and an integer key. Blank lines are skipped.
func ReadText(r io.Reader, name string, opts ...TextOption) (*SymbolTable, error) {
	var o textOptions
	for _, fn := range opts {
		fn(&o)
	}

	table := New(name)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: %q (line %d)", ErrBadLine, text, line)
		}
		key, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q (line %d)", ErrBadLine, text, line)
		}
		if key < 0 && !o.allowNegative {
			return nil, fmt.Errorf("%w: %d (line %d)", ErrNegativeKey, key, line)
		}
		table.AddSymbolKey(fields[0], key)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("symtab: read text: %w", err)
	}
	return table, nil
}

// WriteText emits the one-pair-per-line text format in insertion order.
func WriteText(w io.Writer, table *SymbolTable) error {
	bw := bufio.NewWriter(w)
	for it := NewIterator(table); !it.Done(); it.Next() {
		if _, err := fmt.Fprintf(bw, "%s\t%d\n", it.Symbol(), it.Value()); err != nil {
			return fmt.Errorf("symtab: write text: %w", err)
		}
	}
	return bw.Flush()
}

// Write emits the binary format: magic, NUL-terminated name, entry
// count, then per entry a NUL-terminated symbol and its key.
func Write(w io.Writer, table *SymbolTable) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, tableMagic); err != nil {
		return fmt.Errorf("symtab: write: %w", err)
	}
	if err := writeCString(bw, table.Name()); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, int64(table.NumSymbols())); err != nil {
		return fmt.Errorf("symtab: write: %w", err)
	}
	for it := NewIterator(table); !it.Done(); it.Next() {
		if err := writeCString(bw, it.Symbol()); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, it.Value()); err != nil {
			return fmt.Errorf("symtab: write: %w", err)
		}
	}
	return bw.Flush()
}

// Read parses the binary format produced by Write.
func Read(r io.Reader) (*SymbolTable, error) {
	br := bufio.NewReader(r)
	var magic int32
	if err := binary.Read(br, binary.LittleEndian, &magic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	if magic != tableMagic {
		return nil, fmt.Errorf("%w: %#x", ErrBadMagic, magic)
	}
	name, err := readCString(br)
	if err != nil {
		return nil, err
	}
	var count int64
	if err = binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative entry count %d", ErrTruncated, count)
	}
	table := New(name)
	for i := int64(0); i < count; i++ {
		sym, err := readCString(br)
		if err != nil {
			return nil, err
		}
		var key int64
		if err = binary.Read(br, binary.LittleEndian, &key); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
		}
		table.AddSymbolKey(sym, key)
	}
	return table, nil
}

func writeCString(w *bufio.Writer, s string) error {
	if _, err := w.WriteString(s); err != nil {
		return fmt.Errorf("symtab: write: %w", err)
	}
	if err := w.WriteByte(0); err != nil {
		return fmt.Errorf("symtab: write: %w", err)
	}
	return nil
}

func readCString(r *bufio.Reader) (string, error) {
	s, err := r.ReadString(0)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	return s[:len(s)-1], nil
}
