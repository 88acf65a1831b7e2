// Package symtab provides bidirectional symbol↔key tables naming the
// input and output alphabets of weighted automata.
//
// Tables are shared by reference: Copy is O(1) and hands out a handle onto
// the same underlying storage; the first mutation through any handle
// clones the storage first (copy-on-write), so shared readers never
// observe writes. Two tables are compatible when their labeled checksums
// agree — composition uses this to verify that the output alphabet of its
// first operand matches the input alphabet of its second.
//
// Persistence:
//
//   - Text: one "symbol<TAB>key" pair per line.
//   - Binary: int32 magic, NUL-terminated name, int64 entry count, then
//     per entry a NUL-terminated symbol and its int64 key, little-endian.
//
// Errors:
//
//   - ErrBadLine     malformed text line or key.
//   - ErrBadMagic    binary stream does not begin with the table magic.
//   - ErrTruncated   binary stream ends mid-record.
//   - ErrNegativeKey negative key without AllowNegative.
package symtab
