// Package mummy implements a compact, self-describing binary
// serialization codec for a fixed set of primitive and container
// value types.
//
// A Buffer owns a growable byte region (for encoding) or borrows a
// caller-supplied slice (for decoding). Values are appended with the
// Feed* and Open* methods and consumed with the Read*, PointTo*, and
// ContainerSize methods, in the exact order they were written — the
// wire format carries no terminators, so the caller is responsible
// for reading back what it wrote.
//
// Every encoded value is preceded by a single tag byte identifying
// its type and, for variable-length values, a size class. Multi-byte
// integer fields are big-endian throughout. See the Tag constants for
// the full wire alphabet.
//
// A finished payload may optionally be compressed in place with
// Compress, and transparently decompressed with Decompress; Decompress
// is a no-op on payloads that were never compressed.
package mummy
