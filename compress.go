package mummy

import (
	"encoding/binary"

	"github.com/pierrec/lz4/v4"
)

// minUncompressedLen is the payload length at or below which Compress
// never bothers trying: the 5-byte envelope header alone would already
// cost more than could possibly be saved.
const minUncompressedLen = 6

// envelopeHeaderLen is the length of the compressed envelope's header:
// the flagged tag byte plus a 4-byte big-endian uncompressed length of
// everything after the tag byte.
const envelopeHeaderLen = 5

// Compress replaces buf's contents with a compressed envelope, if the
// compressor can fit the post-tag bytes within the envelope's budget
// of len(src)-6 bytes — the same bound the reference passes as
// dst_max, which already bakes in the requirement to save at least 5
// bytes net over the envelope's own 5-byte header. Only the bytes
// after the leading tag byte are compressed — the tag itself stays
// raw, with its high bit set to flag the envelope, so a reader can
// always identify the value's type without decompressing first. If
// the compressor can't fit within the budget, buf is left untouched
// and Compress returns nil.
func Compress(buf *Buffer) error {
	src := buf.Bytes()
	if len(src) <= minUncompressedLen {
		return nil
	}
	if src[0]&compressedFlag != 0 {
		// Already flagged as compressed; never double-compress.
		return nil
	}

	body := src[1:]
	budget := len(src) - minUncompressedLen
	packed := make([]byte, budget)
	n, err := lz4.CompressBlock(body, packed, nil)
	if err != nil {
		return errCompressionCorrupt("lz4 compression failed: " + err.Error())
	}
	if n == 0 {
		// Doesn't fit within budget, or is outright incompressible.
		return nil
	}

	envelopeLen := envelopeHeaderLen + n
	out := New(envelopeLen)
	dst, err := out.grow(envelopeLen)
	if err != nil {
		return err
	}
	dst[0] = src[0] | compressedFlag
	binary.BigEndian.PutUint32(dst[1:5], uint32(len(body)))
	copy(dst[5:], packed[:n])

	buf.data = out.data
	buf.offset = out.offset
	buf.borrowed = false
	return nil
}

// Decompress reports whether buf's payload was compressed and, if so,
// replaces buf's contents with the decompressed form. It is a no-op
// returning (false, nil) on a payload that was never compressed.
// The payload is data[0:offset] of an encoded buffer, or the whole
// extent of a buffer whose cursor is at the start (such as one from
// Wrap); afterwards the cursor is at the end or at the start of the
// decompressed payload, respectively.
// freeSource mirrors the reference API's caller-controlled release of
// the compressed storage; since mummy's Buffer is garbage-collected,
// it has no effect here beyond the fact that buf drops its only
// reference to the old storage either way.
func Decompress(buf *Buffer, freeSource bool) (bool, error) {
	src := buf.Bytes()
	atStart := buf.offset == 0
	if atStart {
		src = buf.data
	}
	if len(src) == 0 {
		return false, nil
	}
	if src[0]&compressedFlag == 0 {
		return false, nil
	}
	if len(src) < envelopeHeaderLen {
		return false, errShortBuffer("Decompress", envelopeHeaderLen, len(src))
	}

	uncompressedBodyLen := binary.BigEndian.Uint32(src[1:5])
	total := int(uncompressedBodyLen) + 1
	out := New(total)
	dst, err := out.grow(total)
	if err != nil {
		return false, err
	}
	dst[0] = src[0] &^ compressedFlag

	n, err := lz4.UncompressBlock(src[envelopeHeaderLen:], dst[1:])
	if err != nil {
		return false, errCompressionCorrupt("lz4 decompression failed: " + err.Error())
	}
	if n != int(uncompressedBodyLen) {
		return false, errCompressionCorrupt("decompressed length mismatch")
	}

	buf.data = out.data
	buf.offset = out.offset
	if atStart {
		buf.offset = 0
	}
	buf.borrowed = false
	return true, nil
}
