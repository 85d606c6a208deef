package mummy

// Buffer is a growable byte region with a read/write cursor, used both
// to accumulate an encoded payload and to walk a payload during
// decoding. It is grounded on the teacher's encbuf (doubling growth
// discipline) and decbuf (bounds-checked cursor reads), unified into a
// single type the way the original mummy_string does, since mummy
// buffers are written once and then read once rather than streamed.
//
// A Buffer is not safe for concurrent use; each instance is owned by
// one encode-then-decode lifecycle at a time.
type Buffer struct {
	data     []byte
	offset   int
	borrowed bool // true if data was supplied by Wrap and must never be reallocated
}

// New allocates an owned Buffer with the given initial capacity. The
// underlying storage grows by doubling as values are fed into it.
func New(initialCapacity int) *Buffer {
	if initialCapacity < 0 {
		initialCapacity = 0
	}
	return &Buffer{data: make([]byte, initialCapacity)}
}

// Wrap returns a Buffer borrowing the given slice for decoding. The
// buffer never reallocates; feeding values into a wrapped buffer that
// would require growth fails with OutOfMemory.
func Wrap(data []byte) *Buffer {
	return &Buffer{data: data, borrowed: true}
}

// Free releases the buffer. When the buffer owns its storage and
// releaseBytes is true, the underlying slice is dropped so it can be
// garbage collected promptly; a wrapped buffer must always be freed
// with releaseBytes false, since it never owned the bytes it borrowed.
func (b *Buffer) Free(releaseBytes bool) {
	if releaseBytes && !b.borrowed {
		b.data = nil
	}
	b.offset = 0
}

// Bytes returns the written prefix of the buffer: data[0:offset].
func (b *Buffer) Bytes() []byte { return b.data[:b.offset] }

// Offset returns the current cursor position.
func (b *Buffer) Offset() int { return b.offset }

// Len returns the buffer's current capacity (encoding) or total valid
// extent (decoding).
func (b *Buffer) Len() int { return len(b.data) }

// Space reports the number of unwritten (encode) or unconsumed
// (decode) bytes remaining, len-offset.
func (b *Buffer) Space() int { return len(b.data) - b.offset }

// Reset rewinds the cursor to the start without releasing storage,
// letting an owned buffer be reused for a fresh encode.
func (b *Buffer) Reset() { b.offset = 0 }

// makespace ensures at least n free bytes are available past the
// cursor, growing the underlying storage by doubling as needed. Growth
// is illegal on wrapped buffers, matching the reference's rule that
// borrowed storage is read-only.
func (b *Buffer) makespace(n int) error {
	if len(b.data)-b.offset >= n {
		return nil
	}
	if b.borrowed {
		return errOutOfMemory()
	}
	oldLen := len(b.data)
	newLen := oldLen
	if newLen == 0 {
		newLen = n
	}
	for newLen-b.offset < n {
		newLen *= 2
	}
	grown := make([]byte, newLen)
	copy(grown, b.data[:b.offset])
	b.data = grown
	return nil
}

// grow extends the written region by n bytes and returns that slice,
// after ensuring there is room for it. The caller fills in the
// returned bytes and must not retain it past the next buffer call.
func (b *Buffer) grow(n int) ([]byte, error) {
	if err := b.makespace(n); err != nil {
		return nil, err
	}
	start := b.offset
	b.offset += n
	return b.data[start:b.offset], nil
}

// peek returns the n unconsumed bytes starting at the cursor without
// advancing it, or a ShortBuffer error if fewer than n bytes remain.
func (b *Buffer) peek(op string, n int) ([]byte, error) {
	if b.Space() < n {
		return nil, errShortBuffer(op, n, b.Space())
	}
	return b.data[b.offset : b.offset+n], nil
}

// skip advances the cursor past n already-peeked bytes.
func (b *Buffer) skip(n int) { b.offset += n }
