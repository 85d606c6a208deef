package mummy

import "fmt"

// ID identifies a class of mummy error, stable across error messages
// so callers can test error identity without string matching. Modeled
// on the teacher's simpler ID-based verror shape rather than its
// heavier i18n-catalog variant, since the codec has a small, fixed set
// of error conditions.
type ID string

// The error kinds the codec can produce. No other error kind is ever
// returned by a mummy operation.
const (
	// OutOfMemory means an allocation failed while growing a buffer.
	OutOfMemory ID = "mummy.OutOfMemory"
	// ShortBuffer means a decoder saw fewer bytes than the tag requires.
	ShortBuffer ID = "mummy.ShortBuffer"
	// BadTag means a decoder saw a tag not valid for the requested read.
	BadTag ID = "mummy.BadTag"
	// Truncated means a copying reader's destination is smaller than
	// the value being read; TrueLen on the Error reports the value's
	// real length so the caller can retry with a bigger destination.
	Truncated ID = "mummy.Truncated"
	// InvalidArgument means the encoder was given an out-of-range input,
	// or the decoder met a SPECIALNUM flags byte it does not recognize.
	InvalidArgument ID = "mummy.InvalidArgument"
	// CompressionCorrupt means the compressor or decompressor reported
	// an error, or the compression envelope failed to decompress to its
	// declared length.
	CompressionCorrupt ID = "mummy.CompressionCorrupt"
)

// Error is the concrete error type returned by every mummy operation
// that fails.
type Error struct {
	id      ID
	msg     string
	TrueLen int // populated only when id == Truncated
}

func (e *Error) Error() string { return e.msg }

// ID returns the error's identity, for use with Is.
func (e *Error) ID() ID { return e.id }

// Is reports whether err is a mummy Error with the given ID.
func Is(err error, id ID) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	return e.id == id
}

func errOutOfMemory() error {
	return &Error{id: OutOfMemory, msg: "mummy: out of memory"}
}

func errShortBuffer(op string, need, have int) error {
	return &Error{id: ShortBuffer, msg: fmt.Sprintf(
		"mummy: %s: need %d bytes, have %d", op, need, have)}
}

func errBadTag(op string, got Tag) error {
	return &Error{id: BadTag, msg: fmt.Sprintf(
		"mummy: %s: unexpected tag %s (0x%02x)", op, got, byte(got))}
}

func errTruncated(trueLen int) error {
	return &Error{id: Truncated, msg: fmt.Sprintf(
		"mummy: destination too small, value is %d bytes", trueLen),
		TrueLen: trueLen}
}

func errInvalidArgument(msg string) error {
	return &Error{id: InvalidArgument, msg: "mummy: " + msg}
}

func errCompressionCorrupt(msg string) error {
	return &Error{id: CompressionCorrupt, msg: "mummy: " + msg}
}
