package mummy

import (
	"encoding/binary"
	"math"
)

// FeedNull appends a NULL value.
func (b *Buffer) FeedNull() error {
	dst, err := b.grow(1)
	if err != nil {
		return err
	}
	dst[0] = byte(TagNull)
	return nil
}

// FeedBool appends a BOOL value.
func (b *Buffer) FeedBool(v bool) error {
	dst, err := b.grow(2)
	if err != nil {
		return err
	}
	dst[0] = byte(TagBool)
	if v {
		dst[1] = 1
	} else {
		dst[1] = 0
	}
	return nil
}

// FeedInt appends a signed integer, choosing the narrowest of
// CHAR/SHORT/INT/LONG that can represent it exactly.
func (b *Buffer) FeedInt(v int64) error {
	switch {
	case -128 <= v && v < 128:
		dst, err := b.grow(2)
		if err != nil {
			return err
		}
		dst[0] = byte(TagChar)
		dst[1] = byte(int8(v))
	case -32768 <= v && v < 32768:
		dst, err := b.grow(3)
		if err != nil {
			return err
		}
		dst[0] = byte(TagShort)
		binary.BigEndian.PutUint16(dst[1:], uint16(int16(v)))
	case -2147483648 <= v && v < 2147483648:
		dst, err := b.grow(5)
		if err != nil {
			return err
		}
		dst[0] = byte(TagInt)
		binary.BigEndian.PutUint32(dst[1:], uint32(int32(v)))
	default:
		dst, err := b.grow(9)
		if err != nil {
			return err
		}
		dst[0] = byte(TagLong)
		binary.BigEndian.PutUint64(dst[1:], uint64(v))
	}
	return nil
}

// FeedHuge appends an arbitrary-precision signed integer, given as its
// big-endian two's-complement byte representation. The bytes are
// written verbatim; the caller is responsible for producing a valid
// two's-complement encoding.
func (b *Buffer) FeedHuge(bigEndianTwosComplement []byte) error {
	n := len(bigEndianTwosComplement)
	dst, err := b.grow(5 + n)
	if err != nil {
		return err
	}
	dst[0] = byte(TagHuge)
	binary.BigEndian.PutUint32(dst[1:5], uint32(n))
	copy(dst[5:], bigEndianTwosComplement)
	return nil
}

// FeedFloat appends an IEEE-754 double.
func (b *Buffer) FeedFloat(v float64) error {
	dst, err := b.grow(9)
	if err != nil {
		return err
	}
	dst[0] = byte(TagFloat)
	binary.BigEndian.PutUint64(dst[1:], math.Float64bits(v))
	return nil
}

// sizeClassTags picks the SHORT/MED/LONG tag for a length-prefixed
// value, per the 256/65536 thresholds shared by strings, UTF-8 text,
// and containers.
func sizeClassTags(length int, short, med, long Tag) Tag {
	switch {
	case length < 256:
		return short
	case length < 65536:
		return med
	default:
		return long
	}
}

func (b *Buffer) feedLengthPrefixed(data []byte, short, med, long Tag) error {
	tag := sizeClassTags(len(data), short, med, long)
	var dst []byte
	var err error
	switch tag {
	case short:
		dst, err = b.grow(2 + len(data))
		if err != nil {
			return err
		}
		dst[0] = byte(tag)
		dst[1] = byte(len(data))
		copy(dst[2:], data)
	case med:
		dst, err = b.grow(3 + len(data))
		if err != nil {
			return err
		}
		dst[0] = byte(tag)
		binary.BigEndian.PutUint16(dst[1:3], uint16(len(data)))
		copy(dst[3:], data)
	default:
		dst, err = b.grow(5 + len(data))
		if err != nil {
			return err
		}
		dst[0] = byte(tag)
		binary.BigEndian.PutUint32(dst[1:5], uint32(len(data)))
		copy(dst[5:], data)
	}
	return nil
}

// FeedString appends an opaque byte string, choosing
// SHORTSTR/MEDSTR/LONGSTR by length.
func (b *Buffer) FeedString(data []byte) error {
	return b.feedLengthPrefixed(data, TagShortStr, TagMedStr, TagLongStr)
}

// FeedUTF8 appends text, choosing SHORTUTF8/MEDUTF8/LONGUTF8 by byte
// length. The codec does not validate UTF-8; that is the caller's
// responsibility.
func (b *Buffer) FeedUTF8(data []byte) error {
	return b.feedLengthPrefixed(data, TagShortUTF8, TagMedUTF8, TagLongUTF8)
}

// FeedDecimal appends a decimal number: a sign, a base-10 exponent,
// and a sequence of digits 0-9 packed two per byte (even index in the
// low nibble, odd index in the high nibble of the same byte).
//
// If any digit is outside [0,9], the write is not committed at all —
// the cursor is left exactly where it was before the call — and
// InvalidArgument is returned.
func (b *Buffer) FeedDecimal(negative bool, exponent int16, digits []byte) error {
	if len(digits) > 0xFFFF {
		return errInvalidArgument("decimal digit count exceeds uint16 range")
	}
	count := len(digits)
	packedLen := count/2 + count%2
	total := 6 + packedLen
	if err := b.makespace(total); err != nil {
		return err
	}
	record := b.data[b.offset : b.offset+total]
	record[0] = byte(TagDecimal)
	if negative {
		record[1] = 1
	} else {
		record[1] = 0
	}
	binary.BigEndian.PutUint16(record[2:4], uint16(exponent))
	binary.BigEndian.PutUint16(record[4:6], uint16(count))

	for i, digit := range digits {
		if digit > 9 {
			// Nothing has been committed to the cursor yet; returning
			// here leaves the buffer exactly as it was before the call.
			return errInvalidArgument("decimal digit out of range [0,9]")
		}
		byteIndex := 6 + i/2
		if i%2 == 0 {
			record[byteIndex] = digit
		} else {
			record[byteIndex] |= digit << 4
		}
	}
	b.offset += total
	return nil
}

// FeedInfinity appends a signed infinity.
func (b *Buffer) FeedInfinity(negative bool) error {
	dst, err := b.grow(2)
	if err != nil {
		return err
	}
	dst[0] = byte(TagSpecialNum)
	dst[1] = specialInfinity
	if negative {
		dst[1] |= specialSignBit
	}
	return nil
}

// FeedNaN appends a not-a-number value. signaling distinguishes a
// signaling NaN from a quiet one; mummy never produces a signed NaN,
// since the reference notes that a signed NaN is accidental and
// unsupported.
func (b *Buffer) FeedNaN(signaling bool) error {
	dst, err := b.grow(2)
	if err != nil {
		return err
	}
	dst[0] = byte(TagSpecialNum)
	dst[1] = specialNaN
	if signaling {
		dst[1] |= specialSignBit
	}
	return nil
}

// FeedDate appends a calendar date.
func (b *Buffer) FeedDate(year uint16, month, day byte) error {
	dst, err := b.grow(5)
	if err != nil {
		return err
	}
	dst[0] = byte(TagDate)
	binary.BigEndian.PutUint16(dst[1:3], year)
	dst[3] = month
	dst[4] = day
	return nil
}

// putMicroseconds3 writes a microsecond count (0..999999) as a 3-byte
// big-endian integer, the wire's packed layout for TIME/DATETIME.
func putMicroseconds3(dst []byte, usec uint32) {
	dst[0] = byte(usec >> 16)
	dst[1] = byte(usec >> 8)
	dst[2] = byte(usec)
}

// FeedTime appends a time-of-day.
func (b *Buffer) FeedTime(hour, minute, second byte, microsecond uint32) error {
	dst, err := b.grow(7)
	if err != nil {
		return err
	}
	dst[0] = byte(TagTime)
	dst[1] = hour
	dst[2] = minute
	dst[3] = second
	putMicroseconds3(dst[4:7], microsecond)
	return nil
}

// FeedDateTime appends a combined date and time.
func (b *Buffer) FeedDateTime(year uint16, month, day, hour, minute, second byte, microsecond uint32) error {
	dst, err := b.grow(11)
	if err != nil {
		return err
	}
	dst[0] = byte(TagDateTime)
	binary.BigEndian.PutUint16(dst[1:3], year)
	dst[3] = month
	dst[4] = day
	dst[5] = hour
	dst[6] = minute
	dst[7] = second
	putMicroseconds3(dst[8:11], microsecond)
	return nil
}

// FeedTimeDelta appends a signed duration.
func (b *Buffer) FeedTimeDelta(days, seconds, microseconds int32) error {
	dst, err := b.grow(13)
	if err != nil {
		return err
	}
	dst[0] = byte(TagTimeDelta)
	binary.BigEndian.PutUint32(dst[1:5], uint32(days))
	binary.BigEndian.PutUint32(dst[5:9], uint32(seconds))
	binary.BigEndian.PutUint32(dst[9:13], uint32(microseconds))
	return nil
}

func (b *Buffer) openContainer(count int, short, med, long Tag) error {
	tag := sizeClassTags(count, short, med, long)
	switch tag {
	case short:
		dst, err := b.grow(2)
		if err != nil {
			return err
		}
		dst[0] = byte(tag)
		dst[1] = byte(count)
	case med:
		dst, err := b.grow(3)
		if err != nil {
			return err
		}
		dst[0] = byte(tag)
		binary.BigEndian.PutUint16(dst[1:3], uint16(count))
	default:
		dst, err := b.grow(5)
		if err != nil {
			return err
		}
		dst[0] = byte(tag)
		binary.BigEndian.PutUint32(dst[1:5], uint32(count))
	}
	return nil
}

// OpenList writes a list container header for count children. The
// caller must feed exactly count values immediately afterward.
func (b *Buffer) OpenList(count int) error {
	return b.openContainer(count, TagShortList, TagMedList, TagLongList)
}

// OpenTuple writes a tuple container header for count children.
func (b *Buffer) OpenTuple(count int) error {
	return b.openContainer(count, TagShortTuple, TagMedTuple, TagLongTuple)
}

// OpenSet writes a set container header for count children.
func (b *Buffer) OpenSet(count int) error {
	return b.openContainer(count, TagShortSet, TagMedSet, TagLongSet)
}

// OpenHash writes a hash (mapping) container header for count key/value
// pairs. The caller must feed exactly 2*count values immediately
// afterward, alternating key then value.
func (b *Buffer) OpenHash(count int) error {
	return b.openContainer(count, TagShortHash, TagMedHash, TagLongHash)
}
