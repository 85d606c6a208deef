package mummy

import (
	"encoding/binary"
	"math"
)

// Tag returns the tag of the value at the cursor without consuming
// it. The high compressed-payload bit is always masked off, since a
// tag byte mid-stream never has it set.
func (b *Buffer) Tag() (Tag, error) {
	raw, err := b.peek("Tag", 1)
	if err != nil {
		return 0, err
	}
	return Tag(raw[0] &^ compressedFlag), nil
}

// readTagAdvance consumes the tag byte at the cursor and returns it.
func (b *Buffer) readTagAdvance(op string) (Tag, error) {
	raw, err := b.peek(op, 1)
	if err != nil {
		return 0, err
	}
	b.skip(1)
	return Tag(raw[0] &^ compressedFlag), nil
}

// ReadNull consumes a NULL value's tag byte; NULL carries no payload.
func (b *Buffer) ReadNull() error {
	start := b.offset
	tag, err := b.readTagAdvance("ReadNull")
	if err != nil {
		return err
	}
	if tag != TagNull {
		b.offset = start
		return errBadTag("ReadNull", tag)
	}
	return nil
}

// ReadBool reads a BOOL value.
func (b *Buffer) ReadBool() (bool, error) {
	start := b.offset
	tag, err := b.readTagAdvance("ReadBool")
	if err != nil {
		return false, err
	}
	if tag != TagBool {
		b.offset = start
		return false, errBadTag("ReadBool", tag)
	}
	payload, err := b.peek("ReadBool", 1)
	if err != nil {
		b.offset = start
		return false, err
	}
	b.skip(1)
	return payload[0] != 0, nil
}

// ReadInt reads any of CHAR/SHORT/INT/LONG, widening to int64.
func (b *Buffer) ReadInt() (int64, error) {
	start := b.offset
	tag, err := b.readTagAdvance("ReadInt")
	if err != nil {
		return 0, err
	}
	var n int
	switch tag {
	case TagChar:
		n = 1
	case TagShort:
		n = 2
	case TagInt:
		n = 4
	case TagLong:
		n = 8
	default:
		b.offset = start
		return 0, errBadTag("ReadInt", tag)
	}
	payload, err := b.peek("ReadInt", n)
	if err != nil {
		b.offset = start
		return 0, err
	}
	b.skip(n)
	switch tag {
	case TagChar:
		return int64(int8(payload[0])), nil
	case TagShort:
		return int64(int16(binary.BigEndian.Uint16(payload))), nil
	case TagInt:
		return int64(int32(binary.BigEndian.Uint32(payload))), nil
	default:
		return int64(binary.BigEndian.Uint64(payload)), nil
	}
}

// ReadHuge copies a HUGE value's big-endian two's-complement bytes
// into dst, which must have length at least the value's byte length.
// It returns the value's true byte length regardless of whether the
// copy succeeded; if dst is too small, the cursor is left unconsumed
// and Truncated is returned so the caller can retry with a bigger dst.
func (b *Buffer) ReadHuge(dst []byte) (int, error) {
	start := b.offset
	length, err := b.decodeHugeLength()
	if err != nil {
		return 0, err
	}
	payload, err := b.peek("ReadHuge", length)
	if err != nil {
		b.offset = start
		return 0, err
	}
	if length > len(dst) {
		b.offset = start
		return length, errTruncated(length)
	}
	copy(dst, payload)
	b.skip(length)
	return length, nil
}

// PointToHuge returns a borrowed slice over a HUGE value's bytes,
// valid only while the underlying buffer storage is alive and unmodified.
func (b *Buffer) PointToHuge() ([]byte, error) {
	start := b.offset
	length, err := b.decodeHugeLength()
	if err != nil {
		return nil, err
	}
	payload, err := b.peek("PointToHuge", length)
	if err != nil {
		b.offset = start
		return nil, err
	}
	b.skip(length)
	return payload, nil
}

// decodeHugeLength consumes the HUGE tag and its 4-byte length field,
// leaving the cursor positioned at the start of the value's bytes.
func (b *Buffer) decodeHugeLength() (int, error) {
	start := b.offset
	tag, err := b.readTagAdvance("ReadHuge")
	if err != nil {
		return 0, err
	}
	if tag != TagHuge {
		b.offset = start
		return 0, errBadTag("ReadHuge", tag)
	}
	lenBytes, err := b.peek("ReadHuge", 4)
	if err != nil {
		b.offset = start
		return 0, err
	}
	b.skip(4)
	return int(binary.BigEndian.Uint32(lenBytes)), nil
}

// ReadFloat reads a FLOAT value.
func (b *Buffer) ReadFloat() (float64, error) {
	start := b.offset
	tag, err := b.readTagAdvance("ReadFloat")
	if err != nil {
		return 0, err
	}
	if tag != TagFloat {
		b.offset = start
		return 0, errBadTag("ReadFloat", tag)
	}
	payload, err := b.peek("ReadFloat", 8)
	if err != nil {
		b.offset = start
		return 0, err
	}
	b.skip(8)
	return math.Float64frombits(binary.BigEndian.Uint64(payload)), nil
}

// decodeLengthPrefixed consumes a tag from {short,med,long} and its
// length field, then returns a borrowed slice over the payload bytes.
// On any failure the cursor is left exactly where it started.
func (b *Buffer) decodeLengthPrefixed(op string, short, med, long Tag) ([]byte, error) {
	start := b.offset
	tag, err := b.readTagAdvance(op)
	if err != nil {
		return nil, err
	}
	var length int
	switch tag {
	case short:
		lb, err := b.peek(op, 1)
		if err != nil {
			b.offset = start
			return nil, err
		}
		b.skip(1)
		length = int(lb[0])
	case med:
		lb, err := b.peek(op, 2)
		if err != nil {
			b.offset = start
			return nil, err
		}
		b.skip(2)
		length = int(binary.BigEndian.Uint16(lb))
	case long:
		lb, err := b.peek(op, 4)
		if err != nil {
			b.offset = start
			return nil, err
		}
		b.skip(4)
		length = int(binary.BigEndian.Uint32(lb))
	default:
		b.offset = start
		return nil, errBadTag(op, tag)
	}
	payload, err := b.peek(op, length)
	if err != nil {
		b.offset = start
		return nil, err
	}
	b.skip(length)
	return payload, nil
}

// PointToString returns a borrowed slice over a string value's bytes.
func (b *Buffer) PointToString() ([]byte, error) {
	return b.decodeLengthPrefixed("PointToString", TagShortStr, TagMedStr, TagLongStr)
}

// PointToUTF8 returns a borrowed slice over a UTF-8 value's bytes.
func (b *Buffer) PointToUTF8() ([]byte, error) {
	return b.decodeLengthPrefixed("PointToUTF8", TagShortUTF8, TagMedUTF8, TagLongUTF8)
}

// ReadString copies a string value's bytes into dst, which must be at
// least as long as the value. On success it returns the value's
// length. If dst is too small, the cursor is left unconsumed and
// Truncated is returned along with the true length.
func (b *Buffer) ReadString(dst []byte) (int, error) {
	return b.readLengthPrefixedInto(dst, TagShortStr, TagMedStr, TagLongStr)
}

// ReadUTF8 copies a UTF-8 value's bytes into dst; see ReadString.
func (b *Buffer) ReadUTF8(dst []byte) (int, error) {
	return b.readLengthPrefixedInto(dst, TagShortUTF8, TagMedUTF8, TagLongUTF8)
}

func (b *Buffer) readLengthPrefixedInto(dst []byte, short, med, long Tag) (int, error) {
	start := b.offset
	data, err := b.decodeLengthPrefixed("Read", short, med, long)
	if err != nil {
		return 0, err
	}
	if len(data) > len(dst) {
		b.offset = start
		return len(data), errTruncated(len(data))
	}
	copy(dst, data)
	return len(data), nil
}

// ReadDecimal reads a decimal number: its sign, base-10 exponent, and
// digits 0-9, one per returned byte (unpacked from the wire's two-per-byte
// nibble layout).
func (b *Buffer) ReadDecimal() (negative bool, exponent int16, digits []byte, err error) {
	start := b.offset
	tag, err := b.readTagAdvance("ReadDecimal")
	if err != nil {
		return false, 0, nil, err
	}
	if tag != TagDecimal {
		b.offset = start
		return false, 0, nil, errBadTag("ReadDecimal", tag)
	}
	header, err := b.peek("ReadDecimal", 5)
	if err != nil {
		b.offset = start
		return false, 0, nil, err
	}
	b.skip(5)
	negative = header[0] != 0
	exponent = int16(binary.BigEndian.Uint16(header[1:3]))
	count := int(binary.BigEndian.Uint16(header[3:5]))
	packedLen := count/2 + count%2
	packed, err := b.peek("ReadDecimal", packedLen)
	if err != nil {
		b.offset = start
		return false, 0, nil, err
	}
	b.skip(packedLen)
	digits = make([]byte, count)
	for i := range digits {
		c := packed[i/2]
		if i%2 == 1 {
			c >>= 4
		} else {
			c &= 0x0F
		}
		digits[i] = c
	}
	return negative, exponent, digits, nil
}

// SpecialNum is the decoded payload of a SPECIALNUM value.
type SpecialNum struct {
	Infinity  bool
	NaN       bool
	Negative  bool // meaningful only when Infinity is true
	Signaling bool // meaningful only when NaN is true
}

// ReadSpecialNum reads a SPECIALNUM value (an infinity or a NaN). Bit 0
// of the flags byte is reported as Negative for an infinity and as
// Signaling for a NaN; a NaN never has Negative set.
func (b *Buffer) ReadSpecialNum() (SpecialNum, error) {
	start := b.offset
	tag, err := b.readTagAdvance("ReadSpecialNum")
	if err != nil {
		return SpecialNum{}, err
	}
	if tag != TagSpecialNum {
		b.offset = start
		return SpecialNum{}, errBadTag("ReadSpecialNum", tag)
	}
	payload, err := b.peek("ReadSpecialNum", 1)
	if err != nil {
		b.offset = start
		return SpecialNum{}, err
	}
	b.skip(1)
	flags := payload[0]
	var sn SpecialNum
	switch flags &^ specialSignBit {
	case specialInfinity:
		sn.Infinity = true
		sn.Negative = flags&specialSignBit != 0
	case specialNaN:
		sn.NaN = true
		sn.Signaling = flags&specialSignBit != 0
	default:
		b.offset = start
		return SpecialNum{}, errInvalidArgument("unrecognized SPECIALNUM flags")
	}
	return sn, nil
}

// ReadDate reads a DATE value.
func (b *Buffer) ReadDate() (year uint16, month, day byte, err error) {
	start := b.offset
	tag, err := b.readTagAdvance("ReadDate")
	if err != nil {
		return 0, 0, 0, err
	}
	if tag != TagDate {
		b.offset = start
		return 0, 0, 0, errBadTag("ReadDate", tag)
	}
	payload, err := b.peek("ReadDate", 4)
	if err != nil {
		b.offset = start
		return 0, 0, 0, err
	}
	b.skip(4)
	return binary.BigEndian.Uint16(payload[0:2]), payload[2], payload[3], nil
}

func getMicroseconds3(p []byte) uint32 {
	return uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
}

// ReadTime reads a TIME value.
func (b *Buffer) ReadTime() (hour, minute, second byte, microsecond uint32, err error) {
	start := b.offset
	tag, err := b.readTagAdvance("ReadTime")
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if tag != TagTime {
		b.offset = start
		return 0, 0, 0, 0, errBadTag("ReadTime", tag)
	}
	payload, err := b.peek("ReadTime", 6)
	if err != nil {
		b.offset = start
		return 0, 0, 0, 0, err
	}
	b.skip(6)
	return payload[0], payload[1], payload[2], getMicroseconds3(payload[3:6]), nil
}

// ReadDateTime reads a DATETIME value.
func (b *Buffer) ReadDateTime() (year uint16, month, day, hour, minute, second byte, microsecond uint32, err error) {
	start := b.offset
	tag, err := b.readTagAdvance("ReadDateTime")
	if err != nil {
		return 0, 0, 0, 0, 0, 0, 0, err
	}
	if tag != TagDateTime {
		b.offset = start
		return 0, 0, 0, 0, 0, 0, 0, errBadTag("ReadDateTime", tag)
	}
	payload, err := b.peek("ReadDateTime", 10)
	if err != nil {
		b.offset = start
		return 0, 0, 0, 0, 0, 0, 0, err
	}
	b.skip(10)
	year = binary.BigEndian.Uint16(payload[0:2])
	month, day, hour, minute, second = payload[2], payload[3], payload[4], payload[5], payload[6]
	microsecond = getMicroseconds3(payload[7:10])
	return
}

// ReadTimeDelta reads a TIMEDELTA value.
func (b *Buffer) ReadTimeDelta() (days, seconds, microseconds int32, err error) {
	start := b.offset
	tag, err := b.readTagAdvance("ReadTimeDelta")
	if err != nil {
		return 0, 0, 0, err
	}
	if tag != TagTimeDelta {
		b.offset = start
		return 0, 0, 0, errBadTag("ReadTimeDelta", tag)
	}
	payload, err := b.peek("ReadTimeDelta", 12)
	if err != nil {
		b.offset = start
		return 0, 0, 0, err
	}
	b.skip(12)
	days = int32(binary.BigEndian.Uint32(payload[0:4]))
	seconds = int32(binary.BigEndian.Uint32(payload[4:8]))
	microseconds = int32(binary.BigEndian.Uint32(payload[8:12]))
	return days, seconds, microseconds, nil
}

// ContainerSize consumes a container tag (list/tuple/set/hash, any
// size class) and its element count prefix, and returns the tag and
// the declared count. For a hash, the caller must then decode 2*count
// values (alternating key, value); for the others, count values.
func (b *Buffer) ContainerSize() (Tag, int, error) {
	start := b.offset
	tag, err := b.readTagAdvance("ContainerSize")
	if err != nil {
		return 0, 0, err
	}
	var n int
	switch tag {
	case TagShortList, TagShortTuple, TagShortSet, TagShortHash:
		n = 1
	case TagMedList, TagMedTuple, TagMedSet, TagMedHash:
		n = 2
	case TagLongList, TagLongTuple, TagLongSet, TagLongHash:
		n = 4
	default:
		b.offset = start
		return 0, 0, errBadTag("ContainerSize", tag)
	}
	payload, err := b.peek("ContainerSize", n)
	if err != nil {
		b.offset = start
		return 0, 0, err
	}
	b.skip(n)
	switch n {
	case 1:
		return tag, int(payload[0]), nil
	case 2:
		return tag, int(binary.BigEndian.Uint16(payload)), nil
	default:
		return tag, int(binary.BigEndian.Uint32(payload)), nil
	}
}
