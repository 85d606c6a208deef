package mummy

// Tag is the single-byte type identifier that precedes every encoded
// value on the wire.
type Tag byte

// The wire tag alphabet. Values and hex layout are fixed by the wire
// format; changing them breaks compatibility with every existing
// payload.
const (
	TagNull   Tag = 0x00
	TagBool   Tag = 0x01
	TagChar   Tag = 0x02
	TagShort  Tag = 0x03
	TagInt    Tag = 0x04
	TagLong   Tag = 0x05
	TagHuge   Tag = 0x06
	TagFloat  Tag = 0x07

	TagShortStr Tag = 0x08
	TagLongStr  Tag = 0x09
	TagMedStr   Tag = 0x18

	TagShortUTF8 Tag = 0x0A
	TagLongUTF8  Tag = 0x0B
	TagMedUTF8   Tag = 0x19

	TagLongList  Tag = 0x0C
	TagLongTuple Tag = 0x0D
	TagLongSet   Tag = 0x0E
	TagLongHash  Tag = 0x0F

	TagShortList  Tag = 0x10
	TagShortTuple Tag = 0x11
	TagShortSet   Tag = 0x12
	TagShortHash  Tag = 0x13

	TagMedList  Tag = 0x14
	TagMedTuple Tag = 0x15
	TagMedSet   Tag = 0x16
	TagMedHash  Tag = 0x17

	TagDate       Tag = 0x1A
	TagTime       Tag = 0x1B
	TagDateTime   Tag = 0x1C
	TagTimeDelta  Tag = 0x1D
	TagDecimal    Tag = 0x1E
	TagSpecialNum Tag = 0x1F
)

// compressedFlag is the high bit of a payload's first byte, signaling
// that the rest of the payload is compressed.
const compressedFlag = 0x80

// SpecialNum flag nibbles and sign bits, the payload of TagSpecialNum.
const (
	specialInfinity = 0x10
	specialNaN      = 0x20
	specialSignBit  = 0x01
)

// String returns the tag's name, for diagnostics and dump output.
func (t Tag) String() string {
	switch t {
	case TagNull:
		return "NULL"
	case TagBool:
		return "BOOL"
	case TagChar:
		return "CHAR"
	case TagShort:
		return "SHORT"
	case TagInt:
		return "INT"
	case TagLong:
		return "LONG"
	case TagHuge:
		return "HUGE"
	case TagFloat:
		return "FLOAT"
	case TagShortStr:
		return "SHORTSTR"
	case TagMedStr:
		return "MEDSTR"
	case TagLongStr:
		return "LONGSTR"
	case TagShortUTF8:
		return "SHORTUTF8"
	case TagMedUTF8:
		return "MEDUTF8"
	case TagLongUTF8:
		return "LONGUTF8"
	case TagLongList:
		return "LONGLIST"
	case TagLongTuple:
		return "LONGTUPLE"
	case TagLongSet:
		return "LONGSET"
	case TagLongHash:
		return "LONGHASH"
	case TagShortList:
		return "SHORTLIST"
	case TagShortTuple:
		return "SHORTTUPLE"
	case TagShortSet:
		return "SHORTSET"
	case TagShortHash:
		return "SHORTHASH"
	case TagMedList:
		return "MEDLIST"
	case TagMedTuple:
		return "MEDTUPLE"
	case TagMedSet:
		return "MEDSET"
	case TagMedHash:
		return "MEDHASH"
	case TagDate:
		return "DATE"
	case TagTime:
		return "TIME"
	case TagDateTime:
		return "DATETIME"
	case TagTimeDelta:
		return "TIMEDELTA"
	case TagDecimal:
		return "DECIMAL"
	case TagSpecialNum:
		return "SPECIALNUM"
	default:
		return "UNKNOWN"
	}
}

// IsContainer reports whether t is one of the list/tuple/set/hash
// container tags, in any size class.
func (t Tag) IsContainer() bool {
	switch t {
	case TagLongList, TagLongTuple, TagLongSet, TagLongHash,
		TagShortList, TagShortTuple, TagShortSet, TagShortHash,
		TagMedList, TagMedTuple, TagMedSet, TagMedHash:
		return true
	default:
		return false
	}
}
