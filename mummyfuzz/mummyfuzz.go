// Package mummyfuzz exercises the decoder's bounds-safety guarantee:
// no sequence of bytes, however malformed, should ever cause a
// decoder call to read outside the buffer it was given or to panic.
// This is the same property the teacher's own vom fuzzer targeted
// with the older +build-gofuzz convention; here it's driven instead
// by the standard library's native fuzzing support.
package mummyfuzz

import (
	"mummy.io/mummy"
)

// DecodeWholeBuffer decodes the values in data one after another,
// choosing each decode operation by the value's tag byte and
// recursing into containers, stopping at the first error.
// It never panics on malformed input; a panic here is the bug a fuzz
// run is looking for.
func DecodeWholeBuffer(data []byte) {
	b := mummy.Wrap(data)
	for b.Space() > 0 {
		tag, err := b.Tag()
		if err != nil {
			return
		}
		if err := decodeOne(b, tag); err != nil {
			return
		}
	}
}

func decodeOne(b *mummy.Buffer, tag mummy.Tag) error {
	switch {
	case tag == mummy.TagNull:
		return b.ReadNull()
	case tag == mummy.TagBool:
		_, err := b.ReadBool()
		return err
	case tag == mummy.TagChar || tag == mummy.TagShort || tag == mummy.TagInt || tag == mummy.TagLong:
		_, err := b.ReadInt()
		return err
	case tag == mummy.TagHuge:
		_, err := b.PointToHuge()
		return err
	case tag == mummy.TagFloat:
		_, err := b.ReadFloat()
		return err
	case tag == mummy.TagShortStr || tag == mummy.TagMedStr || tag == mummy.TagLongStr:
		_, err := b.PointToString()
		return err
	case tag == mummy.TagShortUTF8 || tag == mummy.TagMedUTF8 || tag == mummy.TagLongUTF8:
		_, err := b.PointToUTF8()
		return err
	case tag == mummy.TagDecimal:
		_, _, _, err := b.ReadDecimal()
		return err
	case tag == mummy.TagSpecialNum:
		_, err := b.ReadSpecialNum()
		return err
	case tag == mummy.TagDate:
		_, _, _, err := b.ReadDate()
		return err
	case tag == mummy.TagTime:
		_, _, _, _, err := b.ReadTime()
		return err
	case tag == mummy.TagDateTime:
		_, _, _, _, _, _, _, err := b.ReadDateTime()
		return err
	case tag == mummy.TagTimeDelta:
		_, _, _, err := b.ReadTimeDelta()
		return err
	case tag.IsContainer():
		_, count, err := b.ContainerSize()
		if err != nil {
			return err
		}
		elements := count
		if tag == mummy.TagShortHash || tag == mummy.TagMedHash || tag == mummy.TagLongHash {
			elements *= 2
		}
		for i := 0; i < elements; i++ {
			childTag, err := b.Tag()
			if err != nil {
				return err
			}
			if err := decodeOne(b, childTag); err != nil {
				return err
			}
		}
		return nil
	default:
		return b.ReadNull() // guaranteed BadTag for an unrecognized byte; halts the walk.
	}
}
