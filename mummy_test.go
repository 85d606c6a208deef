package mummy

import (
	"encoding/hex"
	"testing"
)

func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex literal %q: %v", s, err)
	}
	return b
}

// TestFeedScalarsHex checks each scalar Feed* method against its exact
// wire bytes, table-driven in the same style the teacher uses for its
// own binary encoders.
func TestFeedScalarsHex(t *testing.T) {
	tests := []struct {
		name string
		feed func(b *Buffer) error
		hex  string
	}{
		{"null", func(b *Buffer) error { return b.FeedNull() }, "00"},
		{"bool-false", func(b *Buffer) error { return b.FeedBool(false) }, "0100"},
		{"bool-true", func(b *Buffer) error { return b.FeedBool(true) }, "0101"},
		{"char-zero", func(b *Buffer) error { return b.FeedInt(0) }, "0200"},
		{"char-neg1", func(b *Buffer) error { return b.FeedInt(-1) }, "02ff"},
		{"char-127", func(b *Buffer) error { return b.FeedInt(127) }, "027f"},
		{"short-128", func(b *Buffer) error { return b.FeedInt(128) }, "030080"},
		{"short-neg129", func(b *Buffer) error { return b.FeedInt(-129) }, "03ff7f"},
		{"int-32768", func(b *Buffer) error { return b.FeedInt(32768) }, "0400008000"},
		{"long-2147483648", func(b *Buffer) error { return b.FeedInt(2147483648) }, "050000000080000000"},
		{"float-zero", func(b *Buffer) error { return b.FeedFloat(0) }, "070000000000000000"},
		{"float-one", func(b *Buffer) error { return b.FeedFloat(1) }, "073ff0000000000000"},
		{"infinity-pos", func(b *Buffer) error { return b.FeedInfinity(false) }, "1f10"},
		{"infinity-neg", func(b *Buffer) error { return b.FeedInfinity(true) }, "1f11"},
		{"nan-quiet", func(b *Buffer) error { return b.FeedNaN(false) }, "1f20"},
		{"nan-signaling", func(b *Buffer) error { return b.FeedNaN(true) }, "1f21"},
		{"date", func(b *Buffer) error { return b.FeedDate(2024, 3, 15) }, "1a07e8030f"},
		{"time", func(b *Buffer) error { return b.FeedTime(13, 5, 9, 250000) }, "1b0d050903d090"},
		{"timedelta-neg", func(b *Buffer) error { return b.FeedTimeDelta(-1, 0, 0) }, "1dffffffff0000000000000000"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := New(0)
			if err := tc.feed(b); err != nil {
				t.Fatalf("feed: %v", err)
			}
			want := hexBytes(t, tc.hex)
			if got := b.Bytes(); string(got) != string(want) {
				t.Errorf("got % x, want % x", got, want)
			}
		})
	}
}

// TestStringSizeClasses checks that FeedString picks SHORTSTR, MEDSTR,
// and LONGSTR at the documented 256/65536 boundaries.
func TestStringSizeClasses(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		tagByte byte
	}{
		{"short-max", 255, byte(TagShortStr)},
		{"med-min", 256, byte(TagMedStr)},
		{"med-max", 65535, byte(TagMedStr)},
		{"long-min", 65536, byte(TagLongStr)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := New(0)
			data := make([]byte, tc.length)
			if err := b.FeedString(data); err != nil {
				t.Fatalf("FeedString: %v", err)
			}
			if got := b.Bytes()[0]; got != tc.tagByte {
				t.Errorf("tag byte = 0x%02x, want 0x%02x", got, tc.tagByte)
			}
		})
	}
}

// TestRoundTripScalars feeds then reads back every scalar kind and
// checks the value and that the cursor lands exactly at the end.
func TestRoundTripScalars(t *testing.T) {
	b := New(0)
	if err := b.FeedNull(); err != nil {
		t.Fatal(err)
	}
	if err := b.FeedBool(true); err != nil {
		t.Fatal(err)
	}
	if err := b.FeedInt(-12345); err != nil {
		t.Fatal(err)
	}
	if err := b.FeedFloat(3.14159); err != nil {
		t.Fatal(err)
	}
	if err := b.FeedString([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	if err := b.FeedUTF8([]byte("wörld")); err != nil {
		t.Fatal(err)
	}

	r := Wrap(b.Bytes())

	if tag, err := r.Tag(); err != nil || tag != TagNull {
		t.Fatalf("Tag = %v, %v", tag, err)
	}
	if err := r.ReadNull(); err != nil {
		t.Fatal(err)
	}

	v, err := r.ReadBool()
	if err != nil || v != true {
		t.Fatalf("ReadBool = %v, %v", v, err)
	}

	n, err := r.ReadInt()
	if err != nil || n != -12345 {
		t.Fatalf("ReadInt = %v, %v", n, err)
	}

	f, err := r.ReadFloat()
	if err != nil || f != 3.14159 {
		t.Fatalf("ReadFloat = %v, %v", f, err)
	}

	s, err := r.PointToString()
	if err != nil || string(s) != "hello" {
		t.Fatalf("PointToString = %q, %v", s, err)
	}

	u, err := r.PointToUTF8()
	if err != nil || string(u) != "wörld" {
		t.Fatalf("PointToUTF8 = %q, %v", u, err)
	}

	if r.Space() != 0 {
		t.Errorf("Space() = %d, want 0 (cursor should land exactly at end)", r.Space())
	}
}

func TestDecimalRoundTrip(t *testing.T) {
	b := New(0)
	digits := []byte{1, 2, 3, 4, 5}
	if err := b.FeedDecimal(true, -2, digits); err != nil {
		t.Fatal(err)
	}
	r := Wrap(b.Bytes())
	neg, exp, got, err := r.ReadDecimal()
	if err != nil {
		t.Fatal(err)
	}
	if !neg || exp != -2 {
		t.Errorf("neg=%v exp=%d, want true,-2", neg, exp)
	}
	if string(got) != string(digits) {
		t.Errorf("digits = %v, want %v", got, digits)
	}
}

func TestDecimalInvalidDigitLeavesCursorUnchanged(t *testing.T) {
	b := New(0)
	if err := b.FeedNull(); err != nil {
		t.Fatal(err)
	}
	before := b.Offset()
	err := b.FeedDecimal(false, 0, []byte{1, 2, 10, 3})
	if err == nil || !Is(err, InvalidArgument) {
		t.Fatalf("err = %v, want InvalidArgument", err)
	}
	if b.Offset() != before {
		t.Errorf("offset changed from %d to %d on a rejected FeedDecimal", before, b.Offset())
	}
}

func TestSpecialNumRoundTrip(t *testing.T) {
	b := New(0)
	if err := b.FeedInfinity(true); err != nil {
		t.Fatal(err)
	}
	if err := b.FeedNaN(true); err != nil {
		t.Fatal(err)
	}
	r := Wrap(b.Bytes())

	sn, err := r.ReadSpecialNum()
	if err != nil || !sn.Infinity || !sn.Negative {
		t.Fatalf("ReadSpecialNum #1 = %+v, %v", sn, err)
	}
	sn, err = r.ReadSpecialNum()
	if err != nil || !sn.NaN || !sn.Signaling {
		t.Fatalf("ReadSpecialNum #2 = %+v, %v", sn, err)
	}
}

func TestHugeRoundTrip(t *testing.T) {
	b := New(0)
	want := hexBytes(t, "0102030405060708090a")
	if err := b.FeedHuge(want); err != nil {
		t.Fatal(err)
	}
	r := Wrap(b.Bytes())
	got, err := r.PointToHuge()
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(want) {
		t.Errorf("got % x, want % x", got, want)
	}
}

func TestReadStringTruncatedReportsTrueLengthAndDoesNotAdvance(t *testing.T) {
	b := New(0)
	if err := b.FeedString([]byte("abcdef")); err != nil {
		t.Fatal(err)
	}
	r := Wrap(b.Bytes())
	before := r.Offset()
	dst := make([]byte, 3)
	n, err := r.ReadString(dst)
	if !Is(err, Truncated) {
		t.Fatalf("err = %v, want Truncated", err)
	}
	if n != 6 {
		t.Errorf("reported length = %d, want 6", n)
	}
	if r.Offset() != before {
		t.Errorf("offset advanced from %d to %d on a truncated read", before, r.Offset())
	}

	// Retry with a big-enough destination from the same position.
	dst = make([]byte, 6)
	n, err = r.ReadString(dst)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if n != 6 || string(dst) != "abcdef" {
		t.Errorf("retry got %q (n=%d), want %q", dst, n, "abcdef")
	}
}

func TestBadTagOnWrongRead(t *testing.T) {
	b := New(0)
	if err := b.FeedBool(true); err != nil {
		t.Fatal(err)
	}
	r := Wrap(b.Bytes())
	before := r.Offset()
	if _, err := r.ReadFloat(); !Is(err, BadTag) {
		t.Fatalf("err = %v, want BadTag", err)
	}
	if r.Offset() != before {
		t.Errorf("offset advanced on a BadTag decode error")
	}
}

func TestShortBufferNeverPanics(t *testing.T) {
	b := New(0)
	if err := b.FeedInt(123456789); err != nil {
		t.Fatal(err)
	}
	full := b.Bytes()
	for n := 0; n < len(full); n++ {
		r := Wrap(full[:n])
		if _, err := r.ReadInt(); err == nil {
			t.Fatalf("prefix length %d unexpectedly decoded successfully", n)
		}
	}
}

func TestContainerRoundTrip(t *testing.T) {
	b := New(0)
	if err := b.OpenList(3); err != nil {
		t.Fatal(err)
	}
	for i := int64(0); i < 3; i++ {
		if err := b.FeedInt(i); err != nil {
			t.Fatal(err)
		}
	}
	r := Wrap(b.Bytes())
	tag, count, err := r.ContainerSize()
	if err != nil {
		t.Fatal(err)
	}
	if tag != TagShortList || count != 3 {
		t.Fatalf("tag=%v count=%d, want SHORTLIST 3", tag, count)
	}
	for i := int64(0); i < 3; i++ {
		v, err := r.ReadInt()
		if err != nil || v != i {
			t.Fatalf("element %d = %v, %v", i, v, err)
		}
	}
}

func TestContainerSizeClasses(t *testing.T) {
	tests := []struct {
		count int
		tag   Tag
	}{
		{0, TagShortList},
		{255, TagShortList},
		{256, TagMedList},
		{65535, TagMedList},
		{65536, TagLongList},
	}
	for _, tc := range tests {
		b := New(0)
		if err := b.OpenList(tc.count); err != nil {
			t.Fatalf("count %d: %v", tc.count, err)
		}
		if got := b.Bytes()[0]; got != byte(tc.tag) {
			t.Errorf("count %d: tag byte = 0x%02x, want 0x%02x", tc.count, got, byte(tc.tag))
		}
	}
}

func TestWrappedBufferNeverReallocates(t *testing.T) {
	storage := make([]byte, 1)
	b := Wrap(storage)
	if err := b.FeedBool(true); err == nil {
		t.Fatalf("FeedBool on a 1-byte wrapped buffer should fail")
	} else if !Is(err, OutOfMemory) {
		t.Fatalf("err = %v, want OutOfMemory", err)
	}
}
