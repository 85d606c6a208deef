// Command mummydump prints a tag-by-tag trace of a mummy payload read
// from a file or from standard input, decompressing it first if it
// carries the compressed-payload flag.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"mummy.io/mummy"
)

func main() {
	var (
		inputPath = pflag.StringP("input", "i", "", "path to a file holding a mummy payload (default: stdin)")
		verbose   = pflag.BoolP("verbose", "v", false, "log whether the payload was decompressed to stderr")
	)
	pflag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	raw, err := readInput(*inputPath)
	if err != nil {
		logger.Error("reading input", "err", err)
		os.Exit(1)
	}

	buf := mummy.Wrap(raw)
	didDecompress, err := mummy.Decompress(buf, false)
	if err != nil {
		logger.Error("decompressing payload", "err", err)
		os.Exit(1)
	}
	if didDecompress {
		logger.Debug("payload was compressed", "uncompressedLen", buf.Len())
	} else {
		logger.Debug("payload was not compressed")
	}

	if err := dumpValue(os.Stdout, buf, 0); err != nil {
		logger.Error("decoding payload", "err", err, "offset", buf.Offset())
		os.Exit(1)
	}
	if buf.Space() > 0 {
		logger.Warn("trailing bytes after top-level value", "remaining", buf.Space())
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func indent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		fmt.Fprint(w, "  ")
	}
}

// dumpValue decodes one value at the buffer's cursor and prints it,
// recursing into containers.
func dumpValue(w io.Writer, b *mummy.Buffer, depth int) error {
	tag, err := b.Tag()
	if err != nil {
		return err
	}
	indent(w, depth)

	switch {
	case tag == mummy.TagNull:
		if err := b.ReadNull(); err != nil {
			return err
		}
		fmt.Fprintln(w, "null")
	case tag == mummy.TagBool:
		v, err := b.ReadBool()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, v)
	case tag == mummy.TagChar || tag == mummy.TagShort || tag == mummy.TagInt || tag == mummy.TagLong:
		v, err := b.ReadInt()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %d\n", tag, v)
	case tag == mummy.TagHuge:
		v, err := b.PointToHuge()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "HUGE %s\n", hex.EncodeToString(v))
	case tag == mummy.TagFloat:
		v, err := b.ReadFloat()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, v)
	case tag == mummy.TagShortStr || tag == mummy.TagMedStr || tag == mummy.TagLongStr:
		v, err := b.PointToString()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %q\n", tag, v)
	case tag == mummy.TagShortUTF8 || tag == mummy.TagMedUTF8 || tag == mummy.TagLongUTF8:
		v, err := b.PointToUTF8()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s %q\n", tag, v)
	case tag == mummy.TagDecimal:
		neg, exp, digits, err := b.ReadDecimal()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "DECIMAL negative=%v exp=%d digits=%v\n", neg, exp, digits)
	case tag == mummy.TagSpecialNum:
		sn, err := b.ReadSpecialNum()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "SPECIALNUM %+v\n", sn)
	case tag == mummy.TagDate:
		y, m, d, err := b.ReadDate()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "DATE %04d-%02d-%02d\n", y, m, d)
	case tag == mummy.TagTime:
		h, m, s, usec, err := b.ReadTime()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "TIME %02d:%02d:%02d.%06d\n", h, m, s, usec)
	case tag == mummy.TagDateTime:
		y, mo, d, h, mi, s, usec, err := b.ReadDateTime()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "DATETIME %04d-%02d-%02dT%02d:%02d:%02d.%06d\n", y, mo, d, h, mi, s, usec)
	case tag == mummy.TagTimeDelta:
		days, secs, usec, err := b.ReadTimeDelta()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "TIMEDELTA days=%d seconds=%d microseconds=%d\n", days, secs, usec)
	case tag.IsContainer():
		return dumpContainer(w, b, depth)
	default:
		return fmt.Errorf("mummydump: unrecognized tag 0x%02x at offset %d", byte(tag), b.Offset())
	}
	return nil
}

func dumpContainer(w io.Writer, b *mummy.Buffer, depth int) error {
	tag, count, err := b.ContainerSize()
	if err != nil {
		return err
	}
	elements := count
	if tag == mummy.TagShortHash || tag == mummy.TagMedHash || tag == mummy.TagLongHash {
		elements *= 2
	}
	fmt.Fprintf(w, "%s (%d)\n", tag, count)
	for i := 0; i < elements; i++ {
		if err := dumpValue(w, b, depth+1); err != nil {
			return err
		}
	}
	return nil
}
