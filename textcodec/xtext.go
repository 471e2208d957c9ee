package textcodec

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// xtextCodec adapts a golang.org/x/text encoding to the Codec port.
type xtextCodec struct {
	enc      encoding.Encoding
	name     string
	nulWidth int // bytes per NUL terminator code unit
}

// ShiftJIS returns the codec for Shift_JIS buffers, the charset ukagaka
// hosts conventionally pass to the load entry point.
func ShiftJIS() Codec {
	return xtextCodec{enc: japanese.ShiftJIS, name: "Shift_JIS", nulWidth: 1}
}

// UTF16LE returns the codec for little-endian wide-character buffers.
func UTF16LE() Codec {
	return xtextCodec{
		enc:      unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
		name:     "UTF-16LE",
		nulWidth: 2,
	}
}

func (c xtextCodec) Decode(b []byte) (string, error) {
	b = c.trim(b)
	out, err := c.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("textcodec: decode %s: %w", c.name, err)
	}
	// x/text decoders substitute U+FFFD for malformed input instead of
	// failing. Neither charset here can encode U+FFFD itself, so its
	// presence means the input was malformed.
	if strings.ContainsRune(string(out), utf8.RuneError) {
		return "", fmt.Errorf("textcodec: decode %s: malformed input", c.name)
	}
	return string(out), nil
}

func (c xtextCodec) Encode(s string) []byte {
	enc := encoding.ReplaceUnsupported(c.enc.NewEncoder())
	out, err := enc.Bytes([]byte(s))
	if err != nil {
		// ReplaceUnsupported makes the encoder total; this branch is
		// unreachable but the transform API still returns an error.
		return []byte(s)
	}
	return out
}

func (c xtextCodec) Name() string { return c.name }

// trim strips trailing NUL terminators, one code unit at a time.
func (c xtextCodec) trim(b []byte) []byte {
	if c.nulWidth <= 1 {
		return TrimNUL(b)
	}
	end := len(b)
	for end >= c.nulWidth && allZero(b[end-c.nulWidth:end]) {
		end -= c.nulWidth
	}
	return b[:end]
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
