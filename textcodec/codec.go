// Package textcodec converts between the host's raw byte buffers and Go
// strings. Decoding is fallible because the host hands over whatever bytes
// the platform gave it; encoding is total, substituting a replacement for
// anything the target charset cannot represent.
package textcodec

import (
	"fmt"
	"unicode/utf8"
)

// Codec converts one charset's raw bytes to a string and back.
type Codec interface {
	// Decode converts host bytes into a string. The input is borrowed and
	// must not be retained.
	Decode(b []byte) (string, error)
	// Encode converts a string into host bytes. Never fails.
	Encode(s string) []byte
	// Name returns the charset label, as used in SAORI Charset headers.
	Name() string
}

// TrimNUL strips trailing NUL bytes. Host path buffers are C strings whose
// terminator is included in the reported length.
func TrimNUL(b []byte) []byte {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return b[:end]
}

type utf8Codec struct{}

// UTF8 returns the codec for UTF-8 buffers, as passed to the loadu entry
// point.
func UTF8() Codec { return utf8Codec{} }

func (utf8Codec) Decode(b []byte) (string, error) {
	b = TrimNUL(b)
	if !utf8.Valid(b) {
		return "", fmt.Errorf("textcodec: input is not valid UTF-8")
	}
	return string(b), nil
}

func (utf8Codec) Encode(s string) []byte { return []byte(s) }

func (utf8Codec) Name() string { return "UTF-8" }
