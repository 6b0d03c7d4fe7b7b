package stream

import (
	"unicode/utf8"

	"github.com/pkg/errors"
)

// decodeUTF8 returns p as a string after checking it is well-formed UTF-8.
func decodeUTF8(p []byte) (string, error) {
	if !utf8.Valid(p) {
		return "", errors.Wrap(ErrInvalidEncoding, "not well-formed UTF-8")
	}
	return string(p), nil
}

// decodeASCII returns p as a string after checking every byte is in the
// 7-bit ASCII range.
func decodeASCII(p []byte) (string, error) {
	for i, b := range p {
		if b > 0x7f {
			return "", errors.Wrapf(ErrInvalidEncoding, "byte 0x%02x at index %d is not ASCII", b, i)
		}
	}
	return string(p), nil
}

// encodeASCII returns the bytes of s after checking it holds only 7-bit
// ASCII. UTF-8 needs no counterpart: a Go string is written byte for byte.
func encodeASCII(s string) ([]byte, error) {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return nil, errors.Wrapf(ErrInvalidEncoding, "byte 0x%02x at index %d is not ASCII", s[i], i)
		}
	}
	return []byte(s), nil
}
