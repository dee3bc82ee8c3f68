package otp

import (
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
)

var rawBase32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// DecodeSecret decodes an unpadded RFC 4648 base32 secret.
// Lowercase input is accepted; uppercase is canonical. Padding characters,
// whitespace and truncated final quanta are rejected with ErrDecode.
func DecodeSecret(s string) ([]byte, error) {
	// 1, 3 or 6 trailing characters carry fewer than 8 bits of a final byte.
	switch len(s) % 8 {
	case 1, 3, 6:
		return nil, fmt.Errorf("%w: length %d does not encode whole bytes", ErrDecode, len(s))
	}

	// encoding/base32 silently drops line breaks.
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return nil, fmt.Errorf("%w: illegal character at offset %d", ErrDecode, i)
	}

	b, err := rawBase32.DecodeString(upperASCII(s))
	if err != nil {
		var corrupt base32.CorruptInputError
		if errors.As(err, &corrupt) {
			return nil, fmt.Errorf("%w: illegal character at offset %d", ErrDecode, int64(corrupt))
		}
		return nil, ErrDecode
	}
	return b, nil
}

// EncodeSecret returns the canonical unpadded uppercase base32 form of secret.
func EncodeSecret(secret []byte) string {
	return rawBase32.EncodeToString(secret)
}

// upperASCII folds a-z only. strings.ToUpper would map runes such as
// U+017F onto the base32 alphabet.
func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
