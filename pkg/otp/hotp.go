package otp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/binary"
	"fmt"
)

const (
	// DefaultDigits is the code length used by authenticator apps.
	DefaultDigits = 6
	// MaxDigits is the longest code that still carries distinct values:
	// a truncated HMAC is a 31-bit quantity, at most 10 decimal digits.
	MaxDigits = 10
)

var pow10 = [MaxDigits + 1]uint32{
	1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000, 1000000000, 0,
}

// HOTP computes the RFC 4226 one-time password for secret at counter.
// The counter is encoded as an unsigned 64-bit big-endian value, so the
// full uint64 range produces correct codes.
func HOTP(secret []byte, counter uint64, digits int) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("%w: secret must not be empty", ErrInvalidSecret)
	}
	if err := validateDigits(digits); err != nil {
		return "", err
	}

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(sha1.New, secret)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	return format(truncate(sum), digits), nil
}

// truncate implements RFC 4226 dynamic truncation.
func truncate(sum []byte) uint32 {
	offset := sum[len(sum)-1] & 0x0f
	return binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff
}

func format(value uint32, digits int) string {
	// 10^10 exceeds uint32; every 31-bit value is already below it.
	if digits < MaxDigits {
		value %= pow10[digits]
	}
	return fmt.Sprintf("%0*d", digits, value)
}

func validateDigits(digits int) error {
	if digits < 1 || digits > MaxDigits {
		return fmt.Errorf("%w: digits must be between 1 and %d, got %d", ErrInvalidDigits, MaxDigits, digits)
	}
	return nil
}
