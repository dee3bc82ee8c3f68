package otp

import (
	"fmt"
	"strings"
	"time"
)

// Batch is a run of codes for consecutive windows starting at the
// current one.
type Batch struct {
	// Codes holds one code per window, oldest first.
	Codes []string
	// SecondsRemaining is the time left in the window of Codes[0].
	SecondsRemaining int64
}

// String renders the batch as space separated codes followed by the
// remaining seconds, e.g. "755224 287082 17s".
func (b *Batch) String() string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf("%s %ds", strings.Join(b.Codes, " "), b.SecondsRemaining)
}

// GenerateBatch decodes a base32 secret and returns count codes starting
// at the current window, using DefaultParams. The clock is read once.
func GenerateBatch(secret string, count int) (*Batch, error) {
	key, err := DecodeSecret(secret)
	if err != nil {
		return nil, err
	}
	return GenerateBatchAt(key, time.Now().Unix(), count, DefaultParams)
}

// GenerateBatchAt returns count codes for the windows starting at unix.
// Codes[i] is TOTP(secret, unix+Period*i, p).
func GenerateBatchAt(secret []byte, unix int64, count int, p Params) (*Batch, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: count must be at least 1, got %d", ErrInvalidCount, count)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	codes := make([]string, count)
	for i := range codes {
		code, err := TOTP(secret, unix+p.Period*int64(i), p)
		if err != nil {
			return nil, err
		}
		codes[i] = code
	}

	return &Batch{Codes: codes, SecondsRemaining: remaining(unix, p)}, nil
}
