package otp

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"
)

// Type represents the OTP algorithm type.
type Type string

const (
	// TypeTOTP represents Time-based OTP (RFC 6238).
	TypeTOTP Type = "totp"
	// TypeHOTP represents Counter-based OTP (RFC 4226).
	TypeHOTP Type = "hotp"
)

// MaxSkew is the widest clock skew tolerance, in periods either side of
// the current one, that an Authenticator accepts.
const MaxSkew = 10

// Config holds OTP authenticator configuration.
type Config struct {
	// Type specifies the OTP type (TOTP or HOTP).
	Type Type
	// Secret is the unpadded base32-encoded shared secret key (required).
	Secret string
	// Digits specifies the number of digits in the OTP code (1 to 10).
	// Default: 6
	Digits uint
	// Period specifies the time step in seconds for TOTP.
	// Default: 30
	Period uint
	// T0 is the Unix time at which TOTP counting starts.
	// Default: 0
	T0 int64
	// Counter specifies the counter value for HOTP.
	// Default: 0
	Counter uint64
	// Skew specifies the number of time periods to check before and after
	// the current time for TOTP validation (tolerance for clock skew).
	// Default: 1, maximum: MaxSkew
	Skew uint
}

// validate checks that the configuration is valid and returns the decoded secret.
func (c Config) validate() ([]byte, error) {
	if c.Type != TypeTOTP && c.Type != TypeHOTP {
		return nil, fmt.Errorf("%w: type must be 'totp' or 'hotp'", ErrInvalidConfig)
	}

	if strings.TrimSpace(c.Secret) == "" {
		return nil, fmt.Errorf("%w: %w: secret must not be empty", ErrInvalidConfig, ErrInvalidSecret)
	}

	key, err := DecodeSecret(c.Secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if c.Digits != 0 {
		if err := validateDigits(int(c.Digits)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	if c.Skew > MaxSkew {
		return nil, fmt.Errorf("%w: skew must be at most %d, got %d", ErrInvalidConfig, MaxSkew, c.Skew)
	}

	return key, nil
}

// Authenticator generates and validates OTP codes for a single secret.
// It is safe for concurrent use.
type Authenticator struct {
	cfg    Config
	key    []byte
	params Params
	now    func() time.Time
}

// NewAuthenticator creates a new OTP authenticator.
// The configuration is validated and the secret decoded up front, so a
// malformed secret is reported here rather than on first use.
func NewAuthenticator(cfg Config) (*Authenticator, error) {
	key, err := cfg.validate()
	if err != nil {
		return nil, err
	}

	// Apply defaults
	if cfg.Digits == 0 {
		cfg.Digits = DefaultDigits
	}
	if cfg.Period == 0 {
		cfg.Period = DefaultPeriod
	}
	if cfg.Skew == 0 {
		cfg.Skew = 1
	}

	return &Authenticator{
		cfg: cfg,
		key: key,
		params: Params{
			Period: int64(cfg.Period),
			Digits: int(cfg.Digits),
			T0:     cfg.T0,
		},
		now: time.Now,
	}, nil
}

// Params returns the TOTP parameters in effect after defaults.
func (a *Authenticator) Params() Params {
	if a == nil {
		return Params{}
	}
	return a.params
}

// Generate generates an OTP code.
// For TOTP, it generates the code for the current time.
// For HOTP, it generates the code for the configured counter.
func (a *Authenticator) Generate() (string, error) {
	if a == nil {
		return "", ErrNilAuthenticator
	}
	if a.cfg.Type == TypeTOTP {
		return a.GenerateAt(a.now())
	}
	return a.GenerateCounter(a.cfg.Counter)
}

// GenerateAt generates the TOTP code for the window containing t.
func (a *Authenticator) GenerateAt(t time.Time) (string, error) {
	if a == nil {
		return "", ErrNilAuthenticator
	}
	code, err := TOTP(a.key, t.Unix(), a.params)
	if err != nil {
		return "", fmt.Errorf("otp: failed to generate TOTP code: %w", err)
	}
	return code, nil
}

// GenerateCounter generates the HOTP code for counter.
func (a *Authenticator) GenerateCounter(counter uint64) (string, error) {
	if a == nil {
		return "", ErrNilAuthenticator
	}
	code, err := HOTP(a.key, counter, a.params.Digits)
	if err != nil {
		return "", fmt.Errorf("otp: failed to generate HOTP code: %w", err)
	}
	return code, nil
}

// Batch returns count TOTP codes starting at the current window.
// This method is only valid for TOTP authenticators.
func (a *Authenticator) Batch(count int) (*Batch, error) {
	if a == nil {
		return nil, ErrNilAuthenticator
	}
	if a.cfg.Type != TypeTOTP {
		return nil, fmt.Errorf("%w: Batch is only valid for TOTP", ErrInvalidConfig)
	}
	return GenerateBatchAt(a.key, a.now().Unix(), count, a.params)
}

// Authenticate validates an OTP code.
// For TOTP, it validates against the current time with skew tolerance.
// For HOTP, it validates against the configured counter value.
func (a *Authenticator) Authenticate(ctx context.Context, code string) error {
	if a == nil {
		return ErrNilAuthenticator
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("%w: code must not be empty", ErrInvalidCode)
	}

	if a.cfg.Type == TypeHOTP {
		return a.verify(code, a.cfg.Counter)
	}

	current, err := Counter(a.now().Unix(), a.params)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCode, err)
	}

	skew := int64(a.cfg.Skew)
	for d := -skew; d <= skew; d++ {
		c := int64(current) + d
		if c < 0 {
			continue
		}
		if a.verify(code, uint64(c)) == nil {
			return nil
		}
	}
	return ErrInvalidCode
}

// ValidateCounter validates an HOTP code and returns the new counter value.
// This method is only valid for HOTP authenticators.
// The returned counter should be stored and used for the next validation.
func (a *Authenticator) ValidateCounter(ctx context.Context, code string, counter uint64) (uint64, error) {
	if a == nil {
		return 0, ErrNilAuthenticator
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if a.cfg.Type != TypeHOTP {
		return 0, fmt.Errorf("%w: ValidateCounter is only valid for HOTP", ErrInvalidConfig)
	}

	if strings.TrimSpace(code) == "" {
		return 0, fmt.Errorf("%w: code must not be empty", ErrInvalidCode)
	}

	if err := a.verify(code, counter); err != nil {
		return 0, err
	}

	// Return incremented counter
	return counter + 1, nil
}

func (a *Authenticator) verify(code string, counter uint64) error {
	if len(code) != a.params.Digits {
		return ErrInvalidCode
	}
	want, err := HOTP(a.key, counter, a.params.Digits)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCode, err)
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(want)) != 1 {
		return ErrInvalidCode
	}
	return nil
}
