package otp

import "fmt"

// DefaultPeriod is the TOTP time step in seconds.
const DefaultPeriod = 30

// Params controls TOTP derivation. Fields are used exactly as given;
// start from DefaultParams to get the RFC 6238 defaults.
type Params struct {
	// Period is the time step in seconds and must be positive.
	Period int64
	// Digits is the code length, between 1 and MaxDigits.
	Digits int
	// T0 is the Unix time at which counting starts.
	T0 int64
}

// DefaultParams are the parameters used by authenticator apps:
// 30 second steps, 6 digits, counting from the Unix epoch.
var DefaultParams = Params{Period: DefaultPeriod, Digits: DefaultDigits}

// Validate reports whether the parameters can produce codes.
func (p Params) Validate() error {
	if p.Period <= 0 {
		return fmt.Errorf("%w: period must be positive, got %d", ErrInvalidStep, p.Period)
	}
	return validateDigits(p.Digits)
}

// Counter maps a Unix time to its TOTP counter, floor((unix-T0)/Period).
// Times before T0 are rejected with ErrInvalidTime.
func Counter(unix int64, p Params) (uint64, error) {
	if p.Period <= 0 {
		return 0, fmt.Errorf("%w: period must be positive, got %d", ErrInvalidStep, p.Period)
	}
	c := floorDiv(unix-p.T0, p.Period)
	if c < 0 {
		return 0, fmt.Errorf("%w: time %d is before t0 %d", ErrInvalidTime, unix, p.T0)
	}
	return uint64(c), nil
}

// TOTP computes the RFC 6238 code for secret at the given Unix time.
func TOTP(secret []byte, unix int64, p Params) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	c, err := Counter(unix, p)
	if err != nil {
		return "", err
	}
	return HOTP(secret, c, p.Digits)
}

// remaining returns the seconds left in the window containing unix.
func remaining(unix int64, p Params) int64 {
	return p.Period - floorMod(unix-p.T0, p.Period)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}
