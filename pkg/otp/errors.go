package otp

import "errors"

// Common errors returned by the OTP package. Error values never carry
// secret material; wrapped messages name parameters and offsets only.
var (
	// ErrDecode indicates the secret is not valid unpadded base32.
	ErrDecode = errors.New("otp: invalid base32 secret")
	// ErrInvalidSecret indicates the decoded secret cannot be used as an HMAC key.
	ErrInvalidSecret = errors.New("otp: invalid secret")
	// ErrInvalidTime indicates the time is before the epoch offset.
	ErrInvalidTime = errors.New("otp: invalid time")
	// ErrInvalidCount indicates a batch size smaller than one.
	ErrInvalidCount = errors.New("otp: invalid count")
	// ErrInvalidStep indicates a non-positive time step.
	ErrInvalidStep = errors.New("otp: invalid time step")
	// ErrInvalidDigits indicates a code length outside [1, MaxDigits].
	ErrInvalidDigits = errors.New("otp: invalid digits")
	// ErrInvalidCode indicates the provided OTP code is invalid.
	ErrInvalidCode = errors.New("otp: invalid code")
	// ErrInvalidConfig indicates the configuration is invalid.
	ErrInvalidConfig = errors.New("otp: invalid configuration")
	// ErrNilAuthenticator indicates a nil authenticator was used.
	ErrNilAuthenticator = errors.New("otp: authenticator is nil")
)
