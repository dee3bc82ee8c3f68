// Package otp provides TOTP (RFC 6238) and HOTP (RFC 4226) code generation.
//
// HOTP (HMAC-based One-Time Password) derives a code from a shared secret and
// a 64-bit counter using HMAC-SHA1 and dynamic truncation.
//
// TOTP (Time-based One-Time Password) is HOTP with the counter derived from
// the current time: floor((now - T0) / Period). With the defaults (30 second
// period, 6 digits, T0 = 0) it produces the codes shown by authenticator
// apps such as Google Authenticator.
//
// # Secrets
//
// Secrets are exchanged as unpadded RFC 4648 base32 text. DecodeSecret
// accepts lowercase input and rejects padding, whitespace and lengths that
// cannot encode whole bytes:
//
//	key, err := otp.DecodeSecret("GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Codes
//
// The package-level functions are pure; they take the time or counter
// explicitly:
//
//	code, err := otp.HOTP(key, 0, 6) // "755224"
//
//	// "94287082"
//	code, err = otp.TOTP(key, 59, otp.Params{Period: 30, Digits: 8})
//
// GenerateBatch returns the current code plus upcoming ones, with the seconds
// left in the current window. The clock is read once per batch so codes
// never straddle a window boundary:
//
//	batch, err := otp.GenerateBatch("JBSWY3DPEHPK3PXP", 3)
//	fmt.Println(batch) // "123456 654321 112233 17s"
//
// # Authenticator
//
// Authenticator wraps a configured secret and adds validation with clock
// skew tolerance:
//
//	auth, err := otp.NewAuthenticator(otp.Config{
//	    Type:   otp.TypeTOTP,
//	    Secret: "JBSWY3DPEHPK3PXP",
//	    Skew:   1,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = auth.Authenticate(ctx, "123456")
//
// # Errors
//
// Invalid input is reported with wrapped sentinel errors (ErrDecode,
// ErrInvalidSecret, ErrInvalidTime, ErrInvalidStep, ErrInvalidDigits,
// ErrInvalidCount). Error messages never contain secret material. Nothing
// is clamped: an out-of-range parameter is an error, not a different code.
//
// # Thread Safety
//
// All functions are safe for concurrent use, and so is Authenticator.
package otp
