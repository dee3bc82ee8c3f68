package otp

import (
	"encoding/hex"
	"errors"
	"math"
	"testing"

	pqotp "github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

var rfcKey = []byte("12345678901234567890")

// TestHOTPRFC4226 checks the Appendix D test values.
func TestHOTPRFC4226(t *testing.T) {
	want := []string{
		"755224", "287082", "359152", "969429", "338314",
		"254676", "287922", "162583", "399871", "520489",
	}

	for counter, expected := range want {
		got, err := HOTP(rfcKey, uint64(counter), 6)
		if err != nil {
			t.Fatalf("counter %d: unexpected error: %v", counter, err)
		}
		if got != expected {
			t.Errorf("counter %d: got %s, want %s", counter, got, expected)
		}
	}
}

// TestTruncate uses the worked example from RFC 4226 section 5.4.
func TestTruncate(t *testing.T) {
	sum, err := hex.DecodeString("1f8698690e02ca16618550ef7f19da8e945b555a")
	if err != nil {
		t.Fatal(err)
	}
	got := truncate(sum)
	if got != 0x50ef7f19 {
		t.Fatalf("truncate = %#x, want 0x50ef7f19", got)
	}
	if code := format(got, 6); code != "872921" {
		t.Errorf("format = %s, want 872921", code)
	}
}

func TestTruncateClearsSignBit(t *testing.T) {
	sum := make([]byte, 20)
	for i := range sum {
		sum[i] = 0xff
	}
	sum[19] = 0xf0 // offset 0
	if got := truncate(sum); got != 0x7fffffff {
		t.Errorf("truncate = %#x, want 0x7fffffff", got)
	}
}

func TestHOTPCodeShape(t *testing.T) {
	for digits := 1; digits <= MaxDigits; digits++ {
		for counter := uint64(0); counter < 50; counter++ {
			code, err := HOTP(rfcKey, counter, digits)
			if err != nil {
				t.Fatalf("digits %d counter %d: unexpected error: %v", digits, counter, err)
			}
			if len(code) != digits {
				t.Fatalf("digits %d counter %d: got %q with length %d", digits, counter, code, len(code))
			}
			for _, r := range code {
				if r < '0' || r > '9' {
					t.Fatalf("digits %d counter %d: non-digit in %q", digits, counter, code)
				}
			}
		}
	}
}

func TestHOTPTenDigits(t *testing.T) {
	// Counter 0 truncates to 0x4c93cf18 = 1284755224.
	got, err := HOTP(rfcKey, 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1284755224" {
		t.Errorf("got %s, want 1284755224", got)
	}
}

func TestHOTPCounterBoundaries(t *testing.T) {
	secret := EncodeSecret(rfcKey)
	counters := []uint64{
		0,
		1,
		1 << 32,
		1<<32 + 1,
		math.MaxInt64,
		1 << 63,
		1<<63 + 1,
		math.MaxUint64,
	}

	for _, counter := range counters {
		for _, digits := range []pqotp.Digits{pqotp.DigitsSix, pqotp.DigitsEight} {
			want, err := hotp.GenerateCodeCustom(secret, counter, hotp.ValidateOpts{
				Digits:    digits,
				Algorithm: pqotp.AlgorithmSHA1,
			})
			if err != nil {
				t.Fatalf("reference: %v", err)
			}
			got, err := HOTP(rfcKey, counter, digits.Length())
			if err != nil {
				t.Fatalf("counter %d: unexpected error: %v", counter, err)
			}
			if got != want {
				t.Errorf("counter %d digits %d: got %s, want %s", counter, digits.Length(), got, want)
			}
		}
	}
}

func TestHOTPSignedBoundaryDiffers(t *testing.T) {
	// A signed encoding would fold these counters onto each other's neighbours.
	below, err := HOTP(rfcKey, math.MaxInt64, 8)
	if err != nil {
		t.Fatal(err)
	}
	at, err := HOTP(rfcKey, 1<<63, 8)
	if err != nil {
		t.Fatal(err)
	}
	if below == at {
		t.Errorf("codes at 2^63-1 and 2^63 should differ, both %s", at)
	}
}

func TestHOTPInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		secret  []byte
		digits  int
		wantErr error
	}{
		{"nil secret", nil, 6, ErrInvalidSecret},
		{"empty secret", []byte{}, 6, ErrInvalidSecret},
		{"zero digits", rfcKey, 0, ErrInvalidDigits},
		{"negative digits", rfcKey, -6, ErrInvalidDigits},
		{"eleven digits", rfcKey, 11, ErrInvalidDigits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := HOTP(tt.secret, 0, tt.digits)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if code != "" {
				t.Errorf("expected empty code, got %q", code)
			}
		})
	}
}

func TestHOTPShortAndLongKeys(t *testing.T) {
	secrets := [][]byte{
		{0x00},
		[]byte("k"),
		make([]byte, 64),
		make([]byte, 200), // longer than the SHA-1 block, hashed by HMAC
	}
	for _, key := range secrets {
		want, err := hotp.GenerateCodeCustom(EncodeSecret(key), 7, hotp.ValidateOpts{
			Digits:    pqotp.DigitsSix,
			Algorithm: pqotp.AlgorithmSHA1,
		})
		if err != nil {
			t.Fatalf("reference: %v", err)
		}
		got, err := HOTP(key, 7, 6)
		if err != nil {
			t.Fatalf("key len %d: unexpected error: %v", len(key), err)
		}
		if got != want {
			t.Errorf("key len %d: got %s, want %s", len(key), got, want)
		}
	}
}
