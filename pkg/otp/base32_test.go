package otp

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
)

// rfcSecret is the RFC 4226/6238 test key "12345678901234567890".
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

func TestDecodeSecret(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []byte
	}{
		{"rfc test key", rfcSecret, []byte("12345678901234567890")},
		{"lowercase accepted", strings.ToLower(rfcSecret), []byte("12345678901234567890")},
		{"mixed case", "JbSwY3dPeHpK3pXp", []byte("Hello!\xde\xad\xbe\xef")},
		{"partial quantum of 2", "MY", []byte("f")},
		{"partial quantum of 4", "MZXQ", []byte("fo")},
		{"partial quantum of 5", "MZXW6", []byte("foo")},
		{"partial quantum of 7", "MZXW6YQ", []byte("foob")},
		{"empty", "", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeSecret(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("DecodeSecret(%q) = %x, want %x", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeSecretMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"digit one", "GEZDGNB1"},
		{"digit zero", "0EZDGNBV"},
		{"digit eight", "GEZDGNB8"},
		{"padding", "MY======"},
		{"padding in middle", "MZ=XW6YQ"},
		{"length mod 8 is 1", "GEZDGNBVG"},
		{"length mod 8 is 3", "GEZ"},
		{"length mod 8 is 6", "GEZDGN"},
		{"single character", "A"},
		{"space", "JBSW Y3DP"},
		{"line break", "JBSWY3DP\nEHPK3PXP"},
		{"carriage return", "JBSWY3DP\rEHPK3PXP"},
		{"symbols", "invalid@secret!"},
		{"long s folds to S", "ſBSWY3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeSecret(tt.input)
			if err == nil {
				t.Fatalf("expected error, got %x", got)
			}
			if !errors.Is(err, ErrDecode) {
				t.Errorf("expected ErrDecode, got %v", err)
			}
			if got != nil {
				t.Errorf("expected nil bytes on error, got %x", got)
			}
		})
	}
}

func TestDecodeSecretErrorOmitsInput(t *testing.T) {
	input := "SECRETKEY1ABCDEF"
	_, err := DecodeSecret(input)
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(err.Error(), input) || strings.Contains(err.Error(), "SECRETKEY") {
		t.Errorf("error leaks secret text: %v", err)
	}
}

func TestBase32RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(4226, 6238))
	for n := 1; n <= 64; n++ {
		secret := make([]byte, n)
		for i := range secret {
			secret[i] = byte(rng.UintN(256))
		}

		encoded := EncodeSecret(secret)
		if strings.Contains(encoded, "=") {
			t.Fatalf("encoded secret contains padding: %s", encoded)
		}

		got, err := DecodeSecret(encoded)
		if err != nil {
			t.Fatalf("len %d: unexpected error: %v", n, err)
		}
		if !bytes.Equal(got, secret) {
			t.Fatalf("len %d: round trip mismatch: got %x, want %x", n, got, secret)
		}
	}
}

func TestEncodeSecretCanonical(t *testing.T) {
	if got := EncodeSecret([]byte("12345678901234567890")); got != rfcSecret {
		t.Errorf("EncodeSecret = %s, want %s", got, rfcSecret)
	}
}
