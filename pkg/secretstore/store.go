package secretstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"runtime"
)

// Store retrieves the base32 TOTP secret for an account of a service.
type Store interface {
	Get(ctx context.Context, account, service string) (string, error)
}

// StoreFunc adapts a function to the Store interface.
type StoreFunc func(ctx context.Context, account, service string) (string, error)

// Get executes the underlying function.
func (f StoreFunc) Get(ctx context.Context, account, service string) (string, error) {
	return f(ctx, account, service)
}

var (
	// ErrSecretNotFound indicates the store holds no secret for the account.
	ErrSecretNotFound = errors.New("secretstore: secret not found")
	// ErrInvalidName indicates an account or service name that is not alphanumeric.
	ErrInvalidName = errors.New("secretstore: account and service must be alphanumeric")
	// ErrUnsupportedPlatform indicates no system store exists for this OS.
	ErrUnsupportedPlatform = errors.New("secretstore: no system store for this platform")
)

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// validateNames guards names that end up as command arguments or
// environment variable names.
func validateNames(account, service string) error {
	if !namePattern.MatchString(account) {
		return fmt.Errorf("%w: account %q", ErrInvalidName, account)
	}
	if !namePattern.MatchString(service) {
		return fmt.Errorf("%w: service %q", ErrInvalidName, service)
	}
	return nil
}

// NewSystemStore returns the credential store for the host OS: the
// keychain on macOS and pass on Linux. A nil runner selects os/exec.
func NewSystemStore(runner CommandRunner) (Store, error) {
	return newPlatformStore(runtime.GOOS, runner)
}

func newPlatformStore(goos string, runner CommandRunner) (Store, error) {
	switch goos {
	case "darwin":
		return NewKeychain(runner), nil
	case "linux":
		return NewPass(runner), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

// Ensure the concrete stores satisfy the Store interface.
var (
	_ Store = (*Keychain)(nil)
	_ Store = (*Pass)(nil)
	_ Store = (*Env)(nil)
	_ Store = (*Cached)(nil)
)
