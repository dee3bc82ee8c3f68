package secretstore

import "context"

// Keychain reads generic passwords from the macOS login keychain using
// the security(1) tool.
type Keychain struct {
	runner CommandRunner
}

// NewKeychain returns a keychain store. A nil runner selects os/exec.
func NewKeychain(runner CommandRunner) *Keychain {
	if runner == nil {
		runner = systemRunner
	}
	return &Keychain{runner: runner}
}

// Get runs `security find-generic-password -a account -s service -w`.
func (k *Keychain) Get(ctx context.Context, account, service string) (string, error) {
	if err := validateNames(account, service); err != nil {
		return "", err
	}
	return lookup(ctx, k.runner, "security", "find-generic-password", "-a", account, "-s", service, "-w")
}
