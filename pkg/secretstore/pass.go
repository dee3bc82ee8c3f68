package secretstore

import "context"

// Pass reads secrets from the standard unix password manager, pass(1).
// Entries are expected at service/account.
type Pass struct {
	runner CommandRunner
}

// NewPass returns a pass store. A nil runner selects os/exec.
func NewPass(runner CommandRunner) *Pass {
	if runner == nil {
		runner = systemRunner
	}
	return &Pass{runner: runner}
}

// Get runs `pass service/account`.
func (p *Pass) Get(ctx context.Context, account, service string) (string, error) {
	if err := validateNames(account, service); err != nil {
		return "", err
	}
	return lookup(ctx, p.runner, "pass", service+"/"+account)
}
