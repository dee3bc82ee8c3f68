package secretstore

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner executes an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// CommandRunnerFunc adapts a function to the CommandRunner interface.
type CommandRunnerFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Run executes the underlying function.
func (f CommandRunnerFunc) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return f(ctx, name, args...)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

var systemRunner CommandRunner = execRunner{}

// lookup runs a credential tool and returns its trimmed output. A non-zero
// exit or empty output means the secret is absent. Tool output, including
// stderr, never reaches the returned error.
func lookup(ctx context.Context, runner CommandRunner, name string, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	out, err := runner.Run(ctx, name, args...)
	defer clear(out)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%w: %s exited with status %d", ErrSecretNotFound, name, exitErr.ExitCode())
		}
		// exec errors name the binary and cause only, never its output.
		return "", fmt.Errorf("secretstore: run %s: %w", name, err)
	}

	secret := strings.TrimSpace(string(out))
	if secret == "" {
		return "", fmt.Errorf("%w: %s returned no secret", ErrSecretNotFound, name)
	}
	return secret, nil
}
