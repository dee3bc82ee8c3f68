package secretstore

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// DefaultEnvPrefix prefixes the variables read by Env.
const DefaultEnvPrefix = "TWOFA_SECRET_"

// Env reads secrets from environment variables named
// <prefix><SERVICE>_<ACCOUNT>, upper-cased.
type Env struct {
	prefix string
	lookup func(string) (string, bool)
}

// NewEnv returns an environment store. An empty prefix selects
// DefaultEnvPrefix and a nil lookup selects os.LookupEnv.
func NewEnv(prefix string, lookup func(string) (string, bool)) *Env {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &Env{prefix: prefix, lookup: lookup}
}

// Key returns the variable name consulted for account and service.
func (e *Env) Key(account, service string) string {
	return e.prefix + strings.ToUpper(service) + "_" + strings.ToUpper(account)
}

// Get returns the trimmed value of the variable for account and service.
func (e *Env) Get(ctx context.Context, account, service string) (string, error) {
	if err := validateNames(account, service); err != nil {
		return "", err
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}

	key := e.Key(account, service)
	v, ok := e.lookup(key)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s is not set", ErrSecretNotFound, key)
	}
	return v, nil
}
