package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jeremyhahn/go-twofa/pkg/otp"
	"github.com/jeremyhahn/go-twofa/pkg/secretstore"
	"github.com/rs/zerolog"
)

// BackendName identifies a registered secret store.
type BackendName string

const (
	BackendKeychain BackendName = "keychain"
	BackendPass     BackendName = "pass"
	BackendEnv      BackendName = "env"
	BackendSystem   BackendName = "system"
)

// Backend represents a named secret store.
type Backend struct {
	Name  BackendName
	Store secretstore.Store
}

// Config contains the ordered list of stores the service should consult
// and the parameters used to derive codes.
type Config struct {
	Backends []Backend
	// Params defaults to otp.DefaultParams when zero.
	Params otp.Params
	// Logger receives debug records for failed lookups. Nil disables logging.
	Logger *zerolog.Logger
}

// Service looks up secrets across configured stores and derives codes.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	backends []Backend
	params   otp.Params
	logger   zerolog.Logger
	now      func() time.Time
}

var (
	// ErrNoBackends indicates the service was initialised without any stores.
	ErrNoBackends = errors.New("api: no secret stores configured")
	// ErrBackendNotFound indicates a requested store name does not exist.
	ErrBackendNotFound = errors.New("api: requested secret store not configured")
	// ErrMissingAccount indicates the request lacks an account or service.
	ErrMissingAccount = errors.New("api: account and service are required")
)

// NewService builds a Service from the supplied configuration.
func NewService(cfg Config) (*Service, error) {
	if len(cfg.Backends) == 0 {
		return nil, ErrNoBackends
	}

	backends := make([]Backend, 0, len(cfg.Backends))
	seen := map[BackendName]struct{}{}
	for i, b := range cfg.Backends {
		if b.Store == nil {
			return nil, fmt.Errorf("api: backend at index %d has no store", i)
		}
		if _, ok := seen[b.Name]; ok {
			return nil, fmt.Errorf("api: duplicate backend name %q", b.Name)
		}
		seen[b.Name] = struct{}{}
		backends = append(backends, b)
	}

	params := cfg.Params
	if params == (otp.Params{}) {
		params = otp.DefaultParams
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Service{
		backends: backends,
		params:   params,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// CodesRequest names the secret to use and how many codes to produce.
type CodesRequest struct {
	// Backend restricts the lookup to one store. Empty tries all in order.
	Backend BackendName
	Account string
	Service string
	// Count is the number of windows, starting at the current one.
	Count int
}

// Codes returns Count codes for the requested secret, starting at the
// current window. The clock is read once per call.
func (s *Service) Codes(ctx context.Context, req CodesRequest) (*otp.Batch, error) {
	if req.Count < 1 {
		return nil, fmt.Errorf("%w: count must be at least 1, got %d", otp.ErrInvalidCount, req.Count)
	}

	key, err := s.secret(ctx, req)
	if err != nil {
		return nil, err
	}
	defer clear(key)

	return otp.GenerateBatchAt(key, s.now().Unix(), req.Count, s.params)
}

// Check verifies that the requested secret exists and decodes. Count is
// ignored.
func (s *Service) Check(ctx context.Context, req CodesRequest) error {
	key, err := s.secret(ctx, req)
	if err != nil {
		return err
	}
	clear(key)
	return nil
}

// secret fetches and decodes the secret for req.
func (s *Service) secret(ctx context.Context, req CodesRequest) ([]byte, error) {
	if s == nil || len(s.backends) == 0 {
		return nil, ErrNoBackends
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if req.Account == "" || req.Service == "" {
		return nil, ErrMissingAccount
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	encoded, err := s.lookup(ctx, req)
	if err != nil {
		return nil, err
	}

	return otp.DecodeSecret(encoded)
}

// lookup tries the targeted stores in order and returns the first secret.
func (s *Service) lookup(ctx context.Context, req CodesRequest) (string, error) {
	var targets []Backend
	if req.Backend != "" {
		for _, b := range s.backends {
			if b.Name == req.Backend {
				targets = append(targets, b)
				break
			}
		}
		if len(targets) == 0 {
			return "", ErrBackendNotFound
		}
	} else {
		targets = s.backends
	}

	var errs []error
	for _, b := range targets {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		secret, err := b.Store.Get(ctx, req.Account, req.Service)
		if err == nil {
			return secret, nil
		}
		s.logger.Debug().
			Str("backend", string(b.Name)).
			Str("account", req.Account).
			Str("service", req.Service).
			Err(err).
			Msg("secret lookup failed")
		errs = append(errs, fmt.Errorf("%s: %w", b.Name, err))
	}

	return "", errors.Join(errs...)
}
