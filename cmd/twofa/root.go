package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jeremyhahn/go-twofa/internal/config"
	"github.com/jeremyhahn/go-twofa/internal/display"
	"github.com/jeremyhahn/go-twofa/internal/watch"
	"github.com/jeremyhahn/go-twofa/pkg/api"
	"github.com/jeremyhahn/go-twofa/pkg/otp"
	"github.com/jeremyhahn/go-twofa/pkg/secretstore"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()
	log := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).With().Timestamp().Logger()

	cmd := &cobra.Command{
		Use:   "twofa",
		Short: "Print TOTP codes for a secret held in a local credential store",
		Long: `twofa reads a base32 TOTP secret from the macOS keychain, pass, or a
TWOFA_SECRET_<SERVICE>_<ACCOUNT> environment variable and prints the current
code, optionally followed by upcoming ones, with the seconds left in the
current window. Codes are reprinted every interval until interrupted.

Every flag can also be set as TWOFA_<FLAG>, e.g. TWOFA_ACCOUNT or TWOFA_CACHE_TTL.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				log.Error().Err(err).Msg("invalid arguments")
				return err
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				log.Error().Err(err).Msg("invalid configuration")
				return err
			}
			lvl, _ := cfg.Level()
			log := log.Level(lvl)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := run(ctx, cfg, stdout, &log, nil); err != nil {
				log.Error().Err(err).
					Str("account", cfg.Account).
					Str("service", cfg.Service).
					Msg("twofa failed")
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringP(config.KeyAccount, "a", "", "account name")
	flags.StringP(config.KeyService, "s", "", "service name")
	flags.IntP(config.KeyNum, "n", 1, "number of codes to print (current plus upcoming)")
	flags.String(config.KeyStore, config.StoreAuto, "credential store: auto, keychain, pass or env")
	flags.Duration(config.KeyInterval, time.Second, "reprint interval")
	flags.Bool(config.KeyOnce, false, "print once and exit")
	flags.Duration(config.KeyCacheTTL, 30*time.Second, "keep the secret in memory this long, 0 to disable")
	flags.String(config.KeyLogLevel, "warn", "log level: debug, info, warn, error")
	flags.String(config.KeyEnvFile, ".env", "dotenv file loaded before reading the environment")
	_ = v.BindPFlags(flags)

	// Parse errors never reach RunE, and errors are silenced for cobra.
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		log.Error().Err(err).Msg("invalid flags")
		return err
	})

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd
}

// loadConfig resolves settings, loads the dotenv file they name, then
// resolves again so values from that file apply.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	if err := config.LoadEnvFile(cfg.EnvFile); err != nil {
		return nil, err
	}
	return config.Load(v)
}

// run checks that the secret exists, then prints batches until ctx is done
// or a batch fails. Cancellation is a clean exit, even mid-lookup.
func run(ctx context.Context, cfg *config.Config, stdout io.Writer, log *zerolog.Logger, runner secretstore.CommandRunner) error {
	err := watchCodes(ctx, cfg, stdout, log, runner)
	if err != nil && ctx.Err() != nil {
		log.Debug().Err(err).Msg("interrupted")
		return nil
	}
	return err
}

func watchCodes(ctx context.Context, cfg *config.Config, stdout io.Writer, log *zerolog.Logger, runner secretstore.CommandRunner) error {
	backends, err := buildBackends(cfg, runner)
	if err != nil {
		return err
	}

	svc, err := api.NewService(api.Config{
		Backends: backends,
		Params:   otp.DefaultParams,
		Logger:   log,
	})
	if err != nil {
		return err
	}

	req := api.CodesRequest{
		Account: cfg.Account,
		Service: cfg.Service,
		Count:   cfg.Num,
	}
	if err := svc.Check(ctx, req); err != nil {
		return err
	}

	printer := newPrinter(stdout)
	defer printer.Close()

	printBatch := func(ctx context.Context) error {
		batch, err := svc.Codes(ctx, req)
		if err != nil {
			return err
		}
		return printer.Print(batch)
	}

	if cfg.Once {
		return printBatch(ctx)
	}

	log.Debug().Dur("interval", cfg.Interval).Int("count", cfg.Num).Msg("watching")
	return watch.Run(ctx, cfg.Interval, printBatch)
}

func newPrinter(w io.Writer) *display.Printer {
	if f, ok := w.(*os.File); ok {
		return display.NewForFile(f)
	}
	return display.New(w, false)
}

// buildBackends maps the store setting onto ordered secret stores.
func buildBackends(cfg *config.Config, runner secretstore.CommandRunner) ([]api.Backend, error) {
	var backends []api.Backend
	add := func(name api.BackendName, store secretstore.Store) {
		if cfg.CacheTTL > 0 {
			store = secretstore.NewCached(store, cfg.CacheTTL)
		}
		backends = append(backends, api.Backend{Name: name, Store: store})
	}

	switch cfg.Store {
	case config.StoreKeychain:
		add(api.BackendKeychain, secretstore.NewKeychain(runner))
	case config.StorePass:
		add(api.BackendPass, secretstore.NewPass(runner))
	case config.StoreEnv:
		add(api.BackendEnv, secretstore.NewEnv("", nil))
	case config.StoreAuto:
		if system, err := secretstore.NewSystemStore(runner); err == nil {
			add(api.BackendSystem, system)
		}
		add(api.BackendEnv, secretstore.NewEnv("", nil))
	default:
		return nil, fmt.Errorf("%w: unknown store %q", config.ErrInvalidConfig, cfg.Store)
	}
	return backends, nil
}
