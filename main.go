package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	authRepo "findmy-backend/internal/auth/repository"
	deviceRepo "findmy-backend/internal/device/repository"
	seeddomain "findmy-backend/internal/seed/domain"
	seedUsecase "findmy-backend/internal/seed/usecase"
	"findmy-backend/pkg/config"
	"findmy-backend/pkg/firebase"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	cmd := &command{
		loadConfig: config.Load,
		connect:    connectFirebase,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
	code := cmd.run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// backend is the pair of stores the seeder writes to
type backend struct {
	identities authRepo.IdentityRepository
	devices    deviceRepo.DeviceRepository
	close      func() error
}

type connectFunc func(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*backend, error)

// connectFirebase wires the repositories to Firebase Authentication and Firestore
func connectFirebase(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*backend, error) {
	clients, err := firebase.NewClients(ctx, cfg, firebase.DefaultCredentialsLoader, logger)
	if err != nil {
		return nil, err
	}
	return &backend{
		identities: authRepo.NewFirebaseIdentityRepository(clients.Auth),
		devices:    deviceRepo.NewFirestoreDeviceRepository(clients.Firestore),
		close:      clients.Close,
	}, nil
}

type command struct {
	loadConfig func() (*config.Config, error)
	connect    connectFunc
	stdout     io.Writer
	stderr     io.Writer
}

// run returns the process exit status: 0 on success, 2 on bad flags, 1 otherwise.
func (c *command) run(ctx context.Context, args []string) int {
	cfg, err := c.loadConfig()
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return 1
	}

	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(c.stderr, "Error: unexpected arguments: %v\n", fs.Args())
		return 2
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return 1
	}

	logger := newLogger(cfg, c.stdout)
	if err := c.seed(ctx, cfg, logger); err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (c *command) seed(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	b, err := c.connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if b.close == nil {
			return
		}
		if err := b.close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close clients")
		}
	}()

	seeder := seedUsecase.NewSeedUsecase(seedUsecase.Config{
		Identities: b.identities,
		Devices:    b.devices,
		Logger:     logger,
	})

	result, err := seeder.Seed(ctx, seedUsecase.SeedRequest{
		Email:    cfg.SeedEmail,
		Password: cfg.SeedPassword,
		Devices:  seeddomain.DefaultDevices(),
	})
	if err != nil {
		return err
	}

	if cfg.Verify {
		if err := seeder.Verify(ctx, result.IdentityID, result.DeviceIDs); err != nil {
			return err
		}
	}

	logger.Info().
		Str("uid", result.IdentityID).
		Bool("user_created", result.IdentityCreated).
		Strs("devices", result.DeviceIDs).
		Msg("seeding complete")
	return nil
}

func newLogger(cfg *config.Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	w := out
	if cfg.LogFormat != config.LogFormatJSON {
		w = zerolog.ConsoleWriter{Out: out, NoColor: true}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()
}
