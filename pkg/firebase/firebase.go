package firebase

import (
	"context"
	"errors"
	"fmt"
	"os"

	seeddomain "findmy-backend/internal/seed/domain"
	"findmy-backend/pkg/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Environment variables the Google client libraries read on their own.
const (
	AuthEmulatorHostEnv      = "FIREBASE_AUTH_EMULATOR_HOST"
	FirestoreEmulatorHostEnv = "FIRESTORE_EMULATOR_HOST"
)

// scopes requested for application default credentials.
var scopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/datastore",
	"https://www.googleapis.com/auth/firebase",
	"https://www.googleapis.com/auth/identitytoolkit",
	"https://www.googleapis.com/auth/userinfo.email",
}

// CredentialsLoader resolves the credentials used against a live project.
type CredentialsLoader func(ctx context.Context, credentialsFile string) (option.ClientOption, error)

// DefaultCredentialsLoader uses credentialsFile when set, otherwise application
// default credentials.
func DefaultCredentialsLoader(ctx context.Context, credentialsFile string) (option.ClientOption, error) {
	if credentialsFile != "" {
		if _, err := os.Stat(credentialsFile); err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		return option.WithCredentialsFile(credentialsFile), nil
	}

	creds, err := google.FindDefaultCredentials(ctx, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to find default credentials: %w", err)
	}
	return option.WithCredentials(creds), nil
}

// Clients holds the identity service and document store clients
type Clients struct {
	Auth      *auth.Client
	Firestore *firestore.Client
}

// Close releases the Firestore connection
func (c *Clients) Close() error {
	if c == nil || c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}

// Options are the client options derived from a validated config
type Options struct {
	App       []option.ClientOption
	Firestore []option.ClientOption
}

// ClientOptions derives client options from cfg. In emulator mode no
// credentials are loaded and loadCredentials is never called.
func ClientOptions(ctx context.Context, cfg *config.Config, loadCredentials CredentialsLoader) (*Options, error) {
	if cfg.UseEmulator {
		return &Options{
			Firestore: []option.ClientOption{
				option.WithEndpoint(cfg.FirestoreEmulatorHost),
				option.WithoutAuthentication(),
				option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
				option.WithGRPCDialOption(grpc.WithPerRPCCredentials(emulatorCredentials{})),
			},
		}, nil
	}

	if loadCredentials == nil {
		return nil, &seeddomain.ConfigurationError{Field: "credentials", Err: errors.New("no credentials loader")}
	}
	credOpt, err := loadCredentials(ctx, cfg.CredentialsFile)
	if err != nil {
		return nil, &seeddomain.ConfigurationError{Field: "credentials", Err: err}
	}
	return &Options{
		App:       []option.ClientOption{credOpt},
		Firestore: []option.ClientOption{credOpt},
	}, nil
}

// NewClients initializes the Firebase app, its auth client, and a Firestore
// client targeting either the live project or the local emulators.
func NewClients(ctx context.Context, cfg *config.Config, loadCredentials CredentialsLoader, logger zerolog.Logger) (*Clients, error) {
	opts, err := ClientOptions(ctx, cfg, loadCredentials)
	if err != nil {
		return nil, err
	}

	// The admin SDK only discovers the auth emulator through the environment,
	// so the config is mirrored there and stale shell values are cleared.
	if err := syncEmulatorEnv(cfg); err != nil {
		return nil, &seeddomain.ConfigurationError{Field: "emulator", Err: err}
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts.App...)
	if err != nil {
		return nil, &seeddomain.ConfigurationError{Err: fmt.Errorf("failed to initialize Firebase app: %w", err)}
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, &seeddomain.ConfigurationError{Err: fmt.Errorf("failed to get auth client: %w", err)}
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.ProjectID, opts.Firestore...)
	if err != nil {
		return nil, &seeddomain.ConfigurationError{Err: fmt.Errorf("failed to get firestore client: %w", err)}
	}

	event := logger.Info().Str("project_id", cfg.ProjectID).Bool("emulator", cfg.UseEmulator)
	if cfg.UseEmulator {
		event = event.
			Str("firestore_host", cfg.FirestoreEmulatorHost).
			Str("auth_host", cfg.AuthEmulatorHost)
	}
	event.Msg("firebase clients initialized")

	return &Clients{
		Auth:      authClient,
		Firestore: firestoreClient,
	}, nil
}

func syncEmulatorEnv(cfg *config.Config) error {
	// Firestore gets its endpoint from options, never from the environment
	if err := os.Unsetenv(FirestoreEmulatorHostEnv); err != nil {
		return err
	}
	if cfg.UseEmulator {
		return os.Setenv(AuthEmulatorHostEnv, cfg.AuthEmulatorHost)
	}
	return os.Unsetenv(AuthEmulatorHostEnv)
}

// emulatorCredentials authenticates to the Firestore emulator as the owner,
// which bypasses security rules.
type emulatorCredentials struct{}

func (emulatorCredentials) GetRequestMetadata(context.Context, ...string) (map[string]string, error) {
	return map[string]string{"authorization": "Bearer owner"}, nil
}

func (emulatorCredentials) RequireTransportSecurity() bool {
	return false
}
