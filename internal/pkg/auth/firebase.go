// internal/pkg/auth/firebase.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/your-org/coffeebean-backend/internal/config"
)

// ErrUnauthenticated is returned when an operation requires a signed-in
// user and none is resolved. Checked before any store call is attempted.
var ErrUnauthenticated = errors.New("user not authenticated")

// Verifier resolves the current user from a bearer ID token. Satisfied by
// the Firebase Auth client; faked in tests.
type Verifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// NewFirebaseAuth initializes the Firebase Auth client used to verify the
// mobile app's ID tokens. An empty credentials file falls back to
// Application Default Credentials.
func NewFirebaseAuth(ctx context.Context, cfg *config.Config) (*fbauth.Client, error) {
	var opts []option.ClientOption
	if cfg.Firebase.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}

	return client, nil
}

// ExtractTokenFromHeader extracts the token from an Authorization header
// in "Bearer <token>" format. Returns "" if the format is invalid.
func ExtractTokenFromHeader(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
