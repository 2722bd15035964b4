// internal/infrastructure/firestore/client.go
package firestoreinfra

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"github.com/your-org/coffeebean-backend/internal/config"
)

// Client wraps the Firestore client together with the project it is
// bound to.
type Client struct {
	*firestore.Client
	ProjectID string
}

// NewClient creates a new Firestore client. When no credentials file is
// configured, Application Default Credentials are used.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	var (
		client *firestore.Client
		err    error
	)
	if cfg.Firebase.CredentialsFile != "" {
		client, err = firestore.NewClient(ctx, cfg.Firebase.ProjectID, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
	} else {
		client, err = firestore.NewClient(ctx, cfg.Firebase.ProjectID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return &Client{Client: client, ProjectID: cfg.Firebase.ProjectID}, nil
}

// HealthCheck verifies the Firestore connection. Firestore has no ping
// API, so a cheap listing is attempted instead.
func (c *Client) HealthCheck(ctx context.Context) error {
	if c == nil || c.Client == nil {
		return fmt.Errorf("firestore client is nil")
	}
	if _, err := c.Collections(ctx).GetAll(); err != nil {
		return fmt.Errorf("firestore health check failed: %w", err)
	}
	return nil
}

// Close closes the underlying Firestore client.
func (c *Client) Close() error {
	if c == nil || c.Client == nil {
		return nil
	}
	return c.Client.Close()
}
