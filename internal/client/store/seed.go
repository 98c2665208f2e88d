package store

import (
	"context"
	"time"

	"credo-consent/internal/client/models"
)

// Upserter registers clients.
type Upserter interface {
	Upsert(ctx context.Context, client *models.Client) error
}

// DemoClientID is the client registered by SeedDemoClient.
const DemoClientID = "demo-client"

// SeedDemoClient registers a local development client.
func SeedDemoClient(ctx context.Context, store Upserter, now time.Time) (*models.Client, error) {
	c, err := models.NewClient(DemoClientID, "Demo Client", []string{
		"http://localhost:3000/callback",
		"http://localhost",
	}, now)
	if err != nil {
		return nil, err
	}
	c.PolicyURI = "http://localhost:3000/privacy"
	c.TosURI = "http://localhost:3000/terms"
	if err := store.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
