package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"cloud.google.com/go/firestore"
)

// InitFirestore opens the default database. The client picks up
// FIRESTORE_EMULATOR_HOST on its own, we only log it.
func InitFirestore(ctx context.Context, log *slog.Logger, projectID string) (*firestore.Client, error) {
	if host := os.Getenv("FIRESTORE_EMULATOR_HOST"); host != "" {
		log.Info("using firestore emulator", "host", host)
	}
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return client, nil
}
