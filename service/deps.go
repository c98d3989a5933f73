package service

import (
	"context"

	"lexstyle/storage/postgres"
)

// Store dependencies the services consume; satisfied by the postgres repos.

type DocLister interface {
	ListByTenant(ctx context.Context, tenantID string) ([]postgres.TrainingDocument, error)
}

type ProfileStore interface {
	GetActive(ctx context.Context, tenantID string) (*postgres.StyleProfile, error)
	Replace(ctx context.Context, tenantID string, profile *postgres.StyleProfile) error
}

type ClientGetter interface {
	GetByID(ctx context.Context, tenantID, clientID string) (*postgres.Client, error)
}

type CategoryGetter interface {
	GetByID(ctx context.Context, tenantID, categoryID string) (*postgres.Category, error)
}

// UsageLogger is best-effort accounting; implementations swallow failures.
type UsageLogger interface {
	Record(ctx context.Context, tenantID, userID, operation, modelID string, inputTokens, outputTokens int)
}
