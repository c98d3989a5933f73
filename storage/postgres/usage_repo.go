package postgres

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UsageRepo records model-call accounting. Best effort: a failed insert is
// logged and swallowed, never failing the operation that produced it.
type UsageRepo struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewUsageRepo(db *gorm.DB, log *zap.Logger) *UsageRepo {
	return &UsageRepo{db: db, log: log}
}

func (r *UsageRepo) Record(ctx context.Context, tenantID, userID, operation, modelID string, inputTokens, outputTokens int) {
	rec := &UsageRecord{
		TenantID:     tenantID,
		UserID:       userID,
		Operation:    operation,
		ModelID:      modelID,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		r.log.Warn("usage record failed",
			zap.String("tenant_id", tenantID),
			zap.String("operation", operation),
			zap.Error(err))
	}
}
