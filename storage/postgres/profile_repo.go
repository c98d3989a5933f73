package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// StyleProfileRepo owns the one-active-profile-per-tenant invariant.
type StyleProfileRepo struct {
	db *gorm.DB
}

func NewStyleProfileRepo(db *gorm.DB) *StyleProfileRepo {
	return &StyleProfileRepo{db: db}
}

// GetActive returns the tenant's active profile, or nil when none exists.
func (r *StyleProfileRepo) GetActive(ctx context.Context, tenantID string) (*StyleProfile, error) {
	var profile StyleProfile
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Replace swaps the active profile in one transaction: deactivate the current
// row, insert the new one active. Concurrent readers see either the old or
// the new profile, never a partial write. History rows are kept inactive.
func (r *StyleProfileRepo) Replace(ctx context.Context, tenantID string, profile *StyleProfile) error {
	profile.TenantID = tenantID
	profile.Active = true
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&StyleProfile{}).
			Where("tenant_id = ? AND active = ?", tenantID, true).
			Update("active", false).Error; err != nil {
			return err
		}
		return tx.Create(profile).Error
	})
}
