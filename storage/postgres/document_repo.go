package postgres

import (
	"context"

	"gorm.io/gorm"
)

// TrainingDocRepo wraps all access to the training_documents table.
type TrainingDocRepo struct {
	db *gorm.DB
}

func NewTrainingDocRepo(db *gorm.DB) *TrainingDocRepo {
	return &TrainingDocRepo{db: db}
}

func (r *TrainingDocRepo) Create(ctx context.Context, doc *TrainingDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *TrainingDocRepo) GetByID(ctx context.Context, tenantID, docID string) (*TrainingDocument, error) {
	var doc TrainingDocument
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND doc_id = ?", tenantID, docID).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *TrainingDocRepo) GetByFileName(ctx context.Context, tenantID, fileName string) (*TrainingDocument, error) {
	var doc TrainingDocument
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND file_name = ?", tenantID, fileName).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *TrainingDocRepo) ListByTenant(ctx context.Context, tenantID string) ([]TrainingDocument, error) {
	var docs []TrainingDocument
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&docs).Error
	return docs, err
}

func (r *TrainingDocRepo) Delete(ctx context.Context, tenantID, docID string) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND doc_id = ?", tenantID, docID).
		Delete(&TrainingDocument{}).Error
}

// UpdateQuickStyle stores the derived tone label and one-line summary.
func (r *TrainingDocRepo) UpdateQuickStyle(ctx context.Context, docID, tone, summary string) error {
	return r.db.WithContext(ctx).
		Model(&TrainingDocument{}).
		Where("doc_id = ?", docID).
		Updates(map[string]interface{}{"tone_label": tone, "style_summary": summary}).Error
}

// ListMissingTone returns documents the best-effort analyzer has not labeled
// yet, across tenants. Consumed by the nightly backfill job.
func (r *TrainingDocRepo) ListMissingTone(ctx context.Context, limit int) ([]TrainingDocument, error) {
	var docs []TrainingDocument
	err := r.db.WithContext(ctx).
		Where("tone_label = '' OR tone_label = ?", "Unknown").
		Order("created_at ASC").
		Limit(limit).
		Find(&docs).Error
	return docs, err
}
