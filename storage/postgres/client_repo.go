package postgres

import (
	"context"

	"gorm.io/gorm"
)

// ClientRepo reads CRM-owned client rows for prompt substitution.
type ClientRepo struct {
	db *gorm.DB
}

func NewClientRepo(db *gorm.DB) *ClientRepo {
	return &ClientRepo{db: db}
}

func (r *ClientRepo) GetByID(ctx context.Context, tenantID, clientID string) (*Client, error) {
	var client Client
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, clientID).
		First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// CategoryRepo reads CRUD-owned category rows; Judicial selects the
// structural template.
type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) GetByID(ctx context.Context, tenantID, categoryID string) (*Category, error) {
	var cat Category
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, categoryID).
		First(&cat).Error
	if err != nil {
		return nil, err
	}
	return &cat, nil
}
