package postgres

import (
	"time"

	"lexstyle/types"
)

// TrainingDocument is one historical document submitted for style learning.
// Read-only input to the synthesis pipeline; mutated only by edits of its own
// fields (tone/summary backfill included).
type TrainingDocument struct {
	DocID        string `gorm:"column:doc_id;primaryKey;type:uuid"`
	TenantID     string `gorm:"column:tenant_id;type:uuid;index;not null"`
	FileName     string `gorm:"column:file_name;type:varchar(255);not null"`
	RawText      string `gorm:"column:raw_text;type:text"`
	DocumentType string `gorm:"column:document_type;type:varchar(100)"`
	CategoryID   string `gorm:"column:category_id;type:uuid;index"`
	ToneLabel    string `gorm:"column:tone_label;type:varchar(100)"`
	StyleSummary string `gorm:"column:style_summary;type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TrainingDocument) TableName() string {
	return "training_documents"
}

// StyleProfile persists a master style profile. At most one active row per
// tenant; replacement is a single transactional deactivate+insert so readers
// never see a partially written profile.
type StyleProfile struct {
	ID              string              `gorm:"column:id;primaryKey;type:uuid"`
	TenantID        string              `gorm:"column:tenant_id;type:uuid;index;not null"`
	Active          bool                `gorm:"column:active;index;default:false"`
	StyleText       string              `gorm:"column:style_text;type:text"`
	Checklist       []string            `gorm:"column:checklist;serializer:json;type:text"`
	Examples        types.StyleExamples `gorm:"column:examples;serializer:json;type:text"`
	Completeness    int                 `gorm:"column:completeness;type:smallint"`
	MissingElements []string            `gorm:"column:missing_elements;serializer:json;type:text"`
	Suggestions     []string            `gorm:"column:suggestions;serializer:json;type:text"`
	Source          string              `gorm:"column:source;type:varchar(20)"` // synthesis | fallback | manual

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (StyleProfile) TableName() string {
	return "style_profiles"
}

// ToDomain converts the row into the domain profile used at generation time.
func (p *StyleProfile) ToDomain() *types.MasterStyleProfile {
	return &types.MasterStyleProfile{
		StyleInstruction: p.StyleText,
		Checklist:        p.Checklist,
		Examples:         p.Examples,
		Completeness:     p.Completeness,
		MissingElements:  p.MissingElements,
		Suggestions:      p.Suggestions,
		UpdatedAt:        p.UpdatedAt,
	}
}

// UsageRecord is one billed model call (best-effort accounting).
type UsageRecord struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	TenantID     string `gorm:"column:tenant_id;type:uuid;index"`
	UserID       string `gorm:"column:user_id;type:uuid;index"`
	Operation    string `gorm:"column:operation;type:varchar(50);index"`
	ModelID      string `gorm:"column:model_id;type:varchar(100)"`
	InputTokens  int    `gorm:"column:input_tokens"`
	OutputTokens int    `gorm:"column:output_tokens"`

	CreatedAt time.Time
}

func (UsageRecord) TableName() string {
	return "usage_records"
}

// Client rows are owned by the CRM side of the product; this service only
// reads them for prompt substitution.
type Client struct {
	ID             string `gorm:"column:id;primaryKey;type:uuid"`
	TenantID       string `gorm:"column:tenant_id;type:uuid;index;not null"`
	FullName       string `gorm:"column:full_name;type:varchar(255);not null"`
	ClientType     string `gorm:"column:client_type;type:varchar(20)"`
	DocumentType   string `gorm:"column:document_type;type:varchar(50)"`
	DocumentNumber string `gorm:"column:document_number;type:varchar(50)"`
	Address        string `gorm:"column:address;type:text"`
	LegalRepName   string `gorm:"column:legal_rep_name;type:varchar(255)"`
	LegalRepID     string `gorm:"column:legal_rep_id;type:varchar(50)"`
}

func (Client) TableName() string {
	return "clients"
}

func (c *Client) ToDomain() types.Client {
	return types.Client{
		ID:             c.ID,
		FullName:       c.FullName,
		ClientType:     c.ClientType,
		DocumentType:   c.DocumentType,
		DocumentNumber: c.DocumentNumber,
		Address:        c.Address,
		LegalRepName:   c.LegalRepName,
		LegalRepID:     c.LegalRepID,
	}
}

// Category rows are owned by the CRUD side; Judicial drives the structural
// template choice at generation time.
type Category struct {
	ID       string `gorm:"column:id;primaryKey;type:uuid"`
	TenantID string `gorm:"column:tenant_id;type:uuid;index;not null"`
	Name     string `gorm:"column:name;type:varchar(100);not null"`
	Judicial bool   `gorm:"column:judicial;default:false"`
}

func (Category) TableName() string {
	return "categories"
}
