package types

// Client data injected into generation prompts. Address, legal representative
// and representative ID are optional; absent values are rendered as the
// missing-field placeholder, never invented by the model.
type Client struct {
	ID             string `json:"id"`
	FullName       string `json:"full_name"`
	ClientType     string `json:"client_type"` // individual | organization
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	Address        string `json:"address,omitempty"`
	LegalRepName   string `json:"legal_rep_name,omitempty"`
	LegalRepID     string `json:"legal_rep_id,omitempty"`
}

// GenerateRequest parameterizes one prompt-build-and-generate cycle.
type GenerateRequest struct {
	ClientID     string `json:"client_id" binding:"required"`
	ContractType string `json:"contract_type" binding:"required"`
	Context      string `json:"context"`
	CategoryID   string `json:"category_id"`
	UseStyle     bool   `json:"use_style"`
}

// ClauseRequest appends one clause to existing content.
type ClauseRequest struct {
	Content    string `json:"content" binding:"required"`
	ClauseType string `json:"clause_type" binding:"required"`
	CategoryID string `json:"category_id"`
	UseStyle   bool   `json:"use_style"`
}

// RefineRequest rewrites a whole document toward an objective.
type RefineRequest struct {
	Content   string `json:"content" binding:"required"`
	Objective string `json:"objective" binding:"required"`
	UseStyle  bool   `json:"use_style"`
}

// ValidationReport lists pass/fail statements ("[PASS] ..." / "[FAIL] ...")
// comparing a generated contract against the active profile's checklist.
type ValidationReport struct {
	Items []string `json:"items"`
}

// GenerateResult is what generation-facing operations return. Degraded is set
// when a fallback path produced the content (e.g. styled generation failed and
// the unstyled path was used).
type GenerateResult struct {
	Content  string            `json:"content"`
	Report   *ValidationReport `json:"validation_report,omitempty"`
	Degraded bool              `json:"degraded"`
}
