package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/elastic/go-elasticsearch/v8"
	milvusclient "github.com/milvus-io/milvus-sdk-go/v2/client"
	"go.uber.org/zap"

	"lexstyle/logic/draft"
	"lexstyle/logic/gateway"
	"lexstyle/logic/rank"
	esstore "lexstyle/storage/es"
	milvusstore "lexstyle/storage/milvus"
	"lexstyle/types"
	"lexstyle/vars"
)

// DraftService drives contract generation, clause generation, refinement and
// improvement. All four share the gateway and style resolution and differ
// only in prompt template.
type DraftService struct {
	clients    ClientGetter
	categories CategoryGetter
	profiles   ProfileStore
	gw         *gateway.Client
	usage      UsageLogger
	log        *zap.Logger

	// clause retrieval context; optional, generation works without it
	milvusClient milvusclient.Client
	esClient     *elasticsearch.Client
	embedder     embedding.Embedder
}

func NewDraftService(clients ClientGetter, categories CategoryGetter, profiles ProfileStore, gw *gateway.Client, usage UsageLogger, log *zap.Logger) *DraftService {
	return &DraftService{
		clients:    clients,
		categories: categories,
		profiles:   profiles,
		gw:         gw,
		usage:      usage,
		log:        log,
	}
}

// WithClauseRetrieval attaches the firm-corpus retrieval stack used to anchor
// clause generation on the firm's own clauses.
func (s *DraftService) WithClauseRetrieval(milvusClient milvusclient.Client, esClient *elasticsearch.Client, embedder embedding.Embedder) *DraftService {
	s.milvusClient = milvusClient
	s.esClient = esClient
	s.embedder = embedder
	return s
}

// Preview issues exactly one generation call and returns the result without
// persisting anything. Failures surface to the user for retry.
func (s *DraftService) Preview(ctx context.Context, tenantID, userID string, req types.GenerateRequest) (*types.GenerateResult, error) {
	prompt, _, err := s.buildContractPrompt(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}
	comp, err := s.gw.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	s.usage.Record(ctx, tenantID, userID, "contract_preview", s.gw.ModelID(), comp.InputTokens, comp.OutputTokens)
	return &types.GenerateResult{Content: comp.Text}, nil
}

// Generate is the confirmed path: styled generation plus a validation report
// against the active profile's checklist. When the styled call fails, it
// falls back once to the unstyled path so the user still gets a draft; the
// result is then marked degraded and carries no report.
func (s *DraftService) Generate(ctx context.Context, tenantID, userID string, req types.GenerateRequest) (*types.GenerateResult, error) {
	prompt, checklist, err := s.buildContractPrompt(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	comp, genErr := s.gw.Generate(ctx, prompt)
	if genErr == nil {
		s.usage.Record(ctx, tenantID, userID, "contract_generate", s.gw.ModelID(), comp.InputTokens, comp.OutputTokens)
		result := &types.GenerateResult{Content: comp.Text}
		if req.UseStyle {
			result.Report = draft.Validate(ctx, s.gw, comp.Text, checklist)
		}
		return result, nil
	}
	if !req.UseStyle {
		return nil, genErr
	}

	// styled call failed; retry once unstyled
	s.log.Warn("styled generation failed, retrying unstyled",
		zap.String("tenant_id", tenantID), zap.Error(genErr))
	unstyled := req
	unstyled.UseStyle = false
	prompt, _, err = s.buildContractPrompt(ctx, tenantID, unstyled)
	if err != nil {
		return nil, err
	}
	comp, err = s.gw.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generation failed after fallback: %w", err)
	}
	s.usage.Record(ctx, tenantID, userID, "contract_generate", s.gw.ModelID(), comp.InputTokens, comp.OutputTokens)
	return &types.GenerateResult{Content: comp.Text, Degraded: true}, nil
}

// Clause appends one clause to existing content, anchored on similar clauses
// retrieved from the firm's own corpus when the retrieval stack is attached.
func (s *DraftService) Clause(ctx context.Context, tenantID, userID string, req types.ClauseRequest) (*types.GenerateResult, error) {
	if strings.TrimSpace(req.Content) == "" || strings.TrimSpace(req.ClauseType) == "" {
		return nil, fmt.Errorf("%w: content and clause_type are required", types.ErrInvalidInput)
	}
	styleText, _, err := s.resolveStyle(ctx, tenantID, req.UseStyle)
	if err != nil {
		return nil, err
	}
	category := s.lookupCategoryName(ctx, tenantID, req.CategoryID)

	references := s.retrieveClauseReferences(ctx, tenantID, req.ClauseType, req.CategoryID)
	prompt := draft.BuildClausePrompt(req.Content, req.ClauseType, category, styleText, references)

	comp, err := s.gw.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	s.usage.Record(ctx, tenantID, userID, "clause_generate", s.gw.ModelID(), comp.InputTokens, comp.OutputTokens)
	return &types.GenerateResult{Content: comp.Text}, nil
}

// Refine rewrites the whole document toward a user-supplied objective.
func (s *DraftService) Refine(ctx context.Context, tenantID, userID string, req types.RefineRequest) (*types.GenerateResult, error) {
	if strings.TrimSpace(req.Content) == "" || strings.TrimSpace(req.Objective) == "" {
		return nil, fmt.Errorf("%w: content and objective are required", types.ErrInvalidInput)
	}
	styleText, _, err := s.resolveStyle(ctx, tenantID, req.UseStyle)
	if err != nil {
		return nil, err
	}
	comp, err := s.gw.Generate(ctx, draft.BuildRefinePrompt(req.Content, req.Objective, styleText))
	if err != nil {
		return nil, err
	}
	s.usage.Record(ctx, tenantID, userID, "refine", s.gw.ModelID(), comp.InputTokens, comp.OutputTokens)
	return &types.GenerateResult{Content: comp.Text}, nil
}

// Improve is a style/clarity pass over the whole document.
func (s *DraftService) Improve(ctx context.Context, tenantID, userID string, content string, useStyle bool) (*types.GenerateResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", types.ErrInvalidInput)
	}
	styleText, _, err := s.resolveStyle(ctx, tenantID, useStyle)
	if err != nil {
		return nil, err
	}
	comp, err := s.gw.Generate(ctx, draft.BuildImprovePrompt(content, styleText))
	if err != nil {
		return nil, err
	}
	s.usage.Record(ctx, tenantID, userID, "improve", s.gw.ModelID(), comp.InputTokens, comp.OutputTokens)
	return &types.GenerateResult{Content: comp.Text}, nil
}

// buildContractPrompt validates the request, resolves client, category and
// style, and assembles the final prompt. Fails fast before any external call.
func (s *DraftService) buildContractPrompt(ctx context.Context, tenantID string, req types.GenerateRequest) (string, []string, error) {
	if strings.TrimSpace(req.ClientID) == "" {
		return "", nil, fmt.Errorf("%w: client_id is required", types.ErrInvalidInput)
	}
	if strings.TrimSpace(req.ContractType) == "" {
		return "", nil, fmt.Errorf("%w: contract_type is required", types.ErrInvalidInput)
	}

	clientRow, err := s.clients.GetByID(ctx, tenantID, req.ClientID)
	if err != nil {
		return "", nil, fmt.Errorf("%w: client %s not found", types.ErrInvalidInput, req.ClientID)
	}

	categoryName := ""
	judicial := false
	if req.CategoryID != "" {
		cat, err := s.categories.GetByID(ctx, tenantID, req.CategoryID)
		if err != nil {
			return "", nil, fmt.Errorf("%w: category %s not found", types.ErrInvalidInput, req.CategoryID)
		}
		categoryName = cat.Name
		judicial = cat.Judicial
	}

	styleText, checklist, err := s.resolveStyle(ctx, tenantID, req.UseStyle)
	if err != nil {
		return "", nil, err
	}

	prompt := draft.BuildPrompt(draft.KindFor(judicial), clientRow.ToDomain(), req.ContractType, req.Context, categoryName, styleText)
	return prompt, checklist, nil
}

// resolveStyle returns the active profile's instruction and checklist, or
// empty values when styling is off or no profile exists.
func (s *DraftService) resolveStyle(ctx context.Context, tenantID string, useStyle bool) (string, []string, error) {
	if !useStyle {
		return "", nil, nil
	}
	row, err := s.profiles.GetActive(ctx, tenantID)
	if err != nil {
		return "", nil, err
	}
	if row == nil {
		return "", nil, nil
	}
	return row.StyleText, row.Checklist, nil
}

func (s *DraftService) lookupCategoryName(ctx context.Context, tenantID, categoryID string) string {
	if categoryID == "" {
		return ""
	}
	cat, err := s.categories.GetByID(ctx, tenantID, categoryID)
	if err != nil {
		return ""
	}
	return cat.Name
}

// retrieveClauseReferences is auxiliary signal: failures are absorbed so a
// retrieval outage never blocks clause generation.
func (s *DraftService) retrieveClauseReferences(ctx context.Context, tenantID, clauseType, categoryID string) []string {
	if s.milvusClient == nil || s.esClient == nil || s.embedder == nil {
		return nil
	}

	vectorDocs, err := milvusstore.Retriever(ctx, s.milvusClient, clauseType, &milvusstore.Filter{
		TenantID:   tenantID,
		CategoryID: categoryID,
	}, s.embedder, 10)
	if err != nil {
		s.log.Warn("clause vector retrieval failed", zap.Error(err))
	}

	keywordDocs, err := esstore.Retriever(ctx, s.esClient, vars.CLAUSEINDEX, clauseType, &esstore.Filter{
		TenantID:   tenantID,
		CategoryID: categoryID,
	}, 10)
	if err != nil {
		s.log.Warn("clause keyword retrieval failed", zap.Error(err))
	}

	fused := rank.Fuse(vectorDocs, keywordDocs, rank.DefaultConfig())
	references := make([]string, 0, len(fused))
	for _, doc := range fused {
		references = append(references, doc.Content)
	}
	return references
}
