package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lexstyle/logic/gateway"
	"lexstyle/logic/style"
	"lexstyle/storage/postgres"
	"lexstyle/types"
)

// StyleService synthesizes and stores the per-tenant master style profile.
type StyleService struct {
	docs       DocLister
	profiles   ProfileStore
	categories CategoryGetter
	gw         *gateway.Client
	usage      UsageLogger
	log        *zap.Logger
}

func NewStyleService(docs DocLister, profiles ProfileStore, categories CategoryGetter, gw *gateway.Client, usage UsageLogger, log *zap.Logger) *StyleService {
	return &StyleService{
		docs:       docs,
		profiles:   profiles,
		categories: categories,
		gw:         gw,
		usage:      usage,
		log:        log,
	}
}

// SynthesizeMaster runs the full pipeline: sequential deep analysis of every
// training document (progress analyzing current/total), then one synthesis
// call (synthesizing 0/1 -> 1/1), then atomic profile replace. Documents are
// analyzed one at a time; that keeps the progress counter simple and bounds
// concurrent load on the completion service. When the structured path fails
// for any document, the whole batch falls back to the simple single-pass
// profile over raw texts; the result is then marked degraded.
func (s *StyleService) SynthesizeMaster(ctx context.Context, tenantID, userID string, onProgress func(types.Progress)) (*types.MasterStyleProfile, bool, error) {
	if onProgress == nil {
		onProgress = func(types.Progress) {}
	}

	docs, err := s.docs.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, false, err
	}

	profile, err := s.synthesizeStructured(ctx, tenantID, userID, docs, onProgress)
	degraded := false
	if err != nil {
		s.log.Warn("structured synthesis failed, using simple fallback",
			zap.String("tenant_id", tenantID), zap.Error(err))
		profile, err = s.synthesizeSimple(ctx, tenantID, userID, docs, onProgress)
		if err != nil {
			return nil, false, fmt.Errorf("fallback synthesis failed: %w", err)
		}
		degraded = true
	}

	row := profileRow(tenantID, profile)
	if degraded {
		row.Source = "fallback"
	}
	if err := s.profiles.Replace(ctx, tenantID, row); err != nil {
		return nil, false, err
	}

	onProgress(types.Progress{Stage: types.StageComplete, Current: 1, Total: 1})
	return profile, degraded, nil
}

func (s *StyleService) synthesizeStructured(ctx context.Context, tenantID, userID string, docs []postgres.TrainingDocument, onProgress func(types.Progress)) (*types.MasterStyleProfile, error) {
	total := len(docs)
	analyses := make([]*types.DeepStyleAnalysis, 0, total)
	categories := make([]string, 0, total)
	seen := make(map[string]bool)

	onProgress(types.Progress{Stage: types.StageAnalyzing, Current: 0, Total: total})
	for i, doc := range docs {
		// cancellation between iterations, never mid-call
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		category := s.categoryName(ctx, tenantID, doc.CategoryID)
		analysis, comp, err := style.DeepAnalyze(ctx, s.gw, doc.RawText, doc.DocumentType, category)
		if comp != nil {
			s.usage.Record(ctx, tenantID, userID, "deep_analysis", s.gw.ModelID(), comp.InputTokens, comp.OutputTokens)
		}
		if err != nil {
			return nil, fmt.Errorf("deep analysis of %s failed: %w", doc.FileName, err)
		}
		analyses = append(analyses, analysis)
		if category != "" && !seen[category] {
			seen[category] = true
			categories = append(categories, category)
		}
		onProgress(types.Progress{Stage: types.StageAnalyzing, Current: i + 1, Total: total})
	}

	onProgress(types.Progress{Stage: types.StageSynthesizing, Current: 0, Total: 1})
	profile, comp, err := style.Synthesize(ctx, s.gw, analyses, categories)
	if comp != nil {
		s.usage.Record(ctx, tenantID, userID, "master_synthesis", s.gw.ModelID(), comp.InputTokens, comp.OutputTokens)
	}
	if err != nil {
		return nil, err
	}
	onProgress(types.Progress{Stage: types.StageSynthesizing, Current: 1, Total: 1})
	return profile, nil
}

func (s *StyleService) synthesizeSimple(ctx context.Context, tenantID, userID string, docs []postgres.TrainingDocument, onProgress func(types.Progress)) (*types.MasterStyleProfile, error) {
	onProgress(types.Progress{Stage: types.StageSynthesizing, Current: 0, Total: 1})
	rawTexts := make([]string, 0, len(docs))
	for _, doc := range docs {
		rawTexts = append(rawTexts, doc.RawText)
	}
	profile, comp, err := style.SynthesizeSimple(ctx, s.gw, rawTexts)
	if comp != nil {
		s.usage.Record(ctx, tenantID, userID, "master_synthesis_fallback", s.gw.ModelID(), comp.InputTokens, comp.OutputTokens)
	}
	if err != nil {
		return nil, err
	}
	onProgress(types.Progress{Stage: types.StageSynthesizing, Current: 1, Total: 1})
	return profile, nil
}

func (s *StyleService) categoryName(ctx context.Context, tenantID, categoryID string) string {
	if categoryID == "" {
		return ""
	}
	cat, err := s.categories.GetByID(ctx, tenantID, categoryID)
	if err != nil {
		return ""
	}
	return cat.Name
}

// SetManual replaces the active profile with human-written style text.
func (s *StyleService) SetManual(ctx context.Context, tenantID, styleText string) (*types.MasterStyleProfile, error) {
	if strings.TrimSpace(styleText) == "" {
		return nil, fmt.Errorf("%w: style text is empty", types.ErrInvalidInput)
	}
	profile := &types.MasterStyleProfile{
		StyleInstruction: styleText,
		Completeness:     100,
		UpdatedAt:        time.Now(),
	}
	row := profileRow(tenantID, profile)
	row.Source = "manual"
	if err := s.profiles.Replace(ctx, tenantID, row); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetActive returns the tenant's active profile, nil when none exists.
func (s *StyleService) GetActive(ctx context.Context, tenantID string) (*types.MasterStyleProfile, error) {
	row, err := s.profiles.GetActive(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	return row.ToDomain(), nil
}

func profileRow(tenantID string, profile *types.MasterStyleProfile) *postgres.StyleProfile {
	return &postgres.StyleProfile{
		ID:              uuid.New().String(),
		TenantID:        tenantID,
		StyleText:       profile.StyleInstruction,
		Checklist:       profile.Checklist,
		Examples:        profile.Examples,
		Completeness:    profile.Completeness,
		MissingElements: profile.MissingElements,
		Suggestions:     profile.Suggestions,
		Source:          "synthesis",
	}
}
