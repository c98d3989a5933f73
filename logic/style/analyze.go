package style

import (
	"context"
	"fmt"
	"strings"

	"lexstyle/logic/gateway"
	"lexstyle/types"
	"lexstyle/vars"
)

// quickFallback is returned whenever the quick analyzer cannot get a usable
// answer. The upload flow must never fail on it.
var quickFallback = types.QuickStyle{Tone: "Unknown", Summary: "Analysis failed."}

// QuickAnalyze classifies one document's tone and produces a one-sentence
// style summary. Best effort, single call, no retries.
func QuickAnalyze(ctx context.Context, gw *gateway.Client, text string) types.QuickStyle {
	if len(text) > vars.QuickAnalyzeLimit {
		text = text[:vars.QuickAnalyzeLimit]
	}
	prompt := strings.ReplaceAll(vars.QUICKSTYLE, "{{.Content}}", text)
	return gateway.JSON(ctx, gw, prompt, quickFallback)
}

// DeepAnalyze builds the structured multi-axis style profile of one document.
// Input is validated before any external call; a parsed response missing
// structure or tone is reported as ErrIncompleteAnalysis. The caller decides
// whether to re-run or skip the document.
func DeepAnalyze(ctx context.Context, gw *gateway.Client, fullText, docType, category string) (*types.DeepStyleAnalysis, *gateway.Completion, error) {
	if strings.TrimSpace(fullText) == "" {
		return nil, nil, fmt.Errorf("%w: document text is empty", types.ErrInvalidInput)
	}
	if strings.TrimSpace(docType) == "" {
		return nil, nil, fmt.Errorf("%w: document type is required", types.ErrInvalidInput)
	}
	if category == "" {
		category = "general"
	}

	samples := SampleStrategic(fullText)
	prompt := strings.ReplaceAll(vars.DEEPANALYSIS, "{{.DocType}}", docType)
	prompt = strings.ReplaceAll(prompt, "{{.Category}}", category)
	prompt = strings.ReplaceAll(prompt, "{{.Samples}}", FormatExcerpts(samples))

	var analysis types.DeepStyleAnalysis
	comp, err := gateway.JSONStrict(ctx, gw, prompt, &analysis)
	if err != nil {
		return nil, nil, err
	}
	if analysis.Structure == nil {
		return nil, comp, fmt.Errorf("%w: structure missing from model output", types.ErrIncompleteAnalysis)
	}
	if analysis.Tone == nil {
		return nil, comp, fmt.Errorf("%w: tone missing from model output", types.ErrIncompleteAnalysis)
	}
	return &analysis, comp, nil
}

// FormatExcerpts renders labeled samples for prompt embedding.
func FormatExcerpts(excerpts []types.Excerpt) string {
	var b strings.Builder
	for _, e := range excerpts {
		fmt.Fprintf(&b, "--- %s [%d:%d] ---\n%s\n\n", e.Label, e.Start, e.End, e.Text)
	}
	return b.String()
}
