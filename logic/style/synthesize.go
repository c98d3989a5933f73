package style

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lexstyle/logic/gateway"
	"lexstyle/types"
	"lexstyle/vars"
)

// rawTextLimit bounds each document's contribution to the simple-synthesis
// prompt.
const rawTextLimit = 4000

// Synthesize reconciles N per-document analyses into one master style
// profile. Zero analyses is a valid degenerate case and resolves locally,
// without spending a model call.
func Synthesize(ctx context.Context, gw *gateway.Client, analyses []*types.DeepStyleAnalysis, categories []string) (*types.MasterStyleProfile, *gateway.Completion, error) {
	if len(analyses) == 0 {
		return &types.MasterStyleProfile{
			StyleInstruction: "Redacta en registro jurídico formal estándar, voz impersonal, cláusulas numeradas.",
			Completeness:     0,
			MissingElements:  []string{"no hay documentos de entrenamiento analizados"},
			Suggestions:      []string{"sube documentos históricos del despacho para derivar su estilo"},
			UpdatedAt:        time.Now(),
		}, nil, nil
	}

	analysesJSON, err := json.MarshalIndent(analyses, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("marshal analyses: %w", err)
	}

	prompt := strings.ReplaceAll(vars.MASTERSYNTH, "{{.Count}}", strconv.Itoa(len(analyses)))
	prompt = strings.ReplaceAll(prompt, "{{.Categories}}", strings.Join(categories, ", "))
	prompt = strings.ReplaceAll(prompt, "{{.Analyses}}", string(analysesJSON))

	var profile types.MasterStyleProfile
	comp, err := gateway.JSONStrict(ctx, gw, prompt, &profile)
	if err != nil {
		return nil, nil, err
	}
	profile.Completeness = clamp(profile.Completeness, 0, 100)
	profile.UpdatedAt = time.Now()
	return &profile, comp, nil
}

// SynthesizeSimple is the last line of defense: one pass over raw document
// texts, bypassing per-document structured analysis. Produces a lower-fidelity
// instruction with no checklist or examples.
func SynthesizeSimple(ctx context.Context, gw *gateway.Client, rawTexts []string) (*types.MasterStyleProfile, *gateway.Completion, error) {
	var b strings.Builder
	for i, text := range rawTexts {
		if len(text) > rawTextLimit {
			text = text[:rawTextLimit]
		}
		fmt.Fprintf(&b, "--- Documento %d ---\n%s\n\n", i+1, text)
	}

	prompt := strings.ReplaceAll(vars.SIMPLESYNTH, "{{.Documents}}", b.String())

	var out struct {
		StyleInstruction string `json:"style_instruction"`
		Completeness     int    `json:"completeness_score"`
	}
	comp, err := gateway.JSONStrict(ctx, gw, prompt, &out)
	if err != nil {
		return nil, nil, err
	}
	return &types.MasterStyleProfile{
		StyleInstruction: out.StyleInstruction,
		Completeness:     clamp(out.Completeness, 0, 100),
		MissingElements:  []string{"perfil simplificado: sin checklist ni ejemplos"},
		UpdatedAt:        time.Now(),
	}, comp, nil
}
