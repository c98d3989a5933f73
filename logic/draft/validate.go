package draft

import (
	"context"
	"fmt"
	"strings"

	"lexstyle/logic/gateway"
	"lexstyle/types"
)

const validatePrompt = `
You are a legal style auditor. Check the generated contract below against each
checklist assertion of the firm's style profile.

Checklist:
{{.Checklist}}

Contract:
{{.Content}}

Return strict JSON: {"items": ["[PASS] <assertion>", "[FAIL] <assertion>: <reason>", ...]}
One item per checklist assertion, in order. Output JSON only. No markdown.
`

// contentValidateLimit bounds the contract text sent to the auditor call.
const contentValidateLimit = 12000

// Validate runs the profile checklist against a generated contract. Total:
// when the auditor call fails, every assertion is reported unverified rather
// than dropping the report.
func Validate(ctx context.Context, gw *gateway.Client, content string, checklist []string) *types.ValidationReport {
	if len(checklist) == 0 {
		return nil
	}
	if len(content) > contentValidateLimit {
		content = content[:contentValidateLimit]
	}

	var b strings.Builder
	for i, item := range checklist {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	prompt := strings.ReplaceAll(validatePrompt, "{{.Checklist}}", b.String())
	prompt = strings.ReplaceAll(prompt, "{{.Content}}", content)

	fallback := types.ValidationReport{Items: make([]string, 0, len(checklist))}
	for _, item := range checklist {
		fallback.Items = append(fallback.Items, "[FAIL] sin verificar: "+item)
	}

	report := gateway.JSON(ctx, gw, prompt, fallback)
	if len(report.Items) == 0 {
		report = fallback
	}
	return &report
}
