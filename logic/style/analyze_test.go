package style

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexstyle/logic/gateway"
	"lexstyle/logic/gateway/gatewaytest"
	"lexstyle/types"
	"lexstyle/vars"
)

func TestQuickAnalyzeNeverFails(t *testing.T) {
	fake := &gatewaytest.FakeChatModel{Replies: []string{"cannot comply with that"}}
	gw := gateway.NewClient(fake, "test-model")

	got := QuickAnalyze(context.Background(), gw, "CONTRATO DE ARRENDAMIENTO ...")
	assert.Equal(t, quickFallback, got)
}

func TestQuickAnalyzeTruncatesInput(t *testing.T) {
	fake := &gatewaytest.FakeChatModel{Replies: []string{`{"tone":"Formal","summary":"ok"}`}}
	gw := gateway.NewClient(fake, "test-model")

	long := strings.Repeat("a", vars.QuickAnalyzeLimit+1000)
	got := QuickAnalyze(context.Background(), gw, long)
	assert.Equal(t, "Formal", got.Tone)

	require.Len(t, fake.Calls, 1)
	assert.NotContains(t, fake.Calls[0], strings.Repeat("a", vars.QuickAnalyzeLimit+1))
	assert.Contains(t, fake.Calls[0], strings.Repeat("a", vars.QuickAnalyzeLimit))
}

func TestDeepAnalyzeValidatesBeforeCalling(t *testing.T) {
	fake := &gatewaytest.FakeChatModel{}
	gw := gateway.NewClient(fake, "test-model")

	_, _, err := DeepAnalyze(context.Background(), gw, "   ", "contrato", "mercantil")
	assert.ErrorIs(t, err, types.ErrInvalidInput)

	_, _, err = DeepAnalyze(context.Background(), gw, "texto del contrato", "", "mercantil")
	assert.ErrorIs(t, err, types.ErrInvalidInput)

	assert.Equal(t, 0, fake.CallCount())
}

func TestDeepAnalyzeIncompleteOutput(t *testing.T) {
	fake := &gatewaytest.FakeChatModel{Replies: []string{`{"tone":{"formality":"alta"}}`}}
	gw := gateway.NewClient(fake, "test-model")

	analysis, comp, err := DeepAnalyze(context.Background(), gw, "CONTRATO ...", "contrato", "mercantil")
	assert.ErrorIs(t, err, types.ErrIncompleteAnalysis)
	assert.Nil(t, analysis)
	// Usage is still reported so the caller can account for the spent call.
	require.NotNil(t, comp)
	assert.Equal(t, 10, comp.InputTokens)
}

func TestDeepAnalyzeHappyPath(t *testing.T) {
	reply := `{
		"structure": {"clause_numbering": "ordinal"},
		"tone": {"formality": "alta"},
		"jurisdiction": {"governing_law": "España"}
	}`
	fake := &gatewaytest.FakeChatModel{Replies: []string{reply}}
	gw := gateway.NewClient(fake, "test-model")

	analysis, comp, err := DeepAnalyze(context.Background(), gw, "CONTRATO DE CONFIDENCIALIDAD ...", "contrato", "")
	require.NoError(t, err)
	require.NotNil(t, analysis)
	require.NotNil(t, analysis.Structure)
	require.NotNil(t, analysis.Tone)
	assert.NotNil(t, comp)

	// Empty category defaults and the samples land in the prompt.
	require.Len(t, fake.Calls, 1)
	assert.Contains(t, fake.Calls[0], "general")
	assert.Contains(t, fake.Calls[0], "CONTRATO DE CONFIDENCIALIDAD")
}

func TestFormatExcerpts(t *testing.T) {
	out := FormatExcerpts([]types.Excerpt{
		{Label: "Start", Start: 0, End: 5, Text: "PRIME"},
		{Label: "End", Start: 90, End: 95, Text: "FINAL"},
	})
	assert.Contains(t, out, "--- Start [0:5] ---\nPRIME")
	assert.Contains(t, out, "--- End [90:95] ---\nFINAL")
}
