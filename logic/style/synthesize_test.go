package style

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexstyle/logic/gateway"
	"lexstyle/logic/gateway/gatewaytest"
	"lexstyle/types"
)

func TestSynthesizeZeroAnalyses(t *testing.T) {
	fake := &gatewaytest.FakeChatModel{}
	gw := gateway.NewClient(fake, "test-model")

	profile, comp, err := Synthesize(context.Background(), gw, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Nil(t, comp)
	assert.Equal(t, 0, fake.CallCount())

	assert.Equal(t, 0, profile.Completeness)
	assert.NotEmpty(t, profile.StyleInstruction)
	assert.NotEmpty(t, profile.MissingElements)
	assert.False(t, profile.UpdatedAt.IsZero())
}

func TestSynthesizeClampsCompleteness(t *testing.T) {
	fake := &gatewaytest.FakeChatModel{Replies: []string{
		`{"style_instruction":"Redacta con numeración romana.","checklist":["numeración romana"],"completeness_score":240}`,
	}}
	gw := gateway.NewClient(fake, "test-model")

	analyses := []*types.DeepStyleAnalysis{
		{Structure: &types.StructureProfile{ClauseNumbering: "romana"}, Tone: &types.ToneProfile{Formality: "alta"}},
	}
	profile, comp, err := Synthesize(context.Background(), gw, analyses, []string{"mercantil"})
	require.NoError(t, err)
	require.NotNil(t, comp)
	assert.Equal(t, 100, profile.Completeness)
	assert.Equal(t, []string{"numeración romana"}, profile.Checklist)

	require.Len(t, fake.Calls, 1)
	assert.Contains(t, fake.Calls[0], "mercantil")
	assert.Contains(t, fake.Calls[0], "romana")
}

func TestSynthesizePropagatesFailure(t *testing.T) {
	fake := &gatewaytest.FakeChatModel{Errs: []error{errors.New("unreachable")}}
	gw := gateway.NewClient(fake, "test-model")

	analyses := []*types.DeepStyleAnalysis{
		{Structure: &types.StructureProfile{}, Tone: &types.ToneProfile{}},
	}
	_, _, err := Synthesize(context.Background(), gw, analyses, nil)
	assert.ErrorIs(t, err, types.ErrUpstreamUnavailable)
}

func TestSynthesizeSimple(t *testing.T) {
	fake := &gatewaytest.FakeChatModel{Replies: []string{
		`{"style_instruction":"Registro formal, voz impersonal.","completeness_score":45}`,
	}}
	gw := gateway.NewClient(fake, "test-model")

	long := strings.Repeat("q", rawTextLimit+500)
	profile, comp, err := SynthesizeSimple(context.Background(), gw, []string{"CONTRATO UNO", long})
	require.NoError(t, err)
	require.NotNil(t, comp)
	assert.Equal(t, "Registro formal, voz impersonal.", profile.StyleInstruction)
	assert.Equal(t, 45, profile.Completeness)
	assert.NotEmpty(t, profile.MissingElements)

	require.Len(t, fake.Calls, 1)
	assert.Contains(t, fake.Calls[0], "--- Documento 1 ---")
	assert.Contains(t, fake.Calls[0], "--- Documento 2 ---")
	// Each document is bounded before prompt embedding.
	assert.NotContains(t, fake.Calls[0], strings.Repeat("q", rawTextLimit+1))
}

func TestSynthesizeSimplePropagatesMalformed(t *testing.T) {
	fake := &gatewaytest.FakeChatModel{Replies: []string{"no puedo"}}
	gw := gateway.NewClient(fake, "test-model")

	_, _, err := SynthesizeSimple(context.Background(), gw, []string{"texto"})
	assert.ErrorIs(t, err, types.ErrMalformedCompletion)
}
