package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lexstyle/logic/gateway"
	"lexstyle/logic/gateway/gatewaytest"
	"lexstyle/storage/postgres"
	"lexstyle/types"
)

type fakeDocs struct {
	rows []postgres.TrainingDocument
}

func (f *fakeDocs) ListByTenant(_ context.Context, _ string) ([]postgres.TrainingDocument, error) {
	return f.rows, nil
}

const goodAnalysis = `{"structure":{"clause_numbering":"romana"},"tone":{"formality":"alta"}}`
const goodProfile = `{"style_instruction":"Numeración romana, voz impersonal.","checklist":["numeración romana"],"completeness_score":80}`

func trainingDoc(name, text string) postgres.TrainingDocument {
	return postgres.TrainingDocument{DocID: "d-" + name, TenantID: "t-1", FileName: name, RawText: text, DocumentType: "contrato"}
}

func newStyleService(fake *gatewaytest.FakeChatModel, docs *fakeDocs, profiles *fakeProfiles, usage *fakeUsage) *StyleService {
	categories := &fakeCategories{rows: map[string]*postgres.Category{
		"cat-1": {ID: "cat-1", TenantID: "t-1", Name: "mercantil"},
	}}
	gw := gateway.NewClient(fake, "test-model")
	return NewStyleService(docs, profiles, categories, gw, usage, zap.NewNop())
}

func TestSynthesizeMasterProgressSequence(t *testing.T) {
	fake := &gatewaytest.FakeChatModel{Replies: []string{goodAnalysis, goodAnalysis, goodProfile}}
	docs := &fakeDocs{rows: []postgres.TrainingDocument{
		trainingDoc("nda.pdf", "CONTRATO DE CONFIDENCIALIDAD ..."),
		trainingDoc("arrendamiento.pdf", "CONTRATO DE ARRENDAMIENTO ..."),
	}}
	profiles := &fakeProfiles{}
	usage := &fakeUsage{}
	svc := newStyleService(fake, docs, profiles, usage)

	var events []types.Progress
	profile, degraded, err := svc.SynthesizeMaster(context.Background(), "t-1", "u-1", func(p types.Progress) {
		events = append(events, p)
	})
	require.NoError(t, err)
	assert.False(t, degraded)
	assert.Equal(t, "Numeración romana, voz impersonal.", profile.StyleInstruction)
	assert.Equal(t, 80, profile.Completeness)

	assert.Equal(t, []types.Progress{
		{Stage: types.StageAnalyzing, Current: 0, Total: 2},
		{Stage: types.StageAnalyzing, Current: 1, Total: 2},
		{Stage: types.StageAnalyzing, Current: 2, Total: 2},
		{Stage: types.StageSynthesizing, Current: 0, Total: 1},
		{Stage: types.StageSynthesizing, Current: 1, Total: 1},
		{Stage: types.StageComplete, Current: 1, Total: 1},
	}, events)

	assert.Equal(t, []string{"deep_analysis", "deep_analysis", "master_synthesis"}, usage.operations)

	require.Len(t, profiles.replaced, 1)
	assert.Equal(t, "synthesis", profiles.replaced[0].Source)
	assert.Equal(t, []string{"numeración romana"}, profiles.replaced[0].Checklist)
}

func TestSynthesizeMasterFallsBackToSimple(t *testing.T) {
	// Third document's analysis comes back without structure: the whole batch
	// degrades to the single-pass profile over all raw texts.
	fake := &gatewaytest.FakeChatModel{Replies: []string{
		goodAnalysis,
		goodAnalysis,
		`{"tone":{"formality":"alta"}}`,
		`{"style_instruction":"Registro formal estándar.","completeness_score":40}`,
	}}
	docs := &fakeDocs{rows: []postgres.TrainingDocument{
		trainingDoc("1.pdf", "texto uno"),
		trainingDoc("2.pdf", "texto dos"),
		trainingDoc("3.pdf", "texto tres"),
		trainingDoc("4.pdf", "texto cuatro"),
		trainingDoc("5.pdf", "texto cinco"),
	}}
	profiles := &fakeProfiles{}
	usage := &fakeUsage{}
	svc := newStyleService(fake, docs, profiles, usage)

	profile, degraded, err := svc.SynthesizeMaster(context.Background(), "t-1", "u-1", nil)
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Equal(t, "Registro formal estándar.", profile.StyleInstruction)
	assert.Equal(t, 40, profile.Completeness)

	// Three structured attempts plus one fallback call.
	require.Equal(t, 4, fake.CallCount())
	simplePrompt := fake.Calls[3]
	assert.Contains(t, simplePrompt, "--- Documento 1 ---")
	assert.Contains(t, simplePrompt, "--- Documento 5 ---")
	assert.Contains(t, simplePrompt, "texto cinco")

	assert.Equal(t, []string{"deep_analysis", "deep_analysis", "deep_analysis", "master_synthesis_fallback"}, usage.operations)

	require.Len(t, profiles.replaced, 1)
	assert.Equal(t, "fallback", profiles.replaced[0].Source)
}

func TestSynthesizeMasterZeroDocuments(t *testing.T) {
	fake := &gatewaytest.FakeChatModel{}
	profiles := &fakeProfiles{}
	svc := newStyleService(fake, &fakeDocs{}, profiles, &fakeUsage{})

	profile, degraded, err := svc.SynthesizeMaster(context.Background(), "t-1", "u-1", nil)
	require.NoError(t, err)
	assert.False(t, degraded)
	assert.Equal(t, 0, fake.CallCount())
	assert.Equal(t, 0, profile.Completeness)
	assert.NotEmpty(t, profile.StyleInstruction)
	require.Len(t, profiles.replaced, 1)
	assert.Equal(t, "synthesis", profiles.replaced[0].Source)
}

func TestSynthesizeMasterStopsOnCancel(t *testing.T) {
	fake := &gatewaytest.FakeChatModel{Replies: []string{goodAnalysis}}
	docs := &fakeDocs{rows: []postgres.TrainingDocument{
		trainingDoc("1.pdf", "texto uno"),
		trainingDoc("2.pdf", "texto dos"),
	}}
	svc := newStyleService(fake, docs, &fakeProfiles{}, &fakeUsage{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := svc.SynthesizeMaster(ctx, "t-1", "u-1", nil)
	require.Error(t, err)
	// Cancellation aborts before the first structured call; the fallback path
	// then fails on the same cancelled context.
	assert.ErrorIs(t, err, types.ErrUpstreamUnavailable)
	assert.Equal(t, 0, fake.CallCount())
}

func TestSetManual(t *testing.T) {
	profiles := &fakeProfiles{}
	svc := newStyleService(&gatewaytest.FakeChatModel{}, &fakeDocs{}, profiles, &fakeUsage{})

	_, err := svc.SetManual(context.Background(), "t-1", "   ")
	assert.ErrorIs(t, err, types.ErrInvalidInput)
	assert.Empty(t, profiles.replaced)

	profile, err := svc.SetManual(context.Background(), "t-1", "Siempre numeración romana.")
	require.NoError(t, err)
	assert.Equal(t, 100, profile.Completeness)
	require.Len(t, profiles.replaced, 1)
	assert.Equal(t, "manual", profiles.replaced[0].Source)
	assert.Equal(t, "Siempre numeración romana.", profiles.replaced[0].StyleText)
}

func TestGetActive(t *testing.T) {
	profiles := &fakeProfiles{}
	svc := newStyleService(&gatewaytest.FakeChatModel{}, &fakeDocs{}, profiles, &fakeUsage{})

	profile, err := svc.GetActive(context.Background(), "t-1")
	require.NoError(t, err)
	assert.Nil(t, profile)

	profiles.active = styledProfile()
	profile, err = svc.GetActive(context.Background(), "t-1")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Numeración romana, voz impersonal.", profile.StyleInstruction)
}
