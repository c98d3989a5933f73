package draft

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexstyle/logic/gateway"
	"lexstyle/logic/gateway/gatewaytest"
)

func TestValidateEmptyChecklist(t *testing.T) {
	fake := &gatewaytest.FakeChatModel{}
	gw := gateway.NewClient(fake, "test-model")

	assert.Nil(t, Validate(context.Background(), gw, "CONTRATO ...", nil))
	assert.Equal(t, 0, fake.CallCount())
}

func TestValidateUnverifiedOnFailure(t *testing.T) {
	checklist := []string{"numeración romana", "voz impersonal"}

	for _, fake := range []*gatewaytest.FakeChatModel{
		{Errs: []error{errors.New("unreachable")}},
		{Replies: []string{"I cannot audit this"}},
		{Replies: []string{`{"items":[]}`}},
	} {
		gw := gateway.NewClient(fake, "test-model")
		report := Validate(context.Background(), gw, "CONTRATO ...", checklist)
		require.NotNil(t, report)
		assert.Equal(t, []string{
			"[FAIL] sin verificar: numeración romana",
			"[FAIL] sin verificar: voz impersonal",
		}, report.Items)
	}
}

func TestValidateHappyPath(t *testing.T) {
	fake := &gatewaytest.FakeChatModel{Replies: []string{
		`{"items":["[PASS] numeración romana","[FAIL] voz impersonal: usa primera persona"]}`,
	}}
	gw := gateway.NewClient(fake, "test-model")

	report := Validate(context.Background(), gw, "CONTRATO ...", []string{"numeración romana", "voz impersonal"})
	require.NotNil(t, report)
	assert.Equal(t, []string{
		"[PASS] numeración romana",
		"[FAIL] voz impersonal: usa primera persona",
	}, report.Items)

	require.Len(t, fake.Calls, 1)
	assert.Contains(t, fake.Calls[0], "1. numeración romana")
	assert.Contains(t, fake.Calls[0], "2. voz impersonal")
}

func TestValidateBoundsContent(t *testing.T) {
	fake := &gatewaytest.FakeChatModel{Replies: []string{`{"items":["[PASS] x"]}`}}
	gw := gateway.NewClient(fake, "test-model")

	long := strings.Repeat("c", contentValidateLimit+100)
	Validate(context.Background(), gw, long, []string{"x"})

	require.Len(t, fake.Calls, 1)
	assert.NotContains(t, fake.Calls[0], strings.Repeat("c", contentValidateLimit+1))
}
