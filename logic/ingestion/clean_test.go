package ingestion

import (
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "CONTRATO DE ARRENDAMIENTO", "CONTRATO DE ARRENDAMIENTO"},
		{"nul bytes", "CONTRATO\x00 DE\x00 OBRA", "CONTRATO DE OBRA"},
		{"control chars", "PRIMERA.\x01\x02 Objeto\x1f del contrato", "PRIMERA. Objeto del contrato"},
		{"invalid utf8", "cl\xc3\x28usula", "cl(usula"},
		{"multi space", "SEGUNDA.\t\t  Precio   y  pago", "SEGUNDA. Precio y pago"},
		{"keeps newlines", "PRIMERA.\nSEGUNDA.", "PRIMERA.\nSEGUNDA."},
		{"trims", "   texto   ", "texto"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestCleanChunksDropsEmpty(t *testing.T) {
	chunks := []*schema.Document{
		{ID: "1", Content: "  PRIMERA. Objeto  "},
		{ID: "2", Content: "\x00\x01  "},
		{ID: "3", Content: "SEGUNDA. Precio"},
	}
	out := CleanChunks(chunks)
	require.Len(t, out, 2)
	assert.Equal(t, "PRIMERA. Objeto", out[0].Content)
	assert.Equal(t, "3", out[1].ID)
}
