package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleStrategicBoundsAlwaysValid(t *testing.T) {
	texts := []string{
		"",
		"corto",
		strings.Repeat("a", 100),
		strings.Repeat("b", 2999),
		strings.Repeat("c", 50000),
	}
	for _, text := range texts {
		for _, ex := range SampleStrategic(text) {
			assert.GreaterOrEqual(t, ex.Start, 0, ex.Label)
			assert.LessOrEqual(t, ex.End, len(text), ex.Label)
			assert.LessOrEqual(t, ex.Start, ex.End, ex.Label)
			assert.Equal(t, text[ex.Start:ex.End], ex.Text, ex.Label)
		}
	}
}

func TestSampleStrategicShortDocument(t *testing.T) {
	text := "contrato breve"
	excerpts := SampleStrategic(text)
	// No clause keywords, so only the three positional windows remain.
	require.Len(t, excerpts, 3)
	assert.Equal(t, "Start", excerpts[0].Label)
	assert.Equal(t, "Middle", excerpts[1].Label)
	assert.Equal(t, "End", excerpts[2].Label)
	for _, ex := range excerpts {
		assert.Equal(t, text, ex.Text)
	}
}

func TestSampleStrategicClauseWindows(t *testing.T) {
	// 9000 bytes total with one clause keyword at offset 4200.
	text := strings.Repeat("x", 4200) + "Confidencialidad" + strings.Repeat("y", 9000-4200-len("Confidencialidad"))
	require.Len(t, text, 9000)

	excerpts := SampleStrategic(text)
	require.Len(t, excerpts, 4)

	assert.Equal(t, "Start", excerpts[0].Label)
	assert.Equal(t, 0, excerpts[0].Start)
	assert.Equal(t, 3000, excerpts[0].End)

	assert.Equal(t, "Middle", excerpts[1].Label)
	assert.Equal(t, 3000, excerpts[1].Start)
	assert.Equal(t, 6000, excerpts[1].End)

	assert.Equal(t, "End", excerpts[2].Label)
	assert.Equal(t, 6000, excerpts[2].Start)
	assert.Equal(t, 9000, excerpts[2].End)

	assert.Equal(t, "Clausula Confidencialidad", excerpts[3].Label)
	assert.Equal(t, 4200-500, excerpts[3].Start)
	assert.Equal(t, 4200+1500, excerpts[3].End)
	assert.Contains(t, excerpts[3].Text, "Confidencialidad")
}

func TestSampleStrategicOnePerPattern(t *testing.T) {
	text := strings.Repeat("z", 500) +
		"confidencialidad ... mas texto ... confidencialidad de nuevo ... " +
		"responsabilidad ... jurisdiccion ... terminacion" +
		strings.Repeat("z", 500)

	excerpts := SampleStrategic(text)
	// Three positional windows plus exactly one window per matched pattern,
	// anchored at the first match.
	require.Len(t, excerpts, 7)

	seen := map[string]int{}
	for _, ex := range excerpts {
		seen[ex.Label]++
	}
	for label, count := range seen {
		assert.Equal(t, 1, count, label)
	}
	assert.Contains(t, seen, "Clausula Confidencialidad")
	assert.Contains(t, seen, "Clausula Responsabilidad")
	assert.Contains(t, seen, "Clausula Jurisdiccion")
	assert.Contains(t, seen, "Clausula Terminacion")
}
