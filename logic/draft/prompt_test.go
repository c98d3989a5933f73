package draft

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexstyle/types"
	"lexstyle/vars"
)

func fullClient() types.Client {
	return types.Client{
		FullName:       "ACME Corporación S.L.",
		ClientType:     "organization",
		DocumentType:   "CIF",
		DocumentNumber: "B-12345678",
		Address:        "Calle Mayor 1, Madrid",
		LegalRepName:   "María Pérez",
		LegalRepID:     "12345678Z",
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	c := fullClient()
	a := BuildPrompt(TemplateContract, c, "Contrato de confidencialidad", "plazo de 2 años", "mercantil", "Usa numeración romana.")
	b := BuildPrompt(TemplateContract, c, "Contrato de confidencialidad", "plazo de 2 años", "mercantil", "Usa numeración romana.")
	assert.Equal(t, a, b)
}

func TestBuildPromptSectionOrder(t *testing.T) {
	p := BuildPrompt(TemplateContract, fullClient(), "Contrato de servicios", "pago mensual", "mercantil", "Voz impersonal.")

	idxTemplate := strings.Index(p, "Redacta un contrato legal completo.")
	idxStyle := strings.Index(p, "=== ESTILO DEL DESPACHO (OBLIGATORIO) ===")
	idxClient := strings.Index(p, "=== DATOS DEL CLIENTE (OBLIGATORIO) ===")
	idxContext := strings.Index(p, "=== CONTEXTO ===")
	idxFinal := strings.Index(p, "=== INSTRUCCIONES FINALES ===")

	require.NotEqual(t, -1, idxTemplate)
	require.NotEqual(t, -1, idxStyle)
	require.NotEqual(t, -1, idxClient)
	require.NotEqual(t, -1, idxContext)
	require.NotEqual(t, -1, idxFinal)
	assert.Less(t, idxTemplate, idxStyle)
	assert.Less(t, idxStyle, idxClient)
	assert.Less(t, idxClient, idxContext)
	assert.Less(t, idxContext, idxFinal)

	// Style and context are embedded verbatim.
	assert.Contains(t, p, "Voz impersonal.")
	assert.Contains(t, p, "pago mensual")
}

func TestBuildPromptMissingFieldsGetPlaceholder(t *testing.T) {
	c := types.Client{FullName: "Juan García", ClientType: "individual", DocumentType: "DNI", DocumentNumber: "11111111H"}
	p := BuildPrompt(TemplateContract, c, "Contrato de arrendamiento", "", "", "")

	assert.Contains(t, p, "Domicilio: "+vars.MissingField)
	assert.Contains(t, p, "Nombre completo: Juan García")
	// Individuals without a representative omit the representative block.
	assert.NotContains(t, p, "Representante legal:")
	// No style, no style section.
	assert.NotContains(t, p, "ESTILO DEL DESPACHO")
	// The closing placeholder rule is always present.
	assert.Contains(t, p, vars.MissingField)
	assert.Contains(t, p, "Nunca inventes datos.")
}

func TestBuildPromptOrganizationRepresentative(t *testing.T) {
	c := types.Client{FullName: "ACME S.L.", ClientType: "organization"}
	p := BuildPrompt(TemplateContract, c, "Contrato marco", "", "", "")

	assert.Contains(t, p, "Representante legal: "+vars.MissingField)
	assert.Contains(t, p, "Documento del representante: "+vars.MissingField)
}

func TestBuildPromptJudicialTemplate(t *testing.T) {
	p := BuildPrompt(TemplateJudicial, fullClient(), "Demanda de juicio ordinario", "reclamación de 40.000 EUR", "civil", "")

	assert.Contains(t, p, "escrito judicial")
	for _, section := range []string{
		"1. Encabezado y resumen del caso",
		"2. Objeto del escrito",
		"3. Relato de los hechos",
		"4. Fundamentos de derecho",
		"5. Pruebas (si aplica)",
		"6. Petitorio",
		"7. Lugar, fecha y firma",
	} {
		assert.Contains(t, p, section)
	}
	assert.NotContains(t, p, "Redacta un contrato legal completo.")
}

func TestKindFor(t *testing.T) {
	assert.Equal(t, TemplateJudicial, KindFor(true))
	assert.Equal(t, TemplateContract, KindFor(false))
}

func TestBuildClausePrompt(t *testing.T) {
	p := BuildClausePrompt("CONTRATO ... CLAUSULA QUINTA ...", "confidencialidad", "mercantil",
		"Numeración ordinal.", []string{"Las partes guardarán secreto...", "La información confidencial..."})

	assert.Contains(t, p, "'confidencialidad'")
	assert.Contains(t, p, "Numeración ordinal.")
	assert.Contains(t, p, "[1] Las partes guardarán secreto...")
	assert.Contains(t, p, "[2] La información confidencial...")
	assert.Contains(t, p, "CLAUSULA QUINTA")

	// Without references the reference section disappears entirely.
	p = BuildClausePrompt("doc", "penalización", "", "", nil)
	assert.NotContains(t, p, "CLAUSULAS DE REFERENCIA")
}

func TestBuildRefinePromptKeepsPlaceholderRule(t *testing.T) {
	p := BuildRefinePrompt("CONTRATO con "+vars.MissingField, "acorta las clausulas", "")
	assert.Contains(t, p, "acorta las clausulas")
	assert.Contains(t, p, "marcadores de datos faltantes tal cual")
}
