package draft

import (
	"fmt"
	"strings"

	"lexstyle/types"
	"lexstyle/vars"
)

// TemplateKind selects the structural template once, at the top of the
// builder. Judicial filings and bilateral contracts have different mandatory
// sections and register.
type TemplateKind int

const (
	TemplateContract TemplateKind = iota
	TemplateJudicial
)

func KindFor(judicial bool) TemplateKind {
	if judicial {
		return TemplateJudicial
	}
	return TemplateContract
}

// BuildPrompt assembles the generation prompt. Section order is fixed:
// template header, style (when present), client data, free-text context,
// closing instructions. Absent optional client fields are rendered as the
// literal placeholder token; the model is never allowed to invent client data.
// Deterministic: identical inputs yield byte-identical prompts.
func BuildPrompt(kind TemplateKind, client types.Client, contractType, contextText, category, styleText string) string {
	var b strings.Builder

	switch kind {
	case TemplateJudicial:
		b.WriteString("Redacta un escrito judicial dirigido al tribunal, en registro respetuoso y formal.\n")
		fmt.Fprintf(&b, "Tipo de escrito: %s\n", contractType)
		if category != "" {
			fmt.Fprintf(&b, "Materia: %s\n", category)
		}
		b.WriteString("Secciones obligatorias, en este orden:\n")
		b.WriteString("1. Encabezado y resumen del caso\n")
		b.WriteString("2. Objeto del escrito\n")
		b.WriteString("3. Relato de los hechos\n")
		b.WriteString("4. Fundamentos de derecho\n")
		b.WriteString("5. Pruebas (si aplica)\n")
		b.WriteString("6. Petitorio\n")
		b.WriteString("7. Lugar, fecha y firma (placeholder de firma)\n")
	default:
		b.WriteString("Redacta un contrato legal completo.\n")
		fmt.Fprintf(&b, "Tipo de contrato: %s\n", contractType)
		if category != "" {
			fmt.Fprintf(&b, "Categoria: %s\n", category)
		}
	}

	if styleText != "" {
		b.WriteString("\n=== ESTILO DEL DESPACHO (OBLIGATORIO) ===\n")
		b.WriteString("Debes seguir estrictamente estas instrucciones de estilo:\n")
		b.WriteString(styleText)
		b.WriteString("\n")
	}

	b.WriteString("\n=== DATOS DEL CLIENTE (OBLIGATORIO) ===\n")
	fmt.Fprintf(&b, "Nombre completo: %s\n", orPlaceholder(client.FullName))
	fmt.Fprintf(&b, "Tipo de cliente: %s\n", orPlaceholder(client.ClientType))
	fmt.Fprintf(&b, "Documento de identidad: %s %s\n", orPlaceholder(client.DocumentType), orPlaceholder(client.DocumentNumber))
	fmt.Fprintf(&b, "Domicilio: %s\n", orPlaceholder(client.Address))
	if client.ClientType == "organization" || client.LegalRepName != "" || client.LegalRepID != "" {
		fmt.Fprintf(&b, "Representante legal: %s\n", orPlaceholder(client.LegalRepName))
		fmt.Fprintf(&b, "Documento del representante: %s\n", orPlaceholder(client.LegalRepID))
	}

	if contextText != "" {
		b.WriteString("\n=== CONTEXTO ===\n")
		b.WriteString(contextText)
		b.WriteString("\n")
	}

	b.WriteString("\n=== INSTRUCCIONES FINALES ===\n")
	if category != "" {
		fmt.Fprintf(&b, "- Adapta el tono y las clausulas a la materia '%s'.\n", category)
	} else {
		b.WriteString("- Adapta el tono y las clausulas al tipo de documento.\n")
	}
	if styleText != "" {
		b.WriteString("- Respeta la seccion de estilo del despacho en todo el documento.\n")
	}
	fmt.Fprintf(&b, "- Usa estrictamente el marcador %s para cualquier dato del cliente no proporcionado. Nunca inventes datos.\n", vars.MissingField)
	b.WriteString("- Devuelve unicamente el texto legal final, sin explicaciones ni comentarios.\n")

	return b.String()
}

func orPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return vars.MissingField
	}
	return v
}

// BuildClausePrompt appends one clause to an existing draft. Reference clauses
// retrieved from the firm's own corpus are embedded as style anchors.
func BuildClausePrompt(content, clauseType, category, styleText string, references []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Redacta UNA clausula de tipo '%s' para añadir al siguiente documento.\n", clauseType)
	if category != "" {
		fmt.Fprintf(&b, "Materia: %s\n", category)
	}
	if styleText != "" {
		b.WriteString("\n=== ESTILO DEL DESPACHO (OBLIGATORIO) ===\n")
		b.WriteString(styleText)
		b.WriteString("\n")
	}
	if len(references) > 0 {
		b.WriteString("\n=== CLAUSULAS DE REFERENCIA DEL DESPACHO ===\n")
		for i, ref := range references {
			fmt.Fprintf(&b, "[%d] %s\n", i+1, ref)
		}
	}
	b.WriteString("\n=== DOCUMENTO ACTUAL ===\n")
	b.WriteString(content)
	b.WriteString("\n\n=== INSTRUCCIONES FINALES ===\n")
	b.WriteString("- Devuelve unicamente el texto de la nueva clausula, numerada de forma consistente con el documento.\n")
	return b.String()
}

// BuildRefinePrompt rewrites the whole document toward an objective.
func BuildRefinePrompt(content, objective, styleText string) string {
	var b strings.Builder
	b.WriteString("Reescribe el siguiente documento legal completo segun este objetivo:\n")
	b.WriteString(objective)
	b.WriteString("\n")
	if styleText != "" {
		b.WriteString("\n=== ESTILO DEL DESPACHO (OBLIGATORIO) ===\n")
		b.WriteString(styleText)
		b.WriteString("\n")
	}
	b.WriteString("\n=== DOCUMENTO ===\n")
	b.WriteString(content)
	b.WriteString("\n\n=== INSTRUCCIONES FINALES ===\n")
	b.WriteString("- Conserva todos los datos reales y los marcadores de datos faltantes tal cual.\n")
	b.WriteString("- Devuelve unicamente el documento reescrito completo.\n")
	return b.String()
}

// BuildImprovePrompt is a style/clarity pass over the whole document.
func BuildImprovePrompt(content, styleText string) string {
	return BuildRefinePrompt(content,
		"Mejora la claridad, la precision juridica y la consistencia de estilo sin alterar el contenido sustantivo.",
		styleText)
}
