package vars

// Prompt templates for the style pipeline. Rendered with strings.ReplaceAll
// over {{.Field}} placeholders.

const QUICKSTYLE = `
You are a legal writing analyst. Read the following excerpt of a law firm document
and classify its drafting style.

Return strict JSON with exactly these fields:
{
  "tone": "<one short tone label, e.g. 'Formal-archaic', 'Plain-modern', 'Technical'>",
  "summary": "<one sentence describing the document's drafting style>"
}

Document excerpt:
{{.Content}}

Output JSON only. No markdown.
`

const DEEPANALYSIS = `
You are a senior legal-style analyst. You receive strategic samples of ONE document
from a law firm (beginning, middle, end, and clause-anchored windows). Build a
structured stylistic profile of how this firm drafts.

Document type: {{.DocType}}
Category: {{.Category}}

Samples:
{{.Samples}}

Return strict JSON with this shape (every top-level field required; use your best
judgment when a sample is ambiguous, never leave "structure" or "tone" out):
{
  "structure": {
    "has_preamble": true,
    "clause_numbering": "<e.g. 'PRIMERA, SEGUNDA...', 'Arabic 1.1/1.2', 'Roman'>",
    "header_style": "<description of titles/headers>",
    "signature_block": "<description of the signature block format>"
  },
  "tone": {
    "formality": "<high|medium|low + nuance>",
    "archaisms": "<which archaic legal formulas are used, or 'none'>",
    "voice": "<active|passive|mixed>",
    "person": "<first|third|impersonal>"
  },
  "clauses": {
    "confidentiality": "<how confidentiality clauses are drafted, or ''>",
    "liability": "<how liability/indemnity clauses are drafted, or ''>",
    "dispute_resolution": "<how dispute/jurisdiction clauses are drafted, or ''>",
    "termination": "<how termination clauses are drafted, or ''>"
  },
  "jurisdiction": {
    "formal_register": true,
    "judicial_phrasing": "<standard judicial formulas observed, or ''>",
    "citation_style": "<how statutes/case law are cited, or ''>",
    "procedural_structure": false
  },
  "examples": {
    "<clause category>": "<short verbatim excerpt illustrating the style>"
  }
}

Output JSON only. No markdown.
`

const MASTERSYNTH = `
You are the chief legal-style editor of a law firm. You receive {{.Count}} structured
per-document style analyses plus the legal categories they cover. Synthesize ONE
canonical "master style profile" for the firm.

Rules:
1. Where analyses conflict, keep the majority / most representative pattern. Do NOT
   concatenate contradictory instructions.
2. "style_instruction" must be directly usable, verbatim, as a prompt fragment that
   instructs a drafting model to write in this firm's voice.
3. "checklist" must contain concrete, checkable assertions (e.g. "uses third-person
   impersonal voice", "confidentiality clause present with indemnity language").
4. Compose or select three canonical worked examples: a preamble, a clause structure,
   and a signature block.
5. "completeness_score" (0-100) reflects how much reliable signal the corpus gave you.
   List what is missing and what further documents would improve the profile.

Categories covered: {{.Categories}}

Per-document analyses (JSON):
{{.Analyses}}

Return strict JSON:
{
  "style_instruction": "...",
  "checklist": ["..."],
  "examples": {"preamble": "...", "clause_structure": "...", "signature_block": "..."},
  "completeness_score": 0,
  "missing_elements": ["..."],
  "suggestions": ["..."]
}

Output JSON only. No markdown.
`

const SIMPLESYNTH = `
You are a legal-style analyst. Derive a single style instruction for a law firm from
the raw text of its historical documents below. Describe tone, clause structure,
formulas and register so a drafting model can imitate the firm's voice.

Documents:
{{.Documents}}

Return strict JSON:
{
  "style_instruction": "...",
  "completeness_score": 0
}

Output JSON only. No markdown.
`
