package types

import "time"

// Excerpt is one labeled sample window produced by the strategic sampler.
type Excerpt struct {
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// QuickStyle is the best-effort tone/summary of one training document.
type QuickStyle struct {
	Tone    string `json:"tone"`
	Summary string `json:"summary"`
}

// DeepStyleAnalysis is the structured profile the deep analyzer extracts from
// one document. Structure and Tone are load-bearing: an analysis missing either
// is unusable.
type DeepStyleAnalysis struct {
	Structure    *StructureProfile    `json:"structure"`
	Tone         *ToneProfile         `json:"tone"`
	Clauses      *ClauseProfile       `json:"clauses,omitempty"`
	Jurisdiction *JurisdictionProfile `json:"jurisdiction,omitempty"`
	Examples     map[string]string    `json:"examples,omitempty"`
}

func (a *DeepStyleAnalysis) Usable() bool {
	return a != nil && a.Structure != nil && a.Tone != nil
}

type StructureProfile struct {
	HasPreamble     bool   `json:"has_preamble"`
	ClauseNumbering string `json:"clause_numbering"`
	HeaderStyle     string `json:"header_style"`
	SignatureBlock  string `json:"signature_block"`
}

type ToneProfile struct {
	Formality string `json:"formality"`
	Archaisms string `json:"archaisms"`
	Voice     string `json:"voice"`
	Person    string `json:"person"`
}

type ClauseProfile struct {
	Confidentiality   string `json:"confidentiality"`
	Liability         string `json:"liability"`
	DisputeResolution string `json:"dispute_resolution"`
	Termination       string `json:"termination"`
}

type JurisdictionProfile struct {
	FormalRegister      bool   `json:"formal_register"`
	JudicialPhrasing    string `json:"judicial_phrasing"`
	CitationStyle       string `json:"citation_style"`
	ProceduralStructure bool   `json:"procedural_structure"`
}

// StyleExamples are the three canonical worked examples of a master profile.
type StyleExamples struct {
	Preamble        string `json:"preamble"`
	ClauseStructure string `json:"clause_structure"`
	SignatureBlock  string `json:"signature_block"`
}

// MasterStyleProfile is the firm's synthesized drafting voice. At most one
// active instance per tenant feeds generation.
type MasterStyleProfile struct {
	StyleInstruction string        `json:"style_instruction"`
	Checklist        []string      `json:"checklist"`
	Examples         StyleExamples `json:"examples"`
	Completeness     int           `json:"completeness_score"`
	MissingElements  []string      `json:"missing_elements"`
	Suggestions      []string      `json:"suggestions"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// Synthesis progress stages.
const (
	StageAnalyzing    = "analyzing"
	StageSynthesizing = "synthesizing"
	StageComplete     = "complete"
)

// Progress is one event of the synthesis state machine:
// analyzing (current/total) -> synthesizing (0/1 -> 1/1) -> complete.
type Progress struct {
	Stage   string `json:"stage"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
}
