package style

import (
	"regexp"

	"lexstyle/types"
	"lexstyle/vars"
)

// clausePatterns anchor extra sample windows on the clauses that carry the
// most stylistic signal. Corpus is Spanish-market legal, so patterns match
// Spanish first with English fallbacks.
var clausePatterns = []struct {
	label string
	re    *regexp.Regexp
}{
	{"Clausula Confidencialidad", regexp.MustCompile(`(?i)confidencialidad|confidencial|confidentiality|non-disclosure`)},
	{"Clausula Responsabilidad", regexp.MustCompile(`(?i)responsabilidad|indemnizaci[oó]n|liability|indemnif`)},
	{"Clausula Jurisdiccion", regexp.MustCompile(`(?i)jurisdicci[oó]n|resoluci[oó]n de (controversias|disputas)|arbitraje|dispute resolution|governing law`)},
	{"Clausula Terminacion", regexp.MustCompile(`(?i)terminaci[oó]n|rescisi[oó]n|termination`)},
}

// SampleStrategic selects representative excerpts of a document: the first,
// middle and last window plus one clause-anchored window per matched clause
// pattern (first match only). Overlapping windows are kept as-is; redundant
// context helps the analyzer. Pure function, all ranges clamped to [0, len].
func SampleStrategic(text string) []types.Excerpt {
	n := len(text)
	w := vars.SampleWindow

	mid := n / 2
	excerpts := []types.Excerpt{
		window(text, "Start", 0, w),
		window(text, "Middle", mid-w/2, mid+w/2),
		window(text, "End", n-w, n),
	}

	for _, cp := range clausePatterns {
		loc := cp.re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		excerpts = append(excerpts, window(text, cp.label, loc[0]-vars.ClauseWindowBefore, loc[0]+vars.ClauseWindowAfter))
	}
	return excerpts
}

func window(text, label string, start, end int) types.Excerpt {
	start = clamp(start, 0, len(text))
	end = clamp(end, 0, len(text))
	if end < start {
		end = start
	}
	return types.Excerpt{Label: label, Start: start, End: end, Text: text[start:end]}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
