package ingestion

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/cloudwego/eino/schema"
)

var (
	controlChars = regexp.MustCompile(`[\x00-\x08\x0B-\x0C\x0E-\x1F\x7F]`)
	multiSpace   = regexp.MustCompile(`[ \t]+`)
)

// CleanText removes control characters and invalid UTF-8 that PDF extraction
// leaves behind; they break both embeddings and prompt rendering.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\x00", "")
	text = controlChars.ReplaceAllString(text, "")

	if !utf8.ValidString(text) {
		v := make([]rune, 0, len(text))
		for i, r := range text {
			if r == utf8.RuneError {
				_, size := utf8.DecodeRuneInString(text[i:])
				if size == 1 {
					continue
				}
			}
			v = append(v, r)
		}
		text = string(v)
	}

	text = multiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// CleanChunks drops empty chunks and normalizes the rest.
func CleanChunks(chunks []*schema.Document) []*schema.Document {
	var out []*schema.Document
	for _, chunk := range chunks {
		chunk.Content = CleanText(chunk.Content)
		if chunk.Content != "" {
			out = append(out, chunk)
		}
	}
	return out
}
