package rank

import (
	"sort"

	"github.com/cloudwego/eino/schema"
)

// Config weights the two retrieval sources when fusing clause results.
type Config struct {
	VectorWeight  float64 // Milvus semantic score weight
	KeywordWeight float64 // ES BM25 score weight
	TopK          int
}

func DefaultConfig() *Config {
	return &Config{VectorWeight: 0.6, KeywordWeight: 0.4, TopK: 5}
}

// Fuse merges Milvus and ES results: min-max normalize each result set,
// dedupe by chunk ID accumulating weighted scores, sort descending, cut TopK.
func Fuse(vectorDocs, keywordDocs []*schema.Document, cfg *Config) []*schema.Document {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	type scored struct {
		doc   *schema.Document
		score float64
	}
	merged := make(map[string]*scored)
	order := make([]string, 0, len(vectorDocs)+len(keywordDocs))

	add := func(docs []*schema.Document, weight float64) {
		norm := normalize(docs)
		for i, doc := range docs {
			if doc == nil || doc.ID == "" {
				continue
			}
			if s, ok := merged[doc.ID]; ok {
				s.score += norm[i] * weight
				continue
			}
			merged[doc.ID] = &scored{doc: doc, score: norm[i] * weight}
			order = append(order, doc.ID)
		}
	}
	add(vectorDocs, cfg.VectorWeight)
	add(keywordDocs, cfg.KeywordWeight)

	result := make([]*scored, 0, len(order))
	for _, id := range order {
		result = append(result, merged[id])
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].score > result[j].score })

	topK := cfg.TopK
	if topK <= 0 || topK > len(result) {
		topK = len(result)
	}
	out := make([]*schema.Document, 0, topK)
	for _, s := range result[:topK] {
		out = append(out, s.doc.WithScore(s.score))
	}
	return out
}

// normalize maps scores to [0,1] per result set so Milvus distances and ES
// BM25 scores become comparable.
func normalize(docs []*schema.Document) []float64 {
	out := make([]float64, len(docs))
	if len(docs) == 0 {
		return out
	}
	min, max := docs[0].Score(), docs[0].Score()
	for _, d := range docs {
		if d.Score() < min {
			min = d.Score()
		}
		if d.Score() > max {
			max = d.Score()
		}
	}
	for i, d := range docs {
		if max == min {
			out[i] = 1
			continue
		}
		out[i] = (d.Score() - min) / (max - min)
	}
	return out
}
