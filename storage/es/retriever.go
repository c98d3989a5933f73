package es

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Filter scopes clause retrieval. TenantID is always required.
type Filter struct {
	TenantID     string
	DocumentType string
	CategoryID   string
	DocIDs       []string
}

// Retriever runs a BM25 match over clause chunks with term filters.
func Retriever(ctx context.Context, client *elasticsearch.Client, index, query string, filter *Filter, topK int) ([]*schema.Document, error) {
	esQuery := buildQuery(query, filter, topK)

	var buf strings.Builder
	if err := json.NewEncoder(&buf).Encode(esQuery); err != nil {
		return nil, fmt.Errorf("error encoding query: %s", err)
	}

	req := esapi.SearchRequest{
		Index: []string{index},
		Body:  strings.NewReader(buf.String()),
	}

	res, err := req.Do(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("error getting response: %s", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error response: %s", res.String())
	}

	var result map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error parsing response body: %s", err)
	}

	hits, ok := result["hits"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid response format")
	}
	hitsList, ok := hits["hits"].([]interface{})
	if !ok {
		return []*schema.Document{}, nil
	}

	docs := make([]*schema.Document, 0, len(hitsList))
	for _, hit := range hitsList {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		id, _ := hitMap["_id"].(string)
		source, ok := hitMap["_source"].(map[string]interface{})
		if !ok {
			continue
		}

		var score float64
		if scoreVal, ok := hitMap["_score"].(float64); ok {
			score = scoreVal
		}

		doc := &schema.Document{
			ID:       id,
			Content:  toString(source["content"]),
			MetaData: make(map[string]any),
		}
		doc = doc.WithScore(score)
		for _, key := range []string{"doc_id", "chunk_id", "document_type", "category_id", "tone_label"} {
			if val, ok := source[key]; ok {
				doc.MetaData[key] = val
			}
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func buildQuery(query string, filter *Filter, topK int) map[string]interface{} {
	must := []map[string]interface{}{
		{
			"match": map[string]interface{}{
				"content": query,
			},
		},
	}

	var filters []map[string]interface{}
	if filter != nil {
		if filter.TenantID != "" {
			filters = append(filters, map[string]interface{}{
				"term": map[string]interface{}{"tenant_id": filter.TenantID},
			})
		}
		if filter.DocumentType != "" {
			filters = append(filters, map[string]interface{}{
				"term": map[string]interface{}{"document_type": filter.DocumentType},
			})
		}
		if filter.CategoryID != "" {
			filters = append(filters, map[string]interface{}{
				"term": map[string]interface{}{"category_id": filter.CategoryID},
			})
		}
		if len(filter.DocIDs) > 0 {
			filters = append(filters, map[string]interface{}{
				"terms": map[string]interface{}{"doc_id": filter.DocIDs},
			})
		}
	}

	boolQuery := map[string]interface{}{"must": must}
	if len(filters) > 0 {
		boolQuery["filter"] = filters
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
		"size":  topK,
	}
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
