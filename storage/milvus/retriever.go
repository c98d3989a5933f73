package milvus

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/retriever/milvus"
	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/schema"
	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"lexstyle/vars"
)

// Filter scopes clause retrieval by scalar fields. TenantID is always set.
type Filter struct {
	TenantID     string
	DocumentType string
	CategoryID   string
}

// Retriever runs a semantic search over clause chunks.
func Retriever(ctx context.Context, cli client.Client, query string, filter *Filter, emb embedding.Embedder, topK int) ([]*schema.Document, error) {
	customConverter := func(ctx context.Context, result client.SearchResult) ([]*schema.Document, error) {
		docs := make([]*schema.Document, result.IDs.Len())
		for i := 0; i < result.IDs.Len(); i++ {
			id, err := result.IDs.GetAsString(i)
			if err != nil {
				return nil, fmt.Errorf("failed to get id: %w", err)
			}

			doc := &schema.Document{
				ID:       id,
				MetaData: make(map[string]any),
			}
			if result.Scores != nil && len(result.Scores) > i {
				doc = doc.WithScore(float64(result.Scores[i]))
			}

			for _, field := range result.Fields {
				switch field.Name() {
				case "content":
					if value, err := field.GetAsString(i); err == nil {
						doc.Content = value
					}
				case "doc_id", "tenant_id", "document_type", "category_id":
					if value, err := field.GetAsString(i); err == nil {
						doc.MetaData[field.Name()] = value
					}
				default:
					continue
				}
			}
			docs[i] = doc
		}
		return docs, nil
	}

	retr, err := milvus.NewRetriever(ctx, &milvus.RetrieverConfig{
		Client:            cli,
		Collection:        vars.COLLECTION,
		VectorField:       "vector",
		OutputFields:      []string{"content", "doc_id", "document_type"},
		DocumentConverter: customConverter,
		MetricType:        entity.L2,
		TopK:              topK,
		Embedding:         emb,
	})
	if err != nil {
		return nil, fmt.Errorf("init retriever failed: %v", err)
	}

	// make sure the collection is loaded before searching
	if err := cli.LoadCollection(ctx, vars.COLLECTION, false); err == nil {
		loadDeadline := time.Now().Add(5 * time.Second)
		for time.Now().Before(loadDeadline) {
			loadState, _ := cli.GetLoadState(ctx, vars.COLLECTION, []string{})
			if loadState == 3 { // LoadStateLoaded
				break
			}
			time.Sleep(100 * time.Millisecond)
		}
	}

	docs, err := retr.Retrieve(ctx, query, milvus.WithFilter(BuildExpr(filter)))
	if err != nil {
		return nil, fmt.Errorf("milvus retrieve failed: %v", err)
	}
	return docs, nil
}

// BuildExpr renders the scalar filter expression.
func BuildExpr(filter *Filter) string {
	if filter == nil {
		return ""
	}
	var exprs []string
	if filter.TenantID != "" {
		exprs = append(exprs, fmt.Sprintf("tenant_id == '%s'", filter.TenantID))
	}
	if filter.DocumentType != "" {
		exprs = append(exprs, fmt.Sprintf("document_type == '%s'", filter.DocumentType))
	}
	if filter.CategoryID != "" {
		exprs = append(exprs, fmt.Sprintf("category_id == '%s'", filter.CategoryID))
	}
	return strings.Join(exprs, " && ")
}
