package milvus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino-ext/components/indexer/milvus"
	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/indexer"
	"github.com/cloudwego/eino/schema"
	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
)

// NewClauseIndexerWithClient builds the clause-chunk vector index on a shared
// Milvus connection. The embedding dimension is probed from the embedder so
// the schema always matches the configured model.
func NewClauseIndexerWithClient(ctx context.Context, cli client.Client, embedder embedding.Embedder, collectionName string) (indexer.Indexer, error) {
	vecs, err := embedder.EmbedStrings(ctx, []string{"test"})
	if err != nil {
		return nil, fmt.Errorf("embedder probe failed: %v", err)
	}
	dim := len(vecs[0])

	fields := []*entity.Field{
		{
			Name:       "id",
			DataType:   entity.FieldTypeVarChar,
			PrimaryKey: true,
			AutoID:     false,
			TypeParams: map[string]string{"max_length": "64"},
		},
		{
			Name:       "doc_id",
			DataType:   entity.FieldTypeVarChar,
			AutoID:     false,
			TypeParams: map[string]string{"max_length": "64"},
		},
		{
			Name:       "tenant_id",
			DataType:   entity.FieldTypeVarChar,
			AutoID:     false,
			TypeParams: map[string]string{"max_length": "64"},
		},
		{
			Name:       "vector",
			DataType:   entity.FieldTypeFloatVector,
			TypeParams: map[string]string{"dim": fmt.Sprintf("%d", dim)},
		},
		{
			Name:       "content",
			DataType:   entity.FieldTypeVarChar,
			TypeParams: map[string]string{"max_length": "65535"},
		},
		{
			Name: "document_type", DataType: entity.FieldTypeVarChar,
			TypeParams: map[string]string{"max_length": "255"},
		},
		{
			Name: "category_id", DataType: entity.FieldTypeVarChar,
			TypeParams: map[string]string{"max_length": "64"},
		},
		{
			Name:     "metadata",
			DataType: entity.FieldTypeJSON,
		},
	}

	converter := func(ctx context.Context, docs []*schema.Document, vectors [][]float64) ([]interface{}, error) {
		rows := make([]interface{}, len(docs))
		for i, doc := range docs {
			vec32 := make([]float32, len(vectors[i]))
			for j, v := range vectors[i] {
				vec32[j] = float32(v)
			}

			var docID, tenantID, documentType, categoryID string
			if doc.MetaData != nil {
				docID, _ = doc.MetaData["doc_id"].(string)
				tenantID, _ = doc.MetaData["tenant_id"].(string)
				documentType, _ = doc.MetaData["document_type"].(string)
				categoryID, _ = doc.MetaData["category_id"].(string)
			}
			if doc.MetaData == nil {
				doc.MetaData = make(map[string]interface{})
			}
			metaBytes, err := json.Marshal(doc.MetaData)
			if err != nil {
				metaBytes = []byte("{}")
			}

			rows[i] = map[string]interface{}{
				"id":            doc.ID,
				"doc_id":        docID,
				"tenant_id":     tenantID,
				"vector":        vec32,
				"content":       doc.Content,
				"document_type": documentType,
				"category_id":   categoryID,
				"metadata":      metaBytes,
			}
		}
		return rows, nil
	}

	idx, err := milvus.NewIndexer(ctx, &milvus.IndexerConfig{
		Client:            cli,
		Collection:        collectionName,
		Embedding:         embedder,
		Fields:            fields,
		DocumentConverter: converter,
		MetricType:        milvus.L2,
	})
	if err != nil {
		return nil, fmt.Errorf("create indexer failed: %v", err)
	}

	// replace the default vector index with HNSW and add scalar indexes for
	// the filter fields; collection must be released before touching indexes
	_ = cli.ReleaseCollection(ctx, collectionName)
	_ = cli.DropIndex(ctx, collectionName, "vector")

	hnswIdx, _ := entity.NewIndexHNSW(entity.L2, 16, 200)
	if err := cli.CreateIndex(ctx, collectionName, "vector", hnswIdx, false); err != nil {
		return nil, fmt.Errorf("create HNSW index failed: %v", err)
	}
	for _, field := range []string{"tenant_id", "doc_id", "document_type", "category_id"} {
		if err := cli.CreateIndex(ctx, collectionName, field, entity.NewScalarIndex(), false); err != nil {
			return nil, fmt.Errorf("create %s index failed: %v", field, err)
		}
	}

	if err := cli.LoadCollection(ctx, collectionName, false); err != nil {
		return nil, fmt.Errorf("load collection failed: %v", err)
	}

	return idx, nil
}

// DeleteByDocID removes all chunks of one document (delete and rollback paths).
func DeleteByDocID(ctx context.Context, cli client.Client, collectionName, docID string) error {
	return cli.Delete(ctx, collectionName, "", fmt.Sprintf("doc_id == '%s'", docID))
}
