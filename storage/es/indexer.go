package es

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
)

// ESIndexer stores clause chunks of training documents for BM25 retrieval.
type ESIndexer struct {
	client *elasticsearch.Client
	index  string
}

// GetClient exposes the ES client for the retriever side.
func (e *ESIndexer) GetClient() *elasticsearch.Client {
	return e.client
}

// NewESIndexer builds the client and ensures the index exists.
func NewESIndexer(addresses []string, indexName string) (*ESIndexer, error) {
	cfg := elasticsearch.Config{
		Addresses: addresses,
	}
	cli, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating the client: %s", err)
	}

	indexer := &ESIndexer{client: cli, index: indexName}
	if err := indexer.initMapping(context.Background()); err != nil {
		return nil, err
	}
	return indexer, nil
}

func (e *ESIndexer) initMapping(ctx context.Context) error {
	res, err := e.client.Indices.Exists([]string{e.index})
	if err != nil {
		return err
	}
	if res.StatusCode == 200 {
		return nil
	}

	// corpus is Spanish legal text
	mapping := `
	{
	  "settings": {
		"number_of_shards": 1,
		"number_of_replicas": 0
	  },
	  "mappings": {
		"properties": {
		  "tenant_id": { "type": "keyword" },
		  "doc_id":    { "type": "keyword" },
		  "chunk_id":  { "type": "keyword" },
		  "content": {
			"type": "text",
			"analyzer": "spanish"
		  },
		  "document_type": { "type": "keyword" },
		  "category_id":   { "type": "keyword" },
		  "tone_label":    { "type": "keyword" }
		}
	  }
	}`

	res, err = e.client.Indices.Create(
		e.index,
		e.client.Indices.Create.WithBody(strings.NewReader(mapping)),
	)
	if err != nil {
		return fmt.Errorf("create index error: %v", err)
	}
	if res.IsError() {
		return fmt.Errorf("create index response error: %s", res.String())
	}
	return nil
}

// Store bulk-indexes a document's clause chunks.
func (e *ESIndexer) Store(ctx context.Context, tenantID, docID string, chunks []*schema.Document) error {
	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         e.index,
		Client:        e.client,
		FlushInterval: 1,
	})
	if err != nil {
		return err
	}

	for _, chunk := range chunks {
		docModel := map[string]interface{}{
			"tenant_id": tenantID,
			"doc_id":    docID,
			"chunk_id":  chunk.ID,
			"content":   chunk.Content,
		}
		if val, ok := chunk.MetaData["document_type"]; ok {
			docModel["document_type"] = val
		}
		if val, ok := chunk.MetaData["category_id"]; ok {
			docModel["category_id"] = val
		}
		if val, ok := chunk.MetaData["tone_label"]; ok {
			docModel["tone_label"] = val
		}

		data, _ := json.Marshal(docModel)

		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: chunk.ID, // chunk id as _id avoids duplicates
			Body:       strings.NewReader(string(data)),
		})
		if err != nil {
			return err
		}
	}

	return bi.Close(ctx)
}

// DeleteByDocID removes all chunks of one document (delete and rollback paths).
func (e *ESIndexer) DeleteByDocID(ctx context.Context, docID string) error {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{
				"doc_id": docID,
			},
		},
	}

	var buf strings.Builder
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return fmt.Errorf("error encoding query: %s", err)
	}

	res, err := e.client.DeleteByQuery(
		[]string{e.index},
		strings.NewReader(buf.String()),
		e.client.DeleteByQuery.WithContext(ctx),
		e.client.DeleteByQuery.WithRefresh(true),
	)
	if err != nil {
		return fmt.Errorf("ES delete request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("ES delete response error: %s", res.String())
	}
	return nil
}
