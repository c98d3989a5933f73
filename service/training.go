package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/loader/file"
	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	"github.com/cloudwego/eino-ext/components/document/transformer/splitter/semantic"
	"github.com/cloudwego/eino/components/document/parser"
	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/indexer"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	milvusclient "github.com/milvus-io/milvus-sdk-go/v2/client"
	"go.uber.org/zap"

	"lexstyle/logic/gateway"
	"lexstyle/logic/ingestion"
	"lexstyle/logic/style"
	"lexstyle/storage/es"
	"lexstyle/storage/milvus"
	"lexstyle/storage/postgres"
	"lexstyle/types"
	"lexstyle/vars"
)

// TrainingService owns the training-document corpus: upload ingestion,
// best-effort quick style labeling, and the clause chunk indexes.
type TrainingService struct {
	docRepo      *postgres.TrainingDocRepo
	gw           *gateway.Client
	embedder     embedding.Embedder
	indexer      indexer.Indexer
	esIndexer    *es.ESIndexer
	milvusClient milvusclient.Client
	log          *zap.Logger
}

func NewTrainingService(docRepo *postgres.TrainingDocRepo, gw *gateway.Client, embedder embedding.Embedder, idx indexer.Indexer, esIndexer *es.ESIndexer, milvusClient milvusclient.Client, log *zap.Logger) *TrainingService {
	return &TrainingService{
		docRepo:      docRepo,
		gw:           gw,
		embedder:     embedder,
		indexer:      idx,
		esIndexer:    esIndexer,
		milvusClient: milvusClient,
		log:          log,
	}
}

// UploadAndProcess ingests one uploaded PDF: extract text, best-effort quick
// style analysis, PG insert, semantic chunking, ES + Milvus indexing. Later
// stage failures roll back the earlier ones so a document is either fully
// ingested or absent.
func (s *TrainingService) UploadAndProcess(ctx context.Context, tenantID string, fileHeader *multipart.FileHeader, docType, categoryID string) (string, error) {
	if strings.TrimSpace(docType) == "" {
		return "", fmt.Errorf("%w: document type is required", types.ErrInvalidInput)
	}

	startTime := time.Now()
	srcFile, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer srcFile.Close()

	p, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: false})
	if err != nil {
		return "", err
	}
	docs, err := p.Parse(ctx, srcFile, parser.WithURI(fileHeader.Filename))
	if err != nil {
		return "", fmt.Errorf("parse pdf failed: %v", err)
	}
	if len(docs) == 0 {
		return "", fmt.Errorf("%w: no text extracted from %s", types.ErrInvalidInput, fileHeader.Filename)
	}
	s.log.Debug("pdf parsed", zap.String("file", fileHeader.Filename), zap.Duration("took", time.Since(startTime)))

	var b strings.Builder
	for _, doc := range docs {
		b.WriteString(doc.Content)
		b.WriteString("\n")
	}
	rawText := ingestion.CleanText(b.String())
	if rawText == "" {
		return "", fmt.Errorf("%w: empty document %s", types.ErrInvalidInput, fileHeader.Filename)
	}

	// dedupe by file name per tenant
	if existing, _ := s.docRepo.GetByFileName(ctx, tenantID, fileHeader.Filename); existing != nil {
		s.log.Info("skipping duplicate upload", zap.String("file", fileHeader.Filename))
		return existing.DocID, nil
	}

	// best effort; never fails the upload
	quick := style.QuickAnalyze(ctx, s.gw, rawText)

	docID := uuid.New().String()
	now := time.Now()
	err = s.docRepo.Create(ctx, &postgres.TrainingDocument{
		DocID:        docID,
		TenantID:     tenantID,
		FileName:     fileHeader.Filename,
		RawText:      rawText,
		DocumentType: docType,
		CategoryID:   categoryID,
		ToneLabel:    quick.Tone,
		StyleSummary: quick.Summary,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return "", fmt.Errorf("store document failed: %w", err)
	}

	if err := s.indexChunks(ctx, tenantID, docID, docType, categoryID, quick.Tone, fileHeader.Filename, rawText); err != nil {
		_ = s.docRepo.Delete(ctx, tenantID, docID)
		return "", err
	}

	s.log.Info("training document ingested",
		zap.String("doc_id", docID),
		zap.String("file", fileHeader.Filename),
		zap.Duration("took", time.Since(startTime)))
	return docID, nil
}

func (s *TrainingService) indexChunks(ctx context.Context, tenantID, docID, docType, categoryID, toneLabel, fileName, rawText string) error {
	splitter, err := semantic.NewSplitter(ctx, &semantic.Config{
		Embedding:    s.embedder,
		BufferSize:   5,
		MinChunkSize: 200,
		Separators:   []string{"\n\n", "\n", ". ", "; "},
		LenFunc: func(s string) int {
			return len([]rune(s))
		},
		Percentile: 0.85,
	})
	if err != nil {
		return fmt.Errorf("build splitter failed: %v", err)
	}

	doc := &schema.Document{
		Content: rawText,
		MetaData: map[string]any{
			file.MetaKeyFileName: fileName,
		},
	}
	chunks, err := splitter.Transform(ctx, []*schema.Document{doc})
	if err != nil {
		return fmt.Errorf("split failed: %v", err)
	}
	chunks = ingestion.CleanChunks(chunks)
	if len(chunks) == 0 {
		s.log.Warn("no usable chunks", zap.String("doc_id", docID))
		return nil
	}

	for _, chunk := range chunks {
		chunk.ID = uuid.New().String()
		if chunk.MetaData == nil {
			chunk.MetaData = make(map[string]any)
		}
		chunk.MetaData["tenant_id"] = tenantID
		chunk.MetaData["doc_id"] = docID
		chunk.MetaData["document_type"] = docType
		chunk.MetaData["category_id"] = categoryID
		chunk.MetaData["tone_label"] = toneLabel
	}

	if err := s.esIndexer.Store(ctx, tenantID, docID, chunks); err != nil {
		return fmt.Errorf("es store failed: %w", err)
	}
	if _, err := s.indexer.Store(ctx, chunks); err != nil {
		_ = s.esIndexer.DeleteByDocID(ctx, docID)
		return fmt.Errorf("milvus store failed: %w", err)
	}
	return nil
}

// List returns the tenant's training corpus.
func (s *TrainingService) List(ctx context.Context, tenantID string) ([]postgres.TrainingDocument, error) {
	return s.docRepo.ListByTenant(ctx, tenantID)
}

// Delete removes a document and its indexed chunks.
func (s *TrainingService) Delete(ctx context.Context, tenantID, docID string) error {
	if _, err := s.docRepo.GetByID(ctx, tenantID, docID); err != nil {
		return err
	}
	if err := s.docRepo.Delete(ctx, tenantID, docID); err != nil {
		return err
	}
	if err := s.esIndexer.DeleteByDocID(ctx, docID); err != nil {
		s.log.Warn("es deindex failed", zap.String("doc_id", docID), zap.Error(err))
	}
	if err := milvus.DeleteByDocID(ctx, s.milvusClient, vars.COLLECTION, docID); err != nil {
		s.log.Warn("milvus deindex failed", zap.String("doc_id", docID), zap.Error(err))
	}
	return nil
}

// BackfillQuickStyle re-runs the quick analyzer for unlabeled documents.
// Invoked by the nightly job; returns how many rows got a usable label.
func (s *TrainingService) BackfillQuickStyle(ctx context.Context, limit int) (int, error) {
	docs, err := s.docRepo.ListMissingTone(ctx, limit)
	if err != nil {
		return 0, err
	}
	updated := 0
	for _, doc := range docs {
		quick := style.QuickAnalyze(ctx, s.gw, doc.RawText)
		if quick.Tone == "Unknown" {
			continue
		}
		if err := s.docRepo.UpdateQuickStyle(ctx, doc.DocID, quick.Tone, quick.Summary); err != nil {
			s.log.Warn("backfill update failed", zap.String("doc_id", doc.DocID), zap.Error(err))
			continue
		}
		updated++
	}
	return updated, nil
}
