package vars

import (
	"os"
)

// GetEnv returns the env value or the fallback when unset.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

const (
	// model names
	NOMIC  = "nomic-embed-text"
	BGEM3  = "bge-m3"
	QWEN7B = "qwen2.5:7b"
	QWEN3B = "qwen2.5:3b"
	GPT4O  = "gpt-4o-mini"

	// Milvus collection for clause chunks
	COLLECTION = "style_clause_collection_v1"

	// ES index for clause chunks
	CLAUSEINDEX = "style_clause_chunks_v1"

	// chat providers
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"

	// placeholder the model must emit for absent client data
	MissingField = "[DATO_FALTANTE]"
)

// sampler window sizes (bytes)
const (
	SampleWindow       = 3000
	ClauseWindowBefore = 500
	ClauseWindowAfter  = 1500
	QuickAnalyzeLimit  = 5000
)

// env configuration (Docker friendly)
var (
	// chat model
	PROVIDER    = GetEnv("CHAT_PROVIDER", ProviderOllama)
	OLLAMA_PATH = GetEnv("OLLAMA_PATH", "http://localhost:11434")
	CHAT_MODEL  = GetEnv("CHAT_MODEL", QWEN7B)
	OPENAI_KEY  = GetEnv("OPENAI_API_KEY", "")

	// PG
	PGUSER = GetEnv("PGUSER", "root")
	PGPWD  = GetEnv("PGPWD", "root")
	PGDB   = GetEnv("PGDB", "lexstyleDB")
	PGHOST = GetEnv("PGHOST", "localhost")
	PGPORT = GetEnv("PGPORT", "5432")

	// Milvus
	MILVUSADDR = GetEnv("MILVUSADDR", "127.0.0.1:19530")

	// ES
	ESADDR = GetEnv("ESADDR", "http://localhost:9200")

	// HTTP
	HTTPADDR = GetEnv("HTTP_ADDR", ":8081")
)
