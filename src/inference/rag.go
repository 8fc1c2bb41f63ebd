package inference

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/vectorstores"
	"github.com/tmc/langchaingo/vectorstores/pinecone"

	"www.github.com/Wanderer0074348/AgentRouter/src/config"
)

const (
	ragTopK           = 3
	ragScoreThreshold = 0.5
	ragMaxTokens      = 512
)

// RAGStore is the vector-backed memory: Pinecone for similarity search plus
// a low-temperature model to synthesize retrieved context into an answer.
type RAGStore struct {
	store vectorstores.VectorStore
	llm   llms.Model
}

func NewRAGStore(memCfg *config.MemoryConfig, chatCfg *config.ChatConfig, synthesisModel string) (*RAGStore, error) {
	if memCfg.PineconeAPIKey == "" || memCfg.PineconeHost == "" {
		return nil, fmt.Errorf("pinecone API key and host are required for the memory store")
	}

	embedderLLM, err := openai.New(
		openai.WithToken(chatCfg.APIKey),
		openai.WithEmbeddingModel("text-embedding-3-large"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(embedderLLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	store, err := pinecone.New(
		pinecone.WithAPIKey(memCfg.PineconeAPIKey),
		pinecone.WithHost(memCfg.PineconeHost),
		pinecone.WithEmbedder(embedder),
		pinecone.WithNameSpace(memCfg.Namespace),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Pinecone: %w", err)
	}

	synthLLM, err := openai.New(
		openai.WithToken(chatCfg.APIKey),
		openai.WithModel(synthesisModel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create synthesis client: %w", err)
	}

	return &RAGStore{
		store: store,
		llm:   synthLLM,
	}, nil
}

// Query retrieves the most similar documents and synthesizes an answer from
// them. An empty string with nil error means memory has nothing relevant.
func (r *RAGStore) Query(ctx context.Context, question string) (string, error) {
	docs, err := r.store.SimilaritySearch(ctx, question, ragTopK,
		vectorstores.WithScoreThreshold(ragScoreThreshold),
	)
	if err != nil {
		return "", fmt.Errorf("similarity search failed: %w", err)
	}
	if len(docs) == 0 {
		return "", nil
	}

	var sb strings.Builder
	for _, doc := range docs {
		sb.WriteString(doc.PageContent)
		sb.WriteString("\n")
	}

	prompt := fmt.Sprintf(
		"Answer the question using only the context below. If the context does not contain the answer, reply with an empty string.\n\nContext:\n%s\nQuestion: %s\n\nAnswer:",
		sb.String(), question,
	)

	answer, err := llms.GenerateFromSinglePrompt(ctx, r.llm, prompt,
		llms.WithTemperature(0),
		llms.WithMaxTokens(ragMaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("answer synthesis failed: %w", err)
	}

	return strings.TrimSpace(answer), nil
}

// AddDocument stores a document with optional metadata in the vector store.
func (r *RAGStore) AddDocument(ctx context.Context, text string, metadata map[string]string) error {
	doc := schema.Document{PageContent: text}
	if len(metadata) > 0 {
		doc.Metadata = make(map[string]any, len(metadata))
		for k, v := range metadata {
			doc.Metadata[k] = v
		}
	}

	if _, err := r.store.AddDocuments(ctx, []schema.Document{doc}); err != nil {
		return fmt.Errorf("failed to add document: %w", err)
	}
	return nil
}
