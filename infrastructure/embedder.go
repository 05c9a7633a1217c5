package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

const defaultEmbeddingModel = "text-embedding-004"

// GeminiEmbedder computes sentence embeddings through the Gemini API. One
// instance is created at startup and shared; it is safe for concurrent use.
type GeminiEmbedder struct {
	client    *genai.Client
	modelName string
}

// NewGeminiEmbedder creates the embedding client from GEMINI_API_KEY and
// EMBEDDING_MODEL. A missing key or client failure is returned to the caller,
// which treats it as fatal.
func NewGeminiEmbedder(ctx context.Context) (*GeminiEmbedder, error) {
	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(os.Getenv("EMBEDDING_MODEL"))
	if model == "" {
		model = defaultEmbeddingModel
	}

	return &GeminiEmbedder{client: client, modelName: model}, nil
}

// Embed returns the embedding vector for the given text.
func (g *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := g.client.Models.EmbedContent(ctx, g.modelName, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, errors.New("gemini api returned empty embedding")
	}

	values := resp.Embeddings[0].Values
	vector := make([]float64, len(values))
	for i, v := range values {
		vector[i] = float64(v)
	}
	return vector, nil
}

func (g *GeminiEmbedder) Model() string {
	return g.modelName
}
