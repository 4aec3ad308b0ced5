package services

import (
	"context"
	"fmt"
)

// ReferenceDocType tags reference-guide chunks in the vector store.
const ReferenceDocType = "reference_guide"

type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// ReferenceRetriever finds reference-guide passages relevant to a query.
type ReferenceRetriever interface {
	Retrieve(ctx context.Context, query string, limit int) (string, error)
}

type referenceRetriever struct {
	embedder Embedder
	qdrant   QdrantService
}

func NewReferenceRetriever(embedder Embedder, qdrant QdrantService) ReferenceRetriever {
	return &referenceRetriever{embedder: embedder, qdrant: qdrant}
}

func (r *referenceRetriever) Retrieve(ctx context.Context, query string, limit int) (string, error) {
	embedding, err := r.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to generate query embedding: %w", err)
	}

	results, err := r.qdrant.SearchSimilar(ctx, embedding, ReferenceDocType, limit)
	if err != nil {
		return "", fmt.Errorf("failed to search reference guides: %w", err)
	}

	return FormatRAGContext(results), nil
}
