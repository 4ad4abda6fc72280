package vectorstore

import "portfoliorag/internal/domain"

// Storage holds embedded chunks and scores all of them against a query vector.
type Storage interface {
	Init(dimension int) error
	Upsert(chunks []domain.Chunk) error
	// Scan returns one ScoredChunk per stored chunk, in insertion order, with
	// BaseSimilarity set to the cosine similarity against vector.
	Scan(vector []float64) ([]domain.ScoredChunk, error)
	Len() int
	Chunks() []domain.Chunk
}
