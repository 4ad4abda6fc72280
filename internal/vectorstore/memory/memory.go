package memory

import (
	"fmt"
	"sync"

	"portfoliorag/internal/domain"
	"portfoliorag/internal/similarity"
)

// Storage is an in-memory vector store that scores every chunk on each scan.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	chunks    []domain.Chunk
}

func NewStorage() *Storage { return &Storage{} }

func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: dimension must be positive, got %d", domain.ErrInvalidInput, dimension)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.chunks = nil
	return nil
}

// Upsert appends chunks, rejecting the whole batch if any embedding has the
// wrong length.
func (s *Storage) Upsert(chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dimension == 0 {
		return fmt.Errorf("%w: storage not initialized", domain.ErrInvalidInput)
	}
	for _, c := range chunks {
		if len(c.Embedding) != s.dimension {
			return fmt.Errorf("%w: chunk %q has %d dimensions, want %d", domain.ErrDimensionMismatch, c.ID, len(c.Embedding), s.dimension)
		}
	}
	s.chunks = append(s.chunks, chunks...)
	return nil
}

func (s *Storage) Scan(vector []float64) ([]domain.ScoredChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d", domain.ErrDimensionMismatch, len(vector), s.dimension)
	}
	scored := make([]domain.ScoredChunk, len(s.chunks))
	for i, c := range s.chunks {
		sim, err := similarity.Cosine(c.Embedding, vector)
		if err != nil {
			return nil, err
		}
		scored[i] = domain.ScoredChunk{Chunk: c, Position: i, BaseSimilarity: sim, Similarity: sim}
	}
	return scored, nil
}

func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// Chunks returns a copy of the stored chunks in insertion order.
func (s *Storage) Chunks() []domain.Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Chunk, len(s.chunks))
	copy(out, s.chunks)
	return out
}
