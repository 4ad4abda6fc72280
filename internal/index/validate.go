package index

import (
	"fmt"
	"math"

	"portfoliorag/internal/domain"
)

// Validate checks the structural invariants of the artifact. Every violation
// wraps domain.ErrInvalidIndex.
func (a *Artifact) Validate() error {
	if a == nil {
		return fmt.Errorf("%w: nil artifact", domain.ErrInvalidIndex)
	}
	if a.Version == "" {
		return fmt.Errorf("%w: missing version", domain.ErrInvalidIndex)
	}
	if a.EmbeddingDimensions <= 0 {
		return fmt.Errorf("%w: embeddingDimensions must be positive, got %d", domain.ErrInvalidIndex, a.EmbeddingDimensions)
	}
	if n := len(a.SearchConfig.Keywords); n != a.EmbeddingDimensions {
		return fmt.Errorf("%w: %d keywords for %d dimensions", domain.ErrInvalidIndex, n, a.EmbeddingDimensions)
	}
	if a.TotalChunks != len(a.Chunks) {
		return fmt.Errorf("%w: totalChunks is %d but %d chunks present", domain.ErrInvalidIndex, a.TotalChunks, len(a.Chunks))
	}
	if a.TotalDocuments != len(a.Documents) {
		return fmt.Errorf("%w: totalDocuments is %d but %d documents present", domain.ErrInvalidIndex, a.TotalDocuments, len(a.Documents))
	}
	if a.SearchConfig.DefaultTopK <= 0 {
		return fmt.Errorf("%w: defaultTopK must be positive, got %d", domain.ErrInvalidIndex, a.SearchConfig.DefaultTopK)
	}
	if m := a.SearchConfig.MinSimilarity; m < 0 || m > 1 {
		return fmt.Errorf("%w: minSimilarity %v outside [0,1]", domain.ErrInvalidIndex, m)
	}

	seen := make(map[string]struct{}, len(a.Chunks))
	for i, c := range a.Chunks {
		if c.ID == "" {
			return fmt.Errorf("%w: chunk %d has no id", domain.ErrInvalidIndex, i)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%w: duplicate chunk id %q", domain.ErrInvalidIndex, c.ID)
		}
		seen[c.ID] = struct{}{}
		if len(c.Embedding) != a.EmbeddingDimensions {
			return fmt.Errorf("%w: chunk %q has %d dimensions, want %d", domain.ErrInvalidIndex, c.ID, len(c.Embedding), a.EmbeddingDimensions)
		}
		for d, x := range c.Embedding {
			if math.IsNaN(x) || x < 0 || x > 1 {
				return fmt.Errorf("%w: chunk %q component %d is %v, want [0,1]", domain.ErrInvalidIndex, c.ID, d, x)
			}
		}
	}
	return nil
}
