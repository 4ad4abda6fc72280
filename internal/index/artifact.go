// Package index builds, validates and persists the Index Artifact: the frozen
// vocabulary, the embedded chunks and the default search configuration that
// query time relies on.
package index

import (
	"time"

	"portfoliorag/internal/domain"
	"portfoliorag/internal/embedding/keyword"
)

// FormatVersion is written to artifacts produced by this package.
const FormatVersion = "2.0"

// Default search configuration recorded in new artifacts.
const (
	DefaultTopK          = 4
	DefaultMinSimilarity = 0.05
)

// SearchConfig is the query-time configuration frozen into the artifact.
// Keywords is the vocabulary the chunk vectors were computed with.
type SearchConfig struct {
	DefaultTopK   int      `json:"defaultTopK"`
	MinSimilarity float64  `json:"minSimilarity"`
	Keywords      []string `json:"keywords"`
	ScaleChars    float64  `json:"scaleChars"`
	PrimaryBoost  float64  `json:"primaryBoost"`
	PrimaryTerms  []string `json:"primaryTerms"`
}

// Artifact is the serialized contract between build time and query time.
type Artifact struct {
	Version             string                `json:"version"`
	BuildID             string                `json:"buildId,omitempty"`
	BuildAt             time.Time             `json:"buildAt"`
	TotalDocuments      int                   `json:"totalDocuments"`
	TotalChunks         int                   `json:"totalChunks"`
	EmbeddingDimensions int                   `json:"embeddingDimensions"`
	Documents           []domain.DocumentInfo `json:"documents"`
	Chunks              []domain.Chunk        `json:"chunks"`
	SearchConfig        SearchConfig          `json:"searchConfig"`
}

// VectorizerSettings returns the keyword settings recorded in the artifact.
// Zero numbers and a null term list fall back to keyword defaults; a recorded
// empty term list stays empty.
func (a *Artifact) VectorizerSettings() keyword.Settings {
	s := keyword.Settings{
		ScaleChars:   a.SearchConfig.ScaleChars,
		PrimaryBoost: a.SearchConfig.PrimaryBoost,
	}
	if a.SearchConfig.PrimaryTerms != nil {
		s.PrimaryTerms = append([]string{}, a.SearchConfig.PrimaryTerms...)
	}
	return s
}

// NewVectorizer rebuilds the query-time vectorizer from the frozen vocabulary.
func (a *Artifact) NewVectorizer() *keyword.Vectorizer {
	vocab := a.SearchConfig.Keywords
	if vocab == nil {
		vocab = []string{}
	}
	return keyword.New(vocab, keyword.WithSettings(a.VectorizerSettings()))
}

// Stats summarizes the artifact.
func (a *Artifact) Stats() domain.IndexStats {
	counts := make(map[string]int)
	for _, c := range a.Chunks {
		counts[c.Type]++
	}
	docs := make([]domain.DocumentInfo, len(a.Documents))
	copy(docs, a.Documents)
	return domain.IndexStats{
		Version:             a.Version,
		BuildID:             a.BuildID,
		BuildAt:             a.BuildAt,
		TotalDocuments:      a.TotalDocuments,
		TotalChunks:         a.TotalChunks,
		EmbeddingDimensions: a.EmbeddingDimensions,
		Documents:           docs,
		SectionCounts:       counts,
	}
}
