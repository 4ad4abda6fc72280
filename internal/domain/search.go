package domain

import "time"

// SearchOptions configures a single search call. Zero values fall back to
// the defaults stored in the loaded index.
type SearchOptions struct {
	// TopK is the maximum number of results; 0 means the index default.
	TopK int

	// MinSimilarity filters out results below this boosted score; nil means the index default.
	MinSimilarity *float64

	// NoBoost disables the rank boost layer and ranks by raw cosine similarity.
	NoBoost bool
}

// Threshold returns a pointer to v, for use as SearchOptions.MinSimilarity.
func Threshold(v float64) *float64 { return &v }

// SearchResult is a retrieved chunk with its boosted similarity.
type SearchResult struct {
	ChunkID        string  `json:"chunkId"`
	Content        string  `json:"content"`
	Similarity     float64 `json:"similarity"`
	BaseSimilarity float64 `json:"baseSimilarity"`
	Source         string  `json:"source"`
	Type           string  `json:"type"`
	Title          string  `json:"title"`
}

// Source is a display-oriented citation of a retrieved chunk.
type Source struct {
	Index      int    `json:"index"`
	Title      string `json:"title"`
	Type       string `json:"type"`
	Source     string `json:"source"`
	Similarity int    `json:"similarity"`
	Preview    string `json:"preview"`
	WordCount  int    `json:"wordCount"`
}

// SearchStats reports how much of the index a search touched.
type SearchStats struct {
	TotalChunks   int `json:"totalChunks"`
	CheckedChunks int `json:"checkedChunks"`
	FoundChunks   int `json:"foundChunks"`
}

// SearchResponse is the output handed to the chat collaborator.
type SearchResponse struct {
	Query      string         `json:"query"`
	Results    []SearchResult `json:"results"`
	Context    string         `json:"context"`
	Sources    []Source       `json:"sources"`
	HasResults bool           `json:"hasResults"`
	Stats      SearchStats    `json:"stats"`
}

// ExpandedSearchResponse is a SearchResponse merged across query variants.
type ExpandedSearchResponse struct {
	SearchResponse
	ExpandedQueries []string `json:"expandedQueries"`
}

// DocumentInfo is per-source metadata recorded at build time.
type DocumentInfo struct {
	Filename    string    `json:"filename"`
	ProcessedAt time.Time `json:"processedAt"`
	ChunksCount int       `json:"chunksCount"`
	Sections    []string  `json:"sections"`
	Summary     string    `json:"summary,omitempty"`
}

// IndexStats summarizes a loaded index.
type IndexStats struct {
	Version             string         `json:"version"`
	BuildID             string         `json:"buildId"`
	BuildAt             time.Time      `json:"buildAt"`
	TotalDocuments      int            `json:"totalDocuments"`
	TotalChunks         int            `json:"totalChunks"`
	EmbeddingDimensions int            `json:"embeddingDimensions"`
	Documents           []DocumentInfo `json:"documents"`
	SectionCounts       map[string]int `json:"sectionCounts"`
}
