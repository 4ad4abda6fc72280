package domain

// Document represents a single text file loaded into the system.
type Document struct {
	ID      string
	Path    string
	Content string
}

// Chunk is a labeled passage of a document used for retrieval.
// Chunks are created once at build time and never mutated afterwards.
type Chunk struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Source    string    `json:"source"`
	WordCount int       `json:"wordCount"`
	Embedding []float64 `json:"embedding"`
}

// ScoredChunk pairs a stored chunk with its raw and boosted similarity.
// Position is the chunk's index in build order.
type ScoredChunk struct {
	Chunk          Chunk
	Position       int
	BaseSimilarity float64
	Similarity     float64
}

// Chunker splits documents into labeled chunks.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}

// Searcher is the retrieval surface consumed by the CLI, the MCP tools and the inspector.
type Searcher interface {
	Search(query string, opts SearchOptions) (*SearchResponse, error)
	SearchWithExpansion(query string, opts SearchOptions) (*ExpandedSearchResponse, error)
}
