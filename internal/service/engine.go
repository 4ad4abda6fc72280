// Package service implements the retrieval engine: it scores every indexed
// chunk against a query, applies rank boosts and assembles the context and
// source citations handed to the chat collaborator.
package service

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"portfoliorag/internal/domain"
	"portfoliorag/internal/embedding"
	"portfoliorag/internal/index"
	"portfoliorag/internal/similarity"
	"portfoliorag/internal/vectorstore"
	"portfoliorag/internal/vectorstore/memory"
)

// Context ordering modes.
const (
	OrderPriority = "priority"
	OrderRank     = "rank"
)

// Engine defaults.
const (
	DefaultContextMaxChars   = 1500
	DefaultPreviewChars      = 100
	DefaultExpansionVariants = 3
	DefaultExpansionTopK     = 5
	DefaultDedupePrefix      = 50
)

var _ domain.Searcher = (*Engine)(nil)

// Engine answers searches over one loaded index. It never mutates the index
// after construction and is safe for concurrent use.
type Engine struct {
	artifact   *index.Artifact
	store      vectorstore.Storage
	vectorizer embedding.Vectorizer
	booster    *similarity.Booster

	defaultTopK       int
	minSimilarity     float64
	contextMaxChars   int
	contextOrder      string
	previewChars      int
	expansionVariants int
	expansionTopK     int
	dedupePrefix      int
	synonyms          []Synonym

	logger *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithVectorizer replaces the vectorizer rebuilt from the artifact. Its
// vocabulary must equal the artifact keywords.
func WithVectorizer(v embedding.Vectorizer) Option {
	return func(e *Engine) { e.vectorizer = v }
}

// WithStorage sets the store the chunks are loaded into.
func WithStorage(s vectorstore.Storage) Option {
	return func(e *Engine) { e.store = s }
}

// WithBoostConfig replaces the default boost constants.
func WithBoostConfig(cfg similarity.BoostConfig) Option {
	return func(e *Engine) { e.booster = similarity.NewBooster(cfg) }
}

// WithContextMaxChars sets the context length cap.
func WithContextMaxChars(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.contextMaxChars = n
		}
	}
}

// WithContextOrder selects OrderPriority or OrderRank.
func WithContextOrder(order string) Option {
	return func(e *Engine) {
		if order != "" {
			e.contextOrder = order
		}
	}
}

// WithPreviewChars sets the source preview length.
func WithPreviewChars(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.previewChars = n
		}
	}
}

// WithExpansion sets the number of query variants searched and the per-variant topK.
func WithExpansion(variants, topK int) Option {
	return func(e *Engine) {
		if variants > 0 {
			e.expansionVariants = variants
		}
		if topK > 0 {
			e.expansionTopK = topK
		}
	}
}

// WithSynonyms replaces the query expansion table.
func WithSynonyms(s []Synonym) Option {
	return func(e *Engine) { e.synonyms = s }
}

// WithLogger sets the engine logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Open loads the artifact at path and builds an Engine over it.
func Open(path string, opts ...Option) (*Engine, error) {
	art, err := index.Load(path)
	if err != nil {
		return nil, err
	}
	return NewEngine(art, opts...)
}

// NewEngine validates the artifact and loads its chunks into the store.
func NewEngine(art *index.Artifact, opts ...Option) (*Engine, error) {
	if err := art.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		artifact:          art,
		booster:           similarity.NewBooster(similarity.DefaultBoostConfig()),
		defaultTopK:       art.SearchConfig.DefaultTopK,
		minSimilarity:     art.SearchConfig.MinSimilarity,
		contextMaxChars:   DefaultContextMaxChars,
		contextOrder:      OrderPriority,
		previewChars:      DefaultPreviewChars,
		expansionVariants: DefaultExpansionVariants,
		expansionTopK:     DefaultExpansionTopK,
		dedupePrefix:      DefaultDedupePrefix,
		synonyms:          DefaultSynonyms(),
		logger:            log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.contextOrder != OrderPriority && e.contextOrder != OrderRank {
		return nil, fmt.Errorf("%w: unknown context order %q", domain.ErrInvalidInput, e.contextOrder)
	}
	if e.vectorizer == nil {
		e.vectorizer = art.NewVectorizer()
	}
	if !embedding.SameVocabulary(e.vectorizer.Vocabulary(), art.SearchConfig.Keywords) {
		return nil, fmt.Errorf("%w: %s vectorizer has %d terms, index has %d keywords",
			domain.ErrVocabularyMismatch, e.vectorizer.Name(), e.vectorizer.Dimension(), len(art.SearchConfig.Keywords))
	}
	if e.vectorizer.Dimension() != art.EmbeddingDimensions {
		return nil, fmt.Errorf("%w: vectorizer has %d dimensions, index has %d",
			domain.ErrDimensionMismatch, e.vectorizer.Dimension(), art.EmbeddingDimensions)
	}

	if e.store == nil {
		e.store = memory.NewStorage()
	}
	if err := e.store.Init(art.EmbeddingDimensions); err != nil {
		return nil, err
	}
	if err := e.store.Upsert(art.Chunks); err != nil {
		return nil, err
	}
	e.logger.Debug("engine ready", "chunks", e.store.Len(), "dimensions", art.EmbeddingDimensions, "vectorizer", e.vectorizer.Name())
	return e, nil
}

// Search ranks every chunk against query. A blank query returns an empty
// response without touching the index.
func (e *Engine) Search(query string, opts domain.SearchOptions) (*domain.SearchResponse, error) {
	selected, stats, err := e.rank(query, opts)
	if err != nil {
		return nil, err
	}
	return e.respond(strings.TrimSpace(query), selected, stats), nil
}

// ranksBefore orders by similarity, highest first. Ties keep build order
// whatever order the store scanned in.
func ranksBefore(a, b domain.ScoredChunk) bool {
	if a.Similarity != b.Similarity {
		return a.Similarity > b.Similarity
	}
	return a.Position < b.Position
}

// rank scores, filters, sorts and truncates. The returned slice is in rank order.
func (e *Engine) rank(query string, opts domain.SearchOptions) ([]domain.ScoredChunk, domain.SearchStats, error) {
	stats := domain.SearchStats{TotalChunks: e.store.Len()}
	topK, minSim, err := e.resolve(opts)
	if err != nil {
		return nil, stats, err
	}
	if strings.TrimSpace(query) == "" {
		return nil, stats, nil
	}

	start := time.Now()
	scored, err := e.store.Scan(e.vectorizer.Embed(query))
	if err != nil {
		return nil, stats, err
	}
	stats.CheckedChunks = len(scored)

	kept := scored[:0]
	for _, sc := range scored {
		if !opts.NoBoost {
			sc.Similarity = e.booster.Apply(query, sc.Chunk, sc.BaseSimilarity)
		}
		if sc.Similarity >= minSim {
			kept = append(kept, sc)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return ranksBefore(kept[i], kept[j]) })
	if len(kept) > topK {
		kept = kept[:topK]
	}
	stats.FoundChunks = len(kept)

	e.logger.Debug("search", "query", query, "scanned", stats.CheckedChunks, "found", stats.FoundChunks, "took", time.Since(start))
	return kept, stats, nil
}

func (e *Engine) resolve(opts domain.SearchOptions) (int, float64, error) {
	topK := e.defaultTopK
	if opts.TopK < 0 {
		return 0, 0, fmt.Errorf("%w: topK must not be negative, got %d", domain.ErrInvalidInput, opts.TopK)
	}
	if opts.TopK > 0 {
		topK = opts.TopK
	}
	minSim := e.minSimilarity
	if opts.MinSimilarity != nil {
		minSim = *opts.MinSimilarity
		if minSim < 0 || minSim > 1 {
			return 0, 0, fmt.Errorf("%w: minSimilarity %v outside [0,1]", domain.ErrInvalidInput, minSim)
		}
	}
	return topK, minSim, nil
}

func (e *Engine) respond(query string, selected []domain.ScoredChunk, stats domain.SearchStats) *domain.SearchResponse {
	results := make([]domain.SearchResult, len(selected))
	for i, sc := range selected {
		results[i] = domain.SearchResult{
			ChunkID:        sc.Chunk.ID,
			Content:        sc.Chunk.Content,
			Similarity:     sc.Similarity,
			BaseSimilarity: sc.BaseSimilarity,
			Source:         sc.Chunk.Source,
			Type:           sc.Chunk.Type,
			Title:          sc.Chunk.Title,
		}
	}
	return &domain.SearchResponse{
		Query:      query,
		Results:    results,
		Context:    e.buildContext(selected),
		Sources:    e.buildSources(selected),
		HasResults: len(results) > 0,
		Stats:      stats,
	}
}

// DefaultTopK returns the topK used when a search does not set one.
func (e *Engine) DefaultTopK() int { return e.defaultTopK }

// MinSimilarity returns the threshold used when a search does not set one.
func (e *Engine) MinSimilarity() float64 { return e.minSimilarity }
