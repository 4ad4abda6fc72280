package index

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"portfoliorag/internal/domain"
	"portfoliorag/internal/embedding"
	"portfoliorag/internal/embedding/keyword"
)

// DefaultSummarySentences is the length of the document summary stored in
// the artifact metadata.
const DefaultSummarySentences = 3

// settingsReporter is implemented by vectorizers whose parameters must be
// frozen into the artifact alongside the vocabulary.
type settingsReporter interface {
	Settings() keyword.Settings
}

// Builder turns source documents into an Artifact.
type Builder struct {
	chunker          domain.Chunker
	vectorizer       embedding.Vectorizer
	summarizer       domain.Summarizer
	summarySentences int
	version          string
	defaultTopK      int
	minSimilarity    float64
	now              func() time.Time
	newID            func() string
	logger           *log.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithSummarizer stores an extractive summary of each document in its metadata.
func WithSummarizer(s domain.Summarizer, sentences int) BuilderOption {
	return func(b *Builder) {
		b.summarizer = s
		if sentences > 0 {
			b.summarySentences = sentences
		}
	}
}

// WithSearchDefaults sets the topK and threshold recorded in the artifact.
func WithSearchDefaults(topK int, minSimilarity float64) BuilderOption {
	return func(b *Builder) {
		if topK > 0 {
			b.defaultTopK = topK
		}
		if minSimilarity >= 0 && minSimilarity <= 1 {
			b.minSimilarity = minSimilarity
		}
	}
}

// WithVersion overrides the artifact format version string.
func WithVersion(v string) BuilderOption {
	return func(b *Builder) {
		if v != "" {
			b.version = v
		}
	}
}

// WithClock sets the time source used for buildAt and processedAt.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) { b.now = now }
}

// WithBuildID sets the generator of the artifact build id.
func WithBuildID(gen func() string) BuilderOption {
	return func(b *Builder) { b.newID = gen }
}

// WithLogger sets the build logger.
func WithLogger(l *log.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBuilder creates a Builder over the given chunker and vectorizer.
func NewBuilder(chunker domain.Chunker, vectorizer embedding.Vectorizer, opts ...BuilderOption) *Builder {
	b := &Builder{
		chunker:          chunker,
		vectorizer:       vectorizer,
		summarySentences: DefaultSummarySentences,
		version:          FormatVersion,
		defaultTopK:      DefaultTopK,
		minSimilarity:    DefaultMinSimilarity,
		now:              func() time.Time { return time.Now().UTC() },
		newID:            func() string { return uuid.NewString() },
		logger:           log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build reads each path and indexes it. Any failure aborts the whole build.
func (b *Builder) Build(paths ...string) (*Artifact, error) {
	docs := make([]domain.Document, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: document %s", domain.ErrNotFound, p)
			}
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		b.logger.Debug("read document", "path", p, "chars", len([]rune(string(data))))
		docs = append(docs, domain.Document{ID: filepath.Base(p), Path: p, Content: string(data)})
	}
	return b.BuildDocuments(docs)
}

// BuildDocuments indexes documents already held in memory.
func (b *Builder) BuildDocuments(docs []domain.Document) (*Artifact, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no documents to index", domain.ErrInvalidInput)
	}
	start := b.now()
	art := &Artifact{
		Version:             b.version,
		BuildID:             b.newID(),
		BuildAt:             start,
		EmbeddingDimensions: b.vectorizer.Dimension(),
		Documents:           make([]domain.DocumentInfo, 0, len(docs)),
		Chunks:              []domain.Chunk{},
		SearchConfig: SearchConfig{
			DefaultTopK:   b.defaultTopK,
			MinSimilarity: b.minSimilarity,
			Keywords:      b.vectorizer.Vocabulary(),
		},
	}
	if r, ok := b.vectorizer.(settingsReporter); ok {
		s := r.Settings()
		art.SearchConfig.ScaleChars = s.ScaleChars
		art.SearchConfig.PrimaryBoost = s.PrimaryBoost
		art.SearchConfig.PrimaryTerms = s.PrimaryTerms
	}

	for _, doc := range docs {
		chunks, err := b.chunker.Chunk(doc)
		if err != nil {
			return nil, fmt.Errorf("chunk %s: %w", doc.ID, err)
		}
		if len(chunks) == 0 {
			return nil, fmt.Errorf("%w: %s produced no chunks", domain.ErrInvalidInput, doc.ID)
		}

		info := domain.DocumentInfo{
			Filename:    doc.ID,
			ProcessedAt: b.now(),
			ChunksCount: len(chunks),
			Sections:    sectionsOf(chunks),
		}
		if b.summarizer != nil {
			summary, err := b.summarizer.Summarize(doc.Content, b.summarySentences)
			if err != nil {
				return nil, fmt.Errorf("summarize %s: %w", doc.ID, err)
			}
			info.Summary = summary
		}

		for _, c := range chunks {
			c.Embedding = b.vectorizer.Embed(c.Content + " " + c.Title)
			if c.WordCount == 0 {
				c.WordCount = len(strings.Fields(c.Content))
			}
			art.Chunks = append(art.Chunks, c)
		}
		art.Documents = append(art.Documents, info)
		b.logger.Info("indexed document", "document", doc.ID, "chunks", len(chunks), "sections", len(info.Sections))
	}

	art.TotalDocuments = len(art.Documents)
	art.TotalChunks = len(art.Chunks)
	if err := art.Validate(); err != nil {
		return nil, err
	}

	counts := art.Stats().SectionCounts
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		b.logger.Debug("section", "type", t, "chunks", counts[t])
	}
	return art, nil
}

// sectionsOf returns the distinct chunk types in first-seen order.
func sectionsOf(chunks []domain.Chunk) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, c := range chunks {
		if _, ok := seen[c.Type]; ok {
			continue
		}
		seen[c.Type] = struct{}{}
		out = append(out, c.Type)
	}
	return out
}

// LocateDocument returns the first .txt file in dir whose name contains
// "cv" or "resume", in lexical order.
func LocateDocument(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: documents directory %s", domain.ErrNotFound, dir)
		}
		return "", err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.ToLower(e.Name())
		if !strings.HasSuffix(name, ".txt") {
			continue
		}
		if strings.Contains(name, "cv") || strings.Contains(name, "resume") {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", fmt.Errorf("%w: no cv or resume .txt file in %s", domain.ErrNotFound, dir)
}
