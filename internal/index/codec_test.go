package index

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfoliorag/internal/chunker"
	"portfoliorag/internal/domain"
	"portfoliorag/internal/embedding/keyword"
)

func validArtifact() *Artifact {
	return &Artifact{
		Version:             FormatVersion,
		BuildAt:             fixedTime,
		TotalDocuments:      1,
		TotalChunks:         1,
		EmbeddingDimensions: 2,
		Documents:           []domain.DocumentInfo{{Filename: "cv.txt", ChunksCount: 1, Sections: []string{"skills"}}},
		Chunks: []domain.Chunk{
			{ID: "cv.txt_0", Type: "skills", Content: "Go and Rust", Source: "cv.txt", WordCount: 3, Embedding: []float64{0.5, 1}},
		},
		SearchConfig: SearchConfig{DefaultTopK: 4, MinSimilarity: 0.05, Keywords: []string{"go", "rust"}},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *Artifact)
	}{
		{"missing version", func(a *Artifact) { a.Version = "" }},
		{"zero dimensions", func(a *Artifact) { a.EmbeddingDimensions = 0 }},
		{"keywords mismatch", func(a *Artifact) { a.SearchConfig.Keywords = []string{"go"} }},
		{"chunk count mismatch", func(a *Artifact) { a.TotalChunks = 2 }},
		{"document count mismatch", func(a *Artifact) { a.TotalDocuments = 0 }},
		{"bad topK", func(a *Artifact) { a.SearchConfig.DefaultTopK = 0 }},
		{"threshold above one", func(a *Artifact) { a.SearchConfig.MinSimilarity = 1.5 }},
		{"negative threshold", func(a *Artifact) { a.SearchConfig.MinSimilarity = -0.1 }},
		{"chunk without id", func(a *Artifact) { a.Chunks[0].ID = "" }},
		{"short embedding", func(a *Artifact) { a.Chunks[0].Embedding = []float64{1} }},
		{"negative component", func(a *Artifact) { a.Chunks[0].Embedding = []float64{-3, 0.5} }},
		{"component above one", func(a *Artifact) { a.Chunks[0].Embedding = []float64{0.5, 7} }},
		{"NaN component", func(a *Artifact) { a.Chunks[0].Embedding = []float64{math.NaN(), 0.5} }},
		{"duplicate ids", func(a *Artifact) {
			a.Chunks = append(a.Chunks, a.Chunks[0])
			a.TotalChunks = 2
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validArtifact()
			tt.mutate(a)
			err := a.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidIndex)
		})
	}

	require.NoError(t, validArtifact().Validate())
	var nilArt *Artifact
	assert.ErrorIs(t, nilArt.Validate(), domain.ErrInvalidIndex)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	art, err := newTestBuilder().Build(writeDoc(t, "cv.txt", scenarioText))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "processed", "index.json")
	require.NoError(t, Save(path, art))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, art.BuildAt.Equal(loaded.BuildAt))
	assert.Equal(t, art.Chunks, loaded.Chunks)
	assert.Equal(t, art.SearchConfig, loaded.SearchConfig)
	assert.Equal(t, art.BuildID, loaded.BuildID)
	assert.Equal(t, art.TotalChunks, loaded.TotalChunks)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestSaveLoad_QueryVectorizerMatchesBuild(t *testing.T) {
	tests := []struct {
		name string
		opts []keyword.Option
	}{
		{"defaults", nil},
		{"primary boost disabled", []keyword.Option{keyword.WithPrimaryTerms([]string{})}},
		{"custom settings", []keyword.Option{keyword.WithScale(80), keyword.WithPrimaryBoost(2), keyword.WithPrimaryTerms([]string{"go"})}},
	}
	texts := []string{
		scenarioText,
		"Développeur TypeScript et React, un peu de Go et de Rust",
		"typescript",
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			built := keyword.New(nil, tt.opts...)
			b := NewBuilder(chunker.NewSectionChunker(), built,
				WithClock(func() time.Time { return fixedTime }),
				WithBuildID(func() string { return "build-1" }),
			)
			art, err := b.Build(writeDoc(t, "cv.txt", scenarioText))
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "index.json")
			require.NoError(t, Save(path, art))
			loaded, err := Load(path)
			require.NoError(t, err)

			reloaded := loaded.NewVectorizer()
			assert.Equal(t, built.Settings(), reloaded.Settings())
			for _, text := range texts {
				assert.Equal(t, built.Embed(text), reloaded.Embed(text), text)
			}
			for _, c := range loaded.Chunks {
				assert.Equal(t, reloaded.Embed(c.Content+" "+c.Title), c.Embedding, c.ID)
			}
		})
	}
}

func TestNewVectorizer_NullPrimaryTermsUseDefaults(t *testing.T) {
	a := validArtifact()
	a.SearchConfig.PrimaryTerms = nil
	assert.Equal(t, keyword.DefaultPrimaryTerms, a.NewVectorizer().Settings().PrimaryTerms)

	a.SearchConfig.PrimaryTerms = []string{}
	assert.Empty(t, a.NewVectorizer().Settings().PrimaryTerms)
	assert.NotNil(t, a.NewVectorizer().Settings().PrimaryTerms)
}

func TestSave_InvalidArtifactWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	a := validArtifact()
	a.Version = ""

	assert.ErrorIs(t, Save(path, a), domain.ErrInvalidIndex)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not json"), 0o644))
	_, err = Load(corrupt)
	assert.ErrorIs(t, err, domain.ErrInvalidIndex)
}

func TestEncode_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, validArtifact()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "{\n  \"version\""))
	for _, key := range []string{`"buildAt"`, `"totalDocuments"`, `"embeddingDimensions"`, `"searchConfig"`, `"defaultTopK"`, `"keywords"`, `"wordCount"`, `"embedding"`} {
		assert.Contains(t, out, key)
	}

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, validArtifact().Chunks, decoded.Chunks)
}
