package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfoliorag/internal/domain"
)

func TestExpandQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"no abbreviation", "expérience React", []string{"expérience React"}},
		{"single", "projets js", []string{"projets js", "projets javascript"}},
		{"case-insensitive", "JS", []string{"JS", "javascript"}},
		{"whole words only", "email developer", []string{"email developer"}},
		{"several", "dev ts", []string{
			"dev ts",
			"développeur ts", "developer ts", "développement ts",
			"dev typescript",
		}},
		{"punctuation boundary", "ai?", []string{"ai?", "intelligence artificielle?", "ia?"}},
		{"adjacent occurrences", "js js", []string{"js js", "javascript javascript"}},
		{"comma separated occurrences", "JS,js", []string{"JS,js", "javascript,javascript"}},
		{"embedded occurrence skipped", "jsx js", []string{"jsx js", "jsx javascript"}},
		{"accented neighbour is a word rune", "éjs", []string{"éjs"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandQuery(tt.query, DefaultSynonyms()))
		})
	}

	custom := []Synonym{{Abbreviation: "k8s", Expansions: []string{"$kubernetes"}}}
	assert.Equal(t, []string{"k8s k8s", "$kubernetes $kubernetes"}, ExpandQuery("k8s k8s", custom))
}

func TestSearchWithExpansion(t *testing.T) {
	e := newEngine(t, cvArtifact(t))

	resp, err := e.SearchWithExpansion("dev js", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"dev js", "développeur js", "developer js"}, resp.ExpandedQueries)
	assert.True(t, resp.HasResults)
	assert.LessOrEqual(t, len(resp.Results), e.DefaultTopK())
	assert.Len(t, resp.Sources, len(resp.Results))

	seen := map[string]bool{}
	for i, r := range resp.Results {
		assert.False(t, seen[r.ChunkID], "duplicate %s", r.ChunkID)
		seen[r.ChunkID] = true
		if i > 0 {
			assert.LessOrEqual(t, r.Similarity, resp.Results[i-1].Similarity)
		}
	}
	assert.Equal(t, 3*resp.Stats.TotalChunks, resp.Stats.CheckedChunks)
}

func TestSearchWithExpansion_TopKAndVariants(t *testing.T) {
	e := newEngine(t, cvArtifact(t), WithExpansion(2, 3))

	resp, err := e.SearchWithExpansion("dev", domain.SearchOptions{TopK: 1, MinSimilarity: domain.Threshold(0)})
	require.NoError(t, err)
	assert.Equal(t, []string{"dev", "développeur"}, resp.ExpandedQueries)
	assert.Len(t, resp.Results, 1)
}

func TestSearchWithExpansion_NeverWorseThanPlainSearch(t *testing.T) {
	e := newEngine(t, cvArtifact(t))

	plain, err := e.Search("ts", domain.SearchOptions{})
	require.NoError(t, err)
	expanded, err := e.SearchWithExpansion("ts", domain.SearchOptions{})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(expanded.Results), len(plain.Results))
	assert.True(t, expanded.HasResults, "ts expands to typescript")
}

func TestSearchWithExpansion_Blank(t *testing.T) {
	e := newEngine(t, cvArtifact(t))
	resp, err := e.SearchWithExpansion("  ", domain.SearchOptions{})
	require.NoError(t, err)
	assert.False(t, resp.HasResults)
	assert.Empty(t, resp.Results)
	assert.Empty(t, resp.ExpandedQueries)
	assert.Empty(t, resp.Context)
}

func TestSearchWithExpansion_CustomSynonyms(t *testing.T) {
	e := newEngine(t, cvArtifact(t), WithSynonyms([]Synonym{{Abbreviation: "cs", Expansions: []string{"csharp"}}}))
	resp, err := e.SearchWithExpansion("cs", domain.SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"cs", "csharp"}, resp.ExpandedQueries)
	assert.True(t, resp.HasResults)
}
