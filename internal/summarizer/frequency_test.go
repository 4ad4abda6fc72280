package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfoliorag/internal/domain"
)

var _ domain.Summarizer = (*FrequencySummarizer)(nil)

func TestSummarize_PicksFrequentSentencesInOrder(t *testing.T) {
	s := NewFrequencySummarizer()
	text := "Rust powers the desktop tooling here. " +
		"The weather was pleasant that day. " +
		"Rust and WPF drive the desktop importer. " +
		"Lunch was served at noon."

	got, err := s.Summarize(text, 2)
	require.NoError(t, err)
	assert.Equal(t, "Rust powers the desktop tooling here. Rust and WPF drive the desktop importer.", got)
}

func TestSummarize_SplitsLines(t *testing.T) {
	s := NewFrequencySummarizer()
	text := "Jane Doe\nBackend engineer building Go services\nGo services for payments and Go tooling\nSKILLS"

	got, err := s.Summarize(text, 1)
	require.NoError(t, err)
	assert.Equal(t, "Go services for payments and Go tooling", got)
}

func TestSummarize_Fallbacks(t *testing.T) {
	s := NewFrequencySummarizer()

	got, err := s.Summarize("  Short  ", 3)
	require.NoError(t, err)
	assert.Equal(t, "Short", got)

	text := "One two three four. Five six seven eight."
	got, err = s.Summarize(text, 0)
	require.NoError(t, err)
	assert.Equal(t, text, got)
}

func TestSummarize_FrenchStopwordsIgnored(t *testing.T) {
	s := NewFrequencySummarizer()
	toks := s.tokens("Le développeur et la bibliothèque de composants")
	assert.Equal(t, []string{"developpeur", "bibliotheque", "composants"}, toks)
}

func TestSummarize_Deterministic(t *testing.T) {
	s := NewFrequencySummarizer()
	text := strings.Repeat("Alpha beta gamma delta. Beta gamma epsilon zeta. ", 3)
	first, err := s.Summarize(text, 2)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := s.Summarize(text, 2)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
