package summarizer

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"portfoliorag/internal/textnorm"
)

// DefaultMaxSentences is used when Summarize is called with a non-positive limit.
const DefaultMaxSentences = 3

// minSentenceWords drops fragments such as bare names or dates from the candidates.
const minSentenceWords = 3

var (
	tokenPattern    = regexp.MustCompile(`\p{L}[\p{L}\p{N}#+]*`)
	sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]*`)
)

// FrequencySummarizer ranks sentences by the normalized frequency of the
// non-stopword tokens they contain and returns the best ones in document order.
type FrequencySummarizer struct {
	stopwords map[string]struct{}
}

// NewFrequencySummarizer creates a summarizer with French and English stopwords.
func NewFrequencySummarizer() *FrequencySummarizer {
	return &FrequencySummarizer{stopwords: defaultStopwords()}
}

// Summarize returns at most maxSentences sentences of text.
func (s *FrequencySummarizer) Summarize(text string, maxSentences int) (string, error) {
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentences
	}
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return strings.TrimSpace(text), nil
	}

	freq := map[string]float64{}
	for _, sent := range sentences {
		for _, tok := range s.tokens(sent) {
			freq[tok]++
		}
	}
	maxF := 0.0
	for _, v := range freq {
		maxF = math.Max(maxF, v)
	}
	for k, v := range freq {
		freq[k] = v / maxF
	}

	type scored struct {
		idx   int
		score float64
	}
	scores := make([]scored, len(sentences))
	for i, sent := range sentences {
		toks := s.tokens(sent)
		total := 0.0
		for _, tok := range toks {
			total += freq[tok]
		}
		if len(toks) > 0 {
			total /= math.Sqrt(float64(len(toks)))
		}
		scores[i] = scored{i, total}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if maxSentences > len(scores) {
		maxSentences = len(scores)
	}

	selected := make([]int, maxSentences)
	for i := range selected {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)
	out := make([]string, len(selected))
	for i, idx := range selected {
		out[i] = sentences[idx]
	}
	return strings.Join(out, " "), nil
}

// splitSentences splits on sentence punctuation and on line breaks, since
// résumé lines rarely end with a period, and keeps fragments of at least
// minSentenceWords words.
func splitSentences(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		for _, sent := range sentencePattern.FindAllString(line, -1) {
			sent = strings.TrimSpace(sent)
			if len(strings.Fields(sent)) >= minSentenceWords {
				out = append(out, sent)
			}
		}
	}
	return out
}

// tokens returns the folded non-stopword tokens of text.
func (s *FrequencySummarizer) tokens(text string) []string {
	all := tokenPattern.FindAllString(textnorm.Fold(text), -1)
	out := all[:0]
	for _, tok := range all {
		if _, stop := s.stopwords[tok]; stop || len(tok) < 2 {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		// english
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by",
		"with", "as", "is", "are", "was", "were", "be", "been", "it", "this", "that", "these", "those", "from",
		"into", "about", "between", "through", "during", "before", "after", "than", "so", "such", "very", "can",
		"will", "just", "my", "i", "me", "we", "our",
		// french, folded
		"le", "la", "les", "un", "une", "des", "du", "de", "d", "l", "et", "ou", "en", "au", "aux", "avec",
		"pour", "par", "sur", "dans", "ce", "cet", "cette", "ces", "qui", "que", "quoi", "est", "sont", "je",
		"j", "mon", "ma", "mes", "nous", "vous", "il", "elle", "ils", "se", "sa", "son", "ses", "pas", "plus",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
