// Package keyword implements a sparse, interpretable vectorizer: one
// dimension per vocabulary term, valued by the term's length-normalized
// frequency in the text.
package keyword

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"portfoliorag/internal/textnorm"
)

const (
	// DefaultScaleChars is the text length, in runes, that counts as one unit
	// when normalizing match counts.
	DefaultScaleChars = 150.0
	// DefaultPrimaryBoost multiplies the score of primary terms.
	DefaultPrimaryBoost = 1.3
)

// Settings are the parameters that, together with the vocabulary, fully
// determine the vectors a Vectorizer produces.
type Settings struct {
	ScaleChars   float64
	PrimaryBoost float64
	PrimaryTerms []string
}

// Vectorizer maps text to one score in [0,1] per vocabulary term.
// It is immutable after construction and safe for concurrent use.
type Vectorizer struct {
	vocabulary []string
	matchers   []termMatcher
	primary    []bool
	settings   Settings
}

// Option configures a Vectorizer.
type Option func(*Settings)

// WithScale sets the normalization unit in runes.
func WithScale(chars float64) Option {
	return func(s *Settings) {
		if chars > 0 {
			s.ScaleChars = chars
		}
	}
}

// WithPrimaryBoost sets the multiplier for primary terms.
func WithPrimaryBoost(boost float64) Option {
	return func(s *Settings) {
		if boost > 0 {
			s.PrimaryBoost = boost
		}
	}
}

// WithPrimaryTerms replaces the primary term list. An empty list disables
// the boost; nil keeps the current list.
func WithPrimaryTerms(terms []string) Option {
	return func(s *Settings) {
		if terms != nil {
			s.PrimaryTerms = append([]string{}, terms...)
		}
	}
}

// WithSettings applies every non-zero field of s.
func WithSettings(s Settings) Option {
	return func(dst *Settings) {
		WithScale(s.ScaleChars)(dst)
		WithPrimaryBoost(s.PrimaryBoost)(dst)
		WithPrimaryTerms(s.PrimaryTerms)(dst)
	}
}

// New creates a Vectorizer over vocabulary, which is kept verbatim.
// A nil vocabulary selects DefaultVocabulary.
func New(vocabulary []string, opts ...Option) *Vectorizer {
	if vocabulary == nil {
		vocabulary = DefaultVocabulary
	}
	settings := Settings{
		ScaleChars:   DefaultScaleChars,
		PrimaryBoost: DefaultPrimaryBoost,
		PrimaryTerms: append([]string(nil), DefaultPrimaryTerms...),
	}
	for _, opt := range opts {
		opt(&settings)
	}

	v := &Vectorizer{
		vocabulary: append([]string(nil), vocabulary...),
		matchers:   make([]termMatcher, len(vocabulary)),
		primary:    make([]bool, len(vocabulary)),
		settings:   settings,
	}
	for i, term := range vocabulary {
		folded := textnorm.Fold(term)
		v.matchers[i] = newTermMatcher(folded)
		for _, p := range settings.PrimaryTerms {
			if p != "" && strings.Contains(folded, textnorm.Fold(p)) {
				v.primary[i] = true
				break
			}
		}
	}
	return v
}

// Name returns the identifier of this vectorizer implementation.
func (v *Vectorizer) Name() string { return "keyword" }

// Dimension returns the vector length, equal to the vocabulary size.
func (v *Vectorizer) Dimension() int { return len(v.vocabulary) }

// Vocabulary returns a copy of the terms in dimension order.
func (v *Vectorizer) Vocabulary() []string { return append([]string(nil), v.vocabulary...) }

// Settings returns the normalization parameters.
func (v *Vectorizer) Settings() Settings {
	s := v.settings
	s.PrimaryTerms = append([]string{}, s.PrimaryTerms...)
	return s
}

// Embed computes the keyword-frequency vector for text.
func (v *Vectorizer) Embed(text string) []float64 {
	vec := make([]float64, len(v.vocabulary))
	if strings.TrimSpace(text) == "" {
		return vec
	}
	folded := textnorm.Fold(text)
	units := float64(utf8.RuneCountInString(text)) / v.settings.ScaleChars
	if units < 1 {
		units = 1
	}
	for i, m := range v.matchers {
		count := m.count(folded)
		if count == 0 {
			continue
		}
		score := float64(count) / units
		if v.primary[i] {
			score *= v.settings.PrimaryBoost
		}
		vec[i] = clamp(score)
	}
	return vec
}

func clamp(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// termMatcher counts whole-word occurrences of a term and its variants.
type termMatcher struct {
	variants []*regexp.Regexp
}

// newTermMatcher compiles the folded term, its punctuation-free form and
// its aliases, skipping duplicates so one occurrence counts once per spelling.
func newTermMatcher(folded string) termMatcher {
	candidates := []string{folded, strings.NewReplacer(".", "", "-", "").Replace(folded)}
	candidates = append(candidates, aliases[folded]...)

	var m termMatcher
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		m.variants = append(m.variants, regexp.MustCompile(regexp.QuoteMeta(c)))
	}
	return m
}

func (m termMatcher) count(text string) int {
	total := 0
	for _, re := range m.variants {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if isWholeWord(text, loc[0], loc[1]) {
				total++
			}
		}
	}
	return total
}

// isWholeWord reports whether text[start:end] is not glued to a neighbouring
// word. A trailing plural "s" is tolerated.
func isWholeWord(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if textnorm.IsWordRune(r) {
			return false
		}
	}
	if end >= len(text) {
		return true
	}
	r, size := utf8.DecodeRuneInString(text[end:])
	if !textnorm.IsWordRune(r) {
		return true
	}
	if r != 's' {
		return false
	}
	if end+size >= len(text) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(text[end+size:])
	return !textnorm.IsWordRune(next)
}
