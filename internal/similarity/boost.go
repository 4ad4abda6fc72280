package similarity

import (
	"strings"

	"portfoliorag/internal/domain"
	"portfoliorag/internal/textnorm"
)

// Default boost constants.
const (
	DefaultExactMatchStep = 0.1
	DefaultTitleMatchStep = 0.15
	DefaultNotableStep    = 0.05
	DefaultCeiling        = 1.0
	DefaultMinWordLength  = 2
)

// DefaultSectionMultipliers maps chunk types to their static rank multiplier.
// Types not listed keep a multiplier of 1.
func DefaultSectionMultipliers() map[string]float64 {
	return map[string]float64{
		domain.SectionExperience: 1.2,
		domain.EntryExperience:   1.2,
		domain.SectionSkills:     1.15,
		domain.SectionProjects:   1.1,
		domain.EntryProject:      1.1,
		domain.SectionEducation:  1.05,
		domain.EntryEducation:    1.05,
		domain.SectionTraining:   1.0,
		domain.EntryTraining:     1.0,
		domain.SectionProfile:    1.0,
		domain.SectionLanguages:  0.85,
		domain.SectionHeader:     0.9,
		domain.SectionContact:    0.8,
	}
}

// DefaultNotableTerms are the technologies whose co-occurrence in query and
// chunk earns the notable-term boost.
var DefaultNotableTerms = []string{"javascript", "react", "nodejs", "python", "typescript"}

// BoostConfig holds the tunable constants of the boost layer.
type BoostConfig struct {
	SectionMultipliers map[string]float64
	ExactMatchStep     float64
	TitleMatchStep     float64
	NotableStep        float64
	NotableTerms       []string
	// MinWordLength excludes query words of this many runes or fewer from overlap counting.
	MinWordLength int
	Ceiling       float64
}

// DefaultBoostConfig returns the stock boost constants.
func DefaultBoostConfig() BoostConfig {
	return BoostConfig{
		SectionMultipliers: DefaultSectionMultipliers(),
		ExactMatchStep:     DefaultExactMatchStep,
		TitleMatchStep:     DefaultTitleMatchStep,
		NotableStep:        DefaultNotableStep,
		NotableTerms:       append([]string(nil), DefaultNotableTerms...),
		MinWordLength:      DefaultMinWordLength,
		Ceiling:            DefaultCeiling,
	}
}

// Booster applies BoostConfig to scored chunks. It holds no mutable state.
type Booster struct {
	cfg     BoostConfig
	notable []string
}

// NewBooster builds a Booster. Section multipliers are copied.
func NewBooster(cfg BoostConfig) *Booster {
	sections := make(map[string]float64, len(cfg.SectionMultipliers))
	for k, v := range cfg.SectionMultipliers {
		sections[k] = v
	}
	cfg.SectionMultipliers = sections
	if cfg.Ceiling <= 0 {
		cfg.Ceiling = DefaultCeiling
	}

	notable := make([]string, 0, len(cfg.NotableTerms))
	for _, t := range cfg.NotableTerms {
		if f := textnorm.Fold(strings.TrimSpace(t)); f != "" {
			notable = append(notable, f)
		}
	}
	return &Booster{cfg: cfg, notable: notable}
}

// Config returns the constants the Booster was built with.
func (b *Booster) Config() BoostConfig { return b.cfg }

// Apply multiplies base by each applicable boost in turn and caps the result
// at the configured ceiling. It is a pure function of (query, chunk, base).
func (b *Booster) Apply(query string, chunk domain.Chunk, base float64) float64 {
	score := base
	if m, ok := b.cfg.SectionMultipliers[chunk.Type]; ok {
		score *= m
	}

	words := textnorm.Words(query, b.cfg.MinWordLength)
	content := textnorm.Fold(chunk.Content)
	title := textnorm.Fold(chunk.Title)

	if n := countContained(words, content); n > 0 {
		score *= 1 + b.cfg.ExactMatchStep*float64(n)
	}
	if n := countContained(words, title); n > 0 {
		score *= 1 + b.cfg.TitleMatchStep*float64(n)
	}
	if n := b.notableMatches(query, content); n > 0 {
		score *= 1 + b.cfg.NotableStep*float64(n)
	}

	if score > b.cfg.Ceiling {
		return b.cfg.Ceiling
	}
	return score
}

// notableMatches counts notable terms in content, provided the query itself
// names at least one of them.
func (b *Booster) notableMatches(query, content string) int {
	if len(b.notable) == 0 {
		return 0
	}
	mentioned := false
	for _, w := range strings.Fields(textnorm.Fold(query)) {
		w = strings.Trim(w, ".,;:!?()\"'")
		for _, t := range b.notable {
			if w == t {
				mentioned = true
				break
			}
		}
	}
	if !mentioned {
		return 0
	}
	return countContained(b.notable, content)
}

func countContained(words []string, text string) int {
	if text == "" {
		return 0
	}
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}
