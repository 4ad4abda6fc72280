package service

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"portfoliorag/internal/domain"
	"portfoliorag/internal/textnorm"
)

// Synonym maps an abbreviation to the spellings substituted for it when
// expanding a query.
type Synonym struct {
	Abbreviation string
	Expansions   []string
}

// DefaultSynonyms is the stock expansion table, in lookup order.
func DefaultSynonyms() []Synonym {
	return []Synonym{
		{"dev", []string{"développeur", "developer", "développement"}},
		{"js", []string{"javascript"}},
		{"ts", []string{"typescript"}},
		{"ai", []string{"intelligence artificielle", "ia"}},
		{"ml", []string{"machine learning", "apprentissage automatique"}},
		{"frontend", []string{"front-end", "interface utilisateur"}},
		{"backend", []string{"back-end", "serveur"}},
		{"fullstack", []string{"full-stack", "développeur complet"}},
	}
}

// ExpandQuery returns query followed by its distinct synonym substitutions.
// Abbreviations are matched as whole words, case-insensitively, and every
// occurrence is replaced.
func ExpandQuery(query string, synonyms []Synonym) []string {
	queries := []string{query}
	seen := map[string]struct{}{query: {}}
	for _, syn := range synonyms {
		if syn.Abbreviation == "" {
			continue
		}
		spans := abbreviationSpans(query, syn.Abbreviation)
		if len(spans) == 0 {
			continue
		}
		for _, exp := range syn.Expansions {
			variant := replaceSpans(query, spans, exp)
			if _, ok := seen[variant]; ok {
				continue
			}
			seen[variant] = struct{}{}
			queries = append(queries, variant)
		}
	}
	return queries
}

// abbreviationSpans returns the byte ranges of the whole-word occurrences of
// abbrev in query. Neighbouring separators are not part of a span, so
// adjacent occurrences are all found.
func abbreviationSpans(query, abbrev string) [][]int {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(abbrev))
	var spans [][]int
	for _, loc := range re.FindAllStringIndex(query, -1) {
		if isWordBoundary(query, loc[0], loc[1]) {
			spans = append(spans, loc)
		}
	}
	return spans
}

func isWordBoundary(s string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(s[:start]); textnorm.IsWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		if r, _ := utf8.DecodeRuneInString(s[end:]); textnorm.IsWordRune(r) {
			return false
		}
	}
	return true
}

func replaceSpans(s string, spans [][]int, repl string) string {
	var b strings.Builder
	last := 0
	for _, sp := range spans {
		b.WriteString(s[last:sp[0]])
		b.WriteString(repl)
		last = sp[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

// SearchWithExpansion searches the query and up to expansionVariants-1
// synonym variants, merges the results by (source, content prefix) keeping
// the best score, and truncates to the requested topK.
func (e *Engine) SearchWithExpansion(query string, opts domain.SearchOptions) (*domain.ExpandedSearchResponse, error) {
	topK, _, err := e.resolve(opts)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		resp := e.respond("", nil, domain.SearchStats{TotalChunks: e.store.Len()})
		return &domain.ExpandedSearchResponse{SearchResponse: *resp, ExpandedQueries: []string{}}, nil
	}

	queries := ExpandQuery(trimmed, e.synonyms)
	if len(queries) > e.expansionVariants {
		queries = queries[:e.expansionVariants]
	}

	variantOpts := opts
	variantOpts.TopK = e.expansionTopK

	var merged []domain.ScoredChunk
	byKey := make(map[string]int)
	stats := domain.SearchStats{TotalChunks: e.store.Len()}
	for _, q := range queries {
		selected, st, err := e.rank(q, variantOpts)
		if err != nil {
			return nil, err
		}
		stats.CheckedChunks += st.CheckedChunks
		for _, sc := range selected {
			key := e.dedupeKey(sc.Chunk)
			if i, ok := byKey[key]; ok {
				if sc.Similarity > merged[i].Similarity {
					merged[i].Similarity = sc.Similarity
					merged[i].BaseSimilarity = sc.BaseSimilarity
				}
				continue
			}
			byKey[key] = len(merged)
			merged = append(merged, sc)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool { return ranksBefore(merged[i], merged[j]) })
	if len(merged) > topK {
		merged = merged[:topK]
	}
	stats.FoundChunks = len(merged)

	e.logger.Debug("expanded search", "query", trimmed, "variants", len(queries), "found", stats.FoundChunks)
	resp := e.respond(trimmed, merged, stats)
	return &domain.ExpandedSearchResponse{SearchResponse: *resp, ExpandedQueries: queries}, nil
}

func (e *Engine) dedupeKey(c domain.Chunk) string {
	content := []rune(c.Content)
	if len(content) > e.dedupePrefix {
		content = content[:e.dedupePrefix]
	}
	return c.Source + "_" + string(content)
}
