package service

import (
	"time"

	"portfoliorag/internal/domain"
)

// DefaultSuggestionLimit is the number of suggestions returned when no limit is given.
const DefaultSuggestionLimit = 6

type suggestionGroup struct {
	types     []string
	questions []string
}

var suggestionGroups = []suggestionGroup{
	{
		types: []string{domain.SectionExperience, domain.EntryExperience},
		questions: []string{
			"Quelle est ton expérience professionnelle ?",
			"Parle-moi de tes postes précédents",
			"Quelles entreprises as-tu rejoint ?",
		},
	},
	{
		types: []string{domain.SectionSkills},
		questions: []string{
			"Quelles sont tes compétences techniques ?",
			"Quelles technologies maîtrises-tu ?",
			"Peux-tu me parler de ton stack technique ?",
		},
	},
	{
		types: []string{domain.SectionProjects, domain.EntryProject},
		questions: []string{
			"Quels projets as-tu réalisés ?",
			"Montre-moi tes réalisations",
			"Peux-tu détailler un projet intéressant ?",
		},
	},
	{
		types: []string{domain.SectionEducation, domain.EntryEducation},
		questions: []string{
			"Quel est ton parcours de formation ?",
			"Où as-tu étudié ?",
			"Quels diplômes as-tu obtenus ?",
		},
	},
}

var generalSuggestions = []string{
	"Peux-tu te présenter en quelques mots ?",
	"Qu'est-ce qui te passionne dans le développement ?",
	"Comment puis-je te contacter ?",
}

// Suggestions returns up to limit starter questions. The first question of
// each section present in the index comes first, then the remaining section
// questions, then general ones, so a small limit still spans sections.
func (e *Engine) Suggestions(limit int) []string {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	present := make(map[string]bool)
	for _, c := range e.artifact.Chunks {
		present[c.Type] = true
	}

	var groups [][]string
	for _, g := range suggestionGroups {
		for _, t := range g.types {
			if present[t] {
				groups = append(groups, g.questions)
				break
			}
		}
	}

	var out []string
	for round := 0; ; round++ {
		added := false
		for _, qs := range groups {
			if round < len(qs) {
				out = append(out, qs[round])
				added = true
			}
		}
		if !added {
			break
		}
	}
	out = append(out, generalSuggestions...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Stats describes the loaded index.
func (e *Engine) Stats() domain.IndexStats {
	return e.artifact.Stats()
}

// DefaultBenchmarkQueries are searched when Benchmark is given no queries.
var DefaultBenchmarkQueries = []string{
	"expérience React",
	"compétences JavaScript",
	"projets IA",
	"formation développement",
}

// BenchmarkResult is the outcome of one timed search.
type BenchmarkResult struct {
	Query        string        `json:"query"`
	Duration     time.Duration `json:"duration"`
	ResultsCount int           `json:"resultsCount"`
	HasResults   bool          `json:"hasResults"`
}

// BenchmarkReport aggregates timed searches.
type BenchmarkReport struct {
	TotalQueries    int               `json:"totalQueries"`
	AverageDuration time.Duration     `json:"averageDuration"`
	Results         []BenchmarkResult `json:"results"`
}

// Benchmark times a default-option search for each query.
func (e *Engine) Benchmark(queries []string) (*BenchmarkReport, error) {
	if len(queries) == 0 {
		queries = DefaultBenchmarkQueries
	}
	report := &BenchmarkReport{Results: make([]BenchmarkResult, 0, len(queries))}
	var total time.Duration
	for _, q := range queries {
		start := time.Now()
		resp, err := e.Search(q, domain.SearchOptions{})
		if err != nil {
			return nil, err
		}
		d := time.Since(start)
		total += d
		report.Results = append(report.Results, BenchmarkResult{
			Query:        q,
			Duration:     d,
			ResultsCount: len(resp.Results),
			HasResults:   resp.HasResults,
		})
	}
	report.TotalQueries = len(report.Results)
	report.AverageDuration = total / time.Duration(report.TotalQueries)
	return report, nil
}
