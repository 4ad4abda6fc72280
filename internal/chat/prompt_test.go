package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"portfoliorag/internal/domain"
)

func TestBuildSystemPrompt_WithContext(t *testing.T) {
	sources := []domain.Source{
		{Index: 1, Title: "Stage Développeur Web - Gaea21", Type: "experience-entry", Similarity: 64},
		{Index: 2, Title: "COMPÉTENCES", Type: "skills", Similarity: 41},
	}
	got := BuildSystemPrompt("[COMPÉTENCES]\nGo", sources, "John Developer")

	assert.True(t, strings.HasPrefix(got, "Tu es un assistant IA qui répond aux questions sur le CV et le portfolio de John Developer."))
	assert.Contains(t, got, "CONTEXTE du CV/Portfolio:\n[COMPÉTENCES]\nGo")
	assert.Contains(t, got, "SOURCES utilisées:\n1. Stage Développeur Web - Gaea21 (experience-entry) - Pertinence: 64%\n2. COMPÉTENCES (skills) - Pertinence: 41%")
	assert.Contains(t, got, "INSTRUCTIONS:")
	assert.NotContains(t, got, "Aucun contexte")
}

func TestBuildSystemPrompt_NoSources(t *testing.T) {
	got := BuildSystemPrompt("[Profil]\nPassionné", nil, "Jane")
	assert.NotContains(t, got, "SOURCES")
	assert.Contains(t, got, "INSTRUCTIONS:")
}

func TestBuildSystemPrompt_EmptyContext(t *testing.T) {
	got := BuildSystemPrompt("  ", []domain.Source{{Title: "ignored"}}, "")
	assert.Contains(t, got, "portfolio de ce candidat.")
	assert.Contains(t, got, "Aucun contexte spécifique")
	assert.NotContains(t, got, "ignored")
	assert.NotContains(t, got, "INSTRUCTIONS")
}
