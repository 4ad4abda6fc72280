package chunker

import (
	"os"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfoliorag/internal/domain"
)

func TestNewSectionChunker(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := NewSectionChunker()
		assert.Equal(t, DefaultMinContentLength, c.MinContentLength())
		assert.Equal(t, DefaultMaxHeaderLength, c.rules.MaxHeaderLength)
	})

	t.Run("custom values", func(t *testing.T) {
		c := NewSectionChunker(WithMinContentLength(20), WithMaxHeaderLength(30))
		assert.Equal(t, 20, c.MinContentLength())
		assert.Equal(t, 30, c.rules.MaxHeaderLength)
	})

	t.Run("non-positive values ignored", func(t *testing.T) {
		c := NewSectionChunker(WithMinContentLength(0), WithMaxHeaderLength(-1))
		assert.Equal(t, DefaultMinContentLength, c.MinContentLength())
		assert.Equal(t, DefaultMaxHeaderLength, c.rules.MaxHeaderLength)
	})
}

func TestChunk_ExperienceThenSkills(t *testing.T) {
	c := NewSectionChunker()
	doc := domain.Document{ID: "cv.txt", Content: "EXPERIENCE\nDeveloper at Acme\nBuilt systems\nSKILLS\nTypeScript, Go"}

	chunks, err := c.Chunk(doc)
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	assert.Equal(t, domain.EntryExperience, chunks[0].Type)
	assert.Equal(t, "Developer at Acme", chunks[0].Title)
	assert.Contains(t, chunks[0].Content, "Built systems")

	assert.Equal(t, domain.SectionSkills, chunks[1].Type)
	assert.Equal(t, "SKILLS", chunks[1].Title)
	assert.Equal(t, "TypeScript, Go", chunks[1].Content)

	assert.Equal(t, "cv.txt_0", chunks[0].ID)
	assert.Equal(t, "cv.txt_1", chunks[1].ID)
	for _, ch := range chunks {
		assert.Equal(t, "cv.txt", ch.Source)
	}
}

func TestChunk_NoHeadersFallsBackToGeneral(t *testing.T) {
	c := NewSectionChunker()
	text := "Just some free text\nwithout any recognizable structure at all."

	chunks, err := c.Chunk(domain.Document{ID: "notes.txt", Content: text})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, domain.SectionGeneral, chunks[0].Type)
	assert.Equal(t, "Just some free text", chunks[0].Title)
	assert.Equal(t, text, chunks[0].Content)
	assert.Equal(t, 10, chunks[0].WordCount)
}

func TestChunk_EmptyContent(t *testing.T) {
	c := NewSectionChunker()
	chunks, err := c.Chunk(domain.Document{ID: "empty.txt", Content: " \n\n\t"})
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestChunk_PreambleBecomesHeader(t *testing.T) {
	c := NewSectionChunker()
	text := "Jane Doe\nBackend engineer\nSKILLS\nGo, Rust, PostgreSQL"

	chunks, err := c.Chunk(domain.Document{ID: "cv.txt", Content: text})
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, domain.SectionHeader, chunks[0].Type)
	assert.Equal(t, "Jane Doe", chunks[0].Title)
	assert.Equal(t, "Jane Doe\nBackend engineer", chunks[0].Content)
}

func TestChunk_MinimumLength(t *testing.T) {
	text := "SKILLS\nGo\nLANGUAGES\nFrench and English, fluent"

	t.Run("short chunk dropped", func(t *testing.T) {
		chunks, err := NewSectionChunker().Chunk(domain.Document{ID: "cv", Content: text})
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, domain.SectionLanguages, chunks[0].Type)
		assert.Equal(t, "cv_0", chunks[0].ID)
	})

	t.Run("larger threshold", func(t *testing.T) {
		chunks, err := NewSectionChunker(WithMinContentLength(40)).Chunk(domain.Document{ID: "cv", Content: text})
		require.NoError(t, err)
		assert.Empty(t, chunks)
	})
}

func TestChunk_EveryEntrySplits(t *testing.T) {
	text := strings.Join([]string{
		"EDUCATION",
		"Master in Computer Science",
		"University of Geneva",
		"Bachelor in Computer Science",
		"University of Geneva",
		"Licence professionnelle",
		"Université de Lyon",
	}, "\n")

	chunks, err := NewSectionChunker().Chunk(domain.Document{ID: "cv", Content: text})
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	for _, ch := range chunks {
		assert.Equal(t, domain.EntryEducation, ch.Type)
	}
	assert.Equal(t, "Master in Computer Science", chunks[0].Title)
	assert.Equal(t, "Bachelor in Computer Science", chunks[1].Title)
	assert.Equal(t, "Licence professionnelle", chunks[2].Title)
}

func TestChunk_CompoundEducationHeaders(t *testing.T) {
	headers := []string{"DIPLÔMES ET FORMATIONS", "ÉDUCATION ET DIPLÔMES", "EDUCATION & CERTIFICATIONS"}

	for _, header := range headers {
		t.Run(header, func(t *testing.T) {
			text := strings.Join([]string{
				"EXPÉRIENCES",
				"Développeur Logiciel - Acme",
				"Applications desktop en C# et WPF.",
				header,
				"Master en Informatique",
				"Université de Genève, 2021 - 2023",
			}, "\n")

			chunks, err := NewSectionChunker().Chunk(domain.Document{ID: "cv", Content: text})
			require.NoError(t, err)
			require.Len(t, chunks, 2)

			assert.Equal(t, domain.EntryExperience, chunks[0].Type)
			assert.NotContains(t, chunks[0].Content, "Master")
			assert.NotContains(t, chunks[0].Content, header)

			assert.Equal(t, domain.EntryEducation, chunks[1].Type)
			assert.Equal(t, "Master en Informatique", chunks[1].Title)
			assert.Contains(t, chunks[1].Content, "Université de Genève")
		})
	}
}

func TestChunk_CustomRules(t *testing.T) {
	rules := Rules{
		Sections: []SectionRule{
			{"hobbies", regexp.MustCompile(`^(loisirs|hobbies)\b`)},
		},
		MaxHeaderLength: 30,
	}
	c := NewSectionChunker(WithRules(rules))
	text := "LOISIRS\nEscalade et randonnée\nEXPERIENCE\nDeveloper at Acme"

	chunks, err := c.Chunk(domain.Document{ID: "cv", Content: text})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "hobbies", chunks[0].Type)
	assert.Equal(t, "LOISIRS", chunks[0].Title)
	assert.Contains(t, chunks[0].Content, "Developer at Acme", "headers outside the table are plain lines")
}

func TestChunk_SampleCV(t *testing.T) {
	data, err := os.ReadFile("testdata/cv.txt")
	require.NoError(t, err)

	chunks, err := NewSectionChunker().Chunk(domain.Document{ID: "cv.txt", Content: string(data)})
	require.NoError(t, err)

	var types []string
	for _, ch := range chunks {
		types = append(types, ch.Type)
		assert.GreaterOrEqual(t, utf8.RuneCountInString(ch.Content), DefaultMinContentLength)
		assert.Equal(t, strings.TrimSpace(ch.Content), ch.Content)
		assert.Equal(t, len(strings.Fields(ch.Content)), ch.WordCount)
	}
	assert.Equal(t, []string{
		domain.SectionHeader,
		domain.SectionProfile,
		domain.EntryEducation, domain.EntryEducation,
		domain.SectionSkills,
		domain.EntryExperience, domain.EntryExperience,
		domain.EntryTraining,
		domain.EntryProject, domain.EntryProject,
		domain.SectionLanguages,
	}, types)

	assert.Equal(t, "TailwindWPF", chunks[8].Title)
	assert.Equal(t, "PortfolioRAG", chunks[9].Title)
	assert.Contains(t, chunks[4].Content, "TypeScript")
}
