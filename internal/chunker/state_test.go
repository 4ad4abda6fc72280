package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfoliorag/internal/domain"
)

func TestClassify(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name       string
		section    string
		line       string
		transition Transition
		chunkType  string
	}{
		{"accented header", "", "EXPÉRIENCES", NewSection, domain.SectionExperience},
		{"english header", "", "Work Experience", NewSection, domain.SectionExperience},
		{"education header", "", "DIPLÔMES", NewSection, domain.SectionEducation},
		{"bare formation is education", "", "FORMATION", NewSection, domain.SectionEducation},
		{"education header with suffix", "", "DIPLÔMES ET FORMATIONS", NewSection, domain.SectionEducation},
		{"accented education prefix", "", "ÉDUCATION ET DIPLÔMES", NewSection, domain.SectionEducation},
		{"education with certifications", "", "EDUCATION & CERTIFICATIONS", NewSection, domain.SectionEducation},
		{"singular diploma line is an entry", domain.SectionEducation, "Diplôme d'ingénieur en informatique", NewEntry, domain.EntryEducation},
		{"formation course is not education", domain.SectionExperience, "Formation Unity - Coursera", Append, ""},
		{"complementary training", "", "FORMATIONS COMPLÉMENTAIRES", NewSection, domain.SectionTraining},
		{"skills header", "", "COMPÉTENCES TECHNIQUES", NewSection, domain.SectionSkills},
		{"projects header", "", "PROJETS PERSONNELS NOTABLES", NewSection, domain.SectionProjects},
		{"languages header", "", "LANGUES", NewSection, domain.SectionLanguages},
		{"profile header", "", "À PROPOS", NewSection, domain.SectionProfile},
		{"contact header", "", "Coordonnées", NewSection, domain.SectionContact},
		{"header wins over entry", domain.SectionExperience, "SKILLS", NewSection, domain.SectionSkills},
		{"experience entry", domain.SectionExperience, "Développeur Logiciel - Bontaz", NewEntry, domain.EntryExperience},
		{"education entry", domain.SectionEducation, "Master en Informatique", NewEntry, domain.EntryEducation},
		{"training entry", domain.SectionTraining, "Formation Unity - Coursera", NewEntry, domain.EntryTraining},
		{"project entry", domain.SectionProjects, "TailwindWPF", NewEntry, domain.EntryProject},
		{"project sentence appends", domain.SectionProjects, "Built with Rust.", Append, ""},
		{"project with colon appends", domain.SectionProjects, "Stack: Go", Append, ""},
		{"lowercase project line appends", domain.SectionProjects, "small tool", Append, ""},
		{"entry rule scoped to its section", domain.SectionSkills, "Developer tools", Append, ""},
		{"no entry before first header", "", "Developer at Acme", Append, ""},
		{"long line is never a header", "", "Experience building distributed systems in Go and Rust for a decade", Append, ""},
		{"single rune skipped", domain.SectionSkills, "-", Skip, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transition, chunkType := rules.Classify(tt.section, tt.line)
			assert.Equal(t, tt.transition, transition, "transition %s", transition)
			assert.Equal(t, tt.chunkType, chunkType)
		})
	}
}

func TestSectionPatternsAreMutuallyExclusive(t *testing.T) {
	rules := DefaultRules()
	headers := []string{
		"a propos", "about me", "profil", "profile", "summary",
		"contact", "coordonnees",
		"diplomes", "diplome", "education", "formation", "formation academique",
		"diplomes et formations", "education et diplomes", "education & certifications",
		"competences", "technologies", "skills", "technical skills",
		"experience", "experiences", "professional experience", "work experience",
		"formations complementaires", "formation complementaire", "certifications", "training",
		"projets", "projets personnels", "projects", "realisations",
		"langues", "languages",
	}

	for _, h := range headers {
		t.Run(h, func(t *testing.T) {
			var matched []string
			for _, rule := range rules.Sections {
				if rule.Pattern.MatchString(h) {
					matched = append(matched, rule.Type)
				}
			}
			assert.Len(t, matched, 1, "header %q matched %v", h, matched)
		})
	}
}

func TestAdvance_DoesNotMutateState(t *testing.T) {
	rules := DefaultRules()

	s0, closed := rules.Advance(State{}, "SKILLS")
	require.Nil(t, closed)
	require.NotNil(t, s0.Open)

	s1, closed := rules.Advance(s0, "Go, Rust")
	require.Nil(t, closed)
	assert.Equal(t, "", s0.Open.Content)
	assert.Equal(t, "Go, Rust\n", s1.Open.Content)

	s2, _ := rules.Advance(s1, "Docker")
	assert.Equal(t, "Go, Rust\n", s1.Open.Content)
	assert.Equal(t, "Go, Rust\nDocker\n", s2.Open.Content)
}

func TestAdvance_Transitions(t *testing.T) {
	rules := DefaultRules()

	t.Run("empty section is not emitted", func(t *testing.T) {
		s, _ := rules.Advance(State{}, "EXPERIENCE")
		next, closed := rules.Advance(s, "Developer at Acme")
		assert.Nil(t, closed)
		assert.Equal(t, domain.SectionExperience, next.Section)
		assert.Equal(t, domain.EntryExperience, next.Open.Type)
	})

	t.Run("entry keeps section open", func(t *testing.T) {
		s, _ := rules.Advance(State{}, "EXPERIENCE")
		s, _ = rules.Advance(s, "Developer at Acme")
		s, _ = rules.Advance(s, "Built systems")
		next, closed := rules.Advance(s, "Consultant at Initech")
		require.NotNil(t, closed)
		assert.Equal(t, "Developer at Acme", closed.Title)
		assert.Equal(t, "Built systems\n", closed.Content)
		assert.Equal(t, domain.SectionExperience, next.Section)
		assert.Equal(t, "Consultant at Initech", next.Open.Title)
	})

	t.Run("new section closes entry", func(t *testing.T) {
		s, _ := rules.Advance(State{}, "PROJECTS")
		s, _ = rules.Advance(s, "Gopher")
		s, _ = rules.Advance(s, "a mascot generator written in Go.")
		next, closed := rules.Advance(s, "LANGUAGES")
		require.NotNil(t, closed)
		assert.Equal(t, domain.EntryProject, closed.Type)
		assert.Equal(t, domain.SectionLanguages, next.Section)
		assert.True(t, next.SawHeader)
	})

	t.Run("finish closes last draft", func(t *testing.T) {
		s, _ := rules.Advance(State{}, "SKILLS")
		assert.Nil(t, rules.Finish(s))
		s, _ = rules.Advance(s, "Go")
		d := rules.Finish(s)
		require.NotNil(t, d)
		assert.Equal(t, domain.SectionSkills, d.Type)
	})
}

func TestTransition_String(t *testing.T) {
	assert.Equal(t, "append", Append.String())
	assert.Equal(t, "new-entry", NewEntry.String())
	assert.Equal(t, "new-section", NewSection.String())
	assert.Equal(t, "skip", Skip.String())
	assert.Equal(t, "unknown", Transition(42).String())
}
