package chunker

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"portfoliorag/internal/domain"
	"portfoliorag/internal/textnorm"
)

// Transition is what a line does to the chunk currently being accumulated.
type Transition int

const (
	// Append adds the line to the open chunk's content.
	Append Transition = iota
	// NewEntry closes the open chunk and opens a sub-entry of the current section.
	NewEntry
	// NewSection closes the open chunk and opens a new section.
	NewSection
	// Skip ignores the line.
	Skip
)

func (t Transition) String() string {
	switch t {
	case Append:
		return "append"
	case NewEntry:
		return "new-entry"
	case NewSection:
		return "new-section"
	case Skip:
		return "skip"
	}
	return "unknown"
}

// SectionRule recognizes a section header. Patterns run against the folded line.
type SectionRule struct {
	Type    string
	Pattern *regexp.Regexp
}

// EntryRule recognizes the first line of a sub-entry inside one section.
type EntryRule struct {
	Type  string
	Match func(line, folded string) bool
}

// Rules is the transition table of the chunker state machine.
// Section rules are tried in order and must not overlap.
type Rules struct {
	Sections        []SectionRule
	Entries         map[string]EntryRule
	MaxHeaderLength int
}

const (
	// DefaultMaxHeaderLength is the longest line, in runes, still considered a header.
	DefaultMaxHeaderLength = 48
	// MaxProjectTitleLength is the longest line, in runes, that can open a project entry.
	MaxProjectTitleLength = 50
	maxProjectTitleWords  = 6
	minLineLength         = 2
)

// DefaultRules returns the header and entry table for French and English résumés.
func DefaultRules() Rules {
	return Rules{
		Sections: []SectionRule{
			{domain.SectionProfile, regexp.MustCompile(`^(a propos|about me|about|profil|profile|presentation|summary)\b`)},
			{domain.SectionContact, regexp.MustCompile(`^(contact|coordonnees)\b`)},
			{domain.SectionEducation, regexp.MustCompile(`^(diplomes|education)\b|^(diplome|formation)(\s+(academique|initiale|universitaire))?\s*:?\s*$`)},
			{domain.SectionSkills, regexp.MustCompile(`^(competences|technologies|skills|technical skills|stack technique)\b`)},
			{domain.SectionExperience, regexp.MustCompile(`^(experiences?|professional experience|work experience|parcours professionnel)\b`)},
			{domain.SectionTraining, regexp.MustCompile(`^(formations?\s+complementaires?|certifications?|trainings?|courses)\b`)},
			{domain.SectionProjects, regexp.MustCompile(`^(projets?|projects?|realisations)\b`)},
			{domain.SectionLanguages, regexp.MustCompile(`^(langues|languages)\b`)},
		},
		Entries: map[string]EntryRule{
			domain.SectionEducation: {domain.EntryEducation, prefixMatcher(
				`^(master|bachelor|licence|bts|dut|msc|bsc|mba|phd|doctorat|diplome|degree)\b`)},
			domain.SectionExperience: {domain.EntryExperience, prefixMatcher(
				`^(developpeur|developer|software engineer|engineer|ingenieur|stage|stagiaire|internship|intern|consultant|freelance)\b`)},
			domain.SectionTraining: {domain.EntryTraining, prefixMatcher(
				`^(formation|certification|certificate|course|cours|mooc)\b`)},
			domain.SectionProjects: {domain.EntryProject, isProjectTitle},
		},
		MaxHeaderLength: DefaultMaxHeaderLength,
	}
}

func prefixMatcher(pattern string) func(line, folded string) bool {
	re := regexp.MustCompile(pattern)
	return func(_, folded string) bool { return re.MatchString(folded) }
}

// isProjectTitle accepts short capitalized lines without a colon that do not
// read like a sentence.
func isProjectTitle(line, _ string) bool {
	first, _ := utf8.DecodeRuneInString(line)
	if !unicode.IsUpper(first) {
		return false
	}
	if strings.Contains(line, ":") || strings.HasSuffix(line, ".") {
		return false
	}
	if utf8.RuneCountInString(line) >= MaxProjectTitleLength {
		return false
	}
	return len(strings.Fields(line)) <= maxProjectTitleWords
}

// Classify decides the transition for a trimmed line given the open section.
// Section headers win over entry rules.
func (r Rules) Classify(section, line string) (Transition, string) {
	n := utf8.RuneCountInString(line)
	if n < minLineLength {
		return Skip, ""
	}
	folded := textnorm.Fold(line)
	if r.MaxHeaderLength <= 0 || n <= r.MaxHeaderLength {
		for _, rule := range r.Sections {
			if rule.Pattern.MatchString(folded) {
				return NewSection, rule.Type
			}
		}
	}
	if section != "" {
		if entry, ok := r.Entries[section]; ok && entry.Match(line, folded) {
			return NewEntry, entry.Type
		}
	}
	return Append, ""
}
