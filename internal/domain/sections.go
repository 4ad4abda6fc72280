package domain

// Chunk type labels. Section labels come from header lines; entry labels
// are sub-chunks opened inside a section.
const (
	SectionHeader     = "header"
	SectionGeneral    = "general"
	SectionProfile    = "profile"
	SectionContact    = "contact"
	SectionEducation  = "education"
	SectionSkills     = "skills"
	SectionExperience = "experience"
	SectionTraining   = "training"
	SectionProjects   = "projects"
	SectionLanguages  = "languages"

	EntryEducation  = "education-entry"
	EntryExperience = "experience-entry"
	EntryTraining   = "training-entry"
	EntryProject    = "project"
)

// ContextPriority is the order in which chunk types are laid out in an
// assembled context. Types not listed sort after every listed type.
var ContextPriority = []string{
	SectionProfile,
	SectionExperience, EntryExperience,
	SectionProjects, EntryProject,
	SectionSkills,
	SectionEducation, EntryEducation,
	SectionTraining, EntryTraining,
	SectionLanguages,
}

// PriorityOf returns the position of chunkType in ContextPriority, or
// len(ContextPriority) when it is not listed.
func PriorityOf(chunkType string) int {
	for i, t := range ContextPriority {
		if t == chunkType {
			return i
		}
	}
	return len(ContextPriority)
}
