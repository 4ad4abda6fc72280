package chunker

import (
	"strings"

	"portfoliorag/internal/domain"
)

// Draft is a chunk still being accumulated.
type Draft struct {
	Type    string
	Title   string
	Content string
}

// State is the chunker state between two lines. Section is the open
// section type ("" before the first header); Open is the draft receiving lines.
type State struct {
	Section   string
	Open      *Draft
	SawHeader bool
}

// Advance feeds one trimmed line to the state machine and returns the next
// state plus the draft closed by this line, if any. It never mutates s.
func (r Rules) Advance(s State, line string) (State, *Draft) {
	transition, chunkType := r.Classify(s.Section, line)
	switch transition {
	case Skip:
		return s, nil
	case NewSection:
		return State{
			Section:   chunkType,
			Open:      &Draft{Type: chunkType, Title: line},
			SawHeader: true,
		}, closeDraft(s.Open)
	case NewEntry:
		return State{
			Section:   s.Section,
			Open:      &Draft{Type: chunkType, Title: line},
			SawHeader: s.SawHeader,
		}, closeDraft(s.Open)
	}

	if s.Open == nil {
		// Lines above the first header: name, headline, contact details.
		s.Open = &Draft{Type: domain.SectionHeader, Title: line, Content: line + "\n"}
		return s, nil
	}
	next := *s.Open
	next.Content += line + "\n"
	s.Open = &next
	return s, nil
}

// Finish closes the open draft at end of input.
func (r Rules) Finish(s State) *Draft {
	return closeDraft(s.Open)
}

func closeDraft(d *Draft) *Draft {
	if d == nil || strings.TrimSpace(d.Content) == "" {
		return nil
	}
	return d
}
