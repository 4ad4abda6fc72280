package chunker

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"portfoliorag/internal/domain"
)

// DefaultMinContentLength is the shortest trimmed content, in runes, a chunk may have.
const DefaultMinContentLength = 6

// SectionChunker splits a résumé into section and entry chunks by running
// every line through the Rules state machine.
type SectionChunker struct {
	rules            Rules
	minContentLength int
}

// Option configures a SectionChunker.
type Option func(*SectionChunker)

// WithMinContentLength sets the minimum trimmed content length in runes.
func WithMinContentLength(n int) Option {
	return func(c *SectionChunker) {
		if n > 0 {
			c.minContentLength = n
		}
	}
}

// WithMaxHeaderLength sets the longest line still tested against section headers.
func WithMaxHeaderLength(n int) Option {
	return func(c *SectionChunker) {
		if n > 0 {
			c.rules.MaxHeaderLength = n
		}
	}
}

// WithRules replaces the transition table.
func WithRules(r Rules) Option {
	return func(c *SectionChunker) {
		c.rules = r
	}
}

// NewSectionChunker creates a chunker with the default rules.
func NewSectionChunker(opts ...Option) *SectionChunker {
	c := &SectionChunker{
		rules:            DefaultRules(),
		minContentLength: DefaultMinContentLength,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MinContentLength returns the configured minimum content length.
func (c *SectionChunker) MinContentLength() int { return c.minContentLength }

// Chunk splits the document into ordered chunks tagged with document.ID.
// A document without any recognized header becomes a single "general" chunk.
func (c *SectionChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	lines := splitLines(document.Content)
	if len(lines) == 0 {
		return nil, nil
	}

	var drafts []*Draft
	var state State
	for _, line := range lines {
		var closed *Draft
		state, closed = c.rules.Advance(state, line)
		if closed != nil {
			drafts = append(drafts, closed)
		}
	}
	if last := c.rules.Finish(state); last != nil {
		drafts = append(drafts, last)
	}

	if !state.SawHeader {
		drafts = []*Draft{{
			Type:    domain.SectionGeneral,
			Title:   lines[0],
			Content: strings.TrimSpace(document.Content),
		}}
	}

	chunks := make([]domain.Chunk, 0, len(drafts))
	for _, d := range drafts {
		content := strings.TrimSpace(d.Content)
		if utf8.RuneCountInString(content) < c.minContentLength {
			continue
		}
		chunks = append(chunks, domain.Chunk{
			ID:        fmt.Sprintf("%s_%d", document.ID, len(chunks)),
			Type:      d.Type,
			Title:     strings.TrimSpace(d.Title),
			Content:   content,
			Source:    document.ID,
			WordCount: len(strings.Fields(content)),
		})
	}
	return chunks, nil
}

// splitLines returns the non-empty trimmed lines of text in order.
func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return out
}
