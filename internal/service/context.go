package service

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"portfoliorag/internal/domain"
)

const blockSeparator = "\n\n"

// buildContext joins "[title]\ncontent" blocks until the next block would
// push the total past contextMaxChars. The first block is always kept.
func (e *Engine) buildContext(selected []domain.ScoredChunk) string {
	if len(selected) == 0 {
		return ""
	}
	ordered := make([]domain.ScoredChunk, len(selected))
	copy(ordered, selected)
	if e.contextOrder == OrderPriority {
		sort.SliceStable(ordered, func(i, j int) bool {
			return domain.PriorityOf(ordered[i].Chunk.Type) < domain.PriorityOf(ordered[j].Chunk.Type)
		})
	}

	var b strings.Builder
	length := 0
	for _, sc := range ordered {
		block := contextBlock(sc.Chunk)
		size := utf8.RuneCountInString(block) + len(blockSeparator)
		if b.Len() > 0 && length+size > e.contextMaxChars {
			break
		}
		if b.Len() > 0 {
			b.WriteString(blockSeparator)
		}
		b.WriteString(block)
		length += size
	}
	return strings.TrimSpace(b.String())
}

func contextBlock(c domain.Chunk) string {
	label := c.Title
	if label == "" {
		label = c.Type
	}
	return "[" + label + "]\n" + c.Content
}

// buildSources emits one citation per selected chunk, in rank order.
func (e *Engine) buildSources(selected []domain.ScoredChunk) []domain.Source {
	sources := make([]domain.Source, len(selected))
	for i, sc := range selected {
		title := sc.Chunk.Title
		if title == "" {
			title = fmt.Sprintf("Section %d", i+1)
		}
		words := sc.Chunk.WordCount
		if words == 0 {
			words = len(strings.Fields(sc.Chunk.Content))
		}
		sources[i] = domain.Source{
			Index:      i + 1,
			Title:      title,
			Type:       sc.Chunk.Type,
			Source:     sc.Chunk.Source,
			Similarity: int(math.Round(sc.Similarity * 100)),
			Preview:    preview(sc.Chunk.Content, e.previewChars),
			WordCount:  words,
		}
	}
	return sources
}

// preview returns the first n runes of s, followed by "..." when truncated.
func preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
