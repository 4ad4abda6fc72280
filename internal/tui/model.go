// Package tui is an interactive retrieval inspector: type a question, browse
// the ranked chunks, and see the context block a chat prompt would receive.
package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"portfoliorag/internal/domain"
	"portfoliorag/internal/textnorm"
)

// Pane selects what the result box shows.
type Pane int

const (
	PaneResults Pane = iota
	PaneContext
)

// Model is the Bubble Tea model for the inspector.
type Model struct {
	searcher  domain.Searcher
	input     textinput.Model
	viewport  viewport.Model
	topK      int
	summary   string
	status    string
	response  *domain.SearchResponse
	expanded  []string
	cursor    int
	pane      Pane
	expand    bool
	noBoost   bool
	ready     bool
	lastQuery string
}

// New creates an inspector. topK of 0 uses the index default.
func New(searcher domain.Searcher, summary string, topK int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Pose une question et appuie sur Entrée"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		searcher: searcher,
		input:    ti,
		viewport: vp,
		topK:     topK,
		summary:  summary,
		status:   "Index chargé. Tab: contexte, ctrl+e: expansion, ctrl+b: boosts.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header + summary, status, spacer
		vh := msg.Height - reserved
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			if q := strings.TrimSpace(m.input.Value()); q != "" {
				m.run(q)
				return m, nil
			}
		case "tab":
			if m.pane == PaneResults {
				m.pane = PaneContext
			} else {
				m.pane = PaneResults
			}
			m.refresh()
			return m, nil
		case "ctrl+e":
			m.expand = !m.expand
			m.rerun()
			return m, nil
		case "ctrl+b":
			m.noBoost = !m.noBoost
			m.rerun()
			return m, nil
		case "down":
			if n := m.resultCount(); n > 0 {
				m.cursor = (m.cursor + 1) % n
				m.refresh()
				return m, nil
			}
		case "up":
			if n := m.resultCount(); n > 0 {
				m.cursor = (m.cursor - 1 + n) % n
				m.refresh()
				return m, nil
			}
		case "pgdown", "pgup":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) rerun() {
	if m.lastQuery == "" {
		m.status = m.modeLabel()
		return
	}
	m.run(m.lastQuery)
}

func (m *Model) run(query string) {
	opts := domain.SearchOptions{TopK: m.topK, NoBoost: m.noBoost}
	var (
		resp     *domain.SearchResponse
		expanded []string
		err      error
	)
	if m.expand {
		var out *domain.ExpandedSearchResponse
		out, err = m.searcher.SearchWithExpansion(query, opts)
		if out != nil {
			resp, expanded = &out.SearchResponse, out.ExpandedQueries
		}
	} else {
		resp, err = m.searcher.Search(query, opts)
	}
	if err != nil {
		m.status = "Erreur: " + err.Error()
		m.response, m.expanded = nil, nil
		m.refresh()
		return
	}
	m.response, m.expanded = resp, expanded
	m.cursor = 0
	m.lastQuery = query
	m.status = fmt.Sprintf("%d résultat(s) pour %q (%d/%d chunks) %s",
		len(resp.Results), query, resp.Stats.FoundChunks, resp.Stats.TotalChunks, m.modeLabel())
	m.refresh()
}

func (m Model) modeLabel() string {
	var flags []string
	if m.expand {
		flags = append(flags, "expansion")
	}
	if m.noBoost {
		flags = append(flags, "sans boosts")
	}
	if len(flags) == 0 {
		return "[standard]"
	}
	return "[" + strings.Join(flags, ", ") + "]"
}

func (m Model) resultCount() int {
	if m.response == nil || m.pane != PaneResults {
		return 0
	}
	return len(m.response.Results)
}

func (m *Model) refresh() {
	if m.pane == PaneContext {
		m.viewport.SetContent(m.renderContext())
	} else {
		m.viewport.SetContent(m.renderCurrentResult())
	}
	m.viewport.GotoTop()
}

// View renders the layout and current pane.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("PortfolioRAG Inspector")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrentResult() string {
	if m.response == nil || len(m.response.Results) == 0 {
		if m.lastQuery != "" {
			return "Aucun résultat."
		}
		return "No results yet."
	}
	r := m.response.Results[m.cursor]
	title := fmt.Sprintf("Result %d/%d  %s [%s]  score=%.3f  cosine=%.3f",
		m.cursor+1, len(m.response.Results), r.Title, r.Type, r.Similarity, r.BaseSimilarity)
	body := highlightBestSentence(r.Content, m.lastQuery)
	return title + "\n\n" + body
}

func (m Model) renderContext() string {
	if m.response == nil || m.response.Context == "" {
		return "Contexte vide."
	}
	var b strings.Builder
	if len(m.expanded) > 0 {
		b.WriteString(mutedStyle.Render("Variantes: " + strings.Join(m.expanded, " | ")))
		b.WriteString("\n\n")
	}
	b.WriteString(m.response.Context)
	if len(m.response.Sources) > 0 {
		b.WriteString("\n\n")
		for _, s := range m.response.Sources {
			fmt.Fprintf(&b, "%d. %s (%s) %d%%\n", s.Index, s.Title, s.Type, s.Similarity)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	unicodeWordRe  = regexp.MustCompile(`[\p{L}\p{N}#+]+`)
	sentenceRe     = regexp.MustCompile(`[^.!?\n]+[.!?]*`)
)

// highlightBestSentence renders text with its line or sentence sharing the
// most folded words with query highlighted.
func highlightBestSentence(text, query string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	qTokens := toTokenSet(query)
	if len(qTokens) == 0 {
		return text
	}
	spans := sentenceRe.FindAllStringIndex(text, -1)
	if len(spans) == 0 {
		return text
	}
	best, bestScore := -1, 0
	for i, sp := range spans {
		if score := tokenOverlapScore(qTokens, text[sp[0]:sp[1]]); score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return text
	}
	sp := spans[best]
	return text[:sp[0]] + highlightStyle.Render(text[sp[0]:sp[1]]) + text[sp[1]:]
}

func toTokenSet(s string) map[string]struct{} {
	tokens := unicodeWordRe.FindAllString(textnorm.Fold(s), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

func tokenOverlapScore(queryTokens map[string]struct{}, sentence string) int {
	score := 0
	tokens := unicodeWordRe.FindAllString(textnorm.Fold(sentence), -1)
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := queryTokens[t]; ok {
			score++
		}
	}
	return score
}
