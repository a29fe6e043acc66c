package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type researchResult struct {
	title   string
	source  string
	summary string
}

// searchDoneMsg delivers simulated search results after the lookup delay.
type searchDoneMsg struct {
	query   string
	results []researchResult
}

type researchModel struct {
	query     string
	editing   bool
	searching bool
	results   []researchResult
	cursor    int
	vp        viewport.Model
	statusMsg string
	width     int
	height    int
}

func newResearchModel() researchModel {
	return researchModel{editing: true}
}

func (m researchModel) Init() tea.Cmd {
	return nil
}

func cannedResults(query string) []researchResult {
	return []researchResult{
		{
			title:   fmt.Sprintf("An overview of %q", query),
			source:  "knowledge base",
			summary: fmt.Sprintf("A survey of recent work related to %s, covering the main approaches and their trade-offs.", query),
		},
		{
			title:   fmt.Sprintf("Getting started with %s", query),
			source:  "guides",
			summary: fmt.Sprintf("A practical introduction to %s with worked examples and common pitfalls.", query),
		},
		{
			title:   fmt.Sprintf("Deep dive: %s in production", query),
			source:  "engineering blog",
			summary: fmt.Sprintf("Lessons from running %s at scale, including monitoring and failure modes.", query),
		},
	}
}

func (m researchModel) searchCmd() tea.Cmd {
	query := m.query
	return tea.Tick(1500*time.Millisecond, func(time.Time) tea.Msg {
		return searchDoneMsg{query: query, results: cannedResults(query)}
	})
}

func (m researchModel) Update(msg tea.Msg) (researchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = msg.Height - 5
		if m.vp.Height < 1 {
			m.vp.Height = 1
		}
		m.vp.SetContent(m.resultsContent())

	case searchDoneMsg:
		m.searching = false
		m.results = msg.results
		m.cursor = 0
		m.vp.SetContent(m.resultsContent())
		m.vp.GotoTop()
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m researchModel) updateKeys(msg tea.KeyMsg) (researchModel, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			if strings.TrimSpace(m.query) == "" || m.searching {
				return m, nil
			}
			m.searching = true
			m.editing = false
			m.statusMsg = ""
			return m, m.searchCmd()
		case "esc":
			m.editing = false
		default:
			m.query = editRune(m.query, msg.String())
		}
		return m, nil
	}

	m.statusMsg = ""
	switch msg.String() {
	case "/", "i":
		m.editing = true
	case "j", "down":
		if m.cursor < len(m.results)-1 {
			m.cursor++
			m.vp.SetContent(m.resultsContent())
			m.vp.LineDown(3)
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.vp.SetContent(m.resultsContent())
			m.vp.LineUp(3)
		}
	case "c":
		if m.cursor < len(m.results) {
			if err := clipboard.WriteAll(m.results[m.cursor].summary); err != nil {
				m.statusMsg = "copy failed"
			} else {
				m.statusMsg = "copied"
			}
		}
	}
	return m, nil
}

func (m researchModel) resultsContent() string {
	var b strings.Builder
	for i, r := range m.results {
		cursor := " "
		titleStyle := normalStyle
		if i == m.cursor {
			cursor = ">"
			titleStyle = selectedStyle
		}
		fmt.Fprintf(&b, " %s %s %s\n", cursor, titleStyle.Render(r.title), metaStyle.Render(r.source))
		fmt.Fprintf(&b, "     %s\n\n", dimStyle.Render(truncStr(r.summary, 96)))
	}
	return b.String()
}

func (m researchModel) View() string {
	var b strings.Builder

	b.WriteString(" " + sectionHeaderStyle.Render("RESEARCH") + "\n")

	if m.editing {
		b.WriteString(" " + inputPromptStyle.Render("? ") + m.query + "█\n\n")
	} else {
		b.WriteString(" " + inputPromptStyle.Render("? ") + dimStyle.Render(m.query) + "\n\n")
	}

	switch {
	case m.searching:
		b.WriteString("  " + dimStyle.Render("searching...") + "\n")
	case len(m.results) > 0:
		b.WriteString(m.vp.View() + "\n")
	default:
		b.WriteString("  " + metaStyle.Render("type a query and press enter") + "\n")
	}

	if m.statusMsg != "" {
		b.WriteString(" " + successStyle.Render(m.statusMsg) + "\n")
	}

	return b.String()
}
