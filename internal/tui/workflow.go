package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type stepStatus int

const (
	stepPending stepStatus = iota
	stepRunning
	stepCompleted
)

func (s stepStatus) String() string {
	switch s {
	case stepRunning:
		return "running"
	case stepCompleted:
		return "completed"
	default:
		return "pending"
	}
}

var stepTypes = []string{"python", "javascript", "api", "ai"}

type workflowStep struct {
	id     uuid.UUID
	typ    string
	name   string
	status stepStatus
}

// stepDoneMsg marks the currently running step as finished.
type stepDoneMsg struct {
	id uuid.UUID
}

type workflowModel struct {
	steps     []workflowStep
	cursor    int
	typeIdx   int
	running   bool
	runIdx    int
	statusMsg string
	width     int
	height    int
}

func newWorkflowModel() workflowModel {
	return workflowModel{
		steps: []workflowStep{
			{id: uuid.New(), typ: "python", name: "Fetch source data"},
			{id: uuid.New(), typ: "ai", name: "Summarize findings"},
		},
	}
}

func (m workflowModel) Init() tea.Cmd {
	return nil
}

func (m workflowModel) stepCmd() tea.Cmd {
	id := m.steps[m.runIdx].id
	return tea.Tick(1500*time.Millisecond, func(time.Time) tea.Msg {
		return stepDoneMsg{id: id}
	})
}

func (m workflowModel) Update(msg tea.Msg) (workflowModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case stepDoneMsg:
		if !m.running || m.runIdx >= len(m.steps) || m.steps[m.runIdx].id != msg.id {
			return m, nil
		}
		m.steps[m.runIdx].status = stepCompleted
		m.runIdx++
		if m.runIdx < len(m.steps) {
			m.steps[m.runIdx].status = stepRunning
			return m, m.stepCmd()
		}
		m.running = false
		m.statusMsg = "workflow completed"
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m workflowModel) updateKeys(msg tea.KeyMsg) (workflowModel, tea.Cmd) {
	if m.running {
		return m, nil
	}

	m.statusMsg = ""
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.steps)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "h":
		m.typeIdx = (m.typeIdx - 1 + len(stepTypes)) % len(stepTypes)
	case "l":
		m.typeIdx = (m.typeIdx + 1) % len(stepTypes)
	case "a":
		typ := stepTypes[m.typeIdx]
		m.steps = append(m.steps, workflowStep{
			id:   uuid.New(),
			typ:  typ,
			name: fmt.Sprintf("New %s step", typ),
		})
		m.cursor = len(m.steps) - 1
	case "d":
		if m.cursor < len(m.steps) {
			m.steps = append(m.steps[:m.cursor], m.steps[m.cursor+1:]...)
			if m.cursor > 0 && m.cursor >= len(m.steps) {
				m.cursor--
			}
		}
	case "r":
		if len(m.steps) == 0 {
			return m, nil
		}
		for i := range m.steps {
			m.steps[i].status = stepPending
		}
		m.running = true
		m.runIdx = 0
		m.steps[0].status = stepRunning
		return m, m.stepCmd()
	}
	return m, nil
}

func stepStatusStyled(s stepStatus) string {
	switch s {
	case stepRunning:
		return stepRunningStyle.Render("running")
	case stepCompleted:
		return stepCompletedStyle.Render("completed")
	default:
		return stepPendingStyle.Render("pending")
	}
}

func (m workflowModel) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, " %s  %s%s%s\n\n",
		sectionHeaderStyle.Render("WORKFLOW"),
		dimStyle.Render("add type: "),
		StepTypeStyle(stepTypes[m.typeIdx]).Render(stepTypes[m.typeIdx]),
		dimStyle.Render("  (h/l to cycle)"))

	if len(m.steps) == 0 {
		b.WriteString("  " + metaStyle.Render("no steps yet, press a to add one") + "\n")
	}

	for i, s := range m.steps {
		cursor := " "
		nameStyle := normalStyle
		if i == m.cursor && !m.running {
			cursor = ">"
			nameStyle = selectedStyle
		}
		fmt.Fprintf(&b, " %s %d. %s %s %s\n",
			cursor,
			i+1,
			StepTypeStyle(s.typ).Render(fmt.Sprintf("%-10s", s.typ)),
			nameStyle.Render(truncStr(s.name, 40)),
			stepStatusStyled(s.status))
	}

	b.WriteString("\n")
	if m.running {
		b.WriteString(" " + dimStyle.Render("running workflow...") + "\n")
	} else if m.statusMsg != "" {
		b.WriteString(" " + successStyle.Render(m.statusMsg) + "\n")
	}

	return b.String()
}
