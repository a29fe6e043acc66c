package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type taskFilter int

const (
	filterAll taskFilter = iota
	filterActive
	filterCompleted
	numFilters
)

func (f taskFilter) String() string {
	switch f {
	case filterActive:
		return "active"
	case filterCompleted:
		return "completed"
	default:
		return "all"
	}
}

type task struct {
	id       int
	title    string
	priority string
	due      time.Time
	done     bool
}

type tasksModel struct {
	tasks     []task
	cursor    int
	filter    taskFilter
	adding    bool
	input     string
	nextID    int
	statusMsg string
	width     int
	height    int
}

func newTasksModel() tasksModel {
	now := time.Now()
	return tasksModel{
		tasks: []task{
			{id: 1, title: "Review design mockups", priority: "high", due: now.Add(24 * time.Hour)},
			{id: 2, title: "Update project documentation", priority: "medium", due: now.Add(3 * 24 * time.Hour)},
			{id: 3, title: "Schedule team sync", priority: "low", due: now.Add(5 * 24 * time.Hour), done: true},
		},
		nextID: 4,
	}
}

func (m tasksModel) Init() tea.Cmd {
	return nil
}

// visible returns indexes into m.tasks matching the active filter.
func (m tasksModel) visible() []int {
	var idx []int
	for i, t := range m.tasks {
		switch m.filter {
		case filterActive:
			if t.done {
				continue
			}
		case filterCompleted:
			if !t.done {
				continue
			}
		}
		idx = append(idx, i)
	}
	return idx
}

func (m tasksModel) Update(msg tea.Msg) (tasksModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m tasksModel) updateKeys(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	if m.adding {
		switch msg.String() {
		case "enter":
			title := strings.TrimSpace(m.input)
			if title != "" {
				m.tasks = append(m.tasks, task{
					id:       m.nextID,
					title:    title,
					priority: "medium",
					due:      time.Now().Add(24 * time.Hour),
				})
				m.nextID++
				m.statusMsg = "task added"
			}
			m.adding = false
			m.input = ""
		case "esc":
			m.adding = false
			m.input = ""
		default:
			m.input = editRune(m.input, msg.String())
		}
		return m, nil
	}

	m.statusMsg = ""
	vis := m.visible()

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(vis)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "a":
		m.adding = true
		m.input = ""
	case "f":
		m.filter = (m.filter + 1) % numFilters
		m.cursor = 0
	case "enter", " ":
		if m.cursor < len(vis) {
			i := vis[m.cursor]
			m.tasks[i].done = !m.tasks[i].done
		}
	case "d":
		if m.cursor < len(vis) {
			i := vis[m.cursor]
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			if m.cursor > 0 && m.cursor >= len(m.visible()) {
				m.cursor--
			}
			m.statusMsg = "task deleted"
		}
	}
	return m, nil
}

func (m tasksModel) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, " %s  %s\n\n",
		sectionHeaderStyle.Render("TASKS"),
		dimStyle.Render("filter: "+m.filter.String()))

	vis := m.visible()
	if len(vis) == 0 {
		b.WriteString("  " + metaStyle.Render("no tasks here") + "\n")
	}

	for pos, i := range vis {
		t := m.tasks[i]
		cursor := " "
		titleStyle := normalStyle
		if pos == m.cursor && !m.adding {
			cursor = ">"
			titleStyle = selectedStyle
		}
		check := "[ ]"
		if t.done {
			check = "[x]"
			titleStyle = metaStyle
		}
		fmt.Fprintf(&b, " %s %s %s %s %s\n",
			cursor,
			dimStyle.Render(check),
			titleStyle.Render(truncStr(t.title, 48)),
			PriorityStyle(t.priority).Render(t.priority),
			metaStyle.Render("due "+t.due.Format("Jan 2")))
	}

	b.WriteString("\n")
	if m.adding {
		b.WriteString(" " + inputPromptStyle.Render("> ") + m.input + "█\n")
	} else if m.statusMsg != "" {
		b.WriteString(" " + successStyle.Render(m.statusMsg) + "\n")
	}

	return b.String()
}
