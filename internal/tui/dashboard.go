package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kiralabs/kira/pkg/domain"
)

type statCard struct {
	label string
	value int
	style lipgloss.Style
}

type activityItem struct {
	text string
	at   time.Time
}

type dashboardModel struct {
	user     *domain.User
	stats    []statCard
	activity []activityItem
	width    int
	height   int
}

func newDashboardModel() dashboardModel {
	now := time.Now()
	return dashboardModel{
		stats: []statCard{
			{label: "Total Projects", value: 24, style: statBlueStyle},
			{label: "New Messages", value: 12, style: statGreenStyle},
			{label: "Team Members", value: 8, style: statPurpleStyle},
		},
		activity: []activityItem{
			{text: "Project 'Dashboard UI' was updated", at: now.Add(-2 * time.Hour)},
			{text: "New team member added", at: now.Add(-5 * time.Hour)},
			{text: "Client meeting scheduled", at: now.Add(-24 * time.Hour)},
		},
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return nil
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case sessionResolvedMsg:
		if msg.snap.User != nil {
			m.user = msg.snap.User
		}
	case loginResultMsg:
		if msg.err == nil && msg.user != nil {
			m.user = msg.user
		}
	}
	return m, nil
}

func (m dashboardModel) View() string {
	var b strings.Builder

	if m.user != nil {
		fmt.Fprintf(&b, " %s\n\n", normalStyle.Render("Welcome back, "+m.user.DisplayName()+"."))
	} else {
		b.WriteString("\n")
	}

	b.WriteString(" " + sectionHeaderStyle.Render("OVERVIEW") + "\n\n")
	for _, s := range m.stats {
		fmt.Fprintf(&b, "   %s  %s\n", s.style.Render(fmt.Sprintf("%3d", s.value)), dimStyle.Render(s.label))
	}

	b.WriteString("\n " + sectionHeaderStyle.Render("RECENT ACTIVITY") + "\n\n")
	for _, a := range m.activity {
		fmt.Fprintf(&b, "   %s %s\n", normalStyle.Render(truncStr(a.text, 60)), metaStyle.Render(formatTime(a.at)))
	}

	return b.String()
}
