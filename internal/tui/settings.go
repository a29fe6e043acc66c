package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kiralabs/kira/pkg/domain"
)

// logoutRequestedMsg asks the app to end the session.
type logoutRequestedMsg struct{}

type settingToggle struct {
	label string
	on    bool
}

type settingsModel struct {
	user       *domain.User
	toggles    []settingToggle
	cursor     int
	confirming bool
	width      int
	height     int
}

func newSettingsModel() settingsModel {
	return settingsModel{
		toggles: []settingToggle{
			{label: "Email notifications", on: true},
			{label: "Desktop notifications", on: false},
			{label: "Auto-save drafts", on: true},
			{label: "Usage analytics", on: false},
		},
	}
}

func (m settingsModel) Init() tea.Cmd {
	return nil
}

// rows is the toggle count plus the sign-out row.
func (m settingsModel) rows() int {
	return len(m.toggles) + 1
}

func (m settingsModel) Update(msg tea.Msg) (settingsModel, tea.Cmd) {
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

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m settingsModel) updateKeys(msg tea.KeyMsg) (settingsModel, tea.Cmd) {
	if m.confirming {
		switch msg.String() {
		case "y":
			m.confirming = false
			return m, func() tea.Msg { return logoutRequestedMsg{} }
		case "n", "esc":
			m.confirming = false
		}
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < m.rows()-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter", " ":
		if m.cursor < len(m.toggles) {
			m.toggles[m.cursor].on = !m.toggles[m.cursor].on
		} else {
			m.confirming = true
		}
	}
	return m, nil
}

func (m settingsModel) View() string {
	var b strings.Builder

	b.WriteString(" " + sectionHeaderStyle.Render("ACCOUNT") + "\n\n")
	if m.user != nil {
		fmt.Fprintf(&b, "   %s %s\n", dimStyle.Render("username:"), normalStyle.Render(m.user.Username))
		if m.user.Email != "" {
			fmt.Fprintf(&b, "   %s %s\n", dimStyle.Render("email:   "), normalStyle.Render(m.user.Email))
		}
		if m.user.FullName != "" {
			fmt.Fprintf(&b, "   %s %s\n", dimStyle.Render("name:    "), normalStyle.Render(m.user.FullName))
		}
	} else {
		b.WriteString("   " + metaStyle.Render("not signed in") + "\n")
	}

	b.WriteString("\n " + sectionHeaderStyle.Render("PREFERENCES") + "\n\n")
	for i, t := range m.toggles {
		cursor := " "
		labelStyle := normalStyle
		if i == m.cursor {
			cursor = ">"
			labelStyle = selectedStyle
		}
		state := metaStyle.Render("[off]")
		if t.on {
			state = successStyle.Render("[on] ")
		}
		fmt.Fprintf(&b, " %s %s %s\n", cursor, state, labelStyle.Render(t.label))
	}

	b.WriteString("\n " + sectionHeaderStyle.Render("SESSION") + "\n\n")
	cursor := " "
	labelStyle := normalStyle
	if m.cursor == len(m.toggles) {
		cursor = ">"
		labelStyle = selectedStyle
	}
	if m.confirming {
		fmt.Fprintf(&b, " %s %s %s\n", cursor, errorStyle.Render("Sign out?"), dimStyle.Render("(y/n)"))
	} else {
		fmt.Fprintf(&b, " %s %s\n", cursor, labelStyle.Render("Sign out"))
	}

	return b.String()
}
