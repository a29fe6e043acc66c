package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kiralabs/kira/internal/session"
	"github.com/kiralabs/kira/pkg/domain"
)

type loginField int

const (
	fieldLoginUsername loginField = iota
	fieldLoginPassword
	numLoginFields
)

// loginResultMsg carries the outcome of a Login call.
type loginResultMsg struct {
	user *domain.User
	err  error
}

type loginModel struct {
	session    *session.Manager
	fields     [numLoginFields]string
	focus      loginField
	errMsg     string
	notice     string
	submitting bool
}

func newLoginModel(s *session.Manager) loginModel {
	return loginModel{session: s}
}

func (m loginModel) Init() tea.Cmd {
	return nil
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			m.fields[fieldLoginPassword] = ""
			m.focus = fieldLoginPassword
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m loginModel) updateKeys(msg tea.KeyMsg) (loginModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % numLoginFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numLoginFields) % numLoginFields
	case "enter":
		if m.focus == fieldLoginPassword {
			return m.submit()
		}
		m.focus = (m.focus + 1) % numLoginFields
	default:
		m.errMsg = ""
		f := &m.fields[m.focus]
		*f = editRune(*f, msg.String())
	}
	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	username := strings.TrimSpace(m.fields[fieldLoginUsername])
	password := m.fields[fieldLoginPassword]

	creds := domain.LoginCredentials{Username: username, Password: password}
	if err := creds.Validate(); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	m.submitting = true
	m.errMsg = ""
	m.notice = ""
	s := m.session

	return m, func() tea.Msg {
		user, err := s.Login(context.Background(), username, password)
		return loginResultMsg{user: user, err: err}
	}
}

func (m loginModel) View() string {
	var b strings.Builder

	b.WriteString("\n  " + accentStyle.Render("Sign in to KIRA") + "\n\n")

	if m.notice != "" {
		b.WriteString("  " + successStyle.Render(m.notice) + "\n\n")
	}
	if m.errMsg != "" {
		b.WriteString("  " + errorStyle.Render(m.errMsg) + "\n\n")
	}

	labels := [numLoginFields]string{"username", "password"}
	for i := loginField(0); i < numLoginFields; i++ {
		value := m.fields[i]
		if i == fieldLoginPassword {
			value = maskString(value)
		}
		cursor := " "
		style := metaStyle
		if i == m.focus {
			cursor = ">"
			style = selectedStyle
			value += "█"
		}
		fmt.Fprintf(&b, "  %s %s: %s\n", cursor, style.Render(labels[i]), value)
	}

	b.WriteString("\n")
	if m.submitting {
		b.WriteString("  " + dimStyle.Render("signing in..."))
	}

	return b.String()
}

type registerField int

const (
	fieldRegUsername registerField = iota
	fieldRegEmail
	fieldRegPassword
	numRegisterFields
)

// registerResultMsg carries the outcome of a Register call.
type registerResultMsg struct {
	err error
}

type registerModel struct {
	session    *session.Manager
	fields     [numRegisterFields]string
	focus      registerField
	errMsg     string
	submitting bool
}

func newRegisterModel(s *session.Manager) registerModel {
	return registerModel{session: s}
}

func (m registerModel) Init() tea.Cmd {
	return nil
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m registerModel) updateKeys(msg tea.KeyMsg) (registerModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % numRegisterFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numRegisterFields) % numRegisterFields
	case "enter":
		if m.focus == fieldRegPassword {
			return m.submit()
		}
		m.focus = (m.focus + 1) % numRegisterFields
	default:
		m.errMsg = ""
		f := &m.fields[m.focus]
		*f = editRune(*f, msg.String())
	}
	return m, nil
}

func (m registerModel) submit() (registerModel, tea.Cmd) {
	username := strings.TrimSpace(m.fields[fieldRegUsername])
	email := strings.TrimSpace(m.fields[fieldRegEmail])
	password := m.fields[fieldRegPassword]

	creds := domain.RegisterCredentials{Username: username, Email: email, Password: password}
	if err := creds.Validate(); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	m.submitting = true
	m.errMsg = ""
	s := m.session

	return m, func() tea.Msg {
		err := s.Register(context.Background(), username, email, password)
		return registerResultMsg{err: err}
	}
}

func (m registerModel) View() string {
	var b strings.Builder

	b.WriteString("\n  " + accentStyle.Render("Create your KIRA account") + "\n\n")

	if m.errMsg != "" {
		b.WriteString("  " + errorStyle.Render(m.errMsg) + "\n\n")
	}

	labels := [numRegisterFields]string{"username", "email", "password"}
	for i := registerField(0); i < numRegisterFields; i++ {
		value := m.fields[i]
		if i == fieldRegPassword {
			value = maskString(value)
		}
		cursor := " "
		style := metaStyle
		if i == m.focus {
			cursor = ">"
			style = selectedStyle
			value += "█"
		}
		fmt.Fprintf(&b, "  %s %s: %s\n", cursor, style.Render(labels[i]), value)
	}

	b.WriteString("\n")
	if m.submitting {
		b.WriteString("  " + dimStyle.Render("creating account..."))
	}

	return b.String()
}
