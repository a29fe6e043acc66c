package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// assistantReplyMsg delivers a simulated assistant response.
type assistantReplyMsg struct {
	id   uuid.UUID
	body string
}

type chatEntry struct {
	id       uuid.UUID
	fromSelf bool
	body     string
	at       time.Time
}

type messagesModel struct {
	entries      []chatEntry
	input        string
	inputFocused bool
	thinking     bool
	statusMsg    string
	width        int
	height       int
}

var assistantReplies = []string{
	"Got it. I've noted that down for you.",
	"Here's what I found: your workspace has three active projects and two pending reviews.",
	"Done. Anything else you'd like me to look into?",
	"That's scheduled. I'll remind you before it starts.",
}

func newMessagesModel() messagesModel {
	return messagesModel{
		entries: []chatEntry{
			{id: uuid.New(), body: "Welcome to KIRA. Ask me anything about your workspace.", at: time.Now().Add(-time.Minute)},
		},
	}
}

func (m messagesModel) Init() tea.Cmd {
	return nil
}

func (m messagesModel) replyCmd() tea.Cmd {
	reply := assistantReplies[len(m.entries)%len(assistantReplies)]
	return tea.Tick(1200*time.Millisecond, func(time.Time) tea.Msg {
		return assistantReplyMsg{id: uuid.New(), body: reply}
	})
}

func (m messagesModel) Update(msg tea.Msg) (messagesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case assistantReplyMsg:
		m.thinking = false
		m.entries = append(m.entries, chatEntry{id: msg.id, body: msg.body, at: time.Now()})
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m messagesModel) updateKeys(msg tea.KeyMsg) (messagesModel, tea.Cmd) {
	if m.inputFocused {
		switch msg.String() {
		case "enter":
			return m.send()
		case "esc":
			m.inputFocused = false
		default:
			m.input = editRune(m.input, msg.String())
		}
		return m, nil
	}

	m.statusMsg = ""
	switch msg.String() {
	case "enter", "i":
		m.inputFocused = true
	case "c":
		for i := len(m.entries) - 1; i >= 0; i-- {
			if !m.entries[i].fromSelf {
				if err := clipboard.WriteAll(m.entries[i].body); err != nil {
					m.statusMsg = "copy failed"
				} else {
					m.statusMsg = "copied"
				}
				break
			}
		}
	}
	return m, nil
}

func (m messagesModel) send() (messagesModel, tea.Cmd) {
	body := strings.TrimSpace(m.input)
	if body == "" {
		return m, nil
	}
	m.entries = append(m.entries, chatEntry{id: uuid.New(), fromSelf: true, body: body, at: time.Now()})
	m.input = ""
	m.thinking = true
	return m, m.replyCmd()
}

func (m messagesModel) View() string {
	var b strings.Builder

	b.WriteString(" " + sectionHeaderStyle.Render("MESSAGES") + "\n\n")

	// Show the most recent entries that fit
	max := m.height - 6
	if max < 3 {
		max = 3
	}
	start := 0
	if len(m.entries) > max {
		start = len(m.entries) - max
	}

	for _, e := range m.entries[start:] {
		name := chatAssistantNameStyle.Render("kira")
		text := chatAssistantTextStyle.Render(e.body)
		if e.fromSelf {
			name = chatSelfNameStyle.Render("you")
			text = chatSelfTextStyle.Render(e.body)
		}
		fmt.Fprintf(&b, " %s %s %s\n", name, text, metaStyle.Render(formatTime(e.at)))
	}

	if m.thinking {
		b.WriteString(" " + chatAssistantNameStyle.Render("kira") + " " + dimStyle.Render("thinking...") + "\n")
	}

	b.WriteString("\n")
	if m.inputFocused {
		b.WriteString(" " + inputPromptStyle.Render("> ") + m.input + "█\n")
	} else {
		b.WriteString(" " + inputPromptStyle.Render("> ") + inputPlaceholderStyle.Render("press enter to type...") + "\n")
	}
	if m.statusMsg != "" {
		b.WriteString(" " + successStyle.Render(m.statusMsg) + "\n")
	}

	return b.String()
}
