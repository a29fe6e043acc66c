package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestMessagesSendQueuesReply(t *testing.T) {
	m := newMessagesModel()
	m.inputFocused = true

	for _, r := range "hello" {
		m, _ = m.Update(keyRunes(string(r)))
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("expected reply command after send")
	}
	if !m.thinking {
		t.Error("expected thinking state while reply is pending")
	}
	last := m.entries[len(m.entries)-1]
	if !last.fromSelf || last.body != "hello" {
		t.Errorf("expected own message appended, got %+v", last)
	}
	if m.input != "" {
		t.Errorf("expected input cleared after send, got %q", m.input)
	}
}

func TestMessagesEmptySendIgnored(t *testing.T) {
	m := newMessagesModel()
	m.inputFocused = true
	before := len(m.entries)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no reply command for empty input")
	}
	if len(m.entries) != before {
		t.Errorf("expected no entry appended, got %d", len(m.entries))
	}
}

func TestMessagesReplyArrives(t *testing.T) {
	m := newMessagesModel()
	m.thinking = true

	m, _ = m.Update(assistantReplyMsg{body: "Done."})
	if m.thinking {
		t.Error("expected thinking cleared when reply arrives")
	}
	last := m.entries[len(m.entries)-1]
	if last.fromSelf || last.body != "Done." {
		t.Errorf("expected assistant entry appended, got %+v", last)
	}
}

func TestMessagesFocusSwitching(t *testing.T) {
	m := newMessagesModel()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.inputFocused {
		t.Fatal("expected input focused after enter in nav mode")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.inputFocused {
		t.Error("expected input unfocused after esc")
	}
}

func TestMessagesViewShowsPrompt(t *testing.T) {
	m := newMessagesModel()
	m.width = 80
	m.height = 20

	view := m.View()
	if !strings.Contains(view, "press enter to type") {
		t.Errorf("expected input placeholder in view, got:\n%s", view)
	}

	m.inputFocused = true
	m.input = "hey"
	view = m.View()
	if !strings.Contains(view, "hey█") {
		t.Errorf("expected cursor after typed input, got:\n%s", view)
	}
}
