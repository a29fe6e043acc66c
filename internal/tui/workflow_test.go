package tui

import (
	"strings"
	"testing"
)

func TestWorkflowAddStep(t *testing.T) {
	m := newWorkflowModel()
	before := len(m.steps)

	m, _ = m.Update(keyRunes("a"))
	if len(m.steps) != before+1 {
		t.Fatalf("expected %d steps after add, got %d", before+1, len(m.steps))
	}
	added := m.steps[len(m.steps)-1]
	if added.typ != "python" {
		t.Errorf("expected default step type python, got %q", added.typ)
	}
	if added.status != stepPending {
		t.Errorf("expected new step pending, got %v", added.status)
	}
}

func TestWorkflowTypeCycling(t *testing.T) {
	m := newWorkflowModel()

	m, _ = m.Update(keyRunes("l"))
	if stepTypes[m.typeIdx] != "javascript" {
		t.Errorf("expected javascript after l, got %q", stepTypes[m.typeIdx])
	}

	m, _ = m.Update(keyRunes("h"))
	m, _ = m.Update(keyRunes("h"))
	if stepTypes[m.typeIdx] != "ai" {
		t.Errorf("expected ai after wrapping back, got %q", stepTypes[m.typeIdx])
	}

	m, _ = m.Update(keyRunes("a"))
	if m.steps[len(m.steps)-1].typ != "ai" {
		t.Errorf("expected added step to use selected type, got %q", m.steps[len(m.steps)-1].typ)
	}
}

func TestWorkflowDeleteStep(t *testing.T) {
	m := newWorkflowModel()
	before := len(m.steps)

	m, _ = m.Update(keyRunes("d"))
	if len(m.steps) != before-1 {
		t.Errorf("expected %d steps after delete, got %d", before-1, len(m.steps))
	}
}

func TestWorkflowRunSequence(t *testing.T) {
	m := newWorkflowModel()

	m, cmd := m.Update(keyRunes("r"))
	if cmd == nil {
		t.Fatal("expected a step command when the run starts")
	}
	if !m.running {
		t.Fatal("expected running state")
	}
	if m.steps[0].status != stepRunning {
		t.Fatalf("expected first step running, got %v", m.steps[0].status)
	}
	if m.steps[1].status != stepPending {
		t.Fatalf("expected second step still pending, got %v", m.steps[1].status)
	}

	// First step completes, second starts
	m, cmd = m.Update(stepDoneMsg{id: m.steps[0].id})
	if cmd == nil {
		t.Fatal("expected a command for the next step")
	}
	if m.steps[0].status != stepCompleted {
		t.Errorf("expected first step completed, got %v", m.steps[0].status)
	}
	if m.steps[1].status != stepRunning {
		t.Errorf("expected second step running, got %v", m.steps[1].status)
	}

	// Last step completes, run ends
	m, _ = m.Update(stepDoneMsg{id: m.steps[1].id})
	if m.running {
		t.Error("expected run finished")
	}
	if m.steps[1].status != stepCompleted {
		t.Errorf("expected second step completed, got %v", m.steps[1].status)
	}
	if m.statusMsg != "workflow completed" {
		t.Errorf("expected completion message, got %q", m.statusMsg)
	}
}

func TestWorkflowStaleStepDoneIgnored(t *testing.T) {
	m := newWorkflowModel()
	m, _ = m.Update(keyRunes("r"))

	// A done message for a step that is not current must be ignored
	m, _ = m.Update(stepDoneMsg{id: m.steps[1].id})
	if m.steps[0].status != stepRunning {
		t.Errorf("expected first step still running, got %v", m.steps[0].status)
	}
}

func TestWorkflowKeysIgnoredWhileRunning(t *testing.T) {
	m := newWorkflowModel()
	m, _ = m.Update(keyRunes("r"))
	before := len(m.steps)

	m, _ = m.Update(keyRunes("a"))
	if len(m.steps) != before {
		t.Error("expected no step added while running")
	}
	m, _ = m.Update(keyRunes("d"))
	if len(m.steps) != before {
		t.Error("expected no step deleted while running")
	}
}

func TestWorkflowRunWithNoSteps(t *testing.T) {
	m := newWorkflowModel()
	m.steps = nil

	m, cmd := m.Update(keyRunes("r"))
	if cmd != nil || m.running {
		t.Error("expected no run with an empty workflow")
	}
}

func TestWorkflowViewShowsStatuses(t *testing.T) {
	m := newWorkflowModel()
	m, _ = m.Update(keyRunes("r"))

	view := m.View()
	if !strings.Contains(view, "running") {
		t.Errorf("expected running status in view, got:\n%s", view)
	}
	if !strings.Contains(view, "pending") {
		t.Errorf("expected pending status in view, got:\n%s", view)
	}
}
