package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kiralabs/kira/internal/session"
	"github.com/kiralabs/kira/pkg/domain"
)

type view int

const (
	viewDashboard view = iota
	viewTasks
	viewMessages
	viewResearch
	viewWorkflow
	viewSettings
)

// gateState is where the app stands relative to authentication.
type gateState int

const (
	gateResolving gateState = iota
	gateLogin
	gateRegister
	gateUnreachable
	gateReady
)

// sessionResolvedMsg carries the result of session rehydration.
type sessionResolvedMsg struct {
	snap session.Snapshot
}

// App is the root Bubbletea model.
type App struct {
	session   *session.Manager
	gate      gateState
	view      view
	login     loginModel
	register  registerModel
	dashboard dashboardModel
	tasks     tasksModel
	messages  messagesModel
	research  researchModel
	workflow  workflowModel
	settings  settingsModel
	spin      spinner.Model
	helpOpen  bool
	user      *domain.User
	width     int
	height    int
	frame     int // logo shimmer animation frame
}

// NewApp creates a new TUI application.
func NewApp(s *session.Manager) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle
	return App{
		session:   s,
		login:     newLoginModel(s),
		register:  newRegisterModel(s),
		dashboard: newDashboardModel(),
		tasks:     newTasksModel(),
		messages:  newMessagesModel(),
		research:  newResearchModel(),
		workflow:  newWorkflowModel(),
		settings:  newSettingsModel(),
		spin:      sp,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(shimmerTickCmd(), a.spin.Tick, a.resolveSession())
}

func (a App) resolveSession() tea.Cmd {
	s := a.session
	return func() tea.Msg {
		return sessionResolvedMsg{snap: s.Initialize(context.Background())}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + help(1) = 4 lines
		bodyHeight := msg.Height - 4
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: bodyHeight}
		a.dashboard, _ = a.dashboard.Update(bodyMsg)
		a.tasks, _ = a.tasks.Update(bodyMsg)
		a.messages, _ = a.messages.Update(bodyMsg)
		a.research, _ = a.research.Update(bodyMsg)
		a.workflow, _ = a.workflow.Update(bodyMsg)
		a.settings, _ = a.settings.Update(bodyMsg)

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case spinner.TickMsg:
		if a.gate == gateResolving {
			var cmd tea.Cmd
			a.spin, cmd = a.spin.Update(msg)
			return a, cmd
		}
		return a, nil

	case sessionResolvedMsg:
		if a.gate != gateResolving {
			return a, nil
		}
		switch msg.snap.Status {
		case session.StatusAuthenticated:
			a.user = msg.snap.User
			a.gate = gateReady
			a.dashboard, _ = a.dashboard.Update(msg)
			a.settings, _ = a.settings.Update(msg)
			return a, a.dashboard.Init()
		case session.StatusUnreachable:
			a.gate = gateUnreachable
		default:
			a.gate = gateLogin
		}
		return a, nil

	case loginResultMsg:
		if msg.err == nil && msg.user != nil {
			a.user = msg.user
			a.gate = gateReady
			a.view = viewDashboard
			a.login = newLoginModel(a.session)
			a.dashboard, _ = a.dashboard.Update(msg)
			a.settings, _ = a.settings.Update(msg)
			return a, a.dashboard.Init()
		}
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd

	case registerResultMsg:
		if msg.err == nil {
			a.register = newRegisterModel(a.session)
			a.login = newLoginModel(a.session)
			a.login.notice = "Account created. Please sign in."
			a.gate = gateLogin
			return a, nil
		}
		var cmd tea.Cmd
		a.register, cmd = a.register.Update(msg)
		return a, cmd

	case logoutRequestedMsg:
		a.session.Logout()
		a.user = nil
		a.gate = gateLogin
		a.view = viewDashboard
		a.login = newLoginModel(a.session)
		a.login.notice = "Signed out."
		a.settings = newSettingsModel()
		return a, nil

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}

	return a.routeToView(msg)
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	// Help overlay captures all keys when open
	if a.helpOpen {
		switch msg.String() {
		case "h", "esc":
			a.helpOpen = false
		case "q":
			return a, tea.Quit
		}
		return a, nil
	}

	switch a.gate {
	case gateResolving:
		// Nothing to interact with until the session resolves
		return a, nil

	case gateUnreachable:
		switch msg.String() {
		case "r":
			a.gate = gateResolving
			return a, tea.Batch(a.spin.Tick, a.resolveSession())
		case "l":
			a.gate = gateLogin
			a.login = newLoginModel(a.session)
		case "q":
			return a, tea.Quit
		}
		return a, nil

	case gateLogin:
		if msg.String() == "ctrl+r" {
			a.gate = gateRegister
			a.register = newRegisterModel(a.session)
			return a, nil
		}
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd

	case gateRegister:
		if msg.String() == "esc" {
			a.gate = gateLogin
			return a, nil
		}
		var cmd tea.Cmd
		a.register, cmd = a.register.Update(msg)
		return a, cmd
	}

	// gateReady: global keys apply only when no panel is editing
	if !a.isEditing() {
		switch msg.String() {
		case "h":
			if a.view != viewWorkflow {
				a.helpOpen = true
				return a, nil
			}
		case "q":
			return a, tea.Quit
		case "1":
			a.view = viewDashboard
			return a, nil
		case "2":
			a.view = viewTasks
			return a, nil
		case "3":
			a.view = viewMessages
			return a, nil
		case "4":
			a.view = viewResearch
			return a, nil
		case "5":
			a.view = viewWorkflow
			return a, nil
		case "6":
			a.view = viewSettings
			return a, nil
		}
	}

	return a.routeToView(msg)
}

func (a App) routeToView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.view {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.Update(msg)
	case viewMessages:
		a.messages, cmd = a.messages.Update(msg)
	case viewResearch:
		a.research, cmd = a.research.Update(msg)
	case viewWorkflow:
		a.workflow, cmd = a.workflow.Update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.Update(msg)
	}
	return a, cmd
}

func (a App) isEditing() bool {
	switch a.view {
	case viewTasks:
		return a.tasks.adding
	case viewMessages:
		return a.messages.inputFocused
	case viewResearch:
		return a.research.editing
	case viewSettings:
		return a.settings.confirming
	}
	return false
}

func (a App) View() string {
	logo := renderShimmerLogo(a.frame)

	switch a.gate {
	case gateResolving:
		return a.centered(logo + "\n\n" + a.spin.View() + normalStyle.Render("Loading...") + "\n" + dimStyle.Render("Please wait"))
	case gateLogin:
		help := " " + helpEntry("enter", "sign in") + "  " + helpEntry("tab", "next field") + "  " + helpEntry("ctrl+r", "create account") + "  " + helpEntry("ctrl+c", "quit")
		return a.centerLine(logo) + "\n" + a.login.View() + "\n" + help
	case gateRegister:
		help := " " + helpEntry("enter", "create") + "  " + helpEntry("tab", "next field") + "  " + helpEntry("esc", "back to sign in") + "  " + helpEntry("ctrl+c", "quit")
		return a.centerLine(logo) + "\n" + a.register.View() + "\n" + help
	case gateUnreachable:
		body := errorStyle.Render("Cannot reach the server.") + "\n" +
			dimStyle.Render("Your saved session is untouched.") + "\n\n" +
			helpEntry("r", "retry") + "  " + helpEntry("l", "sign in again") + "  " + helpEntry("q", "quit")
		return a.centered(logo + "\n\n" + body)
	}

	// Header: centered shimmer logo + user line
	header := a.centerLine(logo)
	userLine := ""
	if a.user != nil {
		userLine = metaStyle.Render(a.user.DisplayName())
	}
	header += "\n" + a.centerLine(userLine)

	// Tab bar: 6 equal-width columns spread across terminal
	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Dashboard", viewDashboard},
		{"2", "Tasks", viewTasks},
		{"3", "Messages", viewMessages},
		{"4", "Research", viewResearch},
		{"5", "Workflow", viewWorkflow},
		{"6", "Settings", viewSettings},
	}
	colWidth := 0
	if a.width > 0 {
		colWidth = a.width / len(tabs)
	}
	var tabBar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := (colWidth - labelWidth) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		rightPad := colWidth - labelWidth - leftPad
		if rightPad < 0 {
			rightPad = 0
		}
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}
	centeredTabs := tabBar.String()

	var body string
	var help string
	switch a.view {
	case viewDashboard:
		body = a.dashboard.View()
		help = " " + helpEntry("1-6", "tabs") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	case viewTasks:
		body = a.tasks.View()
		if a.tasks.adding {
			help = " " + helpEntry("enter", "add") + "  " + helpEntry("esc", "cancel")
		} else {
			help = " " + helpEntry("1-6", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "toggle") + "  " + helpEntry("a", "add") + "  " + helpEntry("d", "delete") + "  " + helpEntry("f", "filter") + "  " + helpEntry("q", "quit")
		}
	case viewMessages:
		body = a.messages.View()
		if a.messages.inputFocused {
			help = " " + helpEntry("enter", "send") + "  " + helpEntry("esc", "nav")
		} else {
			help = " " + helpEntry("1-6", "tabs") + "  " + helpEntry("enter", "type") + "  " + helpEntry("c", "copy reply") + "  " + helpEntry("q", "quit")
		}
	case viewResearch:
		body = a.research.View()
		if a.research.editing {
			help = " " + helpEntry("enter", "search") + "  " + helpEntry("esc", "browse")
		} else {
			help = " " + helpEntry("1-6", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("/", "edit query") + "  " + helpEntry("c", "copy") + "  " + helpEntry("q", "quit")
		}
	case viewWorkflow:
		body = a.workflow.View()
		help = " " + helpEntry("1-6", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("h/l", "type") + "  " + helpEntry("a", "add") + "  " + helpEntry("d", "delete") + "  " + helpEntry("r", "run") + "  " + helpEntry("q", "quit")
	case viewSettings:
		body = a.settings.View()
		help = " " + helpEntry("1-6", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "toggle") + "  " + helpEntry("q", "quit")
	}

	if a.helpOpen {
		body = helpView()
		help = " " + helpEntry("h/esc", "close") + "  " + helpEntry("q", "quit")
	}

	// Chrome budget: header(2) + tabs(1) + help(1) = 4 lines + body
	chrome := 4
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return header + "\n" + centeredTabs + "\n" + body + "\n" + help
}

// centerLine pads a single line to the horizontal center.
func (a App) centerLine(s string) string {
	w := lipgloss.Width(s)
	pad := (a.width - w) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}

// centered pads a block down and across toward the middle of the screen.
func (a App) centered(block string) string {
	lines := strings.Split(block, "\n")
	topPad := (a.height - len(lines)) / 3
	var b strings.Builder
	for i := 0; i < topPad; i++ {
		b.WriteString("\n")
	}
	for i, line := range lines {
		b.WriteString(a.centerLine(line))
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
