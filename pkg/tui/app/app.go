// Package teaui hosts the Bubble Tea program for the journal TUI.
package teaui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/aibiikeo/journal-cli/pkg/auth"
	"github.com/aibiikeo/journal-cli/pkg/journal"
	"github.com/aibiikeo/journal-cli/pkg/session"
	"github.com/aibiikeo/journal-cli/pkg/tui/components/authform"
	"github.com/aibiikeo/journal-cli/pkg/tui/components/entrylist"
	"github.com/aibiikeo/journal-cli/pkg/tui/components/resetform"
	"github.com/aibiikeo/journal-cli/pkg/tui/events"
	"github.com/aibiikeo/journal-cli/pkg/tui/theme"
)

type route int

const (
	routeAuth route = iota
	routeDashboard
)

// userResolvedMsg carries the identity lookup done after login or on start.
type userResolvedMsg struct {
	email  string
	userID int64
	err    error
}

// Model is the shell: it owns the route and the status line. Components
// announce outcomes through events; only the shell changes routes.
type Model struct {
	ctx     context.Context
	session session.Store
	flow    *auth.Flow
	svc     *journal.Service
	th      theme.Theme

	route     route
	showReset bool

	auth  *authform.Model
	reset *resetform.Model
	list  *entrylist.Model

	email  string
	userID int64

	// invalidated receives a signal when the gateway clears the session on
	// a 401. The shell subscribes and routes back to the auth page.
	invalidated <-chan struct{}

	status string
	width  int
	height int
}

// New builds the shell. The initial route follows the persisted session, not
// a fresh credential check.
func New(ctx context.Context, s session.Store, flow *auth.Flow, svc *journal.Service, invalidated <-chan struct{}) *Model {
	th := theme.Default()
	m := &Model{
		ctx:         ctx,
		session:     s,
		flow:        flow,
		svc:         svc,
		th:          th,
		auth:        authform.NewModel(ctx, flow, th),
		reset:       resetform.NewModel(ctx, flow, th),
		invalidated: invalidated,
	}
	if s.IsAuthenticated() {
		m.route = routeDashboard
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForInvalidated()}
	if m.route == routeDashboard {
		cmds = append(cmds, m.resolveUser())
	} else {
		cmds = append(cmds, m.auth.Init())
	}
	return tea.Batch(cmds...)
}

// waitForInvalidated blocks on the gateway's 401 signal and surfaces it as a
// message. Re-armed after each receipt.
func (m *Model) waitForInvalidated() tea.Cmd {
	if m.invalidated == nil {
		return nil
	}
	return func() tea.Msg {
		<-m.invalidated
		return events.AuthInvalidatedMsg{}
	}
}

func (m *Model) resolveUser() tea.Cmd {
	return func() tea.Msg {
		email, err := session.Identity(m.session)
		if err != nil {
			return userResolvedMsg{err: err}
		}
		userID, err := m.flow.ResolveUserID(m.ctx, email)
		if err != nil {
			return userResolvedMsg{err: err}
		}
		return userResolvedMsg{email: email, userID: userID}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.auth.SetWidth(msg.Width)
		m.reset.SetWidth(msg.Width)
		if m.list != nil {
			m.list.SetSize(msg.Width, msg.Height-2)
		}
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+l":
			if m.route == routeDashboard {
				return m, events.LogoutCmd()
			}
		case "ctrl+p":
			if m.route == routeAuth && !m.showReset {
				m.showReset = true
				m.status = ""
				return m, m.reset.Init()
			}
		case "esc":
			if m.route == routeAuth && m.showReset {
				m.showReset = false
				return m, nil
			}
		}

	case events.AuthSuccessMsg:
		m.route = routeDashboard
		m.showReset = false
		m.status = ""
		return m, m.resolveUser()

	case events.AuthInvalidatedMsg:
		cmd := m.toAuth("Session expired. Please log in.")
		return m, tea.Batch(cmd, m.waitForInvalidated())

	case events.LogoutMsg:
		if err := m.session.Clear(); err != nil {
			m.status = "Failed to clear session."
			return m, nil
		}
		return m, m.toAuth("Logged out.")

	case events.ErrMsg:
		m.status = msg.Err.Error()
		return m, nil

	case userResolvedMsg:
		if msg.err != nil {
			return m, m.toAuth("Failed to load user data. Please try again later.")
		}
		m.email = msg.email
		m.userID = msg.userID
		m.list = entrylist.NewModel(m.ctx, m.svc, msg.userID, m.th)
		m.list.SetSize(m.width, m.height-2)
		return m, m.list.Refresh()
	}

	return m.routeUpdate(msg)
}

func (m *Model) routeUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.route == routeAuth && m.showReset:
		m.reset, cmd = m.reset.Update(msg)
	case m.route == routeAuth:
		m.auth, cmd = m.auth.Update(msg)
	case m.list != nil:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

// toAuth drops all per-user state and returns to the auth page. The
// dashboard model is rebuilt on the next login.
func (m *Model) toAuth(status string) tea.Cmd {
	m.route = routeAuth
	m.showReset = false
	m.list = nil
	m.email = ""
	m.userID = 0
	m.status = status
	m.auth = authform.NewModel(m.ctx, m.flow, m.th)
	m.auth.SetWidth(m.width)
	return m.auth.Init()
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.th.Header.Render("journal")
	if m.route == routeDashboard && m.email != "" {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, m.th.Faint.Render("  "+m.email))
	}

	var page string
	switch {
	case m.route == routeAuth && m.showReset:
		page = m.reset.View()
	case m.route == routeAuth:
		page = m.auth.View()
	case m.list != nil:
		page = m.list.View()
	default:
		page = m.th.Faint.Render("Loading…")
	}

	footer := ""
	if m.status != "" {
		footer = m.th.Status.Render(m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, page, footer)
}

// Run starts the program in the alternate screen.
func Run(ctx context.Context, s session.Store, flow *auth.Flow, svc *journal.Service, invalidated <-chan struct{}) error {
	p := tea.NewProgram(New(ctx, s, flow, svc, invalidated), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}
