// Package authform renders the login/register form and owns its submission
// state machine.
package authform

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/aibiikeo/journal-cli/pkg/auth"
	"github.com/aibiikeo/journal-cli/pkg/tui/events"
	"github.com/aibiikeo/journal-cli/pkg/tui/theme"
)

type state int

const (
	stateIdle state = iota
	stateSubmitting
	stateSuccess
	stateFailure
)

const (
	fieldEmail = iota
	fieldPassword
)

// submitResultMsg reports the outcome of one login or register attempt.
type submitResultMsg struct {
	register bool
	err      error
}

// Model tracks the auth form state. The register toggle changes which
// endpoint submission hits, not the shape of the machine.
type Model struct {
	ctx  context.Context
	flow *auth.Flow
	th   theme.Theme

	register bool
	state    state
	focus    int

	email    textinput.Model
	password textinput.Model

	errMsg string
	info   string
	width  int
}

// NewModel builds the form in idle login mode.
func NewModel(ctx context.Context, flow *auth.Flow, th theme.Theme) *Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.Prompt = ""

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword

	return &Model{
		ctx:      ctx,
		flow:     flow,
		th:       th,
		email:    email,
		password: password,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.email.Focus()
}

// SetWidth adjusts the rendered width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// Update processes Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down", "shift+tab", "up":
			return m, m.toggleFocus()
		case "enter":
			return m, m.submit()
		case "ctrl+r":
			m.toggleRegister()
			return m, nil
		}
	case submitResultMsg:
		return m, m.handleResult(msg)
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldEmail:
		m.email, cmd = m.email.Update(msg)
	case fieldPassword:
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == fieldEmail {
		m.focus = fieldPassword
		m.email.Blur()
		return m.password.Focus()
	}
	m.focus = fieldEmail
	m.password.Blur()
	return m.email.Focus()
}

func (m *Model) toggleRegister() {
	m.register = !m.register
	m.errMsg = ""
	m.info = ""
	if m.state != stateSubmitting {
		m.state = stateIdle
	}
}

func (m *Model) submit() tea.Cmd {
	if m.state == stateSubmitting {
		return nil
	}

	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	if email == "" || password == "" {
		m.errMsg = "Email and password are required."
		return nil
	}

	m.state = stateSubmitting
	m.errMsg = ""
	m.info = ""

	creds := auth.Credentials{Email: email, Password: password}
	register := m.register
	return func() tea.Msg {
		var err error
		if register {
			err = m.flow.Register(m.ctx, creds)
		} else {
			err = m.flow.Login(m.ctx, creds)
		}
		return submitResultMsg{register: register, err: err}
	}
}

func (m *Model) handleResult(msg submitResultMsg) tea.Cmd {
	if msg.err != nil {
		m.state = stateFailure
		if errors.Is(msg.err, auth.ErrNotRegistered) {
			m.errMsg = "You are not registered. Please register."
		} else {
			m.errMsg = "An error occurred. Please try again."
		}
		return nil
	}

	if msg.register {
		// Registration never touches the session; drop back to login.
		m.state = stateIdle
		m.register = false
		m.info = "Registration successful! Please log in."
		m.password.SetValue("")
		return nil
	}

	// The token is persisted by the flow before this message exists, so the
	// route change triggered downstream sees an authenticated session.
	m.state = stateSuccess
	return events.AuthSuccessCmd()
}

// View renders the form.
func (m *Model) View() string {
	title := "Login"
	if m.register {
		title = "Register"
	}

	lines := []string{
		m.th.Title.Render(title),
		"",
		m.th.Label.Render("Email"),
		m.email.View(),
		m.th.Label.Render("Password"),
		m.password.View(),
		"",
	}
	switch {
	case m.state == stateSubmitting:
		lines = append(lines, m.th.Faint.Render("Submitting…"))
	case m.errMsg != "":
		lines = append(lines, m.th.Error.Render(m.errMsg))
	case m.info != "":
		lines = append(lines, m.th.Success.Render(m.info))
	}
	lines = append(lines, "", m.th.Faint.Render("enter submit · ctrl+r login/register · ctrl+p reset password"))

	return m.th.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
