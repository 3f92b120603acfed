// Package resetform renders the two-step password reset form.
package resetform

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/aibiikeo/journal-cli/pkg/auth"
	"github.com/aibiikeo/journal-cli/pkg/tui/theme"
)

// Step is the active reset stage. Failures never advance the step; the
// user resubmits from where they are.
type Step int

const (
	StepRequest Step = iota
	StepReset
)

const (
	fieldToken = iota
	fieldPassword
)

type requestResultMsg struct {
	message string
	err     error
}

type resetResultMsg struct {
	message string
	err     error
}

// Model tracks the reset form state across both steps.
type Model struct {
	ctx  context.Context
	flow *auth.Flow
	th   theme.Theme

	step  Step
	busy  bool
	focus int

	email    textinput.Model
	token    textinput.Model
	password textinput.Model

	message string
	errMsg  string
	width   int
}

// NewModel builds the form on the request step.
func NewModel(ctx context.Context, flow *auth.Flow, th theme.Theme) *Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.Prompt = ""

	token := textinput.New()
	token.Placeholder = "reset token"
	token.Prompt = ""

	password := textinput.New()
	password.Placeholder = "new password"
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword

	return &Model{
		ctx:      ctx,
		flow:     flow,
		th:       th,
		email:    email,
		token:    token,
		password: password,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.email.Focus()
}

// Step exposes the active stage.
func (m *Model) Stage() Step {
	return m.step
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
			if m.step == StepReset {
				return m, m.toggleFocus()
			}
		case "enter":
			if m.step == StepRequest {
				return m, m.submitRequest()
			}
			return m, m.submitReset()
		}
	case requestResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = "Failed to request password reset. Please try again later."
			return m, nil
		}
		m.message = msg.message
		m.step = StepReset
		m.focus = fieldToken
		return m, m.token.Focus()
	case resetResultMsg:
		m.busy = false
		if msg.err != nil {
			// Stay on the reset step so a corrected token can be retried.
			m.errMsg = "Failed to reset password. Please try again later."
			return m, nil
		}
		m.message = msg.message
		m.step = StepRequest
		m.focus = fieldToken
		m.email.SetValue("")
		m.token.SetValue("")
		m.password.SetValue("")
		return m, m.email.Focus()
	}

	var cmd tea.Cmd
	if m.step == StepRequest {
		m.email, cmd = m.email.Update(msg)
		return m, cmd
	}
	switch m.focus {
	case fieldToken:
		m.token, cmd = m.token.Update(msg)
	case fieldPassword:
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == fieldToken {
		m.focus = fieldPassword
		m.token.Blur()
		return m.password.Focus()
	}
	m.focus = fieldToken
	m.password.Blur()
	return m.token.Focus()
}

func (m *Model) submitRequest() tea.Cmd {
	if m.busy {
		return nil
	}
	email := strings.TrimSpace(m.email.Value())
	if email == "" {
		m.errMsg = "Email is required."
		return nil
	}
	m.busy = true
	m.errMsg = ""
	m.message = ""
	return func() tea.Msg {
		msg, err := m.flow.RequestReset(m.ctx, email)
		return requestResultMsg{message: msg, err: err}
	}
}

func (m *Model) submitReset() tea.Cmd {
	if m.busy {
		return nil
	}
	token := strings.TrimSpace(m.token.Value())
	password := m.password.Value()
	if token == "" || password == "" {
		m.errMsg = "Reset token and new password are required."
		return nil
	}
	m.busy = true
	m.errMsg = ""
	m.message = ""
	return func() tea.Msg {
		msg, err := m.flow.CompleteReset(m.ctx, token, password)
		return resetResultMsg{message: msg, err: err}
	}
}

// View renders the active step.
func (m *Model) View() string {
	var lines []string
	if m.step == StepRequest {
		lines = []string{
			m.th.Title.Render("Request Password Reset"),
			"",
			m.th.Label.Render("Email"),
			m.email.View(),
			"",
		}
	} else {
		lines = []string{
			m.th.Title.Render("Reset Password"),
			"",
			m.th.Label.Render("Reset Token"),
			m.token.View(),
			m.th.Label.Render("New Password"),
			m.password.View(),
			"",
		}
	}

	switch {
	case m.busy:
		lines = append(lines, m.th.Faint.Render("Submitting…"))
	case m.errMsg != "":
		lines = append(lines, m.th.Error.Render(m.errMsg))
	case m.message != "":
		lines = append(lines, m.th.Success.Render(m.message))
	}
	lines = append(lines, "", m.th.Faint.Render("enter submit · esc back to login"))

	return m.th.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
