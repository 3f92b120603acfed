// Package events defines the typed messages exchanged between TUI components
// and the shell. Navigation decisions stay in the shell; lower layers only
// announce what happened.
package events

import (
	tea "github.com/charmbracelet/bubbletea/v2"
)

// AuthSuccessMsg is emitted by the auth form once the token is persisted.
// The session write completes before this message is produced, so the route
// transition it triggers observes an authenticated session.
type AuthSuccessMsg struct{}

// AuthSuccessCmd wraps AuthSuccessMsg for Update results.
func AuthSuccessCmd() tea.Cmd {
	return func() tea.Msg { return AuthSuccessMsg{} }
}

// AuthInvalidatedMsg announces that the gateway observed a 401 and cleared
// the session. The shell subscribes and routes back to the auth page.
type AuthInvalidatedMsg struct{}

// LogoutMsg announces an explicit logout request.
type LogoutMsg struct{}

// LogoutCmd wraps LogoutMsg for Update results.
func LogoutCmd() tea.Cmd {
	return func() tea.Msg { return LogoutMsg{} }
}

// ErrMsg carries a component-local failure to the shell's status line.
type ErrMsg struct {
	Err error
}

// ErrCmd wraps ErrMsg for Update results.
func ErrCmd(err error) tea.Cmd {
	return func() tea.Msg { return ErrMsg{Err: err} }
}
