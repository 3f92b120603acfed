// Package entrylist renders the journal dashboard: the entry list, the
// new-entry form, and the detail pane for a selected entry.
package entrylist

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textarea"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/aibiikeo/journal-cli/pkg/journal"
	"github.com/aibiikeo/journal-cli/pkg/tui/components/entrydetail"
	"github.com/aibiikeo/journal-cli/pkg/tui/theme"
)

const (
	fieldTitle = iota
	fieldContent
	fieldImages
)

// entriesMsg carries one resolved list fetch. seq ties it to the Refresh
// call that started it so stale responses can be dropped.
type entriesMsg struct {
	seq     int
	entries []journal.Entry
	err     error
}

type createdMsg struct {
	err error
}

// Model owns the dashboard state. The entry list is server truth: every
// successful mutation is followed by a full refetch, never a local patch.
type Model struct {
	ctx    context.Context
	svc    *journal.Service
	userID int64
	th     theme.Theme

	entries []journal.Entry
	cursor  int
	loading bool
	// fetchSeq makes the newest Refresh win when fetches race.
	fetchSeq int
	status   string

	creating    bool
	submitting  bool
	focus       int
	title       textinput.Model
	content     textarea.Model
	imagesInput textinput.Model

	detail *entrydetail.Model

	width  int
	height int
}

// NewModel builds an empty dashboard. Call Refresh to load entries.
func NewModel(ctx context.Context, svc *journal.Service, userID int64, th theme.Theme) *Model {
	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = "title"

	content := textarea.New()
	content.Placeholder = "content"
	content.SetHeight(6)

	images := textinput.New()
	images.Prompt = ""
	images.Placeholder = "image paths, comma separated (optional)"

	return &Model{
		ctx:         ctx,
		svc:         svc,
		userID:      userID,
		th:          th,
		entries:     []journal.Entry{},
		title:       title,
		content:     content,
		imagesInput: images,
	}
}

// Refresh starts a list fetch. Responses from earlier calls are ignored once
// a newer one is in flight.
func (m *Model) Refresh() tea.Cmd {
	m.fetchSeq++
	m.loading = true
	seq := m.fetchSeq
	return func() tea.Msg {
		entries, err := m.svc.List(m.ctx, m.userID)
		return entriesMsg{seq: seq, entries: entries, err: err}
	}
}

// SetSize adjusts the rendered dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	if w > 8 {
		m.content.SetWidth(w - 8)
	}
	if m.detail != nil {
		m.detail.SetWidth(w)
	}
}

// Update processes Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesMsg:
		if msg.seq != m.fetchSeq {
			// A newer fetch is in flight or already resolved.
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.status = "Failed to load entries."
			return m, nil
		}
		m.entries = msg.entries
		if m.cursor >= len(m.entries) {
			m.cursor = 0
		}
		return m, nil
	case createdMsg:
		m.submitting = false
		if msg.err != nil {
			// The form stays open with its contents for a retry.
			m.status = "Failed to create entry. Please try again."
			return m, nil
		}
		m.creating = false
		m.clearForm()
		m.status = "Entry created."
		return m, m.Refresh()
	case entrydetail.MutatedMsg:
		m.detail = nil
		return m, m.Refresh()
	case entrydetail.ClosedMsg:
		m.detail = nil
		return m, nil
	}

	if m.detail != nil {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	if m.creating {
		return m.updateCreating(msg)
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		return m.updateList(key)
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if len(m.entries) == 0 {
			return m, nil
		}
		m.detail = entrydetail.NewModel(m.ctx, m.svc, m.userID, m.entries[m.cursor], m.th)
		m.detail.SetWidth(m.width)
		return m, m.detail.Init()
	case "n":
		m.creating = true
		m.focus = fieldTitle
		m.status = ""
		m.content.Blur()
		m.imagesInput.Blur()
		return m, m.title.Focus()
	case "r":
		return m, m.Refresh()
	}
	return m, nil
}

func (m *Model) updateCreating(msg tea.Msg) (*Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.creating = false
			m.status = ""
			return m, nil
		case "tab":
			return m, m.cycleFocus()
		case "ctrl+s":
			return m, m.create()
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldContent:
		m.content, cmd = m.content.Update(msg)
	case fieldImages:
		m.imagesInput, cmd = m.imagesInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) cycleFocus() tea.Cmd {
	m.title.Blur()
	m.content.Blur()
	m.imagesInput.Blur()
	switch m.focus {
	case fieldTitle:
		m.focus = fieldContent
		return m.content.Focus()
	case fieldContent:
		m.focus = fieldImages
		return m.imagesInput.Focus()
	default:
		m.focus = fieldTitle
		return m.title.Focus()
	}
}

func (m *Model) create() tea.Cmd {
	if m.submitting {
		return nil
	}
	title := strings.TrimSpace(m.title.Value())
	content := strings.TrimSpace(m.content.Value())
	if title == "" || content == "" {
		m.status = "Title and content are required."
		return nil
	}
	m.submitting = true
	m.status = ""

	draft := journal.Draft{Title: title, Content: content}
	paths := splitPaths(m.imagesInput.Value())
	return func() tea.Msg {
		files, err := journal.LoadFiles(paths)
		if err != nil {
			return createdMsg{err: err}
		}
		return createdMsg{err: m.svc.Create(m.ctx, m.userID, draft, files)}
	}
}

func (m *Model) clearForm() {
	m.title.SetValue("")
	m.content.SetValue("")
	m.imagesInput.SetValue("")
	m.focus = fieldTitle
}

func splitPaths(raw string) []string {
	var paths []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// View renders the list, the new-entry form, or the detail pane.
func (m *Model) View() string {
	if m.detail != nil {
		return m.detail.View()
	}
	if m.creating {
		return m.viewForm()
	}

	lines := []string{m.th.Title.Render("Journal"), ""}
	switch {
	case m.loading && len(m.entries) == 0:
		lines = append(lines, m.th.Faint.Render("Loading…"))
	case len(m.entries) == 0:
		lines = append(lines, m.th.Faint.Render("No entries yet. Press n to write one."))
	default:
		for i, e := range m.entries {
			line := fmt.Sprintf("%s  %s", e.EntryDate.Format("2006-01-02"), e.Title)
			if i == m.cursor {
				line = m.th.Selected.Render("> " + line)
			} else {
				line = "  " + line
			}
			lines = append(lines, line)
		}
	}

	if m.status != "" {
		lines = append(lines, "", m.th.Status.Render(m.status))
	}
	lines = append(lines, "", m.th.Faint.Render("j/k move · enter open · n new · r refresh"))

	return m.th.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) viewForm() string {
	lines := []string{
		m.th.Title.Render("New Entry"),
		"",
		m.th.Label.Render("Title"),
		m.title.View(),
		m.th.Label.Render("Content"),
		m.content.View(),
		m.th.Label.Render("Images"),
		m.imagesInput.View(),
	}
	if m.submitting {
		lines = append(lines, "", m.th.Faint.Render("Saving…"))
	} else if m.status != "" {
		lines = append(lines, "", m.th.Error.Render(m.status))
	}
	lines = append(lines, "", m.th.Faint.Render("tab switch field · ctrl+s save · esc cancel"))

	return m.th.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
