// Package entrydetail renders a single journal entry, its inline editor, and
// its attachment list.
package entrydetail

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textarea"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"github.com/aibiikeo/journal-cli/pkg/journal"
	"github.com/aibiikeo/journal-cli/pkg/tui/theme"
)

// ClosedMsg asks the parent to deselect the entry without changing it.
type ClosedMsg struct{}

// MutatedMsg reports that the entry was saved or deleted on the server. The
// parent refetches its list and deselects; this component never patches the
// list itself.
type MutatedMsg struct{}

type imagesMsg struct {
	images []journal.Image
	err    error
}

type imageDeletedMsg struct {
	imageID int64
	err     error
}

type saveResultMsg struct {
	draft journal.Draft
	err   error
}

type deleteResultMsg struct {
	err error
}

const (
	fieldTitle = iota
	fieldContent
)

// Model holds one entry plus its editor and attachment state.
type Model struct {
	ctx    context.Context
	svc    *journal.Service
	userID int64
	th     theme.Theme

	entry   journal.Entry
	editing bool
	busy    bool
	focus   int

	title   textinput.Model
	content textarea.Model

	images   []journal.Image
	imgIndex int

	status string
	width  int
}

// NewModel builds the read view for one entry. Attachments load in Init.
func NewModel(ctx context.Context, svc *journal.Service, userID int64, entry journal.Entry, th theme.Theme) *Model {
	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = "title"

	content := textarea.New()
	content.Placeholder = "content"
	content.SetHeight(8)

	return &Model{
		ctx:     ctx,
		svc:     svc,
		userID:  userID,
		th:      th,
		entry:   entry,
		title:   title,
		content: content,
	}
}

// Init fetches this entry's attachments. They are loaded on open, not cached
// from the list view.
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg {
		images, err := m.svc.Images(m.ctx, m.userID, m.entry.ID)
		return imagesMsg{images: images, err: err}
	}
}

// Entry exposes the displayed entry.
func (m *Model) Entry() journal.Entry {
	return m.entry
}

// SetWidth adjusts the rendered width.
func (m *Model) SetWidth(w int) {
	m.width = w
	if w > 8 {
		m.content.SetWidth(w - 8)
	}
}

// Update processes Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateViewing(msg)
	case imagesMsg:
		if msg.err != nil {
			m.status = "Failed to load images."
			return m, nil
		}
		m.images = msg.images
		m.imgIndex = 0
		return m, nil
	case imageDeletedMsg:
		m.busy = false
		if msg.err != nil {
			// Selection is untouched so the delete can be retried.
			m.status = "Failed to delete image."
			return m, nil
		}
		m.removeImage(msg.imageID)
		m.status = "Image deleted."
		return m, nil
	case saveResultMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "Failed to save entry. Please try again."
			return m, nil
		}
		m.entry.Title = msg.draft.Title
		m.entry.Content = msg.draft.Content
		m.editing = false
		return m, func() tea.Msg { return MutatedMsg{} }
	case deleteResultMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "Failed to delete entry. Please try again."
			return m, nil
		}
		return m, func() tea.Msg { return MutatedMsg{} }
	}
	if m.editing {
		return m.updateInputs(msg)
	}
	return m, nil
}

func (m *Model) updateViewing(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		return m, func() tea.Msg { return ClosedMsg{} }
	case "e":
		m.editing = true
		m.focus = fieldTitle
		m.status = ""
		m.title.SetValue(m.entry.Title)
		m.content.SetValue(m.entry.Content)
		m.content.Blur()
		return m, m.title.Focus()
	case "d":
		return m, m.deleteEntry()
	case "ctrl+j":
		if len(m.images) > 0 && m.imgIndex < len(m.images)-1 {
			m.imgIndex++
		}
	case "ctrl+k":
		if m.imgIndex > 0 {
			m.imgIndex--
		}
	case "ctrl+x":
		return m, m.deleteSelectedImage()
	}
	return m, nil
}

func (m *Model) updateEditing(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.status = ""
		return m, nil
	case "tab":
		return m, m.toggleFocus()
	case "ctrl+s":
		return m, m.save()
	}
	return m.updateInputs(msg)
}

func (m *Model) updateInputs(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldContent:
		m.content, cmd = m.content.Update(msg)
	}
	return m, cmd
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == fieldTitle {
		m.focus = fieldContent
		m.title.Blur()
		return m.content.Focus()
	}
	m.focus = fieldTitle
	m.content.Blur()
	return m.title.Focus()
}

func (m *Model) save() tea.Cmd {
	if m.busy {
		return nil
	}
	title := strings.TrimSpace(m.title.Value())
	content := strings.TrimSpace(m.content.Value())
	if title == "" || content == "" {
		m.status = "Title and content are required."
		return nil
	}
	m.busy = true
	m.status = ""

	// The original entry date is carried through so an edit never moves the
	// entry in the journal.
	date := m.entry.EntryDate
	draft := journal.Draft{Title: title, Content: content, EntryDate: &date}
	return func() tea.Msg {
		err := m.svc.Update(m.ctx, m.userID, m.entry.ID, draft, nil)
		return saveResultMsg{draft: draft, err: err}
	}
}

func (m *Model) deleteEntry() tea.Cmd {
	if m.busy {
		return nil
	}
	m.busy = true
	m.status = ""
	return func() tea.Msg {
		return deleteResultMsg{err: m.svc.Delete(m.ctx, m.userID, m.entry.ID)}
	}
}

func (m *Model) deleteSelectedImage() tea.Cmd {
	if m.busy || len(m.images) == 0 {
		return nil
	}
	m.busy = true
	m.status = ""
	id := m.images[m.imgIndex].ID
	return func() tea.Msg {
		return imageDeletedMsg{imageID: id, err: m.svc.DeleteImage(m.ctx, m.userID, m.entry.ID, id)}
	}
}

// removeImage drops the deleted attachment from local state. The entry list
// is not refetched for image deletions.
func (m *Model) removeImage(id int64) {
	kept := m.images[:0]
	for _, img := range m.images {
		if img.ID != id {
			kept = append(kept, img)
		}
	}
	m.images = kept
	if m.imgIndex >= len(m.images) && m.imgIndex > 0 {
		m.imgIndex = len(m.images) - 1
	}
}

// View renders the entry or its editor.
func (m *Model) View() string {
	if m.editing {
		return m.viewEditor()
	}

	wrap := m.width - 8
	if wrap <= 0 {
		wrap = 72
	}
	lines := []string{
		m.th.Title.Render(m.entry.Title),
		m.th.Faint.Render(m.entry.EntryDate.String()),
		"",
		wordwrap.String(m.entry.Content, wrap),
	}

	if len(m.images) > 0 {
		lines = append(lines, "", m.th.Label.Render("Images"))
		for i, img := range m.images {
			line := fmt.Sprintf("%d  %s", img.ID, img.Name)
			if i == m.imgIndex {
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
	lines = append(lines, "", m.th.Faint.Render("e edit · d delete · ctrl+j/k select image · ctrl+x delete image · esc back"))

	return m.th.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) viewEditor() string {
	lines := []string{
		m.th.Title.Render("Edit Entry"),
		"",
		m.th.Label.Render("Title"),
		m.title.View(),
		m.th.Label.Render("Content"),
		m.content.View(),
	}
	if m.busy {
		lines = append(lines, "", m.th.Faint.Render("Saving…"))
	} else if m.status != "" {
		lines = append(lines, "", m.th.Error.Render(m.status))
	}
	lines = append(lines, "", m.th.Faint.Render("tab switch field · ctrl+s save · esc cancel"))

	return m.th.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
