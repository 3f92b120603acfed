package entrydetail

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/aibiikeo/journal-cli/pkg/api"
	"github.com/aibiikeo/journal-cli/pkg/journal"
	"github.com/aibiikeo/journal-cli/pkg/session"
	"github.com/aibiikeo/journal-cli/pkg/tui/theme"
)

func newTestDetail(t *testing.T, entry journal.Entry, handler http.Handler) (*Model, *[]string) {
	t.Helper()
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	s := session.Open(t.TempDir())
	client, err := api.New(srv.URL, s)
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	m := NewModel(context.Background(), journal.NewService(client), 7, entry, theme.Default())
	return m, &paths
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	return cmd()
}

func testEntry() journal.Entry {
	ts, _ := journal.ParseTime("2024-03-01T10:00:00Z")
	return journal.Entry{ID: 3, UserID: 7, Title: "March", Content: "spring notes", EntryDate: journal.Timestamp{Time: ts}}
}

func TestInitLoadsImages(t *testing.T) {
	m, paths := newTestDetail(t, testEntry(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"name":"a.png"},{"id":2,"name":"b.png"}]`))
	}))

	m.Update(runCmd(t, m.Init()))
	if len(*paths) != 1 || (*paths)[0] != "GET /journal-entries/images/7/3" {
		t.Fatalf("paths = %v", *paths)
	}
	if len(m.images) != 2 {
		t.Fatalf("images = %d, want 2", len(m.images))
	}
}

func TestImageDeletePatchesLocallyWithoutRefetch(t *testing.T) {
	m, paths := newTestDetail(t, testEntry(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Write([]byte(`[{"id":1,"name":"a.png"},{"id":2,"name":"b.png"}]`))
	}))
	m.Update(runCmd(t, m.Init()))

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'x', Mod: tea.ModCtrl})
	m.Update(runCmd(t, cmd))

	if len(m.images) != 1 || m.images[0].ID != 2 {
		t.Fatalf("images = %v, want only id 2", m.images)
	}
	// One images fetch on open, one delete. No list or image refetch after.
	want := []string{"GET /journal-entries/images/7/3", "DELETE /journal-entries/7/3/1"}
	if len(*paths) != len(want) || (*paths)[0] != want[0] || (*paths)[1] != want[1] {
		t.Fatalf("paths = %v, want %v", *paths, want)
	}
}

func TestImageDeleteFailureKeepsSelection(t *testing.T) {
	m, _ := newTestDetail(t, testEntry(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			http.Error(w, "nope", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[{"id":1,"name":"a.png"},{"id":2,"name":"b.png"}]`))
	}))
	m.Update(runCmd(t, m.Init()))
	m.Update(tea.KeyPressMsg{Code: 'j', Mod: tea.ModCtrl})

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'x', Mod: tea.ModCtrl})
	m.Update(runCmd(t, cmd))

	if len(m.images) != 2 {
		t.Fatalf("failed delete must not change local images")
	}
	if m.imgIndex != 1 {
		t.Fatalf("imgIndex = %d, want selection unchanged", m.imgIndex)
	}
	if m.status != "Failed to delete image." {
		t.Fatalf("status = %q", m.status)
	}
}

func TestSaveValidatesBeforeDispatch(t *testing.T) {
	m, paths := newTestDetail(t, testEntry(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	m.Update(runCmd(t, m.Init()))

	m.Update(tea.KeyPressMsg{Text: "e", Code: 'e'})
	m.title.SetValue("")

	_, cmd := m.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	if cmd != nil {
		t.Fatalf("validation failure must not produce a network command")
	}
	if len(*paths) != 1 {
		t.Fatalf("paths = %v, want only the image fetch", *paths)
	}
	if m.status == "" {
		t.Fatalf("expected an inline validation message")
	}
	if !m.editing {
		t.Fatalf("editor must stay open on validation failure")
	}
}

func TestSavePreservesEntryDateAndEmitsMutated(t *testing.T) {
	var gotDto string
	m, _ := newTestDetail(t, testEntry(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("ParseMultipartForm: %v", err)
				return
			}
			gotDto = r.FormValue("journalEntryDto")
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Write([]byte(`[]`))
	}))
	m.Update(runCmd(t, m.Init()))

	m.Update(tea.KeyPressMsg{Text: "e", Code: 'e'})
	m.title.SetValue("March updated")
	m.content.SetValue("new notes")

	_, cmd := m.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	_, cmd = m.Update(runCmd(t, cmd))
	if _, ok := runCmd(t, cmd).(MutatedMsg); !ok {
		t.Fatalf("expected MutatedMsg after a successful save")
	}
	want := `{"title":"March updated","content":"new notes","entryDate":"2024-03-01T10:00:00Z"}`
	if gotDto != want {
		t.Fatalf("dto = %q, want %q", gotDto, want)
	}
	if m.editing {
		t.Fatalf("editor must close after a successful save")
	}
}

func TestDeleteFailureStays(t *testing.T) {
	m, _ := newTestDetail(t, testEntry(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			http.Error(w, "nope", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[]`))
	}))
	m.Update(runCmd(t, m.Init()))

	_, cmd := m.Update(tea.KeyPressMsg{Text: "d", Code: 'd'})
	_, cmd = m.Update(runCmd(t, cmd))
	if cmd != nil {
		t.Fatalf("failed delete must not emit MutatedMsg")
	}
	if m.status != "Failed to delete entry. Please try again." {
		t.Fatalf("status = %q", m.status)
	}
}

func TestEscCloses(t *testing.T) {
	m, _ := newTestDetail(t, testEntry(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	m.Update(runCmd(t, m.Init()))

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := runCmd(t, cmd).(ClosedMsg); !ok {
		t.Fatalf("expected ClosedMsg")
	}
}
