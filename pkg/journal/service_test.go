package journal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aibiikeo/journal-cli/pkg/api"
	"github.com/aibiikeo/journal-cli/pkg/session"
)

func newTestService(t *testing.T, handler http.Handler) (*Service, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := api.New(srv.URL, session.Open(t.TempDir()))
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	return NewService(client), srv
}

func TestListDecodesEntries(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/journal-entries/7" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`[
			{"id":1,"userId":7,"title":"first","content":"one","entryDate":"2024-11-02T10:00:00Z"},
			{"id":2,"userId":7,"title":"second","content":"two","entryDate":"2024-11-03T10:00:00Z"}
		]`))
	}))

	entries, err := svc.List(context.Background(), 7)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Title != "first" || entries[1].ID != 2 {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if entries[0].EntryDate.UTC().Hour() != 10 {
		t.Fatalf("entryDate not parsed: %v", entries[0].EntryDate)
	}
}

func TestListEmptyIsNotAnError(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))

	entries, err := svc.List(context.Background(), 7)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("want empty non-nil list, got %#v", entries)
	}
}

func TestCreateValidatesBeforeDispatch(t *testing.T) {
	calls := 0
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	if err := svc.Create(context.Background(), 7, Draft{Content: "c"}, nil); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("err = %v, want ErrTitleRequired", err)
	}
	if err := svc.Create(context.Background(), 7, Draft{Title: "t", Content: "  "}, nil); !errors.Is(err, ErrContentRequired) {
		t.Fatalf("err = %v, want ErrContentRequired", err)
	}
	if calls != 0 {
		t.Fatalf("validation failures must not reach the network, saw %d calls", calls)
	}
}

func TestCreateSendsMultipartDtoAndImages(t *testing.T) {
	var gotDraft Draft
	var imageNames []string
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/journal-entries/7" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		if err := json.Unmarshal([]byte(r.MultipartForm.Value["journalEntryDto"][0]), &gotDraft); err != nil {
			t.Errorf("decode dto: %v", err)
		}
		for _, fh := range r.MultipartForm.File["images"] {
			imageNames = append(imageNames, fh.Filename)
		}
		w.WriteHeader(http.StatusCreated)
	}))

	images := []File{{Name: "cat.png", ContentType: "image/png", Data: []byte("png")}}
	if err := svc.Create(context.Background(), 7, Draft{Title: "t", Content: "c"}, images); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if gotDraft.Title != "t" || gotDraft.Content != "c" {
		t.Fatalf("dto = %+v", gotDraft)
	}
	if gotDraft.EntryDate == nil || gotDraft.EntryDate.IsZero() {
		t.Fatalf("entryDate should default to now, got %v", gotDraft.EntryDate)
	}
	if len(imageNames) != 1 || imageNames[0] != "cat.png" {
		t.Fatalf("image parts = %v", imageNames)
	}
}

func TestUpdatePreservesEntryDate(t *testing.T) {
	var gotDraft Draft
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/journal-entries/7/3" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		if err := json.Unmarshal([]byte(r.MultipartForm.Value["journalEntryDto"][0]), &gotDraft); err != nil {
			t.Errorf("decode dto: %v", err)
		}
	}))

	when := Timestamp{Time: time.Date(2024, 11, 2, 10, 0, 0, 0, time.UTC)}
	draft := Draft{Title: "t2", Content: "c2", EntryDate: &when}
	if err := svc.Update(context.Background(), 7, 3, draft, nil); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if gotDraft.EntryDate == nil || !gotDraft.EntryDate.Equal(when.Time) {
		t.Fatalf("entryDate = %v, want %v", gotDraft.EntryDate, when)
	}
}

func TestDeleteAndImagesPaths(t *testing.T) {
	var paths []string
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		if r.URL.Path == "/journal-entries/images/7/3" {
			w.Write([]byte(`[{"id":9,"name":"cat.png"}]`))
		}
	}))

	if err := svc.Delete(context.Background(), 7, 3); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	images, err := svc.Images(context.Background(), 7, 3)
	if err != nil {
		t.Fatalf("Images: %v", err)
	}
	if len(images) != 1 || images[0].Name != "cat.png" {
		t.Fatalf("images = %+v", images)
	}
	if err := svc.DeleteImage(context.Background(), 7, 3, 9); err != nil {
		t.Fatalf("DeleteImage: %v", err)
	}

	want := []string{
		"DELETE /journal-entries/7/3",
		"GET /journal-entries/images/7/3",
		"DELETE /journal-entries/7/3/9",
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v", paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestImageResizeNeedsBothDimensions(t *testing.T) {
	var queries []string
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)
		w.Write([]byte("bytes"))
	}))

	if _, err := svc.Image(context.Background(), "cat.png", 64, 48); err != nil {
		t.Fatalf("Image: %v", err)
	}
	if _, err := svc.Image(context.Background(), "cat.png", 64, 0); err != nil {
		t.Fatalf("Image: %v", err)
	}
	if queries[0] != "height=48&width=64" {
		t.Fatalf("resized query = %q", queries[0])
	}
	if queries[1] != "" {
		t.Fatalf("partial dimensions must fetch the original, query = %q", queries[1])
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"2024-11-02T10:00:00Z"`), &ts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"2024-11-02T10:00:00Z"` {
		t.Fatalf("marshal = %s", out)
	}

	var zero Timestamp
	if err := json.Unmarshal([]byte(`""`), &zero); err != nil {
		t.Fatalf("unmarshal empty: %v", err)
	}
	if !zero.IsZero() {
		t.Fatalf("empty string should decode to the zero time")
	}
}
