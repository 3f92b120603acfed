// Package journal holds the entry model and the CRUD service over the
// remote journal API.
package journal

// Entry is one journal entry as the service returns it. Transient UI state
// (selection, edit mode) never lives here; the in-memory list is always
// subordinate to server state.
type Entry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	EntryDate Timestamp `json:"entryDate"`
}

// Image is one attachment of an entry.
type Image struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Draft is the journalEntryDto payload sent on create and update.
type Draft struct {
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	EntryDate *Timestamp `json:"entryDate,omitempty"`
}

// File is an image payload read from disk for upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}
