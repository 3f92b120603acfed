package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/aibiikeo/journal-cli/pkg/api"
)

var (
	// ErrTitleRequired rejects a draft with no title before any network call.
	ErrTitleRequired = errors.New("journal: title is required")
	// ErrContentRequired rejects a draft with no content before any network call.
	ErrContentRequired = errors.New("journal: content is required")
)

// Service provides entry and image operations for UIs and CLIs to share.
// Consistency model: callers refetch the full list after every successful
// mutation; the service never patches local state on their behalf.
type Service struct {
	client *api.Client
}

// NewService wraps the gateway client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// List fetches all entries for the user. An empty result is an empty list,
// not an error.
func (s *Service) List(ctx context.Context, userID int64) ([]Entry, error) {
	var entries []Entry
	if err := s.client.Get(ctx, fmt.Sprintf("/journal-entries/%d", userID), nil, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Get fetches a single entry.
func (s *Service) Get(ctx context.Context, userID, id int64) (*Entry, error) {
	var e Entry
	if err := s.client.Get(ctx, fmt.Sprintf("/journal-entries/%d/%d", userID, id), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create validates the draft and sends it with its images in one multipart
// request. EntryDate defaults to now when unset.
func (s *Service) Create(ctx context.Context, userID int64, draft Draft, images []File) error {
	if err := validate(draft); err != nil {
		return err
	}
	if draft.EntryDate == nil {
		now := Now()
		draft.EntryDate = &now
	}
	parts, err := entryParts(draft, images)
	if err != nil {
		return err
	}
	return s.client.PostMultipart(ctx, fmt.Sprintf("/journal-entries/%d", userID), parts, nil)
}

// Update replaces an entry with the same multipart shape as Create.
func (s *Service) Update(ctx context.Context, userID, id int64, draft Draft, images []File) error {
	if err := validate(draft); err != nil {
		return err
	}
	parts, err := entryParts(draft, images)
	if err != nil {
		return err
	}
	return s.client.PutMultipart(ctx, fmt.Sprintf("/journal-entries/%d/%d", userID, id), parts, nil)
}

// Delete removes an entry.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/journal-entries/%d/%d", userID, id))
}

// Images fetches the attachments of one entry. Fetched lazily when an entry
// is opened, never cached across entries.
func (s *Service) Images(ctx context.Context, userID, id int64) ([]Image, error) {
	var images []Image
	if err := s.client.Get(ctx, fmt.Sprintf("/journal-entries/images/%d/%d", userID, id), nil, &images); err != nil {
		return nil, err
	}
	if images == nil {
		images = []Image{}
	}
	return images, nil
}

// DeleteImage removes one attachment from an entry.
func (s *Service) DeleteImage(ctx context.Context, userID, id, imageID int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/journal-entries/%d/%d/%d", userID, id, imageID))
}

// Image fetches raw image bytes, resized when both dimensions are given.
// Omitting either dimension fetches the original.
func (s *Service) Image(ctx context.Context, fileName string, width, height int) ([]byte, error) {
	var query url.Values
	if width > 0 && height > 0 {
		query = url.Values{}
		query.Set("width", strconv.Itoa(width))
		query.Set("height", strconv.Itoa(height))
	}
	return s.client.GetBinary(ctx, "/journal-entries/images/"+fileName, query)
}

// UploadImages sends standalone images outside any entry and returns the
// server's message.
func (s *Service) UploadImages(ctx context.Context, images []File) (string, error) {
	parts := make([]api.Part, 0, len(images))
	for _, img := range images {
		parts = append(parts, api.Part{
			Field:       "images",
			FileName:    img.Name,
			ContentType: img.ContentType,
			Data:        img.Data,
		})
	}
	var msg string
	if err := s.client.PostMultipart(ctx, "/journal-entries/images", parts, &msg); err != nil {
		return "", err
	}
	return msg, nil
}

func validate(draft Draft) error {
	if strings.TrimSpace(draft.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(draft.Content) == "" {
		return ErrContentRequired
	}
	return nil
}

func entryParts(draft Draft, images []File) ([]api.Part, error) {
	dto, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("journal: encode draft: %w", err)
	}
	parts := []api.Part{{
		Field:       "journalEntryDto",
		ContentType: "application/json",
		Data:        dto,
	}}
	for _, img := range images {
		parts = append(parts, api.Part{
			Field:       "images",
			FileName:    img.Name,
			ContentType: img.ContentType,
			Data:        img.Data,
		})
	}
	return parts, nil
}
