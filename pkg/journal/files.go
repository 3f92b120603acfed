package journal

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
)

// LoadFiles reads image attachments from disk. Content types come from the
// file extension, falling back to octet-stream.
func LoadFiles(paths []string) ([]File, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	files := make([]File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("journal: read image %q: %w", p, err)
		}
		ct := mime.TypeByExtension(filepath.Ext(p))
		if ct == "" {
			ct = "application/octet-stream"
		}
		files = append(files, File{
			Name:        filepath.Base(p),
			ContentType: ct,
			Data:        data,
		})
	}
	return files, nil
}
