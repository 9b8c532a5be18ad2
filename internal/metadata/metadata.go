// Package metadata writes the JSON sidecar stored next to downloaded videos.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"reelgrab/internal/media"
)

// Write stores a sidecar next to videoPath, named after the video with a
// .json extension, and returns the sidecar path.
func Write(videoPath string, m *media.Media, downloadedAt time.Time) (string, error) {
	side := media.Sidecar{
		OriginalURL:   m.SourceURL,
		Owner:         m.Owner,
		Likes:         m.Likes,
		Comments:      m.Comments,
		Views:         m.Views,
		Caption:       m.Caption,
		DownloadedAt:  downloadedAt.UTC().Format(time.RFC3339),
		VideoFileName: filepath.Base(videoPath),
		ThumbnailURL:  m.ThumbnailURL,
	}

	data, err := json.MarshalIndent(side, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding sidecar: %w", err)
	}

	path := strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".json"
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing sidecar: %w", err)
	}
	return path, nil
}
