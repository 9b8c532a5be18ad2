// Package media defines shared types for the reelgrab application.
package media

import "time"

// Media is the outcome of resolving a post: a directly fetchable video URL
// plus whatever metadata the page exposed. Count fields are 0 and string
// fields empty when the page did not provide them.
type Media struct {
	URL          string // direct, de-escaped video URL
	FileName     string // suggested output name, "<shortcode>.mp4"
	ThumbnailURL string
	Caption      string
	Owner        string // account handle, without the leading @
	Likes        int64
	Comments     int64
	Views        int64
	SourceURL    string // canonical post URL the media was resolved from
}

// Sidecar is the JSON metadata document written next to a downloaded video.
type Sidecar struct {
	OriginalURL   string `json:"originalUrl"`
	Owner         string `json:"owner"`
	Likes         int64  `json:"likes"`
	Comments      int64  `json:"comments"`
	Views         int64  `json:"views"`
	Caption       string `json:"caption"`
	DownloadedAt  string `json:"downloadedAt"` // ISO-8601
	VideoFileName string `json:"videoFileName"`
	ThumbnailURL  string `json:"thumbnailUrl"`
}

// DownloadRecord is a single entry in the download history.
type DownloadRecord struct {
	Shortcode    string
	Owner        string
	FilePath     string
	SourceURL    string
	DownloadedAt time.Time
}
