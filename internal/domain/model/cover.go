package model

import (
	"net/url"
	"strings"
)

// coverURLUsable rejects values that fail URL parsing or carry a
// percent-encoded scheme marker. The latter shows up when a presigned URL
// was accidentally encoded into another URL
// (e.g. "https://bucket.s3.amazonaws.com/https%3A//...").
func coverURLUsable(raw string) bool {
	if strings.Contains(raw, "https%3A") || strings.Contains(raw, "http%3A") {
		return false
	}
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != ""
}

// ResolveCoverURL picks the displayable cover URL for a manga.
// Priority: a usable cover_url; else cover_path when it is already an
// absolute http(s) URL. A bare storage key is never returned since it
// would need a signing step the client does not perform. The second
// return is false when no cover is available. Pure function, safe on nil.
func ResolveCoverURL(m *Manga) (string, bool) {
	if m == nil {
		return "", false
	}

	if s := strings.TrimSpace(m.CoverURL); s != "" && coverURLUsable(s) {
		return s, true
	}

	if s := strings.TrimSpace(m.CoverPath); s != "" {
		if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
			return s, true
		}
	}

	return "", false
}
