package resolve

import "strings"

// maxDescriptionLength caps provider descriptions before they reach the
// create form.
const maxDescriptionLength = 800

// TrackStub is one track row in a merged record.
type TrackStub struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
}

// Result is the merged best-effort record assembled from the provider chain.
// Every field may be empty; Success reports whether any provider recognized
// the identifier at all.
type Result struct {
	Success     bool        `json:"success"`
	Title       string      `json:"title"`
	Author      string      `json:"author"`
	Year        string      `json:"year"`
	Description string      `json:"description"`
	ImageURL    string      `json:"image_url"`
	Category    string      `json:"category"`
	Tracks      []TrackStub `json:"tracks"`
}

// NormalizeBarcode reduces a raw scanner string to the identifier characters:
// digits plus the ISBN-10 check character X.
func NormalizeBarcode(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'X' || r == 'x':
			b.WriteRune('X')
		}
	}
	return b.String()
}

// truncate shortens a description without splitting a UTF-8 sequence.
func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	runes := []rune(value)
	out := make([]rune, 0, limit)
	size := 0
	for _, r := range runes {
		size += len(string(r))
		if size > limit {
			break
		}
		out = append(out, r)
	}
	return string(out)
}
