package models

import (
	"encoding/json"
	"strconv"
)

// FileMetadata is the decoded scrape metadata cached on a video file. The
// scraper writes ad hoc keys, so both fields are optional and the decode is
// tolerant of shape drift: speakers arrive as JSON numbers or numeric strings
// depending on scraper version.
type FileMetadata struct {
	Agenda   []string
	Speakers []int64
}

// ParseFileMetadata decodes a scrape metadata blob. Unknown keys are ignored
// and malformed values degrade to empty fields rather than failing the entry.
func ParseFileMetadata(raw string) FileMetadata {
	var meta FileMetadata
	if raw == "" {
		return meta
	}

	var blob struct {
		Agenda   []string          `json:"agenda"`
		Speakers []json.RawMessage `json:"speakers"`
	}
	if err := json.Unmarshal([]byte(raw), &blob); err != nil {
		return meta
	}

	meta.Agenda = blob.Agenda
	for _, rawID := range blob.Speakers {
		if id, ok := decodeSpeakerID(rawID); ok {
			meta.Speakers = append(meta.Speakers, id)
		}
	}
	return meta
}

func decodeSpeakerID(raw json.RawMessage) (int64, bool) {
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
