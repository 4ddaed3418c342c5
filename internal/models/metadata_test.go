package models

import (
	"reflect"
	"testing"
)

func TestParseFileMetadata(t *testing.T) {
	raw := `{"agenda": ["HB 1234 hearing", "Public comment"], "speakers": [7, 9]}`
	meta := ParseFileMetadata(raw)

	if !reflect.DeepEqual(meta.Agenda, []string{"HB 1234 hearing", "Public comment"}) {
		t.Errorf("Agenda = %v", meta.Agenda)
	}
	if !reflect.DeepEqual(meta.Speakers, []int64{7, 9}) {
		t.Errorf("Speakers = %v, expected [7 9]", meta.Speakers)
	}
}

func TestParseFileMetadataSpeakerStrings(t *testing.T) {
	// Older scraper versions wrote speaker IDs as strings.
	meta := ParseFileMetadata(`{"speakers": ["7", 9, "not-a-number", true]}`)
	if !reflect.DeepEqual(meta.Speakers, []int64{7, 9}) {
		t.Errorf("Speakers = %v, expected [7 9]", meta.Speakers)
	}
}

func TestParseFileMetadataTolerant(t *testing.T) {
	for _, raw := range []string{"", "{}", "not json", `{"other": 1}`} {
		meta := ParseFileMetadata(raw)
		if len(meta.Agenda) != 0 || len(meta.Speakers) != 0 {
			t.Errorf("ParseFileMetadata(%q) = %+v, expected empty", raw, meta)
		}
	}
}

func TestScreenshotOrdinal(t *testing.T) {
	tests := []struct {
		screenshot string
		expected   int
	}{
		{"000123", 123},
		{"0", 0},
		{"42", 42},
		{"", 0},
		{"abc", 0},
	}

	for _, tt := range tests {
		e := VideoIndexEntry{Screenshot: tt.screenshot}
		if got := e.ScreenshotOrdinal(); got != tt.expected {
			t.Errorf("ScreenshotOrdinal(%q) = %d, expected %d", tt.screenshot, got, tt.expected)
		}
	}
}
