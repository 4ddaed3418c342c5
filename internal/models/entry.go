package models

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

type EntryType string

const (
	EntryTypeBill       EntryType = "bill"
	EntryTypeLegislator EntryType = "legislator"
)

const (
	ChamberHouse  = "house"
	ChamberSenate = "senate"
)

// VideoIndexEntry is one OCR observation from a chyron. Created by the
// OCR/classification stage; this engine only ever sets LinkedID.
type VideoIndexEntry struct {
	ID         int64
	FileID     string
	Time       string // HH:MM:SS from video start
	Screenshot string // zero-padded capture ordinal, proxy clock
	RawText    string
	Type       EntryType
	LinkedID   *int64
	Ignored    bool
}

// ScreenshotOrdinal parses the zero-padded capture ordinal. Captures happen at
// a fixed rate, so ordinals double as seconds for window math.
func (e *VideoIndexEntry) ScreenshotOrdinal() int {
	n, err := strconv.Atoi(e.Screenshot)
	if err != nil {
		return 0
	}
	return n
}

type Session struct {
	ID          int64
	Name        string
	DateStarted time.Time
	DateEnded   *time.Time // nil while the session is ongoing
}

type VideoFile struct {
	ID          string
	CaptureDate time.Time
	Chamber     string
	Metadata    string // cached scrape metadata blob, may be empty
}

func NewVideoFile(captureDate time.Time, chamber string) *VideoFile {
	return &VideoFile{
		ID:          uuid.New().String(),
		CaptureDate: captureDate,
		Chamber:     chamber,
	}
}
