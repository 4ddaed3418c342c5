// Package contextual supplies the corroborating signals the resolvers use
// before committing a link: temporal neighborhoods within a file, consensus
// voting over already-linked neighbors, and cached meeting metadata.
package contextual

import (
	"context"

	"github.com/capitolclips/legislink/internal/matcher"
	"github.com/capitolclips/legislink/internal/models"
)

// EntryLister is the slice of the video index the analyzer needs.
type EntryLister interface {
	ListNearby(ctx context.Context, fileID string, loOrdinal, hiOrdinal int, excludeID int64) ([]models.VideoIndexEntry, error)
}

type Analyzer struct {
	entries EntryLister
}

func NewAnalyzer(entries EntryLister) *Analyzer {
	return &Analyzer{entries: entries}
}

// TemporalContext returns the other index rows for the same file whose
// screenshot ordinal falls within ±windowSeconds of the given one. Captures
// happen at a fixed rate, so the ordinal doubles as a coarse clock.
func (a *Analyzer) TemporalContext(ctx context.Context, fileID string, screenshot, windowSeconds int, excludeID int64) ([]models.VideoIndexEntry, error) {
	lo := screenshot - windowSeconds
	if lo < 0 {
		lo = 0
	}
	return a.entries.ListNearby(ctx, fileID, lo, screenshot+windowSeconds, excludeID)
}

// FindConsensusMatch runs a majority vote over the non-null linked IDs in the
// window. It returns the top ID only when its count reaches minOccurrences;
// a single stray observation must never drive a match.
func FindConsensusMatch(rows []models.VideoIndexEntry, minOccurrences int) (int64, bool) {
	counts := make(map[int64]int)
	for _, row := range rows {
		if row.LinkedID != nil {
			counts[*row.LinkedID]++
		}
	}

	var best int64
	bestCount := 0
	for id, count := range counts {
		if count > bestCount || (count == bestCount && id < best) {
			best = id
			bestCount = count
		}
	}

	if bestCount < minOccurrences {
		return 0, false
	}
	return best, true
}

// MeetingContext carries the agenda and attendee hints recovered from cached
// scrape metadata. Both are corroborating signals only, never sole evidence.
type MeetingContext struct {
	AgendaBills map[string]bool // canonical bill numbers on the agenda
	SpeakerIDs  map[int64]bool  // known attendee person IDs
}

// ExtractMeetingContext pulls agenda bill numbers and speaker IDs out of
// decoded scrape metadata. Agenda lines are free text, so bill numbers are
// recovered with the same patterns the bill matcher uses.
func ExtractMeetingContext(meta models.FileMetadata) MeetingContext {
	mc := MeetingContext{
		AgendaBills: make(map[string]bool),
		SpeakerIDs:  make(map[int64]bool),
	}
	for _, line := range meta.Agenda {
		for _, number := range matcher.FindBillNumbers(line) {
			mc.AgendaBills[number] = true
		}
	}
	for _, id := range meta.Speakers {
		mc.SpeakerIDs[id] = true
	}
	return mc
}
