package resolver

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/capitolclips/legislink/internal/contextual"
	"github.com/capitolclips/legislink/internal/models"
)

// FileSource is the slice of file storage the orchestrator needs.
type FileSource interface {
	GetByID(ctx context.Context, id string) (*models.VideoFile, error)
}

// SessionFinder resolves the session active on a given date.
type SessionFinder interface {
	FindByDate(ctx context.Context, date time.Time) (*models.Session, error)
}

// EntryStore is the slice of video index storage the orchestrator needs.
type EntryStore interface {
	ListForResolution(ctx context.Context, fileID string, entryType models.EntryType, includeLinked bool) ([]models.VideoIndexEntry, error)
	SetLinkedID(ctx context.Context, entryID, linkedID int64) error
	FilesWithUnresolved(ctx context.Context, limit int) ([]string, error)
}

// Options controls a resolution run. Zero thresholds fall back to the
// per-type defaults.
type Options struct {
	Type                models.EntryType // "" resolves both types
	Force               bool             // re-evaluate already-linked entries
	DryRun              bool             // compute but do not persist
	Limit               int              // batch mode: max files, 0 = all
	Verbose             bool
	BillThreshold       float64
	LegislatorThreshold float64
}

func (o Options) billThreshold() float64 {
	if o.BillThreshold > 0 {
		return o.BillThreshold
	}
	return DefaultBillThreshold
}

func (o Options) legislatorThreshold() float64 {
	if o.LegislatorThreshold > 0 {
		return o.LegislatorThreshold
	}
	return DefaultLegislatorThreshold
}

// FileReport aggregates one file's resolution counts.
type FileReport struct {
	FileID                string `json:"file_id"`
	SessionID             int64  `json:"session_id"`
	Total                 int    `json:"total"`
	ResolvedBills         int    `json:"resolved_bills"`
	UnresolvedBills       int    `json:"unresolved_bills"`
	ResolvedLegislators   int    `json:"resolved_legislators"`
	UnresolvedLegislators int    `json:"unresolved_legislators"`
}

func (r *FileReport) Resolved() int {
	return r.ResolvedBills + r.ResolvedLegislators
}

func (r *FileReport) Unresolved() int {
	return r.UnresolvedBills + r.UnresolvedLegislators
}

// FileError records a file whose processing failed mid-batch.
type FileError struct {
	FileID  string `json:"file_id"`
	Message string `json:"message"`
}

// BatchReport aggregates a resolve-all run.
type BatchReport struct {
	RunID                 string       `json:"run_id"`
	FilesProcessed        int          `json:"files_processed"`
	FilesFailed           int          `json:"files_failed"`
	Total                 int          `json:"total"`
	ResolvedBills         int          `json:"resolved_bills"`
	UnresolvedBills       int          `json:"unresolved_bills"`
	ResolvedLegislators   int          `json:"resolved_legislators"`
	UnresolvedLegislators int          `json:"unresolved_legislators"`
	Files                 []FileReport `json:"files"`
	Errors                []FileError  `json:"errors,omitempty"`
}

// RawTextResolver drives per-file and batch resolution: it loads the file's
// session context, dispatches each entry to the matching resolver, persists
// accepted links, and aggregates counts.
type RawTextResolver struct {
	files       FileSource
	sessions    SessionFinder
	entries     EntryStore
	bills       *BillResolver
	legislators *LegislatorResolver
}

func NewRawTextResolver(files FileSource, sessions SessionFinder, entries EntryStore, bills *BillResolver, legislators *LegislatorResolver) *RawTextResolver {
	return &RawTextResolver{
		files:       files,
		sessions:    sessions,
		entries:     entries,
		bills:       bills,
		legislators: legislators,
	}
}

// ResolveFile resolves every outstanding entry of one file. Database and
// session-configuration failures are hard errors; per-entry ambiguity is not.
func (r *RawTextResolver) ResolveFile(ctx context.Context, fileID string, opts Options) (*FileReport, error) {
	file, err := r.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, fmt.Errorf("video file %s not found", fileID)
	}

	session, err := r.sessions.FindByDate(ctx, file.CaptureDate)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("no session covers capture date %s of file %s", file.CaptureDate.Format("2006-01-02"), fileID)
	}

	meeting := contextual.ExtractMeetingContext(models.ParseFileMetadata(file.Metadata))

	entries, err := r.entries.ListForResolution(ctx, fileID, opts.Type, opts.Force)
	if err != nil {
		return nil, err
	}

	report := &FileReport{FileID: fileID, SessionID: session.ID}
	if opts.Verbose {
		log.Printf("[RESOLVE] file %s: session %d, %d entries, %d agenda bills, %d known speakers",
			fileID, session.ID, len(entries), len(meeting.AgendaBills), len(meeting.SpeakerIDs))
	}

	for i := range entries {
		entry := &entries[i]
		rctx := &ResolutionContext{
			FileID:     fileID,
			Screenshot: entry.ScreenshotOrdinal(),
			Session:    session,
			Chamber:    file.Chamber,
			Meeting:    meeting,
		}

		var result *models.MatchResult
		switch entry.Type {
		case models.EntryTypeBill:
			result, err = r.bills.Resolve(ctx, entry, rctx, opts.billThreshold())
		case models.EntryTypeLegislator:
			result, err = r.legislators.Resolve(ctx, entry, rctx, opts.legislatorThreshold())
		default:
			// Unrecognized types stay outside the counts so that
			// Total always equals Resolved + Unresolved.
			continue
		}
		report.Total++
		if err != nil {
			return nil, fmt.Errorf("resolving entry %d: %w", entry.ID, err)
		}

		if result == nil {
			report.countUnresolved(entry.Type)
			if opts.Verbose {
				log.Printf("[RESOLVE] entry %d (%s) %q: no confident candidate", entry.ID, entry.Type, entry.RawText)
			}
			continue
		}

		if !opts.DryRun {
			if err := r.entries.SetLinkedID(ctx, entry.ID, result.ID); err != nil {
				return nil, fmt.Errorf("persisting link for entry %d: %w", entry.ID, err)
			}
		}
		report.countResolved(entry.Type)
		if opts.Verbose {
			log.Printf("[RESOLVE] entry %d (%s) %q -> %s (id %d, confidence %.1f)",
				entry.ID, entry.Type, entry.RawText, result.Label, result.ID, result.Confidence)
		}
	}

	return report, nil
}

// ResolveAll processes every file with outstanding unresolved entries. A
// failure inside one file is recorded and the batch moves on; one corrupted
// file cannot halt the run.
func (r *RawTextResolver) ResolveAll(ctx context.Context, opts Options) (*BatchReport, error) {
	fileIDs, err := r.entries.FilesWithUnresolved(ctx, opts.Limit)
	if err != nil {
		return nil, err
	}

	batch := &BatchReport{RunID: uuid.New().String()}
	log.Printf("[BATCH] run %s: %d file(s) with unresolved entries", batch.RunID, len(fileIDs))

	for _, fileID := range fileIDs {
		report, err := r.ResolveFile(ctx, fileID, opts)
		if err != nil {
			log.Printf("[BATCH] file %s failed: %v", fileID, err)
			batch.FilesFailed++
			batch.Errors = append(batch.Errors, FileError{FileID: fileID, Message: err.Error()})
			continue
		}

		batch.FilesProcessed++
		batch.Total += report.Total
		batch.ResolvedBills += report.ResolvedBills
		batch.UnresolvedBills += report.UnresolvedBills
		batch.ResolvedLegislators += report.ResolvedLegislators
		batch.UnresolvedLegislators += report.UnresolvedLegislators
		batch.Files = append(batch.Files, *report)
	}

	log.Printf("[BATCH] run %s: %d processed, %d failed, %d/%d entries resolved",
		batch.RunID, batch.FilesProcessed, batch.FilesFailed,
		batch.ResolvedBills+batch.ResolvedLegislators, batch.Total)
	return batch, nil
}

func (r *FileReport) countResolved(t models.EntryType) {
	if t == models.EntryTypeBill {
		r.ResolvedBills++
	} else {
		r.ResolvedLegislators++
	}
}

func (r *FileReport) countUnresolved(t models.EntryType) {
	if t == models.EntryTypeBill {
		r.UnresolvedBills++
	} else {
		r.UnresolvedLegislators++
	}
}
