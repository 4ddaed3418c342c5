// Package resolver links raw chyron text to canonical bill and legislator
// records. Every strategy here is tuned conservatively: a wrong link is worse
// than no link, so anything ambiguous is left unresolved for the next run.
package resolver

import (
	"context"
	"fmt"

	"github.com/capitolclips/legislink/internal/contextual"
	"github.com/capitolclips/legislink/internal/matcher"
	"github.com/capitolclips/legislink/internal/models"
)

// DefaultBillThreshold is the minimum confidence at which a bill link is
// persisted. Callers may override it per run.
const DefaultBillThreshold = 90.0

const (
	billTemporalWindow = 10 // seconds either side of the current screenshot
	billConsensusMin   = 5  // corroborating occurrences for the consensus fallback
)

// BillSource is the slice of bill storage the resolver needs.
type BillSource interface {
	ListBySessionChamber(ctx context.Context, sessionID int64, chamber string) ([]models.BillCandidate, error)
	GetByID(ctx context.Context, id int64) (*models.BillCandidate, error)
}

// ResolutionContext is the per-entry context built by the orchestrator.
type ResolutionContext struct {
	FileID     string
	Screenshot int
	Session    *models.Session
	Chamber    string // chamber of the recording itself
	Meeting    contextual.MeetingContext
}

// BillResolver resolves bill chyron text against the session's bill list.
// Candidate pools are cached per (session, chamber) for the life of the
// resolver and never invalidated mid-run.
type BillResolver struct {
	bills    BillSource
	analyzer *contextual.Analyzer
	cache    map[string][]models.BillCandidate
}

func NewBillResolver(bills BillSource, analyzer *contextual.Analyzer) *BillResolver {
	return &BillResolver{
		bills:    bills,
		analyzer: analyzer,
		cache:    make(map[string][]models.BillCandidate),
	}
}

// Resolve attempts to link one bill entry. A nil result means no confident
// candidate; only database failures return an error.
func (r *BillResolver) Resolve(ctx context.Context, entry *models.VideoIndexEntry, rctx *ResolutionContext, minConfidence float64) (*models.MatchResult, error) {
	result, err := r.resolve(ctx, entry, rctx)
	if err != nil {
		return nil, err
	}
	if result == nil || result.Confidence < minConfidence {
		return nil, nil
	}
	return result, nil
}

func (r *BillResolver) resolve(ctx context.Context, entry *models.VideoIndexEntry, rctx *ResolutionContext) (*models.MatchResult, error) {
	parsed := matcher.ParseBillNumber(entry.RawText)
	if parsed == nil {
		return nil, nil
	}

	candidates, err := r.candidates(ctx, rctx.Session.ID, parsed.Chamber)
	if err != nil {
		return nil, err
	}

	canonical := parsed.Canonical()
	if bill := findByNumber(candidates, canonical); bill != nil {
		confidence, err := r.exactMatchConfidence(ctx, entry, rctx, bill, canonical)
		if err != nil {
			return nil, err
		}
		return &models.MatchResult{ID: bill.ID, Label: bill.Number, Confidence: confidence}, nil
	}

	// OCR digit variants are only trusted when the meeting agenda confirms
	// the corrected number; otherwise a plausible misread could land on an
	// unrelated real bill.
	if len(rctx.Meeting.AgendaBills) > 0 {
		for _, variant := range matcher.GenerateNumberVariations(parsed.Number) {
			variantNumber := matcher.FormatBillNumber(parsed.Chamber, parsed.Type, variant)
			if !rctx.Meeting.AgendaBills[variantNumber] {
				continue
			}
			if bill := findByNumber(candidates, variantNumber); bill != nil {
				return &models.MatchResult{ID: bill.ID, Label: bill.Number, Confidence: 92}, nil
			}
		}
	}

	return r.consensusFallback(ctx, entry, rctx, parsed)
}

// exactMatchConfidence tiers an exact number match by corroboration: agenda
// membership, then the temporal window, then the bare match. Bill numbers
// are unique within a session, so even a bare exact match stays trustworthy.
func (r *BillResolver) exactMatchConfidence(ctx context.Context, entry *models.VideoIndexEntry, rctx *ResolutionContext, bill *models.BillCandidate, canonical string) (float64, error) {
	if rctx.Meeting.AgendaBills[canonical] {
		return 100, nil
	}

	window, err := r.analyzer.TemporalContext(ctx, rctx.FileID, rctx.Screenshot, billTemporalWindow, entry.ID)
	if err != nil {
		return 0, err
	}
	for _, row := range entriesOfType(window, models.EntryTypeBill) {
		if row.LinkedID != nil && *row.LinkedID == bill.ID {
			return 95, nil
		}
	}
	return 92, nil
}

// consensusFallback accepts the majority linked ID of the temporal window
// when it recurs enough and its bill belongs to the chamber the fragment
// parsed to.
func (r *BillResolver) consensusFallback(ctx context.Context, entry *models.VideoIndexEntry, rctx *ResolutionContext, parsed *matcher.ParsedBill) (*models.MatchResult, error) {
	window, err := r.analyzer.TemporalContext(ctx, rctx.FileID, rctx.Screenshot, billTemporalWindow, entry.ID)
	if err != nil {
		return nil, err
	}

	consensusID, ok := contextual.FindConsensusMatch(entriesOfType(window, models.EntryTypeBill), billConsensusMin)
	if !ok {
		return nil, nil
	}

	bill, err := r.bills.GetByID(ctx, consensusID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, nil
	}
	consensusParsed := matcher.ParseBillNumber(bill.Number)
	if consensusParsed == nil || consensusParsed.Chamber != parsed.Chamber {
		return nil, nil
	}
	return &models.MatchResult{ID: bill.ID, Label: bill.Number, Confidence: 88}, nil
}

func (r *BillResolver) candidates(ctx context.Context, sessionID int64, chamber string) ([]models.BillCandidate, error) {
	key := fmt.Sprintf("%d:%s", sessionID, chamber)
	if cached, ok := r.cache[key]; ok {
		return cached, nil
	}

	bills, err := r.bills.ListBySessionChamber(ctx, sessionID, chamber)
	if err != nil {
		return nil, fmt.Errorf("loading bill candidates for %s: %w", key, err)
	}
	r.cache[key] = bills
	return bills, nil
}

// entriesOfType narrows a temporal window to one entry type. Bill and person
// IDs come from independent sequences, so a linked ID on a row of the other
// type refers to an unrelated record and must never vote or corroborate.
func entriesOfType(rows []models.VideoIndexEntry, t models.EntryType) []models.VideoIndexEntry {
	var filtered []models.VideoIndexEntry
	for _, row := range rows {
		if row.Type == t {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func findByNumber(candidates []models.BillCandidate, number string) *models.BillCandidate {
	for i := range candidates {
		if candidates[i].Number == number {
			return &candidates[i]
		}
	}
	return nil
}
