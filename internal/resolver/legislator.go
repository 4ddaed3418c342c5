package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/capitolclips/legislink/internal/contextual"
	"github.com/capitolclips/legislink/internal/matcher"
	"github.com/capitolclips/legislink/internal/models"
)

// DefaultLegislatorThreshold is the minimum confidence at which a legislator
// link is persisted. Name matching is noisier than bill numbers, so the bar
// sits lower than the bill threshold.
const DefaultLegislatorThreshold = 75.0

const (
	legislatorTemporalWindow = 30 // seconds either side of the current screenshot
	legislatorConsensusMin   = 3
	consensusConfidence      = 70.0
)

// roleBlocklist holds non-name words that show up on chyrons for staff and
// procedural roles. Entries matching these must never be attributed to a
// person through positional consensus alone. Hand-maintained; not claimed
// exhaustive.
var roleBlocklist = []string{
	"staff",
	"clerk",
	"chair",
	"committee",
	"counsel",
	"secretary",
	"interpreter",
	"witness",
	"unknown",
}

// LegislatorSource is the slice of people storage the resolver needs.
type LegislatorSource interface {
	ListBySession(ctx context.Context, session *models.Session) ([]models.LegislatorCandidate, error)
}

// LegislatorResolver scores cleaned chyron names against every legislator
// serving during the session. Candidates are cached per session for the life
// of the resolver.
type LegislatorResolver struct {
	legislators LegislatorSource
	analyzer    *contextual.Analyzer
	cache       map[int64][]models.LegislatorCandidate
}

func NewLegislatorResolver(legislators LegislatorSource, analyzer *contextual.Analyzer) *LegislatorResolver {
	return &LegislatorResolver{
		legislators: legislators,
		analyzer:    analyzer,
		cache:       make(map[int64][]models.LegislatorCandidate),
	}
}

// Resolve attempts to link one legislator entry. A nil result means no
// confident candidate; only database failures return an error.
func (r *LegislatorResolver) Resolve(ctx context.Context, entry *models.VideoIndexEntry, rctx *ResolutionContext, minConfidence float64) (*models.MatchResult, error) {
	cleaned := matcher.ExtractLegislatorName(entry.RawText)
	if cleaned.Text == "" {
		return nil, nil
	}

	candidates, err := r.candidates(ctx, rctx.Session)
	if err != nil {
		return nil, err
	}

	window, err := r.analyzer.TemporalContext(ctx, rctx.FileID, rctx.Screenshot, legislatorTemporalWindow, entry.ID)
	if err != nil {
		return nil, err
	}
	window = entriesOfType(window, models.EntryTypeLegislator)

	var best *models.MatchResult
	for i := range candidates {
		cand := &candidates[i]
		score := matcher.CalculateNameScore(cleaned, cand.Name)
		if formal := matcher.CalculateNameScore(cleaned, cand.FormalName); formal > score {
			score = formal
		}
		score = r.applyBoosts(score, cand, cleaned, rctx, window)

		if best == nil || score > best.Confidence {
			best = &models.MatchResult{ID: cand.ID, Label: cand.Name, Confidence: score}
		}
	}

	if best != nil && best.Confidence >= minConfidence {
		return best, nil
	}

	return r.consensusFallback(cleaned, candidates, window)
}

// applyBoosts layers corroborating evidence on top of the raw name score:
// repeated nearby appearances, presence on the meeting's speaker list, and a
// party-code match. Boosts are multiplicative and the result caps at 100.
func (r *LegislatorResolver) applyBoosts(score float64, cand *models.LegislatorCandidate, cleaned matcher.CleanedName, rctx *ResolutionContext, window []models.VideoIndexEntry) float64 {
	occurrences := 0
	for _, row := range window {
		if row.LinkedID != nil && *row.LinkedID == cand.ID {
			occurrences++
		}
	}
	temporalBoost := 0.05 * float64(occurrences)
	if temporalBoost > 0.20 {
		temporalBoost = 0.20
	}
	score *= 1 + temporalBoost

	if rctx.Meeting.SpeakerIDs[cand.ID] {
		score *= 1.10
	}
	if cleaned.Party != "" && strings.EqualFold(cleaned.Party, cand.Party) {
		score *= 1.05
	}

	if score > 100 {
		score = 100
	}
	return score
}

// consensusFallback accepts the majority linked ID of the temporal window,
// but never for role labels: "Committee Staff" recurring next to a linked
// member must not be attributed to that member.
func (r *LegislatorResolver) consensusFallback(cleaned matcher.CleanedName, candidates []models.LegislatorCandidate, window []models.VideoIndexEntry) (*models.MatchResult, error) {
	if isRoleText(cleaned.Text) {
		return nil, nil
	}

	consensusID, ok := contextual.FindConsensusMatch(window, legislatorConsensusMin)
	if !ok {
		return nil, nil
	}

	label := ""
	for i := range candidates {
		if candidates[i].ID == consensusID {
			label = candidates[i].Name
			break
		}
	}
	return &models.MatchResult{ID: consensusID, Label: label, Confidence: consensusConfidence}, nil
}

func isRoleText(text string) bool {
	lower := strings.ToLower(text)
	for _, role := range roleBlocklist {
		if strings.Contains(lower, role) {
			return true
		}
	}
	return false
}

func (r *LegislatorResolver) candidates(ctx context.Context, session *models.Session) ([]models.LegislatorCandidate, error) {
	if cached, ok := r.cache[session.ID]; ok {
		return cached, nil
	}

	candidates, err := r.legislators.ListBySession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("loading legislator candidates for session %d: %w", session.ID, err)
	}
	r.cache[session.ID] = candidates
	return candidates, nil
}
