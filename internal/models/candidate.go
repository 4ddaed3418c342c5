package models

// BillCandidate is immutable reference data, loaded per session+chamber and
// cached for the run.
type BillCandidate struct {
	ID        int64
	SessionID int64
	Number    string // canonical form, e.g. "HB1234"
	Chamber   string
}

// LegislatorCandidate joins a person record to a term of service overlapping
// the session window.
type LegislatorCandidate struct {
	ID         int64
	Name       string
	FormalName string
	Party      string
	District   string
}

// MatchResult is the outcome of one resolution attempt. Confidence runs 0-100;
// callers discard results below their acceptance threshold.
type MatchResult struct {
	ID         int64
	Label      string
	Confidence float64
}
