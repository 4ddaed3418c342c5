package matcher

import (
	"regexp"
	"strings"

	"github.com/capitolclips/legislink/internal/similarity"
)

// CleanedName is the normalized reading of a legislator name chyron, with the
// signals pulled out of it during cleaning.
type CleanedName struct {
	Text     string
	Tokens   []string
	Title    string // stripped leading title, e.g. "Senator"
	Party    string // from "(R)" or "(R-6)"
	District string // from "(R-6)" or "District 6"
}

var partyCodes = map[string]bool{
	"R": true, "D": true, "I": true, "L": true, "G": true,
}

var (
	titleRe         = regexp.MustCompile(`^(?i)(senator|sen\.?|delegate|del\.?|representative|rep\.?|chairman|chairwoman|chair|speaker)\s+`)
	nicknameRe      = regexp.MustCompile(`^(.*?)\(([A-Za-z]{2,})\)\s*(.+)$`)
	partyDistrictRe = regexp.MustCompile(`\(([RDILG])-(\d+)\)`)
	partyRe         = regexp.MustCompile(`\(([RDILG])\)`)
	districtRe      = regexp.MustCompile(`(?i)\s*,?\s*district\s+(\d+)`)
	ofPlaceRe       = regexp.MustCompile(`(?i)\s+of\s+[A-Z][\w.' ]*$`)
	dashPlaceRe     = regexp.MustCompile(`\s+-\s+[\w.' ]+$`)
	numericParenRe  = regexp.MustCompile(`\(\d+\)`)
	punctRe         = regexp.MustCompile(`[^\w\s']`)
	spaceRe         = regexp.MustCompile(`\s+`)
)

// ExtractLegislatorName cleans raw chyron text down to the name itself,
// extracting the title, party, and district along the way. It never fails;
// pathological input just yields an empty Text.
func ExtractLegislatorName(rawText string) CleanedName {
	var cleaned CleanedName

	text := spaceRe.ReplaceAllString(strings.TrimSpace(rawText), " ")

	if m := titleRe.FindStringSubmatch(text); m != nil {
		cleaned.Title = strings.TrimSuffix(m[1], ".")
		text = text[len(m[0]):]
	}

	// A parenthesized nickname replaces the given name(s) before it:
	// "Thomas A. (Tom) Garrett" -> "Tom Garrett". Party codes are handled
	// separately below.
	if m := nicknameRe.FindStringSubmatch(text); m != nil && !partyCodes[strings.ToUpper(m[2])] {
		text = m[2] + " " + m[3]
	}

	if m := partyDistrictRe.FindStringSubmatch(text); m != nil {
		cleaned.Party = m[1]
		cleaned.District = m[2]
		text = strings.Replace(text, m[0], "", 1)
	} else if m := partyRe.FindStringSubmatch(text); m != nil {
		cleaned.Party = m[1]
		text = strings.Replace(text, m[0], "", 1)
	}

	if m := districtRe.FindStringSubmatch(text); m != nil {
		if cleaned.District == "" {
			cleaned.District = m[1]
		}
		text = strings.Replace(text, m[0], "", 1)
	}

	text = numericParenRe.ReplaceAllString(text, "")
	text = ofPlaceRe.ReplaceAllString(text, "")
	text = dashPlaceRe.ReplaceAllString(text, "")

	text = PivotCommaName(text)
	text = punctRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))

	cleaned.Text = text
	cleaned.Tokens = strings.Fields(text)
	return cleaned
}

// PivotCommaName converts "Last, First" to "First Last". Text without a
// single comma is returned unchanged.
func PivotCommaName(name string) string {
	parts := strings.Split(name, ",")
	if len(parts) != 2 {
		return name
	}
	last := strings.TrimSpace(parts[0])
	first := strings.TrimSpace(parts[1])
	if last == "" || first == "" {
		return name
	}
	return first + " " + last
}

// nameConfusions maps characters to their common OCR misreads. Lookups are
// done on the lower-cased rune; substitutions keep the comparison
// case-insensitive downstream.
var nameConfusions = map[rune][]rune{
	'0': {'o'},
	'1': {'l', 'i'},
	'5': {'s'},
	'8': {'b'},
	'l': {'i', '1'},
	'i': {'l'},
	'o': {'0'},
	'm': {'n'},
	'n': {'m'},
}

// GenerateOCRVariations returns up to max single-character substitutions of
// name from the confusion table.
func GenerateOCRVariations(name string, max int) []string {
	var variants []string
	runes := []rune(name)
	seen := map[string]bool{name: true}

	for i, r := range runes {
		subs, ok := nameConfusions[toLowerRune(r)]
		if !ok {
			continue
		}
		for _, sub := range subs {
			variant := string(runes[:i]) + string(sub) + string(runes[i+1:])
			if seen[variant] {
				continue
			}
			seen[variant] = true
			variants = append(variants, variant)
			if len(variants) >= max {
				return variants
			}
		}
	}
	return variants
}

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

const maxNameVariations = 12

// CalculateNameScore scores cleaned chyron text against one candidate name on
// a 0-100 scale. Tiers short-circuit from strongest evidence to weakest:
// exact match, OCR-variant exact match, contiguous token subsequence,
// last-name-only match, then a weighted fuzzy floor.
func CalculateNameScore(cleaned CleanedName, candidateName string) float64 {
	cand := strings.TrimSpace(spaceRe.ReplaceAllString(PivotCommaName(candidateName), " "))
	if cleaned.Text == "" || cand == "" {
		return 0
	}
	candTokens := strings.Fields(cand)

	if strings.EqualFold(cleaned.Text, cand) {
		return 100
	}

	for _, variant := range GenerateOCRVariations(cleaned.Text, maxNameVariations) {
		if strings.EqualFold(variant, cand) {
			return 95
		}
	}

	if len(cleaned.Tokens) > 1 {
		if pos, ok := findSubsequence(cleaned.Tokens, candTokens); ok {
			if pos+len(cleaned.Tokens) == len(candTokens) {
				return 95 // trailing subsequence is a last-name match
			}
			return 92
		}
	}

	if len(cleaned.Tokens) == 1 && len(candTokens) > 0 {
		token := cleaned.Tokens[0]
		lastName := candTokens[len(candTokens)-1]

		if strings.EqualFold(token, lastName) {
			return 90
		}
		for _, variant := range GenerateOCRVariations(token, maxNameVariations) {
			if strings.EqualFold(variant, lastName) {
				return 85
			}
		}
		if sim := similarity.JaroWinkler(strings.ToLower(token), strings.ToLower(lastName)); sim > 0.85 {
			return sim * 80
		}
	}

	textLower := strings.ToLower(cleaned.Text)
	candLower := strings.ToLower(cand)
	score := 0.7*similarity.Combined(textLower, candLower, similarity.DefaultWeights) +
		0.3*similarity.TokenSetRatio(cleaned.Tokens, candTokens)
	score *= 100

	if similarity.SoundexMatch(lastToken(cleaned.Tokens), lastToken(candTokens)) {
		score *= 1.1
	}
	if score > 100 {
		score = 100
	}
	return score
}

// findSubsequence reports where tokens appear as a contiguous run inside
// candidate tokens, comparing case-insensitively.
func findSubsequence(needle, haystack []string) (int, bool) {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return 0, false
	}
outer:
	for start := 0; start+len(needle) <= len(haystack); start++ {
		for i, tok := range needle {
			if !strings.EqualFold(tok, haystack[start+i]) {
				continue outer
			}
		}
		return start, true
	}
	return 0, false
}

func lastToken(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}
