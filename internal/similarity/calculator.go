// Package similarity provides the string-distance primitives used by the
// matchers. All functions are pure and return values in [0, 1].
package similarity

import (
	"strings"
	"unicode"
)

// Weights configures the blend used by Combined.
type Weights struct {
	Levenshtein float64
	JaroWinkler float64
	TokenSet    float64
}

// DefaultWeights favors Jaro-Winkler, which handles the truncation and prefix
// noise typical of OCR output better than raw edit distance.
var DefaultWeights = Weights{
	Levenshtein: 0.3,
	JaroWinkler: 0.5,
	TokenSet:    0.2,
}

// Levenshtein returns 1 - editDistance/maxLen.
func Levenshtein(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(editDistance(ra, rb))/float64(maxLen)
}

func editDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// JaroWinkler is the classic Jaro score plus a prefix bonus of
// 0.1 * matchingPrefixLen(<=4) * (1 - jaro).
func JaroWinkler(a, b string) float64 {
	jaro := jaroScore([]rune(a), []rune(b))
	if jaro == 0 {
		return 0
	}

	prefix := 0
	ra, rb := []rune(a), []rune(b)
	for prefix < len(ra) && prefix < len(rb) && prefix < 4 && ra[prefix] == rb[prefix] {
		prefix++
	}
	return jaro + 0.1*float64(prefix)*(1.0-jaro)
}

func jaroScore(a, b []rune) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	window := len(a)
	if len(b) > window {
		window = len(b)
	}
	window = window/2 - 1
	if window < 0 {
		window = 0
	}

	matchedA := make([]bool, len(a))
	matchedB := make([]bool, len(b))
	matches := 0

	for i := range a {
		lo := i - window
		if lo < 0 {
			lo = 0
		}
		hi := i + window + 1
		if hi > len(b) {
			hi = len(b)
		}
		for j := lo; j < hi; j++ {
			if matchedB[j] || a[i] != b[j] {
				continue
			}
			matchedA[i] = true
			matchedB[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0
	}

	transpositions := 0
	j := 0
	for i := range a {
		if !matchedA[i] {
			continue
		}
		for !matchedB[j] {
			j++
		}
		if a[i] != b[j] {
			transpositions++
		}
		j++
	}

	m := float64(matches)
	t := float64(transpositions) / 2.0
	return (m/float64(len(a)) + m/float64(len(b)) + (m-t)/m) / 3.0
}

// TokenSetRatio returns |intersection| / |union| over lower-cased unique
// token sets. Order-insensitive, so "King Mundon" and "Mundon King" score 1.
func TokenSetRatio(tokensA, tokensB []string) float64 {
	setA := toSet(tokensA)
	setB := toSet(tokensB)
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func toSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok != "" {
			set[tok] = true
		}
	}
	return set
}

// Combined blends the three primitives with the given weights.
func Combined(a, b string, w Weights) float64 {
	score := w.Levenshtein*Levenshtein(a, b) +
		w.JaroWinkler*JaroWinkler(a, b) +
		w.TokenSet*TokenSetRatio(strings.Fields(a), strings.Fields(b))
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// SoundexMatch reports whether both strings share a Soundex code. Used only
// as a secondary boost, never as a primary signal.
func SoundexMatch(a, b string) bool {
	ca, cb := Soundex(a), Soundex(b)
	return ca != "" && ca == cb
}

// Soundex returns the classic four-character Soundex code, or "" when the
// input has no leading letter.
func Soundex(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	var letters []rune
	for _, r := range s {
		if unicode.IsLetter(r) && r < 128 {
			letters = append(letters, r)
		}
	}
	if len(letters) == 0 {
		return ""
	}

	code := []rune{letters[0]}
	prev := soundexDigit(letters[0])
	for _, r := range letters[1:] {
		d := soundexDigit(r)
		if d == 0 {
			if r != 'H' && r != 'W' {
				prev = 0
			}
			continue
		}
		if d != prev {
			code = append(code, rune('0'+d))
			if len(code) == 4 {
				break
			}
		}
		prev = d
	}
	for len(code) < 4 {
		code = append(code, '0')
	}
	return string(code)
}

func soundexDigit(r rune) int {
	switch r {
	case 'B', 'F', 'P', 'V':
		return 1
	case 'C', 'G', 'J', 'K', 'Q', 'S', 'X', 'Z':
		return 2
	case 'D', 'T':
		return 3
	case 'L':
		return 4
	case 'M', 'N':
		return 5
	case 'R':
		return 6
	}
	return 0
}
