// Package matcher turns noisy OCR fragments into comparable bill numbers and
// legislator names. Everything here is pure; database lookups stay in the
// resolvers.
package matcher

import (
	"regexp"
	"strings"
)

const (
	BillTypeBill            = "bill"
	BillTypeJointResolution = "joint-resolution"
	BillTypeResolution      = "resolution"
)

// ParsedBill is the normalized reading of a bill-number fragment.
type ParsedBill struct {
	Chamber string // "house" or "senate"
	Type    string
	Number  string // leading zeros stripped
	Raw     string
}

// Canonical returns the canonical form, e.g. "HB1234".
func (p *ParsedBill) Canonical() string {
	return FormatBillNumber(p.Chamber, p.Type, p.Number)
}

// Chyron OCR habitually misreads the bill prefix before it gets the digits
// right. These rewrites are applied before the canonical patterns and are
// anchored to the start of the fragment so they cannot touch the number.
var ocrPrefixRewrites = []struct {
	re   *regexp.Regexp
	repl string
}{
	// H8 1234 / S3 55 / HE 20 -> HB / SB prefixes
	{regexp.MustCompile(`^([HS])[83E][\s.]*([0-9])`), "${1}B ${2}"},
	// S5 20 / SE 20 -> SB 20
	{regexp.MustCompile(`^S[5E][\s.]*([0-9])`), "SB ${1}"},
	// 1B 22 / LB 22 / IJR 5 -> house prefixes
	{regexp.MustCompile(`^[1LI](B|JR|R)\b`), "H${1}"},
	{regexp.MustCompile(`^[1LI](B|JR|R)([0-9])`), "H${1}${2}"},
}

// numTail accepts an optional "No." between prefix and number, plus the
// digit look-alikes the OCR engine produces inside a bill number. The first
// number character must be a real digit.
const numTail = `\s*(?:NO\.?\s*)?([0-9][0-9OILSB]*)`

var billPatterns = []struct {
	re       *regexp.Regexp
	chamber  string
	billType string
}{
	{regexp.MustCompile(`\b(?:HOUSE\s+JOINT\s+RESOLUTION|H\.?\s*J\.?\s*R\.?)` + numTail), "house", BillTypeJointResolution},
	{regexp.MustCompile(`\b(?:SENATE\s+JOINT\s+RESOLUTION|S\.?\s*J\.?\s*R\.?)` + numTail), "senate", BillTypeJointResolution},
	{regexp.MustCompile(`\b(?:HOUSE\s+BILL|H\.?\s*B\.?)` + numTail), "house", BillTypeBill},
	{regexp.MustCompile(`\b(?:SENATE\s+BILL|S\.?\s*B\.?)` + numTail), "senate", BillTypeBill},
	{regexp.MustCompile(`\b(?:HOUSE\s+RESOLUTION|H\.?\s*R\.?)` + numTail), "house", BillTypeResolution},
	{regexp.MustCompile(`\b(?:SENATE\s+RESOLUTION|S\.?\s*R\.?)` + numTail), "senate", BillTypeResolution},
}

var digitLookalikes = strings.NewReplacer(
	"O", "0",
	"I", "1",
	"L", "1",
	"S", "5",
	"B", "8",
)

// ParseBillNumber normalizes a raw OCR fragment into a ParsedBill, or nil
// when the text does not read as a bill number. Parse failure is the normal
// "no candidate" signal, not an error.
func ParseBillNumber(text string) *ParsedBill {
	raw := text
	text = strings.ToUpper(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	for _, rw := range ocrPrefixRewrites {
		text = rw.re.ReplaceAllString(text, rw.repl)
	}

	for _, p := range billPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		number := digitLookalikes.Replace(m[1])
		number = strings.TrimLeft(number, "0")
		if number == "" {
			continue
		}
		return &ParsedBill{
			Chamber: p.chamber,
			Type:    p.billType,
			Number:  number,
			Raw:     raw,
		}
	}
	return nil
}

// digitConfusions is deliberately narrow: only swaps the OCR engine actually
// makes, so a variation cannot drift to an arbitrary different bill.
var digitConfusions = map[byte][]byte{
	'0': {'8'},
	'1': {'7'},
	'3': {'8'},
	'5': {'6'},
	'6': {'5'},
	'7': {'1'},
	'8': {'0', '3'},
}

// GenerateNumberVariations returns every single-digit substitution of number
// from the confusion table. The original number is not included.
func GenerateNumberVariations(number string) []string {
	var variants []string
	seen := map[string]bool{number: true}

	for i := 0; i < len(number); i++ {
		subs, ok := digitConfusions[number[i]]
		if !ok {
			continue
		}
		for _, sub := range subs {
			variant := number[:i] + string(sub) + number[i+1:]
			if !seen[variant] {
				seen[variant] = true
				variants = append(variants, variant)
			}
		}
	}
	return variants
}

var billPrefixes = map[[2]string]string{
	{"house", BillTypeBill}:             "HB",
	{"senate", BillTypeBill}:            "SB",
	{"house", BillTypeJointResolution}:  "HJR",
	{"senate", BillTypeJointResolution}: "SJR",
	{"house", BillTypeResolution}:       "HR",
	{"senate", BillTypeResolution}:      "SR",
}

// FormatBillNumber maps (chamber, type) to the canonical prefix and appends
// the number. Unknown combinations fall back to the bare number.
func FormatBillNumber(chamber, billType, number string) string {
	prefix, ok := billPrefixes[[2]string{chamber, billType}]
	if !ok {
		return number
	}
	return prefix + number
}

// FindBillNumbers extracts every canonical bill number referenced in free
// text, e.g. a meeting agenda.
func FindBillNumbers(text string) []string {
	text = strings.ToUpper(text)
	var found []string
	seen := make(map[string]bool)

	for _, p := range billPatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			number := strings.TrimLeft(digitLookalikes.Replace(m[1]), "0")
			if number == "" {
				continue
			}
			canonical := FormatBillNumber(p.chamber, p.billType, number)
			if !seen[canonical] {
				seen[canonical] = true
				found = append(found, canonical)
			}
		}
	}
	return found
}
