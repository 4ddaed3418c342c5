package matcher

import (
	"reflect"
	"sort"
	"testing"
)

func TestParseBillNumber(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		chamber string
		billTyp string
		number  string
	}{
		{"plain house bill", "HB 1234", "house", BillTypeBill, "1234"},
		{"no space", "HB1234", "house", BillTypeBill, "1234"},
		{"punctuated", "H.B. 1234", "house", BillTypeBill, "1234"},
		{"spelled out", "House Bill 1234", "house", BillTypeBill, "1234"},
		{"with no token", "HB No. 42", "house", BillTypeBill, "42"},
		{"senate bill", "SB 55", "senate", BillTypeBill, "55"},
		{"house joint resolution", "HJR 9", "house", BillTypeJointResolution, "9"},
		{"spelled joint resolution", "Senate Joint Resolution 12", "senate", BillTypeJointResolution, "12"},
		{"house resolution", "HR 3", "house", BillTypeResolution, "3"},
		{"senate resolution", "SR 21", "senate", BillTypeResolution, "21"},
		{"leading zeros stripped", "HB 0042", "house", BillTypeBill, "42"},

		// OCR prefix confusions
		{"eight for B", "H8 1234", "house", BillTypeBill, "1234"},
		{"three for B", "S3 55", "senate", BillTypeBill, "55"},
		{"E for B", "HE 20", "house", BillTypeBill, "20"},
		{"five for B after S", "S5 20", "senate", BillTypeBill, "20"},
		{"one for H", "1B 22", "house", BillTypeBill, "22"},
		{"L for H", "LB 22", "house", BillTypeBill, "22"},
		{"I for H", "IJR 5", "house", BillTypeJointResolution, "5"},

		// Digit look-alikes inside the number
		{"letter O in number", "HB 12O4", "house", BillTypeBill, "1204"},
		{"letter S in number", "SB 5S", "senate", BillTypeBill, "55"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := ParseBillNumber(tt.in)
			if parsed == nil {
				t.Fatalf("ParseBillNumber(%q) = nil, expected a match", tt.in)
			}
			if parsed.Chamber != tt.chamber {
				t.Errorf("chamber = %q, expected %q", parsed.Chamber, tt.chamber)
			}
			if parsed.Type != tt.billTyp {
				t.Errorf("type = %q, expected %q", parsed.Type, tt.billTyp)
			}
			if parsed.Number != tt.number {
				t.Errorf("number = %q, expected %q", parsed.Number, tt.number)
			}
			if parsed.Raw != tt.in {
				t.Errorf("raw = %q, expected %q", parsed.Raw, tt.in)
			}
		})
	}
}

func TestParseBillNumberRejectsNonBills(t *testing.T) {
	for _, in := range []string{"", "Senator Mundon King", "1234", "HB", "HB 000", "budget hearing"} {
		if parsed := ParseBillNumber(in); parsed != nil {
			t.Errorf("ParseBillNumber(%q) = %+v, expected nil", in, parsed)
		}
	}
}

func TestParsedBillCanonical(t *testing.T) {
	parsed := ParseBillNumber("House Bill 0012")
	if parsed == nil {
		t.Fatal("expected a parse")
	}
	if got := parsed.Canonical(); got != "HB12" {
		t.Errorf("Canonical() = %q, expected HB12", got)
	}
}

func TestGenerateNumberVariations(t *testing.T) {
	got := GenerateNumberVariations("1234")
	sort.Strings(got)
	expected := []string{"1284", "7234"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("GenerateNumberVariations(1234) = %v, expected %v", got, expected)
	}

	// One substitution per variant, never compound
	for _, v := range GenerateNumberVariations("888") {
		diffs := 0
		for i := range v {
			if v[i] != "888"[i] {
				diffs++
			}
		}
		if diffs != 1 {
			t.Errorf("variant %q differs from 888 in %d positions, expected 1", v, diffs)
		}
	}

	if got := GenerateNumberVariations("2"); got != nil {
		t.Errorf("expected no variations for digits outside the confusion table, got %v", got)
	}
}

func TestFormatBillNumber(t *testing.T) {
	tests := []struct {
		chamber  string
		billType string
		number   string
		expected string
	}{
		{"house", BillTypeBill, "1234", "HB1234"},
		{"senate", BillTypeBill, "55", "SB55"},
		{"house", BillTypeJointResolution, "9", "HJR9"},
		{"senate", BillTypeJointResolution, "12", "SJR12"},
		{"house", BillTypeResolution, "3", "HR3"},
		{"senate", BillTypeResolution, "21", "SR21"},
		{"house", "unknown", "7", "7"},
	}

	for _, tt := range tests {
		if got := FormatBillNumber(tt.chamber, tt.billType, tt.number); got != tt.expected {
			t.Errorf("FormatBillNumber(%s, %s, %s) = %q, expected %q", tt.chamber, tt.billType, tt.number, got, tt.expected)
		}
	}
}

func TestFindBillNumbers(t *testing.T) {
	agenda := "Consideration of HB 1234, followed by testimony on S.B. 55 and HB 1234 again"
	got := FindBillNumbers(agenda)
	sort.Strings(got)
	expected := []string{"HB1234", "SB55"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("FindBillNumbers = %v, expected %v", got, expected)
	}

	if got := FindBillNumbers("general public comment"); got != nil {
		t.Errorf("expected no bill numbers, got %v", got)
	}
}
