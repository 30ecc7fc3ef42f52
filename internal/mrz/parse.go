// Package mrz decodes machine-readable zones (ICAO Doc 9303) from document
// images. It is the deterministic extraction source: every numeric field is
// covered by a check digit, so its output is trusted ahead of vision-model
// output for machine-verifiable fields.
package mrz

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/tryalma/doccheck/internal/model"
)

// Format identifies the MRZ layout.
type Format string

const (
	FormatTD1 Format = "TD1" // ID cards: 3 lines of 30
	FormatTD3 Format = "TD3" // passports: 2 lines of 44
)

// CheckDigitResult records the verification of one checked field.
type CheckDigitResult struct {
	Field string `json:"field"`
	Valid bool   `json:"valid"`
}

// Record is a parsed MRZ with its check-digit verification. Dates stay in
// the raw YYMMDD form the zone encodes; the cross-check normalizer owns
// century inference.
type Record struct {
	Format      Format             `json:"format"`
	Fields      model.FieldSet     `json:"fields"`
	Valid       bool               `json:"valid"` // all check digits, including the composite, verified
	CheckDigits []CheckDigitResult `json:"check_digits"`
}

// Parse detects the MRZ format from the line shape and dispatches. Lines
// must already be trimmed to bare MRZ characters.
func Parse(raw string) (*Record, error) {
	lines := splitLines(raw)
	switch {
	case len(lines) == 2 && len(lines[0]) == 44 && len(lines[1]) == 44:
		return parseTD3(lines)
	case len(lines) == 3 && len(lines[0]) == 30 && len(lines[1]) == 30 && len(lines[2]) == 30:
		return parseTD1(lines)
	}
	return nil, eris.Errorf("mrz: unrecognized zone shape: %d line(s)", len(lines))
}

func splitLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// parseTD3 decodes the two-line passport zone.
//
//	line 1: P<IIISURNAME<<GIVEN<NAMES<<<<...
//	line 2: number(9) cd nationality(3) birth(6) cd sex expiry(6) cd personal(14) cd composite
func parseTD3(lines []string) (*Record, error) {
	l1, l2 := lines[0], lines[1]
	if l1[0] != 'P' {
		return nil, eris.Errorf("mrz: not a passport document code %q", l1[0])
	}

	surname, given := parseNames(l1[5:])

	number := l2[0:9]
	nationality := l2[10:13]
	birth := l2[13:19]
	sex := l2[20]
	expiry := l2[21:27]
	personal := l2[28:42]

	checks := []CheckDigitResult{
		{Field: "document_number", Valid: checkDigitMatches(number, l2[9])},
		{Field: "birth_date", Valid: checkDigitMatches(birth, l2[19])},
		{Field: "expiry_date", Valid: checkDigitMatches(expiry, l2[27])},
		{Field: "personal_number", Valid: checkDigitMatches(personal, l2[42])},
		{Field: "composite", Valid: checkDigitMatches(l2[0:10]+l2[13:20]+l2[21:43], l2[43])},
	}

	fields := model.FieldSet{
		model.FieldPassportNumber: trimFiller(number),
		model.FieldIssuingCountry: trimFiller(l1[2:5]),
		model.FieldNationality:    trimFiller(nationality),
		model.FieldDateOfBirth:    dateOrEmpty(birth),
		model.FieldExpiryDate:     dateOrEmpty(expiry),
		model.FieldSurname:        surname,
		model.FieldGivenNames:     given,
		model.FieldSex:            parseSex(sex),
		model.FieldPersonalNumber: trimFiller(personal),
	}

	return &Record{
		Format:      FormatTD3,
		Fields:      prune(fields),
		Valid:       allValid(checks),
		CheckDigits: checks,
	}, nil
}

// parseTD1 decodes the three-line ID-card zone.
func parseTD1(lines []string) (*Record, error) {
	l1, l2, l3 := lines[0], lines[1], lines[2]

	number := l1[5:14]
	birth := l2[0:6]
	expiry := l2[8:14]

	composite := l1[5:30] + l2[0:7] + l2[8:15] + l2[18:29]
	checks := []CheckDigitResult{
		{Field: "document_number", Valid: checkDigitMatches(number, l1[14])},
		{Field: "birth_date", Valid: checkDigitMatches(birth, l2[6])},
		{Field: "expiry_date", Valid: checkDigitMatches(expiry, l2[14])},
		{Field: "composite", Valid: checkDigitMatches(composite, l2[29])},
	}

	surname, given := parseNames(l3)

	fields := model.FieldSet{
		model.FieldPassportNumber: trimFiller(number),
		model.FieldIssuingCountry: trimFiller(l1[2:5]),
		model.FieldNationality:    trimFiller(l2[15:18]),
		model.FieldDateOfBirth:    dateOrEmpty(birth),
		model.FieldExpiryDate:     dateOrEmpty(expiry),
		model.FieldSurname:        surname,
		model.FieldGivenNames:     given,
		model.FieldSex:            parseSex(l2[7]),
	}

	return &Record{
		Format:      FormatTD1,
		Fields:      prune(fields),
		Valid:       allValid(checks),
		CheckDigits: checks,
	}, nil
}

// parseNames splits "SURNAME<<GIVEN<NAMES" and maps filler to spaces.
func parseNames(zone string) (surname, given string) {
	zone = strings.TrimRight(zone, "<")
	parts := strings.SplitN(zone, "<<", 2)
	surname = strings.TrimSpace(strings.ReplaceAll(parts[0], "<", " "))
	if len(parts) == 2 {
		given = strings.TrimSpace(strings.ReplaceAll(parts[1], "<", " "))
	}
	return surname, given
}

func parseSex(c byte) string {
	switch c {
	case 'M':
		return "M"
	case 'F':
		return "F"
	}
	return ""
}

// dateOrEmpty keeps the raw YYMMDD form, dropping all-filler dates.
func dateOrEmpty(s string) string {
	if isFiller(s) {
		return ""
	}
	return s
}

func trimFiller(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(strings.Trim(s, "<"), "<", " "))
}

func prune(fs model.FieldSet) model.FieldSet {
	for k, v := range fs {
		if v == "" {
			delete(fs, k)
		}
	}
	return fs
}

func allValid(checks []CheckDigitResult) bool {
	for _, c := range checks {
		if !c.Valid {
			return false
		}
	}
	return true
}
