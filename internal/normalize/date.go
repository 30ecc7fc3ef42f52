package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

var (
	isoRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slashRe = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	mrzRe   = regexp.MustCompile(`^\d{6}$`)
)

// Date canonicalizes a date string to ISO YYYY-MM-DD. Accepted inputs:
//
//	YYYY-MM-DD  ISO, validated and returned as-is
//	MM/DD/YYYY  US slash-delimited
//	YYMMDD      MRZ two-digit-year form
//
// Two-digit years 00–49 map to the 2000s and 50–99 to the 1900s. That
// heuristic misreads birth years near the century boundary on documents with
// multi-decade validity; it is the documented MRZ convention, not a fact
// about the holder. Unknown patterns return an error rather than a guess.
func Date(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", eris.New("normalize: empty date")
	}

	switch {
	case isoRe.MatchString(s):
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return "", eris.Errorf("normalize: invalid calendar date %q", s)
		}
		return s, nil

	case slashRe.MatchString(s):
		t, err := time.Parse("01/02/2006", s)
		if err != nil {
			return "", eris.Errorf("normalize: invalid calendar date %q", s)
		}
		return t.Format("2006-01-02"), nil

	case mrzRe.MatchString(s):
		yy, _ := strconv.Atoi(s[:2])
		year := 2000 + yy
		if yy >= 50 {
			year = 1900 + yy
		}
		iso := strconv.Itoa(year) + "-" + s[2:4] + "-" + s[4:6]
		if _, err := time.Parse("2006-01-02", iso); err != nil {
			return "", eris.Errorf("normalize: invalid calendar date %q", s)
		}
		return iso, nil
	}

	return "", eris.Errorf("normalize: unrecognized date format %q", s)
}
