// Package g28 extracts structured fields from USCIS Form G-28 (notice of
// entry of appearance as attorney or accredited representative). G-28s have
// no machine-readable zone, so extraction is vision-only and reported with
// single-source confidence.
package g28

import (
	"context"
	"regexp"
	"sort"

	"go.uber.org/zap"

	"github.com/tryalma/doccheck/internal/model"
	"github.com/tryalma/doccheck/internal/vision"
)

// Canonical G-28 field names.
const (
	FieldAttorneySurname    = "attorney_surname"
	FieldAttorneyGivenNames = "attorney_given_names"
	FieldAttorneyBarNumber  = "attorney_bar_number"
	FieldAttorneyUSCISAcct  = "attorney_uscis_account"
	FieldLawFirm            = "law_firm"
	FieldClientSurname      = "client_surname"
	FieldClientGivenNames   = "client_given_names"
	FieldClientAlienNumber  = "client_alien_number"
	FieldClientDaytimePhone = "client_daytime_phone"
	FieldClientEmail        = "client_email"
)

// requiredFields must be present for a usable appearance notice.
var requiredFields = []string{
	FieldAttorneySurname,
	FieldAttorneyGivenNames,
	FieldClientSurname,
	FieldClientGivenNames,
}

var (
	alienNumberRe = regexp.MustCompile(`^A?\d{7,9}$`)
	emailRe       = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Result is one parsed G-28.
type Result struct {
	Fields   model.FieldSet `json:"fields"`
	Missing  []string       `json:"missing,omitempty"`  // required fields the model could not read
	Warnings []string       `json:"warnings,omitempty"` // format problems on fields that were read
}

// Parser drives vision extraction for G-28 forms.
type Parser struct {
	provider vision.Provider
}

// NewParser creates a G-28 parser over a vision provider.
func NewParser(provider vision.Provider) *Parser {
	return &Parser{provider: provider}
}

// Parse extracts the form fields from one page image and checks them for
// completeness and format. Format problems are warnings, not failures; the
// caller decides what an incomplete form means for its workflow.
func (p *Parser) Parse(ctx context.Context, imagePath string) (*Result, error) {
	fields, err := p.provider.ExtractFields(ctx, vision.Request{
		ImagePath:    imagePath,
		DocumentType: "g28",
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Fields: fields}
	for _, name := range requiredFields {
		if _, ok := fields.Get(name); !ok {
			res.Missing = append(res.Missing, name)
		}
	}
	sort.Strings(res.Missing)

	if v, ok := fields.Get(FieldClientAlienNumber); ok && !alienNumberRe.MatchString(v) {
		res.Warnings = append(res.Warnings, "client_alien_number does not look like an A-Number: "+v)
	}
	if v, ok := fields.Get(FieldClientEmail); ok && !emailRe.MatchString(v) {
		res.Warnings = append(res.Warnings, "client_email is not a valid address: "+v)
	}

	zap.L().Info("g28 parsed",
		zap.String("image", imagePath),
		zap.Int("fields", len(fields)),
		zap.Int("missing_required", len(res.Missing)),
	)
	return res, nil
}
