package mrz

import (
	"context"

	"go.uber.org/zap"

	"github.com/tryalma/doccheck/internal/extract"
	"github.com/tryalma/doccheck/internal/model"
)

// SourceName identifies this backend in sources_used lists.
const SourceName = "mrz"

// Source adapts the MRZ decoder to the extraction contract.
type Source struct {
	decoder *Decoder
}

// NewSource wraps a decoder as an extraction source.
func NewSource(decoder *Decoder) *Source {
	return &Source{decoder: decoder}
}

// Name implements extract.Source.
func (s *Source) Name() string { return SourceName }

// Extract decodes the zone from the image. Failed check digits do not
// discard the record; the cross-check treats disagreement as the signal, and
// a damaged zone still carries usable fields. They are logged for diagnosis.
func (s *Source) Extract(ctx context.Context, input extract.Input) (model.FieldSet, error) {
	rec, err := s.decoder.DecodeImage(ctx, input.ImagePath)
	if err != nil {
		return nil, err
	}
	if len(rec.Fields) == 0 {
		return nil, extract.ErrNoFields
	}
	if !rec.Valid {
		for _, c := range rec.CheckDigits {
			if !c.Valid {
				zap.L().Warn("mrz check digit failed",
					zap.String("image", input.ImagePath),
					zap.String("field", c.Field),
				)
			}
		}
	}
	return rec.Fields, nil
}
