// Package extract defines the contract between the cross-check core and its
// extraction backends. The core does not care whether an implementation is
// MRZ decoding or a vision-model round trip, only that it returns a FieldSet
// or a typed failure within the caller's context budget.
package extract

import (
	"context"
	"errors"

	"github.com/tryalma/doccheck/internal/model"
)

// Input identifies the document image handed to a source.
type Input struct {
	// ImagePath is the path to a single document image (or rendered page).
	ImagePath string
	// DocumentType hints the expected layout, e.g. "passport" or "g28".
	DocumentType string
}

// Source is one extraction backend. Extract honors ctx cancellation and
// deadlines; it returns the decoded fields or an error, never both.
// Implementations must be safe for concurrent use.
type Source interface {
	Name() string
	Extract(ctx context.Context, input Input) (model.FieldSet, error)
}

// ErrNoFields indicates the source ran but decoded nothing usable.
var ErrNoFields = errors.New("extract: no fields decoded")
