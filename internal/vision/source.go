package vision

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/tryalma/doccheck/internal/extract"
	"github.com/tryalma/doccheck/internal/model"
)

// Source adapts a vision provider to the extraction contract, with an
// optional client-side rate limit ahead of the API call.
type Source struct {
	provider Provider
	limiter  *rate.Limiter
}

// NewSource wraps a provider as an extraction source. A non-positive
// requestsPerMinute disables rate limiting.
func NewSource(provider Provider, requestsPerMinute float64) *Source {
	var limiter *rate.Limiter
	if requestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerMinute/60), 1)
	}
	return &Source{provider: provider, limiter: limiter}
}

// Name implements extract.Source.
func (s *Source) Name() string { return s.provider.Name() }

// Extract waits for rate-limit headroom, then runs one model call.
func (s *Source) Extract(ctx context.Context, input extract.Input) (model.FieldSet, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	fields, err := s.provider.ExtractFields(ctx, Request{
		ImagePath:    input.ImagePath,
		DocumentType: input.DocumentType,
	})
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, extract.ErrNoFields
	}
	return fields, nil
}
