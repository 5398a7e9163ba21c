package mock

import (
	"context"

	"github.com/fwojciec/pressclip"
)

var (
	_ pressclip.Strategy          = (*Strategy)(nil)
	_ pressclip.ExtractionService = (*ExtractionService)(nil)
)

// Strategy is a mock implementation of pressclip.Strategy.
type Strategy struct {
	NameFn    func() string
	ExtractFn func(ctx context.Context, url string) (*pressclip.ExtractionResult, error)
}

func (s *Strategy) Name() string {
	if s.NameFn == nil {
		return "mock"
	}
	return s.NameFn()
}

func (s *Strategy) Extract(ctx context.Context, url string) (*pressclip.ExtractionResult, error) {
	return s.ExtractFn(ctx, url)
}

// ExtractionService is a mock implementation of pressclip.ExtractionService.
type ExtractionService struct {
	ExtractFn func(ctx context.Context, rawURL string) (*pressclip.ExtractionResult, error)
}

func (s *ExtractionService) Extract(ctx context.Context, rawURL string) (*pressclip.ExtractionResult, error) {
	return s.ExtractFn(ctx, rawURL)
}
