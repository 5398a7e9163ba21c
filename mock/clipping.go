package mock

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/pressclip"
)

var (
	_ pressclip.ClippingService = (*ClippingService)(nil)
	_ pressclip.DigestRenderer  = (*DigestRenderer)(nil)
)

// ClippingService is a mock implementation of pressclip.ClippingService.
type ClippingService struct {
	CreateClippingFn        func(ctx context.Context, c *pressclip.Clipping) error
	FindClippingByIDFn      func(ctx context.Context, id string) (*pressclip.Clipping, error)
	FindClippingsFn         func(ctx context.Context, filter pressclip.ClippingFilter) ([]*pressclip.Clipping, error)
	UpdateClippingFn        func(ctx context.Context, id string, upd pressclip.ClippingUpdate) (*pressclip.Clipping, error)
	ReorderClippingsFn      func(ctx context.Context, positions []pressclip.ClippingPosition) error
	DeleteClippingFn        func(ctx context.Context, id string) error
	DeleteAllClippingsFn    func(ctx context.Context) error
	DeleteClippingsBeforeFn func(ctx context.Context, cutoff time.Time) (int, error)
}

func (s *ClippingService) CreateClipping(ctx context.Context, c *pressclip.Clipping) error {
	return s.CreateClippingFn(ctx, c)
}

func (s *ClippingService) FindClippingByID(ctx context.Context, id string) (*pressclip.Clipping, error) {
	return s.FindClippingByIDFn(ctx, id)
}

func (s *ClippingService) FindClippings(ctx context.Context, filter pressclip.ClippingFilter) ([]*pressclip.Clipping, error) {
	return s.FindClippingsFn(ctx, filter)
}

func (s *ClippingService) UpdateClipping(ctx context.Context, id string, upd pressclip.ClippingUpdate) (*pressclip.Clipping, error) {
	return s.UpdateClippingFn(ctx, id, upd)
}

func (s *ClippingService) ReorderClippings(ctx context.Context, positions []pressclip.ClippingPosition) error {
	return s.ReorderClippingsFn(ctx, positions)
}

func (s *ClippingService) DeleteClipping(ctx context.Context, id string) error {
	return s.DeleteClippingFn(ctx, id)
}

func (s *ClippingService) DeleteAllClippings(ctx context.Context) error {
	return s.DeleteAllClippingsFn(ctx)
}

func (s *ClippingService) DeleteClippingsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	return s.DeleteClippingsBeforeFn(ctx, cutoff)
}

// DigestRenderer is a mock implementation of pressclip.DigestRenderer.
type DigestRenderer struct {
	ContentTypeFn func() string
	RenderFn      func(w io.Writer, d *pressclip.Digest) error
}

func (r *DigestRenderer) ContentType() string {
	return r.ContentTypeFn()
}

func (r *DigestRenderer) Render(w io.Writer, d *pressclip.Digest) error {
	return r.RenderFn(w, d)
}
