package pressclip

import (
	"context"
	"time"
)

// Clipping is a curated press item in the daily digest.
type Clipping struct {
	ID          string    `json:"id"`
	Headline    string    `json:"headline"`
	Source      string    `json:"source"`
	Category    string    `json:"category"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	ContentHash string    `json:"-"`
	Position    int       `json:"order"`
	CreatedAt   time.Time `json:"date"`
}

// Validate returns an error if the clipping contains invalid fields.
func (c *Clipping) Validate() error {
	if c.Headline == "" {
		return Errorf(EINVALID, "clipping headline required")
	}
	if c.Source == "" {
		return Errorf(EINVALID, "clipping source required")
	}
	if c.Category == "" {
		return Errorf(EINVALID, "clipping category required")
	}
	return nil
}

// NewClipping builds a clipping from an extraction result and a category.
func NewClipping(r *ExtractionResult, category string) *Clipping {
	return &Clipping{
		Headline: r.Headline,
		Source:   r.Source,
		Category: category,
		Content:  r.Content,
		URL:      r.URL,
	}
}

// ClippingService represents a service for managing clippings.
type ClippingService interface {
	// CreateClipping stores a new clipping at the end of the order.
	// Returns ECONFLICT if a clipping with the same headline, URL and content
	// already exists.
	CreateClipping(ctx context.Context, c *Clipping) error

	// FindClippingByID retrieves a clipping by ID.
	// Returns ENOTFOUND if clipping does not exist.
	FindClippingByID(ctx context.Context, id string) (*Clipping, error)

	// FindClippings retrieves clippings matching the filter, ordered by position.
	FindClippings(ctx context.Context, filter ClippingFilter) ([]*Clipping, error)

	// UpdateClipping updates an existing clipping.
	// Returns ENOTFOUND if clipping does not exist.
	UpdateClipping(ctx context.Context, id string, upd ClippingUpdate) (*Clipping, error)

	// ReorderClippings assigns new positions. Unknown IDs are ignored.
	ReorderClippings(ctx context.Context, positions []ClippingPosition) error

	// DeleteClipping permanently removes a clipping.
	// Returns ENOTFOUND if clipping does not exist.
	DeleteClipping(ctx context.Context, id string) error

	// DeleteAllClippings removes every clipping.
	DeleteAllClippings(ctx context.Context) error

	// DeleteClippingsBefore removes clippings created before cutoff and
	// returns how many were removed.
	DeleteClippingsBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// ClippingFilter represents a filter for FindClippings.
type ClippingFilter struct {
	ID       *string `json:"id"`
	Category *string `json:"category"`
	URL      *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ClippingUpdate represents fields that can be updated on a clipping.
type ClippingUpdate struct {
	Headline *string `json:"headline"`
	Source   *string `json:"source"`
	Category *string `json:"category"`
	Content  *string `json:"content"`
	URL      *string `json:"url"`
}

// ClippingPosition assigns an order index to a clipping.
type ClippingPosition struct {
	ID       string `json:"id"`
	Position int    `json:"order"`
}
