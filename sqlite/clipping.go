package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pressclip"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ pressclip.ClippingService = (*ClippingService)(nil)

// ClippingService implements pressclip.ClippingService using SQLite.
type ClippingService struct {
	db *DB
}

// NewClippingService creates a new ClippingService.
func NewClippingService(db *DB) *ClippingService {
	return &ClippingService{db: db}
}

const clippingColumns = "id, headline, source, category, content, url, content_hash, position, created_at"

// hashClipping computes xxHash over the fields that identify a clipping and
// returns it as a hex string.
func hashClipping(c *pressclip.Clipping) string {
	h := xxhash.New()
	_, _ = h.WriteString(c.Headline)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(c.URL)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(c.Content)
	return hex.EncodeToString(h.Sum(nil))
}

// CreateClipping stores a new clipping at the end of the order.
func (s *ClippingService) CreateClipping(ctx context.Context, c *pressclip.Clipping) error {
	if err := c.Validate(); err != nil {
		return err
	}

	hash := hashClipping(c)

	var exists int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM clippings WHERE content_hash = ?", hash).Scan(&exists); err != nil {
		return err
	}
	if exists > 0 {
		return pressclip.Errorf(pressclip.ECONFLICT, "clipping already exists")
	}

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM clippings").Scan(&count); err != nil {
		return err
	}

	c.ID = uuid.New().String()
	c.CreatedAt = time.Now().UTC().Truncate(time.Second)
	c.ContentHash = hash
	c.Position = count

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO clippings (`+clippingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Headline, c.Source, c.Category, c.Content, c.URL, c.ContentHash,
		c.Position, formatTime(c.CreatedAt))

	return mapConstraint(err)
}

// FindClippingByID retrieves a clipping by ID.
func (s *ClippingService) FindClippingByID(ctx context.Context, id string) (*pressclip.Clipping, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+clippingColumns+" FROM clippings WHERE id = ?", id)
	c, err := scanClipping(row)
	if err == sql.ErrNoRows {
		return nil, pressclip.Errorf(pressclip.ENOTFOUND, "clipping not found")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FindClippings retrieves clippings matching the filter, ordered by position.
func (s *ClippingService) FindClippings(ctx context.Context, filter pressclip.ClippingFilter) ([]*pressclip.Clipping, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + clippingColumns + " FROM clippings WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Category != nil {
		query.WriteString(" AND category = ?")
		args = append(args, *filter.Category)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY position ASC, created_at ASC")
	args = paginate(&query, args, filter)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clippings := []*pressclip.Clipping{}
	for rows.Next() {
		c, err := scanClipping(rows)
		if err != nil {
			return nil, err
		}
		clippings = append(clippings, c)
	}

	return clippings, rows.Err()
}

// UpdateClipping updates an existing clipping.
func (s *ClippingService) UpdateClipping(ctx context.Context, id string, upd pressclip.ClippingUpdate) (*pressclip.Clipping, error) {
	c, err := s.FindClippingByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Headline != nil {
		c.Headline = *upd.Headline
	}
	if upd.Source != nil {
		c.Source = *upd.Source
	}
	if upd.Category != nil {
		c.Category = *upd.Category
	}
	if upd.Content != nil {
		c.Content = *upd.Content
	}
	if upd.URL != nil {
		c.URL = *upd.URL
	}
	c.ContentHash = hashClipping(c)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE clippings
		SET headline = ?, source = ?, category = ?, content = ?, url = ?, content_hash = ?
		WHERE id = ?
	`, c.Headline, c.Source, c.Category, c.Content, c.URL, c.ContentHash, id)
	if err != nil {
		return nil, mapConstraint(err)
	}

	return c, nil
}

// ReorderClippings assigns new positions in one transaction.
// Unknown IDs are ignored.
func (s *ClippingService) ReorderClippings(ctx context.Context, positions []pressclip.ClippingPosition) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range positions {
		if _, err := tx.ExecContext(ctx, "UPDATE clippings SET position = ? WHERE id = ?", p.Position, p.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteClipping permanently removes a clipping.
func (s *ClippingService) DeleteClipping(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM clippings WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return pressclip.Errorf(pressclip.ENOTFOUND, "clipping not found")
	}

	return nil
}

// DeleteAllClippings removes every clipping.
func (s *ClippingService) DeleteAllClippings(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM clippings")
	return err
}

// DeleteClippingsBefore removes clippings created before cutoff.
func (s *ClippingService) DeleteClippingsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM clippings WHERE created_at < ?",
		formatTime(cutoff))
	if err != nil {
		return 0, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}

// mapConstraint turns a unique violation into ECONFLICT.
func mapConstraint(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
		return pressclip.Errorf(pressclip.ECONFLICT, "clipping already exists")
	}
	return fmt.Errorf("clippings: %w", err)
}
