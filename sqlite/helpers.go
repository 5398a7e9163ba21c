package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/pressclip"
)

// formatTime renders t the way created_at is stored: UTC, second precision.
// Stored values compare lexically in time order, which the retention purge
// relies on.
func formatTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

// parseTime reads a stored timestamp back.
func parseTime(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("clippings: bad %s %q: %w", column, value, err)
	}
	return t.UTC(), nil
}

// paginate appends the filter's LIMIT and OFFSET. SQLite only accepts OFFSET
// after a LIMIT, so an offset on its own gets LIMIT -1.
func paginate(query *strings.Builder, args []any, filter pressclip.ClippingFilter) []any {
	switch {
	case filter.Limit > 0:
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	case filter.Offset > 0:
		query.WriteString(" LIMIT -1")
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}
	return args
}

type scanner interface {
	Scan(dest ...any) error
}

// scanClipping reads one row selected with clippingColumns.
func scanClipping(row scanner) (*pressclip.Clipping, error) {
	var c pressclip.Clipping
	var createdAt string

	if err := row.Scan(&c.ID, &c.Headline, &c.Source, &c.Category, &c.Content, &c.URL,
		&c.ContentHash, &c.Position, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if c.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &c, nil
}
