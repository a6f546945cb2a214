// Package pagination holds the shared paging rules used by the feed and by
// the simple per-user/per-post listings: limit/offset normalization and the
// cursor codec for stable paging over the (created_at, id) total order.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	// maxCursorLen bounds decoded cursor size before parsing
	maxCursorLen = 256
)

// Policy carries the configured page-size bounds. The zero value is not
// usable; construct with NewPolicy.
type Policy struct {
	defaultSize int
	maxSize     int
}

// NewPolicy builds a Policy, falling back to the package defaults for
// out-of-range arguments.
func NewPolicy(defaultSize, maxSize int) Policy {
	if maxSize < 1 {
		maxSize = MaxPageSize
	}
	if defaultSize < 1 || defaultSize > maxSize {
		defaultSize = DefaultPageSize
		if defaultSize > maxSize {
			defaultSize = maxSize
		}
	}
	return Policy{defaultSize: defaultSize, maxSize: maxSize}
}

// Limit clamps a caller-supplied page size into [1, max]. Zero or negative
// requests get the default.
func (p Policy) Limit(requested int) int {
	if requested <= 0 {
		return p.defaultSize
	}
	if requested > p.maxSize {
		return p.maxSize
	}
	return requested
}

// Offset clamps a caller-supplied offset to >= 0. Offsets past the end of
// a collection yield an empty page downstream, never an error.
func (p Policy) Offset(requested int) int {
	if requested < 0 {
		return 0
	}
	return requested
}

// Cursor marks the sort-key position of the last-seen row. The next page
// selects rows strictly below (CreatedAt, ID) in descending order, which
// keeps adjacent pages free of duplicates and gaps even while new rows are
// being inserted.
type Cursor struct {
	CreatedAt time.Time
	ID        uint
}

// EncodeCursor serializes a cursor as base64("<RFC3339Nano>|<id>").
func EncodeCursor(c Cursor) string {
	payload := c.CreatedAt.Format(time.RFC3339Nano) + "|" + strconv.FormatUint(uint64(c.ID), 10)
	return base64.URLEncoding.EncodeToString([]byte(payload))
}

// DecodeCursor parses a client-supplied cursor. A nil result with nil error
// means "no cursor" (start from the newest row).
func DecodeCursor(s string) (*Cursor, error) {
	if s == "" {
		return nil, nil
	}
	if len(s) > maxCursorLen {
		return nil, fmt.Errorf("cursor exceeds maximum length")
	}

	decoded, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor encoding")
	}

	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid cursor format")
	}

	createdAt, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid cursor timestamp")
	}

	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor id")
	}

	return &Cursor{CreatedAt: createdAt, ID: uint(id)}, nil
}
