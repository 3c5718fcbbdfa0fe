// Package paginator windows ordered queries into fixed-size pages addressed by
// an opaque cursor.
package paginator

import (
	"context"
	"encoding/base64"
	"encoding/json"
)

const DefaultPageSize = 50

// QueryFunc fetches at most limit rows starting at offset.
type QueryFunc[T any, A any] func(ctx context.Context, args A, offset int, limit int) ([]T, error)

type Result[T any] struct {
	Items      []T     `json:"items"`
	NextCursor *string `json:"next_cursor"`
}

type options struct {
	pageSize int
}

type Option func(*options)

func WithPageSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.pageSize = size
		}
	}
}

type cursor struct {
	Offset int `json:"o"`
}

func EncodeCursor(offset int) string {
	raw, _ := json.Marshal(cursor{Offset: offset})
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor returns the offset stored in value, or 0 for an empty or
// malformed cursor.
func DecodeCursor(value string) int {
	if value == "" {
		return 0
	}

	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return 0
	}

	var c cursor
	if err := json.Unmarshal(raw, &c); err != nil || c.Offset < 0 {
		return 0
	}

	return c.Offset
}

// Paginate runs query for the page addressed by cursorValue. One row beyond
// the page size is requested to learn whether another page exists.
func Paginate[T any, A any](ctx context.Context, query QueryFunc[T, A], args A, cursorValue string, opts ...Option) (*Result[T], error) {
	o := options{pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(&o)
	}

	offset := DecodeCursor(cursorValue)

	items, err := query(ctx, args, offset, o.pageSize+1)
	if err != nil {
		return nil, err
	}

	result := &Result[T]{Items: items}
	if len(items) > o.pageSize {
		result.Items = items[:o.pageSize]
		next := EncodeCursor(offset + o.pageSize)
		result.NextCursor = &next
	}
	if result.Items == nil {
		result.Items = []T{}
	}

	return result, nil
}
