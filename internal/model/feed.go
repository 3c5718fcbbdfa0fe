package model

import (
	"time"

	"github.com/google/uuid"
)

type Feed struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Restricted  bool        `json:"restricted"`
	Deleted     bool        `json:"deleted"`
	CategoryIDs []uuid.UUID `json:"category_ids"`
	CreatedAt   time.Time   `json:"created_at"`
}

// FeedChangeset holds the feed fields an update may touch. A non-nil
// CategoryIDs replaces the feed's member categories.
type FeedChangeset struct {
	Name        *string      `json:"name"`
	Restricted  *bool        `json:"restricted"`
	Deleted     *bool        `json:"deleted"`
	CategoryIDs *[]uuid.UUID `json:"category_ids"`
}

func (c FeedChangeset) Empty() bool {
	return c.Name == nil && c.Restricted == nil && c.Deleted == nil && c.CategoryIDs == nil
}
