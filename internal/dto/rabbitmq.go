package dto

import (
	"time"

	"github.com/google/uuid"
)

type MQPostPublishedMsg struct {
	PostID      int64     `json:"post_id"`
	AuthorID    uuid.UUID `json:"author_id"`
	CategoryID  uuid.UUID `json:"category_id"`
	PostTitle   string    `json:"post_title"`
	PublishedAt time.Time `json:"published_at"`
}
