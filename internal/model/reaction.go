package model

import (
	"time"

	"github.com/google/uuid"
)

type Reaction struct {
	PostID    int64     `json:"post_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
}

type ReactionCount struct {
	PostID int64  `json:"-"`
	Emoji  string `json:"emoji"`
	Total  int64  `json:"total"`
	User   bool   `json:"user"`
}
