package dto

import (
	"strings"

	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/google/uuid"
)

type CreatePostRequest struct {
	Title      string           `json:"title"`
	Content    string           `json:"content"`
	CategoryID *uuid.UUID       `json:"category_id"`
	Published  bool             `json:"published"`
	Announce   bool             `json:"announce"`
	Meta       []model.PostMeta `json:"meta" binding:"dive"`
	FeedIDs    []uuid.UUID      `json:"feed_ids"`
}

type UpdatePostRequest struct {
	model.PostChangeset
	Announce bool        `json:"announce"`
	FeedIDs  []uuid.UUID `json:"feed_ids"`
}

type ListPostsRequest struct {
	Published  *bool  `form:"published"`
	AuthorID   string `form:"authorId" binding:"omitempty,uuid"`
	CategoryID string `form:"categoryId" binding:"omitempty,uuid"`
	FeedID     string `form:"feedId" binding:"omitempty,uuid"`
	Query      string `form:"q"`
	Cursor     string `form:"cursor"`
}

// Filter converts the query parameters. Ids are expected to be validated by
// binding already; unparsable ones are ignored.
func (r ListPostsRequest) Filter() model.PostFilter {
	return model.PostFilter{
		Published:  r.Published,
		AuthorID:   optionalUUID(r.AuthorID),
		CategoryID: optionalUUID(r.CategoryID),
		FeedID:     optionalUUID(r.FeedID),
		Query:      strings.TrimSpace(r.Query),
	}
}

func optionalUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}
