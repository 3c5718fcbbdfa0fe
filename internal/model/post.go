package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID          int64      `json:"id"`
	AuthorID    uuid.UUID  `json:"author_id"`
	CategoryID  uuid.UUID  `json:"category_id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at"`
	Deleted     bool       `json:"deleted"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Meta        []PostMeta `json:"meta"`
}

type PostMeta struct {
	Name    string `json:"name" binding:"required"`
	Content string `json:"content"`
}

type FullPost struct {
	Post     Post         `json:"post"`
	Author   UserAuthor   `json:"author"`
	Category CategoryInfo `json:"category"`
}

// VisibleTo reports whether the user may read the post.
func (p *FullPost) VisibleTo(user User) bool {
	if user.Admin {
		return true
	}
	if p.Post.Deleted {
		return false
	}
	return p.Post.Published || p.Post.AuthorID == user.ID
}

// PostFilter narrows a post listing. OwnerID is set by the service, never by
// callers, to confine non-admins to their own drafts.
type PostFilter struct {
	Published  *bool      `json:"published"`
	AuthorID   *uuid.UUID `json:"author_id"`
	CategoryID *uuid.UUID `json:"category_id"`
	FeedID     *uuid.UUID `json:"feed_id"`
	Query      string     `json:"query"`
	OwnerID    *uuid.UUID `json:"-"`
}

type Revision struct {
	ID         int64     `json:"id"`
	PostID     int64     `json:"post_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	CategoryID uuid.UUID `json:"category_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewRevision(post Post, authorID uuid.UUID) Revision {
	return Revision{
		PostID:     post.ID,
		AuthorID:   authorID,
		CategoryID: post.CategoryID,
		Title:      post.Title,
		Content:    post.Content,
	}
}
