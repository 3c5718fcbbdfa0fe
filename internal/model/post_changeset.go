package model

import (
	"time"

	"github.com/google/uuid"
)

// PostChangeset carries the requested post edits. A nil field is left as is.
type PostChangeset struct {
	Title      *string     `json:"title"`
	Content    *string     `json:"content"`
	CategoryID *uuid.UUID  `json:"category_id"`
	Published  *bool       `json:"published"`
	Deleted    *bool       `json:"deleted"`
	Meta       *[]PostMeta `json:"meta"`
}

// PostPatch is the difference between a stored post and a changeset.
type PostPatch struct {
	Title       *string
	Content     *string
	CategoryID  *uuid.UUID
	Published   *bool
	PublishedAt *time.Time
	Deleted     *bool
	Meta        []PostMeta
	ReplaceMeta bool
}

// Diff computes the patch that turns post into the changeset's result.
// PublishedAt is only ever set on the first publish; Deleted may be changed
// by admins, and by anyone else only towards true.
func Diff(post Post, cs PostChangeset, actor User, now time.Time) PostPatch {
	var patch PostPatch

	if cs.Title != nil && *cs.Title != post.Title {
		patch.Title = cs.Title
	}
	if cs.Content != nil && *cs.Content != post.Content {
		patch.Content = cs.Content
	}
	if cs.CategoryID != nil && *cs.CategoryID != post.CategoryID {
		patch.CategoryID = cs.CategoryID
	}
	if cs.Published != nil && *cs.Published != post.Published {
		patch.Published = cs.Published
		if *cs.Published && post.PublishedAt == nil {
			publishedAt := now
			patch.PublishedAt = &publishedAt
		}
	}
	if cs.Deleted != nil && *cs.Deleted != post.Deleted {
		if actor.Admin || *cs.Deleted {
			patch.Deleted = cs.Deleted
		}
	}
	if cs.Meta != nil {
		patch.Meta = *cs.Meta
		patch.ReplaceMeta = true
	}

	return patch
}

func (p PostPatch) Empty() bool {
	return p.Title == nil &&
		p.Content == nil &&
		p.CategoryID == nil &&
		p.Published == nil &&
		p.Deleted == nil &&
		!p.ReplaceMeta
}

// NeedsRevision reports whether the patch touches revisioned fields.
func (p PostPatch) NeedsRevision() bool {
	return p.Title != nil || p.Content != nil || p.CategoryID != nil
}

// Publishes reports whether the patch moves the post into published state.
func (p PostPatch) Publishes() bool {
	return p.Published != nil && *p.Published
}

// Apply returns a copy of post with the patch applied.
func (p PostPatch) Apply(post Post) Post {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.CategoryID != nil {
		post.CategoryID = *p.CategoryID
	}
	if p.Published != nil {
		post.Published = *p.Published
	}
	if p.PublishedAt != nil {
		post.PublishedAt = p.PublishedAt
	}
	if p.Deleted != nil {
		post.Deleted = *p.Deleted
	}
	if p.ReplaceMeta {
		post.Meta = p.Meta
	}
	return post
}
