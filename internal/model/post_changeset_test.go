package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }
func strPtr(s string) *string { return &s }

func TestDiff(t *testing.T) {
	authorID := uuid.New()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	firstPublish := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	author := User{ID: authorID}
	admin := User{ID: uuid.New(), Admin: true}

	draft := Post{ID: 1, AuthorID: authorID, Title: "Hello", Content: "Body"}

	t.Run("unchanged values produce an empty patch", func(t *testing.T) {
		patch := Diff(draft, PostChangeset{Title: strPtr("Hello"), Content: strPtr("Body")}, author, now)
		assert.True(t, patch.Empty())
		assert.False(t, patch.NeedsRevision())
	})

	t.Run("first publish sets publishedAt", func(t *testing.T) {
		patch := Diff(draft, PostChangeset{Published: boolPtr(true)}, author, now)
		require.NotNil(t, patch.PublishedAt)
		assert.Equal(t, now, *patch.PublishedAt)
		assert.True(t, patch.Publishes())
	})

	t.Run("republish keeps the original publishedAt", func(t *testing.T) {
		unpublished := draft
		unpublished.PublishedAt = &firstPublish

		patch := Diff(unpublished, PostChangeset{Published: boolPtr(true)}, author, now)
		assert.Nil(t, patch.PublishedAt)

		result := patch.Apply(unpublished)
		assert.True(t, result.Published)
		assert.Equal(t, firstPublish, *result.PublishedAt)
	})

	t.Run("unpublish never clears publishedAt", func(t *testing.T) {
		published := draft
		published.Published = true
		published.PublishedAt = &firstPublish

		result := Diff(published, PostChangeset{Published: boolPtr(false)}, author, now).Apply(published)
		assert.False(t, result.Published)
		assert.Equal(t, firstPublish, *result.PublishedAt)
	})

	t.Run("owner may delete but not restore", func(t *testing.T) {
		patch := Diff(draft, PostChangeset{Deleted: boolPtr(true)}, author, now)
		require.NotNil(t, patch.Deleted)
		assert.True(t, *patch.Deleted)

		deleted := draft
		deleted.Deleted = true
		assert.True(t, Diff(deleted, PostChangeset{Deleted: boolPtr(false)}, author, now).Empty())
		assert.False(t, Diff(deleted, PostChangeset{Deleted: boolPtr(false)}, admin, now).Empty())
	})

	t.Run("title change needs a revision", func(t *testing.T) {
		patch := Diff(draft, PostChangeset{Title: strPtr("Hello again")}, author, now)
		assert.True(t, patch.NeedsRevision())
		assert.Equal(t, "Hello again", patch.Apply(draft).Title)
	})

	t.Run("meta is replaced, not merged", func(t *testing.T) {
		withMeta := draft
		withMeta.Meta = []PostMeta{{Name: "a", Content: "1"}, {Name: "b", Content: "2"}}

		meta := []PostMeta{{Name: "c", Content: "3"}}
		patch := Diff(withMeta, PostChangeset{Meta: &meta}, author, now)
		assert.True(t, patch.ReplaceMeta)
		assert.False(t, patch.NeedsRevision())
		assert.Equal(t, meta, patch.Apply(withMeta).Meta)
	})
}

func TestCategoryMissingMeta(t *testing.T) {
	category := Category{
		MetaConfig: []CategoryMetaConfig{
			{Name: "version", Required: true},
			{Name: "link", Required: false},
			{Name: "team", Required: true},
		},
	}

	missing := category.MissingMeta([]PostMeta{{Name: "version", Content: "1.0"}, {Name: "team", Content: ""}})
	assert.Equal(t, []string{"team"}, missing)
	assert.Empty(t, category.MissingMeta([]PostMeta{{Name: "version", Content: "1"}, {Name: "team", Content: "x"}}))
}

func TestUserChangesetUpdates(t *testing.T) {
	cs := UserChangeset{Name: strPtr("Fancy"), Admin: boolPtr(true), CanPostRestricted: boolPtr(true)}

	updates := cs.Updates(User{ID: uuid.New()})
	assert.Equal(t, map[string]interface{}{"name": "Fancy"}, updates)

	updates = cs.Updates(User{ID: uuid.New(), Admin: true})
	assert.Equal(t, true, updates["admin"])
	assert.Equal(t, true, updates["can_post_restricted"])
}
