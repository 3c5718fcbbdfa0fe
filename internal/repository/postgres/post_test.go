package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostUpdate(t *testing.T) {
	published := true
	publishedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("first publish keeps an existing published_at", func(t *testing.T) {
		db := newMockDB(t)
		db.ExpectBegin()
		db.ExpectExec(regexp.QuoteMeta(
			"UPDATE posts SET updated_at = now(), published = $1, published_at = COALESCE(published_at, $2) WHERE id = $3",
		)).
			WithArgs(published, publishedAt, int64(5)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		db.ExpectCommit()

		err := newPostRepo(db).Update(context.Background(), 5, model.PostPatch{Published: &published, PublishedAt: &publishedAt}, nil)

		require.NoError(t, err)
		assert.NoError(t, db.ExpectationsWereMet())
	})

	t.Run("title change writes a revision", func(t *testing.T) {
		db := newMockDB(t)
		title := "Hello again"
		revision := model.Revision{AuthorID: uuid.New(), CategoryID: uuid.New(), Title: title, Content: "Body"}

		db.ExpectBegin()
		db.ExpectExec(regexp.QuoteMeta("UPDATE posts SET updated_at = now(), title = $1 WHERE id = $2")).
			WithArgs(title, int64(5)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		db.ExpectExec(regexp.QuoteMeta("INSERT INTO post_revisions(post_id, author_id, category_id, title, content)")).
			WithArgs(int64(5), revision.AuthorID, revision.CategoryID, title, "Body").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		db.ExpectCommit()

		err := newPostRepo(db).Update(context.Background(), 5, model.PostPatch{Title: &title}, &revision)

		require.NoError(t, err)
		assert.NoError(t, db.ExpectationsWereMet())
	})

	t.Run("missing post", func(t *testing.T) {
		db := newMockDB(t)
		deleted := true

		db.ExpectBegin()
		db.ExpectExec(regexp.QuoteMeta("UPDATE posts SET updated_at = now(), deleted = $1 WHERE id = $2")).
			WithArgs(deleted, int64(404)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		db.ExpectRollback()

		err := newPostRepo(db).Update(context.Background(), 404, model.PostPatch{Deleted: &deleted}, nil)

		assert.ErrorIs(t, err, pgx.ErrNoRows)
		assert.NoError(t, db.ExpectationsWereMet())
	})
}

func TestPostFindManyPlaceholders(t *testing.T) {
	db := newMockDB(t)
	feedID := uuid.New()

	db.ExpectQuery(
		`(?s)pf\.feed_id = \$1.*fc\.feed_id = \$1.*` +
			regexp.QuoteMeta("(p.title ILIKE $2 OR p.content ILIKE $2)") +
			`.*` + regexp.QuoteMeta("LIMIT $3 OFFSET $4"),
	).
		WithArgs(feedID, `%50\%%`, 51, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	posts, err := newPostRepo(db).FindMany(context.Background(), model.PostFilter{FeedID: &feedID, Query: "50%"}, 0, 51)

	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.NoError(t, db.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\% \_done\\`, escapeLike(`100% _done\`))
}
