package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const feedSelect = `SELECT
	f.id, f.name, f.restricted, f.deleted, f.created_at,
	COALESCE(ARRAY_AGG(fc.category_id) FILTER (WHERE fc.category_id IS NOT NULL), '{}')
	FROM feeds f
	LEFT JOIN feed_categories fc ON fc.feed_id = f.id`

type feedRepo struct {
	db DBTX
}

func newFeedRepo(db DBTX) Feed {
	return &feedRepo{
		db: db,
	}
}

func (r *feedRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Feed, error) {
	return scanFeed(r.db.QueryRow(ctx, feedSelect+" WHERE f.id = $1 GROUP BY f.id", id))
}

func (r *feedRepo) FindMany(ctx context.Context, includeRestricted bool) ([]*model.Feed, error) {
	rows, err := r.db.Query(
		ctx,
		feedSelect+" WHERE f.deleted = FALSE AND ($1 OR f.restricted = FALSE) GROUP BY f.id ORDER BY f.name",
		includeRestricted,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feeds []*model.Feed
	for rows.Next() {
		feed, err := scanFeed(rows)
		if err != nil {
			return nil, err
		}
		feeds = append(feeds, feed)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return feeds, nil
}

func (r *feedRepo) AttachPost(ctx context.Context, postID int64, feedIDs []uuid.UUID) error {
	if len(feedIDs) == 0 {
		return nil
	}

	_, err := r.db.Exec(
		ctx,
		`INSERT INTO post_feeds(post_id, feed_id)
		SELECT $1, UNNEST($2::uuid[])
		ON CONFLICT DO NOTHING`,
		postID,
		feedIDs,
	)
	return err
}

// Create stores the feed and its member categories.
func (r *feedRepo) Create(ctx context.Context, feed model.Feed) (*model.Feed, error) {
	if feed.CategoryIDs == nil {
		feed.CategoryIDs = []uuid.UUID{}
	}

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(
			ctx,
			"INSERT INTO feeds(name, restricted) VALUES($1, $2) RETURNING id, created_at",
			feed.Name,
			feed.Restricted,
		).Scan(&feed.ID, &feed.CreatedAt); err != nil {
			return err
		}

		return insertFeedCategories(ctx, tx, feed.ID, feed.CategoryIDs)
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrUnknownReference
		}
		return nil, err
	}

	return &feed, nil
}

// Update applies the changeset. A missing feed yields pgx.ErrNoRows.
func (r *feedRepo) Update(ctx context.Context, id uuid.UUID, changeset model.FeedChangeset) error {
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		sets := []string{}
		args := []interface{}{}
		set := func(column string, value interface{}) {
			args = append(args, value)
			sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
		}

		if changeset.Name != nil {
			set("name", *changeset.Name)
		}
		if changeset.Restricted != nil {
			set("restricted", *changeset.Restricted)
		}
		if changeset.Deleted != nil {
			set("deleted", *changeset.Deleted)
		}

		args = append(args, id)
		query := fmt.Sprintf("SELECT 1 FROM feeds WHERE id = $%d FOR UPDATE", len(args))
		if len(sets) > 0 {
			query = "UPDATE feeds SET " + strings.Join(sets, ", ") + fmt.Sprintf(" WHERE id = $%d", len(args))
		}

		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}

		if changeset.CategoryIDs == nil {
			return nil
		}

		if _, err := tx.Exec(ctx, "DELETE FROM feed_categories WHERE feed_id = $1", id); err != nil {
			return err
		}

		return insertFeedCategories(ctx, tx, id, *changeset.CategoryIDs)
	})
	if isForeignKeyViolation(err) {
		return ErrUnknownReference
	}

	return err
}

// FindPostFeedIDs returns the feeds listing the post, either directly or
// through its category.
func (r *feedRepo) FindPostFeedIDs(ctx context.Context, postID int64) ([]uuid.UUID, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT pf.feed_id FROM post_feeds pf WHERE pf.post_id = $1
		UNION
		SELECT fc.feed_id FROM feed_categories fc JOIN posts p ON p.category_id = fc.category_id WHERE p.id = $1`,
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

func insertFeedCategories(ctx context.Context, tx pgx.Tx, feedID uuid.UUID, categoryIDs []uuid.UUID) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	_, err := tx.Exec(
		ctx,
		`INSERT INTO feed_categories(feed_id, category_id)
		SELECT $1, UNNEST($2::uuid[])
		ON CONFLICT DO NOTHING`,
		feedID,
		categoryIDs,
	)
	return err
}

func scanFeed(row pgx.Row) (*model.Feed, error) {
	var feed model.Feed
	if err := row.Scan(
		&feed.ID,
		&feed.Name,
		&feed.Restricted,
		&feed.Deleted,
		&feed.CreatedAt,
		&feed.CategoryIDs,
	); err != nil {
		return nil, err
	}

	return &feed, nil
}
