package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/jackc/pgx/v5"
)

const fullPostSelect = `SELECT
	p.id, p.author_id, p.category_id, p.title, p.content, p.published, p.published_at, p.deleted, p.created_at, p.updated_at,
	u.id, u.email, u.name, u.picture,
	c.id, c.name, c.slug, c.color_hex
	FROM posts p
	JOIN users u ON p.author_id = u.id
	JOIN categories c ON p.category_id = c.id`

type postRepo struct {
	db DBTX
}

func newPostRepo(db DBTX) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post, revision model.Revision) (*model.Post, error) {
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(
			ctx,
			`INSERT INTO posts(author_id, category_id, title, content, published, published_at)
			VALUES($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, updated_at`,
			post.AuthorID,
			post.CategoryID,
			post.Title,
			post.Content,
			post.Published,
			post.PublishedAt,
		).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt); err != nil {
			return err
		}

		revision.PostID = post.ID
		if err := insertRevision(ctx, tx, revision); err != nil {
			return err
		}

		return insertMeta(ctx, tx, post.ID, post.Meta)
	})
	if err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) Update(ctx context.Context, id int64, patch model.PostPatch, revision *model.Revision) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		sets := []string{"updated_at = now()"}
		args := []interface{}{}
		set := func(column string, value interface{}) {
			args = append(args, value)
			sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
		}

		if patch.Title != nil {
			set("title", *patch.Title)
		}
		if patch.Content != nil {
			set("content", *patch.Content)
		}
		if patch.CategoryID != nil {
			set("category_id", *patch.CategoryID)
		}
		if patch.Published != nil {
			set("published", *patch.Published)
		}
		if patch.PublishedAt != nil {
			args = append(args, *patch.PublishedAt)
			sets = append(sets, fmt.Sprintf("published_at = COALESCE(published_at, $%d)", len(args)))
		}
		if patch.Deleted != nil {
			set("deleted", *patch.Deleted)
		}

		args = append(args, id)
		query := "UPDATE posts SET " + strings.Join(sets, ", ") + fmt.Sprintf(" WHERE id = $%d", len(args))

		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}

		if revision != nil {
			revision.PostID = id
			if err := insertRevision(ctx, tx, *revision); err != nil {
				return err
			}
		}

		if patch.ReplaceMeta {
			if _, err := tx.Exec(ctx, "DELETE FROM post_meta WHERE post_id = $1", id); err != nil {
				return err
			}
			if err := insertMeta(ctx, tx, id, patch.Meta); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	post, err := scanFullPost(r.db.QueryRow(ctx, fullPostSelect+" WHERE p.id = $1", id))
	if err != nil {
		return nil, err
	}

	if err := r.loadMeta(ctx, []*model.FullPost{post}); err != nil {
		return nil, err
	}

	return post, nil
}

func (r *postRepo) FindMany(ctx context.Context, filter model.PostFilter, offset int, limit int) ([]*model.FullPost, error) {
	where := []string{"p.deleted = FALSE"}
	args := []interface{}{}
	cond := func(format string, value interface{}) {
		args = append(args, value)
		where = append(where, strings.ReplaceAll(format, "?", fmt.Sprintf("$%d", len(args))))
	}

	if filter.Published != nil {
		cond("p.published = ?", *filter.Published)
	}
	if filter.OwnerID != nil {
		cond("p.author_id = ?", *filter.OwnerID)
	}
	if filter.AuthorID != nil {
		cond("p.author_id = ?", *filter.AuthorID)
	}
	if filter.CategoryID != nil {
		cond("p.category_id = ?", *filter.CategoryID)
	}
	if filter.FeedID != nil {
		cond(`(EXISTS (SELECT 1 FROM post_feeds pf WHERE pf.post_id = p.id AND pf.feed_id = ?)
			OR p.category_id IN (SELECT fc.category_id FROM feed_categories fc WHERE fc.feed_id = ?))`, *filter.FeedID)
	}
	if filter.Query != "" {
		cond("(p.title ILIKE ? OR p.content ILIKE ?)", "%"+escapeLike(filter.Query)+"%")
	}

	args = append(args, limit, offset)
	query := fullPostSelect +
		" WHERE " + strings.Join(where, " AND ") +
		fmt.Sprintf(" ORDER BY p.published_at DESC NULLS LAST, p.id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*model.FullPost
	for rows.Next() {
		post, err := scanFullPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadMeta(ctx, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepo) FindRevisions(ctx context.Context, postID int64) ([]*model.Revision, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, post_id, author_id, category_id, title, content, created_at
		FROM post_revisions
		WHERE post_id = $1
		ORDER BY created_at DESC, id DESC`,
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revisions []*model.Revision
	for rows.Next() {
		var revision model.Revision
		if err := rows.Scan(
			&revision.ID,
			&revision.PostID,
			&revision.AuthorID,
			&revision.CategoryID,
			&revision.Title,
			&revision.Content,
			&revision.CreatedAt,
		); err != nil {
			return nil, err
		}

		revisions = append(revisions, &revision)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return revisions, nil
}

func (r *postRepo) loadMeta(ctx context.Context, posts []*model.FullPost) error {
	if len(posts) == 0 {
		return nil
	}

	byID := make(map[int64]*model.FullPost, len(posts))
	ids := make([]int64, 0, len(posts))
	for _, post := range posts {
		post.Post.Meta = []model.PostMeta{}
		byID[post.Post.ID] = post
		ids = append(ids, post.Post.ID)
	}

	rows, err := r.db.Query(
		ctx,
		"SELECT post_id, name, content FROM post_meta WHERE post_id = ANY($1) ORDER BY post_id, position",
		ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			postID int64
			meta   model.PostMeta
		)
		if err := rows.Scan(&postID, &meta.Name, &meta.Content); err != nil {
			return err
		}

		if post, ok := byID[postID]; ok {
			post.Post.Meta = append(post.Post.Meta, meta)
		}
	}

	return rows.Err()
}

func scanFullPost(row pgx.Row) (*model.FullPost, error) {
	var post model.FullPost
	if err := row.Scan(
		&post.Post.ID,
		&post.Post.AuthorID,
		&post.Post.CategoryID,
		&post.Post.Title,
		&post.Post.Content,
		&post.Post.Published,
		&post.Post.PublishedAt,
		&post.Post.Deleted,
		&post.Post.CreatedAt,
		&post.Post.UpdatedAt,
		&post.Author.ID,
		&post.Author.Email,
		&post.Author.Name,
		&post.Author.Picture,
		&post.Category.ID,
		&post.Category.Name,
		&post.Category.Slug,
		&post.Category.ColorHex,
	); err != nil {
		return nil, err
	}

	return &post, nil
}

func insertRevision(ctx context.Context, tx pgx.Tx, revision model.Revision) error {
	_, err := tx.Exec(
		ctx,
		"INSERT INTO post_revisions(post_id, author_id, category_id, title, content) VALUES($1, $2, $3, $4, $5)",
		revision.PostID,
		revision.AuthorID,
		revision.CategoryID,
		revision.Title,
		revision.Content,
	)
	return err
}

func insertMeta(ctx context.Context, tx pgx.Tx, postID int64, meta []model.PostMeta) error {
	if len(meta) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i, m := range meta {
		batch.Queue(
			"INSERT INTO post_meta(post_id, position, name, content) VALUES($1, $2, $3, $4)",
			postID,
			i,
			m.Name,
			m.Content,
		)
	}

	return tx.SendBatch(ctx, batch).Close()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
