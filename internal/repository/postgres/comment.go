package postgres

import (
	"context"

	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/jackc/pgx/v5"
)

const fullCommentSelect = `SELECT
	c.id, c.post_id, c.author_id, c.content, c.deleted, c.created_at,
	u.id, u.email, u.name, u.picture,
	p.title
	FROM comments c
	JOIN users u ON c.author_id = u.id
	JOIN posts p ON c.post_id = p.id`

type commentRepo struct {
	db DBTX
}

func newCommentRepo(db DBTX) Comment {
	return &commentRepo{
		db: db,
	}
}

func (r *commentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO comments(post_id, author_id, content) VALUES($1, $2, $3) RETURNING id, created_at",
		comment.PostID,
		comment.AuthorID,
		comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt); err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepo) FindByID(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.QueryRow(
		ctx,
		"SELECT id, post_id, author_id, content, deleted, created_at FROM comments WHERE id = $1",
		id,
	).Scan(
		&comment.ID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.Content,
		&comment.Deleted,
		&comment.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepo) FindPostComments(ctx context.Context, postID int64, offset int, limit int) ([]*model.FullComment, error) {
	rows, err := r.db.Query(
		ctx,
		fullCommentSelect+`
		WHERE c.post_id = $1 AND c.deleted = FALSE
		ORDER BY c.created_at, c.id
		LIMIT $2
		OFFSET $3`,
		postID,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}

	return collectFullComments(rows)
}

func (r *commentRepo) FindMany(ctx context.Context, offset int, limit int) ([]*model.FullComment, error) {
	rows, err := r.db.Query(
		ctx,
		fullCommentSelect+`
		WHERE c.deleted = FALSE
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $1
		OFFSET $2`,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}

	return collectFullComments(rows)
}

func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, "UPDATE comments SET deleted = TRUE WHERE id = $1", id)
	return err
}

func collectFullComments(rows pgx.Rows) ([]*model.FullComment, error) {
	defer rows.Close()

	var comments []*model.FullComment
	for rows.Next() {
		var comment model.FullComment
		if err := rows.Scan(
			&comment.Comment.ID,
			&comment.Comment.PostID,
			&comment.Comment.AuthorID,
			&comment.Comment.Content,
			&comment.Comment.Deleted,
			&comment.Comment.CreatedAt,
			&comment.Author.ID,
			&comment.Author.Email,
			&comment.Author.Name,
			&comment.Author.Picture,
			&comment.PostTitle,
		); err != nil {
			return nil, err
		}

		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}
