package postgres

import (
	"context"
	"errors"

	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type reactionRepo struct {
	db DBTX
}

func newReactionRepo(db DBTX) Reaction {
	return &reactionRepo{
		db: db,
	}
}

// Toggle adds the reaction, or removes it when the user already reacted to
// the post with the same emoji. It returns +1 or -1 accordingly. The unique
// constraint on (post_id, author_id, emoji) is the only serialization point.
func (r *reactionRepo) Toggle(ctx context.Context, reaction model.Reaction) (int, error) {
	delta := 1
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		err := insertReaction(ctx, tx, reaction)
		if !errors.Is(err, ErrConflict) {
			return err
		}

		delta = -1
		_, err = tx.Exec(
			ctx,
			"DELETE FROM reactions WHERE post_id = $1 AND author_id = $2 AND emoji = $3",
			reaction.PostID,
			reaction.AuthorID,
			reaction.Emoji,
		)
		return err
	})
	if err != nil {
		return 0, err
	}

	return delta, nil
}

func insertReaction(ctx context.Context, tx pgx.Tx, reaction model.Reaction) error {
	tag, err := tx.Exec(
		ctx,
		`INSERT INTO reactions(post_id, author_id, emoji) VALUES($1, $2, $3)
		ON CONFLICT (post_id, author_id, emoji) DO NOTHING`,
		reaction.PostID,
		reaction.AuthorID,
		reaction.Emoji,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrConflict
	}

	return nil
}

func (r *reactionRepo) CountByPosts(ctx context.Context, postIDs []int64) ([]*model.ReactionCount, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT post_id, emoji, COUNT(*)
		FROM reactions
		WHERE post_id = ANY($1)
		GROUP BY post_id, emoji
		ORDER BY post_id, MIN(created_at), emoji`,
		postIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []*model.ReactionCount
	for rows.Next() {
		var count model.ReactionCount
		if err := rows.Scan(&count.PostID, &count.Emoji, &count.Total); err != nil {
			return nil, err
		}
		counts = append(counts, &count)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

func (r *reactionRepo) FindUserEmojis(ctx context.Context, userID uuid.UUID, postIDs []int64) (map[int64]map[string]bool, error) {
	rows, err := r.db.Query(
		ctx,
		"SELECT post_id, emoji FROM reactions WHERE author_id = $1 AND post_id = ANY($2)",
		userID,
		postIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emojis := make(map[int64]map[string]bool)
	for rows.Next() {
		var (
			postID int64
			emoji  string
		)
		if err := rows.Scan(&postID, &emoji); err != nil {
			return nil, err
		}

		if emojis[postID] == nil {
			emojis[postID] = make(map[string]bool)
		}
		emojis[postID][emoji] = true
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return emojis, nil
}
