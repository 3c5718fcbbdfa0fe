package postgres

import (
	"context"

	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the part of *pgxpool.Pool the repositories use.
type DBTX interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// withTx runs fn in a transaction, committing when fn succeeds.
func withTx(ctx context.Context, db DBTX, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}

type Post interface {
	Create(ctx context.Context, post model.Post, revision model.Revision) (*model.Post, error)
	Update(ctx context.Context, id int64, patch model.PostPatch, revision *model.Revision) error
	FindByID(ctx context.Context, id int64) (*model.FullPost, error)
	FindMany(ctx context.Context, filter model.PostFilter, offset int, limit int) ([]*model.FullPost, error)
	FindRevisions(ctx context.Context, postID int64) ([]*model.Revision, error)
}

type Category interface {
	Create(ctx context.Context, category model.Category, emails []model.CategoryEmail, slack []model.CategorySlack) (*model.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	FindMany(ctx context.Context, includeRestricted bool) ([]*model.Category, error)
	FindEmailConfigs(ctx context.Context, categoryID uuid.UUID) ([]*model.CategoryEmail, error)
	FindSlackConfigs(ctx context.Context, categoryID uuid.UUID) ([]*model.CategorySlack, error)
}

type Reaction interface {
	Toggle(ctx context.Context, reaction model.Reaction) (int, error)
	CountByPosts(ctx context.Context, postIDs []int64) ([]*model.ReactionCount, error)
	FindUserEmojis(ctx context.Context, userID uuid.UUID, postIDs []int64) (map[int64]map[string]bool, error)
}

type Feed interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Feed, error)
	FindMany(ctx context.Context, includeRestricted bool) ([]*model.Feed, error)
	AttachPost(ctx context.Context, postID int64, feedIDs []uuid.UUID) error
	Create(ctx context.Context, feed model.Feed) (*model.Feed, error)
	Update(ctx context.Context, id uuid.UUID, changeset model.FeedChangeset) error
	FindPostFeedIDs(ctx context.Context, postID int64) ([]uuid.UUID, error)
}

type User interface {
	Upsert(ctx context.Context, user model.User) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	FindByID(ctx context.Context, id int64) (*model.Comment, error)
	FindPostComments(ctx context.Context, postID int64, offset int, limit int) ([]*model.FullComment, error)
	FindMany(ctx context.Context, offset int, limit int) ([]*model.FullComment, error)
	Delete(ctx context.Context, id int64) error
}

type PostgresRepository struct {
	Post
	Category
	Reaction
	Feed
	User
	Comment
}

func New(db DBTX) *PostgresRepository {
	return &PostgresRepository{
		Post:     newPostRepo(db),
		Category: newCategoryRepo(db),
		Reaction: newReactionRepo(db),
		Feed:     newFeedRepo(db),
		User:     newUserRepo(db),
		Comment:  newCommentRepo(db),
	}
}
