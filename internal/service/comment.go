package service

import (
	"context"
	"errors"
	"strings"

	"github.com/BloggingApp/vanguard/internal/dto"
	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/BloggingApp/vanguard/internal/repository"
	"github.com/BloggingApp/vanguard/pkg/paginator"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type commentService struct {
	logger *zap.Logger
	repo   *repository.Repository
	posts  Post
}

func newCommentService(logger *zap.Logger, repo *repository.Repository, posts Post) Comment {
	return &commentService{
		logger: logger,
		repo:   repo,
		posts:  posts,
	}
}

func (s *commentService) Create(ctx context.Context, actor model.User, postID int64, req dto.CreateCommentRequest) (*model.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		verr := NewValidationError()
		verr.Add("content", "content is required")
		return nil, verr
	}

	if _, err := s.posts.Get(ctx, actor, postID); err != nil {
		return nil, err
	}

	comment, err := s.repo.Postgres.Comment.Create(ctx, model.Comment{
		PostID:   postID,
		AuthorID: actor.ID,
		Content:  content,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) comment on post(%d): %s", actor.ID.String(), postID, err.Error())
		return nil, ErrInternal
	}

	return comment, nil
}

func (s *commentService) FindPostComments(ctx context.Context, actor model.User, postID int64, cursor string) (*paginator.Result[*model.FullComment], error) {
	if _, err := s.posts.Get(ctx, actor, postID); err != nil {
		return nil, err
	}

	result, err := paginator.Paginate[*model.FullComment, int64](ctx, s.repo.Postgres.Comment.FindPostComments, postID, cursor)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) comments: %s", postID, err.Error())
		return nil, ErrInternal
	}

	return result, nil
}

func (s *commentService) FindMany(ctx context.Context, actor model.User, cursor string) (*paginator.Result[*model.FullComment], error) {
	if !actor.Admin {
		return nil, ErrForbidden
	}

	query := func(ctx context.Context, _ struct{}, offset int, limit int) ([]*model.FullComment, error) {
		return s.repo.Postgres.Comment.FindMany(ctx, offset, limit)
	}

	result, err := paginator.Paginate[*model.FullComment, struct{}](ctx, query, struct{}{}, cursor)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find comments: %s", err.Error())
		return nil, ErrInternal
	}

	return result, nil
}

// Delete soft-deletes the comment. Only its author or an admin may do so.
func (s *commentService) Delete(ctx context.Context, actor model.User, id int64) error {
	comment, err := s.repo.Postgres.Comment.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}

		s.logger.Sugar().Errorf("failed to find comment(%d): %s", id, err.Error())
		return ErrInternal
	}

	if comment.Deleted || (!actor.Admin && comment.AuthorID != actor.ID) {
		return ErrNotFound
	}

	if err := s.repo.Postgres.Comment.Delete(ctx, id); err != nil {
		s.logger.Sugar().Errorf("failed to delete comment(%d): %s", id, err.Error())
		return ErrInternal
	}

	return nil
}
