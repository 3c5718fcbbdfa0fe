package service

import (
	"context"

	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/BloggingApp/vanguard/internal/repository"
	"github.com/BloggingApp/vanguard/pkg/emoji"
	"go.uber.org/zap"
)

type reactionService struct {
	logger *zap.Logger
	repo   *repository.Repository
	posts  Post
}

func newReactionService(logger *zap.Logger, repo *repository.Repository, posts Post) Reaction {
	return &reactionService{
		logger: logger,
		repo:   repo,
		posts:  posts,
	}
}

// Toggle adds or removes the actor's reaction and returns +1 or -1.
func (s *reactionService) Toggle(ctx context.Context, actor model.User, postID int64, value string) (int, error) {
	if !emoji.IsEmoji(value) {
		verr := NewValidationError()
		verr.Add("emoji", "must be an emoji")
		return 0, verr
	}

	if _, err := s.posts.Get(ctx, actor, postID); err != nil {
		return 0, err
	}

	delta, err := s.repo.Postgres.Reaction.Toggle(ctx, model.Reaction{
		PostID:   postID,
		AuthorID: actor.ID,
		Emoji:    value,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to toggle user(%s) reaction on post(%d): %s", actor.ID.String(), postID, err.Error())
		return 0, ErrInternal
	}

	return delta, nil
}

// Summary returns reaction totals per post. Every requested post is present
// in the result, with an empty slice when nobody reacted.
func (s *reactionService) Summary(ctx context.Context, actor model.User, postIDs []int64) (map[int64][]*model.ReactionCount, error) {
	summary := make(map[int64][]*model.ReactionCount, len(postIDs))
	for _, id := range postIDs {
		summary[id] = []*model.ReactionCount{}
	}
	if len(postIDs) == 0 {
		return summary, nil
	}

	counts, err := s.repo.Postgres.Reaction.CountByPosts(ctx, postIDs)
	if err != nil {
		s.logger.Sugar().Errorf("failed to count reactions: %s", err.Error())
		return nil, ErrInternal
	}

	own, err := s.repo.Postgres.Reaction.FindUserEmojis(ctx, actor.ID, postIDs)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find user(%s) reactions: %s", actor.ID.String(), err.Error())
		return nil, ErrInternal
	}

	for _, count := range counts {
		if _, ok := summary[count.PostID]; !ok {
			continue
		}
		count.User = own[count.PostID][count.Emoji]
		summary[count.PostID] = append(summary[count.PostID], count)
	}

	return summary, nil
}
