package service

import (
	"context"
	"errors"
	"strings"

	"github.com/BloggingApp/vanguard/internal/dto"
	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/BloggingApp/vanguard/internal/repository"
	"github.com/BloggingApp/vanguard/internal/repository/postgres"
	"github.com/BloggingApp/vanguard/internal/repository/redisrepo"
	"github.com/BloggingApp/vanguard/internal/rss"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// rssItemLimit bounds how many of the newest posts a rendered feed carries.
const rssItemLimit = 50

type feedService struct {
	logger *zap.Logger
	repo   *repository.Repository
	cfg    Config
}

func newFeedService(logger *zap.Logger, repo *repository.Repository, cfg Config) *feedService {
	return &feedService{
		logger: logger,
		repo:   repo,
		cfg:    cfg,
	}
}

func (s *feedService) FeedList(ctx context.Context, actor model.User, includeRestricted bool) ([]*model.Feed, error) {
	includeRestricted = includeRestricted && (actor.Admin || actor.CanPostRestricted)

	feeds, err := s.repo.Postgres.Feed.FindMany(ctx, includeRestricted)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find feeds: %s", err.Error())
		return nil, ErrInternal
	}

	if feeds == nil {
		feeds = []*model.Feed{}
	}

	return feeds, nil
}

func (s *feedService) Validate(ctx context.Context, actor model.User, feedIDs []uuid.UUID) error {
	if len(feedIDs) == 0 {
		return nil
	}

	feeds, err := s.FeedList(ctx, actor, true)
	if err != nil {
		return err
	}

	allowed := make(map[uuid.UUID]struct{}, len(feeds))
	for _, feed := range feeds {
		allowed[feed.ID] = struct{}{}
	}

	for _, id := range feedIDs {
		if _, ok := allowed[id]; !ok {
			verr := NewValidationError()
			verr.Add("feed_ids", "feed "+id.String()+" is not available")
			return verr
		}
	}

	return nil
}

func (s *feedService) Syndicate(ctx context.Context, actor model.User, postID int64, feedIDs []uuid.UUID) error {
	if len(feedIDs) == 0 {
		return nil
	}

	if err := s.Validate(ctx, actor, feedIDs); err != nil {
		return err
	}

	if err := s.repo.Postgres.Feed.AttachPost(ctx, postID, feedIDs); err != nil {
		s.logger.Sugar().Errorf("failed to attach post(%d) to feeds: %s", postID, err.Error())
		return ErrInternal
	}

	s.dropRendered(ctx, feedIDs)

	return nil
}

// CreateFeed stores a new feed. Admin only.
func (s *feedService) CreateFeed(ctx context.Context, actor model.User, req dto.CreateFeedRequest) (*model.Feed, error) {
	if !actor.Admin {
		return nil, ErrForbidden
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		verr := NewValidationError()
		verr.Add("name", "name is required")
		return nil, verr
	}

	feed, err := s.repo.Postgres.Feed.Create(ctx, model.Feed{
		Name:        name,
		Restricted:  req.Restricted,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		if errors.Is(err, postgres.ErrUnknownReference) {
			verr := NewValidationError()
			verr.Add("category_ids", "unknown category")
			return nil, verr
		}

		s.logger.Sugar().Errorf("failed to create feed(%s): %s", name, err.Error())
		return nil, ErrInternal
	}

	return feed, nil
}

// UpdateFeed changes the feed's name, restricted flag, deleted flag or
// member categories, then drops its rendered RSS. Admin only.
func (s *feedService) UpdateFeed(ctx context.Context, actor model.User, id uuid.UUID, changeset model.FeedChangeset) (*model.Feed, error) {
	if !actor.Admin {
		return nil, ErrForbidden
	}

	if changeset.Name != nil {
		name := strings.TrimSpace(*changeset.Name)
		if name == "" {
			verr := NewValidationError()
			verr.Add("name", "name is required")
			return nil, verr
		}
		changeset.Name = &name
	}

	if !changeset.Empty() {
		if err := s.repo.Postgres.Feed.Update(ctx, id, changeset); err != nil {
			switch {
			case errors.Is(err, pgx.ErrNoRows):
				return nil, ErrNotFound
			case errors.Is(err, postgres.ErrUnknownReference):
				verr := NewValidationError()
				verr.Add("category_ids", "unknown category")
				return nil, verr
			}

			s.logger.Sugar().Errorf("failed to update feed(%s): %s", id.String(), err.Error())
			return nil, ErrInternal
		}

		s.dropRendered(ctx, []uuid.UUID{id})
	}

	feed, err := s.repo.Postgres.Feed.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		s.logger.Sugar().Errorf("failed to find feed(%s): %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	return feed, nil
}

// InvalidatePost drops the rendered RSS of every feed listing the post.
// Failures are logged only.
func (s *feedService) InvalidatePost(ctx context.Context, postID int64) {
	feedIDs, err := s.repo.Postgres.Feed.FindPostFeedIDs(ctx, postID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find feeds of post(%d): %s", postID, err.Error())
		return
	}

	s.dropRendered(ctx, feedIDs)
}

func (s *feedService) dropRendered(ctx context.Context, feedIDs []uuid.UUID) {
	if len(feedIDs) == 0 {
		return
	}

	keys := make([]string, 0, len(feedIDs))
	for _, id := range feedIDs {
		keys = append(keys, redisrepo.FeedRSSKey(id.String()))
	}
	if err := s.repo.Redis.Default.Del(ctx, keys...).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete rendered feeds from redis: %s", err.Error())
	}
}

func (s *feedService) GetFeed(ctx context.Context, id uuid.UUID) (*model.Feed, error) {
	feed, err := s.repo.Postgres.Feed.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		s.logger.Sugar().Errorf("failed to find feed(%s): %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	if feed.Deleted {
		return nil, ErrNotFound
	}

	return feed, nil
}

// RenderRSS returns the feed's RSS document, served from redis when a
// rendering younger than the browser TTL exists.
func (s *feedService) RenderRSS(ctx context.Context, id uuid.UUID) ([]byte, error) {
	feed, err := s.GetFeed(ctx, id)
	if err != nil {
		return nil, err
	}

	key := redisrepo.FeedRSSKey(id.String())
	cached, err := redisrepo.GetBytes(s.repo.Redis.Default, ctx, key)
	if err == nil {
		return cached, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get rendered feed(%s) from redis: %s", id.String(), err.Error())
	}

	published := true
	filter := model.PostFilter{Published: &published, FeedID: &feed.ID}
	posts, err := s.repo.Postgres.Post.FindMany(ctx, filter, 0, rssItemLimit)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find posts of feed(%s): %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	doc, err := rss.Render(feed, posts, s.cfg.BaseURL)
	if err != nil {
		s.logger.Sugar().Errorf("failed to render feed(%s): %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.Set(ctx, key, doc, rss.BrowserTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set rendered feed(%s) in redis: %s", id.String(), err.Error())
	}

	return doc, nil
}

