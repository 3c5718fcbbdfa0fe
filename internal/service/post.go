package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BloggingApp/vanguard/internal/dto"
	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/BloggingApp/vanguard/internal/rabbitmq"
	"github.com/BloggingApp/vanguard/internal/repository"
	"github.com/BloggingApp/vanguard/pkg/paginator"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type postService struct {
	logger    *zap.Logger
	repo      *repository.Repository
	feeds     Feed
	announcer Announcer
	publisher EventPublisher
	now       func() time.Time
}

func newPostService(logger *zap.Logger, repo *repository.Repository, feeds Feed, announcer Announcer, publisher EventPublisher) *postService {
	return &postService{
		logger:    logger,
		repo:      repo,
		feeds:     feeds,
		announcer: announcer,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *postService) Create(ctx context.Context, actor model.User, req dto.CreatePostRequest) (*model.FullPost, error) {
	verr := NewValidationError()

	title := strings.TrimSpace(req.Title)
	if title == "" {
		verr.Add("title", "title is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		verr.Add("content", "content is required")
	}

	if req.CategoryID == nil {
		verr.Add("category_id", "category is required")
	} else {
		category, err := s.findCategory(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		s.validateCategory(verr, actor, category, req.Meta)
	}

	if err := s.validateFeeds(ctx, verr, actor, req.FeedIDs); err != nil {
		return nil, err
	}

	if verr.Any() {
		return nil, verr
	}

	post := model.Post{
		AuthorID:   actor.ID,
		CategoryID: *req.CategoryID,
		Title:      title,
		Content:    req.Content,
		Published:  req.Published,
		Meta:       req.Meta,
	}
	if req.Published {
		publishedAt := s.now()
		post.PublishedAt = &publishedAt
	}

	createdPost, err := s.repo.Postgres.Post.Create(ctx, post, model.NewRevision(post, actor.ID))
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", actor.ID.String(), err.Error())
		return nil, ErrInternal
	}

	fullPost, err := s.findPost(ctx, createdPost.ID)
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, actor, fullPost, req.Published, req.Announce, req.FeedIDs)
	if req.Published {
		s.feeds.InvalidatePost(ctx, fullPost.Post.ID)
	}

	return fullPost, nil
}

func (s *postService) Update(ctx context.Context, actor model.User, id int64, req dto.UpdatePostRequest) (*model.FullPost, error) {
	post, err := s.findEditable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	patch := model.Diff(post.Post, req.PostChangeset, actor, s.now())
	result := patch.Apply(post.Post)

	verr := NewValidationError()
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		verr.Add("title", "title is required")
	}
	if patch.Content != nil && strings.TrimSpace(*patch.Content) == "" {
		verr.Add("content", "content is required")
	}
	if patch.CategoryID != nil || patch.ReplaceMeta {
		category, err := s.findCategory(ctx, result.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil || patch.CategoryID != nil {
			s.validateCategory(verr, actor, category, result.Meta)
		} else {
			addMissingMeta(verr, category, result.Meta)
		}
	}

	if err := s.validateFeeds(ctx, verr, actor, req.FeedIDs); err != nil {
		return nil, err
	}

	if verr.Any() {
		return nil, verr
	}

	if !patch.Empty() {
		var revision *model.Revision
		if patch.NeedsRevision() {
			r := model.NewRevision(result, actor.ID)
			revision = &r
		}

		if err := s.repo.Postgres.Post.Update(ctx, id, patch, revision); err != nil {
			s.logger.Sugar().Errorf("failed to update post(%d): %s", id, err.Error())
			return nil, ErrInternal
		}
	}

	updatedPost, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, actor, updatedPost, patch.Publishes(), req.Announce, req.FeedIDs)
	if !patch.Empty() {
		s.feeds.InvalidatePost(ctx, id)
	}

	return updatedPost, nil
}

func (s *postService) Get(ctx context.Context, actor model.User, id int64) (*model.FullPost, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if !post.VisibleTo(actor) {
		return nil, ErrNotFound
	}

	return post, nil
}

func (s *postService) List(ctx context.Context, actor model.User, filter model.PostFilter, cursor string) (*paginator.Result[*model.FullPost], error) {
	filter.OwnerID = nil
	if !actor.Admin && (filter.Published == nil || !*filter.Published) {
		ownerID := actor.ID
		filter.OwnerID = &ownerID
	}

	result, err := paginator.Paginate[*model.FullPost, model.PostFilter](ctx, s.repo.Postgres.Post.FindMany, filter, cursor)
	if err != nil {
		s.logger.Sugar().Errorf("failed to list posts: %s", err.Error())
		return nil, ErrInternal
	}

	return result, nil
}

// Delete soft-deletes the post. Deleting an already deleted post is a no-op.
func (s *postService) Delete(ctx context.Context, actor model.User, id int64) error {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return err
	}

	if !actor.Admin && post.Post.AuthorID != actor.ID {
		return ErrNotFound
	}

	if post.Post.Deleted {
		return nil
	}

	deleted := true
	if err := s.repo.Postgres.Post.Update(ctx, id, model.PostPatch{Deleted: &deleted}, nil); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%d): %s", id, err.Error())
		return ErrInternal
	}

	s.feeds.InvalidatePost(ctx, id)

	return nil
}

func (s *postService) Revisions(ctx context.Context, actor model.User, id int64) ([]*model.Revision, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}

	revisions, err := s.repo.Postgres.Post.FindRevisions(ctx, id)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) revisions: %s", id, err.Error())
		return nil, ErrInternal
	}

	if revisions == nil {
		revisions = []*model.Revision{}
	}

	return revisions, nil
}

func (s *postService) findPost(ctx context.Context, id int64) (*model.FullPost, error) {
	post, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", id, err.Error())
		return nil, ErrInternal
	}

	return post, nil
}

// findEditable loads the post scoped to actor: admins see every post, others
// only their own non-deleted ones.
func (s *postService) findEditable(ctx context.Context, actor model.User, id int64) (*model.FullPost, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.Admin && (post.Post.AuthorID != actor.ID || post.Post.Deleted) {
		return nil, ErrNotFound
	}

	return post, nil
}

// findCategory returns (nil, nil) for an unknown category.
func (s *postService) findCategory(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := s.repo.Postgres.Category.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		s.logger.Sugar().Errorf("failed to find category(%s): %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	return category, nil
}

func (s *postService) validateCategory(verr *ValidationError, actor model.User, category *model.Category, meta []model.PostMeta) {
	if category == nil {
		verr.Add("category_id", "category does not exist")
		return
	}

	if !category.CanPostIn(actor) {
		verr.Add("category_id", "category is restricted")
		return
	}

	addMissingMeta(verr, category, meta)
}

func addMissingMeta(verr *ValidationError, category *model.Category, meta []model.PostMeta) {
	for _, name := range category.MissingMeta(meta) {
		verr.Add("meta."+name, name+" is required")
	}
}

func (s *postService) validateFeeds(ctx context.Context, verr *ValidationError, actor model.User, feedIDs []uuid.UUID) error {
	err := s.feeds.Validate(ctx, actor, feedIDs)
	if err == nil {
		return nil
	}

	var feedErr *ValidationError
	if errors.As(err, &feedErr) {
		verr.Merge(feedErr)
		return nil
	}

	return err
}

// afterCommit runs the side effects of a stored post. None of them can fail
// the request; failures are logged.
func (s *postService) afterCommit(ctx context.Context, actor model.User, post *model.FullPost, published bool, announce bool, feedIDs []uuid.UUID) {
	if published && announce && s.announcer != nil {
		if err := s.announcer.Announce(ctx, post); err != nil {
			s.logger.Sugar().Errorf("failed to announce post(%d): %s", post.Post.ID, err.Error())
		}
	}

	if len(feedIDs) > 0 {
		if err := s.feeds.Syndicate(ctx, actor, post.Post.ID, feedIDs); err != nil {
			s.logger.Sugar().Errorf("failed to syndicate post(%d): %s", post.Post.ID, err.Error())
		}
	}

	if published && s.publisher != nil {
		msg := dto.MQPostPublishedMsg{
			PostID:     post.Post.ID,
			AuthorID:   post.Post.AuthorID,
			CategoryID: post.Post.CategoryID,
			PostTitle:  post.Post.Title,
		}
		if post.Post.PublishedAt != nil {
			msg.PublishedAt = *post.Post.PublishedAt
		}

		if err := s.publisher.Publish(ctx, rabbitmq.POST_PUBLISHED_QUEUE, msg); err != nil {
			s.logger.Sugar().Errorf("failed to publish post(%d) to queue(%s): %s", post.Post.ID, rabbitmq.POST_PUBLISHED_QUEUE, err.Error())
		}
	}
}
