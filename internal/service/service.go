package service

import (
	"context"

	"github.com/BloggingApp/vanguard/internal/dto"
	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/BloggingApp/vanguard/internal/rabbitmq"
	"github.com/BloggingApp/vanguard/internal/repository"
	"github.com/BloggingApp/vanguard/pkg/paginator"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Announcer delivers a published post to its category's channels.
type Announcer interface {
	Announce(ctx context.Context, post *model.FullPost) error
}

type EventPublisher interface {
	Publish(ctx context.Context, queue string, msg interface{}) error
}

type MessageQueue interface {
	EventPublisher
	Consume(queue string) (<-chan amqp.Delivery, error)
}

type Post interface {
	Create(ctx context.Context, actor model.User, req dto.CreatePostRequest) (*model.FullPost, error)
	Update(ctx context.Context, actor model.User, id int64, req dto.UpdatePostRequest) (*model.FullPost, error)
	Get(ctx context.Context, actor model.User, id int64) (*model.FullPost, error)
	List(ctx context.Context, actor model.User, filter model.PostFilter, cursor string) (*paginator.Result[*model.FullPost], error)
	Delete(ctx context.Context, actor model.User, id int64) error
	Revisions(ctx context.Context, actor model.User, id int64) ([]*model.Revision, error)
}

type Reaction interface {
	Toggle(ctx context.Context, actor model.User, postID int64, emoji string) (int, error)
	Summary(ctx context.Context, actor model.User, postIDs []int64) (map[int64][]*model.ReactionCount, error)
}

type Feed interface {
	FeedList(ctx context.Context, actor model.User, includeRestricted bool) ([]*model.Feed, error)
	Validate(ctx context.Context, actor model.User, feedIDs []uuid.UUID) error
	Syndicate(ctx context.Context, actor model.User, postID int64, feedIDs []uuid.UUID) error
	GetFeed(ctx context.Context, id uuid.UUID) (*model.Feed, error)
	RenderRSS(ctx context.Context, id uuid.UUID) ([]byte, error)
	CreateFeed(ctx context.Context, actor model.User, req dto.CreateFeedRequest) (*model.Feed, error)
	UpdateFeed(ctx context.Context, actor model.User, id uuid.UUID, changeset model.FeedChangeset) (*model.Feed, error)
	InvalidatePost(ctx context.Context, postID int64)
}

type Category interface {
	Create(ctx context.Context, actor model.User, req dto.CreateCategoryRequest) (*model.Category, error)
	FindMany(ctx context.Context, actor model.User) ([]*model.Category, error)
}

type User interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindOrCreate(ctx context.Context, claimed model.User) (*model.User, error)
	Update(ctx context.Context, actor model.User, id uuid.UUID, changeset model.UserChangeset) (*model.User, error)
}

type Comment interface {
	Create(ctx context.Context, actor model.User, postID int64, req dto.CreateCommentRequest) (*model.Comment, error)
	FindPostComments(ctx context.Context, actor model.User, postID int64, cursor string) (*paginator.Result[*model.FullComment], error)
	FindMany(ctx context.Context, actor model.User, cursor string) (*paginator.Result[*model.FullComment], error)
	Delete(ctx context.Context, actor model.User, id int64) error
}

type Config struct {
	BaseURL string
}

type Service struct {
	Post
	Reaction
	Feed
	Category
	User
	Comment

	logger *zap.Logger
	users  *userService
	mq     MessageQueue
}

func New(logger *zap.Logger, repo *repository.Repository, announcer Announcer, mq MessageQueue, cfg Config) *Service {
	feed := newFeedService(logger, repo, cfg)
	posts := newPostService(logger, repo, feed, announcer, mq)
	users := newUserService(logger, repo)

	return &Service{
		Post:     posts,
		Reaction: newReactionService(logger, repo, posts),
		Feed:     feed,
		Category: newCategoryService(logger, repo),
		User:     users,
		Comment:  newCommentService(logger, repo, posts),
		logger:   logger,
		users:    users,
		mq:       mq,
	}
}

// StartConsumeAll blocks consuming every queue the service listens to.
func (s *Service) StartConsumeAll(ctx context.Context) {
	queue := rabbitmq.USER_INFO_UPDATED_QUEUE
	msgs, err := s.mq.Consume(queue)
	if err != nil {
		s.logger.Sugar().Errorf("failed to start consume updates from queue(%s): %s", queue, err.Error())
		return
	}

	s.users.consumeUserUpdates(ctx, msgs)
}
