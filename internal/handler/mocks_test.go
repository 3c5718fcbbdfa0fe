package handler

import (
	"context"

	"github.com/BloggingApp/vanguard/internal/dto"
	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/BloggingApp/vanguard/pkg/paginator"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) FindOrCreate(ctx context.Context, claimed model.User) (*model.User, error) {
	args := m.Called(ctx, claimed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, actor model.User, id uuid.UUID, changeset model.UserChangeset) (*model.User, error) {
	args := m.Called(ctx, actor, id, changeset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockReactionService struct {
	mock.Mock
}

func (m *MockReactionService) Toggle(ctx context.Context, actor model.User, postID int64, emoji string) (int, error) {
	args := m.Called(ctx, actor, postID, emoji)
	return args.Int(0), args.Error(1)
}

func (m *MockReactionService) Summary(ctx context.Context, actor model.User, postIDs []int64) (map[int64][]*model.ReactionCount, error) {
	args := m.Called(ctx, actor, postIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]*model.ReactionCount), args.Error(1)
}

type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) FeedList(ctx context.Context, actor model.User, includeRestricted bool) ([]*model.Feed, error) {
	args := m.Called(ctx, actor, includeRestricted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Feed), args.Error(1)
}

func (m *MockFeedService) Validate(ctx context.Context, actor model.User, feedIDs []uuid.UUID) error {
	args := m.Called(ctx, actor, feedIDs)
	return args.Error(0)
}

func (m *MockFeedService) Syndicate(ctx context.Context, actor model.User, postID int64, feedIDs []uuid.UUID) error {
	args := m.Called(ctx, actor, postID, feedIDs)
	return args.Error(0)
}

func (m *MockFeedService) GetFeed(ctx context.Context, id uuid.UUID) (*model.Feed, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Feed), args.Error(1)
}

func (m *MockFeedService) RenderRSS(ctx context.Context, id uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockFeedService) CreateFeed(ctx context.Context, actor model.User, req dto.CreateFeedRequest) (*model.Feed, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Feed), args.Error(1)
}

func (m *MockFeedService) UpdateFeed(ctx context.Context, actor model.User, id uuid.UUID, changeset model.FeedChangeset) (*model.Feed, error) {
	args := m.Called(ctx, actor, id, changeset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Feed), args.Error(1)
}

func (m *MockFeedService) InvalidatePost(ctx context.Context, postID int64) {
	m.Called(ctx, postID)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) Create(ctx context.Context, actor model.User, req dto.CreatePostRequest) (*model.FullPost, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FullPost), args.Error(1)
}

func (m *MockPostService) Update(ctx context.Context, actor model.User, id int64, req dto.UpdatePostRequest) (*model.FullPost, error) {
	args := m.Called(ctx, actor, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FullPost), args.Error(1)
}

func (m *MockPostService) Get(ctx context.Context, actor model.User, id int64) (*model.FullPost, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FullPost), args.Error(1)
}

func (m *MockPostService) List(ctx context.Context, actor model.User, filter model.PostFilter, cursor string) (*paginator.Result[*model.FullPost], error) {
	args := m.Called(ctx, actor, filter, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paginator.Result[*model.FullPost]), args.Error(1)
}

func (m *MockPostService) Delete(ctx context.Context, actor model.User, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockPostService) Revisions(ctx context.Context, actor model.User, id int64) ([]*model.Revision, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Revision), args.Error(1)
}
