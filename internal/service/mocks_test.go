package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/BloggingApp/vanguard/internal/repository"
	"github.com/BloggingApp/vanguard/internal/repository/postgres"
	"github.com/BloggingApp/vanguard/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post model.Post, revision model.Revision) (*model.Post, error) {
	args := m.Called(ctx, post, revision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, id int64, patch model.PostPatch, revision *model.Revision) error {
	args := m.Called(ctx, id, patch, revision)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FullPost), args.Error(1)
}

func (m *MockPostRepository) FindMany(ctx context.Context, filter model.PostFilter, offset int, limit int) ([]*model.FullPost, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.FullPost), args.Error(1)
}

func (m *MockPostRepository) FindRevisions(ctx context.Context, postID int64) ([]*model.Revision, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Revision), args.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category model.Category, emails []model.CategoryEmail, slack []model.CategorySlack) (*model.Category, error) {
	args := m.Called(ctx, category, emails, slack)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindMany(ctx context.Context, includeRestricted bool) ([]*model.Category, error) {
	args := m.Called(ctx, includeRestricted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindEmailConfigs(ctx context.Context, categoryID uuid.UUID) ([]*model.CategoryEmail, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).([]*model.CategoryEmail), args.Error(1)
}

func (m *MockCategoryRepository) FindSlackConfigs(ctx context.Context, categoryID uuid.UUID) ([]*model.CategorySlack, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).([]*model.CategorySlack), args.Error(1)
}

type MockFeedRepository struct {
	mock.Mock
}

func (m *MockFeedRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Feed, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Feed), args.Error(1)
}

func (m *MockFeedRepository) FindMany(ctx context.Context, includeRestricted bool) ([]*model.Feed, error) {
	args := m.Called(ctx, includeRestricted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Feed), args.Error(1)
}

func (m *MockFeedRepository) AttachPost(ctx context.Context, postID int64, feedIDs []uuid.UUID) error {
	args := m.Called(ctx, postID, feedIDs)
	return args.Error(0)
}

func (m *MockFeedRepository) Create(ctx context.Context, feed model.Feed) (*model.Feed, error) {
	args := m.Called(ctx, feed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Feed), args.Error(1)
}

func (m *MockFeedRepository) Update(ctx context.Context, id uuid.UUID, changeset model.FeedChangeset) error {
	args := m.Called(ctx, id, changeset)
	return args.Error(0)
}

func (m *MockFeedRepository) FindPostFeedIDs(ctx context.Context, postID int64) ([]uuid.UUID, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Upsert(ctx context.Context, user model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	args := m.Called(ctx, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id int64) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindPostComments(ctx context.Context, postID int64, offset int, limit int) ([]*model.FullComment, error) {
	args := m.Called(ctx, postID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.FullComment), args.Error(1)
}

func (m *MockCommentRepository) FindMany(ctx context.Context, offset int, limit int) ([]*model.FullComment, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.FullComment), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAnnouncer struct {
	mock.Mock
}

func (m *MockAnnouncer) Announce(ctx context.Context, post *model.FullPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, queue string, msg interface{}) error {
	args := m.Called(ctx, queue, msg)
	return args.Error(0)
}

type reactionKey struct {
	postID   int64
	authorID uuid.UUID
	emoji    string
}

// memoryReactions emulates the unique (post, author, emoji) constraint.
type memoryReactions struct {
	mu   sync.Mutex
	rows map[reactionKey]time.Time
}

func newMemoryReactions() *memoryReactions {
	return &memoryReactions{rows: make(map[reactionKey]time.Time)}
}

func (r *memoryReactions) Toggle(ctx context.Context, reaction model.Reaction) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := reactionKey{reaction.PostID, reaction.AuthorID, reaction.Emoji}
	if _, ok := r.rows[key]; ok {
		delete(r.rows, key)
		return -1, nil
	}
	r.rows[key] = time.Now()
	return 1, nil
}

func (r *memoryReactions) CountByPosts(ctx context.Context, postIDs []int64) ([]*model.ReactionCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[int64]bool, len(postIDs))
	for _, id := range postIDs {
		wanted[id] = true
	}

	totals := make(map[int64]map[string]int64)
	var order []reactionKey
	for key := range r.rows {
		if !wanted[key.postID] {
			continue
		}
		if totals[key.postID] == nil {
			totals[key.postID] = make(map[string]int64)
		}
		if totals[key.postID][key.emoji] == 0 {
			order = append(order, reactionKey{postID: key.postID, emoji: key.emoji})
		}
		totals[key.postID][key.emoji]++
	}

	var counts []*model.ReactionCount
	for _, key := range order {
		counts = append(counts, &model.ReactionCount{PostID: key.postID, Emoji: key.emoji, Total: totals[key.postID][key.emoji]})
	}
	return counts, nil
}

func (r *memoryReactions) FindUserEmojis(ctx context.Context, userID uuid.UUID, postIDs []int64) (map[int64]map[string]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	emojis := make(map[int64]map[string]bool)
	for key := range r.rows {
		if key.authorID != userID {
			continue
		}
		if emojis[key.postID] == nil {
			emojis[key.postID] = make(map[string]bool)
		}
		emojis[key.postID][key.emoji] = true
	}
	return emojis, nil
}

func (r *memoryReactions) count(postID int64, authorID uuid.UUID, emoji string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[reactionKey{postID, authorID, emoji}]; ok {
		return 1
	}
	return 0
}

// memoryRedis is a redisrepo.Default backed by a map; TTLs are ignored.
type memoryRedis struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryRedis() *memoryRedis {
	return &memoryRedis{values: make(map[string]string)}
}

func (r *memoryRedis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch v := value.(type) {
	case []byte:
		r.values[key] = string(v)
	case string:
		r.values[key] = v
	default:
		panic("unsupported value type")
	}
	return nil
}

func (r *memoryRedis) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.Set(ctx, key, data, ttl)
}

func (r *memoryRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, ok := r.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (r *memoryRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, key := range keys {
		if _, ok := r.values[key]; ok {
			delete(r.values, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (r *memoryRedis) has(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.values[key]
	return ok
}

type testRepos struct {
	posts      *MockPostRepository
	categories *MockCategoryRepository
	feeds      *MockFeedRepository
	users      *MockUserRepository
	comments   *MockCommentRepository
	reactions  *memoryReactions
	redis      *memoryRedis
}

func newTestRepository() (*repository.Repository, *testRepos) {
	mocks := &testRepos{
		posts:      new(MockPostRepository),
		categories: new(MockCategoryRepository),
		feeds:      new(MockFeedRepository),
		users:      new(MockUserRepository),
		comments:   new(MockCommentRepository),
		reactions:  newMemoryReactions(),
		redis:      newMemoryRedis(),
	}

	repo := &repository.Repository{
		Postgres: &postgres.PostgresRepository{
			Post:     mocks.posts,
			Category: mocks.categories,
			Reaction: mocks.reactions,
			Feed:     mocks.feeds,
			User:     mocks.users,
			Comment:  mocks.comments,
		},
		Redis: &redisrepo.RedisRepository{
			Default: mocks.redis,
		},
	}

	return repo, mocks
}
