package announce

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/BloggingApp/vanguard/internal/config"
	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockConfigs struct {
	mock.Mock
}

func (m *mockConfigs) FindEmailConfigs(ctx context.Context, categoryID uuid.UUID) ([]*model.CategoryEmail, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).([]*model.CategoryEmail), args.Error(1)
}

func (m *mockConfigs) FindSlackConfigs(ctx context.Context, categoryID uuid.UUID) ([]*model.CategorySlack, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).([]*model.CategorySlack), args.Error(1)
}

type recordingSender struct {
	mu      sync.Mutex
	targets []string
	fail    map[string]error
}

func (s *recordingSender) record(target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targets = append(s.targets, target)
	return s.fail[target]
}

func (s *recordingSender) SendEmail(ctx context.Context, to string, msg Message) error {
	return s.record(to)
}

func (s *recordingSender) SendSlack(ctx context.Context, webhookURL string, msg Message) error {
	return s.record(webhookURL)
}

func testPost(categoryID uuid.UUID) *model.FullPost {
	name := "Ada"
	return &model.FullPost{
		Post: model.Post{
			ID:         7,
			CategoryID: categoryID,
			Title:      "Release notes",
			Content:    "We shipped **it**.",
			Published:  true,
		},
		Author:   model.UserAuthor{Email: "ada@example.com", Name: &name},
		Category: model.CategoryInfo{ID: categoryID, ColorHex: "ff0000"},
	}
}

func TestAnnounceDeliversEveryChannel(t *testing.T) {
	categoryID := uuid.New()
	configs := new(mockConfigs)
	configs.On("FindEmailConfigs", mock.Anything, categoryID).Return([]*model.CategoryEmail{
		{CategoryID: categoryID, To: "a@example.com"},
		{CategoryID: categoryID, To: "b@example.com"},
	}, nil)
	configs.On("FindSlackConfigs", mock.Anything, categoryID).Return([]*model.CategorySlack{
		{CategoryID: categoryID, WebhookURL: "https://hooks.example.com/1"},
	}, nil)

	sender := &recordingSender{fail: map[string]error{"b@example.com": errors.New("mailbox full")}}
	d := NewDispatcher(zap.NewNop(), configs, sender, sender, config.AnnounceConfig{
		BaseURL:              "https://blog.example.com",
		FallbackSlackWebhook: "https://hooks.example.com/fallback",
	})

	err := d.Announce(context.Background(), testPost(categoryID))
	require.Error(t, err)

	var deliveryErr *ChannelDeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	assert.Equal(t, ChannelEmail, deliveryErr.Channel)
	assert.Equal(t, "b@example.com", deliveryErr.Target)

	assert.ElementsMatch(t, []string{"a@example.com", "b@example.com", "https://hooks.example.com/1"}, sender.targets)
	configs.AssertExpectations(t)
}

func TestAnnounceUsesFallbackWebhookOnlyWithoutSlackConfig(t *testing.T) {
	categoryID := uuid.New()
	configs := new(mockConfigs)
	configs.On("FindEmailConfigs", mock.Anything, categoryID).Return([]*model.CategoryEmail{}, nil)
	configs.On("FindSlackConfigs", mock.Anything, categoryID).Return([]*model.CategorySlack{}, nil)

	sender := &recordingSender{}
	d := NewDispatcher(zap.NewNop(), configs, sender, sender, config.AnnounceConfig{
		FallbackSlackWebhook: "https://hooks.example.com/fallback",
	})

	require.NoError(t, d.Announce(context.Background(), testPost(categoryID)))
	assert.Equal(t, []string{"https://hooks.example.com/fallback"}, sender.targets)
}

func TestAnnounceWithoutChannels(t *testing.T) {
	categoryID := uuid.New()
	configs := new(mockConfigs)
	configs.On("FindEmailConfigs", mock.Anything, categoryID).Return([]*model.CategoryEmail{}, nil)
	configs.On("FindSlackConfigs", mock.Anything, categoryID).Return([]*model.CategorySlack{}, nil)

	sender := &recordingSender{}
	d := NewDispatcher(zap.NewNop(), configs, sender, sender, config.AnnounceConfig{})

	require.NoError(t, d.Announce(context.Background(), testPost(categoryID)))
	assert.Empty(t, sender.targets)
}

func TestSlackNotifierPostsWebhook(t *testing.T) {
	var payload map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &payload)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.Client())
	err := n.SendSlack(context.Background(), srv.URL, Message{
		Title:      "Release notes",
		Summary:    "We shipped it.",
		AuthorName: "Ada",
		Link:       "https://blog.example.com/p/7",
		Color:      "ff0000",
	})
	require.NoError(t, err)

	assert.Equal(t, "Release notes", payload["text"])
	attachments := payload["attachments"].([]interface{})
	require.Len(t, attachments, 1)
	attachment := attachments[0].(map[string]interface{})
	assert.Equal(t, "#ff0000", attachment["color"])
	assert.Equal(t, "https://blog.example.com/p/7", attachment["title_link"])
	assert.Equal(t, "Ada", attachment["author_name"])
}

func TestSlackNotifierReportsHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.Client())
	assert.Error(t, n.SendSlack(context.Background(), srv.URL, Message{Title: "x"}))
}
