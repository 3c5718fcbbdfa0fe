// Package announce fans a freshly published post out to the email and Slack
// channels configured for its category.
package announce

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/BloggingApp/vanguard/internal/config"
	"github.com/BloggingApp/vanguard/internal/model"
	"github.com/BloggingApp/vanguard/internal/rss"
	"github.com/BloggingApp/vanguard/pkg/markup"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ChannelEmail = "email"
	ChannelSlack = "slack"
)

// Message is what every channel receives for a post.
type Message struct {
	Title      string
	Summary    string
	AuthorName string
	Link       string
	Color      string
}

type EmailSender interface {
	SendEmail(ctx context.Context, to string, msg Message) error
}

type SlackSender interface {
	SendSlack(ctx context.Context, webhookURL string, msg Message) error
}

type ChannelConfigs interface {
	FindEmailConfigs(ctx context.Context, categoryID uuid.UUID) ([]*model.CategoryEmail, error)
	FindSlackConfigs(ctx context.Context, categoryID uuid.UUID) ([]*model.CategorySlack, error)
}

// ChannelDeliveryError reports a single failed delivery.
type ChannelDeliveryError struct {
	Channel string
	Target  string
	Err     error
}

func (e *ChannelDeliveryError) Error() string {
	return fmt.Sprintf("%s delivery to %s failed: %s", e.Channel, e.Target, e.Err.Error())
}

func (e *ChannelDeliveryError) Unwrap() error {
	return e.Err
}

type Dispatcher struct {
	logger  *zap.Logger
	configs ChannelConfigs
	email   EmailSender
	slack   SlackSender
	cfg     config.AnnounceConfig
}

func NewDispatcher(logger *zap.Logger, configs ChannelConfigs, email EmailSender, slack SlackSender, cfg config.AnnounceConfig) *Dispatcher {
	return &Dispatcher{
		logger:  logger,
		configs: configs,
		email:   email,
		slack:   slack,
		cfg:     cfg,
	}
}

type delivery struct {
	channel string
	target  string
	send    func(ctx context.Context) error
}

// Announce delivers the post to every configured channel concurrently. Each
// failure is returned as a *ChannelDeliveryError joined with the others;
// successful deliveries are not affected by failed ones.
func (d *Dispatcher) Announce(ctx context.Context, post *model.FullPost) error {
	categoryID := post.Post.CategoryID

	emails, err := d.configs.FindEmailConfigs(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("find email configs for category(%s): %w", categoryID.String(), err)
	}

	slacks, err := d.configs.FindSlackConfigs(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("find slack configs for category(%s): %w", categoryID.String(), err)
	}

	if len(slacks) == 0 && d.cfg.FallbackSlackWebhook != "" {
		slacks = []*model.CategorySlack{{CategoryID: categoryID, WebhookURL: d.cfg.FallbackSlackWebhook}}
	}

	if len(emails) == 0 && len(slacks) == 0 {
		return nil
	}

	msg, err := d.message(post)
	if err != nil {
		return err
	}

	var deliveries []delivery
	for _, e := range emails {
		to := e.To
		deliveries = append(deliveries, delivery{
			channel: ChannelEmail,
			target:  to,
			send: func(ctx context.Context) error {
				return d.email.SendEmail(ctx, to, msg)
			},
		})
	}
	for _, s := range slacks {
		webhookURL := s.WebhookURL
		deliveries = append(deliveries, delivery{
			channel: ChannelSlack,
			target:  webhookURL,
			send: func(ctx context.Context) error {
				return d.slack.SendSlack(ctx, webhookURL, msg)
			},
		})
	}

	errs := make([]error, len(deliveries))
	var wg sync.WaitGroup
	for i, dl := range deliveries {
		wg.Add(1)
		go func(i int, dl delivery) {
			defer wg.Done()
			if err := dl.send(ctx); err != nil {
				errs[i] = &ChannelDeliveryError{Channel: dl.channel, Target: dl.target, Err: err}
				d.logger.Error(
					"failed to announce post",
					zap.Int64("post_id", post.Post.ID),
					zap.String("channel", dl.channel),
					zap.String("target", dl.target),
					zap.Error(err),
				)
			}
		}(i, dl)
	}
	wg.Wait()

	return errors.Join(errs...)
}

func (d *Dispatcher) message(post *model.FullPost) (Message, error) {
	summary, err := markup.Summarize(post.Post.Content, markup.DefaultSummaryLength)
	if err != nil {
		return Message{}, fmt.Errorf("summarize post(%d): %w", post.Post.ID, err)
	}

	return Message{
		Title:      post.Post.Title,
		Summary:    summary,
		AuthorName: post.Author.DisplayName(),
		Link:       rss.PostLink(d.cfg.BaseURL, post.Post.ID),
		Color:      post.Category.ColorHex,
	}, nil
}
