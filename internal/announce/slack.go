package announce

import (
	"context"
	"net/http"

	"github.com/slack-go/slack"
)

type SlackNotifier struct {
	httpClient *http.Client
}

func NewSlackNotifier(httpClient *http.Client) *SlackNotifier {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &SlackNotifier{
		httpClient: httpClient,
	}
}

func (n *SlackNotifier) SendSlack(ctx context.Context, webhookURL string, msg Message) error {
	color := msg.Color
	if color != "" && color[0] != '#' {
		color = "#" + color
	}

	return slack.PostWebhookCustomHTTPContext(ctx, webhookURL, n.httpClient, &slack.WebhookMessage{
		Text: msg.Title,
		Attachments: []slack.Attachment{
			{
				Color:      color,
				Title:      msg.Title,
				TitleLink:  msg.Link,
				Text:       msg.Summary,
				AuthorName: msg.AuthorName,
			},
		},
	})
}
