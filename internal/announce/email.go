package announce

import (
	"bytes"
	"context"
	"html/template"

	"github.com/BloggingApp/vanguard/internal/config"
	"github.com/wneessen/go-mail"
)

var emailTemplate = template.Must(template.New("announcement").Parse(`<h2><a href="{{.Link}}">{{.Title}}</a></h2>
<p>{{.Summary}}</p>
<p>Posted by {{.AuthorName}}. <a href="{{.Link}}">Read more</a></p>
`))

type EmailNotifier struct {
	cfg config.SMTPConfig
}

func NewEmailNotifier(cfg config.SMTPConfig) *EmailNotifier {
	return &EmailNotifier{
		cfg: cfg,
	}
}

func (n *EmailNotifier) SendEmail(ctx context.Context, to string, msg Message) error {
	m := mail.NewMsg()
	if err := m.From(n.cfg.From); err != nil {
		return err
	}
	if err := m.To(to); err != nil {
		return err
	}
	m.Subject(msg.Title)

	var body bytes.Buffer
	if err := emailTemplate.Execute(&body, msg); err != nil {
		return err
	}
	m.SetBodyString(mail.TypeTextHTML, body.String())

	opts := []mail.Option{
		mail.WithPort(n.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if n.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.cfg.Username),
			mail.WithPassword(n.cfg.Password),
		)
	}

	client, err := mail.NewClient(n.cfg.Host, opts...)
	if err != nil {
		return err
	}

	return client.DialAndSendWithContext(ctx, m)
}
