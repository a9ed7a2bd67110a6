package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/wneessen/go-mail"

	"cinecraze/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

const fulfilledSubject = "Your Cine Request has been Fulfilled"

// Config holds SMTP configuration.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends requester notifications over SMTP.
type Mailer struct {
	client    *mail.Client
	from      string
	templates *template.Template
	logger    *slog.Logger
}

// New creates a new SMTP mailer.
func New(cfg Config, logger *slog.Logger) (*Mailer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &Mailer{
		client:    client,
		from:      cfg.From,
		templates: templates,
		logger:    logger.With("component", "mailer"),
	}, nil
}

// SendRequestFulfilled renders and sends the fulfillment notification for one
// cine request.
func (m *Mailer) SendRequestFulfilled(ctx context.Context, req *domain.CineRequest) error {
	var body bytes.Buffer
	if err := m.templates.ExecuteTemplate(&body, "request_fulfilled.html", req); err != nil {
		return fmt.Errorf("render email body: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(req.Email); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(fulfilledSubject)
	msg.SetBodyString(mail.TypeTextHTML, body.String())

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	m.logger.Info("sent fulfillment email", "request_id", req.ID)
	return nil
}
