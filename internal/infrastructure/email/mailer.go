package email

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"food-delivery-backend/internal/config"
	"food-delivery-backend/internal/logger"
	"food-delivery-backend/internal/metrics"

	"go.uber.org/zap"
)

// Message is a rendered email ready for a transport.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
	Link    string
}

// Transport delivers a rendered message.
type Transport interface {
	Send(ctx context.Context, msg *Message) error
}

// Mailer renders account emails and hands them to a transport.
type Mailer struct {
	transport   Transport
	appName     string
	frontendURL string
	now         func() time.Time
}

func NewMailer(transport Transport, appName, frontendURL string) *Mailer {
	return &Mailer{
		transport:   transport,
		appName:     appName,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		now:         time.Now,
	}
}

func (m *Mailer) SendVerificationEmail(ctx context.Context, to, name, token string) error {
	link := m.link("/verify-email", token)
	msg, err := render(verificationTemplate, templateData{
		AppName: m.appName,
		Name:    name,
		Link:    link,
		Year:    m.now().Year(),
	})
	if err != nil {
		return err
	}

	msg.To = to
	msg.Subject = fmt.Sprintf("Verify Your %s Account", m.appName)
	msg.Link = link
	return m.send(ctx, msg, "verification")
}

func (m *Mailer) SendPasswordResetEmail(ctx context.Context, to, name, token string) error {
	link := m.link("/reset-password", token)
	msg, err := render(passwordResetTemplate, templateData{
		AppName: m.appName,
		Name:    name,
		Link:    link,
		Year:    m.now().Year(),
	})
	if err != nil {
		return err
	}

	msg.To = to
	msg.Subject = fmt.Sprintf("Reset Your %s Password", m.appName)
	msg.Link = link
	return m.send(ctx, msg, "password_reset")
}

func (m *Mailer) send(ctx context.Context, msg *Message, kind string) error {
	err := m.transport.Send(ctx, msg)
	metrics.RecordEmail(kind, err == nil)
	if err != nil {
		logger.Error("Failed to send email",
			zap.String("to", msg.To),
			zap.String("kind", kind),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}

	logger.Info("Email sent",
		zap.String("to", msg.To),
		zap.String("kind", kind),
	)
	return nil
}

func (m *Mailer) link(path, token string) string {
	return m.frontendURL + path + "?token=" + url.QueryEscape(token)
}

// New builds a Mailer with the transport the configuration asks for.
func New(cfg *config.Config) *Mailer {
	var transport Transport
	if cfg.UseConsoleMailer() {
		logger.Info("SMTP not configured or development mode, emails will be logged",
			zap.String("environment", cfg.Server.Environment),
		)
		transport = NewConsoleTransport()
	} else {
		transport = NewSMTPTransport(cfg.SMTP)
	}
	return NewMailer(transport, cfg.App.Name, cfg.App.FrontendURL)
}
