package email

import (
	"context"
	"fmt"
	"time"

	"food-delivery-backend/internal/config"

	"github.com/wneessen/go-mail"
)

const smtpTimeout = 15 * time.Second

// SMTPTransport sends messages through an SMTP relay.
type SMTPTransport struct {
	host    string
	from    string
	options []mail.Option
}

func NewSMTPTransport(cfg config.SMTPConfig) *SMTPTransport {
	options := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(smtpTimeout),
	}
	if cfg.User != "" {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.User),
			mail.WithPassword(cfg.Password),
		)
	}
	if cfg.Secure {
		options = append(options, mail.WithSSL())
	} else {
		options = append(options, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	return &SMTPTransport{
		host:    cfg.Host,
		from:    cfg.From,
		options: options,
	}
}

// Send dials a fresh connection per message; mail.Client is not shared between goroutines.
func (t *SMTPTransport) Send(ctx context.Context, msg *Message) error {
	m := mail.NewMsg()
	if err := m.From(t.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)

	client, err := mail.NewClient(t.host, t.options...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp delivery failed: %w", err)
	}
	return nil
}
