package service

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// SMTPConfig holds the SMTP relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	TLSMode  string
	Username string
	Password string
	From     string
	Subject  string
	Timeout  time.Duration
}

// SMTPGateway delivers messages through an SMTP relay using go-mail.
// Every Send opens its own connection, so the gateway is safe for concurrent use.
type SMTPGateway struct {
	config SMTPConfig
}

// NewSMTPGateway validates the configuration and creates an SMTPGateway.
func NewSMTPGateway(config SMTPConfig) (*SMTPGateway, error) {
	if config.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if config.From == "" {
		return nil, fmt.Errorf("smtp sender is required")
	}
	switch config.TLSMode {
	case TLSModeSSL, TLSModeStartTLS, TLSModeNone:
	default:
		return nil, fmt.Errorf("unsupported smtp tls mode: %q", config.TLSMode)
	}
	return &SMTPGateway{config: config}, nil
}

// Send performs one delivery attempt of body to recipient.
func (g *SMTPGateway) Send(ctx context.Context, recipient, body string) error {
	m, err := g.buildMessage(recipient, body)
	if err != nil {
		return err
	}

	c, err := g.newClient()
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

func (g *SMTPGateway) buildMessage(recipient, body string) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(g.config.From); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(recipient); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", recipient, err)
	}
	m.Subject(g.config.Subject)
	m.SetBodyString(mail.TypeTextPlain, body)
	return m, nil
}

func (g *SMTPGateway) newClient() (*mail.Client, error) {
	opts := []mail.Option{mail.WithPort(g.config.Port)}

	if g.config.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(g.config.Timeout))
	}

	if g.config.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(g.config.Username),
			mail.WithPassword(g.config.Password),
		)
	}

	switch g.config.TLSMode {
	case TLSModeSSL:
		opts = append(opts, mail.WithSSL())
	case TLSModeStartTLS:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	default:
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	return mail.NewClient(g.config.Host, opts...)
}
