package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotelbook/config"
	"hotelbook/infras/otel"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

const otelScopeName = "mailer"

var ErrNotConfigured = errors.New("smtp relay is not configured")

type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Mailer hands transactional email to the SMTP relay.
type Mailer interface {
	Send(ctx context.Context, message Message) error
}

type smtpMailer struct {
	client      *mail.Client
	fromAddress string
	fromName    string
	otel        otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Mailer {
	smtp := cfg.External.SMTP

	mailer := &smtpMailer{
		fromAddress: smtp.FromAddress,
		fromName:    smtp.FromName,
		otel:        otel,
	}

	if smtp.Host == "" {
		log.Warn().Msg("SMTP host is not configured, emails will not be sent")

		return mailer
	}

	if mailer.fromAddress == "" {
		mailer.fromAddress = smtp.Username
	}

	opts := []mail.Option{
		mail.WithPort(smtp.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}

	if smtp.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(smtp.Username),
			mail.WithPassword(smtp.Password),
		)
	}

	client, err := mail.NewClient(smtp.Host, opts...)
	if err != nil {
		log.Error().Err(err).Str("host", smtp.Host).Msg("Failed to create SMTP client")

		return mailer
	}

	mailer.client = client

	return mailer
}

func (m *smtpMailer) Send(ctx context.Context, message Message) (err error) {
	ctx, scope := m.otel.NewScope(ctx, otelScopeName, otelScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	if m.client == nil {
		return ErrNotConfigured
	}

	msg := mail.NewMsg()

	if err = msg.FromFormat(m.fromName, m.fromAddress); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}

	if err = msg.To(message.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject(message.Subject)
	msg.SetBodyString(mail.TypeTextHTML, message.HTMLBody)

	if err = m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Str("subject", message.Subject).Msg("Email sent")

	return nil
}
