package mailer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendgridMailer delivers mail through the SendGrid v3 API.
type SendgridMailer struct {
	key    string
	from   *sgmail.Email
	logger zerolog.Logger
}

var _ Mailer = (*SendgridMailer)(nil)

// NewSendgrid constructs a SendGrid-backed mailer.
func NewSendgrid(key, appName, fromAddress string, logger zerolog.Logger) (*SendgridMailer, error) {
	if key == "" {
		return nil, fmt.Errorf("sendgrid api key must be provided")
	}

	return &SendgridMailer{
		key:    key,
		from:   sgmail.NewEmail(appName, fromAddress),
		logger: logger.With().Str("component", "sendgrid_mailer").Logger(),
	}, nil
}

// Send dispatches one message.
func (m *SendgridMailer) Send(ctx context.Context, msg Message) error {
	personalization := sgmail.NewPersonalization()
	personalization.Subject = msg.Subject
	personalization.AddTos(sgmail.NewEmail(msg.ToName, msg.To))

	mail := sgmail.NewV3Mail()
	mail.SetFrom(m.from)
	mail.AddPersonalizations(personalization)
	mail.AddContent(sgmail.NewContent("text/plain", msg.Body))

	request := sendgrid.GetRequest(m.key, sendgridEndpoint, sendgridHost)
	request.Method = http.MethodPost
	request.Body = sgmail.GetRequestBody(mail)

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("sendgrid request failed: %w", err)
	}
	if response.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid rejected message: status %d", response.StatusCode)
	}

	m.logger.Debug().Str("to", msg.To).Str("subject", msg.Subject).Msg("mail dispatched")

	return nil
}

// LogMailer writes messages to the log instead of delivering them. Used in
// development and tests.
type LogMailer struct {
	logger zerolog.Logger
}

var _ Mailer = (*LogMailer)(nil)

// NewLogMailer constructs the logging mailer.
func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger.With().Str("component", "log_mailer").Logger()}
}

// Send logs the message and reports success.
func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.logger.Info().Str("to", msg.To).Str("subject", msg.Subject).Str("body", msg.Body).Msg("mail (not delivered)")
	return nil
}
