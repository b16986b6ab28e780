package aws

import (
	"context"
	"fmt"
	netmail "net/mail"

	"bookingapi/src/config"
	"bookingapi/src/lib"
	"bookingapi/src/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer sends mail through the SES SendEmail API.
type SESMailer struct {
	client SESAPI
	cfg    config.MailConfig
	log    logger.Logger
}

func NewSESMailer(client SESAPI, cfg config.MailConfig, log logger.Logger) *SESMailer {
	return &SESMailer{client: client, cfg: cfg, log: log}
}

func (m *SESMailer) Send(ctx context.Context, input *lib.SendMailInput) error {
	if len(input.To) == 0 {
		return lib.ErrNoRecipients
	}
	out, err := m.client.SendEmail(ctx, m.sendEmailInput(input))
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	m.log.Debug("sent email", "message_id", aws.ToString(out.MessageId))
	return nil
}

func (m *SESMailer) sendEmailInput(input *lib.SendMailInput) *ses.SendEmailInput {
	from, fromName := input.From, input.FromName
	if from == "" {
		from = m.cfg.From
	}
	if fromName == "" {
		fromName = m.cfg.FromName
	}
	source := (&netmail.Address{Name: fromName, Address: from}).String()

	content := &types.Content{Data: aws.String(input.Body), Charset: aws.String("UTF-8")}
	body := &types.Body{}
	if input.Html {
		body.Html = content
	} else {
		body.Text = content
	}

	params := &ses.SendEmailInput{
		Source: aws.String(source),
		Destination: &types.Destination{
			ToAddresses:  input.To,
			CcAddresses:  input.Cc,
			BccAddresses: input.Bcc,
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(input.Subject), Charset: aws.String("UTF-8")},
			Body:    body,
		},
	}
	if input.ReplyTo != "" {
		params.ReplyToAddresses = []string{input.ReplyTo}
	}
	return params
}
