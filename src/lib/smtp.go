package lib

import (
	"context"
	"errors"
	"fmt"

	"bookingapi/src/config"
	"bookingapi/src/logger"

	"github.com/wneessen/go-mail"
)

var ErrNoRecipients = errors.New("mail has no valid recipients")

type SendMailInput struct {
	From     string
	FromName string
	To       []string
	Cc       []string
	Bcc      []string
	ReplyTo  string
	Subject  string
	Body     string
	Html     bool
}

// Mailer delivers one message through a configured transport.
type Mailer interface {
	Send(ctx context.Context, input *SendMailInput) error
}

type SMTPMailer struct {
	cfg config.MailConfig
	log logger.Logger
}

func NewSMTPMailer(cfg config.MailConfig, log logger.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, log: log}
}

func (m *SMTPMailer) client() (*mail.Client, error) {
	c, err := mail.NewClient(
		m.cfg.SMTPHost,
		mail.WithPort(m.cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.SMTPUsername),
		mail.WithPassword(m.cfg.SMTPPassword),
	)
	if err != nil {
		return nil, fmt.Errorf("could not initialize smtp client: %w", err)
	}
	return c, nil
}

func (m *SMTPMailer) Send(ctx context.Context, input *SendMailInput) error {
	msg, err := m.buildMessage(input)
	if err != nil {
		return err
	}
	c, err := m.client()
	if err != nil {
		return err
	}
	return c.DialAndSendWithContext(ctx, msg)
}

func (m *SMTPMailer) buildMessage(input *SendMailInput) (*mail.Msg, error) {
	from, fromName := input.From, input.FromName
	if from == "" {
		from = m.cfg.From
	}
	if fromName == "" {
		fromName = m.cfg.FromName
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(fromName, from); err != nil {
		return nil, fmt.Errorf("failed to set From address: %w", err)
	}
	if len(input.To) == 0 {
		return nil, ErrNoRecipients
	}
	if err := msg.To(input.To...); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoRecipients, err.Error())
	}
	if input.ReplyTo != "" {
		if err := msg.ReplyTo(input.ReplyTo); err != nil {
			m.log.Warn("failed to set Reply-To address", "error", err)
		}
	}
	if len(input.Cc) > 0 {
		if err := msg.Cc(input.Cc...); err != nil {
			m.log.Warn("failed to set Cc address", "error", err)
		}
	}
	if len(input.Bcc) > 0 {
		if err := msg.Bcc(input.Bcc...); err != nil {
			m.log.Warn("failed to set Bcc address", "error", err)
		}
	}
	msg.Subject(input.Subject)
	if input.Html {
		msg.SetBodyString(mail.TypeTextHTML, input.Body)
	} else {
		msg.SetBodyString(mail.TypeTextPlain, input.Body)
	}
	return msg, nil
}
