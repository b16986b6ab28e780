package aws

import (
	"context"
	"errors"
	"testing"

	"bookingapi/src/config"
	"bookingapi/src/lib"
	"bookingapi/src/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("m-1")}, nil
}

func TestSESMailerSend(t *testing.T) {
	client := &fakeSES{}
	m := NewSESMailer(client, config.MailConfig{From: "ops@example.com", FromName: "Ops"}, logger.NewNop())

	err := m.Send(context.Background(), &lib.SendMailInput{
		To:      []string{"guest@example.com"},
		Subject: "Payment Link to confirm your Booking",
		Body:    "<p>pay</p>",
		Html:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, `"Ops" <ops@example.com>`, aws.ToString(client.input.Source))
	assert.Equal(t, []string{"guest@example.com"}, client.input.Destination.ToAddresses)
	assert.Equal(t, "<p>pay</p>", aws.ToString(client.input.Message.Body.Html.Data))
	assert.Nil(t, client.input.Message.Body.Text)
}

func TestSESMailerPropagatesFailure(t *testing.T) {
	client := &fakeSES{err: errors.New("throttled")}
	m := NewSESMailer(client, config.MailConfig{From: "ops@example.com"}, logger.NewNop())

	err := m.Send(context.Background(), &lib.SendMailInput{To: []string{"guest@example.com"}})
	assert.ErrorContains(t, err, "throttled")

	err = m.Send(context.Background(), &lib.SendMailInput{})
	assert.ErrorIs(t, err, lib.ErrNoRecipients)
}
