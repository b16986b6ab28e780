package mailer

import (
	"context"
	"errors"
	"testing"

	"bookingapi/src/lib"
	"bookingapi/src/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryQueue struct {
	queue string
	body  string
}

func (q *memoryQueue) Produce(ctx context.Context, queue string, body string) error {
	q.queue, q.body = queue, body
	return nil
}

type recordingMailer struct {
	got *lib.SendMailInput
	err error
}

func (m *recordingMailer) Send(ctx context.Context, input *lib.SendMailInput) error {
	m.got = input
	return m.err
}

func TestQueueMailerRoundTripsThroughRelay(t *testing.T) {
	q := &memoryQueue{}
	m := NewQueueMailer(q, "EmailsToSend")

	in := &lib.SendMailInput{
		From:     "ops@example.com",
		FromName: "Ops",
		To:       []string{"guest@example.com"},
		Subject:  "Booking request made successfully!",
		Body:     "<p>thanks</p>",
		Html:     true,
	}
	require.NoError(t, m.Send(context.Background(), in))
	assert.Equal(t, "EmailsToSend", q.queue)

	relay := &recordingMailer{}
	require.NoError(t, RelayHandler(relay, logger.NewNop())(q.body))

	require.NotNil(t, relay.got)
	assert.Equal(t, in.To, relay.got.To)
	assert.Equal(t, in.FromName, relay.got.FromName)
	assert.Equal(t, in.Subject, relay.got.Subject)
	assert.True(t, relay.got.Html)
	assert.Empty(t, relay.got.Cc)
}

func TestRelayHandlerDropsMalformedPayload(t *testing.T) {
	relay := &recordingMailer{}
	h := RelayHandler(relay, logger.NewNop())

	assert.NoError(t, h("not json"))
	assert.NoError(t, h(`{"subject":"no recipients"}`))
	assert.Nil(t, relay.got)
}

func TestRelayHandlerReportsDeliveryFailure(t *testing.T) {
	relay := &recordingMailer{err: errors.New("smtp down")}
	h := RelayHandler(relay, logger.NewNop())

	assert.Error(t, h(`{"to":["guest@example.com"],"subject":"x","body":"y"}`))
}
