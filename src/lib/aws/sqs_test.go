package aws

import (
	"context"
	"errors"
	"testing"

	"bookingapi/src/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSQS struct {
	urlLookups int
	sent       []string
	inbox      []sqstypes.Message
	deleted    []string
}

func (f *fakeSQS) GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error) {
	f.urlLookups++
	return &sqs.GetQueueUrlOutput{QueueUrl: aws.String("https://sqs.local/" + aws.ToString(params.QueueName))}, nil
}

func (f *fakeSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.sent = append(f.sent, aws.ToString(params.MessageBody))
	return &sqs.SendMessageOutput{MessageId: aws.String("m")}, nil
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	msgs := f.inbox
	f.inbox = nil
	return &sqs.ReceiveMessageOutput{Messages: msgs}, nil
}

func (f *fakeSQS) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(params.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

func TestSQSProducerCachesQueueURL(t *testing.T) {
	client := &fakeSQS{}
	p := NewSQSProducer(client)

	require.NoError(t, p.Produce(context.Background(), "EmailsToSend", `{"a":1}`))
	require.NoError(t, p.Produce(context.Background(), "EmailsToSend", `{"a":2}`))

	assert.Equal(t, 1, client.urlLookups)
	assert.Equal(t, []string{`{"a":1}`, `{"a":2}`}, client.sent)
}

func TestSQSConsumerDeletesOnlyHandledMessages(t *testing.T) {
	client := &fakeSQS{inbox: []sqstypes.Message{
		{MessageId: aws.String("1"), Body: aws.String("ok"), ReceiptHandle: aws.String("r1")},
		{MessageId: aws.String("2"), Body: aws.String("bad"), ReceiptHandle: aws.String("r2")},
	}}
	var seen []string
	c := NewSQSConsumer(client, "EmailsToSend", func(body string) error {
		seen = append(seen, body)
		if body == "bad" {
			return errors.New("relay down")
		}
		return nil
	}, logger.NewNop())

	handled, err := c.poll(context.Background(), aws.String("https://sqs.local/EmailsToSend"))
	require.NoError(t, err)

	assert.Equal(t, 1, handled)
	assert.Equal(t, []string{"ok", "bad"}, seen)
	assert.Equal(t, []string{"r1"}, client.deleted)
}
