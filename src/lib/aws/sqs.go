package aws

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bookingapi/src/logger"
	"bookingapi/src/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type SQSAPI interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// queueURLs caches queue name lookups.
type queueURLs struct {
	client SQSAPI
	mu     sync.Mutex
	urls   map[string]*string
}

func (q *queueURLs) get(ctx context.Context, name string) (*string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if u, ok := q.urls[name]; ok {
		return u, nil
	}
	out, err := q.client.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{QueueName: aws.String(name)})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve queue URL for %s: %w", name, err)
	}
	if q.urls == nil {
		q.urls = map[string]*string{}
	}
	q.urls[name] = out.QueueUrl
	return out.QueueUrl, nil
}

type SQSProducer struct {
	client SQSAPI
	urls   *queueURLs
}

func NewSQSProducer(client SQSAPI) *SQSProducer {
	return &SQSProducer{client: client, urls: &queueURLs{client: client}}
}

func (p *SQSProducer) Produce(ctx context.Context, queue string, body string) error {
	qurl, err := p.urls.get(ctx, queue)
	if err != nil {
		return err
	}
	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    qurl,
		MessageBody: aws.String(body),
	})
	if err != nil {
		return fmt.Errorf("error sending message to queue: %w", err)
	}
	return nil
}

type SQSConsumer struct {
	Name    string
	client  SQSAPI
	handler types.Handler
	log     logger.Logger
}

func NewSQSConsumer(client SQSAPI, queue string, handler types.Handler, log logger.Logger) *SQSConsumer {
	return &SQSConsumer{
		Name:    queue,
		client:  client,
		handler: handler,
		log:     log.With("queue", queue),
	}
}

// Listen long-polls the queue until ctx is cancelled. The returned channel is
// closed once the polling goroutine has exited.
func (s *SQSConsumer) Listen(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		qurl, err := (&queueURLs{client: s.client}).get(ctx, s.Name)
		if err != nil {
			s.log.Error("consumer not started", "error", err)
			return
		}
		s.log.Info("listening for messages")
		for ctx.Err() == nil {
			if _, err := s.poll(ctx, qurl); err != nil {
				if ctx.Err() != nil {
					return
				}
				s.log.Error("error receiving messages", "error", err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(5 * time.Second):
				}
			}
		}
	}()
	return done
}

// poll handles one batch. Messages whose handler fails stay on the queue and
// reappear after the visibility timeout.
func (s *SQSConsumer) poll(ctx context.Context, qurl *string) (int, error) {
	output, err := s.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            qurl,
		WaitTimeSeconds:     20,
		MaxNumberOfMessages: 10,
	})
	if err != nil {
		return 0, err
	}
	handled := 0
	for _, m := range output.Messages {
		if err := s.handler(aws.ToString(m.Body)); err != nil {
			s.log.Warn("message handler failed", "message_id", aws.ToString(m.MessageId), "error", err)
			continue
		}
		s.deleteMessage(ctx, qurl, m)
		handled++
	}
	return handled, nil
}

func (s *SQSConsumer) deleteMessage(ctx context.Context, qurl *string, msg sqstypes.Message) {
	_, err := s.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      qurl,
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		s.log.Error("error deleting message from queue", "message_id", aws.ToString(msg.MessageId), "error", err)
	}
}
