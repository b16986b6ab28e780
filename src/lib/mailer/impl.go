package mailer

import (
	"context"
	"encoding/json"
	"errors"

	"bookingapi/src/lib"
	"bookingapi/src/logger"
	"bookingapi/src/types"

	"github.com/tidwall/gjson"
)

type Producer interface {
	Produce(ctx context.Context, queue string, body string) error
}

// QueueMailer hands messages to a queue; a relay consumer delivers them later.
type QueueMailer struct {
	producer Producer
	queue    string
}

func NewQueueMailer(producer Producer, queue string) *QueueMailer {
	return &QueueMailer{producer: producer, queue: queue}
}

func (m *QueueMailer) Send(ctx context.Context, input *lib.SendMailInput) error {
	if len(input.To) == 0 {
		return lib.ErrNoRecipients
	}
	body, err := json.Marshal(NewMailerMessage(input))
	if err != nil {
		return err
	}
	return m.producer.Produce(ctx, m.queue, string(body))
}

// NewMailerMessage is the queued wire form of a SendMailInput.
func NewMailerMessage(input *lib.SendMailInput) types.JSONB {
	return types.JSONB{
		"from":      input.From,
		"from-name": input.FromName,
		"to":        input.To,
		"cc":        input.Cc,
		"bcc":       input.Bcc,
		"reply-to":  input.ReplyTo,
		"body":      input.Body,
		"html":      input.Html,
		"subject":   input.Subject,
	}
}

var errInvalidPayload = errors.New("invalid mail payload")

func parseMailerMessage(body string) (*lib.SendMailInput, error) {
	if !gjson.Valid(body) {
		return nil, errInvalidPayload
	}
	res := gjson.GetMany(body, "from", "from-name", "to", "cc", "bcc", "reply-to", "subject", "body", "html")
	input := &lib.SendMailInput{
		From:     res[0].String(),
		FromName: res[1].String(),
		To:       stringList(res[2]),
		Cc:       stringList(res[3]),
		Bcc:      stringList(res[4]),
		ReplyTo:  res[5].String(),
		Subject:  res[6].String(),
		Body:     res[7].String(),
		Html:     res[8].Bool(),
	}
	if len(input.To) == 0 {
		return nil, errInvalidPayload
	}
	return input, nil
}

func stringList(r gjson.Result) []string {
	var out []string
	for _, v := range r.Array() {
		if s := v.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// RelayHandler delivers queued mail through relay. Malformed payloads are
// acknowledged and dropped so they do not cycle through the queue.
func RelayHandler(relay lib.Mailer, log logger.Logger) types.Handler {
	return func(body string) error {
		input, err := parseMailerMessage(body)
		if err != nil {
			log.Warn("dropping queued mail", "error", err)
			return nil
		}
		return relay.Send(context.Background(), input)
	}
}
