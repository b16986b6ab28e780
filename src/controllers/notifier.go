package controllers

import (
	"context"
	"sync"
	"time"

	"bookingapi/src/lib"
	"bookingapi/src/logger"
	"bookingapi/src/metrics"
)

// Notifier sends mail either inline or in the background. Background sends are
// tracked so shutdown can wait for them.
type Notifier struct {
	mailer  lib.Mailer
	timeout time.Duration
	log     logger.Logger
	metrics *metrics.Metrics
	wg      sync.WaitGroup
}

func NewNotifier(mailer lib.Mailer, timeout time.Duration, log logger.Logger, m *metrics.Metrics) *Notifier {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Notifier{mailer: mailer, timeout: timeout, log: log, metrics: m}
}

func (n *Notifier) Send(ctx context.Context, kind string, input *lib.SendMailInput) error {
	err := n.mailer.Send(ctx, input)
	if err != nil {
		n.metrics.EmailsSent.WithLabelValues(kind, "error").Inc()
		return err
	}
	n.metrics.EmailsSent.WithLabelValues(kind, "ok").Inc()
	return nil
}

// Go sends without blocking the caller. Failures are logged and counted only.
func (n *Notifier) Go(kind string, input *lib.SendMailInput) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		if err := n.Send(ctx, kind, input); err != nil {
			n.log.Error("background email failed", "kind", kind, "to", input.To, "error", err)
		}
	}()
}

// Drain waits for background sends or until ctx is done.
func (n *Notifier) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
