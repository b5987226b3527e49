package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitstore/storefront/internal/api/metrics"
	"github.com/fitstore/storefront/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	sendTimeout    = 30 * time.Second
)

// MailDispatcher delivers mail asynchronously through a fixed set of workers,
// sharded by recipient so mails to the same address keep their enqueue order.
type MailDispatcher struct {
	workers []chan ports.MailMessage
	mailer  ports.Mailer
	log     zerolog.Logger
}

// NewMailDispatcher creates a MailDispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewMailDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *MailDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &MailDispatcher{
		workers: make([]chan ports.MailMessage, numWorkers),
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.MailMessage, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *MailDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a message to the worker responsible for its recipient.
// The call is non-blocking up to channelBuffer capacity.
func (d *MailDispatcher) Enqueue(msg ports.MailMessage) {
	d.workers[d.shardIndex(msg.To)] <- msg
}

// shardIndex maps a recipient address deterministically to a worker index.
func (d *MailDispatcher) shardIndex(to string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(to))
	return int(h.Sum32()) % len(d.workers)
}

func (d *MailDispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.MailMessage) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
			err := d.mailer.Send(sendCtx, msg)
			cancel()
			if err != nil {
				metrics.MailDeliveriesTotal.WithLabelValues("failure").Inc()
				d.log.Error().Err(err).
					Str("to", msg.To).
					Str("subject", msg.Subject).
					Int("worker_id", id).
					Msg("mail delivery failed")
				continue
			}
			metrics.MailDeliveriesTotal.WithLabelValues("success").Inc()
		}
	}
}
