package queue

import (
	"context"
	"errors"
	"sync"

	"gocloud.dev/pubsub"

	"github.com/allisson/dispatcher/internal/dispatch/domain"
)

// PubSubQueue adapts a gocloud.dev topic and subscription pair to Queue.
// It backs both the rabbitmq and memory drivers.
type PubSubQueue struct {
	topic     *pubsub.Topic
	sub       *pubsub.Subscription
	onClose   func() error
	closed    chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// NewPubSubQueue creates a PubSubQueue. onClose, when set, runs after the topic and
// subscription are shut down.
func NewPubSubQueue(topic *pubsub.Topic, sub *pubsub.Subscription, onClose func() error) *PubSubQueue {
	return &PubSubQueue{
		topic:   topic,
		sub:     sub,
		onClose: onClose,
		closed:  make(chan struct{}),
	}
}

// Enqueue publishes the job. Send returns once the broker has accepted the message.
func (q *PubSubQueue) Enqueue(ctx context.Context, job *domain.DispatchJob) (domain.JobHandle, error) {
	payload, err := EncodeJob(job)
	if err != nil {
		return domain.JobHandle{}, enqueueError(err)
	}

	msg := &pubsub.Message{
		Body:     payload,
		Metadata: map[string]string{"job_id": job.ID.String()},
	}
	if err := q.topic.Send(ctx, msg); err != nil {
		return domain.JobHandle{}, enqueueError(err)
	}

	return domain.JobHandle{ID: job.ID}, nil
}

// Dequeue receives the next message.
func (q *PubSubQueue) Dequeue(ctx context.Context) (*Delivery, error) {
	msg, err := q.sub.Receive(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		select {
		case <-q.closed:
			return nil, ErrClosed
		default:
		}
		return nil, err
	}

	return NewDelivery(
		msg.Body,
		func(context.Context) error {
			msg.Ack()
			return nil
		},
		func(context.Context) error {
			if msg.Nackable() {
				msg.Nack()
				return nil
			}
			msg.Ack()
			return errors.New("driver does not support nack; message acknowledged")
		},
	), nil
}

// Close shuts down the topic and the subscription, flushing pending acks.
func (q *PubSubQueue) Close() error {
	q.closeOnce.Do(func() {
		close(q.closed)
		ctx := context.Background()
		errs := []error{q.topic.Shutdown(ctx), q.sub.Shutdown(ctx)}
		if q.onClose != nil {
			errs = append(errs, q.onClose())
		}
		q.closeErr = errors.Join(errs...)
	})
	return q.closeErr
}
