// Package queue provides the durable task queue between the API and the dispatch workers.
//
// Four drivers are available: "database" (a queued_jobs table polled with row locks),
// "rabbitmq" and "memory" (both through gocloud.dev/pubsub) and "redis" (a reliable
// list pair). Every driver gives at-least-once delivery: a job is only removed once
// its delivery is acknowledged.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/allisson/dispatcher/internal/dispatch/domain"
	apperrors "github.com/allisson/dispatcher/internal/errors"
)

// Supported queue drivers.
const (
	DriverDatabase = "database"
	DriverRabbitMQ = "rabbitmq"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// ErrClosed is returned by Dequeue once the queue has been closed.
var ErrClosed = apperrors.New("queue closed")

// Queue is the producer and consumer surface shared by all drivers.
type Queue interface {
	// Enqueue durably records the job. Errors wrap domain.ErrEnqueue.
	Enqueue(ctx context.Context, job *domain.DispatchJob) (domain.JobHandle, error)
	// Dequeue blocks until a job is available, ctx is done or the queue is closed.
	Dequeue(ctx context.Context) (*Delivery, error)
	// Close releases the driver's resources.
	Close() error
}

// Delivery is one received job. Exactly one of Ack or Nack should be called.
type Delivery struct {
	Payload []byte
	ack     func(ctx context.Context) error
	nack    func(ctx context.Context) error
}

// NewDelivery creates a Delivery backed by driver callbacks.
func NewDelivery(payload []byte, ack, nack func(ctx context.Context) error) *Delivery {
	return &Delivery{Payload: payload, ack: ack, nack: nack}
}

// Decode unmarshals the payload into a DispatchJob.
func (d *Delivery) Decode() (*domain.DispatchJob, error) {
	return DecodeJob(d.Payload)
}

// Ack removes the job from the queue.
func (d *Delivery) Ack(ctx context.Context) error {
	return d.ack(ctx)
}

// Nack returns the job to the queue for redelivery.
func (d *Delivery) Nack(ctx context.Context) error {
	return d.nack(ctx)
}

// EncodeJob serializes a job for transport.
func EncodeJob(job *domain.DispatchJob) ([]byte, error) {
	return json.Marshal(job)
}

// DecodeJob parses a payload produced by EncodeJob.
func DecodeJob(payload []byte) (*domain.DispatchJob, error) {
	var job domain.DispatchJob
	if err := json.Unmarshal(payload, &job); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode dispatch job")
	}
	if job.Recipient == "" {
		return nil, apperrors.New("failed to decode dispatch job: missing recipient")
	}
	return &job, nil
}

// enqueueError marks err as an enqueue failure while keeping its cause.
func enqueueError(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrEnqueue, err)
}
