package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/allisson/dispatcher/internal/dispatch/domain"
)

// RedisConfig holds RedisQueue settings.
type RedisConfig struct {
	Name         string
	BlockTimeout time.Duration
}

// RedisQueue is a reliable queue built on two lists. Dequeue atomically moves
// a payload from <name>:pending to <name>:processing; Ack removes it from
// processing and Nack moves it back.
type RedisQueue struct {
	client       *redis.Client
	pendingKey   string
	processing   string
	blockTimeout time.Duration
	closed       chan struct{}
	closeOnce    sync.Once
}

// NewRedisQueue creates a RedisQueue. The client is closed by Close.
func NewRedisQueue(client *redis.Client, config RedisConfig) *RedisQueue {
	blockTimeout := config.BlockTimeout
	if blockTimeout <= 0 {
		blockTimeout = time.Second
	}
	return &RedisQueue{
		client:       client,
		pendingKey:   config.Name + ":pending",
		processing:   config.Name + ":processing",
		blockTimeout: blockTimeout,
		closed:       make(chan struct{}),
	}
}

// Enqueue pushes the job onto the pending list.
func (q *RedisQueue) Enqueue(ctx context.Context, job *domain.DispatchJob) (domain.JobHandle, error) {
	payload, err := EncodeJob(job)
	if err != nil {
		return domain.JobHandle{}, enqueueError(err)
	}

	if err := q.client.LPush(ctx, q.pendingKey, payload).Err(); err != nil {
		return domain.JobHandle{}, enqueueError(err)
	}

	return domain.JobHandle{ID: job.ID}, nil
}

// Dequeue blocks on the pending list in slices of BlockTimeout so that ctx
// cancellation and Close are observed.
func (q *RedisQueue) Dequeue(ctx context.Context) (*Delivery, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.closed:
			return nil, ErrClosed
		default:
		}

		payload, err := q.client.BLMove(ctx, q.pendingKey, q.processing, "RIGHT", "LEFT", q.blockTimeout).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
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

		return q.delivery(payload), nil
	}
}

// Recover moves every payload left in the processing list back to pending and
// returns how many were moved. Run it when no other consumer is active.
func (q *RedisQueue) Recover(ctx context.Context) (int, error) {
	moved := 0
	for {
		err := q.client.LMove(ctx, q.processing, q.pendingKey, "LEFT", "RIGHT").Err()
		if errors.Is(err, redis.Nil) {
			return moved, nil
		}
		if err != nil {
			return moved, err
		}
		moved++
	}
}

// Close closes the redis client.
func (q *RedisQueue) Close() error {
	var err error
	q.closeOnce.Do(func() {
		close(q.closed)
		err = q.client.Close()
	})
	return err
}

func (q *RedisQueue) delivery(payload string) *Delivery {
	return NewDelivery(
		[]byte(payload),
		func(ctx context.Context) error {
			return q.client.LRem(ctx, q.processing, 1, payload).Err()
		},
		func(ctx context.Context) error {
			_, err := q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.LRem(ctx, q.processing, 1, payload)
				pipe.RPush(ctx, q.pendingKey, payload)
				return nil
			})
			return err
		},
	)
}
