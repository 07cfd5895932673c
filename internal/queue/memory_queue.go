package queue

import (
	"time"

	"gocloud.dev/pubsub/mempubsub"
)

// NewMemoryQueue creates a process-local queue. Jobs are lost on restart; it
// is intended for development and tests. Unacked messages are redelivered
// after ackDeadline.
func NewMemoryQueue(ackDeadline time.Duration) *PubSubQueue {
	topic := mempubsub.NewTopic()
	sub := mempubsub.NewSubscription(topic, ackDeadline)
	return NewPubSubQueue(topic, sub, nil)
}
