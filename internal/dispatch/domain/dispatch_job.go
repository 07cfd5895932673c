package domain

import (
	"time"

	"github.com/google/uuid"
)

// DispatchJob is the in-flight unit of work handed from the API to the workers.
// It has no identity outside the queue.
type DispatchJob struct {
	ID         uuid.UUID `json:"id"`
	Recipient  string    `json:"recipient"`
	Body       string    `json:"body"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// NewDispatchJob creates a job with a time-ordered identifier.
func NewDispatchJob(recipient, body string) *DispatchJob {
	return &DispatchJob{
		ID:         uuid.Must(uuid.NewV7()),
		Recipient:  recipient,
		Body:       body,
		EnqueuedAt: time.Now().UTC(),
	}
}

// JobHandle identifies an enqueued job to the submitter.
type JobHandle struct {
	ID uuid.UUID
}

// String returns the handle's identifier.
func (h JobHandle) String() string {
	return h.ID.String()
}
