// Package domain defines the row model of the database-backed task queue.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// QueuedJobStatus represents the lifecycle state of a queued job row.
type QueuedJobStatus string

const (
	QueuedJobStatusPending QueuedJobStatus = "pending"
	QueuedJobStatusClaimed QueuedJobStatus = "claimed"
)

// QueuedJob is a job waiting in, or leased from, the queued_jobs table.
// A claimed job whose ClaimedAt is older than the visibility timeout is claimable again.
type QueuedJob struct {
	ID        uuid.UUID
	Queue     string
	Payload   string
	Status    QueuedJobStatus
	Attempts  int
	ClaimedAt *time.Time
	CreatedAt time.Time
}
