package service

import (
	"context"
	"time"
)

// Domain event names published on portal mutations.
const (
	EventSubmissionCreated  = "submission.created"
	EventSubmissionGraded   = "submission.graded"
	EventAttendanceMarked   = "attendance.marked"
	EventStudentProvisioned = "student.provisioned"
)

// Event is a domain event emitted after a successful write.
type Event struct {
	Name       string                 `json:"name"`
	OccurredAt time.Time              `json:"occurred_at"`
	Metadata   map[string]interface{} `json:"metadata"`
}

// EventPublisher fans domain events out to interested consumers. Publishing is
// best effort; services log failures and carry on.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
