package event

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/Draft-Lab/panela-tracker/internal/repositories/event Repository

import (
	"context"
)

// Repository defines the interface for the append-only session event log
type Repository interface {
	// AppendEvent adds an event to its session's log
	AppendEvent(ctx context.Context, input *AppendEventInput) error

	// ListEvents returns a session's events ordered by timestamp. Events with
	// equal timestamps keep their append order.
	ListEvents(ctx context.Context, input *ListEventsInput) (*ListEventsOutput, error)
}
