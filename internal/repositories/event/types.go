package event

import "github.com/Draft-Lab/panela-tracker/internal/models"

// AppendEventInput contains the event to append
type AppendEventInput struct {
	Event *models.SessionEvent
}

// ListEventsInput contains parameters for listing a session's events
type ListEventsInput struct {
	SessionID string
}

// ListEventsOutput contains the ordered events
type ListEventsOutput struct {
	Events []*models.SessionEvent
}
