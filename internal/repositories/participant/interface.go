package participant

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/Draft-Lab/panela-tracker/internal/repositories/participant Repository

import (
	"context"

	"github.com/Draft-Lab/panela-tracker/internal/models"
)

// Repository defines the interface for season participant persistence
type Repository interface {
	// GetParticipant retrieves a player's totals within a season
	GetParticipant(ctx context.Context, input *GetParticipantInput) (*models.SeasonParticipant, error)

	// CreateParticipant persists a new participant. Returns
	// ErrParticipantAlreadyExists if the player is already enrolled.
	CreateParticipant(ctx context.Context, input *CreateParticipantInput) error

	// IncrementParticipant atomically adds to a participant's totals
	IncrementParticipant(ctx context.Context, input *IncrementParticipantInput) error

	// SetOutcome stores the final status of a participant
	SetOutcome(ctx context.Context, input *SetOutcomeInput) error

	// ListParticipants returns every participant of a season
	ListParticipants(ctx context.Context, input *ListParticipantsInput) (*ListParticipantsOutput, error)
}
