package membership

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/Draft-Lab/panela-tracker/internal/repositories/membership Repository

import (
	"context"

	"github.com/Draft-Lab/panela-tracker/internal/models"
)

// Repository defines the interface for session membership persistence
type Repository interface {
	// GetMembership retrieves the membership of a player in a session
	GetMembership(ctx context.Context, input *GetMembershipInput) (*models.Membership, error)

	// CreateMembership persists a new membership. Returns
	// ErrMembershipAlreadyExists if the player already has one in the session.
	CreateMembership(ctx context.Context, input *CreateMembershipInput) error

	// SetActive flips the active flag only if it currently differs
	SetActive(ctx context.Context, input *SetActiveInput) (*SetActiveOutput, error)

	// WriteDurations stores the reconstructed durations of a membership
	WriteDurations(ctx context.Context, input *WriteDurationsInput) error

	// SetOutcome stores the status and notes of a membership
	SetOutcome(ctx context.Context, input *SetOutcomeInput) error

	// ListMemberships returns every membership of a session
	ListMemberships(ctx context.Context, input *ListMembershipsInput) (*ListMembershipsOutput, error)
}
