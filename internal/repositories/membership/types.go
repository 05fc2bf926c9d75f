package membership

import "github.com/Draft-Lab/panela-tracker/internal/models"

// GetMembershipInput identifies a membership
type GetMembershipInput struct {
	SessionID string
	PlayerID  string
}

// CreateMembershipInput contains parameters for creating a membership
type CreateMembershipInput struct {
	Membership *models.Membership
}

// SetActiveInput contains parameters for toggling a membership
type SetActiveInput struct {
	SessionID string
	PlayerID  string
	Active    bool
}

// SetActiveOutput reports whether the flag was changed by this call
type SetActiveOutput struct {
	Changed bool
}

// WriteDurationsInput contains the durations to store on a membership
type WriteDurationsInput struct {
	SessionID            string
	PlayerID             string
	SoloDurationMinutes  int
	GroupDurationMinutes int
	TotalDurationMinutes int
}

// SetOutcomeInput contains parameters for setting a membership outcome
type SetOutcomeInput struct {
	SessionID string
	PlayerID  string
	Status    string
	Notes     string
}

// ListMembershipsInput contains parameters for listing memberships
type ListMembershipsInput struct {
	SessionID string
}

// ListMembershipsOutput contains the memberships of a session in join order
type ListMembershipsOutput struct {
	Memberships []*models.Membership
}
