package participant

import (
	"time"

	"github.com/Draft-Lab/panela-tracker/internal/models"
)

// GetParticipantInput identifies a participant
type GetParticipantInput struct {
	SeasonID string
	PlayerID string
}

// CreateParticipantInput contains parameters for creating a participant
type CreateParticipantInput struct {
	Participant *models.SeasonParticipant
}

// IncrementParticipantInput contains the amounts to add
type IncrementParticipantInput struct {
	SeasonID             string
	PlayerID             string
	Sessions             int
	TotalDurationMinutes int
	SoloDurationMinutes  int
	GroupDurationMinutes int
}

// SetOutcomeInput contains parameters for setting a participant's outcome
type SetOutcomeInput struct {
	SeasonID string
	PlayerID string
	Status   string
	Notes    string
	At       time.Time
}

// ListParticipantsInput contains parameters for listing participants
type ListParticipantsInput struct {
	SeasonID string
}

// ListParticipantsOutput contains the participants ordered by player ID
type ListParticipantsOutput struct {
	Participants []*models.SeasonParticipant
}
