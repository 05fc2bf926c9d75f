package participant

import "errors"

var (
	// ErrParticipantNotFound is returned when a participant is not found
	ErrParticipantNotFound = errors.New("season participant not found")

	// ErrParticipantAlreadyExists is returned when the player is already enrolled
	ErrParticipantAlreadyExists = errors.New("season participant already exists")
)
