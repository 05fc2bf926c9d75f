package membership

import "errors"

var (
	// ErrMembershipNotFound is returned when a membership is not found
	ErrMembershipNotFound = errors.New("membership not found")

	// ErrMembershipAlreadyExists is returned when the player is already a member
	ErrMembershipAlreadyExists = errors.New("membership already exists")
)
