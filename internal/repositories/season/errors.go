package season

import "errors"

var (
	// ErrSeasonNotFound is returned when no season matches
	ErrSeasonNotFound = errors.New("season not found")

	// ErrSeasonNotActive is returned when finishing a season that already ended
	ErrSeasonNotActive = errors.New("season is not active")
)
