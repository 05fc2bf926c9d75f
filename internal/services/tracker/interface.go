package tracker

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/Draft-Lab/panela-tracker/internal/services/tracker Service

import (
	"context"
)

// Service turns join/leave events into sessions, per-player solo and group
// minutes, and season totals
type Service interface {
	// RecordEvent validates and applies one join or leave event. The leave
	// that empties a session also finalizes it.
	RecordEvent(ctx context.Context, input *RecordEventInput) (*RecordEventOutput, error)

	// FinishSession records outcomes and closes a current session by
	// recording a leave for every member still active
	FinishSession(ctx context.Context, input *FinishSessionInput) (*FinishSessionOutput, error)

	// RecomputeDurations rebuilds membership durations from the event log
	RecomputeDurations(ctx context.Context, input *RecomputeDurationsInput) (*RecomputeDurationsOutput, error)

	// GetSession returns a session with its memberships
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// ListCurrentSessions returns every session in progress
	ListCurrentSessions(ctx context.Context, input *ListCurrentSessionsInput) (*ListCurrentSessionsOutput, error)

	// StartSeason opens a season for a game and enrolls the given players
	StartSeason(ctx context.Context, input *StartSeasonInput) (*StartSeasonOutput, error)

	// ListSeasons returns a game's seasons with their participants
	ListSeasons(ctx context.Context, input *ListSeasonsInput) (*ListSeasonsOutput, error)

	// FinishSeason stores final participant outcomes and closes the season
	FinishSeason(ctx context.Context, input *FinishSeasonInput) (*FinishSeasonOutput, error)
}
