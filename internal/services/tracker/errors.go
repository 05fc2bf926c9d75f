package tracker

// TrackerError is a custom error type for tracker errors
type TrackerError string

// Error implements the error interface
func (e TrackerError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrUnauthorized       TrackerError = "unauthorized"
	ErrInvalidPayload     TrackerError = "invalid payload"
	ErrNoCurrentSession   TrackerError = "no current session for game"
	ErrNotInSession       TrackerError = "player is not in the session"
	ErrNotActive          TrackerError = "player is not active in the session"
	ErrSessionNotFound    TrackerError = "session not found"
	ErrSessionClosed      TrackerError = "session already finished"
	ErrSeasonNotFound     TrackerError = "season not found"
	ErrSeasonNotActive    TrackerError = "season is not active"
	ErrGameNotFound       TrackerError = "game not found"
	ErrStorageFailure     TrackerError = "storage failure"
	ErrNilConfig          TrackerError = "config cannot be nil"
	ErrNilAPIKey          TrackerError = "API key cannot be empty"
	ErrNilPlayerRepo      TrackerError = "player repository cannot be nil"
	ErrNilGameRepo        TrackerError = "game repository cannot be nil"
	ErrNilSessionRepo     TrackerError = "session repository cannot be nil"
	ErrNilMembershipRepo  TrackerError = "membership repository cannot be nil"
	ErrNilEventRepo       TrackerError = "event repository cannot be nil"
	ErrNilSeasonRepo      TrackerError = "season repository cannot be nil"
	ErrNilParticipantRepo TrackerError = "participant repository cannot be nil"
	ErrNilClock           TrackerError = "clock cannot be nil"
	ErrNilUUIDGenerator   TrackerError = "UUID generator cannot be nil"
)
