package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/Draft-Lab/panela-tracker/internal/common/logger"
	"github.com/Draft-Lab/panela-tracker/internal/models"
	eventRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/event"
	membershipRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/membership"
	sessionRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/session"
)

// join marks the player active in the game's current session. A join for a
// player who is already active changes nothing.
func (s *service) join(ctx context.Context, log *logger.Logger, player *models.Player, game *models.Game) (*RecordEventOutput, error) {
	now := s.clock.Now()

	session, err := s.resolveCurrentSession(ctx, log, game, now)
	if err != nil {
		return nil, err
	}
	log = log.With("session_id", session.ID)

	activated, err := s.activateMembership(ctx, session.ID, player.ID, now)
	if err != nil {
		return nil, err
	}
	if !activated {
		log.Debug("duplicate join ignored")
		return &RecordEventOutput{
			SessionID:     session.ID,
			ActivePlayers: session.ActivePlayers,
			SessionType:   session.SessionType,
			AlreadyActive: true,
			SeasonID:      session.SeasonID,
		}, nil
	}

	if err := s.appendEvent(ctx, session.ID, player.ID, models.EventKindJoined, now); err != nil {
		return nil, err
	}

	counters, err := s.sessionRepo.UpdateCounters(ctx, &sessionRepo.UpdateCountersInput{
		SessionID: session.ID,
		Delta:     1,
		EventAt:   now,
	})
	if err != nil {
		return nil, storageFailure("update session counters", err)
	}

	log.Info("player joined", "active_players", counters.ActivePlayers, "session_type", counters.SessionType)
	return &RecordEventOutput{
		SessionID:     session.ID,
		ActivePlayers: counters.ActivePlayers,
		SessionType:   counters.SessionType,
		SeasonID:      session.SeasonID,
	}, nil
}

// activateMembership creates or reactivates the player's membership. It
// returns false when the player was already active.
func (s *service) activateMembership(ctx context.Context, sessionID, playerID string, now time.Time) (bool, error) {
	existing, err := s.membershipRepo.GetMembership(ctx, &membershipRepo.GetMembershipInput{
		SessionID: sessionID,
		PlayerID:  playerID,
	})
	switch {
	case err == nil:
		if existing.IsActive {
			return false, nil
		}
	case errors.Is(err, membershipRepo.ErrMembershipNotFound):
		err = s.membershipRepo.CreateMembership(ctx, &membershipRepo.CreateMembershipInput{
			Membership: &models.Membership{
				ID:        s.uuidGenerator.NewUUID(),
				SessionID: sessionID,
				PlayerID:  playerID,
				Status:    models.StatusWouldPlayAgain,
				IsActive:  true,
				CreatedAt: now,
			},
		})
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, membershipRepo.ErrMembershipAlreadyExists) {
			return false, storageFailure("create membership", err)
		}
		// someone else created it first; fall through to the reactivation path
	default:
		return false, storageFailure("get membership", err)
	}

	out, err := s.membershipRepo.SetActive(ctx, &membershipRepo.SetActiveInput{
		SessionID: sessionID,
		PlayerID:  playerID,
		Active:    true,
	})
	if err != nil {
		return false, storageFailure("activate membership", err)
	}
	return out.Changed, nil
}

// leave marks the player inactive and finalizes the session once nobody is
// left playing
func (s *service) leave(ctx context.Context, log *logger.Logger, player *models.Player, game *models.Game) (*RecordEventOutput, error) {
	now := s.clock.Now()

	session, err := s.sessionRepo.GetCurrentSession(ctx, &sessionRepo.GetCurrentSessionInput{
		GameID: game.ID,
		Source: models.SessionSourceExternalBot,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrNoCurrentSession
		}
		return nil, storageFailure("get current session", err)
	}
	log = log.With("session_id", session.ID)

	counters, err := s.deactivateMembership(ctx, session.ID, player.ID, now)
	if err != nil {
		return nil, err
	}

	log.Info("player left", "active_players", counters.ActivePlayers, "session_type", counters.SessionType)
	output := &RecordEventOutput{
		SessionID:     session.ID,
		ActivePlayers: counters.ActivePlayers,
		SessionType:   counters.SessionType,
		SeasonID:      session.SeasonID,
	}

	if counters.ActivePlayers > 0 {
		return output, nil
	}

	finalized, err := s.finalizeSession(ctx, log, session, now)
	if err != nil {
		return nil, err
	}
	output.SessionFinished = finalized.Closed
	output.TotalDurationMinutes = finalized.TotalDurationMinutes
	output.SeasonID = finalized.SeasonID
	return output, nil
}

// deactivateMembership flips an active membership off, logs the leave and
// decrements the session's active count
func (s *service) deactivateMembership(ctx context.Context, sessionID, playerID string, now time.Time) (*sessionRepo.UpdateCountersOutput, error) {
	membership, err := s.membershipRepo.GetMembership(ctx, &membershipRepo.GetMembershipInput{
		SessionID: sessionID,
		PlayerID:  playerID,
	})
	if err != nil {
		if errors.Is(err, membershipRepo.ErrMembershipNotFound) {
			return nil, ErrNotInSession
		}
		return nil, storageFailure("get membership", err)
	}
	if !membership.IsActive {
		return nil, ErrNotActive
	}

	out, err := s.membershipRepo.SetActive(ctx, &membershipRepo.SetActiveInput{
		SessionID: sessionID,
		PlayerID:  playerID,
		Active:    false,
	})
	if err != nil {
		return nil, storageFailure("deactivate membership", err)
	}
	if !out.Changed {
		return nil, ErrNotActive
	}

	if err := s.appendEvent(ctx, sessionID, playerID, models.EventKindLeave, now); err != nil {
		return nil, err
	}

	counters, err := s.sessionRepo.UpdateCounters(ctx, &sessionRepo.UpdateCountersInput{
		SessionID: sessionID,
		Delta:     -1,
		EventAt:   now,
	})
	if err != nil {
		return nil, storageFailure("update session counters", err)
	}
	return counters, nil
}

func (s *service) appendEvent(ctx context.Context, sessionID, playerID string, kind models.EventKind, at time.Time) error {
	err := s.eventRepo.AppendEvent(ctx, &eventRepo.AppendEventInput{
		Event: &models.SessionEvent{
			ID:        s.uuidGenerator.NewUUID(),
			SessionID: sessionID,
			PlayerID:  playerID,
			Kind:      kind,
			Timestamp: at,
		},
	})
	if err != nil {
		return storageFailure("append event", err)
	}
	return nil
}
