package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/Draft-Lab/panela-tracker/internal/models"
	gameRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/game"
	membershipRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/membership"
	playerRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/player"
	sessionRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/session"
)

func (s *service) getSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{SessionID: sessionID})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, storageFailure("get session", err)
	}
	return session, nil
}

func (s *service) listMemberships(ctx context.Context, sessionID string) ([]*models.Membership, error) {
	out, err := s.membershipRepo.ListMemberships(ctx, &membershipRepo.ListMembershipsInput{SessionID: sessionID})
	if err != nil {
		return nil, storageFailure("list memberships", err)
	}
	return out.Memberships, nil
}

// FinishSession ends a current session by hand. Outcomes are written first,
// then every active member gets a leave event so the session closes through
// the same path as bot events.
func (s *service) FinishSession(ctx context.Context, input *FinishSessionInput) (*FinishSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, fmt.Errorf("%w: session ID is required", ErrInvalidPayload)
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsCurrent {
		return nil, ErrSessionClosed
	}
	log := s.log.With("session_id", session.ID, "game_id", session.GameID)

	memberships, err := s.listMemberships(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	members := make(map[string]bool, len(memberships))
	for _, m := range memberships {
		members[m.PlayerID] = true
	}
	for playerID := range input.Outcomes {
		if !members[playerID] {
			return nil, fmt.Errorf("%w: %s", ErrNotInSession, playerID)
		}
	}

	for playerID, outcome := range input.Outcomes {
		err := s.membershipRepo.SetOutcome(ctx, &membershipRepo.SetOutcomeInput{
			SessionID: session.ID,
			PlayerID:  playerID,
			Status:    outcome.Status,
			Notes:     outcome.Notes,
		})
		if err != nil {
			return nil, storageFailure("set membership outcome", err)
		}
	}

	now := s.clock.Now()
	for _, m := range memberships {
		if !m.IsActive {
			continue
		}
		_, err := s.deactivateMembership(ctx, session.ID, m.PlayerID, now)
		if errors.Is(err, ErrNotActive) {
			// left on its own since we listed the members
			continue
		}
		if err != nil {
			log.Error("failed to finish session", "error", err)
			return nil, err
		}
	}

	session, err = s.getSession(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if session.IsCurrent && session.ActivePlayers == 0 {
		if _, err := s.finalizeSession(ctx, log, session, now); err != nil {
			log.Error("failed to finalize session", "error", err)
			return nil, err
		}
		if session, err = s.getSession(ctx, session.ID); err != nil {
			return nil, err
		}
	}

	memberships, err = s.listMemberships(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	log.Info("session finished by hand", "closed", !session.IsCurrent)
	return &FinishSessionOutput{
		Session:     session,
		Memberships: memberships,
	}, nil
}

// RecomputeDurations rebuilds membership durations from the event log. It
// can be run any number of times.
func (s *service) RecomputeDurations(ctx context.Context, input *RecomputeDurationsInput) (*RecomputeDurationsOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, fmt.Errorf("%w: session ID is required", ErrInvalidPayload)
	}

	if _, err := s.getSession(ctx, input.SessionID); err != nil {
		return nil, err
	}

	durations, _, err := s.writeDurations(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	s.log.Info("durations recomputed", "session_id", input.SessionID, "players", len(durations))
	return &RecomputeDurationsOutput{Durations: durations}, nil
}

// GetSession returns a session with its game and memberships
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, fmt.Errorf("%w: session ID is required", ErrInvalidPayload)
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	game, err := s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{GameID: session.GameID})
	if err != nil {
		return nil, storageFailure("get game", err)
	}

	memberships, err := s.listMemberships(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	players := make(map[string]*models.Player, len(memberships))
	for _, m := range memberships {
		player, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{PlayerID: m.PlayerID})
		if err != nil {
			return nil, storageFailure("get player", err)
		}
		players[m.PlayerID] = player
	}

	return &GetSessionOutput{
		Session:     session,
		Game:        game,
		Memberships: memberships,
		Players:     players,
	}, nil
}

// ListCurrentSessions returns every session in progress with its game
func (s *service) ListCurrentSessions(ctx context.Context, input *ListCurrentSessionsInput) (*ListCurrentSessionsOutput, error) {
	out, err := s.sessionRepo.ListCurrentSessions(ctx, &sessionRepo.ListCurrentSessionsInput{})
	if err != nil {
		return nil, storageFailure("list current sessions", err)
	}

	games := make(map[string]*models.Game)
	sessions := make([]*CurrentSession, 0, len(out.Sessions))
	for _, session := range out.Sessions {
		game, ok := games[session.GameID]
		if !ok {
			game, err = s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{GameID: session.GameID})
			if err != nil {
				return nil, storageFailure("get game", err)
			}
			games[session.GameID] = game
		}
		sessions = append(sessions, &CurrentSession{Session: session, Game: game})
	}

	return &ListCurrentSessionsOutput{Sessions: sessions}, nil
}
