package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/Draft-Lab/panela-tracker/internal/common/logger"
	"github.com/Draft-Lab/panela-tracker/internal/models"
	seasonRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/season"
	sessionRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/session"
)

const autoSessionNotes = "Session started automatically by the chat bot"

// resolveCurrentSession returns the game's current bot session, opening one
// if there is none. Losing the creation race to another caller returns the
// winner's session.
func (s *service) resolveCurrentSession(ctx context.Context, log *logger.Logger, game *models.Game, now time.Time) (*models.Session, error) {
	current, err := s.sessionRepo.GetCurrentSession(ctx, &sessionRepo.GetCurrentSessionInput{
		GameID: game.ID,
		Source: models.SessionSourceExternalBot,
	})
	if err == nil {
		return current, nil
	}
	if !errors.Is(err, sessionRepo.ErrSessionNotFound) {
		return nil, storageFailure("get current session", err)
	}

	session := &models.Session{
		ID:           s.uuidGenerator.NewUUID(),
		GameID:       game.ID,
		IsCurrent:    true,
		SessionType:  models.SessionTypeSolo,
		Source:       models.SessionSourceExternalBot,
		FirstEventAt: now,
		LastEventAt:  now,
		Notes:        autoSessionNotes,
	}
	err = s.sessionRepo.CreateSession(ctx, &sessionRepo.CreateSessionInput{Session: session})
	if errors.Is(err, sessionRepo.ErrCurrentSessionExists) {
		current, err = s.sessionRepo.GetCurrentSession(ctx, &sessionRepo.GetCurrentSessionInput{
			GameID: game.ID,
			Source: models.SessionSourceExternalBot,
		})
		if err != nil {
			return nil, storageFailure("get current session", err)
		}
		return current, nil
	}
	if err != nil {
		return nil, storageFailure("create session", err)
	}

	log.Info("session created", "session_id", session.ID)
	s.linkActiveSeason(ctx, log, session, now)
	return session, nil
}

// linkActiveSeason attaches a new session to the game's active season, if
// any. Failures are logged and otherwise ignored.
func (s *service) linkActiveSeason(ctx context.Context, log *logger.Logger, session *models.Session, now time.Time) {
	season, err := s.seasonRepo.FindActiveSeason(ctx, &seasonRepo.FindActiveSeasonInput{
		GameID: session.GameID,
		At:     now,
	})
	if err != nil {
		if !errors.Is(err, seasonRepo.ErrSeasonNotFound) {
			log.Warn("failed to look up active season", "session_id", session.ID, "error", err)
		}
		return
	}

	err = s.sessionRepo.LinkSeason(ctx, &sessionRepo.LinkSeasonInput{
		SessionID: session.ID,
		SeasonID:  season.ID,
	})
	if err != nil {
		log.Warn("failed to link session to season", "session_id", session.ID, "season_id", season.ID, "error", err)
		return
	}

	session.SeasonID = season.ID
	log.Info("session linked to season", "session_id", session.ID, "season_id", season.ID)
}
