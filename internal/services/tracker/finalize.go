package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/Draft-Lab/panela-tracker/internal/common/logger"
	"github.com/Draft-Lab/panela-tracker/internal/models"
	eventRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/event"
	membershipRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/membership"
	participantRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/participant"
	sessionRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/session"
)

type finalizeResult struct {
	Closed               bool
	TotalDurationMinutes int
	SeasonID             string
}

// finalizeSession rebuilds durations, closes the session and rolls the
// session into its season. Only the caller whose close succeeds performs the
// season rollup, so a session is counted at most once.
func (s *service) finalizeSession(ctx context.Context, log *logger.Logger, session *models.Session, closedAt time.Time) (*finalizeResult, error) {
	_, memberships, err := s.writeDurations(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	total := int(closedAt.Sub(session.FirstEventAt) / time.Minute)
	if total < 0 {
		total = 0
	}

	out, err := s.sessionRepo.CloseSession(ctx, &sessionRepo.CloseSessionInput{
		SessionID:            session.ID,
		ClosedAt:             closedAt,
		TotalDurationMinutes: total,
	})
	if err != nil {
		return nil, storageFailure("close session", err)
	}
	if !out.Closed {
		// a join slipped in or another caller closed it first
		log.Info("session not closed by this call")
		return &finalizeResult{}, nil
	}

	closed, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{SessionID: session.ID})
	if err != nil {
		return nil, storageFailure("get session", err)
	}
	log.Info("session finalized", "total_duration_minutes", total, "players", len(memberships))

	if closed.SeasonID != "" {
		if err := s.aggregateSeason(ctx, log, closed.SeasonID, memberships); err != nil {
			return nil, err
		}
	}

	return &finalizeResult{
		Closed:               true,
		TotalDurationMinutes: total,
		SeasonID:             closed.SeasonID,
	}, nil
}

// writeDurations runs the reconstructor over the session's log and stores
// the result on every membership that has events
func (s *service) writeDurations(ctx context.Context, sessionID string) ([]*PlayerDurations, []*models.Membership, error) {
	events, err := s.eventRepo.ListEvents(ctx, &eventRepo.ListEventsInput{SessionID: sessionID})
	if err != nil {
		return nil, nil, storageFailure("list events", err)
	}
	members, err := s.membershipRepo.ListMemberships(ctx, &membershipRepo.ListMembershipsInput{SessionID: sessionID})
	if err != nil {
		return nil, nil, storageFailure("list memberships", err)
	}

	playerIDs := make([]string, 0, len(members.Memberships))
	byPlayer := make(map[string]*models.Membership, len(members.Memberships))
	for _, m := range members.Memberships {
		playerIDs = append(playerIDs, m.PlayerID)
		byPlayer[m.PlayerID] = m
	}

	durations := ReconstructDurations(events.Events, playerIDs)
	for _, d := range durations {
		err := s.membershipRepo.WriteDurations(ctx, &membershipRepo.WriteDurationsInput{
			SessionID:            sessionID,
			PlayerID:             d.PlayerID,
			SoloDurationMinutes:  d.SoloMinutes,
			GroupDurationMinutes: d.GroupMinutes,
			TotalDurationMinutes: d.TotalMinutes,
		})
		if err != nil {
			return nil, nil, storageFailure("write durations", err)
		}

		m := byPlayer[d.PlayerID]
		m.SoloDurationMinutes = d.SoloMinutes
		m.GroupDurationMinutes = d.GroupMinutes
		m.TotalDurationMinutes = d.TotalMinutes
	}

	return durations, members.Memberships, nil
}

// aggregateSeason adds one finished session to the season totals of each
// member, enrolling members who were not participants yet
func (s *service) aggregateSeason(ctx context.Context, log *logger.Logger, seasonID string, memberships []*models.Membership) error {
	for _, m := range memberships {
		_, err := s.participantRepo.GetParticipant(ctx, &participantRepo.GetParticipantInput{
			SeasonID: seasonID,
			PlayerID: m.PlayerID,
		})
		switch {
		case err == nil:
			if err := s.incrementParticipant(ctx, seasonID, m); err != nil {
				return err
			}
		case errors.Is(err, participantRepo.ErrParticipantNotFound):
			err = s.participantRepo.CreateParticipant(ctx, &participantRepo.CreateParticipantInput{
				Participant: &models.SeasonParticipant{
					ID:                   s.uuidGenerator.NewUUID(),
					SeasonID:             seasonID,
					PlayerID:             m.PlayerID,
					Status:               models.StatusInProgress,
					TotalSessions:        1,
					TotalDurationMinutes: m.TotalDurationMinutes,
					SoloDurationMinutes:  m.SoloDurationMinutes,
					GroupDurationMinutes: m.GroupDurationMinutes,
				},
			})
			if errors.Is(err, participantRepo.ErrParticipantAlreadyExists) {
				if err := s.incrementParticipant(ctx, seasonID, m); err != nil {
					return err
				}
				continue
			}
			if err != nil {
				return storageFailure("create participant", err)
			}
		default:
			return storageFailure("get participant", err)
		}
	}

	log.Info("season totals updated", "season_id", seasonID, "players", len(memberships))
	return nil
}

func (s *service) incrementParticipant(ctx context.Context, seasonID string, m *models.Membership) error {
	err := s.participantRepo.IncrementParticipant(ctx, &participantRepo.IncrementParticipantInput{
		SeasonID:             seasonID,
		PlayerID:             m.PlayerID,
		Sessions:             1,
		TotalDurationMinutes: m.TotalDurationMinutes,
		SoloDurationMinutes:  m.SoloDurationMinutes,
		GroupDurationMinutes: m.GroupDurationMinutes,
	})
	if err != nil {
		return storageFailure("increment participant", err)
	}
	return nil
}
