package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/Draft-Lab/panela-tracker/internal/models"
	gameRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/game"
	participantRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/participant"
	seasonRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/season"
	sessionRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/session"
)

// StartSeason opens an active season for a game starting now. Listed players
// are enrolled up front and the game's unlinked current sessions join it.
func (s *service) StartSeason(ctx context.Context, input *StartSeasonInput) (*StartSeasonOutput, error) {
	if input == nil || input.GameTitle == "" {
		return nil, fmt.Errorf("%w: game title is required", ErrInvalidPayload)
	}

	game, err := s.gameRepo.GetGameByTitle(ctx, &gameRepo.GetGameByTitleInput{Title: input.GameTitle})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, storageFailure("get game", err)
	}

	now := s.clock.Now()
	name := input.Name
	if name == "" {
		name = fmt.Sprintf("Season %s", now.Format("2006-01-02"))
	}

	season := &models.Season{
		ID:          s.uuidGenerator.NewUUID(),
		GameID:      game.ID,
		Name:        name,
		Description: input.Description,
		IsActive:    true,
		StartedAt:   now,
	}
	if err := s.seasonRepo.CreateSeason(ctx, &seasonRepo.CreateSeasonInput{Season: season}); err != nil {
		return nil, storageFailure("create season", err)
	}
	log := s.log.With("season_id", season.ID, "game_id", game.ID)

	seen := make(map[string]bool, len(input.PlayerHandles))
	for _, handle := range input.PlayerHandles {
		if handle == "" || seen[handle] {
			continue
		}
		seen[handle] = true

		player, err := s.findOrCreatePlayer(ctx, handle)
		if err != nil {
			return nil, err
		}
		err = s.participantRepo.CreateParticipant(ctx, &participantRepo.CreateParticipantInput{
			Participant: &models.SeasonParticipant{
				ID:       s.uuidGenerator.NewUUID(),
				SeasonID: season.ID,
				PlayerID: player.ID,
				Status:   models.StatusInProgress,
			},
		})
		if err != nil && !errors.Is(err, participantRepo.ErrParticipantAlreadyExists) {
			return nil, storageFailure("create participant", err)
		}
	}

	current, err := s.sessionRepo.ListCurrentSessions(ctx, &sessionRepo.ListCurrentSessionsInput{})
	if err != nil {
		return nil, storageFailure("list current sessions", err)
	}
	linked := []string{}
	for _, session := range current.Sessions {
		if session.GameID != game.ID || session.SeasonID != "" {
			continue
		}
		err := s.sessionRepo.LinkSeason(ctx, &sessionRepo.LinkSeasonInput{
			SessionID: session.ID,
			SeasonID:  season.ID,
		})
		if err != nil {
			return nil, storageFailure("link session", err)
		}
		linked = append(linked, session.ID)
	}

	participants, err := s.listParticipants(ctx, season.ID)
	if err != nil {
		return nil, err
	}

	log.Info("season started", "participants", len(participants), "linked_sessions", len(linked))
	return &StartSeasonOutput{
		Season:           season,
		Participants:     participants,
		LinkedSessionIDs: linked,
	}, nil
}

// FinishSeason stores every participant's final status and closes the
// season. Participants without an explicit outcome that are still
// in_progress end as would_play_again.
func (s *service) FinishSeason(ctx context.Context, input *FinishSeasonInput) (*FinishSeasonOutput, error) {
	if input == nil || input.SeasonID == "" {
		return nil, fmt.Errorf("%w: season ID is required", ErrInvalidPayload)
	}

	season, err := s.seasonRepo.GetSeason(ctx, &seasonRepo.GetSeasonInput{SeasonID: input.SeasonID})
	if err != nil {
		if errors.Is(err, seasonRepo.ErrSeasonNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, storageFailure("get season", err)
	}
	if !season.IsActive {
		return nil, ErrSeasonNotActive
	}
	log := s.log.With("season_id", season.ID, "game_id", season.GameID)

	participants, err := s.listParticipants(ctx, season.ID)
	if err != nil {
		return nil, err
	}
	enrolled := make(map[string]bool, len(participants))
	for _, p := range participants {
		enrolled[p.PlayerID] = true
	}
	for playerID := range input.Outcomes {
		if !enrolled[playerID] {
			return nil, fmt.Errorf("%w: %s is not a season participant", ErrInvalidPayload, playerID)
		}
	}

	now := s.clock.Now()
	for _, p := range participants {
		outcome, ok := input.Outcomes[p.PlayerID]
		if !ok {
			outcome = Outcome{Status: p.Status, Notes: p.Notes}
			if outcome.Status == models.StatusInProgress || outcome.Status == "" {
				outcome.Status = models.StatusWouldPlayAgain
			}
		}
		err := s.participantRepo.SetOutcome(ctx, &participantRepo.SetOutcomeInput{
			SeasonID: season.ID,
			PlayerID: p.PlayerID,
			Status:   outcome.Status,
			Notes:    outcome.Notes,
			At:       now,
		})
		if err != nil {
			return nil, storageFailure("set participant outcome", err)
		}
	}

	finished, err := s.seasonRepo.FinishSeason(ctx, &seasonRepo.FinishSeasonInput{
		SeasonID: season.ID,
		EndedAt:  now,
	})
	if err != nil {
		if errors.Is(err, seasonRepo.ErrSeasonNotActive) {
			return nil, ErrSeasonNotActive
		}
		return nil, storageFailure("finish season", err)
	}

	participants, err = s.listParticipants(ctx, season.ID)
	if err != nil {
		return nil, err
	}

	log.Info("season finished", "participants", len(participants))
	return &FinishSeasonOutput{
		Season:       finished,
		Participants: participants,
	}, nil
}

// ListSeasons returns every season of a game, oldest first, each with its
// participants
func (s *service) ListSeasons(ctx context.Context, input *ListSeasonsInput) (*ListSeasonsOutput, error) {
	if input == nil || input.GameTitle == "" {
		return nil, fmt.Errorf("%w: game title is required", ErrInvalidPayload)
	}

	game, err := s.gameRepo.GetGameByTitle(ctx, &gameRepo.GetGameByTitleInput{Title: input.GameTitle})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, storageFailure("get game", err)
	}

	seasons, err := s.seasonRepo.ListSeasonsByGame(ctx, &seasonRepo.ListSeasonsByGameInput{GameID: game.ID})
	if err != nil {
		return nil, storageFailure("list seasons", err)
	}

	out := &ListSeasonsOutput{
		Game:    game,
		Seasons: make([]*SeasonStandings, 0, len(seasons.Seasons)),
	}
	for _, season := range seasons.Seasons {
		participants, err := s.listParticipants(ctx, season.ID)
		if err != nil {
			return nil, err
		}
		out.Seasons = append(out.Seasons, &SeasonStandings{
			Season:       season,
			Participants: participants,
		})
	}
	return out, nil
}

func (s *service) listParticipants(ctx context.Context, seasonID string) ([]*models.SeasonParticipant, error) {
	out, err := s.participantRepo.ListParticipants(ctx, &participantRepo.ListParticipantsInput{SeasonID: seasonID})
	if err != nil {
		return nil, storageFailure("list participants", err)
	}
	return out.Participants, nil
}
