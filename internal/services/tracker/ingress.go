package tracker

import (
	"context"
	"errors"

	"github.com/Draft-Lab/panela-tracker/internal/models"
	gameRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/game"
	playerRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/player"
)

// findOrCreatePlayer resolves a handle to a player, creating it on first
// sight. A lost creation race falls back to the winner's row.
func (s *service) findOrCreatePlayer(ctx context.Context, handle string) (*models.Player, error) {
	player, err := s.playerRepo.GetPlayerByHandle(ctx, &playerRepo.GetPlayerByHandleInput{Handle: handle})
	if err == nil {
		return player, nil
	}
	if !errors.Is(err, playerRepo.ErrPlayerNotFound) {
		return nil, storageFailure("get player", err)
	}

	player = &models.Player{
		ID:        s.uuidGenerator.NewUUID(),
		Handle:    handle,
		Name:      handle,
		CreatedAt: s.clock.Now(),
	}
	err = s.playerRepo.CreatePlayer(ctx, &playerRepo.CreatePlayerInput{Player: player})
	switch {
	case err == nil:
		s.log.Info("player created", "player_id", player.ID, "handle", handle)
		return player, nil
	case errors.Is(err, playerRepo.ErrPlayerAlreadyExists):
		existing, err := s.playerRepo.GetPlayerByHandle(ctx, &playerRepo.GetPlayerByHandleInput{Handle: handle})
		if err != nil {
			return nil, storageFailure("get player", err)
		}
		return existing, nil
	default:
		return nil, storageFailure("create player", err)
	}
}

// findOrCreateGame resolves a title to a game, creating it on first sight
func (s *service) findOrCreateGame(ctx context.Context, title string) (*models.Game, error) {
	game, err := s.gameRepo.GetGameByTitle(ctx, &gameRepo.GetGameByTitleInput{Title: title})
	if err == nil {
		return game, nil
	}
	if !errors.Is(err, gameRepo.ErrGameNotFound) {
		return nil, storageFailure("get game", err)
	}

	game = &models.Game{
		ID:        s.uuidGenerator.NewUUID(),
		Title:     title,
		CreatedAt: s.clock.Now(),
	}
	err = s.gameRepo.CreateGame(ctx, &gameRepo.CreateGameInput{Game: game})
	switch {
	case err == nil:
		s.log.Info("game created", "game_id", game.ID, "title", title)
		return game, nil
	case errors.Is(err, gameRepo.ErrGameAlreadyExists):
		existing, err := s.gameRepo.GetGameByTitle(ctx, &gameRepo.GetGameByTitleInput{Title: title})
		if err != nil {
			return nil, storageFailure("get game", err)
		}
		return existing, nil
	default:
		return nil, storageFailure("create game", err)
	}
}
