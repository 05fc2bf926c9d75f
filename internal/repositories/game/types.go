package game

import "github.com/Draft-Lab/panela-tracker/internal/models"

// GetGameInput contains parameters for retrieving a game
type GetGameInput struct {
	GameID string
}

// GetGameByTitleInput contains parameters for retrieving a game by title
type GetGameByTitleInput struct {
	Title string
}

// CreateGameInput contains parameters for creating a game
type CreateGameInput struct {
	Game *models.Game
}
