package storage

import (
	"fmt"

	"github.com/Draft-Lab/panela-tracker/internal/repositories/event"
	"github.com/Draft-Lab/panela-tracker/internal/repositories/game"
	"github.com/Draft-Lab/panela-tracker/internal/repositories/membership"
	"github.com/Draft-Lab/panela-tracker/internal/repositories/participant"
	"github.com/Draft-Lab/panela-tracker/internal/repositories/player"
	"github.com/Draft-Lab/panela-tracker/internal/repositories/season"
	"github.com/Draft-Lab/panela-tracker/internal/repositories/session"
	"gorm.io/gorm"
)

type foreignKey struct {
	name     string
	table    string
	column   string
	refTable string
	onDelete string
}

// foreignKeys are added after AutoMigrate since the row types carry no
// gorm associations
var foreignKeys = []foreignKey{
	{"fk_sessions_game", "sessions", "game_id", "games", "CASCADE"},
	{"fk_sessions_season", "sessions", "season_id", "seasons", "SET NULL"},
	{"fk_memberships_session", "session_memberships", "session_id", "sessions", "CASCADE"},
	{"fk_memberships_player", "session_memberships", "player_id", "players", "CASCADE"},
	{"fk_events_session", "session_events", "session_id", "sessions", "CASCADE"},
	{"fk_events_player", "session_events", "player_id", "players", "CASCADE"},
	{"fk_seasons_game", "seasons", "game_id", "games", "CASCADE"},
	{"fk_participants_season", "season_participants", "season_id", "seasons", "CASCADE"},
	{"fk_participants_player", "season_participants", "player_id", "players", "CASCADE"},
}

// Migrate creates every table and index. Foreign keys are only added on
// Postgres.
func Migrate(db *gorm.DB) error {
	steps := []struct {
		name string
		fn   func(*gorm.DB) error
	}{
		{"players", player.AutoMigrate},
		{"games", game.AutoMigrate},
		{"seasons", season.AutoMigrate},
		{"sessions", session.AutoMigrate},
		{"session_memberships", membership.AutoMigrate},
		{"session_events", event.AutoMigrate},
		{"season_participants", participant.AutoMigrate},
	}
	for _, step := range steps {
		if err := step.fn(db); err != nil {
			return fmt.Errorf("migrate %s: %w", step.name, err)
		}
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	for _, fk := range foreignKeys {
		stmt := fmt.Sprintf(`DO $$ BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
		ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(id) ON DELETE %s;
	END IF;
END $$;`, fk.name, fk.table, fk.name, fk.column, fk.refTable, fk.onDelete)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("add foreign key %s: %w", fk.name, err)
		}
	}
	return nil
}
