package player

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Draft-Lab/panela-tracker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type playerRow struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)"`
	Handle    string    `gorm:"type:varchar(128);not null;uniqueIndex"`
	Name      string    `gorm:"type:varchar(255);not null"`
	AvatarURL string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
}

func (playerRow) TableName() string { return "players" }

func toRow(p *models.Player) *playerRow {
	return &playerRow{
		ID:        p.ID,
		Handle:    p.Handle,
		Name:      p.Name,
		AvatarURL: p.AvatarURL,
		CreatedAt: p.CreatedAt,
	}
}

func (row *playerRow) toModel() *models.Player {
	return &models.Player{
		ID:        row.ID,
		Handle:    row.Handle,
		Name:      row.Name,
		AvatarURL: row.AvatarURL,
		CreatedAt: row.CreatedAt.UTC(),
	}
}

// AutoMigrate creates or updates the players table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&playerRow{})
}

// PostgresConfig holds configuration for the SQL player repository
type PostgresConfig struct {
	DB *gorm.DB
}

// postgresRepository implements the Repository interface using gorm
type postgresRepository struct {
	db *gorm.DB
}

// NewPostgres creates a new SQL-backed player repository
func NewPostgres(cfg *PostgresConfig) (*postgresRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.DB == nil {
		return nil, errors.New("db cannot be nil")
	}
	return &postgresRepository{db: cfg.DB}, nil
}

func (r *postgresRepository) GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.Player, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("player ID cannot be empty")
	}
	return r.take(ctx, "id = ?", input.PlayerID)
}

func (r *postgresRepository) GetPlayerByHandle(ctx context.Context, input *GetPlayerByHandleInput) (*models.Player, error) {
	if input == nil || input.Handle == "" {
		return nil, errors.New("handle cannot be empty")
	}
	return r.take(ctx, "handle = ?", input.Handle)
}

func (r *postgresRepository) take(ctx context.Context, query string, arg interface{}) (*models.Player, error) {
	var row playerRow
	if err := r.db.WithContext(ctx).Where(query, arg).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return row.toModel(), nil
}

// CreatePlayer inserts the player, leaving an existing row with the same
// handle untouched
func (r *postgresRepository) CreatePlayer(ctx context.Context, input *CreatePlayerInput) error {
	if input == nil || input.Player == nil {
		return errors.New("input and player cannot be nil")
	}
	if input.Player.ID == "" || input.Player.Handle == "" {
		return errors.New("player ID and handle cannot be empty")
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(toRow(input.Player))
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrPlayerAlreadyExists
		}
		return fmt.Errorf("failed to create player: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrPlayerAlreadyExists
	}
	return nil
}
