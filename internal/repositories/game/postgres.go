package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Draft-Lab/panela-tracker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gameRow struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)"`
	Title     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	CoverURL  string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
}

func (gameRow) TableName() string { return "games" }

// AutoMigrate creates or updates the games table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&gameRow{})
}

// PostgresConfig holds configuration for the SQL game repository
type PostgresConfig struct {
	DB *gorm.DB
}

type postgresRepository struct {
	db *gorm.DB
}

// NewPostgres creates a new SQL-backed game repository
func NewPostgres(cfg *PostgresConfig) (*postgresRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.DB == nil {
		return nil, errors.New("db cannot be nil")
	}
	return &postgresRepository{db: cfg.DB}, nil
}

func (r *postgresRepository) GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("game ID cannot be empty")
	}
	return r.take(ctx, "id = ?", input.GameID)
}

func (r *postgresRepository) GetGameByTitle(ctx context.Context, input *GetGameByTitleInput) (*models.Game, error) {
	if input == nil || input.Title == "" {
		return nil, errors.New("title cannot be empty")
	}
	return r.take(ctx, "title = ?", input.Title)
}

func (r *postgresRepository) take(ctx context.Context, query string, arg interface{}) (*models.Game, error) {
	var row gameRow
	if err := r.db.WithContext(ctx).Where(query, arg).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return &models.Game{
		ID:        row.ID,
		Title:     row.Title,
		CoverURL:  row.CoverURL,
		CreatedAt: row.CreatedAt.UTC(),
	}, nil
}

func (r *postgresRepository) CreateGame(ctx context.Context, input *CreateGameInput) error {
	if input == nil || input.Game == nil {
		return errors.New("input and game cannot be nil")
	}
	g := input.Game
	if g.ID == "" || g.Title == "" {
		return errors.New("game ID and title cannot be empty")
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&gameRow{
			ID:        g.ID,
			Title:     g.Title,
			CoverURL:  g.CoverURL,
			CreatedAt: g.CreatedAt,
		})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrGameAlreadyExists
		}
		return fmt.Errorf("failed to create game: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrGameAlreadyExists
	}
	return nil
}
