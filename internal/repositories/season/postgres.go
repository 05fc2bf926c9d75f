package season

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Draft-Lab/panela-tracker/internal/models"
	"gorm.io/gorm"
)

type seasonRow struct {
	ID          string     `gorm:"primaryKey;type:varchar(64)"`
	GameID      string     `gorm:"type:varchar(64);not null;index"`
	Name        string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text"`
	IsActive    bool       `gorm:"not null;index"`
	StartedAt   time.Time  `gorm:"not null"`
	EndedAt     *time.Time
}

func (seasonRow) TableName() string { return "seasons" }

func (row *seasonRow) toModel() *models.Season {
	s := &models.Season{
		ID:          row.ID,
		GameID:      row.GameID,
		Name:        row.Name,
		Description: row.Description,
		IsActive:    row.IsActive,
		StartedAt:   row.StartedAt.UTC(),
	}
	if row.EndedAt != nil {
		endedAt := row.EndedAt.UTC()
		s.EndedAt = &endedAt
	}
	return s
}

// AutoMigrate creates or updates the seasons table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&seasonRow{})
}

// PostgresConfig holds configuration for the SQL season repository
type PostgresConfig struct {
	DB *gorm.DB
}

type postgresRepository struct {
	db *gorm.DB
}

// NewPostgres creates a new SQL-backed season repository
func NewPostgres(cfg *PostgresConfig) (*postgresRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.DB == nil {
		return nil, errors.New("db cannot be nil")
	}
	return &postgresRepository{db: cfg.DB}, nil
}

func (r *postgresRepository) CreateSeason(ctx context.Context, input *CreateSeasonInput) error {
	if input == nil || input.Season == nil {
		return errors.New("input and season cannot be nil")
	}
	s := input.Season
	if s.ID == "" || s.GameID == "" {
		return errors.New("season ID and game ID cannot be empty")
	}

	err := r.db.WithContext(ctx).Create(&seasonRow{
		ID:          s.ID,
		GameID:      s.GameID,
		Name:        s.Name,
		Description: s.Description,
		IsActive:    s.IsActive,
		StartedAt:   s.StartedAt,
		EndedAt:     s.EndedAt,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to create season: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetSeason(ctx context.Context, input *GetSeasonInput) (*models.Season, error) {
	if input == nil || input.SeasonID == "" {
		return nil, errors.New("season ID cannot be empty")
	}

	var row seasonRow
	if err := r.db.WithContext(ctx).Where("id = ?", input.SeasonID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, fmt.Errorf("failed to get season: %w", err)
	}
	return row.toModel(), nil
}

func (r *postgresRepository) FindActiveSeason(ctx context.Context, input *FindActiveSeasonInput) (*models.Season, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("game ID cannot be empty")
	}

	var row seasonRow
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND is_active = ?", input.GameID, true).
		Where("started_at <= ?", input.At).
		Where("(ended_at IS NULL OR ended_at >= ?)", input.At).
		Order("started_at DESC").
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, fmt.Errorf("failed to find active season: %w", err)
	}
	return row.toModel(), nil
}

func (r *postgresRepository) ListSeasonsByGame(ctx context.Context, input *ListSeasonsByGameInput) (*ListSeasonsByGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("game ID cannot be empty")
	}

	var rows []seasonRow
	err := r.db.WithContext(ctx).
		Where("game_id = ?", input.GameID).
		Order("started_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}

	seasons := make([]*models.Season, 0, len(rows))
	for i := range rows {
		seasons = append(seasons, rows[i].toModel())
	}
	return &ListSeasonsByGameOutput{Seasons: seasons}, nil
}

func (r *postgresRepository) FinishSeason(ctx context.Context, input *FinishSeasonInput) (*models.Season, error) {
	if input == nil || input.SeasonID == "" {
		return nil, errors.New("season ID cannot be empty")
	}

	res := r.db.WithContext(ctx).Model(&seasonRow{}).
		Where("id = ? AND is_active = ?", input.SeasonID, true).
		Updates(map[string]interface{}{
			"is_active": false,
			"ended_at":  input.EndedAt,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to finish season: %w", res.Error)
	}

	season, err := r.GetSeason(ctx, &GetSeasonInput{SeasonID: input.SeasonID})
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		return nil, ErrSeasonNotActive
	}
	return season, nil
}
