package participant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Draft-Lab/panela-tracker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type participantRow struct {
	ID                   string     `gorm:"primaryKey;type:varchar(64)"`
	SeasonID             string     `gorm:"type:varchar(64);not null;uniqueIndex:idx_season_participant"`
	PlayerID             string     `gorm:"type:varchar(64);not null;uniqueIndex:idx_season_participant"`
	Status               string     `gorm:"type:varchar(32);not null"`
	TotalSessions        int        `gorm:"not null"`
	TotalDurationMinutes int        `gorm:"not null"`
	SoloDurationMinutes  int        `gorm:"not null"`
	GroupDurationMinutes int        `gorm:"not null"`
	Notes                string     `gorm:"type:text"`
	StatusUpdatedAt      *time.Time
}

func (participantRow) TableName() string { return "season_participants" }

func (row *participantRow) toModel() *models.SeasonParticipant {
	p := &models.SeasonParticipant{
		ID:                   row.ID,
		SeasonID:             row.SeasonID,
		PlayerID:             row.PlayerID,
		Status:               row.Status,
		TotalSessions:        row.TotalSessions,
		TotalDurationMinutes: row.TotalDurationMinutes,
		SoloDurationMinutes:  row.SoloDurationMinutes,
		GroupDurationMinutes: row.GroupDurationMinutes,
		Notes:                row.Notes,
	}
	if row.StatusUpdatedAt != nil {
		at := row.StatusUpdatedAt.UTC()
		p.StatusUpdatedAt = &at
	}
	return p
}

// AutoMigrate creates or updates the season_participants table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&participantRow{})
}

// PostgresConfig holds configuration for the SQL participant repository
type PostgresConfig struct {
	DB *gorm.DB
}

type postgresRepository struct {
	db *gorm.DB
}

// NewPostgres creates a new SQL-backed participant repository
func NewPostgres(cfg *PostgresConfig) (*postgresRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.DB == nil {
		return nil, errors.New("db cannot be nil")
	}
	return &postgresRepository{db: cfg.DB}, nil
}

func (r *postgresRepository) scoped(ctx context.Context, seasonID, playerID string) *gorm.DB {
	return r.db.WithContext(ctx).Model(&participantRow{}).
		Where("season_id = ? AND player_id = ?", seasonID, playerID)
}

func (r *postgresRepository) GetParticipant(ctx context.Context, input *GetParticipantInput) (*models.SeasonParticipant, error) {
	if input == nil || input.SeasonID == "" || input.PlayerID == "" {
		return nil, errors.New("season ID and player ID cannot be empty")
	}

	var row participantRow
	if err := r.scoped(ctx, input.SeasonID, input.PlayerID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return row.toModel(), nil
}

func (r *postgresRepository) CreateParticipant(ctx context.Context, input *CreateParticipantInput) error {
	if input == nil || input.Participant == nil {
		return errors.New("input and participant cannot be nil")
	}
	p := input.Participant
	if p.ID == "" || p.SeasonID == "" || p.PlayerID == "" {
		return errors.New("participant ID, season ID and player ID cannot be empty")
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&participantRow{
			ID:                   p.ID,
			SeasonID:             p.SeasonID,
			PlayerID:             p.PlayerID,
			Status:               p.Status,
			TotalSessions:        p.TotalSessions,
			TotalDurationMinutes: p.TotalDurationMinutes,
			SoloDurationMinutes:  p.SoloDurationMinutes,
			GroupDurationMinutes: p.GroupDurationMinutes,
			Notes:                p.Notes,
			StatusUpdatedAt:      p.StatusUpdatedAt,
		})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrParticipantAlreadyExists
		}
		return fmt.Errorf("failed to create participant: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrParticipantAlreadyExists
	}
	return nil
}

// IncrementParticipant adds in SQL so concurrent finalizers do not lose updates
func (r *postgresRepository) IncrementParticipant(ctx context.Context, input *IncrementParticipantInput) error {
	if input == nil || input.SeasonID == "" || input.PlayerID == "" {
		return errors.New("season ID and player ID cannot be empty")
	}

	res := r.scoped(ctx, input.SeasonID, input.PlayerID).Updates(map[string]interface{}{
		"total_sessions":         gorm.Expr("total_sessions + ?", input.Sessions),
		"total_duration_minutes": gorm.Expr("total_duration_minutes + ?", input.TotalDurationMinutes),
		"solo_duration_minutes":  gorm.Expr("solo_duration_minutes + ?", input.SoloDurationMinutes),
		"group_duration_minutes": gorm.Expr("group_duration_minutes + ?", input.GroupDurationMinutes),
	})
	if res.Error != nil {
		return fmt.Errorf("failed to increment participant: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrParticipantNotFound
	}
	return nil
}

func (r *postgresRepository) SetOutcome(ctx context.Context, input *SetOutcomeInput) error {
	if input == nil || input.SeasonID == "" || input.PlayerID == "" {
		return errors.New("season ID and player ID cannot be empty")
	}

	res := r.scoped(ctx, input.SeasonID, input.PlayerID).Updates(map[string]interface{}{
		"status":            input.Status,
		"notes":             input.Notes,
		"status_updated_at": input.At,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to set participant outcome: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrParticipantNotFound
	}
	return nil
}

func (r *postgresRepository) ListParticipants(ctx context.Context, input *ListParticipantsInput) (*ListParticipantsOutput, error) {
	if input == nil || input.SeasonID == "" {
		return nil, errors.New("season ID cannot be empty")
	}

	var rows []participantRow
	err := r.db.WithContext(ctx).
		Where("season_id = ?", input.SeasonID).
		Order("player_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	participants := make([]*models.SeasonParticipant, 0, len(rows))
	for i := range rows {
		participants = append(participants, rows[i].toModel())
	}
	return &ListParticipantsOutput{Participants: participants}, nil
}
