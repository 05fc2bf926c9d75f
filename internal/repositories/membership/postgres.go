package membership

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Draft-Lab/panela-tracker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type membershipRow struct {
	ID                   string    `gorm:"primaryKey;type:varchar(64)"`
	SessionID            string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_membership_session_player"`
	PlayerID             string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_membership_session_player;index"`
	Status               string    `gorm:"type:varchar(32);not null"`
	IsActive             bool      `gorm:"not null"`
	SoloDurationMinutes  int       `gorm:"not null"`
	GroupDurationMinutes int       `gorm:"not null"`
	TotalDurationMinutes int       `gorm:"not null"`
	Notes                string    `gorm:"type:text"`
	CreatedAt            time.Time `gorm:"not null"`
}

func (membershipRow) TableName() string { return "session_memberships" }

func (row *membershipRow) toModel() *models.Membership {
	return &models.Membership{
		ID:                   row.ID,
		SessionID:            row.SessionID,
		PlayerID:             row.PlayerID,
		Status:               row.Status,
		IsActive:             row.IsActive,
		SoloDurationMinutes:  row.SoloDurationMinutes,
		GroupDurationMinutes: row.GroupDurationMinutes,
		TotalDurationMinutes: row.TotalDurationMinutes,
		Notes:                row.Notes,
		CreatedAt:            row.CreatedAt.UTC(),
	}
}

// AutoMigrate creates or updates the session_memberships table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&membershipRow{})
}

// PostgresConfig holds configuration for the SQL membership repository
type PostgresConfig struct {
	DB *gorm.DB
}

type postgresRepository struct {
	db *gorm.DB
}

// NewPostgres creates a new SQL-backed membership repository
func NewPostgres(cfg *PostgresConfig) (*postgresRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.DB == nil {
		return nil, errors.New("db cannot be nil")
	}
	return &postgresRepository{db: cfg.DB}, nil
}

func (r *postgresRepository) scoped(ctx context.Context, sessionID, playerID string) *gorm.DB {
	return r.db.WithContext(ctx).Model(&membershipRow{}).
		Where("session_id = ? AND player_id = ?", sessionID, playerID)
}

func (r *postgresRepository) GetMembership(ctx context.Context, input *GetMembershipInput) (*models.Membership, error) {
	if input == nil || input.SessionID == "" || input.PlayerID == "" {
		return nil, errors.New("session ID and player ID cannot be empty")
	}

	var row membershipRow
	if err := r.scoped(ctx, input.SessionID, input.PlayerID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return row.toModel(), nil
}

func (r *postgresRepository) CreateMembership(ctx context.Context, input *CreateMembershipInput) error {
	if input == nil || input.Membership == nil {
		return errors.New("input and membership cannot be nil")
	}
	m := input.Membership
	if m.ID == "" || m.SessionID == "" || m.PlayerID == "" {
		return errors.New("membership ID, session ID and player ID cannot be empty")
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&membershipRow{
			ID:                   m.ID,
			SessionID:            m.SessionID,
			PlayerID:             m.PlayerID,
			Status:               m.Status,
			IsActive:             m.IsActive,
			SoloDurationMinutes:  m.SoloDurationMinutes,
			GroupDurationMinutes: m.GroupDurationMinutes,
			TotalDurationMinutes: m.TotalDurationMinutes,
			Notes:                m.Notes,
			CreatedAt:            m.CreatedAt,
		})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrMembershipAlreadyExists
		}
		return fmt.Errorf("failed to create membership: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrMembershipAlreadyExists
	}
	return nil
}

// SetActive updates the flag conditionally so concurrent callers cannot both
// observe a change
func (r *postgresRepository) SetActive(ctx context.Context, input *SetActiveInput) (*SetActiveOutput, error) {
	if input == nil || input.SessionID == "" || input.PlayerID == "" {
		return nil, errors.New("session ID and player ID cannot be empty")
	}

	res := r.scoped(ctx, input.SessionID, input.PlayerID).
		Where("is_active = ?", !input.Active).
		Update("is_active", input.Active)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to set active: %w", res.Error)
	}
	if res.RowsAffected == 1 {
		return &SetActiveOutput{Changed: true}, nil
	}

	if _, err := r.GetMembership(ctx, &GetMembershipInput{SessionID: input.SessionID, PlayerID: input.PlayerID}); err != nil {
		return nil, err
	}
	return &SetActiveOutput{Changed: false}, nil
}

func (r *postgresRepository) WriteDurations(ctx context.Context, input *WriteDurationsInput) error {
	if input == nil || input.SessionID == "" || input.PlayerID == "" {
		return errors.New("session ID and player ID cannot be empty")
	}

	return r.updateOne(ctx, input.SessionID, input.PlayerID, map[string]interface{}{
		"solo_duration_minutes":  input.SoloDurationMinutes,
		"group_duration_minutes": input.GroupDurationMinutes,
		"total_duration_minutes": input.TotalDurationMinutes,
	})
}

func (r *postgresRepository) SetOutcome(ctx context.Context, input *SetOutcomeInput) error {
	if input == nil || input.SessionID == "" || input.PlayerID == "" {
		return errors.New("session ID and player ID cannot be empty")
	}

	return r.updateOne(ctx, input.SessionID, input.PlayerID, map[string]interface{}{
		"status": input.Status,
		"notes":  input.Notes,
	})
}

func (r *postgresRepository) updateOne(ctx context.Context, sessionID, playerID string, values map[string]interface{}) error {
	res := r.scoped(ctx, sessionID, playerID).Updates(values)
	if res.Error != nil {
		return fmt.Errorf("failed to update membership: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrMembershipNotFound
	}
	return nil
}

func (r *postgresRepository) ListMemberships(ctx context.Context, input *ListMembershipsInput) (*ListMembershipsOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("session ID cannot be empty")
	}

	var rows []membershipRow
	err := r.db.WithContext(ctx).
		Where("session_id = ?", input.SessionID).
		Order("created_at ASC, player_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}

	memberships := make([]*models.Membership, 0, len(rows))
	for i := range rows {
		memberships = append(memberships, rows[i].toModel())
	}
	return &ListMembershipsOutput{Memberships: memberships}, nil
}
