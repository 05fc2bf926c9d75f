package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Draft-Lab/panela-tracker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// currentSessionIndex enforces one open session per game and source
const currentSessionIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_current_game_source
	ON sessions (game_id, source) WHERE is_current`

type sessionRow struct {
	ID                   string    `gorm:"primaryKey;type:varchar(64)"`
	GameID               string    `gorm:"type:varchar(64);not null;index"`
	IsCurrent            bool      `gorm:"not null"`
	SessionType          string    `gorm:"type:varchar(16);not null"`
	Source               string    `gorm:"type:varchar(32);not null"`
	FirstEventAt         time.Time `gorm:"not null"`
	LastEventAt          time.Time `gorm:"not null"`
	ActivePlayers        int       `gorm:"not null"`
	TotalDurationMinutes int       `gorm:"not null"`
	SeasonID             *string   `gorm:"type:varchar(64);index"`
	Notes                string    `gorm:"type:text"`
}

func (sessionRow) TableName() string { return "sessions" }

func toRow(s *models.Session) *sessionRow {
	row := &sessionRow{
		ID:                   s.ID,
		GameID:               s.GameID,
		IsCurrent:            s.IsCurrent,
		SessionType:          string(s.SessionType),
		Source:               string(s.Source),
		FirstEventAt:         s.FirstEventAt,
		LastEventAt:          s.LastEventAt,
		ActivePlayers:        s.ActivePlayers,
		TotalDurationMinutes: s.TotalDurationMinutes,
		Notes:                s.Notes,
	}
	if s.SeasonID != "" {
		seasonID := s.SeasonID
		row.SeasonID = &seasonID
	}
	return row
}

func (row *sessionRow) toModel() *models.Session {
	s := &models.Session{
		ID:                   row.ID,
		GameID:               row.GameID,
		IsCurrent:            row.IsCurrent,
		SessionType:          models.SessionType(row.SessionType),
		Source:               models.SessionSource(row.Source),
		FirstEventAt:         row.FirstEventAt.UTC(),
		LastEventAt:          row.LastEventAt.UTC(),
		ActivePlayers:        row.ActivePlayers,
		TotalDurationMinutes: row.TotalDurationMinutes,
		Notes:                row.Notes,
	}
	if row.SeasonID != nil {
		s.SeasonID = *row.SeasonID
	}
	return s
}

// AutoMigrate creates or updates the sessions table and its partial unique index
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&sessionRow{}); err != nil {
		return err
	}
	return db.Exec(currentSessionIndex).Error
}

// PostgresConfig holds configuration for the SQL session repository
type PostgresConfig struct {
	DB *gorm.DB
}

type postgresRepository struct {
	db *gorm.DB
}

// NewPostgres creates a new SQL-backed session repository
func NewPostgres(cfg *PostgresConfig) (*postgresRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.DB == nil {
		return nil, errors.New("db cannot be nil")
	}
	return &postgresRepository{db: cfg.DB}, nil
}

func (r *postgresRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("session ID cannot be empty")
	}
	return r.take(r.db.WithContext(ctx).Where("id = ?", input.SessionID))
}

func (r *postgresRepository) GetCurrentSession(ctx context.Context, input *GetCurrentSessionInput) (*models.Session, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("game ID cannot be empty")
	}
	return r.take(r.db.WithContext(ctx).
		Where("game_id = ? AND source = ? AND is_current = ?", input.GameID, string(input.Source), true))
}

func (r *postgresRepository) take(query *gorm.DB) (*models.Session, error) {
	var row sessionRow
	if err := query.Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return row.toModel(), nil
}

// CreateSession inserts the session. The partial unique index turns a second
// current session for the same game into a no-op insert.
func (r *postgresRepository) CreateSession(ctx context.Context, input *CreateSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}
	if input.Session.ID == "" || input.Session.GameID == "" {
		return errors.New("session ID and game ID cannot be empty")
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(toRow(input.Session))
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrCurrentSessionExists
		}
		return fmt.Errorf("failed to create session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCurrentSessionExists
	}
	return nil
}

func (r *postgresRepository) UpdateCounters(ctx context.Context, input *UpdateCountersInput) (*UpdateCountersOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("session ID cannot be empty")
	}

	var row sessionRow
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&sessionRow{}).
			Where("id = ?", input.SessionID).
			Updates(map[string]interface{}{
				"active_players": gorm.Expr("CASE WHEN active_players + ? < 0 THEN 0 ELSE active_players + ? END", input.Delta, input.Delta),
				"last_event_at":  input.EventAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSessionNotFound
		}

		err := tx.Model(&sessionRow{}).
			Where("id = ?", input.SessionID).
			Update("session_type", gorm.Expr("CASE WHEN active_players > 1 THEN ? ELSE ? END",
				string(models.SessionTypeGroup), string(models.SessionTypeSolo))).Error
		if err != nil {
			return err
		}

		return tx.Where("id = ?", input.SessionID).Take(&row).Error
	})
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update counters: %w", err)
	}

	return &UpdateCountersOutput{
		ActivePlayers: row.ActivePlayers,
		SessionType:   models.SessionType(row.SessionType),
	}, nil
}

func (r *postgresRepository) CloseSession(ctx context.Context, input *CloseSessionInput) (*CloseSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("session ID cannot be empty")
	}

	res := r.db.WithContext(ctx).Model(&sessionRow{}).
		Where("id = ? AND is_current = ? AND active_players = ?", input.SessionID, true, 0).
		Updates(map[string]interface{}{
			"is_current":             false,
			"last_event_at":          input.ClosedAt,
			"total_duration_minutes": input.TotalDurationMinutes,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to close session: %w", res.Error)
	}
	if res.RowsAffected == 1 {
		return &CloseSessionOutput{Closed: true}, nil
	}

	if _, err := r.GetSession(ctx, &GetSessionInput{SessionID: input.SessionID}); err != nil {
		return nil, err
	}
	return &CloseSessionOutput{Closed: false}, nil
}

func (r *postgresRepository) LinkSeason(ctx context.Context, input *LinkSeasonInput) error {
	if input == nil || input.SessionID == "" || input.SeasonID == "" {
		return errors.New("session ID and season ID cannot be empty")
	}

	res := r.db.WithContext(ctx).Model(&sessionRow{}).
		Where("id = ?", input.SessionID).
		Update("season_id", input.SeasonID)
	if res.Error != nil {
		return fmt.Errorf("failed to link season: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *postgresRepository) ListCurrentSessions(ctx context.Context, input *ListCurrentSessionsInput) (*ListCurrentSessionsOutput, error) {
	var rows []sessionRow
	err := r.db.WithContext(ctx).
		Where("is_current = ?", true).
		Order("first_event_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list current sessions: %w", err)
	}

	sessions := make([]*models.Session, 0, len(rows))
	for i := range rows {
		sessions = append(sessions, rows[i].toModel())
	}
	return &ListCurrentSessionsOutput{Sessions: sessions}, nil
}
