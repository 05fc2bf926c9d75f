package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Draft-Lab/panela-tracker/internal/models"
	"gorm.io/gorm"
)

// eventRow keeps an autoincrement sequence so equal timestamps list in
// append order
type eventRow struct {
	Seq       uint64    `gorm:"primaryKey;autoIncrement"`
	ID        string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	SessionID string    `gorm:"type:varchar(64);not null;index:idx_session_events_session_ts"`
	PlayerID  string    `gorm:"type:varchar(64);not null"`
	Kind      string    `gorm:"type:varchar(16);not null"`
	Timestamp time.Time `gorm:"column:occurred_at;not null;index:idx_session_events_session_ts"`
}

func (eventRow) TableName() string { return "session_events" }

// AutoMigrate creates or updates the session_events table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&eventRow{})
}

// PostgresConfig holds configuration for the SQL event repository
type PostgresConfig struct {
	DB *gorm.DB
}

type postgresRepository struct {
	db *gorm.DB
}

// NewPostgres creates a new SQL-backed event repository
func NewPostgres(cfg *PostgresConfig) (*postgresRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.DB == nil {
		return nil, errors.New("db cannot be nil")
	}
	return &postgresRepository{db: cfg.DB}, nil
}

func (r *postgresRepository) AppendEvent(ctx context.Context, input *AppendEventInput) error {
	if input == nil || input.Event == nil {
		return errors.New("input and event cannot be nil")
	}
	e := input.Event
	if e.ID == "" || e.SessionID == "" || e.PlayerID == "" {
		return errors.New("event ID, session ID and player ID cannot be empty")
	}
	if !e.Kind.IsValid() {
		return fmt.Errorf("invalid event kind %q", e.Kind)
	}

	err := r.db.WithContext(ctx).Create(&eventRow{
		ID:        e.ID,
		SessionID: e.SessionID,
		PlayerID:  e.PlayerID,
		Kind:      string(e.Kind),
		Timestamp: e.Timestamp,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListEvents(ctx context.Context, input *ListEventsInput) (*ListEventsOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("session ID cannot be empty")
	}

	var rows []eventRow
	err := r.db.WithContext(ctx).
		Where("session_id = ?", input.SessionID).
		Order("occurred_at ASC, seq ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]*models.SessionEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, &models.SessionEvent{
			ID:        row.ID,
			SessionID: row.SessionID,
			PlayerID:  row.PlayerID,
			Kind:      models.EventKind(row.Kind),
			Timestamp: row.Timestamp.UTC(),
		})
	}
	return &ListEventsOutput{Events: events}, nil
}
