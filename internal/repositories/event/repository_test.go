package event

import (
	"context"
	"testing"
	"time"

	"github.com/Draft-Lab/panela-tracker/internal/models"
	"github.com/Draft-Lab/panela-tracker/internal/storage/storagetest"
	"github.com/stretchr/testify/suite"
)

type RepositoryTestSuite struct {
	suite.Suite
	backend string
	repo    Repository
	ctx     context.Context
	testNow time.Time
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)

	switch s.backend {
	case "redis":
		_, client := storagetest.NewRedis(s.T())
		repo, err := NewRedis(&Config{RedisClient: client})
		s.Require().NoError(err)
		s.repo = repo
	case "postgres":
		db := storagetest.NewSQLite(s.T())
		s.Require().NoError(AutoMigrate(db))
		repo, err := NewPostgres(&PostgresConfig{DB: db})
		s.Require().NoError(err)
		s.repo = repo
	}
}

func TestRedisRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{backend: "redis"})
}

func TestPostgresRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{backend: "postgres"})
}

func (s *RepositoryTestSuite) appendEvent(id, sessionID, playerID string, kind models.EventKind, at time.Time) {
	s.Require().NoError(s.repo.AppendEvent(s.ctx, &AppendEventInput{Event: &models.SessionEvent{
		ID:        id,
		SessionID: sessionID,
		PlayerID:  playerID,
		Kind:      kind,
		Timestamp: at,
	}}))
}

func (s *RepositoryTestSuite) TestListEventsOrderedByTimestamp() {
	s.appendEvent("e1", "session-1", "player-1", models.EventKindJoined, s.testNow.Add(10*time.Minute))
	s.appendEvent("e2", "session-1", "player-2", models.EventKindJoined, s.testNow)
	s.appendEvent("e3", "session-2", "player-3", models.EventKindJoined, s.testNow)
	s.appendEvent("e4", "session-1", "player-2", models.EventKindLeave, s.testNow.Add(20*time.Minute))

	out, err := s.repo.ListEvents(s.ctx, &ListEventsInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Require().Len(out.Events, 3)
	s.Equal("e2", out.Events[0].ID)
	s.Equal("e1", out.Events[1].ID)
	s.Equal("e4", out.Events[2].ID)
	s.Equal(models.EventKindLeave, out.Events[2].Kind)
	s.True(out.Events[0].Timestamp.Equal(s.testNow))
}

func (s *RepositoryTestSuite) TestListEventsEqualTimestampsKeepAppendOrder() {
	s.appendEvent("e1", "session-1", "player-1", models.EventKindJoined, s.testNow)
	s.appendEvent("e2", "session-1", "player-1", models.EventKindLeave, s.testNow)
	s.appendEvent("e3", "session-1", "player-2", models.EventKindJoined, s.testNow)

	out, err := s.repo.ListEvents(s.ctx, &ListEventsInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Require().Len(out.Events, 3)
	s.Equal("e1", out.Events[0].ID)
	s.Equal("e2", out.Events[1].ID)
	s.Equal("e3", out.Events[2].ID)
}

func (s *RepositoryTestSuite) TestListEventsEmpty() {
	out, err := s.repo.ListEvents(s.ctx, &ListEventsInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Empty(out.Events)
}

func (s *RepositoryTestSuite) TestAppendEventRejectsUnknownKind() {
	err := s.repo.AppendEvent(s.ctx, &AppendEventInput{Event: &models.SessionEvent{
		ID:        "e1",
		SessionID: "session-1",
		PlayerID:  "player-1",
		Kind:      "paused",
		Timestamp: s.testNow,
	}})
	s.Error(err)
}
