package session

import (
	"context"
	"fmt"
	"sync"
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

func (s *RepositoryTestSuite) newSession(id, gameID string) *models.Session {
	return &models.Session{
		ID:           id,
		GameID:       gameID,
		IsCurrent:    true,
		SessionType:  models.SessionTypeSolo,
		Source:       models.SessionSourceExternalBot,
		FirstEventAt: s.testNow,
		LastEventAt:  s.testNow,
	}
}

func (s *RepositoryTestSuite) TestCreateAndGetCurrentSession() {
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{
		Session: s.newSession("session-1", "game-1"),
	}))

	current, err := s.repo.GetCurrentSession(s.ctx, &GetCurrentSessionInput{
		GameID: "game-1",
		Source: models.SessionSourceExternalBot,
	})
	s.Require().NoError(err)
	s.Equal("session-1", current.ID)
	s.True(current.IsCurrent)
	s.Equal(models.SessionTypeSolo, current.SessionType)
	s.True(current.FirstEventAt.Equal(s.testNow))

	// other sources have their own pointer
	_, err = s.repo.GetCurrentSession(s.ctx, &GetCurrentSessionInput{
		GameID: "game-1",
		Source: models.SessionSourceManual,
	})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *RepositoryTestSuite) TestCreateSecondCurrentSessionFails() {
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{
		Session: s.newSession("session-1", "game-1"),
	}))

	err := s.repo.CreateSession(s.ctx, &CreateSessionInput{
		Session: s.newSession("session-2", "game-1"),
	})
	s.ErrorIs(err, ErrCurrentSessionExists)

	// a different game is unaffected
	s.NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{
		Session: s.newSession("session-3", "game-2"),
	}))
}

func (s *RepositoryTestSuite) TestConcurrentCreateCurrentSession() {
	const writers = 8

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created []string
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("session-%d", i)
			err := s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: s.newSession(id, "game-1")})
			if err == nil {
				mu.Lock()
				created = append(created, id)
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	s.Require().Len(created, 1)
	current, err := s.repo.GetCurrentSession(s.ctx, &GetCurrentSessionInput{
		GameID: "game-1",
		Source: models.SessionSourceExternalBot,
	})
	s.Require().NoError(err)
	s.Equal(created[0], current.ID)
}

func (s *RepositoryTestSuite) TestUpdateCounters() {
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{
		Session: s.newSession("session-1", "game-1"),
	}))

	out, err := s.repo.UpdateCounters(s.ctx, &UpdateCountersInput{SessionID: "session-1", Delta: 1, EventAt: s.testNow})
	s.Require().NoError(err)
	s.Equal(1, out.ActivePlayers)
	s.Equal(models.SessionTypeSolo, out.SessionType)

	later := s.testNow.Add(10 * time.Minute)
	out, err = s.repo.UpdateCounters(s.ctx, &UpdateCountersInput{SessionID: "session-1", Delta: 1, EventAt: later})
	s.Require().NoError(err)
	s.Equal(2, out.ActivePlayers)
	s.Equal(models.SessionTypeGroup, out.SessionType)

	stored, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Equal(2, stored.ActivePlayers)
	s.True(stored.LastEventAt.Equal(later))
}

func (s *RepositoryTestSuite) TestUpdateCountersFloorsAtZero() {
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{
		Session: s.newSession("session-1", "game-1"),
	}))

	out, err := s.repo.UpdateCounters(s.ctx, &UpdateCountersInput{SessionID: "session-1", Delta: -1, EventAt: s.testNow})
	s.Require().NoError(err)
	s.Equal(0, out.ActivePlayers)
	s.Equal(models.SessionTypeSolo, out.SessionType)
}

func (s *RepositoryTestSuite) TestUpdateCountersNotFound() {
	_, err := s.repo.UpdateCounters(s.ctx, &UpdateCountersInput{SessionID: "missing", Delta: 1, EventAt: s.testNow})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *RepositoryTestSuite) TestConcurrentUpdateCounters() {
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{
		Session: s.newSession("session-1", "game-1"),
	}))

	const joins = 10
	var wg sync.WaitGroup
	for i := 0; i < joins; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.repo.UpdateCounters(s.ctx, &UpdateCountersInput{SessionID: "session-1", Delta: 1, EventAt: s.testNow})
			s.NoError(err)
		}()
	}
	wg.Wait()

	stored, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Equal(joins, stored.ActivePlayers)
	s.Equal(models.SessionTypeGroup, stored.SessionType)
}

func (s *RepositoryTestSuite) TestConcurrentMixedUpdateCounters() {
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{
		Session: s.newSession("session-1", "game-1"),
	}))

	const workers = 8
	const rounds = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				for _, delta := range []int{1, 1, -1} {
					_, err := s.repo.UpdateCounters(s.ctx, &UpdateCountersInput{SessionID: "session-1", Delta: delta, EventAt: s.testNow})
					s.NoError(err)
				}
			}
		}()
	}
	wg.Wait()

	stored, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Equal(workers*rounds, stored.ActivePlayers)
}

func (s *RepositoryTestSuite) TestUpdateCountersKeepsOtherFields() {
	session := s.newSession("session-1", "game-1")
	session.SeasonID = "season-1"
	session.Notes = "friday night"
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: session}))

	_, err := s.repo.UpdateCounters(s.ctx, &UpdateCountersInput{SessionID: "session-1", Delta: 1, EventAt: s.testNow.Add(time.Minute)})
	s.Require().NoError(err)

	stored, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Equal("game-1", stored.GameID)
	s.Equal("season-1", stored.SeasonID)
	s.Equal("friday night", stored.Notes)
	s.True(stored.IsCurrent)
	s.Equal(models.SessionSourceExternalBot, stored.Source)
	s.True(stored.FirstEventAt.Equal(s.testNow))
	s.True(stored.LastEventAt.Equal(s.testNow.Add(time.Minute)))
}

func (s *RepositoryTestSuite) TestCloseSession() {
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{
		Session: s.newSession("session-1", "game-1"),
	}))

	closedAt := s.testNow.Add(90 * time.Minute)
	out, err := s.repo.CloseSession(s.ctx, &CloseSessionInput{
		SessionID:            "session-1",
		ClosedAt:             closedAt,
		TotalDurationMinutes: 90,
	})
	s.Require().NoError(err)
	s.True(out.Closed)

	// only the first close wins
	out, err = s.repo.CloseSession(s.ctx, &CloseSessionInput{SessionID: "session-1", ClosedAt: closedAt})
	s.Require().NoError(err)
	s.False(out.Closed)

	stored, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.False(stored.IsCurrent)
	s.Equal(90, stored.TotalDurationMinutes)

	_, err = s.repo.GetCurrentSession(s.ctx, &GetCurrentSessionInput{
		GameID: "game-1",
		Source: models.SessionSourceExternalBot,
	})
	s.ErrorIs(err, ErrSessionNotFound)

	// the game can open a new session afterwards
	s.NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{
		Session: s.newSession("session-2", "game-1"),
	}))
}

func (s *RepositoryTestSuite) TestCloseSessionWithActivePlayers() {
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{
		Session: s.newSession("session-1", "game-1"),
	}))
	_, err := s.repo.UpdateCounters(s.ctx, &UpdateCountersInput{SessionID: "session-1", Delta: 1, EventAt: s.testNow})
	s.Require().NoError(err)

	out, err := s.repo.CloseSession(s.ctx, &CloseSessionInput{SessionID: "session-1", ClosedAt: s.testNow})
	s.Require().NoError(err)
	s.False(out.Closed)

	stored, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.True(stored.IsCurrent)
}

func (s *RepositoryTestSuite) TestCloseSessionNotFound() {
	_, err := s.repo.CloseSession(s.ctx, &CloseSessionInput{SessionID: "missing", ClosedAt: s.testNow})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *RepositoryTestSuite) TestLinkSeason() {
	s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{
		Session: s.newSession("session-1", "game-1"),
	}))

	s.Require().NoError(s.repo.LinkSeason(s.ctx, &LinkSeasonInput{SessionID: "session-1", SeasonID: "season-1"}))

	stored, err := s.repo.GetSession(s.ctx, &GetSessionInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Equal("season-1", stored.SeasonID)

	err = s.repo.LinkSeason(s.ctx, &LinkSeasonInput{SessionID: "missing", SeasonID: "season-1"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *RepositoryTestSuite) TestListCurrentSessions() {
	first := s.newSession("session-1", "game-1")
	second := s.newSession("session-2", "game-2")
	second.FirstEventAt = s.testNow.Add(time.Minute)
	closed := s.newSession("session-3", "game-3")

	for _, sess := range []*models.Session{second, first, closed} {
		s.Require().NoError(s.repo.CreateSession(s.ctx, &CreateSessionInput{Session: sess}))
	}
	_, err := s.repo.CloseSession(s.ctx, &CloseSessionInput{SessionID: "session-3", ClosedAt: s.testNow})
	s.Require().NoError(err)

	out, err := s.repo.ListCurrentSessions(s.ctx, &ListCurrentSessionsInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Sessions, 2)
	s.Equal("session-1", out.Sessions[0].ID)
	s.Equal("session-2", out.Sessions[1].ID)
}
