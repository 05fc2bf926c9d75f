package membership

import (
	"context"
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

func (s *RepositoryTestSuite) create(playerID string, at time.Time) {
	s.Require().NoError(s.repo.CreateMembership(s.ctx, &CreateMembershipInput{
		Membership: &models.Membership{
			ID:        "membership-" + playerID,
			SessionID: "session-1",
			PlayerID:  playerID,
			Status:    models.StatusWouldPlayAgain,
			IsActive:  true,
			CreatedAt: at,
		},
	}))
}

func (s *RepositoryTestSuite) TestCreateAndGetMembership() {
	s.create("player-1", s.testNow)

	m, err := s.repo.GetMembership(s.ctx, &GetMembershipInput{SessionID: "session-1", PlayerID: "player-1"})
	s.Require().NoError(err)
	s.True(m.IsActive)
	s.Equal(models.StatusWouldPlayAgain, m.Status)
	s.Equal(0, m.TotalDurationMinutes)
}

func (s *RepositoryTestSuite) TestGetMembershipNotFound() {
	_, err := s.repo.GetMembership(s.ctx, &GetMembershipInput{SessionID: "session-1", PlayerID: "nobody"})
	s.ErrorIs(err, ErrMembershipNotFound)
}

func (s *RepositoryTestSuite) TestCreateMembershipDuplicate() {
	s.create("player-1", s.testNow)

	err := s.repo.CreateMembership(s.ctx, &CreateMembershipInput{
		Membership: &models.Membership{
			ID:        "membership-other",
			SessionID: "session-1",
			PlayerID:  "player-1",
			CreatedAt: s.testNow,
		},
	})
	s.ErrorIs(err, ErrMembershipAlreadyExists)
}

func (s *RepositoryTestSuite) TestSetActive() {
	s.create("player-1", s.testNow)

	out, err := s.repo.SetActive(s.ctx, &SetActiveInput{SessionID: "session-1", PlayerID: "player-1", Active: true})
	s.Require().NoError(err)
	s.False(out.Changed, "already active")

	out, err = s.repo.SetActive(s.ctx, &SetActiveInput{SessionID: "session-1", PlayerID: "player-1", Active: false})
	s.Require().NoError(err)
	s.True(out.Changed)

	m, err := s.repo.GetMembership(s.ctx, &GetMembershipInput{SessionID: "session-1", PlayerID: "player-1"})
	s.Require().NoError(err)
	s.False(m.IsActive)

	_, err = s.repo.SetActive(s.ctx, &SetActiveInput{SessionID: "session-1", PlayerID: "nobody", Active: true})
	s.ErrorIs(err, ErrMembershipNotFound)
}

func (s *RepositoryTestSuite) TestConcurrentSetActiveChangesOnce() {
	s.create("player-1", s.testNow)

	const callers = 6
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		changed int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := s.repo.SetActive(s.ctx, &SetActiveInput{SessionID: "session-1", PlayerID: "player-1", Active: false})
			if err == nil && out.Changed {
				mu.Lock()
				changed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(1, changed)
}

func (s *RepositoryTestSuite) TestWriteDurationsAndOutcome() {
	s.create("player-1", s.testNow)

	s.Require().NoError(s.repo.WriteDurations(s.ctx, &WriteDurationsInput{
		SessionID:            "session-1",
		PlayerID:             "player-1",
		SoloDurationMinutes:  20,
		GroupDurationMinutes: 40,
		TotalDurationMinutes: 60,
	}))
	s.Require().NoError(s.repo.SetOutcome(s.ctx, &SetOutcomeInput{
		SessionID: "session-1",
		PlayerID:  "player-1",
		Status:    models.StatusFinished,
		Notes:     "beat the final boss",
	}))

	m, err := s.repo.GetMembership(s.ctx, &GetMembershipInput{SessionID: "session-1", PlayerID: "player-1"})
	s.Require().NoError(err)
	s.Equal(20, m.SoloDurationMinutes)
	s.Equal(40, m.GroupDurationMinutes)
	s.Equal(60, m.TotalDurationMinutes)
	s.Equal(models.StatusFinished, m.Status)
	s.Equal("beat the final boss", m.Notes)

	err = s.repo.WriteDurations(s.ctx, &WriteDurationsInput{SessionID: "session-1", PlayerID: "nobody"})
	s.ErrorIs(err, ErrMembershipNotFound)
}

func (s *RepositoryTestSuite) TestListMembershipsInJoinOrder() {
	s.create("player-b", s.testNow.Add(time.Minute))
	s.create("player-a", s.testNow)
	s.create("player-c", s.testNow.Add(2*time.Minute))

	out, err := s.repo.ListMemberships(s.ctx, &ListMembershipsInput{SessionID: "session-1"})
	s.Require().NoError(err)
	s.Require().Len(out.Memberships, 3)
	s.Equal("player-a", out.Memberships[0].PlayerID)
	s.Equal("player-b", out.Memberships[1].PlayerID)
	s.Equal("player-c", out.Memberships[2].PlayerID)

	empty, err := s.repo.ListMemberships(s.ctx, &ListMembershipsInput{SessionID: "session-2"})
	s.Require().NoError(err)
	s.Empty(empty.Memberships)
}
