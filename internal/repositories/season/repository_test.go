package season

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

func (s *RepositoryTestSuite) create(id string, startedAt time.Time, endedAt *time.Time, active bool) {
	s.Require().NoError(s.repo.CreateSeason(s.ctx, &CreateSeasonInput{Season: &models.Season{
		ID:        id,
		GameID:    "game-1",
		Name:      "Season " + id,
		IsActive:  active,
		StartedAt: startedAt,
		EndedAt:   endedAt,
	}}))
}

func (s *RepositoryTestSuite) TestCreateAndGetSeason() {
	s.create("s1", s.testNow, nil, true)

	season, err := s.repo.GetSeason(s.ctx, &GetSeasonInput{SeasonID: "s1"})
	s.Require().NoError(err)
	s.Equal("game-1", season.GameID)
	s.True(season.IsActive)
	s.Nil(season.EndedAt)

	_, err = s.repo.GetSeason(s.ctx, &GetSeasonInput{SeasonID: "missing"})
	s.ErrorIs(err, ErrSeasonNotFound)
}

func (s *RepositoryTestSuite) TestFindActiveSeason() {
	end := s.testNow.Add(24 * time.Hour)
	s.create("bounded", s.testNow, &end, true)

	found, err := s.repo.FindActiveSeason(s.ctx, &FindActiveSeasonInput{GameID: "game-1", At: s.testNow.Add(time.Hour)})
	s.Require().NoError(err)
	s.Equal("bounded", found.ID)

	// outside the window
	_, err = s.repo.FindActiveSeason(s.ctx, &FindActiveSeasonInput{GameID: "game-1", At: end.Add(time.Minute)})
	s.ErrorIs(err, ErrSeasonNotFound)

	_, err = s.repo.FindActiveSeason(s.ctx, &FindActiveSeasonInput{GameID: "game-1", At: s.testNow.Add(-time.Minute)})
	s.ErrorIs(err, ErrSeasonNotFound)

	// another game
	_, err = s.repo.FindActiveSeason(s.ctx, &FindActiveSeasonInput{GameID: "game-2", At: s.testNow})
	s.ErrorIs(err, ErrSeasonNotFound)
}

func (s *RepositoryTestSuite) TestFindActiveSeasonPrefersLatestStart() {
	s.create("old", s.testNow.Add(-48*time.Hour), nil, true)
	s.create("new", s.testNow.Add(-time.Hour), nil, true)
	s.create("inactive", s.testNow.Add(-time.Minute), nil, false)

	found, err := s.repo.FindActiveSeason(s.ctx, &FindActiveSeasonInput{GameID: "game-1", At: s.testNow})
	s.Require().NoError(err)
	s.Equal("new", found.ID)
}

func (s *RepositoryTestSuite) TestListSeasonsByGame() {
	s.create("second", s.testNow, nil, true)
	s.create("first", s.testNow.Add(-time.Hour), nil, false)

	out, err := s.repo.ListSeasonsByGame(s.ctx, &ListSeasonsByGameInput{GameID: "game-1"})
	s.Require().NoError(err)
	s.Require().Len(out.Seasons, 2)
	s.Equal("first", out.Seasons[0].ID)
	s.Equal("second", out.Seasons[1].ID)
}

func (s *RepositoryTestSuite) TestFinishSeason() {
	s.create("s1", s.testNow, nil, true)

	endedAt := s.testNow.Add(72 * time.Hour)
	finished, err := s.repo.FinishSeason(s.ctx, &FinishSeasonInput{SeasonID: "s1", EndedAt: endedAt})
	s.Require().NoError(err)
	s.False(finished.IsActive)
	s.Require().NotNil(finished.EndedAt)
	s.True(finished.EndedAt.Equal(endedAt))

	_, err = s.repo.FinishSeason(s.ctx, &FinishSeasonInput{SeasonID: "s1", EndedAt: endedAt})
	s.ErrorIs(err, ErrSeasonNotActive)

	_, err = s.repo.FinishSeason(s.ctx, &FinishSeasonInput{SeasonID: "missing", EndedAt: endedAt})
	s.ErrorIs(err, ErrSeasonNotFound)
}
