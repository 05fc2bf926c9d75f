package game

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

func (s *RepositoryTestSuite) TestCreateAndGetGame() {
	err := s.repo.CreateGame(s.ctx, &CreateGameInput{Game: &models.Game{
		ID:        "game-1",
		Title:     "Elden Ring",
		CreatedAt: s.testNow,
	}})
	s.Require().NoError(err)

	byTitle, err := s.repo.GetGameByTitle(s.ctx, &GetGameByTitleInput{Title: "Elden Ring"})
	s.Require().NoError(err)
	s.Equal("game-1", byTitle.ID)

	byID, err := s.repo.GetGame(s.ctx, &GetGameInput{GameID: "game-1"})
	s.Require().NoError(err)
	s.Equal("Elden Ring", byID.Title)
}

func (s *RepositoryTestSuite) TestGetGameNotFound() {
	_, err := s.repo.GetGameByTitle(s.ctx, &GetGameByTitleInput{Title: "Nope"})
	s.ErrorIs(err, ErrGameNotFound)
}

func (s *RepositoryTestSuite) TestConcurrentCreateSameTitle() {
	const writers = 8

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		dupes   int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := s.repo.CreateGame(s.ctx, &CreateGameInput{Game: &models.Game{
				ID:        "game-" + string(rune('a'+i)),
				Title:     "Hades",
				CreatedAt: s.testNow,
			}})
			mu.Lock()
			defer mu.Unlock()
			switch err {
			case nil:
				created++
			case ErrGameAlreadyExists:
				dupes++
			}
		}(i)
	}
	wg.Wait()

	s.Equal(1, created)
	s.Equal(writers-1, dupes)
}
