package tracker

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Draft-Lab/panela-tracker/internal/common/uuid"
	"github.com/Draft-Lab/panela-tracker/internal/models"
	eventRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/event"
	membershipRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/membership"
	participantRepo "github.com/Draft-Lab/panela-tracker/internal/repositories/participant"
	"github.com/Draft-Lab/panela-tracker/internal/storage"
	"github.com/Draft-Lab/panela-tracker/internal/storage/storagetest"
	"github.com/stretchr/testify/suite"
)

// stepClock is a clock the scenarios move forward by hand
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// ScenarioTestSuite drives the service end to end against real repositories
type ScenarioTestSuite struct {
	suite.Suite
	backend string
	repos   *storage.Repositories
	clock   *stepClock
	tracker Service
	ctx     context.Context
	apiKey  string
}

func (s *ScenarioTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.apiKey = "scenario-key"
	s.clock = &stepClock{now: time.Date(2025, 4, 5, 20, 0, 0, 0, time.UTC)}

	var err error
	switch s.backend {
	case storage.BackendRedis:
		_, client := storagetest.NewRedis(s.T())
		s.repos, err = storage.NewRedisRepositories(client)
	case storage.BackendPostgres:
		db := storagetest.NewSQLite(s.T())
		s.Require().NoError(storage.Migrate(db))
		s.repos, err = storage.NewPostgresRepositories(db)
	}
	s.Require().NoError(err)

	svc, err := New(&Config{
		APIKey:          s.apiKey,
		PlayerRepo:      s.repos.Players,
		GameRepo:        s.repos.Games,
		SessionRepo:     s.repos.Sessions,
		MembershipRepo:  s.repos.Memberships,
		EventRepo:       s.repos.Events,
		SeasonRepo:      s.repos.Seasons,
		ParticipantRepo: s.repos.Participants,
		Clock:           s.clock,
		UUIDGenerator:   uuid.New(),
	})
	s.Require().NoError(err)
	s.tracker = svc
}

func TestRedisScenarios(t *testing.T) {
	suite.Run(t, &ScenarioTestSuite{backend: storage.BackendRedis})
}

func TestPostgresScenarios(t *testing.T) {
	suite.Run(t, &ScenarioTestSuite{backend: storage.BackendPostgres})
}

func (s *ScenarioTestSuite) record(handle, title string, kind models.EventKind) (*RecordEventOutput, error) {
	return s.tracker.RecordEvent(s.ctx, &RecordEventInput{
		Token:        s.apiKey,
		PlayerHandle: handle,
		GameTitle:    title,
		EventKind:    kind,
	})
}

func (s *ScenarioTestSuite) mustRecord(handle, title string, kind models.EventKind) *RecordEventOutput {
	out, err := s.record(handle, title, kind)
	s.Require().NoError(err)
	return out
}

func (s *ScenarioTestSuite) membership(sessionID, playerID string) *models.Membership {
	m, err := s.repos.Memberships.GetMembership(s.ctx, &membershipRepo.GetMembershipInput{
		SessionID: sessionID,
		PlayerID:  playerID,
	})
	s.Require().NoError(err)
	return m
}

func (s *ScenarioTestSuite) events(sessionID string) []*models.SessionEvent {
	out, err := s.repos.Events.ListEvents(s.ctx, &eventRepo.ListEventsInput{SessionID: sessionID})
	s.Require().NoError(err)
	return out.Events
}

func (s *ScenarioTestSuite) TestSoloSession() {
	joined := s.mustRecord("alice", "Celeste", models.EventKindJoined)
	s.Equal(1, joined.ActivePlayers)
	s.Equal(models.SessionTypeSolo, joined.SessionType)

	s.clock.Advance(45 * time.Minute)
	left := s.mustRecord("alice", "Celeste", models.EventKindLeave)
	s.True(left.SessionFinished)
	s.Equal(45, left.TotalDurationMinutes)
	s.Equal(joined.SessionID, left.SessionID)

	got, err := s.tracker.GetSession(s.ctx, &GetSessionInput{SessionID: joined.SessionID})
	s.Require().NoError(err)
	s.False(got.Session.IsCurrent)
	s.Equal(0, got.Session.ActivePlayers)
	s.Equal(45, got.Session.TotalDurationMinutes)
	s.Equal("Celeste", got.Game.Title)
	s.Require().Len(got.Memberships, 1)

	m := got.Memberships[0]
	s.False(m.IsActive)
	s.Equal(45, m.SoloDurationMinutes)
	s.Equal(0, m.GroupDurationMinutes)
	s.Equal(45, m.TotalDurationMinutes)

	current, err := s.tracker.ListCurrentSessions(s.ctx, &ListCurrentSessionsInput{})
	s.Require().NoError(err)
	s.Empty(current.Sessions)
}

func (s *ScenarioTestSuite) TestGroupTransition() {
	first := s.mustRecord("alice", "Celeste", models.EventKindJoined)
	s.clock.Advance(5 * time.Minute)

	second := s.mustRecord("bob", "Celeste", models.EventKindJoined)
	s.Equal(first.SessionID, second.SessionID)
	s.Equal(2, second.ActivePlayers)
	s.Equal(models.SessionTypeGroup, second.SessionType)

	s.clock.Advance(5 * time.Minute)
	left := s.mustRecord("bob", "Celeste", models.EventKindLeave)
	s.Equal(1, left.ActivePlayers)
	s.Equal(models.SessionTypeSolo, left.SessionType)
	s.False(left.SessionFinished)

	current, err := s.tracker.ListCurrentSessions(s.ctx, &ListCurrentSessionsInput{})
	s.Require().NoError(err)
	s.Require().Len(current.Sessions, 1)
	s.Equal(first.SessionID, current.Sessions[0].Session.ID)
	s.Equal("Celeste", current.Sessions[0].Game.Title)
}

func (s *ScenarioTestSuite) TestOverlappingPlayers() {
	x := s.mustRecord("xavier", "Hades", models.EventKindJoined)
	s.clock.Advance(10 * time.Minute)
	y := s.mustRecord("yara", "Hades", models.EventKindJoined)
	s.clock.Advance(30 * time.Minute)

	xLeft := s.mustRecord("xavier", "Hades", models.EventKindLeave)
	s.Equal(1, xLeft.ActivePlayers)
	s.False(xLeft.SessionFinished)

	s.clock.Advance(20 * time.Minute)
	yLeft := s.mustRecord("yara", "Hades", models.EventKindLeave)
	s.True(yLeft.SessionFinished)
	s.Equal(60, yLeft.TotalDurationMinutes)

	// each interval overlapped the other player, so it is all group time
	xm := s.membership(x.SessionID, x.PlayerID)
	s.Equal(0, xm.SoloDurationMinutes)
	s.Equal(40, xm.GroupDurationMinutes)
	s.Equal(40, xm.TotalDurationMinutes)

	ym := s.membership(y.SessionID, y.PlayerID)
	s.Equal(0, ym.SoloDurationMinutes)
	s.Equal(50, ym.GroupDurationMinutes)
	s.Equal(50, ym.TotalDurationMinutes)
}

func (s *ScenarioTestSuite) TestSeasonAggregation() {
	// the game has to exist before a season can be started for it
	first := s.mustRecord("alice", "Balatro", models.EventKindJoined)

	s.clock.Advance(time.Minute)
	started, err := s.tracker.StartSeason(s.ctx, &StartSeasonInput{
		GameTitle:     "Balatro",
		PlayerHandles: []string{"alice", "carol", "alice"},
	})
	s.Require().NoError(err)
	s.Equal("Season 2025-04-05", started.Season.Name)
	s.True(started.Season.IsActive)
	s.Equal([]string{first.SessionID}, started.LinkedSessionIDs)
	s.Len(started.Participants, 2)

	s.clock.Advance(29 * time.Minute)
	left := s.mustRecord("alice", "Balatro", models.EventKindLeave)
	s.True(left.SessionFinished)
	s.Equal(started.Season.ID, left.SeasonID)

	s.clock.Advance(time.Hour)
	second := s.mustRecord("alice", "Balatro", models.EventKindJoined)
	s.NotEqual(first.SessionID, second.SessionID)
	s.Equal(started.Season.ID, second.SeasonID)
	s.mustRecord("bob", "Balatro", models.EventKindJoined)
	s.clock.Advance(20 * time.Minute)
	s.mustRecord("alice", "Balatro", models.EventKindLeave)
	s.mustRecord("bob", "Balatro", models.EventKindLeave)

	alice, err := s.repos.Participants.GetParticipant(s.ctx, &participantRepo.GetParticipantInput{
		SeasonID: started.Season.ID,
		PlayerID: first.PlayerID,
	})
	s.Require().NoError(err)
	s.Equal(2, alice.TotalSessions)
	s.Equal(50, alice.TotalDurationMinutes)
	s.Equal(30, alice.SoloDurationMinutes)
	s.Equal(20, alice.GroupDurationMinutes)
	s.Equal(models.StatusInProgress, alice.Status)

	finished, err := s.tracker.FinishSeason(s.ctx, &FinishSeasonInput{
		SeasonID: started.Season.ID,
		Outcomes: map[string]Outcome{
			first.PlayerID: {Status: models.StatusFinished, Notes: "beat ante 8"},
		},
	})
	s.Require().NoError(err)
	s.False(finished.Season.IsActive)
	s.Require().NotNil(finished.Season.EndedAt)
	s.Len(finished.Participants, 3)

	statuses := make(map[string]string)
	for _, p := range finished.Participants {
		statuses[p.PlayerID] = p.Status
		s.NotNil(p.StatusUpdatedAt)
	}
	s.Equal(models.StatusFinished, statuses[first.PlayerID])
	for playerID, status := range statuses {
		if playerID != first.PlayerID {
			s.Equal(models.StatusWouldPlayAgain, status)
		}
	}

	_, err = s.tracker.FinishSeason(s.ctx, &FinishSeasonInput{SeasonID: started.Season.ID})
	s.ErrorIs(err, ErrSeasonNotActive)

	listed, err := s.tracker.ListSeasons(s.ctx, &ListSeasonsInput{GameTitle: "Balatro"})
	s.Require().NoError(err)
	s.Require().Len(listed.Seasons, 1)
	s.Equal(started.Season.ID, listed.Seasons[0].Season.ID)
	s.False(listed.Seasons[0].Season.IsActive)
	s.Len(listed.Seasons[0].Participants, 3)
}

func (s *ScenarioTestSuite) TestDuplicateAndInvalidEvents() {
	first := s.mustRecord("alice", "Celeste", models.EventKindJoined)
	again := s.mustRecord("alice", "Celeste", models.EventKindJoined)
	s.True(again.AlreadyActive)
	s.Equal(1, again.ActivePlayers)
	s.Len(s.events(first.SessionID), 1)

	_, err := s.record("zed", "Celeste", models.EventKindLeave)
	s.ErrorIs(err, ErrNotInSession)

	_, err = s.record("alice", "Celeste", "paused")
	s.ErrorIs(err, ErrInvalidPayload)

	_, err = s.tracker.RecordEvent(s.ctx, &RecordEventInput{
		Token:        "wrong",
		PlayerHandle: "alice",
		GameTitle:    "Celeste",
		EventKind:    models.EventKindLeave,
	})
	s.ErrorIs(err, ErrUnauthorized)

	s.clock.Advance(10 * time.Minute)
	s.mustRecord("alice", "Celeste", models.EventKindLeave)

	_, err = s.record("alice", "Celeste", models.EventKindLeave)
	s.ErrorIs(err, ErrNoCurrentSession)
	s.Len(s.events(first.SessionID), 2)
}

func (s *ScenarioTestSuite) TestRejoinWithinSession() {
	first := s.mustRecord("alice", "Celeste", models.EventKindJoined)
	s.mustRecord("bob", "Celeste", models.EventKindJoined)
	s.clock.Advance(10 * time.Minute)
	s.mustRecord("alice", "Celeste", models.EventKindLeave)
	s.clock.Advance(10 * time.Minute)

	back := s.mustRecord("alice", "Celeste", models.EventKindJoined)
	s.False(back.AlreadyActive)
	s.Equal(first.SessionID, back.SessionID)
	s.Equal(2, back.ActivePlayers)

	got, err := s.tracker.GetSession(s.ctx, &GetSessionInput{SessionID: first.SessionID})
	s.Require().NoError(err)
	s.Len(got.Memberships, 2)
	s.Len(s.events(first.SessionID), 4)
}

func (s *ScenarioTestSuite) TestFinishSessionByHand() {
	x := s.mustRecord("xavier", "Hades", models.EventKindJoined)
	y := s.mustRecord("yara", "Hades", models.EventKindJoined)
	s.clock.Advance(25 * time.Minute)

	_, err := s.tracker.FinishSession(s.ctx, &FinishSessionInput{
		SessionID: x.SessionID,
		Outcomes:  map[string]Outcome{"stranger": {Status: models.StatusDropped}},
	})
	s.ErrorIs(err, ErrNotInSession)

	out, err := s.tracker.FinishSession(s.ctx, &FinishSessionInput{
		SessionID: x.SessionID,
		Outcomes: map[string]Outcome{
			x.PlayerID: {Status: models.StatusDropped, Notes: "rage quit"},
		},
	})
	s.Require().NoError(err)
	s.False(out.Session.IsCurrent)
	s.Equal(25, out.Session.TotalDurationMinutes)
	s.Require().Len(out.Memberships, 2)

	for _, m := range out.Memberships {
		s.False(m.IsActive)
		s.Equal(25, m.GroupDurationMinutes)
		switch m.PlayerID {
		case x.PlayerID:
			s.Equal(models.StatusDropped, m.Status)
			s.Equal("rage quit", m.Notes)
		case y.PlayerID:
			s.Equal(models.StatusWouldPlayAgain, m.Status)
		}
	}

	_, err = s.tracker.FinishSession(s.ctx, &FinishSessionInput{SessionID: x.SessionID})
	s.ErrorIs(err, ErrSessionClosed)

	_, err = s.tracker.FinishSession(s.ctx, &FinishSessionInput{SessionID: "missing"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *ScenarioTestSuite) TestRecomputeDurationsIsRepeatable() {
	x := s.mustRecord("xavier", "Hades", models.EventKindJoined)
	s.clock.Advance(12 * time.Minute)
	s.mustRecord("yara", "Hades", models.EventKindJoined)
	s.clock.Advance(33 * time.Minute)
	s.mustRecord("xavier", "Hades", models.EventKindLeave)
	s.clock.Advance(7 * time.Minute)
	s.mustRecord("yara", "Hades", models.EventKindLeave)

	before := s.membership(x.SessionID, x.PlayerID)

	first, err := s.tracker.RecomputeDurations(s.ctx, &RecomputeDurationsInput{SessionID: x.SessionID})
	s.Require().NoError(err)
	second, err := s.tracker.RecomputeDurations(s.ctx, &RecomputeDurationsInput{SessionID: x.SessionID})
	s.Require().NoError(err)
	s.Equal(first.Durations, second.Durations)

	after := s.membership(x.SessionID, x.PlayerID)
	s.Equal(before.SoloDurationMinutes, after.SoloDurationMinutes)
	s.Equal(before.GroupDurationMinutes, after.GroupDurationMinutes)
	s.Equal(before.TotalDurationMinutes, after.TotalDurationMinutes)

	_, err = s.tracker.RecomputeDurations(s.ctx, &RecomputeDurationsInput{SessionID: "missing"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *ScenarioTestSuite) TestConcurrentFirstJoins() {
	const players = 5

	var wg sync.WaitGroup
	outputs := make([]*RecordEventOutput, players)
	errs := make([]error, players)
	for i := 0; i < players; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outputs[i], errs[i] = s.record(fmt.Sprintf("player-%d", i), "Lethal Company", models.EventKindJoined)
		}(i)
	}
	wg.Wait()

	sessionIDs := make(map[string]bool)
	for i := 0; i < players; i++ {
		s.Require().NoError(errs[i])
		sessionIDs[outputs[i].SessionID] = true
	}
	s.Len(sessionIDs, 1)

	current, err := s.tracker.ListCurrentSessions(s.ctx, &ListCurrentSessionsInput{})
	s.Require().NoError(err)
	s.Require().Len(current.Sessions, 1)
	s.Equal(players, current.Sessions[0].Session.ActivePlayers)
	s.Equal(models.SessionTypeGroup, current.Sessions[0].Session.SessionType)
}

func (s *ScenarioTestSuite) TestConcurrentJoinsAndLeavesKeepCounts() {
	const (
		players = 8
		rounds  = 5
		title   = "Deep Rock Galactic"
	)

	anchor := s.mustRecord("anchor", title, models.EventKindJoined)

	var wg sync.WaitGroup
	errs := make(chan error, players*(rounds*3+1))
	for i := 0; i < players; i++ {
		wg.Add(1)
		go func(handle string) {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				for _, kind := range []models.EventKind{models.EventKindJoined, models.EventKindJoined, models.EventKindLeave} {
					if _, err := s.record(handle, title, kind); err != nil {
						errs <- fmt.Errorf("%s %s: %w", handle, kind, err)
					}
				}
			}
			if _, err := s.record(handle, title, models.EventKindJoined); err != nil {
				errs <- fmt.Errorf("%s final join: %w", handle, err)
			}
		}(fmt.Sprintf("p%d", i))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.NoError(err)
	}

	out, err := s.tracker.GetSession(s.ctx, &GetSessionInput{SessionID: anchor.SessionID})
	s.Require().NoError(err)
	s.True(out.Session.IsCurrent)

	active := 0
	for _, m := range out.Memberships {
		if m.IsActive {
			active++
		}
	}
	s.Equal(players+1, active)
	s.Equal(active, out.Session.ActivePlayers)
	s.Equal(models.SessionTypeGroup, out.Session.SessionType)
}
