package discord

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/Draft-Lab/panela-tracker/internal/common/logger"
	"github.com/Draft-Lab/panela-tracker/internal/models"
	"github.com/Draft-Lab/panela-tracker/internal/services/tracker"
	"github.com/Draft-Lab/panela-tracker/internal/services/tracker/mocks"
)

type BotTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockTracker *mocks.MockService
	bot         *Bot
	ctx         context.Context
}

func (s *BotTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockTracker = mocks.NewMockService(s.mockCtrl)
	s.ctx = context.Background()

	bot, err := New(&Config{
		Token:   "token",
		APIKey:  "secret",
		Tracker: s.mockTracker,
		Logger:  logger.Nop(),
	})
	s.Require().NoError(err)
	s.bot = bot
}

func (s *BotTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBotSuite(t *testing.T) {
	suite.Run(t, new(BotTestSuite))
}

func (s *BotTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.Error(err)

	_, err = New(&Config{Tracker: s.mockTracker})
	s.Error(err)

	_, err = New(&Config{Token: "token"})
	s.Error(err)
}

func (s *BotTestSuite) TestForwardSendsLeaveBeforeJoin() {
	gomock.InOrder(
		s.mockTracker.EXPECT().
			RecordEvent(s.ctx, &tracker.RecordEventInput{
				Token:        "secret",
				PlayerHandle: "42",
				GameTitle:    "Hades",
				EventKind:    models.EventKindLeave,
			}).
			Return(&tracker.RecordEventOutput{SessionID: "session-1"}, nil),
		s.mockTracker.EXPECT().
			RecordEvent(s.ctx, &tracker.RecordEventInput{
				Token:        "secret",
				PlayerHandle: "42",
				GameTitle:    "Celeste",
				EventKind:    models.EventKindJoined,
			}).
			Return(&tracker.RecordEventOutput{SessionID: "session-2", ActivePlayers: 1}, nil),
	)

	s.bot.forward(s.ctx, []Transition{
		{Handle: "42", GameTitle: "Hades", Kind: models.EventKindLeave},
		{Handle: "42", GameTitle: "Celeste", Kind: models.EventKindJoined},
	})
}

func (s *BotTestSuite) TestForwardContinuesAfterIgnoredLeave() {
	gomock.InOrder(
		s.mockTracker.EXPECT().
			RecordEvent(s.ctx, gomock.Any()).
			Return(nil, tracker.ErrNoCurrentSession),
		s.mockTracker.EXPECT().
			RecordEvent(s.ctx, gomock.Any()).
			Return(&tracker.RecordEventOutput{SessionID: "session-2"}, nil),
	)

	s.bot.forward(s.ctx, []Transition{
		{Handle: "42", GameTitle: "Hades", Kind: models.EventKindLeave},
		{Handle: "42", GameTitle: "Celeste", Kind: models.EventKindJoined},
	})
}
