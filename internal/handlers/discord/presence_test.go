package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"

	"github.com/Draft-Lab/panela-tracker/internal/models"
)

func TestPresenceTrackerUpdate(t *testing.T) {
	tracker := NewPresenceTracker()

	assert.Empty(t, tracker.Update("42", ""), "nothing to leave yet")

	assert.Equal(t, []Transition{
		{Handle: "42", GameTitle: "Hades", Kind: models.EventKindJoined},
	}, tracker.Update("42", "Hades"))

	assert.Empty(t, tracker.Update("42", "Hades"), "same game again is not a change")

	assert.Equal(t, []Transition{
		{Handle: "42", GameTitle: "Hades", Kind: models.EventKindLeave},
		{Handle: "42", GameTitle: "Celeste", Kind: models.EventKindJoined},
	}, tracker.Update("42", "Celeste"))

	assert.Equal(t, []Transition{
		{Handle: "42", GameTitle: "Celeste", Kind: models.EventKindLeave},
	}, tracker.Update("42", ""))
	assert.Empty(t, tracker.Update("42", ""), "nothing left to leave")
}

func TestPresenceTrackerKeepsUsersApart(t *testing.T) {
	tracker := NewPresenceTracker()
	tracker.Update("1", "Hades")
	tracker.Update("2", "Hades")

	assert.Equal(t, []Transition{
		{Handle: "1", GameTitle: "Hades", Kind: models.EventKindLeave},
	}, tracker.Update("1", ""))
	assert.Equal(t, []Transition{
		{Handle: "2", GameTitle: "Hades", Kind: models.EventKindLeave},
	}, tracker.Update("2", ""), "user 2 is still playing")
}

func TestPlayingTitle(t *testing.T) {
	testCases := []struct {
		name       string
		status     discordgo.Status
		activities []*discordgo.Activity
		expected   string
	}{
		{
			name:   "game activity",
			status: discordgo.StatusOnline,
			activities: []*discordgo.Activity{
				{Name: "Spotify", Type: discordgo.ActivityTypeListening},
				{Name: "Hades", Type: discordgo.ActivityTypeGame},
			},
			expected: "Hades",
		},
		{
			name:       "no game",
			status:     discordgo.StatusIdle,
			activities: []*discordgo.Activity{{Name: "Twitch", Type: discordgo.ActivityTypeStreaming}},
		},
		{
			name:       "offline ignores stale activities",
			status:     discordgo.StatusOffline,
			activities: []*discordgo.Activity{{Name: "Hades", Type: discordgo.ActivityTypeGame}},
		},
		{
			name:       "nil activity",
			status:     discordgo.StatusOnline,
			activities: []*discordgo.Activity{nil},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PlayingTitle(tc.status, tc.activities))
		})
	}
}
