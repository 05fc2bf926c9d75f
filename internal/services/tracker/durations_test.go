package tracker

import (
	"testing"
	"time"

	"github.com/Draft-Lab/panela-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var durationsBase = time.Date(2025, 4, 5, 20, 0, 0, 0, time.UTC)

func ev(playerID string, kind models.EventKind, offset time.Duration) *models.SessionEvent {
	return &models.SessionEvent{
		ID:        playerID + string(kind) + offset.String(),
		SessionID: "session-1",
		PlayerID:  playerID,
		Kind:      kind,
		Timestamp: durationsBase.Add(offset),
	}
}

func joined(playerID string, minutes float64) *models.SessionEvent {
	return ev(playerID, models.EventKindJoined, time.Duration(minutes*float64(time.Minute)))
}

func left(playerID string, minutes float64) *models.SessionEvent {
	return ev(playerID, models.EventKindLeave, time.Duration(minutes*float64(time.Minute)))
}

func durationsByPlayer(ds []*PlayerDurations) map[string]PlayerDurations {
	out := make(map[string]PlayerDurations, len(ds))
	for _, d := range ds {
		out[d.PlayerID] = *d
	}
	return out
}

func TestReconstructDurations(t *testing.T) {
	testCases := []struct {
		name     string
		events   []*models.SessionEvent
		players  []string
		expected map[string]PlayerDurations
	}{
		{
			name:    "single player is solo",
			events:  []*models.SessionEvent{joined("x", 0), left("x", 30)},
			players: []string{"x"},
			expected: map[string]PlayerDurations{
				"x": {PlayerID: "x", SoloMinutes: 30, TotalMinutes: 30},
			},
		},
		{
			name: "overlapping intervals are group for both players",
			events: []*models.SessionEvent{
				joined("x", 0), joined("y", 10), left("x", 40), left("y", 60),
			},
			players: []string{"x", "y"},
			expected: map[string]PlayerDurations{
				"x": {PlayerID: "x", GroupMinutes: 40, TotalMinutes: 40},
				"y": {PlayerID: "y", GroupMinutes: 50, TotalMinutes: 50},
			},
		},
		{
			name: "intervals are classified independently",
			events: []*models.SessionEvent{
				joined("x", 0), left("x", 10),
				joined("y", 20), joined("x", 30), left("y", 50), left("x", 60),
			},
			players: []string{"x", "y"},
			expected: map[string]PlayerDurations{
				"x": {PlayerID: "x", SoloMinutes: 10, GroupMinutes: 30, TotalMinutes: 40},
				"y": {PlayerID: "y", GroupMinutes: 30, TotalMinutes: 30},
			},
		},
		{
			name: "earlier player without a later leave counts as company",
			events: []*models.SessionEvent{
				joined("q", 0), left("q", 10), joined("p", 20), left("p", 50),
			},
			players: []string{"p", "q"},
			expected: map[string]PlayerDurations{
				"p": {PlayerID: "p", GroupMinutes: 30, TotalMinutes: 30},
				"q": {PlayerID: "q", SoloMinutes: 10, TotalMinutes: 10},
			},
		},
		{
			name: "leaving exactly when the other joins is not company",
			events: []*models.SessionEvent{
				joined("q", 0), left("q", 10), joined("p", 10), left("p", 40),
			},
			players: []string{"p"},
			expected: map[string]PlayerDurations{
				"p": {PlayerID: "p", SoloMinutes: 30, TotalMinutes: 30},
			},
		},
		{
			name: "dangling join contributes nothing",
			events: []*models.SessionEvent{
				joined("x", 0), joined("y", 5), left("y", 25),
			},
			players: []string{"x", "y"},
			expected: map[string]PlayerDurations{
				"x": {PlayerID: "x"},
				"y": {PlayerID: "y", GroupMinutes: 20, TotalMinutes: 20},
			},
		},
		{
			name:    "players without events are skipped",
			events:  []*models.SessionEvent{joined("x", 0), left("x", 15)},
			players: []string{"x", "ghost"},
			expected: map[string]PlayerDurations{
				"x": {PlayerID: "x", SoloMinutes: 15, TotalMinutes: 15},
			},
		},
		{
			name: "sums are rounded once at the end",
			events: []*models.SessionEvent{
				joined("x", 0), left("x", 10+20.0/60),
				joined("x", 20), left("x", 30+20.0/60),
			},
			players: []string{"x"},
			expected: map[string]PlayerDurations{
				"x": {PlayerID: "x", SoloMinutes: 21, TotalMinutes: 21},
			},
		},
		{
			name: "events are ordered by timestamp before pairing",
			events: []*models.SessionEvent{
				left("x", 30), joined("x", 0),
			},
			players: []string{"x"},
			expected: map[string]PlayerDurations{
				"x": {PlayerID: "x", SoloMinutes: 30, TotalMinutes: 30},
			},
		},
		{
			name: "events of players without membership are ignored",
			events: []*models.SessionEvent{
				joined("x", 0), joined("stranger", 5), left("stranger", 10), left("x", 20),
			},
			players: []string{"x"},
			expected: map[string]PlayerDurations{
				"x": {PlayerID: "x", GroupMinutes: 20, TotalMinutes: 20},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ReconstructDurations(tc.events, tc.players)
			assert.Equal(t, tc.expected, durationsByPlayer(got))
		})
	}
}

func TestReconstructDurationsIsRepeatable(t *testing.T) {
	events := []*models.SessionEvent{
		joined("x", 0), joined("y", 12), left("x", 47), joined("x", 50), left("y", 81), left("x", 95),
	}
	players := []string{"x", "y"}

	first := ReconstructDurations(events, players)
	second := ReconstructDurations(events, players)
	require.Len(t, first, 2)
	assert.Equal(t, first, second)

	// input is not reordered in place
	assert.Equal(t, "x", events[0].PlayerID)
	assert.Equal(t, models.EventKindJoined, events[0].Kind)
}

func TestReconstructDurationsEmptyLog(t *testing.T) {
	assert.Empty(t, ReconstructDurations(nil, []string{"x"}))
}
