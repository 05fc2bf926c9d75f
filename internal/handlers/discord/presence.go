package discord

import (
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/Draft-Lab/panela-tracker/internal/models"
)

// Transition is one join or leave derived from a presence change
type Transition struct {
	Handle    string
	GameTitle string
	Kind      models.EventKind
}

// PresenceTracker remembers which game each user was last seen playing and
// turns presence updates into join and leave transitions
type PresenceTracker struct {
	mu      sync.Mutex
	playing map[string]string
}

func NewPresenceTracker() *PresenceTracker {
	return &PresenceTracker{playing: make(map[string]string)}
}

// Update records that userID is now playing title ("" for nothing) and
// returns the transitions, leave first
func (t *PresenceTracker) Update(userID, title string) []Transition {
	t.mu.Lock()
	defer t.mu.Unlock()

	previous := t.playing[userID]
	if previous == title {
		return nil
	}

	var out []Transition
	if previous != "" {
		out = append(out, Transition{Handle: userID, GameTitle: previous, Kind: models.EventKindLeave})
	}
	if title != "" {
		out = append(out, Transition{Handle: userID, GameTitle: title, Kind: models.EventKindJoined})
		t.playing[userID] = title
	} else {
		delete(t.playing, userID)
	}
	return out
}

// PlayingTitle picks the game out of a presence. Offline users play nothing.
func PlayingTitle(status discordgo.Status, activities []*discordgo.Activity) string {
	if status == discordgo.StatusOffline {
		return ""
	}
	for _, a := range activities {
		if a != nil && a.Type == discordgo.ActivityTypeGame && a.Name != "" {
			return a.Name
		}
	}
	return ""
}
