package tracker

import (
	"math"
	"sort"
	"time"

	"github.com/Draft-Lab/panela-tracker/internal/models"
)

// PlayerDurations is the reconstructed play time of one player in a session
type PlayerDurations struct {
	PlayerID     string
	SoloMinutes  int
	GroupMinutes int
	TotalMinutes int
}

// ReconstructDurations derives per-player solo, group and total minutes from
// a session's event log. Only players listed in playerIDs are considered and
// players without events are skipped.
//
// Each joined event is paired with the player's next leave; a join with no
// later leave contributes nothing. An interval [join, leave) counts as group
// time when some other player has a joined event at or before leave whose
// first leave at or after join is missing or strictly after join. Minutes
// are summed unrounded and each sum is rounded once at the end.
func ReconstructDurations(events []*models.SessionEvent, playerIDs []string) []*PlayerDurations {
	ordered := make([]*models.SessionEvent, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	byPlayer := make(map[string][]*models.SessionEvent)
	for _, e := range ordered {
		byPlayer[e.PlayerID] = append(byPlayer[e.PlayerID], e)
	}

	result := make([]*PlayerDurations, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		own := byPlayer[playerID]
		if len(own) == 0 {
			continue
		}

		var total, solo, group float64
		for i, e := range own {
			if e.Kind != models.EventKindJoined {
				continue
			}
			leave := nextLeave(own[i+1:])
			if leave == nil {
				continue
			}

			minutes := leave.Timestamp.Sub(e.Timestamp).Minutes()
			total += minutes
			if playedWithOthers(ordered, playerID, e.Timestamp, leave.Timestamp) {
				group += minutes
			} else {
				solo += minutes
			}
		}

		result = append(result, &PlayerDurations{
			PlayerID:     playerID,
			SoloMinutes:  int(math.Round(solo)),
			GroupMinutes: int(math.Round(group)),
			TotalMinutes: int(math.Round(total)),
		})
	}

	return result
}

func nextLeave(events []*models.SessionEvent) *models.SessionEvent {
	for _, e := range events {
		if e.Kind == models.EventKindLeave {
			return e
		}
	}
	return nil
}

// playedWithOthers reports whether another player was present during
// [joinAt, leaveAt). The other player's own join time is only checked
// against leaveAt.
func playedWithOthers(events []*models.SessionEvent, playerID string, joinAt, leaveAt time.Time) bool {
	for _, e := range events {
		if e.PlayerID == playerID || e.Kind != models.EventKindJoined || e.Timestamp.After(leaveAt) {
			continue
		}
		otherLeave := firstLeaveFrom(events, e.PlayerID, joinAt)
		if otherLeave == nil || otherLeave.Timestamp.After(joinAt) {
			return true
		}
	}
	return false
}

func firstLeaveFrom(events []*models.SessionEvent, playerID string, from time.Time) *models.SessionEvent {
	for _, e := range events {
		if e.PlayerID == playerID && e.Kind == models.EventKindLeave && !e.Timestamp.Before(from) {
			return e
		}
	}
	return nil
}
