package api

import (
	"time"

	"github.com/Draft-Lab/panela-tracker/internal/models"
	"github.com/Draft-Lab/panela-tracker/internal/services/tracker"
)

// eventRequest accepts the snake_case and camelCase field names, plus the
// ones older bot builds still send (discord_id, event_type =
// player_joined|player_left)
type eventRequest struct {
	PlayerHandle string `json:"player_handle"`
	GameTitle    string `json:"game_title"`
	EventKind    string `json:"event_kind"`

	PlayerHandleCamel string `json:"playerHandle"`
	GameTitleCamel    string `json:"gameTitle"`
	EventKindCamel    string `json:"eventKind"`

	DiscordID string `json:"discord_id"`
	EventType string `json:"event_type"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (r *eventRequest) handle() string {
	return firstNonEmpty(r.PlayerHandle, r.PlayerHandleCamel, r.DiscordID)
}

func (r *eventRequest) title() string {
	return firstNonEmpty(r.GameTitle, r.GameTitleCamel)
}

func (r *eventRequest) kind() models.EventKind {
	kind := firstNonEmpty(r.EventKind, r.EventKindCamel, r.EventType)
	switch kind {
	case "player_joined":
		return models.EventKindJoined
	case "player_left":
		return models.EventKindLeave
	}
	return models.EventKind(kind)
}

type eventResponse struct {
	Success              bool    `json:"success"`
	Message              string  `json:"message"`
	SessionID            string  `json:"session_id"`
	GameTitle            string  `json:"game_title"`
	PlayerID             string  `json:"player_id"`
	ActivePlayers        int     `json:"active_players"`
	SessionType          string  `json:"session_type"`
	AlreadyActive        bool    `json:"already_active,omitempty"`
	SessionFinished      bool    `json:"session_finished"`
	TotalDurationMinutes *int    `json:"total_duration_minutes,omitempty"`
	SeasonID             *string `json:"season_id"`
}

type outcomeRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type finishRequest struct {
	// Outcomes is keyed by player ID
	Outcomes map[string]outcomeRequest `json:"outcomes"`
}

func (r *finishRequest) outcomes() map[string]tracker.Outcome {
	if len(r.Outcomes) == 0 {
		return nil
	}
	out := make(map[string]tracker.Outcome, len(r.Outcomes))
	for playerID, o := range r.Outcomes {
		out[playerID] = tracker.Outcome{Status: o.Status, Notes: o.Notes}
	}
	return out
}

type startSeasonRequest struct {
	GameTitle     string   `json:"game_title" binding:"required"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	PlayerHandles []string `json:"player_handles"`
}

type gameResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	CoverURL string `json:"cover_url,omitempty"`
}

type sessionResponse struct {
	ID                   string    `json:"id"`
	GameID               string    `json:"game_id"`
	GameTitle            string    `json:"game_title,omitempty"`
	IsCurrent            bool      `json:"is_current"`
	SessionType          string    `json:"session_type"`
	Source               string    `json:"source"`
	FirstEventAt         time.Time `json:"first_event_at"`
	LastEventAt          time.Time `json:"last_event_at"`
	ActivePlayers        int       `json:"active_players"`
	TotalDurationMinutes int       `json:"total_duration_minutes"`
	SeasonID             *string   `json:"season_id"`
	Notes                string    `json:"notes,omitempty"`
}

type membershipResponse struct {
	PlayerID             string    `json:"player_id"`
	PlayerHandle         string    `json:"player_handle,omitempty"`
	PlayerName           string    `json:"player_name,omitempty"`
	Status               string    `json:"status"`
	IsActive             bool      `json:"is_active"`
	SoloDurationMinutes  int       `json:"solo_duration_minutes"`
	GroupDurationMinutes int       `json:"group_duration_minutes"`
	TotalDurationMinutes int       `json:"total_duration_minutes"`
	Notes                string    `json:"notes,omitempty"`
	JoinedAt             time.Time `json:"joined_at"`
}

type durationResponse struct {
	PlayerID             string `json:"player_id"`
	SoloDurationMinutes  int    `json:"solo_duration_minutes"`
	GroupDurationMinutes int    `json:"group_duration_minutes"`
	TotalDurationMinutes int    `json:"total_duration_minutes"`
}

type seasonResponse struct {
	ID          string     `json:"id"`
	GameID      string     `json:"game_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	IsActive    bool       `json:"is_active"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at"`
}

type participantResponse struct {
	PlayerID             string     `json:"player_id"`
	Status               string     `json:"status"`
	TotalSessions        int        `json:"total_sessions"`
	TotalDurationMinutes int        `json:"total_duration_minutes"`
	SoloDurationMinutes  int        `json:"solo_duration_minutes"`
	GroupDurationMinutes int        `json:"group_duration_minutes"`
	Notes                string     `json:"notes,omitempty"`
	StatusUpdatedAt      *time.Time `json:"status_updated_at"`
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toGame(g *models.Game) *gameResponse {
	if g == nil {
		return nil
	}
	return &gameResponse{ID: g.ID, Title: g.Title, CoverURL: g.CoverURL}
}

func toSession(s *models.Session, game *models.Game) *sessionResponse {
	out := &sessionResponse{
		ID:                   s.ID,
		GameID:               s.GameID,
		IsCurrent:            s.IsCurrent,
		SessionType:          string(s.SessionType),
		Source:               string(s.Source),
		FirstEventAt:         s.FirstEventAt,
		LastEventAt:          s.LastEventAt,
		ActivePlayers:        s.ActivePlayers,
		TotalDurationMinutes: s.TotalDurationMinutes,
		SeasonID:             optionalString(s.SeasonID),
		Notes:                s.Notes,
	}
	if game != nil {
		out.GameTitle = game.Title
	}
	return out
}

func toMemberships(ms []*models.Membership, players map[string]*models.Player) []*membershipResponse {
	out := make([]*membershipResponse, 0, len(ms))
	for _, m := range ms {
		var handle, name string
		if p, ok := players[m.PlayerID]; ok && p != nil {
			handle, name = p.Handle, p.Name
		}
		out = append(out, &membershipResponse{
			PlayerHandle:         handle,
			PlayerName:           name,
			PlayerID:             m.PlayerID,
			Status:               m.Status,
			IsActive:             m.IsActive,
			SoloDurationMinutes:  m.SoloDurationMinutes,
			GroupDurationMinutes: m.GroupDurationMinutes,
			TotalDurationMinutes: m.TotalDurationMinutes,
			Notes:                m.Notes,
			JoinedAt:             m.CreatedAt,
		})
	}
	return out
}

func toDurations(ds []*tracker.PlayerDurations) []*durationResponse {
	out := make([]*durationResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, &durationResponse{
			PlayerID:             d.PlayerID,
			SoloDurationMinutes:  d.SoloMinutes,
			GroupDurationMinutes: d.GroupMinutes,
			TotalDurationMinutes: d.TotalMinutes,
		})
	}
	return out
}

func toSeason(s *models.Season) *seasonResponse {
	return &seasonResponse{
		ID:          s.ID,
		GameID:      s.GameID,
		Name:        s.Name,
		Description: s.Description,
		IsActive:    s.IsActive,
		StartedAt:   s.StartedAt,
		EndedAt:     s.EndedAt,
	}
}

func toParticipants(ps []*models.SeasonParticipant) []*participantResponse {
	out := make([]*participantResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, &participantResponse{
			PlayerID:             p.PlayerID,
			Status:               p.Status,
			TotalSessions:        p.TotalSessions,
			TotalDurationMinutes: p.TotalDurationMinutes,
			SoloDurationMinutes:  p.SoloDurationMinutes,
			GroupDurationMinutes: p.GroupDurationMinutes,
			Notes:                p.Notes,
			StatusUpdatedAt:      p.StatusUpdatedAt,
		})
	}
	return out
}
