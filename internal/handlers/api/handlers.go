package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Draft-Lab/panela-tracker/internal/models"
	"github.com/Draft-Lab/panela-tracker/internal/services/tracker"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// EventHandler receives join and leave events from the chat bot
type EventHandler struct {
	tracker tracker.Service
}

func NewEventHandler(svc tracker.Service) *EventHandler {
	return &EventHandler{tracker: svc}
}

// POST /api/discord/events (behind RequireAPIKey)
func (h *EventHandler) Record(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}

	out, err := h.tracker.RecordEvent(c.Request.Context(), &tracker.RecordEventInput{
		Token:        bearerToken(c),
		PlayerHandle: req.handle(),
		GameTitle:    req.title(),
		EventKind:    req.kind(),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := &eventResponse{
		Success:         true,
		SessionID:       out.SessionID,
		GameTitle:       out.GameTitle,
		PlayerID:        out.PlayerID,
		ActivePlayers:   out.ActivePlayers,
		SessionType:     string(out.SessionType),
		AlreadyActive:   out.AlreadyActive,
		SessionFinished: out.SessionFinished,
		SeasonID:        optionalString(out.SeasonID),
	}
	switch {
	case out.AlreadyActive:
		resp.Message = "Player already active in session"
	case req.kind() == models.EventKindJoined:
		resp.Message = "Player joined event registered"
	case out.SessionFinished:
		resp.Message = "Player left and session finished automatically"
		total := out.TotalDurationMinutes
		resp.TotalDurationMinutes = &total
	default:
		resp.Message = "Player left event registered"
	}
	respondOK(c, resp)
}

type SessionHandler struct {
	tracker tracker.Service
}

func NewSessionHandler(svc tracker.Service) *SessionHandler {
	return &SessionHandler{tracker: svc}
}

// GET /api/sessions/current
func (h *SessionHandler) ListCurrent(c *gin.Context) {
	out, err := h.tracker.ListCurrentSessions(c.Request.Context(), &tracker.ListCurrentSessionsInput{})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	sessions := make([]*sessionResponse, 0, len(out.Sessions))
	for _, cs := range out.Sessions {
		sessions = append(sessions, toSession(cs.Session, cs.Game))
	}
	respondOK(c, gin.H{"sessions": sessions})
}

// GET /api/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	out, err := h.tracker.GetSession(c.Request.Context(), &tracker.GetSessionInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{
		"session":     toSession(out.Session, out.Game),
		"game":        toGame(out.Game),
		"memberships": toMemberships(out.Memberships, out.Players),
	})
}

// POST /api/sessions/:id/finish
func (h *SessionHandler) Finish(c *gin.Context) {
	var req finishRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}

	out, err := h.tracker.FinishSession(c.Request.Context(), &tracker.FinishSessionInput{
		SessionID: c.Param("id"),
		Outcomes:  req.outcomes(),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{
		"session":     toSession(out.Session, nil),
		"memberships": toMemberships(out.Memberships, nil),
	})
}

// POST /api/sessions/:id/recompute
func (h *SessionHandler) Recompute(c *gin.Context) {
	out, err := h.tracker.RecomputeDurations(c.Request.Context(), &tracker.RecomputeDurationsInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"durations": toDurations(out.Durations)})
}

type SeasonHandler struct {
	tracker tracker.Service
}

func NewSeasonHandler(svc tracker.Service) *SeasonHandler {
	return &SeasonHandler{tracker: svc}
}

// POST /api/seasons
func (h *SeasonHandler) Start(c *gin.Context) {
	var req startSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}

	out, err := h.tracker.StartSeason(c.Request.Context(), &tracker.StartSeasonInput{
		GameTitle:     req.GameTitle,
		Name:          req.Name,
		Description:   req.Description,
		PlayerHandles: req.PlayerHandles,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"season":             toSeason(out.Season),
		"participants":       toParticipants(out.Participants),
		"linked_session_ids": out.LinkedSessionIDs,
	})
}

// GET /api/games/:title/seasons
func (h *SeasonHandler) ListByGame(c *gin.Context) {
	out, err := h.tracker.ListSeasons(c.Request.Context(), &tracker.ListSeasonsInput{
		GameTitle: c.Param("title"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	seasons := make([]gin.H, 0, len(out.Seasons))
	for _, standing := range out.Seasons {
		seasons = append(seasons, gin.H{
			"season":       toSeason(standing.Season),
			"participants": toParticipants(standing.Participants),
		})
	}
	respondOK(c, gin.H{
		"game":    toGame(out.Game),
		"seasons": seasons,
	})
}

// POST /api/seasons/:id/finish
func (h *SeasonHandler) Finish(c *gin.Context) {
	var req finishRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}

	out, err := h.tracker.FinishSeason(c.Request.Context(), &tracker.FinishSeasonInput{
		SeasonID: c.Param("id"),
		Outcomes: req.outcomes(),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{
		"season":       toSeason(out.Season),
		"participants": toParticipants(out.Participants),
	})
}
