package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pickupgames/signup/internal/model"
	"pickupgames/signup/internal/service"
	"pickupgames/signup/pkg/response"
)

type OrganizerHandler struct {
	games         service.GameService
	registrations service.RegistrationService
	engine        service.EngineService
	activity      service.ActivityService
	announcements service.AnnouncementService
	sessions      service.SessionService
}

func NewOrganizerHandler(
	games service.GameService,
	registrations service.RegistrationService,
	engine service.EngineService,
	activity service.ActivityService,
	announcements service.AnnouncementService,
	sessions service.SessionService,
) *OrganizerHandler {
	return &OrganizerHandler{
		games:         games,
		registrations: registrations,
		engine:        engine,
		activity:      activity,
		announcements: announcements,
		sessions:      sessions,
	}
}

type OrganizerLoginRequest struct {
	Code string `json:"code" binding:"required"`
}

type GameRequest struct {
	Title     string    `json:"title" binding:"required"`
	Location  string    `json:"location"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Capacity  int       `json:"capacity" binding:"required"`
}

func (r GameRequest) input() service.GameInput {
	return service.GameInput{
		Title:     r.Title,
		Location:  r.Location,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Capacity:  r.Capacity,
	}
}

type MoveRequest struct {
	Target           string `json:"target" binding:"required"`
	TriggerPromotion bool   `json:"trigger_promotion"`
}

// GameSummary is one row of the organizer dashboard.
type GameSummary struct {
	Game      model.Game `json:"game"`
	Closed    bool       `json:"closed"`
	Confirmed int        `json:"confirmed"`
	Waitlist  int        `json:"waitlist"`
	Pending   int        `json:"pending"`
}

type GameDetail struct {
	Game     *model.Game           `json:"game"`
	Closed   bool                  `json:"closed"`
	Roster   *service.Roster       `json:"roster"`
	Activity []model.ActivityEntry `json:"activity"`
}

func (h *OrganizerHandler) Login(c *gin.Context) {
	var req OrganizerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	session, err := h.sessions.OrganizerLogin(c.Request.Context(), req.Code)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, session)
}

func (h *OrganizerHandler) Logout(c *gin.Context) {
	claims, err := getClaims(c)
	if err != nil {
		response.Unauthorized(c, "invalid session")
		return
	}
	if err := h.sessions.Logout(c.Request.Context(), claims); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *OrganizerHandler) summaries(c *gin.Context) ([]GameSummary, error) {
	ctx := c.Request.Context()
	games, err := h.games.ListUpcoming(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]GameSummary, 0, len(games))
	for i := range games {
		roster, err := h.registrations.GameRoster(ctx, games[i].ID)
		if err != nil {
			return nil, err
		}
		out = append(out, GameSummary{
			Game:      games[i],
			Closed:    h.games.IsPast(&games[i]),
			Confirmed: len(roster.Confirmed),
			Waitlist:  len(roster.Waitlist),
			Pending:   roster.PendingCount,
		})
	}
	return out, nil
}

// Dashboard returns upcoming games, every pending request and the recent activity feed.
func (h *OrganizerHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	games, err := h.summaries(c)
	if err != nil {
		writeError(c, err)
		return
	}
	pending, err := h.registrations.ListPending(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	activity, err := h.activity.Recent(ctx, 0)
	if err != nil {
		writeError(c, err)
		return
	}
	announcements, err := h.announcements.ListActive(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{
		"games":         games,
		"pending":       pending,
		"activity":      activity,
		"announcements": announcements,
	})
}

func (h *OrganizerHandler) ListGames(c *gin.Context) {
	games, err := h.summaries(c)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, games)
}

func (h *OrganizerHandler) CreateGame(c *gin.Context) {
	var req GameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	game, err := h.games.CreateGame(c.Request.Context(), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, game)
}

func (h *OrganizerHandler) GetGame(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	game, err := h.games.GetGame(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	roster, err := h.registrations.GameRoster(ctx, game.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	activity, err := h.activity.ForGame(ctx, game.ID, 0)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, GameDetail{
		Game:     game,
		Closed:   h.games.IsPast(game),
		Roster:   roster,
		Activity: activity,
	})
}

func (h *OrganizerHandler) UpdateGame(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req GameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	game, promoted, err := h.games.EditGame(c.Request.Context(), id, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"game": game, "promoted": promoted})
}

func (h *OrganizerHandler) DeleteGame(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.games.DeleteGame(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *OrganizerHandler) Promote(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	promoted, err := h.engine.PromoteIfRoomAvailable(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"promoted": promoted})
}

func (h *OrganizerHandler) Recalculate(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	writes, err := h.engine.Recalculate(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"updated": writes})
}

func (h *OrganizerHandler) Approve(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	result, err := h.engine.Approve(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *OrganizerHandler) Deny(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	result, err := h.engine.Deny(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *OrganizerHandler) Remove(c *gin.Context) {
	gameID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	regID, ok := parseUUIDParam(c, "reg_id")
	if !ok {
		return
	}
	result, err := h.engine.Remove(c.Request.Context(), gameID, regID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *OrganizerHandler) Move(c *gin.Context) {
	gameID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	regID, ok := parseUUIDParam(c, "reg_id")
	if !ok {
		return
	}
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	result, err := h.engine.Move(c.Request.Context(), gameID, regID, req.Target, req.TriggerPromotion)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *OrganizerHandler) Activity(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.BadRequest(c, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	entries, err := h.activity.Recent(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, entries)
}
