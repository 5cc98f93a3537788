package handler

import (
	"github.com/gin-gonic/gin"

	"pickupgames/signup/internal/model"
	"pickupgames/signup/internal/service"
	"pickupgames/signup/pkg/response"
)

// PublicHandler serves the sign-up page: anyone holding an access code may view the lists and ask to join.
type PublicHandler struct {
	games         service.GameService
	registrations service.RegistrationService
	announcements service.AnnouncementService
	sessions      service.SessionService
}

func NewPublicHandler(
	games service.GameService,
	registrations service.RegistrationService,
	announcements service.AnnouncementService,
	sessions service.SessionService,
) *PublicHandler {
	return &PublicHandler{
		games:         games,
		registrations: registrations,
		announcements: announcements,
		sessions:      sessions,
	}
}

// PublicEntry is a listed player as other players see them; contact details stay private.
type PublicEntry struct {
	Name     string `json:"name"`
	Position *int   `json:"position"`
}

type GameView struct {
	Game          *model.Game          `json:"game"`
	Closed        bool                 `json:"closed"`
	SpotsLeft     int                  `json:"spots_left"`
	Confirmed     []PublicEntry        `json:"confirmed"`
	Waitlist      []PublicEntry        `json:"waitlist"`
	PendingCount  int                  `json:"pending_count"`
	Announcements []model.Announcement `json:"announcements"`
}

type RegisterRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

type PlayerLoginRequest struct {
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

func publicEntries(regs []model.Registration) []PublicEntry {
	out := make([]PublicEntry, 0, len(regs))
	for _, r := range regs {
		out = append(out, PublicEntry{Name: r.Name, Position: r.Position})
	}
	return out
}

func (h *PublicHandler) GetGame(c *gin.Context) {
	ctx := c.Request.Context()
	game, err := h.games.GetByCode(ctx, c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	roster, err := h.registrations.GameRoster(ctx, game.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	announcements, err := h.announcements.ListActive(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	spots := game.Capacity - len(roster.Confirmed)
	if spots < 0 {
		spots = 0
	}
	response.Success(c, GameView{
		Game:          game,
		Closed:        h.games.IsPast(game),
		SpotsLeft:     spots,
		Confirmed:     publicEntries(roster.Confirmed),
		Waitlist:      publicEntries(roster.Waitlist),
		PendingCount:  roster.PendingCount,
		Announcements: announcements,
	})
}

func (h *PublicHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	reg, err := h.registrations.Register(c.Request.Context(), c.Param("code"), service.RegisterInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, reg)
}

// Login opens a player session for the registration matching email and phone.
func (h *PublicHandler) Login(c *gin.Context) {
	var req PlayerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	session, reg, err := h.sessions.PlayerLogin(c.Request.Context(), c.Param("code"), req.Email, req.Phone)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{
		"token":        session.Token,
		"expires_at":   session.ExpiresAt,
		"registration": reg,
	})
}
