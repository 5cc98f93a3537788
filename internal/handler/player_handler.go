package handler

import (
	"github.com/gin-gonic/gin"

	"pickupgames/signup/internal/service"
	"pickupgames/signup/pkg/response"
)

// PlayerHandler serves a logged-in player's own registration.
type PlayerHandler struct {
	registrations service.RegistrationService
	engine        service.EngineService
	sessions      service.SessionService
}

func NewPlayerHandler(
	registrations service.RegistrationService,
	engine service.EngineService,
	sessions service.SessionService,
) *PlayerHandler {
	return &PlayerHandler{registrations: registrations, engine: engine, sessions: sessions}
}

func (h *PlayerHandler) Me(c *gin.Context) {
	regID, err := getRegistrationID(c)
	if err != nil {
		response.Unauthorized(c, "invalid session")
		return
	}
	reg, err := h.registrations.Get(c.Request.Context(), regID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, reg)
}

func (h *PlayerHandler) Cancel(c *gin.Context) {
	regID, err := getRegistrationID(c)
	if err != nil {
		response.Unauthorized(c, "invalid session")
		return
	}
	result, err := h.engine.Cancel(c.Request.Context(), regID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, result.Registration)
}

func (h *PlayerHandler) Logout(c *gin.Context) {
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
