package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pickupgames/signup/internal/handler/middleware"
	"pickupgames/signup/internal/service"
	jwtpkg "pickupgames/signup/pkg/jwt"
	"pickupgames/signup/pkg/response"
)

var ErrNoClaims = errors.New("claims not found in context")

func getClaims(c *gin.Context) (*jwtpkg.Claims, error) {
	claims, ok := middleware.Claims(c)
	if !ok {
		return nil, ErrNoClaims
	}
	return claims, nil
}

// getRegistrationID reads the registration a player session is bound to.
func getRegistrationID(c *gin.Context) (uuid.UUID, error) {
	claims, err := getClaims(c)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(claims.Subject)
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps service errors onto HTTP responses. Unexpected errors are attached to the
// context for the request logger and answered with a generic 500.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidTarget):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrWrongCredentials),
		errors.Is(err, service.ErrSessionInvalid):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrGameNotFound),
		errors.Is(err, service.ErrRegistrationNotFound),
		errors.Is(err, service.ErrAnnouncementNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrDuplicateRegistration),
		errors.Is(err, service.ErrAlreadyProcessed),
		errors.Is(err, service.ErrNotCancellable):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrGameClosed):
		response.Gone(c, err.Error())
	case errors.Is(err, service.ErrAccessCodeExhausted):
		_ = c.Error(err)
		response.Error(c, http.StatusServiceUnavailable, 503, err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c, "internal server error")
	}
}
