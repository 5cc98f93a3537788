package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pickupgames/signup/internal/config"
	"pickupgames/signup/internal/handler/middleware"
)

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	sessions middleware.SessionValidator,
	publicHandler *PublicHandler,
	playerHandler *PlayerHandler,
	organizerHandler *OrganizerHandler,
	announcementHandler *AnnouncementHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	// Health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Sign-up page, keyed by access code
	games := r.Group("/api/v1/games/:code")
	{
		games.GET("", publicHandler.GetGame)
		games.POST("/registrations", publicHandler.Register)
		games.POST("/session", publicHandler.Login)
	}

	// Player portal
	player := r.Group("/api/v1/games/:code")
	player.Use(middleware.SessionAuth(sessions))
	player.Use(middleware.RequirePlayer("code"))
	{
		player.GET("/me", playerHandler.Me)
		player.POST("/me/cancel", playerHandler.Cancel)
		player.DELETE("/session", playerHandler.Logout)
	}

	r.POST("/api/v1/organizer/session", organizerHandler.Login)

	// Organizer routes (session + organizer role)
	organizer := r.Group("/api/v1/organizer")
	organizer.Use(middleware.SessionAuth(sessions))
	organizer.Use(middleware.RequireOrganizer())
	{
		organizer.DELETE("/session", organizerHandler.Logout)
		organizer.GET("/dashboard", organizerHandler.Dashboard)
		organizer.GET("/activity", organizerHandler.Activity)

		organizer.GET("/games", organizerHandler.ListGames)
		organizer.POST("/games", organizerHandler.CreateGame)
		organizer.GET("/games/:id", organizerHandler.GetGame)
		organizer.PUT("/games/:id", organizerHandler.UpdateGame)
		organizer.DELETE("/games/:id", organizerHandler.DeleteGame)
		organizer.POST("/games/:id/promote", organizerHandler.Promote)
		organizer.POST("/games/:id/recalculate", organizerHandler.Recalculate)
		organizer.POST("/games/:id/registrations/:reg_id/remove", organizerHandler.Remove)
		organizer.POST("/games/:id/registrations/:reg_id/move", organizerHandler.Move)

		organizer.POST("/registrations/:id/approve", organizerHandler.Approve)
		organizer.POST("/registrations/:id/deny", organizerHandler.Deny)

		organizer.GET("/announcements", announcementHandler.List)
		organizer.POST("/announcements", announcementHandler.Create)
		organizer.PUT("/announcements/:id", announcementHandler.Update)
		organizer.DELETE("/announcements/:id", announcementHandler.Delete)
	}

	return r
}
