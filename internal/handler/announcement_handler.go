package handler

import (
	"github.com/gin-gonic/gin"

	"pickupgames/signup/internal/service"
	"pickupgames/signup/pkg/response"
)

type AnnouncementHandler struct {
	announcements service.AnnouncementService
}

func NewAnnouncementHandler(announcements service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcements: announcements}
}

type AnnouncementRequest struct {
	Title    string `json:"title" binding:"required"`
	Message  string `json:"message" binding:"required"`
	IsActive bool   `json:"is_active"`
}

func (r AnnouncementRequest) input() service.AnnouncementInput {
	return service.AnnouncementInput{Title: r.Title, Message: r.Message, IsActive: r.IsActive}
}

func (h *AnnouncementHandler) List(c *gin.Context) {
	anns, err := h.announcements.List(c.Request.Context(), 0)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, anns)
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	ann, err := h.announcements.Create(c.Request.Context(), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, ann)
}

func (h *AnnouncementHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	ann, err := h.announcements.Update(c.Request.Context(), id, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, ann)
}

func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.announcements.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, nil)
}
