package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillgraph-backend/internal/http/response"
	"github.com/yungbote/skillgraph-backend/internal/services"
)

type NotificationHandler struct {
	Notifications services.NotificationService
	ListLimit     int
}

func NewNotificationHandler(svc services.NotificationService, listLimit int) *NotificationHandler {
	return &NotificationHandler{Notifications: svc, ListLimit: listLimit}
}

// GET /api/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	limit, err := queryInt(c, "limit", h.ListLimit)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	out, err := h.Notifications.List(c.Request.Context(), callerID(c), limit)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"notifications": out})
}

// GET /api/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	n, err := h.Notifications.CountUnread(c.Request.Context(), callerID(c))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"unread": n})
}

// PUT /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.Notifications.MarkRead(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Marked as read"})
}

// PUT /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	n, err := h.Notifications.MarkAllRead(c.Request.Context(), callerID(c))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"marked": n, "message": fmt.Sprintf("Marked %d notifications as read", n)})
}
