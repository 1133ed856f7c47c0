package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	service "agrotrade/internal/service"
)

type NotificationHandler struct {
	negotiation *service.NegotiationService
}

func NewNotificationHandler(negotiation *service.NegotiationService) *NotificationHandler {
	return &NotificationHandler{negotiation: negotiation}
}

// List returns the caller's notifications, newest first (GET /notifications).
func (h *NotificationHandler) List(c *gin.Context) {
	notifications := h.negotiation.ListNotifications(username(c))
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}
