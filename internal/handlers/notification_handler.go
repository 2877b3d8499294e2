package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/unidesk/consult-scheduler/internal/httpresp"
	infraRepo "github.com/unidesk/consult-scheduler/internal/infra/repository"
	"github.com/unidesk/consult-scheduler/internal/middleware"
)

type NotificationHandler struct {
	store *infraRepo.NotificationGormRepository
}

func NewNotificationHandler(store *infraRepo.NotificationGormRepository) *NotificationHandler {
	return &NotificationHandler{store: store}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	unreadOnly := c.Query("unread") == "true"

	list, err := h.store.ListForUser(c.Request.Context(), userID, unreadOnly)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseID(c)
	if !ok {
		return
	}

	n, err := h.store.MarkRead(c.Request.Context(), id, userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, n)
}
