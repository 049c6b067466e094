package handler

import (
	"net/http"

	"campuseventhub-backend/store"

	"github.com/gin-gonic/gin"
)

type notificationHandler struct {
	s store.Store
}

func NewNotificationHandler(s store.Store) *notificationHandler {
	return &notificationHandler{s: s}
}

func (h *notificationHandler) ListMine(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	ns, err := h.s.ListNotificationsByRecipient(c.Request.Context(), caller)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]notificationResponse, 0, len(ns))
	for k := range ns {
		out = append(out, *toNotificationResponse(&ns[k]))
	}

	c.JSON(http.StatusOK, out)
}

func (h *notificationHandler) MarkRead(c *gin.Context) {
	id, err := objectID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	caller, err := callerID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.s.MarkNotificationRead(c.Request.Context(), id, caller); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
