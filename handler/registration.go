package handler

import (
	"io"
	"net/http"

	"campuseventhub-backend/errs"
	"campuseventhub-backend/events"
	"campuseventhub-backend/registration"

	"github.com/gin-gonic/gin"
)

type registrationHandler struct {
	svc *registration.Service
}

func NewRegistrationHandler(svc *registration.Service) *registrationHandler {
	return &registrationHandler{svc: svc}
}

type createRegistrationRequest struct {
	TeamName    string   `json:"team_name"`
	TeamMembers []string `json:"team_members"`
}

func (h *registrationHandler) Create(c *gin.Context) {
	eventID, err := objectID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	caller, err := callerID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	req := &createRegistrationRequest{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(req); err != nil {
			writeError(c, errs.ErrInvalidID)
			return
		}
	}

	r, err := h.svc.Create(c.Request.Context(), registration.CreateInput{
		EventID:     eventID,
		UserID:      caller,
		TeamName:    req.TeamName,
		TeamMembers: req.TeamMembers,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toRegistrationResponse(r))
}

func (h *registrationHandler) ListMine(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	regs, err := h.svc.ListForUser(c.Request.Context(), caller)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserRegistrationResponses(regs))
}

func (h *registrationHandler) ListForAdmin(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	regs, err := h.svc.ListForAdmin(c.Request.Context(), caller)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAdminRegistrationResponses(regs))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *registrationHandler) UpdateStatus(c *gin.Context) {
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

	req := &updateStatusRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, errs.ErrInvalidStatus)
		return
	}

	r, err := h.svc.UpdateStatus(c.Request.Context(), id, caller, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRegistrationResponse(r))
}

// Stream pushes committed registrations to admin dashboards as
// server-sent events.
func (h *registrationHandler) Stream(c *gin.Context) {
	ch := events.ConsumeRegistration(c.Request.Context())

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev := <-ch:
			c.SSEvent("registration", ev)
			return true
		}
	})
}
