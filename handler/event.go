package handler

import (
	"net/http"
	"time"

	"campuseventhub-backend/entity"
	"campuseventhub-backend/errs"
	"campuseventhub-backend/store"

	"github.com/gin-gonic/gin"
)

type eventHandler struct {
	s store.Store
}

func NewEventHandler(s store.Store) *eventHandler {
	return &eventHandler{s: s}
}

type createEventRequest struct {
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	Location          string    `json:"location"`
	College           string    `json:"college"`
	TotalSeats        int64     `json:"total_seats"`
	TeamSizeMin       int64     `json:"team_size_min"`
	TeamSizeMax       int64     `json:"team_size_max"`
	RegistrationStart time.Time `json:"registration_start"`
	RegistrationEnd   time.Time `json:"registration_end"`
}

func (h *eventHandler) Create(c *gin.Context) {
	req := &createEventRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, errs.ErrTitleRequired)
		return
	}

	if req.Title == "" {
		writeError(c, errs.ErrTitleRequired)
		return
	}

	if req.TotalSeats <= 0 {
		writeError(c, errs.ErrInvalidCapacity)
		return
	}

	caller, err := callerID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	category := req.Category
	if category == "" {
		category = entity.CategoryOther
	}

	e := &entity.Event{
		Title:             req.Title,
		Description:       req.Description,
		Category:          category,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		Location:          req.Location,
		College:           req.College,
		TotalSeats:        req.TotalSeats,
		TeamSizeMin:       req.TeamSizeMin,
		TeamSizeMax:       req.TeamSizeMax,
		Status:            entity.EventActive,
		CreatedBy:         caller,
		RegistrationStart: req.RegistrationStart,
		RegistrationEnd:   req.RegistrationEnd,
		CreatedAt:         time.Now().UTC(),
	}

	if err := h.s.CreateEvent(c.Request.Context(), e); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toEventResponse(e))
}

func (h *eventHandler) List(c *gin.Context) {
	events, err := h.s.ListEvents(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]eventResponse, 0, len(events))
	for k := range events {
		out = append(out, *toEventResponse(&events[k]))
	}

	c.JSON(http.StatusOK, out)
}

func (h *eventHandler) Get(c *gin.Context) {
	id, err := objectID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	e, err := h.s.FindEventByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toEventResponse(e))
}

type updateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Status      *string `json:"status"`
}

func (h *eventHandler) Update(c *gin.Context) {
	id, err := objectID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	req := &updateEventRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, errs.ErrInvalidID)
		return
	}

	caller, err := callerID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	e, err := h.s.FindEventByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	if e.CreatedBy != caller {
		writeError(c, errs.ErrForbidden)
		return
	}

	if req.Status != nil {
		switch *req.Status {
		case entity.EventActive, entity.EventCompleted, entity.EventCancelled, entity.EventPending:
		default:
			writeError(c, errs.ErrInvalidStatus)
			return
		}
	}

	e, err = h.s.UpdateEvent(c.Request.Context(), id, store.EventUpdate{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Status:      req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toEventResponse(e))
}

func (h *eventHandler) Favorite(c *gin.Context) {
	h.setFavorite(c, true)
}

func (h *eventHandler) Unfavorite(c *gin.Context) {
	h.setFavorite(c, false)
}

func (h *eventHandler) setFavorite(c *gin.Context, add bool) {
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

	if _, err := h.s.FindEventByID(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	if add {
		err = h.s.AddFavoriteEvent(c.Request.Context(), caller, id)
	} else {
		err = h.s.RemoveFavoriteEvent(c.Request.Context(), caller, id)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
