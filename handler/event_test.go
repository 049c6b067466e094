package handler

import (
	"context"
	"net/http"
	"testing"

	"campuseventhub-backend/entity"
	"campuseventhub-backend/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEventEndpoint(t *testing.T) {
	r, s := newTestRouter()

	admin, adminToken := seedUser(t, s, "Admin", "admin@hub.test", entity.RoleAdmin)
	_, userToken := seedUser(t, s, "Alice", "alice@hub.test", entity.RoleStudent)

	body := gin.H{"title": "Robotics Workshop", "category": entity.CategoryWorkshop, "total_seats": 30}

	// students cannot create events
	w := doJSON(t, r, http.MethodPost, "/events", userToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, "/events", adminToken, body)
	require.Equal(t, http.StatusCreated, w.Code)

	res := &eventResponse{}
	decodeJSON(t, w, res)
	assert.Equal(t, "Robotics Workshop", res.Title)
	assert.Equal(t, entity.EventActive, res.Status)
	assert.Equal(t, admin.ID.Hex(), res.CreatedBy)

	w = doJSON(t, r, http.MethodPost, "/events", adminToken, gin.H{"title": "", "total_seats": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), errs.ErrTitleRequired.Error())

	w = doJSON(t, r, http.MethodPost, "/events", adminToken, gin.H{"title": "X", "total_seats": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), errs.ErrInvalidCapacity.Error())

	// public listing
	w = doJSON(t, r, http.MethodGet, "/events", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var events []eventResponse
	decodeJSON(t, w, &events)
	assert.Len(t, events, 1)
}

func TestUpdateEventEndpoint(t *testing.T) {
	r, s := newTestRouter()

	owner, ownerToken := seedUser(t, s, "Owner", "owner@hub.test", entity.RoleAdmin)
	_, otherToken := seedUser(t, s, "Other", "other@hub.test", entity.RoleAdmin)
	ev := seedEvent(t, s, owner.ID, 5)

	path := "/events/" + ev.ID.Hex()

	w := doJSON(t, r, http.MethodPatch, path, otherToken, gin.H{"status": entity.EventCancelled})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPatch, path, ownerToken, gin.H{"status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPatch, path, ownerToken, gin.H{"status": entity.EventCancelled, "location": "Hall B"})
	require.Equal(t, http.StatusOK, w.Code)

	res := &eventResponse{}
	decodeJSON(t, w, res)
	assert.Equal(t, entity.EventCancelled, res.Status)
	assert.Equal(t, "Hall B", res.Location)
}

func TestFavoriteEndpoints(t *testing.T) {
	r, s := newTestRouter()

	admin, _ := seedUser(t, s, "Admin", "admin@hub.test", entity.RoleAdmin)
	u, userToken := seedUser(t, s, "Alice", "alice@hub.test", entity.RoleStudent)
	ev := seedEvent(t, s, admin.ID, 5)

	path := "/events/" + ev.ID.Hex() + "/favorite"

	w := doJSON(t, r, http.MethodPost, path, userToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	got, err := s.FindUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, got.FavoriteEvents, 1)
	assert.Equal(t, ev.ID, got.FavoriteEvents[0])

	// favoriting twice keeps a single entry
	w = doJSON(t, r, http.MethodPost, path, userToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	got, err = s.FindUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Len(t, got.FavoriteEvents, 1)

	w = doJSON(t, r, http.MethodDelete, path, userToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	got, err = s.FindUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Empty(t, got.FavoriteEvents)

	// unknown event
	w = doJSON(t, r, http.MethodPost, "/events/000000000000000000000000/favorite", userToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
