package handler

import (
	"campuseventhub-backend/registration"
	"campuseventhub-backend/store"

	"github.com/gin-gonic/gin"
)

func NewRouter(key []byte, s store.Store, svc *registration.Service) *gin.Engine {
	r := gin.Default()

	auth := NewAuthHandler(s, key)
	eventH := NewEventHandler(s)
	regH := NewRegistrationHandler(svc)
	notifH := NewNotificationHandler(s)

	r.POST("/auth/register", auth.Register)
	r.POST("/auth/login", auth.Login)
	r.POST("/auth/refresh", auth.Refresh)

	r.GET("/events", eventH.List)
	r.GET("/events/:id", eventH.Get)

	api := r.Group("/", RequireAuth(key))
	api.POST("/events/:id/registrations", regH.Create)
	api.POST("/events/:id/favorite", eventH.Favorite)
	api.DELETE("/events/:id/favorite", eventH.Unfavorite)
	api.GET("/users/me/registrations", regH.ListMine)
	api.GET("/users/me/notifications", notifH.ListMine)
	api.POST("/notifications/:id/read", notifH.MarkRead)

	admin := api.Group("/", RequireAdmin)
	admin.POST("/events", eventH.Create)
	admin.PATCH("/events/:id", eventH.Update)
	admin.PATCH("/registrations/:id", regH.UpdateStatus)
	admin.GET("/admin/registrations", regH.ListForAdmin)
	admin.GET("/admin/registrations/stream", regH.Stream)

	return r
}
