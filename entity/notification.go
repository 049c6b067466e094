package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	NotificationRegistration = "registration"
	NotificationApproval     = "approval"
	NotificationEventUpdate  = "event_update"
	NotificationGeneral      = "general"
)

type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Recipient primitive.ObjectID `bson:"recipient"`
	Type      string             `bson:"type"`
	Title     string             `bson:"title"`
	Message   string             `bson:"message"`

	Event        *primitive.ObjectID `bson:"event,omitempty"`
	User         *primitive.ObjectID `bson:"user,omitempty"`
	Registration *primitive.ObjectID `bson:"registration,omitempty"`

	Read      bool      `bson:"read"`
	CreatedAt time.Time `bson:"created_at"`
}
