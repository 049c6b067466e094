package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
	College  string             `bson:"college"`
	Role     string             `bson:"role"`

	RegisteredEvents []primitive.ObjectID `bson:"registered_events"`
	FavoriteEvents   []primitive.ObjectID `bson:"favorite_events"`

	CreatedAt time.Time `bson:"created_at"`
}
