package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RegistrationPending   = "pending"
	RegistrationApproved  = "approved"
	RegistrationRejected  = "rejected"
	RegistrationCancelled = "cancelled"
)

// Registration links one user to one event. At most one registration
// may exist per (event, user) pair, enforced by a unique index.
type Registration struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Event primitive.ObjectID `bson:"event"`
	User  primitive.ObjectID `bson:"user"`

	TeamName    string   `bson:"team_name,omitempty"`
	TeamMembers []string `bson:"team_members,omitempty"`

	Status    string    `bson:"status"`
	CreatedAt time.Time `bson:"created_at"`
}
