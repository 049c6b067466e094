package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CategoryWorkshop  = "workshop"
	CategorySeminar   = "seminar"
	CategoryCultural  = "cultural"
	CategorySports    = "sports"
	CategoryTechnical = "technical"
	CategoryOther     = "other"
)

const (
	EventActive    = "active"
	EventCompleted = "completed"
	EventCancelled = "cancelled"
	EventPending   = "pending"
)

type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	StartTime   time.Time          `bson:"start_time"`
	EndTime     time.Time          `bson:"end_time"`
	Location    string             `bson:"location"`
	College     string             `bson:"college"`

	TotalSeats      int64                `bson:"total_seats"`
	RegisteredCount int64                `bson:"registered_count"`
	RegisteredUsers []primitive.ObjectID `bson:"registered_users"`

	// Inclusive headcount bounds for team registrations, registrant
	// included. Zero means unset and defaults to 1.
	TeamSizeMin int64 `bson:"team_size_min,omitempty"`
	TeamSizeMax int64 `bson:"team_size_max,omitempty"`

	Status    string             `bson:"status"`
	CreatedBy primitive.ObjectID `bson:"created_by"`

	RegistrationStart time.Time `bson:"registration_start,omitempty"`
	RegistrationEnd   time.Time `bson:"registration_end,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
}
