package handler

import (
	"time"

	"campuseventhub-backend/entity"
	"campuseventhub-backend/errs"
	"campuseventhub-backend/registration"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JSON shapes returned to clients. Entities carry bson tags only;
// conversion happens here.

type eventResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	Location          string    `json:"location"`
	College           string    `json:"college"`
	TotalSeats        int64     `json:"total_seats"`
	RegisteredCount   int64     `json:"registered_count"`
	TeamSizeMin       int64     `json:"team_size_min,omitempty"`
	TeamSizeMax       int64     `json:"team_size_max,omitempty"`
	Status            string    `json:"status"`
	CreatedBy         string    `json:"created_by"`
	RegistrationStart time.Time `json:"registration_start,omitempty"`
	RegistrationEnd   time.Time `json:"registration_end,omitempty"`
}

func toEventResponse(e *entity.Event) *eventResponse {
	if e == nil {
		return nil
	}

	return &eventResponse{
		ID:                e.ID.Hex(),
		Title:             e.Title,
		Description:       e.Description,
		Category:          e.Category,
		StartTime:         e.StartTime,
		EndTime:           e.EndTime,
		Location:          e.Location,
		College:           e.College,
		TotalSeats:        e.TotalSeats,
		RegisteredCount:   e.RegisteredCount,
		TeamSizeMin:       e.TeamSizeMin,
		TeamSizeMax:       e.TeamSizeMax,
		Status:            e.Status,
		CreatedBy:         e.CreatedBy.Hex(),
		RegistrationStart: e.RegistrationStart,
		RegistrationEnd:   e.RegistrationEnd,
	}
}

type userResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	College string `json:"college"`
	Role    string `json:"role"`
}

func toUserResponse(u *entity.User) *userResponse {
	if u == nil {
		return nil
	}

	return &userResponse{
		ID:      u.ID.Hex(),
		Name:    u.Name,
		Email:   u.Email,
		College: u.College,
		Role:    u.Role,
	}
}

type registrationResponse struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	UserID      string    `json:"user_id"`
	TeamName    string    `json:"team_name,omitempty"`
	TeamMembers []string  `json:"team_members,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`

	Event *eventResponse `json:"event,omitempty"`
	User  *userResponse  `json:"user,omitempty"`
}

func toRegistrationResponse(r *entity.Registration) *registrationResponse {
	return &registrationResponse{
		ID:          r.ID.Hex(),
		EventID:     r.Event.Hex(),
		UserID:      r.User.Hex(),
		TeamName:    r.TeamName,
		TeamMembers: r.TeamMembers,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
	}
}

func toUserRegistrationResponses(regs []registration.UserRegistration) []registrationResponse {
	out := make([]registrationResponse, 0, len(regs))
	for k := range regs {
		r := toRegistrationResponse(&regs[k].Registration)
		r.Event = toEventResponse(regs[k].Event)
		out = append(out, *r)
	}

	return out
}

func toAdminRegistrationResponses(regs []registration.AdminRegistration) []registrationResponse {
	out := make([]registrationResponse, 0, len(regs))
	for k := range regs {
		r := toRegistrationResponse(&regs[k].Registration)
		r.Event = toEventResponse(regs[k].Event)
		r.User = toUserResponse(regs[k].User)
		out = append(out, *r)
	}

	return out
}

type notificationResponse struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	EventID        string    `json:"event_id,omitempty"`
	UserID         string    `json:"user_id,omitempty"`
	RegistrationID string    `json:"registration_id,omitempty"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}

func toNotificationResponse(n *entity.Notification) *notificationResponse {
	res := &notificationResponse{
		ID:        n.ID.Hex(),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}

	if n.Event != nil {
		res.EventID = n.Event.Hex()
	}
	if n.User != nil {
		res.UserID = n.User.Hex()
	}
	if n.Registration != nil {
		res.RegistrationID = n.Registration.Hex()
	}

	return res
}

func objectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, errs.ErrInvalidID
	}

	return id, nil
}
