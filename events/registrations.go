package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type RegistrationSubscriber struct {
	ID uuid.UUID
	Ch chan *RegistrationEvent
}

// RegistrationEvent describes a committed registration. It feeds the
// admin live stream and the broker exchange.
type RegistrationEvent struct {
	RegistrationID string    `json:"registration_id"`
	EventID        string    `json:"event_id"`
	EventTitle     string    `json:"event_title"`
	UserID         string    `json:"user_id"`
	UserName       string    `json:"user_name"`
	CreatedAt      time.Time `json:"created_at"`
}

func ConsumeRegistration(ctx context.Context) <-chan *RegistrationEvent {
	ch := make(chan *RegistrationEvent, 16)
	e.lock.Lock()
	defer e.lock.Unlock()

	ID, err := uuid.NewUUID()
	if err != nil {
		panic(err)
	}
	e.registrationSubscribers = append(e.registrationSubscribers, &RegistrationSubscriber{ID: ID, Ch: ch})
	go func() {
		<-ctx.Done()
		e.lock.Lock()
		defer e.lock.Unlock()

		for k, v := range e.registrationSubscribers {
			if v.ID == ID {
				a := e.registrationSubscribers
				a[k] = a[len(a)-1]
				a[len(a)-1] = nil
				e.registrationSubscribers = a[:len(a)-1]
				break
			}
		}
	}()

	return ch
}

func PublishRegistration(event *RegistrationEvent) {
	e.lock.Lock()
	for _, v := range e.registrationSubscribers {
		select {
		case v.Ch <- event:
		default:
			// slow consumer, drop rather than stall the commit
		}
	}
	e.lock.Unlock()

	publishAMQP(RegistrationsExchange, event)
}
