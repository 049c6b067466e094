package events

import (
	"encoding/json"
	"sync"
	"time"

	"campuseventhub-backend/log"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

const (
	RegistrationsExchange = "registrations"
)

type hub struct {
	lock sync.Mutex
	conn *amqp.Connection

	registrationSubscribers []*RegistrationSubscriber
}

var e = &hub{}

// Init dials the broker and declares the registrations exchange. An
// empty connection string disables the broker leg; in-process
// subscriptions keep working either way.
func Init(connString string) {
	if connString == "" {
		return
	}

	log.Logger.Info("Trying to connect to rabbitmq...")

	var conn *amqp.Connection
	t := time.Second
	for i := 0; i < 6; i++ {
		var err error
		conn, err = amqp.Dial(connString)
		if err != nil {
			if i == 5 {
				panic(err)
			}
			time.Sleep(t)
			t *= 2

			continue
		}

		break
	}
	log.Logger.Info("Connected to rabbitmq")

	ch, err := conn.Channel()
	if err != nil {
		panic(err)
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		RegistrationsExchange,
		"fanout",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic(err)
	}

	e.lock.Lock()
	e.conn = conn
	e.lock.Unlock()
}

func publishAMQP(exchange string, body interface{}) {
	e.lock.Lock()
	conn := e.conn
	e.lock.Unlock()

	if conn == nil {
		return
	}

	b, err := json.Marshal(body)
	if err != nil {
		log.Logger.Error("marshal failure", zap.Error(err))
		return
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Logger.Error("queue error", zap.Error(err))
		return
	}
	defer ch.Close()

	err = ch.Publish(exchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        b,
	})
	if err != nil {
		log.Logger.Error("queue error", zap.Error(err))
	}
}
