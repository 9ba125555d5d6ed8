package workers

import (
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventType labels the domain events that trigger background work.
type EventType string

const (
	EventProfileUpdated     EventType = "profile_updated"
	EventPreferencesUpdated EventType = "preferences_updated"
	EventMessageSent        EventType = "message_sent"
)

// Event is a domain event emitted by the request path.
type Event struct {
	Type      EventType
	UserID    primitive.ObjectID
	Timestamp int64
}

// Publisher hands events from handlers to the background worker over a
// buffered channel. Publishing never blocks the request path: when the worker
// is behind, the event is dropped and the periodic sweep catches up.
type Publisher struct {
	ch chan Event
}

func NewPublisher(buffer int) *Publisher {
	return &Publisher{ch: make(chan Event, buffer)}
}

func (p *Publisher) Publish(t EventType, userID primitive.ObjectID) {
	e := Event{Type: t, UserID: userID, Timestamp: time.Now().Unix()}
	select {
	case p.ch <- e:
	default:
		log.Printf("[events] dropped %s for user %s, worker backlog full", t, userID.Hex())
	}
}

func (p *Publisher) Events() <-chan Event {
	return p.ch
}
