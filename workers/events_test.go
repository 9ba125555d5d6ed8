package workers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPublisherDeliversInOrder(t *testing.T) {
	p := NewPublisher(4)
	u1 := primitive.NewObjectID()
	u2 := primitive.NewObjectID()

	p.Publish(EventProfileUpdated, u1)
	p.Publish(EventPreferencesUpdated, u2)

	e := <-p.Events()
	assert.Equal(t, EventProfileUpdated, e.Type)
	assert.Equal(t, u1, e.UserID)
	require.NotZero(t, e.Timestamp)

	e = <-p.Events()
	assert.Equal(t, EventPreferencesUpdated, e.Type)
	assert.Equal(t, u2, e.UserID)
}

func TestPublisherDropsWhenFull(t *testing.T) {
	p := NewPublisher(1)
	u := primitive.NewObjectID()

	p.Publish(EventProfileUpdated, u)
	// Buffer is full; this must not block.
	done := make(chan struct{})
	go func() {
		p.Publish(EventMessageSent, u)
		close(done)
	}()
	<-done

	select {
	case e := <-p.Events():
		assert.Equal(t, EventProfileUpdated, e.Type)
	default:
		t.Fatal("expected the first event to be buffered")
	}
	select {
	case e := <-p.Events():
		t.Fatalf("expected the overflow event to be dropped, got %s", e.Type)
	default:
	}
}
