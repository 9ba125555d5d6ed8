package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kartikey3d/roommate-finder/config"
	"github.com/kartikey3d/roommate-finder/matching"
	"github.com/kartikey3d/roommate-finder/websocket"
	"github.com/kartikey3d/roommate-finder/workers"
)

// Shared handler dependencies, wired once from main.
var (
	cfg       config.Config
	engine    *matching.Engine
	wsManager *websocket.Manager
	events    *workers.Publisher
)

// Init wires the handler package. Must be called before routes are served.
func Init(c config.Config, e *matching.Engine, ws *websocket.Manager, ev *workers.Publisher) {
	cfg = c
	engine = e
	wsManager = ws
	events = ev
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// currentUserID resolves the authenticated user set by the JWT middleware.
// Writes the error response itself when the ID is unusable.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return primitive.NilObjectID, false
	}
	return userID, true
}

func parseObjectID(hex string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(hex)
}
