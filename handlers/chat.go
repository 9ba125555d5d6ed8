package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kartikey3d/roommate-finder/database"
	"github.com/kartikey3d/roommate-finder/models"
)

type CreateChatRequest struct {
	TargetUserID string `json:"targetUserId" binding:"required"`
}

// CreateChat opens (or returns the existing) conversation between the caller
// and another user.
func CreateChat(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	targetID, err := parseObjectID(req.TargetUserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	}
	if targetID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot open a chat with yourself"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if _, err := database.FindUserByID(ctx, targetID); err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Target user not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	// One chat per pair
	var existing models.Chat
	err = database.Chats.FindOne(ctx, bson.M{
		"participants": bson.M{"$all": []primitive.ObjectID{userID, targetID}},
	}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusOK, existing)
		return
	}
	if err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	chat := models.Chat{
		ID:           primitive.NewObjectID(),
		Participants: []primitive.ObjectID{userID, targetID},
		CreatedAt:    time.Now().Unix(),
	}
	if _, err := database.Chats.InsertOne(ctx, chat); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create chat"})
		return
	}
	c.JSON(http.StatusCreated, chat)
}

// GetChatList returns the caller's conversations, most recent first.
func GetChatList(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	cursor, err := database.Chats.Find(ctx,
		bson.M{"participants": userID},
		options.Find().SetSort(bson.D{{Key: "lastMessageAt", Value: -1}}),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch chats"})
		return
	}
	defer cursor.Close(ctx)

	chats := []models.Chat{}
	if err := cursor.All(ctx, &chats); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode chats"})
		return
	}
	c.JSON(http.StatusOK, chats)
}
