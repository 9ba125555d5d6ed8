package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kartikey3d/roommate-finder/database"
	"github.com/kartikey3d/roommate-finder/models"
	"github.com/kartikey3d/roommate-finder/workers"
)

type SendMessageRequest struct {
	ChatID  string `json:"chatId" binding:"required"`
	Content string `json:"content" binding:"required,max=2000"`
}

// SendMessage appends a message to a chat the caller participates in and
// pushes it to the recipient over the websocket.
func SendMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	chatID, err := parseObjectID(req.ChatID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat ID"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var chat models.Chat
	err = database.Chats.FindOne(ctx, bson.M{"_id": chatID, "participants": userID}).Decode(&chat)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied to chat"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify chat access"})
		return
	}

	message := models.Message{
		ID:        primitive.NewObjectID(),
		ChatID:    chatID,
		SenderID:  userID,
		Content:   req.Content,
		CreatedAt: time.Now().Unix(),
	}
	if _, err := database.Messages.InsertOne(ctx, message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	database.Chats.UpdateOne(ctx, bson.M{"_id": chatID}, bson.M{
		"$set": bson.M{
			"lastMessage":   message,
			"lastMessageAt": message.CreatedAt,
		},
	})

	if wsManager != nil {
		for _, participant := range chat.Participants {
			if participant != userID {
				wsManager.NotifyNewMessage(participant.Hex(), message)
			}
		}
	}
	events.Publish(workers.EventMessageSent, userID)

	c.JSON(http.StatusCreated, message)
}

// GetMessages returns a chat's messages in chronological order.
func GetMessages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	chatID, err := parseObjectID(c.Param("chatId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat ID"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	// Verify the caller is in the chat before handing out messages
	err = database.Chats.FindOne(ctx, bson.M{"_id": chatID, "participants": userID}).Err()
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied to chat"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify chat access"})
		return
	}

	cursor, err := database.Messages.Find(ctx,
		bson.M{"chatId": chatID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}
	defer cursor.Close(ctx)

	messages := []models.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode messages"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// MarkAsRead flags every message in a chat addressed to the caller as read.
func MarkAsRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	chatID, err := parseObjectID(c.Param("chatId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat ID"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	res, err := database.Messages.UpdateMany(ctx,
		bson.M{"chatId": chatID, "senderId": bson.M{"$ne": userID}, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark messages read"})
		return
	}

	log.Printf("[MarkAsRead] user %s marked %d messages read", userID.Hex(), res.ModifiedCount)
	c.JSON(http.StatusOK, gin.H{"updated": res.ModifiedCount})
}
