package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kartikey3d/roommate-finder/database"
	"github.com/kartikey3d/roommate-finder/models"
	"github.com/kartikey3d/roommate-finder/workers"
)

type ProfileUpdateRequest struct {
	Name   string `json:"name" binding:"required"`
	Age    int    `json:"age" binding:"required,gte=18,lte=100"`
	Gender string `json:"gender,omitempty"`
	Bio    string `json:"bio,omitempty"`

	City      string   `json:"city" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`

	LookingForShortTerm bool   `json:"lookingForShortTerm"`
	LookingForLongTerm  bool   `json:"lookingForLongTerm"`
	MoveInEarliest      *int64 `json:"moveInEarliest,omitempty"`
	MoveInLatest        *int64 `json:"moveInLatest,omitempty"`
}

// GetMyProfile returns the caller's full user document.
func GetMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user, err := database.FindUserByID(ctx, userID)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpsertMyProfile creates or replaces the caller's profile and triggers a
// match recomputation.
func UpsertMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.MoveInEarliest != nil && req.MoveInLatest != nil && *req.MoveInEarliest > *req.MoveInLatest {
		c.JSON(http.StatusBadRequest, gin.H{"error": "moveInEarliest must not be after moveInLatest"})
		return
	}

	profile := models.Profile{
		Name:                req.Name,
		Age:                 req.Age,
		Gender:              req.Gender,
		Bio:                 req.Bio,
		City:                req.City,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		LookingForShortTerm: req.LookingForShortTerm,
		LookingForLongTerm:  req.LookingForLongTerm,
		MoveInEarliest:      req.MoveInEarliest,
		MoveInLatest:        req.MoveInLatest,
	}

	ctx, cancel := requestContext()
	defer cancel()

	res, err := database.Users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set": bson.M{
			"profile":   profile,
			"updatedAt": time.Now().Unix(),
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	events.Publish(workers.EventProfileUpdated, userID)
	log.Printf("[UpsertMyProfile] profile updated for user %s", userID.Hex())
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "profile": profile})
}

// GetUser returns another user's public profile (no email, no preferences).
func GetUser(c *gin.Context) {
	targetID, err := parseObjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	user, err := database.FindUserByID(ctx, targetID)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	resp := gin.H{
		"id":      user.ID.Hex(),
		"profile": user.Profile,
	}
	if user.Reputation != nil {
		resp["reputationScore"] = user.Reputation.Score
	}
	c.JSON(http.StatusOK, resp)
}
