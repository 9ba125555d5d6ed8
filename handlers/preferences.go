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

type PreferencesRequest struct {
	BudgetMin *int `json:"budgetMin" binding:"required,gt=0"`
	BudgetMax *int `json:"budgetMax" binding:"required,gt=0"`

	CleanlinessLevel string `json:"cleanlinessLevel" binding:"required,oneof=relaxed moderate clean very_clean"`
	SleepSchedule    string `json:"sleepSchedule" binding:"required,oneof=early_bird normal night_owl"`
	SmokingOK        bool   `json:"smokingOk"`
	DrinkingOK       bool   `json:"drinkingOk"`
	PetsOK           bool   `json:"petsOk"`
	GuestFrequency   string `json:"guestFrequency" binding:"required,oneof=never rarely sometimes often"`

	RequireNonSmoker bool `json:"requireNonSmoker"`
	RequireNoPets    bool `json:"requireNoPets"`

	IsStudent bool `json:"isStudent"`
	IsWorking bool `json:"isWorking"`
}

// GetMyPreferences returns the caller's roommate preferences.
func GetMyPreferences(c *gin.Context) {
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
	if user.Preferences == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Preferences not set"})
		return
	}
	c.JSON(http.StatusOK, user.Preferences)
}

// UpsertMyPreferences creates or replaces the caller's preferences and
// triggers a match recomputation.
func UpsertMyPreferences(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *req.BudgetMin > *req.BudgetMax {
		c.JSON(http.StatusBadRequest, gin.H{"error": "budgetMin must not exceed budgetMax"})
		return
	}

	prefs := models.Preferences{
		BudgetMin:        req.BudgetMin,
		BudgetMax:        req.BudgetMax,
		CleanlinessLevel: req.CleanlinessLevel,
		SleepSchedule:    req.SleepSchedule,
		SmokingOK:        req.SmokingOK,
		DrinkingOK:       req.DrinkingOK,
		PetsOK:           req.PetsOK,
		GuestFrequency:   req.GuestFrequency,
		RequireNonSmoker: req.RequireNonSmoker,
		RequireNoPets:    req.RequireNoPets,
		IsStudent:        req.IsStudent,
		IsWorking:        req.IsWorking,
	}

	ctx, cancel := requestContext()
	defer cancel()

	res, err := database.Users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set": bson.M{
			"preferences": prefs,
			"updatedAt":   time.Now().Unix(),
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preferences"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	events.Publish(workers.EventPreferencesUpdated, userID)
	log.Printf("[UpsertMyPreferences] preferences updated for user %s", userID.Hex())
	c.JSON(http.StatusOK, gin.H{"message": "Preferences updated", "preferences": prefs})
}
