package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kartikey3d/roommate-finder/database"
	"github.com/kartikey3d/roommate-finder/models"
)

type ListingRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`

	Rent    int `json:"rent" binding:"required,gt=0"`
	Deposit int `json:"deposit" binding:"gte=0"`

	Address   string   `json:"address" binding:"required"`
	City      string   `json:"city" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`

	AvailableFrom int64  `json:"availableFrom" binding:"required"`
	LeaseDuration string `json:"leaseDuration" binding:"required,oneof=short_term long_term flexible"`

	Amenities map[string]interface{} `json:"amenities"`
}

func (r *ListingRequest) model(ownerID primitive.ObjectID, now int64) models.Listing {
	amenities := r.Amenities
	if amenities == nil {
		amenities = map[string]interface{}{}
	}
	return models.Listing{
		ID:            primitive.NewObjectID(),
		OwnerID:       ownerID,
		Title:         r.Title,
		Description:   r.Description,
		Rent:          r.Rent,
		Deposit:       r.Deposit,
		Address:       r.Address,
		City:          r.City,
		Latitude:      *r.Latitude,
		Longitude:     *r.Longitude,
		AvailableFrom: r.AvailableFrom,
		LeaseDuration: r.LeaseDuration,
		Amenities:     amenities,
		Status:        models.ListingActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// CreateListing publishes a room listing owned by the caller. New listings
// start active.
func CreateListing(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listing := req.model(userID, time.Now().Unix())

	ctx, cancel := requestContext()
	defer cancel()

	if _, err := database.Listings.InsertOne(ctx, listing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create listing"})
		return
	}

	log.Printf("[CreateListing] listing %s created by user %s", listing.ID.Hex(), userID.Hex())
	c.JSON(http.StatusCreated, listing)
}

// GetListings returns active listings, newest first. Optional city and
// maxRent query filters.
func GetListings(c *gin.Context) {
	filter := bson.M{"status": models.ListingActive}
	if city, ok := c.GetQuery("city"); ok && city != "" {
		filter["city"] = city
	}
	if maxRent := queryInt(c, "maxRent", 0); maxRent > 0 {
		filter["rent"] = bson.M{"$lte": maxRent}
	}

	ctx, cancel := requestContext()
	defer cancel()

	cursor, err := database.Listings.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch listings"})
		return
	}
	defer cursor.Close(ctx)

	listings := []models.Listing{}
	if err := cursor.All(ctx, &listings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode listings"})
		return
	}
	c.JSON(http.StatusOK, listings)
}
