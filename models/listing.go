package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Listing status
const (
	ListingActive   = "active"
	ListingInactive = "inactive"
	ListingFilled   = "filled"
)

// Lease duration
const (
	LeaseShortTerm = "short_term" // < 6 months
	LeaseLongTerm  = "long_term"  // >= 6 months
	LeaseFlexible  = "flexible"
)

// Listing is a room advertised by a user looking for a roommate.
type Listing struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID primitive.ObjectID `bson:"ownerId" json:"ownerId"`

	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`

	Rent    int `bson:"rent" json:"rent"`
	Deposit int `bson:"deposit" json:"deposit"`

	Address   string  `bson:"address" json:"address"`
	City      string  `bson:"city" json:"city"`
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`

	AvailableFrom int64  `bson:"availableFrom" json:"availableFrom"` // Unix timestamp
	LeaseDuration string `bson:"leaseDuration" json:"leaseDuration"`

	// Free-form amenity flags, e.g. {"wifi": true, "laundry": "in_unit"}
	Amenities map[string]interface{} `bson:"amenities" json:"amenities"`

	Status string `bson:"status" json:"status"`

	CreatedAt int64 `bson:"createdAt" json:"createdAt"`
	UpdatedAt int64 `bson:"updatedAt" json:"updatedAt"`
}
