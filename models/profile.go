package models

// Profile holds the who-and-where half of a user: identity details, location
// and the move-in availability window. Latitude/longitude and the move-in
// dates stay optional until the user provides them.
type Profile struct {
	Name   string `bson:"name" json:"name"`
	Age    int    `bson:"age" json:"age"`
	Gender string `bson:"gender,omitempty" json:"gender,omitempty"` // male, female, non_binary, prefer_not_to_say
	Bio    string `bson:"bio,omitempty" json:"bio,omitempty"`

	City      string   `bson:"city" json:"city"`
	Latitude  *float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude *float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`

	LookingForShortTerm bool   `bson:"lookingForShortTerm" json:"lookingForShortTerm"`
	LookingForLongTerm  bool   `bson:"lookingForLongTerm" json:"lookingForLongTerm"`
	MoveInEarliest      *int64 `bson:"moveInEarliest,omitempty" json:"moveInEarliest,omitempty"` // Unix timestamp
	MoveInLatest        *int64 `bson:"moveInLatest,omitempty" json:"moveInLatest,omitempty"`
}

// Complete reports whether the profile carries everything matching needs.
func (p *Profile) Complete() bool {
	return p != nil && p.Latitude != nil && p.Longitude != nil
}
