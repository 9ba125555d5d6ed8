package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Account states
const (
	AccountUnverified = "unverified"
	AccountActive     = "active"
	AccountSuspended  = "suspended"
)

// User is the single document per account: auth fields plus embedded profile,
// preferences and reputation sub-documents.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	AccountState string             `bson:"accountState" json:"accountState"`

	Profile     *Profile     `bson:"profile,omitempty" json:"profile,omitempty"`
	Preferences *Preferences `bson:"preferences,omitempty" json:"preferences,omitempty"`
	Reputation  *Reputation  `bson:"reputation,omitempty" json:"reputation,omitempty"`

	CreatedAt   int64 `bson:"createdAt" json:"createdAt"`
	UpdatedAt   int64 `bson:"updatedAt" json:"updatedAt"`
	LastLoginAt int64 `bson:"lastLoginAt,omitempty" json:"lastLoginAt,omitempty"`
}
