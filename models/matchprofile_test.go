package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kartikey3d/roommate-finder/matching"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }
func ptrI64(v int64) *int64   { return &v }

func completeUser() *User {
	return &User{
		ID:           primitive.NewObjectID(),
		Email:        "alex@example.com",
		AccountState: AccountActive,
		Profile: &Profile{
			Name:           "Alex",
			Age:            27,
			City:           "Berlin",
			Latitude:       ptrF(52.52),
			Longitude:      ptrF(13.405),
			MoveInEarliest: ptrI64(1767225600), // 2026-01-01 UTC
		},
		Preferences: &Preferences{
			BudgetMin:        ptrI(600),
			BudgetMax:        ptrI(900),
			CleanlinessLevel: "clean",
			SleepSchedule:    "night_owl",
			PetsOK:           true,
			GuestFrequency:   "rarely",
			RequireNonSmoker: true,
		},
		Reputation: &Reputation{Score: 80},
	}
}

func TestMatchProfileFlattensDocument(t *testing.T) {
	u := completeUser()

	mp := u.MatchProfile(100)

	assert.Equal(t, u.ID.Hex(), mp.UserID)
	assert.Equal(t, 27, mp.Age)
	assert.Equal(t, "Berlin", mp.City)
	require.NotNil(t, mp.Latitude)
	assert.Equal(t, 52.52, *mp.Latitude)
	require.NotNil(t, mp.MoveInEarliest)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *mp.MoveInEarliest)
	assert.Nil(t, mp.MoveInLatest)

	assert.Equal(t, 600, *mp.BudgetMin)
	assert.Equal(t, 900, *mp.BudgetMax)
	assert.Equal(t, matching.CleanlinessClean, mp.Cleanliness)
	assert.Equal(t, matching.SleepNightOwl, mp.SleepSchedule)
	assert.Equal(t, matching.GuestsRarely, mp.GuestFrequency)
	assert.True(t, mp.PetsOK)
	assert.True(t, mp.RequireNonSmoker)
	assert.Equal(t, 80, mp.ReputationScore)
}

func TestMatchProfileDefaultsReputation(t *testing.T) {
	u := completeUser()
	u.Reputation = nil

	mp := u.MatchProfile(100)
	assert.Equal(t, 100, mp.ReputationScore)
}

func TestMatchProfileToleratesMissingSubdocuments(t *testing.T) {
	u := &User{ID: primitive.NewObjectID()}

	mp := u.MatchProfile(100)
	assert.Equal(t, u.ID.Hex(), mp.UserID)
	assert.Nil(t, mp.Latitude)
	assert.Nil(t, mp.BudgetMin)
}

func TestProfileComplete(t *testing.T) {
	var p *Profile
	assert.False(t, p.Complete())

	p = &Profile{City: "Berlin"}
	assert.False(t, p.Complete())

	p.Latitude = ptrF(52.52)
	p.Longitude = ptrF(13.405)
	assert.True(t, p.Complete())
}

func TestPreferencesComplete(t *testing.T) {
	var p *Preferences
	assert.False(t, p.Complete())

	p = &Preferences{BudgetMin: ptrI(600), BudgetMax: ptrI(900)}
	assert.False(t, p.Complete())

	p.CleanlinessLevel = "clean"
	p.SleepSchedule = "normal"
	p.GuestFrequency = "sometimes"
	assert.True(t, p.Complete())
}
