package models

import (
	"time"

	"github.com/kartikey3d/roommate-finder/matching"
)

// MatchProfile flattens the user document into the pure input record the
// matching engine consumes. defaultReputation is used when no reputation
// sub-document exists yet.
func (u *User) MatchProfile(defaultReputation int) matching.MatchProfile {
	mp := matching.MatchProfile{
		UserID:          u.ID.Hex(),
		ReputationScore: defaultReputation,
	}
	if u.Reputation != nil {
		mp.ReputationScore = u.Reputation.Score
	}
	if p := u.Profile; p != nil {
		mp.Age = p.Age
		mp.City = p.City
		mp.Latitude = p.Latitude
		mp.Longitude = p.Longitude
		mp.MoveInEarliest = unixToTime(p.MoveInEarliest)
		mp.MoveInLatest = unixToTime(p.MoveInLatest)
	}
	if pr := u.Preferences; pr != nil {
		mp.BudgetMin = pr.BudgetMin
		mp.BudgetMax = pr.BudgetMax
		mp.Cleanliness = matching.CleanlinessLevel(pr.CleanlinessLevel)
		mp.SleepSchedule = matching.SleepSchedule(pr.SleepSchedule)
		mp.SmokingOK = pr.SmokingOK
		mp.DrinkingOK = pr.DrinkingOK
		mp.PetsOK = pr.PetsOK
		mp.GuestFrequency = matching.GuestFrequency(pr.GuestFrequency)
		mp.RequireNonSmoker = pr.RequireNonSmoker
		mp.RequireNoPets = pr.RequireNoPets
	}
	return mp
}

func unixToTime(ts *int64) *time.Time {
	if ts == nil {
		return nil
	}
	t := time.Unix(*ts, 0).UTC()
	return &t
}
