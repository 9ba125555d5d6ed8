package matching

import "time"

type CleanlinessLevel string

const (
	CleanlinessRelaxed   CleanlinessLevel = "relaxed"
	CleanlinessModerate  CleanlinessLevel = "moderate"
	CleanlinessClean     CleanlinessLevel = "clean"
	CleanlinessVeryClean CleanlinessLevel = "very_clean"
)

// Ordinal ranks; distance between ranks drives the cleanliness factor.
var cleanlinessRank = map[CleanlinessLevel]int{
	CleanlinessRelaxed:   1,
	CleanlinessModerate:  2,
	CleanlinessClean:     3,
	CleanlinessVeryClean: 4,
}

type SleepSchedule string

const (
	SleepEarlyBird SleepSchedule = "early_bird"
	SleepNormal    SleepSchedule = "normal"
	SleepNightOwl  SleepSchedule = "night_owl"
)

var sleepRank = map[SleepSchedule]int{
	SleepEarlyBird: 0,
	SleepNormal:    1,
	SleepNightOwl:  2,
}

type GuestFrequency string

const (
	GuestsNever     GuestFrequency = "never"
	GuestsRarely    GuestFrequency = "rarely"
	GuestsSometimes GuestFrequency = "sometimes"
	GuestsOften     GuestFrequency = "often"
)

var guestRank = map[GuestFrequency]int{
	GuestsNever:     0,
	GuestsRarely:    1,
	GuestsSometimes: 2,
	GuestsOften:     3,
}

// MatchProfile is the fully-materialized input record for one user: profile,
// preferences and reputation flattened together. It is assembled by the caller
// from whatever store it uses; the engine never touches storage. Optional
// attributes are pointers, everything else is required and validated before
// scoring starts.
type MatchProfile struct {
	UserID string

	// Profile
	Age            int
	City           string
	Latitude       *float64
	Longitude      *float64
	MoveInEarliest *time.Time // nil means flexible on this side
	MoveInLatest   *time.Time

	// Preferences
	BudgetMin      *int
	BudgetMax      *int
	Cleanliness    CleanlinessLevel
	SleepSchedule  SleepSchedule
	SmokingOK      bool
	DrinkingOK     bool
	PetsOK         bool
	GuestFrequency GuestFrequency

	// Hard constraints layered on top of the raw comparison.
	RequireNonSmoker bool
	RequireNoPets    bool

	// Optional per-seeker weight overrides; must sum to 100 when set.
	Weights *Weights

	// Reputation (externally maintained, read-only here).
	ReputationScore int
}

func (p *MatchProfile) validate() error {
	if p.UserID == "" {
		return &IncompleteProfileError{UserID: p.UserID, Attribute: "userId"}
	}
	if p.Latitude == nil {
		return &IncompleteProfileError{UserID: p.UserID, Attribute: "latitude"}
	}
	if p.Longitude == nil {
		return &IncompleteProfileError{UserID: p.UserID, Attribute: "longitude"}
	}
	if p.BudgetMin == nil {
		return &IncompleteProfileError{UserID: p.UserID, Attribute: "budgetMin"}
	}
	if p.BudgetMax == nil {
		return &IncompleteProfileError{UserID: p.UserID, Attribute: "budgetMax"}
	}
	if _, ok := cleanlinessRank[p.Cleanliness]; !ok {
		return &IncompleteProfileError{UserID: p.UserID, Attribute: "cleanlinessLevel"}
	}
	if _, ok := sleepRank[p.SleepSchedule]; !ok {
		return &IncompleteProfileError{UserID: p.UserID, Attribute: "sleepSchedule"}
	}
	if _, ok := guestRank[p.GuestFrequency]; !ok {
		return &IncompleteProfileError{UserID: p.UserID, Attribute: "guestFrequency"}
	}
	if *p.BudgetMin > *p.BudgetMax {
		return &InvalidRangeError{UserID: p.UserID, Field: "budget"}
	}
	if p.MoveInEarliest != nil && p.MoveInLatest != nil && p.MoveInEarliest.After(*p.MoveInLatest) {
		return &InvalidRangeError{UserID: p.UserID, Field: "moveIn"}
	}
	return nil
}
