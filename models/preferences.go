package models

// Preferences is what the user wants in a roommate: budget band, lifestyle
// attributes and hard constraints layered on top of the raw comparison.
type Preferences struct {
	BudgetMin *int `bson:"budgetMin,omitempty" json:"budgetMin,omitempty"`
	BudgetMax *int `bson:"budgetMax,omitempty" json:"budgetMax,omitempty"`

	CleanlinessLevel string `bson:"cleanlinessLevel" json:"cleanlinessLevel"` // relaxed, moderate, clean, very_clean
	SleepSchedule    string `bson:"sleepSchedule" json:"sleepSchedule"`       // early_bird, normal, night_owl
	SmokingOK        bool   `bson:"smokingOk" json:"smokingOk"`
	DrinkingOK       bool   `bson:"drinkingOk" json:"drinkingOk"`
	PetsOK           bool   `bson:"petsOk" json:"petsOk"`
	GuestFrequency   string `bson:"guestFrequency" json:"guestFrequency"` // never, rarely, sometimes, often

	RequireNonSmoker bool `bson:"requireNonSmoker" json:"requireNonSmoker"`
	RequireNoPets    bool `bson:"requireNoPets" json:"requireNoPets"`

	IsStudent bool `bson:"isStudent" json:"isStudent"`
	IsWorking bool `bson:"isWorking" json:"isWorking"`
}

// Complete reports whether matching can run against these preferences.
func (p *Preferences) Complete() bool {
	return p != nil && p.BudgetMin != nil && p.BudgetMax != nil &&
		p.CleanlinessLevel != "" && p.SleepSchedule != "" && p.GuestFrequency != ""
}
