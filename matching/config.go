package matching

import "fmt"

// Weights defines how many of the 100 total points each factor can contribute.
type Weights struct {
	Budget        int `json:"budget"`
	Location      int `json:"location"`
	Cleanliness   int `json:"cleanliness"`
	SleepSchedule int `json:"sleepSchedule"`
	Lifestyle     int `json:"lifestyle"`
	Availability  int `json:"availability"`
	Reputation    int `json:"reputation"`
}

// DefaultWeights returns the standard point allocation.
func DefaultWeights() Weights {
	return Weights{
		Budget:        20,
		Location:      25,
		Cleanliness:   15,
		SleepSchedule: 10,
		Lifestyle:     15,
		Availability:  10,
		Reputation:    5,
	}
}

func (w Weights) Sum() int {
	return w.Budget + w.Location + w.Cleanliness + w.SleepSchedule +
		w.Lifestyle + w.Availability + w.Reputation
}

func (w Weights) of(f Factor) int {
	switch f {
	case FactorBudget:
		return w.Budget
	case FactorLocation:
		return w.Location
	case FactorCleanliness:
		return w.Cleanliness
	case FactorSleepSchedule:
		return w.SleepSchedule
	case FactorLifestyle:
		return w.Lifestyle
	case FactorAvailability:
		return w.Availability
	case FactorReputation:
		return w.Reputation
	}
	return 0
}

// Config is the immutable tuning bundle for the engine. It is passed in
// explicitly and never read from ambient state.
type Config struct {
	MaxDistanceKm     float64
	MinScoreThreshold int
	Weights           Weights
	ReputationMin     int
	ReputationMax     int
}

// DefaultConfig returns the configuration used in production unless overridden.
func DefaultConfig() Config {
	return Config{
		MaxDistanceKm:     50.0,
		MinScoreThreshold: 30,
		Weights:           DefaultWeights(),
		ReputationMin:     0,
		ReputationMax:     100,
	}
}

func (c Config) validate() error {
	if c.MaxDistanceKm <= 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("maxDistanceKm must be positive, got %v", c.MaxDistanceKm)}
	}
	if c.MinScoreThreshold < 0 || c.MinScoreThreshold > 100 {
		return &ConfigurationError{Reason: fmt.Sprintf("minScoreThreshold must be in [0,100], got %d", c.MinScoreThreshold)}
	}
	if s := c.Weights.Sum(); s != 100 {
		return &ConfigurationError{Reason: fmt.Sprintf("factor weights must sum to 100, got %d", s)}
	}
	if c.ReputationMax <= c.ReputationMin {
		return &ConfigurationError{Reason: "reputation scale is empty"}
	}
	return nil
}
