package matching

import (
	"math"
	"time"
)

// Factor is one of the seven weighted dimensions of a compatibility score.
type Factor string

const (
	FactorBudget        Factor = "budget"
	FactorLocation      Factor = "location"
	FactorCleanliness   Factor = "cleanliness"
	FactorSleepSchedule Factor = "sleep_schedule"
	FactorLifestyle     Factor = "lifestyle"
	FactorAvailability  Factor = "availability"
	FactorReputation    Factor = "reputation"
)

// factorPriority is the fixed weight-descending order used to break ties when
// picking top reasons.
var factorPriority = []Factor{
	FactorLocation,
	FactorBudget,
	FactorLifestyle,
	FactorCleanliness,
	FactorAvailability,
	FactorSleepSchedule,
	FactorReputation,
}

// FactorScore is the points one factor contributed, capped by its weight.
// Conflict marks a hard or zero-overlap case.
type FactorScore struct {
	Factor   Factor `json:"factor"`
	Points   int    `json:"points"`
	Weight   int    `json:"weight"`
	Conflict bool   `json:"conflict"`
}

// Range is a numeric overlap range, e.g. the shared budget band.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Breakdown is the full per-factor decomposition for one seeker/candidate
// pair. The scorer always returns it complete, even for poor matches, so that
// explain views can show why a score is low.
type Breakdown struct {
	SeekerID    string
	CandidateID string
	Total       int
	Factors     []FactorScore
	DistanceKm  float64
	// BudgetOverlap is nil when the budget ranges do not intersect.
	BudgetOverlap *Range
	// LifestyleConflicts names the sub-factors that hard-failed
	// ("smoking", "pets", "guests").
	LifestyleConflicts []string
}

func (b *Breakdown) factor(f Factor) FactorScore {
	for _, fs := range b.Factors {
		if fs.Factor == f {
			return fs
		}
	}
	return FactorScore{Factor: f}
}

// Engine computes deterministic, explainable compatibility scores between
// roommate profiles. It is pure: no I/O, no shared mutable state, inputs are
// never modified. A single Engine is safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine validates cfg and returns a ready engine. Configuration problems
// surface here, never per call.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Score computes the full factor breakdown for one seeker/candidate pair.
// Same inputs always produce the same breakdown.
func (e *Engine) Score(seeker, candidate MatchProfile) (*Breakdown, error) {
	if err := seeker.validate(); err != nil {
		return nil, err
	}
	if err := candidate.validate(); err != nil {
		return nil, err
	}

	w := e.cfg.Weights
	if seeker.Weights != nil {
		if s := seeker.Weights.Sum(); s != 100 {
			return nil, &ConfigurationError{Reason: "seeker weight overrides must sum to 100"}
		}
		w = *seeker.Weights
	}

	b := &Breakdown{
		SeekerID:    seeker.UserID,
		CandidateID: candidate.UserID,
	}

	budgetPts, overlap := scoreBudget(seeker, candidate, w.Budget)
	b.BudgetOverlap = overlap
	b.Factors = append(b.Factors, FactorScore{
		Factor: FactorBudget, Points: budgetPts, Weight: w.Budget, Conflict: overlap == nil,
	})

	distance := haversineKm(*seeker.Latitude, *seeker.Longitude, *candidate.Latitude, *candidate.Longitude)
	b.DistanceKm = math.Round(distance*100) / 100
	locationPts := scoreLocation(distance, e.cfg.MaxDistanceKm, w.Location)
	b.Factors = append(b.Factors, FactorScore{
		Factor: FactorLocation, Points: locationPts, Weight: w.Location, Conflict: distance >= e.cfg.MaxDistanceKm,
	})

	cleanPts := scoreCleanliness(seeker.Cleanliness, candidate.Cleanliness, w.Cleanliness)
	b.Factors = append(b.Factors, FactorScore{
		Factor: FactorCleanliness, Points: cleanPts, Weight: w.Cleanliness, Conflict: cleanPts == 0 && w.Cleanliness > 0,
	})

	sleepPts, sleepConflict := scoreSleepSchedule(seeker.SleepSchedule, candidate.SleepSchedule, w.SleepSchedule)
	b.Factors = append(b.Factors, FactorScore{
		Factor: FactorSleepSchedule, Points: sleepPts, Weight: w.SleepSchedule, Conflict: sleepConflict,
	})

	lifestylePts, lifestyleConflicts := scoreLifestyle(seeker, candidate, w.Lifestyle)
	b.LifestyleConflicts = lifestyleConflicts
	b.Factors = append(b.Factors, FactorScore{
		Factor: FactorLifestyle, Points: lifestylePts, Weight: w.Lifestyle, Conflict: len(lifestyleConflicts) > 0,
	})

	availPts, availConflict := scoreAvailability(seeker, candidate, w.Availability)
	b.Factors = append(b.Factors, FactorScore{
		Factor: FactorAvailability, Points: availPts, Weight: w.Availability, Conflict: availConflict,
	})

	repPts := scoreReputation(candidate.ReputationScore, e.cfg, w.Reputation)
	b.Factors = append(b.Factors, FactorScore{
		Factor: FactorReputation, Points: repPts, Weight: w.Reputation,
	})

	for _, fs := range b.Factors {
		b.Total += fs.Points
	}
	return b, nil
}

// scoreBudget awards points for the overlap between the two budget ranges,
// proportional to overlap width over union width. Full containment of one
// range in the other earns the full weight. Returns a nil range when the
// budgets do not intersect at all.
func scoreBudget(seeker, candidate MatchProfile, weight int) (int, *Range) {
	sMin, sMax := *seeker.BudgetMin, *seeker.BudgetMax
	cMin, cMax := *candidate.BudgetMin, *candidate.BudgetMax

	lo := max(sMin, cMin)
	hi := min(sMax, cMax)
	if hi < lo {
		return 0, nil
	}
	overlap := &Range{Min: lo, Max: hi}

	contained := (sMin <= cMin && sMax >= cMax) || (cMin <= sMin && cMax >= sMax)
	if contained {
		return weight, overlap
	}

	unionWidth := max(sMax, cMax) - min(sMin, cMin)
	if unionWidth == 0 {
		return weight, overlap
	}
	ratio := float64(hi-lo) / float64(unionWidth)
	return clampPoints(roundHalfUp(ratio*float64(weight)), weight), overlap
}

// scoreLocation decays linearly from full weight at distance zero to zero at
// or beyond the configured maximum.
func scoreLocation(distanceKm, maxDistanceKm float64, weight int) int {
	if distanceKm >= maxDistanceKm {
		return 0
	}
	ratio := 1 - distanceKm/maxDistanceKm
	return clampPoints(roundHalfUp(ratio*float64(weight)), weight)
}

// scoreCleanliness is the inverse of the ordinal distance between the two
// cleanliness levels.
func scoreCleanliness(a, b CleanlinessLevel, weight int) int {
	diff := cleanlinessRank[a] - cleanlinessRank[b]
	if diff < 0 {
		diff = -diff
	}
	span := len(cleanlinessRank) - 1
	ratio := 1 - float64(diff)/float64(span)
	return clampPoints(roundHalfUp(ratio*float64(weight)), weight)
}

// scoreSleepSchedule gives full credit for an exact match, partial credit for
// adjacent schedules, and zero plus a conflict for opposite ones.
func scoreSleepSchedule(a, b SleepSchedule, weight int) (int, bool) {
	diff := sleepRank[a] - sleepRank[b]
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return weight, false
	case 1:
		return clampPoints(roundHalfUp(0.7*float64(weight)), weight), false
	default:
		return 0, true
	}
}

// scoreLifestyle combines the smoking, pets and guest-frequency sub-factors.
// Any hard incompatibility zeroes the whole factor and names the sub-factor.
func scoreLifestyle(seeker, candidate MatchProfile, weight int) (int, []string) {
	var conflicts []string

	if (!seeker.SmokingOK || seeker.RequireNonSmoker) && candidate.SmokingOK {
		conflicts = append(conflicts, "smoking")
	} else if candidate.RequireNonSmoker && seeker.SmokingOK {
		conflicts = append(conflicts, "smoking")
	}

	if (!seeker.PetsOK || seeker.RequireNoPets) && candidate.PetsOK {
		conflicts = append(conflicts, "pets")
	} else if candidate.RequireNoPets && seeker.PetsOK {
		conflicts = append(conflicts, "pets")
	}

	guestDiff := guestRank[seeker.GuestFrequency] - guestRank[candidate.GuestFrequency]
	if guestDiff < 0 {
		guestDiff = -guestDiff
	}
	if guestDiff >= 3 {
		conflicts = append(conflicts, "guests")
	}

	if len(conflicts) > 0 {
		return 0, conflicts
	}

	sub := float64(weight) / 3
	var pts float64
	if seeker.SmokingOK == candidate.SmokingOK {
		pts += sub
	}
	if seeker.PetsOK == candidate.PetsOK {
		pts += sub
	}
	switch guestDiff {
	case 0:
		pts += sub
	case 1:
		pts += sub * 0.6
	case 2:
		pts += sub * 0.2
	}
	return clampPoints(roundHalfUp(pts), weight), nil
}

// scoreAvailability mirrors the budget overlap for move-in windows. A nil
// bound means flexible: it always overlaps on that side, and when it makes the
// union unbounded the ratio degenerates to full credit.
func scoreAvailability(seeker, candidate MatchProfile, weight int) (int, bool) {
	lo := laterOf(seeker.MoveInEarliest, candidate.MoveInEarliest)
	hi := earlierOf(seeker.MoveInLatest, candidate.MoveInLatest)
	if lo != nil && hi != nil && hi.Before(*lo) {
		return 0, true
	}

	unionLo := earlierOf(seeker.MoveInEarliest, candidate.MoveInEarliest)
	unionHi := laterOf(seeker.MoveInLatest, candidate.MoveInLatest)
	if seeker.MoveInEarliest == nil || candidate.MoveInEarliest == nil ||
		seeker.MoveInLatest == nil || candidate.MoveInLatest == nil ||
		unionLo == nil || unionHi == nil {
		return weight, false
	}

	unionDays := unionHi.Sub(*unionLo).Hours() / 24
	if unionDays <= 0 {
		return weight, false
	}
	overlapDays := hi.Sub(*lo).Hours() / 24
	ratio := overlapDays / unionDays
	return clampPoints(roundHalfUp(ratio*float64(weight)), weight), false
}

// scoreReputation normalizes the candidate's trust score against the
// configured scale. This factor never produces a conflict.
func scoreReputation(score int, cfg Config, weight int) int {
	span := float64(cfg.ReputationMax - cfg.ReputationMin)
	ratio := float64(score-cfg.ReputationMin) / span
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return clampPoints(roundHalfUp(ratio*float64(weight)), weight)
}

// haversineKm is the great-circle distance between two coordinates.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// roundHalfUp rounds to the nearest integer, halves away from zero upward.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func clampPoints(pts, weight int) int {
	if pts < 0 {
		return 0
	}
	if pts > weight {
		return weight
	}
	return pts
}

func laterOf(a, b *time.Time) *time.Time {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.After(*b) {
		return a
	}
	return b
}

func earlierOf(a, b *time.Time) *time.Time {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.Before(*b) {
		return a
	}
	return b
}
