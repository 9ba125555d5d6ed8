package matching

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int             { return &v }
func floatPtr(v float64) *float64   { return &v }
func datePtr(v time.Time) *time.Time { return &v }

// baseProfile is a complete San Francisco profile; tests tweak copies of it.
func baseProfile(id string) MatchProfile {
	return MatchProfile{
		UserID:          id,
		Age:             25,
		City:            "San Francisco",
		Latitude:        floatPtr(37.7749),
		Longitude:       floatPtr(-122.4194),
		BudgetMin:       intPtr(1000),
		BudgetMax:       intPtr(1500),
		Cleanliness:     CleanlinessClean,
		SleepSchedule:   SleepNormal,
		SmokingOK:       false,
		DrinkingOK:      true,
		PetsOK:          false,
		GuestFrequency:  GuestsSometimes,
		ReputationScore: 100,
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig())
	require.NoError(t, err)
	return e
}

func TestPerfectMatchScoresFull(t *testing.T) {
	e := newTestEngine(t)

	b, err := e.Score(baseProfile("seeker"), baseProfile("candidate"))
	require.NoError(t, err)

	assert.Equal(t, 100, b.Total)
	for _, fs := range b.Factors {
		assert.Equal(t, fs.Weight, fs.Points, "factor %s should max out", fs.Factor)
		assert.False(t, fs.Conflict, "factor %s should not conflict", fs.Factor)
	}
}

func TestTotalEqualsSumOfFactors(t *testing.T) {
	e := newTestEngine(t)

	candidate := baseProfile("candidate")
	candidate.BudgetMin = intPtr(1200)
	candidate.BudgetMax = intPtr(1800)
	candidate.Cleanliness = CleanlinessModerate
	candidate.SleepSchedule = SleepEarlyBird
	candidate.ReputationScore = 60

	b, err := e.Score(baseProfile("seeker"), candidate)
	require.NoError(t, err)

	sum := 0
	for _, fs := range b.Factors {
		assert.GreaterOrEqual(t, fs.Points, 0)
		assert.LessOrEqual(t, fs.Points, fs.Weight)
		sum += fs.Points
	}
	assert.Equal(t, sum, b.Total)
	assert.GreaterOrEqual(t, b.Total, 0)
	assert.LessOrEqual(t, b.Total, 100)
}

func TestScoreIsDeterministic(t *testing.T) {
	e := newTestEngine(t)
	seeker := baseProfile("seeker")
	candidate := baseProfile("candidate")
	candidate.BudgetMin = intPtr(1200)
	candidate.Cleanliness = CleanlinessVeryClean

	first, err := e.Score(seeker, candidate)
	require.NoError(t, err)
	second, err := e.Score(seeker, candidate)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBudgetOverlapRatio(t *testing.T) {
	e := newTestEngine(t)
	seeker := baseProfile("seeker")
	seeker.BudgetMin = intPtr(800)
	seeker.BudgetMax = intPtr(1200)
	candidate := baseProfile("candidate")
	candidate.BudgetMin = intPtr(1000)
	candidate.BudgetMax = intPtr(1400)

	b, err := e.Score(seeker, candidate)
	require.NoError(t, err)

	// overlap [1000,1200] width 200, union [800,1400] width 600
	assert.Equal(t, 7, b.factor(FactorBudget).Points)
	require.NotNil(t, b.BudgetOverlap)
	assert.Equal(t, Range{Min: 1000, Max: 1200}, *b.BudgetOverlap)
}

func TestBudgetContainmentScoresFull(t *testing.T) {
	e := newTestEngine(t)
	seeker := baseProfile("seeker")
	seeker.BudgetMin = intPtr(800)
	seeker.BudgetMax = intPtr(2000)
	candidate := baseProfile("candidate")
	candidate.BudgetMin = intPtr(1000)
	candidate.BudgetMax = intPtr(1200)

	b, err := e.Score(seeker, candidate)
	require.NoError(t, err)

	assert.Equal(t, 20, b.factor(FactorBudget).Points)
}

func TestBudgetNoOverlapConflicts(t *testing.T) {
	e := newTestEngine(t)
	candidate := baseProfile("candidate")
	candidate.BudgetMin = intPtr(2000)
	candidate.BudgetMax = intPtr(2500)

	b, err := e.Score(baseProfile("seeker"), candidate)
	require.NoError(t, err)

	fs := b.factor(FactorBudget)
	assert.Equal(t, 0, fs.Points)
	assert.True(t, fs.Conflict)
	assert.Nil(t, b.BudgetOverlap)
}

func TestLocationZeroDistanceScoresFull(t *testing.T) {
	e := newTestEngine(t)

	b, err := e.Score(baseProfile("seeker"), baseProfile("candidate"))
	require.NoError(t, err)

	assert.Equal(t, 25, b.factor(FactorLocation).Points)
	assert.Less(t, b.DistanceKm, 0.1)
}

func TestLocationLinearDecay(t *testing.T) {
	// 10 km of 50 km max: 25 * (1 - 10/50) = 20
	assert.Equal(t, 20, scoreLocation(10, 50, 25))
	assert.Equal(t, 25, scoreLocation(0, 50, 25))
	assert.Equal(t, 0, scoreLocation(50, 50, 25))
	assert.Equal(t, 0, scoreLocation(120, 50, 25))
}

func TestLocationBeyondMaxConflicts(t *testing.T) {
	e := newTestEngine(t)
	candidate := baseProfile("candidate")
	// New York, ~4100 km from San Francisco
	candidate.Latitude = floatPtr(40.7128)
	candidate.Longitude = floatPtr(-74.0060)

	b, err := e.Score(baseProfile("seeker"), candidate)
	require.NoError(t, err)

	fs := b.factor(FactorLocation)
	assert.Equal(t, 0, fs.Points)
	assert.True(t, fs.Conflict)
	assert.Greater(t, b.DistanceKm, 1000.0)
}

func TestCleanlinessOrdinalDistance(t *testing.T) {
	cases := []struct {
		a, b   CleanlinessLevel
		points int
	}{
		{CleanlinessClean, CleanlinessClean, 15},
		{CleanlinessClean, CleanlinessModerate, 10},
		{CleanlinessVeryClean, CleanlinessModerate, 5},
		{CleanlinessVeryClean, CleanlinessRelaxed, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.points, scoreCleanliness(tc.a, tc.b, 15), "%s vs %s", tc.a, tc.b)
		assert.Equal(t, tc.points, scoreCleanliness(tc.b, tc.a, 15), "symmetry %s vs %s", tc.b, tc.a)
	}
}

func TestSleepScheduleCredit(t *testing.T) {
	pts, conflict := scoreSleepSchedule(SleepNormal, SleepNormal, 10)
	assert.Equal(t, 10, pts)
	assert.False(t, conflict)

	pts, conflict = scoreSleepSchedule(SleepEarlyBird, SleepNormal, 10)
	assert.Equal(t, 7, pts)
	assert.False(t, conflict)

	pts, conflict = scoreSleepSchedule(SleepEarlyBird, SleepNightOwl, 10)
	assert.Equal(t, 0, pts)
	assert.True(t, conflict)
}

func TestLifestyleSmokingConflictZeroesFactor(t *testing.T) {
	e := newTestEngine(t)
	seeker := baseProfile("seeker")
	seeker.SmokingOK = false
	candidate := baseProfile("candidate")
	candidate.SmokingOK = true

	b, err := e.Score(seeker, candidate)
	require.NoError(t, err)

	fs := b.factor(FactorLifestyle)
	assert.Equal(t, 0, fs.Points)
	assert.True(t, fs.Conflict)
	assert.Contains(t, b.LifestyleConflicts, "smoking")
}

func TestLifestyleHardConstraintOverridesTolerance(t *testing.T) {
	e := newTestEngine(t)
	seeker := baseProfile("seeker")
	seeker.SmokingOK = true
	seeker.RequireNonSmoker = true
	candidate := baseProfile("candidate")
	candidate.SmokingOK = true

	b, err := e.Score(seeker, candidate)
	require.NoError(t, err)

	assert.Equal(t, 0, b.factor(FactorLifestyle).Points)
	assert.Contains(t, b.LifestyleConflicts, "smoking")
}

func TestLifestyleGuestGapConflicts(t *testing.T) {
	e := newTestEngine(t)
	seeker := baseProfile("seeker")
	seeker.GuestFrequency = GuestsNever
	candidate := baseProfile("candidate")
	candidate.GuestFrequency = GuestsOften

	b, err := e.Score(seeker, candidate)
	require.NoError(t, err)

	assert.Equal(t, 0, b.factor(FactorLifestyle).Points)
	assert.Contains(t, b.LifestyleConflicts, "guests")
}

func TestLifestylePartialCredit(t *testing.T) {
	e := newTestEngine(t)
	seeker := baseProfile("seeker")
	candidate := baseProfile("candidate")
	candidate.GuestFrequency = GuestsRarely // one step from sometimes

	b, err := e.Score(seeker, candidate)
	require.NoError(t, err)

	// smoking 5 + pets 5 + guests 3
	assert.Equal(t, 13, b.factor(FactorLifestyle).Points)
	assert.Empty(t, b.LifestyleConflicts)
}

func TestAvailabilityOpenEndedAlwaysOverlaps(t *testing.T) {
	e := newTestEngine(t)
	seeker := baseProfile("seeker")
	seeker.MoveInEarliest = datePtr(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	candidate := baseProfile("candidate") // fully flexible

	b, err := e.Score(seeker, candidate)
	require.NoError(t, err)

	fs := b.factor(FactorAvailability)
	assert.Equal(t, 10, fs.Points)
	assert.False(t, fs.Conflict)
}

func TestAvailabilityDisjointWindowsConflict(t *testing.T) {
	e := newTestEngine(t)
	seeker := baseProfile("seeker")
	seeker.MoveInEarliest = datePtr(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	seeker.MoveInLatest = datePtr(time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC))
	candidate := baseProfile("candidate")
	candidate.MoveInEarliest = datePtr(time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC))
	candidate.MoveInLatest = datePtr(time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC))

	b, err := e.Score(seeker, candidate)
	require.NoError(t, err)

	fs := b.factor(FactorAvailability)
	assert.Equal(t, 0, fs.Points)
	assert.True(t, fs.Conflict)
}

func TestAvailabilityPartialOverlap(t *testing.T) {
	e := newTestEngine(t)
	seeker := baseProfile("seeker")
	seeker.MoveInEarliest = datePtr(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	seeker.MoveInLatest = datePtr(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
	candidate := baseProfile("candidate")
	candidate.MoveInEarliest = datePtr(time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC))
	candidate.MoveInLatest = datePtr(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC))

	b, err := e.Score(seeker, candidate)
	require.NoError(t, err)

	// overlap 15 days, union 45 days: 10 * 15/45 = 3.33 -> 3
	assert.Equal(t, 3, b.factor(FactorAvailability).Points)
}

func TestReputationNormalization(t *testing.T) {
	e := newTestEngine(t)

	cases := []struct {
		score  int
		points int
	}{
		{100, 5},
		{50, 3}, // 2.5 rounds half-up
		{0, 0},
		{-20, 0},  // clamped into the scale
		{140, 5},
	}
	for _, tc := range cases {
		candidate := baseProfile("candidate")
		candidate.ReputationScore = tc.score

		b, err := e.Score(baseProfile("seeker"), candidate)
		require.NoError(t, err)
		assert.Equal(t, tc.points, b.factor(FactorReputation).Points, "reputation %d", tc.score)
		assert.False(t, b.factor(FactorReputation).Conflict)
	}
}

func TestIncompleteProfileNamesAttribute(t *testing.T) {
	e := newTestEngine(t)
	seeker := baseProfile("seeker")
	seeker.Latitude = nil

	_, err := e.Score(seeker, baseProfile("candidate"))
	var incomplete *IncompleteProfileError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, "latitude", incomplete.Attribute)
	assert.Equal(t, "seeker", incomplete.UserID)
}

func TestInvalidBudgetRangeRejected(t *testing.T) {
	e := newTestEngine(t)
	candidate := baseProfile("candidate")
	candidate.BudgetMin = intPtr(2000)
	candidate.BudgetMax = intPtr(1000)

	_, err := e.Score(baseProfile("seeker"), candidate)
	var invalid *InvalidRangeError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "budget", invalid.Field)
}

func TestInvalidMoveInRangeRejected(t *testing.T) {
	e := newTestEngine(t)
	seeker := baseProfile("seeker")
	seeker.MoveInEarliest = datePtr(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
	seeker.MoveInLatest = datePtr(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	_, err := e.Score(seeker, baseProfile("candidate"))
	var invalid *InvalidRangeError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "moveIn", invalid.Field)
}

func TestConfigValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights.Budget = 30 // sum becomes 110
	_, err := NewEngine(cfg)
	var confErr *ConfigurationError
	require.ErrorAs(t, err, &confErr)

	cfg = DefaultConfig()
	cfg.MaxDistanceKm = 0
	_, err = NewEngine(cfg)
	require.ErrorAs(t, err, &confErr)

	cfg = DefaultConfig()
	cfg.ReputationMax = cfg.ReputationMin
	_, err = NewEngine(cfg)
	require.ErrorAs(t, err, &confErr)
}

func TestSeekerWeightOverrides(t *testing.T) {
	e := newTestEngine(t)

	seeker := baseProfile("seeker")
	seeker.Weights = &Weights{Budget: 50, Location: 50} // sums to 100
	b, err := e.Score(seeker, baseProfile("candidate"))
	require.NoError(t, err)
	assert.Equal(t, 50, b.factor(FactorBudget).Weight)
	assert.Equal(t, 0, b.factor(FactorCleanliness).Points)
	assert.Equal(t, 100, b.Total)

	seeker.Weights = &Weights{Budget: 50} // does not sum to 100
	_, err = e.Score(seeker, baseProfile("candidate"))
	var confErr *ConfigurationError
	require.ErrorAs(t, err, &confErr)
}

func TestScoreDoesNotMutateInputs(t *testing.T) {
	e := newTestEngine(t)
	seeker := baseProfile("seeker")
	candidate := baseProfile("candidate")
	seekerCopy := seeker
	candidateCopy := candidate

	_, err := e.Score(seeker, candidate)
	require.NoError(t, err)

	assert.Equal(t, seekerCopy, seeker)
	assert.Equal(t, candidateCopy, candidate)
}

func TestErrorsImplementError(t *testing.T) {
	var err error = &IncompleteProfileError{UserID: "u1", Attribute: "budgetMin"}
	assert.Contains(t, err.Error(), "budgetMin")

	err = &InvalidRangeError{UserID: "u1", Field: "budget"}
	assert.Contains(t, err.Error(), "budget")

	err = &ConfigurationError{Reason: "weights"}
	assert.True(t, errors.As(err, new(*ConfigurationError)))
}
