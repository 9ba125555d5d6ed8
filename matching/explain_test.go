package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplainCapsReasonsAtThree(t *testing.T) {
	e := newTestEngine(t)

	b, err := e.Score(baseProfile("seeker"), baseProfile("candidate"))
	require.NoError(t, err)

	reasons, conflicts := e.Explain(b)
	require.Len(t, reasons, 3)
	assert.Empty(t, conflicts)

	// 25 location, 20 budget, then the 15-point tie between lifestyle and
	// cleanliness resolved by the fixed factor order.
	assert.Equal(t, FactorLocation, reasons[0].Factor)
	assert.Equal(t, FactorBudget, reasons[1].Factor)
	assert.Equal(t, FactorLifestyle, reasons[2].Factor)
}

func TestExplainSkipsZeroPointFactors(t *testing.T) {
	e := newTestEngine(t)
	candidate := baseProfile("candidate")
	candidate.SmokingOK = true // zeroes lifestyle

	b, err := e.Score(baseProfile("seeker"), candidate)
	require.NoError(t, err)

	reasons, conflicts := e.Explain(b)
	for _, r := range reasons {
		assert.NotEqual(t, FactorLifestyle, r.Factor)
		assert.Greater(t, r.Points, 0)
	}
	require.Len(t, conflicts, 1)
	assert.Equal(t, FactorLifestyle, conflicts[0].Factor)
	assert.Equal(t, "Smoking preferences are incompatible", conflicts[0].Message)
}

func TestExplainBudgetConflictMessage(t *testing.T) {
	e := newTestEngine(t)
	candidate := baseProfile("candidate")
	candidate.BudgetMin = intPtr(3000)
	candidate.BudgetMax = intPtr(4000)

	b, err := e.Score(baseProfile("seeker"), candidate)
	require.NoError(t, err)

	_, conflicts := e.Explain(b)
	require.Len(t, conflicts, 1)
	assert.Equal(t, FactorBudget, conflicts[0].Factor)
	assert.Equal(t, "Your budget ranges do not overlap", conflicts[0].Message)
}

func TestExplainLocationConflictIncludesDistance(t *testing.T) {
	e := newTestEngine(t)
	candidate := baseProfile("candidate")
	candidate.Latitude = floatPtr(34.0522) // Los Angeles
	candidate.Longitude = floatPtr(-118.2437)

	b, err := e.Score(baseProfile("seeker"), candidate)
	require.NoError(t, err)

	_, conflicts := e.Explain(b)
	require.NotEmpty(t, conflicts)
	assert.Equal(t, FactorLocation, conflicts[0].Factor)
	assert.Contains(t, conflicts[0].Message, "beyond your 50 km limit")
}

func TestResultCarriesFullBreakdown(t *testing.T) {
	e := newTestEngine(t)

	b, err := e.Score(baseProfile("seeker"), baseProfile("candidate"))
	require.NoError(t, err)

	r := e.Result(b)
	assert.Equal(t, "candidate", r.CandidateID)
	assert.Equal(t, 100, r.TotalScore)
	assert.Len(t, r.FactorBreakdown, 7)
	assert.Equal(t, 25, r.FactorBreakdown[FactorLocation])
	require.NotNil(t, r.BudgetOverlap)
	assert.Equal(t, Range{Min: 1000, Max: 1500}, *r.BudgetOverlap)
}

func TestRankFiltersBelowThreshold(t *testing.T) {
	e := newTestEngine(t)

	good := baseProfile("good")
	poor := baseProfile("poor")
	poor.BudgetMin = intPtr(5000) // no budget overlap
	poor.BudgetMax = intPtr(6000)
	poor.Latitude = floatPtr(40.7128) // out of range
	poor.Longitude = floatPtr(-74.0060)
	poor.Cleanliness = CleanlinessRelaxed
	poor.SleepSchedule = SleepNightOwl
	poor.SmokingOK = true
	poor.ReputationScore = 0

	ranked, err := e.Rank(baseProfile("seeker"), []MatchProfile{poor, good})
	require.NoError(t, err)

	require.Len(t, ranked, 1)
	assert.Equal(t, "good", ranked[0].CandidateID)
}

func TestRankOrdersByScoreThenID(t *testing.T) {
	e := newTestEngine(t)

	// b and c are identical, a is slightly worse on cleanliness.
	a := baseProfile("a")
	a.Cleanliness = CleanlinessModerate
	b := baseProfile("b")
	c := baseProfile("c")

	ranked, err := e.Rank(baseProfile("seeker"), []MatchProfile{c, a, b})
	require.NoError(t, err)

	require.Len(t, ranked, 3)
	assert.Equal(t, "b", ranked[0].CandidateID)
	assert.Equal(t, "c", ranked[1].CandidateID)
	assert.Equal(t, "a", ranked[2].CandidateID)
	assert.Equal(t, ranked[0].TotalScore, ranked[1].TotalScore)
	assert.Greater(t, ranked[1].TotalScore, ranked[2].TotalScore)
}

func TestRankIsDeterministic(t *testing.T) {
	e := newTestEngine(t)

	candidates := make([]MatchProfile, 0, 8)
	for _, id := range []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7", "u8"} {
		p := baseProfile(id)
		if id == "u3" || id == "u6" {
			p.Cleanliness = CleanlinessModerate
		}
		candidates = append(candidates, p)
	}

	first, err := e.Rank(baseProfile("seeker"), candidates)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := e.Rank(baseProfile("seeker"), candidates)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRankPropagatesScoreErrors(t *testing.T) {
	e := newTestEngine(t)

	broken := baseProfile("broken")
	broken.BudgetMax = nil

	_, err := e.Rank(baseProfile("seeker"), []MatchProfile{baseProfile("ok"), broken})
	var incomplete *IncompleteProfileError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, "broken", incomplete.UserID)
}

func TestRankEmptyCandidateList(t *testing.T) {
	e := newTestEngine(t)

	ranked, err := e.Rank(baseProfile("seeker"), nil)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRankSeqIsRestartable(t *testing.T) {
	e := newTestEngine(t)

	candidates := []MatchProfile{baseProfile("x"), baseProfile("y")}
	seq, err := e.RankSeq(baseProfile("seeker"), candidates)
	require.NoError(t, err)

	collect := func() []string {
		var ids []string
		for r := range seq {
			ids = append(ids, r.CandidateID)
		}
		return ids
	}
	first := collect()
	second := collect()
	assert.Equal(t, []string{"x", "y"}, first)
	assert.Equal(t, first, second)
}

func TestRankSeqEarlyStop(t *testing.T) {
	e := newTestEngine(t)

	candidates := []MatchProfile{baseProfile("x"), baseProfile("y"), baseProfile("z")}
	seq, err := e.RankSeq(baseProfile("seeker"), candidates)
	require.NoError(t, err)

	var got []string
	for r := range seq {
		got = append(got, r.CandidateID)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"x", "y"}, got)
}
