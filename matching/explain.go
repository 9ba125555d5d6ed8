package matching

import (
	"fmt"
	"iter"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Reason is one of the top factors justifying a match, rendered for end users.
type Reason struct {
	Factor  Factor `json:"factor"`
	Points  int    `json:"points"`
	Message string `json:"message"`
}

// Conflict flags a factor-level incompatibility.
type Conflict struct {
	Factor  Factor `json:"factor"`
	Message string `json:"message"`
}

// MatchResult is the final annotated entry of a ranked listing. It is built
// per request, never mutated afterwards, and not persisted by this package.
type MatchResult struct {
	CandidateID     string         `json:"candidateId"`
	TotalScore      int            `json:"totalScore"`
	FactorBreakdown map[Factor]int `json:"factorBreakdown"`
	TopReasons      []Reason       `json:"topReasons"`
	Conflicts       []Conflict     `json:"conflicts"`
	DistanceKm      float64        `json:"distanceKm"`
	BudgetOverlap   *Range         `json:"budgetOverlap"`
}

// Explain derives the top three reasons and the conflict list from a
// breakdown. Zero-point factors never appear as reasons; ties between equal
// point values are broken by the fixed weight-descending factor order.
func (e *Engine) Explain(b *Breakdown) ([]Reason, []Conflict) {
	rank := make(map[Factor]int, len(factorPriority))
	for i, f := range factorPriority {
		rank[f] = i
	}

	scored := make([]FactorScore, 0, len(b.Factors))
	for _, fs := range b.Factors {
		if fs.Points > 0 {
			scored = append(scored, fs)
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Points != scored[j].Points {
			return scored[i].Points > scored[j].Points
		}
		return rank[scored[i].Factor] < rank[scored[j].Factor]
	})
	if len(scored) > 3 {
		scored = scored[:3]
	}

	reasons := make([]Reason, 0, len(scored))
	for _, fs := range scored {
		reasons = append(reasons, Reason{
			Factor:  fs.Factor,
			Points:  fs.Points,
			Message: e.reasonMessage(b, fs),
		})
	}

	var conflicts []Conflict
	for _, fs := range b.Factors {
		if !fs.Conflict {
			continue
		}
		if fs.Factor == FactorLifestyle {
			for _, sub := range b.LifestyleConflicts {
				conflicts = append(conflicts, Conflict{
					Factor:  FactorLifestyle,
					Message: lifestyleConflictMessage(sub),
				})
			}
			continue
		}
		conflicts = append(conflicts, Conflict{
			Factor:  fs.Factor,
			Message: e.conflictMessage(b, fs.Factor),
		})
	}
	return reasons, conflicts
}

// Result packages a breakdown with its explanation into the serializable form
// handed back to callers.
func (e *Engine) Result(b *Breakdown) MatchResult {
	reasons, conflicts := e.Explain(b)
	points := make(map[Factor]int, len(b.Factors))
	for _, fs := range b.Factors {
		points[fs.Factor] = fs.Points
	}
	return MatchResult{
		CandidateID:     b.CandidateID,
		TotalScore:      b.Total,
		FactorBreakdown: points,
		TopReasons:      reasons,
		Conflicts:       conflicts,
		DistanceKm:      b.DistanceKm,
		BudgetOverlap:   b.BudgetOverlap,
	}
}

// Rank scores every candidate, drops those below the minimum score threshold,
// and sorts the rest by score descending with candidate ID as tie-break, so
// repeated calls with identical inputs produce identical orderings. Scoring
// fans out across workers; ordering is imposed only at the final sort.
func (e *Engine) Rank(seeker MatchProfile, candidates []MatchProfile) ([]MatchResult, error) {
	results := make([]*MatchResult, len(candidates))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, candidate := range candidates {
		g.Go(func() error {
			b, err := e.Score(seeker, candidate)
			if err != nil {
				return err
			}
			r := e.Result(b)
			results[i] = &r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked := make([]MatchResult, 0, len(results))
	for _, r := range results {
		if r.TotalScore >= e.cfg.MinScoreThreshold {
			ranked = append(ranked, *r)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalScore != ranked[j].TotalScore {
			return ranked[i].TotalScore > ranked[j].TotalScore
		}
		return ranked[i].CandidateID < ranked[j].CandidateID
	})
	return ranked, nil
}

// RankSeq is Rank exposed as a restartable sequence. Pagination stays with the
// caller; the sequence is finite and can be iterated any number of times.
func (e *Engine) RankSeq(seeker MatchProfile, candidates []MatchProfile) (iter.Seq[MatchResult], error) {
	ranked, err := e.Rank(seeker, candidates)
	if err != nil {
		return nil, err
	}
	return func(yield func(MatchResult) bool) {
		for _, r := range ranked {
			if !yield(r) {
				return
			}
		}
	}, nil
}

func (e *Engine) reasonMessage(b *Breakdown, fs FactorScore) string {
	switch fs.Factor {
	case FactorBudget:
		if b.BudgetOverlap != nil {
			return fmt.Sprintf("Budgets overlap at %d-%d (+%d/%d)",
				b.BudgetOverlap.Min, b.BudgetOverlap.Max, fs.Points, fs.Weight)
		}
		return fmt.Sprintf("Budgets are compatible (+%d/%d)", fs.Points, fs.Weight)
	case FactorLocation:
		return fmt.Sprintf("Within %.1f km of your preferred location (+%d/%d)",
			b.DistanceKm, fs.Points, fs.Weight)
	case FactorCleanliness:
		if fs.Points == fs.Weight {
			return fmt.Sprintf("Same cleanliness standards (+%d/%d)", fs.Points, fs.Weight)
		}
		return fmt.Sprintf("Similar cleanliness standards (+%d/%d)", fs.Points, fs.Weight)
	case FactorSleepSchedule:
		if fs.Points == fs.Weight {
			return fmt.Sprintf("Same sleep schedule (+%d/%d)", fs.Points, fs.Weight)
		}
		return fmt.Sprintf("Compatible sleep schedules (+%d/%d)", fs.Points, fs.Weight)
	case FactorLifestyle:
		return fmt.Sprintf("Compatible lifestyle habits (+%d/%d)", fs.Points, fs.Weight)
	case FactorAvailability:
		return fmt.Sprintf("Move-in windows line up (+%d/%d)", fs.Points, fs.Weight)
	case FactorReputation:
		return fmt.Sprintf("Well reviewed by other users (+%d/%d)", fs.Points, fs.Weight)
	}
	return fmt.Sprintf("+%d/%d", fs.Points, fs.Weight)
}

func (e *Engine) conflictMessage(b *Breakdown, f Factor) string {
	switch f {
	case FactorBudget:
		return "Your budget ranges do not overlap"
	case FactorLocation:
		return fmt.Sprintf("%.1f km away, beyond your %.0f km limit", b.DistanceKm, e.cfg.MaxDistanceKm)
	case FactorCleanliness:
		return "Very different cleanliness standards"
	case FactorSleepSchedule:
		return "Opposite sleep schedules"
	case FactorAvailability:
		return "Move-in windows do not overlap"
	}
	return string(f) + " is incompatible"
}

func lifestyleConflictMessage(sub string) string {
	switch sub {
	case "smoking":
		return "Smoking preferences are incompatible"
	case "pets":
		return "Pet preferences are incompatible"
	case "guests":
		return "Guest habits are very different"
	}
	return sub + " preferences are incompatible"
}
