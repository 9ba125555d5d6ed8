package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kartikey3d/roommate-finder/database"
	"github.com/kartikey3d/roommate-finder/matching"
)

// GetMatches returns the ranked, score-annotated match feed for the caller.
// Ranking is computed fresh from the store on every call; pagination and the
// optional minScore override live here, not in the engine.
func GetMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page := queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := queryInt(c, "pageSize", cfg.DefaultPageSize)
	if pageSize < 1 || pageSize > cfg.MaxPageSize {
		pageSize = cfg.DefaultPageSize
	}

	eng := engine
	if raw, okQ := c.GetQuery("minScore"); okQ {
		minScore, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minScore must be an integer"})
			return
		}
		override := engine.Config()
		override.MinScoreThreshold = minScore
		eng, err = matching.NewEngine(override)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	ctx, cancel := requestContext()
	defer cancel()

	user, err := database.FindUserByID(ctx, userID)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !user.Profile.Complete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please complete your profile to see matches"})
		return
	}
	if !user.Preferences.Complete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please set your preferences to see matches"})
		return
	}

	candidates, err := database.FindCandidates(ctx, userID, cfg.MatchingCandidateLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load candidates"})
		return
	}

	seeker := user.MatchProfile(cfg.ReputationInitialScore)
	profiles := make([]matching.MatchProfile, 0, len(candidates))
	for _, cand := range candidates {
		profiles = append(profiles, cand.MatchProfile(cfg.ReputationInitialScore))
	}

	results, err := eng.Rank(seeker, profiles)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	total := len(results)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"matches":  results[start:end],
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// ExplainMatch scores a single candidate for the caller and returns the full
// breakdown, even when the total falls below the usual threshold. Backs the
// "why this match" view.
func ExplainMatch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	candidateID, err := parseObjectID(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	seekerUser, err := database.FindUserByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	candidateUser, err := database.FindUserByID(ctx, candidateID)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	breakdown, err := engine.Score(
		seekerUser.MatchProfile(cfg.ReputationInitialScore),
		candidateUser.MatchProfile(cfg.ReputationInitialScore),
	)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, engine.Result(breakdown))
}

func writeEngineError(c *gin.Context, err error) {
	var incomplete *matching.IncompleteProfileError
	var invalidRange *matching.InvalidRangeError
	switch {
	case errors.As(err, &incomplete):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please complete your profile to see matches"})
	case errors.As(err, &invalidRange):
		// Upstream data-integrity bug; never guessed around.
		log.Printf("[matches] invalid range from store: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Matching failed"})
	default:
		log.Printf("[matches] scoring failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Matching failed"})
	}
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if raw, ok := c.GetQuery(key); ok {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return fallback
}
