package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries every tunable the service reads from the environment.
// Loaded once at startup and passed down explicitly.
type Config struct {
	Port     string
	GinMode  string
	MongoURI string
	Database string

	JWTSecret string
	JWTExpiry time.Duration

	// Matching engine
	MatchingMaxDistanceKm     float64
	MatchingMinScoreThreshold int
	MatchingCandidateLimit    int

	// Rate limiting
	RateLimitMessagesPerHour   int
	RateLimitRequestsPerMinute int

	// Reputation
	ReputationInitialScore    int
	ReputationMinScore        int
	ReputationMaxScore        int
	ReputationGhostingPenalty int
	ReputationSpamPenalty     int

	// Background recomputation
	RecomputeInterval  time.Duration
	ReputationInterval time.Duration

	// Pagination
	DefaultPageSize int
	MaxPageSize     int
}

// Load reads configuration from the environment, falling back to built-in
// defaults.
func Load() Config {
	return Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		MongoURI: getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		Database: getEnv("MONGODB_DATABASE", "roommate_finder"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTExpiry: time.Duration(getEnvInt("JWT_EXPIRY_MINUTES", 60*24)) * time.Minute,

		MatchingMaxDistanceKm:     getEnvFloat("MATCHING_MAX_DISTANCE_KM", 50.0),
		MatchingMinScoreThreshold: getEnvInt("MATCHING_MIN_SCORE_THRESHOLD", 30),
		MatchingCandidateLimit:    getEnvInt("MATCHING_CANDIDATE_LIMIT", 100),

		RateLimitMessagesPerHour:   getEnvInt("RATE_LIMIT_MESSAGES_PER_HOUR", 50),
		RateLimitRequestsPerMinute: getEnvInt("RATE_LIMIT_REQUESTS_PER_MINUTE", 60),

		ReputationInitialScore:    getEnvInt("REPUTATION_INITIAL_SCORE", 100),
		ReputationMinScore:        getEnvInt("REPUTATION_MIN_SCORE", 0),
		ReputationMaxScore:        getEnvInt("REPUTATION_MAX_SCORE", 100),
		ReputationGhostingPenalty: getEnvInt("REPUTATION_GHOSTING_PENALTY", 10),
		ReputationSpamPenalty:     getEnvInt("REPUTATION_SPAM_PENALTY", 5),

		RecomputeInterval:  time.Duration(getEnvInt("RECOMPUTE_INTERVAL_HOURS", 24)) * time.Hour,
		ReputationInterval: time.Duration(getEnvInt("REPUTATION_INTERVAL_HOURS", 1)) * time.Hour,

		DefaultPageSize: getEnvInt("DEFAULT_PAGE_SIZE", 20),
		MaxPageSize:     getEnvInt("MAX_PAGE_SIZE", 100),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
