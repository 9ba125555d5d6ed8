package models

// Reputation is the externally maintained trust score. The matching engine
// only ever reads Score; the counters feed the periodic reputation sweep.
type Reputation struct {
	Score                 int   `bson:"score" json:"score"`
	GhostingCount         int   `bson:"ghostingCount" json:"ghostingCount"`
	SpamCount             int   `bson:"spamCount" json:"spamCount"`
	ExcessiveUnmatchCount int   `bson:"excessiveUnmatchCount" json:"excessiveUnmatchCount"`
	UpdatedAt             int64 `bson:"updatedAt" json:"updatedAt"`
}
