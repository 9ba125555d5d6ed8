package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kartikey3d/roommate-finder/matching"
)

// MatchSnapshot is a persisted ranking for one seeker, written by the
// recompute worker. The live /matches endpoint always computes fresh; the
// snapshot exists for debugging and explain views on historical rankings.
type MatchSnapshot struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID     `bson:"userId" json:"userId"`
	Results    []matching.MatchResult `bson:"results" json:"results"`
	ComputedAt int64                  `bson:"computedAt" json:"computedAt"`
}
