package workers

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/kartikey3d/roommate-finder/database"
	"github.com/kartikey3d/roommate-finder/models"
)

// SweepReputation recomputes every user's trust score from the behaviour
// counters on their document: the initial score minus ghosting and spam
// penalties, clamped to the configured bounds. The matching engine only ever
// reads the resulting score.
func (r *Recomputer) SweepReputation(ctx context.Context) error {
	opCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	cursor, err := database.Users.Find(opCtx, bson.M{"reputation": bson.M{"$exists": true}})
	if err != nil {
		return err
	}
	defer cursor.Close(opCtx)

	var updated int
	for cursor.Next(opCtx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			continue
		}
		rep := user.Reputation
		score := r.cfg.ReputationInitialScore -
			rep.GhostingCount*r.cfg.ReputationGhostingPenalty -
			rep.SpamCount*r.cfg.ReputationSpamPenalty
		if score < r.cfg.ReputationMinScore {
			score = r.cfg.ReputationMinScore
		}
		if score > r.cfg.ReputationMaxScore {
			score = r.cfg.ReputationMaxScore
		}
		if score == rep.Score {
			continue
		}

		_, err := database.Users.UpdateOne(opCtx, bson.M{"_id": user.ID}, bson.M{
			"$set": bson.M{
				"reputation.score":     score,
				"reputation.updatedAt": time.Now().Unix(),
			},
		})
		if err != nil {
			log.Printf("[reputation] user %s: %v", user.ID.Hex(), err)
			continue
		}
		updated++
	}
	if updated > 0 {
		log.Printf("[reputation] sweep adjusted %d users", updated)
	}
	return cursor.Err()
}
