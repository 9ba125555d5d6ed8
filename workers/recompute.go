package workers

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kartikey3d/roommate-finder/config"
	"github.com/kartikey3d/roommate-finder/database"
	"github.com/kartikey3d/roommate-finder/matching"
	"github.com/kartikey3d/roommate-finder/models"
	"github.com/kartikey3d/roommate-finder/websocket"
)

// Recomputer re-runs the pure ranking whenever a profile or preferences
// change, and on a daily schedule, storing the result as a match snapshot.
// The engine itself holds no cache; this worker is the external scheduler the
// engine's contract assumes.
type Recomputer struct {
	cfg    config.Config
	engine *matching.Engine
	events *Publisher
	ws     *websocket.Manager
}

func NewRecomputer(cfg config.Config, engine *matching.Engine, events *Publisher, ws *websocket.Manager) *Recomputer {
	return &Recomputer{cfg: cfg, engine: engine, events: events, ws: ws}
}

// Run consumes domain events and the periodic tickers until ctx is cancelled.
func (r *Recomputer) Run(ctx context.Context) {
	recompute := time.NewTicker(r.cfg.RecomputeInterval)
	reputation := time.NewTicker(r.cfg.ReputationInterval)
	defer recompute.Stop()
	defer reputation.Stop()

	log.Println("⚙️ Recompute worker started")

	for {
		select {
		case <-ctx.Done():
			log.Println("⚙️ Recompute worker stopped")
			return

		case e := <-r.events.Events():
			switch e.Type {
			case EventProfileUpdated, EventPreferencesUpdated:
				if err := r.RecomputeFor(ctx, e.UserID); err != nil {
					log.Printf("[recompute] user %s: %v", e.UserID.Hex(), err)
				}
			case EventMessageSent:
				// Messaging volume feeds the reputation sweep, nothing to do
				// per event.
			}

		case <-recompute.C:
			if err := r.RecomputeAll(ctx); err != nil {
				log.Printf("[recompute] batch: %v", err)
			}

		case <-reputation.C:
			if err := r.SweepReputation(ctx); err != nil {
				log.Printf("[reputation] sweep: %v", err)
			}
		}
	}
}

// RecomputeFor ranks one user's matches and stores the snapshot.
func (r *Recomputer) RecomputeFor(ctx context.Context, userID primitive.ObjectID) error {
	opCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	user, err := database.FindUserByID(opCtx, userID)
	if err != nil {
		return err
	}
	if !user.Profile.Complete() || !user.Preferences.Complete() {
		// Nothing to rank yet; drop any stale snapshot.
		_, err := database.Matches.DeleteOne(opCtx, bson.M{"userId": userID})
		return err
	}

	candidates, err := database.FindCandidates(opCtx, userID, r.cfg.MatchingCandidateLimit)
	if err != nil {
		return err
	}

	seeker := user.MatchProfile(r.cfg.ReputationInitialScore)
	profiles := make([]matching.MatchProfile, 0, len(candidates))
	for _, c := range candidates {
		profiles = append(profiles, c.MatchProfile(r.cfg.ReputationInitialScore))
	}

	results, err := r.engine.Rank(seeker, profiles)
	if err != nil {
		return err
	}

	now := time.Now().Unix()
	snapshot := models.MatchSnapshot{
		UserID:     userID,
		Results:    results,
		ComputedAt: now,
	}
	_, err = database.Matches.ReplaceOne(
		opCtx,
		bson.M{"userId": userID},
		snapshot,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return err
	}

	if r.ws != nil {
		r.ws.NotifyMatchesRefreshed(userID.Hex(), now)
	}
	log.Printf("[recompute] stored %d matches for user %s", len(results), userID.Hex())
	return nil
}

// RecomputeAll refreshes snapshots for every active user with a complete
// profile. Runs daily and after algorithm changes.
func (r *Recomputer) RecomputeAll(ctx context.Context) error {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	cursor, err := database.Users.Find(opCtx, bson.M{
		"accountState": models.AccountActive,
		"profile":      bson.M{"$exists": true},
		"preferences":  bson.M{"$exists": true},
	})
	if err != nil {
		return err
	}
	defer cursor.Close(opCtx)

	var count int
	for cursor.Next(opCtx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			continue
		}
		if err := r.RecomputeFor(ctx, user.ID); err != nil {
			log.Printf("[recompute] user %s: %v", user.ID.Hex(), err)
			continue
		}
		count++
	}
	log.Printf("[recompute] batch finished, %d users refreshed", count)
	return cursor.Err()
}
