package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kartikey3d/roommate-finder/models"
)

// FindUserByID loads a single user document.
func FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := Users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// candidateFilter matches active users other than the seeker that carry every
// attribute matching requires. Completeness is enforced in the query, so a
// result limit never truncates complete users in favour of incomplete ones.
func candidateFilter(seekerID primitive.ObjectID) bson.M {
	return bson.M{
		"_id":                          bson.M{"$ne": seekerID},
		"accountState":                 models.AccountActive,
		"profile.latitude":             bson.M{"$ne": nil},
		"profile.longitude":            bson.M{"$ne": nil},
		"preferences.budgetMin":        bson.M{"$ne": nil},
		"preferences.budgetMax":        bson.M{"$ne": nil},
		"preferences.cleanlinessLevel": bson.M{"$nin": bson.A{nil, ""}},
		"preferences.sleepSchedule":    bson.M{"$nin": bson.A{nil, ""}},
		"preferences.guestFrequency":   bson.M{"$nin": bson.A{nil, ""}},
	}
}

// FindCandidates loads up to limit scoreable candidates for the seeker. This
// is the coarse retrieval step; fine-grained scoring happens in the matching
// engine.
func FindCandidates(ctx context.Context, seekerID primitive.ObjectID, limit int) ([]models.User, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := Users.Find(ctx, candidateFilter(seekerID), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	// The engine treats incomplete input as a caller error, so guard against
	// documents that predate the query-side conditions.
	complete := users[:0]
	for _, u := range users {
		if u.Profile.Complete() && u.Preferences.Complete() {
			complete = append(complete, u)
		}
	}
	return complete, nil
}
