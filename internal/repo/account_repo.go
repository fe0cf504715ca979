package repo

import (
	"context"
	"time"

	dom "github.com/lluuk/tweeter-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AccountRepo provides account persistence and follow-graph updates.
type AccountRepo interface {
	Create(ctx context.Context, a dom.Account) (dom.Account, error)
	GetByID(ctx context.Context, id string) (dom.Account, error)
	GetByEmail(ctx context.Context, email string) (dom.Account, error)
	AddFollow(ctx context.Context, actorID, targetID string) (dom.Account, error)
	RemoveFollow(ctx context.Context, actorID, targetID string) (dom.Account, error)
}

// MongoAccountRepo implements AccountRepo on the accounts collection.
type MongoAccountRepo struct {
	col *mongo.Collection
}

// NewMongoAccountRepo returns a new MongoAccountRepo.
func NewMongoAccountRepo(db *mongo.Database) *MongoAccountRepo {
	return &MongoAccountRepo{col: db.Collection("accounts")}
}

// Create inserts a new account. The unique index on email rejects duplicates.
func (r *MongoAccountRepo) Create(ctx context.Context, a dom.Account) (dom.Account, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID().Hex()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Followers == nil {
		a.Followers = []string{}
	}
	if a.Following == nil {
		a.Following = []string{}
	}
	if _, err := r.col.InsertOne(ctx, a); err != nil {
		return dom.Account{}, err
	}
	return a, nil
}

// GetByID returns the account by ID.
func (r *MongoAccountRepo) GetByID(ctx context.Context, id string) (dom.Account, error) {
	var a dom.Account
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	return a, err
}

// GetByEmail returns the account by email. Emails are stored lowercased, so
// the caller is expected to case-fold before lookup.
func (r *MongoAccountRepo) GetByEmail(ctx context.Context, email string) (dom.Account, error) {
	var a dom.Account
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&a)
	return a, err
}

// AddFollow appends targetID to the actor's following and actorID to the
// target's followers. $addToSet keeps both arrays duplicate-free. The two
// updates are independent document writes; there is no transaction around
// them, so a crash in between can leave the edge half-written.
func (r *MongoAccountRepo) AddFollow(ctx context.Context, actorID, targetID string) (dom.Account, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": actorID},
		bson.M{
			"$addToSet": bson.M{"following": targetID},
			"$set":      bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return dom.Account{}, err
	}
	if res.MatchedCount == 0 {
		return dom.Account{}, mongo.ErrNoDocuments
	}
	var target dom.Account
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": targetID},
		bson.M{
			"$addToSet": bson.M{"followers": actorID},
			"$set":      bson.M{"updatedAt": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&target)
	if err != nil {
		return dom.Account{}, err
	}
	return target, nil
}

// RemoveFollow removes all occurrences of the edge from both documents and
// returns the updated target. Same two-write caveat as AddFollow.
func (r *MongoAccountRepo) RemoveFollow(ctx context.Context, actorID, targetID string) (dom.Account, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": actorID},
		bson.M{
			"$pull": bson.M{"following": targetID},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return dom.Account{}, err
	}
	if res.MatchedCount == 0 {
		return dom.Account{}, mongo.ErrNoDocuments
	}
	var target dom.Account
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": targetID},
		bson.M{
			"$pull": bson.M{"followers": actorID},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&target)
	if err != nil {
		return dom.Account{}, err
	}
	return target, nil
}
