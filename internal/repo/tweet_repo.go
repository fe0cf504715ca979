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

// TweetRepo provides tweet persistence, including embedded comments.
type TweetRepo interface {
	Create(ctx context.Context, t dom.Tweet) (dom.Tweet, error)
	GetByID(ctx context.Context, id string) (dom.Tweet, error)
	Delete(ctx context.Context, id string) (dom.Tweet, error)
	ListByAuthors(ctx context.Context, authorIDs []string) ([]dom.Tweet, error)
	UpdateBody(ctx context.Context, id, body string) (dom.Tweet, error)
	AddComment(ctx context.Context, id string, c dom.Comment) (dom.Tweet, error)
	UpdateComment(ctx context.Context, id, commentID, body string) (dom.Tweet, error)
	RemoveComment(ctx context.Context, id, commentID string) (dom.Tweet, error)
}

// MongoTweetRepo implements TweetRepo on the tweets collection.
type MongoTweetRepo struct {
	col *mongo.Collection
}

// NewMongoTweetRepo returns a new MongoTweetRepo.
func NewMongoTweetRepo(db *mongo.Database) *MongoTweetRepo {
	return &MongoTweetRepo{col: db.Collection("tweets")}
}

// Create inserts a new tweet with empty favorites and comments.
func (r *MongoTweetRepo) Create(ctx context.Context, t dom.Tweet) (dom.Tweet, error) {
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID().Hex()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Favorites == nil {
		t.Favorites = []string{}
	}
	if t.Comments == nil {
		t.Comments = []dom.Comment{}
	}
	if _, err := r.col.InsertOne(ctx, t); err != nil {
		return dom.Tweet{}, err
	}
	return t, nil
}

// GetByID returns the tweet by ID.
func (r *MongoTweetRepo) GetByID(ctx context.Context, id string) (dom.Tweet, error) {
	var t dom.Tweet
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	return t, err
}

// Delete removes the tweet and returns it as it was before deletion.
func (r *MongoTweetRepo) Delete(ctx context.Context, id string) (dom.Tweet, error) {
	var t dom.Tweet
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&t)
	return t, err
}

// ListByAuthors returns all tweets authored by any of the given accounts,
// in the store's natural order.
func (r *MongoTweetRepo) ListByAuthors(ctx context.Context, authorIDs []string) ([]dom.Tweet, error) {
	if len(authorIDs) == 0 {
		return []dom.Tweet{}, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"author": bson.M{"$in": authorIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	list := []dom.Tweet{}
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateBody replaces the tweet body and returns the updated tweet.
func (r *MongoTweetRepo) UpdateBody(ctx context.Context, id, body string) (dom.Tweet, error) {
	var t dom.Tweet
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"body": body, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	return t, err
}

// AddComment appends the comment to the tweet's comment array.
func (r *MongoTweetRepo) AddComment(ctx context.Context, id string, c dom.Comment) (dom.Tweet, error) {
	var t dom.Tweet
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"comments": c},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	return t, err
}

// UpdateComment replaces the body of one embedded comment. The filter matches
// both the tweet and the comment, so a missing comment reads the same as a
// missing tweet: mongo.ErrNoDocuments.
func (r *MongoTweetRepo) UpdateComment(ctx context.Context, id, commentID, body string) (dom.Tweet, error) {
	var t dom.Tweet
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "comments.id": commentID},
		bson.M{"$set": bson.M{
			"comments.$.body": body,
			"updatedAt":       time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	return t, err
}

// RemoveComment pulls the comment out of the array. Pulling an ID that is not
// present matches the tweet anyway and returns it unchanged.
func (r *MongoTweetRepo) RemoveComment(ctx context.Context, id, commentID string) (dom.Tweet, error) {
	var t dom.Tweet
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{
			"$pull": bson.M{"comments": bson.M{"id": commentID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	return t, err
}
