package service

import (
	"context"
	"errors"
	"strings"
	"time"

	dom "github.com/lluuk/tweeter-api/internal/domain"
	"github.com/lluuk/tweeter-api/internal/repo"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrEmptyBody   = errors.New("body is required")
	ErrBodyTooLong = errors.New("body must be at most 280 characters")
)

const maxBodyLen = 280

// TweetService owns tweets and their embedded comments. It reads the account
// store only for identity references (the viewer's following set).
type TweetService struct {
	tweets   repo.TweetRepo
	accounts repo.AccountRepo
}

// NewTweetService returns a new TweetService.
func NewTweetService(tweets repo.TweetRepo, accounts repo.AccountRepo) *TweetService {
	return &TweetService{tweets: tweets, accounts: accounts}
}

// Create stores a new tweet authored by authorID.
func (s *TweetService) Create(ctx context.Context, authorID, body string) (dom.Tweet, error) {
	body = strings.TrimSpace(body)
	if err := validateBody(body); err != nil {
		return dom.Tweet{}, err
	}
	return s.tweets.Create(ctx, dom.Tweet{Body: body, AuthorID: authorID})
}

// Get returns the tweet by ID.
func (s *TweetService) Get(ctx context.Context, id string) (dom.Tweet, error) {
	t, err := s.tweets.GetByID(ctx, id)
	if err != nil {
		return dom.Tweet{}, notFoundOr(err)
	}
	return t, nil
}

// Delete removes the tweet by ID and returns it. There is no ownership check:
// any authenticated caller may delete any tweet.
func (s *TweetService) Delete(ctx context.Context, id string) (dom.Tweet, error) {
	t, err := s.tweets.Delete(ctx, id)
	if err != nil {
		return dom.Tweet{}, notFoundOr(err)
	}
	return t, nil
}

// Feed returns every tweet whose author is in the viewer's following set, in
// store order. No pagination.
func (s *TweetService) Feed(ctx context.Context, viewerID string) ([]dom.Tweet, error) {
	viewer, err := s.accounts.GetByID(ctx, viewerID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return s.tweets.ListByAuthors(ctx, viewer.Following)
}

// UpdateBody replaces the tweet body. Like Delete, it is not restricted to the
// author.
func (s *TweetService) UpdateBody(ctx context.Context, id, body string) (dom.Tweet, error) {
	body = strings.TrimSpace(body)
	if err := validateBody(body); err != nil {
		return dom.Tweet{}, err
	}
	t, err := s.tweets.UpdateBody(ctx, id, body)
	if err != nil {
		return dom.Tweet{}, notFoundOr(err)
	}
	return t, nil
}

// AddComment appends a comment authored by authorID to the tweet and returns
// the updated tweet.
func (s *TweetService) AddComment(ctx context.Context, tweetID, authorID, body string) (dom.Tweet, error) {
	body = strings.TrimSpace(body)
	if err := validateBody(body); err != nil {
		return dom.Tweet{}, err
	}
	c := dom.Comment{
		ID:        uuid.NewString(),
		Body:      body,
		AuthorID:  authorID,
		Favorites: []string{},
		CreatedAt: time.Now().UTC(),
	}
	t, err := s.tweets.AddComment(ctx, tweetID, c)
	if err != nil {
		return dom.Tweet{}, notFoundOr(err)
	}
	return t, nil
}

// UpdateComment replaces the body of one comment. A missing tweet and a
// missing comment both yield ErrNotFound.
func (s *TweetService) UpdateComment(ctx context.Context, tweetID, commentID, body string) (dom.Tweet, error) {
	body = strings.TrimSpace(body)
	if err := validateBody(body); err != nil {
		return dom.Tweet{}, err
	}
	t, err := s.tweets.UpdateComment(ctx, tweetID, commentID, body)
	if err != nil {
		return dom.Tweet{}, notFoundOr(err)
	}
	return t, nil
}

// RemoveComment deletes the comment from the tweet and returns the updated
// tweet. Removal is idempotent: a commentID that is not present leaves the
// tweet unchanged and is not an error. A missing tweet yields ErrNotFound.
func (s *TweetService) RemoveComment(ctx context.Context, tweetID, commentID string) (dom.Tweet, error) {
	t, err := s.tweets.RemoveComment(ctx, tweetID, commentID)
	if err != nil {
		return dom.Tweet{}, notFoundOr(err)
	}
	return t, nil
}

func validateBody(body string) error {
	if body == "" {
		return ErrEmptyBody
	}
	if len([]rune(body)) > maxBodyLen {
		return ErrBodyTooLong
	}
	return nil
}

func notFoundOr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
