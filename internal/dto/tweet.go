package dto

import "time"

// CreateTweetRequest is the JSON body for POST /tweet.
type CreateTweetRequest struct {
	Body string `json:"body" binding:"required"`
}

// UpdateTweetRequest is the JSON body for PATCH /tweet/:id.
type UpdateTweetRequest struct {
	Body string `json:"body" binding:"required"`
}

// CommentRequest carries the comment text for comment create/update.
// The field is named "comment" on the wire.
type CommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	Favorites []string  `json:"favorites"`
	CreatedAt time.Time `json:"created_at"`
}

type TweetResponse struct {
	ID        string            `json:"id"`
	Body      string            `json:"body"`
	Author    string            `json:"author"`
	Favorites []string          `json:"favorites"`
	Comments  []CommentResponse `json:"comments"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
