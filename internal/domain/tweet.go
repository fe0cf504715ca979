package domain

import "time"

// Tweet is a short post with an ordered list of embedded comments.
// Author is set at creation and never changes.
type Tweet struct {
	ID        string    `bson:"_id,omitempty"`
	Body      string    `bson:"body"`
	AuthorID  string    `bson:"author"`
	Favorites []string  `bson:"favorites"`
	Comments  []Comment `bson:"comments"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// Comment lives inside exactly one tweet; its ID is unique within that tweet.
// Favorites is part of the stored schema but no operation populates it.
type Comment struct {
	ID        string    `bson:"id"`
	Body      string    `bson:"body"`
	AuthorID  string    `bson:"author"`
	Favorites []string  `bson:"favorites"`
	CreatedAt time.Time `bson:"createdAt"`
}

// FindComment returns the comment with the given ID, or false if absent.
func (t Tweet) FindComment(id string) (Comment, bool) {
	for _, c := range t.Comments {
		if c.ID == id {
			return c, true
		}
	}
	return Comment{}, false
}
