package domain

import "time"

// Account is the domain entity for a registered user.
// Followers and Following hold account IDs and are maintained in pairs:
// if A appears in B.Following then B appears in A.Followers.
type Account struct {
	ID           string    `bson:"_id,omitempty"`
	Email        string    `bson:"email"`
	Name         string    `bson:"name"`
	PasswordHash string    `bson:"password"`
	Avatar       []byte    `bson:"avatar,omitempty"`
	Followers    []string  `bson:"followers"`
	Following    []string  `bson:"following"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

// Follows reports whether the account follows the given account ID.
func (a Account) Follows(id string) bool {
	for _, f := range a.Following {
		if f == id {
			return true
		}
	}
	return false
}

// FollowedBy reports whether the given account ID follows this account.
func (a Account) FollowedBy(id string) bool {
	for _, f := range a.Followers {
		if f == id {
			return true
		}
	}
	return false
}
