package models

import "time"

// UserSet is a set of user ids.
type UserSet map[string]struct{}

// NewUserSet builds a set from ids, dropping duplicates and empty ids.
func NewUserSet(ids ...string) UserSet {
	s := make(UserSet, len(ids))
	for _, id := range ids {
		if id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

func (s UserSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s UserSet) Len() int {
	return len(s)
}

func (s UserSet) Clone() UserSet {
	c := make(UserSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Card is a shared photo card.
type Card struct {
	ID        string
	Name      string
	ImageURL  string
	OwnerID   string
	LikedBy   UserSet
	CreatedAt time.Time
}

// IsLikedBy reports whether userID is in the card's likes.
func (c Card) IsLikedBy(userID string) bool {
	return userID != "" && c.LikedBy.Has(userID)
}

// IsOwnedBy reports whether userID created the card.
func (c Card) IsOwnedBy(userID string) bool {
	return userID != "" && c.OwnerID == userID
}

// Clone returns a deep copy safe to hold after the original is replaced.
func (c Card) Clone() Card {
	c.LikedBy = c.LikedBy.Clone()
	return c
}

// CardInput is the payload of a new card.
type CardInput struct {
	Name     string
	ImageURL string
}

// CloneCards deep-copies a card slice.
func CloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = c.Clone()
	}
	return out
}
