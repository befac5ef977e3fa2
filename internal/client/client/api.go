package client

import (
	"context"

	"github.com/dmitrijs2005/mesto/internal/client/models"
)

// AuthAPI registers users, exchanges credentials for a token and resolves a
// token back to the account email.
type AuthAPI interface {
	Register(ctx context.Context, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) (string, error)
	ValidateToken(ctx context.Context, token string) (string, error)
}

// CardAPI is the profile and card surface of the service. Every call is
// authorised with the token current at the moment of the call.
type CardAPI interface {
	GetProfile(ctx context.Context) (models.UserProfile, error)
	SetProfile(ctx context.Context, upd models.ProfileUpdate) (models.UserProfile, error)
	SetAvatar(ctx context.Context, avatarURL string) (models.UserProfile, error)
	ListCards(ctx context.Context) ([]models.Card, error)
	AddCard(ctx context.Context, in models.CardInput) (models.Card, error)
	RemoveCard(ctx context.Context, id string) error
	SetLike(ctx context.Context, id string, liked bool) (models.Card, error)
}

// TokenSource returns the token to attach to the next request, or "" for
// none.
type TokenSource func() string
