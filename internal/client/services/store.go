package services

import (
	"context"

	"github.com/dmitrijs2005/mesto/internal/client/client"
	"github.com/dmitrijs2005/mesto/internal/client/models"
	"github.com/dmitrijs2005/mesto/internal/client/observe"
	"github.com/dmitrijs2005/mesto/internal/logging"
	"golang.org/x/sync/errgroup"
)

// EntityState is the local mirror of server-owned data. Cards keep server
// order, except that added cards go first.
type EntityState struct {
	Profile models.UserProfile
	Cards   []models.Card
	Loaded  bool
}

// EntityStore applies server-confirmed changes to the profile and the card
// collection. Slices in published states are never modified in place.
type EntityStore struct {
	api   client.CardAPI
	log   logging.Logger
	state *observe.Value[EntityState]
}

func NewEntityStore(api client.CardAPI, log logging.Logger) *EntityStore {
	return &EntityStore{
		api:   api,
		log:   log,
		state: observe.NewValue(EntityState{}),
	}
}

// LoadInitial fetches the profile and the cards concurrently. State changes
// only if both succeed.
func (s *EntityStore) LoadInitial(ctx context.Context) error {
	var (
		profile models.UserProfile
		cards   []models.Card
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.api.GetProfile(gctx)
		profile = p
		return err
	})
	g.Go(func() error {
		c, err := s.api.ListCards(gctx)
		cards = c
		return err
	})

	if err := g.Wait(); err != nil {
		s.log.Error(ctx, "initial load failed", "op", "load initial", "err", err)
		return err
	}

	if cards == nil {
		cards = []models.Card{}
	}
	s.state.Set(EntityState{Profile: profile, Cards: cards, Loaded: true})
	return nil
}

func (s *EntityStore) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (models.UserProfile, error) {
	p, err := s.api.SetProfile(ctx, upd)
	if err != nil {
		s.log.Error(ctx, "profile update failed", "op", "update profile", "err", err)
		return models.UserProfile{}, err
	}
	s.setProfile(p)
	return p, nil
}

func (s *EntityStore) UpdateAvatar(ctx context.Context, avatarURL string) (models.UserProfile, error) {
	p, err := s.api.SetAvatar(ctx, avatarURL)
	if err != nil {
		s.log.Error(ctx, "avatar update failed", "op", "update avatar", "err", err)
		return models.UserProfile{}, err
	}
	s.setProfile(p)
	return p, nil
}

func (s *EntityStore) setProfile(p models.UserProfile) {
	s.state.Update(func(st EntityState) EntityState {
		st.Profile = p
		return st
	})
}

// ToggleLike asks the server for the opposite of the current user's like on
// card and stores the card the server returns.
func (s *EntityStore) ToggleLike(ctx context.Context, card models.Card) (models.Card, error) {
	liked := !card.IsLikedBy(s.Profile().ID)

	updated, err := s.api.SetLike(ctx, card.ID, liked)
	if err != nil {
		s.log.Error(ctx, "like toggle failed", "op", "toggle like", "card_id", card.ID, "err", err)
		return models.Card{}, err
	}

	s.state.Update(func(st EntityState) EntityState {
		st.Cards = replaceCard(st.Cards, updated)
		return st
	})
	return updated, nil
}

// AddCard creates a card and puts it first.
func (s *EntityStore) AddCard(ctx context.Context, in models.CardInput) (models.Card, error) {
	card, err := s.api.AddCard(ctx, in)
	if err != nil {
		s.log.Error(ctx, "card creation failed", "op", "add card", "err", err)
		return models.Card{}, err
	}

	s.state.Update(func(st EntityState) EntityState {
		cards := make([]models.Card, 0, len(st.Cards)+1)
		st.Cards = append(append(cards, card), st.Cards...)
		return st
	})
	return card, nil
}

func (s *EntityStore) RemoveCard(ctx context.Context, card models.Card) error {
	if err := s.api.RemoveCard(ctx, card.ID); err != nil {
		s.log.Error(ctx, "card removal failed", "op", "remove card", "card_id", card.ID, "err", err)
		return err
	}

	s.state.Update(func(st EntityState) EntityState {
		st.Cards = withoutCard(st.Cards, card.ID)
		return st
	})
	return nil
}

func (s *EntityStore) Profile() models.UserProfile {
	return s.state.Get().Profile
}

// Cards returns a copy of the collection.
func (s *EntityStore) Cards() []models.Card {
	return models.CloneCards(s.state.Get().Cards)
}

func (s *EntityStore) CardByID(id string) (models.Card, bool) {
	for _, c := range s.state.Get().Cards {
		if c.ID == id {
			return c.Clone(), true
		}
	}
	return models.Card{}, false
}

// State returns a snapshot whose cards may be kept by the caller.
func (s *EntityStore) State() EntityState {
	st := s.state.Get()
	st.Cards = models.CloneCards(st.Cards)
	return st
}

func (s *EntityStore) Subscribe(fn func(EntityState)) (unsubscribe func()) {
	return s.state.Subscribe(fn)
}

func replaceCard(cards []models.Card, updated models.Card) []models.Card {
	out := make([]models.Card, len(cards))
	for i, c := range cards {
		if c.ID == updated.ID {
			c = updated
		}
		out[i] = c
	}
	return out
}

func withoutCard(cards []models.Card, id string) []models.Card {
	out := make([]models.Card, 0, len(cards))
	for _, c := range cards {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}
