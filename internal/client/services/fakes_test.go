package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/mesto/internal/client/models"
	"github.com/dmitrijs2005/mesto/internal/client/overlay"
	"github.com/dmitrijs2005/mesto/internal/client/route"
	"github.com/dmitrijs2005/mesto/internal/logging"
)

var testLog = logging.Nop()

// ---- auth ----

type fakeAuth struct {
	RegisterErr error

	LoginToken string
	LoginErr   error

	ValidateEmail string
	ValidateErr   error
	ValidateHook  func()

	LastEmail     string
	LastPassword  []byte
	LastToken     string
	ValidateCalls int
}

func (f *fakeAuth) Register(ctx context.Context, email string, password []byte) error {
	f.LastEmail = email
	f.LastPassword = append([]byte(nil), password...)
	return f.RegisterErr
}

func (f *fakeAuth) Login(ctx context.Context, email string, password []byte) (string, error) {
	f.LastEmail = email
	f.LastPassword = append([]byte(nil), password...)
	return f.LoginToken, f.LoginErr
}

func (f *fakeAuth) ValidateToken(ctx context.Context, token string) (string, error) {
	f.ValidateCalls++
	f.LastToken = token
	if f.ValidateHook != nil {
		f.ValidateHook()
	}
	return f.ValidateEmail, f.ValidateErr
}

// ---- token store ----

type fakeTokenStore struct {
	values map[string]string

	GetErr     error
	ReplaceErr error
	DeleteErr  error

	GetCalls    int
	DeleteCalls int
}

func newFakeTokenStore(kv ...string) *fakeTokenStore {
	s := &fakeTokenStore{values: map[string]string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		s.values[kv[i]] = kv[i+1]
	}
	return s
}

func (s *fakeTokenStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.GetCalls++
	if s.GetErr != nil {
		return "", false, s.GetErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *fakeTokenStore) Replace(ctx context.Context, key string, value string) (string, bool, error) {
	if s.ReplaceErr != nil {
		return "", false, s.ReplaceErr
	}
	prev, ok := s.values[key]
	s.values[key] = value
	return prev, ok, nil
}

func (s *fakeTokenStore) Delete(ctx context.Context, key string) error {
	s.DeleteCalls++
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	delete(s.values, key)
	return nil
}

// ---- navigation / overlays ----

type fakeNav struct {
	Routes []route.Route
}

func (n *fakeNav) Navigate(to route.Route) route.Route {
	n.Routes = append(n.Routes, to)
	return to
}

type fakeOverlays struct {
	Opened []overlay.State
}

func (o *fakeOverlays) Open(s overlay.State) {
	o.Opened = append(o.Opened, s)
}

func (o *fakeOverlays) Last() overlay.State {
	if len(o.Opened) == 0 {
		return overlay.Closed()
	}
	return o.Opened[len(o.Opened)-1]
}

// ---- cards ----

type fakeCardAPI struct {
	mu sync.Mutex

	Profile    models.UserProfile
	ProfileErr error

	List    []models.Card
	ListErr error

	SetProfileErr error
	SetAvatarErr  error

	AddRet models.Card
	AddErr error

	RemoveErr error

	LikeRet models.Card
	LikeErr error

	LastUpdate   models.ProfileUpdate
	LastAvatar   string
	LastInput    models.CardInput
	LastRemoveID string
	LastLikeID   string
	LastLiked    bool
}

func (f *fakeCardAPI) GetProfile(ctx context.Context) (models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Profile, f.ProfileErr
}

func (f *fakeCardAPI) SetProfile(ctx context.Context, upd models.ProfileUpdate) (models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastUpdate = upd
	if f.SetProfileErr != nil {
		return models.UserProfile{}, f.SetProfileErr
	}
	p := f.Profile
	p.Name, p.About = upd.Name, upd.About
	return p, nil
}

func (f *fakeCardAPI) SetAvatar(ctx context.Context, avatarURL string) (models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastAvatar = avatarURL
	if f.SetAvatarErr != nil {
		return models.UserProfile{}, f.SetAvatarErr
	}
	p := f.Profile
	p.AvatarURL = avatarURL
	return p, nil
}

func (f *fakeCardAPI) ListCards(ctx context.Context) ([]models.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.CloneCards(f.List), f.ListErr
}

func (f *fakeCardAPI) AddCard(ctx context.Context, in models.CardInput) (models.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastInput = in
	return f.AddRet, f.AddErr
}

func (f *fakeCardAPI) RemoveCard(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastRemoveID = id
	return f.RemoveErr
}

func (f *fakeCardAPI) SetLike(ctx context.Context, id string, liked bool) (models.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastLikeID = id
	f.LastLiked = liked
	return f.LikeRet, f.LikeErr
}
