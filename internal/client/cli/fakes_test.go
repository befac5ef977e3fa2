package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/mesto/internal/client/app"
	"github.com/dmitrijs2005/mesto/internal/client/client"
	"github.com/dmitrijs2005/mesto/internal/client/models"
	"github.com/dmitrijs2005/mesto/internal/logging"
)

type fakeAuth struct {
	validTokens map[string]string
	loginToken  string
	loginErr    error
	registerErr error

	lastEmail    string
	lastPassword string
}

func (f *fakeAuth) Register(ctx context.Context, email string, password []byte) error {
	f.lastEmail, f.lastPassword = email, string(password)
	return f.registerErr
}

func (f *fakeAuth) Login(ctx context.Context, email string, password []byte) (string, error) {
	f.lastEmail, f.lastPassword = email, string(password)
	return f.loginToken, f.loginErr
}

func (f *fakeAuth) ValidateToken(ctx context.Context, token string) (string, error) {
	if email, ok := f.validTokens[token]; ok {
		return email, nil
	}
	return "", &client.AuthError{Op: "validate token", Err: client.ErrUnauthorized}
}

type memTokens struct {
	mu sync.Mutex
	kv map[string]string
}

func (m *memTokens) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.kv[key]
	return v, ok, nil
}

func (m *memTokens) Replace(ctx context.Context, key, value string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, ok := m.kv[key]
	m.kv[key] = value
	return prev, ok, nil
}

func (m *memTokens) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.kv, key)
	return nil
}

// fakeCards serves a fixed user "me" and keeps cards in memory.
type fakeCards struct {
	mu      sync.Mutex
	profile models.UserProfile
	cards   []models.Card
	err     error

	lastLikeID string
	lastLiked  bool
	lastRemove string
}

func (f *fakeCards) GetProfile(ctx context.Context) (models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profile, f.err
}

func (f *fakeCards) SetProfile(ctx context.Context, upd models.ProfileUpdate) (models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.UserProfile{}, f.err
	}
	f.profile.Name, f.profile.About = upd.Name, upd.About
	return f.profile, nil
}

func (f *fakeCards) SetAvatar(ctx context.Context, avatarURL string) (models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.UserProfile{}, f.err
	}
	f.profile.AvatarURL = avatarURL
	return f.profile, nil
}

func (f *fakeCards) ListCards(ctx context.Context) ([]models.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.CloneCards(f.cards), f.err
}

func (f *fakeCards) AddCard(ctx context.Context, in models.CardInput) (models.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.Card{}, f.err
	}
	c := models.Card{ID: fmt.Sprintf("c%d", len(f.cards)+1), Name: in.Name, ImageURL: in.ImageURL, OwnerID: f.profile.ID}
	f.cards = append([]models.Card{c}, f.cards...)
	return c, nil
}

func (f *fakeCards) RemoveCard(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastRemove = id
	return f.err
}

func (f *fakeCards) SetLike(ctx context.Context, id string, liked bool) (models.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLikeID, f.lastLiked = id, liked
	if f.err != nil {
		return models.Card{}, f.err
	}
	for _, c := range f.cards {
		if c.ID == id {
			c = c.Clone()
			if liked {
				c.LikedBy[f.profile.ID] = struct{}{}
			} else {
				delete(c.LikedBy, f.profile.ID)
			}
			return c, nil
		}
	}
	return models.Card{}, client.ErrBadRequest
}

type fakeUploader struct {
	url      string
	lastPath string
}

func (u *fakeUploader) Upload(ctx context.Context, path string) (string, error) {
	u.lastPath = path
	return u.url, nil
}

type testEnv struct {
	app    *App
	auth   *fakeAuth
	tokens *memTokens
	cards  *fakeCards
	out    *bytes.Buffer
	lines  *[]string
}

func defaultCards() []models.Card {
	return []models.Card{
		{ID: "c2", Name: "Elbrus", ImageURL: "https://img/elbrus.jpg", OwnerID: "me", LikedBy: models.NewUserSet("other")},
		{ID: "c1", Name: "Baikal", ImageURL: "https://img/baikal.jpg", OwnerID: "other", LikedBy: models.NewUserSet("me")},
	}
}

// newTestEnv builds an App over fakes reading input. With loggedIn the
// token store already holds a valid token and the app is started.
func newTestEnv(t *testing.T, input string, loggedIn bool, uploader app.AvatarUploader) *testEnv {
	t.Helper()

	lines := captureOutput(t)

	origPassword := getPassword
	getPassword = func(*bufio.Reader, io.Writer) ([]byte, error) { return []byte("secret"), nil }
	t.Cleanup(func() { getPassword = origPassword })

	env := &testEnv{
		auth:   &fakeAuth{validTokens: map[string]string{"good": "a@b.c"}, loginToken: "good"},
		tokens: &memTokens{kv: map[string]string{}},
		cards: &fakeCards{
			profile: models.UserProfile{ID: "me", Name: "Jacques", About: "Explorer"},
			cards:   defaultCards(),
		},
		out:   &bytes.Buffer{},
		lines: lines,
	}
	if loggedIn {
		env.tokens.kv["jwt"] = "good"
	}

	ctrl := app.Build(app.Deps{
		Auth:     env.auth,
		Cards:    func(client.TokenSource) client.CardAPI { return env.cards },
		Tokens:   env.tokens,
		Uploader: uploader,
		Log:      logging.Nop(),
	})

	env.app = &App{
		ctrl:   ctrl,
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    env.out,
		log:    logging.Nop(),
	}
	if loggedIn {
		ctrl.Start(context.Background())
	}
	return env
}

// captureOutput swaps printlnFn for a recorder.
func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}
