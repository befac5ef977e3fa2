package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/mesto/internal/client/models"
	"github.com/dmitrijs2005/mesto/internal/common"
	"github.com/dmitrijs2005/mesto/internal/logging"
	"github.com/tidwall/gjson"
)

// HTTPConfig configures an HTTPClient.
type HTTPConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 disables throttling

	// Transport overrides the underlying round tripper (tests).
	Transport http.RoundTripper
}

// HTTPClient talks JSON over HTTP. One value serves both AuthAPI and CardAPI;
// the application builds one per base URL.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	log     logging.Logger
}

var (
	_ AuthAPI = (*HTTPClient)(nil)
	_ CardAPI = (*HTTPClient)(nil)
)

// NewHTTPClient builds a client for cfg.BaseURL. token is consulted on every
// CardAPI call; it may be nil for an auth-only client.
func NewHTTPClient(cfg HTTPConfig, token TokenSource, log logging.Logger) *HTTPClient {
	if log == nil {
		log = logging.Nop()
	}
	if token == nil {
		token = func() string { return "" }
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: newTransport(cfg.Transport, cfg.RateLimit, log),
		},
		token: token,
		log:   log,
	}
}

// do performs one exchange and returns the response body with any "data"
// envelope removed.
func (c *HTTPClient) do(ctx context.Context, op, method, path, token string, body any) ([]byte, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, &APIError{Op: op, Err: err}
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, &APIError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Op: op, Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
	}

	if sErr := statusError(resp.StatusCode); sErr != nil {
		return nil, &APIError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    gjson.GetBytes(raw, "message").String(),
			Err:        sErr,
		}
	}

	if data := gjson.GetBytes(raw, "data"); data.IsObject() || data.IsArray() {
		return []byte(data.Raw), nil
	}
	return raw, nil
}

func (c *HTTPClient) decode(op string, raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return &APIError{Op: op, StatusCode: http.StatusOK, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, email string, password []byte) error {
	_, err := c.do(ctx, "register", http.MethodPost, "/signup", "",
		credentialsRequest{Email: email, Password: string(password)})
	if err != nil {
		return &AuthError{Op: "register", Err: err}
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (string, error) {
	raw, err := c.do(ctx, "login", http.MethodPost, "/signin", "",
		credentialsRequest{Email: email, Password: string(password)})
	if err != nil {
		return "", &AuthError{Op: "login", Err: err}
	}

	token := gjson.GetBytes(raw, "token").String()
	if token == "" {
		return "", &AuthError{Op: "login", Err: common.ErrInvalidToken}
	}
	return token, nil
}

func (c *HTTPClient) ValidateToken(ctx context.Context, token string) (string, error) {
	raw, err := c.do(ctx, "validate token", http.MethodGet, "/users/me", token, nil)
	if err != nil {
		return "", &AuthError{Op: "validate token", Err: err}
	}

	email := gjson.GetBytes(raw, "email").String()
	if email == "" {
		return "", &AuthError{Op: "validate token", Err: common.ErrInvalidToken}
	}
	return email, nil
}

func (c *HTTPClient) profile(ctx context.Context, op, method, path string, body any) (models.UserProfile, error) {
	raw, err := c.do(ctx, op, method, path, c.token(), body)
	if err != nil {
		return models.UserProfile{}, err
	}
	var u userDTO
	if err := c.decode(op, raw, &u); err != nil {
		return models.UserProfile{}, err
	}
	return u.toModel(), nil
}

func (c *HTTPClient) GetProfile(ctx context.Context) (models.UserProfile, error) {
	return c.profile(ctx, "get profile", http.MethodGet, "/users/me", nil)
}

func (c *HTTPClient) SetProfile(ctx context.Context, upd models.ProfileUpdate) (models.UserProfile, error) {
	return c.profile(ctx, "set profile", http.MethodPatch, "/users/me",
		profileRequest{Name: upd.Name, About: upd.About})
}

func (c *HTTPClient) SetAvatar(ctx context.Context, avatarURL string) (models.UserProfile, error) {
	return c.profile(ctx, "set avatar", http.MethodPatch, "/users/me/avatar",
		avatarRequest{Avatar: avatarURL})
}

func (c *HTTPClient) ListCards(ctx context.Context) ([]models.Card, error) {
	raw, err := c.do(ctx, "list cards", http.MethodGet, "/cards", c.token(), nil)
	if err != nil {
		return nil, err
	}
	var dtos []cardDTO
	if err := c.decode("list cards", raw, &dtos); err != nil {
		return nil, err
	}
	cards := make([]models.Card, 0, len(dtos))
	for _, d := range dtos {
		cards = append(cards, d.toModel())
	}
	return cards, nil
}

func (c *HTTPClient) card(ctx context.Context, op, method, path string, body any) (models.Card, error) {
	raw, err := c.do(ctx, op, method, path, c.token(), body)
	if err != nil {
		return models.Card{}, err
	}
	var d cardDTO
	if err := c.decode(op, raw, &d); err != nil {
		return models.Card{}, err
	}
	return d.toModel(), nil
}

func (c *HTTPClient) AddCard(ctx context.Context, in models.CardInput) (models.Card, error) {
	return c.card(ctx, "add card", http.MethodPost, "/cards",
		cardRequest{Name: in.Name, Link: in.ImageURL})
}

func (c *HTTPClient) RemoveCard(ctx context.Context, id string) error {
	_, err := c.do(ctx, "remove card", http.MethodDelete, "/cards/"+url.PathEscape(id), c.token(), nil)
	return err
}

func (c *HTTPClient) SetLike(ctx context.Context, id string, liked bool) (models.Card, error) {
	method := http.MethodDelete
	if liked {
		method = http.MethodPut
	}
	return c.card(ctx, "set like", method, "/cards/"+url.PathEscape(id)+"/likes", nil)
}
