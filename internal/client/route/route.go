// Package route holds the navigation targets, the guard that decides whether
// a target is reachable for a session, and the navigation history.
package route

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mesto/internal/client/models"
	"github.com/dmitrijs2005/mesto/internal/client/observe"
	"github.com/dmitrijs2005/mesto/internal/common"
)

type Route string

const (
	Home   Route = "/"
	SignIn Route = "/signin"
	SignUp Route = "/signup"
)

func (r Route) String() string {
	return string(r)
}

// Parse accepts a path ("/signin") or a bare name ("signin", "home").
func Parse(s string) (Route, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "/", "home", "":
		return Home, nil
	case "/signin", "signin", "sign-in":
		return SignIn, nil
	case "/signup", "signup", "sign-up":
		return SignUp, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnknownRoute, s)
	}
}

// IsPublic reports whether r is reachable without a session.
func IsPublic(r Route) bool {
	return r == SignIn || r == SignUp
}

// CanEnter returns the route that navigation to r actually lands on and
// whether r itself was allowed. Anything that is not public requires a
// logged-in session; the redirect target is always SignIn.
func CanEnter(r Route, s models.Session) (Route, bool) {
	if IsPublic(r) || !s.Anonymous() {
		return r, true
	}
	return SignIn, false
}

// SessionSource is anything that can report the current session.
type SessionSource interface {
	Session() models.Session
}

// History tracks the current route. Every Navigate call asks the guard
// again; the current route is never re-checked when the session changes.
type History struct {
	sessions SessionSource
	current  *observe.Value[Route]
}

// SessionFunc adapts a function to SessionSource.
type SessionFunc func() models.Session

func (f SessionFunc) Session() models.Session {
	return f()
}

// NewHistory starts at SignIn.
func NewHistory(sessions SessionSource) *History {
	return &History{
		sessions: sessions,
		current:  observe.NewValue(SignIn),
	}
}

// Navigate moves to the route allowed by the guard and returns it.
func (h *History) Navigate(to Route) Route {
	target, _ := CanEnter(to, h.sessions.Session())
	h.current.Set(target)
	return target
}

func (h *History) Current() Route {
	return h.current.Get()
}

func (h *History) Subscribe(fn func(Route)) (unsubscribe func()) {
	return h.current.Subscribe(fn)
}
