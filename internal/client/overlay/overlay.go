// Package overlay arbitrates the single modal or tooltip that may be visible.
//
// The state is one tagged value; Open replaces whatever was open
// (last-writer-wins, no stacking) and CloseAll resets to None.
package overlay

import (
	"github.com/dmitrijs2005/mesto/internal/client/models"
	"github.com/dmitrijs2005/mesto/internal/client/observe"
)

// Kind tags an overlay state.
type Kind int

const (
	None Kind = iota
	EditProfile
	AddPlace
	EditAvatar
	ConfirmRemove
	ViewImage
	AuthResult
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case EditProfile:
		return "edit profile"
	case AddPlace:
		return "add place"
	case EditAvatar:
		return "edit avatar"
	case ConfirmRemove:
		return "confirm remove"
	case ViewImage:
		return "view image"
	case AuthResult:
		return "auth result"
	default:
		return "unknown"
	}
}

// AuthStatus is the outcome shown by the AuthResult tooltip.
type AuthStatus string

const (
	StatusSuccess AuthStatus = "success"
	StatusFail    AuthStatus = "fail"
)

// State is the active overlay. The zero value is None.
//
// ConfirmRemove and ViewImage carry a snapshot of the card taken when the
// overlay opened; it stays renderable even if the card leaves the store.
type State struct {
	kind   Kind
	card   models.Card
	status AuthStatus
}

func (s State) Kind() Kind {
	return s.kind
}

// Card returns the captured card for ConfirmRemove and ViewImage.
func (s State) Card() (models.Card, bool) {
	if s.kind != ConfirmRemove && s.kind != ViewImage {
		return models.Card{}, false
	}
	return s.card.Clone(), true
}

// Status returns the tooltip outcome for AuthResult.
func (s State) Status() (AuthStatus, bool) {
	if s.kind != AuthResult {
		return "", false
	}
	return s.status, true
}

func (s State) IsOpen() bool {
	return s.kind != None
}

func (s State) String() string {
	switch s.kind {
	case ConfirmRemove, ViewImage:
		return s.kind.String() + ": " + s.card.Name
	case AuthResult:
		return s.kind.String() + ": " + string(s.status)
	default:
		return s.kind.String()
	}
}

func Closed() State                       { return State{} }
func EditProfileForm() State              { return State{kind: EditProfile} }
func AddPlaceForm() State                 { return State{kind: AddPlace} }
func EditAvatarForm() State               { return State{kind: EditAvatar} }
func ConfirmRemoval(c models.Card) State  { return State{kind: ConfirmRemove, card: c.Clone()} }
func ImagePreview(c models.Card) State    { return State{kind: ViewImage, card: c.Clone()} }
func AuthTooltip(status AuthStatus) State { return State{kind: AuthResult, status: status} }

// Coordinator owns the active overlay.
type Coordinator struct {
	state *observe.Value[State]
}

func NewCoordinator() *Coordinator {
	return &Coordinator{state: observe.NewValue(Closed())}
}

// Open makes s the only active overlay.
func (c *Coordinator) Open(s State) {
	c.state.Set(s)
}

// CloseAll resets to None regardless of what is open.
func (c *Coordinator) CloseAll() {
	c.state.Set(Closed())
}

// CloseIf closes the overlay only while kind is the active one, and reports
// whether it did.
func (c *Coordinator) CloseIf(kind Kind) bool {
	closed := false
	c.state.Update(func(cur State) State {
		if cur.kind != kind {
			return cur
		}
		closed = true
		return Closed()
	})
	return closed
}

func (c *Coordinator) Current() State {
	return c.state.Get()
}

func (c *Coordinator) Subscribe(fn func(State)) (unsubscribe func()) {
	return c.state.Subscribe(fn)
}
