// Package app composes the session manager, entity store, overlay
// coordinator and navigation history into the operations the shell calls.
package app

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/mesto/internal/client/models"
	"github.com/dmitrijs2005/mesto/internal/client/overlay"
	"github.com/dmitrijs2005/mesto/internal/client/route"
	"github.com/dmitrijs2005/mesto/internal/client/services"
	"github.com/dmitrijs2005/mesto/internal/common"
	"github.com/dmitrijs2005/mesto/internal/logging"
)

// AvatarUploader stores a local image and returns its public URL.
type AvatarUploader interface {
	Upload(ctx context.Context, path string) (string, error)
}

type Controller struct {
	sessions *services.SessionManager
	store    *services.EntityStore
	overlays *overlay.Coordinator
	history  *route.History
	uploader AvatarUploader
	log      logging.Logger

	startOnce sync.Once
}

// New wires a controller. uploader may be nil when no object storage is
// configured.
func New(
	sessions *services.SessionManager,
	store *services.EntityStore,
	overlays *overlay.Coordinator,
	history *route.History,
	uploader AvatarUploader,
	log logging.Logger,
) *Controller {
	return &Controller{
		sessions: sessions,
		store:    store,
		overlays: overlays,
		history:  history,
		uploader: uploader,
		log:      log,
	}
}

// Start runs the startup sequence once: land on home (the guard sends an
// anonymous user to sign-in), restore the stored token, then bootstrap the
// session and load the data concurrently. It returns when both are done.
// Neither failure is fatal; each is logged by the component that hit it.
func (c *Controller) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		c.history.Navigate(route.Home)
		c.sessions.Restore(ctx)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = c.sessions.Bootstrap(ctx)
		}()
		go func() {
			defer wg.Done()
			_ = c.store.LoadInitial(ctx)
		}()
		wg.Wait()

		c.log.Debug(ctx, "startup finished",
			"logged_in", c.sessions.Session().IsLoggedIn, "route", c.history.Current().String())
	})
}

// Refresh reloads the profile and cards on demand.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.store.LoadInitial(ctx)
}

func (c *Controller) OpenEditProfile() { c.overlays.Open(overlay.EditProfileForm()) }
func (c *Controller) OpenAddPlace()    { c.overlays.Open(overlay.AddPlaceForm()) }
func (c *Controller) OpenEditAvatar()  { c.overlays.Open(overlay.EditAvatarForm()) }
func (c *Controller) CloseOverlays()   { c.overlays.CloseAll() }

func (c *Controller) OpenConfirmRemove(card models.Card) {
	c.overlays.Open(overlay.ConfirmRemoval(card))
}

func (c *Controller) ViewImage(card models.Card) {
	c.overlays.Open(overlay.ImagePreview(card))
}

// SubmitProfile saves the profile; the active overlay closes only on
// success.
func (c *Controller) SubmitProfile(ctx context.Context, upd models.ProfileUpdate) error {
	if _, err := c.store.UpdateProfile(ctx, upd); err != nil {
		return err
	}
	c.overlays.CloseAll()
	return nil
}

func (c *Controller) SubmitAvatar(ctx context.Context, avatarURL string) error {
	if _, err := c.store.UpdateAvatar(ctx, avatarURL); err != nil {
		return err
	}
	c.overlays.CloseAll()
	return nil
}

// UploadAvatar stores a local image and submits its URL as the avatar.
func (c *Controller) UploadAvatar(ctx context.Context, path string) error {
	if c.uploader == nil {
		return services.ErrUploadNotConfigured
	}
	url, err := c.uploader.Upload(ctx, path)
	if err != nil {
		return err
	}
	return c.SubmitAvatar(ctx, url)
}

func (c *Controller) CanUploadAvatar() bool {
	return c.uploader != nil
}

func (c *Controller) SubmitCard(ctx context.Context, in models.CardInput) error {
	if _, err := c.store.AddCard(ctx, in); err != nil {
		return err
	}
	c.overlays.CloseAll()
	return nil
}

func (c *Controller) ToggleLike(ctx context.Context, card models.Card) error {
	_, err := c.store.ToggleLike(ctx, card)
	return err
}

func (c *Controller) RemoveCard(ctx context.Context, card models.Card) error {
	if err := c.store.RemoveCard(ctx, card); err != nil {
		return err
	}
	c.overlays.CloseIf(overlay.ConfirmRemove)
	return nil
}

// ConfirmRemove removes the card captured by the open confirm-remove
// overlay.
func (c *Controller) ConfirmRemove(ctx context.Context) error {
	st := c.overlays.Current()
	card, ok := st.Card()
	if st.Kind() != overlay.ConfirmRemove || !ok {
		return common.ErrNothingToConfirm
	}
	return c.RemoveCard(ctx, card)
}

func (c *Controller) Register(ctx context.Context, email string, password []byte) error {
	return c.sessions.Register(ctx, email, password)
}

func (c *Controller) Login(ctx context.Context, email string, password []byte) error {
	return c.sessions.Login(ctx, email, password)
}

func (c *Controller) SignOut(ctx context.Context) {
	c.sessions.SignOut(ctx)
}

// Navigate asks the guard and returns where the client landed.
func (c *Controller) Navigate(to route.Route) route.Route {
	return c.history.Navigate(to)
}

func (c *Controller) Session() models.Session     { return c.sessions.Session() }
func (c *Controller) Profile() models.UserProfile { return c.store.Profile() }
func (c *Controller) Cards() []models.Card        { return c.store.Cards() }
func (c *Controller) Overlay() overlay.State      { return c.overlays.Current() }
func (c *Controller) Route() route.Route          { return c.history.Current() }

// Entities reports the loaded profile and cards together.
func (c *Controller) Entities() services.EntityState { return c.store.State() }

func (c *Controller) CardByID(id string) (models.Card, bool) {
	return c.store.CardByID(id)
}
