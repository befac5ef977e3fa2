package app

import (
	"github.com/dmitrijs2005/mesto/internal/client/client"
	"github.com/dmitrijs2005/mesto/internal/client/models"
	"github.com/dmitrijs2005/mesto/internal/client/overlay"
	"github.com/dmitrijs2005/mesto/internal/client/route"
	"github.com/dmitrijs2005/mesto/internal/client/services"
	"github.com/dmitrijs2005/mesto/internal/logging"
)

// Deps are the external collaborators of a controller.
type Deps struct {
	Auth client.AuthAPI
	// Cards builds the card API around the session manager's token.
	Cards    func(token client.TokenSource) client.CardAPI
	Tokens   services.TokenStore
	Uploader AvatarUploader
	Log      logging.Logger
}

// Build assembles the components. The history asks the session manager for
// the session, and the session manager navigates through the history.
func Build(d Deps) *Controller {
	log := d.Log
	if log == nil {
		log = logging.Nop()
	}

	overlays := overlay.NewCoordinator()

	var sessions *services.SessionManager
	history := route.NewHistory(route.SessionFunc(func() models.Session {
		return sessions.Session()
	}))
	sessions = services.NewSessionManager(d.Auth, d.Tokens, history, overlays, log)

	store := services.NewEntityStore(d.Cards(sessions.Token), log)

	return New(sessions, store, overlays, history, d.Uploader, log)
}
