package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/mesto/internal/client/app"
	"github.com/dmitrijs2005/mesto/internal/client/client"
	"github.com/dmitrijs2005/mesto/internal/client/config"
	"github.com/dmitrijs2005/mesto/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mesto/internal/client/route"
	"github.com/dmitrijs2005/mesto/internal/client/services"
	"github.com/dmitrijs2005/mesto/internal/filex"
	"github.com/dmitrijs2005/mesto/internal/logging"
)

type App struct {
	ctrl    *app.Controller
	reader  *bufio.Reader
	out     io.Writer
	log     logging.Logger
	closers []io.Closer
}

// NewApp opens the local token database, picks the auth transport and wires
// the controller. Logs go to stderr so they do not mix with the prompt.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(os.Stderr, c.LogLevel)

	if _, err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "err", err)
		return nil, err
	}

	a := &App{
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		log:     log,
		closers: []io.Closer{db},
	}

	auth, err := a.newAuthAPI(c)
	if err != nil {
		a.Close()
		return nil, err
	}

	var uploader app.AvatarUploader
	if s3 := c.S3(); s3.Enabled() {
		uploader = services.NewS3AvatarUploader(s3, log)
	}

	a.ctrl = app.Build(app.Deps{
		Auth: auth,
		Cards: func(token client.TokenSource) client.CardAPI {
			return client.NewHTTPClient(client.HTTPConfig{
				BaseURL:   c.APIBaseURL,
				Timeout:   c.RequestTimeout,
				RateLimit: c.RateLimit,
			}, token, log)
		},
		Tokens:   metadata.NewSQLiteRepository(db),
		Uploader: uploader,
		Log:      log,
	})

	return a, nil
}

func (a *App) newAuthAPI(c *config.Config) (client.AuthAPI, error) {
	switch c.AuthTransport {
	case config.AuthTransportGRPC:
		gc, err := client.NewGRPCAuthClient(c.AuthGRPCAddr, a.log)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, gc)
		return gc, nil
	case config.AuthTransportHTTP, "":
		return client.NewHTTPClient(client.HTTPConfig{
			BaseURL:   c.AuthBaseURL,
			Timeout:   c.RequestTimeout,
			RateLimit: c.RateLimit,
		}, nil, a.log), nil
	default:
		return nil, fmt.Errorf("unknown auth transport %q", c.AuthTransport)
	}
}

// Run starts the session and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.ctrl.Start(ctx)
	a.Root(ctx)
}

// Close releases the database and any open connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.ctrl.Session().IsLoggedIn
}

// enter asks the route guard for r and reports where the client landed.
func (a *App) enter(r route.Route) route.Route {
	return a.ctrl.Navigate(r)
}

// getStatus renders "(email route [overlay])" for the prompt.
func (a *App) getStatus() string {
	s := a.ctrl.Route().String()
	if sess := a.ctrl.Session(); !sess.Anonymous() {
		s = sess.Email + " " + s
	}
	if ov := a.ctrl.Overlay(); ov.IsOpen() {
		s += " [" + ov.String() + "]"
	}
	return "(" + s + ")"
}

// Root runs the interactive loop on stdin.
func (a *App) Root(ctx context.Context) {
	a.log.Info(ctx, "Welcome to Mesto CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}
