package cli

import (
	"context"

	"github.com/dmitrijs2005/mesto/internal/client/overlay"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) credentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Register prompts for an email and password and creates an account. On
// success the client lands on the sign-in page. The password is wiped before
// returning.
func (a *App) Register(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer clear(password)

	err = a.ctrl.Register(ctx, email, password)
	a.showAuthResult()
	return err
}

// Login prompts for credentials and signs in. On success the client lands on
// home and the token is remembered for the next start.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer clear(password)

	err = a.ctrl.Login(ctx, email, password)
	a.showAuthResult()
	return err
}

// Logout forgets the token and returns to the sign-in page.
func (a *App) Logout(ctx context.Context) error {
	a.ctrl.SignOut(ctx)
	printlnFn("Signed out")
	return nil
}

// showAuthResult prints and dismisses the auth tooltip if one is open.
func (a *App) showAuthResult() {
	st := a.ctrl.Overlay()
	status, ok := st.Status()
	if !ok {
		return
	}
	switch status {
	case overlay.StatusSuccess:
		printlnFn("Success!")
	default:
		printlnFn("Something went wrong, please try again.")
	}
	a.ctrl.CloseOverlays()
}
