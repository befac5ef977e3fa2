package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/mesto/internal/client/models"
	"github.com/dmitrijs2005/mesto/internal/client/route"
)

var (
	ErrCardNumberRequired = errors.New("card number required")
	ErrNoSuchCard         = errors.New("no such card")
	ErrNotCardOwner       = errors.New("only your own cards can be removed")
)

func (a *App) ShowProfile(ctx context.Context) error {
	p := a.ctrl.Profile()
	fmt.Fprintf(a.out, "Name:   %s\nAbout:  %s\nAvatar: %s\n", p.Name, p.About, p.AvatarURL)
	return nil
}

// ListCards prints the cards newest first, numbered for like/view/remove.
func (a *App) ListCards(ctx context.Context) error {
	st := a.ctrl.Entities()
	switch {
	case !st.Loaded:
		fmt.Fprintln(a.out, "Cards are not loaded yet, type 'refresh'")
		return nil
	case len(st.Cards) == 0:
		fmt.Fprintln(a.out, "No cards")
		return nil
	}

	me := st.Profile.ID
	for i, c := range st.Cards {
		heart := "♡"
		if c.IsLikedBy(me) {
			heart = "♥"
		}
		mine := ""
		if c.IsOwnedBy(me) {
			mine = " (yours)"
		}
		fmt.Fprintf(a.out, "%3d. %s %s %d%s\n     %s\n", i+1, c.Name, heart, c.LikedBy.Len(), mine, c.ImageURL)
	}
	return nil
}

// prompt reads one line; an empty answer yields def.
func (a *App) prompt(label, def string) (string, error) {
	if def != "" {
		label = fmt.Sprintf("%s [%s]", label, def)
	}
	v, err := getSimpleText(a.reader, label, a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		return def, nil
	}
	return v, nil
}

// EditProfile opens the profile form and submits it. The form stays open if
// saving fails.
func (a *App) EditProfile(ctx context.Context) error {
	a.ctrl.OpenEditProfile()
	cur := a.ctrl.Profile()

	name, err := a.prompt("Name", cur.Name)
	if err != nil {
		a.ctrl.CloseOverlays()
		return err
	}
	about, err := a.prompt("About", cur.About)
	if err != nil {
		a.ctrl.CloseOverlays()
		return err
	}

	if err := a.ctrl.SubmitProfile(ctx, models.ProfileUpdate{Name: name, About: about}); err != nil {
		return err
	}
	printlnFn("Profile saved")
	return nil
}

func (a *App) EditAvatar(ctx context.Context) error {
	a.ctrl.OpenEditAvatar()

	url, err := a.prompt("Avatar URL", "")
	if err != nil {
		a.ctrl.CloseOverlays()
		return err
	}

	if err := a.ctrl.SubmitAvatar(ctx, url); err != nil {
		return err
	}
	printlnFn("Avatar saved")
	return nil
}

func (a *App) UploadAvatar(ctx context.Context) error {
	if !a.ctrl.CanUploadAvatar() {
		printlnFn("Avatar upload is not configured, use 'avatar' with a URL")
		return nil
	}
	a.ctrl.OpenEditAvatar()

	path, err := a.prompt("Image file", "")
	if err != nil {
		a.ctrl.CloseOverlays()
		return err
	}

	if err := a.ctrl.UploadAvatar(ctx, path); err != nil {
		return err
	}
	printlnFn("Avatar uploaded")
	return nil
}

func (a *App) AddCard(ctx context.Context) error {
	a.ctrl.OpenAddPlace()

	name, err := a.prompt("Place name", "")
	if err != nil {
		a.ctrl.CloseOverlays()
		return err
	}
	link, err := a.prompt("Image URL", "")
	if err != nil {
		a.ctrl.CloseOverlays()
		return err
	}

	if err := a.ctrl.SubmitCard(ctx, models.CardInput{Name: name, ImageURL: link}); err != nil {
		return err
	}
	printlnFn("Card added")
	return nil
}

// cardAt resolves the 1-based card number in args[0] against the list as
// currently shown by ListCards.
func (a *App) cardAt(args []string) (models.Card, error) {
	if len(args) == 0 {
		return models.Card{}, ErrCardNumberRequired
	}
	n, err := strconv.Atoi(args[0])
	cards := a.ctrl.Cards()
	if err != nil || n < 1 || n > len(cards) {
		return models.Card{}, fmt.Errorf("%w: %s", ErrNoSuchCard, args[0])
	}
	return cards[n-1], nil
}

func (a *App) Like(ctx context.Context, args []string) error {
	card, err := a.cardAt(args)
	if err != nil {
		return err
	}
	return a.ctrl.ToggleLike(ctx, card)
}

// View opens the image preview of a card; 'close' dismisses it.
func (a *App) View(ctx context.Context, args []string) error {
	card, err := a.cardAt(args)
	if err != nil {
		return err
	}
	a.ctrl.ViewImage(card)
	fmt.Fprintf(a.out, "%s\n%s\n", card.Name, card.ImageURL)
	return nil
}

// Remove asks for confirmation before deleting one of the user's own cards.
func (a *App) Remove(ctx context.Context, args []string) error {
	card, err := a.cardAt(args)
	if err != nil {
		return err
	}
	if !card.IsOwnedBy(a.ctrl.Profile().ID) {
		return ErrNotCardOwner
	}

	a.ctrl.OpenConfirmRemove(card)

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Remove %q? (y/N)", card.Name), a.out)
	if err != nil || !strings.EqualFold(answer, "y") {
		a.ctrl.CloseOverlays()
		return err
	}

	if err := a.ctrl.ConfirmRemove(ctx); err != nil {
		return err
	}
	printlnFn("Card removed")
	return nil
}

func (a *App) CloseOverlay(ctx context.Context) error {
	a.ctrl.CloseOverlays()
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	return a.ctrl.Refresh(ctx)
}

// Go navigates to a route given as a path or a bare name. With no argument
// it goes home.
func (a *App) Go(ctx context.Context, args []string) error {
	var name string
	if len(args) > 0 {
		name = args[0]
	}
	to, err := route.Parse(name)
	if err != nil {
		return err
	}
	if landed := a.enter(to); landed != to {
		printlnFn("Please sign in first (type 'login')")
		return nil
	}
	printlnFn("Now at", to.String())
	return nil
}
