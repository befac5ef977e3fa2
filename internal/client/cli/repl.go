package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/mesto/internal/client/route"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	enter(r route.Route) route.Route

	Go(ctx context.Context, args []string) error
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	ShowProfile(ctx context.Context) error
	ListCards(ctx context.Context) error
	EditProfile(ctx context.Context) error
	EditAvatar(ctx context.Context) error
	UploadAvatar(ctx context.Context) error
	AddCard(ctx context.Context) error
	Like(ctx context.Context, args []string) error
	View(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	CloseOverlay(ctx context.Context) error
	Refresh(ctx context.Context) error
}

// command binds a REPL word to a handler and the route it runs on. An empty
// route means the command is available everywhere.
type command struct {
	route route.Route
	run   func(ctx context.Context, a execIface, args []string) error
}

func noArgs(fn func(execIface, context.Context) error) func(context.Context, execIface, []string) error {
	return func(ctx context.Context, a execIface, _ []string) error { return fn(a, ctx) }
}

func withArgs(fn func(execIface, context.Context, []string) error) func(context.Context, execIface, []string) error {
	return func(ctx context.Context, a execIface, args []string) error { return fn(a, ctx, args) }
}

var commands = map[string]command{
	"go":            {"", withArgs(execIface.Go)},
	"register":      {route.SignUp, noArgs(execIface.Register)},
	"signup":        {route.SignUp, noArgs(execIface.Register)},
	"login":         {route.SignIn, noArgs(execIface.Login)},
	"signin":        {route.SignIn, noArgs(execIface.Login)},
	"logout":        {route.Home, noArgs(execIface.Logout)},
	"profile":       {route.Home, noArgs(execIface.ShowProfile)},
	"cards":         {route.Home, noArgs(execIface.ListCards)},
	"l":             {route.Home, noArgs(execIface.ListCards)},
	"edit-profile":  {route.Home, noArgs(execIface.EditProfile)},
	"avatar":        {route.Home, noArgs(execIface.EditAvatar)},
	"upload-avatar": {route.Home, noArgs(execIface.UploadAvatar)},
	"add":           {route.Home, noArgs(execIface.AddCard)},
	"like":          {route.Home, withArgs(execIface.Like)},
	"view":          {route.Home, withArgs(execIface.View)},
	"remove":        {route.Home, withArgs(execIface.Remove)},
	"close":         {route.Home, noArgs(execIface.CloseOverlay)},
	"refresh":       {route.Home, noArgs(execIface.Refresh)},
}

// runREPL starts a simple read-eval-print loop for the Mesto CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. Before a command runs the client navigates
// to the command's route; when the guard redirects (an anonymous user asking
// for home) the command is skipped. The loop exits on EOF or when the user
// types "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help                   show available commands
//	  - register | signup      create an account
//	  - login | signin         authenticate
//	  - go <route>             open /, /signin or /signup
//	  - exit | quit            leave the program
//
//	Logged in:
//	  - help                   show available commands
//	  - profile                show the current profile
//	  - (l) cards              list cards with their numbers
//	  - edit-profile           change name and about
//	  - avatar                 set the avatar from a URL
//	  - upload-avatar          upload a local image as the avatar
//	  - add                    add a card
//	  - like <n>               toggle the like on card n
//	  - view <n>               open the image preview of card n
//	  - remove <n>             remove your own card n after confirmation
//	  - close                  close the open overlay
//	  - refresh                reload profile and cards
//	  - go <route>             open /, /signin or /signup
//	  - logout                 sign out
//	  - exit | quit            leave the program
//
// Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("mesto %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, (l) cards, edit-profile, avatar, upload-avatar, add, like <n>, view <n>, remove <n>, close, refresh, go <route>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, go <route>, exit")
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		c, ok := commands[cmd]
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}

		if c.route != "" {
			if landed := a.enter(c.route); landed != c.route {
				printlnFn("Please sign in first (type 'login')")
				continue
			}
		}

		if err := c.run(ctx, a, args); err != nil {
			printlnFn("Error:", err)
		}
	}
}
