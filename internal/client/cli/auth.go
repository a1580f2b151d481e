package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/polygame/internal/client/router"
	"github.com/dmitrijs2005/polygame/internal/client/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

var errAlreadySignedIn = errors.New("already signed in")

// Register opens the registration view, prompts for username, email and
// password and creates the account. On success the session is established
// and the home view is shown.
func (a *App) Register(ctx context.Context) error {
	if err := a.openAuthView(ctx, router.RegisterPath); err != nil {
		return err
	}

	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	return a.finishAuth(ctx, a.session.Register(ctx, username, email, password))
}

// Login opens the login view, prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	if err := a.openAuthView(ctx, router.LoginPath); err != nil {
		return err
	}

	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	return a.finishAuth(ctx, a.session.Login(ctx, username, password))
}

// openAuthView navigates to an auth-only view. The guard sends a signed-in
// user home instead.
func (a *App) openAuthView(ctx context.Context, path string) error {
	if _, ok := a.navigate(ctx, path); !ok {
		fmt.Fprintln(a.out, "You are already signed in. Use 'logout' first.")
		return errAlreadySignedIn
	}
	return nil
}

func (a *App) finishAuth(ctx context.Context, res services.Result) error {
	if !res.Success {
		fmt.Fprintln(a.out, "Error:", res.Error)
		return errors.New(res.Error)
	}
	a.router.Push(ctx, router.HomePath)
	fmt.Fprintln(a.out, "Success!")
	return a.WhoAmI(ctx)
}

// Logout signs out locally and returns to the home view.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.router.Push(ctx, router.HomePath)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Profile opens the profile view: it refreshes the profile from the server
// (silently keeping the cached one on failure) and prints it.
func (a *App) Profile(ctx context.Context) error {
	if _, ok := a.navigate(ctx, "/profile"); !ok {
		return errSignInRequired
	}
	a.session.FetchProfile(ctx)

	u := a.session.User()
	if u == nil {
		fmt.Fprintln(a.out, "No profile loaded")
		return nil
	}
	printProfile(a.out, u)
	return nil
}

// WhoAmI prints the session state without contacting the server.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.session.IsAuthenticated() {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}

	name := "unknown user"
	if u := a.session.User(); u != nil {
		name = u.Username
	}
	fmt.Fprintf(a.out, "Signed in as %s\n", name)
	if exp, ok := a.session.TokenExpiry(); ok {
		fmt.Fprintf(a.out, "Token expires %s\n", exp.Local().Format(time.RFC1123))
	}
	return nil
}
