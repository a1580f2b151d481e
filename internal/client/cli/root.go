package cli

import (
	"context"
	"fmt"
)

// getStatus renders the prompt status: the signed-in user (or "guest") and
// the current view path.
func (a *App) getStatus() string {
	who := "guest"
	if u := a.session.User(); u != nil && u.Username != "" {
		who = u.Username
	} else if a.session.IsAuthenticated() {
		who = "signed in"
	}
	return fmt.Sprintf("(%s %s)", who, a.router.Current())
}

// Root prints the greeting and runs the REPL on the app's input.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to polygame CLI (type 'help' for commands)")
	if a.isLoggedIn() {
		_ = a.WhoAmI(ctx)
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}
