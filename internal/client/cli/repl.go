package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/polygame/internal/client/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Markets(ctx context.Context, args []string) error
	Market(ctx context.Context, args []string) error
	Trending(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Orders(ctx context.Context) error
	Positions(ctx context.Context) error
	Trade(ctx context.Context, side models.OrderType, args []string) error
	Cancel(ctx context.Context, args []string) error
	Goto(ctx context.Context, args []string) error
}

const (
	helpSignedOut = "Available commands: register, login, whoami, goto <path>, exit"
	helpSignedIn  = "Available commands: profile, whoami, markets [category], market <id>, trending [n], " +
		"search <keyword>, orders, positions, buy|sell <market> <outcome> <shares> <price>, " +
		"cancel <order>, goto <path>, logout, exit"
)

// runREPL starts the read–eval–print loop of the polygame CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches the remaining tokens to methods on 'a'. Commands prompting for
// more input read from the same reader. The loop exits on EOF or when the
// user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers report
// their own failures. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("polygame %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
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
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "markets":
			_ = a.Markets(ctx, args)

		case "market":
			_ = a.Market(ctx, args)

		case "trending":
			_ = a.Trending(ctx, args)

		case "search":
			_ = a.Search(ctx, args)

		case "orders":
			_ = a.Orders(ctx)

		case "positions", "portfolio":
			_ = a.Positions(ctx)

		case "buy":
			_ = a.Trade(ctx, models.OrderTypeBuy, args)

		case "sell":
			_ = a.Trade(ctx, models.OrderTypeSell, args)

		case "cancel":
			_ = a.Cancel(ctx, args)

		case "goto":
			_ = a.Goto(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
