package cli

import (
	"bufio"
	"context"
	"os"
)

// Root runs the REPL against stdin until EOF or exit.
func (a *App) Root(ctx context.Context) {
	statusFn := func() string {
		if a.isLoggedIn() {
			return a.sess.UserID
		}
		return "offline"
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, statusFn, scanner)
}
