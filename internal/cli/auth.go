package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/creatorsync/creatorsync/internal/session"
)

// Login reads an ID token from the terminal, verifies it and establishes the
// session. Becoming logged in triggers the bulk-retry pass and a merge, so
// anything created offline starts flowing to the remote store right away.
func (a *App) Login(ctx context.Context) error {
	token, err := GetSecret("Paste ID token", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	sess, err := session.FromToken(string(token), []byte(a.config.SecretKey))
	if err != nil {
		log.Println(err.Error())
		return err
	}
	a.sess = sess
	fmt.Printf("Logged in as %s\n", sess.UserID)

	report, err := a.workspace.SyncAll(ctx, a.sess)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	fmt.Printf("Synced: %d pushed, %d still pending\n", report.Pushed, report.Failed)
	return nil
}

// Logout clears the session. Local data stays; remote operations start
// failing fast again until the next login.
func (a *App) Logout(ctx context.Context) error {
	a.sess = nil
	fmt.Println("Logged out")
	return nil
}
