package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Clips(ctx context.Context) error
	AddClip(ctx context.Context) error
	DeleteClip(ctx context.Context, id string) error
	Plans(ctx context.Context) error
	AddPlan(ctx context.Context) error
	Content(ctx context.Context) error
	AddContent(ctx context.Context) error
	Timeline(ctx context.Context) error
	AddMilestone(ctx context.Context) error
	CompleteMilestone(ctx context.Context, id string) error
	Sync(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the creatorsync CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("cs> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: clips, addclip, delclip <id>, plans, addplan, content, addcontent, timeline, addmilestone, done <id>, sync, status, logout, exit")
			} else {
				printlnFn("Available commands: login, clips, plans, content, timeline, status, exit (local-only until you log in)")
			}
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "clips":
			_ = a.Clips(ctx)
		case "addclip":
			_ = a.AddClip(ctx)
		case "delclip":
			if len(args) == 0 {
				printlnFn("Usage: delclip <id>")
				continue
			}
			_ = a.DeleteClip(ctx, args[0])
		case "plans":
			_ = a.Plans(ctx)
		case "addplan":
			_ = a.AddPlan(ctx)
		case "content":
			_ = a.Content(ctx)
		case "addcontent":
			_ = a.AddContent(ctx)
		case "timeline":
			_ = a.Timeline(ctx)
		case "addmilestone":
			_ = a.AddMilestone(ctx)
		case "done":
			if len(args) == 0 {
				printlnFn("Usage: done <id>")
				continue
			}
			_ = a.CompleteMilestone(ctx, args[0])
		case "sync":
			_ = a.Sync(ctx)
		case "status":
			_ = a.Status(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command: " + cmd)
		}
	}
}
