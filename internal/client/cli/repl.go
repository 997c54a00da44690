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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Say(ctx context.Context, text string) error
	Mood(ctx context.Context, args []string) error
	History(ctx context.Context) error
	Speak(ctx context.Context) error
	Plan(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Mood-Tracker CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Any line that is not a known
// command is treated as a journal message and submitted to the conversation.
// The loop exits on scanner EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help           — show available commands
//	  - mood <label>   — set the current mood
//	  - history        — show today's conversation
//	  - speak          — synthesize the last reply to speech
//	  - exit | quit    — leave the program
//
//	Not logged in:
//	  - register       — create an account
//	  - login          — authenticate
//
//	Logged in:
//	  - plan <name>    — activate a subscription plan
//	  - whoami         — show the current user and subscription
//	  - logout         — log out
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("mt> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: mood <label>, history, speak, plan <name>, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, mood <label>, history, speak, exit")
			}
			printlnFn("Anything else you type is sent to your journaling companion.")

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "mood":
			_ = a.Mood(ctx, args)

		case "history":
			_ = a.History(ctx)

		case "speak":
			_ = a.Speak(ctx)

		case "plan":
			_ = a.Plan(ctx, args)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Take care! 💙")
			return

		default:
			_ = a.Say(ctx, line)
		}
	}
}
