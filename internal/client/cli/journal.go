package cli

import (
	"context"
	"fmt"

	"github.com/khmorad/Mood-Tracker/internal/client/session"
)

var moodLabels = []string{"happy", "sad", "anxious", "calm", "angry", "tired", "excited"}

// Say submits one journal message to the conversation and prints the reply.
// For a logged-in user the exchange is persisted in the background of the
// same call; the save marker is shown next to the reply when it applies.
func (a *App) Say(ctx context.Context, text string) error {
	turn := a.session.Submit(ctx, text)
	printTurnReply(turn)
	return nil
}

// Mood sets the mood label attached to subsequent submissions. With no
// arguments it lists the labels the web client offers; any free-form label is
// accepted too.
func (a *App) Mood(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: mood <label>")
		fmt.Printf("Suggestions: %v\n", moodLabels)
		return nil
	}
	a.session.SetMood(args[0])
	fmt.Printf("Mood set to %q\n", args[0])
	return nil
}

// History prints today's conversation, greeting first, with per-turn save
// markers where present.
func (a *App) History(ctx context.Context) error {
	for _, turn := range a.session.Transcript().Turns() {
		if turn.IsGreeting() {
			fmt.Printf("  companion: %s\n", turn.Reply)
			continue
		}
		fmt.Printf("  you:       %s\n", turn.UserText)
		printTurnReply(turn)
	}
	return nil
}

// Speak sends the most recent reply to the text-to-speech endpoint and prints
// the audio URL the server returns.
func (a *App) Speak(ctx context.Context) error {
	turns := a.session.Transcript().Turns()
	last := turns[len(turns)-1]
	if last.Reply == "" {
		fmt.Println("Nothing to speak yet.")
		return nil
	}

	url, err := a.apiClient.Synthesize(ctx, last.Reply)
	if err != nil {
		fmt.Printf("Speech synthesis failed: %s\n", err.Error())
		return err
	}
	fmt.Printf("Audio ready: %s\n", url)
	return nil
}

// Plan activates a subscription plan for the logged-in user and reports the
// server's confirmation. The activated tier takes effect immediately through
// the local subscription cache.
func (a *App) Plan(ctx context.Context, args []string) error {
	u := a.authService.CurrentUser(ctx)
	if u == nil {
		fmt.Println("Log in to manage your subscription.")
		return nil
	}
	if len(args) == 0 {
		fmt.Println("Usage: plan <Free|Plus|Professional>")
		return nil
	}

	activation, err := a.subService.ActivatePlan(ctx, u.UserID, args[0])
	if err != nil {
		fmt.Printf("Plan activation failed: %s\n", err.Error())
		return err
	}
	fmt.Println(activation.Message)
	return nil
}

func printTurnReply(turn session.Turn) {
	if marker := turn.Status.String(); marker != "" {
		fmt.Printf("  companion: %s  [%s]\n", turn.Reply, marker)
	} else {
		fmt.Printf("  companion: %s\n", turn.Reply)
	}
}
