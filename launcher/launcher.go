package launcher

import (
	"context"
	"fmt"
	"omnihub/constants"
	"omnihub/types"
)

// LibraryProvider defines the store operation a launch goes through.
type LibraryProvider interface {
	Launch(ctx context.Context, id string) (types.Game, bool, error)
}

// UIProvider defines the UI interactions needed for launching games.
type UIProvider interface {
	LogInfof(format string, args ...interface{})
	EventsEmit(eventName string, args ...interface{})
	Notify(title, message string)
}

// Launcher handles the orchestration of launching a game.
type Launcher struct {
	library LibraryProvider
	ui      UIProvider
}

// New creates a new Launcher.
func New(library LibraryProvider, ui UIProvider) *Launcher {
	return &Launcher{
		library: library,
		ui:      ui,
	}
}

// Launch plays a simulated session of the given game. The session is
// recorded before the notice is shown, and an unknown id does nothing.
func (l *Launcher) Launch(ctx context.Context, id string) error {
	game, ok, err := l.library.Launch(ctx, id)
	if !ok {
		l.ui.LogInfof("Launch: no game with id %s", id)
		return err
	}

	l.ui.EventsEmit(constants.EventGameStarted, game)
	defer l.ui.EventsEmit(constants.EventGameExited, game)

	l.ui.Notify("Game Launched", Notice(game))

	if err != nil {
		return fmt.Errorf("failed to record session for %s: %w", game.Title, err)
	}
	return nil
}

// Notice is the message shown when a game is launched.
func Notice(game types.Game) string {
	return fmt.Sprintf("Launching %s... Enjoy your session!", game.Title)
}
