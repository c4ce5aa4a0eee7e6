package cmd

import (
	"github.com/abhisek/histquiz/internal/app"
	"github.com/abhisek/histquiz/internal/screen"
	"github.com/abhisek/histquiz/internal/screens/history"
	sessionscreen "github.com/abhisek/histquiz/internal/screens/session"
	settingsscreen "github.com/abhisek/histquiz/internal/screens/settings"
	"github.com/abhisek/histquiz/internal/screens/welcome"
	"github.com/abhisek/histquiz/internal/session"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmdContext(cmd)
	d, err := openDeps(cmd, nil)
	if err != nil {
		return err
	}
	defer d.Close()

	bridge := sessionscreen.NewBridge()
	sess := session.New(d.newLoader(), d.settings, d.ledger,
		session.WithFeedbackDelay(d.cfg.Quiz.FeedbackDelay),
		session.WithHistory(d.store.SessionRepo()),
		session.WithObserver(bridge),
		session.WithLogger(d.logger),
	)
	defer sess.Close()

	quiz := sessionscreen.New(sess, bridge,
		sessionscreen.WithContext(ctx),
		sessionscreen.WithHistoryScreen(func() screen.Screen {
			return history.New(d.store.SessionRepo())
		}),
	)

	// First launch greets the player before the first load.
	var first screen.Screen = quiz
	if !d.settings.Saved() {
		first = welcome.New(func() screen.Screen { return quiz })
	}

	d.logger.Info("starting", "version", version)
	return app.Run(ctx, app.Options{
		Tabs:       []screen.Screen{first, settingsscreen.New(d.settings, d.ledger)},
		HighScores: d.ledger,
		Logger:     d.logger,
	})
}
