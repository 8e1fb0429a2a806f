package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/avyna"
	"github.com/aretw0/avyna/pkg/adapters/lifecycle"
	"github.com/aretw0/avyna/pkg/core"
	"github.com/aretw0/avyna/pkg/query"
	"github.com/aretw0/avyna/pkg/render"
	"github.com/aretw0/avyna/pkg/session"
)

var (
	historyOffset   int
	historyRecent   int
	historyJSON     bool
	historyWatch    bool
	historyInterval time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show logged symptoms grouped by day",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if historyWatch {
			if err := checkInterval(historyInterval); err != nil {
				fatal("Invalid --interval", err)
			}
		}
		app := openApp()

		if !historyWatch {
			sections, err := historyQuery(app).Get(context.Background())
			printHistory(sections, err)
			return
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := watchHistory(ctx, app); err != nil {
			fatal("Error watching history", err)
		}
	},
}

func printHistory(sections []core.SymptomSection, err error) {
	if err != nil {
		fatal("Error fetching history", loggedOut(err))
	}

	if historyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(sections); err != nil {
			fatal("Error encoding history", err)
		}
		return
	}
	if err := render.Sections(os.Stdout, sections); err != nil {
		fatal("Error printing history", err)
	}
}

func historyQuery(app *avyna.App) *query.Query[[]core.SymptomSection] {
	if historyRecent > 0 {
		return app.Recent(historyRecent)
	}
	return app.History(historyOffset)
}

func checkInterval(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %s", d)
	}
	return nil
}

// watchHistory refetches on a timer and whenever the session changes, e.g.
// after `avyna login` in another terminal.
func watchHistory(ctx context.Context, app *avyna.App) error {
	if err := checkInterval(historyInterval); err != nil {
		return err
	}
	events, err := app.Watch(ctx)
	if err != nil {
		return err
	}
	src := lifecycle.NewSource(events, session.AuthKey)
	if err := src.Start(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(historyInterval)
	defer ticker.Stop()

	refresh := func(reason string) {
		slog.Debug("refreshing history", "reason", reason)
		sections, err := historyQuery(app).Refetch(ctx)
		switch {
		case errors.Is(err, query.ErrDisabled):
			fmt.Println("Not logged in. Waiting for `avyna login`...")
		case errors.Is(err, core.ErrUnauthorized):
			// the navigator already told the user
		case err != nil:
			slog.Warn("history refresh failed", "error", err)
		default:
			fmt.Printf("\n--- %s ---\n", time.Now().Format(time.Kitchen))
			_ = render.Sections(os.Stdout, sections)
		}
	}

	refresh("start")
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			refresh("interval")
		case e, ok := <-src.Events():
			if !ok {
				return nil
			}
			refresh(e.String())
		}
	}
}

func init() {
	historyCmd.Flags().IntVar(&historyOffset, "offset", 0, "Skip this many logs")
	historyCmd.Flags().IntVar(&historyRecent, "recent", 0, "Only show logs of the last N days (max 30)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output sections as JSON")
	historyCmd.Flags().BoolVarP(&historyWatch, "watch", "w", false, "Keep running and refresh on changes")
	historyCmd.Flags().DurationVar(&historyInterval, "interval", 30*time.Second, "Refresh interval in watch mode")
	rootCmd.AddCommand(historyCmd)
}
