package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/avyna/pkg/session"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print internal component state as JSON",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := openApp()

		out := map[string]any{}
		for _, c := range app.Components() {
			if intro, ok := c.(introspection.Introspectable); ok {
				out[c.ComponentType()] = intro.State()
			}
		}

		auth, err := app.Auth.Load(context.Background())
		if err != nil && !errors.Is(err, session.ErrCorrupt) {
			fatal("Error reading session", err)
		}
		sess := map[string]any{"logged_in": auth.IsLoggedIn, "state_dir": app.StateDir}
		if err != nil {
			sess["unreadable"] = true
		}
		if claims, err := session.DecodeClaims(app.Auth.Token()); err == nil {
			sess["user_id"] = claims.UserID
			if !claims.Expiry().IsZero() {
				sess["expires_at"] = claims.Expiry().Format(time.RFC3339)
				sess["expired"] = claims.Expired(time.Now())
			}
		}
		out["session"] = sess

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fatal("Error encoding state", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
}
