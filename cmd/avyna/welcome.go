package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/avyna/pkg/render"
	"github.com/aretw0/avyna/pkg/session"
)

var welcomeReset bool

var welcomeCmd = &cobra.Command{
	Use:   "welcome",
	Short: "Show the welcome screen",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ob := session.NewOnboarding(openStore())
		ctx := context.Background()

		if welcomeReset {
			if err := ob.SetHasSeen(ctx, session.Progress{Step: 1}); err != nil {
				fatal("Error resetting onboarding", err)
			}
		}

		p, err := ob.HasSeen(ctx)
		if err != nil {
			fatal("Error reading onboarding state", err)
		}
		if err := render.Welcome(os.Stdout, p.Step); err != nil {
			fatal("Error printing welcome", err)
		}
		if !p.Seen {
			fmt.Println("\nGet started with `avyna register` or `avyna login`.")
			if err := ob.SetHasSeen(ctx, session.Progress{Step: p.Step + 1, Seen: true}); err != nil {
				fatal("Error saving onboarding state", err)
			}
		}
	},
}

func init() {
	welcomeCmd.Flags().BoolVar(&welcomeReset, "reset", false, "Show the first-run screen again")
	rootCmd.AddCommand(welcomeCmd)
}
